// Package totalrevenue implements the Total Revenue query use case.
//
// Revenue is the sum of the event fees of all CONFIRMED and ATTENDED registrations, either
// over all events or over one. Fees in different currencies can't be summed, the query fails
// with operations.ErrCurrencyMismatch then.
package totalrevenue
