// Package eventdetails implements the Event Details query use case.
//
// The query rebuilds one scheduled event with its kind specific data and reports how much
// of its capacity is taken by active registrations.
package eventdetails
