// Package operations holds pure functions over the domain types: searching events, capacity,
// money arithmetic, registrations and revenue. Nothing in here does I/O.
package operations
