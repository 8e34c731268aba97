// Package eventattendees implements the Event Attendees query use case.
//
// The query lists the registrations of one event in registration order with their current status.
package eventattendees
