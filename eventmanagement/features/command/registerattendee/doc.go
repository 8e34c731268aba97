// Package registerattendee implements the Register Attendee use case.
//
// The dynamic event stream of one event (its EventScheduled, AttendeeRegistered and
// RegistrationStatusChanged events) is the consistency boundary, so two concurrent
// registrations for the last free seat can't both succeed: the second append conflicts,
// is retried, and then sees a full event.
package registerattendee
