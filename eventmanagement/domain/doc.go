// Package domain contains the immutable value types of the event management domain: the four event kinds,
// their venue, attendees, registrations and money.
//
// All constructors validate their input and return an error, a zero value of any type is never valid.
package domain
