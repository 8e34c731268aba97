// Package core contains the domain events of event management:
// scheduling events and registering attendees for them.
//
// Events describe business facts like EventScheduled or AttendeeRegistered, not CRUD operations.
// Every event implements DomainEvent. The failure events (SchedulingEventFailed, ...) are appended
// too, so rejected commands stay visible in the event history.
//
// The value types the events are built from live in package domain.
package core
