// Package testdoubles provides spies for the observability ports of the event store and the handlers.
package testdoubles
