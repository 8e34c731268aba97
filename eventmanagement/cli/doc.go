// Package cli is the Event Organizer user interface: an interactive menu session and the
// renderers shared with the non-interactive commands of cmd/eventmanagement-cli.
//
// All state lives in the event store, the session only talks to the feature handlers.
package cli
