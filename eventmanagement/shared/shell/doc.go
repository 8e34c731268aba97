// Package shell is the imperative shell around the domain events of package core.
//
// It maps domain events to storable events and back, carries event metadata, retries commands on
// concurrency conflicts and defines the handler contracts and observability helpers every feature slice uses.
package shell
