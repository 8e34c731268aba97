// Package scheduleevent implements the Schedule Event use case.
//
// The event is validated by the domain constructors before a Command can be built,
// so Decide only guards the EventID: scheduling the same event twice is a no-op,
// scheduling different data under a taken EventID fails with a SchedulingEventFailed event.
package scheduleevent
