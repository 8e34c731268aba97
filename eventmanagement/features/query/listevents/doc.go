// Package listevents implements the List Events query use case.
//
// The query returns every scheduled event in scheduling order, optionally narrowed to one
// kind and to a time window, together with the number of active registrations per event.
// Its projection can continue from a previous result, so the query handler can be wrapped
// with snapshot.Wrapper.
package listevents
