// Package snapshot makes query handlers incremental.
//
// A Wrapper loads the last saved projection of a query, queries only the events appended after it,
// folds them onto the saved projection, and saves the result again. Any problem along the way
// (no snapshot, unreadable snapshot, failing incremental query) falls back to the wrapped handler,
// so a broken snapshot costs a full replay but never a wrong answer.
//
// Dependencies come from the wrapped handler through shell.ExposesSnapshotWrapperDependencies:
//
//	base, err := listevents.NewQueryHandler(store)
//	...
//	handler, err := snapshot.NewWrapper[listevents.Query, listevents.EventList](
//		base,
//		listevents.Project,
//		func(listevents.Query) eventstore.Filter { return listevents.BuildEventFilter() },
//	)
package snapshot
