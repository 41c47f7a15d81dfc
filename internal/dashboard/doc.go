// Package dashboard models the dashboard session as an immutable Snapshot
// and a pure Reduce function.
//
// Every user action (uploading a file, toggling an audience filter,
// narrowing the location) is an Event. Reduce never mutates its input; it
// returns the next Snapshot with Version incremented, or the same Snapshot
// when the event does not apply. Summaries are then computed from a
// Snapshot with dataprocessing.Summarize, so readers never need a lock.
package dashboard
