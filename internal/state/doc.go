// Package state implements the zenith AppStore: a single-writer,
// reducer-driven holder of the current AppData snapshot.
//
// ARCHITECTURE:
//
// Closed action set:
// Every mutation is one of the concrete Action types in action.go. Action is
// sealed (unexported marker method), and Reduce switches over the concrete
// types exhaustively, so an unknown action cannot be silently ignored.
//
// Pure transitions:
// Reduce(data, action, ids) never mutates data. Every arm builds a new
// snapshot using the append/filter/replace helpers, which always allocate.
// A transition either fully applies or is a no-op (Changed == false); there
// is no partial failure.
//
// Integrity pass:
// Every delete arm hands the removed entity to enforceIntegrity, which looks
// up the cascade rule for that entity kind (integrity.go). Cascades are
// listed per kind in one table so they can be audited and tested on their
// own. CheckIntegrity audits a whole document and is used by strict import.
//
// Store:
// Store wraps Reduce with id generation, a logical revision clock, bounded
// undo/redo history and synchronous observers (persistence subscribes as
// one). Dispatch, Undo and Redo serialize on a mutex; Snapshot and Revision
// are lock-free.
package state
