// Package report derives display figures from a snapshot: balances,
// project progress, deadlines and calendar events.
//
// Nothing here is stored. Every function is a pure read of a model.AppData
// value, so callers can run them against any snapshot, old or current.
// Day boundaries are computed in the location of the time passed in.
package report
