// Package schema validates imported AppData documents against an embedded
// CUE definition before they are decoded.
//
// The Go types in package model accept more than the application ever
// writes: unknown fields are dropped, enum strings are not checked and
// amounts may be negative. A strict import runs Validate first so a
// hand-edited or foreign backup is rejected with a position instead of
// being half-accepted.
package schema
