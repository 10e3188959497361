// Package model defines the zenith domain document and its entities.
//
// AppData is the root document: seven ordered collections held in
// insertion order. Field names follow the persisted blob format (camelCase
// JSON) so documents written by earlier versions of the application load
// unchanged.
//
// # Conventions
//
//   - Optional string references (categoryId, clientId, notes, ...) use the
//     empty string for "undefined" and are omitted from JSON when empty.
//   - Monetary values use Amount, a decimal that serializes as a bare JSON
//     number and preserves its scale.
//   - Timestamps are time.Time, encoded as RFC 3339.
//
// Values in this package are plain data. All mutation rules (id assignment,
// cascades, no-ops) live in internal/state.
package model
