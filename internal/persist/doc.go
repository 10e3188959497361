// Package persist keeps the AppStore's document outside the process.
//
// Three pieces live here:
//
//   - BlobStore: a key/value byte store. SQLiteStore is the durable
//     implementation; MemoryStore backs tests and ephemeral sessions.
//   - Adapter: loads the document at startup, saves it after every
//     changing transition (it is a state.Observer) and never lets a
//     storage failure reach the caller.
//   - Export and import of backup files. Import builds a whole document
//     and hands it to the store as one SetData; on any failure the store
//     is not touched.
//
// The blob is the compact JSON encoding of model.AppData under a single
// key, DefaultKey unless configured otherwise.
package persist
