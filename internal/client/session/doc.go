// Package session resolves who the current user is.
//
// A Manager is built once at startup and handed to every consumer. It holds
// the current Snapshot (identity, role, resolution state) and is the only
// writer of it; Login, Logout and Refetch are the mutating operations.
//
// Failure policy: a rejected credential (401) demotes the session to guest
// and clears stored credentials; any other refresh failure falls back to the
// last cached identity, or guest when none is cached. Neither is returned to
// the caller. Only Login reports errors, after the session has been reset to
// a resolved guest.
//
// Concurrent Refetch calls are not cancelled and the last one to finish
// wins, unless the manager is built WithStaleRefetchGuard(true), in which
// case results of superseded operations are discarded.
package session
