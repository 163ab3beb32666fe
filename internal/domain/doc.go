// Package domain contains the core entities of the gift finder: the gift idea
// record, the recipient form, and the per-visitor session state machine.
//
// Every type here is a value. Session transitions return a new Session rather
// than mutating the receiver, so callers can apply them atomically inside a
// store update and discard the result on error.
package domain
