// Package store defines interfaces for session persistence. These
// interfaces abstract the underlying storage mechanism from the
// application's core logic; the only implementation today keeps
// sessions in process memory.
package store
