// Package readstate tracks which changelog versions an installation has
// acknowledged.
//
// The only persisted value is the highest acknowledged version. A Tracker
// loads it once from a Store, answers unread queries from memory and
// flushes synchronously whenever the value changes. Storage failures never
// reach the caller: the in-memory value stays authoritative for the session.
package readstate

import "errors"

// ErrPersistenceUnavailable wraps any failure to read or write durable state.
var ErrPersistenceUnavailable = errors.New("read state persistence unavailable")

// Store persists the last acknowledged version for one installation profile.
type Store interface {
	// Load returns the stored version. ok is false when nothing was stored.
	Load() (version string, ok bool, err error)
	// Save replaces the stored version.
	Save(version string) error
	// Close releases any resources held by the store.
	Close() error
}
