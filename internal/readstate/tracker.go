package readstate

import (
	"io"
	"log/slog"
	"sync"

	"github.com/ariel-frischer/whatsnew/internal/changelog"
)

// Tracker owns the last acknowledged version and derives unread status
// from it. Construct one per session with NewTracker.
type Tracker struct {
	mu       sync.Mutex
	store    Store
	logger   *slog.Logger
	lastSeen string
	seen     bool
	// dirty is set when the in-memory value could not be flushed.
	dirty bool
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithLogger sets the logger used to report swallowed storage failures.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Tracker) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// NewTracker loads the persisted value from store, or starts from "never
// seen" when nothing is stored, the store fails, or the stored value is not
// a valid version.
func NewTracker(store Store, opts ...Option) *Tracker {
	t := &Tracker{
		store:  store,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.logger = t.logger.With("component", "readstate")

	version, ok, err := store.Load()
	switch {
	case err != nil:
		t.logger.Warn("loading read state failed, treating all entries as unread", "error", err)
	case !ok:
		t.logger.Debug("no read state stored")
	case !changelog.IsValidVersion(version):
		t.logger.Warn("ignoring malformed stored version", "version", version)
	default:
		t.lastSeen = version
		t.seen = true
	}

	return t
}

// LastSeenVersion returns the last acknowledged version. ok is false when
// nothing has been acknowledged.
func (t *Tracker) LastSeenVersion() (version string, ok bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lastSeen, t.seen
}

// UnreadCount returns the number of distinct versions in c that are newer
// than the last acknowledged version. With nothing acknowledged every
// version counts. An empty catalogue has no unread versions.
func (t *Tracker) UnreadCount(c *changelog.Catalogue) int {
	t.mu.Lock()
	lastSeen, seen := t.lastSeen, t.seen
	t.mu.Unlock()

	latest, err := c.LatestVersion()
	if err != nil {
		return 0
	}
	if seen && !changelog.VersionNewer(latest, lastSeen) {
		return 0
	}

	count := 0
	for _, v := range c.Versions() {
		if !seen || changelog.VersionNewer(v, lastSeen) {
			count++
		}
	}
	return count
}

// HasUnread reports whether any version in c is unread. Badges over a long
// history show this instead of the exact count.
func (t *Tracker) HasUnread(c *changelog.Catalogue) bool {
	return t.UnreadCount(c) > 0
}

// IsUnread reports whether e is newer than the last acknowledged version.
// Entries with malformed versions take no part in comparisons: they are
// unread only while nothing has been acknowledged.
func (t *Tracker) IsUnread(e changelog.Entry) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.seen {
		return true
	}
	return changelog.VersionNewer(e.Version, t.lastSeen)
}

// Acknowledge marks everything up to the latest version of c as seen and
// flushes it to the store. It is idempotent, and never moves the value
// backwards if c is older than what was already acknowledged. A failed flush
// is logged, not returned; the in-memory value still changes and the write
// is retried on the next call.
func (t *Tracker) Acknowledge(c *changelog.Catalogue) {
	latest, err := c.LatestVersion()
	if err != nil {
		t.logger.Debug("nothing to acknowledge", "error", err)
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.seen && !changelog.VersionNewer(latest, t.lastSeen) {
		if t.dirty {
			t.flushLocked()
		}
		return
	}

	t.lastSeen = latest
	t.seen = true
	t.flushLocked()
}

// flushLocked writes the in-memory value. Callers hold t.mu.
func (t *Tracker) flushLocked() {
	if err := t.store.Save(t.lastSeen); err != nil {
		t.dirty = true
		t.logger.Warn("persisting read state failed; unread items will reappear next session",
			"version", t.lastSeen, "error", err)
		return
	}
	t.dirty = false
	t.logger.Debug("read state saved", "version", t.lastSeen)
}

// Close releases the underlying store.
func (t *Tracker) Close() error {
	return t.store.Close()
}
