// Package whatsnew drives the "what's new" notification panel: it owns
// the open/closed state of the panel and exposes the view model the UI
// renders (badge count, grouped entries, current version).
//
// Opening the panel is the only action that acknowledges entries. Reading
// the badge or the list never does.
package whatsnew

import (
	"iter"
	"slices"
	"sync"

	"github.com/ariel-frischer/whatsnew/internal/changelog"
)

// State is the visibility of the notification panel.
type State int

const (
	// Closed is the initial state.
	Closed State = iota
	Open
)

func (s State) String() string {
	if s == Open {
		return "open"
	}
	return "closed"
}

// ReadState is the part of the read-state tracker the panel depends on.
// *readstate.Tracker satisfies it.
type ReadState interface {
	UnreadCount(c *changelog.Catalogue) int
	IsUnread(e changelog.Entry) bool
	Acknowledge(c *changelog.Catalogue)
}

// Grouping selects how entries are clustered in the list view.
type Grouping string

const (
	ByVersion Grouping = "version"
	ByDate    Grouping = "date"
)

// Controller is the two-state panel machine plus its view model.
type Controller struct {
	mu        sync.Mutex
	catalogue *changelog.Catalogue
	reads     ReadState
	state     State
	grouping  Grouping
}

// NewController creates a closed panel over catalogue.
func NewController(catalogue *changelog.Catalogue, reads ReadState) *Controller {
	return &Controller{
		catalogue: catalogue,
		reads:     reads,
		state:     Closed,
		grouping:  ByVersion,
	}
}

// SetGrouping changes how Groups clusters entries. Unknown values fall back
// to grouping by version.
func (c *Controller) SetGrouping(g Grouping) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if g != ByDate {
		g = ByVersion
	}
	c.grouping = g
}

// Open shows the panel and acknowledges the latest version.
func (c *Controller) Open() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = Open
	c.reads.Acknowledge(c.catalogue)
}

// Close hides the panel. Read state is not touched.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = Closed
}

// IsOpen reports whether the panel is showing.
func (c *Controller) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state == Open
}

// State returns the current panel state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Reload swaps in a freshly loaded catalogue. The panel state and the read
// state are left alone, so a newly published version shows up as unread.
func (c *Controller) Reload(catalogue *changelog.Catalogue) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.catalogue = catalogue
}

// Catalogue returns the catalogue currently shown.
func (c *Controller) Catalogue() *changelog.Catalogue {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.catalogue
}

// UnreadCount is the badge value.
func (c *Controller) UnreadCount() int {
	return c.reads.UnreadCount(c.Catalogue())
}

// CurrentVersion is the latest version in the catalogue, or "" when there
// is none.
func (c *Controller) CurrentVersion() string {
	return latestVersion(c.Catalogue())
}

// Groups returns the grouped list view, newest first.
func (c *Controller) Groups() iter.Seq[changelog.Group] {
	c.mu.Lock()
	cat, grouping := c.catalogue, c.grouping
	c.mu.Unlock()
	return groupsOf(cat, grouping)
}

func latestVersion(cat *changelog.Catalogue) string {
	v, err := cat.LatestVersion()
	if err != nil {
		return ""
	}
	return v
}

func groupsOf(cat *changelog.Catalogue, grouping Grouping) iter.Seq[changelog.Group] {
	if grouping == ByDate {
		return cat.GroupByDate()
	}
	return cat.GroupByVersion()
}

// IsUnread reports whether e should carry an unread marker.
func (c *Controller) IsUnread(e changelog.Entry) bool {
	return c.reads.IsUnread(e)
}

// View is a point-in-time copy of everything the UI renders.
type View struct {
	UnreadCount    int
	HasUnread      bool
	IsOpen         bool
	CurrentVersion string
	Groups         []changelog.Group
	// Unread holds the ids of entries that carry an unread marker.
	Unread map[string]bool
}

// Snapshot captures the current view model. Every field is derived from
// the same catalogue and panel state; a concurrent Reload or Open lands
// before or after, never in between. Taking a snapshot never acknowledges
// anything.
func (c *Controller) Snapshot() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	cat := c.catalogue
	groups := slices.Collect(groupsOf(cat, c.grouping))
	unread := make(map[string]bool)
	for _, g := range groups {
		for _, e := range g.Entries {
			if c.reads.IsUnread(e) {
				unread[e.ID] = true
			}
		}
	}

	count := c.reads.UnreadCount(cat)
	return View{
		UnreadCount:    count,
		HasUnread:      count > 0,
		IsOpen:         c.state == Open,
		CurrentVersion: latestVersion(cat),
		Groups:         groups,
		Unread:         unread,
	}
}
