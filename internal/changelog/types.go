package changelog

// EntryType classifies a changelog entry. The set of types is closed.
type EntryType string

const (
	TypeFeature     EntryType = "feature"
	TypeFix         EntryType = "fix"
	TypeImprovement EntryType = "improvement"
)

// ValidTypes returns the entry types in their standard display order.
func ValidTypes() []EntryType {
	return []EntryType{TypeFeature, TypeImprovement, TypeFix}
}

// Valid reports whether t is one of the known entry types.
func (t EntryType) Valid() bool {
	switch t {
	case TypeFeature, TypeFix, TypeImprovement:
		return true
	default:
		return false
	}
}

// Label returns the human-readable name used in section headers.
func (t EntryType) Label() string {
	switch t {
	case TypeFeature:
		return "New feature"
	case TypeFix:
		return "Fix"
	case TypeImprovement:
		return "Improvement"
	default:
		return "Update"
	}
}

// File represents the root structure of a changelog.yaml document.
// Entries are listed newest first.
type File struct {
	Entries []Entry `yaml:"entries"`
}

// Entry is one user-facing product update tied to a release version.
// Entries are never modified after loading. The presentation fields
// (Icon, Details, Screens, DocLink, DocTitle) are passed through as-is.
type Entry struct {
	ID          string    `yaml:"id"`
	Version     string    `yaml:"version"`
	Date        string    `yaml:"date,omitempty"`
	Type        EntryType `yaml:"type"`
	Title       string    `yaml:"title"`
	Description string    `yaml:"description,omitempty"`
	Icon        string    `yaml:"icon,omitempty"`
	Details     []string  `yaml:"details,omitempty"`
	Screens     []string  `yaml:"screens,omitempty"`
	DocLink     string    `yaml:"doc_link,omitempty"`
	DocTitle    string    `yaml:"doc_title,omitempty"`
}

// HasValidVersion returns true if the entry's version parses as semver.
func (e Entry) HasValidVersion() bool {
	return IsValidVersion(e.Version)
}

// Group is a display-time cluster of entries sharing a key such as a
// version or a release date. Groups are derived on every read.
type Group struct {
	// Key is the grouping criterion: the canonical version, the date,
	// or the raw version string for entries whose version does not parse.
	Key string
	// Label is the header shown above the group.
	Label string
	// Malformed is set when the group holds entries with unparseable versions.
	Malformed bool
	Entries   []Entry
}

// Catalogue is an ordered, read-only list of changelog entries.
type Catalogue struct {
	entries []Entry
	byID    map[string]int
}

// NewCatalogue builds a catalogue over a copy of entries.
// The order of entries is preserved; the catalogue never re-sorts.
func NewCatalogue(entries []Entry) *Catalogue {
	c := &Catalogue{
		entries: make([]Entry, len(entries)),
		byID:    make(map[string]int, len(entries)),
	}
	for i, e := range entries {
		c.entries[i] = cloneEntry(e)
		if _, seen := c.byID[e.ID]; !seen {
			c.byID[e.ID] = i
		}
	}
	return c
}

// With returns a new catalogue with entries placed in front of the
// existing ones, as happens when a new release is published.
// The receiver is left untouched.
func (c *Catalogue) With(entries ...Entry) *Catalogue {
	combined := make([]Entry, 0, len(entries)+c.Len())
	combined = append(combined, entries...)
	combined = append(combined, c.Entries()...)
	return NewCatalogue(combined)
}

func cloneEntry(e Entry) Entry {
	if e.Details != nil {
		e.Details = append([]string(nil), e.Details...)
	}
	if e.Screens != nil {
		e.Screens = append([]string(nil), e.Screens...)
	}
	return e
}
