package changelog

import (
	"errors"
	"fmt"
	"iter"
)

// ErrEmptyCatalogue is returned by ordering queries when the catalogue holds
// no entry with a well-formed version. Callers treat it as "nothing unread".
var ErrEmptyCatalogue = errors.New("changelog catalogue is empty")

// EntryNotFoundError is returned when a requested entry id doesn't exist.
type EntryNotFoundError struct {
	ID string
}

func (e *EntryNotFoundError) Error() string {
	return fmt.Sprintf("entry %q not found", e.ID)
}

// Len returns the number of entries in the catalogue.
func (c *Catalogue) Len() int {
	if c == nil {
		return 0
	}
	return len(c.entries)
}

// Entries returns a copy of all entries in source order (newest first).
func (c *Catalogue) Entries() []Entry {
	if c == nil {
		return nil
	}
	out := make([]Entry, len(c.entries))
	for i, e := range c.entries {
		out[i] = cloneEntry(e)
	}
	return out
}

// Entry retrieves an entry by id.
func (c *Catalogue) Entry(id string) (Entry, error) {
	if c != nil {
		if i, ok := c.byID[id]; ok {
			return cloneEntry(c.entries[i]), nil
		}
	}
	return Entry{}, &EntryNotFoundError{ID: id}
}

// LatestVersion returns the version of the first entry. The list is trusted
// to be sorted newest first and is not re-sorted. Entries whose version does
// not parse are skipped.
func (c *Catalogue) LatestVersion() (string, error) {
	if c == nil {
		return "", ErrEmptyCatalogue
	}
	for _, e := range c.entries {
		if e.HasValidVersion() {
			return e.Version, nil
		}
	}
	return "", ErrEmptyCatalogue
}

// Versions returns the distinct well-formed versions in first-appearance
// order, in canonical form.
func (c *Catalogue) Versions() []string {
	if c == nil {
		return nil
	}
	seen := make(map[string]bool)
	var versions []string
	for _, e := range c.entries {
		canonical, err := CanonicalVersion(e.Version)
		if err != nil || seen[canonical] {
			continue
		}
		seen[canonical] = true
		versions = append(versions, canonical)
	}
	return versions
}

// Malformed returns the entries whose version does not parse.
func (c *Catalogue) Malformed() []Entry {
	if c == nil {
		return nil
	}
	var out []Entry
	for _, e := range c.entries {
		if !e.HasValidVersion() {
			out = append(out, cloneEntry(e))
		}
	}
	return out
}

// GroupByVersion yields one group per distinct version, in the order the
// versions first appear. Entries keep their relative order inside a group;
// this is a stable grouping, not a sort. Entries with malformed versions are
// grouped by their raw version string and yielded after all other groups.
//
// The sequence is computed lazily and can be ranged over any number of times.
func (c *Catalogue) GroupByVersion() iter.Seq[Group] {
	return c.groupBy(func(e Entry) groupKey {
		canonical, err := CanonicalVersion(e.Version)
		if err != nil {
			return groupKey{id: "\x00" + e.Version, key: e.Version, label: e.Version, trailing: true}
		}
		return groupKey{id: canonical, key: e.Version, label: VersionLabel(e.Version)}
	})
}

// GroupByDate yields one group per release date, in first-appearance order.
// Entries without a date are collected under an empty key.
func (c *Catalogue) GroupByDate() iter.Seq[Group] {
	return c.groupBy(func(e Entry) groupKey {
		if e.Date == "" {
			return groupKey{label: "Undated"}
		}
		return groupKey{id: e.Date, key: e.Date, label: e.Date}
	})
}

// groupKey places an entry in a group. Entries with equal ids share a group;
// key and label are taken from the first entry of the group.
type groupKey struct {
	id       string
	key      string
	label    string
	trailing bool
}

func (c *Catalogue) groupBy(keyOf func(Entry) groupKey) iter.Seq[Group] {
	return func(yield func(Group) bool) {
		if c.Len() == 0 {
			return
		}

		var leading, trailing []*Group
		index := make(map[string]*Group)

		for _, e := range c.entries {
			k := keyOf(e)
			g, ok := index[k.id]
			if !ok {
				g = &Group{Key: k.key, Label: k.label, Malformed: k.trailing}
				index[k.id] = g
				if k.trailing {
					trailing = append(trailing, g)
				} else {
					leading = append(leading, g)
				}
			}
			g.Entries = append(g.Entries, cloneEntry(e))
		}

		for _, g := range append(leading, trailing...) {
			if !yield(*g) {
				return
			}
		}
	}
}
