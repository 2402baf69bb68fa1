package changelog

import (
	"errors"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(id, version string) Entry {
	return Entry{ID: id, Version: version, Type: TypeFeature, Title: "Entry " + id}
}

func groupIDs(groups []Group) map[string][]string {
	out := make(map[string][]string, len(groups))
	for _, g := range groups {
		for _, e := range g.Entries {
			out[g.Key] = append(out[g.Key], e.ID)
		}
	}
	return out
}

func TestLatestVersion(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		entries []Entry
		want    string
		wantErr error
	}{
		"first entry wins": {
			entries: []Entry{entry("a", "3.0"), entry("b", "2.5")},
			want:    "3.0",
		},
		"not re-sorted": {
			entries: []Entry{entry("a", "1.0.0"), entry("b", "2.0.0")},
			want:    "1.0.0",
		},
		"malformed leading entry skipped": {
			entries: []Entry{entry("a", "next"), entry("b", "1.9.0")},
			want:    "1.9.0",
		},
		"empty catalogue": {
			entries: nil,
			wantErr: ErrEmptyCatalogue,
		},
		"only malformed": {
			entries: []Entry{entry("a", "soon")},
			wantErr: ErrEmptyCatalogue,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := NewCatalogue(tt.entries).LatestVersion()
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLatestVersion_NilCatalogue(t *testing.T) {
	t.Parallel()

	var c *Catalogue
	_, err := c.LatestVersion()
	assert.ErrorIs(t, err, ErrEmptyCatalogue)
	assert.Equal(t, 0, c.Len())
}

func TestGroupByVersion_Stable(t *testing.T) {
	t.Parallel()

	cat := NewCatalogue([]Entry{entry("A", "2.1"), entry("B", "2.1"), entry("C", "2.0")})

	groups := slices.Collect(cat.GroupByVersion())
	require.Len(t, groups, 2)

	assert.Equal(t, "2.1", groups[0].Key)
	assert.Equal(t, "v2.1", groups[0].Label)
	assert.Equal(t, []string{"A", "B"}, []string{groups[0].Entries[0].ID, groups[0].Entries[1].ID})

	assert.Equal(t, "2.0", groups[1].Key)
	require.Len(t, groups[1].Entries, 1)
	assert.Equal(t, "C", groups[1].Entries[0].ID)
}

func TestGroupByVersion(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		entries  []Entry
		wantKeys []string
		wantIDs  map[string][]string
	}{
		"empty": {
			entries:  nil,
			wantKeys: nil,
			wantIDs:  map[string][]string{},
		},
		"equivalent spellings share a group": {
			entries:  []Entry{entry("a", "2.1"), entry("b", "v2.1.0"), entry("c", "2.0")},
			wantKeys: []string{"2.1", "2.0"},
			wantIDs:  map[string][]string{"2.1": {"a", "b"}, "2.0": {"c"}},
		},
		"non-consecutive equal versions are joined": {
			entries:  []Entry{entry("a", "3.0"), entry("b", "2.0"), entry("c", "3.0")},
			wantKeys: []string{"3.0", "2.0"},
			wantIDs:  map[string][]string{"3.0": {"a", "c"}, "2.0": {"b"}},
		},
		"malformed surfaced at the end": {
			entries:  []Entry{entry("a", "draft"), entry("b", "2.0"), entry("c", "draft"), entry("d", "1.0")},
			wantKeys: []string{"2.0", "1.0", "draft"},
			wantIDs:  map[string][]string{"2.0": {"b"}, "1.0": {"d"}, "draft": {"a", "c"}},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			groups := slices.Collect(NewCatalogue(tt.entries).GroupByVersion())

			var keys []string
			for _, g := range groups {
				keys = append(keys, g.Key)
			}
			assert.Equal(t, tt.wantKeys, keys)
			assert.Equal(t, tt.wantIDs, groupIDs(groups))
		})
	}
}

func TestGroupByVersion_MalformedFlag(t *testing.T) {
	t.Parallel()

	groups := slices.Collect(NewCatalogue([]Entry{entry("a", "??"), entry("b", "1.0")}).GroupByVersion())
	require.Len(t, groups, 2)
	assert.False(t, groups[0].Malformed)
	assert.True(t, groups[1].Malformed)
}

func TestGroupByVersion_Restartable(t *testing.T) {
	t.Parallel()

	cat := NewCatalogue([]Entry{entry("a", "2.0"), entry("b", "1.0")})
	seq := cat.GroupByVersion()

	first := slices.Collect(seq)
	second := slices.Collect(seq)
	assert.Equal(t, first, second)

	// Stopping early must not panic and yields only what was asked for.
	var seen int
	for range seq {
		seen++
		break
	}
	assert.Equal(t, 1, seen)
}

func TestGroupByVersion_DoesNotExposeInternals(t *testing.T) {
	t.Parallel()

	e := entry("a", "1.0")
	e.Details = []string{"original"}
	cat := NewCatalogue([]Entry{e})

	groups := slices.Collect(cat.GroupByVersion())
	groups[0].Entries[0].Details[0] = "changed"

	got, err := cat.Entry("a")
	require.NoError(t, err)
	assert.Equal(t, []string{"original"}, got.Details)
}

func TestGroupByDate(t *testing.T) {
	t.Parallel()

	a := entry("a", "2.1")
	a.Date = "2025-02-01"
	b := entry("b", "2.0")
	b.Date = "2025-02-01"
	c := entry("c", "1.0")

	groups := slices.Collect(NewCatalogue([]Entry{a, b, c}).GroupByDate())
	require.Len(t, groups, 2)
	assert.Equal(t, "2025-02-01", groups[0].Key)
	assert.Len(t, groups[0].Entries, 2)
	assert.Equal(t, "", groups[1].Key)
	assert.Equal(t, "Undated", groups[1].Label)
}

func TestVersions(t *testing.T) {
	t.Parallel()

	cat := NewCatalogue([]Entry{
		entry("a", "3.0"), entry("b", "3.0.0"), entry("c", "bad"), entry("d", "2.5"),
	})
	assert.Equal(t, []string{"3.0.0", "2.5.0"}, cat.Versions())
	assert.Len(t, cat.Malformed(), 1)
}

func TestEntry(t *testing.T) {
	t.Parallel()

	cat := NewCatalogue([]Entry{entry("a", "1.0")})

	got, err := cat.Entry("a")
	require.NoError(t, err)
	assert.Equal(t, "a", got.ID)

	_, err = cat.Entry("missing")
	var notFound *EntryNotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "missing", notFound.ID)
}

func TestWith(t *testing.T) {
	t.Parallel()

	base := NewCatalogue([]Entry{entry("a", "3.0"), entry("b", "2.5")})
	next := base.With(entry("c", "3.1"))

	latest, err := next.LatestVersion()
	require.NoError(t, err)
	assert.Equal(t, "3.1", latest)
	assert.Equal(t, 3, next.Len())

	baseLatest, err := base.LatestVersion()
	require.NoError(t, err)
	assert.Equal(t, "3.0", baseLatest, "original catalogue is unchanged")
	assert.Equal(t, 2, base.Len())
}

func TestEntries_ReturnsCopy(t *testing.T) {
	t.Parallel()

	cat := NewCatalogue([]Entry{entry("a", "1.0")})
	entries := cat.Entries()
	entries[0].Title = "mutated"

	got, err := cat.Entry("a")
	require.NoError(t, err)
	assert.Equal(t, "Entry a", got.Title)
}
