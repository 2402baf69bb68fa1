package changelog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromReader(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		input       string
		wantErr     bool
		wantErrMsg  string
		wantEntries int
	}{
		"valid catalogue": {
			input: `entries:
  - id: a
    version: "2.1.0"
    date: "2025-01-02"
    type: feature
    title: Something new
    icon: sparkles
    details: [one, two]
    doc_link: https://docs.example.com
    doc_title: Docs
  - id: b
    version: "2.0.0"
    type: fix
    title: Something fixed
`,
			wantEntries: 2,
		},
		"empty document": {
			input:       "",
			wantEntries: 0,
		},
		"no entries": {
			input:       "entries: []\n",
			wantEntries: 0,
		},
		"malformed version is kept": {
			input: `entries:
  - id: a
    version: "next"
    type: improvement
    title: Coming soon
`,
			wantEntries: 1,
		},
		"duplicate versions allowed": {
			input: `entries:
  - id: a
    version: "2.1"
    type: feature
    title: A
  - id: b
    version: "2.1"
    type: fix
    title: B
`,
			wantEntries: 2,
		},
		"invalid yaml": {
			input:      "entries: [",
			wantErr:    true,
			wantErrMsg: "parsing changelog YAML",
		},
		"missing id": {
			input: `entries:
  - version: "1.0.0"
    type: feature
    title: A
`,
			wantErr:    true,
			wantErrMsg: "entries[0].id: required field is empty",
		},
		"missing version": {
			input: `entries:
  - id: a
    type: feature
    title: A
`,
			wantErr:    true,
			wantErrMsg: "entries[0].version: required field is empty",
		},
		"missing title": {
			input: `entries:
  - id: a
    version: "1.0.0"
    type: feature
`,
			wantErr:    true,
			wantErrMsg: "entries[0].title: required field is empty",
		},
		"unknown type": {
			input: `entries:
  - id: a
    version: "1.0.0"
    type: security
    title: A
`,
			wantErr:    true,
			wantErrMsg: `invalid type "security"`,
		},
		"bad date": {
			input: `entries:
  - id: a
    version: "1.0.0"
    date: "01/02/2025"
    type: fix
    title: A
`,
			wantErr:    true,
			wantErrMsg: "invalid date format",
		},
		"duplicate id": {
			input: `entries:
  - id: a
    version: "1.1.0"
    type: fix
    title: A
  - id: a
    version: "1.0.0"
    type: fix
    title: B
`,
			wantErr:    true,
			wantErrMsg: `entries[1].id: duplicate id "a"`,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			cat, err := LoadFromReader(strings.NewReader(tt.input))
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErrMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantEntries, cat.Len())
		})
	}
}

func TestLoadFromReader_PassesPresentationThrough(t *testing.T) {
	t.Parallel()

	input := `entries:
  - id: a
    version: "2.1.0"
    type: feature
    title: Title
    description: Longer text
    icon: sparkles
    details: [one, two]
    screens: [a.png]
    doc_link: https://docs.example.com
    doc_title: Docs
`
	cat, err := LoadFromReader(strings.NewReader(input))
	require.NoError(t, err)

	e, err := cat.Entry("a")
	require.NoError(t, err)
	assert.Equal(t, Entry{
		ID:          "a",
		Version:     "2.1.0",
		Type:        TypeFeature,
		Title:       "Title",
		Description: "Longer text",
		Icon:        "sparkles",
		Details:     []string{"one", "two"},
		Screens:     []string{"a.png"},
		DocLink:     "https://docs.example.com",
		DocTitle:    "Docs",
	}, e)
}

func TestLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "changelog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`entries:
  - id: a
    version: "1.0.0"
    type: fix
    title: A
`), 0o644))

	cat, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1, cat.Len())

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "opening changelog file")
}

func TestIsValidationError(t *testing.T) {
	t.Parallel()

	_, err := LoadFromReader(strings.NewReader("entries:\n  - id: a\n"))
	require.Error(t, err)
	assert.True(t, IsValidationError(err))

	_, err = LoadFromReader(strings.NewReader("entries: ["))
	require.Error(t, err)
	assert.False(t, IsValidationError(err))
}
