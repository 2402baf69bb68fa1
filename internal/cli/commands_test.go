// Package cli tests the badge, list and open commands end to end against a
// file-backed changelog and real read-state backends.
// Related: internal/cli/badge.go, internal/cli/list.go, internal/cli/open.go
// Tags: cli, badge, list, open, read-state

package cli

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ariel-frischer/whatsnew/internal/readstate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBadge_FirstRunCountsEveryVersion(t *testing.T) {
	newTestEnv(t)

	out, _, err := executeCommand(t, "badge", "--plain")
	require.NoError(t, err)
	assert.Equal(t, "3\n", out)
}

func TestList_NeverAcknowledges(t *testing.T) {
	newTestEnv(t)

	out, _, err := executeCommand(t, "list", "--plain")
	require.NoError(t, err)

	want := "## v3.1.0 (2024-10-01)\n" +
		"* [feature] Export analyses\n" +
		"\n" +
		"## v3.0.0 (2024-09-01)\n" +
		"* [fix] Faster charts\n" +
		"\n" +
		"## v2.5.0 (2024-08-01)\n" +
		"* [improvement] Better filters\n"
	assert.Equal(t, want, out)

	out, _, err = executeCommand(t, "badge", "--plain")
	require.NoError(t, err)
	assert.Equal(t, "3\n", out, "listing must not change the badge")
}

func TestOpen_AcknowledgesAndPersists(t *testing.T) {
	env := newTestEnv(t)

	out, _, err := executeCommand(t, "open", "--plain")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "# What's new in v3.1.0 (3 new versions)\n"), out)
	assert.Contains(t, out, "* [feature] Export analyses\n", "entries new at open time keep their marker")
	assert.Contains(t, out, "    Download any analysis as CSV.\n")

	out, _, err = executeCommand(t, "badge", "--plain")
	require.NoError(t, err)
	assert.Equal(t, "0\n", out)

	store := readstate.NewFileStore(env.stateDir, "default")
	version, ok, err := store.Load()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "3.1.0", version)

	out, _, err = executeCommand(t, "open", "--plain")
	require.NoError(t, err)
	assert.Contains(t, out, "\nYou're up to date.\n")
	assert.Contains(t, out, "  [feature] Export analyses\n")
}

func TestOpen_NewReleaseBecomesUnread(t *testing.T) {
	env := newTestEnv(t)

	_, _, err := executeCommand(t, "open", "--plain")
	require.NoError(t, err)

	env.writeChangelog(t, `entries:
  - id: sharing
    version: "3.2.0"
    date: "2024-11-01"
    type: feature
    title: Share dashboards
`+strings.TrimPrefix(fixtureChangelog, "entries:\n"))

	out, _, err := executeCommand(t, "badge", "--plain")
	require.NoError(t, err)
	assert.Equal(t, "1\n", out)

	out, _, err = executeCommand(t, "list", "--plain")
	require.NoError(t, err)
	assert.Contains(t, out, "* [feature] Share dashboards\n")
	assert.Contains(t, out, "  [feature] Export analyses\n")
}

func TestOpen_SQLiteBackend(t *testing.T) {
	env := newTestEnv(t)
	t.Setenv("WHATSNEW_STATE_BACKEND", "sqlite")

	_, _, err := executeCommand(t, "open", "--plain", "--profile", "work")
	require.NoError(t, err)

	out, _, err := executeCommand(t, "badge", "--plain", "--profile", "work")
	require.NoError(t, err)
	assert.Equal(t, "0\n", out)

	out, _, err = executeCommand(t, "badge", "--plain", "--profile", "home")
	require.NoError(t, err)
	assert.Equal(t, "3\n", out, "profiles have independent read state")

	assert.FileExists(t, filepath.Join(env.stateDir, readstate.DatabaseFile))
}

func TestOpen_UnwritableStateStillAcknowledgesInSession(t *testing.T) {
	env := newTestEnv(t)

	// A regular file where the state directory should be makes every save fail.
	require.NoError(t, os.WriteFile(env.stateDir, []byte("x"), 0o644))
	t.Setenv("WHATSNEW_LOG_LEVEL", "warn")

	out, stderr, err := executeCommand(t, "open", "--plain")
	require.NoError(t, err, "storage failures are never fatal")
	assert.Contains(t, out, "What's new in v3.1.0")
	assert.Contains(t, stderr, "persisting read state failed")

	out, _, err = executeCommand(t, "badge", "--plain")
	require.NoError(t, err)
	assert.Equal(t, "3\n", out, "nothing was persisted, so the next session starts unread")
}

func TestBadge_Check(t *testing.T) {
	newTestEnv(t)

	_, _, err := executeCommand(t, "badge", "--plain", "--check")
	require.Error(t, err)
	assert.Equal(t, ExitHasUnread, exitCodeFor(err))

	_, _, err = executeCommand(t, "open", "--plain")
	require.NoError(t, err)

	_, _, err = executeCommand(t, "badge", "--plain", "--check")
	assert.NoError(t, err)
}

func TestWriteBadge(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		count int
		dot   bool
		want  string
	}{
		"plain count":          {count: 3, want: "3\n"},
		"plain zero":           {count: 0, want: "0\n"},
		"plain dot unread":     {count: 12, dot: true, want: "*\n"},
		"plain dot up to date": {count: 0, dot: true, want: "\n"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			require.NoError(t, writeBadge(&buf, tt.count, tt.dot, true))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestList_ByDateAndMarkdown(t *testing.T) {
	newTestEnv(t)

	out, _, err := executeCommand(t, "list", "--plain", "--by", "date")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "## 2024-10-01\n"), out)

	out, _, err = executeCommand(t, "list", "--format", "markdown")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "# What's new\n"), out)
	assert.Contains(t, out, "- **New feature**: Export analyses\n")
}

func TestList_InvalidFlags(t *testing.T) {
	newTestEnv(t)

	tests := map[string]struct {
		args []string
	}{
		"bad grouping": {args: []string{"list", "--by", "week"}},
		"bad format":   {args: []string{"list", "--format", "html"}},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, _, err := executeCommand(t, tt.args...)
			require.Error(t, err)
			assert.Equal(t, ExitInvalidArguments, exitCodeFor(err))
		})
	}
}

func TestSession_Errors(t *testing.T) {
	tests := map[string]struct {
		setup    func(t *testing.T, env *testEnv)
		wantCode int
	}{
		"invalid config value": {
			setup: func(t *testing.T, _ *testEnv) {
				t.Setenv("WHATSNEW_STATE_BACKEND", "redis")
			},
			wantCode: ExitConfigInvalid,
		},
		"changelog with duplicate ids": {
			setup: func(t *testing.T, env *testEnv) {
				env.writeChangelog(t, `entries:
  - id: same
    version: "1.0.0"
    title: One
  - id: same
    version: "1.1.0"
    title: Two
`)
			},
			wantCode: ExitChangelogInvalid,
		},
		"missing changelog file": {
			setup: func(t *testing.T, env *testEnv) {
				require.NoError(t, os.Remove(env.changelogPath))
			},
			wantCode: ExitChangelogInvalid,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			env := newTestEnv(t)
			tt.setup(t, env)

			_, _, err := executeCommand(t, "badge", "--plain")
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, exitCodeFor(err))
		})
	}
}

func TestBadge_EmbeddedSource(t *testing.T) {
	newTestEnv(t)
	t.Setenv("WHATSNEW_SOURCE", "embedded")
	t.Setenv("WHATSNEW_STATE_BACKEND", "memory")

	out, _, err := executeCommand(t, "badge", "--plain")
	require.NoError(t, err)
	assert.Equal(t, "6\n", out)
}

func TestBadge_RemoteSource(t *testing.T) {
	tests := map[string]struct {
		handler    http.HandlerFunc
		want       string
		wantStderr string
	}{
		"served catalogue": {
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(fixtureChangelog))
			},
			want: "3\n",
		},
		"server error falls back to embedded": {
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			want:       "6\n",
			wantStderr: "served changelog unavailable, using embedded",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			newTestEnv(t)
			server := httptest.NewServer(tt.handler)
			t.Cleanup(server.Close)

			t.Setenv("WHATSNEW_SOURCE", "remote")
			t.Setenv("WHATSNEW_REMOTE_URL", server.URL)
			t.Setenv("WHATSNEW_STATE_BACKEND", "memory")
			t.Setenv("WHATSNEW_LOG_LEVEL", "warn")

			out, stderr, err := executeCommand(t, "badge", "--plain")
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
			if tt.wantStderr != "" {
				assert.Contains(t, stderr, tt.wantStderr)
			}
		})
	}
}

func TestDoctor(t *testing.T) {
	tests := map[string]struct {
		setup    func(t *testing.T, env *testEnv)
		wantCode int
		want     []string
	}{
		"healthy file source": {
			setup:    func(*testing.T, *testEnv) {},
			wantCode: ExitSuccess,
			want:     []string{"✓ Changelog: 3 entries, latest v3.1.0\n", "✓ Read state: "},
		},
		"broken changelog": {
			setup: func(t *testing.T, env *testEnv) {
				env.writeChangelog(t, "entries: [")
			},
			wantCode: ExitFailure,
			want:     []string{"✗ Changelog: "},
		},
		"invalid config": {
			setup: func(t *testing.T, _ *testEnv) {
				t.Setenv("WHATSNEW_STATE_BACKEND", "redis")
			},
			wantCode: ExitConfigInvalid,
			want:     []string{"✗ Configuration: "},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			env := newTestEnv(t)
			tt.setup(t, env)

			out, _, err := executeCommand(t, "doctor", "--plain")
			assert.Equal(t, tt.wantCode, exitCodeFor(err))
			for _, want := range tt.want {
				assert.Contains(t, out, want)
			}
		})
	}
}

func TestOpen_PrefixedVersionTitle(t *testing.T) {
	env := newTestEnv(t)
	env.writeChangelog(t, `entries:
  - id: sharing
    version: "v3.2"
    type: feature
    title: Share dashboards
`)

	out, _, err := executeCommand(t, "open", "--plain")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "# What's new in v3.2 (1 new version)\n"), out)
	assert.NotContains(t, out, "vv3.2")
}
