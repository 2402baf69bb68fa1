package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

const fixtureChangelog = `entries:
  - id: export
    version: "3.1.0"
    date: "2024-10-01"
    type: feature
    title: Export analyses
    description: Download any analysis as CSV.
  - id: charts
    version: "3.0.0"
    date: "2024-09-01"
    type: fix
    title: Faster charts
  - id: filters
    version: "2.5.0"
    date: "2024-08-01"
    type: improvement
    title: Better filters
`

// testEnv points every layer of configuration at a temp directory and a
// file-backed changelog. Tests using it run sequentially because rootCmd
// and the environment are process-global.
type testEnv struct {
	dir           string
	changelogPath string
	stateDir      string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dir := t.TempDir()
	env := &testEnv{
		dir:           dir,
		changelogPath: filepath.Join(dir, "changelog.yaml"),
		stateDir:      filepath.Join(dir, "state"),
	}
	env.writeChangelog(t, fixtureChangelog)

	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	t.Setenv("WHATSNEW_SOURCE", "file")
	t.Setenv("WHATSNEW_CHANGELOG_PATH", env.changelogPath)
	t.Setenv("WHATSNEW_STATE_DIR", env.stateDir)
	t.Setenv("WHATSNEW_STATE_BACKEND", "file")
	t.Setenv("WHATSNEW_LOG_LEVEL", "error")
	return env
}

func (e *testEnv) writeChangelog(t *testing.T, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(e.changelogPath, []byte(content), 0o644))
}

// executeCommand runs rootCmd with args and captures both output streams.
func executeCommand(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	resetFlags(rootCmd)
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err = rootCmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

// resetFlags restores every flag to its default so values set by one test
// don't leak into the next.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func findCommand(name string) *cobra.Command {
	for _, cmd := range rootCmd.Commands() {
		if cmd.Name() == name {
			return cmd
		}
	}
	return nil
}
