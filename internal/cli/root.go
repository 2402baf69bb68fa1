// Package cli implements the whatsnew command line.
package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	clierrors "github.com/ariel-frischer/whatsnew/internal/errors"
	"github.com/spf13/cobra"
)

// Command groups shown in help output.
const (
	GroupChangelog = "changelog"
	GroupSettings  = "settings"
)

var rootCmd = &cobra.Command{
	Use:   "whatsnew",
	Short: "Show what's new since you last looked",
	Long: `whatsnew tracks which changelog entries you have already seen.

The badge and the list only read the catalogue. Opening the panel with
'whatsnew open' is the only action that marks entries as seen; the last
acknowledged version is stored per profile so the badge survives restarts.`,
	Example: `  # Number of unread versions (for a shell prompt)
  whatsnew badge --plain

  # Browse the changelog grouped by release date
  whatsnew list --by date

  # Open the panel and mark everything as seen
  whatsnew open`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddGroup(
		&cobra.Group{ID: GroupChangelog, Title: "Changelog Commands:"},
		&cobra.Group{ID: GroupSettings, Title: "Settings Commands:"},
	)

	rootCmd.PersistentFlags().StringP("config", "c", "", "Project config file (default .whatsnew/config.yml)")
	rootCmd.PersistentFlags().Bool("plain", false, "Plain output without colors or glyphs")
	rootCmd.PersistentFlags().String("profile", "", "Read-state profile (overrides config)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return clierrors.ArgumentError(err.Error(), cmd.UseLine(),
			"Run '"+cmd.CommandPath()+" --help' for usage")
	})
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		plain, _ := rootCmd.PersistentFlags().GetBool("plain")
		clierrors.Fprint(rootCmd.ErrOrStderr(), err, !plain)
	}
	return exitCodeFor(err)
}
