package cli

import (
	"fmt"
	"io"

	"github.com/ariel-frischer/whatsnew/internal/changelog"
	"github.com/ariel-frischer/whatsnew/internal/whatsnew"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var badgeCmd = &cobra.Command{
	Use:   "badge",
	Short: "Print the unread badge",
	Long: `Print how many versions were published since the panel was last opened.

The badge never marks anything as seen. Use --dot to print only a has-unread
indicator, which stays short when many versions are unread.`,
	Example: `  # Count for a shell prompt
  whatsnew badge --plain

  # Exit with status 2 when there is something new
  whatsnew badge --check`,
	Args: cobra.NoArgs,
	RunE: runBadge,
}

func init() {
	badgeCmd.GroupID = GroupChangelog
	rootCmd.AddCommand(badgeCmd)

	badgeCmd.Flags().Bool("dot", false, "Print only a has-unread indicator")
	badgeCmd.Flags().Bool("check", false, "Exit with status 2 when unread entries exist")
}

func runBadge(cmd *cobra.Command, _ []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	dot, _ := cmd.Flags().GetBool("dot")
	check, _ := cmd.Flags().GetBool("check")

	count := s.panel.UnreadCount()
	if err := writeBadge(cmd.OutOrStdout(), count, dot, s.cfg.Plain); err != nil {
		return err
	}

	if check && count > 0 {
		return NewExitError(ExitHasUnread)
	}
	return nil
}

// writeBadge renders the badge for count unread versions.
func writeBadge(w io.Writer, count int, dot, plain bool) error {
	var err error
	switch {
	case plain && dot:
		if count > 0 {
			_, err = fmt.Fprintln(w, "*")
		} else {
			_, err = fmt.Fprintln(w)
		}
	case plain:
		_, err = fmt.Fprintln(w, count)
	case count == 0:
		_, err = fmt.Fprintln(w, color.New(color.Faint).Sprint("✓ up to date"))
	case dot:
		_, err = fmt.Fprintln(w, color.New(color.FgCyan, color.Bold).Sprint("●"))
	default:
		_, err = fmt.Fprintf(w, "%s %s\n",
			color.New(color.FgCyan, color.Bold).Sprint("●"),
			fmt.Sprintf("%d new %s", count, pluralize(count, "version", "versions")))
	}
	return err
}

// badgeLine is the one-line status printed by watch mode.
func badgeLine(v whatsnew.View) string {
	if v.CurrentVersion == "" {
		return "no versioned entries"
	}
	if !v.HasUnread {
		return changelog.VersionLabel(v.CurrentVersion) + ": up to date"
	}
	return fmt.Sprintf("%s: %d new %s", changelog.VersionLabel(v.CurrentVersion), v.UnreadCount,
		pluralize(v.UnreadCount, "version", "versions"))
}

func pluralize(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
