package cli

import (
	"fmt"
	"slices"

	"github.com/ariel-frischer/whatsnew/internal/changelog"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var openCmd = &cobra.Command{
	Use:   "open",
	Short: "Open the what's new panel and mark everything as seen",
	Long: `Open the what's new panel.

Opening acknowledges the latest version: the badge drops to zero and stays
there until a newer version is published. Entries that were new when the
panel opened keep their marker in this rendering.`,
	Example: `  whatsnew open
  whatsnew open --plain`,
	Args: cobra.NoArgs,
	RunE: runOpen,
}

func init() {
	openCmd.GroupID = GroupChangelog
	rootCmd.AddCommand(openCmd)

	openCmd.Flags().Bool("summary", false, "Show titles only")
}

func runOpen(cmd *cobra.Command, _ []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	summary, _ := cmd.Flags().GetBool("summary")

	before := s.panel.Snapshot()
	s.panel.Open()
	defer s.panel.Close()

	out := cmd.OutOrStdout()
	if before.CurrentVersion == "" && len(before.Groups) == 0 {
		fmt.Fprintln(out, "No changelog entries found.")
		return nil
	}

	title := "What's new"
	if before.CurrentVersion != "" {
		title = "What's new in " + changelog.VersionLabel(before.CurrentVersion)
	}
	if before.HasUnread {
		title += fmt.Sprintf(" (%d new %s)", before.UnreadCount, pluralize(before.UnreadCount, "version", "versions"))
	}
	if s.cfg.Plain {
		fmt.Fprintf(out, "# %s\n\n", title)
	} else {
		fmt.Fprintf(out, "%s\n\n", color.New(color.FgCyan, color.Bold).Sprint(title))
	}

	isUnread := func(e changelog.Entry) bool { return before.Unread[e.ID] }
	if err := renderGroups(cmd, slices.Values(before.Groups), isUnread, !summary, s.cfg.Plain); err != nil {
		return err
	}

	if !before.HasUnread {
		fmt.Fprintln(out, "\nYou're up to date.")
	}
	return nil
}
