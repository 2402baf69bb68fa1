package cli

import (
	"fmt"
	"iter"

	"github.com/ariel-frischer/whatsnew/internal/changelog"
	clierrors "github.com/ariel-frischer/whatsnew/internal/errors"
	"github.com/ariel-frischer/whatsnew/internal/whatsnew"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List changelog entries grouped by version (ls)",
	Long: `List changelog entries, newest first, with unread entries marked.

Entries are grouped by version by default. Entries whose version cannot be
parsed are listed last as unversioned. Listing never marks anything as seen;
use 'whatsnew open' for that.`,
	Example: `  whatsnew list
  whatsnew list --by date
  whatsnew list --details
  whatsnew list --format markdown > WHATS_NEW.md`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.GroupID = GroupChangelog
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().String("by", string(whatsnew.ByVersion), "Group by 'version' or 'date'")
	listCmd.Flags().Bool("details", false, "Include descriptions, details and doc links")
	listCmd.Flags().String("format", "text", "Output format: text or markdown")
}

func runList(cmd *cobra.Command, _ []string) error {
	by, _ := cmd.Flags().GetString("by")
	details, _ := cmd.Flags().GetBool("details")
	format, _ := cmd.Flags().GetString("format")

	grouping, err := parseGrouping(by)
	if err != nil {
		return err
	}
	if format != "text" && format != "markdown" {
		return clierrors.InvalidFormat(format)
	}

	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	s.panel.SetGrouping(grouping)

	out := cmd.OutOrStdout()
	if s.catalogue.Len() == 0 {
		fmt.Fprintln(out, "No changelog entries found.")
		return nil
	}

	if format == "markdown" {
		return changelog.RenderMarkdown(s.panel.Groups(), out)
	}
	return renderGroups(cmd, s.panel.Groups(), s.panel.IsUnread, details, s.cfg.Plain)
}

// renderGroups writes groups to the command's stdout in terminal format.
func renderGroups(cmd *cobra.Command, groups iter.Seq[changelog.Group], isUnread func(changelog.Entry) bool, details, plain bool) error {
	opts := changelog.FormatOptions{
		Plain:    plain,
		IsUnread: isUnread,
		Details:  details,
	}
	if err := changelog.FormatGroups(groups, cmd.OutOrStdout(), opts); err != nil {
		return fmt.Errorf("formatting entries: %w", err)
	}
	return nil
}

func parseGrouping(by string) (whatsnew.Grouping, error) {
	switch whatsnew.Grouping(by) {
	case whatsnew.ByVersion:
		return whatsnew.ByVersion, nil
	case whatsnew.ByDate:
		return whatsnew.ByDate, nil
	default:
		return "", clierrors.InvalidGrouping(by)
	}
}
