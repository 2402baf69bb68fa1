package cli

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/ariel-frischer/whatsnew/internal/build"
	"github.com/ariel-frischer/whatsnew/internal/changelog"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:     "version",
	Aliases: []string{"v"},
	Short:   "Display version information (v)",
	Long:    "Display version, commit, build date, Go version and embedded changelog version for whatsnew",
	Example: `  # Show version info
  whatsnew version

  # Plain output (for scripts)
  whatsnew version --plain`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		plain, _ := cmd.Flags().GetBool("plain")
		info := versionInfo()
		if plain {
			printPlainVersion(cmd.OutOrStdout(), info)
			return
		}
		printPrettyVersion(cmd.OutOrStdout(), info)
	},
}

func init() {
	versionCmd.GroupID = GroupSettings
	rootCmd.AddCommand(versionCmd)
}

type versionField struct {
	label string
	value string
}

func versionInfo() []versionField {
	embedded := "none"
	if cat, err := changelog.LoadEmbedded(); err == nil {
		if v, err := cat.LatestVersion(); err == nil {
			embedded = v
		}
	}

	return []versionField{
		{"Version", build.Version},
		{"Commit", truncateCommit(build.Commit)},
		{"Built", build.BuildDate},
		{"Go", runtime.Version()},
		{"Platform", fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)},
		{"Changelog", embedded},
	}
}

// printPlainVersion prints a simple version output for scripting
func printPlainVersion(w io.Writer, info []versionField) {
	fmt.Fprintf(w, "whatsnew %s\n", build.Version)
	for _, f := range info[1:] {
		fmt.Fprintf(w, "%s: %s\n", strings.ToLower(f.label), f.value)
	}
}

// printPrettyVersion prints the version info inside a box
func printPrettyVersion(w io.Writer, info []versionField) {
	yellow := color.New(color.FgYellow).SprintFunc()
	white := color.New(color.FgWhite, color.Bold).SprintFunc()

	const boxWidth = 44
	contentWidth := boxWidth - 4

	fmt.Fprintln(w, "╭"+strings.Repeat("─", boxWidth-2)+"╮")
	for _, item := range info {
		line := fmt.Sprintf("%12s    %s", item.label, item.value)
		pad := ""
		if n := len(line); n < contentWidth {
			pad = strings.Repeat(" ", contentWidth-n)
		}
		fmt.Fprintf(w, "│ %s    %s%s │\n", yellow(fmt.Sprintf("%12s", item.label)), white(item.value), pad)
	}
	fmt.Fprintln(w, "╰"+strings.Repeat("─", boxWidth-2)+"╯")
}

// truncateCommit shortens commit hash if it's too long
func truncateCommit(commit string) string {
	if len(commit) > 8 {
		return commit[:8]
	}
	return commit
}
