package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/ariel-frischer/changelogtxt/internal/build"
	"github.com/ariel-frischer/changelogtxt/internal/changelog"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// SourceURL is the project source URL
const SourceURL = "https://github.com/ariel-frischer/changelogtxt"

var (
	versionChangelogFlag bool
	versionLastFlag      int
)

var versionCmd = &cobra.Command{
	Use:     "version",
	Aliases: []string{"v"},
	Short:   "Display version information",
	Long: `Display version, commit, build date and platform of this binary.

With --changelog the release notes embedded in the binary are shown instead.`,
	Example: `  changelogtxt version
  changelogtxt version --plain
  changelogtxt version --changelog --last 2`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if versionChangelogFlag {
			return printEmbeddedChangelog(cmd)
		}
		if plainFlag {
			printPlainVersion(cmd.OutOrStdout())
		} else {
			printPrettyVersion(cmd.OutOrStdout())
		}
		return nil
	},
}

func init() {
	versionCmd.GroupID = GroupSettings
	rootCmd.AddCommand(versionCmd)

	versionCmd.Flags().BoolVar(&versionChangelogFlag, "changelog", false, "Show the changelog embedded in this binary")
	versionCmd.Flags().IntVar(&versionLastFlag, "last", 5, "Number of sections shown with --changelog (0 = all)")
}

// printPlainVersion prints a simple version output for scripting
func printPlainVersion(w io.Writer) {
	fmt.Fprintf(w, "changelogtxt %s\n", build.Version)
	fmt.Fprintf(w, "commit: %s\n", build.Commit)
	fmt.Fprintf(w, "built: %s\n", build.BuildDate)
	fmt.Fprintf(w, "go: %s\n", runtime.Version())
	fmt.Fprintf(w, "platform: %s\n", build.Platform())
}

// printPrettyVersion prints labeled version output
func printPrettyVersion(w io.Writer) {
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()

	fmt.Fprintf(w, "%s %s\n\n", cyan("changelogtxt"), build.Version)

	info := []struct {
		label string
		value string
	}{
		{"Commit", build.ShortCommit()},
		{"Built", build.BuildDate},
		{"Go", runtime.Version()},
		{"Platform", build.Platform()},
		{"Source", SourceURL},
	}
	for _, item := range info {
		fmt.Fprintf(w, "  %s  %s\n", yellow(fmt.Sprintf("%-8s", item.label)), item.value)
	}
}

func printEmbeddedChangelog(cmd *cobra.Command) error {
	log, err := changelog.LoadEmbedded()
	if err != nil {
		return fmt.Errorf("loading embedded changelog: %w", err)
	}
	return changelog.FormatTerminal(visibleEntries(log, versionLastFlag), cmd.OutOrStdout(),
		changelog.FormatOptions{Plain: plainFlag})
}
