package cli

import (
	"fmt"

	"github.com/ariel-frischer/changelogtxt/internal/changelog"
	"github.com/spf13/cobra"
)

var showLastFlag int

var showCmd = &cobra.Command{
	Use:   "show [version]",
	Short: "Display changelog sections",
	Long: `Display changelog sections.

By default every section is shown, newest first, as written in the file. Use a
version argument to show one section, or --last to limit the number of
sections. "unreleased" selects the unreleased section.`,
	Example: `  changelogtxt show               # Show every section
  changelogtxt show v1.2.0        # Show one version
  changelogtxt show 1.2.0         # Same (v prefix optional)
  changelogtxt show unreleased    # Show unreleased changes
  changelogtxt show --last 3      # Show the 3 newest sections
  changelogtxt show -o yaml       # Structured output`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         runShow,
}

func init() {
	showCmd.GroupID = GroupChangelog
	rootCmd.AddCommand(showCmd)

	showCmd.Flags().IntVarP(&showLastFlag, "last", "n", 0, "Number of sections to show (0 = all)")
}

func runShow(cmd *cobra.Command, args []string) error {
	rt, err := loadRuntime(cmd)
	if err != nil {
		return err
	}

	path, err := rt.changelogPath()
	if err != nil {
		return err
	}

	log, err := changelog.Load(path, rt.parseOptions()...)
	if err != nil {
		return err
	}

	if len(args) == 1 {
		return showVersion(cmd, rt, log, args[0])
	}
	return showEntries(cmd, rt, visibleEntries(log, showLastFlag))
}

func showVersion(cmd *cobra.Command, rt *runtimeEnv, log *changelog.Changelog, tag string) error {
	entry, err := log.Get(tag)
	if err != nil {
		if !changelog.IsValidationError(err) {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Version %q not found.\n\n", tag)
		fmt.Fprintf(cmd.ErrOrStderr(), "Available versions:\n")
		for _, ver := range log.ListVersions() {
			fmt.Fprintf(cmd.ErrOrStderr(), "  %s\n", ver)
		}
		return NewExitError(ExitFailure)
	}

	if rt.structured() {
		return writeStructured(cmd.OutOrStdout(), rt.cfg.Output, toEntryView(entry, rt.cfg.UnreleasedLabel))
	}
	return changelog.FormatEntry(entry, cmd.OutOrStdout(), rt.formatOptions())
}

func showEntries(cmd *cobra.Command, rt *runtimeEnv, entries []changelog.VersionEntry) error {
	if rt.structured() {
		return writeStructured(cmd.OutOrStdout(), rt.cfg.Output, toEntryViews(entries, rt.cfg.UnreleasedLabel))
	}
	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No changelog entries found.")
		return nil
	}
	return changelog.FormatTerminal(entries, cmd.OutOrStdout(), rt.formatOptions())
}

// visibleEntries returns the sections worth showing: an empty unreleased section is
// skipped and at most last sections are kept when last is positive.
func visibleEntries(log *changelog.Changelog, last int) []changelog.VersionEntry {
	var entries []changelog.VersionEntry
	for _, e := range log.Entries {
		if e.IsUnreleased() && len(e.Changes) == 0 {
			continue
		}
		entries = append(entries, e)
	}
	if last > 0 && len(entries) > last {
		entries = entries[:last]
	}
	return entries
}
