package cli

import (
	"fmt"
	"io"

	"github.com/ariel-frischer/changelogtxt/internal/changelog"
	clierrors "github.com/ariel-frischer/changelogtxt/internal/errors"
	"github.com/ariel-frischer/changelogtxt/internal/watch"
	"github.com/spf13/cobra"
)

var checkFormatWatchFlag bool

var checkFormatCmd = &cobra.Command{
	Use:   "check-format",
	Short: "Verify that the changelog has the correct format",
	Long: `Verify that the changelog has the correct format.

Every non-blank line must be a version header, a "- " bullet with text, or a
continuation of the bullet above it. The first offending line is reported.

With --watch the changelog is checked again every time it is saved, until
interrupted. Format errors are reported but do not stop the watch.`,
	Example: `  changelogtxt check-format
  changelogtxt check-format -f docs/CHANGELOG.txt
  changelogtxt check-format --watch`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runCheckFormat,
}

func init() {
	checkFormatCmd.GroupID = GroupChangelog
	rootCmd.AddCommand(checkFormatCmd)

	checkFormatCmd.Flags().BoolVarP(&checkFormatWatchFlag, "watch", "w", false, "Check again whenever the file changes")
}

func runCheckFormat(cmd *cobra.Command, args []string) error {
	rt, err := loadRuntime(cmd)
	if err != nil {
		return err
	}

	path, err := rt.changelogPath()
	if err != nil {
		return err
	}

	if !checkFormatWatchFlag {
		return checkFormat(cmd.OutOrStdout(), rt, path)
	}
	return watchFormat(cmd, rt, path)
}

// checkFormat parses the changelog at path and reports a one-line summary.
func checkFormat(w io.Writer, rt *runtimeEnv, path string) error {
	log, err := changelog.Load(path, rt.parseOptions()...)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Changelog format validation was successful: %s (%d versions, %d changes)\n",
		path, len(log.Releases()), log.ChangeCount())
	return nil
}

func watchFormat(cmd *cobra.Command, rt *runtimeEnv, path string) error {
	watcher, err := watch.New(path, watch.WithDebugLogger(rt.logger.Printf))
	if err != nil {
		return err
	}
	defer watcher.Close()

	report := func(path string) {
		if err := checkFormat(cmd.OutOrStdout(), rt, path); err != nil {
			clierrors.FprintError(cmd.ErrOrStderr(), Classify(err), rt.cfg.Plain)
		}
	}

	report(path)
	fmt.Fprintf(cmd.ErrOrStderr(), "Watching %s for changes (Ctrl+C to stop)\n", path)
	return watcher.Watch(cmd.Context(), report)
}
