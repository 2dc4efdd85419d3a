// Package cli implements the changelogtxt command line: check-tag, check-format,
// compare, update, show, version and config. Every command is a thin layer that resolves
// the changelog path, calls into internal/changelog and reports the outcome.
package cli

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	clierrors "github.com/ariel-frischer/changelogtxt/internal/errors"
	"github.com/spf13/cobra"
)

// Command groups for organizing help output
const (
	GroupChangelog = "changelog"
	GroupSettings  = "settings"
)

var (
	fileFlag    string
	configFlag  string
	verboseFlag bool
	plainFlag   bool
	outputFlag  string
)

var rootCmd = &cobra.Command{
	Use:   "changelogtxt",
	Short: "Parse, validate and update CHANGELOG.txt files",
	Long: `changelogtxt helps you manage a plain-text CHANGELOG.txt.

A CHANGELOG.txt is a list of version sections. Each section starts with a version
header line followed by "- " bullets. Bullets before the first header belong to
the unreleased section.

  v1.0.1
  - Fixed bug in parser

  v1.0.0
  - Initial release

Run 'changelogtxt COMMAND --help' for information about a command.`,
	Example: `  # Record an unreleased change, then release it
  changelogtxt update -m "Add --watch to check-format"
  changelogtxt update --tag 1.2.0

  # Validate the changelog and the tag being released
  changelogtxt check-format
  changelogtxt check-tag --tag v1.2.0

  # Show what changed between two changelogs
  changelogtxt compare old/CHANGELOG.txt CHANGELOG.txt`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return clierrors.MissingSubcommand()
	},
}

func init() {
	rootCmd.AddGroup(
		&cobra.Group{ID: GroupChangelog, Title: "Changelog Commands:"},
		&cobra.Group{ID: GroupSettings, Title: "Settings Commands:"},
	)

	rootCmd.PersistentFlags().StringVarP(&fileFlag, "file", "f", "", "Changelog file, or a directory to search for it (default: current directory)")
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Project config file (default: .changelogtxt.yml)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Log debug information to stderr")
	rootCmd.PersistentFlags().BoolVar(&plainFlag, "plain", false, "Plain output without colors")
	rootCmd.PersistentFlags().StringVarP(&outputFlag, "output", "o", "", "Output format: text, json or yaml (default from config)")

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return clierrors.NewArgumentErrorWithUsage(err.Error(), cmd.UseLine(),
			"Run 'changelogtxt "+cmd.Name()+" --help' for the accepted flags")
	})
}

type loggerKey struct{}

func withLogger(ctx context.Context, logger *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// loggerFrom returns the logger injected by ExecuteContext, or a stderr logger.
func loggerFrom(ctx context.Context) *log.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(loggerKey{}).(*log.Logger); ok && l != nil {
			return l
		}
	}
	return log.New(os.Stderr, "changelogtxt: ", 0)
}

// Execute runs the root command until it completes or the process is interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return ExecuteContext(ctx, log.New(os.Stderr, "changelogtxt: ", 0))
}

// ExecuteContext runs the root command with the given logger for debug output.
// Command errors are printed to the command's stderr and returned.
func ExecuteContext(ctx context.Context, logger *log.Logger) error {
	cmd, err := rootCmd.ExecuteContextC(withLogger(ctx, logger))
	if err == nil {
		return nil
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return err
	}

	if cmd == nil {
		cmd = rootCmd
	}
	clierrors.FprintError(cmd.ErrOrStderr(), Classify(err), plainFlag)
	return err
}
