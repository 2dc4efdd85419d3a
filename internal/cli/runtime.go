package cli

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/ariel-frischer/changelogtxt/internal/changelog"
	"github.com/ariel-frischer/changelogtxt/internal/config"
	clierrors "github.com/ariel-frischer/changelogtxt/internal/errors"
	"github.com/ariel-frischer/changelogtxt/internal/fsutil"
	"github.com/ariel-frischer/changelogtxt/internal/git"
	"github.com/spf13/cobra"
)

// runtimeEnv is the per-invocation state shared by the commands: the effective
// configuration after flag overrides and the logger for debug output.
type runtimeEnv struct {
	cfg    *config.Configuration
	logger *log.Logger
}

// loadRuntime loads configuration, applies the persistent flags on top of it and
// selects the logger. Debug output is discarded unless verbose is set.
func loadRuntime(cmd *cobra.Command) (*runtimeEnv, error) {
	cfg, err := config.LoadWithOptions(config.LoadOptions{
		ProjectConfigPath: configFlag,
		WarningWriter:     cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, err
	}
	if err := applyFlagOverrides(cmd, cfg); err != nil {
		return nil, err
	}

	logger := log.New(io.Discard, "", 0)
	if cfg.Verbose {
		logger = loggerFrom(cmd.Context())
		git.SetDebugLogger(logger.Printf)
	} else {
		git.SetDebugLogger(nil)
	}

	logger.Printf("config: file_name=%s strict_continuation=%v output=%s",
		cfg.FileName, cfg.StrictContinuation, cfg.Output)
	return &runtimeEnv{cfg: cfg, logger: logger}, nil
}

// applyFlagOverrides copies explicitly set persistent flags into cfg.
func applyFlagOverrides(cmd *cobra.Command, cfg *config.Configuration) error {
	flags := cmd.Flags()
	if flags.Changed("verbose") {
		cfg.Verbose = verboseFlag
	}
	if flags.Changed("plain") {
		cfg.Plain = plainFlag
	}
	if flags.Changed("output") {
		output := strings.ToLower(strings.TrimSpace(outputFlag))
		switch output {
		case config.OutputText, config.OutputJSON, config.OutputYAML:
			cfg.Output = output
		default:
			return clierrors.NewArgumentError(
				fmt.Sprintf("invalid --output %q", outputFlag),
				"Use one of: text, json, yaml",
			)
		}
	}
	return nil
}

func (r *runtimeEnv) parseOptions() []changelog.ParseOption {
	if r.cfg.StrictContinuation {
		return []changelog.ParseOption{changelog.WithStrictContinuation()}
	}
	return nil
}

func (r *runtimeEnv) formatOptions() changelog.FormatOptions {
	return changelog.FormatOptions{
		Plain:           r.cfg.Plain,
		UnreleasedLabel: r.cfg.UnreleasedLabel,
	}
}

// structured reports whether the command should print JSON or YAML instead of text.
func (r *runtimeEnv) structured() bool {
	return r.cfg.Output != config.OutputText
}

// startPath returns --file, or the current directory when it is not set.
func startPath() string {
	if fileFlag == "" {
		return "."
	}
	return fileFlag
}

// changelogPath locates an existing changelog. A directory is searched for the
// configured file name.
func (r *runtimeEnv) changelogPath() (string, error) {
	path, err := fsutil.FindFile(startPath(), r.cfg.FileName)
	if err != nil {
		return "", err
	}
	r.logger.Printf("using changelog %s", path)
	return path, nil
}

// sourcePath resolves a compare argument: URLs are kept, paths are searched like --file.
func (r *runtimeEnv) sourcePath(source string) (string, error) {
	if changelog.IsRemote(source) {
		return source, nil
	}
	path, err := fsutil.FindFile(source, r.cfg.FileName)
	if err != nil {
		return "", err
	}
	r.logger.Printf("using changelog %s", path)
	return path, nil
}

// writablePath locates the changelog to update. When none exists yet, the path of the
// file to create is returned along with exists == false.
func (r *runtimeEnv) writablePath() (path string, exists bool, err error) {
	start := startPath()
	path, err = fsutil.FindFile(start, r.cfg.FileName)
	if err == nil {
		r.logger.Printf("using changelog %s", path)
		return path, true, nil
	}
	if !fsutil.IsNotFound(err) {
		return "", false, err
	}

	path = start
	if info, statErr := os.Stat(fsutil.ExpandHome(start)); statErr == nil && info.IsDir() {
		path = filepath.Join(start, r.cfg.FileName)
	}
	r.logger.Printf("no changelog found, creating %s", path)
	return path, false, nil
}
