package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ariel-frischer/changelogtxt/internal/config"
	clierrors "github.com/ariel-frischer/changelogtxt/internal/errors"
	"github.com/spf13/cobra"
)

var (
	configInitUserFlag  bool
	configInitForceFlag bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage changelogtxt configuration",
	Long: `Manage changelogtxt configuration.

Configuration is merged from, lowest to highest priority: built-in defaults,
the user config (~/.config/changelogtxt/config.yml), the project config
(.changelogtxt.yml or .changelogtxt.json) and CHANGELOGTXT_* environment
variables. Command line flags override all of them.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display the effective configuration",
	Example: `  changelogtxt config show
  changelogtxt config show -o json
  CHANGELOGTXT_OUTPUT=yaml changelogtxt config show`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := loadRuntime(cmd)
		if err != nil {
			return err
		}
		format := config.OutputYAML
		if rt.cfg.Output == config.OutputJSON {
			format = config.OutputJSON
		}
		return writeStructured(cmd.OutOrStdout(), format, rt.cfg)
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a commented default configuration file",
	Long: `Write a commented default configuration file.

The project config (.changelogtxt.yml, or the --config path) is written by
default; --user writes the user config instead. An existing file is only
replaced with --force.`,
	Example: `  changelogtxt config init
  changelogtxt config init --user
  changelogtxt config init --force`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runConfigInit,
}

func init() {
	configCmd.GroupID = GroupSettings
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)

	configInitCmd.Flags().BoolVar(&configInitUserFlag, "user", false, "Write the user config instead of the project config")
	configInitCmd.Flags().BoolVar(&configInitForceFlag, "force", false, "Overwrite an existing config file")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path, err := configInitPath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(path); err == nil && !configInitForceFlag {
		return clierrors.NewArgumentError(
			fmt.Sprintf("config file already exists: %s", path),
			"Re-run with --force to overwrite it",
		)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(config.GetDefaultConfigTemplate()), 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
	return nil
}

func configInitPath() (string, error) {
	if configInitUserFlag {
		path, err := config.UserConfigPath()
		if err != nil {
			return "", fmt.Errorf("locating user config: %w", err)
		}
		return path, nil
	}
	if configFlag != "" {
		return configFlag, nil
	}
	return config.ProjectConfigPath(), nil
}
