package cli

import (
	"fmt"

	"github.com/ariel-frischer/changelogtxt/internal/changelog"
	"github.com/spf13/cobra"
)

var (
	updateTagFlag     string
	updateMessageFlag string
	updateForceFlag   bool
	updateDryRunFlag  bool
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Add a change to the changelog",
	Long: `Add a change to the changelog.

Without --tag (or with --tag unreleased) the message is added to the top of
the unreleased section.

With a --tag that is not in the changelog yet, a new release section is
created right after the unreleased section. It takes the message, if any,
followed by every unreleased change, and the unreleased section is emptied.

Released versions are protected: adding to an existing version requires
--force. The changelog is created when it does not exist.`,
	Example: `  changelogtxt update -m "Fix crash on empty input"
  changelogtxt update --tag 1.2.0                 # release the unreleased changes
  changelogtxt update -t 1.2.0 -m "Late fix" --force
  changelogtxt update -m "Draft" --dry-run        # print instead of writing`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runUpdate,
}

func init() {
	updateCmd.GroupID = GroupChangelog
	rootCmd.AddCommand(updateCmd)

	updateCmd.Flags().StringVarP(&updateTagFlag, "tag", "t", "", "Version to add the change to (default: unreleased)")
	updateCmd.Flags().StringVarP(&updateMessageFlag, "message", "m", "", "Change text")
	updateCmd.Flags().BoolVar(&updateForceFlag, "force", false, "Allow adding to an existing version")
	updateCmd.Flags().BoolVar(&updateDryRunFlag, "dry-run", false, "Print the updated changelog instead of writing it")
}

func runUpdate(cmd *cobra.Command, args []string) error {
	rt, err := loadRuntime(cmd)
	if err != nil {
		return err
	}

	path, exists, err := rt.writablePath()
	if err != nil {
		return err
	}

	log := changelog.New()
	if exists {
		log, err = changelog.Load(path, rt.parseOptions()...)
		if err != nil {
			return err
		}
	}

	updated, err := log.Update(updateTagFlag, updateMessageFlag, updateForceFlag)
	if err != nil {
		return err
	}

	if updateDryRunFlag {
		return changelog.Dump(updated, cmd.OutOrStdout())
	}

	if err := changelog.Save(updated, path); err != nil {
		return err
	}

	section := rt.cfg.UnreleasedLabel
	if !changelog.IsUnreleasedTag(updateTagFlag) {
		if entry, err := updated.CheckTag(updateTagFlag); err == nil {
			section = entry.Version
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Updated %s (%s)\n", path, section)
	return nil
}
