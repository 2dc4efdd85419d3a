package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/ariel-frischer/changelogtxt/internal/changelog"
	clierrors "github.com/ariel-frischer/changelogtxt/internal/errors"
	"github.com/ariel-frischer/changelogtxt/internal/git"
	"github.com/spf13/cobra"
)

var (
	checkTagFlag    string
	checkTagGitFlag bool
)

var checkTagCmd = &cobra.Command{
	Use:   "check-tag",
	Short: "Verify that the changelog has a section for a tag",
	Long: `Verify that the changelog has a section for a tag.

Tags are compared as versions, so "1.2.0" matches a "v1.2.0" header. Without
--tag, the tag pointing at the current git HEAD is checked, which makes the
command suitable for release pipelines.

With --git the tag must also exist in the git repository containing the
changelog.`,
	Example: `  changelogtxt check-tag --tag v1.2.0
  changelogtxt check-tag -t 1.2.0 -f docs/
  changelogtxt check-tag --git          # tag at HEAD, cross-checked with git`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runCheckTag,
}

func init() {
	checkTagCmd.GroupID = GroupChangelog
	rootCmd.AddCommand(checkTagCmd)

	checkTagCmd.Flags().StringVarP(&checkTagFlag, "tag", "t", "", "Tag to check (default: the git tag at HEAD)")
	checkTagCmd.Flags().BoolVar(&checkTagGitFlag, "git", false, "Also require the tag to exist in the git repository")
}

func runCheckTag(cmd *cobra.Command, args []string) error {
	rt, err := loadRuntime(cmd)
	if err != nil {
		return err
	}

	path, err := rt.changelogPath()
	if err != nil {
		return err
	}
	repoDir := filepath.Dir(path)

	tag := checkTagFlag
	if tag == "" {
		tag, err = tagAtHead(repoDir)
		if err != nil {
			return err
		}
		rt.logger.Printf("checking tag %s from HEAD", tag)
	}

	log, err := changelog.Load(path, rt.parseOptions()...)
	if err != nil {
		return err
	}

	entry, err := log.CheckTag(tag)
	if err != nil {
		return err
	}

	if checkTagGitFlag {
		if err := checkGitTag(rt, repoDir, entry.Version); err != nil {
			return err
		}
	}

	if rt.structured() {
		return writeStructured(cmd.OutOrStdout(), rt.cfg.Output, toEntryView(entry, rt.cfg.UnreleasedLabel))
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Tag validation for %s was successful (%d changes).\n", entry.Version, len(entry.Changes))
	return nil
}

// tagAtHead returns the tag pointing at HEAD of the repository containing dir.
func tagAtHead(dir string) (string, error) {
	if !git.IsRepository(dir) {
		return "", clierrors.NoTagAtHead()
	}
	tag, err := git.TagAtHead(dir)
	if errors.Is(err, git.ErrNoTagAtHead) {
		return "", clierrors.NoTagAtHead()
	}
	if err != nil {
		return "", fmt.Errorf("finding tag at HEAD: %w", err)
	}
	return tag, nil
}

// checkGitTag requires tag to exist in the repository containing dir.
func checkGitTag(rt *runtimeEnv, dir, tag string) error {
	root, err := git.RepositoryRoot(dir)
	if err != nil {
		cliErr := clierrors.NewRuntimeError(
			fmt.Sprintf("%s is not inside a git repository", dir),
			"Run check-tag from a git checkout",
			"Drop --git to check the changelog only",
		)
		cliErr.Err = err
		return cliErr
	}
	rt.logger.Printf("looking up tag %s in repository %s", tag, root)

	exists, err := git.TagExists(root, tag)
	if err != nil {
		return fmt.Errorf("checking git tags: %w", err)
	}
	if !exists {
		return clierrors.TagNotInRepository(tag)
	}
	return nil
}
