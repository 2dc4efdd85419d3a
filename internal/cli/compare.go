package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/ariel-frischer/changelogtxt/internal/changelog"
	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var compareDiffFlag bool

var compareCmd = &cobra.Command{
	Use:     "compare <source> <target>",
	Aliases: []string{"summarize-news"},
	Short:   "Compare two changelogs",
	Long: `Compare two changelogs section by section.

A section is reported when the other changelog has no identical section, so a
release whose changes were edited shows up on both sides. Sections only in the
source are marked "-", sections only in the target "+".

Each argument is a changelog file, a directory to search for one, or an
http(s) URL. The command fails when the changelogs have no differences.`,
	Example: `  changelogtxt compare old/CHANGELOG.txt CHANGELOG.txt
  changelogtxt summarize-news https://example.com/CHANGELOG.txt .
  changelogtxt compare --diff a.txt b.txt     # also show a line diff
  changelogtxt compare -o json a.txt b.txt`,
	Args:         cobra.ExactArgs(2),
	SilenceUsage: true,
	RunE:         runCompare,
}

func init() {
	compareCmd.GroupID = GroupChangelog
	rootCmd.AddCommand(compareCmd)

	compareCmd.Flags().BoolVarP(&compareDiffFlag, "diff", "d", false, "Also print a line diff of the normalized changelogs")
}

func runCompare(cmd *cobra.Command, args []string) error {
	rt, err := loadRuntime(cmd)
	if err != nil {
		return err
	}

	source, target, err := loadPair(cmd, rt, args[0], args[1])
	if err != nil {
		return err
	}

	d := changelog.Diff(source, target)
	if d.Empty() {
		return changelog.ErrNoDifferences
	}

	var lineDiff string
	if compareDiffFlag {
		lineDiff = textDiff(changelog.DumpString(source), changelog.DumpString(target))
	}

	out := cmd.OutOrStdout()
	if rt.structured() {
		return writeStructured(out, rt.cfg.Output, differenceView{
			Source:       args[0],
			Target:       args[1],
			OnlyInSource: toEntryViews(d.OnlyInSource, rt.cfg.UnreleasedLabel),
			OnlyInTarget: toEntryViews(d.OnlyInTarget, rt.cfg.UnreleasedLabel),
			Diff:         lineDiff,
		})
	}

	if err := changelog.FormatDifference(d, out, rt.formatOptions()); err != nil {
		return err
	}
	if compareDiffFlag {
		fmt.Fprintln(out)
		writeDiff(out, lineDiff, rt.cfg.Plain)
	}
	return nil
}

// loadPair loads the source and target changelogs concurrently.
func loadPair(cmd *cobra.Command, rt *runtimeEnv, sourceArg, targetArg string) (*changelog.Changelog, *changelog.Changelog, error) {
	var source, target *changelog.Changelog

	g, ctx := errgroup.WithContext(cmd.Context())
	load := func(arg string, dst **changelog.Changelog) func() error {
		return func() error {
			path, err := rt.sourcePath(arg)
			if err != nil {
				return err
			}
			c, err := changelog.LoadSource(ctx, path, rt.parseOptions()...)
			if err != nil {
				return fmt.Errorf("loading %s: %w", arg, err)
			}
			*dst = c
			return nil
		}
	}
	g.Go(load(sourceArg, &source))
	g.Go(load(targetArg, &target))

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return source, target, nil
}

var (
	diffRemoveStyle = color.New(color.FgRed)
	diffAddStyle    = color.New(color.FgGreen)
)

// writeDiff prints the output of textDiff, colored unless plain.
func writeDiff(w io.Writer, diff string, plain bool) {
	for _, line := range strings.SplitAfter(diff, "\n") {
		if line == "" {
			continue
		}
		switch {
		case plain:
			fmt.Fprint(w, line)
		case strings.HasPrefix(line, "-"):
			diffRemoveStyle.Fprint(w, line)
		case strings.HasPrefix(line, "+"):
			diffAddStyle.Fprint(w, line)
		default:
			fmt.Fprint(w, line)
		}
	}
}

// textDiff returns a line diff of a and b. Removed lines start with "-", added lines
// with "+" and unchanged lines with a space.
func textDiff(a, b string) string {
	dmp := diffmatchpatch.New()
	ca, cb, lines := dmp.DiffLinesToChars(a, b)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(ca, cb, false), lines)

	var sb strings.Builder
	for _, d := range diffs {
		prefix := " "
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			sb.WriteString(prefix)
			sb.WriteString(line)
			if !strings.HasSuffix(line, "\n") {
				sb.WriteString("\n")
			}
		}
	}
	return sb.String()
}
