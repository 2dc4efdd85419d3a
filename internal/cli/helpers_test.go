package cli

import (
	"bytes"
	"context"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

// The commands share package-level flag variables and rootCmd, so tests in this package
// run sequentially.

const sampleChangelog = `- Unreleased fix

v1.0.1
- Fixed bug in parser

v1.0.0
- Initial release
`

// isolate moves the test into an empty directory with no user config and no
// CHANGELOGTXT_* variables, and returns the directory.
func isolate(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, ".config"))
	for _, kv := range os.Environ() {
		key, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(key, "CHANGELOGTXT_") {
			t.Setenv(key, "")
			require.NoError(t, os.Unsetenv(key))
		}
	}
	return dir
}

func writeChangelog(t *testing.T, path, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

// executeCommand runs the CLI with args and returns what it wrote to stdout and stderr.
func executeCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr syncBuffer
	err := executeCommandContext(t, t.Context(), &stdout, &stderr, args...)
	return stdout.String(), stderr.String(), err
}

// executeCommandContext runs the CLI with args under ctx, writing to stdout and stderr.
func executeCommandContext(t *testing.T, ctx context.Context, stdout, stderr io.Writer, args ...string) error {
	t.Helper()

	resetCommand(rootCmd)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	return ExecuteContext(ctx, log.New(stderr, "debug: ", 0))
}

// syncBuffer is a bytes.Buffer safe for a command writing while the test reads.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// resetCommand restores every flag of cmd and its subcommands to its default value and
// drops the context cobra kept from the previous execution.
func resetCommand(cmd *cobra.Command) {
	cmd.SetContext(nil) //nolint:staticcheck

	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetCommand(sub)
	}
}

// findCommand returns the registered subcommand called name.
func findCommand(name string) *cobra.Command {
	for _, cmd := range rootCmd.Commands() {
		if cmd.Name() == name {
			return cmd
		}
	}
	return nil
}
