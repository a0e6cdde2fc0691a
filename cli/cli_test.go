package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"github.com/halcyon-tools/ytfetch/config"
	"github.com/halcyon-tools/ytfetch/transcript"
	"github.com/halcyon-tools/ytfetch/videoid"
)

// newTestRoot creates a fresh cobra root command wired to all subcommands.
// Each test gets an isolated command tree to avoid shared state.
func newTestRoot(t *testing.T) *cobra.Command {
	t.Helper()

	// Keep tests hermetic: no user config, no telemetry export.
	t.Setenv("HOME", t.TempDir())
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	t.Setenv("OTEL_EXPORTER_OTLP_TRACES_ENDPOINT", "")

	root := &cobra.Command{
		Use:          "ytfetch",
		SilenceUsage: true,
	}
	root.AddCommand(NewFetchCmd())
	root.AddCommand(NewToolsCmd())
	return root
}

// executeCommand runs a cobra command with the given args and captures stdout/stderr.
func executeCommand(root *cobra.Command, args ...string) (stdout, stderr string, err error) {
	var outBuf, errBuf bytes.Buffer
	root.SetOut(&outBuf)
	root.SetErr(&errBuf)
	root.SetArgs(args)
	err = root.Execute()
	return outBuf.String(), errBuf.String(), err
}

// writeTestFile creates a temporary file with the given content and returns its path.
func writeTestFile(t *testing.T, name, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// fakeProvider returns a fixed outcome and counts invocations.
type fakeProvider struct {
	calls int
	t     transcript.Transcript
	err   error
}

func (p *fakeProvider) Fetch(ctx context.Context, id videoid.ID, preferredLangs []string) (transcript.Transcript, error) {
	p.calls++
	if p.err != nil {
		return transcript.Transcript{}, p.err
	}
	return p.t, nil
}

// withProvider swaps the provider factory for the duration of one test.
func withProvider(t *testing.T, provider transcript.Provider) {
	t.Helper()
	orig := newProvider
	newProvider = func(cfg config.Config, requestID string) transcript.Provider {
		return provider
	}
	t.Cleanup(func() { newProvider = orig })
}
