package cli

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/halcyon-tools/ytfetch/cache"
	"github.com/halcyon-tools/ytfetch/config"
	ytotel "github.com/halcyon-tools/ytfetch/otel"
	"github.com/halcyon-tools/ytfetch/transcript"
	"github.com/halcyon-tools/ytfetch/videoid"
)

// newProvider builds the transcript provider for one invocation. Tests
// swap this to inject fakes.
var newProvider = func(cfg config.Config, requestID string) transcript.Provider {
	opts := []transcript.InnertubeOption{
		transcript.WithHTTPClient(&http.Client{Timeout: cfg.Timeout()}),
		transcript.WithRequestID(requestID),
	}
	if strings.TrimSpace(cfg.UserAgent) != "" {
		opts = append(opts, transcript.WithUserAgent(cfg.UserAgent))
	}
	return transcript.NewInnertubeProvider(opts...)
}

// NewFetchCmd creates the "fetch" subcommand.
func NewFetchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch a YouTube video transcript as structured JSON",
		Long: "Fetch resolves a YouTube URL or bare video ID, retrieves the transcript,\n" +
			"and prints exactly one JSON object to standard output. Exit code is 0 on\n" +
			"success and 1 on any failure; the error_code field identifies the cause.",
		Args: cobra.NoArgs,
		RunE: runFetch,
	}

	cmd.Flags().String("url", "", "YouTube URL or 11-character video ID (required)")
	_ = cmd.MarkFlagRequired("url")
	cmd.Flags().String("output", "json", "Output format (only json is defined)")
	cmd.Flags().String("config", "", "Path to config YAML (default: ~/.ytfetch/config.yaml)")
	cmd.Flags().Int("timeout", 0, "Provider call timeout in seconds (overrides config)")
	cmd.Flags().StringArray("language", nil, "Preferred transcript language code (repeatable, overrides config)")
	cmd.Flags().Bool("cache", false, "Cache fetched transcripts in a local SQLite database")
	cmd.Flags().String("cache-path", "", "Path to the transcript cache database")

	return cmd
}

func runFetch(cmd *cobra.Command, args []string) error {
	cfg, err := resolveFetchConfig(cmd)
	if err != nil {
		return exitError(exitFailure, "%v", err)
	}

	rawURL, _ := cmd.Flags().GetString("url")

	// --output defines json only; other values pass through to json.

	id, err := videoid.Parse(rawURL)
	if err != nil {
		fetchErr := transcript.NewFetchError(
			transcript.CodeInvalidURL,
			fmt.Sprintf("could not extract video ID from: %s", rawURL),
			err,
		)
		return emitResult(cmd, transcript.ResultFromError(fetchErr))
	}

	shutdown, _, err := ytotel.Setup(cmd.Context(), cmd.Root().Version)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: telemetry setup failed: %v\n", err)
		shutdown = func(context.Context) error { return nil }
	}
	defer func() { _ = shutdown(context.Background()) }()

	invocationID := uuid.NewString()
	provider, cleanup, err := buildProvider(cmd, cfg, invocationID)
	if err != nil {
		return exitError(exitFailure, "%v", err)
	}
	defer cleanup()

	observer, err := ytotel.NewFetchObserver(ytotel.Meter())
	if err != nil {
		observer = nil
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Timeout())
	defer cancel()
	ctx, span := ytotel.StartFetchSpan(ctx, ytotel.Tracer(), id.String(), invocationID)

	start := time.Now()
	fetched, fetchErr := provider.Fetch(ctx, id, cfg.PreferredLanguages)

	var result transcript.Result
	if fetchErr != nil {
		result = transcript.ResultFromError(fetchErr)
	} else {
		result = transcript.ResultFor(id, fetched)
	}

	ytotel.EndFetchSpan(span, result.Language, result.ErrCode)
	observer.Observe(ctx, id.String(), result.ErrCode, time.Since(start))

	return emitResult(cmd, result)
}

// resolveFetchConfig layers flag overrides on top of the file config.
func resolveFetchConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")

	var cfg config.Config
	var err error
	if strings.TrimSpace(path) != "" {
		cfg, err = config.Load(path)
	} else {
		cfg, err = config.LoadDefault()
	}
	if err != nil {
		return config.Config{}, err
	}

	if cmd.Flags().Changed("timeout") {
		seconds, _ := cmd.Flags().GetInt("timeout")
		if seconds <= 0 {
			return config.Config{}, fmt.Errorf("--timeout must be positive")
		}
		cfg.TimeoutSeconds = seconds
	}
	if cmd.Flags().Changed("language") {
		langs, _ := cmd.Flags().GetStringArray("language")
		cfg.PreferredLanguages = langs
	}
	if cmd.Flags().Changed("cache") {
		enabled, _ := cmd.Flags().GetBool("cache")
		cfg.Cache.Enabled = enabled
	}
	if cmd.Flags().Changed("cache-path") {
		cachePath, _ := cmd.Flags().GetString("cache-path")
		cfg.Cache.Path = cachePath
	}

	return cfg, nil
}

// buildProvider wires the cache decorator around the base provider when
// caching is enabled. The returned cleanup closes the cache store.
func buildProvider(cmd *cobra.Command, cfg config.Config, invocationID string) (transcript.Provider, func(), error) {
	base := newProvider(cfg, invocationID)
	cleanup := func() {}

	if !cfg.Cache.Enabled {
		return base, cleanup, nil
	}

	path := strings.TrimSpace(cfg.Cache.Path)
	if path == "" {
		defaultPath, err := cache.DefaultPath()
		if err != nil {
			return nil, nil, fmt.Errorf("resolving cache path: %w", err)
		}
		path = defaultPath
	}

	store, err := cache.Open(cache.StoreConfig{
		DSN: path,
		TTL: cfg.CacheTTL(),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("opening transcript cache: %w", err)
	}

	cleanup = func() { _ = store.Close() }
	return cache.NewCachedProvider(store, base), cleanup, nil
}

// emitResult writes the single JSON object to stdout and translates the
// variant into the process exit code.
func emitResult(cmd *cobra.Command, result transcript.Result) error {
	if err := result.WriteJSON(cmd.OutOrStdout()); err != nil {
		return exitError(exitFailure, "writing result: %v", err)
	}
	if result.Success {
		return nil
	}
	return exitError(exitFailure, "%s", result.ErrMessage)
}
