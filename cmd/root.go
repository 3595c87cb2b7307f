// Package cmd wires archfit's cobra command tree: score, questions,
// validate, config, watch, and mcp, sharing the persistent
// --catalog-path, --context-path, --weights-path, --governance-dir,
// --output-format, --verbose, --no-telemetry and --config flags via
// rootCmd.
package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/archfit/archfit/internal/apperrors"
	"github.com/archfit/archfit/internal/config"
	"github.com/archfit/archfit/internal/crashlog"
	"github.com/archfit/archfit/internal/telemetry"
	"github.com/archfit/archfit/internal/ui"
)

var (
	// version is set via -ldflags at build time; defaults to "dev".
	version = "dev"

	// posthogAPIKey and posthogEndpoint are set via -ldflags; without a
	// real key the telemetry client is left uninitialized and sends nothing.
	posthogAPIKey   = ""
	posthogEndpoint = "https://us.i.posthog.com"

	telemetryClient telemetry.Client
	commandStart    time.Time
)

var rootCmd = &cobra.Command{
	Use:   "archfit",
	Short: "Score reference cloud architectures against an application context",
	Long: `archfit ranks reference cloud architectures against an application's
context (workload shape, constraints, compliance posture) and explains
every score with the signals that produced it.`,
	PersistentPreRunE:  initTelemetry,
	PersistentPostRunE: closeTelemetry,
}

func init() {
	rootCmd.PersistentFlags().StringP("catalog-path", "c", "", "path to the architecture catalog document")
	rootCmd.PersistentFlags().StringP("context-path", "x", "", "path to the application context document")
	rootCmd.PersistentFlags().String("weights-path", "", "path to a scoring-weights override file")
	rootCmd.PersistentFlags().String("governance-dir", "", "directory of optional governance policies")
	rootCmd.PersistentFlags().StringP("output-format", "o", "", "output format: json or table")
	rootCmd.PersistentFlags().Bool("verbose", false, "enable verbose output")
	rootCmd.PersistentFlags().Bool("no-telemetry", false, "disable telemetry for this command")
	rootCmd.PersistentFlags().String("config", "", "path to a config file")

	config.BindPersistentFlags(rootCmd)
	cobra.OnInitialize(config.Init)
	rootCmd.Version = version
}

// Execute runs the command tree. Called once from main.main.
func Execute() {
	crashlog.SetVersion(version)
	defer crashlog.HandlePanic()

	rootCmd.SuggestionsMinimumDistance = 2
	err := rootCmd.Execute()
	trackAndClose(err)
	if err != nil {
		os.Exit(exitCodeFor(err))
	}
}

// exitCodeFor maps a command error to the CLI's exit code contract: 0
// success, 1 validation error, 2 catalog invalid, 3 internal error.
func exitCodeFor(err error) int {
	switch {
	case apperrors.Is(err, apperrors.CatalogInvalid),
		apperrors.Is(err, apperrors.CatalogVersionUnsupported),
		apperrors.Is(err, apperrors.CatalogDuplicateID):
		return 2
	case apperrors.Is(err, apperrors.ContextInvalid),
		apperrors.Is(err, apperrors.AnswerInvalid):
		return 1
	default:
		return 3
	}
}

func initTelemetry(cmd *cobra.Command, args []string) error {
	commandStart = time.Now()
	crashlog.SetCommand(strings.Join(commandPath(cmd), " "))

	if viper.GetBool("no_telemetry") || isCI() {
		telemetryClient = telemetry.NewNoopClient()
		return nil
	}

	cfg, err := telemetry.Load()
	if err != nil {
		telemetryClient = telemetry.NewNoopClient()
		return nil
	}

	if cfg.NeedsConsent() && ui.IsInteractive() {
		telemetry.PromptConsent(cfg)
		if err := cfg.Save(); err != nil && viper.GetBool("verbose") {
			fmt.Fprintf(os.Stderr, "archfit: could not save telemetry preference: %v\n", err)
		}
	}

	if !cfg.IsEnabled() {
		telemetryClient = telemetry.NewNoopClient()
		return nil
	}

	client, err := telemetry.NewPostHogClient(telemetry.ClientConfig{
		APIKey:   posthogAPIKey,
		Endpoint: posthogEndpoint,
		Version:  version,
		Config:   cfg,
	})
	if err != nil {
		telemetryClient = telemetry.NewNoopClient()
		return nil
	}
	telemetryClient = client
	return nil
}

func closeTelemetry(cmd *cobra.Command, args []string) error {
	return nil
}

func trackAndClose(cmdErr error) {
	if telemetryClient == nil {
		return
	}
	props := telemetry.Properties{
		"duration_ms": time.Since(commandStart).Milliseconds(),
		"success":      cmdErr == nil,
	}
	event := telemetry.EventCommandExecuted
	if cmdErr != nil {
		event = telemetry.EventCommandError
	}
	telemetryClient.Track(event, props)
	_ = telemetryClient.Close()
}

func commandPath(cmd *cobra.Command) []string {
	var parts []string
	for c := cmd; c != nil; c = c.Parent() {
		parts = append([]string{c.Name()}, parts...)
	}
	return parts
}

func isCI() bool {
	return os.Getenv("CI") != "" || os.Getenv("CONTINUOUS_INTEGRATION") != ""
}

// cmdContext returns the background context commands use for operations
// with no per-request cancellation signal of their own (e.g. governance
// linting).
func cmdContext() context.Context {
	return context.Background()
}
