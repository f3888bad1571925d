// Package commands implements the CLI commands for gzio.
package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jbctechsolutions/gzio/internal/infrastructure/config"
	"github.com/jbctechsolutions/gzio/internal/infrastructure/logging"
	"github.com/jbctechsolutions/gzio/internal/infrastructure/tracing"
	"github.com/jbctechsolutions/gzio/internal/presentation/cli/output"
)

// Version information - set at build time via ldflags.
var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// GlobalFlags holds the global CLI flags.
type GlobalFlags struct {
	ConfigFile string
	Output     string
	Verbose    bool
}

// AppContext holds the application runtime context.
type AppContext struct {
	Config     *config.Config
	Formatter  *output.Formatter
	Logger     *logging.Logger
	Tracer     *tracing.Tracer
	Flags      *GlobalFlags
	Ctx        context.Context
	cancelFunc context.CancelFunc
}

var (
	globalFlags GlobalFlags
	appCtx      *AppContext
	appCtxMu    sync.RWMutex // Protects appCtx for thread-safe access
)

// NewRootCmd creates the root command for the gzio CLI.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "gzio",
		Short: "gzio - Read and write gzip-compressed JSON and text files",
		Long: `gzio works with gzip-compressed JSON and UTF-8 text files.

JSON payloads are written in compact form (no inter-token whitespace,
non-ASCII emitted as literal UTF-8); text payloads are written verbatim.

Commands:
  • cat    decompress a file and print its contents
  • pack   compress files or stdin into a gzip file
  • watch  compress files as they appear in a directory`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Skip initialization for help, version, and completion commands
			if cmd.Name() == "help" || cmd.Name() == "version" || cmd.Name() == "completion" {
				return nil
			}
			return initializeApp()
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&globalFlags.ConfigFile, "config", "c", "", "config file path (default: ~/.gzio/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&globalFlags.Output, "output", "o", "text", "output format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&globalFlags.Verbose, "verbose", "v", false, "enable verbose output")

	// Add subcommands
	rootCmd.AddCommand(NewVersionCmd())
	rootCmd.AddCommand(NewCatCmd())
	rootCmd.AddCommand(NewPackCmd())
	rootCmd.AddCommand(NewWatchCmd())

	return rootCmd
}

// initializeApp initializes the application context.
func initializeApp() error {
	// Determine output format
	format := output.FormatText
	if globalFlags.Output == "json" {
		format = output.FormatJSON
	}

	formatter := output.NewFormatter(
		output.WithFormat(format),
		output.WithColor(format != output.FormatJSON),
	)

	cfg, err := loadConfig(globalFlags.ConfigFile)
	if err != nil {
		if globalFlags.Verbose {
			formatter.Warning("Could not load config: %v, using defaults", err)
		}
		cfg = config.NewDefaultConfig()
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logLevel := logging.Level(cfg.Logging.Level)
	if globalFlags.Verbose {
		logLevel = logging.LevelDebug
	}
	logger := logging.Init(logging.Config{
		Level:      logLevel,
		Format:     logging.Format(cfg.Logging.Format),
		Output:     os.Stderr,
		TimeFormat: logging.DefaultConfig().TimeFormat,
	})

	// Create cancellable context for graceful shutdown; every
	// invocation's log lines share one correlation ID.
	ctx, cancel := context.WithCancel(context.Background())
	ctx = logging.WithCorrelationID(ctx, uuid.NewString())

	tracer, err := tracing.Init(ctx, tracing.Config{
		Enabled:      cfg.Observability.Tracing.Enabled,
		ExporterType: tracing.ExporterType(cfg.Observability.Tracing.ExporterType),
		OTLPEndpoint: cfg.Observability.Tracing.OTLPEndpoint,
		ServiceName:  cfg.Observability.Tracing.ServiceName,
		SampleRate:   cfg.Observability.Tracing.SampleRate,
	})
	if err != nil {
		cancel()
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}

	appCtxMu.Lock()
	appCtx = &AppContext{
		Config:     cfg,
		Formatter:  formatter,
		Logger:     logger,
		Tracer:     tracer,
		Flags:      &globalFlags,
		Ctx:        ctx,
		cancelFunc: cancel,
	}
	appCtxMu.Unlock()

	return nil
}

// loadConfig loads configuration from the specified file or default location.
func loadConfig(configPath string) (*config.Config, error) {
	loader, err := config.NewLoader("")
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}

	return loader.Load(configPath)
}

// GetAppContext returns the current application context.
// Returns nil if the app hasn't been initialized.
// Thread-safe via mutex protection.
func GetAppContext() *AppContext {
	appCtxMu.RLock()
	defer appCtxMu.RUnlock()
	return appCtx
}

// GetFormatter returns the output formatter.
// Creates a default formatter if app context is not initialized.
// Thread-safe via mutex protection.
func GetFormatter() *output.Formatter {
	appCtxMu.RLock()
	ctx := appCtx
	appCtxMu.RUnlock()

	if ctx != nil {
		return ctx.Formatter
	}
	return output.NewFormatter()
}

// GetTracer returns the tracer, falling back to the package default
// when the app hasn't been initialized.
func GetTracer() *tracing.Tracer {
	appCtxMu.RLock()
	ctx := appCtx
	appCtxMu.RUnlock()

	if ctx != nil {
		return ctx.Tracer
	}
	return tracing.Default()
}

// commandContext returns the context for the running invocation.
func commandContext() context.Context {
	appCtxMu.RLock()
	ctx := appCtx
	appCtxMu.RUnlock()

	if ctx != nil && ctx.Ctx != nil {
		return ctx.Ctx
	}
	return context.Background()
}

// Shutdown performs graceful shutdown of the application.
// Cancels the context and flushes the tracer.
func Shutdown() {
	appCtxMu.Lock()
	defer appCtxMu.Unlock()

	if appCtx != nil {
		if appCtx.Tracer != nil {
			appCtx.Tracer.Shutdown(context.Background())
		}
		if appCtx.cancelFunc != nil {
			appCtx.cancelFunc()
		}
	}
}

// Execute runs the root command with graceful shutdown support.
func Execute() {
	// Set up signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Run command in a goroutine
	errChan := make(chan error, 1)
	go func() {
		rootCmd := NewRootCmd()
		errChan <- rootCmd.Execute()
	}()

	// Wait for either command completion or signal
	select {
	case err := <-errChan:
		if err != nil {
			formatter := GetFormatter()
			formatter.Error("%s", err.Error())
			Shutdown()
			os.Exit(1)
		}
	case sig := <-sigChan:
		formatter := GetFormatter()
		formatter.Warning("Received signal %v, shutting down...", sig)
		Shutdown()
		os.Exit(130) // Standard exit code for SIGINT
	}

	Shutdown()
}
