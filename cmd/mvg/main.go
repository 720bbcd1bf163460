// Mvg is an interactive terminal route planner for Munich public transport.
//
// Running without arguments opens the planner: type a start and a destination,
// pick a date, time and transport modes, and browse the connections MVG
// returns. The subcommands answer the same questions once, for scripts.
//
// Usage:
//
//	mvg [command] [flags]
//
// See 'mvg --help' for available commands.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/muurk/mvg/internal/app"
	"github.com/muurk/mvg/internal/config"
	"github.com/muurk/mvg/internal/fetch"
	"github.com/muurk/mvg/internal/logging"
	"github.com/muurk/mvg/internal/mvg"
	"github.com/muurk/mvg/internal/tui"
	"github.com/muurk/mvg/internal/version"
)

// ErrNoTerminal is returned when the planner is started without an interactive terminal
var ErrNoTerminal = errors.New("the planner needs an interactive terminal; use 'mvg routes' for scripted searches")

// Global flags
var (
	configPath string
	logLevel   string
	baseURL    string
)

// cfg is loaded once before any command runs
var cfg *config.Config

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	logging.Sync()
	if err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "mvg",
	Short: "MVG route planner",
	Long: `An interactive terminal route planner for Munich public transport (MVG).

Move between fields with h/j/k/l, press i or enter to edit a field or toggle
an option, esc to finish editing, f or space to search, and q to quit.

If no command is specified, the interactive planner will launch.`,
	Version:           version.Version,
	PersistentPreRunE: loadConfig,
	RunE:              runPlanner,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default is the platform config directory)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); overrides the config file")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "MVG API origin; overrides the config file")

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "mvg %s\n%s\n", version.Full(), version.Platform())
	},
}

// loadConfig reads the config file and applies the global flag overrides
func loadConfig(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if baseURL != "" {
		loaded.API.BaseURL = baseURL
	}
	if logLevel != "" {
		loaded.Log.Level = logLevel
	}
	if err := loaded.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	cfg = loaded
	return nil
}

// initLogging starts the logger. The planner owns the screen, so it always logs to a file.
func initLogging(toFile bool) error {
	level := cfg.Log.Level
	if level == "" {
		level = os.Getenv(logging.LogLevelEnvVar)
	}

	path := cfg.Log.File
	if path == "" && toFile && level != "" {
		var err error
		if path, err = config.GetLogPath(); err != nil {
			return err
		}
	}
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
	}
	return logging.Initialize(level, path)
}

// newClient builds the MVG client from the loaded configuration
func newClient() *mvg.Client {
	client := mvg.NewClientWithURL(cfg.API.BaseURL)
	client.SetTimeout(cfg.API.Timeout)
	client.SetRetry(cfg.API.MaxRetries, cfg.API.RetryDelay)
	client.CacheDuration = cfg.API.CacheTTL
	return client
}

// sessionDefaults maps the configured toggles onto a new planner session
func sessionDefaults() app.Defaults {
	return app.Defaults{
		Arrival: cfg.Defaults.Arrival,
		Modes: app.Modes{
			Ubahn: cfg.Defaults.Ubahn,
			Sbahn: cfg.Defaults.Sbahn,
			Tram:  cfg.Defaults.Tram,
			Bus:   cfg.Defaults.Bus,
		},
	}
}

func runPlanner(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return ErrNoTerminal
	}

	if err := initLogging(true); err != nil {
		return err
	}

	state := app.NewState(time.Now(), sessionDefaults())
	queue := make(chan app.Request, fetch.DefaultQueueSize)
	loop := app.NewLoop(state, app.DefaultKeyMap(), queue)

	coordinator := fetch.New(newClient(), state, queue)
	coordinator.RequestTimeout = cfg.API.RequestTimeout

	logging.Info("Planner started",
		zap.String("version", version.Version),
		zap.String("base_url", cfg.API.BaseURL),
	)

	err := tui.Run(cmd.Context(), loop, coordinator, tui.Options{
		PollInterval: cfg.UI.PollInterval,
		AltScreen:    cfg.UI.AltScreen,
	})
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("planner failed: %w", err)
	}
	return nil
}

// withTimeout bounds a one-shot command by d (0 = no limit)
func withTimeout(cmd *cobra.Command, d time.Duration) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
