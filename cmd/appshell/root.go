// Package main provides the CLI entrypoint for appshell.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/appshell/internal/config"
	"github.com/jmylchreest/appshell/internal/storage"
	"github.com/jmylchreest/appshell/internal/theme"
)

// Build-time variables (set via ldflags)
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

// Global configuration and state
var (
	cfg        *config.Config
	globalOpts struct {
		verbose     bool
		storageFile string
		configPath  string
		logFile     string
	}
	logger  *slog.Logger
	logSink io.Closer

	fileStorage *storage.File
	themeStore  *theme.Store
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "appshell",
	Short: "Themed terminal application shell",
	Long: `appshell is a terminal application shell with a persisted colour theme
and path based page routing.

The theme preference (light, dark or system) is stored on disk and shared
by every running shell. Pages are looked up by exact path; unknown paths
show a not found page.

Running appshell without a subcommand launches the interactive shell.`,
	Version:      fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildTime),
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.EnsureDataDir(); err != nil {
			return fmt.Errorf("failed to create data directory: %w", err)
		}
		if err := setupLogger(logDestination(cmd)); err != nil {
			return err
		}

		var err error
		cfg, err = config.LoadConfig(globalOpts.configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		path := globalOpts.storageFile
		if path == "" {
			path = cfg.StoragePath()
		}
		if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
			return fmt.Errorf("failed to create storage directory: %w", err)
		}

		fileStorage = storage.NewFile(path, logger)
		themeStore = theme.NewStore(fileStorage, theme.StoreOptions{
			DefaultTheme: cfg.DefaultTheme(logger),
			StorageKey:   cfg.Theme.StorageKey,
			Logger:       logger,
		})

		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if logSink != nil {
			err := logSink.Close()
			logSink = nil
			return err
		}
		return nil
	},
	// Default to the shell when no subcommand is provided
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd, args)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&globalOpts.verbose, "verbose", "v", false,
		"Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&globalOpts.storageFile, "storage-file", "",
		"Path to storage file (default: ~/.local/share/appshell/storage.json)")
	rootCmd.PersistentFlags().StringVar(&globalOpts.configPath, "config", "",
		"Path to config file (default: ~/.config/appshell/config.toml)")
	rootCmd.PersistentFlags().StringVar(&globalOpts.logFile, "log-file", "",
		"Write logs to a file (default: stderr, or the data directory for the shell)")
}

// logDestination returns the file to log to, or "" for stderr. The
// interactive shell owns the terminal, so it logs to a file by default.
func logDestination(cmd *cobra.Command) string {
	if globalOpts.logFile != "" {
		return globalOpts.logFile
	}
	if !cmd.HasParent() || cmd == tuiCmd {
		return config.LogPath()
	}
	return ""
}

// setupLogger configures the global slog logger.
func setupLogger(logFile string) error {
	level := slog.LevelWarn
	if globalOpts.verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	// Log to stderr so stdout is clean for output
	var w io.Writer = os.Stderr
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		w = f
		logSink = f
	}

	handler := slog.NewTextHandler(w, opts)
	logger = slog.New(handler)
	slog.SetDefault(logger)
	return nil
}

// getConfig returns the global config instance.
func getConfig() *config.Config {
	return cfg
}

// getThemeStore returns the global theme store.
func getThemeStore() *theme.Store {
	return themeStore
}

// storagePath returns the storage file in use.
func storagePath() string {
	return fileStorage.Path()
}
