package app

import (
	"context"
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jmylchreest/appshell/internal/config"
	"github.com/jmylchreest/appshell/internal/theme"
)

// NewResolver builds the resolver for system themes. The desktop portal
// only describes the local machine, so remote sessions skip it and rely on
// their own terminal's background.
func NewResolver(r *lipgloss.Renderer, detectPortal bool, logger *slog.Logger) *theme.Resolver {
	var detectors []theme.Detector
	if detectPortal {
		detectors = append(detectors, theme.NewPortalDetector(logger))
	}
	detectors = append(detectors, theme.NewRendererDetector(r))
	return theme.NewResolver(logger, detectors...)
}

// RunOptions configures the shell.
type RunOptions struct {
	Config      *config.Config
	Store       *theme.Store
	StoragePath string // Path to watch for changes (empty = no watching)
	InitialPath string // Empty = config ui.initial_path
	Logger      *slog.Logger
}

// Run starts the shell on the local terminal and blocks until it exits.
func Run(opts RunOptions) error {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Store == nil {
		return fmt.Errorf("run shell: no theme store")
	}

	routes, err := NewRouter(opts.Store)
	if err != nil {
		return fmt.Errorf("build routes: %w", err)
	}

	initial := opts.InitialPath
	if initial == "" {
		initial = cfg.UI.InitialPath
	}

	shell := New(Options{
		Store:        opts.Store,
		Router:       routes,
		Resolver:     NewResolver(nil, cfg.Theme.DetectSystem, logger),
		InitialPath:  initial,
		ShowKeybinds: cfg.UI.ShowHelp,
		Logger:       logger,
	})
	defer shell.Close()

	// Start file watcher if persistence path provided
	if cfg.Theme.Watch && opts.StoragePath != "" {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		watcher := theme.NewWatcher(opts.Store, opts.StoragePath, logger)
		if err := watcher.Start(ctx); err != nil {
			logger.Warn("failed to start storage watcher", "path", opts.StoragePath, "error", err)
		} else {
			defer watcher.Stop()
		}
	}

	var progOpts []tea.ProgramOption
	if cfg.UI.AltScreen {
		progOpts = append(progOpts, tea.WithAltScreen())
	}

	p := tea.NewProgram(shell, progOpts...)
	_, err = p.Run()
	return err
}
