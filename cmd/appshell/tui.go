package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/appshell/internal/app"
	"github.com/jmylchreest/appshell/internal/router"
)

var tuiOpts struct {
	path string
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive shell",
	Long: `Launch the interactive shell in the terminal.

The shell shows a header with the current location and theme, the page
routed for that location and a footer with key hints. Theme changes made
by other appshell processes are picked up while it runs.

Key bindings:
  t           Cycle theme (light, dark, system)
  :, ctrl+l   Go to a path
  [ / ]       Back / forward
  l, d, s     Set light, dark or system (home page)
  j/k, ↑/↓    Scroll
  ?           Show help
  q           Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)

	tuiCmd.Flags().StringVar(&tuiOpts.path, "path", "",
		"Initial path (default: ui.initial_path from config)")
}

func runTUI(cmd *cobra.Command, args []string) error {
	if tuiOpts.path != "" {
		if _, err := router.ParseLocation(tuiOpts.path); err != nil {
			return fmt.Errorf("invalid --path: %w", err)
		}
	}

	return app.Run(app.RunOptions{
		Config:      getConfig(),
		Store:       getThemeStore(),
		StoragePath: storagePath(),
		InitialPath: tuiOpts.path,
		Logger:      logger,
	})
}
