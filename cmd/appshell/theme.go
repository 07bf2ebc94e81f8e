package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/appshell/internal/app"
	"github.com/jmylchreest/appshell/internal/output"
	"github.com/jmylchreest/appshell/internal/theme"
)

var themeOpts struct {
	format string
}

var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Show or change the persisted theme",
	Long: `Show or change the theme preference shared by every appshell.

Running shells pick up changes made here immediately.

Examples:
  # Show the current theme and what it resolves to
  appshell theme get

  # Switch to light
  appshell theme set light

  # Follow the desktop / terminal preference
  appshell theme set system

  # Forget the stored preference
  appshell theme reset`,
}

var themeGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show the current theme",
	Args:  cobra.NoArgs,
	RunE:  runThemeGet,
}

var themeSetCmd = &cobra.Command{
	Use:       "set <light|dark|system>",
	Short:     "Set and persist the theme",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{string(theme.Light), string(theme.Dark), string(theme.System)},
	RunE:      runThemeSet,
}

var themeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the available themes",
	Args:  cobra.NoArgs,
	RunE:  runThemeList,
}

var themeResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Remove the stored theme so the default applies",
	Args:  cobra.NoArgs,
	RunE:  runThemeReset,
}

func init() {
	rootCmd.AddCommand(themeCmd)
	themeCmd.AddCommand(themeGetCmd, themeSetCmd, themeListCmd, themeResetCmd)

	themeCmd.PersistentFlags().StringVarP(&themeOpts.format, "format", "f", "plain",
		"Output format: plain, json, yaml")
}

func themeFormatter() (output.Formatter, error) {
	format, err := output.ParseFormat(themeOpts.format)
	if err != nil {
		return nil, err
	}
	return output.NewFormatter(format), nil
}

func runThemeGet(cmd *cobra.Command, args []string) error {
	f, err := themeFormatter()
	if err != nil {
		return err
	}

	st := getThemeStore()
	current := st.Get()

	ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Second)
	defer cancel()
	// Only system needs the desktop or terminal to answer.
	resolver := theme.NewResolver(logger)
	if current == theme.System {
		resolver = app.NewResolver(nil, getConfig().Theme.DetectSystem, logger)
	}

	status := output.ThemeStatus{
		Theme:       string(current),
		Appearance:  string(resolver.Resolve(ctx, current)),
		Default:     string(st.DefaultTheme()),
		StorageKey:  st.StorageKey(),
		StoragePath: storagePath(),
	}
	if entry, ok := fileStorage.Lookup(st.StorageKey()); ok && theme.Theme(entry.Value).Valid() {
		status.Stored = true
		if !entry.UpdatedAt.IsZero() {
			updated := entry.UpdatedAt
			status.UpdatedAt = &updated
		}
	}

	return f.FormatTheme(cmd.OutOrStdout(), status)
}

func runThemeSet(cmd *cobra.Command, args []string) error {
	t, err := theme.ParseTheme(args[0])
	if err != nil {
		return err
	}

	st := getThemeStore()

	// Persist failures are fatal here.
	var persistErr error
	st.SetPersistErrorHandler(func(err error) { persistErr = err })
	defer st.SetPersistErrorHandler(nil)

	if err := st.Set(t); err != nil {
		return err
	}
	if persistErr != nil {
		return persistErr
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Theme set to %s\n", t)
	return nil
}

func runThemeList(cmd *cobra.Command, args []string) error {
	f, err := themeFormatter()
	if err != nil {
		return err
	}

	list := output.ThemeList{Current: string(getThemeStore().Get())}
	for _, t := range theme.Themes {
		list.Themes = append(list.Themes, string(t))
	}
	return f.FormatThemes(cmd.OutOrStdout(), list)
}

func runThemeReset(cmd *cobra.Command, args []string) error {
	st := getThemeStore()
	if err := fileStorage.Delete(st.StorageKey()); err != nil {
		return fmt.Errorf("failed to reset theme: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Theme reset, default is %s\n", st.DefaultTheme())
	return nil
}
