package main

import (
	"github.com/spf13/cobra"

	"github.com/jmylchreest/appshell/internal/app"
	"github.com/jmylchreest/appshell/internal/output"
)

var routesOpts struct {
	format string
}

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "List the route table",
	Long: `List the registered routes in registration order.

Paths match exactly: "/about" and "/about/" are different routes, and a
query or fragment is not part of the path.`,
	Args: cobra.NoArgs,
	RunE: runRoutes,
}

var routesResolveCmd = &cobra.Command{
	Use:   "resolve <path>",
	Short: "Show which route a path resolves to",
	Long: `Resolve a path against the route table. Exits non-zero when no
route matches; the shell would show the not found page.`,
	Args: cobra.ExactArgs(1),
	RunE: runRoutesResolve,
}

func init() {
	rootCmd.AddCommand(routesCmd)
	routesCmd.AddCommand(routesResolveCmd)

	routesCmd.PersistentFlags().StringVarP(&routesOpts.format, "format", "f", "plain",
		"Output format: plain, json, yaml")
}

func runRoutes(cmd *cobra.Command, args []string) error {
	format, err := output.ParseFormat(routesOpts.format)
	if err != nil {
		return err
	}

	r, err := app.NewRouter(getThemeStore())
	if err != nil {
		return err
	}

	var routes []output.Route
	for _, e := range r.Entries() {
		routes = append(routes, output.Route{Path: e.Path, Title: e.Page.Title()})
	}
	return output.NewFormatter(format).FormatRoutes(cmd.OutOrStdout(), routes)
}

func runRoutesResolve(cmd *cobra.Command, args []string) error {
	format, err := output.ParseFormat(routesOpts.format)
	if err != nil {
		return err
	}

	r, err := app.NewRouter(getThemeStore())
	if err != nil {
		return err
	}

	e, err := r.Lookup(args[0])
	if err != nil {
		return err
	}

	route := output.Route{Path: e.Path, Title: e.Page.Title()}
	return output.NewFormatter(format).FormatRoutes(cmd.OutOrStdout(), []output.Route{route})
}
