package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"sheraa.ae/site/internal/httpserver"
)

func newRoutesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "List the registered routes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return printRoutes(cmd)
		},
	}
}

func printRoutes(cmd *cobra.Command) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "METHOD\tPATTERN\tNAME\tFLAGS")
	for _, rt := range httpserver.Routes() {
		flags := ""
		if rt.Sitemap {
			flags += "sitemap "
		}
		if rt.Private {
			flags += "private"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", rt.Method, rt.Pattern, rt.Name, flags)
	}
	return w.Flush()
}
