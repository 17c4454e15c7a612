package main

import (
	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "sheraa",
		Short: "Sheraa public website",
		Long: `sheraa serves the Sheraa marketing site: programs, community, events,
resources and careers pages in English and Arabic, with server-driven
navigation chrome and form handling.`,
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "sheraa.yaml", "config file path (optional)")

	cmd.AddCommand(
		newServeCmd(opts),
		newRoutesCmd(),
		newContentCmd(opts),
	)
	return cmd
}
