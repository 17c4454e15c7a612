package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"sheraa.ae/site/content"
	"sheraa.ae/site/internal/catalog"
	"sheraa.ae/site/internal/cms"
	"sheraa.ae/site/internal/i18n"
	"sheraa.ae/site/internal/platform/config"
)

var errCheckFailed = errors.New("content check failed")

func newContentCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "content",
		Short: "Inspect bundled content",
	}
	cmd.AddCommand(newCheckCmd(root))
	return cmd
}

func newCheckCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate navigation, catalog, pages and translations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(root.configPath)
			if err != nil {
				return err
			}
			problems := checkContent(cfg)
			for _, p := range problems {
				fmt.Fprintln(cmd.ErrOrStderr(), p)
			}
			if len(problems) > 0 {
				return fmt.Errorf("%w: %d problem(s)", errCheckFailed, len(problems))
			}
			fmt.Fprintln(cmd.OutOrStdout(), "content ok")
			return nil
		},
	}
}

// checkContent loads every content source the server depends on and
// collects the problems instead of stopping at the first.
func checkContent(cfg *config.Config) []error {
	var problems []error
	if _, err := loadMenu(cfg.Nav.MenuFile); err != nil {
		problems = append(problems, err)
	}
	if _, err := catalog.Load(content.FS, "data"); err != nil {
		problems = append(problems, fmt.Errorf("catalog: %w", err))
	}
	problems = append(problems, cms.NewClient(contentFS(cfg.Content.Dir)).Check()...)

	bundle, err := i18n.Load(content.FS, "locales", cfg.I18n.Default, cfg.I18n.Supported)
	if err != nil {
		return append(problems, fmt.Errorf("locales: %w", err))
	}
	for _, lang := range bundle.Supported() {
		if missing := bundle.Missing(lang); len(missing) > 0 {
			problems = append(problems, fmt.Errorf("locale %s: missing keys %v", lang, missing))
		}
	}
	return problems
}
