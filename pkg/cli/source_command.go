package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/github/gh-bundles/pkg/registry"
)

func newSourceCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "source",
		Short: "Manage bundle sources",
	}
	cmd.AddCommand(
		newSourceAddCommand(app),
		newSourceRemoveCommand(app),
		newSourceListCommand(app),
		newSourceSyncCommand(app),
	)
	return cmd
}

func newSourceAddCommand(app *App) *cobra.Command {
	var (
		sourceType string
		priority   int
		token      string
		configFlag map[string]string
	)

	cmd := &cobra.Command{
		Use:   "add <name> <url>",
		Short: "Register a new bundle source",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, url := args[0], args[1]

			cfg := make(map[string]any, len(configFlag))
			for k, v := range configFlag {
				cfg[k] = v
			}

			source := registry.Source{
				ID:       name,
				Name:     name,
				Type:     registry.SourceType(sourceType),
				URL:      url,
				Enabled:  true,
				Priority: priority,
				Config:   cfg,
				Token:    token,
			}

			if err := app.Manager.AddSource(cmd.Context(), source); err != nil {
				return fmt.Errorf("adding source %s: %w", name, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added source %q (%s)\n", name, sourceType)
			return nil
		},
	}

	cmd.Flags().StringVar(&sourceType, "type", string(registry.SourceTypeGitHubRelease),
		"source type: github-release, gitlab, awesome-copilot, local-awesome-copilot, local, http")
	cmd.Flags().IntVar(&priority, "priority", 0, "priority stored with the source and shown by 'source list'; not used to resolve id conflicts")
	cmd.Flags().StringVar(&token, "token", "", "static bearer token for this source, if it requires one")
	cmd.Flags().StringToStringVar(&configFlag, "config", nil, "source-specific config entries, e.g. collectionsPath=collections")

	return cmd
}

func newSourceRemoveCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <name>",
		Short: "Remove a registered bundle source",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Manager.RemoveSource(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("removing source %s: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed source %q\n", args[0])
			return nil
		},
	}
}

func newSourceListCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered bundle sources",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sources, err := app.Store.ListSources(cmd.Context())
			if err != nil {
				return err
			}
			if len(sources) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no sources registered")
				return nil
			}
			for _, s := range sources {
				state := "enabled"
				if !s.Enabled {
					state = "disabled"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-20s %-24s %-8s priority=%-3d %s\n", s.ID, s.Type, state, s.Priority, s.URL)
			}
			return nil
		},
	}
}

func newSourceSyncCommand(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "sync [name]",
		Short: "Refresh the bundle listing for one or all sources",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if all || len(args) == 0 {
				results := app.Manager.SyncAll(cmd.Context())
				failed := 0
				for id, err := range results {
					if err != nil {
						failed++
						fmt.Fprintf(cmd.ErrOrStderr(), "sync %s: %v\n", id, err)
						continue
					}
					fmt.Fprintf(cmd.OutOrStdout(), "synced %s\n", id)
				}
				if failed > 0 {
					return fmt.Errorf("%d source(s) failed to sync", failed)
				}
				return nil
			}

			bundles, err := app.Manager.SyncSource(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("syncing %s: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "synced %s: %d bundle version(s)\n", args[0], len(bundles))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "sync every registered source")
	return cmd
}
