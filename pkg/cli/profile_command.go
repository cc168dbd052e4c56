package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/github/gh-bundles/pkg/registry"
)

func newProfileCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage bundle profiles",
	}
	cmd.AddCommand(newProfileListCommand(app), newProfileSaveCommand(app))
	return cmd
}

func newProfileListCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			profiles, err := app.Store.Profiles(cmd.Context())
			if err != nil {
				return err
			}
			if len(profiles) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no profiles saved")
				return nil
			}
			for _, p := range profiles {
				marker := ""
				if p.Active {
					marker = " (active)"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-20s %d entries%s\n", p.Name, len(p.Entries), marker)
			}
			return nil
		},
	}
}

func newProfileSaveCommand(app *App) *cobra.Command {
	var (
		name   string
		active bool
	)

	cmd := &cobra.Command{
		Use:   "save <id>",
		Short: "Create or update a profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			if name == "" {
				name = id
			}
			profile := registry.Profile{ID: id, Name: name, Active: active}
			if err := app.Store.SaveProfile(cmd.Context(), profile); err != nil {
				return fmt.Errorf("saving profile %s: %w", id, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "saved profile %q\n", id)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name (defaults to the id)")
	cmd.Flags().BoolVar(&active, "active", false, "mark this profile active")
	return cmd
}
