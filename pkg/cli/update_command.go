package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/github/gh-bundles/pkg/registry"
)

func newUpdateCommand(app *App) *cobra.Command {
	var (
		scopeFlag string
		checkOnly bool
	)

	cmd := &cobra.Command{
		Use:   "update [bundle]",
		Short: "Check for and apply bundle updates",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dataDir := NewDataDirProvider()
			scope, workspaceRoot, err := app.currentScope(cmd.Context(), scopeFlag, dataDir)
			if err != nil {
				return err
			}

			candidates, err := app.Manager.CheckUpdates(cmd.Context(), scope, workspaceRoot)
			if err != nil {
				return fmt.Errorf("checking for updates: %w", err)
			}
			if len(candidates) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "everything is up to date")
				return nil
			}

			for _, c := range candidates {
				fmt.Fprintf(cmd.OutOrStdout(), "%-30s %s -> %s\n", c.BundleID, c.CurrentVersion, c.LatestVersion)
			}
			if checkOnly {
				return nil
			}

			installed, err := app.Store.ListInstalled(cmd.Context(), scope, workspaceRoot)
			if err != nil {
				return err
			}
			bySourceID := make(map[string]string, len(installed))
			for _, ib := range installed {
				bySourceID[ib.BundleID] = ib.SourceID
			}

			for _, c := range candidates {
				if len(args) == 1 && args[0] != c.BundleID {
					continue
				}
				sourceID := bySourceID[c.BundleID]
				updated, err := app.Manager.UpdateBundle(cmd.Context(), sourceID, c.BundleID, scope, workspaceRoot, app.Surface)
				if err != nil {
					if registry.KindOf(err) == registry.KindCancelled {
						fmt.Fprintf(cmd.OutOrStdout(), "skipped %s\n", c.BundleID)
						continue
					}
					return fmt.Errorf("updating %s: %w", c.BundleID, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "updated %s to %s\n", updated.BundleID, updated.Version)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&scopeFlag, "scope", string(registry.ScopeUser), "scope to check: user, workspace, repository")
	cmd.Flags().BoolVar(&checkOnly, "check-only", false, "only report available updates, do not apply them")
	return cmd
}
