package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/github/gh-bundles/pkg/registry"
)

func newInstallCommand(app *App) *cobra.Command {
	var (
		scopeFlag  string
		version    string
		commitMode string
		profileID  string
	)

	cmd := &cobra.Command{
		Use:   "install <source> <bundle>",
		Short: "Install a bundle into the given scope",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sourceID, bundleID := args[0], args[1]

			dataDir := NewDataDirProvider()
			scope, workspaceRoot, err := app.currentScope(cmd.Context(), scopeFlag, dataDir)
			if err != nil {
				return err
			}

			opts := registry.InstallOptions{
				Scope:      scope,
				Version:    version,
				CommitMode: registry.CommitMode(commitMode),
				ProfileID:  profileID,
			}

			installed, err := app.Manager.InstallBundle(cmd.Context(), sourceID, bundleID, opts, workspaceRoot)
			if err != nil {
				return fmt.Errorf("installing %s from %s: %w", bundleID, sourceID, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "installed %s@%s into %s (%s)\n", installed.BundleID, installed.Version, installed.Scope, installed.InstallPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&scopeFlag, "scope", string(registry.ScopeUser), "install scope: user, workspace, repository")
	cmd.Flags().StringVar(&version, "version", "", "pin a specific version (defaults to latest)")
	cmd.Flags().StringVar(&commitMode, "commit-mode", string(registry.CommitModeCommit), "repository scope only: commit or local-only")
	cmd.Flags().StringVar(&profileID, "profile", "", "associate this install with a profile")
	return cmd
}

func newUninstallCommand(app *App) *cobra.Command {
	var scopeFlag string

	cmd := &cobra.Command{
		Use:   "uninstall <bundle>",
		Short: "Remove an installed bundle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bundleID := args[0]

			dataDir := NewDataDirProvider()
			scope, workspaceRoot, err := app.currentScope(cmd.Context(), scopeFlag, dataDir)
			if err != nil {
				return err
			}

			if err := app.Manager.UninstallBundle(cmd.Context(), bundleID, scope, workspaceRoot); err != nil {
				return fmt.Errorf("uninstalling %s: %w", bundleID, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "uninstalled %s from %s\n", bundleID, scope)
			return nil
		},
	}

	cmd.Flags().StringVar(&scopeFlag, "scope", string(registry.ScopeUser), "scope to uninstall from: user, workspace, repository")
	return cmd
}

func newListCommand(app *App) *cobra.Command {
	var scopeFlag string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List installed bundles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dataDir := NewDataDirProvider()
			scope, workspaceRoot, err := app.currentScope(cmd.Context(), scopeFlag, dataDir)
			if err != nil {
				return err
			}

			installed, err := app.Store.ListInstalled(cmd.Context(), scope, workspaceRoot)
			if err != nil {
				return err
			}
			if len(installed) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "no bundles installed in %s scope\n", scope)
				return nil
			}
			for _, ib := range installed {
				fmt.Fprintf(cmd.OutOrStdout(), "%-30s %-10s installed %s from %s -> %s\n",
					ib.BundleID, ib.Version, humanize.Time(ib.InstalledAt), ib.SourceID, ib.InstallPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&scopeFlag, "scope", string(registry.ScopeUser), "scope to list: user, workspace, repository")
	return cmd
}
