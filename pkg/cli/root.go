package cli

import (
	"github.com/spf13/cobra"

	"github.com/github/gh-bundles/pkg/constants"
)

// NewRootCommand builds the gh-bundles command tree.
func NewRootCommand(version string) *cobra.Command {
	app := NewApp()

	root := &cobra.Command{
		Use:          "bundles",
		Short:        "Discover, install and keep bundles of instruction files up to date",
		Long:         string(constants.CLIExtensionPrefix) + " manages versioned bundles of prompt and instruction files drawn from GitHub/GitLab releases, content-tree repositories, local directories, and plain HTTP catalogs.",
		Version:      version,
		SilenceUsage: true,
	}

	root.AddCommand(
		newSourceCommand(app),
		newSearchCommand(app),
		newInstallCommand(app),
		newUninstallCommand(app),
		newUpdateCommand(app),
		newListCommand(app),
		newProfileCommand(app),
		newDaemonCommand(app),
	)

	return root
}
