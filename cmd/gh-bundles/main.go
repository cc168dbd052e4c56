// Command gh-bundles is a gh CLI extension that discovers, installs, and
// keeps bundles of instruction files up to date from GitHub/GitLab
// releases, content-tree repositories, local directories, and HTTP
// catalogs.
package main

import (
	"fmt"
	"os"

	"github.com/github/gh-bundles/pkg/cli"
)

// version is set by GoReleaser at build time.
var version = "dev"

func main() {
	root := cli.NewRootCommand(version)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
