package cli

import (
	"os/exec"
	"strings"

	"github.com/github/gh-bundles/pkg/logger"
)

var workspaceLog = logger.New("cli:workspace")

func isGitRepo() bool {
	cmd := exec.Command("git", "rev-parse", "--git-dir")
	return cmd.Run() == nil
}

// findGitRoot finds the root directory of the git repository containing the
// current working directory, used as the workspace/repository scope root.
func findGitRoot() (string, error) {
	cmd := exec.Command("git", "rev-parse", "--show-toplevel")
	output, err := cmd.Output()
	if err != nil {
		workspaceLog.Printf("not in a git repository: %v", err)
		return "", err
	}
	root := strings.TrimSpace(string(output))
	workspaceLog.Printf("found git root: %s", root)
	return root, nil
}
