package registry

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/github/gh-bundles/pkg/logger"
)

var scopeLog = logger.New("registry:scope")

// ScopeService resolves where a bundle's files should live on disk for one
// scope, and manages the repository scope's git-exclude bookkeeping
// (spec.md §4.5).
type ScopeService struct {
	dataDir DataDirProvider
}

// NewScopeService builds a ScopeService.
func NewScopeService(dataDir DataDirProvider) *ScopeService {
	return &ScopeService{dataDir: dataDir}
}

// InstallPath returns the directory a bundle's files should be materialised
// under for scope.
func (s *ScopeService) InstallPath(scope Scope, bundleID, workspaceRoot string) (string, error) {
	switch scope {
	case ScopeUser:
		root, err := s.dataDir.UserDataDir()
		if err != nil {
			return "", Wrap(KindFilesystem, "failed to resolve user data directory", err)
		}
		return filepath.Join(root, "bundles", sanitizeFilename(bundleID)), nil
	case ScopeWorkspace, ScopeRepository:
		if workspaceRoot == "" {
			return "", NewError(KindNoWorkspace, "scope "+string(scope)+" requires an open workspace")
		}
		return filepath.Join(workspaceRoot, ".github", "gh-bundles", "bundles", sanitizeFilename(bundleID)), nil
	default:
		return "", NewError(KindValidation, "unknown scope: "+string(scope))
	}
}

// ScopeRoot returns the directory Installer.Uninstall should treat as the
// containment boundary for scope.
func (s *ScopeService) ScopeRoot(scope Scope, workspaceRoot string) (string, error) {
	switch scope {
	case ScopeUser:
		root, err := s.dataDir.UserDataDir()
		if err != nil {
			return "", Wrap(KindFilesystem, "failed to resolve user data directory", err)
		}
		return filepath.Join(root, "bundles"), nil
	case ScopeWorkspace, ScopeRepository:
		if workspaceRoot == "" {
			return "", NewError(KindNoWorkspace, "scope "+string(scope)+" requires an open workspace")
		}
		return filepath.Join(workspaceRoot, ".github", "gh-bundles", "bundles"), nil
	default:
		return "", NewError(KindValidation, "unknown scope: "+string(scope))
	}
}

// excludeRelPath is the bundle's install directory, relative to the
// workspace root, recorded in .git/info/exclude for a local-only repository-scope install.
func excludeRelPath(workspaceRoot, installPath string) (string, error) {
	rel, err := filepath.Rel(workspaceRoot, installPath)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}

// ApplyCommitMode updates .git/info/exclude so a local-only repository-scope
// bundle never shows up in `git status`, without touching the repository's
// tracked .gitignore (spec.md §4.5: "local-only bundles are excluded via
// .git/info/exclude, never committed .gitignore entries").
func (s *ScopeService) ApplyCommitMode(workspaceRoot, installPath string, mode CommitMode) error {
	excludePath := filepath.Join(workspaceRoot, ".git", "info", "exclude")
	rel, err := excludeRelPath(workspaceRoot, installPath)
	if err != nil {
		return Wrap(KindFilesystem, "failed to compute exclude-relative path", err)
	}

	entries, err := readExcludeEntries(excludePath)
	if err != nil {
		return err
	}

	switch mode {
	case CommitModeLocalOnly:
		if !containsLine(entries, rel) {
			entries = append(entries, rel)
		}
	case CommitModeCommit:
		entries = removeLine(entries, rel)
	}

	return writeExcludeEntries(excludePath, entries)
}

func readExcludeEntries(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, Wrap(KindFilesystem, "failed to read .git/info/exclude", err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	out := lines[:0]
	for _, l := range lines {
		if l != "" {
			out = append(out, l)
		}
	}
	return out, nil
}

func writeExcludeEntries(path string, entries []string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return Wrap(KindFilesystem, "failed to create .git/info directory", err)
	}
	content := strings.Join(entries, "\n")
	if len(entries) > 0 {
		content += "\n"
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return Wrap(KindFilesystem, "failed to write .git/info/exclude", err)
	}
	return nil
}

func containsLine(lines []string, target string) bool {
	for _, l := range lines {
		if l == target {
			return true
		}
	}
	return false
}

func removeLine(lines []string, target string) []string {
	out := lines[:0]
	for _, l := range lines {
		if l != target {
			out = append(out, l)
		}
	}
	return out
}

// Move relocates an installed bundle's files from one scope to another,
// implementing the Scope Conflict Resolver of spec.md §4.5: if the
// destination scope already has the bundle installed, the caller must
// resolve that before calling Move (Move itself only moves files/records).
func (s *ScopeService) Move(ctx context.Context, store *Store, bundleID string, from, to Scope, workspaceRoot string) error {
	if from == to {
		return NewError(KindValidation, "source and destination scope are identical")
	}

	installed, err := store.ListInstalled(ctx, from, workspaceRoot)
	if err != nil {
		return err
	}
	var ib *InstalledBundle
	for i := range installed {
		if installed[i].BundleID == bundleID {
			ib = &installed[i]
			break
		}
	}
	if ib == nil {
		return NewError(KindNotFound, "bundle "+bundleID+" is not installed in scope "+string(from))
	}

	newPath, err := s.InstallPath(to, bundleID, workspaceRoot)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(newPath), 0o755); err != nil {
		return Wrap(KindFilesystem, "failed to create destination directory", err)
	}
	if err := os.Rename(ib.InstallPath, newPath); err != nil {
		return Wrap(KindFilesystem, "failed to move bundle files", err)
	}

	if err := store.RemoveInstalled(ctx, bundleID, from, workspaceRoot); err != nil {
		scopeLog.Printf("moved files but failed to remove old record for %s: %v", bundleID, err)
	}

	moved := *ib
	moved.Scope = to
	moved.InstallPath = newPath
	return store.SaveInstalled(ctx, moved, workspaceRoot)
}
