package registry

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScopeServiceInstallPath(t *testing.T) {
	userDir := t.TempDir()
	workspaceDir := t.TempDir()
	svc := NewScopeService(fakeDataDir{userDir: userDir, workspaceDir: workspaceDir, hasWorkspace: true})

	userPath, err := svc.InstallPath(ScopeUser, "acme/agent", "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(userDir, "bundles", sanitizeFilename("acme/agent")), userPath)

	wsPath, err := svc.InstallPath(ScopeWorkspace, "acme/agent", workspaceDir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(workspaceDir, ".github", "gh-bundles", "bundles", sanitizeFilename("acme/agent")), wsPath)

	_, err = svc.InstallPath(ScopeRepository, "acme/agent", "")
	assert.Equal(t, KindNoWorkspace, KindOf(err))

	_, err = svc.InstallPath(Scope("bogus"), "acme/agent", "")
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestScopeServiceScopeRoot(t *testing.T) {
	userDir := t.TempDir()
	svc := NewScopeService(fakeDataDir{userDir: userDir})

	root, err := svc.ScopeRoot(ScopeUser, "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(userDir, "bundles"), root)

	_, err = svc.ScopeRoot(ScopeWorkspace, "")
	assert.Equal(t, KindNoWorkspace, KindOf(err))
}

func TestApplyCommitModeLocalOnlyAddsExcludeEntry(t *testing.T) {
	workspaceRoot := t.TempDir()
	installPath := filepath.Join(workspaceRoot, ".github", "gh-bundles", "bundles", "acme_agent")
	require.NoError(t, os.MkdirAll(installPath, 0o755))

	svc := NewScopeService(fakeDataDir{})
	require.NoError(t, svc.ApplyCommitMode(workspaceRoot, installPath, CommitModeLocalOnly))

	excludePath := filepath.Join(workspaceRoot, ".git", "info", "exclude")
	data, err := os.ReadFile(excludePath)
	require.NoError(t, err)
	assert.Contains(t, string(data), ".github/gh-bundles/bundles/acme_agent")

	// applying again should not duplicate the entry
	require.NoError(t, svc.ApplyCommitMode(workspaceRoot, installPath, CommitModeLocalOnly))
	entries, err := readExcludeEntries(excludePath)
	require.NoError(t, err)
	count := 0
	for _, e := range entries {
		if e == ".github/gh-bundles/bundles/acme_agent" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestApplyCommitModeCommitRemovesExcludeEntry(t *testing.T) {
	workspaceRoot := t.TempDir()
	installPath := filepath.Join(workspaceRoot, ".github", "gh-bundles", "bundles", "acme_agent")
	require.NoError(t, os.MkdirAll(installPath, 0o755))

	svc := NewScopeService(fakeDataDir{})
	require.NoError(t, svc.ApplyCommitMode(workspaceRoot, installPath, CommitModeLocalOnly))
	require.NoError(t, svc.ApplyCommitMode(workspaceRoot, installPath, CommitModeCommit))

	excludePath := filepath.Join(workspaceRoot, ".git", "info", "exclude")
	entries, err := readExcludeEntries(excludePath)
	require.NoError(t, err)
	assert.NotContains(t, entries, ".github/gh-bundles/bundles/acme_agent")
}

func TestApplyCommitModePreservesExistingEntries(t *testing.T) {
	workspaceRoot := t.TempDir()
	excludePath := filepath.Join(workspaceRoot, ".git", "info", "exclude")
	require.NoError(t, os.MkdirAll(filepath.Dir(excludePath), 0o755))
	require.NoError(t, os.WriteFile(excludePath, []byte("*.log\nbuild/\n"), 0o644))

	installPath := filepath.Join(workspaceRoot, ".github", "gh-bundles", "bundles", "acme_agent")
	require.NoError(t, os.MkdirAll(installPath, 0o755))

	svc := NewScopeService(fakeDataDir{})
	require.NoError(t, svc.ApplyCommitMode(workspaceRoot, installPath, CommitModeLocalOnly))

	entries, err := readExcludeEntries(excludePath)
	require.NoError(t, err)
	assert.Contains(t, entries, "*.log")
	assert.Contains(t, entries, "build/")
	assert.Contains(t, entries, ".github/gh-bundles/bundles/acme_agent")
}

func TestScopeServiceMove(t *testing.T) {
	ctx := context.Background()
	workspaceRoot := t.TempDir()
	userDir := t.TempDir()
	store := NewStore(fakeDataDir{userDir: userDir, workspaceDir: workspaceRoot, hasWorkspace: true})
	svc := NewScopeService(fakeDataDir{userDir: userDir, workspaceDir: workspaceRoot, hasWorkspace: true})

	oldPath := filepath.Join(userDir, "bundles", "acme_agent")
	require.NoError(t, os.MkdirAll(oldPath, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(oldPath, "file.md"), []byte("content"), 0o644))

	ib := InstalledBundle{BundleID: "acme/agent", Version: "1.0.0", Scope: ScopeUser, InstallPath: oldPath}
	require.NoError(t, store.SaveInstalled(ctx, ib, ""))

	require.NoError(t, svc.Move(ctx, store, "acme/agent", ScopeUser, ScopeWorkspace, workspaceRoot))

	_, err := os.Stat(oldPath)
	assert.True(t, os.IsNotExist(err))

	fromList, err := store.ListInstalled(ctx, ScopeUser, "")
	require.NoError(t, err)
	assert.Empty(t, fromList)

	toList, err := store.ListInstalled(ctx, ScopeWorkspace, workspaceRoot)
	require.NoError(t, err)
	require.Len(t, toList, 1)
	assert.Equal(t, "acme/agent", toList[0].BundleID)
	newPath := toList[0].InstallPath
	data, err := os.ReadFile(filepath.Join(newPath, "file.md"))
	require.NoError(t, err)
	assert.Equal(t, "content", string(data))
}

func TestScopeServiceMoveSameScopeIsError(t *testing.T) {
	svc := NewScopeService(fakeDataDir{})
	err := svc.Move(context.Background(), nil, "acme/agent", ScopeUser, ScopeUser, "")
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestScopeServiceMoveNotInstalledIsError(t *testing.T) {
	ctx := context.Background()
	userDir := t.TempDir()
	store := NewStore(fakeDataDir{userDir: userDir})
	svc := NewScopeService(fakeDataDir{userDir: userDir})

	err := svc.Move(ctx, store, "acme/missing", ScopeUser, ScopeWorkspace, t.TempDir())
	assert.Equal(t, KindNotFound, KindOf(err))
}
