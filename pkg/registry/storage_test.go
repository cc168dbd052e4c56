package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDataDir struct {
	userDir      string
	workspaceDir string
	hasWorkspace bool
}

func (f fakeDataDir) UserDataDir() (string, error) { return f.userDir, nil }

func (f fakeDataDir) WorkspaceRoot() (string, bool, error) {
	return f.workspaceDir, f.hasWorkspace, nil
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(fakeDataDir{userDir: t.TempDir()})
}

func TestStoreAddListRemoveSource(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	src := Source{ID: "acme", Name: "Acme", Type: SourceTypeGitHubRelease, URL: "https://github.com/acme/bundles", Enabled: true}
	require.NoError(t, store.AddSource(ctx, src))

	sources, err := store.ListSources(ctx)
	require.NoError(t, err)
	require.Len(t, sources, 1)
	assert.Equal(t, "acme", sources[0].ID)

	err = store.AddSource(ctx, src)
	assert.Equal(t, KindValidation, KindOf(err))

	require.NoError(t, store.RemoveSource(ctx, "acme"))
	sources, err = store.ListSources(ctx)
	require.NoError(t, err)
	assert.Empty(t, sources)

	err = store.RemoveSource(ctx, "acme")
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestStoreCacheBundlesRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	bundles := []Bundle{{ID: "acme/agent", Version: "1.0.0"}}
	require.NoError(t, store.CacheBundles(ctx, "acme", bundles))

	cached, err := store.CachedBundles(ctx, "acme")
	require.NoError(t, err)
	require.Len(t, cached, 1)
	assert.Equal(t, "acme/agent", cached[0].ID)

	uncached, err := store.CachedBundles(ctx, "nonexistent")
	require.NoError(t, err)
	assert.Nil(t, uncached)
}

func TestStoreInstalledBundleLifecycle(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	ib := InstalledBundle{BundleID: "acme/agent", Version: "1.0.0", Scope: ScopeUser}
	require.NoError(t, store.SaveInstalled(ctx, ib, ""))

	installed, err := store.ListInstalled(ctx, ScopeUser, "")
	require.NoError(t, err)
	require.Len(t, installed, 1)
	assert.Equal(t, "acme/agent", installed[0].BundleID)

	require.NoError(t, store.RemoveInstalled(ctx, "acme/agent", ScopeUser, ""))
	installed, err = store.ListInstalled(ctx, ScopeUser, "")
	require.NoError(t, err)
	assert.Empty(t, installed)
}

func TestStoreUpdatePreferenceDefaultsToAutoUpdateEnabled(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	enabled, err := store.UpdatePreference(ctx, "acme/agent")
	require.NoError(t, err)
	assert.False(t, enabled)

	require.NoError(t, store.SetUpdatePreference(ctx, "acme/agent", true))
	enabled, err = store.UpdatePreference(ctx, "acme/agent")
	require.NoError(t, err)
	assert.True(t, enabled)
}

func TestStoreProfiles(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.SaveProfile(ctx, Profile{ID: "default", Name: "Default"}))
	require.NoError(t, store.SaveProfile(ctx, Profile{ID: "default", Name: "Default Renamed", Active: true}))

	profiles, err := store.Profiles(ctx)
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.Equal(t, "Default Renamed", profiles[0].Name)
	assert.True(t, profiles[0].Active)
}
