package registry

import (
	"context"
	"strings"

	"github.com/github/gh-bundles/pkg/registry/update"
)

// scopeKey encodes (scope, workspaceRoot) as the single string key the
// update package's Checker/Installer interfaces operate over.
func scopeKey(scope Scope, workspaceRoot string) string {
	return string(scope) + "\x00" + workspaceRoot
}

func parseScopeKey(key string) (Scope, string) {
	parts := strings.SplitN(key, "\x00", 2)
	if len(parts) != 2 {
		return Scope(key), ""
	}
	return Scope(parts[0]), parts[1]
}

// CheckUpdatesForKey adapts Manager.CheckUpdates to update.Checker.
func (m *Manager) CheckUpdatesForKey(ctx context.Context, key string) ([]update.Candidate, error) {
	scope, workspaceRoot := parseScopeKey(key)
	candidates, err := m.CheckUpdates(ctx, scope, workspaceRoot)
	if err != nil {
		return nil, err
	}
	out := make([]update.Candidate, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, update.Candidate{
			BundleID:       c.BundleID,
			CurrentVersion: c.CurrentVersion,
			LatestVersion:  c.LatestVersion,
			Changelog:      c.Changelog,
			DownloadURL:    c.DownloadURL,
		})
	}
	return out, nil
}

// InstallCandidate adapts Manager.UpdateBundle to update.Installer, applying
// one already-identified update candidate without a local-modification
// prompt (auto-update never blocks on interactive confirmation).
func (m *Manager) InstallCandidate(ctx context.Context, key string, candidate update.Candidate) error {
	scope, workspaceRoot := parseScopeKey(key)
	installed, err := m.store.ListInstalled(ctx, scope, workspaceRoot)
	if err != nil {
		return err
	}
	for _, ib := range installed {
		if ib.BundleID == candidate.BundleID {
			_, err := m.UpdateBundle(ctx, ib.SourceID, ib.BundleID, scope, workspaceRoot, nil)
			return err
		}
	}
	return NewError(KindNotFound, "bundle "+candidate.BundleID+" is not installed in "+string(scope))
}

// UpdatePreferenceForBundle adapts Store.UpdatePreference to
// update.PreferenceStore.
func (m *Manager) UpdatePreferenceForBundle(ctx context.Context, bundleID string) (bool, error) {
	return m.store.UpdatePreference(ctx, bundleID)
}

// ScopeKey exposes scopeKey for callers composing a Scheduler/AutoUpdateService.
func ScopeKey(scope Scope, workspaceRoot string) string { return scopeKey(scope, workspaceRoot) }
