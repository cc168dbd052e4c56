package registry

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/sourcegraph/conc/pool"
	"golang.org/x/sync/singleflight"

	"github.com/github/gh-bundles/pkg/logger"
)

var managerLog = logger.New("registry:manager")

// AdapterFactory builds the right Adapter for a Source. Supplied by the
// caller so the manager never imports host-specific auth wiring directly.
type AdapterFactory func(source Source) (Adapter, error)

// Manager is the top-level orchestrator: it owns the store, installer,
// scope service and event emitter, and serializes concurrent operations
// against the same (bundleId, scope) pair or the same source, per spec.md
// §5's concurrency model.
type Manager struct {
	store     *Store
	installer *Installer
	scope     *ScopeService
	events    *EventEmitter
	newAdapter AdapterFactory

	mu       sync.Mutex
	adapters map[string]Adapter

	installGroup singleflight.Group // key: bundleId + scope
	syncGroup    singleflight.Group // key: sourceId
}

// NewManager builds a Manager. adapterFactory is called once per source and
// the resulting Adapter is cached for the lifetime of the Manager.
func NewManager(store *Store, installer *Installer, scope *ScopeService, events *EventEmitter, adapterFactory AdapterFactory) *Manager {
	return &Manager{
		store:      store,
		installer:  installer,
		scope:      scope,
		events:     events,
		newAdapter: adapterFactory,
		adapters:   map[string]Adapter{},
	}
}

func (m *Manager) adapterFor(source Source) (Adapter, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a, ok := m.adapters[source.ID]; ok {
		return a, nil
	}
	a, err := m.newAdapter(source)
	if err != nil {
		return nil, err
	}
	m.adapters[source.ID] = a
	return a, nil
}

func installKey(bundleID string, scope Scope) string {
	return bundleID + "\x00" + string(scope)
}

// AddSource validates and persists a new source.
func (m *Manager) AddSource(ctx context.Context, source Source) error {
	adapter, err := m.newAdapter(source)
	if err != nil {
		return err
	}
	if err := adapter.Validate(ctx); err != nil {
		return err
	}
	if err := m.store.AddSource(ctx, source); err != nil {
		return err
	}
	m.mu.Lock()
	m.adapters[source.ID] = adapter
	m.mu.Unlock()
	return nil
}

// RemoveSource deletes a source and its cache.
func (m *Manager) RemoveSource(ctx context.Context, sourceID string) error {
	if err := m.store.RemoveSource(ctx, sourceID); err != nil {
		return err
	}
	m.mu.Lock()
	delete(m.adapters, sourceID)
	m.mu.Unlock()
	return nil
}

// SyncSource fetches the current bundle list from one source and caches it,
// de-duplicating concurrent syncs of the same source (spec.md §5: "only one
// sync per source in flight").
func (m *Manager) SyncSource(ctx context.Context, sourceID string) ([]Bundle, error) {
	v, err, _ := m.syncGroup.Do(sourceID, func() (any, error) {
		sources, err := m.store.ListSources(ctx)
		if err != nil {
			return nil, err
		}
		var source *Source
		for i := range sources {
			if sources[i].ID == sourceID {
				source = &sources[i]
				break
			}
		}
		if source == nil {
			return nil, NewError(KindNotFound, "source not found: "+sourceID)
		}

		adapter, err := m.adapterFor(*source)
		if err != nil {
			return nil, err
		}
		bundles, err := adapter.FetchBundles(ctx)
		if err != nil {
			return nil, err
		}
		if err := m.store.CacheBundles(ctx, sourceID, bundles); err != nil {
			return nil, err
		}
		m.events.Emit(Event{Kind: EventSourceSynced, SourceID: sourceID})
		return bundles, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]Bundle), nil
}

// SyncAll syncs every enabled source concurrently, bounded by a small worker
// pool (grounded on the teacher's sourcegraph/conc usage for bounded
// fan-out), and returns the per-source errors keyed by source id.
func (m *Manager) SyncAll(ctx context.Context) map[string]error {
	sources, err := m.store.ListSources(ctx)
	if err != nil {
		return map[string]error{"*": err}
	}

	var mu sync.Mutex
	errs := map[string]error{}
	p := pool.New().WithMaxGoroutines(4)
	for _, source := range sources {
		if !source.Enabled {
			continue
		}
		id := source.ID
		p.Go(func() {
			if _, err := m.SyncSource(ctx, id); err != nil {
				mu.Lock()
				errs[id] = err
				mu.Unlock()
			}
		})
	}
	p.Wait()
	return errs
}

// SearchBundles consolidates cached bundles across all sources into one
// identity-grouped result set, filtered by query (spec.md §4.6).
func (m *Manager) SearchBundles(ctx context.Context, query SearchQuery) ([]ConsolidatedBundle, error) {
	sources, err := m.store.ListSources(ctx)
	if err != nil {
		return nil, err
	}

	groups := map[BundleIdentity]*ConsolidatedBundle{}
	var order []BundleIdentity

	for _, source := range sources {
		if query.SourceID != "" && source.ID != query.SourceID {
			continue
		}
		bundles, err := m.store.CachedBundles(ctx, source.ID)
		if err != nil {
			return nil, err
		}
		for _, b := range bundles {
			if !matchesQuery(b, query) {
				continue
			}
			identity := ExtractBundleIdentity(b.ID, b.SourceType)
			g, ok := groups[identity]
			if !ok {
				g = &ConsolidatedBundle{Bundle: b}
				groups[identity] = g
				order = append(order, identity)
			} else if CompareVersions(b.Version, g.Bundle.Version) > 0 {
				g.Bundle = b
			}
			g.Versions = append(g.Versions, VersionRef{Version: b.Version, BundleID: b.ID})
		}
	}

	out := make([]ConsolidatedBundle, 0, len(order))
	for _, id := range order {
		g := groups[id]
		sort.Slice(g.Versions, func(i, j int) bool {
			return CompareVersions(g.Versions[i].Version, g.Versions[j].Version) > 0
		})
		out = append(out, *g)
	}
	return out, nil
}

func matchesQuery(b Bundle, query SearchQuery) bool {
	if query.Tag != "" {
		found := false
		for _, t := range b.Tags {
			if strings.EqualFold(t, query.Tag) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if query.Text != "" {
		text := strings.ToLower(query.Text)
		if !strings.Contains(strings.ToLower(b.Name), text) && !strings.Contains(strings.ToLower(b.Description), text) {
			return false
		}
	}
	return true
}

// InstallBundle downloads and materialises bundleID from sourceID under
// opts.Scope, de-duplicating concurrent installs of the same (bundleId,
// scope) pair (spec.md §5).
func (m *Manager) InstallBundle(ctx context.Context, sourceID, bundleID string, opts InstallOptions, workspaceRoot string) (InstalledBundle, error) {
	key := installKey(bundleID, opts.Scope)
	v, err, _ := m.installGroup.Do(key, func() (any, error) {
		return m.doInstall(ctx, sourceID, bundleID, opts, workspaceRoot, EventBundleInstalled)
	})
	if err != nil {
		return InstalledBundle{}, err
	}
	return v.(InstalledBundle), nil
}

func (m *Manager) doInstall(ctx context.Context, sourceID, bundleID string, opts InstallOptions, workspaceRoot string, emitKind EventKind) (InstalledBundle, error) {
	sources, err := m.store.ListSources(ctx)
	if err != nil {
		return InstalledBundle{}, err
	}
	var source *Source
	for i := range sources {
		if sources[i].ID == sourceID {
			source = &sources[i]
			break
		}
	}
	if source == nil {
		return InstalledBundle{}, NewError(KindNotFound, "source not found: "+sourceID)
	}

	adapter, err := m.adapterFor(*source)
	if err != nil {
		return InstalledBundle{}, err
	}

	bundle, err := adapter.FetchMetadata(ctx, bundleID)
	if err != nil {
		return InstalledBundle{}, err
	}

	manifest, err := m.fetchManifest(ctx, adapter, bundle)
	if err != nil {
		return InstalledBundle{}, err
	}

	installPath, err := m.scope.InstallPath(opts.Scope, bundleID, workspaceRoot)
	if err != nil {
		return InstalledBundle{}, err
	}

	if err := m.installer.Install(ctx, adapter, bundle, manifest, installPath); err != nil {
		return InstalledBundle{}, err
	}

	if opts.Scope == ScopeRepository && opts.CommitMode != "" {
		if err := m.scope.ApplyCommitMode(workspaceRoot, installPath, opts.CommitMode); err != nil {
			managerLog.Printf("installed %s but failed to apply commit mode: %v", bundleID, err)
		}
	}

	ib := InstalledBundle{
		BundleID:    bundleID,
		Version:     bundle.Version,
		Scope:       opts.Scope,
		CommitMode:  opts.CommitMode,
		InstallPath: installPath,
		Manifest:    manifest,
		SourceID:    sourceID,
		SourceType:  bundle.SourceType,
		ProfileID:   opts.ProfileID,
	}
	if err := m.store.SaveInstalled(ctx, ib, workspaceRoot); err != nil {
		return InstalledBundle{}, err
	}

	m.events.Emit(Event{Kind: emitKind, SourceID: sourceID, BundleID: bundleID, Scope: opts.Scope, Version: bundle.Version})
	return ib, nil
}

// fetchManifest resolves bundle's deployment manifest. Release-hosted
// bundles carry a deployment-manifest file inside their archive; every
// other source type has no separate manifest artifact, so the installer
// receives the zero value and includes every fetched/copied file
// (matchesPatterns treats an empty include list as include-all).
func (m *Manager) fetchManifest(ctx context.Context, adapter Adapter, bundle Bundle) (DeploymentManifest, error) {
	if bundle.SourceType == SourceTypeGitHubRelease || bundle.SourceType == SourceTypeGitLab {
		raw, err := adapter.DownloadBundle(ctx, bundle)
		if err != nil {
			return DeploymentManifest{}, err
		}
		return loadManifestFromArchive(raw)
	}
	return DeploymentManifest{}, nil
}

// resolveUpdateTarget returns the id of the highest cached version sharing
// current's bundle identity (spec.md §4.6), i.e. the version UpdateBundle
// should actually install. For release-hosted sources this is a different,
// higher-versioned bundle id than current.BundleID; for other source types
// the identity and the id are the same string.
func (m *Manager) resolveUpdateTarget(ctx context.Context, current InstalledBundle) (string, error) {
	bundles, err := m.store.CachedBundles(ctx, current.SourceID)
	if err != nil {
		return "", err
	}
	identity := ExtractBundleIdentity(current.BundleID, current.SourceType)
	var latest *Bundle
	for i := range bundles {
		if ExtractBundleIdentity(bundles[i].ID, bundles[i].SourceType) != identity {
			continue
		}
		if latest == nil || CompareVersions(bundles[i].Version, latest.Version) > 0 {
			latest = &bundles[i]
		}
	}
	if latest == nil {
		return "", NewError(KindNotFound, "no cached version found for "+string(identity))
	}
	return latest.ID, nil
}

// UpdateBundle re-installs bundleID at its source's current highest known
// version, reusing the installer's lockfile-conflict handling. It emits
// exactly one onBundleUpdated event; it never emits onBundleInstalled or
// onBundleUninstalled for this transition (spec.md §4.2, §5).
func (m *Manager) UpdateBundle(ctx context.Context, sourceID, bundleID string, scope Scope, workspaceRoot string, surface InteractiveSurface) (InstalledBundle, error) {
	installed, err := m.store.ListInstalled(ctx, scope, workspaceRoot)
	if err != nil {
		return InstalledBundle{}, err
	}
	var current *InstalledBundle
	for i := range installed {
		if installed[i].BundleID == bundleID {
			current = &installed[i]
			break
		}
	}
	if current == nil {
		return InstalledBundle{}, NewError(KindNotFound, "bundle "+bundleID+" is not installed in scope "+string(scope))
	}

	targetBundleID, err := m.resolveUpdateTarget(ctx, *current)
	if err != nil {
		return InstalledBundle{}, err
	}

	if surface != nil {
		lf, err := readLockfile(current.InstallPath)
		if err != nil {
			return InstalledBundle{}, err
		}
		diffs, err := detectModifiedFiles(current.InstallPath, lf)
		if err != nil {
			return InstalledBundle{}, err
		}
		resolution, err := confirmOverwrite(ctx, surface, bundleID, diffs)
		if err != nil {
			return InstalledBundle{}, err
		}
		if resolution == ResolutionCancel {
			return InstalledBundle{}, NewError(KindCancelled, "update cancelled: local modifications were not overwritten")
		}
	}

	key := installKey(targetBundleID, scope)
	v, err, _ := m.installGroup.Do(key, func() (any, error) {
		return m.doInstall(ctx, sourceID, targetBundleID, InstallOptions{
			Scope:      scope,
			CommitMode: current.CommitMode,
			ProfileID:  current.ProfileID,
		}, workspaceRoot, EventBundleUpdated)
	})
	if err != nil {
		return InstalledBundle{}, err
	}
	ib := v.(InstalledBundle)

	if targetBundleID != current.BundleID {
		if err := m.store.RemoveInstalled(ctx, current.BundleID, scope, workspaceRoot); err != nil {
			managerLog.Printf("updated %s to %s but failed to remove old record: %v", current.BundleID, targetBundleID, err)
		}
	}

	return ib, nil
}

// UninstallBundle removes an installed bundle's files and record.
func (m *Manager) UninstallBundle(ctx context.Context, bundleID string, scope Scope, workspaceRoot string) error {
	key := installKey(bundleID, scope)
	_, err, _ := m.installGroup.Do(key, func() (any, error) {
		return nil, m.doUninstall(ctx, bundleID, scope, workspaceRoot)
	})
	return err
}

func (m *Manager) doUninstall(ctx context.Context, bundleID string, scope Scope, workspaceRoot string) error {
	installed, err := m.store.ListInstalled(ctx, scope, workspaceRoot)
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
		return NewError(KindNotFound, "bundle "+bundleID+" is not installed in scope "+string(scope))
	}

	scopeRoot, err := m.scope.ScopeRoot(scope, workspaceRoot)
	if err != nil {
		return err
	}
	if err := m.installer.Uninstall(ctx, scopeRoot, ib.InstallPath); err != nil {
		return err
	}
	if err := m.store.RemoveInstalled(ctx, bundleID, scope, workspaceRoot); err != nil {
		return err
	}

	m.events.Emit(Event{Kind: EventBundleUninstalled, SourceID: ib.SourceID, BundleID: bundleID, Scope: scope, Version: ib.Version})
	return nil
}

// CheckUpdates compares installed bundles against their source's currently
// cached versions, returning every bundle with a newer version available.
func (m *Manager) CheckUpdates(ctx context.Context, scope Scope, workspaceRoot string) ([]UpdateCandidate, error) {
	installed, err := m.store.ListInstalled(ctx, scope, workspaceRoot)
	if err != nil {
		return nil, err
	}

	var candidates []UpdateCandidate
	for _, ib := range installed {
		bundles, err := m.store.CachedBundles(ctx, ib.SourceID)
		if err != nil {
			managerLog.Printf("skipping update check for %s: %v", ib.BundleID, err)
			continue
		}
		identity := ExtractBundleIdentity(ib.BundleID, ib.SourceType)
		var latest *Bundle
		for i := range bundles {
			if ExtractBundleIdentity(bundles[i].ID, bundles[i].SourceType) != identity {
				continue
			}
			if latest == nil || CompareVersions(bundles[i].Version, latest.Version) > 0 {
				latest = &bundles[i]
			}
		}
		if latest == nil {
			continue
		}
		if IsUpdateAvailable(ib.Version, latest.Version) {
			candidates = append(candidates, UpdateCandidate{
				BundleID:       ib.BundleID,
				CurrentVersion: ib.Version,
				LatestVersion:  latest.Version,
				Changelog:      latest.Description,
				ReleaseDate:    latest.LastUpdated,
				DownloadURL:    latest.DownloadURL,
			})
		}
	}
	return candidates, nil
}
