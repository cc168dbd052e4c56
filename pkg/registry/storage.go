package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/github/gh-bundles/pkg/fileutil"
	"github.com/github/gh-bundles/pkg/logger"
)

var storageLog = logger.New("registry:storage")

// config.json lives at the root of the user data directory; per-source
// caches and user-scope installed-bundle records live underneath it, while
// workspace- and repository-scope records live under the workspace root's
// .github/gh-bundles/installed directory (spec.md §4.3).
const (
	configFileName       = "config.json"
	sourcesCacheDirName  = "sources"
	bundlesCacheDirName  = "bundles"
	installedUserDirName = "installed/user"
	installedRepoDirName = "installed"
)

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// sanitizeFilename converts an arbitrary id (bundle id, source id) into a
// safe cache filename, per spec.md §4.3's filename-sanitisation rule.
func sanitizeFilename(id string) string {
	cleaned := unsafeFilenameChars.ReplaceAllString(id, "_")
	cleaned = strings.Trim(cleaned, "_")
	if cleaned == "" {
		cleaned = "_"
	}
	return cleaned
}

// config is the persisted root document at config.json.
type config struct {
	Sources            []Source          `json:"sources"`
	Profiles           []Profile         `json:"profiles,omitempty"`
	UpdatePreferences  map[string]bool   `json:"updatePreferences,omitempty"`
	AutoUpdateEnabled  bool              `json:"autoUpdateEnabled"`
}

// Store is the filesystem-backed persistence layer: config.json for sources
// and profiles, a per-source bundle cache, and per-scope installed-bundle
// records. It memoizes config.json in memory and invalidates the memo
// atomically on every write, per spec.md §4.3.
type Store struct {
	dataDir DataDirProvider

	mu         sync.RWMutex
	memo       *config
	memoLoaded bool
}

// NewStore builds a Store rooted at dataDir.UserDataDir().
func NewStore(dataDir DataDirProvider) *Store {
	return &Store{dataDir: dataDir}
}

func (s *Store) root() (string, error) {
	dir, err := s.dataDir.UserDataDir()
	if err != nil {
		return "", Wrap(KindFilesystem, "failed to resolve user data directory", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", Wrap(KindFilesystem, "failed to create user data directory", err)
	}
	return dir, nil
}

func (s *Store) configPath() (string, error) {
	root, err := s.root()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, configFileName), nil
}

// loadConfig reads config.json, serving the in-memory memo when present.
func (s *Store) loadConfig() (*config, error) {
	s.mu.RLock()
	if s.memoLoaded {
		memo := s.memo
		s.mu.RUnlock()
		return memo, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.memoLoaded {
		return s.memo, nil
	}

	path, err := s.configPath()
	if err != nil {
		return nil, err
	}

	cfg := &config{UpdatePreferences: map[string]bool{}}
	if fileutil.FileExists(path) {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, Wrap(KindFilesystem, "failed to read config.json", err)
		}
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, Wrap(KindParseFailure, "failed to parse config.json", err)
		}
		if cfg.UpdatePreferences == nil {
			cfg.UpdatePreferences = map[string]bool{}
		}
	}

	s.memo = cfg
	s.memoLoaded = true
	return cfg, nil
}

// saveConfig writes cfg to disk and atomically refreshes the memo.
func (s *Store) saveConfig(cfg *config) error {
	path, err := s.configPath()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return Wrap(KindInternal, "failed to marshal config.json", err)
	}
	data = append(data, '\n')

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return Wrap(KindFilesystem, "failed to write config.json", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return Wrap(KindFilesystem, "failed to finalize config.json", err)
	}

	s.mu.Lock()
	s.memo = cfg
	s.memoLoaded = true
	s.mu.Unlock()
	return nil
}

func (s *Store) mutateConfig(ctx context.Context, fn func(cfg *config) error) error {
	cfg, err := s.loadConfig()
	if err != nil {
		return err
	}
	// work on a copy (slices and map included) so a failed mutation never
	// corrupts the memo
	next := *cfg
	next.Sources = append(cfg.Sources[:0:0], cfg.Sources...)
	next.Profiles = append(cfg.Profiles[:0:0], cfg.Profiles...)
	next.UpdatePreferences = make(map[string]bool, len(cfg.UpdatePreferences))
	for k, v := range cfg.UpdatePreferences {
		next.UpdatePreferences[k] = v
	}
	if err := fn(&next); err != nil {
		return err
	}
	return s.saveConfig(&next)
}

// ListSources returns all configured sources.
func (s *Store) ListSources(ctx context.Context) ([]Source, error) {
	cfg, err := s.loadConfig()
	if err != nil {
		return nil, err
	}
	return append([]Source(nil), cfg.Sources...), nil
}

// AddSource appends src, rejecting a duplicate id.
func (s *Store) AddSource(ctx context.Context, src Source) error {
	return s.mutateConfig(ctx, func(cfg *config) error {
		for _, existing := range cfg.Sources {
			if existing.ID == src.ID {
				return NewError(KindValidation, "source already exists: "+src.ID)
			}
		}
		cfg.Sources = append(cfg.Sources, src)
		return nil
	})
}

// RemoveSource deletes the source with id and its bundle cache.
func (s *Store) RemoveSource(ctx context.Context, id string) error {
	err := s.mutateConfig(ctx, func(cfg *config) error {
		out := cfg.Sources[:0]
		found := false
		for _, existing := range cfg.Sources {
			if existing.ID == id {
				found = true
				continue
			}
			out = append(out, existing)
		}
		if !found {
			return NewError(KindNotFound, "source not found: "+id)
		}
		cfg.Sources = out
		return nil
	})
	if err != nil {
		return err
	}

	root, err := s.root()
	if err != nil {
		return err
	}
	cachePath := filepath.Join(root, sourcesCacheDirName, sanitizeFilename(id)+".json")
	if rmErr := os.Remove(cachePath); rmErr != nil && !os.IsNotExist(rmErr) {
		storageLog.Printf("failed to remove source cache for %s: %v", id, rmErr)
	}
	return nil
}

// CacheBundles persists the bundle list a source adapter returned.
func (s *Store) CacheBundles(ctx context.Context, sourceID string, bundles []Bundle) error {
	root, err := s.root()
	if err != nil {
		return err
	}
	dir := filepath.Join(root, sourcesCacheDirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Wrap(KindFilesystem, "failed to create source cache directory", err)
	}

	data, err := json.MarshalIndent(bundles, "", "  ")
	if err != nil {
		return Wrap(KindInternal, "failed to marshal bundle cache", err)
	}
	data = append(data, '\n')

	path := filepath.Join(dir, sanitizeFilename(sourceID)+".json")
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return Wrap(KindFilesystem, "failed to write bundle cache", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return Wrap(KindFilesystem, "failed to finalize bundle cache", err)
	}
	return nil
}

// CachedBundles returns the last cached bundle list for sourceID, or nil if
// none has been synced yet.
func (s *Store) CachedBundles(ctx context.Context, sourceID string) ([]Bundle, error) {
	root, err := s.root()
	if err != nil {
		return nil, err
	}
	path := filepath.Join(root, sourcesCacheDirName, sanitizeFilename(sourceID)+".json")
	if !fileutil.FileExists(path) {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, Wrap(KindFilesystem, "failed to read bundle cache", err)
	}
	var bundles []Bundle
	if err := json.Unmarshal(data, &bundles); err != nil {
		return nil, Wrap(KindParseFailure, "failed to parse bundle cache", err)
	}
	return bundles, nil
}

func (s *Store) installedDir(scope Scope, workspaceRoot string) (string, error) {
	switch scope {
	case ScopeUser:
		root, err := s.root()
		if err != nil {
			return "", err
		}
		return filepath.Join(root, installedUserDirName), nil
	case ScopeWorkspace, ScopeRepository:
		if workspaceRoot == "" {
			return "", NewError(KindValidation, "workspace root is required for scope "+string(scope))
		}
		return filepath.Join(workspaceRoot, ".github", "gh-bundles", installedRepoDirName), nil
	default:
		return "", NewError(KindValidation, "unknown scope: "+string(scope))
	}
}

// ListInstalled returns every InstalledBundle recorded under scope.
func (s *Store) ListInstalled(ctx context.Context, scope Scope, workspaceRoot string) ([]InstalledBundle, error) {
	dir, err := s.installedDir(scope, workspaceRoot)
	if err != nil {
		return nil, err
	}
	if !fileutil.DirExists(dir) {
		return nil, nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, Wrap(KindFilesystem, "failed to list installed bundles", err)
	}

	out := make([]InstalledBundle, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			storageLog.Printf("failed to read installed-bundle record %s: %v", e.Name(), err)
			continue
		}
		var ib InstalledBundle
		if err := json.Unmarshal(data, &ib); err != nil {
			storageLog.Printf("failed to parse installed-bundle record %s: %v", e.Name(), err)
			continue
		}
		ib.Scope = scope
		out = append(out, ib)
	}
	return out, nil
}

// SaveInstalled writes or overwrites ib's record.
func (s *Store) SaveInstalled(ctx context.Context, ib InstalledBundle, workspaceRoot string) error {
	dir, err := s.installedDir(ib.Scope, workspaceRoot)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Wrap(KindFilesystem, "failed to create installed-bundle directory", err)
	}

	data, err := json.MarshalIndent(ib, "", "  ")
	if err != nil {
		return Wrap(KindInternal, "failed to marshal installed-bundle record", err)
	}
	data = append(data, '\n')

	path := filepath.Join(dir, sanitizeFilename(ib.BundleID)+".json")
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return Wrap(KindFilesystem, "failed to write installed-bundle record", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return Wrap(KindFilesystem, "failed to finalize installed-bundle record", err)
	}
	return nil
}

// RemoveInstalled deletes bundleID's record from scope.
func (s *Store) RemoveInstalled(ctx context.Context, bundleID string, scope Scope, workspaceRoot string) error {
	dir, err := s.installedDir(scope, workspaceRoot)
	if err != nil {
		return err
	}
	path := filepath.Join(dir, sanitizeFilename(bundleID)+".json")
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return NewError(KindNotFound, fmt.Sprintf("bundle %s is not installed in scope %s", bundleID, scope))
		}
		return Wrap(KindFilesystem, "failed to remove installed-bundle record", err)
	}
	return nil
}

// SetUpdatePreference records whether bundleID should be auto-updated.
func (s *Store) SetUpdatePreference(ctx context.Context, bundleID string, enabled bool) error {
	return s.mutateConfig(ctx, func(cfg *config) error {
		if cfg.UpdatePreferences == nil {
			cfg.UpdatePreferences = map[string]bool{}
		}
		cfg.UpdatePreferences[bundleID] = enabled
		return nil
	})
}

// UpdatePreference reports whether bundleID has auto-update enabled,
// defaulting to the global AutoUpdateEnabled flag when unset.
func (s *Store) UpdatePreference(ctx context.Context, bundleID string) (bool, error) {
	cfg, err := s.loadConfig()
	if err != nil {
		return false, err
	}
	if v, ok := cfg.UpdatePreferences[bundleID]; ok {
		return v, nil
	}
	return cfg.AutoUpdateEnabled, nil
}

// Profiles returns all configured profiles.
func (s *Store) Profiles(ctx context.Context) ([]Profile, error) {
	cfg, err := s.loadConfig()
	if err != nil {
		return nil, err
	}
	return append([]Profile(nil), cfg.Profiles...), nil
}

// SaveProfile upserts p by ID.
func (s *Store) SaveProfile(ctx context.Context, p Profile) error {
	return s.mutateConfig(ctx, func(cfg *config) error {
		for i, existing := range cfg.Profiles {
			if existing.ID == p.ID {
				cfg.Profiles[i] = p
				return nil
			}
		}
		cfg.Profiles = append(cfg.Profiles, p)
		return nil
	})
}
