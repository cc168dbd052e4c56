package update

import (
	"context"

	"github.com/github/gh-bundles/pkg/logger"
)

var autoUpdateLog = logger.New("registry:update:autoupdate")

// Installer is the subset of registry.Manager an AutoUpdateService needs to
// actually apply an update, kept narrow for the same import-cycle reasons
// as Checker.
type Installer interface {
	InstallCandidate(ctx context.Context, scopeKey string, candidate Candidate) error
}

// InstallerFunc adapts a plain function to Installer.
type InstallerFunc func(ctx context.Context, scopeKey string, candidate Candidate) error

func (f InstallerFunc) InstallCandidate(ctx context.Context, scopeKey string, candidate Candidate) error {
	return f(ctx, scopeKey, candidate)
}

// PreferenceStore reports whether a given bundle has auto-update enabled.
type PreferenceStore interface {
	UpdatePreference(ctx context.Context, bundleID string) (bool, error)
}

// PreferenceStoreFunc adapts a plain function to PreferenceStore.
type PreferenceStoreFunc func(ctx context.Context, bundleID string) (bool, error)

func (f PreferenceStoreFunc) UpdatePreference(ctx context.Context, bundleID string) (bool, error) {
	return f(ctx, bundleID)
}

// AutoUpdateService applies update candidates automatically for bundles
// whose preference is enabled, and otherwise leaves them for the operator
// to apply manually (spec.md §4.7).
type AutoUpdateService struct {
	installer   Installer
	preferences PreferenceStore
}

// NewAutoUpdateService builds an AutoUpdateService.
func NewAutoUpdateService(installer Installer, preferences PreferenceStore) *AutoUpdateService {
	return &AutoUpdateService{installer: installer, preferences: preferences}
}

// Apply installs every candidate whose bundle has auto-update enabled,
// returning the ids it applied and the first error encountered (processing
// continues past individual failures so one bad candidate doesn't block the
// rest).
func (s *AutoUpdateService) Apply(ctx context.Context, scopeKey string, candidates []Candidate) ([]string, error) {
	var applied []string
	var firstErr error

	for _, c := range candidates {
		enabled, err := s.preferences.UpdatePreference(ctx, c.BundleID)
		if err != nil {
			autoUpdateLog.Printf("failed to read update preference for %s: %v", c.BundleID, err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		if !enabled {
			continue
		}
		if err := s.installer.InstallCandidate(ctx, scopeKey, c); err != nil {
			autoUpdateLog.Printf("auto-update failed for %s: %v", c.BundleID, err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		applied = append(applied, c.BundleID)
	}

	return applied, firstErr
}

// OnCheckResult is an update.Scheduler onResult callback that applies
// auto-updates for any enabled bundles among candidates.
func (s *AutoUpdateService) OnCheckResult(ctx context.Context) func(scopeKey string, candidates []Candidate) {
	return func(scopeKey string, candidates []Candidate) {
		if len(candidates) == 0 {
			return
		}
		applied, err := s.Apply(ctx, scopeKey, candidates)
		if err != nil {
			autoUpdateLog.Printf("auto-update pass for %s completed with errors: %v", scopeKey, err)
		}
		if len(applied) > 0 {
			autoUpdateLog.Printf("auto-updated %d bundle(s) for %s: %v", len(applied), scopeKey, applied)
		}
	}
}
