package update

import (
	"context"
	"fmt"
	"time"

	"github.com/github/gh-bundles/pkg/logger"
)

var checkerLog = logger.New("registry:update:checker")

const defaultCacheTTL = 15 * time.Minute

// Checker is the subset of registry.Manager the update service depends on,
// kept narrow so this package never imports pkg/registry directly (avoiding
// an import cycle: pkg/registry adapts its Manager to it in manager_update.go).
type Checker interface {
	CheckUpdates(ctx context.Context, scopeKey string) ([]Candidate, error)
}

// CheckerFunc adapts a plain function to Checker.
type CheckerFunc func(ctx context.Context, scopeKey string) ([]Candidate, error)

func (f CheckerFunc) CheckUpdates(ctx context.Context, scopeKey string) ([]Candidate, error) {
	return f(ctx, scopeKey)
}

// UpdateChecker wraps a Checker with a TTL cache (spec.md §4.7). A failed
// check is returned wrapped with the scope key and is not cached; skipping
// one failing source is up to the Checker (Manager.CheckUpdates does so).
type UpdateChecker struct {
	checker Checker
	cache   *Cache
}

// NewUpdateChecker builds an UpdateChecker backed by checker, caching
// results for ttl (defaultCacheTTL if ttl <= 0).
func NewUpdateChecker(checker Checker, ttl time.Duration) *UpdateChecker {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &UpdateChecker{checker: checker, cache: NewCache(ttl)}
}

// Check returns update candidates for scopeKey, serving the cache unless
// bypass is true.
func (u *UpdateChecker) Check(ctx context.Context, scopeKey string, bypass bool) ([]Candidate, error) {
	if !bypass {
		if cached, ok := u.cache.Get(scopeKey); ok {
			checkerLog.Printf("serving update check for %s from cache", scopeKey)
			return cached, nil
		}
	}

	candidates, err := u.checker.CheckUpdates(ctx, scopeKey)
	if err != nil {
		return nil, fmt.Errorf("checking updates for %s: %w", scopeKey, err)
	}

	u.cache.Set(scopeKey, candidates)
	return candidates, nil
}

// Invalidate forces the next Check for scopeKey to bypass the cache.
func (u *UpdateChecker) Invalidate(scopeKey string) {
	u.cache.Invalidate(scopeKey)
}
