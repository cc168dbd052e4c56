package update

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateCheckerServesCacheUnlessBypassed(t *testing.T) {
	calls := 0
	checker := CheckerFunc(func(ctx context.Context, scopeKey string) ([]Candidate, error) {
		calls++
		return []Candidate{{BundleID: "acme/agent", CurrentVersion: "1.0.0", LatestVersion: "1.1.0"}}, nil
	})
	uc := NewUpdateChecker(checker, time.Hour)

	first, err := uc.Check(context.Background(), "user\x00", false)
	require.NoError(t, err)
	assert.Len(t, first, 1)
	assert.Equal(t, 1, calls)

	second, err := uc.Check(context.Background(), "user\x00", false)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls, "second call should be served from cache")

	_, err = uc.Check(context.Background(), "user\x00", true)
	require.NoError(t, err)
	assert.Equal(t, 2, calls, "bypass should re-invoke the checker")
}

func TestUpdateCheckerInvalidate(t *testing.T) {
	calls := 0
	checker := CheckerFunc(func(ctx context.Context, scopeKey string) ([]Candidate, error) {
		calls++
		return nil, nil
	})
	uc := NewUpdateChecker(checker, time.Hour)

	_, err := uc.Check(context.Background(), "user\x00", false)
	require.NoError(t, err)
	uc.Invalidate("user\x00")
	_, err = uc.Check(context.Background(), "user\x00", false)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestUpdateCheckerWrapsError(t *testing.T) {
	checker := CheckerFunc(func(ctx context.Context, scopeKey string) ([]Candidate, error) {
		return nil, errors.New("boom")
	})
	uc := NewUpdateChecker(checker, time.Hour)

	_, err := uc.Check(context.Background(), "user\x00", true)
	assert.ErrorContains(t, err, "boom")
	assert.ErrorContains(t, err, "user\x00")
}
