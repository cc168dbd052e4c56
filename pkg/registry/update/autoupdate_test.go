package update

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAutoUpdateServiceAppliesOnlyEnabledBundles(t *testing.T) {
	prefs := map[string]bool{"acme/agent": true, "acme/other": false}
	var installed []string

	svc := NewAutoUpdateService(
		InstallerFunc(func(ctx context.Context, scopeKey string, candidate Candidate) error {
			installed = append(installed, candidate.BundleID)
			return nil
		}),
		PreferenceStoreFunc(func(ctx context.Context, bundleID string) (bool, error) {
			return prefs[bundleID], nil
		}),
	)

	applied, err := svc.Apply(context.Background(), "user\x00", []Candidate{
		{BundleID: "acme/agent"},
		{BundleID: "acme/other"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"acme/agent"}, applied)
	assert.Equal(t, []string{"acme/agent"}, installed)
}

func TestAutoUpdateServiceContinuesPastFailures(t *testing.T) {
	var installed []string

	svc := NewAutoUpdateService(
		InstallerFunc(func(ctx context.Context, scopeKey string, candidate Candidate) error {
			if candidate.BundleID == "acme/broken" {
				return errors.New("install failed")
			}
			installed = append(installed, candidate.BundleID)
			return nil
		}),
		PreferenceStoreFunc(func(ctx context.Context, bundleID string) (bool, error) {
			return true, nil
		}),
	)

	applied, err := svc.Apply(context.Background(), "user\x00", []Candidate{
		{BundleID: "acme/broken"},
		{BundleID: "acme/agent"},
	})
	assert.Error(t, err)
	assert.Equal(t, []string{"acme/agent"}, applied)
	assert.Equal(t, []string{"acme/agent"}, installed)
}
