package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompareVersions(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want int
	}{
		{"strict semver newer", "v2.0.0", "v1.0.0", 1},
		{"strict semver older", "1.0.0", "1.1.0", -1},
		{"strict semver equal", "v1.2.3", "1.2.3", 0},
		{"coerced partial version", "2024.03", "2024.4", -1},
		{"lexicographic fallback", "release-a", "release-b", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CompareVersions(tt.a, tt.b)
			if tt.want > 0 {
				assert.Positive(t, got)
			} else if tt.want < 0 {
				assert.Negative(t, got)
			} else {
				assert.Zero(t, got)
			}
		})
	}
}

func TestIsUpdateAvailable(t *testing.T) {
	assert.True(t, IsUpdateAvailable("1.0.0", "1.1.0"))
	assert.False(t, IsUpdateAvailable("1.1.0", "1.0.0"))
	assert.False(t, IsUpdateAvailable("1.0.0", "1.0.0"))
}

func TestSortVersionsDescending(t *testing.T) {
	got := SortVersionsDescending([]string{"v1.0.0", "v2.0.0", "not-a-version-at-all!!", "v1.5.0"})
	assert.Equal(t, []string{"v2.0.0", "v1.5.0", "v1.0.0"}, got)
}

func TestExtractBundleIdentity(t *testing.T) {
	assert.Equal(t, BundleIdentity("owner-repo"), ExtractBundleIdentity("owner-repo-v1.2.3", SourceTypeGitHubRelease))
	assert.Equal(t, BundleIdentity("owner-repo"), ExtractBundleIdentity("owner-repo-1.2.3-beta.1", SourceTypeGitLab))
	assert.Equal(t, BundleIdentity("collections/agents"), ExtractBundleIdentity("collections/agents", SourceTypeAwesomeCopilot))
}
