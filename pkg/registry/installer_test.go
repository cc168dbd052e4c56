package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchesPatterns(t *testing.T) {
	tests := []struct {
		name            string
		rel             string
		include, exclude []string
		want            bool
	}{
		{"no patterns includes everything", "agents/a.md", nil, nil, true},
		{"exclude wins over include", "agents/a.md", []string{"**/*.md"}, []string{"agents/**"}, false},
		{"include matches", "agents/a.md", []string{"agents/**"}, nil, true},
		{"include does not match", "prompts/a.md", []string{"agents/**"}, nil, false},
		{"exclude without include still excludes", "secrets/key.pem", nil, []string{"secrets/**"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := matchesPatterns(tt.rel, tt.include, tt.exclude)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStagingRoot(t *testing.T) {
	assert.Equal(t, "/data/bundle.staging", stagingRoot("/data/bundle"))
}
