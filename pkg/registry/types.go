// Package registry implements the bundle registry engine: discovery,
// download, installation, update and removal of versioned bundles (prompt /
// instruction file collections) drawn from heterogeneous remote sources.
package registry

import "time"

// SourceType identifies the protocol/shape a Source speaks.
type SourceType string

const (
	SourceTypeGitHubRelease      SourceType = "github-release"
	SourceTypeAwesomeCopilot     SourceType = "awesome-copilot"
	SourceTypeLocalAwesomeCopilot SourceType = "local-awesome-copilot"
	SourceTypeLocal              SourceType = "local"
	SourceTypeGitLab             SourceType = "gitlab"
	SourceTypeHTTP               SourceType = "http"
)

// Scope identifies where an installed bundle's files live.
type Scope string

const (
	ScopeUser       Scope = "user"
	ScopeWorkspace  Scope = "workspace"
	ScopeRepository Scope = "repository"
)

// CommitMode is only meaningful for ScopeRepository.
type CommitMode string

const (
	CommitModeCommit    CommitMode = "commit"
	CommitModeLocalOnly CommitMode = "local-only"
)

// Source is a named remote origin that advertises Bundles.
type Source struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Type     SourceType     `json:"type"`
	URL      string         `json:"url"`
	Enabled  bool           `json:"enabled"`
	Priority int            `json:"priority"`
	Config   map[string]any `json:"config,omitempty"`
	Token    string         `json:"token,omitempty"`
}

// Bundle is a pure description of one version of a deployable artifact.
type Bundle struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Version      string    `json:"version"`
	Description  string    `json:"description,omitempty"`
	Author       string    `json:"author,omitempty"`
	SourceID     string    `json:"sourceId"`
	SourceType   SourceType `json:"sourceType"`
	Environments []string  `json:"environments,omitempty"`
	Tags         []string  `json:"tags,omitempty"`
	LastUpdated  time.Time `json:"lastUpdated"`
	Size         int64     `json:"size,omitempty"`
	License      string    `json:"license,omitempty"`
	ManifestURL  string    `json:"manifestUrl"`
	DownloadURL  string    `json:"downloadUrl"`
	Repository   string    `json:"repository,omitempty"`
}

// InstalledBundle is a record of a materialised bundle.
type InstalledBundle struct {
	BundleID    string             `json:"bundleId"`
	Version     string             `json:"version"`
	InstalledAt time.Time          `json:"installedAt"`
	Scope       Scope              `json:"scope"`
	CommitMode  CommitMode         `json:"commitMode,omitempty"`
	InstallPath string             `json:"installPath"`
	Manifest    DeploymentManifest `json:"manifest"`
	SourceID    string             `json:"sourceId"`
	SourceType  SourceType         `json:"sourceType"`
	ProfileID   string             `json:"profileId,omitempty"`
}

// Key returns the (bundleId, scope) uniqueness key.
func (b InstalledBundle) Key() string {
	return b.BundleID + "\x00" + string(b.Scope)
}

// DeploymentManifest declares what the installer places on disk.
type DeploymentManifest struct {
	Directories     []string            `json:"directories,omitempty" yaml:"directories,omitempty"`
	Files           []ManifestFile      `json:"files,omitempty" yaml:"files,omitempty"`
	IncludePatterns []string            `json:"include_patterns,omitempty" yaml:"include_patterns,omitempty"`
	ExcludePatterns []string            `json:"exclude_patterns,omitempty" yaml:"exclude_patterns,omitempty"`
	BundleSettings  BundleSettings      `json:"bundle_settings,omitempty" yaml:"bundle_settings,omitempty"`
	Metadata        ManifestMetadata    `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// ManifestFile maps a source-relative archive path to a target path.
type ManifestFile struct {
	Source string `json:"source" yaml:"source"`
	Target string `json:"target" yaml:"target"`
}

// BundleSettings controls packaging/extraction behaviour.
type BundleSettings struct {
	Compression    string `json:"compression,omitempty" yaml:"compression,omitempty"`
	Naming         string `json:"naming,omitempty" yaml:"naming,omitempty"`
	IncludeCommon  bool   `json:"include_common,omitempty" yaml:"include_common,omitempty"`
}

// ManifestMetadata carries descriptive, non-structural bundle info.
type ManifestMetadata struct {
	Version     string `json:"version,omitempty" yaml:"version,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Profile is a named, orderable set of bundle pins.
type Profile struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	HubID   string          `json:"hubId,omitempty"`
	Active  bool            `json:"active"`
	Entries []ProfileEntry  `json:"entries"`
}

// ProfileEntry pins one bundle within a Profile.
type ProfileEntry struct {
	BundleID string `json:"bundleId"`
	Version  string `json:"version"`
	SourceID string `json:"sourceId"`
	Required bool   `json:"required"`
}

// BundleIdentity groups versions of one logical bundle.
type BundleIdentity string

// ConsolidatedBundle is one search result: the highest available version of
// a bundle identity, plus every version's underlying stored bundle id.
type ConsolidatedBundle struct {
	Bundle   Bundle
	Versions []VersionRef
}

// VersionRef names one stored version of a consolidated bundle.
type VersionRef struct {
	Version  string
	BundleID string
}

// UpdateCandidate describes one installed bundle with a newer version
// available from its source.
type UpdateCandidate struct {
	BundleID        string
	CurrentVersion  string
	LatestVersion   string
	Changelog       string
	ReleaseDate     time.Time
	DownloadURL     string
	AutoUpdateEnabled bool
}

// SearchQuery filters searchBundles results.
type SearchQuery struct {
	SourceID string
	Tag      string
	Text     string
}

// InstallOptions configures installBundle / scope install.
type InstallOptions struct {
	Scope      Scope
	Version    string
	CommitMode CommitMode
	ProfileID  string
}
