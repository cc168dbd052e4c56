package registry

import (
	"regexp"
	"sort"
	"strings"

	"github.com/github/gh-bundles/pkg/logger"
	"golang.org/x/mod/semver"
)

var versionLog = logger.New("registry:version")

const (
	maxBundleIDLength = 200
	maxVersionLength  = 100
)

// cleanSemver normalises a version string into the "vMAJOR.MINOR.PATCH[-pre]"
// form golang.org/x/mod/semver requires, mirroring the node-semver "clean"
// step spec.md's version manager describes. Returns "", false if the input
// cannot be cleaned into a canonical semver.
func cleanSemver(v string) (string, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", false
	}
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return "", false
	}
	return v, true
}

var coerceRE = regexp.MustCompile(`\d+(\.\d+){0,2}`)

// coerceSemver extracts the first dotted numeric run from v and pads it out
// to MAJOR.MINOR.PATCH, mirroring node-semver's "coerce".
func coerceSemver(v string) (string, bool) {
	m := coerceRE.FindString(v)
	if m == "" {
		return "", false
	}
	parts := strings.Split(m, ".")
	for len(parts) < 3 {
		parts = append(parts, "0")
	}
	for i, p := range parts {
		// numeric parts drop leading zeros ("03" -> "3"), as node-semver does
		if p = strings.TrimLeft(p, "0"); p == "" {
			p = "0"
		}
		parts[i] = p
	}
	candidate := "v" + strings.Join(parts[:3], ".")
	if !semver.IsValid(candidate) {
		return "", false
	}
	return candidate, true
}

// compareVersions compares a and b the way spec.md's version manager
// requires: strict semver compare when both clean, else coerce, else a
// logged lexicographic fallback. Returns <0, 0, >0 like strings.Compare.
func compareVersions(a, b string) int {
	if len(a) > maxVersionLength || len(b) > maxVersionLength {
		versionLog.Warnf("version string exceeds %d chars, comparing lexicographically", maxVersionLength)
		return strings.Compare(a, b)
	}

	ca, aok := cleanSemver(a)
	cb, bok := cleanSemver(b)
	if aok && bok {
		return semver.Compare(ca, cb)
	}

	ca, aok = coerceSemver(a)
	cb, bok = coerceSemver(b)
	if aok && bok {
		return semver.Compare(ca, cb)
	}

	versionLog.Warnf("falling back to lexicographic compare for %q vs %q", a, b)
	return strings.Compare(a, b)
}

// CompareVersions is the exported form of compareVersions.
func CompareVersions(a, b string) int { return compareVersions(a, b) }

// IsUpdateAvailable reports whether latest is strictly newer than installed.
func IsUpdateAvailable(installed, latest string) bool {
	return compareVersions(latest, installed) > 0
}

// SortVersionsDescending stable-sorts versions newest first, dropping entries
// that cannot be parsed as semver (clean or coerced) at all.
func SortVersionsDescending(versions []string) []string {
	kept := make([]string, 0, len(versions))
	for _, v := range versions {
		if _, ok := cleanSemver(v); ok {
			kept = append(kept, v)
			continue
		}
		if _, ok := coerceSemver(v); ok {
			kept = append(kept, v)
			continue
		}
		versionLog.Printf("dropping unparseable version %q", v)
	}
	sort.SliceStable(kept, func(i, j int) bool {
		return compareVersions(kept[i], kept[j]) > 0
	})
	return kept
}

// releaseIdentitySuffix matches a trailing "-v?MAJOR.MINOR.PATCH[-prerelease]"
// on a release-hosted bundle id, e.g. "owner-repo-v1.2.3" or
// "owner-repo-1.2.3-beta.1".
var releaseIdentitySuffix = regexp.MustCompile(`-v?\d{1,3}\.\d{1,3}\.\d{1,3}(-[A-Za-z0-9._-]{1,50})?$`)

// ExtractBundleIdentity returns the source-type-aware identity used to group
// versions of one bundle, per spec.md §4.6. Only release-hosted ids are
// stripped of their trailing version; other source types are identity
// themselves already (content-tree ids are version-independent by
// construction).
func ExtractBundleIdentity(bundleID string, sourceType SourceType) BundleIdentity {
	if len(bundleID) > maxBundleIDLength {
		versionLog.Warnf("bundle id exceeds %d chars, refusing identity extraction", maxBundleIDLength)
		return BundleIdentity(bundleID)
	}
	if sourceType != SourceTypeGitHubRelease && sourceType != SourceTypeGitLab {
		return BundleIdentity(bundleID)
	}
	return BundleIdentity(releaseIdentitySuffix.ReplaceAllString(bundleID, ""))
}
