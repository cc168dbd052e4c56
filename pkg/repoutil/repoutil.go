// Package repoutil provides small, dependency-free helpers for working with
// "owner/repo" slugs and git remote URLs, shared by every source adapter that
// talks to a GitHub- or GitLab-shaped host.
package repoutil

import (
	"fmt"
	"regexp"
	"strings"
)

var httpsURLPattern = regexp.MustCompile(`^https?://(?:www\.)?([^/]+)/([^/]+)/([^/]+?)(?:\.git)?$`)
var sshURLPattern = regexp.MustCompile(`^git@([^:]+):([^/]+)/([^/]+?)(?:\.git)?$`)

// SplitRepoSlug splits an "owner/repo" slug into its two parts. Exactly one
// separator is required; anything else is an error.
func SplitRepoSlug(slug string) (owner, repo string, err error) {
	parts := strings.Split(slug, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid repository slug %q: expected \"owner/repo\"", slug)
	}
	return parts[0], parts[1], nil
}

// ParseURL extracts (owner, repo) from a remote URL of the form
// "https://host/owner/repo[.git]" or "git@host:owner/repo[.git]". The host is
// returned as well so callers can verify it against an expected value.
func ParseURL(rawURL string) (host, owner, repo string, err error) {
	if rawURL == "" {
		return "", "", "", fmt.Errorf("empty repository URL")
	}
	if m := httpsURLPattern.FindStringSubmatch(rawURL); m != nil {
		return m[1], m[2], m[3], nil
	}
	if m := sshURLPattern.FindStringSubmatch(rawURL); m != nil {
		return m[1], m[2], m[3], nil
	}
	return "", "", "", fmt.Errorf("invalid repository URL %q: expected https://host/owner/repo or git@host:owner/repo", rawURL)
}

// ParseGitHubURL is ParseURL restricted to github.com.
func ParseGitHubURL(rawURL string) (owner, repo string, err error) {
	host, owner, repo, err := ParseURL(rawURL)
	if err != nil {
		return "", "", err
	}
	if host != "github.com" {
		return "", "", fmt.Errorf("not a github.com URL: %q", rawURL)
	}
	return owner, repo, nil
}

// SanitizeForFilename turns an "owner/repo" (or arbitrary) slug into a string
// safe to use as (part of) a filename: slashes become hyphens. An empty slug
// yields "clone-mode", mirroring how callers fall back to a generic label for
// a local, repo-less clone.
func SanitizeForFilename(slug string) string {
	if slug == "" {
		return "clone-mode"
	}
	return strings.ReplaceAll(slug, "/", "-")
}
