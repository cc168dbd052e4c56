package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/github/gh-bundles/pkg/logger"
	"github.com/github/gh-bundles/pkg/repoutil"
)

var releaseLog = logger.New("registry:adapter_release")

// releaseProvider parameterises ReleaseAdapter over GitHub- and
// GitLab-shaped release APIs, per spec.md §4.1 ("release-hosted adapter...
// Variants: GitHub/GitLab releases-as-bundles").
type releaseProvider struct {
	sourceType   SourceType
	apiBase      func(host string) string // e.g. "https://api.github.com"
	listPath     func(owner, repo string) string
	trustedHosts func(host string) TrustedDomains
	decodeList   func(body []byte) ([]rawRelease, error)
}

// rawRelease is the provider-agnostic shape an adapter normalises a
// GitHub/GitLab release payload into before bundle enumeration.
type rawRelease struct {
	TagName string
	Name    string
	Body    string
	Assets  []rawAsset
}

type rawAsset struct {
	Name        string
	DownloadURL string
}

var githubProvider = releaseProvider{
	sourceType: SourceTypeGitHubRelease,
	apiBase:    func(host string) string { return "https://api." + host },
	listPath:   func(owner, repo string) string { return fmt.Sprintf("/repos/%s/%s/releases", owner, repo) },
	trustedHosts: func(host string) TrustedDomains {
		return TrustedDomains{host, "api." + host, "*.githubusercontent.com", "objects.githubusercontent.com"}
	},
	decodeList: decodeGitHubReleases,
}

var gitlabProvider = releaseProvider{
	sourceType: SourceTypeGitLab,
	apiBase:    func(host string) string { return "https://" + host },
	listPath:   func(owner, repo string) string { return fmt.Sprintf("/api/v4/projects/%s%%2F%s/releases", owner, repo) },
	trustedHosts: func(host string) TrustedDomains {
		return TrustedDomains{host, "*." + host}
	},
	decodeList: decodeGitLabReleases,
}

type githubRelease struct {
	TagName string        `json:"tag_name"`
	Name    string        `json:"name"`
	Body    string        `json:"body"`
	Assets  []githubAsset `json:"assets"`
}
type githubAsset struct {
	Name               string `json:"name"`
	BrowserDownloadURL string `json:"browser_download_url"`
}

func decodeGitHubReleases(body []byte) ([]rawRelease, error) {
	var releases []githubRelease
	if err := json.Unmarshal(body, &releases); err != nil {
		return nil, err
	}
	out := make([]rawRelease, 0, len(releases))
	for _, r := range releases {
		assets := make([]rawAsset, 0, len(r.Assets))
		for _, a := range r.Assets {
			assets = append(assets, rawAsset{Name: a.Name, DownloadURL: a.BrowserDownloadURL})
		}
		out = append(out, rawRelease{TagName: r.TagName, Name: r.Name, Body: r.Body, Assets: assets})
	}
	return out, nil
}

type gitlabRelease struct {
	TagName     string             `json:"tag_name"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Assets      gitlabReleaseAssets `json:"assets"`
}
type gitlabReleaseAssets struct {
	Links []gitlabAssetLink `json:"links"`
}
type gitlabAssetLink struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

func decodeGitLabReleases(body []byte) ([]rawRelease, error) {
	var releases []gitlabRelease
	if err := json.Unmarshal(body, &releases); err != nil {
		return nil, err
	}
	out := make([]rawRelease, 0, len(releases))
	for _, r := range releases {
		assets := make([]rawAsset, 0, len(r.Assets.Links))
		for _, a := range r.Assets.Links {
			assets = append(assets, rawAsset{Name: a.Name, DownloadURL: a.URL})
		}
		out = append(out, rawRelease{TagName: r.TagName, Name: r.Name, Body: r.Description, Assets: assets})
	}
	return out, nil
}

// ReleaseAdapter implements Adapter over GitHub/GitLab releases-as-bundles.
type ReleaseAdapter struct {
	source   Source
	provider releaseProvider
	doer     HTTPDoer
	owner    string
	repo     string
	host     string
	auth     *authChain
}

// NewReleaseAdapter builds the release-hosted adapter for source, selecting
// the GitHub or GitLab provider from source.Type.
func NewReleaseAdapter(source Source, doer HTTPDoer, session AuthSessionProvider, externalCLI TokenCommandRunner) (*ReleaseAdapter, error) {
	host, owner, repo, err := repoutil.ParseURL(source.URL)
	if err != nil {
		return nil, Wrap(KindInvalidURL, "release adapter requires a valid repository URL", err)
	}

	provider := githubProvider
	if source.Type == SourceTypeGitLab {
		provider = gitlabProvider
	}

	return &ReleaseAdapter{
		source:   source,
		provider: provider,
		doer:     doer,
		owner:    owner,
		repo:     repo,
		host:     host,
		auth:     newAuthChain(source.Token, session, externalCLI, host),
	}, nil
}

func (a *ReleaseAdapter) Capabilities() []Capability {
	return []Capability{CapValidate, CapFetchBundles, CapFetchMetadata, CapDownloadBundle, CapGetManifestURL, CapGetDownloadURL}
}

func (a *ReleaseAdapter) trustedDomains() TrustedDomains {
	return a.provider.trustedHosts(a.host)
}

func (a *ReleaseAdapter) Validate(ctx context.Context) error {
	_, err := a.listReleases(ctx)
	return err
}

func (a *ReleaseAdapter) listReleases(ctx context.Context) ([]rawRelease, error) {
	base := a.provider.apiBase(a.host)
	u := base + a.provider.listPath(a.owner, a.repo)

	body, resp, err := a.doGet(ctx, u)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, a.auth.Invalidate(resp.StatusCode)
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, &Error{Kind: KindAuthentication, Message: fmt.Sprintf("repository %s/%s not found", a.owner, a.repo), Status: http.StatusNotFound, Suggestion: statusSuggestions[http.StatusNotFound]}
	}
	if isHTMLContentType(resp) {
		return nil, &Error{Kind: KindHTMLResponse, Message: "expected JSON but received HTML: " + extractHTMLSnippet(body, 200), Status: resp.StatusCode}
	}
	if resp.StatusCode >= 500 {
		return nil, NewError(KindNetwork, fmt.Sprintf("server error %d listing releases", resp.StatusCode))
	}

	releases, err := a.provider.decodeList(body)
	if err != nil {
		return nil, Wrap(KindParseFailure, "failed to parse release list", err)
	}
	return releases, nil
}

func (a *ReleaseAdapter) doGet(ctx context.Context, rawURL string) ([]byte, *http.Response, error) {
	return Download(a.doer, rawURL, a.trustedDomains(), func() (string, bool) { return a.auth.Token(ctx) })
}

var environmentsHint = regexp.MustCompile(`(?i)environments:\s*([^\n]+)`)
var tagsHint = regexp.MustCompile(`(?i)tags:\s*([^\n]+)`)

func splitHint(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' || r == '\t' })
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}

func parseReleaseHints(body string) (environments, tags []string) {
	if m := environmentsHint.FindStringSubmatch(body); m != nil {
		environments = splitHint(m[1])
	}
	if m := tagsHint.FindStringSubmatch(body); m != nil {
		tags = splitHint(m[1])
	}
	return
}

func findAsset(assets []rawAsset, match func(name string) bool) *rawAsset {
	for i := range assets {
		if match(assets[i].Name) {
			return &assets[i]
		}
	}
	return nil
}

func isManifestAsset(name string) bool {
	lower := strings.ToLower(name)
	return lower == "deployment-manifest.yml" || lower == "deployment-manifest.yaml"
}

func isArchiveAsset(name string) bool {
	lower := strings.ToLower(name)
	return strings.HasSuffix(lower, ".zip") || strings.HasSuffix(lower, ".tar.gz")
}

// toBundle converts a rawRelease into a Bundle, or returns ok=false if the
// release lacks a deployment-manifest or archive asset (spec.md §4.1:
// "skip releases missing either").
func (a *ReleaseAdapter) toBundle(r rawRelease) (Bundle, bool) {
	manifestAsset := findAsset(r.Assets, isManifestAsset)
	archiveAsset := findAsset(r.Assets, isArchiveAsset)
	if manifestAsset == nil || archiveAsset == nil {
		return Bundle{}, false
	}

	id := fmt.Sprintf("%s-%s-%s", a.owner, a.repo, r.TagName)
	version := strings.TrimPrefix(r.TagName, "v")

	name := strings.TrimSpace(r.Name)
	if name == "" {
		name = fmt.Sprintf("%s %s", a.repo, r.TagName)
	}

	environments, tags := parseReleaseHints(r.Body)

	return Bundle{
		ID:           id,
		Name:         name,
		Version:      version,
		Description:  r.Body,
		SourceID:     a.source.ID,
		SourceType:   a.provider.sourceType,
		Environments: environments,
		Tags:         tags,
		LastUpdated:  time.Now().UTC(),
		ManifestURL:  manifestAsset.DownloadURL,
		DownloadURL:  archiveAsset.DownloadURL,
		Repository:   fmt.Sprintf("https://%s/%s/%s", a.host, a.owner, a.repo),
	}, true
}

func (a *ReleaseAdapter) FetchBundles(ctx context.Context) ([]Bundle, error) {
	releases, err := a.listReleases(ctx)
	if err != nil {
		return nil, err
	}
	bundles := make([]Bundle, 0, len(releases))
	for _, r := range releases {
		if b, ok := a.toBundle(r); ok {
			bundles = append(bundles, b)
		} else {
			releaseLog.Printf("skipping release %s: missing deployment-manifest or archive asset", r.TagName)
		}
	}
	return bundles, nil
}

func (a *ReleaseAdapter) FetchMetadata(ctx context.Context, bundleID string) (Bundle, error) {
	bundles, err := a.FetchBundles(ctx)
	if err != nil {
		return Bundle{}, err
	}
	for _, b := range bundles {
		if b.ID == bundleID {
			return b, nil
		}
	}
	return Bundle{}, NewError(KindNotFound, "bundle not found: "+bundleID)
}

func (a *ReleaseAdapter) DownloadBundle(ctx context.Context, bundle Bundle) ([]byte, error) {
	body, resp, err := a.doGet(ctx, bundle.DownloadURL)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, a.auth.Invalidate(resp.StatusCode)
	}
	return body, nil
}

func (a *ReleaseAdapter) GetManifestURL(ctx context.Context, bundle Bundle) (string, error) {
	return bundle.ManifestURL, nil
}

func (a *ReleaseAdapter) GetDownloadURL(ctx context.Context, bundle Bundle) (string, error) {
	return bundle.DownloadURL, nil
}
