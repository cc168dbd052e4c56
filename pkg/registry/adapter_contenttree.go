package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/github/gh-bundles/pkg/logger"
	"github.com/github/gh-bundles/pkg/repoutil"
	"github.com/goccy/go-yaml"
)

var contentTreeLog = logger.New("registry:adapter_contenttree")

const collectionCacheTTL = 5 * time.Minute

// collectionDescriptor is the YAML shape of one content-tree bundle
// descriptor (spec.md §6, "Collection descriptor").
type collectionDescriptor struct {
	ID          string               `yaml:"id"`
	Name        string               `yaml:"name"`
	Description string               `yaml:"description"`
	Version     string               `yaml:"version"`
	Tags        []string             `yaml:"tags"`
	Items       []collectionItemSpec `yaml:"items"`
}

type collectionItemSpec struct {
	Path string `yaml:"path"`
	Kind string `yaml:"kind"`
}

type githubTreeEntry struct {
	Name string `json:"name"`
	Path string `json:"path"`
	Type string `json:"type"`
	URL  string `json:"download_url"`
}

// ContentTreeAdapter implements Adapter over a directory of collection
// descriptors in a repository tree (spec.md §4.1, "awesome-copilot style").
type ContentTreeAdapter struct {
	source          Source
	doer            HTTPDoer
	owner, repo     string
	host            string
	collectionsPath string
	branch          string
	auth            *authChain

	mu         sync.Mutex
	cachedAt   time.Time
	cachedData []Bundle
}

// NewContentTreeAdapter builds the content-tree adapter for source. The
// source's Config must carry a "collectionsPath" key naming the directory to
// list (e.g. "collections").
func NewContentTreeAdapter(source Source, doer HTTPDoer, session AuthSessionProvider, externalCLI TokenCommandRunner) (*ContentTreeAdapter, error) {
	host, owner, repo, err := repoutil.ParseURL(source.URL)
	if err != nil {
		return nil, Wrap(KindInvalidURL, "content-tree adapter requires a valid repository URL", err)
	}

	collectionsPath, _ := source.Config["collectionsPath"].(string)
	if collectionsPath == "" {
		collectionsPath = "collections"
	}
	branch, _ := source.Config["branch"].(string)
	if branch == "" {
		branch = "main"
	}

	return &ContentTreeAdapter{
		source:          source,
		doer:            doer,
		owner:           owner,
		repo:            repo,
		host:            host,
		collectionsPath: collectionsPath,
		branch:          branch,
		auth:            newAuthChain(source.Token, session, externalCLI, host),
	}, nil
}

func (a *ContentTreeAdapter) Capabilities() []Capability {
	return []Capability{CapValidate, CapFetchBundles, CapFetchMetadata, CapDownloadBundle, CapGetManifestURL, CapGetDownloadURL}
}

// AutoUpdatesIntrinsic implements the AutoUpdatesIntrinsic marker: this
// adapter's bundle ids are version-independent, so the manager re-syncs in
// place instead of relying on checkUpdates (spec.md §4.1, §8 scenario 2).
func (a *ContentTreeAdapter) AutoUpdatesIntrinsic() bool { return true }

func (a *ContentTreeAdapter) trustedDomains() TrustedDomains {
	base := strings.TrimSuffix(a.host, ".com")
	return TrustedDomains{a.host, "api." + a.host, "raw." + base + "usercontent.com"}
}

func (a *ContentTreeAdapter) Validate(ctx context.Context) error {
	_, err := a.listDescriptorFiles(ctx)
	return err
}

// ClearCache drops the short-lived collection cache, per spec.md §4.1
// ("external code may clear it").
func (a *ContentTreeAdapter) ClearCache() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.cachedAt = time.Time{}
	a.cachedData = nil
}

func (a *ContentTreeAdapter) listDescriptorFiles(ctx context.Context) ([]githubTreeEntry, error) {
	u := fmt.Sprintf("https://api.%s/repos/%s/%s/contents/%s?ref=%s", a.host, a.owner, a.repo, a.collectionsPath, a.branch)
	body, resp, err := Download(a.doer, u, a.trustedDomains(), func() (string, bool) { return a.auth.Token(ctx) })
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, a.auth.Invalidate(resp.StatusCode)
	}
	if isHTMLContentType(resp) {
		return nil, &Error{Kind: KindHTMLResponse, Message: "expected JSON but received HTML: " + extractHTMLSnippet(body, 200), Status: resp.StatusCode}
	}

	var entries []githubTreeEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, Wrap(KindParseFailure, "failed to parse directory listing", err)
	}

	out := entries[:0]
	for _, e := range entries {
		if e.Type == "file" && strings.HasSuffix(strings.ToLower(e.Name), ".collection.yml") {
			out = append(out, e)
		} else if e.Type == "file" && strings.HasSuffix(strings.ToLower(e.Name), ".collection.yaml") {
			out = append(out, e)
		}
	}
	return out, nil
}

func (a *ContentTreeAdapter) fetchDescriptor(ctx context.Context, entry githubTreeEntry) (Bundle, error) {
	body, resp, err := Download(a.doer, entry.URL, a.trustedDomains(), func() (string, bool) { return a.auth.Token(ctx) })
	if err != nil {
		return Bundle{}, err
	}
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return Bundle{}, a.auth.Invalidate(resp.StatusCode)
	}

	var desc collectionDescriptor
	if err := yaml.Unmarshal(body, &desc); err != nil {
		return Bundle{}, Wrap(KindParseFailure, "failed to parse collection descriptor "+entry.Path, err)
	}
	if desc.ID == "" {
		return Bundle{}, NewError(KindValidation, "collection descriptor "+entry.Path+" missing id")
	}

	return Bundle{
		ID:          desc.ID,
		Name:        desc.Name,
		Version:     desc.Version,
		Description: desc.Description,
		SourceID:    a.source.ID,
		SourceType:  a.source.Type,
		Tags:        desc.Tags,
		LastUpdated: time.Now().UTC(),
		ManifestURL: entry.URL,
		DownloadURL: entry.URL,
		Repository:  fmt.Sprintf("https://%s/%s/%s", a.host, a.owner, a.repo),
	}, nil
}

func (a *ContentTreeAdapter) FetchBundles(ctx context.Context) ([]Bundle, error) {
	a.mu.Lock()
	if !a.cachedAt.IsZero() && time.Since(a.cachedAt) < collectionCacheTTL {
		cached := a.cachedData
		a.mu.Unlock()
		contentTreeLog.Printf("serving %d collections from cache (age %s)", len(cached), time.Since(a.cachedAt))
		return cached, nil
	}
	a.mu.Unlock()

	entries, err := a.listDescriptorFiles(ctx)
	if err != nil {
		return nil, err
	}

	bundles := make([]Bundle, 0, len(entries))
	for _, e := range entries {
		b, err := a.fetchDescriptor(ctx, e)
		if err != nil {
			contentTreeLog.Printf("skipping collection %s: %v", e.Path, err)
			continue
		}
		bundles = append(bundles, b)
	}

	a.mu.Lock()
	a.cachedAt = time.Now()
	a.cachedData = bundles
	a.mu.Unlock()

	return bundles, nil
}

func (a *ContentTreeAdapter) FetchMetadata(ctx context.Context, bundleID string) (Bundle, error) {
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

// DownloadBundle fetches the descriptor again (it is the source of truth for
// item paths) and returns its raw YAML bytes. The installer does not extract
// these: it sees that this adapter implements ItemFetcher and materialises
// each item individually through FetchItems.
func (a *ContentTreeAdapter) DownloadBundle(ctx context.Context, bundle Bundle) ([]byte, error) {
	body, resp, err := Download(a.doer, bundle.ManifestURL, a.trustedDomains(), func() (string, bool) { return a.auth.Token(ctx) })
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, a.auth.Invalidate(resp.StatusCode)
	}
	return body, nil
}

func (a *ContentTreeAdapter) GetManifestURL(ctx context.Context, bundle Bundle) (string, error) {
	return bundle.ManifestURL, nil
}

func (a *ContentTreeAdapter) GetDownloadURL(ctx context.Context, bundle Bundle) (string, error) {
	return bundle.DownloadURL, nil
}

// FetchItems implements ItemFetcher: it re-fetches bundle's descriptor and
// downloads each item's raw file content, keyed by the item's manifest path.
// Content-tree bundles have no archive asset, so Installer materialises them
// this way instead of extracting a zip/tar (spec.md §4.1).
func (a *ContentTreeAdapter) FetchItems(ctx context.Context, bundle Bundle) (map[string][]byte, error) {
	body, resp, err := Download(a.doer, bundle.ManifestURL, a.trustedDomains(), func() (string, bool) { return a.auth.Token(ctx) })
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, a.auth.Invalidate(resp.StatusCode)
	}

	var desc collectionDescriptor
	if err := yaml.Unmarshal(body, &desc); err != nil {
		return nil, Wrap(KindParseFailure, "failed to parse collection descriptor", err)
	}

	items := make(map[string][]byte, len(desc.Items))
	for _, item := range desc.Items {
		base := strings.TrimSuffix(a.host, ".com")
		rawURL := fmt.Sprintf("https://raw.%susercontent.com/%s/%s/%s/%s", base, a.owner, a.repo, a.branch, item.Path)
		data, itemResp, err := Download(a.doer, rawURL, a.trustedDomains(), func() (string, bool) { return a.auth.Token(ctx) })
		if err != nil {
			return nil, err
		}
		if itemResp.StatusCode == http.StatusUnauthorized || itemResp.StatusCode == http.StatusForbidden {
			return nil, a.auth.Invalidate(itemResp.StatusCode)
		}
		if itemResp.StatusCode == http.StatusNotFound {
			return nil, NewError(KindNotFound, "collection item not found: "+item.Path)
		}
		items[item.Path] = data
	}
	return items, nil
}
