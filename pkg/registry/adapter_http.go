package registry

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/github/gh-bundles/pkg/logger"
)

var httpCatalogLog = logger.New("registry:adapter_http")

// httpCatalogEntry is the JSON shape of one entry in an http-catalog index.
type httpCatalogEntry struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Version     string   `json:"version"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	ManifestURL string   `json:"manifestUrl"`
	DownloadURL string   `json:"downloadUrl"`
}

// HTTPCatalogAdapter implements Adapter over a plain JSON bundle index
// served over HTTP (spec.md §4.1, source type "http"). It has no release
// semantics and only an optional static bearer token — no fallback chain.
type HTTPCatalogAdapter struct {
	source Source
	doer   HTTPDoer
	token  string
}

// NewHTTPCatalogAdapter builds the adapter. source.URL is the catalog index
// URL.
func NewHTTPCatalogAdapter(source Source, doer HTTPDoer) *HTTPCatalogAdapter {
	return &HTTPCatalogAdapter{source: source, doer: doer, token: strings.TrimSpace(source.Token)}
}

func (a *HTTPCatalogAdapter) Capabilities() []Capability {
	return []Capability{CapValidate, CapFetchBundles, CapFetchMetadata, CapDownloadBundle, CapGetManifestURL, CapGetDownloadURL}
}

func (a *HTTPCatalogAdapter) Validate(ctx context.Context) error {
	_, err := a.fetchCatalog(ctx)
	return err
}

func (a *HTTPCatalogAdapter) fetchCatalog(ctx context.Context) ([]httpCatalogEntry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.source.URL, nil)
	if err != nil {
		return nil, Wrap(KindNetwork, "failed to build catalog request", err)
	}
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}

	resp, err := a.doer.Do(req)
	if err != nil {
		return nil, Wrap(KindNetwork, "catalog request failed", err)
	}
	body, err := readAllAndClose(resp)
	if err != nil {
		return nil, Wrap(KindNetwork, "failed reading catalog response", err)
	}
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, &Error{Kind: KindAuthentication, Message: "http catalog rejected the configured token", Status: resp.StatusCode, Suggestion: statusSuggestions[resp.StatusCode]}
	}
	if isHTMLContentType(resp) {
		return nil, &Error{Kind: KindHTMLResponse, Message: "expected JSON but received HTML: " + extractHTMLSnippet(body, 200), Status: resp.StatusCode}
	}

	var entries []httpCatalogEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, Wrap(KindParseFailure, "failed to parse http catalog", err)
	}
	httpCatalogLog.Printf("fetched %d bundles from catalog %s", len(entries), a.source.URL)
	return entries, nil
}

func (a *HTTPCatalogAdapter) FetchBundles(ctx context.Context) ([]Bundle, error) {
	entries, err := a.fetchCatalog(ctx)
	if err != nil {
		return nil, err
	}
	bundles := make([]Bundle, 0, len(entries))
	for _, e := range entries {
		bundles = append(bundles, Bundle{
			ID:          e.ID,
			Name:        e.Name,
			Version:     e.Version,
			Description: e.Description,
			SourceID:    a.source.ID,
			SourceType:  SourceTypeHTTP,
			Tags:        e.Tags,
			LastUpdated: time.Now().UTC(),
			ManifestURL: e.ManifestURL,
			DownloadURL: e.DownloadURL,
		})
	}
	return bundles, nil
}

func (a *HTTPCatalogAdapter) FetchMetadata(ctx context.Context, bundleID string) (Bundle, error) {
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

func (a *HTTPCatalogAdapter) DownloadBundle(ctx context.Context, bundle Bundle) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, bundle.DownloadURL, nil)
	if err != nil {
		return nil, Wrap(KindNetwork, "failed to build download request", err)
	}
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}
	resp, err := a.doer.Do(req)
	if err != nil {
		return nil, Wrap(KindNetwork, "download request failed", err)
	}
	return readAllAndClose(resp)
}

func (a *HTTPCatalogAdapter) GetManifestURL(ctx context.Context, bundle Bundle) (string, error) {
	return bundle.ManifestURL, nil
}

func (a *HTTPCatalogAdapter) GetDownloadURL(ctx context.Context, bundle Bundle) (string, error) {
	return bundle.DownloadURL, nil
}
