package registry

import "context"

// Capability names one operation an Adapter may support. Not every Adapter
// implements every capability (e.g. local adapters have no meaningful
// getManifestUrl beyond a file:// path).
type Capability string

const (
	CapValidate       Capability = "validate"
	CapFetchBundles   Capability = "fetchBundles"
	CapFetchMetadata  Capability = "fetchMetadata"
	CapDownloadBundle Capability = "downloadBundle"
	CapGetManifestURL Capability = "getManifestUrl"
	CapGetDownloadURL Capability = "getDownloadUrl"
)

// Adapter is the per-protocol driver for one Source. Implementations live in
// adapter_release.go, adapter_contenttree.go, adapter_local.go and
// adapter_http.go.
type Adapter interface {
	// Capabilities lists the operations this adapter variant supports.
	Capabilities() []Capability

	// Validate checks the source is reachable/usable. A non-fatal empty
	// bundle set is not an error here; callers warn instead.
	Validate(ctx context.Context) error

	// FetchBundles enumerates every bundle (all versions) the source
	// currently advertises.
	FetchBundles(ctx context.Context) ([]Bundle, error)

	// FetchMetadata fetches just the given bundle's description, without a
	// download.
	FetchMetadata(ctx context.Context, bundleID string) (Bundle, error)

	// DownloadBundle retrieves the archive bytes (or directory-copy plan,
	// for local adapters) for a bundle's download URL.
	DownloadBundle(ctx context.Context, bundle Bundle) ([]byte, error)

	// GetManifestURL resolves the deployment-manifest URL for a bundle.
	GetManifestURL(ctx context.Context, bundle Bundle) (string, error)

	// GetDownloadURL resolves the archive URL for a bundle.
	GetDownloadURL(ctx context.Context, bundle Bundle) (string, error)
}

// AutoUpdatesIntrinsic reports whether this adapter's bundle identity is
// version-independent (spec.md §4.1, content-tree adapter). The manager does
// not consult it: SyncSource only refreshes the bundle cache and leaves
// installed records unchanged, so newer versions are found by CheckUpdates.
type AutoUpdatesIntrinsic interface {
	AutoUpdatesIntrinsic() bool
}
