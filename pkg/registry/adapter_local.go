package registry

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/github/gh-bundles/pkg/fileutil"
	"github.com/github/gh-bundles/pkg/logger"
)

var localLog = logger.New("registry:adapter_local")

// LocalAdapter implements Adapter over a bundle directory on the local
// filesystem (spec.md §4.1, source type "local"). Source type
// "local-awesome-copilot" is not handled here: the CLI's adapter factory
// routes it to NewContentTreeAdapter.
type LocalAdapter struct {
	source Source
	root   string
}

// NewLocalAdapter builds the local-directory adapter. source.URL is an
// absolute path to the bundle's root directory (containing a
// deployment-manifest and the files it references).
func NewLocalAdapter(source Source) (*LocalAdapter, error) {
	root, err := fileutil.ValidateAbsolutePath(source.URL)
	if err != nil {
		return nil, Wrap(KindInvalidURL, "local source requires an absolute path", err)
	}
	return &LocalAdapter{source: source, root: root}, nil
}

func (a *LocalAdapter) Capabilities() []Capability {
	return []Capability{CapValidate, CapFetchBundles, CapFetchMetadata, CapDownloadBundle, CapGetManifestURL, CapGetDownloadURL}
}

func (a *LocalAdapter) Validate(ctx context.Context) error {
	if !fileutil.DirExists(a.root) {
		return NewError(KindValidation, "local source path does not exist or is not a directory: "+a.root)
	}
	info, err := os.Stat(a.root)
	if err != nil {
		return Wrap(KindValidation, "local source path is not readable", err)
	}
	if info.Mode().Perm()&0o400 == 0 {
		return NewError(KindValidation, "local source path is not readable: "+a.root)
	}
	return nil
}

func (a *LocalAdapter) FetchBundles(ctx context.Context) ([]Bundle, error) {
	manifestPath := filepath.Join(a.root, "deployment-manifest.yml")
	if !fileutil.FileExists(manifestPath) {
		manifestPath = filepath.Join(a.root, "deployment-manifest.yaml")
	}
	if !fileutil.FileExists(manifestPath) {
		localLog.Printf("no deployment manifest found under %s", a.root)
		return nil, nil
	}

	name := filepath.Base(a.root)
	id := "local-" + name

	return []Bundle{{
		ID:          id,
		Name:        name,
		Version:     "0.0.0-local",
		SourceID:    a.source.ID,
		SourceType:  SourceTypeLocal,
		LastUpdated: time.Now().UTC(),
		ManifestURL: manifestPath,
		DownloadURL: a.root,
	}}, nil
}

func (a *LocalAdapter) FetchMetadata(ctx context.Context, bundleID string) (Bundle, error) {
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

// DownloadBundle for a local adapter returns the root directory path itself;
// the installer recognises SourceTypeLocal and copies the tree directly
// instead of extracting an archive.
func (a *LocalAdapter) DownloadBundle(ctx context.Context, bundle Bundle) ([]byte, error) {
	return []byte(a.root), nil
}

func (a *LocalAdapter) GetManifestURL(ctx context.Context, bundle Bundle) (string, error) {
	return bundle.ManifestURL, nil
}

func (a *LocalAdapter) GetDownloadURL(ctx context.Context, bundle Bundle) (string, error) {
	return bundle.DownloadURL, nil
}
