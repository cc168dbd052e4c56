package registry

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/goccy/go-yaml"

	"github.com/github/gh-bundles/pkg/fileutil"
	"github.com/github/gh-bundles/pkg/logger"
)

var installerLog = logger.New("registry:installer")

// Installer materialises a downloaded bundle onto disk: it extracts the
// archive into a staging directory, applies the manifest's include/exclude
// patterns, computes a lockfile, and atomically swaps it into place
// (spec.md §4.4).
type Installer struct{}

// NewInstaller builds an Installer.
func NewInstaller() *Installer {
	return &Installer{}
}

// loadManifestFromArchive extracts the deployment manifest from raw zip or
// gzip+tar archive bytes. Input that is not an archive (such as a bare YAML
// document) is rejected rather than parsed.
func loadManifestFromArchive(archiveBytes []byte) (DeploymentManifest, error) {
	entries, err := readArchiveEntries(archiveBytes)
	if err != nil {
		return DeploymentManifest{}, err
	}
	for name, data := range entries {
		base := strings.ToLower(filepath.Base(name))
		if base == "deployment-manifest.yml" || base == "deployment-manifest.yaml" {
			var m DeploymentManifest
			if err := yaml.Unmarshal(data, &m); err != nil {
				return DeploymentManifest{}, Wrap(KindParseFailure, "failed to parse deployment manifest", err)
			}
			return m, nil
		}
	}
	return DeploymentManifest{}, NewError(KindValidation, "archive does not contain a deployment-manifest")
}

// readArchiveEntries extracts every regular file in a zip or gzip+tar
// archive into memory, keyed by its archive-relative path. Bundle archives
// are small collections of prompt/instruction files, never large binaries,
// so holding the whole tree in memory is acceptable (spec.md §4.4 non-goal:
// no streaming extraction).
func readArchiveEntries(archiveBytes []byte) (map[string][]byte, error) {
	if isZip(archiveBytes) {
		return readZipEntries(archiveBytes)
	}
	return readTarGzEntries(archiveBytes)
}

func isZip(b []byte) bool {
	return len(b) >= 4 && b[0] == 'P' && b[1] == 'K' && (b[2] == 0x03 || b[2] == 0x05 || b[2] == 0x07)
}

func readZipEntries(archiveBytes []byte) (map[string][]byte, error) {
	r, err := zip.NewReader(bytes.NewReader(archiveBytes), int64(len(archiveBytes)))
	if err != nil {
		return nil, Wrap(KindParseFailure, "failed to open zip archive", err)
	}
	out := map[string][]byte{}
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, Wrap(KindParseFailure, "failed to open zip entry "+f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, Wrap(KindParseFailure, "failed to read zip entry "+f.Name, err)
		}
		out[f.Name] = data
	}
	return out, nil
}

func readTarGzEntries(archiveBytes []byte) (map[string][]byte, error) {
	gz, err := gzip.NewReader(bytes.NewReader(archiveBytes))
	if err != nil {
		return nil, Wrap(KindParseFailure, "failed to open gzip stream", err)
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	out := map[string][]byte{}
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, Wrap(KindParseFailure, "failed to read tar archive", err)
		}
		if hdr.Typeflag != tar.TypeReg {
			continue
		}
		data, err := io.ReadAll(tr)
		if err != nil {
			return nil, Wrap(KindParseFailure, "failed to read tar entry "+hdr.Name, err)
		}
		out[hdr.Name] = data
	}
	return out, nil
}

// matchesPatterns reports whether rel should be included, per spec.md §4.4:
// exclude patterns win over include patterns; an empty include list means
// "include everything not excluded".
func matchesPatterns(rel string, include, exclude []string) bool {
	for _, pat := range exclude {
		if ok, _ := doublestar.Match(pat, rel); ok {
			return false
		}
	}
	if len(include) == 0 {
		return true
	}
	for _, pat := range include {
		if ok, _ := doublestar.Match(pat, rel); ok {
			return true
		}
	}
	return false
}

// stagingRoot returns a sibling directory used to assemble the new install
// tree before the atomic rename into installPath.
func stagingRoot(installPath string) string {
	return installPath + ".staging"
}

// Install downloads, verifies, and materialises bundle into installPath
// under scope, using manifest to select and place files. Any existing
// content at installPath is backed up and only removed once the new tree is
// fully staged, per spec.md §4.4's "compensating delete on failure" rule.
func (inst *Installer) Install(ctx context.Context, adapter Adapter, bundle Bundle, manifest DeploymentManifest, installPath string) error {
	raw, err := adapter.DownloadBundle(ctx, bundle)
	if err != nil {
		return err
	}

	staging := stagingRoot(installPath)
	if err := os.RemoveAll(staging); err != nil {
		return Wrap(KindFilesystem, "failed to clear staging directory", err)
	}
	if err := os.MkdirAll(staging, 0o755); err != nil {
		return Wrap(KindFilesystem, "failed to create staging directory", err)
	}
	defer os.RemoveAll(staging)

	var placed []string
	switch {
	case bundle.SourceType == SourceTypeLocal:
		placed, err = inst.stageLocalDirectory(string(raw), staging, manifest)
	default:
		if fetcher, ok := adapter.(ItemFetcher); ok {
			placed, err = inst.stageItems(ctx, fetcher, bundle, staging, manifest)
		} else {
			placed, err = inst.stageArchive(raw, staging, manifest)
		}
	}
	if err != nil {
		return err
	}
	if len(placed) == 0 {
		return NewError(KindValidation, "bundle "+bundle.ID+" produced no files to install")
	}

	if err := writeLockfile(staging, bundle.ID, bundle.Version, placed); err != nil {
		return err
	}

	backup := installPath + ".bak." + fmt.Sprint(time.Now().UnixNano())
	hadExisting := fileutil.DirExists(installPath)
	if hadExisting {
		if err := os.Rename(installPath, backup); err != nil {
			return Wrap(KindFilesystem, "failed to back up previous install", err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(installPath), 0o755); err != nil {
		inst.rollback(installPath, backup, hadExisting)
		return Wrap(KindFilesystem, "failed to create install parent directory", err)
	}
	if err := os.Rename(staging, installPath); err != nil {
		inst.rollback(installPath, backup, hadExisting)
		return Wrap(KindFilesystem, "failed to finalize install", err)
	}

	if hadExisting {
		if err := os.RemoveAll(backup); err != nil {
			installerLog.Printf("failed to remove backup %s: %v", backup, err)
		}
	}
	return nil
}

// rollback restores installPath from backup after a failed finalize step,
// the "compensating delete on failure" spec.md §4.4 requires.
func (inst *Installer) rollback(installPath, backup string, hadExisting bool) {
	if !hadExisting {
		return
	}
	if err := os.Rename(backup, installPath); err != nil {
		installerLog.Printf("failed to restore backup %s after failed install: %v", backup, err)
	}
}

// ItemFetcher is implemented by adapters whose bundles are a flat set of
// remote files rather than an archive (content-tree sources). Installer
// prefers this over DownloadBundle+extract when available.
type ItemFetcher interface {
	FetchItems(ctx context.Context, bundle Bundle) (map[string][]byte, error)
}

func (inst *Installer) stageItems(ctx context.Context, fetcher ItemFetcher, bundle Bundle, staging string, manifest DeploymentManifest) ([]string, error) {
	items, err := fetcher.FetchItems(ctx, bundle)
	if err != nil {
		return nil, err
	}
	targets := manifestTargets(manifest)

	var placed []string
	for path, data := range items {
		rel := path
		if target, ok := targets[path]; ok {
			rel = target
		}
		if !matchesPatterns(rel, manifest.IncludePatterns, manifest.ExcludePatterns) {
			continue
		}
		if err := writeStagedFile(staging, rel, data); err != nil {
			return nil, err
		}
		placed = append(placed, filepath.ToSlash(rel))
	}
	return placed, nil
}

func (inst *Installer) stageArchive(archiveBytes []byte, staging string, manifest DeploymentManifest) ([]string, error) {
	entries, err := readArchiveEntries(archiveBytes)
	if err != nil {
		return nil, err
	}

	targets := manifestTargets(manifest)

	var placed []string
	for name, data := range entries {
		base := strings.ToLower(filepath.Base(name))
		if base == "deployment-manifest.yml" || base == "deployment-manifest.yaml" {
			continue
		}
		rel := name
		if target, ok := targets[name]; ok {
			rel = target
		}
		if !matchesPatterns(rel, manifest.IncludePatterns, manifest.ExcludePatterns) {
			continue
		}
		if err := writeStagedFile(staging, rel, data); err != nil {
			return nil, err
		}
		placed = append(placed, filepath.ToSlash(rel))
	}
	return placed, nil
}

func manifestTargets(manifest DeploymentManifest) map[string]string {
	out := make(map[string]string, len(manifest.Files))
	for _, f := range manifest.Files {
		out[f.Source] = f.Target
	}
	return out
}

func writeStagedFile(staging, rel string, data []byte) error {
	cleanRel := filepath.Clean(rel)
	if cleanRel == ".." || strings.HasPrefix(cleanRel, ".."+string(filepath.Separator)) || filepath.IsAbs(cleanRel) {
		return NewError(KindValidation, "manifest references a path outside the install root: "+rel)
	}
	dest := filepath.Join(staging, cleanRel)
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return Wrap(KindFilesystem, "failed to create directory for "+rel, err)
	}
	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return Wrap(KindFilesystem, "failed to write "+rel, err)
	}
	return nil
}

// stageLocalDirectory copies a local-source bundle's directory tree
// directly, applying the same include/exclude rules as an archive.
func (inst *Installer) stageLocalDirectory(root, staging string, manifest DeploymentManifest) ([]string, error) {
	var placed []string
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return err
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return relErr
		}
		base := strings.ToLower(filepath.Base(rel))
		if base == "deployment-manifest.yml" || base == "deployment-manifest.yaml" {
			return nil
		}
		if !matchesPatterns(filepath.ToSlash(rel), manifest.IncludePatterns, manifest.ExcludePatterns) {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if err := writeStagedFile(staging, rel, data); err != nil {
			return err
		}
		placed = append(placed, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, Wrap(KindFilesystem, "failed to copy local bundle directory", err)
	}
	return placed, nil
}

// Uninstall removes installPath, refusing to act if it escapes the expected
// scope root (spec.md §4.4's root-containment check).
func (inst *Installer) Uninstall(ctx context.Context, scopeRoot, installPath string) error {
	absRoot, err := filepath.Abs(scopeRoot)
	if err != nil {
		return Wrap(KindFilesystem, "failed to resolve scope root", err)
	}
	absInstall, err := filepath.Abs(installPath)
	if err != nil {
		return Wrap(KindFilesystem, "failed to resolve install path", err)
	}
	rel, err := filepath.Rel(absRoot, absInstall)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return NewError(KindValidation, "refusing to uninstall a path outside the scope root: "+installPath)
	}
	if !fileutil.DirExists(absInstall) {
		return NewError(KindNotFound, "install path does not exist: "+installPath)
	}
	if err := os.RemoveAll(absInstall); err != nil {
		return Wrap(KindFilesystem, "failed to remove install directory", err)
	}
	return nil
}
