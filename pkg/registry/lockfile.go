package registry

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/github/gh-bundles/pkg/logger"
)

var lockfileLog = logger.New("registry:lockfile")

// lockfile records the checksum of every file an InstalledBundle placed on
// disk, so a later update can detect local edits before clobbering them
// (spec.md §4.4). Only UpdateBundle checks it; install and uninstall do not.
type lockfile struct {
	BundleID string            `json:"bundleId"`
	Version  string            `json:"version"`
	Files    map[string]string `json:"files"` // install-relative path -> sha256 hex
}

func lockfilePath(installPath string) string {
	return filepath.Join(installPath, ".gh-bundles-lock.json")
}

// checksumFile returns the lowercase hex SHA-256 digest of the file at path.
func checksumFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// writeLockfile computes checksums for every file the manifest placed under
// installPath and writes them as canonical, stably-ordered JSON (map keys
// sort automatically in Go's encoding/json) followed by a trailing newline.
func writeLockfile(installPath, bundleID, version string, relPaths []string) error {
	lf := lockfile{BundleID: bundleID, Version: version, Files: map[string]string{}}
	for _, rel := range relPaths {
		sum, err := checksumFile(filepath.Join(installPath, rel))
		if err != nil {
			return Wrap(KindFilesystem, "failed to checksum installed file "+rel, err)
		}
		lf.Files[rel] = sum
	}

	data, err := json.MarshalIndent(lf, "", "  ")
	if err != nil {
		return Wrap(KindInternal, "failed to marshal lockfile", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(lockfilePath(installPath), data, 0o644); err != nil {
		return Wrap(KindFilesystem, "failed to write lockfile", err)
	}
	return nil
}

func readLockfile(installPath string) (*lockfile, error) {
	data, err := os.ReadFile(lockfilePath(installPath))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, Wrap(KindFilesystem, "failed to read lockfile", err)
	}
	var lf lockfile
	if err := json.Unmarshal(data, &lf); err != nil {
		return nil, Wrap(KindParseFailure, "failed to parse lockfile", err)
	}
	return &lf, nil
}

// FileDiff classifies one file's state relative to the lockfile.
type FileDiff struct {
	Path   string
	Status string // "missing", "modified", "new"
}

// detectModifiedFiles compares the files a lockfile recorded against their
// current on-disk state: "missing" (recorded, file gone), "modified"
// (recorded, checksum differs), "new" (present on disk, not recorded).
func detectModifiedFiles(installPath string, lf *lockfile) ([]FileDiff, error) {
	if lf == nil {
		return nil, nil
	}

	var diffs []FileDiff
	seen := map[string]bool{}

	for rel, wantSum := range lf.Files {
		seen[rel] = true
		path := filepath.Join(installPath, rel)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			diffs = append(diffs, FileDiff{Path: rel, Status: "missing"})
			continue
		}
		gotSum, err := checksumFile(path)
		if err != nil {
			return nil, Wrap(KindFilesystem, "failed to checksum "+rel, err)
		}
		if gotSum != wantSum {
			diffs = append(diffs, FileDiff{Path: rel, Status: "modified"})
		}
	}

	walkErr := filepath.WalkDir(installPath, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		rel, relErr := filepath.Rel(installPath, path)
		if relErr != nil || rel == filepath.Base(lockfilePath(installPath)) {
			return nil
		}
		if !seen[rel] {
			diffs = append(diffs, FileDiff{Path: rel, Status: "new"})
		}
		return nil
	})
	if walkErr != nil {
		return nil, Wrap(KindFilesystem, "failed to walk install directory", walkErr)
	}

	return diffs, nil
}

// LockfileResolution is the operator's choice when an update would clobber
// locally modified files.
type LockfileResolution string

const (
	ResolutionContribute LockfileResolution = "Contribute Changes"
	ResolutionOverride   LockfileResolution = "Override"
	ResolutionCancel     LockfileResolution = "Cancel"
)

// confirmOverwrite surfaces the three-button warning dialog spec.md §4.4
// requires whenever diffs is non-empty, and returns the operator's choice.
// An empty diffs list resolves to Override without prompting.
func confirmOverwrite(ctx context.Context, surface InteractiveSurface, bundleID string, diffs []FileDiff) (LockfileResolution, error) {
	if len(diffs) == 0 {
		return ResolutionOverride, nil
	}
	lockfileLog.Printf("%d locally modified file(s) detected for %s", len(diffs), bundleID)

	choice, err := surface.Warn(ctx, bundleID+" has locally modified files that would be overwritten",
		string(ResolutionContribute), string(ResolutionOverride), string(ResolutionCancel))
	if err != nil {
		return "", Wrap(KindInternal, "failed to prompt for overwrite resolution", err)
	}
	switch LockfileResolution(choice) {
	case ResolutionContribute, ResolutionOverride, ResolutionCancel:
		return LockfileResolution(choice), nil
	default:
		return ResolutionCancel, nil
	}
}
