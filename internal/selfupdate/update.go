package selfupdate

import (
	"archive/tar"
	"archive/zip"
	"bufio"
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"golang.org/x/mod/semver"
)

const checksumsAsset = "checksums.txt"

var ErrChecksum = errors.New("checksum mismatch")

// Stage names a step of Update for progress reporting.
type Stage string

const (
	StageResolve  Stage = "resolve"
	StageDownload Stage = "download"
	StageVerify   Stage = "verify"
	StageInstall  Stage = "install"
)

type UpdateInput struct {
	CurrentVersion string
	// TargetVersion pins a release tag. Empty means the latest release.
	TargetVersion string
}

type UpdateProgress struct {
	Stage   Stage
	Message string
}

// Update replaces the running executable with the target release. The
// archive is checked against the release's checksums.txt before anything on
// disk changes.
func (c *Checker) Update(ctx context.Context, input *UpdateInput, progress func(UpdateProgress)) (*Release, error) {
	if progress == nil {
		progress = func(UpdateProgress) {}
	}
	current, err := parseVersion(input.CurrentVersion)
	if err != nil {
		return nil, err
	}

	progress(UpdateProgress{StageResolve, "Looking up release..."})
	var rel *Release
	if input.TargetVersion != "" {
		rel, err = c.releaseByTag(ctx, input.TargetVersion)
	} else {
		rel, err = c.latestRelease(ctx)
	}
	if err != nil {
		return nil, err
	}
	if input.TargetVersion == "" && semver.Compare(rel.version, current) <= 0 {
		return rel, ErrAlreadyLatest
	}

	asset, err := assetName(c.goos, c.goarch)
	if err != nil {
		return nil, err
	}

	progress(UpdateProgress{StageDownload, fmt.Sprintf("Downloading %s %s...", rel.Tag, asset)})
	archive, err := c.download(ctx, rel, asset)
	if err != nil {
		return nil, err
	}

	progress(UpdateProgress{StageVerify, "Verifying checksum..."})
	sums, err := c.download(ctx, rel, checksumsAsset)
	if err != nil {
		return nil, err
	}
	if err := verifyAsset(archive, sums, asset); err != nil {
		return nil, err
	}

	bin, err := extractBinary(archive, asset, binaryFile(c.goos))
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}

	progress(UpdateProgress{StageInstall, "Installing..."})
	target, err := c.execPath()
	if err != nil {
		return nil, fmt.Errorf("resolve executable: %w", err)
	}
	if err := replaceExecutable(target, bin); err != nil {
		return nil, fmt.Errorf("install: %w", err)
	}
	return rel, nil
}

// assetName is the archive published for a platform, following the
// goreleaser default template focusflow_{os}_{arch}.
func assetName(goos, goarch string) (string, error) {
	switch goarch {
	case "amd64", "arm64":
	default:
		return "", fmt.Errorf("no release build for %s/%s", goos, goarch)
	}
	switch goos {
	case "linux", "darwin":
		return fmt.Sprintf("focusflow_%s_%s.tar.gz", goos, goarch), nil
	case "windows":
		return fmt.Sprintf("focusflow_%s_%s.zip", goos, goarch), nil
	default:
		return "", fmt.Errorf("no release build for %s/%s", goos, goarch)
	}
}

func binaryFile(goos string) string {
	if goos == "windows" {
		return "focusflow.exe"
	}
	return "focusflow"
}

// verifyAsset checks data against the sha256sum-format line for name.
func verifyAsset(data, sums []byte, name string) error {
	sc := bufio.NewScanner(bytes.NewReader(sums))
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) != 2 || strings.TrimPrefix(fields[1], "*") != name {
			continue
		}
		got := sha256.Sum256(data)
		if hex.EncodeToString(got[:]) != strings.ToLower(fields[0]) {
			return fmt.Errorf("%w for %s", ErrChecksum, name)
		}
		return nil
	}
	if err := sc.Err(); err != nil {
		return err
	}
	return fmt.Errorf("%s lists no checksum for %s", checksumsAsset, name)
}

// extractBinary returns the file called bin from a .tar.gz or .zip archive.
func extractBinary(archive []byte, asset, bin string) ([]byte, error) {
	if strings.HasSuffix(asset, ".zip") {
		zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
		if err != nil {
			return nil, err
		}
		for _, f := range zr.File {
			if path.Base(f.Name) != bin || f.FileInfo().IsDir() {
				continue
			}
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
		return nil, fmt.Errorf("%s not in %s", bin, asset)
	}

	gz, err := gzip.NewReader(bytes.NewReader(archive))
	if err != nil {
		return nil, err
	}
	defer gz.Close()
	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%s not in %s", bin, asset)
		}
		if err != nil {
			return nil, err
		}
		if hdr.Typeflag == tar.TypeReg && path.Base(hdr.Name) == bin {
			return io.ReadAll(tr)
		}
	}
}

// replaceExecutable writes bin next to target and renames it into place,
// keeping target's permissions. The rename is atomic on one filesystem.
func replaceExecutable(target string, bin []byte) error {
	info, err := os.Stat(target)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), ".focusflow-update-*")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(bin); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), info.Mode().Perm()); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), target)
}
