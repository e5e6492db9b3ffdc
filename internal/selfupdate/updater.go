package selfupdate

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

var (
	ErrDevBuild      = errors.New("cannot update a development build")
	ErrAlreadyLatest = errors.New("already running the latest version")
	ErrChecksum      = errors.New("checksum verification failed")
)

// Stage names a step of Update.
type Stage string

const (
	StageCheck    Stage = "check"
	StageDownload Stage = "download"
	StageVerify   Stage = "verify"
	StageExtract  Stage = "extract"
	StageApply    Stage = "apply"
	StageDone     Stage = "done"
)

// UpdateInput selects the version to install. An empty TargetVersion means
// the latest release.
type UpdateInput struct {
	CurrentVersion string
	TargetVersion  string
}

// UpdateProgress is reported as Update enters each stage.
type UpdateProgress struct {
	Stage   Stage
	Message string
}

// releaseFiles locates the files of one tagged release for this platform.
type releaseFiles struct {
	base, owner, repo string
	tag, asset        string
}

func (r releaseFiles) fileURL(name string) string {
	return fmt.Sprintf("%s/%s/%s/releases/download/%s/%s", r.base, r.owner, r.repo, r.tag, name)
}

// Update installs a release over the running binary. The archive is
// checked against the release's checksums.txt before anything is written.
func (c *Checker) Update(ctx context.Context, in *UpdateInput, progress func(UpdateProgress)) error {
	if progress == nil {
		progress = func(UpdateProgress) {}
	}
	if canonical(in.CurrentVersion) == "" {
		return ErrDevBuild
	}

	tag, err := c.resolveTag(ctx, in, progress)
	if err != nil {
		return err
	}
	asset, err := assetName()
	if err != nil {
		return err
	}
	rel := releaseFiles{
		base:  strings.TrimRight(c.downloadBaseURL, "/"),
		owner: c.owner,
		repo:  c.repo,
		tag:   tag,
		asset: asset,
	}

	progress(UpdateProgress{StageDownload, "Downloading " + tag + "..."})
	archive, err := c.downloadFile(ctx, rel.fileURL(asset))
	if err != nil {
		return fmt.Errorf("download archive: %w", err)
	}

	progress(UpdateProgress{StageVerify, "Verifying checksum..."})
	if err := c.verifyRelease(ctx, rel, archive); err != nil {
		return err
	}

	progress(UpdateProgress{StageExtract, "Extracting binary..."})
	bin, err := extractBinary(archive, asset)
	if err != nil {
		return fmt.Errorf("extract binary: %w", err)
	}

	progress(UpdateProgress{StageApply, "Applying update..."})
	target, err := c.execPath()
	if err != nil {
		return fmt.Errorf("resolve executable path: %w", err)
	}
	if err := install(bin, target); err != nil {
		return fmt.Errorf("apply update: %w", err)
	}

	progress(UpdateProgress{StageDone, "Updated to " + tag})
	return nil
}

// resolveTag returns the pinned target version, or asks the release API for
// the latest one when none is pinned.
func (c *Checker) resolveTag(ctx context.Context, in *UpdateInput, progress func(UpdateProgress)) (string, error) {
	if in.TargetVersion != "" {
		tag := canonical(in.TargetVersion)
		if tag == "" {
			return "", fmt.Errorf("invalid target version %q", in.TargetVersion)
		}
		if tag == canonical(in.CurrentVersion) {
			return "", ErrAlreadyLatest
		}
		return tag, nil
	}

	progress(UpdateProgress{StageCheck, "Checking for latest version..."})
	res, err := c.Check(ctx, &CheckInput{Version: in.CurrentVersion})
	if err != nil {
		return "", fmt.Errorf("check for updates: %w", err)
	}
	if !res.UpdateAvailable {
		return "", ErrAlreadyLatest
	}
	return res.LatestVersion, nil
}

func (c *Checker) verifyRelease(ctx context.Context, rel releaseFiles, archive []byte) error {
	data, err := c.downloadFile(ctx, rel.fileURL("checksums.txt"))
	if err != nil {
		return fmt.Errorf("download checksums: %w", err)
	}
	want, ok := parseChecksums(data)[rel.asset]
	if !ok {
		return fmt.Errorf("no checksum found for %s in checksums.txt", rel.asset)
	}
	return verifyChecksum(archive, want)
}

func assetName() (string, error) {
	return assetNameFor(runtime.GOOS, runtime.GOARCH)
}

// releaseArch maps GOARCH to the names used in release archives.
var releaseArch = map[string]string{
	"amd64": "x86_64",
	"arm64": "arm64",
	"386":   "i386",
}

func assetNameFor(goos, goarch string) (string, error) {
	if goos == "darwin" {
		return binaryName + "_Darwin_all.tar.gz", nil
	}
	var osName, ext string
	switch goos {
	case "linux":
		osName, ext = "Linux", ".tar.gz"
	case "windows":
		osName, ext = "Windows", ".zip"
	default:
		return "", fmt.Errorf("unsupported operating system: %s", goos)
	}
	arch, ok := releaseArch[goarch]
	if !ok {
		return "", fmt.Errorf("unsupported architecture: %s", goarch)
	}
	return binaryName + "_" + osName + "_" + arch + ext, nil
}

func (c *Checker) downloadFile(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}
	return io.ReadAll(resp.Body)
}

// parseChecksums reads "<sha256>  <file>" lines as written by goreleaser.
func parseChecksums(data []byte) map[string]string {
	sums := make(map[string]string)
	for _, line := range strings.Split(string(data), "\n") {
		if fields := strings.Fields(line); len(fields) == 2 {
			sums[fields[1]] = fields[0]
		}
	}
	return sums
}

func verifyChecksum(data []byte, wantHex string) error {
	sum := sha256.Sum256(data)
	if got := hex.EncodeToString(sum[:]); got != wantHex {
		return fmt.Errorf("%w: expected %s, got %s", ErrChecksum, wantHex, got)
	}
	return nil
}

func extractBinary(archive []byte, asset string) ([]byte, error) {
	if strings.HasSuffix(asset, ".zip") {
		return extractFromZip(archive, binaryName+".exe")
	}
	return extractFromTarGz(archive, binaryName)
}

func extractFromTarGz(data []byte, name string) ([]byte, error) {
	gz, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open gzip: %w", err)
	}
	defer func() { _ = gz.Close() }()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("binary %q not found in archive", name)
		}
		if err != nil {
			return nil, fmt.Errorf("read tar: %w", err)
		}
		if hdr.Typeflag == tar.TypeReg && filepath.Base(hdr.Name) == name {
			return io.ReadAll(tr)
		}
	}
}

func extractFromZip(data []byte, name string) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open zip: %w", err)
	}
	for _, f := range zr.File {
		if filepath.Base(f.Name) != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		defer func() { _ = rc.Close() }()
		return io.ReadAll(rc)
	}
	return nil, fmt.Errorf("binary %q not found in archive", name)
}

// install writes bin next to target, checks the written bytes and renames
// it over target, keeping target's file mode.
func install(bin []byte, target string) error {
	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("stat target: %w", err)
	}

	tmpDir, err := os.MkdirTemp(filepath.Dir(target), "."+binaryName+"-update-*")
	if err != nil {
		return fmt.Errorf("create temp dir: %w", err)
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	staged := filepath.Join(tmpDir, binaryName+"-new")
	if err := os.WriteFile(staged, bin, 0o600); err != nil {
		return fmt.Errorf("write staged binary: %w", err)
	}

	written, err := os.ReadFile(staged)
	if err != nil {
		return fmt.Errorf("re-read staged binary: %w", err)
	}
	if sha256.Sum256(written) != sha256.Sum256(bin) {
		return fmt.Errorf("%w: staged binary changed after write", ErrChecksum)
	}

	if err := os.Rename(staged, target); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	if err := os.Chmod(target, info.Mode()); err != nil {
		return fmt.Errorf("chmod: %w", err)
	}
	return nil
}
