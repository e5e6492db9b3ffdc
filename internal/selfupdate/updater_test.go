package selfupdate

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssetNameFor(t *testing.T) {
	tests := []struct {
		name    string
		goos    string
		goarch  string
		want    string
		wantErr bool
	}{
		{"darwin amd64", "darwin", "amd64", "kubeprep_Darwin_all.tar.gz", false},
		{"darwin arm64", "darwin", "arm64", "kubeprep_Darwin_all.tar.gz", false},
		{"linux amd64", "linux", "amd64", "kubeprep_Linux_x86_64.tar.gz", false},
		{"linux arm64", "linux", "arm64", "kubeprep_Linux_arm64.tar.gz", false},
		{"linux 386", "linux", "386", "kubeprep_Linux_i386.tar.gz", false},
		{"windows amd64", "windows", "amd64", "kubeprep_Windows_x86_64.zip", false},
		{"windows arm64", "windows", "arm64", "kubeprep_Windows_arm64.zip", false},
		{"unsupported os", "freebsd", "amd64", "", true},
		{"unsupported arch", "linux", "mips", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := assetNameFor(tt.goos, tt.goarch)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseChecksums(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  map[string]string
	}{
		{
			name:  "normal",
			input: "abc123  kubeprep_Darwin_all.tar.gz\ndef456  kubeprep_Linux_x86_64.tar.gz\n",
			want: map[string]string{
				"kubeprep_Darwin_all.tar.gz":    "abc123",
				"kubeprep_Linux_x86_64.tar.gz": "def456",
			},
		},
		{
			name:  "empty",
			input: "",
			want:  map[string]string{},
		},
		{
			name:  "malformed lines skipped",
			input: "abc123  file.tar.gz\nbadline\n  \nfoo  bar  baz\nghi789  other.tar.gz\n",
			want: map[string]string{
				"file.tar.gz":  "abc123",
				"other.tar.gz": "ghi789",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseChecksums([]byte(tt.input))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestVerifyChecksum(t *testing.T) {
	data := []byte("hello world")
	h := sha256.Sum256(data)
	correctHex := hex.EncodeToString(h[:])

	t.Run("match", func(t *testing.T) {
		assert.NoError(t, verifyChecksum(data, correctHex))
	})

	t.Run("mismatch", func(t *testing.T) {
		err := verifyChecksum(data, "0000000000000000000000000000000000000000000000000000000000000000")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrChecksum)
	})
}

func TestExtractBinary(t *testing.T) {
	binaryContent := []byte("#!/bin/sh\necho kubeprep")

	t.Run("tar.gz", func(t *testing.T) {
		archive := buildTarGz(t, "kubeprep", binaryContent)
		got, err := extractBinary(archive, "kubeprep_Darwin_all.tar.gz")
		require.NoError(t, err)
		assert.Equal(t, binaryContent, got)
	})

	t.Run("missing binary", func(t *testing.T) {
		archive := buildTarGz(t, "other-file", binaryContent)
		_, err := extractBinary(archive, "kubeprep_Darwin_all.tar.gz")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})
}

func TestInstall(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "kubeprep")
	require.NoError(t, os.WriteFile(target, []byte("old"), 0o755))

	bin := []byte("new-binary-content")
	require.NoError(t, install(bin, target))

	got, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, bin, got)

	info, err := os.Stat(target)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o755), info.Mode().Perm(), "mode kept")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "staging directory removed")

	assert.Error(t, install(bin, filepath.Join(dir, "missing")))
}

func TestUpdate(t *testing.T) {
	binaryContent := []byte("new-kubeprep-binary")
	archive := buildTarGz(t, "kubeprep", binaryContent)
	archiveHash := sha256.Sum256(archive)
	archiveHex := hex.EncodeToString(archiveHash[:])

	t.Run("happy path", func(t *testing.T) {
		dir := t.TempDir()
		execPath := filepath.Join(dir, "kubeprep")
		require.NoError(t, os.WriteFile(execPath, []byte("old"), 0755))

		asset := tarAsset(t)
		checksums := fmt.Sprintf("%s  %s\n", archiveHex, asset)

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch {
			case r.URL.Path == "/repos/goldenkube/kubeprep/releases/latest":
				_, _ = w.Write([]byte(`{"tag_name":"v2.0.0","html_url":"https://example.com/v2.0.0"}`))
			case r.URL.Path == fmt.Sprintf("/goldenkube/kubeprep/releases/download/v2.0.0/%s", asset):
				_, _ = w.Write(archive)
			case r.URL.Path == "/goldenkube/kubeprep/releases/download/v2.0.0/checksums.txt":
				_, _ = w.Write([]byte(checksums))
			default:
				w.WriteHeader(http.StatusNotFound)
			}
		}))
		defer server.Close()

		checker := NewChecker(
			WithBaseURL(server.URL),
			WithDownloadBaseURL(server.URL),
			withExecPath(func() (string, error) { return execPath, nil }),
		)

		var stages []Stage
		err := checker.Update(context.Background(), &UpdateInput{CurrentVersion: "v1.0.0"}, func(p UpdateProgress) {
			stages = append(stages, p.Stage)
		})
		require.NoError(t, err)

		// Verify binary was replaced.
		got, err := os.ReadFile(execPath)
		require.NoError(t, err)
		assert.Equal(t, binaryContent, got)

		// Verify all stages were reported.
		assert.Equal(t, []Stage{StageCheck, StageDownload, StageVerify, StageExtract, StageApply, StageDone}, stages)
	})

	t.Run("pinned version skips the check", func(t *testing.T) {
		dir := t.TempDir()
		execPath := filepath.Join(dir, "kubeprep")
		require.NoError(t, os.WriteFile(execPath, []byte("old"), 0o755))

		asset := tarAsset(t)
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/goldenkube/kubeprep/releases/download/v1.5.0/" + asset:
				_, _ = w.Write(archive)
			case "/goldenkube/kubeprep/releases/download/v1.5.0/checksums.txt":
				_, _ = fmt.Fprintf(w, "%s  %s\n", archiveHex, asset)
			default:
				t.Errorf("unexpected request %s", r.URL.Path)
				w.WriteHeader(http.StatusNotFound)
			}
		}))
		defer server.Close()

		checker := NewChecker(
			WithDownloadBaseURL(server.URL),
			withExecPath(func() (string, error) { return execPath, nil }),
		)
		require.NoError(t, checker.Update(context.Background(), &UpdateInput{CurrentVersion: "v1.0.0", TargetVersion: "1.5.0"}, nil))

		got, err := os.ReadFile(execPath)
		require.NoError(t, err)
		assert.Equal(t, binaryContent, got)
	})

	t.Run("pinned version checks", func(t *testing.T) {
		checker := NewChecker()
		err := checker.Update(context.Background(), &UpdateInput{CurrentVersion: "v1.0.0", TargetVersion: "v1.0.0"}, nil)
		assert.ErrorIs(t, err, ErrAlreadyLatest)

		err = checker.Update(context.Background(), &UpdateInput{CurrentVersion: "v1.0.0", TargetVersion: "latest"}, nil)
		assert.ErrorContains(t, err, "invalid target version")
	})

	t.Run("dev build", func(t *testing.T) {
		checker := NewChecker()
		for _, v := range []string{"(devel)", "", "main-abc123"} {
			err := checker.Update(context.Background(), &UpdateInput{CurrentVersion: v}, func(UpdateProgress) {})
			assert.ErrorIs(t, err, ErrDevBuild, v)
		}
	})

	t.Run("already latest", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"tag_name":"v1.0.0","html_url":"https://example.com/v1.0.0"}`))
		}))
		defer server.Close()

		checker := NewChecker(WithBaseURL(server.URL))
		err := checker.Update(context.Background(), &UpdateInput{CurrentVersion: "v1.0.0"}, func(UpdateProgress) {})
		assert.ErrorIs(t, err, ErrAlreadyLatest)
	})

	t.Run("checksum mismatch", func(t *testing.T) {
		asset := tarAsset(t)
		checksums := fmt.Sprintf("%s  %s\n", "0000000000000000000000000000000000000000000000000000000000000000", asset)

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch {
			case r.URL.Path == "/repos/goldenkube/kubeprep/releases/latest":
				_, _ = w.Write([]byte(`{"tag_name":"v2.0.0","html_url":"https://example.com/v2.0.0"}`))
			case r.URL.Path == fmt.Sprintf("/goldenkube/kubeprep/releases/download/v2.0.0/%s", asset):
				_, _ = w.Write(archive)
			case r.URL.Path == "/goldenkube/kubeprep/releases/download/v2.0.0/checksums.txt":
				_, _ = w.Write([]byte(checksums))
			default:
				w.WriteHeader(http.StatusNotFound)
			}
		}))
		defer server.Close()

		checker := NewChecker(
			WithBaseURL(server.URL),
			WithDownloadBaseURL(server.URL),
		)
		err := checker.Update(context.Background(), &UpdateInput{CurrentVersion: "v1.0.0"}, func(UpdateProgress) {})
		assert.ErrorIs(t, err, ErrChecksum)
	})

	t.Run("download failure", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch {
			case r.URL.Path == "/repos/goldenkube/kubeprep/releases/latest":
				_, _ = w.Write([]byte(`{"tag_name":"v2.0.0","html_url":"https://example.com/v2.0.0"}`))
			default:
				w.WriteHeader(http.StatusNotFound)
			}
		}))
		defer server.Close()

		checker := NewChecker(
			WithBaseURL(server.URL),
			WithDownloadBaseURL(server.URL),
		)
		err := checker.Update(context.Background(), &UpdateInput{CurrentVersion: "v1.0.0"}, func(UpdateProgress) {})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "download archive")
	})
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name    string
		current string
		tag     string
		want    bool
		wantErr bool
	}{
		{"newer minor", "v1.2.0", "v1.3.0", true, false},
		{"same", "v1.3.0", "v1.3.0", false, false},
		{"older release", "v2.0.0", "v1.9.9", false, false},
		{"no v prefix", "1.0.0", "v1.0.1", true, false},
		{"prerelease behind final", "v1.0.0-rc.1", "v1.0.0", true, false},
		{"dev build", "(devel)", "v9.0.0", false, false},
		{"bad tag", "v1.0.0", "latest", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/repos/goldenkube/kubeprep/releases/latest", r.URL.Path)
				_, _ = fmt.Fprintf(w, `{"tag_name":%q,"html_url":"https://example.com/r"}`, tt.tag)
			}))
			defer server.Close()

			res, err := NewChecker(WithBaseURL(server.URL)).Check(context.Background(), &CheckInput{Version: tt.current})
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.UpdateAvailable)
			assert.Equal(t, tt.tag, res.LatestVersion)
			assert.Equal(t, "https://example.com/r", res.ReleaseURL)
		})
	}
}

func TestCheckHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	_, err := NewChecker(WithBaseURL(server.URL)).Check(context.Background(), &CheckInput{Version: "v1.0.0"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 403")
}

// tarAsset is this platform's archive name; Windows releases ship zips.
func tarAsset(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("zip releases")
	}
	asset, err := assetName()
	if err != nil {
		t.Skip(err)
	}
	return asset
}

// buildTarGz creates a tar.gz archive containing a single file.
func buildTarGz(t *testing.T, name string, content []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gw)

	require.NoError(t, tw.WriteHeader(&tar.Header{
		Name: name,
		Size: int64(len(content)),
		Mode: 0755,
	}))
	_, err := tw.Write(content)
	require.NoError(t, err)
	require.NoError(t, tw.Close())
	require.NoError(t, gw.Close())
	return buf.Bytes()
}
