package selfupdate

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReleaseAsset(t *testing.T) {
	tests := []struct {
		goos   string
		goarch string
		want   string
	}{
		{"linux", "amd64", "aalp_linux_amd64.tar.gz"},
		{"linux", "arm64", "aalp_linux_arm64.tar.gz"},
		{"darwin", "amd64", "aalp_darwin_amd64.tar.gz"},
		{"darwin", "arm64", "aalp_darwin_arm64.tar.gz"},
		{"windows", "amd64", "aalp_windows_amd64.zip"},
	}
	for _, tt := range tests {
		t.Run(tt.goos+"/"+tt.goarch, func(t *testing.T) {
			got, err := releaseAsset(tt.goos, tt.goarch)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, platform := range []string{"freebsd/amd64", "linux/mips", "windows/arm64"} {
		t.Run(platform+" unsupported", func(t *testing.T) {
			goos, goarch, _ := strings.Cut(platform, "/")
			_, err := releaseAsset(goos, goarch)
			assert.Error(t, err)
		})
	}
}

func TestParseChecksum(t *testing.T) {
	digest := strings.Repeat("ab", sha256.Size)

	t.Run("bare digest", func(t *testing.T) {
		got, err := parseChecksum([]byte(digest + "\n"))
		require.NoError(t, err)
		assert.Equal(t, digest, got)
	})

	t.Run("sha256sum form", func(t *testing.T) {
		got, err := parseChecksum([]byte(digest + "  aalp_linux_amd64.tar.gz\n"))
		require.NoError(t, err)
		assert.Equal(t, digest, got)
	})

	t.Run("uppercase normalized", func(t *testing.T) {
		got, err := parseChecksum([]byte(strings.ToUpper(digest)))
		require.NoError(t, err)
		assert.Equal(t, digest, got)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := parseChecksum([]byte("  \n"))
		assert.Error(t, err)
	})

	t.Run("truncated digest", func(t *testing.T) {
		_, err := parseChecksum([]byte("abc123"))
		assert.Error(t, err)
	})

	t.Run("non-hex digest", func(t *testing.T) {
		_, err := parseChecksum([]byte(strings.Repeat("zz", sha256.Size)))
		assert.Error(t, err)
	})
}

func TestUnpack(t *testing.T) {
	payload := []byte("aalp release build")

	t.Run("tar.gz", func(t *testing.T) {
		got, err := unpack(tarGzArchive(t, map[string][]byte{"aalp": payload}), "aalp_linux_amd64.tar.gz")
		require.NoError(t, err)
		assert.Equal(t, payload, got)
	})

	t.Run("tar.gz nested path", func(t *testing.T) {
		got, err := unpack(tarGzArchive(t, map[string][]byte{"dist/aalp": payload}), "aalp_linux_amd64.tar.gz")
		require.NoError(t, err)
		assert.Equal(t, payload, got)
	})

	t.Run("tar.gz missing binary", func(t *testing.T) {
		_, err := unpack(tarGzArchive(t, map[string][]byte{"README.md": payload}), "aalp_linux_amd64.tar.gz")
		assert.Error(t, err)
	})

	t.Run("zip", func(t *testing.T) {
		got, err := unpack(zipArchive(t, map[string][]byte{"aalp.exe": payload}), "aalp_windows_amd64.zip")
		require.NoError(t, err)
		assert.Equal(t, payload, got)
	})

	t.Run("zip missing binary", func(t *testing.T) {
		_, err := unpack(zipArchive(t, map[string][]byte{"LICENSE": payload}), "aalp_windows_amd64.zip")
		assert.Error(t, err)
	})
}

func TestSwapBinary(t *testing.T) {
	target := filepath.Join(t.TempDir(), "aalp")
	require.NoError(t, os.WriteFile(target, []byte("v1 build"), 0755))

	replacement := []byte("v2 build")
	require.NoError(t, swapBinary(target, replacement))

	got, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, replacement, got)

	info, err := os.Stat(target)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0755), info.Mode().Perm())
}

func TestSwapBinaryMissingTarget(t *testing.T) {
	target := filepath.Join(t.TempDir(), "nope")
	err := swapBinary(target, []byte("bin"))
	assert.Error(t, err)
}

// releaseServer serves a fake v0.4.0 release: the latest-release API
// endpoint plus the platform archive and its .sha256 sidecar.
func releaseServer(t *testing.T, archive []byte, digest string) *httptest.Server {
	t.Helper()
	asset, err := releaseAsset(runtime.GOOS, runtime.GOARCH)
	require.NoError(t, err)

	mux := http.NewServeMux()
	mux.HandleFunc("/repos/abhisek/aalp/releases/latest", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"tag_name":"v0.4.0","html_url":"https://github.com/abhisek/aalp/releases/tag/v0.4.0"}`))
	})
	mux.HandleFunc("/abhisek/aalp/releases/download/v0.4.0/"+asset, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(archive)
	})
	mux.HandleFunc("/abhisek/aalp/releases/download/v0.4.0/"+asset+".sha256", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(digest + "  " + asset + "\n"))
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func platformArchive(t *testing.T, payload []byte) []byte {
	t.Helper()
	if runtime.GOOS == "windows" {
		return zipArchive(t, map[string][]byte{"aalp.exe": payload})
	}
	return tarGzArchive(t, map[string][]byte{"aalp": payload})
}

func TestUpdateReplacesBinary(t *testing.T) {
	payload := []byte("aalp v0.4.0")
	archive := platformArchive(t, payload)
	sum := sha256.Sum256(archive)

	execPath := filepath.Join(t.TempDir(), "aalp")
	require.NoError(t, os.WriteFile(execPath, []byte("aalp v0.3.0"), 0755))

	server := releaseServer(t, archive, hex.EncodeToString(sum[:]))
	checker := NewChecker(
		WithBaseURL(server.URL),
		WithDownloadBaseURL(server.URL),
		withExecPath(func() (string, error) { return execPath, nil }),
	)

	var stages []string
	err := checker.Update(context.Background(), &UpdateInput{CurrentVersion: "v0.3.0"}, func(p UpdateProgress) {
		stages = append(stages, p.Stage)
	})
	require.NoError(t, err)

	got, err := os.ReadFile(execPath)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
	assert.Equal(t, []string{"check", "download", "verify", "extract", "apply", "done"}, stages)
}

func TestUpdateDevBuild(t *testing.T) {
	err := NewChecker().Update(context.Background(), &UpdateInput{CurrentVersion: "(devel)"}, nil)
	assert.ErrorIs(t, err, ErrDevBuild)
}

func TestUpdateAlreadyLatest(t *testing.T) {
	archive := platformArchive(t, []byte("same build"))
	sum := sha256.Sum256(archive)
	server := releaseServer(t, archive, hex.EncodeToString(sum[:]))

	checker := NewChecker(WithBaseURL(server.URL), WithDownloadBaseURL(server.URL))
	err := checker.Update(context.Background(), &UpdateInput{CurrentVersion: "v0.4.0"}, nil)
	assert.ErrorIs(t, err, ErrAlreadyLatest)
}

func TestUpdateChecksumMismatch(t *testing.T) {
	archive := platformArchive(t, []byte("tampered build"))
	server := releaseServer(t, archive, strings.Repeat("00", sha256.Size))

	checker := NewChecker(WithBaseURL(server.URL), WithDownloadBaseURL(server.URL))
	err := checker.Update(context.Background(), &UpdateInput{CurrentVersion: "v0.3.0"}, nil)
	assert.ErrorIs(t, err, ErrChecksum)
}

func TestUpdateMissingAsset(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/abhisek/aalp/releases/latest", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"tag_name":"v0.4.0","html_url":"https://example.com/v0.4.0"}`))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	checker := NewChecker(WithBaseURL(server.URL), WithDownloadBaseURL(server.URL))
	err := checker.Update(context.Background(), &UpdateInput{CurrentVersion: "v0.3.0"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "download archive")
}

func tarGzArchive(t *testing.T, files map[string][]byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gw)
	for name, content := range files {
		require.NoError(t, tw.WriteHeader(&tar.Header{
			Name:     name,
			Typeflag: tar.TypeReg,
			Size:     int64(len(content)),
			Mode:     0755,
		}))
		_, err := tw.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, tw.Close())
	require.NoError(t, gw.Close())
	return buf.Bytes()
}

func zipArchive(t *testing.T, files map[string][]byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}
