package selfupdate

import (
	"archive/tar"
	"archive/zip"
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

func TestReleaseAsset(t *testing.T) {
	tests := []struct {
		goos    string
		goarch  string
		name    string
		binary  string
		zipped  bool
		wantErr bool
	}{
		{goos: "darwin", goarch: "arm64", name: "wreckdiver_Darwin_all.tar.gz", binary: "wreckdiver"},
		{goos: "darwin", goarch: "amd64", name: "wreckdiver_Darwin_all.tar.gz", binary: "wreckdiver"},
		{goos: "linux", goarch: "amd64", name: "wreckdiver_Linux_x86_64.tar.gz", binary: "wreckdiver"},
		{goos: "linux", goarch: "arm64", name: "wreckdiver_Linux_arm64.tar.gz", binary: "wreckdiver"},
		{goos: "linux", goarch: "386", name: "wreckdiver_Linux_i386.tar.gz", binary: "wreckdiver"},
		{goos: "windows", goarch: "amd64", name: "wreckdiver_Windows_x86_64.zip", binary: "wreckdiver.exe", zipped: true},
		{goos: "linux", goarch: "mips", wantErr: true},
		{goos: "plan9", goarch: "amd64", wantErr: true},
	}
	for _, tt := range tests {
		a, err := releaseAsset(tt.goos, tt.goarch)
		if tt.wantErr {
			assert.Error(t, err, "%s/%s", tt.goos, tt.goarch)
			continue
		}
		require.NoError(t, err, "%s/%s", tt.goos, tt.goarch)
		assert.Equal(t, tt.name, a.name)
		assert.Equal(t, tt.binary, a.binary)
		assert.Equal(t, tt.zipped, a.zipped)
	}
}

func TestPublishedSum(t *testing.T) {
	digest := sha256.Sum256([]byte("payload"))
	body := []byte(fmt.Sprintf("%s  wreckdiver_Linux_x86_64.tar.gz\nnothex  wreckdiver_Darwin_all.tar.gz\n",
		hex.EncodeToString(digest[:])))

	sum, err := publishedSum(body, "wreckdiver_Linux_x86_64.tar.gz")
	require.NoError(t, err)
	assert.Equal(t, digest[:], sum)

	_, err = publishedSum(body, "wreckdiver_Darwin_all.tar.gz")
	assert.ErrorContains(t, err, "malformed checksum")

	_, err = publishedSum(body, "wreckdiver_Windows_x86_64.zip")
	assert.ErrorContains(t, err, "missing from checksums.txt")
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name          string
		current       string
		tag           string
		wantAvailable bool
	}{
		{"newer release", "0.1.0", "v0.2.0", true},
		{"same release", "0.2.0", "v0.2.0", false},
		{"older release", "0.3.0", "v0.2.0", false},
		{"devel build", "(devel)", "v0.2.0", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/repos/abhisek/wreckdiver/releases/latest", r.URL.Path)
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{"tag_name": "` + tt.tag + `"}`))
			}))
			defer srv.Close()

			c := NewChecker(WithBaseURLs(srv.URL, srv.URL))
			result, err := c.Check(context.Background(), &CheckInput{Version: tt.current})
			require.NoError(t, err)
			assert.Equal(t, tt.wantAvailable, result.UpdateAvailable)
			assert.Equal(t, tt.tag, result.LatestVersion)
		})
	}
}

func TestApplyRejectsDevBuild(t *testing.T) {
	c := NewChecker()
	_, err := c.Apply(context.Background(), "(devel)", nil)
	assert.ErrorIs(t, err, ErrDevBuild)
}

// packAsset builds the archive shape a release carries for this platform.
func packAsset(t *testing.T, a asset, binary []byte) []byte {
	t.Helper()
	var buf bytes.Buffer

	if a.zipped {
		zw := zip.NewWriter(&buf)
		f, err := zw.Create(a.binary)
		require.NoError(t, err)
		_, err = f.Write(binary)
		require.NoError(t, err)
		require.NoError(t, zw.Close())
		return buf.Bytes()
	}

	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)
	require.NoError(t, tw.WriteHeader(&tar.Header{
		Name: a.binary,
		Mode: 0o755,
		Size: int64(len(binary)),
	}))
	_, err := tw.Write(binary)
	require.NoError(t, err)
	require.NoError(t, tw.Close())
	require.NoError(t, gz.Close())
	return buf.Bytes()
}

func TestApplyReplacesBinary(t *testing.T) {
	a, err := releaseAsset(runtime.GOOS, runtime.GOARCH)
	require.NoError(t, err)

	newBinary := []byte("wreckdiver v0.2.0 bytes")
	archive := packAsset(t, a, newBinary)
	digest := sha256.Sum256(archive)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/repos/abhisek/wreckdiver/releases/latest":
			_, _ = w.Write([]byte(`{"tag_name": "v0.2.0"}`))
		case r.URL.Path == "/abhisek/wreckdiver/releases/download/v0.2.0/"+a.name:
			_, _ = w.Write(archive)
		case r.URL.Path == "/abhisek/wreckdiver/releases/download/v0.2.0/checksums.txt":
			fmt.Fprintf(w, "%s  %s\n", hex.EncodeToString(digest[:]), a.name)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	target := filepath.Join(t.TempDir(), "wreckdiver")
	require.NoError(t, os.WriteFile(target, []byte("old binary"), 0o755))

	c := NewChecker(
		WithBaseURLs(srv.URL, srv.URL),
		WithExecPath(func() (string, error) { return target, nil }),
	)

	var stages []Stage
	tag, err := c.Apply(context.Background(), "0.1.0", func(s Stage, _ string) {
		stages = append(stages, s)
	})
	require.NoError(t, err)
	assert.Equal(t, "v0.2.0", tag)
	assert.Equal(t, []Stage{StageCheck, StageDownload, StageVerify, StageInstall}, stages)

	replaced, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, newBinary, replaced)

	info, err := os.Stat(target)
	require.NoError(t, err)
	if runtime.GOOS != "windows" {
		assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())
	}
}

func TestApplyRefusesBadChecksum(t *testing.T) {
	a, err := releaseAsset(runtime.GOOS, runtime.GOARCH)
	require.NoError(t, err)

	archive := packAsset(t, a, []byte("tampered bytes"))
	wrong := sha256.Sum256([]byte("something else entirely"))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/repos/abhisek/wreckdiver/releases/latest":
			_, _ = w.Write([]byte(`{"tag_name": "v0.2.0"}`))
		case r.URL.Path == "/abhisek/wreckdiver/releases/download/v0.2.0/"+a.name:
			_, _ = w.Write(archive)
		case r.URL.Path == "/abhisek/wreckdiver/releases/download/v0.2.0/checksums.txt":
			fmt.Fprintf(w, "%s  %s\n", hex.EncodeToString(wrong[:]), a.name)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	target := filepath.Join(t.TempDir(), "wreckdiver")
	require.NoError(t, os.WriteFile(target, []byte("old binary"), 0o755))

	c := NewChecker(
		WithBaseURLs(srv.URL, srv.URL),
		WithExecPath(func() (string, error) { return target, nil }),
	)

	_, err = c.Apply(context.Background(), "0.1.0", nil)
	assert.ErrorIs(t, err, ErrChecksum)

	untouched, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, []byte("old binary"), untouched)
}
