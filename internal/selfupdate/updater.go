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
	"path/filepath"
	"runtime"
	"strings"
)

var (
	ErrDevBuild      = errors.New("development builds cannot self-update")
	ErrAlreadyLatest = errors.New("no newer release available")
	ErrChecksum      = errors.New("archive checksum mismatch")
)

// Stage identifies a phase of the update pipeline, for progress output.
type Stage string

const (
	StageCheck    Stage = "check"
	StageDownload Stage = "download"
	StageVerify   Stage = "verify"
	StageInstall  Stage = "install"
)

// ProgressFunc receives one call per pipeline stage. nil is valid.
type ProgressFunc func(stage Stage, detail string)

// Apply upgrades the running binary to the latest release and returns
// the installed tag. Nothing is written near the executable until the
// downloaded archive has passed checksum verification.
func (c *Checker) Apply(ctx context.Context, currentVersion string, report ProgressFunc) (string, error) {
	if report == nil {
		report = func(Stage, string) {}
	}
	if currentVersion == "(devel)" {
		return "", ErrDevBuild
	}

	report(StageCheck, "querying latest release")
	res, err := c.Check(ctx, &CheckInput{Version: currentVersion})
	if err != nil {
		return "", err
	}
	if !res.UpdateAvailable {
		return "", ErrAlreadyLatest
	}
	tag := res.LatestVersion

	a, err := releaseAsset(runtime.GOOS, runtime.GOARCH)
	if err != nil {
		return "", err
	}

	report(StageDownload, a.name)
	archive, err := c.fetchVerified(ctx, tag, a, report)
	if err != nil {
		return "", err
	}

	binary, err := a.unpack(archive)
	if err != nil {
		return "", err
	}

	report(StageInstall, tag)
	path, err := c.execPath()
	if err != nil {
		return "", fmt.Errorf("locate executable: %w", err)
	}
	if err := install(path, binary); err != nil {
		return "", err
	}
	return tag, nil
}

// asset describes the release artifact for one platform.
type asset struct {
	name   string
	binary string
	zipped bool
}

var releaseArch = map[string]string{
	"amd64": "x86_64",
	"arm64": "arm64",
	"386":   "i386",
}

// releaseAsset maps a GOOS/GOARCH pair to its goreleaser artifact.
// Darwin releases are universal binaries, so the arch is ignored there.
func releaseAsset(goos, goarch string) (asset, error) {
	arch, archKnown := releaseArch[goarch]
	switch goos {
	case "darwin":
		return asset{name: "wreckdiver_Darwin_all.tar.gz", binary: "wreckdiver"}, nil
	case "linux":
		if !archKnown {
			break
		}
		return asset{name: "wreckdiver_Linux_" + arch + ".tar.gz", binary: "wreckdiver"}, nil
	case "windows":
		if !archKnown {
			break
		}
		return asset{name: "wreckdiver_Windows_" + arch + ".zip", binary: "wreckdiver.exe", zipped: true}, nil
	}
	return asset{}, fmt.Errorf("no release artifact for %s/%s", goos, goarch)
}

// fetchVerified downloads the release archive together with its
// published checksum and refuses to return bytes that do not hash to
// the expected value.
func (c *Checker) fetchVerified(ctx context.Context, tag string, a asset, report ProgressFunc) ([]byte, error) {
	prefix := fmt.Sprintf("%s/%s/%s/releases/download/%s",
		strings.TrimRight(c.downloadBaseURL, "/"), c.owner, c.repo, tag)

	archive, err := c.fetch(ctx, prefix+"/"+a.name)
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", a.name, err)
	}

	report(StageVerify, "checksums.txt")
	sums, err := c.fetch(ctx, prefix+"/checksums.txt")
	if err != nil {
		return nil, fmt.Errorf("download checksums: %w", err)
	}
	want, err := publishedSum(sums, a.name)
	if err != nil {
		return nil, err
	}

	got := sha256.Sum256(archive)
	if !bytes.Equal(got[:], want) {
		return nil, fmt.Errorf("%w for %s", ErrChecksum, a.name)
	}
	return archive, nil
}

// publishedSum finds the sha256 entry for name in a checksums.txt body.
func publishedSum(body []byte, name string) ([]byte, error) {
	sc := bufio.NewScanner(bytes.NewReader(body))
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) != 2 || fields[1] != name {
			continue
		}
		sum, err := hex.DecodeString(fields[0])
		if err != nil || len(sum) != sha256.Size {
			return nil, fmt.Errorf("malformed checksum for %s", name)
		}
		return sum, nil
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read checksums: %w", err)
	}
	return nil, fmt.Errorf("%s missing from checksums.txt", name)
}

// unpack pulls the platform binary out of the downloaded archive.
func (a asset) unpack(archive []byte) ([]byte, error) {
	if a.zipped {
		return a.unpackZip(archive)
	}

	gz, err := gzip.NewReader(bytes.NewReader(archive))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", a.name, err)
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%s does not contain %s", a.name, a.binary)
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", a.name, err)
		}
		if hdr.Typeflag == tar.TypeReg && filepath.Base(hdr.Name) == a.binary {
			return io.ReadAll(tr)
		}
	}
}

func (a asset) unpackZip(archive []byte) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", a.name, err)
	}
	for _, f := range zr.File {
		if filepath.Base(f.Name) != a.binary {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", a.name, err)
		}
		return data, nil
	}
	return nil, fmt.Errorf("%s does not contain %s", a.name, a.binary)
}

// install stages the new binary beside the current one and renames it
// into place, keeping the swap atomic on the same filesystem. The
// staged copy is read back and compared in full first; a short or
// corrupted write must never replace a working binary.
func install(path string, binary []byte) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}

	staged, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".stage-*")
	if err != nil {
		return fmt.Errorf("stage binary: %w", err)
	}
	defer os.Remove(staged.Name())

	_, werr := staged.Write(binary)
	if cerr := staged.Close(); werr == nil {
		werr = cerr
	}
	if werr != nil {
		return fmt.Errorf("stage binary: %w", werr)
	}

	onDisk, err := os.ReadFile(staged.Name())
	if err != nil {
		return fmt.Errorf("read back staged binary: %w", err)
	}
	if !bytes.Equal(onDisk, binary) {
		return fmt.Errorf("staged binary does not match downloaded bytes")
	}

	if err := os.Chmod(staged.Name(), info.Mode()); err != nil {
		return fmt.Errorf("chmod staged binary: %w", err)
	}
	if err := os.Rename(staged.Name(), path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
