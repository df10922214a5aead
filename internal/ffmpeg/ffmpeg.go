// Package ffmpeg locates the ffmpeg and ffprobe binaries the tool shells
// out to. Resolution order: KEYCAST_FFMPEG_PATH / KEYCAST_FFPROBE_PATH
// overrides, then PATH, then a cached download of a prebuilt bundle.
package ffmpeg

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"
)

const (
	releaseVersion = "6.1"
	releaseBaseURL = "https://github.com/ffbinaries/ffbinaries-prebuilt/releases/download"
)

// Paths holds the resolved binary locations.
type Paths struct {
	FFmpeg  string
	FFprobe string
}

var (
	resolveOnce sync.Once
	resolved    Paths
	resolveErr  error
)

// Resolve finds both binaries, downloading them on first use if neither
// an override nor a PATH installation is available. The result is
// memoized for the life of the process.
func Resolve() (Paths, error) {
	resolveOnce.Do(func() {
		resolved, resolveErr = resolve()
	})
	return resolved, resolveErr
}

func FFmpegPath() (string, error) {
	paths, err := Resolve()
	if err != nil {
		return "", err
	}
	return paths.FFmpeg, nil
}

func FFprobePath() (string, error) {
	paths, err := Resolve()
	if err != nil {
		return "", err
	}
	return paths.FFprobe, nil
}

func resolve() (Paths, error) {
	paths := Paths{
		FFmpeg:  os.Getenv("KEYCAST_FFMPEG_PATH"),
		FFprobe: os.Getenv("KEYCAST_FFPROBE_PATH"),
	}

	if paths.FFmpeg == "" {
		if found, err := exec.LookPath("ffmpeg"); err == nil {
			paths.FFmpeg = found
		}
	}
	if paths.FFprobe == "" {
		if found, err := exec.LookPath("ffprobe"); err == nil {
			paths.FFprobe = found
		}
	}
	if paths.FFmpeg != "" && paths.FFprobe != "" {
		return paths, nil
	}

	installDir, err := cacheDir()
	if err != nil {
		return Paths{}, err
	}

	suffix := ""
	if runtime.GOOS == "windows" {
		suffix = ".exe"
	}
	cached := Paths{
		FFmpeg:  filepath.Join(installDir, "ffmpeg"+suffix),
		FFprobe: filepath.Join(installDir, "ffprobe"+suffix),
	}
	if binaryExists(cached.FFmpeg) && binaryExists(cached.FFprobe) {
		return cached, nil
	}

	if err := downloadBundle(installDir); err != nil {
		return Paths{}, err
	}
	if !binaryExists(cached.FFmpeg) || !binaryExists(cached.FFprobe) {
		return Paths{}, errors.New("ffmpeg bundle missing required binaries after extraction")
	}

	return cached, nil
}

func cacheDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil || base == "" {
		base = os.TempDir()
	}
	dir := filepath.Join(
		base,
		"keycast",
		"ffmpeg",
		releaseVersion,
		runtime.GOOS,
		runtime.GOARCH,
	)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create ffmpeg cache dir: %w", err)
	}
	return dir, nil
}

func bundleName() (string, error) {
	switch {
	case runtime.GOOS == "linux" && runtime.GOARCH == "amd64":
		return "ffmpeg-" + releaseVersion + "-linux-64.zip", nil
	case runtime.GOOS == "linux" && runtime.GOARCH == "arm64":
		return "ffmpeg-" + releaseVersion + "-linux-arm-64.zip", nil
	case runtime.GOOS == "darwin" && runtime.GOARCH == "amd64":
		return "ffmpeg-" + releaseVersion + "-macos-64.zip", nil
	case runtime.GOOS == "windows" && runtime.GOARCH == "amd64":
		return "ffmpeg-" + releaseVersion + "-win-64.zip", nil
	default:
		return "", fmt.Errorf(
			"no prebuilt ffmpeg for %s/%s: install ffmpeg or set KEYCAST_FFMPEG_PATH and KEYCAST_FFPROBE_PATH",
			runtime.GOOS, runtime.GOARCH,
		)
	}
}

func downloadBundle(installDir string) error {
	asset, err := bundleName()
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/v%s/%s", releaseBaseURL, releaseVersion, asset)
	client := &http.Client{Timeout: 5 * time.Minute}
	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("download ffmpeg bundle: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download ffmpeg bundle: unexpected status %s", resp.Status)
	}

	archive, err := os.CreateTemp("", "keycast-ffmpeg-*.zip")
	if err != nil {
		return fmt.Errorf("create temp archive: %w", err)
	}
	archivePath := archive.Name()
	defer func() {
		_ = os.Remove(archivePath)
	}()

	if _, err := io.Copy(archive, resp.Body); err != nil {
		_ = archive.Close()
		return fmt.Errorf("write archive: %w", err)
	}
	if err := archive.Close(); err != nil {
		return fmt.Errorf("close archive: %w", err)
	}

	return extractBundle(archivePath, installDir)
}

func extractBundle(archivePath, installDir string) error {
	zipReader, err := zip.OpenReader(archivePath)
	if err != nil {
		return fmt.Errorf("open ffmpeg archive: %w", err)
	}
	defer func() {
		_ = zipReader.Close()
	}()

	found := 0
	for _, file := range zipReader.File {
		name := strings.ToLower(filepath.Base(file.Name))
		base := strings.TrimSuffix(name, ".exe")
		if base != "ffmpeg" && base != "ffprobe" {
			continue
		}

		suffix := ""
		if runtime.GOOS == "windows" {
			suffix = ".exe"
		}
		dest := filepath.Join(installDir, base+suffix)
		if err := extractFile(file, dest); err != nil {
			return err
		}
		found++
	}

	if found < 2 {
		return errors.New("ffmpeg archive missing required binaries")
	}
	return nil
}

func extractFile(file *zip.File, dest string) error {
	reader, err := file.Open()
	if err != nil {
		return fmt.Errorf("open ffmpeg archive entry: %w", err)
	}
	defer func() {
		_ = reader.Close()
	}()

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o755)
	if err != nil {
		return fmt.Errorf("create ffmpeg binary: %w", err)
	}
	defer func() {
		_ = out.Close()
	}()

	if _, err := io.Copy(out, reader); err != nil {
		return fmt.Errorf("write ffmpeg binary: %w", err)
	}
	return nil
}

func binaryExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir() && info.Size() > 0
}
