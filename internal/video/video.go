// Package video wraps the external media tools invoked around caption
// generation: the ffprobe dimension probe and the ffmpeg bake step.
package video

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	ffmpegbin "keycast/internal/ffmpeg"
)

// pixel dimensions of a video stream
type Dimensions struct {
	Width  int
	Height int
}

// JSON output from ffprobe
type ffprobeOutput struct {
	Streams []struct {
		Width  int `json:"width"`
		Height int `json:"height"`
	} `json:"streams"`
}

// Probe reports the pixel dimensions of the first video stream. They
// fill the PlayResX/PlayResY header placeholders of the caption track.
func Probe(ctx context.Context, videoPath string) (Dimensions, error) {
	if _, err := os.Stat(videoPath); os.IsNotExist(err) {
		return Dimensions{}, fmt.Errorf("video file not found: %s", videoPath)
	}

	ffprobePath, err := ffmpegbin.FFprobePath()
	if err != nil {
		return Dimensions{}, err
	}

	cmd := exec.CommandContext(ctx, ffprobePath,
		"-v", "quiet",
		"-print_format", "json",
		"-show_streams",
		"-select_streams", "v:0",
		videoPath,
	)

	var out bytes.Buffer
	cmd.Stdout = &out

	if err := cmd.Run(); err != nil {
		return Dimensions{}, fmt.Errorf("ffprobe failed: %w", err)
	}

	var probe ffprobeOutput
	if err := json.Unmarshal(out.Bytes(), &probe); err != nil {
		return Dimensions{}, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}

	if len(probe.Streams) == 0 ||
		probe.Streams[0].Width == 0 ||
		probe.Streams[0].Height == 0 {
		return Dimensions{}, fmt.Errorf(
			"no video stream dimensions reported for %s",
			videoPath,
		)
	}

	return Dimensions{
		Width:  probe.Streams[0].Width,
		Height: probe.Streams[0].Height,
	}, nil
}

// Bake burns the subtitle file onto the video. The audio stream is
// copied untouched.
func Bake(ctx context.Context, videoPath, subsPath, outputPath string) error {
	if _, err := os.Stat(videoPath); os.IsNotExist(err) {
		return fmt.Errorf("video file not found: %s", videoPath)
	}
	if _, err := os.Stat(subsPath); os.IsNotExist(err) {
		return fmt.Errorf("subtitle file not found: %s", subsPath)
	}

	outputDir := filepath.Dir(outputPath)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	ffmpegPath, err := ffmpegbin.FFmpegPath()
	if err != nil {
		return err
	}

	kwargs := ffmpeg.KwArgs{
		"vf":  "ass=" + filterEscape(subsPath),
		"c:a": "copy",
		"y":   "",
	}

	err = ffmpeg.Input(videoPath).
		Output(outputPath, kwargs).
		OverWriteOutput().
		SetFfmpegPath(ffmpegPath).
		Run()

	if err != nil {
		return fmt.Errorf("ffmpeg bake failed: %w", err)
	}

	return nil
}

// filterEscape quotes a path for use inside an ffmpeg filter argument
func filterEscape(path string) string {
	path = strings.ReplaceAll(path, `\`, `\\`)
	path = strings.ReplaceAll(path, ":", `\:`)
	path = strings.ReplaceAll(path, "'", `\'`)
	return path
}
