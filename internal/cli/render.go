package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"keycast/internal/caption"
	"keycast/internal/keylog"
	"keycast/internal/keys"
	"keycast/internal/video"
	"keycast/internal/window"
)

var renderCmd = &cobra.Command{
	Use:   "render [video_file]",
	Short: "Bake a keystroke overlay onto a video",
	Long: `Render a keystroke caption track from a JSON keypress log and burn
it onto the video with ffmpeg.

The caption shows the most recently pressed keys, highlights the latest
one, and disappears after a configurable idle gap. The video's pixel
dimensions are probed with ffprobe to size the caption canvas.

Examples:
  keycast render demo.mp4 --keylog demo.json
  keycast render demo.mp4 -k demo.json --policy icon --max-keys 6
  keycast render demo.mp4 -k demo.json --highlight FF8800 --opacity 0.4`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().
		StringP("keylog", "k", "", "Path to the JSON keypress log (required)")
	_ = renderCmd.MarkFlagRequired("keylog")
	renderCmd.Flags().
		String("subs-out", "", "Also keep the generated .ass file at this path")
	addCaptionFlags(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	videoPath := args[0]
	ctx := context.Background()

	if _, err := os.Stat(videoPath); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", videoPath)
	}

	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	keylogPath, _ := cmd.Flags().GetString("keylog")
	outputPath, _ := cmd.Flags().GetString("output")
	if outputPath == "" {
		outputPath = defaultRenderOutput(videoPath)
	}

	logger.Infow("Starting keystroke overlay",
		"video", videoPath,
		"keylog", keylogPath,
		"output", outputPath,
		"policy", cfg.Policy.String(),
	)

	events, err := keylog.Load(keylogPath)
	if err != nil {
		return err
	}

	for i := range events {
		events[i].Key = keys.Normalize(cfg.Policy, events[i].Key)
	}

	windows := window.Generate(events, window.Options{
		InactivityMs: cfg.ThresholdMs,
		MaxVisible:   cfg.MaxVisible,
	})

	logger.Infow("Generated caption windows",
		"events", len(events),
		"windows", len(windows),
	)

	dims, err := video.Probe(ctx, videoPath)
	if err != nil {
		return fmt.Errorf("failed to probe video dimensions: %w", err)
	}

	logger.Debugw("Probed video",
		"width", dims.Width,
		"height", dims.Height,
	)

	lines := caption.Lines(events, windows, cfg.HighlightColor)
	writer := captionWriter(cfg, dims.Width, dims.Height)

	subsPath, _ := cmd.Flags().GetString("subs-out")
	if subsPath == "" {
		tempDir, err := os.MkdirTemp("", "keycast-*")
		if err != nil {
			return fmt.Errorf("failed to create temp directory: %w", err)
		}
		defer os.RemoveAll(tempDir)
		subsPath = filepath.Join(tempDir, "overlay.ass")
	}

	if err := writer.WriteFile(lines, subsPath); err != nil {
		return fmt.Errorf("failed to write subtitles: %w", err)
	}

	logger.Infow("Baking subtitles onto video")

	if err := video.Bake(ctx, videoPath, subsPath, outputPath); err != nil {
		return err
	}

	absOutput, _ := filepath.Abs(outputPath)
	fmt.Printf("Overlay rendered successfully: %s\n", absOutput)
	fmt.Printf("  Captions: %d\n", len(lines))

	return nil
}

// output path next to the input, e.g. demo.mp4 -> demo.keycast.mp4
func defaultRenderOutput(videoPath string) string {
	ext := filepath.Ext(videoPath)
	base := strings.TrimSuffix(videoPath, ext)
	return base + ".keycast" + ext
}
