package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"keycast/internal/caption"
	"keycast/internal/keylog"
	"keycast/internal/keys"
	"keycast/internal/window"
)

var captionsCmd = &cobra.Command{
	Use:   "captions [keylog_file]",
	Short: "Write the keystroke caption track as an .ass file",
	Long: `Generate the ASS caption track from a JSON keypress log without
touching any video. The canvas resolution normally probed from the
video is taken from the --width and --height flags instead.

Examples:
  keycast captions demo.json
  keycast captions demo.json -o overlay.ass --width 1280 --height 720`,
	Args: cobra.ExactArgs(1),
	RunE: runCaptions,
}

func init() {
	rootCmd.AddCommand(captionsCmd)

	captionsCmd.Flags().Int("width", 1920, "Caption canvas width in pixels")
	captionsCmd.Flags().Int("height", 1080, "Caption canvas height in pixels")
	addCaptionFlags(captionsCmd)
}

func runCaptions(cmd *cobra.Command, args []string) error {
	keylogPath := args[0]

	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	outputPath, _ := cmd.Flags().GetString("output")
	if outputPath == "" {
		base := strings.TrimSuffix(keylogPath, filepath.Ext(keylogPath))
		outputPath = base + ".ass"
	}

	width, _ := cmd.Flags().GetInt("width")
	height, _ := cmd.Flags().GetInt("height")

	logger.Infow("Generating caption track",
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

	lines := caption.Lines(events, windows, cfg.HighlightColor)
	writer := captionWriter(cfg, width, height)

	if err := writer.WriteFile(lines, outputPath); err != nil {
		return fmt.Errorf("failed to write subtitles: %w", err)
	}

	absOutput, _ := filepath.Abs(outputPath)
	fmt.Printf("Caption track written: %s\n", absOutput)
	fmt.Printf("  Captions: %d\n", len(lines))

	return nil
}
