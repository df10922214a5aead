package cli

import (
	"github.com/spf13/cobra"

	"keycast/internal/caption"
	"keycast/internal/config"
	"keycast/internal/keys"
)

// caption flags shared by the render and captions commands
func addCaptionFlags(cmd *cobra.Command) {
	cmd.Flags().
		Int64("threshold-ms", 0, "Idle gap in milliseconds before the caption disappears")
	cmd.Flags().
		Int("max-keys", 0, "Maximum number of keys shown at once")
	cmd.Flags().
		StringP("policy", "p", "", "Key display policy (compact, icon)")
	cmd.Flags().
		String("highlight", "", "Highlight color for the latest key, RRGGBB hex")
	cmd.Flags().
		Float64("opacity", 0, "Background box opacity, 0 (transparent) to 1 (opaque)")
	cmd.Flags().String("font", "", "Caption font name")
	cmd.Flags().Int("font-size", 0, "Caption font size")
}

// buildConfig merges defaults, the optional config file, environment
// variables, and any flags the user set, then validates the result.
func buildConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()

	configPath, _ := cmd.Flags().GetString("config")
	fc, err := config.LoadFile(configPath)
	if err != nil {
		return config.Config{}, err
	}
	if err := cfg.ApplyFile(fc); err != nil {
		return config.Config{}, err
	}

	if err := cfg.ApplyEnv(); err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("threshold-ms") {
		cfg.ThresholdMs, _ = flags.GetInt64("threshold-ms")
	}
	if flags.Changed("max-keys") {
		cfg.MaxVisible, _ = flags.GetInt("max-keys")
	}
	if flags.Changed("policy") {
		value, _ := flags.GetString("policy")
		policy, err := keys.ParsePolicy(value)
		if err != nil {
			return config.Config{}, err
		}
		cfg.Policy = policy
	}
	if flags.Changed("highlight") {
		value, _ := flags.GetString("highlight")
		if err := cfg.SetHighlight(value); err != nil {
			return config.Config{}, err
		}
	}
	if flags.Changed("opacity") {
		cfg.BackgroundOpacity, _ = flags.GetFloat64("opacity")
	}
	if flags.Changed("font") {
		cfg.FontName, _ = flags.GetString("font")
	}
	if flags.Changed("font-size") {
		cfg.FontSize, _ = flags.GetInt("font-size")
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}

	return cfg, nil
}

// captionWriter builds the ASS document writer for the given canvas.
func captionWriter(cfg config.Config, width, height int) *caption.Writer {
	return &caption.Writer{
		Title:     "Keycast Overlay",
		FontName:  cfg.FontName,
		FontSize:  cfg.FontSize,
		BackAlpha: caption.AlphaHex(cfg.BackgroundOpacity),
		Alignment: cfg.Alignment,
		MarginV:   cfg.MarginV,
		Width:     width,
		Height:    height,
	}
}
