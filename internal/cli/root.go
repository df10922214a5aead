package cli

import (
	"keycast/internal/logging"

	"github.com/spf13/cobra"
)

var (
	verbose bool
	logger  *logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "keycast",
	Short: "Overlay recorded keystrokes onto a video as timed captions",
	Long: `Keycast converts a keypress log into an ASS subtitle track showing
the most recently pressed keys, and can bake that track directly onto
the source video with ffmpeg.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = logging.NewLogger(verbose)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output file path")
	rootCmd.PersistentFlags().
		StringP("config", "c", "", "Path to a TOML config file")
}
