package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/TheDeepDelve/cubeviz"
)

var (
	exportOutput string
	exportFPS    int
)

var exportCmd = &cobra.Command{
	Use:   "export <moves...>",
	Short: "Export an animated player page",
	Long: `Play a move sequence from the solved cube and write a standalone HTML
page that replays the animation in a browser.

Examples:
  cubeviz export R U R' U' -o out
  cubeviz export "F2 B L'" --fps 30`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", ".", "Output directory")
	exportCmd.Flags().IntVar(&exportFPS, "fps", 0, "Sample rate (overrides config)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if exportFPS > 0 {
		cfg.Animation.FPS = exportFPS
	}
	easing, err := cfg.Animation.EasingFunc()
	if err != nil {
		return err
	}

	tokens := cubeviz.SplitMoves(strings.Join(args, " "))
	tl, err := buildTimeline(tokens, TimelineOptions{
		MoveDuration:  cfg.Animation.MoveDuration,
		FrameInterval: cfg.Animation.FrameInterval(),
		Easing:        easing,
	})
	if err != nil {
		return err
	}

	if err := os.MkdirAll(exportOutput, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	outputPath := filepath.Join(exportOutput, "player.html")
	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create player file: %w", err)
	}
	defer f.Close()

	if err := writeVisualizerHTML(f, tl); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Wrote %s (%d frames)\n", outputPath, len(tl.Frames))
	if len(tl.Skipped) > 0 {
		fmt.Fprintf(out, "Skipped invalid moves: %s\n", strings.Join(tl.Skipped, " "))
	}
	return nil
}
