// Package cli implements the command-line interface for cubeviz.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/TheDeepDelve/cubeviz/internal/config"
)

const version = "0.1.0"

var (
	// Global flags
	configPath string
	logFile    string
	verbose    bool
)

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "cubeviz",
	Short: "3x3x3 cube player",
	Long: `cubeviz - scramble, solve and animate a 3x3x3 cube in the terminal.

The cube is modelled as 26 cubies. Moves are animated one at a time and
solutions are fetched from a solver service over HTTP. Run 'cubeviz stub-solver'
for a local service that answers the same contract.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path (default: ~/.cubeviz/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
}

// loadConfig loads the configuration selected by --config.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return cfg, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// newLogger builds the logger for a command. Interactive commands pass
// io.Discard as fallback so logs never draw over the terminal UI.
func newLogger(cfg config.Config, fallback io.Writer) (*log.Logger, func(), error) {
	w, closeFn := fallback, func() {}
	path := logFile
	if path == "" {
		path = cfg.Log.File
	}
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		w, closeFn = f, func() { f.Close() }
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "cubeviz",
	})
	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = log.InfoLevel
	}
	if verbose {
		level = log.DebugLevel
	}
	logger.SetLevel(level)
	return logger, closeFn, nil
}
