package cli

import (
	"io"
	"math/rand"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/TheDeepDelve/cubeviz"
	"github.com/TheDeepDelve/cubeviz/internal/solver"
	"github.com/TheDeepDelve/cubeviz/internal/tui"
)

var (
	viewSolverURL string
	viewLength    int
	viewSeed      int64
)

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Open the interactive cube player",
	Long: `Open the interactive player. Scramble the cube, fetch machine and human-style
solutions from the solver service and watch them play move by move.`,
	RunE: runView,
}

func init() {
	viewCmd.Flags().StringVar(&viewSolverURL, "solver", "", "Solver base URL (overrides config)")
	viewCmd.Flags().IntVarP(&viewLength, "length", "n", 0, "Initial scramble length (overrides config)")
	viewCmd.Flags().Int64Var(&viewSeed, "seed", 0, "Scramble random seed (0 = time based)")
	rootCmd.AddCommand(viewCmd)
}

func runView(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if viewSolverURL != "" {
		cfg.Solver.URL = viewSolverURL
	}
	if viewLength != 0 {
		cfg.Scramble.Length = viewLength
	}
	if viewSeed != 0 {
		cfg.Scramble.Seed = viewSeed
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, closeLog, err := newLogger(cfg, io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	easing, err := cfg.Animation.EasingFunc()
	if err != nil {
		return err
	}

	client := solver.NewClient(cfg.Solver.URL,
		solver.WithTimeout(cfg.Solver.Timeout),
		solver.WithLogger(logger),
		solver.WithRegisterer(prometheus.NewRegistry()),
	)

	opts := []cubeviz.Option{
		cubeviz.WithLogger(logger),
		cubeviz.WithMoveDuration(cfg.Animation.MoveDuration),
		cubeviz.WithFollowUpDelay(cfg.Animation.FollowUpDelay),
		cubeviz.WithEasing(easing),
	}
	if cfg.Scramble.Seed != 0 {
		opts = append(opts, cubeviz.WithRand(rand.New(rand.NewSource(cfg.Scramble.Seed))))
	}
	session := cubeviz.NewSession(client, opts...)

	logger.Info("starting player", "solver", cfg.Solver.URL, "fps", cfg.Animation.FPS)
	model := tui.NewModel(session, client, tui.Config{
		FrameInterval:  cfg.Animation.FrameInterval(),
		ScrambleLength: cfg.Scramble.Length,
		SolverTimeout:  cfg.Solver.Timeout,
	}, logger)
	return tui.Run(model)
}
