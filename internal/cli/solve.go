package cli

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/TheDeepDelve/cubeviz"
	"github.com/TheDeepDelve/cubeviz/internal/solver"
)

var (
	solveMethod    string
	solveSolverURL string
	solveVerify    bool
)

var solveCmd = &cobra.Command{
	Use:   "solve <scramble...>",
	Short: "Ask the solver service for a solution",
	Long: `Send a scramble to the solver service and print the returned solution.
With --verify the solution is applied after the scramble to check that it
solves the cube.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSolve,
}

func init() {
	solveCmd.Flags().StringVarP(&solveMethod, "method", "m", string(cubeviz.MethodKociemba), "Solve method: kociemba (machine) or human_hybrid (human)")
	solveCmd.Flags().StringVar(&solveSolverURL, "solver", "", "Solver base URL (overrides config)")
	solveCmd.Flags().BoolVar(&solveVerify, "verify", false, "Check that the solution solves the scramble")
	rootCmd.AddCommand(solveCmd)
}

func runSolve(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if solveSolverURL != "" {
		cfg.Solver.URL = solveSolverURL
	}
	method, err := cubeviz.ParseMethod(solveMethod)
	if err != nil {
		return err
	}

	scramble := strings.Join(cubeviz.SplitMoves(strings.Join(args, " ")), " ")
	moves, err := cubeviz.ParseMoves(scramble)
	if err != nil {
		return fmt.Errorf("invalid scramble: %w", err)
	}

	logger, closeLog, err := newLogger(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer closeLog()

	client := solver.NewClient(cfg.Solver.URL, solver.WithTimeout(cfg.Solver.Timeout), solver.WithLogger(logger))
	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Solver.Timeout)
	defer cancel()

	sol, err := client.Solve(ctx, scramble, method)
	if err != nil {
		return fmt.Errorf("failed to solve: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Method:   %s (%s)\n", method.DisplayName(), method)
	fmt.Fprintf(out, "Scramble: %s\n", scramble)
	fmt.Fprintf(out, "Solution: %s\n", sol.String())
	fmt.Fprintf(out, "Moves:    %d\n", sol.Len())

	keys := make([]string, 0, len(sol.Metadata))
	for k := range sol.Metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(out, "  %s: %v\n", k, sol.Metadata[k])
	}

	if solveVerify {
		l, err := cubeviz.ApplyMoves(cubeviz.InitialState(), moves)
		if err != nil {
			return err
		}
		l, err = cubeviz.ApplySequence(l, sol.Moves)
		if err != nil {
			return fmt.Errorf("solution does not apply: %w", err)
		}
		if !l.IsSolved() {
			return fmt.Errorf("solution leaves the cube unsolved")
		}
		fmt.Fprintln(out, "Verified: solved")
	}
	return nil
}
