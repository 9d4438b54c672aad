package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/TheDeepDelve/cubeviz"
	"github.com/TheDeepDelve/cubeviz/internal/render"
)

var (
	applyJSON  bool
	applyPlain bool
)

var applyCmd = &cobra.Command{
	Use:   "apply <moves...>",
	Short: "Apply moves to a solved cube and print the result",
	Long: `Apply a move sequence to the solved cube and print the sticker net.

Moves may be given as separate arguments or as one quoted string:
  cubeviz apply R U R' U'
  cubeviz apply "F2 B L'"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runApply,
}

func init() {
	applyCmd.Flags().BoolVar(&applyJSON, "json", false, "Print the render frame as JSON")
	applyCmd.Flags().BoolVar(&applyPlain, "plain", false, "Print color letters instead of colored blocks")
	rootCmd.AddCommand(applyCmd)
}

func runApply(cmd *cobra.Command, args []string) error {
	tokens := cubeviz.SplitMoves(strings.Join(args, " "))
	l, err := cubeviz.ApplySequence(cubeviz.InitialState(), tokens)
	if err != nil {
		return fmt.Errorf("failed to apply moves: %w", err)
	}

	out := cmd.OutOrStdout()
	if applyJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(cubeviz.NewFrame(l, cubeviz.Group{Members: []string{}}))
	}

	fmt.Fprintln(out, render.Net(l, render.Options{Plain: applyPlain, Labels: true}))
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Moves:  %s\n", strings.Join(tokens, " "))
	fmt.Fprintf(out, "Solved: %v\n", l.IsSolved())
	return nil
}
