package cli

import (
	"fmt"
	"math"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/TheDeepDelve/cubeviz"
)

var movesCmd = &cobra.Command{
	Use:   "moves",
	Short: "List the move vocabulary",
	Long:  `List the 18 accepted move tokens with their rotation axis, angle and turning layer.`,
	RunE:  runMoves,
}

func init() {
	rootCmd.AddCommand(movesCmd)
}

func runMoves(cmd *cobra.Command, args []string) error {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Move", "Axis", "Angle", "Layer")

	for _, m := range cubeviz.AllMoves {
		def, turns, err := cubeviz.Lookup(m.Notation())
		if err != nil {
			return err
		}
		t.Row(
			m.Notation(),
			def.Axis.String(),
			fmt.Sprintf("%+.0f°", def.Angle(turns)*180/math.Pi),
			fmt.Sprintf("%s %s 0", def.Axis, layerSign(def.Layer)),
		)
	}

	fmt.Fprintln(cmd.OutOrStdout(), t.Render())
	return nil
}

func layerSign(layer int) string {
	if layer > 0 {
		return ">"
	}
	return "<"
}
