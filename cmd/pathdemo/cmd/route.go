package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/turnforge/pathcore"
)

var routeCmd = &cobra.Command{
	Use:   "route <from x,y> <to x,y>",
	Short: "Plan a route between two tiles and print it",
	Args:  cobra.ExactArgs(2),
	RunE:  runRoute,
}

func init() {
	rootCmd.AddCommand(routeCmd)
}

func runRoute(cmd *cobra.Command, args []string) error {
	w := buildWorld()
	from, err := parseTile(w.grid, args[0])
	if err != nil {
		return err
	}
	to, err := parseTile(w.grid, args[1])
	if err != nil {
		return err
	}

	params, err := w.buildParameters(from, mode)
	if err != nil {
		return err
	}
	m, err := pathcore.NewMap(params)
	if err != nil {
		return err
	}

	path, err := m.PathTo(to)
	if err != nil {
		return err
	}
	if path.Empty() {
		if isJSONOutput() {
			json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]any{"reachable": false})
			return nil
		}
		color.New(color.FgRed).Fprintln(cmd.OutOrStdout(), "unreachable")
		return nil
	}

	if isJSONOutput() {
		return json.NewEncoder(cmd.OutOrStdout()).Encode(path)
	}
	onPath := make(map[int]bool, len(path))
	for _, pos := range path {
		onPath[pos.Tile] = true
	}
	printGrid(cmd, w, onPath)
	for _, pos := range path {
		x, y := w.grid.XY(pos.Tile)
		fmt.Fprintf(cmd.OutOrStdout(), "  (%d,%d) cost=%d turn=%d moves_left=%d dir_in=%s\n",
			x, y, pos.TotalMC, pos.Turn, pos.MovesLeft, pos.DirToHere)
	}
	return nil
}

// printGrid renders w with danger/refuel/rough markup and the given
// path highlighted.
func printGrid(cmd *cobra.Command, w *world, onPath map[int]bool) {
	out := cmd.OutOrStdout()
	for y := 0; y < w.grid.Height; y++ {
		for x := 0; x < w.grid.Width; x++ {
			tile := w.grid.TileAt(x, y)
			glyph, c := glyphFor(w, tile, onPath[tile])
			c.Fprint(out, glyph)
		}
		fmt.Fprintln(out)
	}
}

func glyphFor(w *world, tile int, onPath bool) (string, *color.Color) {
	switch {
	case onPath:
		return "*", color.New(color.FgYellow, color.Bold)
	case w.dangerous[tile]:
		return "!", color.New(color.FgRed)
	case w.refuel[tile]:
		return "+", color.New(color.FgGreen)
	case w.rough[tile]:
		return "^", color.New(color.FgCyan)
	default:
		return ".", color.New(color.FgWhite)
	}
}
