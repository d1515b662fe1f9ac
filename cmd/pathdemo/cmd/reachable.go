package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/turnforge/pathcore"
)

var reachableCmd = &cobra.Command{
	Use:   "reachable <from x,y>",
	Short: "Settle the whole lattice from a tile and print what is reachable",
	Args:  cobra.ExactArgs(1),
	RunE:  runReachable,
}

func init() {
	rootCmd.AddCommand(reachableCmd)
}

func runReachable(cmd *cobra.Command, args []string) error {
	w := buildWorld()
	from, err := parseTile(w.grid, args[0])
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

	reached := map[int]bool{from: true}
	for m.Iterate() {
		reached[m.CursorTile()] = true
	}

	if isJSONOutput() {
		tiles := make([]int, 0, len(reached))
		for tile := range reached {
			tiles = append(tiles, tile)
		}
		return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]any{"reachable_tiles": tiles})
	}

	printGrid(cmd, w, reached)
	fmt.Fprintf(cmd.OutOrStdout(), "%d of %d tiles reachable\n", len(reached), w.grid.Size())
	return nil
}
