package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/turnforge/pathcore"
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Time a full lattice settle from the grid's center tile",
	RunE:  runBench,
}

func init() {
	rootCmd.AddCommand(benchCmd)
}

func runBench(cmd *cobra.Command, args []string) error {
	w := buildWorld()
	start := w.grid.TileAt(w.grid.Width/2, w.grid.Height/2)
	params, err := w.buildParameters(start, mode)
	if err != nil {
		return err
	}
	m, err := pathcore.NewMap(params)
	if err != nil {
		return err
	}

	settled := 1
	began := time.Now()
	for m.Iterate() {
		settled++
	}
	elapsed := time.Since(began)

	fmt.Fprintf(cmd.OutOrStdout(), "mode=%s grid=%dx%d settled=%d elapsed=%s (%.0f tiles/ms)\n",
		mode, w.grid.Width, w.grid.Height, settled, elapsed, float64(settled)/float64(elapsed.Milliseconds()+1))
	return nil
}
