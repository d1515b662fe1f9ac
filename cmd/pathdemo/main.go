// Command pathdemo exercises the pathcore engine over a small toy grid
// world, driven from the command line.
package main

import (
	"fmt"
	"os"

	"github.com/turnforge/pathcore/cmd/pathdemo/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
