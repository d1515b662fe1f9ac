// Command pathrepl is an interactive shell for issuing cost/path/iterate
// queries against a toy scenario without restarting the process.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/chzyer/readline"
	"github.com/turnforge/pathcore"
)

func main() {
	var (
		width     = flag.Int("width", 10, "grid width")
		height    = flag.Int("height", 10, "grid height")
		moveRate  = flag.Int("move-rate", 3, "moves per turn")
		movesLeft = flag.Int("moves-left", 3, "moves remaining at the start of the query")
		mode      = flag.String("mode", "normal", "finder mode: normal, danger, or fuel")
		help      = flag.Bool("help", false, "show help information")
	)
	flag.Parse()

	if *help {
		showHelp()
		return
	}

	repl, err := newREPL(*width, *height, *moveRate, *movesLeft, *mode)
	if err != nil {
		log.Fatalf("failed to build scenario: %v", err)
	}
	defer repl.rl.Close()

	fmt.Printf("pathrepl - %dx%d grid, mode=%s, start=0,0\n", *width, *height, *mode)
	fmt.Println("Type 'help' for available commands, 'quit' to exit")
	startLoop(repl)
}

func showHelp() {
	fmt.Println("pathrepl - interactive pathcore query shell")
	fmt.Println()
	fmt.Println("USAGE:")
	fmt.Println("  pathrepl [-width N] [-height N] [-move-rate N] [-moves-left N] [-mode normal|danger|fuel]")
	fmt.Println()
	fmt.Println("COMMANDS:")
	fmt.Println("  cost x,y        Print the cost to reach tile x,y")
	fmt.Println("  path x,y        Print the path to tile x,y")
	fmt.Println("  iterate [n]     Settle the next n tiles (default 1) and print the cursor")
	fmt.Println("  start x,y       Restart the search rooted at tile x,y")
	fmt.Println("  help            Show this help")
	fmt.Println("  quit            Exit the shell")
}

type repl struct {
	rl     *readline.Instance
	grid   *pathcore.RectGrid
	mode   string
	params pathcore.Parameters
	m      pathcore.Map
}

func newREPL(width, height, moveRate, movesLeft int, mode string) (*repl, error) {
	rl, err := readline.New("pathcore> ")
	if err != nil {
		return nil, err
	}
	grid := pathcore.NewRectGrid(width, height)
	r := &repl{rl: rl, grid: grid, mode: mode}
	if err := r.restart(0, moveRate, movesLeft); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *repl) restart(start, moveRate, movesLeft int) error {
	p := pathcore.NewUnitParameters(r.grid, start, moveRate, movesLeft)
	p.GetMC = func(from, to int, fromScope, toScope pathcore.Scope, p *pathcore.Parameters) int { return 1 }
	p.GetMoveScope = func(tile int, prev pathcore.Scope, p *pathcore.Parameters) (pathcore.Scope, bool) {
		return pathcore.ScopeNative, true
	}
	switch r.mode {
	case "danger":
		p.IsPosDangerous = func(tile int, k pathcore.Knowledge, p *pathcore.Parameters) bool {
			return tile%11 == 5
		}
	case "fuel":
		p.Fuel, p.FuelLeftInitially = 3, 3
		p.GetMovesLeftReq = func(tile int, k pathcore.Knowledge, p *pathcore.Parameters) int {
			if tile%9 == 0 {
				return 0
			}
			return 1
		}
	}
	m, err := pathcore.NewMap(p)
	if err != nil {
		return err
	}
	r.params, r.m = p, m
	return nil
}

func startLoop(r *repl) {
	for {
		line, err := r.rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			if err == io.EOF {
				fmt.Println("goodbye")
				return
			}
			log.Printf("error reading input: %v", err)
			return
		}
		command := strings.TrimSpace(line)
		if command == "" {
			continue
		}
		if result := r.execute(command); result == "quit" {
			fmt.Println("goodbye")
			return
		} else if result != "" {
			fmt.Println(result)
		}
	}
}

func (r *repl) execute(line string) string {
	fields := strings.Fields(line)
	switch fields[0] {
	case "quit", "exit":
		return "quit"
	case "help":
		showHelp()
		return ""
	case "cost":
		if len(fields) != 2 {
			return "usage: cost x,y"
		}
		tile, err := parseXY(r.grid, fields[1])
		if err != nil {
			return err.Error()
		}
		cost, err := r.m.CostTo(tile)
		if err != nil {
			return err.Error()
		}
		if cost == pathcore.Unreachable {
			return "unreachable"
		}
		return fmt.Sprintf("cost=%d", cost)
	case "path":
		if len(fields) != 2 {
			return "usage: path x,y"
		}
		tile, err := parseXY(r.grid, fields[1])
		if err != nil {
			return err.Error()
		}
		path, err := r.m.PathTo(tile)
		if err != nil {
			return err.Error()
		}
		if path.Empty() {
			return "unreachable"
		}
		var b strings.Builder
		for _, pos := range path {
			x, y := r.grid.XY(pos.Tile)
			fmt.Fprintf(&b, "(%d,%d cost=%d) ", x, y, pos.TotalMC)
		}
		return b.String()
	case "iterate":
		n := 1
		if len(fields) == 2 {
			fmt.Sscanf(fields[1], "%d", &n)
		}
		for i := 0; i < n; i++ {
			if !r.m.Iterate() {
				return "exhausted"
			}
		}
		x, y := r.grid.XY(r.m.CursorTile())
		return fmt.Sprintf("cursor=(%d,%d) cost=%d", x, y, r.m.CursorCost())
	case "start":
		if len(fields) != 2 {
			return "usage: start x,y"
		}
		tile, err := parseXY(r.grid, fields[1])
		if err != nil {
			return err.Error()
		}
		if err := r.restart(tile, r.params.MoveRate, r.params.MovesLeftInitially); err != nil {
			return err.Error()
		}
		return "restarted"
	default:
		return fmt.Sprintf("unknown command %q, type 'help'", fields[0])
	}
}

func parseXY(g *pathcore.RectGrid, s string) (int, error) {
	var x, y int
	if _, err := fmt.Sscanf(s, "%d,%d", &x, &y); err != nil {
		return 0, fmt.Errorf("tile %q must be in x,y form", s)
	}
	if x < 0 || x >= g.Width || y < 0 || y >= g.Height {
		return 0, fmt.Errorf("tile %q out of bounds for a %dx%d grid", s, g.Width, g.Height)
	}
	return g.TileAt(x, y), nil
}
