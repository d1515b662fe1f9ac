package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"github.com/turnforge/pathcore"
)

// world is the toy scenario pathdemo runs its finders against: a
// rectangular grid with rough terrain, a handful of dangerous tiles, and
// a handful of refuel points, all derived deterministically from the
// grid's dimensions, plus any extra dangerous or refuel tiles a scenario
// config lists.
type world struct {
	grid      *pathcore.RectGrid
	rough     map[int]bool
	dangerous map[int]bool
	refuel    map[int]bool
}

func buildWorld() *world {
	g := pathcore.NewRectGrid(viper.GetInt("width"), viper.GetInt("height"))
	w := &world{grid: g, rough: map[int]bool{}, dangerous: map[int]bool{}, refuel: map[int]bool{}}

	for tile := 0; tile < g.Size(); tile++ {
		if tile%7 == 3 {
			w.rough[tile] = true
		}
		if tile%11 == 5 {
			w.dangerous[tile] = true
		}
		if tile%9 == 0 {
			w.refuel[tile] = true
		}
	}
	for _, tile := range viper.GetIntSlice("dangerous-tiles") {
		w.dangerous[tile] = true
	}
	for _, tile := range viper.GetIntSlice("refuel-tiles") {
		w.refuel[tile] = true
	}
	return w
}

func parseTile(g *pathcore.RectGrid, s string) (int, error) {
	parts := strings.SplitN(s, ",", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("tile %q must be in x,y form", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, fmt.Errorf("tile %q: %w", s, err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, fmt.Errorf("tile %q: %w", s, err)
	}
	if x < 0 || x >= g.Width || y < 0 || y >= g.Height {
		return 0, fmt.Errorf("tile %q out of bounds for a %dx%d grid", s, g.Width, g.Height)
	}
	return g.TileAt(x, y), nil
}

// buildParameters assembles a pathcore.Parameters for the requested
// finder mode, rooted at start.
func (w *world) buildParameters(start int, finderMode string) (pathcore.Parameters, error) {
	p := pathcore.NewUnitParameters(w.grid, start, viper.GetInt("move-rate"), viper.GetInt("moves-left"))
	p.GetMC = func(from, to int, fromScope, toScope pathcore.Scope, p *pathcore.Parameters) int {
		if w.rough[to] {
			return 2
		}
		return 1
	}
	p.GetMoveScope = func(tile int, previousScope pathcore.Scope, p *pathcore.Parameters) (pathcore.Scope, bool) {
		return pathcore.ScopeNative, true
	}
	if isVerbose() {
		p.Logger = pathcore.NewSlogLogger(nil)
	}

	switch finderMode {
	case "normal":
	case "danger":
		p.IsPosDangerous = func(tile int, k pathcore.Knowledge, p *pathcore.Parameters) bool {
			return w.dangerous[tile]
		}
	case "fuel":
		p.Fuel = 3
		p.FuelLeftInitially = 3
		p.GetMovesLeftReq = func(tile int, k pathcore.Knowledge, p *pathcore.Parameters) int {
			if w.refuel[tile] {
				return 0
			}
			return 1
		}
	default:
		return pathcore.Parameters{}, fmt.Errorf("unknown mode %q: want normal, danger, or fuel", finderMode)
	}
	return p, nil
}
