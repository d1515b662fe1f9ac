package pathcore

// Direction is one of the eight compass directions a tile edge may use.
// Ordering is clockwise from north, alternating cardinal and diagonal
// directions, so the reverse of a direction is four steps further on.
type Direction int

const (
	DirNone Direction = iota - 1
	DirN
	DirNE
	DirE
	DirSE
	DirS
	DirSW
	DirW
	DirNW
)

// NumDirections is the number of directions a tile may have an edge in.
const NumDirections = 8

// directionDeltas gives the (dx, dy) offset for each cardinal/diagonal
// direction on a plain rectangular grid. Hosts with a different topology
// (hex, wrapped, non-Euclidean) supply their own Grid.Step and never read
// this table directly.
var directionDeltas = [NumDirections][2]int{
	DirN:  {0, -1},
	DirNE: {1, -1},
	DirE:  {1, 0},
	DirSE: {1, 1},
	DirS:  {0, 1},
	DirSW: {-1, 1},
	DirW:  {-1, 0},
	DirNW: {-1, -1},
}

// Opposite returns d⁻¹, the reverse of d. Opposite(DirNone) is DirNone.
func (d Direction) Opposite() Direction {
	if d == DirNone {
		return DirNone
	}
	return (d + 4) % NumDirections
}

// Valid reports whether d names one of the eight real directions.
func (d Direction) Valid() bool {
	return d >= DirN && d <= DirNW
}

func (d Direction) String() string {
	switch d {
	case DirN:
		return "N"
	case DirNE:
		return "NE"
	case DirE:
		return "E"
	case DirSE:
		return "SE"
	case DirS:
		return "S"
	case DirSW:
		return "SW"
	case DirW:
		return "W"
	case DirNW:
		return "NW"
	default:
		return "none"
	}
}

// Grid is the host-provided tile graph: a finite set of N tiles, each with
// up to eight outgoing directed edges. Implementations encode whatever
// topology the game world actually has (wrap-around, obstacles baked into
// Step returning ok=false, hex grids projected onto 8 of their own
// directions, etc.) — the core never inspects coordinates itself.
type Grid interface {
	// Size returns N, the number of tiles; tile indices are in [0, N).
	Size() int
	// Step returns the tile reached by moving from tile in direction d,
	// and whether that edge exists at all (false for "off the map" or
	// "direction not supported here").
	Step(tile int, d Direction) (next int, ok bool)
}

// RectGrid is a simple bounded rectangular Grid with optional wrap-around,
// handy for tests and for the cmd/pathdemo toy world. It is not part of
// the engine's contract — hosts may implement Grid however they like.
type RectGrid struct {
	Width, Height int
	WrapX, WrapY  bool
}

// NewRectGrid builds a RectGrid of the given dimensions with no wrapping.
func NewRectGrid(width, height int) *RectGrid {
	return &RectGrid{Width: width, Height: height}
}

func (g *RectGrid) Size() int { return g.Width * g.Height }

func (g *RectGrid) TileAt(x, y int) int { return y*g.Width + x }

func (g *RectGrid) XY(tile int) (x, y int) {
	return tile % g.Width, tile / g.Width
}

func (g *RectGrid) Step(tile int, d Direction) (int, bool) {
	if !d.Valid() {
		return 0, false
	}
	x, y := g.XY(tile)
	delta := directionDeltas[d]
	nx, ny := x+delta[0], y+delta[1]
	if g.WrapX {
		nx = ((nx % g.Width) + g.Width) % g.Width
	} else if nx < 0 || nx >= g.Width {
		return 0, false
	}
	if g.WrapY {
		ny = ((ny % g.Height) + g.Height) % g.Height
	} else if ny < 0 || ny >= g.Height {
		return 0, false
	}
	return g.TileAt(nx, ny), true
}
