package pathcore

// turnFactor is a constant large enough that turnFactor*cost dominates
// any achievable extra-cost term, giving the combined priority key
// lexicographic behavior on (cost, extraCost) while remaining a single
// signed integer.
const turnFactor = 1 << 20

// priorityKey combines a base cost and a tiebreaker extra-cost into one
// orderable key, scaled so ties in cost are broken by extraCost alone.
func priorityKey(cost, extraCost, moveRate int) int {
	scale := moveRate
	if scale <= 0 {
		scale = 1
	}
	return cost*turnFactor + extraCost*scale
}

// floorMod is % with a result that always has the sign of b, needed
// because biased start costs can be negative.
func floorMod(a, b int) int {
	if b <= 0 {
		return 0
	}
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}

// turnOf and movesLeftOf recover the zero-based turn and within-turn
// moves remaining from a biased base cost.
func turnOf(cost, moveRate int) int {
	if moveRate <= 0 || cost <= 0 {
		return 0
	}
	return cost / moveRate
}

func movesLeftOf(cost, moveRate int) int {
	if moveRate <= 0 {
		return 0
	}
	return moveRate - floorMod(cost, moveRate)
}

// startBias is the cost the lattice seeds the start node with:
// moveRate - movesLeftInitially, which may be negative when the actor
// begins a turn with bonus moves.
func startBias(p *Parameters) int {
	return p.MoveRate - p.MovesLeftInitially
}

// node is the per-tile lattice entry shared by all three finders. Fields
// not relevant to a given finder's mode are simply left at their zero
// value; this keeps one lattice type and one set of attribute-caching
// logic for all three searches.
type node struct {
	status    Status
	cost      int
	extraCost int
	dirToHere Direction

	attrsLoaded  bool
	moveScope    Scope
	canDisembark bool
	action       Action
	knowledge    Knowledge
	behavior     Behavior
	zocClass     ZOCClass
	extraTile    int

	// danger finder only (the fuel finder also uses waited and waitCost)
	isDangerous   bool
	waited        bool
	waitCost      int
	dangerSegment []segEntry

	// fuel finder only
	movesLeftReq int
	movesLeft    int
	costToHere   [NumDirections]int // real_cost+2; 0=unknown, 1=impossible
	pos          *fuelSegment
	segment      *fuelSegment
}

// segEntry is one recorded step of a danger finder's back-pointer array,
// used to reconstruct a dangerous stretch of path immune to later
// overwrites of the nodes it passes through.
type segEntry struct {
	cost      int
	extraCost int
	dirToHere Direction
}

// lattice is the dense per-tile node storage shared by all finders.
type lattice struct {
	grid  Grid
	nodes []node
}

func newLattice(grid Grid) *lattice {
	return &lattice{grid: grid, nodes: make([]node, grid.Size())}
}

func (l *lattice) get(tile int) *node { return &l.nodes[tile] }

func (l *lattice) valid(tile int) bool { return tile >= 0 && tile < len(l.nodes) }

// loadAttrs populates the cached, callback-sourced attributes of tile on
// first visit. It reports false when the tile must be treated as
// non-enterable: behavior IGNORE, an impossible action, or (when
// IgnoreNoneScopes is set) a tile with no applicable movement scope and
// no action.
func loadAttrs(n *node, tile int, p *Parameters, isStart bool) bool {
	if n.attrsLoaded {
		return n.behavior != BehaviorIgnore
	}
	n.attrsLoaded = true

	knowledge := KnowledgeKnown
	if p.Knowledge != nil {
		knowledge = p.Knowledge(tile, p)
	}
	n.knowledge = knowledge

	scope := ScopeNative
	canDisembark := true
	if p.GetMoveScope != nil {
		scope, canDisembark = p.GetMoveScope(tile, ScopeNone, p)
	}
	n.moveScope = scope
	n.canDisembark = canDisembark

	behavior := BehaviorNormal
	if p.GetTB != nil {
		behavior = p.GetTB(tile, knowledge, p)
	}

	action := ActionNone
	if p.GetAction != nil {
		action = p.GetAction(tile, knowledge, p)
	}
	n.action = action

	ec := 0
	if p.GetEC != nil {
		ec = p.GetEC(tile, knowledge, p)
	}
	n.extraTile = ec

	if !isStart {
		if behavior == BehaviorIgnore {
			n.behavior = BehaviorIgnore
			return false
		}
		if action == ActionImpossible {
			n.behavior = BehaviorIgnore
			return false
		}
		if scope == ScopeNone && action == ActionNone && p.IgnoreNoneScopes {
			n.behavior = BehaviorIgnore
			return false
		}
	}
	n.behavior = behavior

	n.zocClass = classifyZOC(scope, action, p, tile)
	return true
}

// classifyZOC reports MINE whenever the host has no GetZOC callback or
// GetZOC confirms the actor's owner controls tile, NO otherwise. Hosts
// that need a distinct ALLIED tier (a tile held by a friendly but not
// owning power) wire it through their own GetZOC logic; the engine only
// distinguishes "mine" from "not mine" when deciding whether to block
// expansion through a tile it does not control.
func classifyZOC(scope Scope, action Action, p *Parameters, tile int) ZOCClass {
	if p.GetZOC == nil {
		return ZOCMine
	}
	if p.GetZOC(p.ActorOwner, tile, p) {
		return ZOCMine
	}
	return ZOCNo
}
