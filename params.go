package pathcore

import "math"

// Impossible is the sentinel an edge-cost or moves-left-requirement
// callback returns to forbid a move outright.
const Impossible = math.MaxInt32 / 2

// Unreachable is the cost_to sentinel reported when no path exists.
const Unreachable = -1

// Scope classifies how an actor may occupy a tile. It is a bitmask so a
// tile can simultaneously support native and transported occupancy.
type Scope int

const (
	ScopeNone      Scope = 0
	ScopeNative    Scope = 1 << 0
	ScopeTransport Scope = 1 << 1
)

func (s Scope) Has(bit Scope) bool { return s&bit != 0 }

// Behavior is the host's tile-usage policy, from GetTB.
type Behavior int

const (
	BehaviorNormal Behavior = iota
	BehaviorDontLeave
	BehaviorIgnore
)

// Action is what the actor would do on entering a tile, from GetAction.
type Action int

const (
	ActionNone Action = iota
	ActionImpossible
	ActionAttack
	// ActionOther covers every non-attack, non-none action (capture,
	// disembark-and-act, etc.); legality is delegated to
	// IsActionPossible, the core does not distinguish among them.
	ActionOther
)

// Knowledge is what the actor currently knows about a tile.
type Knowledge int

const (
	KnowledgeKnown Knowledge = iota
	KnowledgeUnknown
)

// ZOCClass is the zone-of-control classification of a tile for a
// particular actor, used only by the ZOC-blocking rule during expansion.
type ZOCClass int

const (
	ZOCMine ZOCClass = iota
	ZOCAllied
	ZOCNo
)

// Status is a node's place in the search lifecycle.
type Status int

const (
	StatusUninit Status = iota
	StatusInit
	StatusOpen
	StatusWaiting
	StatusClosed
)

// Callbacks is the set of pure, host-supplied functions the engine reads
// to learn about the world. Every callback must be idempotent for the
// lifetime of a Map: the same arguments always produce the same result,
// because the engine caches per-tile attributes on first visit and
// never re-queries them.
//
// GetMC is required unless GetCosts (the jumbo variant) is supplied.
// GetMoveScope is required. Everything else is optional and defaults to
// a permissive no-op. IsPosDangerous is required to build a danger Map;
// GetMovesLeftReq is required to build a fuel Map.
type Callbacks struct {
	// GetMC returns the base move cost of the edge from -> to, or
	// Impossible to forbid the move.
	GetMC func(from, to int, fromScope, toScope Scope, p *Parameters) int

	// GetMoveScope classifies how the actor may occupy tile, and
	// reports (via the return's CanDisembark) whether a TRANSPORT
	// occupancy there permits disembarking.
	GetMoveScope func(tile int, previousScope Scope, p *Parameters) (scope Scope, canDisembark bool)

	// GetTB reports tile-usage policy. Nil means "always NORMAL".
	GetTB func(tile int, knowledge Knowledge, p *Parameters) Behavior

	// GetEC returns the extra, tiebreaker-only cost of occupying tile.
	// Nil means "always 0".
	GetEC func(tile int, knowledge Knowledge, p *Parameters) int

	// GetZOC reports whether owner controls tile's zone of control.
	// Nil means "always true" (ZOC rule never fires).
	GetZOC func(owner any, tile int, p *Parameters) bool

	// GetAction reports the action the actor would perform entering
	// tile. Nil means "always ActionNone".
	GetAction func(tile int, knowledge Knowledge, p *Parameters) Action

	// IsActionPossible is consulted whenever GetAction reports a
	// non-none action, to confirm legality of performing it from a
	// specific source tile/scope. Nil means "always true".
	IsActionPossible func(from, to int, fromScope Scope, action Action, p *Parameters) bool

	// IsPosDangerous marks tiles the actor may cross but must not end
	// a turn on. Required for the danger finder; unused otherwise.
	IsPosDangerous func(tile int, knowledge Knowledge, p *Parameters) bool

	// GetMovesLeftReq returns the minimum moves the actor must have on
	// arrival at tile to still be able to reach a refuel point; 0
	// marks tile itself as a refuel point; Impossible forbids entry.
	// Required for the fuel finder; unused otherwise.
	GetMovesLeftReq func(tile int, knowledge Knowledge, p *Parameters) int

	// GetCosts is the jumbo variant: when set, it is the sole source
	// of edge legality and cost, returning the new priority key or -1
	// to reject the edge. Only compatible with the normal finder.
	GetCosts func(from int, d Direction, to int, fromCost, fromEC int, toCost, toEC *int, p *Parameters) int

	// Knowledge reports what the actor currently knows about tile.
	// Nil means "always KnowledgeKnown".
	Knowledge func(tile int, p *Parameters) Knowledge
}

// Parameters is the immutable input record driving a single Map. Callers
// build one per query session; the Map copies it at construction and
// never retains a reference back to the caller's copy.
type Parameters struct {
	Grid Grid

	StartTile int
	// MapHandle is opaque to the core; it is handed back to callbacks
	// verbatim so they can look up whatever host-side world state they
	// need (terrain, units, ownership) without the engine ever seeing it.
	MapHandle any

	ActorKind  any
	ActorOwner any

	MoveRate            int
	MovesLeftInitially  int
	Fuel                int // turns of fuel the actor may spend; 1 = no fuel rule
	FuelLeftInitially   int
	Omniscience         bool
	TransportedByInitially any
	IgnoreNoneScopes    bool

	// UnknownMoveCost is charged for a step onto a tile whose
	// Knowledge is KnowledgeUnknown.
	UnknownMoveCost int

	// HasAttackFlag gates the "attacking costs a full turn" branch of
	// step 5; when false, an ActionAttack tile costs one standard move
	// unit just like any other action tile.
	HasAttackFlag bool

	Callbacks

	// Logger receives a Debug-level trace of Map construction naming the
	// finder variant built; node settlement is not logged. Nil is replaced
	// by slog.Default() at construction.
	Logger Logger
}

// Logger is the minimal structured-logging surface the engine needs; it
// is satisfied by *slog.Logger via the adapter in logging.go; tests may
// supply a fake to assert on emitted traces without importing log/slog.
type Logger interface {
	Debug(msg string, args ...any)
}

// TileBehaviorFunc matches the shape callers plug into GetTB; exported so
// the combinators below compose with host-written behavior functions.
type TileBehaviorFunc func(tile int, knowledge Knowledge, p *Parameters) Behavior

// NoFights returns BehaviorDontLeave for any tile the actor would fight
// at (per isDangerFn), forbidding the actor from leaving once it arrives.
func NoFights(isDangerFn func(tile int) bool) TileBehaviorFunc {
	return func(tile int, knowledge Knowledge, p *Parameters) Behavior {
		if isDangerFn(tile) {
			return BehaviorDontLeave
		}
		return BehaviorNormal
	}
}

// NoFightsOrUnknown additionally forbids entering unknown tiles outright.
func NoFightsOrUnknown(isDangerFn func(tile int) bool) TileBehaviorFunc {
	inner := NoFights(isDangerFn)
	return func(tile int, knowledge Knowledge, p *Parameters) Behavior {
		if knowledge == KnowledgeUnknown {
			return BehaviorIgnore
		}
		return inner(tile, knowledge, p)
	}
}

// NewUnitParameters fills the common fields for a unit-driven search,
// Grid included. Callers still set Callbacks themselves.
func NewUnitParameters(grid Grid, start, moveRate, movesLeft int) Parameters {
	return Parameters{
		Grid:               grid,
		StartTile:          start,
		MoveRate:           moveRate,
		MovesLeftInitially: movesLeft,
		Fuel:               1,
		FuelLeftInitially:  1,
		UnknownMoveCost:    moveRate,
	}
}

// NewReverseParameters fills the common fields for building a reverse-map
// query: a search rooted at a fixed destination rather than an actor.
func NewReverseParameters(grid Grid, target, moveRate int) Parameters {
	return Parameters{
		Grid:               grid,
		StartTile:          target,
		MoveRate:           moveRate,
		MovesLeftInitially: moveRate,
		Fuel:               1,
		FuelLeftInitially:  1,
		UnknownMoveCost:    moveRate,
	}
}
