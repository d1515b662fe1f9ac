package pathcore

import "fmt"

// ReverseSignature is the key identifying a class of reverse-map queries
// that must behave identically: a fixed destination, a move rate, an
// actor class, and whatever flags the host's cost callbacks key off of.
// Two signatures that compare equal are expected to produce equal
// results, so a pointer-valued ActorClass/Flags field is fine as a
// shortcut as long as the host only ever hands out one such pointer per
// distinct behavior.
type ReverseSignature struct {
	Target     int
	MoveRate   int
	ActorClass any
	Flags      any
}

// ReverseMap answers "what would it cost an actor matching this
// signature to reach Target" queries, memoizing one normal finder per
// distinct signature. Costs past MaxTurns are reported as Unreachable;
// the finder's exploration itself is not stopped at that horizon.
type ReverseMap struct {
	grid     Grid
	maxTurns int
	base     Parameters // Target, Callbacks and the rest are filled per query
	byKey    map[ReverseSignature]*reverseEntry
	log      Logger
}

type reverseEntry struct {
	finder  *NormalMap
	maxCost int
}

// NewReverseMap builds a cache rooted at base.StartTile (the fixed
// destination). base supplies Grid and Callbacks; MoveRate, ActorKind,
// and the other per-signature fields are overridden per query.
func NewReverseMap(base Parameters, maxTurns int) (*ReverseMap, error) {
	if base.Grid == nil {
		return nil, fmt.Errorf("%w: nil Grid", ErrBadParameters)
	}
	if maxTurns < 0 {
		return nil, fmt.Errorf("%w: negative max turns", ErrBadParameters)
	}
	return &ReverseMap{
		grid:     base.Grid,
		maxTurns: maxTurns,
		base:     base,
		byKey:    make(map[ReverseSignature]*reverseEntry),
		log:      loggerOrDefault(base.Logger),
	}, nil
}

func (r *ReverseMap) entryFor(sig ReverseSignature, moveRate, movesLeftInitially int, actorKind any) (*reverseEntry, error) {
	if e, ok := r.byKey[sig]; ok {
		return e, nil
	}
	p := r.base
	p.MoveRate = moveRate
	p.MovesLeftInitially = movesLeftInitially
	p.ActorKind = actorKind
	if p.UnknownMoveCost == 0 {
		p.UnknownMoveCost = moveRate
	}
	m, err := NewMap(p)
	if err != nil {
		return nil, err
	}
	nm, ok := m.(*NormalMap)
	if !ok {
		return nil, fmt.Errorf("%w: reverse map requires a normal finder", ErrBadParameters)
	}
	e := &reverseEntry{finder: nm, maxCost: moveRate * (r.maxTurns + 1)}
	r.byKey[sig] = e
	return e, nil
}

// CostFrom returns the cost for an actor described by sig, moveRate, and
// movesLeftInitially to reach the reverse map's target tile from from,
// bounded by MaxTurns: a cost at or beyond maxCost is reported as
// Unreachable even if the underlying finder could in principle settle it.
func (r *ReverseMap) CostFrom(from int, sig ReverseSignature, moveRate, movesLeftInitially int) (int, error) {
	e, err := r.entryFor(sig, moveRate, movesLeftInitially, sig.ActorClass)
	if err != nil {
		return 0, err
	}
	cost, err := e.finder.CostTo(from)
	if err != nil || cost == Unreachable || cost >= e.maxCost {
		return Unreachable, err
	}
	return cost, nil
}

// PositionFrom is CostFrom's Position-returning counterpart.
func (r *ReverseMap) PositionFrom(from int, sig ReverseSignature, moveRate, movesLeftInitially int) (Position, bool, error) {
	e, err := r.entryFor(sig, moveRate, movesLeftInitially, sig.ActorClass)
	if err != nil {
		return Position{}, false, err
	}
	pos, ok, err := e.finder.PositionAt(from)
	if err != nil || !ok || pos.TotalMC >= e.maxCost {
		return Position{}, false, err
	}
	return pos, true, nil
}
