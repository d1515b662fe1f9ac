package pathcore

import "fmt"

// standardMoveUnit is charged for entering a tile whose only relevant
// cost driver is a non-attack action, bypassing GetMC entirely.
const standardMoveUnit = 1

// Map is the query surface every finder variant implements. CostTo,
// PathTo, and PositionAt settle the lattice lazily up to the requested
// tile; Iterate enumerates all reachable tiles in non-decreasing key
// order.
type Map interface {
	// CostTo returns the minimum base cost to tile, or Unreachable.
	// The only error it returns is ErrInvalidTile.
	CostTo(tile int) (int, error)
	// PathTo returns the best path to tile, or an empty Path if
	// unreachable. The only error it returns is ErrInvalidTile.
	PathTo(tile int) (Path, error)
	// PositionAt returns the last position of PathTo(tile); ok is
	// false when unreachable.
	PositionAt(tile int) (pos Position, ok bool, err error)
	// Iterate settles the next node in non-decreasing key order and
	// moves the cursor to it; it returns false once the lattice is
	// exhausted.
	Iterate() bool
	CursorTile() int
	CursorCost() int
	CursorPath() Path
	CursorPosition() Position
}

// NormalMap is the baseline Dijkstra finder: zone-of-control, tile
// behavior, and per-edge cost callbacks, with an optional jumbo mode
// that hands all rule logic to a single GetCosts callback.
type NormalMap struct {
	params Parameters
	lat    *lattice
	queue  *priorityQueue
	jumbo  bool
	bias   int

	cursor   int
	exhausted bool
	log      Logger
}

// NewMap builds the finder variant selected by p's callbacks: danger if
// IsPosDangerous is set, fuel if GetMovesLeftReq is set, normal
// otherwise. Jumbo (GetCosts) only combines with the normal mode.
func NewMap(p Parameters) (Map, error) {
	if p.Grid == nil {
		return nil, fmt.Errorf("%w: nil Grid", ErrBadParameters)
	}
	if !(p.StartTile >= 0 && p.StartTile < p.Grid.Size()) {
		return nil, fmt.Errorf("%w: start tile out of range", ErrInvalidTile)
	}
	logger := loggerOrDefault(p.Logger)

	danger := p.IsPosDangerous != nil
	fuel := p.GetMovesLeftReq != nil
	jumbo := p.GetCosts != nil

	if danger && fuel {
		return nil, fmt.Errorf("%w: danger and fuel modes do not combine", ErrBadParameters)
	}
	if jumbo && (danger || fuel) {
		return nil, fmt.Errorf("%w: jumbo mode is normal-only", ErrBadParameters)
	}
	if !jumbo && p.GetMC == nil {
		return nil, fmt.Errorf("%w: GetMC is required without GetCosts", ErrBadParameters)
	}
	if p.GetMoveScope == nil {
		return nil, fmt.Errorf("%w: GetMoveScope is required", ErrBadParameters)
	}

	switch {
	case danger:
		logger.Debug("pathcore: building danger map", "start", p.StartTile)
		return newDangerMap(p, logger)
	case fuel:
		logger.Debug("pathcore: building fuel map", "start", p.StartTile)
		return newFuelMap(p, logger)
	default:
		logger.Debug("pathcore: building normal map", "start", p.StartTile, "jumbo", jumbo)
		return newNormalMap(p, logger), nil
	}
}

func newNormalMap(p Parameters, logger Logger) *NormalMap {
	m := &NormalMap{
		params: p,
		lat:    newLattice(p.Grid),
		queue:  newPriorityQueue(),
		jumbo:  p.GetCosts != nil,
		bias:   startBias(&p),
		log:    logger,
	}
	m.seedStart()
	return m
}

func (m *NormalMap) seedStart() {
	n := m.lat.get(m.params.StartTile)
	loadAttrs(n, m.params.StartTile, &m.params, true)
	n.status = StatusClosed
	n.cost = m.bias
	n.extraCost = n.extraTile
	n.dirToHere = DirNone
	m.cursor = m.params.StartTile
	if m.jumbo {
		m.jumboExpand(m.params.StartTile)
	} else {
		m.expand(m.params.StartTile)
	}
}

// expand relaxes every outgoing edge of newly closed node u.
func (m *NormalMap) expand(u int) {
	p := &m.params
	un := m.lat.get(u)

	if un.behavior == BehaviorDontLeave {
		return
	}
	if un.moveScope == ScopeNone && movesLeftOf(un.cost, p.MoveRate) <= 0 {
		return
	}

	for d := Direction(0); d < NumDirections; d++ {
		v, ok := p.Grid.Step(u, d)
		if !ok {
			continue
		}
		vn := m.lat.get(v)
		if vn.status == StatusClosed {
			continue
		}
		if vn.status == StatusUninit {
			if !loadAttrs(vn, v, p, v == p.StartTile) {
				vn.status = StatusInit
				continue
			}
			vn.status = StatusInit
		}
		if vn.behavior == BehaviorIgnore {
			continue
		}

		if un.zocClass != ZOCMine && vn.zocClass == ZOCNo {
			continue
		}

		cost, ok := m.stepCost(u, v, un, vn)
		if !ok {
			continue
		}
		cost, ok = clampStepCost(cost, un.cost, p.MoveRate)
		if !ok {
			continue
		}

		c := un.cost + cost
		e := un.extraCost + vn.extraTile
		key := priorityKey(c, e, p.MoveRate)

		switch vn.status {
		case StatusInit:
			vn.status = StatusOpen
			vn.cost, vn.extraCost, vn.dirToHere = c, e, d
			m.queue.Insert(v, key)
		case StatusOpen:
			if key < priorityKey(vn.cost, vn.extraCost, p.MoveRate) {
				vn.cost, vn.extraCost, vn.dirToHere = c, e, d
				m.queue.Replace(v, key)
			}
		}
	}
}

// stepCost resolves the cost of entering v from u: actions take priority
// over GetMC, an unknown tile costs a flat exploration charge, and any
// action found must also clear the action-legality check.
func (m *NormalMap) stepCost(u, v int, un, vn *node) (int, bool) {
	p := &m.params
	switch {
	case vn.action == ActionAttack && p.HasAttackFlag:
		if p.IsActionPossible != nil && !p.IsActionPossible(u, v, un.moveScope, vn.action, p) {
			return 0, false
		}
		return p.MoveRate, true
	case vn.action != ActionNone && vn.action != ActionImpossible:
		if p.IsActionPossible != nil && !p.IsActionPossible(u, v, un.moveScope, vn.action, p) {
			return 0, false
		}
		return standardMoveUnit, true
	case vn.knowledge == KnowledgeUnknown:
		return p.UnknownMoveCost, true
	default:
		cost := p.GetMC(u, v, un.moveScope, vn.moveScope, p)
		if cost >= Impossible {
			return 0, false
		}
		return cost, true
	}
}

// clampStepCost enforces the within-turn cap: a step can never cost more
// than the moves the actor has left this turn. It also handles the
// MoveRate==0 degenerate case by rejecting the edge outright once any
// starting bonus is spent, rather than admitting free zero-cost moves.
func clampStepCost(cost, uCost, moveRate int) (int, bool) {
	if moveRate <= 0 {
		avail := -uCost
		if avail <= 0 {
			return 0, false
		}
		if cost > avail {
			cost = avail
		}
		return cost, true
	}
	ml := movesLeftOf(uCost, moveRate)
	if cost > ml {
		cost = ml
	}
	return cost, true
}

func (m *NormalMap) jumboExpand(u int) {
	p := &m.params
	un := m.lat.get(u)
	for d := Direction(0); d < NumDirections; d++ {
		v, ok := p.Grid.Step(u, d)
		if !ok {
			continue
		}
		vn := m.lat.get(v)
		if vn.status == StatusClosed {
			continue
		}
		toCost, toEC := vn.cost, vn.extraCost
		key := p.GetCosts(u, d, v, un.cost, un.extraCost, &toCost, &toEC, p)
		if key < 0 {
			continue
		}
		switch vn.status {
		case StatusUninit:
			vn.status = StatusOpen
			vn.cost, vn.extraCost, vn.dirToHere = toCost, toEC, d
			m.queue.Insert(v, key)
		case StatusOpen:
			if key < vn.jumboKeyOrDerive(p.MoveRate) {
				vn.cost, vn.extraCost, vn.dirToHere = toCost, toEC, d
				m.queue.Replace(v, key)
			}
		}
	}
}

// jumboKeyOrDerive recomputes the comparison key for an already-open
// jumbo node from its stored (cost, extraCost) with priorityKey. The key
// the node is queued under came from GetCosts, so this comparison agrees
// with the queue order only when GetCosts returns keys on the same scale
// as priorityKey.
func (n *node) jumboKeyOrDerive(moveRate int) int {
	return priorityKey(n.cost, n.extraCost, moveRate)
}

func (m *NormalMap) popOnce() (int, bool) {
	tile, _, ok := m.queue.RemoveMin()
	if !ok {
		m.exhausted = true
		return 0, false
	}
	n := m.lat.get(tile)
	n.status = StatusClosed
	if m.jumbo {
		m.jumboExpand(tile)
	} else {
		m.expand(tile)
	}
	return tile, true
}

func (m *NormalMap) settleUntil(target int) {
	n := m.lat.get(target)
	for n.status != StatusClosed && !m.exhausted {
		if _, ok := m.popOnce(); !ok {
			break
		}
	}
}

func (m *NormalMap) CostTo(tile int) (int, error) {
	if !m.lat.valid(tile) {
		return 0, ErrInvalidTile
	}
	m.settleUntil(tile)
	n := m.lat.get(tile)
	if n.status != StatusClosed {
		return Unreachable, nil
	}
	return n.cost - m.bias, nil
}

func (m *NormalMap) PathTo(tile int) (Path, error) {
	if !m.lat.valid(tile) {
		return nil, ErrInvalidTile
	}
	m.settleUntil(tile)
	path := reconstructChain(m.lat, &m.params, tile)
	return path, nil
}

func (m *NormalMap) PositionAt(tile int) (Position, bool, error) {
	path, err := m.PathTo(tile)
	if err != nil {
		return Position{}, false, err
	}
	if path.Empty() {
		return Position{}, false, nil
	}
	return path[len(path)-1], true, nil
}

func (m *NormalMap) Iterate() bool {
	tile, ok := m.popOnce()
	if ok {
		m.cursor = tile
	}
	return ok
}

func (m *NormalMap) CursorTile() int { return m.cursor }

func (m *NormalMap) CursorCost() int {
	n := m.lat.get(m.cursor)
	return n.cost - m.bias
}

func (m *NormalMap) CursorPath() Path {
	p, _ := m.PathTo(m.cursor)
	return p
}

func (m *NormalMap) CursorPosition() Position {
	pos, _, _ := m.PositionAt(m.cursor)
	return pos
}
