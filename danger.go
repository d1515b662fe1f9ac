package pathcore

import "fmt"

// DangerMap tolerates traversal of dangerous tiles but forbids ending a
// turn on one, inserting wait steps on safe tiles when needed. It reuses
// the shared lattice but keeps two priority queues: a safe queue keyed
// the same way as the normal finder, and a danger queue keyed by raw
// cost, drained first on every pop.
type DangerMap struct {
	params Parameters
	lat    *lattice
	safeQ  *priorityQueue
	dangerQ *priorityQueue
	bias   int
	cursor int
	exhausted bool
	log    Logger
}

func newDangerMap(p Parameters, logger Logger) (*DangerMap, error) {
	if p.IsPosDangerous == nil {
		return nil, fmt.Errorf("%w: IsPosDangerous is required for the danger finder", ErrBadParameters)
	}
	m := &DangerMap{
		params:  p,
		lat:     newLattice(p.Grid),
		safeQ:   newPriorityQueue(),
		dangerQ: newPriorityQueue(),
		bias:    startBias(&p),
		log:     logger,
	}
	m.seedStart()
	return m, nil
}

func (m *DangerMap) loadDangerAttrs(n *node, tile int, isStart bool) bool {
	if n.attrsLoaded {
		return n.behavior != BehaviorIgnore
	}
	ok := loadAttrs(n, tile, &m.params, isStart)
	if ok {
		n.isDangerous = m.params.IsPosDangerous(tile, n.knowledge, &m.params)
	}
	return ok
}

func (m *DangerMap) seedStart() {
	start := m.params.StartTile
	n := m.lat.get(start)
	m.loadDangerAttrs(n, start, true)
	n.status = StatusClosed
	n.cost = m.bias
	n.extraCost = n.extraTile
	n.dirToHere = DirNone
	m.cursor = start
	m.expandFrom(start, n.cost, false)
	m.maybeScheduleWait(start, n)
}

// expandFrom relaxes edges out of a node that is logically at
// effectiveCost (equal to the node's own recorded cost on a first close,
// or the bumped post-wait cost on a WAITING re-pop; see
// maybeScheduleWait / popOnce). The source node's own stored record is
// never mutated here; only downstream candidates are.
func (m *DangerMap) expandFrom(u, effectiveCost int, waited bool) {
	p := &m.params
	un := m.lat.get(u)
	if un.behavior == BehaviorDontLeave {
		return
	}
	if un.moveScope == ScopeNone && movesLeftOf(effectiveCost, p.MoveRate) <= 0 {
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
			if !m.loadDangerAttrs(vn, v, v == p.StartTile) {
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

		cost, ok := stepCostFor(p, u, v, un, vn)
		if !ok {
			continue
		}

		ml := movesLeftOf(effectiveCost, p.MoveRate)
		if vn.isDangerous && cost >= ml {
			continue // stepping there would strand the actor mid-turn on a dangerous tile
		}
		cost, ok = clampStepCost(cost, effectiveCost, p.MoveRate)
		if !ok {
			continue
		}

		c := effectiveCost + cost
		e := un.extraCost + vn.extraTile

		if vn.isDangerous {
			m.relaxDanger(v, vn, c, e, d, u)
		} else {
			m.relaxSafe(v, vn, c, e, d)
		}
	}
}

func (m *DangerMap) relaxSafe(v int, vn *node, c, e int, d Direction) {
	p := &m.params
	key := priorityKey(c, e, p.MoveRate)
	switch vn.status {
	case StatusInit:
		vn.status = StatusOpen
		vn.cost, vn.extraCost, vn.dirToHere = c, e, d
		m.safeQ.Insert(v, key)
	case StatusOpen:
		if key < priorityKey(vn.cost, vn.extraCost, p.MoveRate) {
			vn.cost, vn.extraCost, vn.dirToHere = c, e, d
			m.safeQ.Replace(v, key)
		}
	}
}

// relaxDanger implements the danger queue's improvement rule: more moves
// remaining on arrival wins, ties broken by lower extra-cost. u is the
// parent used to extend the danger segment.
func (m *DangerMap) relaxDanger(v int, vn *node, c, e int, d Direction, u int) {
	p := &m.params
	better := func() bool {
		newML, oldML := movesLeftOf(c, p.MoveRate), movesLeftOf(vn.cost, p.MoveRate)
		if newML != oldML {
			return newML > oldML
		}
		return e < vn.extraCost
	}
	switch vn.status {
	case StatusInit:
		vn.status = StatusOpen
		vn.cost, vn.extraCost, vn.dirToHere = c, e, d
		m.setDangerSegment(v, vn, u, c, e, d)
		m.dangerQ.Insert(v, c)
	case StatusOpen:
		if better() {
			vn.cost, vn.extraCost, vn.dirToHere = c, e, d
			m.setDangerSegment(v, vn, u, c, e, d)
			m.dangerQ.Replace(v, c)
		}
	}
}

// setDangerSegment records the frozen back-pointer chain for dangerous
// node v: a copy of u's own segment (if u is itself dangerous) with one
// new entry appended for v, or a single-entry segment if u is safe (u
// is then the nearest safe ancestor, v is the first dangerous step away
// from it).
func (m *DangerMap) setDangerSegment(v int, vn *node, u, c, e int, d Direction) {
	un := m.lat.get(u)
	var seg []segEntry
	if un.isDangerous {
		seg = append(seg, un.dangerSegment...)
	}
	seg = append(seg, segEntry{cost: c, extraCost: e, dirToHere: d})
	vn.dangerSegment = seg
}

// maybeScheduleWait handles wait-insertion: a just-closed safe node that
// arrives with fewer than MoveRate moves left this turn is pushed back
// as WAITING, keyed on the post-wait cost.
func (m *DangerMap) maybeScheduleWait(u int, n *node) {
	p := &m.params
	if n.isDangerous || p.MoveRate <= 0 {
		return
	}
	if movesLeftOf(n.cost, p.MoveRate) >= p.MoveRate {
		return
	}
	waitCost := p.MoveRate * (turnOf(n.cost, p.MoveRate) + 1)
	n.status = StatusWaiting
	m.safeQ.Insert(u, priorityKey(waitCost, n.extraCost, p.MoveRate))
	n.waitCost = waitCost
}

func (m *DangerMap) popOnce() (int, bool) {
	// Drain the danger queue first.
	if dt, dc, ok := m.dangerQ.RemoveMin(); ok {
		n := m.lat.get(dt)
		n.status = StatusClosed
		m.expandFrom(dt, dc, false)
		return dt, true
	}
	st, _, ok := m.safeQ.RemoveMin()
	if !ok {
		m.exhausted = true
		return 0, false
	}
	n := m.lat.get(st)
	if n.status == StatusWaiting {
		n.waited = true
		effective := n.waitCost
		n.status = StatusClosed
		m.expandFrom(st, effective, true)
		return st, true
	}
	n.status = StatusClosed
	m.expandFrom(st, n.cost, false)
	m.maybeScheduleWait(st, n)
	return st, true
}

func (m *DangerMap) settleUntil(target int) {
	n := m.lat.get(target)
	for n.status != StatusClosed && n.status != StatusWaiting && !m.exhausted {
		if _, ok := m.popOnce(); !ok {
			break
		}
	}
}

func (m *DangerMap) CostTo(tile int) (int, error) {
	if !m.lat.valid(tile) {
		return 0, ErrInvalidTile
	}
	if tile == m.params.StartTile {
		return 0, nil
	}
	m.settleUntil(tile)
	n := m.lat.get(tile)
	if n.status != StatusClosed && n.status != StatusWaiting {
		return Unreachable, nil
	}
	if n.isDangerous {
		return Unreachable, nil // a dangerous tile can never be a reported destination
	}
	return n.cost - m.bias, nil
}

func (m *DangerMap) PathTo(tile int) (Path, error) {
	if !m.lat.valid(tile) {
		return nil, ErrInvalidTile
	}
	m.settleUntil(tile)
	n := m.lat.get(tile)
	if (n.status != StatusClosed && n.status != StatusWaiting) || n.isDangerous {
		return nil, nil
	}
	return m.reconstruct(tile), nil
}

func (m *DangerMap) PositionAt(tile int) (Position, bool, error) {
	path, err := m.PathTo(tile)
	if err != nil {
		return Position{}, false, err
	}
	if path.Empty() {
		return Position{}, false, nil
	}
	return path[len(path)-1], true, nil
}

// reconstruct walks backward from target, alternating plain dirToHere
// hops on safe nodes with whole-segment jumps on dangerous nodes,
// synthesizing the arrival/departure pair at any safe node that was
// waited on.
func (m *DangerMap) reconstruct(target int) Path {
	p := &m.params
	var out []Position

	// emitSafe appends the position for safe tile at the given
	// (cost,extraCost,dir,waited) and, if waited, a synthesized
	// post-wait departure entry. out is built backward, so the departure
	// is appended first and follows the arrival once out is reversed.
	emitSafe := func(tile, cost, ec int, dir Direction, waited bool, waitCost int, nextDir Direction) {
		if waited {
			departure := makePosition(p, tile, waitCost, ec, fuelLeftForCost(p, waitCost), DirNone, nextDir)
			out = append(out, departure)
		}
		arrival := makePosition(p, tile, cost, ec, fuelLeftForCost(p, cost), dir, nextDirOrWaitMarker(waited, nextDir))
		out = append(out, arrival)
	}

	type frame struct {
		tile int
		dir  Direction // direction taken FROM this tile TOWARD the successor already emitted
	}
	var stack []frame

	cur := target
	for {
		n := m.lat.get(cur)
		if n.isDangerous {
			seg := n.dangerSegment
			// seg[len-1] is cur itself; walk it backward emitting each
			// dangerous tile, then continue from its precursor.
			prevDir := DirNone
			for i := len(seg) - 1; i >= 0; i-- {
				e := seg[i]
				pos := makePosition(p, cur, e.cost, e.extraCost, fuelLeftForCost(p, e.cost), e.dirToHere, prevDir)
				out = append(out, pos)
				prevDir = e.dirToHere
				if i > 0 {
					prevTile, ok := p.Grid.Step(cur, e.dirToHere.Opposite())
					if !ok {
						break
					}
					cur = prevTile
				}
			}
			// Step from the first dangerous tile back to its safe
			// ancestor (or start).
			first := seg[0]
			if cur == p.StartTile {
				break
			}
			prevTile, ok := p.Grid.Step(cur, first.dirToHere.Opposite())
			if !ok {
				break
			}
			cur = prevTile
			stack = append(stack, frame{tile: cur, dir: first.dirToHere})
			continue
		}

		// Safe node: record it, then step back once.
		var nextDir Direction = DirNone
		if len(stack) > 0 {
			nextDir = stack[len(stack)-1].dir
		} else if cur == target {
			nextDir = DirNone
		}
		emitSafe(cur, n.cost, n.extraCost, n.dirToHere, n.waited, n.waitCost, nextDir)
		if cur == p.StartTile {
			break
		}
		d := n.dirToHere
		prevTile, ok := p.Grid.Step(cur, d.Opposite())
		if !ok {
			break
		}
		stack = append(stack, frame{tile: cur, dir: d})
		cur = prevTile
	}

	reversePositions(out)
	return out
}

func nextDirOrWaitMarker(waited bool, nextDir Direction) Direction {
	if waited {
		return DirNone
	}
	return nextDir
}

func reversePositions(p []Position) {
	for i, j := 0, len(p)-1; i < j; i, j = i+1, j-1 {
		p[i], p[j] = p[j], p[i]
	}
}

// stepCostFor is the danger finder's edge-cost rule. It computes the
// same value as NormalMap.stepCost, which the normal finder uses.
func stepCostFor(p *Parameters, u, v int, un, vn *node) (int, bool) {
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

func (m *DangerMap) Iterate() bool {
	tile, ok := m.popOnce()
	if ok {
		m.cursor = tile
	}
	return ok
}

func (m *DangerMap) CursorTile() int { return m.cursor }

func (m *DangerMap) CursorCost() int {
	n := m.lat.get(m.cursor)
	if n.isDangerous {
		return Unreachable
	}
	return n.cost - m.bias
}

func (m *DangerMap) CursorPath() Path {
	p, _ := m.PathTo(m.cursor)
	return p
}

func (m *DangerMap) CursorPosition() Position {
	pos, _, _ := m.PositionAt(m.cursor)
	return pos
}
