package pathcore

import "fmt"

// fuelSegment is one reference-counted link of a fuel finder's settled
// route back to the nearest refuel point (or the start). prev is nil
// when the segment originates at the start or at a refuel tile.
type fuelSegment struct {
	cost      int
	extraCost int
	movesLeft int
	dirToHere Direction
	prev      *fuelSegment
	refCount  int
}

func newFuelSegment(prev *fuelSegment, cost, extraCost, movesLeft int, dir Direction) *fuelSegment {
	if prev != nil {
		prev.refCount++
	}
	return &fuelSegment{cost: cost, extraCost: extraCost, movesLeft: movesLeft, dirToHere: dir, prev: prev, refCount: 1}
}

// unref drops one reference, recursively releasing the prefix once a
// link's count reaches zero.
func unrefFuelSegment(s *fuelSegment) {
	for s != nil {
		s.refCount--
		if s.refCount > 0 {
			return
		}
		s = s.prev
	}
}

// FuelMap generalizes DangerMap: every tile carries a moves-left
// requirement (mlr) instead of a binary dangerous flag. A tile with
// mlr==0 is a refuel point; any other tile is only a valid terminal if
// the actor still has at least mlr moves on arrival.
type FuelMap struct {
	params  Parameters
	lat     *lattice
	safeQ   *priorityQueue
	waitedQ *priorityQueue
	bias    int
	cursor  int
	exhausted bool
	log     Logger
}

func newFuelMap(p Parameters, logger Logger) (*FuelMap, error) {
	if p.GetMovesLeftReq == nil {
		return nil, fmt.Errorf("%w: GetMovesLeftReq is required for the fuel finder", ErrBadParameters)
	}
	m := &FuelMap{
		params:  p,
		lat:     newLattice(p.Grid),
		safeQ:   newPriorityQueue(),
		waitedQ: newPriorityQueue(),
		bias:    startBias(&p),
		log:     logger,
	}
	m.seedStart()
	return m, nil
}

func (m *FuelMap) loadFuelAttrs(n *node, tile int, isStart bool) bool {
	if n.attrsLoaded {
		return n.behavior != BehaviorIgnore
	}
	ok := loadAttrs(n, tile, &m.params, isStart)
	n.movesLeftReq = m.params.GetMovesLeftReq(tile, n.knowledge, &m.params)
	return ok
}

func (m *FuelMap) seedStart() {
	p := &m.params
	start := p.StartTile
	n := m.lat.get(start)
	m.loadFuelAttrs(n, start, true)
	n.status = StatusClosed
	n.cost = m.bias
	n.extraCost = n.extraTile
	n.dirToHere = DirNone
	n.movesLeft = p.MovesLeftInitially
	n.segment = nil
	m.cursor = start
	m.expand(start, n.cost, n.movesLeft, false)
}

// directKey and waitedKey are the two comparison keys described for the
// fuel finder: a safety-adjusted version of the normal finder's key, and
// a coarser key used only for improvements contingent on an upstream
// wait.
func directKey(c, e, movesLeft, mlr, moveRate int) int {
	return priorityKey(c, e, moveRate) - (movesLeft - mlr)
}

func waitedKey(c, movesLeft, mlr int) int {
	return turnFactor*(c+1) - (movesLeft - mlr) - 1
}

// expand relaxes edges out of u, which is logically at (effectiveCost,
// effectiveMovesLeft) — the node's own frozen arrival state on a first
// close, or the post-wait state on a WAITING re-pop (see
// maybeScheduleRefuelWait / popOnce). u's stored record is not mutated.
func (m *FuelMap) expand(u, effectiveCost, effectiveMovesLeft int, waited bool) {
	p := &m.params
	un := m.lat.get(u)
	parentSeg := un.segment
	if un.movesLeftReq == 0 {
		parentSeg = nil // segments leaving a refuel point start a new chain
	}
	ml := effectiveMovesLeft
	if p.MoveRate > 0 && ml%p.MoveRate == 0 && effectiveCost >= p.MovesLeftInitially {
		ml = p.MoveRate * fuelTurns(p)
	}

	for d := Direction(0); d < NumDirections; d++ {
		v, ok := p.Grid.Step(u, d)
		if !ok {
			continue
		}
		vn := m.lat.get(v)
		if vn.status == StatusUninit {
			if !m.loadFuelAttrs(vn, v, v == p.StartTile) {
				vn.status = StatusInit
				continue
			}
			vn.status = StatusInit
		}
		if vn.behavior == BehaviorIgnore {
			continue
		}
		if (vn.status == StatusClosed || vn.status == StatusWaiting) && vn.movesLeftReq == 0 {
			continue // refuel points settle once; only non-refuel tiles re-improve
		}
		if un.zocClass != ZOCMine && vn.zocClass == ZOCNo {
			continue
		}

		cost, ok := m.costStepCached(u, un, d, v, vn)
		if !ok {
			continue
		}

		// move_rate==0 has no per-turn reset to divide by; treat ml as a
		// plain countdown of whatever bonus moves remain, same as the
		// normal finder's clampStepCost degenerate case.
		var rem int
		if p.MoveRate > 0 {
			rem = ml % p.MoveRate
			if rem == 0 {
				rem = p.MoveRate
			}
		} else {
			rem = ml
			if rem <= 0 {
				continue
			}
		}
		if cost > rem {
			cost = rem
		}
		mlAfter := ml - cost

		suicide := vn.action == ActionAttack && p.HasAttackFlag
		if mlAfter < vn.movesLeftReq && !suicide {
			continue
		}
		if suicide && mlAfter < un.movesLeftReq {
			// Attacking doesn't move the actor onto v; it stays on u, so
			// what must still be reachable afterward is u's own refuel
			// requirement, not v's.
			continue
		}

		c := effectiveCost + cost
		e := un.extraCost + vn.extraTile

		switch {
		case vn.status == StatusInit || vn.status == StatusOpen:
			kDirect := directKey(c, e, mlAfter, vn.movesLeftReq, p.MoveRate)
			if vn.status == StatusInit || kDirect < directKey(vn.cost, vn.extraCost, vn.movesLeft, vn.movesLeftReq, p.MoveRate) {
				wasOpen := vn.status == StatusOpen
				vn.status = StatusOpen
				vn.cost, vn.extraCost, vn.movesLeft, vn.dirToHere = c, e, mlAfter, d
				m.setFuelSegment(vn, parentSeg, c, e, mlAfter, d)
				if wasOpen {
					m.safeQ.Replace(v, kDirect)
				} else {
					m.safeQ.Insert(v, kDirect)
				}
			}
		case waited && vn.movesLeftReq > 0 && (vn.status == StatusClosed || vn.status == StatusWaiting):
			if mlAfter > vn.movesLeft || (mlAfter == vn.movesLeft && e < vn.extraCost) {
				vn.cost, vn.extraCost, vn.movesLeft, vn.dirToHere = c, e, mlAfter, d
				vn.waited = true
				m.setFuelSegment(vn, parentSeg, c, e, mlAfter, d)
				kw := waitedKey(c, mlAfter, vn.movesLeftReq)
				if m.waitedQ.Contains(v) {
					m.waitedQ.Replace(v, kw)
				} else {
					m.waitedQ.Insert(v, kw)
				}
			}
		}
	}

	m.maybeScheduleRefuelWait(u, un, effectiveCost, ml)
}

func (m *FuelMap) setFuelSegment(vn *node, parent *fuelSegment, c, e, movesLeft int, d Direction) {
	if vn.pos != nil {
		unrefFuelSegment(vn.pos)
	}
	vn.pos = newFuelSegment(parent, c, e, movesLeft, d)
}

// fuelTurns returns how many turns' worth of moves a full tank covers;
// Fuel<=1 ("no fuel rule") counts as a single turn's worth.
func fuelTurns(p *Parameters) int {
	if p.Fuel <= 1 {
		return 1
	}
	return p.Fuel
}

// maybeScheduleRefuelWait implements step 3 of the fuel finder's
// improvement policy: a refuel tile that finishes expansion with less
// than a full tank is pushed back as WAITING.
func (m *FuelMap) maybeScheduleRefuelWait(u int, un *node, effectiveCost, ml int) {
	p := &m.params
	if un.movesLeftReq != 0 || p.MoveRate <= 0 {
		return
	}
	full := p.MoveRate * fuelTurns(p)
	if ml >= full {
		return
	}
	waitCost := p.MoveRate * (turnOf(effectiveCost, p.MoveRate) + 1)
	un.status = StatusWaiting
	un.waitCost = waitCost
	kw := waitedKey(waitCost, full, 0)
	m.waitedQ.Insert(u, kw)
}

// costStepCached memoizes the per-direction step cost on the expanding
// node, storing real_cost+2 (0 means uncomputed, 1 means impossible).
func (m *FuelMap) costStepCached(u int, un *node, d Direction, v int, vn *node) (int, bool) {
	if un.costToHere[d] == 1 {
		return 0, false
	}
	if un.costToHere[d] >= 2 {
		return un.costToHere[d] - 2, true
	}
	cost, ok := fuelStepCost(&m.params, u, v, un, vn)
	if !ok {
		un.costToHere[d] = 1
		return 0, false
	}
	un.costToHere[d] = cost + 2
	return cost, true
}

// fuelStepCost is the fuel finder's edge-cost rule. It computes the same
// value as stepCostFor: GetMC's Impossible sentinel rejects the edge.
func fuelStepCost(p *Parameters, u, v int, un, vn *node) (int, bool) {
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

func (m *FuelMap) popOnce() (int, bool) {
	safeKey, hasSafe := m.safeQ.PeekMinKey()
	waitKey, hasWait := m.waitedQ.PeekMinKey()

	switch {
	case !hasSafe && !hasWait:
		m.exhausted = true
		return 0, false
	case hasWait && (!hasSafe || waitKey <= safeKey):
		tile, _, _ := m.waitedQ.RemoveMin()
		n := m.lat.get(tile)
		if n.status == StatusWaiting && n.movesLeftReq == 0 {
			full := m.params.MoveRate * fuelTurns(&m.params)
			n.status = StatusClosed
			n.waited = true
			m.settle(n)
			m.expand(tile, n.waitCost, full, true)
			return tile, true
		}
		n.status = StatusClosed
		n.waited = true
		m.settle(n)
		m.expand(tile, n.cost, n.movesLeft, true)
		return tile, true
	default:
		tile, _, _ := m.safeQ.RemoveMin()
		n := m.lat.get(tile)
		n.status = StatusClosed
		m.settle(n)
		m.expand(tile, n.cost, n.movesLeft, false)
		return tile, true
	}
}

// settle promotes a node's tentative segment to its settled segment on
// the CLOSED transition.
func (m *FuelMap) settle(n *node) {
	if n.segment != nil {
		unrefFuelSegment(n.segment)
	}
	n.segment = n.pos
	if n.pos != nil {
		n.pos.refCount++
	}
}

// fuelSettled reports whether n counts as a valid, fuel-reachable stop:
// closed or waiting, and either a refuel point or holding a route back
// to one.
func fuelSettled(n *node) bool {
	if n.status != StatusClosed && n.status != StatusWaiting {
		return false
	}
	return n.movesLeftReq == 0 || n.segment != nil
}

func (m *FuelMap) settleUntil(target int) {
	n := m.lat.get(target)
	for !fuelSettled(n) && !m.exhausted {
		if _, ok := m.popOnce(); !ok {
			break
		}
	}
}

func (m *FuelMap) CostTo(tile int) (int, error) {
	if !m.lat.valid(tile) {
		return 0, ErrInvalidTile
	}
	if tile == m.params.StartTile {
		return 0, nil
	}
	m.settleUntil(tile)
	n := m.lat.get(tile)
	if !fuelSettled(n) {
		return Unreachable, nil
	}
	return n.cost - m.bias, nil
}

func (m *FuelMap) PathTo(tile int) (Path, error) {
	if !m.lat.valid(tile) {
		return nil, ErrInvalidTile
	}
	m.settleUntil(tile)
	n := m.lat.get(tile)
	if !fuelSettled(n) {
		return nil, nil
	}
	return m.reconstruct(tile), nil
}

func (m *FuelMap) PositionAt(tile int) (Position, bool, error) {
	path, err := m.PathTo(tile)
	if err != nil {
		return Position{}, false, err
	}
	if path.Empty() {
		return Position{}, false, nil
	}
	return path[len(path)-1], true, nil
}

// reconstruct walks the segment chain back to the start, synthesizing a
// waited-state position at any refuel tile the chain passes through
// with a shorter, non-initial segment underneath it (spec's "a wait
// occurred here").
func (m *FuelMap) reconstruct(target int) Path {
	p := &m.params
	n := m.lat.get(target)

	var out []Position
	nextDir := DirNone

	// Terminal position comes from the node's own live state (fresher
	// than its segment when the node is still the active cursor).
	out = append(out, makePosition(p, target, n.cost, n.extraCost, fuelReportFromMoves(p, n.cost, n.movesLeft), n.dirToHere, nextDir))
	nextDir = n.dirToHere

	seg := n.segment
	tile := target
	for seg != nil {
		prevTile, ok := p.Grid.Step(tile, seg.dirToHere.Opposite())
		if !ok {
			break
		}
		tile = prevTile
		if tile == p.StartTile {
			break
		}
		prevNode := m.lat.get(tile)
		refuel := prevNode.movesLeftReq == 0
		var pos Position
		var parentSeg *fuelSegment
		if refuel {
			pos = makePosition(p, tile, prevNode.cost, prevNode.extraCost, fuelReportFromMoves(p, prevNode.cost, prevNode.movesLeft), prevNode.dirToHere, nextDir)
			parentSeg = prevNode.segment
		} else {
			pos = makePosition(p, tile, seg.prev.cost, seg.prev.extraCost, fuelReportFromMoves(p, seg.prev.cost, seg.prev.movesLeft), seg.prev.dirToHere, nextDir)
			parentSeg = seg.prev
		}
		out = append(out, pos)
		nextDir = pos.DirToHere
		if refuel && prevNode.waited {
			departure := makePosition(p, tile, prevNode.waitCost, prevNode.extraCost, p.FuelLeftInitially, DirNone, nextDir)
			out = append(out, departure)
		}
		seg = parentSeg
	}

	if target != p.StartTile {
		startNode := m.lat.get(p.StartTile)
		out = append(out, makePosition(p, p.StartTile, m.bias, startNode.extraCost, p.FuelLeftInitially, DirNone, nextDir))
	}

	reversePositions(out)
	return out
}

// fuelReportFromMoves derives a per-turn fuel_left for the fuel finder,
// which tracks moves_left explicitly rather than deriving it from the
// turn number alone.
func fuelReportFromMoves(p *Parameters, cost, movesLeft int) int {
	if p.Fuel <= 1 {
		return p.FuelLeftInitially
	}
	turn := turnOf(cost, p.MoveRate)
	left := p.FuelLeftInitially - turn
	if left < 0 {
		left = 0
	}
	return left
}

func (m *FuelMap) Iterate() bool {
	tile, ok := m.popOnce()
	if ok {
		m.cursor = tile
	}
	return ok
}

func (m *FuelMap) CursorTile() int { return m.cursor }

func (m *FuelMap) CursorCost() int {
	n := m.lat.get(m.cursor)
	if !fuelSettled(n) {
		return Unreachable
	}
	return n.cost - m.bias
}

func (m *FuelMap) CursorPath() Path {
	p, _ := m.PathTo(m.cursor)
	return p
}

func (m *FuelMap) CursorPosition() Position {
	pos, _, _ := m.PositionAt(m.cursor)
	return pos
}
