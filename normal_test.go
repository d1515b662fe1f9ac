package pathcore

import "testing"

// lineParams builds a 1xN line grid with a flat move cost of 1 per step,
// used as the common fixture for the normal finder's tests.
func lineParams(n, moveRate, movesLeft int) Parameters {
	grid := NewRectGrid(n, 1)
	return Parameters{
		Grid:               grid,
		StartTile:          0,
		MoveRate:           moveRate,
		MovesLeftInitially: movesLeft,
		Fuel:               1,
		FuelLeftInitially:  1,
		UnknownMoveCost:    moveRate,
		Callbacks: Callbacks{
			GetMC: func(from, to int, fromScope, toScope Scope, p *Parameters) int {
				return 1
			},
			GetMoveScope: func(tile int, previousScope Scope, p *Parameters) (Scope, bool) {
				return ScopeNative, true
			},
		},
	}
}

func TestNewMapRejectsNilGrid(t *testing.T) {
	_, err := NewMap(Parameters{})
	if err == nil {
		t.Fatal("expected an error for a nil Grid")
	}
}

func TestNewMapRejectsMissingGetMC(t *testing.T) {
	p := lineParams(3, 2, 2)
	p.GetMC = nil
	if _, err := NewMap(p); err == nil {
		t.Fatal("expected an error when GetMC is missing in non-jumbo mode")
	}
}

func TestNewMapRejectsDangerAndFuelTogether(t *testing.T) {
	p := lineParams(3, 2, 2)
	p.IsPosDangerous = func(tile int, k Knowledge, p *Parameters) bool { return false }
	p.GetMovesLeftReq = func(tile int, k Knowledge, p *Parameters) int { return 0 }
	if _, err := NewMap(p); err == nil {
		t.Fatal("expected an error combining danger and fuel modes")
	}
}

func TestCostToStartIsZero(t *testing.T) {
	m, err := NewMap(lineParams(5, 2, 2))
	if err != nil {
		t.Fatal(err)
	}
	cost, err := m.CostTo(0)
	if err != nil || cost != 0 {
		t.Fatalf("CostTo(start) = %d,%v, want 0,nil", cost, err)
	}
}

func TestCostToIsMonotonicAlongTheLine(t *testing.T) {
	m, err := NewMap(lineParams(6, 2, 2))
	if err != nil {
		t.Fatal(err)
	}
	prev := -1
	for tile := 0; tile < 6; tile++ {
		cost, err := m.CostTo(tile)
		if err != nil {
			t.Fatalf("CostTo(%d): %v", tile, err)
		}
		if cost == Unreachable {
			t.Fatalf("CostTo(%d) unexpectedly unreachable", tile)
		}
		if cost < prev {
			t.Fatalf("CostTo(%d) = %d, not monotonic after previous %d", tile, cost, prev)
		}
		prev = cost
	}
}

func TestCostToInvalidTile(t *testing.T) {
	m, err := NewMap(lineParams(3, 2, 2))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := m.CostTo(-1); err != ErrInvalidTile {
		t.Errorf("CostTo(-1) error = %v, want ErrInvalidTile", err)
	}
	if _, err := m.CostTo(99); err != ErrInvalidTile {
		t.Errorf("CostTo(99) error = %v, want ErrInvalidTile", err)
	}
}

func TestPathToReturnsChainEndingAtTarget(t *testing.T) {
	m, err := NewMap(lineParams(4, 2, 2))
	if err != nil {
		t.Fatal(err)
	}
	path, err := m.PathTo(3)
	if err != nil {
		t.Fatal(err)
	}
	if path.Empty() {
		t.Fatal("expected a non-empty path")
	}
	if path[0].Tile != 0 {
		t.Errorf("path[0].Tile = %d, want 0 (start)", path[0].Tile)
	}
	if path[len(path)-1].Tile != 3 {
		t.Errorf("path[last].Tile = %d, want 3", path[len(path)-1].Tile)
	}
}

func TestBehaviorIgnoreBlocksEntry(t *testing.T) {
	p := lineParams(5, 2, 2)
	p.GetTB = func(tile int, k Knowledge, p *Parameters) Behavior {
		if tile == 2 {
			return BehaviorIgnore
		}
		return BehaviorNormal
	}
	m, err := NewMap(p)
	if err != nil {
		t.Fatal(err)
	}
	cost, err := m.CostTo(2)
	if err != nil {
		t.Fatal(err)
	}
	if cost != Unreachable {
		t.Errorf("CostTo(ignored tile) = %d, want Unreachable", cost)
	}
	// Tile 4 is only reachable by passing through the ignored tile 2 on
	// this line grid, so it stays unreachable too.
	if cost, _ := m.CostTo(4); cost != Unreachable {
		t.Errorf("CostTo(4) = %d, want Unreachable (blocked by tile 2)", cost)
	}
}

func TestBehaviorDontLeaveStopsFurtherExpansion(t *testing.T) {
	p := lineParams(5, 2, 2)
	p.GetTB = func(tile int, k Knowledge, p *Parameters) Behavior {
		if tile == 2 {
			return BehaviorDontLeave
		}
		return BehaviorNormal
	}
	m, err := NewMap(p)
	if err != nil {
		t.Fatal(err)
	}
	if cost, _ := m.CostTo(2); cost == Unreachable {
		t.Fatal("tile 2 itself should remain reachable")
	}
	if cost, _ := m.CostTo(3); cost != Unreachable {
		t.Errorf("CostTo(3) = %d, want Unreachable (stuck behind a DONT_LEAVE tile)", cost)
	}
}

func TestIterateYieldsNonDecreasingCost(t *testing.T) {
	m, err := NewMap(lineParams(6, 3, 3))
	if err != nil {
		t.Fatal(err)
	}
	prev := -1
	for m.Iterate() {
		cost := m.CursorCost()
		if cost < prev {
			t.Fatalf("Iterate produced decreasing cost: %d after %d", cost, prev)
		}
		prev = cost
	}
}

func TestActionImpossibleBlocksEntry(t *testing.T) {
	p := lineParams(4, 2, 2)
	p.GetAction = func(tile int, k Knowledge, p *Parameters) Action {
		if tile == 2 {
			return ActionImpossible
		}
		return ActionNone
	}
	m, err := NewMap(p)
	if err != nil {
		t.Fatal(err)
	}
	if cost, _ := m.CostTo(2); cost != Unreachable {
		t.Errorf("CostTo(2) = %d, want Unreachable", cost)
	}
}
