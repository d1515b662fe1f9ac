package pathcore

import "testing"

// fuelLineParams builds a line grid where mlr reports 0 (refuel) for tiles
// in refuelTiles and a fixed requirement otherwise.
func fuelLineParams(n, moveRate, movesLeft, fuelTurns, requirement int, refuelTiles map[int]bool) Parameters {
	p := lineParams(n, moveRate, movesLeft)
	p.Fuel = fuelTurns
	p.FuelLeftInitially = fuelTurns
	p.GetMovesLeftReq = func(tile int, k Knowledge, p *Parameters) int {
		if refuelTiles[tile] {
			return 0
		}
		return requirement
	}
	return p
}

func TestFuelCostToStartIsZero(t *testing.T) {
	p := fuelLineParams(6, 2, 2, 2, 1, map[int]bool{0: true, 5: true})
	m, err := NewMap(p)
	if err != nil {
		t.Fatal(err)
	}
	cost, err := m.CostTo(0)
	if err != nil || cost != 0 {
		t.Fatalf("CostTo(start) = %d,%v, want 0,nil", cost, err)
	}
}

func TestFuelUnreachableWhenRequirementImpossible(t *testing.T) {
	// No tile ever satisfies an mlr of 99 on a grid where the actor has
	// at most `moveRate` moves per turn, so nothing but refuel tiles and
	// the start itself can ever be a valid terminal.
	p := fuelLineParams(6, 2, 2, 2, 99, map[int]bool{0: true})
	m, err := NewMap(p)
	if err != nil {
		t.Fatal(err)
	}
	if cost, _ := m.CostTo(3); cost != Unreachable {
		t.Errorf("CostTo(3) = %d, want Unreachable (mlr unsatisfiable)", cost)
	}
}

func TestFuelReachesNearbyRefuelPoint(t *testing.T) {
	p := fuelLineParams(4, 2, 2, 2, 1, map[int]bool{0: true, 1: true})
	m, err := NewMap(p)
	if err != nil {
		t.Fatal(err)
	}
	cost, err := m.CostTo(1)
	if err != nil {
		t.Fatal(err)
	}
	if cost == Unreachable {
		t.Fatal("an adjacent refuel point should always be reachable")
	}
}

func TestNewMapRejectsJumboWithFuel(t *testing.T) {
	p := fuelLineParams(4, 2, 2, 2, 1, map[int]bool{0: true})
	p.GetCosts = func(from int, d Direction, to, fromCost, fromEC int, toCost, toEC *int, p *Parameters) int {
		return 0
	}
	if _, err := NewMap(p); err == nil {
		t.Fatal("expected an error combining jumbo and fuel modes")
	}
}
