package pathcore

import "testing"

func TestPathEmpty(t *testing.T) {
	var p Path
	if !p.Empty() {
		t.Error("nil Path should be Empty")
	}
	p = Path{{}}
	if p.Empty() {
		t.Error("non-empty Path should not be Empty")
	}
}

func TestMakePositionNormalizesMovesLeft(t *testing.T) {
	p := &Parameters{MoveRate: 3, StartTile: -1, MovesLeftInitially: 3}
	pos := makePosition(p, 5, 7, 3, 1, DirE, DirNone)
	if pos.Turn != 2 {
		t.Errorf("Turn = %d, want 2", pos.Turn)
	}
	if pos.MovesLeft < 1 || pos.MovesLeft > 3 {
		t.Errorf("MovesLeft = %d, want in [1,3]", pos.MovesLeft)
	}
}

func TestMakePositionSpecialCasesStart(t *testing.T) {
	p := &Parameters{MoveRate: 6, StartTile: 0, MovesLeftInitially: 2}
	bias := startBias(p)
	pos := makePosition(p, 0, bias, 0, p.FuelLeftInitially, DirNone, DirNone)
	if pos.MovesLeft != 2 {
		t.Errorf("start MovesLeft = %d, want 2 (moves_left_initially)", pos.MovesLeft)
	}
	if pos.TotalMC != 0 {
		t.Errorf("start TotalMC = %d, want 0", pos.TotalMC)
	}
	if pos.Turn != 0 {
		t.Errorf("start Turn = %d, want 0", pos.Turn)
	}
}

func TestMakePositionRecoversMovesLeftFromBiasedCost(t *testing.T) {
	// move_rate=6, moves_left_initially=2 (bias=4): a tile reached at
	// biased cost 5 is one move past the start, leaving 1 move this turn.
	p := &Parameters{MoveRate: 6, StartTile: -1, MovesLeftInitially: 2}
	pos := makePosition(p, 7, 5, 0, p.FuelLeftInitially, DirNone, DirNone)
	if pos.MovesLeft != 1 {
		t.Errorf("MovesLeft = %d, want 1", pos.MovesLeft)
	}
	if pos.TotalMC != 1 {
		t.Errorf("TotalMC = %d, want 1 (biased cost 5 minus bias 4)", pos.TotalMC)
	}
}

func TestFuelLeftForCostConstantWithoutFuelRule(t *testing.T) {
	p := &Parameters{Fuel: 1, FuelLeftInitially: 1, MoveRate: 2}
	if got := fuelLeftForCost(p, 40); got != 1 {
		t.Errorf("fuelLeftForCost with no fuel rule = %d, want 1", got)
	}
}

func TestFuelLeftForCostDecreasesByTurn(t *testing.T) {
	p := &Parameters{Fuel: 5, FuelLeftInitially: 5, MoveRate: 2}
	if got := fuelLeftForCost(p, 0); got != 5 {
		t.Errorf("fuelLeftForCost(0) = %d, want 5", got)
	}
	if got := fuelLeftForCost(p, 4); got != 3 {
		t.Errorf("fuelLeftForCost(4) = %d, want 3", got)
	}
	if got := fuelLeftForCost(p, 100); got != 0 {
		t.Errorf("fuelLeftForCost(100) = %d, want 0 (floored)", got)
	}
}
