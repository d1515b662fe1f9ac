package pathcore

import "testing"

func TestTurnAndMovesLeft(t *testing.T) {
	cases := []struct {
		cost, moveRate, wantTurn, wantMovesLeft int
	}{
		{0, 3, 0, 3},
		{1, 3, 0, 2},
		{2, 3, 0, 1},
		{3, 3, 1, 3},
		{5, 3, 1, 1},
		{-1, 3, 0, 1}, // negative cost from start bias still yields an in-range moves-left
	}
	for _, c := range cases {
		if got := turnOf(c.cost, c.moveRate); got != c.wantTurn {
			t.Errorf("turnOf(%d,%d) = %d, want %d", c.cost, c.moveRate, got, c.wantTurn)
		}
		if got := movesLeftOf(c.cost, c.moveRate); got != c.wantMovesLeft {
			t.Errorf("movesLeftOf(%d,%d) = %d, want %d", c.cost, c.moveRate, got, c.wantMovesLeft)
		}
	}
}

func TestMovesLeftAlwaysInRange(t *testing.T) {
	for moveRate := 1; moveRate <= 5; moveRate++ {
		for cost := -10; cost <= 10; cost++ {
			ml := movesLeftOf(cost, moveRate)
			if ml < 1 || ml > moveRate {
				t.Errorf("movesLeftOf(%d,%d) = %d, out of range [1,%d]", cost, moveRate, ml, moveRate)
			}
		}
	}
}

func TestPriorityKeyOrdersByCostFirst(t *testing.T) {
	lowCostHighEC := priorityKey(1, 1000, 4)
	highCostLowEC := priorityKey(2, 0, 4)
	if lowCostHighEC >= highCostLowEC {
		t.Errorf("a cheaper cost should always win regardless of extra cost: %d >= %d", lowCostHighEC, highCostLowEC)
	}
}

func TestPriorityKeyTiebreaksByExtraCost(t *testing.T) {
	a := priorityKey(5, 1, 4)
	b := priorityKey(5, 2, 4)
	if a >= b {
		t.Errorf("equal cost should order by extra cost: priorityKey(5,1,_)=%d should be < priorityKey(5,2,_)=%d", a, b)
	}
}

func TestStartBiasCanBeNegative(t *testing.T) {
	p := &Parameters{MoveRate: 3, MovesLeftInitially: 5}
	if got := startBias(p); got != -2 {
		t.Errorf("startBias() = %d, want -2", got)
	}
}
