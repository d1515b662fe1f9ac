package pathcore

import "testing"

func reverseLineBase(n, target int) Parameters {
	p := lineParams(n, 0, 0) // MoveRate/MovesLeftInitially are overridden per query
	p.StartTile = target
	return p
}

func TestReverseMapMatchesForwardFinder(t *testing.T) {
	const n = 6
	rm, err := NewReverseMap(reverseLineBase(n, 5), 10)
	if err != nil {
		t.Fatal(err)
	}
	sig := ReverseSignature{Target: 5, MoveRate: 2}

	for from := 0; from < n; from++ {
		revCost, err := rm.CostFrom(from, sig, 2, 2)
		if err != nil {
			t.Fatalf("CostFrom(%d): %v", from, err)
		}

		fwd := lineParams(n, 2, 2)
		fwd.StartTile = from
		fm, err := NewMap(fwd)
		if err != nil {
			t.Fatal(err)
		}
		fwdCost, err := fm.CostTo(5)
		if err != nil {
			t.Fatal(err)
		}
		if revCost != fwdCost {
			t.Errorf("from %d: reverse cost = %d, forward cost = %d, want equal", from, revCost, fwdCost)
		}
	}
}

func TestReverseMapCachesBySignature(t *testing.T) {
	rm, err := NewReverseMap(reverseLineBase(6, 5), 10)
	if err != nil {
		t.Fatal(err)
	}
	sig := ReverseSignature{Target: 5, MoveRate: 2}
	if _, err := rm.CostFrom(0, sig, 2, 2); err != nil {
		t.Fatal(err)
	}
	if len(rm.byKey) != 1 {
		t.Fatalf("byKey has %d entries, want 1 after a single signature's first query", len(rm.byKey))
	}
	if _, err := rm.CostFrom(1, sig, 2, 2); err != nil {
		t.Fatal(err)
	}
	if len(rm.byKey) != 1 {
		t.Errorf("byKey has %d entries, want 1 — same signature should reuse the cached finder", len(rm.byKey))
	}
}

func TestReverseMapHonorsMaxTurns(t *testing.T) {
	const n = 10
	rm, err := NewReverseMap(reverseLineBase(n, 9), 0)
	if err != nil {
		t.Fatal(err)
	}
	sig := ReverseSignature{Target: 9, MoveRate: 2}
	cost, err := rm.CostFrom(0, sig, 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	if cost != Unreachable {
		t.Errorf("CostFrom with maxTurns=0 over a long distance = %d, want Unreachable", cost)
	}
}
