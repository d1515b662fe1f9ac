package pathcore

import "testing"

func dangerLineParams(n, moveRate, movesLeft int, dangerousTiles map[int]bool) Parameters {
	p := lineParams(n, moveRate, movesLeft)
	p.IsPosDangerous = func(tile int, k Knowledge, p *Parameters) bool {
		return dangerousTiles[tile]
	}
	return p
}

func TestDangerousTileIsForbiddenAsTerminal(t *testing.T) {
	p := dangerLineParams(5, 3, 3, map[int]bool{2: true})
	m, err := NewMap(p)
	if err != nil {
		t.Fatal(err)
	}
	if cost, _ := m.CostTo(2); cost != Unreachable {
		t.Errorf("CostTo(dangerous tile) = %d, want Unreachable", cost)
	}
}

func TestDangerousTileIsTraversable(t *testing.T) {
	p := dangerLineParams(5, 3, 3, map[int]bool{2: true})
	m, err := NewMap(p)
	if err != nil {
		t.Fatal(err)
	}
	cost, err := m.CostTo(4)
	if err != nil {
		t.Fatal(err)
	}
	if cost == Unreachable {
		t.Fatal("a tile beyond a single dangerous tile should still be reachable")
	}
}

func TestDangerousPathPassesThroughTheDangerousTile(t *testing.T) {
	p := dangerLineParams(5, 3, 3, map[int]bool{2: true})
	m, err := NewMap(p)
	if err != nil {
		t.Fatal(err)
	}
	path, err := m.PathTo(4)
	if err != nil {
		t.Fatal(err)
	}
	if path.Empty() {
		t.Fatal("expected a non-empty path")
	}
	found := false
	for _, pos := range path {
		if pos.Tile == 2 {
			found = true
		}
	}
	if !found {
		t.Error("path to tile 4 should pass through the only route, tile 2")
	}
}

func TestSafeLineMatchesNormalFinderCost(t *testing.T) {
	danger := dangerLineParams(6, 2, 2, map[int]bool{})
	dm, err := NewMap(danger)
	if err != nil {
		t.Fatal(err)
	}
	nm, err := NewMap(lineParams(6, 2, 2))
	if err != nil {
		t.Fatal(err)
	}
	for tile := 0; tile < 6; tile++ {
		dc, _ := dm.CostTo(tile)
		nc, _ := nm.CostTo(tile)
		if dc != nc {
			t.Errorf("CostTo(%d): danger finder = %d, normal finder = %d, want equal with no dangerous tiles", tile, dc, nc)
		}
	}
}
