package decomposer

import (
	"testing"

	"mahjong/internal/tile"
)

func hand(s string) []tile.Tile {
	ts, err := tile.ParseAll(s)
	if err != nil {
		panic(err)
	}
	return ts
}

func TestDecomposeStandardAllSequences(t *testing.T) {
	h := hand("1m 2m 3m 4m 5m 6m 7m 8m 9m 1p 2p 3p 4p 5p 6p 5s 5s")
	dec, ok := Decompose(h, 0)
	if !ok {
		t.Fatalf("expected decomposition to succeed")
	}
	if len(dec.FreeSets) != 5 {
		t.Fatalf("expected 5 sets, got %d", len(dec.FreeSets))
	}
	if dec.Pair != [2]tile.Tile{tile.MustParse("5s"), tile.MustParse("5s")} {
		t.Fatalf("unexpected pair: %v", dec.Pair)
	}
}

func TestDecomposeStandardWithTriplets(t *testing.T) {
	h := hand("1m 1m 1m 2p 2p 2p E E E C C C 9s 9s")
	dec, ok := Decompose(h, 1)
	if !ok {
		t.Fatalf("expected decomposition to succeed")
	}
	if len(dec.FreeSets) != 4 {
		t.Fatalf("expected 4 sets, got %d", len(dec.FreeSets))
	}
}

func TestDecomposeRespectsExistingMelds(t *testing.T) {
	h := hand("1m 2m 3m 9s 9s")
	if _, ok := Decompose(h, 4); !ok {
		t.Fatalf("expected success with 4 existing melds + 1 set + pair")
	}
	if _, ok := Decompose(h, 3); ok {
		t.Fatalf("wrong length for 3 existing melds should fail")
	}
}

func TestDecomposeFails(t *testing.T) {
	h := hand("1m 2m 4m 5m 7m 8m 1p 2p 4p 5p 7p 8p 9s 9s")
	if _, ok := Decompose(h, 0); ok {
		t.Fatalf("expected decomposition to fail for non-winning shape")
	}
}

func TestIsBajianGuohai(t *testing.T) {
	var flowers []tile.Tile
	for i := 0; i < 8; i++ {
		flowers = append(flowers, tile.NewFlower(i))
	}
	if !IsBajianGuohai(flowers) {
		t.Fatalf("expected 八仙過海 with all 8 flowers")
	}
	if IsBajianGuohai(flowers[:7]) {
		t.Fatalf("7 flowers must not count as 八仙過海")
	}
}

func TestIsQiqiangYi(t *testing.T) {
	var flowers []tile.Tile
	for i := 0; i < 7; i++ {
		flowers = append(flowers, tile.NewFlower(i))
	}
	if !IsQiqiangYi(flowers, tile.NewFlower(7)) {
		t.Fatalf("expected 七搶一 claiming the 8th flower")
	}
	if IsQiqiangYi(flowers, tile.NewFlower(3)) {
		t.Fatalf("claiming a flower already held must not count")
	}
	if IsQiqiangYi(flowers, tile.MustParse("1m")) {
		t.Fatalf("claiming a non-flower tile must not count")
	}
}

func TestCheckWinningHandStandard(t *testing.T) {
	concealed := hand("1m 2m 1p 2p 3p 5s 5s")
	res := CheckWinningHand(concealed, 3, nil, tile.MustParse("3m"), false)
	if res.Kind != WinStandard {
		t.Fatalf("expected standard win, got %v", res.Kind)
	}
}

func TestCheckWinningHandFlowerSteal(t *testing.T) {
	var flowers []tile.Tile
	for i := 0; i < 7; i++ {
		flowers = append(flowers, tile.NewFlower(i))
	}
	res := CheckWinningHand(nil, 0, flowers, tile.NewFlower(7), true)
	if res.Kind != WinQiqiangYi {
		t.Fatalf("expected qiqiang_yi win, got %v", res.Kind)
	}
}

func TestCheckWinningHandNone(t *testing.T) {
	concealed := hand("1m 3m 1p 4p 7p 5s 8s")
	res := CheckWinningHand(concealed, 4, nil, tile.MustParse("9s"), false)
	if res.Kind != WinNone {
		t.Fatalf("expected no win, got %v", res.Kind)
	}
}
