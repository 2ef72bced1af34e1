package scorer

import (
	"testing"

	"mahjong/internal/actions"
	"mahjong/internal/decomposer"
	"mahjong/internal/tile"
)

func hand(s string) []tile.Tile {
	ts, err := tile.ParseAll(s)
	if err != nil {
		panic(err)
	}
	return ts
}

// TestScenarioC mirrors spec Scenario C: five triplets (1m..5m, the last
// completed by the winning discard) plus a 9s9s pair, won by discard from
// seat 2, winner seat 1, dealer seat 0, streak 0, round wind E.
//
// spec.md's worked payment total (4 tai, 對對胡 alone) omits 門清: a fully
// concealed hand won by discard is not self-draw (not 不求) and carries no
// open melds, so scorer.py's own 門清 clause (is_concealed and not
// is_self_draw and not buqiu) awards it alongside 對對胡. This port follows
// the grounding source's full catalogue rather than the distilled worked
// example, giving 5 tai total; see DESIGN.md.
func TestScenarioC(t *testing.T) {
	concealed := hand("1m1m1m 2m2m2m 3m3m3m 4m4m4m 9s9s 5m5m")
	winTile := tile.MustParse("5m")
	full := append(append([]tile.Tile(nil), concealed...), winTile)

	dec, ok := decomposer.Decompose(full, 0)
	if !ok {
		t.Fatalf("expected a decomposition for the 對對胡 hand")
	}

	in := Input{
		Winner:        1,
		WinTile:       winTile,
		SelfDraw:      false,
		ConcealedHand: concealed,
		Decomposition: dec,
		DiscarderSeat: 2,
		SeatWind:      tile.NewWind(tile.WindSouth),
		RoundWind:     tile.NewWind(tile.WindEast),
		IsDealer:      false,
		DealerStreak:  0,
	}

	res := Score(in)

	names := map[string]int{}
	for _, y := range res.Yaku {
		names[y.Name] = y.Tai
	}
	if tai, ok := names["對對胡"]; !ok || tai != 4 {
		t.Fatalf("expected 對對胡 at 4 tai, got yaku=%v", res.Yaku)
	}
	if tai, ok := names["門清"]; !ok || tai != 1 {
		t.Fatalf("expected 門清 at 1 tai, got yaku=%v", res.Yaku)
	}

	if res.Total != 5 {
		t.Fatalf("total = %d, want 5", res.Total)
	}

	wantPayments := map[int]int{0: 0, 1: -5, 2: 5, 3: 0}
	for seat, want := range wantPayments {
		if got := res.Payments[seat]; got != want {
			t.Fatalf("payments[%d] = %d, want %d", seat, got, want)
		}
	}
}

// TestSanAnKeAwardsTwoTai exercises 三暗坎 (three concealed triplets) in
// isolation: three concealed triplets plus two sequences, won by self-draw
// so the winning tile's own triplet isn't excluded from the concealed
// count, yet stays at exactly 3 so neither 四暗坎 nor 五暗坎 preempt it.
// Regression for the 4-tai/2-tai value mixup against scorer.py:204
// (`yaku.append(("三暗坎", 2))`).
func TestSanAnKeAwardsTwoTai(t *testing.T) {
	concealed := hand("1m1m1m 2m2m2m 3m3m3m 4p5p6p 7s8s9s 5s")
	winTile := tile.MustParse("5s")
	full := append(append([]tile.Tile(nil), concealed...), winTile)

	dec, ok := decomposer.Decompose(full, 0)
	if !ok {
		t.Fatalf("expected a decomposition for the 三暗坎 hand")
	}

	in := Input{
		Winner:        0,
		WinTile:       winTile,
		SelfDraw:      true,
		ConcealedHand: concealed,
		Decomposition: dec,
		DiscarderSeat: -1,
		SeatWind:      tile.NewWind(tile.WindSouth),
		RoundWind:     tile.NewWind(tile.WindEast),
		IsDealer:      false,
		DealerStreak:  0,
	}

	res := Score(in)

	names := map[string]int{}
	for _, y := range res.Yaku {
		names[y.Name] = y.Tai
	}
	if tai, ok := names["三暗坎"]; !ok || tai != 2 {
		t.Fatalf("expected 三暗坎 at 2 tai, got yaku=%v", res.Yaku)
	}
	if has := names["四暗坎"]; has != 0 {
		t.Fatalf("四暗坎 should not fire alongside exactly 3 concealed triplets, got yaku=%v", res.Yaku)
	}
	if res.Total != 4 {
		t.Fatalf("total = %d, want 4 (三暗坎 2 + 不求 2)", res.Total)
	}
}

func TestPaymentsAlwaysBalance(t *testing.T) {
	for _, streak := range []int{0, 1, 3} {
		for _, selfDraw := range []bool{true, false} {
			p := computePayments(0, 6, selfDraw, 2, streak)
			sum := 0
			for _, v := range p {
				sum += v
			}
			if sum != 0 {
				t.Fatalf("payments do not balance: %v (sum=%d)", p, sum)
			}
		}
	}
}

func TestTotalNeverExceedsCap(t *testing.T) {
	in := Input{
		HeavenlyWin:   true,
		ConcealedHand: hand("1m1m1m 2m2m2m 3m3m3m 4m4m4m 9s9s 5m5m"),
		WinTile:       tile.MustParse("5m"),
		SelfDraw:      true,
		IsDealer:      true,
		DealerStreak:  70,
		SeatWind:      tile.NewWind(tile.WindEast),
		RoundWind:     tile.NewWind(tile.WindEast),
	}
	dec, ok := decomposer.Decompose(append(append([]tile.Tile(nil), in.ConcealedHand...), in.WinTile), 0)
	if !ok {
		t.Fatalf("expected decomposition")
	}
	in.Decomposition = dec
	in.DiscarderSeat = -1

	res := Score(in)
	if res.Total > MaxTai {
		t.Fatalf("total %d exceeds cap %d", res.Total, MaxTai)
	}
	if res.Subtotal <= MaxTai {
		t.Fatalf("test fixture should exceed the cap to exercise it, subtotal=%d", res.Subtotal)
	}
	if res.Total != MaxTai {
		t.Fatalf("total = %d, want capped at %d", res.Total, MaxTai)
	}
}

func TestSubtotalZeroBecomesOne(t *testing.T) {
	// One open chi and a discard win: neither 門清 nor 自摸 applies, and the
	// discard-completed 9s triplet is not concealed, so no yaku fires.
	melds := []actions.Meld{{Type: actions.MeldChi, Tiles: hand("1m2m3m"), FromPlayer: 3}}
	concealed := hand("4m5m6m 7m8m9m 1p2p3p 5s5s 9s9s")
	winTile := tile.MustParse("9s")
	full := append(append([]tile.Tile(nil), concealed...), winTile)
	dec, ok := decomposer.Decompose(full, len(melds))
	if !ok {
		t.Fatalf("expected decomposition")
	}

	in := Input{
		Winner:        0,
		WinTile:       winTile,
		SelfDraw:      false,
		ConcealedHand: concealed,
		Melds:         melds,
		Decomposition: dec,
		DiscarderSeat: 1,
		SeatWind:      tile.NewWind(tile.WindSouth),
		RoundWind:     tile.NewWind(tile.WindSouth),
		IsDealer:      false,
		DealerStreak:  0,
	}
	res := Score(in)
	if res.Subtotal != 1 {
		t.Fatalf("subtotal = %d, want 1 for a hand with no yaku (yaku=%v)", res.Subtotal, res.Yaku)
	}
}

func TestDetectTwoSidedWait(t *testing.T) {
	dec := decomposer.Decomposition{
		FreeSets: []decomposer.Set{{Tiles: [3]tile.Tile{tile.MustParse("3m"), tile.MustParse("4m"), tile.MustParse("5m")}}},
	}
	if !DetectTwoSidedWait(dec, tile.MustParse("3m")) {
		t.Fatalf("4m-5m waiting on 3m/6m should be two-sided when winning on the low tile")
	}

	edge := decomposer.Decomposition{
		FreeSets: []decomposer.Set{{Tiles: [3]tile.Tile{tile.MustParse("7m"), tile.MustParse("8m"), tile.MustParse("9m")}}},
	}
	if DetectTwoSidedWait(edge, tile.MustParse("7m")) {
		t.Fatalf("8m-9m waiting only on 7m is an edge wait, not two-sided")
	}

	kanchan := decomposer.Decomposition{
		FreeSets: []decomposer.Set{{Tiles: [3]tile.Tile{tile.MustParse("4m"), tile.MustParse("5m"), tile.MustParse("6m")}}},
	}
	if DetectTwoSidedWait(kanchan, tile.MustParse("5m")) {
		t.Fatalf("winning on the middle tile is a closed kanchan wait, not two-sided")
	}
}
