package tile

import "testing"

func TestParseStringRoundTrip(t *testing.T) {
	cases := []string{
		"1m", "5m", "9m", "1p", "5p", "9p", "1s", "5s", "9s",
		"E", "S", "W", "N",
		"C", "F", "B",
		"f1", "f2", "f3", "f4", "f5", "f6", "f7", "f8",
	}
	for _, s := range cases {
		tl, err := Parse(s)
		if err != nil {
			t.Fatalf("Parse(%q): unexpected error: %v", s, err)
		}
		if got := tl.String(); got != s {
			t.Fatalf("Parse(%q).String() = %q, want %q", s, got, s)
		}
	}
}

func TestParseInvalid(t *testing.T) {
	cases := []string{"", "0m", "10m", "x", "mm", "f0", "f9", "Z"}
	for _, s := range cases {
		if _, err := Parse(s); err == nil {
			t.Fatalf("Parse(%q): expected error, got none", s)
		}
	}
}

func TestMustParsePanicsOnInvalid(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected MustParse to panic on an invalid tile string")
		}
	}()
	MustParse("bogus")
}

func TestParseAll(t *testing.T) {
	got, err := ParseAll("1m2m3m 4p 5s5s E")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []Tile{
		NewNumber(SuitMan, 1), NewNumber(SuitMan, 2), NewNumber(SuitMan, 3),
		NewNumber(SuitPin, 4),
		NewNumber(SuitSou, 5), NewNumber(SuitSou, 5),
		NewWind(WindEast),
	}
	if len(got) != len(want) {
		t.Fatalf("ParseAll: got %d tiles, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ParseAll[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestIndex34Bijection(t *testing.T) {
	for idx := 0; idx < NumTileTypes; idx++ {
		tl := FromIndex34(idx)
		if got := tl.Index34(); got != idx {
			t.Fatalf("FromIndex34(%d).Index34() = %d, want %d", idx, got, idx)
		}
	}
}

func TestIndex34Boundaries(t *testing.T) {
	cases := []struct {
		tl  Tile
		idx int
	}{
		{NewNumber(SuitMan, 1), 0},
		{NewNumber(SuitMan, 9), 8},
		{NewNumber(SuitPin, 1), 9},
		{NewNumber(SuitPin, 9), 17},
		{NewNumber(SuitSou, 1), 18},
		{NewNumber(SuitSou, 9), 26},
		{NewWind(WindEast), 27},
		{NewWind(WindNorth), 30},
		{NewDragon(DragonRed), 31},
		{NewDragon(DragonWhite), 33},
	}
	for _, c := range cases {
		if got := c.tl.Index34(); got != c.idx {
			t.Fatalf("%v.Index34() = %d, want %d", c.tl, got, c.idx)
		}
	}
}

func TestIndex34PanicsOnFlower(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected Index34 to panic on a flower tile")
		}
	}()
	NewFlower(0).Index34()
}

func TestPredicates(t *testing.T) {
	if !MustParse("5m").IsNumber() {
		t.Fatalf("5m should be a number tile")
	}
	if !MustParse("E").IsWind() || !MustParse("E").IsHonor() {
		t.Fatalf("E should be a wind and an honor tile")
	}
	if !MustParse("C").IsDragon() || !MustParse("C").IsHonor() {
		t.Fatalf("C should be a dragon and an honor tile")
	}
	if !MustParse("f1").IsFlower() {
		t.Fatalf("f1 should be a flower tile")
	}
	if MustParse("5m").IsHonor() {
		t.Fatalf("5m should not be an honor tile")
	}
}

func TestBuildDeckSizeAndCounts(t *testing.T) {
	deck := BuildDeck()
	if len(deck) != 136 {
		t.Fatalf("BuildDeck: got %d tiles, want 136", len(deck))
	}
	counts := make(map[Tile]int)
	for _, tl := range deck {
		counts[tl]++
	}
	if len(counts) != NumTileTypes {
		t.Fatalf("BuildDeck: got %d distinct tile identities, want %d", len(counts), NumTileTypes)
	}
	for tl, n := range counts {
		if n != 4 {
			t.Fatalf("BuildDeck: tile %v appears %d times, want 4", tl, n)
		}
	}
}

func TestBuildFlowers(t *testing.T) {
	flowers := BuildFlowers()
	if len(flowers) != 8 {
		t.Fatalf("BuildFlowers: got %d tiles, want 8", len(flowers))
	}
	seen := make(map[Tile]bool)
	for _, f := range flowers {
		if !f.IsFlower() {
			t.Fatalf("BuildFlowers: %v is not a flower tile", f)
		}
		seen[f] = true
	}
	if len(seen) != 8 {
		t.Fatalf("BuildFlowers: expected 8 distinct flower tiles, got %d", len(seen))
	}
}

func TestOwnSeatFlowers(t *testing.T) {
	for seat := 0; seat < 4; seat++ {
		season, plant := OwnSeatFlowers(seat)
		if !season.IsFlower() || !plant.IsFlower() {
			t.Fatalf("seat %d: expected flower tiles, got %v / %v", seat, season, plant)
		}
		if season.FlowerIndex() != seat {
			t.Fatalf("seat %d: season flower index = %d, want %d", seat, season.FlowerIndex(), seat)
		}
		if plant.FlowerIndex() != seat+4 {
			t.Fatalf("seat %d: plant flower index = %d, want %d", seat, plant.FlowerIndex(), seat+4)
		}
	}
}

func TestLessOrdersSuitsBeforeHonors(t *testing.T) {
	if !Less(MustParse("9s"), MustParse("E")) {
		t.Fatalf("number tiles should sort before wind tiles")
	}
	if !Less(MustParse("E"), MustParse("C")) {
		t.Fatalf("wind tiles should sort before dragon tiles")
	}
	if !Less(MustParse("1m"), MustParse("9m")) {
		t.Fatalf("within a suit, tiles should sort by value")
	}
}
