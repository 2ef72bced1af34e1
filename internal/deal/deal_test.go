package deal

import (
	"math/rand"
	"testing"

	"mahjong/internal/tile"
	"mahjong/internal/wall"
)

func TestInitialHandsSizes(t *testing.T) {
	w := wall.Build(rand.New(rand.NewSource(1)))
	hands, err := InitialHands(w, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for seat, h := range hands {
		want := 16
		if seat == 2 {
			want = 17
		}
		if len(h) != want {
			t.Fatalf("seat %d: got %d tiles, want %d", seat, len(h), want)
		}
	}
	if got := w.DrawLen(); got != 144-wall.ReservedCount-65 {
		t.Fatalf("draw wall should have 65 tiles consumed, got len %d", got)
	}
}

func TestReplaceFlowersMovesAllFlowersAndKeepsHandSize(t *testing.T) {
	w := wall.Build(rand.New(rand.NewSource(5)))
	hands, err := InitialHands(w, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var flowers [4][]tile.Tile
	if err := ReplaceFlowers(w, 0, &hands, &flowers); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for seat, h := range hands {
		for _, tl := range h {
			if tl.IsFlower() {
				t.Fatalf("seat %d: flower tile %v remained in hand after replacement", seat, tl)
			}
		}
		want := 16
		if seat == 0 {
			want = 17
		}
		if len(h) != want {
			t.Fatalf("seat %d: got %d tiles after replacement, want %d", seat, len(h), want)
		}
	}
}

func TestCheckDealtFlowerWin(t *testing.T) {
	var flowers []tile.Tile
	for i := 0; i < 8; i++ {
		flowers = append(flowers, tile.NewFlower(i))
	}
	if !CheckDealtFlowerWin(flowers) {
		t.Fatalf("expected 配牌花胡 with all 8 flowers dealt")
	}
	if CheckDealtFlowerWin(flowers[:7]) {
		t.Fatalf("7 flowers must not trigger 配牌花胡")
	}
}

func TestDrawReplacementFallsBackToMainWall(t *testing.T) {
	w := wall.Build(rand.New(rand.NewSource(9)))
	for w.BackLen() > 0 {
		if _, err := w.DrawBack(); err != nil {
			t.Fatalf("unexpected error draining back wall: %v", err)
		}
	}
	before := w.DrawLen()
	if _, err := drawReplacement(w); err != nil {
		t.Fatalf("expected fallback draw to succeed, got %v", err)
	}
	if w.DrawLen() != before-1 {
		t.Fatalf("expected fallback to consume from the draw wall")
	}
}
