package session

import (
	"math/rand"
	"testing"

	"mahjong/internal/tile"
	"mahjong/internal/wall"
)

func hand(s string) []tile.Tile {
	ts, err := tile.ParseAll(s)
	if err != nil {
		panic(err)
	}
	return ts
}

func TestStartHandDealsAndAdvancesToPlay(t *testing.T) {
	s := New(0, tile.NewWind(tile.WindEast), 0, [4]int{0, 0, 0, 0})
	if err := s.StartHand(rand.New(rand.NewSource(11))); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Phase != PhasePlay {
		t.Fatalf("phase = %v, want PhasePlay", s.Phase)
	}
	if s.SubPhase != SubActiveTurn {
		t.Fatalf("sub-phase = %v, want SubActiveTurn", s.SubPhase)
	}
	if s.CurrentPlayer != 0 {
		t.Fatalf("current player = %d, want dealer 0", s.CurrentPlayer)
	}
	if len(s.Players[0].Hand) != 17 {
		t.Fatalf("dealer hand size = %d, want 17", len(s.Players[0].Hand))
	}
	for seat := 1; seat < 4; seat++ {
		if len(s.Players[seat].Hand) != 16 {
			t.Fatalf("seat %d hand size = %d, want 16", seat, len(s.Players[seat].Hand))
		}
	}
}

func TestStartHandLeavesNoFlowersInAnyHand(t *testing.T) {
	s := New(1, tile.NewWind(tile.WindEast), 0, [4]int{0, 0, 0, 0})
	if err := s.StartHand(rand.New(rand.NewSource(99))); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for seat, p := range s.Players {
		for _, tl := range p.Hand {
			if tl.IsFlower() {
				t.Fatalf("seat %d: flower %v left in hand after deal", seat, tl)
			}
		}
	}
}

// newClaimTestSession builds a minimal in-PhasePlay/SubClaim session with
// the exact hands from spec Scenario D so claim-priority arbitration can be
// exercised without depending on a particular shuffle.
func newClaimTestSession() *Session {
	s := New(0, tile.NewWind(tile.WindEast), 0, [4]int{0, 0, 0, 0})
	s.Phase = PhasePlay
	s.SubPhase = SubClaim
	s.Players[1].Hand = hand("4m 6m 1p 1p 2s 2s 3s 4s 5s 6s 7s 8s 9s E E")
	s.Players[2].Hand = hand("5m 5m 1p 1p 2s 2s 3s 4s 5s 6s 7s 8s 9s E E")
	s.Players[3].Hand = hand("1p 1p 2s 2s 3s 4s 5s 6s 7s 8s 9s E E C C")
	discard := tile.MustParse("5m")
	s.pendingDiscard = &discard
	s.pendingDiscarder = 0
	return s
}

func TestClaimPriorityScenarioD(t *testing.T) {
	s := newClaimTestSession()

	if err := s.Step(Action{Kind: ActionChi, Tile: tile.MustParse("5m"),
		Combo: [3]tile.Tile{tile.MustParse("4m"), tile.MustParse("5m"), tile.MustParse("6m")},
		HasCombo: true, Player: 1}); err != nil {
		t.Fatalf("player 1 chi intent should be legal: %v", err)
	}
	if err := s.Step(Action{Kind: ActionPong, Tile: tile.MustParse("5m"), Player: 2}); err != nil {
		t.Fatalf("player 2 pong intent should be legal: %v", err)
	}
	if err := s.Step(Action{Kind: ActionPass, Player: 3}); err != nil {
		t.Fatalf("player 3 pass should be legal: %v", err)
	}

	if s.CurrentPlayer != 2 {
		t.Fatalf("current player = %d, want 2 (pong beats chi)", s.CurrentPlayer)
	}
	if s.SubPhase != SubActiveTurn {
		t.Fatalf("sub-phase = %v, want SubActiveTurn after claim resolves", s.SubPhase)
	}
	if len(s.Players[2].Melds) != 1 {
		t.Fatalf("expected player 2 to have 1 meld, got %d", len(s.Players[2].Melds))
	}
	if len(s.Players[2].Hand) != 13 {
		t.Fatalf("player 2 hand size after pong = %d, want 13", len(s.Players[2].Hand))
	}
}

func TestChiRestrictedToNextPlayer(t *testing.T) {
	s := newClaimTestSession()
	legal2 := s.legalClaimActions(2)
	for _, a := range legal2 {
		if a.Kind == ActionChi {
			t.Fatalf("player 2 (not next after discarder) must not get a chi option: %+v", a)
		}
	}
	legal1 := s.legalClaimActions(1)
	foundChi := false
	for _, a := range legal1 {
		if a.Kind == ActionChi {
			foundChi = true
		}
	}
	if !foundChi {
		t.Fatalf("player 1 (next after discarder) should have a chi option")
	}
}

func TestWallExhaustionOnDrawIsTerminal(t *testing.T) {
	s := New(0, tile.NewWind(tile.WindEast), 0, [4]int{0, 0, 0, 0})
	s.Phase = PhasePlay
	s.SubPhase = SubActiveTurn
	s.CurrentPlayer = 0
	s.Players[0].Hand = hand("1m 2m 3m")
	s.Wall = wall.Build(rand.New(rand.NewSource(1)))
	for s.Wall.DrawLen() > 0 {
		if _, err := s.Wall.Draw(); err != nil {
			t.Fatalf("unexpected error draining wall: %v", err)
		}
	}

	if err := s.Step(Action{Kind: ActionDraw, Player: 0}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Phase != PhaseDraw {
		t.Fatalf("phase = %v, want PhaseDraw after exhaustive draw", s.Phase)
	}
}

func TestConcealedKongRemovesTilesAddsMeldAndDrawsReplacement(t *testing.T) {
	s := New(0, tile.NewWind(tile.WindEast), 0, [4]int{0, 0, 0, 0})
	s.Phase = PhasePlay
	s.SubPhase = SubActiveTurn
	s.CurrentPlayer = 0
	s.justDrew = true
	s.lastDrawnTile = tile.MustParse("7p")
	s.Players[0].Hand = hand("7p 7p 7p 7p 1m 2m 3m")
	s.Wall = wall.Build(rand.New(rand.NewSource(3)))
	backBefore := s.Wall.BackLen()

	if err := s.Step(Action{Kind: ActionConcealedKong, Tile: tile.MustParse("7p"), Player: 0}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s.Players[0].Melds) != 1 {
		t.Fatalf("expected 1 meld after concealed kong, got %d", len(s.Players[0].Melds))
	}
	if len(s.Players[0].Hand) != 4 {
		t.Fatalf("hand size after concealed kong = %d, want 4 (3 kept + 1 non-flower replacement)", len(s.Players[0].Hand))
	}
	if s.Wall.BackLen() >= backBefore {
		t.Fatalf("expected at least one tile consumed from the back wall")
	}
}

func TestInvalidActionLeavesStateUnmodified(t *testing.T) {
	s := New(0, tile.NewWind(tile.WindEast), 0, [4]int{0, 0, 0, 0})
	s.Phase = PhasePlay
	s.SubPhase = SubActiveTurn
	s.CurrentPlayer = 0
	s.Players[0].Hand = hand("1m 2m 3m 4m 5m 6m 7m 8m 9m 1p 2p 3p 4p 5p 6p 7p")
	s.justDrew = false

	before := len(s.Players[0].Hand)
	err := s.Step(Action{Kind: ActionDiscard, Tile: tile.MustParse("1m"), Player: 0})
	if err != ErrInvalidAction {
		t.Fatalf("expected ErrInvalidAction (must draw first), got %v", err)
	}
	if len(s.Players[0].Hand) != before {
		t.Fatalf("hand mutated despite invalid action")
	}
}
