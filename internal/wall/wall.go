// Package wall implements the deterministic shuffle and draw/back-wall split
// for a Taiwan 16-tile Mahjong deck, patterned on the teacher's DeckManager
// (runtime/game/engines/mahjong/material.go) but built around an injectable
// *rand.Rand instead of a process-wide source, per spec.md §5/§9.
package wall

import (
	"errors"
	"math/rand"

	"mahjong/internal/tile"
)

// ReservedCount is the size of the back wall (槓尾): the last 16 tiles of
// the shuffled deck, reserved for kong and flower replacement draws and
// never touched by a normal turn draw.
const ReservedCount = 16

// ErrWallEmpty is returned by Draw when the draw wall has been exhausted.
var ErrWallEmpty = errors.New("wall: draw wall is empty")

// ErrBackEmpty is returned by DrawBack when the back wall has been exhausted.
var ErrBackEmpty = errors.New("wall: back wall is empty")

// Wall owns the draw wall and the back wall (槓尾) for one hand.
type Wall struct {
	draw []tile.Tile // head = next draw
	back []tile.Tile // head = next replacement draw
}

// Build shuffles the concatenation of the 136-tile deck and the 8 flower
// tiles using rng, then splits off the last ReservedCount tiles as the back
// wall. rng must be supplied by the caller (session construction) — never a
// package-level default source, so games are replayable from a seed.
func Build(rng *rand.Rand) *Wall {
	deck := append(tile.BuildDeck(), tile.BuildFlowers()...)
	rng.Shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })

	back := make([]tile.Tile, ReservedCount)
	copy(back, deck[len(deck)-ReservedCount:])

	draw := make([]tile.Tile, len(deck)-ReservedCount)
	copy(draw, deck[:len(deck)-ReservedCount])

	return &Wall{draw: draw, back: back}
}

// Draw removes and returns the head tile of the draw wall.
func (w *Wall) Draw() (tile.Tile, error) {
	if len(w.draw) == 0 {
		return tile.Tile{}, ErrWallEmpty
	}
	t := w.draw[0]
	w.draw = w.draw[1:]
	return t, nil
}

// DrawBack removes and returns the head tile of the back wall (槓尾).
func (w *Wall) DrawBack() (tile.Tile, error) {
	if len(w.back) == 0 {
		return tile.Tile{}, ErrBackEmpty
	}
	t := w.back[0]
	w.back = w.back[1:]
	return t, nil
}

// DrawLen and BackLen expose remaining counts for terminal/invariant checks.
func (w *Wall) DrawLen() int { return len(w.draw) }
func (w *Wall) BackLen() int { return len(w.back) }

// Tiles returns copies of the remaining draw and back wall contents, for
// tile-conservation accounting in tests.
func (w *Wall) Tiles() (draw, back []tile.Tile) {
	draw = append(draw, w.draw...)
	back = append(back, w.back...)
	return
}
