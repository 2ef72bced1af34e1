// Package deal implements initial hand distribution and flower replacement,
// ported from original_source/backend/engine/deal.py.
package deal

import (
	"errors"
	"fmt"

	"mahjong/internal/tile"
	"mahjong/internal/wall"
)

// ErrWallExhausted is returned when neither the back wall nor the draw wall
// has a tile left to serve a flower replacement.
var ErrWallExhausted = errors.New("deal: wall exhausted during flower replacement")

// InitialHands deals 4 rounds of 4 tiles to each player, counter-clockwise
// starting at dealer, then one extra tile to the dealer (17 tiles; 16 for
// everyone else). Mirrors deal_initial_hands.
func InitialHands(w *wall.Wall, dealer int) ([4][]tile.Tile, error) {
	var hands [4][]tile.Tile
	order := seatOrder(dealer)

	for round := 0; round < 4; round++ {
		for _, p := range order {
			for i := 0; i < 4; i++ {
				t, err := w.Draw()
				if err != nil {
					return hands, fmt.Errorf("deal: initial hand for seat %d: %w", p, err)
				}
				hands[p] = append(hands[p], t)
			}
		}
	}

	extra, err := w.Draw()
	if err != nil {
		return hands, fmt.Errorf("deal: dealer extra tile: %w", err)
	}
	hands[dealer] = append(hands[dealer], extra)

	return hands, nil
}

func seatOrder(dealer int) [4]int {
	var order [4]int
	for i := 0; i < 4; i++ {
		order[i] = (dealer + i) % 4
	}
	return order
}

// ReplaceFlowers processes flower replacement in dealer-first,
// counter-clockwise order: every flower tile in a player's hand moves to
// their flower area and is replaced from the back wall, recursing if the
// replacement is itself a flower. Mirrors flower_replacement /
// _replace_flowers_for_player.
//
// Supplemented per original_source's _draw_replacement fallback (not
// spelled out in deal.py, which assumes an inexhaustible back wall): if the
// back wall runs dry mid-replacement, replacements continue to be drawn
// from the main draw wall instead of failing the deal outright.
func ReplaceFlowers(w *wall.Wall, dealer int, hands *[4][]tile.Tile, flowers *[4][]tile.Tile) error {
	for _, p := range seatOrder(dealer) {
		if err := replaceForPlayer(w, &hands[p], &flowers[p]); err != nil {
			return fmt.Errorf("deal: flower replacement for seat %d: %w", p, err)
		}
	}
	return nil
}

func replaceForPlayer(w *wall.Wall, hand *[]tile.Tile, playerFlowers *[]tile.Tile) error {
	for {
		var kept []tile.Tile
		var drawn int
		for _, t := range *hand {
			if t.IsFlower() {
				*playerFlowers = append(*playerFlowers, t)
				drawn++
			} else {
				kept = append(kept, t)
			}
		}
		*hand = kept
		if drawn == 0 {
			return nil
		}
		for i := 0; i < drawn; i++ {
			t, err := drawReplacement(w)
			if err != nil {
				return err
			}
			*hand = append(*hand, t)
		}
	}
}

func drawReplacement(w *wall.Wall) (tile.Tile, error) {
	t, err := w.DrawBack()
	if err == nil {
		return t, nil
	}
	if !errors.Is(err, wall.ErrBackEmpty) {
		return tile.Tile{}, err
	}
	t, err = w.Draw()
	if err != nil {
		return tile.Tile{}, ErrWallExhausted
	}
	return t, nil
}

// CheckDealtFlowerWin reports 配牌花胡: the player was dealt all 8 flower
// tiles before play even starts. Mirrors check_peipai_flower_hu.
func CheckDealtFlowerWin(playerFlowers []tile.Tile) bool {
	return len(playerFlowers) == 8
}
