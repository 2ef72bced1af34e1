// Package shanten computes the shanten number (tiles away from tenpai) for a
// Taiwan 16-tile Mahjong hand, ported from
// original_source/backend/ai/shanten.py's array-based backtracking search.
package shanten

import (
	"sort"

	"mahjong/internal/decomposer"
	"mahjong/internal/tile"
)

// Number returns the shanten number for concealedTiles given the number of
// sets already fixed by existing melds (chi/pong/kong):
//
//	-1 = winning hand
//	 0 = tenpai (one tile from winning)
//	 n = n away from tenpai
func Number(concealedTiles []tile.Tile, existingMelds int) int {
	setsNeeded := 5 - existingMelds
	counts := handToCounts(concealedTiles)
	best := 2 * setsNeeded
	best = search(counts, 0, setsNeeded, 0, 0, false, best)
	return best
}

func handToCounts(tiles []tile.Tile) [tile.NumTileTypes]int {
	var counts [tile.NumTileTypes]int
	for _, t := range tiles {
		counts[t.Index34()]++
	}
	return counts
}

// search mirrors _search: mutate-then-restore recursion over a fixed-size
// count array, tracking complete sets (mentsu), partial sets (taatsu), and
// whether a pair (jantai) has been committed as the hand's head.
func search(counts [tile.NumTileTypes]int, idx, setsNeeded, mentsu, taatsu int, jantai bool, best int) int {
	effectiveTaatsu := min(taatsu, setsNeeded-mentsu)
	jantaiBonus := 0
	if jantai {
		jantaiBonus = 1
	}
	s := 2*(setsNeeded-mentsu) - effectiveTaatsu - jantaiBonus
	if s < best {
		best = s
	}
	if best <= -1 {
		return best
	}

	for idx < tile.NumTileTypes && counts[idx] == 0 {
		idx++
	}
	if idx >= tile.NumTileTypes {
		return best
	}

	remaining := 0
	for i := idx; i < tile.NumTileTypes; i++ {
		remaining += counts[i]
	}
	maxNewMentsu := remaining / 3
	maxNewTaatsu := (remaining - maxNewMentsu*3) / 2
	theoreticalBest := 2*(setsNeeded-mentsu-maxNewMentsu) - min(taatsu+maxNewTaatsu, setsNeeded-mentsu-maxNewMentsu) - 1
	if theoreticalBest >= best {
		return best
	}

	// Triplet.
	if counts[idx] >= 3 {
		counts[idx] -= 3
		best = search(counts, idx, setsNeeded, mentsu+1, taatsu, jantai, best)
		counts[idx] += 3
	}

	// Sequence (number tiles only, value <= 7 within suit).
	if idx < 27 && idx%9 <= 6 {
		if counts[idx] >= 1 && counts[idx+1] >= 1 && counts[idx+2] >= 1 {
			counts[idx]--
			counts[idx+1]--
			counts[idx+2]--
			best = search(counts, idx, setsNeeded, mentsu+1, taatsu, jantai, best)
			counts[idx]++
			counts[idx+1]++
			counts[idx+2]++
		}
	}

	// Pair as jantai (the hand's head).
	if !jantai && counts[idx] >= 2 {
		counts[idx] -= 2
		best = search(counts, idx, setsNeeded, mentsu, taatsu, true, best)
		counts[idx] += 2
	}

	if taatsu < setsNeeded-mentsu {
		// Pair as taatsu, once jantai is already settled.
		if jantai && counts[idx] >= 2 {
			counts[idx] -= 2
			best = search(counts, idx, setsNeeded, mentsu, taatsu+1, jantai, best)
			counts[idx] += 2
		}

		// Adjacent sequence partial.
		if idx < 27 && idx%9 <= 7 {
			if counts[idx] >= 1 && counts[idx+1] >= 1 {
				counts[idx]--
				counts[idx+1]--
				best = search(counts, idx, setsNeeded, mentsu, taatsu+1, jantai, best)
				counts[idx]++
				counts[idx+1]++
			}
		}

		// Skip-one sequence partial.
		if idx < 27 && idx%9 <= 6 {
			if counts[idx] >= 1 && counts[idx+2] >= 1 {
				counts[idx]--
				counts[idx+2]--
				best = search(counts, idx, setsNeeded, mentsu, taatsu+1, jantai, best)
				counts[idx]++
				counts[idx+2]++
			}
		}
	}

	// Skip this tile type entirely.
	saved := counts[idx]
	counts[idx] = 0
	best = search(counts, idx+1, setsNeeded, mentsu, taatsu, jantai, best)
	counts[idx] = saved

	return best
}

// TenpaiTiles returns the tile types that would complete concealedTiles (the
// draw/claim that brings shanten to -1). Only meaningful when the hand is
// already tenpai; returns nil otherwise.
func TenpaiTiles(concealedTiles []tile.Tile, existingMelds int) []tile.Tile {
	if Number(concealedTiles, existingMelds) != 0 {
		return nil
	}

	var winners []tile.Tile
	for idx := 0; idx < tile.NumTileTypes; idx++ {
		candidate := tile.FromIndex34(idx)
		trial := append(append([]tile.Tile(nil), concealedTiles...), candidate)
		if decomposer.IsStandardWin(trial, existingMelds) {
			winners = append(winners, candidate)
		}
	}
	sort.Slice(winners, func(i, j int) bool { return tile.Less(winners[i], winners[j]) })
	return winners
}
