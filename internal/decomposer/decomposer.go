// Package decomposer finds standard (5 sets + 1 pair) decompositions of a
// Taiwan Mahjong hand and recognizes the flower-based win conditions, all
// grounded on original_source/backend/engine/win_validator.py.
package decomposer

import (
	"sort"

	"mahjong/internal/tile"
)

// Set is one meld of a decomposed hand: three tiles, either a triplet (all
// equal) or a sequence (consecutive numbers of one suit).
type Set struct {
	Tiles [3]tile.Tile
}

// IsTriplet reports whether the set is three identical tiles.
func (s Set) IsTriplet() bool { return s.Tiles[0] == s.Tiles[1] && s.Tiles[1] == s.Tiles[2] }

// IsSequence reports whether the set is three consecutive numbers in one suit.
func (s Set) IsSequence() bool { return !s.IsTriplet() }

// Decomposition is a full standard-hand breakdown: the sets found purely in
// the concealed tiles plus the pair. Existing melds (chi/pong/kong already
// declared) are not repeated here — callers combine FreeSets with the
// player's existing melds to reach the required 5 sets.
type Decomposition struct {
	FreeSets []Set
	Pair     [2]tile.Tile
}

// Decompose tries to break concealedTiles into (5-existingMelds) sets plus
// one pair. It returns ok=false if no such decomposition exists.
//
// Ported from win_validator.py's decompose_hand/_find_decomposition/
// _decompose_sets: extract a candidate pair first (trying each distinct
// tile value once, per the sorted run), then backtrack the remainder into
// triplets/sequences, always consuming the lowest remaining tile first.
func Decompose(concealedTiles []tile.Tile, existingMelds int) (Decomposition, bool) {
	setsNeeded := 5 - existingMelds
	sorted := append([]tile.Tile(nil), concealedTiles...)
	sort.Slice(sorted, func(i, j int) bool { return tile.Less(sorted[i], sorted[j]) })
	return findDecomposition(sorted, setsNeeded)
}

func findDecomposition(sorted []tile.Tile, setsNeeded int) (Decomposition, bool) {
	expected := setsNeeded*3 + 2
	if len(sorted) != expected {
		return Decomposition{}, false
	}

	seenPair := make(map[tile.Tile]bool)
	for i := 0; i+1 < len(sorted); i++ {
		t := sorted[i]
		if seenPair[t] {
			continue
		}
		if sorted[i+1] != t {
			continue
		}
		seenPair[t] = true

		remaining := make([]tile.Tile, 0, len(sorted)-2)
		remaining = append(remaining, sorted[:i]...)
		remaining = append(remaining, sorted[i+2:]...)

		if sets, ok := decomposeSets(remaining, setsNeeded, nil); ok {
			return Decomposition{FreeSets: sets, Pair: [2]tile.Tile{t, t}}, true
		}
	}
	return Decomposition{}, false
}

// decomposeSets consumes the sorted-first tile on every branch, matching the
// Python's "always consume tiles[0]" pruning: any valid decomposition must
// place the smallest remaining tile in some set, so trying only branches
// that do so is complete, not just a heuristic.
func decomposeSets(tiles []tile.Tile, setsNeeded int, found []Set) ([]Set, bool) {
	if setsNeeded == 0 {
		if len(tiles) == 0 {
			return found, true
		}
		return nil, false
	}
	if len(tiles) == 0 {
		return nil, false
	}

	first := tiles[0]

	if count(tiles, first) >= 3 {
		remaining := removeN(tiles, first, 3)
		next := append(append([]Set(nil), found...), Set{Tiles: [3]tile.Tile{first, first, first}})
		if result, ok := decomposeSets(remaining, setsNeeded-1, next); ok {
			return result, true
		}
	}

	if first.IsNumber() && first.Value() <= 7 {
		t2 := tile.NewNumber(first.Suit(), first.Value()+1)
		t3 := tile.NewNumber(first.Suit(), first.Value()+2)
		if contains(tiles, t2) && contains(tiles, t3) {
			remaining := removeOne(removeOne(removeOne(tiles, first), t2), t3)
			next := append(append([]Set(nil), found...), Set{Tiles: [3]tile.Tile{first, t2, t3}})
			if result, ok := decomposeSets(remaining, setsNeeded-1, next); ok {
				return result, true
			}
		}
	}

	return nil, false
}

func count(tiles []tile.Tile, t tile.Tile) int {
	n := 0
	for _, x := range tiles {
		if x == t {
			n++
		}
	}
	return n
}

func contains(tiles []tile.Tile, t tile.Tile) bool {
	for _, x := range tiles {
		if x == t {
			return true
		}
	}
	return false
}

func removeOne(tiles []tile.Tile, t tile.Tile) []tile.Tile {
	out := make([]tile.Tile, 0, len(tiles))
	removed := false
	for _, x := range tiles {
		if !removed && x == t {
			removed = true
			continue
		}
		out = append(out, x)
	}
	return out
}

func removeN(tiles []tile.Tile, t tile.Tile, n int) []tile.Tile {
	out := append([]tile.Tile(nil), tiles...)
	for i := 0; i < n; i++ {
		out = removeOne(out, t)
	}
	return out
}

// IsStandardWin reports whether concealedTiles + existingMelds form a valid
// standard winning hand (5 sets + pair).
func IsStandardWin(concealedTiles []tile.Tile, existingMelds int) bool {
	_, ok := Decompose(concealedTiles, existingMelds)
	return ok
}

// IsBajianGuohai reports 八仙過海: the player holds all 8 flower tiles.
func IsBajianGuohai(flowers []tile.Tile) bool {
	if len(flowers) != 8 {
		return false
	}
	seen := make(map[int]bool, 8)
	for _, f := range flowers {
		seen[f.FlowerIndex()] = true
	}
	return len(seen) == 8
}

// IsQiqiangYi reports 七搶一: the player holds 7 flowers and claims the 8th.
func IsQiqiangYi(flowers []tile.Tile, incoming tile.Tile) bool {
	if !incoming.IsFlower() || len(flowers) != 7 {
		return false
	}
	seen := make(map[int]bool, 8)
	for _, f := range flowers {
		seen[f.FlowerIndex()] = true
	}
	seen[incoming.FlowerIndex()] = true
	return len(seen) == 8
}

// WinKind names which condition produced a win.
type WinKind int

const (
	WinNone WinKind = iota
	WinStandard
	WinBajianGuohai
	WinQiqiangYi
)

// WinResult carries the win kind and, for a standard win, the decomposition
// that proves it (the scorer needs the actual sets to compute yaku).
type WinResult struct {
	Kind WinKind
	Hand Decomposition
}

// CheckWinningHand runs every win condition in priority order, mirroring
// win_validator.py's is_winning_hand. isFlowerSteal restricts the check to
// 七搶一 only (a robbed flower can never complete a standard hand or 八仙過海
// in the same instant — those require the tile to already be in the
// player's own flower set).
func CheckWinningHand(
	concealedTiles []tile.Tile,
	existingMelds int,
	flowers []tile.Tile,
	winTile tile.Tile,
	isFlowerSteal bool,
) WinResult {
	if isFlowerSteal {
		if IsQiqiangYi(flowers, winTile) {
			return WinResult{Kind: WinQiqiangYi}
		}
		return WinResult{Kind: WinNone}
	}

	flowerSet := append([]tile.Tile(nil), flowers...)
	if winTile.IsFlower() {
		flowerSet = append(flowerSet, winTile)
	}
	if IsBajianGuohai(flowerSet) {
		return WinResult{Kind: WinBajianGuohai}
	}

	fullHand := append(append([]tile.Tile(nil), concealedTiles...), winTile)
	if dec, ok := Decompose(fullHand, existingMelds); ok {
		return WinResult{Kind: WinStandard, Hand: dec}
	}

	return WinResult{Kind: WinNone}
}
