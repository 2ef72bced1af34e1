// Package greedy implements a shanten-minimizing baseline policy, ported
// from original_source/backend/ai/rule_based.py.
package greedy

import (
	"mahjong/internal/actions"
	"mahjong/internal/session"
	"mahjong/internal/shanten"
	"mahjong/internal/tile"
)

// Choose picks a legal action for player out of legalActions: win whenever
// legal, then the shanten-minimizing discard, then any kong, then a
// pong/chi only if it actually reduces shanten, then draw, then pass.
func Choose(s *session.Session, player int, legalActions []session.Action) session.Action {
	if len(legalActions) == 0 {
		panic("greedy: no legal actions available")
	}

	for _, a := range legalActions {
		if a.Kind == session.ActionWin {
			return a
		}
	}

	var discards []session.Action
	for _, a := range legalActions {
		if a.Kind == session.ActionDiscard {
			discards = append(discards, a)
		}
	}
	if len(discards) > 0 {
		return bestDiscard(s, player, discards)
	}

	for _, a := range legalActions {
		if a.Kind == session.ActionConcealedKong || a.Kind == session.ActionAddedKong || a.Kind == session.ActionOpenKong {
			return a
		}
	}

	hand := s.Players[player].Hand
	melds := s.Players[player].Melds
	currentShanten := shanten.Number(hand, len(melds))

	for _, a := range legalActions {
		if a.Kind != session.ActionPong && a.Kind != session.ActionChi {
			continue
		}
		simHand, simMelds, ok := simulateClaim(hand, melds, a)
		if !ok {
			continue
		}
		if shanten.Number(simHand, len(simMelds)) < currentShanten {
			return a
		}
	}

	for _, a := range legalActions {
		if a.Kind == session.ActionDraw {
			return a
		}
	}

	for _, a := range legalActions {
		if a.Kind == session.ActionPass {
			return a
		}
	}

	return legalActions[0]
}

func simulateClaim(hand []tile.Tile, melds []actions.Meld, a session.Action) ([]tile.Tile, []actions.Meld, bool) {
	sim := append([]tile.Tile(nil), hand...)

	switch a.Kind {
	case session.ActionPong:
		removed := 0
		for i := 0; i < len(sim) && removed < 2; i++ {
			if sim[i] == a.Tile {
				sim = append(sim[:i], sim[i+1:]...)
				i--
				removed++
			}
		}
		if removed < 2 {
			return nil, nil, false
		}
		newMelds := append(append([]actions.Meld(nil), melds...), actions.Meld{Type: actions.MeldPong, Tiles: []tile.Tile{a.Tile, a.Tile, a.Tile}, FromPlayer: -1})
		return sim, newMelds, true

	case session.ActionChi:
		for _, t := range a.Combo {
			if t == a.Tile {
				continue
			}
			idx := -1
			for i, h := range sim {
				if h == t {
					idx = i
					break
				}
			}
			if idx < 0 {
				return nil, nil, false
			}
			sim = append(sim[:idx], sim[idx+1:]...)
		}
		newMelds := append(append([]actions.Meld(nil), melds...), actions.Meld{Type: actions.MeldChi, Tiles: a.Combo[:], FromPlayer: -1})
		return sim, newMelds, true
	}
	return nil, nil, false
}

func bestDiscard(s *session.Session, player int, discards []session.Action) session.Action {
	hand := s.Players[player].Hand
	melds := s.Players[player].Melds

	best := discards[0]
	bestShanten := int(^uint(0) >> 1) // max int
	bestPriority := -1

	for _, a := range discards {
		sim := removeOne(hand, a.Tile)
		shantenNum := shanten.Number(sim, len(melds))

		priority := 0
		if a.Tile.IsHonor() {
			priority = 2
		} else if a.Tile.IsNumber() && (a.Tile.Value() == 1 || a.Tile.Value() == 9) {
			priority = 1
		}

		if shantenNum < bestShanten || (shantenNum == bestShanten && priority > bestPriority) {
			bestShanten = shantenNum
			best = a
			bestPriority = priority
		}
	}
	return best
}

func removeOne(hand []tile.Tile, t tile.Tile) []tile.Tile {
	out := append([]tile.Tile(nil), hand...)
	for i, h := range out {
		if h == t {
			return append(out[:i], out[i+1:]...)
		}
	}
	return out
}
