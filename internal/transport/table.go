package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"mahjong/internal/bus"
	"mahjong/internal/logging"
	"mahjong/internal/scorer"
	"mahjong/internal/session"
	"mahjong/internal/store"
	"mahjong/internal/tile"
)

// TableManager owns the live Session for every open table, guarding each
// with its own mutex so concurrent seats at different tables never
// contend. Mirrors runtime/game/room_manager.go's one-manager-per-room
// shape, scaled down to a single in-process map (no nats-routed ownership
// handoff between nodes).
type TableManager struct {
	mu     sync.RWMutex
	tables map[string]*table

	repo store.Repository // nil-safe: persistence is optional
	bus  *bus.Client       // nil-safe: event fan-out is optional
}

type table struct {
	mu           sync.Mutex
	sid          string
	s            *session.Session
	gameRecordID primitive.ObjectID
	round        *store.RoundRecord
}

func NewTableManager() *TableManager {
	return &TableManager{tables: make(map[string]*table)}
}

// WithRepository attaches a persistence layer; tables opened afterward
// save a RoundRecord when their hand finishes.
func (tm *TableManager) WithRepository(repo store.Repository) *TableManager {
	tm.repo = repo
	return tm
}

// WithBus attaches an event publisher; tables opened afterward publish a
// HandFinished event when their hand finishes.
func (tm *TableManager) WithBus(b *bus.Client) *TableManager {
	tm.bus = b
	return tm
}

// Open starts a new hand for tableID. seed comes from the caller (the
// command layer), never from a process-wide default source.
func (tm *TableManager) Open(tableID string, dealer int, roundWind tile.Tile, roundNumber int, streaks [4]int, seed int64) error {
	s := session.New(dealer, roundWind, roundNumber, streaks)
	if err := s.StartHand(rand.New(rand.NewSource(seed))); err != nil {
		return fmt.Errorf("transport: start hand for table %s: %w", tableID, err)
	}

	gameRecordID := primitive.NewObjectID()
	round := store.NewRoundRecord(gameRecordID, roundNumber, roundWind.String(), dealer)

	tm.mu.Lock()
	tm.tables[tableID] = &table{sid: tableID, s: s, gameRecordID: gameRecordID, round: round}
	tm.mu.Unlock()
	return nil
}

func (tm *TableManager) get(tableID string) (*table, bool) {
	tm.mu.RLock()
	defer tm.mu.RUnlock()
	t, ok := tm.tables[tableID]
	return t, ok
}

// actionRequest is the wire shape for every action-kind message; unused
// fields are simply left at their zero value by the client.
type actionRequest struct {
	Tile  string    `json:"tile,omitempty"`
	Combo [3]string `json:"combo,omitempty"`
}

// stateSnapshot is what gets broadcast to a table after every Step: enough
// for clients to re-render without leaking opponents' concealed hands.
type stateSnapshot struct {
	Phase         string   `json:"phase"`
	SubPhase      string   `json:"subPhase"`
	CurrentPlayer int      `json:"currentPlayer"`
	LastDiscard   string   `json:"lastDiscard,omitempty"`
	Legal         []string `json:"legalForCurrentPlayer,omitempty"`
}

func kindName(k session.ActionKind) string {
	switch k {
	case session.ActionDraw:
		return "draw"
	case session.ActionDiscard:
		return "discard"
	case session.ActionChi:
		return "chi"
	case session.ActionPong:
		return "pong"
	case session.ActionOpenKong:
		return "open_kong"
	case session.ActionAddedKong:
		return "added_kong"
	case session.ActionConcealedKong:
		return "concealed_kong"
	case session.ActionWin:
		return "win"
	default:
		return "pass"
	}
}

func parseCombo(raw [3]string) (combo [3]tile.Tile, has bool, err error) {
	if raw[0] == "" && raw[1] == "" && raw[2] == "" {
		return combo, false, nil
	}
	for i, s := range raw {
		t, perr := tile.Parse(s)
		if perr != nil {
			return combo, false, perr
		}
		combo[i] = t
	}
	return combo, true, nil
}

// RegisterHandlers wires every action kind onto hub, dispatching each
// decoded Envelope into the table the client most recently joined.
func (tm *TableManager) RegisterHandlers(hub *Hub) {
	kinds := []session.ActionKind{
		session.ActionDraw, session.ActionDiscard, session.ActionChi,
		session.ActionPong, session.ActionOpenKong, session.ActionAddedKong,
		session.ActionConcealedKong, session.ActionWin, session.ActionPass,
	}
	for _, k := range kinds {
		k := k
		hub.Handle(kindName(k), func(c *Client, payload json.RawMessage) (any, error) {
			return tm.handleAction(hub, c, k, payload)
		})
	}
	hub.Handle("join", tm.handleJoin)
}

type joinRequest struct {
	TableID string `json:"tableID"`
	Seat    int    `json:"seat"`
}

func (tm *TableManager) handleJoin(c *Client, payload json.RawMessage) (any, error) {
	var req joinRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		return nil, fmt.Errorf("bad join payload: %w", err)
	}
	if req.Seat < 0 || req.Seat > 3 {
		return nil, fmt.Errorf("seat must be 0-3, got %d", req.Seat)
	}
	t, ok := tm.get(req.TableID)
	if !ok {
		return nil, fmt.Errorf("unknown table %s", req.TableID)
	}
	c.TableID = req.TableID
	c.Seat = req.Seat

	t.mu.Lock()
	snap := snapshotOf(t.s)
	t.mu.Unlock()
	return snap, nil
}

func (tm *TableManager) handleAction(hub *Hub, c *Client, kind session.ActionKind, payload json.RawMessage) (any, error) {
	if c.TableID == "" || c.Seat < 0 {
		return nil, fmt.Errorf("client has not joined a table yet")
	}
	t, ok := tm.get(c.TableID)
	if !ok {
		return nil, fmt.Errorf("unknown table %s", c.TableID)
	}

	var req actionRequest
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &req); err != nil {
			return nil, fmt.Errorf("bad action payload: %w", err)
		}
	}

	var tl tile.Tile
	var err error
	if req.Tile != "" {
		tl, err = tile.Parse(req.Tile)
		if err != nil {
			return nil, fmt.Errorf("bad tile %q: %w", req.Tile, err)
		}
	}
	combo, hasCombo, err := parseCombo(req.Combo)
	if err != nil {
		return nil, fmt.Errorf("bad combo: %w", err)
	}

	t.mu.Lock()
	err = t.s.Step(session.Action{Kind: kind, Tile: tl, Combo: combo, HasCombo: hasCombo, Player: c.Seat})
	snap := snapshotOf(t.s)
	finished := err == nil && (t.s.Phase == session.PhaseWin || t.s.Phase == session.PhaseDraw)
	if finished {
		tm.finishHand(t)
	}
	t.mu.Unlock()

	if err != nil {
		return nil, err
	}
	hub.Broadcast(c.TableID, "state", snap)
	return snap, nil
}

// finishHand scores a win (if any), persists the RoundRecord, and
// publishes a HandFinished event. t.mu is already held by the caller.
func (tm *TableManager) finishHand(t *table) {
	result := store.RoundResult{NextDealer: -1}
	var huClaims []store.HuClaim
	var scored scorer.Result

	if t.s.Phase == session.PhaseWin && t.s.Win != nil {
		w := t.s.Win
		// scorer.Input.ConcealedHand excludes the win tile; on a self-draw
		// the drawn tile is still in the winner's hand.
		concealed := t.s.Players[w.Winner].Hand
		if w.SelfDraw {
			concealed = nil
			removed := false
			for _, h := range t.s.Players[w.Winner].Hand {
				if !removed && h == w.WinTile {
					removed = true
					continue
				}
				concealed = append(concealed, h)
			}
		}
		scored = scorer.Score(scorer.Input{
			Winner:        w.Winner,
			WinTile:       w.WinTile,
			SelfDraw:      w.SelfDraw,
			ConcealedHand: concealed,
			Melds:         w.Melds,
			Flowers:       w.Flowers,
			Decomposition: w.Hand,
			DiscarderSeat: w.DiscarderSeat,
			SeatWind:      tile.NewWind((w.Winner - t.s.DealerIndex + 4) % 4),
			RoundWind:     t.s.RoundWind,
			IsDealer:      t.s.Players[w.Winner].IsDealer,
			DealerStreak:  t.s.Players[t.s.DealerIndex].Streak,

			IsTwoSidedWait: scorer.DetectTwoSidedWait(w.Hand, w.WinTile),

			RobKong:              w.Flags.RobKong,
			KongReplacement:      w.Flags.KongReplacement,
			LastTile:             w.Flags.LastTile,
			DeclaredTenpaiHeaven: w.Flags.DeclaredTenpaiHeaven,
			DeclaredTenpaiEarth:  w.Flags.DeclaredTenpaiEarth,
			HeavenlyWin:          w.Flags.HeavenlyWin,
			EarthlyWin:           w.Flags.EarthlyWin,
			HumanWin:             w.Flags.HumanWin,
			Qiqiangyi:            w.Flags.Qiqiangyi,
			Bajianguohai:         w.Flags.Bajianguohai,
			DealtFlowerWin:       w.Flags.DealtFlowerWin,
		})

		result.EndType = "win"
		var yakuNames []string
		for _, y := range scored.Yaku {
			yakuNames = append(yakuNames, y.Name)
		}
		huClaims = append(huClaims, store.HuClaim{
			WinnerSeat:    w.Winner,
			DiscarderSeat: w.DiscarderSeat,
			WinTile:       w.WinTile.String(),
			Tai:           scored.Total,
			Yaku:          yakuNames,
		})
		for seat, amt := range scored.Payments {
			result.Payments[seat] = amt
		}
	} else {
		// Every draw is recorded as "draw_exhaustive", including a four-kong
		// draw: the session does not expose which condition ended the hand.
		result.EndType = "draw_exhaustive"
	}
	result.Claims = huClaims

	if t.round != nil {
		t.round.Complete(&result)
		if tm.repo != nil {
			if err := tm.repo.SaveRoundRecord(context.Background(), t.round); err != nil {
				logging.Error("transport: save round record for table %s failed: %v", t.sid, err)
			}
		}
	}

	if tm.bus != nil {
		payments := make(map[int]int, 4)
		for seat, amt := range result.Payments {
			payments[seat] = amt
		}
		ev := bus.HandFinished{
			TableID:     t.sid,
			RoundNumber: t.s.RoundNumber,
			DealerIndex: t.s.DealerIndex,
			EndType:     result.EndType,
			Payments:    payments,
		}
		if len(huClaims) > 0 {
			ev.Winner = huClaims[0].WinnerSeat
			ev.Tai = huClaims[0].Tai
			ev.Yaku = huClaims[0].Yaku
		}
		if err := tm.bus.PublishHandFinished(ev); err != nil {
			logging.Error("transport: publish hand finished for table %s failed: %v", t.sid, err)
		}
	}
}

func snapshotOf(s *session.Session) stateSnapshot {
	snap := stateSnapshot{
		Phase:         phaseName(s.Phase),
		SubPhase:      subPhaseName(s.SubPhase),
		CurrentPlayer: s.CurrentPlayer,
	}
	if s.LastDiscard != nil {
		snap.LastDiscard = s.LastDiscard.String()
	}
	for _, a := range s.LegalActions(s.CurrentPlayer) {
		snap.Legal = append(snap.Legal, kindName(a.Kind))
	}
	return snap
}

func phaseName(p session.Phase) string {
	switch p {
	case session.PhaseDeal:
		return "deal"
	case session.PhaseFlowerReplacement:
		return "flower_replacement"
	case session.PhasePlay:
		return "play"
	case session.PhaseWin:
		return "win"
	case session.PhaseDraw:
		return "draw"
	default:
		return "unknown"
	}
}

func subPhaseName(sp session.SubPhase) string {
	switch sp {
	case session.SubActiveTurn:
		return "active_turn"
	case session.SubClaim:
		return "claim"
	case session.SubKongRob:
		return "kong_rob"
	default:
		return "unknown"
	}
}
