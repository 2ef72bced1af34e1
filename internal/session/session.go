// Package session implements the Taiwan 16-tile Mahjong turn/claim state
// machine: legal-action generation, action execution, and terminal
// detection. Ported from original_source/backend/engine/game_session.py and
// engine/state.py, with one deliberate divergence: claim resolution here
// collects every non-discarder's declared intent and arbitrates by rank
// (win > open_kong > pong > chi > pass, ties broken counter-clockwise),
// rather than the Python reference's first-valid-claimer shortcut.
package session

import (
	"errors"
	"math/rand"
	"sort"

	"mahjong/internal/actions"
	"mahjong/internal/deal"
	"mahjong/internal/decomposer"
	"mahjong/internal/shanten"
	"mahjong/internal/tile"
	"mahjong/internal/wall"
)

// Phase is the top-level hand lifecycle state.
type Phase int

const (
	PhaseDeal Phase = iota
	PhaseFlowerReplacement
	PhasePlay
	PhaseWin
	PhaseDraw
)

// SubPhase further refines PhasePlay.
type SubPhase int

const (
	SubActiveTurn SubPhase = iota
	SubClaim
	SubKongRob
)

// ActionKind tags the variant carried by Action.
type ActionKind int

const (
	ActionDraw ActionKind = iota
	ActionDiscard
	ActionChi
	ActionPong
	ActionOpenKong
	ActionAddedKong
	ActionConcealedKong
	ActionWin
	ActionPass
)

// claimRank orders claim-phase intents; higher wins. Pass ranks 0, below
// every real claim; Draw/Discard never appear in a claim window.
func (k ActionKind) claimRank() int {
	switch k {
	case ActionWin:
		return 4
	case ActionOpenKong:
		return 3
	case ActionPong:
		return 2
	case ActionChi:
		return 1
	default:
		return 0
	}
}

// Action is the tagged-variant action object the session accepts from and
// hands back to the driver.
type Action struct {
	Kind     ActionKind
	Tile     tile.Tile
	Combo    [3]tile.Tile
	HasCombo bool
	Player   int
}

func sortedCombo(c [3]tile.Tile) [3]tile.Tile {
	s := c
	sort.Slice(s[:], func(i, j int) bool { return tile.Less(s[i], s[j]) })
	return s
}

func actionsEqual(a, b Action) bool {
	if a.Kind != b.Kind || a.Player != b.Player {
		return false
	}
	if a.HasCombo != b.HasCombo {
		return false
	}
	if a.HasCombo && sortedCombo(a.Combo) != sortedCombo(b.Combo) {
		return false
	}
	if !a.HasCombo && a.Tile != b.Tile {
		return false
	}
	return true
}

func containsAction(list []Action, a Action) bool {
	for _, x := range list {
		if actionsEqual(x, a) {
			return true
		}
	}
	return false
}

// Errors returned by Step. Per the design's error-kind taxonomy:
// InvalidAction leaves state unmodified; ResourceExhausted is folded into a
// terminal draw transition rather than surfaced on an active turn.
var (
	ErrInvalidAction    = errors.New("session: action not in current legal set")
	ErrSessionNotActive = errors.New("session: not in play phase")
)

// Player is one seat's hand, melds, flowers, and discard history.
type Player struct {
	Seat     int
	Hand     []tile.Tile
	Melds    []actions.Meld
	Flowers  []tile.Tile
	Discards []tile.Tile
	IsDealer bool
	Streak   int
}

// WinFlags records the special conditions the scorer needs to award
// first-win and situational yaku.
type WinFlags struct {
	RobKong              bool // 搶槓
	KongReplacement      bool // 槓上開花
	LastTile             bool // 海底/河底
	DeclaredTenpaiHeaven bool // 天聽 (dealer)
	DeclaredTenpaiEarth  bool // 地聽 (non-dealer)
	HeavenlyWin          bool // 天胡
	EarthlyWin           bool // 地胡
	HumanWin             bool // 人胡
	DealtFlowerWin       bool // 配牌花胡
	Qiqiangyi            bool // 七搶一
	Bajianguohai         bool // 八仙過海
}

// WinRecord is the terminal context the scorer consumes.
type WinRecord struct {
	Winner        int
	WinTile       tile.Tile
	SelfDraw      bool
	DiscarderSeat int // -1 when SelfDraw
	Hand          decomposer.Decomposition
	WinKind       decomposer.WinKind
	Melds         []actions.Meld
	Flowers       []tile.Tile
	Flags         WinFlags
}

// Session is the full state machine for one hand.
type Session struct {
	Players       [4]Player
	Wall          *wall.Wall
	DiscardPool   []tile.Tile
	CurrentPlayer int
	RoundWind     tile.Tile
	RoundNumber   int
	DealerIndex   int
	LastDiscard   *tile.Tile
	LastAction    string
	Phase         Phase
	SubPhase      SubPhase
	TenpaiFlags   [4]bool

	Win *WinRecord

	pendingDiscard   *tile.Tile
	pendingDiscarder int
	claimIntents     map[int]Action

	pendingKongTile      tile.Tile
	pendingKongDeclarer  int
	kongRobIntents       map[int]Action

	justDrew      bool
	afterKong     bool
	lastDrawnTile tile.Tile

	actionCount     int
	anyMeldClaimed  bool
	dealerDiscarded bool

	kongCount     int
	kongDeclarers map[int]bool
}

// New creates a fresh session in PhaseDeal, ready for StartHand.
func New(dealer int, roundWind tile.Tile, roundNumber int, streaks [4]int) *Session {
	s := &Session{
		DealerIndex:   dealer,
		RoundWind:     roundWind,
		RoundNumber:   roundNumber,
		CurrentPlayer: dealer,
		Phase:         PhaseDeal,
		kongDeclarers: make(map[int]bool),
	}
	for i := 0; i < 4; i++ {
		s.Players[i] = Player{Seat: i, IsDealer: i == dealer, Streak: streaks[i]}
	}
	return s
}

// StartHand shuffles, deals, replaces flowers, and advances to PhasePlay.
// rng must be caller-supplied so games are replayable from a seed.
func (s *Session) StartHand(rng *rand.Rand) error {
	s.Wall = wall.Build(rng)
	s.Phase = PhaseDeal

	hands, err := deal.InitialHands(s.Wall, s.DealerIndex)
	if err != nil {
		return err
	}
	for i := range s.Players {
		s.Players[i].Hand = hands[i]
	}

	s.Phase = PhaseFlowerReplacement
	var flowerSets [4][]tile.Tile
	if err := deal.ReplaceFlowers(s.Wall, s.DealerIndex, &hands, &flowerSets); err != nil {
		return err
	}
	for i := range s.Players {
		s.Players[i].Hand = hands[i]
		s.Players[i].Flowers = flowerSets[i]
	}

	for i := range s.Players {
		if deal.CheckDealtFlowerWin(s.Players[i].Flowers) {
			s.Phase = PhaseWin
			s.Win = &WinRecord{
				Winner:        i,
				SelfDraw:      true,
				DiscarderSeat: -1,
				Flowers:       s.Players[i].Flowers,
				Flags:         WinFlags{DealtFlowerWin: true},
			}
			return nil
		}
	}

	for i := range s.Players {
		s.TenpaiFlags[i] = shanten.Number(s.Players[i].Hand, len(s.Players[i].Melds)) == 0
	}

	s.Phase = PhasePlay
	s.SubPhase = SubActiveTurn
	s.CurrentPlayer = s.DealerIndex
	s.justDrew = true
	s.lastDrawnTile = s.Players[s.DealerIndex].Hand[len(s.Players[s.DealerIndex].Hand)-1]
	return nil
}

func distinctSorted(hand []tile.Tile) []tile.Tile {
	seen := make(map[tile.Tile]bool, len(hand))
	var out []tile.Tile
	for _, t := range hand {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return tile.Less(out[i], out[j]) })
	return out
}

func removeOneTile(hand []tile.Tile, t tile.Tile) []tile.Tile {
	out := make([]tile.Tile, 0, len(hand))
	removed := false
	for _, x := range hand {
		if !removed && x == t {
			removed = true
			continue
		}
		out = append(out, x)
	}
	return out
}

func removeNTiles(hand []tile.Tile, t tile.Tile, n int) []tile.Tile {
	out := hand
	for i := 0; i < n; i++ {
		out = removeOneTile(out, t)
	}
	return out
}

// LegalActions returns the ordered legal-action set for player in the
// current state; empty when player cannot act now.
func (s *Session) LegalActions(player int) []Action {
	if s.Phase != PhasePlay {
		return nil
	}

	switch s.SubPhase {
	case SubClaim:
		return s.legalClaimActions(player)
	case SubKongRob:
		return s.legalKongRobActions(player)
	default:
		return s.legalActiveActions(player)
	}
}

func (s *Session) legalActiveActions(player int) []Action {
	if player != s.CurrentPlayer {
		return nil
	}
	p := &s.Players[player]

	if len(p.Hand) <= 16 && !s.justDrew {
		return []Action{{Kind: ActionDraw, Player: player}}
	}

	var out []Action

	if s.justDrew {
		concealed := removeOneTile(p.Hand, s.lastDrawnTile)
		res := decomposer.CheckWinningHand(concealed, len(p.Melds), p.Flowers, s.lastDrawnTile, false)
		if res.Kind != decomposer.WinNone {
			out = append(out, Action{Kind: ActionWin, Tile: s.lastDrawnTile, Player: player})
		}
	}

	for _, t := range distinctSorted(p.Hand) {
		if actions.ValidateConcealedKong(p.Hand, t) {
			out = append(out, Action{Kind: ActionConcealedKong, Tile: t, Player: player})
		}
	}
	for _, t := range distinctSorted(p.Hand) {
		if actions.ValidateAddedKong(p.Melds, t) {
			out = append(out, Action{Kind: ActionAddedKong, Tile: t, Player: player})
		}
	}
	for _, t := range distinctSorted(p.Hand) {
		out = append(out, Action{Kind: ActionDiscard, Tile: t, Player: player})
	}

	return out
}

func (s *Session) legalClaimActions(player int) []Action {
	if s.pendingDiscard == nil || player == s.pendingDiscarder {
		return nil
	}
	if _, done := s.claimIntents[player]; done {
		return nil
	}

	p := &s.Players[player]
	discard := *s.pendingDiscard
	var out []Action

	res := decomposer.CheckWinningHand(p.Hand, len(p.Melds), p.Flowers, discard, false)
	if res.Kind != decomposer.WinNone {
		out = append(out, Action{Kind: ActionWin, Tile: discard, Player: player})
	}

	if actions.ValidateOpenKong(p.Hand, discard) {
		out = append(out, Action{Kind: ActionOpenKong, Tile: discard, Player: player})
	}
	if actions.ValidatePong(p.Hand, discard) {
		out = append(out, Action{Kind: ActionPong, Tile: discard, Player: player})
	}

	nextPlayer := (s.pendingDiscarder + 1) % 4
	if player == nextPlayer {
		for _, combo := range actions.ChiCombinations(p.Hand, discard) {
			out = append(out, Action{Kind: ActionChi, Tile: discard, Combo: combo, HasCombo: true, Player: player})
		}
	}

	out = append(out, Action{Kind: ActionPass, Player: player})
	return out
}

func (s *Session) legalKongRobActions(player int) []Action {
	if player == s.pendingKongDeclarer {
		return nil
	}
	if _, done := s.kongRobIntents[player]; done {
		return nil
	}
	p := &s.Players[player]
	var out []Action
	res := decomposer.CheckWinningHand(p.Hand, len(p.Melds), p.Flowers, s.pendingKongTile, false)
	if res.Kind != decomposer.WinNone {
		out = append(out, Action{Kind: ActionWin, Tile: s.pendingKongTile, Player: player})
	}
	out = append(out, Action{Kind: ActionPass, Player: player})
	return out
}

// Step applies a legal action and advances the state machine.
func (s *Session) Step(a Action) error {
	if s.Phase != PhasePlay {
		return ErrSessionNotActive
	}
	switch s.SubPhase {
	case SubClaim:
		return s.stepClaim(a)
	case SubKongRob:
		return s.stepKongRob(a)
	default:
		return s.stepActive(a)
	}
}

func (s *Session) stepActive(a Action) error {
	if !containsAction(s.legalActiveActions(s.CurrentPlayer), a) {
		return ErrInvalidAction
	}
	switch a.Kind {
	case ActionDraw:
		return s.doDraw()
	case ActionDiscard:
		return s.doDiscard(a.Tile)
	case ActionConcealedKong:
		return s.doConcealedKong(a.Tile)
	case ActionAddedKong:
		return s.doAddedKong(a.Tile)
	case ActionWin:
		return s.doWinSelfDraw(a.Tile)
	default:
		return ErrInvalidAction
	}
}

func (s *Session) stepClaim(a Action) error {
	if !containsAction(s.legalClaimActions(a.Player), a) {
		return ErrInvalidAction
	}
	if s.claimIntents == nil {
		s.claimIntents = make(map[int]Action)
	}
	s.claimIntents[a.Player] = a

	nonDiscarders := 0
	for i := 0; i < 4; i++ {
		if i != s.pendingDiscarder {
			nonDiscarders++
		}
	}
	if len(s.claimIntents) < nonDiscarders {
		return nil
	}
	return s.resolveClaim()
}

func (s *Session) resolveClaim() error {
	discarder := s.pendingDiscarder
	best := -1
	var bestIntents []Action
	for _, intent := range s.claimIntents {
		r := intent.Kind.claimRank()
		if r == 0 {
			continue
		}
		if r > best {
			best = r
			bestIntents = []Action{intent}
		} else if r == best {
			bestIntents = append(bestIntents, intent)
		}
	}
	s.claimIntents = nil

	if best <= 0 {
		next := (discarder + 1) % 4
		s.pendingDiscard = nil
		s.pendingDiscarder = -1
		s.SubPhase = SubActiveTurn
		s.justDrew = false
		s.CurrentPlayer = next
		s.LastAction = "pass"
		return nil
	}

	winner := bestIntents[0]
	if len(bestIntents) > 1 {
		bestOffset := 5
		for _, intent := range bestIntents {
			offset := ((intent.Player - discarder) % 4 + 4) % 4
			if offset < bestOffset {
				bestOffset = offset
				winner = intent
			}
		}
	}

	switch winner.Kind {
	case ActionWin:
		return s.doWinByDiscard(winner.Player, winner.Tile)
	case ActionOpenKong:
		return s.doOpenKong(winner.Player, winner.Tile)
	case ActionPong:
		return s.doPong(winner.Player, winner.Tile)
	case ActionChi:
		return s.doChi(winner.Player, winner.Combo)
	default:
		return ErrInvalidAction
	}
}

func (s *Session) stepKongRob(a Action) error {
	if !containsAction(s.legalKongRobActions(a.Player), a) {
		return ErrInvalidAction
	}
	if s.kongRobIntents == nil {
		s.kongRobIntents = make(map[int]Action)
	}
	s.kongRobIntents[a.Player] = a

	if len(s.kongRobIntents) < 3 {
		return nil
	}
	return s.resolveKongRob()
}

func (s *Session) resolveKongRob() error {
	declarer := s.pendingKongDeclarer
	var robber *Action
	bestOffset := 5
	for p, intent := range s.kongRobIntents {
		if intent.Kind != ActionWin {
			continue
		}
		offset := ((p - declarer) % 4 + 4) % 4
		if offset < bestOffset {
			bestOffset = offset
			cp := intent
			robber = &cp
		}
	}
	s.kongRobIntents = nil

	if robber != nil {
		return s.finishWin(WinRecord{
			Winner:        robber.Player,
			WinTile:       s.pendingKongTile,
			SelfDraw:      false,
			DiscarderSeat: declarer,
			Flags:         WinFlags{RobKong: true},
		})
	}

	// No one robbed the kong: commit it for real.
	declarerPlayer := &s.Players[declarer]
	tileKonged := s.pendingKongTile
	for i := range declarerPlayer.Melds {
		m := &declarerPlayer.Melds[i]
		if m.Type == actions.MeldPong && m.Tiles[0] == tileKonged {
			m.Type = actions.MeldAddedKong
			m.Tiles = append(m.Tiles, tileKonged)
			break
		}
	}
	declarerPlayer.Hand = removeOneTile(declarerPlayer.Hand, tileKonged)
	s.LastAction = "added_kong"
	s.SubPhase = SubActiveTurn
	s.justDrew = false
	if err := s.recordKongAndCheckAbort(declarer); err != nil || s.Phase != PhasePlay {
		return err
	}
	return s.drawReplacementFor(declarer, true)
}

func (s *Session) doDraw() error {
	s.actionCount++
	t, err := s.Wall.Draw()
	if err != nil {
		s.Phase = PhaseDraw
		return nil
	}
	p := &s.Players[s.CurrentPlayer]
	if t.IsFlower() {
		p.Flowers = append(p.Flowers, t)
		return s.drawReplacementFor(s.CurrentPlayer, false)
	}
	p.Hand = append(p.Hand, t)
	s.justDrew = true
	s.afterKong = false
	s.lastDrawnTile = t
	s.SubPhase = SubActiveTurn
	s.LastAction = "draw"
	return nil
}

// drawReplacementFor draws from the back wall (falling back to the main
// wall if it's empty, per the supplemented fallback behavior), handling
// recursive flower replacement. afterKong marks the draw as 槓上開花-eligible.
func (s *Session) drawReplacementFor(player int, afterKong bool) error {
	p := &s.Players[player]
	for {
		t, err := s.Wall.DrawBack()
		if err != nil {
			t, err = s.Wall.Draw()
			if err != nil {
				s.Phase = PhaseDraw
				return nil
			}
		}
		if t.IsFlower() {
			p.Flowers = append(p.Flowers, t)
			continue
		}
		p.Hand = append(p.Hand, t)
		s.justDrew = true
		s.afterKong = afterKong
		s.lastDrawnTile = t
		s.SubPhase = SubActiveTurn
		s.LastAction = "replacement_draw"
		return nil
	}
}

func (s *Session) doDiscard(t tile.Tile) error {
	s.actionCount++
	p := &s.Players[s.CurrentPlayer]
	p.Hand = removeOneTile(p.Hand, t)
	p.Discards = append(p.Discards, t)
	s.DiscardPool = append(s.DiscardPool, t)
	s.LastDiscard = &t
	s.LastAction = "discard"

	if s.CurrentPlayer == s.DealerIndex {
		s.dealerDiscarded = true
	}

	discard := t
	s.pendingDiscard = &discard
	s.pendingDiscarder = s.CurrentPlayer
	s.claimIntents = nil
	s.justDrew = false
	s.afterKong = false
	s.SubPhase = SubClaim
	return nil
}

func (s *Session) doChi(player int, combo [3]tile.Tile) error {
	s.actionCount++
	s.anyMeldClaimed = true
	p := &s.Players[player]
	discard := *s.pendingDiscard
	for _, t := range combo {
		if t != discard {
			p.Hand = removeOneTile(p.Hand, t)
		}
	}
	p.Melds = append(p.Melds, actions.Meld{Type: actions.MeldChi, Tiles: combo[:], FromPlayer: s.pendingDiscarder})

	s.CurrentPlayer = player
	s.LastAction = "chi"
	s.pendingDiscard = nil
	s.pendingDiscarder = -1
	s.justDrew = true
	s.afterKong = false
	s.SubPhase = SubActiveTurn
	return nil
}

func (s *Session) doPong(player int, discard tile.Tile) error {
	s.actionCount++
	s.anyMeldClaimed = true
	p := &s.Players[player]
	p.Hand = removeNTiles(p.Hand, discard, 2)
	p.Melds = append(p.Melds, actions.Meld{
		Type:       actions.MeldPong,
		Tiles:      []tile.Tile{discard, discard, discard},
		FromPlayer: s.pendingDiscarder,
	})

	s.CurrentPlayer = player
	s.LastAction = "pong"
	s.pendingDiscard = nil
	s.pendingDiscarder = -1
	s.justDrew = true
	s.afterKong = false
	s.SubPhase = SubActiveTurn
	return nil
}

func (s *Session) doOpenKong(player int, discard tile.Tile) error {
	s.actionCount++
	s.anyMeldClaimed = true
	discarder := s.pendingDiscarder
	p := &s.Players[player]
	p.Hand = removeNTiles(p.Hand, discard, 3)
	p.Melds = append(p.Melds, actions.Meld{
		Type:       actions.MeldOpenKong,
		Tiles:      []tile.Tile{discard, discard, discard, discard},
		FromPlayer: discarder,
	})

	s.CurrentPlayer = player
	s.LastAction = "open_kong"
	s.pendingDiscard = nil
	s.pendingDiscarder = -1
	s.justDrew = false
	s.SubPhase = SubActiveTurn

	if err := s.recordKongAndCheckAbort(player); err != nil || s.Phase != PhasePlay {
		return err
	}
	return s.drawReplacementFor(player, true)
}

// doAddedKong opens the rob-the-kong window instead of mutating state
// immediately: the tile being added to an exposed pong was never offered
// to the table the way a discard is, so other players get one chance to
// claim win against it (搶槓) before it's committed.
func (s *Session) doAddedKong(t tile.Tile) error {
	s.pendingKongTile = t
	s.pendingKongDeclarer = s.CurrentPlayer
	s.kongRobIntents = nil
	s.SubPhase = SubKongRob
	return nil
}

func (s *Session) doConcealedKong(t tile.Tile) error {
	s.actionCount++
	s.anyMeldClaimed = true
	p := &s.Players[s.CurrentPlayer]
	p.Hand = removeNTiles(p.Hand, t, 4)
	p.Melds = append(p.Melds, actions.Meld{
		Type:       actions.MeldConcealedKong,
		Tiles:      []tile.Tile{t, t, t, t},
		FromPlayer: -1,
	})

	s.LastAction = "concealed_kong"
	s.justDrew = false
	s.SubPhase = SubActiveTurn

	if err := s.recordKongAndCheckAbort(s.CurrentPlayer); err != nil || s.Phase != PhasePlay {
		return err
	}
	return s.drawReplacementFor(s.CurrentPlayer, true)
}

// recordKongAndCheckAbort implements the adapted four-kong abortive draw:
// once four kongs have been declared and they are spread across more than
// one declarer, the hand ends in PhaseDraw, as a riichi-rule four-kong draw
// would. Four kongs by a single declarer do not end the hand.
func (s *Session) recordKongAndCheckAbort(declarer int) error {
	s.kongCount++
	s.kongDeclarers[declarer] = true
	if s.kongCount >= 4 && len(s.kongDeclarers) > 1 {
		s.Phase = PhaseDraw
	}
	return nil
}

func (s *Session) doWinSelfDraw(winTile tile.Tile) error {
	s.actionCount++
	p := &s.Players[s.CurrentPlayer]
	concealed := removeOneTile(p.Hand, winTile)
	res := decomposer.CheckWinningHand(concealed, len(p.Melds), p.Flowers, winTile, false)

	flags := WinFlags{
		KongReplacement: s.afterKong,
		LastTile:        s.Wall.DrawLen() == 0,
		Bajianguohai:    res.Kind == decomposer.WinBajianGuohai,
	}
	if s.CurrentPlayer == s.DealerIndex {
		flags.HeavenlyWin = s.actionCount == 1 && !s.dealerDiscarded
		flags.DeclaredTenpaiHeaven = s.TenpaiFlags[s.CurrentPlayer] && len(p.Melds) == 0
	} else {
		flags.EarthlyWin = !s.anyMeldClaimed && s.actionCount == 3
		flags.DeclaredTenpaiEarth = s.TenpaiFlags[s.CurrentPlayer] && len(p.Melds) == 0
	}

	return s.finishWin(WinRecord{
		Winner:        s.CurrentPlayer,
		WinTile:       winTile,
		SelfDraw:      true,
		DiscarderSeat: -1,
		Hand:          res.Hand,
		WinKind:       res.Kind,
		Melds:         p.Melds,
		Flowers:       p.Flowers,
		Flags:         flags,
	})
}

func (s *Session) doWinByDiscard(winner int, winTile tile.Tile) error {
	s.actionCount++
	p := &s.Players[winner]
	res := decomposer.CheckWinningHand(p.Hand, len(p.Melds), p.Flowers, winTile, false)

	flags := WinFlags{
		LastTile:     s.Wall.DrawLen() == 0 && s.Wall.BackLen() == 0,
		Bajianguohai: res.Kind == decomposer.WinBajianGuohai,
		HumanWin:     s.actionCount == 2 && s.pendingDiscarder == s.DealerIndex && !s.anyMeldClaimed,
	}

	return s.finishWin(WinRecord{
		Winner:        winner,
		WinTile:       winTile,
		SelfDraw:      false,
		DiscarderSeat: s.pendingDiscarder,
		Hand:          res.Hand,
		WinKind:       res.Kind,
		Melds:         p.Melds,
		Flowers:       p.Flowers,
		Flags:         flags,
	})
}

func (s *Session) finishWin(w WinRecord) error {
	rec := w
	s.Win = &rec
	s.Phase = PhaseWin
	s.LastAction = "win"
	s.pendingDiscard = nil
	s.pendingDiscarder = -1
	s.claimIntents = nil
	s.kongRobIntents = nil
	return nil
}
