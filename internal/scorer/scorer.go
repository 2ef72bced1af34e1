// Package scorer computes the yaku catalogue, tai total, and payment
// breakdown for a winning Taiwan 16-tile Mahjong hand, ported from
// original_source/backend/engine/scorer.py.
package scorer

import (
	"sort"

	"mahjong/internal/actions"
	"mahjong/internal/decomposer"
	"mahjong/internal/tile"
)

// MaxTai caps the total awarded tai.
const MaxTai = 81

// Yaku is one awarded scoring pattern.
type Yaku struct {
	Name string
	Tai  int
}

// Input mirrors score_hand's parameter list: the game-state context,
// winning-hand context, and the special-condition flag set the session
// computed while driving the hand to its terminal state.
type Input struct {
	Winner        int
	WinTile       tile.Tile
	SelfDraw      bool
	ConcealedHand []tile.Tile // excludes WinTile
	Melds         []actions.Meld
	Flowers       []tile.Tile
	Decomposition decomposer.Decomposition
	DiscarderSeat int // -1 for self-draw

	SeatWind     tile.Tile
	RoundWind    tile.Tile
	IsDealer     bool
	DealerStreak int

	IsTwoSidedWait bool

	RobKong              bool // 搶槓
	KongReplacement      bool // 槓上開花
	LastTile             bool // 海底撈月 / 河底撈魚
	DeclaredTenpaiHeaven bool // 天聽
	DeclaredTenpaiEarth  bool // 地聽
	HeavenlyWin          bool // 天胡
	EarthlyWin           bool // 地胡
	HumanWin             bool // 人胡
	Qiqiangyi            bool // 七搶一
	Bajianguohai         bool // 八仙過海
	DealtFlowerWin       bool // 配牌花胡
}

// Result is the scorer's output.
type Result struct {
	Yaku     []Yaku
	Subtotal int
	Total    int
	Payments map[int]int
}

func toTriple(tiles []tile.Tile) [3]tile.Tile {
	return [3]tile.Tile{tiles[0], tiles[1], tiles[2]}
}

func isTriplet(s [3]tile.Tile) bool { return s[0] == s[1] && s[1] == s[2] }

func isSequence(s [3]tile.Tile) bool {
	for _, t := range s {
		if !t.IsNumber() {
			return false
		}
	}
	if s[0].Suit() != s[1].Suit() || s[1].Suit() != s[2].Suit() {
		return false
	}
	vals := []int{s[0].Value(), s[1].Value(), s[2].Value()}
	sort.Ints(vals)
	return vals[1] == vals[0]+1 && vals[2] == vals[1]+1
}

// Score computes the ScoringResult for in, mirroring score_hand's yaku
// catalogue in the same priority-tier order the original enumerates it.
func Score(in Input) Result {
	openMelds := 0
	for _, m := range in.Melds {
		if m.Type != actions.MeldConcealedKong {
			openMelds++
		}
	}
	isConcealed := openMelds == 0

	fullHand := append(append([]tile.Tile(nil), in.ConcealedHand...), in.WinTile)

	var allSets [][3]tile.Tile
	for _, set := range in.Decomposition.FreeSets {
		allSets = append(allSets, set.Tiles)
	}
	for _, m := range in.Melds {
		allSets = append(allSets, toTriple(m.Tiles))
	}
	pair := in.Decomposition.Pair

	var yaku []Yaku
	has := func(name string) bool {
		for _, y := range yaku {
			if y.Name == name {
				return true
			}
		}
		return false
	}

	// --- 16 tai ---
	if in.HeavenlyWin {
		yaku = append(yaku, Yaku{"天胡", 16})
	}
	if in.EarthlyWin {
		yaku = append(yaku, Yaku{"地胡", 16})
	}
	if in.HumanWin {
		yaku = append(yaku, Yaku{"人胡", 16})
	}

	windTripletCount := countWindTriplets(allSets)
	windInPair := pair[0].IsWind()
	if windTripletCount == 4 {
		yaku = append(yaku, Yaku{"大四喜", 16})
	}
	if allHonors(fullHand, in.Melds) {
		yaku = append(yaku, Yaku{"字一色", 16})
	}

	// --- 12 tai ---
	if in.DealtFlowerWin {
		yaku = append(yaku, Yaku{"配牌花胡", 12})
	}

	// --- 8 tai ---
	if in.DeclaredTenpaiHeaven {
		yaku = append(yaku, Yaku{"天聽", 8})
	}
	if in.Bajianguohai {
		yaku = append(yaku, Yaku{"八仙過海", 8})
	}
	if in.Qiqiangyi {
		yaku = append(yaku, Yaku{"七搶一", 8})
	}

	dragonTripletCount := countDragonTriplets(allSets)
	if dragonTripletCount == 3 {
		yaku = append(yaku, Yaku{"大三元", 8})
	}
	if windTripletCount == 3 && windInPair {
		yaku = append(yaku, Yaku{"小四喜", 8})
	}
	if isQingyise(fullHand, in.Melds) {
		yaku = append(yaku, Yaku{"清一色", 8})
	}

	concealedKongCount := 0
	for _, m := range in.Melds {
		if m.Type == actions.MeldConcealedKong {
			concealedKongCount++
		}
	}
	concealedTripletCount := countConcealedTriplets(in.Decomposition.FreeSets, in.SelfDraw, in.WinTile) + concealedKongCount
	if concealedTripletCount >= 5 {
		yaku = append(yaku, Yaku{"五暗坎", 8})
	}

	// --- 5 tai ---
	if concealedTripletCount == 4 && !has("五暗坎") {
		yaku = append(yaku, Yaku{"四暗坎", 5})
	}

	// --- 4 tai ---
	if in.DeclaredTenpaiEarth {
		yaku = append(yaku, Yaku{"地聽", 4})
	}
	if isDuiduihu(allSets) {
		yaku = append(yaku, Yaku{"對對胡", 4})
	}
	if dragonTripletCount == 2 && pair[0].IsDragon() {
		yaku = append(yaku, Yaku{"小三元", 4})
	}
	if isHunyise(fullHand, in.Melds) && !has("清一色") && !has("字一色") {
		yaku = append(yaku, Yaku{"湊一色", 4})
	}

	// --- 2 tai ---
	if concealedTripletCount == 3 && !has("四暗坎") && !has("五暗坎") {
		yaku = append(yaku, Yaku{"三暗坎", 2})
	}
	buqiu := isConcealed && in.SelfDraw
	if buqiu {
		yaku = append(yaku, Yaku{"不求", 2})
	}
	if isPinghu(allSets, pair, fullHand, in.Melds, in.SelfDraw, in.IsTwoSidedWait) {
		yaku = append(yaku, Yaku{"平胡", 2})
	}
	if openMelds == 4 && !in.SelfDraw {
		yaku = append(yaku, Yaku{"全求", 2})
	}
	seasonCount, plantCount := 0, 0
	for _, f := range in.Flowers {
		if f.FlowerIndex() < 4 {
			seasonCount++
		} else {
			plantCount++
		}
	}
	if seasonCount == 4 {
		yaku = append(yaku, Yaku{"花槓", 2})
	}
	if plantCount == 4 {
		yaku = append(yaku, Yaku{"花槓", 2})
	}

	// --- 1 tai ---
	if in.IsDealer {
		yaku = append(yaku, Yaku{"作莊", 1})
	}
	if in.DealerStreak > 0 {
		yaku = append(yaku, Yaku{"連莊", in.DealerStreak})
	}
	if isConcealed && !in.SelfDraw && !buqiu {
		yaku = append(yaku, Yaku{"門清", 1})
	}
	if in.SelfDraw && !buqiu {
		yaku = append(yaku, Yaku{"自摸", 1})
	}
	if hasWindTriplet(allSets, in.SeatWind) {
		yaku = append(yaku, Yaku{"風牌", 1})
	}
	if hasWindTriplet(allSets, in.RoundWind) {
		yaku = append(yaku, Yaku{"風圈", 1})
	}
	for d := 0; d < 3; d++ {
		if hasDragonTriplet(allSets, tile.NewDragon(d)) {
			yaku = append(yaku, Yaku{"箭字坎", 1})
		}
	}
	seatSeason, seatPlant := tile.OwnSeatFlowers(seatIndexFromWind(in.SeatWind))
	for _, f := range in.Flowers {
		if f == seatSeason || f == seatPlant {
			yaku = append(yaku, Yaku{"花牌", 1})
		}
	}
	if in.RobKong {
		yaku = append(yaku, Yaku{"搶槓", 1})
	}
	if in.KongReplacement {
		yaku = append(yaku, Yaku{"槓上開花", 1})
	}
	if in.LastTile {
		if in.SelfDraw {
			yaku = append(yaku, Yaku{"海底撈月", 1})
		} else {
			yaku = append(yaku, Yaku{"河底撈魚", 1})
		}
	}

	subtotal := 0
	for _, y := range yaku {
		subtotal += y.Tai
	}
	if subtotal == 0 {
		subtotal = 1
	}
	total := subtotal
	if total > MaxTai {
		total = MaxTai
	}

	return Result{
		Yaku:     yaku,
		Subtotal: subtotal,
		Total:    total,
		Payments: computePayments(in.Winner, total, in.SelfDraw, in.DiscarderSeat, in.DealerStreak),
	}
}

// seatIndexFromWind recovers the 0-3 seat index from a wind tile, since
// OwnSeatFlowers is indexed by seat, not by wind tile.
func seatIndexFromWind(w tile.Tile) int { return w.WindIndex() }

func computePayments(winner, total int, selfDraw bool, discarder int, dealerStreak int) map[int]int {
	lazhuang := dealerStreak
	payments := make(map[int]int, 4)
	received := 0
	for i := 0; i < 4; i++ {
		if i == winner {
			continue
		}
		var amount int
		if selfDraw {
			amount = total + lazhuang
		} else if i == discarder {
			amount = total + lazhuang
		} else {
			amount = lazhuang
		}
		payments[i] = amount
		received += amount
	}
	payments[winner] = -received
	return payments
}

func countConcealedTriplets(sets []decomposer.Set, selfDraw bool, winTile tile.Tile) int {
	count := 0
	winTileUsed := false
	for _, s := range sets {
		if !isTriplet(s.Tiles) {
			continue
		}
		if !selfDraw && !winTileUsed && s.Tiles[0] == winTile {
			winTileUsed = true
			continue
		}
		count++
	}
	return count
}

func countDragonTriplets(allSets [][3]tile.Tile) int {
	count := 0
	for _, s := range allSets {
		if isTriplet(s) && s[0].IsDragon() {
			count++
		}
	}
	return count
}

func countWindTriplets(allSets [][3]tile.Tile) int {
	count := 0
	for _, s := range allSets {
		if isTriplet(s) && s[0].IsWind() {
			count++
		}
	}
	return count
}

func hasWindTriplet(allSets [][3]tile.Tile, wind tile.Tile) bool {
	for _, s := range allSets {
		if isTriplet(s) && s[0] == wind {
			return true
		}
	}
	return false
}

func hasDragonTriplet(allSets [][3]tile.Tile, dragon tile.Tile) bool {
	for _, s := range allSets {
		if isTriplet(s) && s[0] == dragon {
			return true
		}
	}
	return false
}

func allHonors(fullHand []tile.Tile, melds []actions.Meld) bool {
	for _, t := range fullHand {
		if !t.IsHonor() {
			return false
		}
	}
	for _, m := range melds {
		for _, t := range m.Tiles {
			if !t.IsHonor() {
				return false
			}
		}
	}
	return true
}

func isQingyise(fullHand []tile.Tile, melds []actions.Meld) bool {
	all := append([]tile.Tile(nil), fullHand...)
	for _, m := range melds {
		all = append(all, m.Tiles...)
	}
	suits := make(map[tile.Suit]bool)
	for _, t := range all {
		if !t.IsNumber() {
			return false
		}
		suits[t.Suit()] = true
	}
	return len(suits) == 1
}

func isHunyise(fullHand []tile.Tile, melds []actions.Meld) bool {
	all := append([]tile.Tile(nil), fullHand...)
	for _, m := range melds {
		all = append(all, m.Tiles...)
	}
	suits := make(map[tile.Suit]bool)
	hasHonors := false
	for _, t := range all {
		switch {
		case t.IsNumber():
			suits[t.Suit()] = true
		case t.IsHonor():
			hasHonors = true
		default:
			return false
		}
	}
	return len(suits) == 1 && hasHonors
}

func isDuiduihu(allSets [][3]tile.Tile) bool {
	if len(allSets) != 5 {
		return false
	}
	for _, s := range allSets {
		if !isTriplet(s) {
			return false
		}
	}
	return true
}

func isPinghu(
	allSets [][3]tile.Tile,
	pair [2]tile.Tile,
	fullHand []tile.Tile,
	melds []actions.Meld,
	selfDraw bool,
	twoSidedWait bool,
) bool {
	if len(melds) > 0 {
		return false
	}
	if selfDraw || !twoSidedWait {
		return false
	}
	for _, t := range fullHand {
		if !t.IsNumber() {
			return false
		}
	}
	if !pair[0].IsNumber() {
		return false
	}
	if len(allSets) != 5 {
		return false
	}
	for _, s := range allSets {
		if !isSequence(s) {
			return false
		}
	}
	return true
}

// DetectTwoSidedWait reports whether winTile completed a two-sided
// (兩面聽) wait within the sequence set it belongs to in dec. Pair and
// triplet completions are always single-sided (shanpon/tanki), so this only
// inspects sequence sets.
func DetectTwoSidedWait(dec decomposer.Decomposition, winTile tile.Tile) bool {
	for _, set := range dec.FreeSets {
		if !isSequence(set.Tiles) {
			continue
		}
		if set.Tiles[0] != winTile && set.Tiles[1] != winTile && set.Tiles[2] != winTile {
			continue
		}
		vals := []int{set.Tiles[0].Value(), set.Tiles[1].Value(), set.Tiles[2].Value()}
		sort.Ints(vals)
		low := vals[0]
		switch winTile.Value() {
		case low:
			return low+3 <= 9
		case low + 2:
			return low-1 >= 1
		default: // middle tile: kanchan, always single-sided
			return false
		}
	}
	return false
}
