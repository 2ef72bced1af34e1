package store

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GameRecord is the aggregate root for one multi-hand game: players,
// timing, and the final standing. Adapted from
// core/domain/entity/game_record.go for a single 4-seat table instead of
// an arbitrary game_type.
type GameRecord struct {
	ID          primitive.ObjectID `bson:"_id"`
	TableID     string             `bson:"table_id"`
	Players     [4]PlayerInfo      `bson:"players"`
	StartTime   time.Time          `bson:"start_time"`
	EndTime     time.Time          `bson:"end_time"`
	DurationSec int                `bson:"duration_sec"`
	FinalResult *GameFinalResult   `bson:"final_result"`
	Status      string             `bson:"status"` // "in_progress", "completed", "aborted"
	CreatedAt   time.Time          `bson:"created_at"`
}

type PlayerInfo struct {
	UserID    string `bson:"user_id"`
	SeatIndex int    `bson:"seat_index"`
	Nickname  string `bson:"nickname,omitempty"`
}

type GameFinalResult struct {
	Rankings []PlayerRanking `bson:"rankings"`
	Points   [4]int          `bson:"points"`
}

type PlayerRanking struct {
	SeatIndex int    `bson:"seat_index"`
	UserID    string `bson:"user_id"`
	Points    int    `bson:"points"`
	Rank      int    `bson:"rank"`
}

// NewGameRecord starts an in-progress record for a freshly seated table.
func NewGameRecord(tableID string, players [4]PlayerInfo) *GameRecord {
	return &GameRecord{
		ID:        primitive.NewObjectID(),
		TableID:   tableID,
		Players:   players,
		StartTime: time.Now(),
		Status:    "in_progress",
		CreatedAt: time.Now(),
	}
}

func (gr *GameRecord) Complete(result *GameFinalResult) {
	gr.EndTime = time.Now()
	gr.DurationSec = int(gr.EndTime.Sub(gr.StartTime).Seconds())
	gr.FinalResult = result
	gr.Status = "completed"
}

func (gr *GameRecord) Abort() {
	gr.EndTime = time.Now()
	gr.DurationSec = int(gr.EndTime.Sub(gr.StartTime).Seconds())
	gr.Status = "aborted"
}

// RoundRecord is one hand: its event stream and terminal outcome. Adapted
// from core/domain/entity/round_record.go; EndType values mirror the
// session package's terminal phases/win kinds instead of riichi's.
type RoundRecord struct {
	ID           primitive.ObjectID `bson:"_id"`
	GameRecordID primitive.ObjectID `bson:"game_record_id"`
	RoundNumber  int                `bson:"round_number"`
	RoundWind    string             `bson:"round_wind"`
	DealerIndex  int                `bson:"dealer_index"`
	Events       []RoundEvent       `bson:"events"`
	Result       *RoundResult       `bson:"round_result"`
	StartTime    time.Time          `bson:"start_time"`
	EndTime      time.Time          `bson:"end_time"`
	DurationSec  int                `bson:"duration_sec"`
	CreatedAt    time.Time          `bson:"created_at"`
}

type RoundEvent struct {
	Sequence  int                    `bson:"sequence"`
	EventType string                 `bson:"event_type"`
	Timestamp time.Time              `bson:"timestamp"`
	SeatIndex int                    `bson:"seat_index"` // -1 for a system event
	Data      map[string]interface{} `bson:"data"`
}

type RoundResult struct {
	EndType    string    `bson:"end_type"` // "win", "draw_exhaustive", "draw_four_kong"
	Claims     []HuClaim `bson:"claims"`
	Payments   [4]int    `bson:"payments"`
	NextDealer int       `bson:"next_dealer"` // -1 if the game itself ended
}

type HuClaim struct {
	WinnerSeat    int      `bson:"winner_seat"`
	DiscarderSeat int      `bson:"discarder_seat"` // -1 on self-draw
	WinTile       string   `bson:"win_tile"`
	Tai           int      `bson:"tai"`
	Yaku          []string `bson:"yaku"`
}

func NewRoundRecord(gameRecordID primitive.ObjectID, roundNumber int, roundWind string, dealerIndex int) *RoundRecord {
	return &RoundRecord{
		ID:           primitive.NewObjectID(),
		GameRecordID: gameRecordID,
		RoundNumber:  roundNumber,
		RoundWind:    roundWind,
		DealerIndex:  dealerIndex,
		Events:       make([]RoundEvent, 0, 64),
		StartTime:    time.Now(),
		CreatedAt:    time.Now(),
	}
}

func (rr *RoundRecord) AddEvent(eventType string, seatIndex int, data map[string]interface{}) {
	rr.Events = append(rr.Events, RoundEvent{
		Sequence:  len(rr.Events),
		EventType: eventType,
		Timestamp: time.Now(),
		SeatIndex: seatIndex,
		Data:      data,
	})
}

func (rr *RoundRecord) Complete(result *RoundResult) {
	rr.EndTime = time.Now()
	rr.DurationSec = int(rr.EndTime.Sub(rr.StartTime).Seconds())
	rr.Result = result
}

const (
	EventDraw         = "draw"
	EventDiscard      = "discard"
	EventChi          = "chi"
	EventPong         = "pong"
	EventOpenKong     = "open_kong"
	EventAddedKong    = "added_kong"
	EventConcealedKong = "concealed_kong"
	EventWin          = "win"
	EventRoundEnd     = "round_end"
)
