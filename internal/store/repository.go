package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrGameRecordNotFound mirrors core/domain/repository's not-found sentinel.
var ErrGameRecordNotFound = errors.New("store: game record not found")

// Repository persists games and hands, grounded on
// core/domain/repository/game_record_repository.go.
type Repository interface {
	SaveGameRecord(ctx context.Context, record *GameRecord) error
	FindGameRecord(ctx context.Context, id primitive.ObjectID) (*GameRecord, error)
	FindGameRecordByTable(ctx context.Context, tableID string) (*GameRecord, error)

	SaveRoundRecord(ctx context.Context, round *RoundRecord) error
	FindRoundRecords(ctx context.Context, gameRecordID primitive.ObjectID) ([]*RoundRecord, error)
	FindRoundRecord(ctx context.Context, gameRecordID primitive.ObjectID, roundNumber int) (*RoundRecord, error)
}
