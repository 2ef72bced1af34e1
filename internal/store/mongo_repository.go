package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mahjong/internal/logging"
)

type mongoRepository struct {
	mongo *Mongo
}

// NewMongoRepository adapts core/infrastructure/persistence/game_record_persist.go
// for GameRecord/RoundRecord's typed bson tags instead of hand-rolled bson.M.
func NewMongoRepository(m *Mongo) Repository {
	return &mongoRepository{mongo: m}
}

func (r *mongoRepository) SaveGameRecord(ctx context.Context, record *GameRecord) error {
	_, err := r.mongo.Db.Collection("game_records").InsertOne(ctx, record)
	if err != nil {
		logging.Error("store: save game record failed: %v", err)
	}
	return err
}

func (r *mongoRepository) FindGameRecord(ctx context.Context, id primitive.ObjectID) (*GameRecord, error) {
	var rec GameRecord
	err := r.mongo.Db.Collection("game_records").FindOne(ctx, bson.M{"_id": id}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrGameRecordNotFound
	}
	if err != nil {
		logging.Error("store: find game record failed: %v", err)
		return nil, err
	}
	return &rec, nil
}

func (r *mongoRepository) FindGameRecordByTable(ctx context.Context, tableID string) (*GameRecord, error) {
	var rec GameRecord
	err := r.mongo.Db.Collection("game_records").FindOne(ctx, bson.M{"table_id": tableID}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrGameRecordNotFound
	}
	if err != nil {
		logging.Error("store: find game record by table failed: %v", err)
		return nil, err
	}
	return &rec, nil
}

func (r *mongoRepository) SaveRoundRecord(ctx context.Context, round *RoundRecord) error {
	_, err := r.mongo.Db.Collection("round_records").InsertOne(ctx, round)
	if err != nil {
		logging.Error("store: save round record failed: %v", err)
	}
	return err
}

func (r *mongoRepository) FindRoundRecords(ctx context.Context, gameRecordID primitive.ObjectID) ([]*RoundRecord, error) {
	opts := options.Find().SetSort(bson.M{"round_number": 1})
	cursor, err := r.mongo.Db.Collection("round_records").Find(ctx, bson.M{"game_record_id": gameRecordID}, opts)
	if err != nil {
		logging.Error("store: find round records failed: %v", err)
		return nil, err
	}
	defer cursor.Close(ctx)

	var rounds []*RoundRecord
	if err := cursor.All(ctx, &rounds); err != nil {
		logging.Error("store: decode round records failed: %v", err)
		return nil, err
	}
	return rounds, nil
}

func (r *mongoRepository) FindRoundRecord(ctx context.Context, gameRecordID primitive.ObjectID, roundNumber int) (*RoundRecord, error) {
	var round RoundRecord
	filter := bson.M{"game_record_id": gameRecordID, "round_number": roundNumber}
	err := r.mongo.Db.Collection("round_records").FindOne(ctx, filter).Decode(&round)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrGameRecordNotFound
	}
	if err != nil {
		logging.Error("store: find round record failed: %v", err)
		return nil, err
	}
	return &round, nil
}
