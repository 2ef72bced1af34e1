// Package store persists completed games and hands to MongoDB, grounded on
// common/database/mongo.go and core/infrastructure/persistence/game_record_persist.go.
package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"mahjong/internal/config"
	"mahjong/internal/logging"
)

// Mongo wraps a connected client and the database configured for it.
type Mongo struct {
	Cli *mongo.Client
	Db  *mongo.Database
}

// Connect dials MongoDB per config.Conf.DatabaseConf.MongoConf.
func Connect() *Mongo {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	conf := config.Conf.DatabaseConf.MongoConf
	clientOptions := options.Client().ApplyURI(conf.Url)
	clientOptions.SetMinPoolSize(uint64(conf.MinPoolSize))
	clientOptions.SetMaxPoolSize(uint64(conf.MaxPoolSize))
	if conf.Username != "" && conf.Password != "" {
		clientOptions.SetAuth(options.Credential{
			Username: conf.Username,
			Password: conf.Password,
		})
	}

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		logging.Fatal("store: mongo connect failed: %v", err)
		return nil
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		logging.Fatal("store: mongo ping failed: %v", err)
		return nil
	}
	return &Mongo{Cli: client, Db: client.Database(conf.Db)}
}

func (m *Mongo) Close() error {
	if m == nil {
		return nil
	}
	return m.Cli.Disconnect(context.TODO())
}
