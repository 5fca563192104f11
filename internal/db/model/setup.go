package model

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/stakelabs-io/staking-ledger/internal/config"
)

// Setup applies the index migrations. Run once at startup before the db
// client is used.
func Setup(ctx context.Context, cfg *config.DbConfig) error {
	client, err := mongo.Connect(ctx, clientOptions(cfg))
	if err != nil {
		return err
	}
	defer func() {
		//nolint:errcheck
		client.Disconnect(ctx)
	}()

	database := client.Database(cfg.DbName)

	indexes := map[string][]mongo.IndexModel{
		TransitionEventCollection: {
			{Keys: bson.D{{Key: "account", Value: 1}, {Key: "timestamp", Value: 1}}},
			{Keys: bson.D{{Key: "type", Value: 1}}},
		},
		StakeRecordCollection: {
			{Keys: bson.D{{Key: "updated_at", Value: 1}}},
		},
	}

	for collection, models := range indexes {
		if _, err := database.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			return err
		}
	}

	return nil
}

func clientOptions(cfg *config.DbConfig) *options.ClientOptions {
	opts := options.Client().ApplyURI(cfg.Address)
	if cfg.Username != "" {
		opts = opts.SetAuth(options.Credential{
			Username: cfg.Username,
			Password: cfg.Password,
		})
	}
	return opts
}
