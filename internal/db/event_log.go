package db

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/stakelabs-io/staking-ledger/internal/db/model"
)

func (db *Database) InsertTransitionEvents(
	ctx context.Context, docs []model.TransitionEventDocument,
) error {
	if len(docs) == 0 {
		return nil
	}

	documents := make([]interface{}, len(docs))
	for i := range docs {
		documents[i] = docs[i]
	}

	_, err := db.collection(model.TransitionEventCollection).
		InsertMany(ctx, documents)
	if err != nil {
		var writeErr mongo.BulkWriteException
		if errors.As(err, &writeErr) {
			for _, e := range writeErr.WriteErrors {
				if mongo.IsDuplicateKeyError(e) {
					return &DuplicateKeyError{
						Key:     docs[0].ID,
						Message: "transition event already recorded",
					}
				}
			}
		}
		return err
	}

	return nil
}

func (db *Database) GetTransitionEventsByAccount(
	ctx context.Context, account string,
) ([]model.TransitionEventDocument, error) {
	filter := bson.M{"account": account}
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}})

	cursor, err := db.collection(model.TransitionEventCollection).
		Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []model.TransitionEventDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	return docs, nil
}
