package db

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/stakelabs-io/staking-ledger/internal/db/model"
)

func (db *Database) UpsertPoolState(
	ctx context.Context, doc *model.PoolStateDocument,
) error {
	doc.ID = model.PoolStateDocumentID
	filter := bson.M{"_id": model.PoolStateDocumentID}
	opts := options.Replace().SetUpsert(true)

	_, err := db.collection(model.PoolStateCollection).
		ReplaceOne(ctx, filter, doc, opts)
	return err
}

func (db *Database) GetPoolState(ctx context.Context) (*model.PoolStateDocument, error) {
	filter := bson.M{"_id": model.PoolStateDocumentID}
	res := db.collection(model.PoolStateCollection).
		FindOne(ctx, filter)

	var doc model.PoolStateDocument
	if err := res.Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, &NotFoundError{
				Key:     model.PoolStateDocumentID,
				Message: "pool state has not been persisted yet",
			}
		}
		return nil, err
	}

	return &doc, nil
}
