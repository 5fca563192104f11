package db

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/stakelabs-io/staking-ledger/internal/db/model"
)

func (db *Database) UpsertStakeRecord(
	ctx context.Context, doc *model.StakeRecordDocument,
) error {
	filter := bson.M{"_id": doc.Account}
	opts := options.Replace().SetUpsert(true)

	_, err := db.collection(model.StakeRecordCollection).
		ReplaceOne(ctx, filter, doc, opts)
	return err
}

func (db *Database) GetStakeRecord(
	ctx context.Context, account string,
) (*model.StakeRecordDocument, error) {
	filter := bson.M{"_id": account}
	res := db.collection(model.StakeRecordCollection).
		FindOne(ctx, filter)

	var doc model.StakeRecordDocument
	if err := res.Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, &NotFoundError{
				Key:     account,
				Message: "stake record not found by account",
			}
		}
		return nil, err
	}

	return &doc, nil
}

func (db *Database) GetAllStakeRecords(
	ctx context.Context,
) ([]model.StakeRecordDocument, error) {
	cursor, err := db.collection(model.StakeRecordCollection).
		Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []model.StakeRecordDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	return docs, nil
}
