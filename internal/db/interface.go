package db

import (
	"context"

	"github.com/stakelabs-io/staking-ledger/internal/db/model"
)

type DbInterface interface {
	Ping(ctx context.Context) error

	UpsertStakeRecord(ctx context.Context, doc *model.StakeRecordDocument) error
	GetStakeRecord(ctx context.Context, account string) (*model.StakeRecordDocument, error)
	GetAllStakeRecords(ctx context.Context) ([]model.StakeRecordDocument, error)

	UpsertPoolState(ctx context.Context, doc *model.PoolStateDocument) error
	GetPoolState(ctx context.Context) (*model.PoolStateDocument, error)

	InsertTransitionEvents(ctx context.Context, docs []model.TransitionEventDocument) error
	GetTransitionEventsByAccount(ctx context.Context, account string) ([]model.TransitionEventDocument, error)
}
