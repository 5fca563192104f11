package db

import (
	"context"
	"time"

	"github.com/stakelabs-io/staking-ledger/internal/db/model"
	"github.com/stakelabs-io/staking-ledger/internal/observability/metrics"
)

type DbWithMetrics struct {
	db DbInterface
}

func NewDbWithMetrics(db DbInterface) *DbWithMetrics {
	return &DbWithMetrics{db: db}
}

func (d *DbWithMetrics) Ping(ctx context.Context) error {
	return d.db.Ping(ctx)
}

func (d *DbWithMetrics) UpsertStakeRecord(ctx context.Context, doc *model.StakeRecordDocument) error {
	return d.run("UpsertStakeRecord", func() error {
		return d.db.UpsertStakeRecord(ctx, doc)
	})
}

func (d *DbWithMetrics) GetStakeRecord(ctx context.Context, account string) (result *model.StakeRecordDocument, err error) {
	//nolint:errcheck
	d.run("GetStakeRecord", func() error {
		result, err = d.db.GetStakeRecord(ctx, account)
		return err
	})

	return
}

func (d *DbWithMetrics) GetAllStakeRecords(ctx context.Context) (result []model.StakeRecordDocument, err error) {
	//nolint:errcheck
	d.run("GetAllStakeRecords", func() error {
		result, err = d.db.GetAllStakeRecords(ctx)
		return err
	})

	return
}

func (d *DbWithMetrics) UpsertPoolState(ctx context.Context, doc *model.PoolStateDocument) error {
	return d.run("UpsertPoolState", func() error {
		return d.db.UpsertPoolState(ctx, doc)
	})
}

func (d *DbWithMetrics) GetPoolState(ctx context.Context) (result *model.PoolStateDocument, err error) {
	//nolint:errcheck
	d.run("GetPoolState", func() error {
		result, err = d.db.GetPoolState(ctx)
		return err
	})

	return
}

func (d *DbWithMetrics) InsertTransitionEvents(ctx context.Context, docs []model.TransitionEventDocument) error {
	return d.run("InsertTransitionEvents", func() error {
		return d.db.InsertTransitionEvents(ctx, docs)
	})
}

func (d *DbWithMetrics) GetTransitionEventsByAccount(ctx context.Context, account string) (result []model.TransitionEventDocument, err error) {
	//nolint:errcheck
	d.run("GetTransitionEventsByAccount", func() error {
		result, err = d.db.GetTransitionEventsByAccount(ctx, account)
		return err
	})

	return
}

func (d *DbWithMetrics) run(method string, f func() error) error {
	start := time.Now()
	err := f()
	metrics.RecordDbLatency(time.Since(start), method, err != nil)

	return err
}
