package services

import (
	"context"
	"fmt"
	"strconv"

	"github.com/stakelabs-io/staking-ledger/internal/db/model"
	"github.com/stakelabs-io/staking-ledger/internal/observability/metrics"
	"github.com/stakelabs-io/staking-ledger/internal/utils/poller"
)

// RunSnapshotPoller periodically flushes the pool's full snapshot to
// the database and refreshes the pool gauges. Blocks until ctx is done.
// Per-transition writes already keep the hot records fresh; the poller
// is the safety net that bounds how stale the snapshot can get.
func (s *Service) RunSnapshotPoller(ctx context.Context) {
	snapshotPoller := poller.NewPoller(
		s.cfg.Poller.SnapshotPollingInterval,
		metrics.RecordPollerDuration("snapshot", s.flushSnapshot),
	)
	snapshotPoller.Start(ctx)
}

func (s *Service) flushSnapshot(ctx context.Context) error {
	state, records := s.pool.Snapshot()
	now := s.clock.Now()

	if err := s.db.UpsertPoolState(ctx, model.FromPoolState(state, now)); err != nil {
		metrics.RecordSnapshotPersistError()
		return fmt.Errorf("failed to persist pool state: %w", err)
	}

	stakedAccounts := 0
	unlockedAccounts := 0
	lockPeriod := s.pool.Params().LockPeriodSeconds
	for account, rec := range records {
		if err := s.db.UpsertStakeRecord(ctx, model.FromStakeRecord(account, rec, now)); err != nil {
			metrics.RecordSnapshotPersistError()
			return fmt.Errorf("failed to persist stake record for %s: %w", account, err)
		}
		if rec.Amount.IsPositive() {
			stakedAccounts++
			if now >= rec.DepositTimestamp+lockPeriod {
				unlockedAccounts++
			}
		}
	}

	metrics.RecordPoolGauges(
		approximate(state.TotalStaked.String()),
		approximate(state.RewardPerUnitStored.String()),
		stakedAccounts,
		unlockedAccounts,
	)
	return nil
}

// approximate renders an arbitrary-precision amount as a float for the
// gauges. Precision loss is fine there; the ledger itself never leaves
// integer arithmetic.
func approximate(amount string) float64 {
	value, err := strconv.ParseFloat(amount, 64)
	if err != nil {
		return 0
	}
	return value
}
