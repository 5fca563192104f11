package services

import (
	"context"
	"fmt"

	"github.com/avast/retry-go/v4"
	"github.com/rs/zerolog/log"

	"github.com/stakelabs-io/staking-ledger/internal/db"
	"github.com/stakelabs-io/staking-ledger/internal/staking"
)

// Bootstrap restores the pool from the last persisted snapshot. It runs
// synchronously before the service accepts any transition; a database
// without a snapshot means a fresh pool and is not an error.
func (s *Service) Bootstrap(ctx context.Context) error {
	return retry.Do(func() error {
		return s.restore(ctx)
	}, retryOptions(ctx)...)
}

func (s *Service) restore(ctx context.Context) error {
	stateDoc, err := s.db.GetPoolState(ctx)
	if err != nil {
		if db.IsNotFoundError(err) {
			log.Ctx(ctx).Info().Msg("no persisted pool state, starting fresh")
			return nil
		}
		return fmt.Errorf("failed to load pool state: %w", err)
	}

	state, err := stateDoc.ToPoolState()
	if err != nil {
		return fmt.Errorf("corrupt pool state document: %w", err)
	}

	recordDocs, err := s.db.GetAllStakeRecords(ctx)
	if err != nil {
		return fmt.Errorf("failed to load stake records: %w", err)
	}

	records := make(map[string]staking.StakeRecord, len(recordDocs))
	for _, doc := range recordDocs {
		rec, err := doc.ToStakeRecord()
		if err != nil {
			return fmt.Errorf("corrupt stake record for %s: %w", doc.Account, err)
		}
		records[doc.Account] = rec
	}

	s.pool.Restore(state, records)
	log.Ctx(ctx).Info().
		Int("accounts", len(records)).
		Str("total_staked", state.TotalStaked.String()).
		Msg("restored pool from snapshot")
	return nil
}
