package services

import (
	"context"
	"fmt"
	"net/http"

	sdkmath "cosmossdk.io/math"

	"github.com/stakelabs-io/staking-ledger/internal/staking"
	"github.com/stakelabs-io/staking-ledger/internal/types"
)

// PoolStatus is the public projection of the pool's global state.
type PoolStatus struct {
	Token               string      `json:"token"`
	TotalStaked         sdkmath.Int `json:"total_staked"`
	RewardPerUnitStored sdkmath.Int `json:"reward_per_unit_stored"`
	RewardRate          sdkmath.Int `json:"reward_rate"`
	LockPeriodSeconds   int64       `json:"lock_period_seconds"`
	MinStake            sdkmath.Int `json:"min_stake"`
	Paused              bool        `json:"paused"`
}

// TransitionRecord is one audit-log entry of an account's history.
type TransitionRecord struct {
	Type      string `json:"type"`
	Amount    string `json:"amount"`
	Timestamp int64  `json:"timestamp"`
}

// StakeInfo projects one account's position at the current instant.
func (s *Service) StakeInfo(account string) (staking.StakeInfo, *types.Error) {
	if err := validateAccount(account); err != nil {
		return staking.StakeInfo{}, err
	}
	return s.pool.StakeInfo(account), nil
}

func (s *Service) PoolStatus() PoolStatus {
	params := s.pool.Params()
	return PoolStatus{
		Token:               s.cfg.Staking.Token,
		TotalStaked:         s.pool.TotalStaked(),
		RewardPerUnitStored: s.pool.CurrentRewardPerUnit(),
		RewardRate:          params.RewardRate,
		LockPeriodSeconds:   params.LockPeriodSeconds,
		MinStake:            params.MinStake,
		Paused:              s.gate.IsPaused(),
	}
}

// AccountHistory reads the account's transition audit log, oldest
// first.
func (s *Service) AccountHistory(ctx context.Context, account string) ([]TransitionRecord, *types.Error) {
	if err := validateAccount(account); err != nil {
		return nil, err
	}

	docs, err := s.db.GetTransitionEventsByAccount(ctx, account)
	if err != nil {
		return nil, types.NewInternalServiceError(
			fmt.Errorf("failed to load transition events for %s: %w", account, err),
		)
	}
	if len(docs) == 0 {
		return nil, types.NewErrorWithMsg(
			http.StatusNotFound, types.NotFound,
			fmt.Sprintf("no transitions recorded for account %s", account),
		)
	}

	records := make([]TransitionRecord, 0, len(docs))
	for _, doc := range docs {
		records = append(records, TransitionRecord{
			Type:      doc.Type,
			Amount:    doc.Amount,
			Timestamp: doc.Timestamp,
		})
	}
	return records, nil
}
