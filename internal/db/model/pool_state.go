package model

import (
	"github.com/stakelabs-io/staking-ledger/internal/staking"
)

const (
	PoolStateCollection = "pool_state"
	// PoolStateDocumentID is the _id of the singleton document.
	PoolStateDocumentID = "pool_state"
)

type PoolStateDocument struct {
	ID                  string `bson:"_id"`
	TotalStaked         string `bson:"total_staked"`
	RewardPerUnitStored string `bson:"reward_per_unit_stored"`
	LastUpdateTime      int64  `bson:"last_update_time"`
	UpdatedAt           int64  `bson:"updated_at"`
}

func FromPoolState(state staking.PoolState, updatedAt int64) *PoolStateDocument {
	return &PoolStateDocument{
		ID:                  PoolStateDocumentID,
		TotalStaked:         state.TotalStaked.String(),
		RewardPerUnitStored: state.RewardPerUnitStored.String(),
		LastUpdateTime:      state.LastUpdateTime,
		UpdatedAt:           updatedAt,
	}
}

func (d *PoolStateDocument) ToPoolState() (staking.PoolState, error) {
	totalStaked, err := parseAmount("total_staked", d.TotalStaked)
	if err != nil {
		return staking.PoolState{}, err
	}
	rewardPerUnitStored, err := parseAmount("reward_per_unit_stored", d.RewardPerUnitStored)
	if err != nil {
		return staking.PoolState{}, err
	}

	return staking.PoolState{
		TotalStaked:         totalStaked,
		RewardPerUnitStored: rewardPerUnitStored,
		LastUpdateTime:      d.LastUpdateTime,
	}, nil
}
