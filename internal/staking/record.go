package staking

import (
	sdkmath "cosmossdk.io/math"

	"github.com/stakelabs-io/staking-ledger/internal/types"
)

// StakeRecord is one account's entry in the stake ledger. Records are
// created on first access and zeroed, never deleted, on full withdrawal
// or emergency exit. An absent record behaves identically to a zeroed one.
type StakeRecord struct {
	// Amount is the active principal.
	Amount sdkmath.Int
	// DepositTimestamp is set to the current time on every deposit. A
	// top-up resets the lock clock for the whole balance, including
	// previously unlocked principal.
	DepositTimestamp int64
	// RewardDebt is the account's earned-but-unclaimed reward as of the
	// last settlement. It keeps going stale as time passes; read
	// pendingReward for the live figure.
	RewardDebt sdkmath.Int
	// RewardPerUnitPaid is the value of the global accumulator observed
	// at the last settlement.
	RewardPerUnitPaid sdkmath.Int
}

func newStakeRecord() *StakeRecord {
	return &StakeRecord{
		Amount:            sdkmath.ZeroInt(),
		RewardDebt:        sdkmath.ZeroInt(),
		RewardPerUnitPaid: sdkmath.ZeroInt(),
	}
}

// PoolState is the snapshot of the global accumulator state.
type PoolState struct {
	TotalStaked         sdkmath.Int
	RewardPerUnitStored sdkmath.Int
	LastUpdateTime      int64
}

// StakeInfo is the read projection of one account's position. Computed
// without mutating any state; PendingReward is always fresh.
type StakeInfo struct {
	Account       string           `json:"account"`
	StakedAmount  sdkmath.Int      `json:"staked_amount"`
	PendingReward sdkmath.Int      `json:"pending_reward"`
	UnlockTime    int64            `json:"unlock_time"`
	CanWithdraw   bool             `json:"can_withdraw"`
	State         types.StakeState `json:"state"`
}

// Event is a transition event emitted by the pool.
type Event struct {
	Type      types.EventType
	Account   string
	Amount    sdkmath.Int
	Timestamp int64
}
