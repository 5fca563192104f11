package staking

import (
	"sync"

	sdkmath "cosmossdk.io/math"

	"github.com/stakelabs-io/staking-ledger/internal/clients/tokenledger"
	"github.com/stakelabs-io/staking-ledger/internal/clock"
	"github.com/stakelabs-io/staking-ledger/internal/types"
)

// Pool is the staking ledger's single consistency domain: the global
// accumulator state plus every account's stake record. All transitions
// run under one mutex, so a transition fully commits or fully rejects
// before the next one observes anything. The mutex is also the
// reentrancy barrier around ledger callouts, and state changes are
// applied before any outbound transfer.
type Pool struct {
	mu     sync.Mutex
	params Params
	clock  clock.Clock
	ledger tokenledger.Ledger

	totalStaked         sdkmath.Int
	rewardPerUnitStored sdkmath.Int
	lastUpdateTime      int64
	records             map[string]*StakeRecord
}

func NewPool(params Params, clk clock.Clock, ledger tokenledger.Ledger) (*Pool, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	return &Pool{
		params:              params,
		clock:               clk,
		ledger:              ledger,
		totalStaked:         sdkmath.ZeroInt(),
		rewardPerUnitStored: sdkmath.ZeroInt(),
		lastUpdateTime:      clk.Now(),
		records:             make(map[string]*StakeRecord),
	}, nil
}

func (p *Pool) Params() Params {
	return p.params
}

// settleLocked advances the global accumulator to now and, for a real
// account, folds the account's accrued reward into RewardDebt. After it
// returns, RewardDebt is the absolute amount owed to the account and
// RewardPerUnitPaid equals the just-stored accumulator. Invoked at the
// start of every mutating transition; there is no background scheduler,
// so settlement rides on the transitions themselves.
func (p *Pool) settleLocked(now int64, account string) *StakeRecord {
	p.rewardPerUnitStored = p.currentRewardPerUnitLocked(now)
	p.lastUpdateTime = now

	if account == "" {
		return nil
	}

	rec := p.recordLocked(account)
	rec.RewardDebt = p.pendingRewardLocked(p.rewardPerUnitStored, rec)
	rec.RewardPerUnitPaid = p.rewardPerUnitStored
	return rec
}

// currentRewardPerUnitLocked projects the accumulator to now. While
// nothing is staked the accumulator does not grow: elapsed time over an
// empty pool is never rewarded to anyone, and the zero check is the
// single guard keeping the division well-defined.
func (p *Pool) currentRewardPerUnitLocked(now int64) sdkmath.Int {
	if p.totalStaked.IsZero() {
		return p.rewardPerUnitStored
	}

	elapsed := now - p.lastUpdateTime
	if elapsed <= 0 {
		return p.rewardPerUnitStored
	}

	accrued := sdkmath.NewInt(elapsed).
		Mul(p.params.RewardRate).
		Mul(scale).
		Quo(p.totalStaked)
	return p.rewardPerUnitStored.Add(accrued)
}

func (p *Pool) pendingRewardLocked(rewardPerUnit sdkmath.Int, rec *StakeRecord) sdkmath.Int {
	accrued := rec.Amount.
		Mul(rewardPerUnit.Sub(rec.RewardPerUnitPaid)).
		Quo(scale)
	return accrued.Add(rec.RewardDebt)
}

// recordLocked returns the account's record, constructing a zeroed one on
// first access.
func (p *Pool) recordLocked(account string) *StakeRecord {
	if rec, ok := p.records[account]; ok {
		return rec
	}
	rec := newStakeRecord()
	p.records[account] = rec
	return rec
}

func (p *Pool) unlockTime(rec *StakeRecord) int64 {
	return rec.DepositTimestamp + p.params.LockPeriodSeconds
}

// StakeInfo projects one account's position at the current instant.
func (p *Pool) StakeInfo(account string) StakeInfo {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.clock.Now()
	rewardPerUnit := p.currentRewardPerUnitLocked(now)

	rec, ok := p.records[account]
	if !ok {
		rec = newStakeRecord()
	}

	hasStake := rec.Amount.IsPositive()
	var unlockTime int64
	if hasStake {
		unlockTime = p.unlockTime(rec)
	}

	return StakeInfo{
		Account:       account,
		StakedAmount:  rec.Amount,
		PendingReward: p.pendingRewardLocked(rewardPerUnit, rec),
		UnlockTime:    unlockTime,
		CanWithdraw:   hasStake && now >= unlockTime,
		State:         types.DeriveStakeState(hasStake, unlockTime, now),
	}
}

func (p *Pool) TotalStaked() sdkmath.Int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.totalStaked
}

func (p *Pool) RewardPerUnitStored() sdkmath.Int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rewardPerUnitStored
}

// CurrentRewardPerUnit projects the accumulator to the current instant
// without storing it.
func (p *Pool) CurrentRewardPerUnit() sdkmath.Int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.currentRewardPerUnitLocked(p.clock.Now())
}

// Record returns a copy of the account's stake record and whether one
// exists.
func (p *Pool) Record(account string) (StakeRecord, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	rec, ok := p.records[account]
	if !ok {
		return *newStakeRecord(), false
	}
	return *rec, true
}

// State returns the global accumulator state.
func (p *Pool) State() PoolState {
	p.mu.Lock()
	defer p.mu.Unlock()

	return PoolState{
		TotalStaked:         p.totalStaked,
		RewardPerUnitStored: p.rewardPerUnitStored,
		LastUpdateTime:      p.lastUpdateTime,
	}
}

// Snapshot returns the global state and a copy of every stake record,
// taken atomically. Used by the write-behind persistence poller.
func (p *Pool) Snapshot() (PoolState, map[string]StakeRecord) {
	p.mu.Lock()
	defer p.mu.Unlock()

	records := make(map[string]StakeRecord, len(p.records))
	for account, rec := range p.records {
		records[account] = *rec
	}

	return PoolState{
		TotalStaked:         p.totalStaked,
		RewardPerUnitStored: p.rewardPerUnitStored,
		LastUpdateTime:      p.lastUpdateTime,
	}, records
}

// Restore overwrites the pool with a previously persisted snapshot.
// Called once at startup, before any transition is accepted.
func (p *Pool) Restore(state PoolState, records map[string]StakeRecord) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.totalStaked = state.TotalStaked
	p.rewardPerUnitStored = state.RewardPerUnitStored
	p.lastUpdateTime = state.LastUpdateTime
	p.records = make(map[string]*StakeRecord, len(records))
	for account, rec := range records {
		copied := rec
		p.records[account] = &copied
	}
}
