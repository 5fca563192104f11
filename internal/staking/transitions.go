package staking

import (
	"context"
	"fmt"

	sdkmath "cosmossdk.io/math"
	"github.com/rs/zerolog/log"

	"github.com/stakelabs-io/staking-ledger/internal/types"
)

// Deposit stakes amount for account. The inbound transfer is attempted
// before any principal mutation, so a ledger failure leaves the pool
// untouched. Depositing on top of an existing stake resets the lock
// clock for the entire balance.
func (p *Pool) Deposit(ctx context.Context, account string, amount sdkmath.Int) ([]Event, error) {
	if amount.IsNil() || amount.LT(p.params.MinStake) {
		return nil, &ValidationError{Message: fmt.Sprintf(
			"deposit amount %s is below the minimum stake %s", amount, p.params.MinStake,
		)}
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.clock.Now()
	rec := p.settleLocked(now, account)

	if err := p.ledger.TransferFrom(ctx, account, amount); err != nil {
		return nil, &TransferError{Op: "deposit", Err: err}
	}

	rec.Amount = rec.Amount.Add(amount)
	rec.DepositTimestamp = now
	p.totalStaked = p.totalStaked.Add(amount)

	return []Event{{
		Type:      types.EventStaked,
		Account:   account,
		Amount:    amount,
		Timestamp: now,
	}}, nil
}

// Withdraw returns amount of unlocked principal to account, paying out
// any settled reward alongside it. Principal and total are debited
// before the outbound transfers; a ledger failure rolls everything back.
func (p *Pool) Withdraw(ctx context.Context, account string, amount sdkmath.Int) ([]Event, error) {
	if amount.IsNil() || !amount.IsPositive() {
		return nil, &ValidationError{Message: "withdraw amount must be positive"}
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.clock.Now()
	rec := p.settleLocked(now, account)

	if rec.Amount.LT(amount) {
		return nil, &ValidationError{Message: fmt.Sprintf(
			"insufficient staked balance: have %s, want %s", rec.Amount, amount,
		)}
	}
	if unlockTime := p.unlockTime(rec); now < unlockTime {
		return nil, &StateError{Message: fmt.Sprintf(
			"principal is locked until %d (now %d)", unlockTime, now,
		)}
	}

	prev := *rec
	prevTotal := p.totalStaked
	reward := rec.RewardDebt

	rec.Amount = rec.Amount.Sub(amount)
	rec.RewardDebt = sdkmath.ZeroInt()
	p.totalStaked = p.totalStaked.Sub(amount)

	if err := p.ledger.Transfer(ctx, account, amount); err != nil {
		*rec = prev
		p.totalStaked = prevTotal
		return nil, &TransferError{Op: "withdraw principal", Err: err}
	}

	events := []Event{{
		Type:      types.EventWithdrawn,
		Account:   account,
		Amount:    amount,
		Timestamp: now,
	}}

	if reward.IsPositive() {
		if err := p.ledger.Transfer(ctx, account, reward); err != nil {
			p.clawBack(ctx, account, amount)
			*rec = prev
			p.totalStaked = prevTotal
			return nil, &TransferError{Op: "withdraw reward", Err: err}
		}
		events = append(events, Event{
			Type:      types.EventRewardClaimed,
			Account:   account,
			Amount:    reward,
			Timestamp: now,
		})
	}

	return events, nil
}

// ClaimReward pays out the account's settled reward. Claiming twice with
// no elapsed time in between yields nothing to claim on the second call.
func (p *Pool) ClaimReward(ctx context.Context, account string) ([]Event, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.clock.Now()
	rec := p.settleLocked(now, account)

	reward := rec.RewardDebt
	if !reward.IsPositive() {
		return nil, &StateError{Message: "no reward to claim"}
	}

	rec.RewardDebt = sdkmath.ZeroInt()

	if err := p.ledger.Transfer(ctx, account, reward); err != nil {
		rec.RewardDebt = reward
		return nil, &TransferError{Op: "claim reward", Err: err}
	}

	return []Event{{
		Type:      types.EventRewardClaimed,
		Account:   account,
		Amount:    reward,
		Timestamp: now,
	}}, nil
}

// EmergencyWithdraw bypasses the lock period: the account's whole
// principal is returned minus a floored tenth routed to the penalty
// beneficiary, and any pending reward is forfeited.
func (p *Pool) EmergencyWithdraw(ctx context.Context, account string) ([]Event, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.clock.Now()
	rec := p.settleLocked(now, account)

	if !rec.Amount.IsPositive() {
		return nil, &StateError{Message: "no active stake to withdraw"}
	}

	staked := rec.Amount
	penalty := staked.Quo(penaltyDivisor)
	payout := staked.Sub(penalty)

	prev := *rec
	prevTotal := p.totalStaked

	rec.Amount = sdkmath.ZeroInt()
	rec.RewardDebt = sdkmath.ZeroInt()
	p.totalStaked = p.totalStaked.Sub(staked)

	if err := p.ledger.Transfer(ctx, account, payout); err != nil {
		*rec = prev
		p.totalStaked = prevTotal
		return nil, &TransferError{Op: "emergency withdraw payout", Err: err}
	}

	if penalty.IsPositive() {
		if err := p.ledger.Transfer(ctx, p.params.PenaltyBeneficiary, penalty); err != nil {
			p.clawBack(ctx, account, payout)
			*rec = prev
			p.totalStaked = prevTotal
			return nil, &TransferError{Op: "emergency withdraw penalty", Err: err}
		}
	}

	return []Event{{
		Type:      types.EventEmergencyWithdraw,
		Account:   account,
		Amount:    payout,
		Timestamp: now,
	}}, nil
}

// clawBack reverses an already-completed outbound transfer while rolling
// back a transition whose later transfer failed. If the claw-back itself
// fails the ledger collaborator is broken; the local state is still
// restored and the discrepancy is logged.
func (p *Pool) clawBack(ctx context.Context, payee string, amount sdkmath.Int) {
	if err := p.ledger.TransferFrom(ctx, payee, amount); err != nil {
		log.Ctx(ctx).Error().
			Err(err).
			Str("account", payee).
			Str("amount", amount.String()).
			Msg("failed to claw back partial transfer during rollback")
	}
}
