package staking

import (
	"errors"

	sdkmath "cosmossdk.io/math"
)

// scale is the fixed-point precision of the reward-per-unit accumulator.
// Every division by it (and by totalStaked) floors.
var scale = sdkmath.NewIntWithDecimal(1, 18)

// penaltyDivisor fixes the emergency-exit penalty at a tenth of the
// withdrawn principal, floored.
var penaltyDivisor = sdkmath.NewInt(10)

// Params are the pool parameters, fixed at construction. There is no
// governance of these values after deployment.
type Params struct {
	// RewardRate is the nominal emission rate: tokens distributed per
	// second across the whole staked pool.
	RewardRate sdkmath.Int
	// LockPeriodSeconds is the interval after the most recent deposit
	// during which principal cannot be withdrawn via the normal path.
	LockPeriodSeconds int64
	// MinStake is the smallest accepted deposit amount.
	MinStake sdkmath.Int
	// PenaltyBeneficiary receives the emergency-exit penalty.
	PenaltyBeneficiary string
}

func (p Params) Validate() error {
	if p.RewardRate.IsNil() || p.RewardRate.IsNegative() {
		return errors.New("reward rate must be a non-negative amount")
	}
	if p.LockPeriodSeconds <= 0 {
		return errors.New("lock period must be positive")
	}
	if p.MinStake.IsNil() || !p.MinStake.IsPositive() {
		return errors.New("minimum stake must be a positive amount")
	}
	if p.PenaltyBeneficiary == "" {
		return errors.New("penalty beneficiary is required")
	}

	return nil
}
