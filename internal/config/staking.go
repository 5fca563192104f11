package config

import (
	"errors"
	"time"

	sdkmath "cosmossdk.io/math"

	"github.com/stakelabs-io/staking-ledger/internal/staking"
)

type StakingConfig struct {
	// Token is the staking asset identifier on the token ledger.
	Token string `mapstructure:"token"`
	// RewardRate is the pool-wide emission in tokens per second.
	RewardRate int64 `mapstructure:"reward-rate"`
	// LockPeriod is the withdrawal lock after the most recent deposit.
	LockPeriod time.Duration `mapstructure:"lock-period"`
	// MinStake is the smallest accepted deposit amount.
	MinStake int64 `mapstructure:"min-stake"`
	// PenaltyBeneficiary receives the emergency-exit penalty.
	PenaltyBeneficiary string `mapstructure:"penalty-beneficiary"`
	// Owner is the identity allowed to call administrative operations.
	Owner string `mapstructure:"owner"`
}

func (cfg *StakingConfig) Validate() error {
	if cfg.Token == "" {
		return errors.New("staking token is required")
	}
	if cfg.RewardRate < 0 {
		return errors.New("reward-rate must not be negative")
	}
	if cfg.LockPeriod <= 0 {
		return errors.New("lock-period must be positive")
	}
	if cfg.MinStake <= 0 {
		return errors.New("min-stake must be positive")
	}
	if cfg.PenaltyBeneficiary == "" {
		return errors.New("penalty-beneficiary is required")
	}
	if cfg.Owner == "" {
		return errors.New("owner is required")
	}

	return nil
}

// PoolParams converts the config section into the pool's parameter set.
func (cfg *StakingConfig) PoolParams() staking.Params {
	return staking.Params{
		RewardRate:         sdkmath.NewInt(cfg.RewardRate),
		LockPeriodSeconds:  int64(cfg.LockPeriod.Seconds()),
		MinStake:           sdkmath.NewInt(cfg.MinStake),
		PenaltyBeneficiary: cfg.PenaltyBeneficiary,
	}
}
