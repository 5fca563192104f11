package model

import (
	"fmt"

	sdkmath "cosmossdk.io/math"

	"github.com/stakelabs-io/staking-ledger/internal/staking"
)

const StakeRecordCollection = "stake_records"

// StakeRecordDocument is the persisted form of one account's stake
// record. Amounts are stored as decimal strings to keep arbitrary
// precision intact.
type StakeRecordDocument struct {
	Account           string `bson:"_id"`
	Amount            string `bson:"amount"`
	DepositTimestamp  int64  `bson:"deposit_timestamp"`
	RewardDebt        string `bson:"reward_debt"`
	RewardPerUnitPaid string `bson:"reward_per_unit_paid"`
	UpdatedAt         int64  `bson:"updated_at"`
}

func FromStakeRecord(account string, rec staking.StakeRecord, updatedAt int64) *StakeRecordDocument {
	return &StakeRecordDocument{
		Account:           account,
		Amount:            rec.Amount.String(),
		DepositTimestamp:  rec.DepositTimestamp,
		RewardDebt:        rec.RewardDebt.String(),
		RewardPerUnitPaid: rec.RewardPerUnitPaid.String(),
		UpdatedAt:         updatedAt,
	}
}

func (d *StakeRecordDocument) ToStakeRecord() (staking.StakeRecord, error) {
	amount, err := parseAmount("amount", d.Amount)
	if err != nil {
		return staking.StakeRecord{}, err
	}
	rewardDebt, err := parseAmount("reward_debt", d.RewardDebt)
	if err != nil {
		return staking.StakeRecord{}, err
	}
	rewardPerUnitPaid, err := parseAmount("reward_per_unit_paid", d.RewardPerUnitPaid)
	if err != nil {
		return staking.StakeRecord{}, err
	}

	return staking.StakeRecord{
		Amount:            amount,
		DepositTimestamp:  d.DepositTimestamp,
		RewardDebt:        rewardDebt,
		RewardPerUnitPaid: rewardPerUnitPaid,
	}, nil
}

func parseAmount(field, value string) (sdkmath.Int, error) {
	parsed, ok := sdkmath.NewIntFromString(value)
	if !ok {
		return sdkmath.Int{}, fmt.Errorf("invalid %s value %q", field, value)
	}
	return parsed, nil
}
