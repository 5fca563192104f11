package types

// Enum values for the per-account stake state. The state is implicit in
// the stake record: it is derived from the principal amount and the
// deposit timestamp, never stored.
type StakeState string

const (
	StateUnstaked StakeState = "UNSTAKED"
	StateLocked   StakeState = "LOCKED"
	StateUnlocked StakeState = "UNLOCKED"
)

func (s StakeState) String() string {
	return string(s)
}

// DeriveStakeState computes the state for a record with the given
// principal and unlock time at instant now.
func DeriveStakeState(hasStake bool, unlockTime, now int64) StakeState {
	switch {
	case !hasStake:
		return StateUnstaked
	case now < unlockTime:
		return StateLocked
	default:
		return StateUnlocked
	}
}
