package types

type EventType string

func (e EventType) String() string {
	return string(e)
}

// Transition event types emitted by the staking pool and published to the
// event exchange.
const (
	EventStaked            EventType = "stakingledger.v1.Staked"
	EventWithdrawn         EventType = "stakingledger.v1.Withdrawn"
	EventRewardClaimed     EventType = "stakingledger.v1.RewardClaimed"
	EventEmergencyWithdraw EventType = "stakingledger.v1.EmergencyWithdraw"
)
