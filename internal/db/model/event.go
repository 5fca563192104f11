package model

import (
	"github.com/google/uuid"

	"github.com/stakelabs-io/staking-ledger/internal/staking"
)

const TransitionEventCollection = "transition_events"

// TransitionEventDocument is one entry of the append-only audit log of
// staking transitions.
type TransitionEventDocument struct {
	ID        string `bson:"_id"`
	Type      string `bson:"type"`
	Account   string `bson:"account"`
	Amount    string `bson:"amount"`
	Timestamp int64  `bson:"timestamp"`
}

func FromTransitionEvent(event staking.Event) *TransitionEventDocument {
	return &TransitionEventDocument{
		ID:        uuid.New().String(),
		Type:      event.Type.String(),
		Account:   event.Account,
		Amount:    event.Amount.String(),
		Timestamp: event.Timestamp,
	}
}
