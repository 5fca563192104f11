package queue

import (
	"context"

	"github.com/stakelabs-io/staking-ledger/internal/staking"
)

// EventPublisher pushes staking transition events to the downstream
// exchange. Publication failures are the caller's to retry; the staking
// state itself never depends on them.
type EventPublisher interface {
	PublishTransitionEvent(ctx context.Context, event staking.Event) error
	Shutdown()
}
