package services

import (
	"github.com/stakelabs-io/staking-ledger/internal/clients/guard"
	"github.com/stakelabs-io/staking-ledger/internal/clients/tokenledger"
	"github.com/stakelabs-io/staking-ledger/internal/clock"
	"github.com/stakelabs-io/staking-ledger/internal/config"
	"github.com/stakelabs-io/staking-ledger/internal/db"
	"github.com/stakelabs-io/staking-ledger/internal/queue"
	"github.com/stakelabs-io/staking-ledger/internal/staking"
)

// Service wires the in-memory staking pool to its collaborators: the
// persistence layer, the transition event queue and the access gate.
// The pool is the consistency domain; the service handles everything
// around a transition that must not influence its outcome.
type Service struct {
	cfg       *config.Config
	pool      *staking.Pool
	db        db.DbInterface
	clock     clock.Clock
	ledgers   tokenledger.Provider
	gate      guard.Gate
	publisher queue.EventPublisher
}

func NewService(
	cfg *config.Config,
	pool *staking.Pool,
	database db.DbInterface,
	clk clock.Clock,
	ledgers tokenledger.Provider,
	gate guard.Gate,
	publisher queue.EventPublisher,
) *Service {
	return &Service{
		cfg:       cfg,
		pool:      pool,
		db:        database,
		clock:     clk,
		ledgers:   ledgers,
		gate:      gate,
		publisher: publisher,
	}
}
