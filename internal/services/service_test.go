package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/stakelabs-io/staking-ledger/internal/clients/guard"
	"github.com/stakelabs-io/staking-ledger/internal/clients/tokenledger"
	"github.com/stakelabs-io/staking-ledger/internal/clock"
	"github.com/stakelabs-io/staking-ledger/internal/config"
	"github.com/stakelabs-io/staking-ledger/internal/db"
	"github.com/stakelabs-io/staking-ledger/internal/db/model"
	"github.com/stakelabs-io/staking-ledger/internal/staking"
)

const (
	testToken    = "STK"
	testOwner    = "owner"
	testTreasury = "treasury"
)

// fakeDb is an in-memory DbInterface for unit tests. Write failures can
// be injected to exercise the write-behind error paths.
type fakeDb struct {
	mu           sync.Mutex
	stakeRecords map[string]model.StakeRecordDocument
	poolState    *model.PoolStateDocument
	events       []model.TransitionEventDocument
	failUpserts  bool
	failInserts  bool
}

func newFakeDb() *fakeDb {
	return &fakeDb{stakeRecords: make(map[string]model.StakeRecordDocument)}
}

func (f *fakeDb) Ping(context.Context) error { return nil }

func (f *fakeDb) UpsertStakeRecord(_ context.Context, doc *model.StakeRecordDocument) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failUpserts {
		return errors.New("injected upsert failure")
	}
	f.stakeRecords[doc.Account] = *doc
	return nil
}

func (f *fakeDb) GetStakeRecord(_ context.Context, account string) (*model.StakeRecordDocument, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc, ok := f.stakeRecords[account]
	if !ok {
		return nil, &db.NotFoundError{Key: account, Message: "stake record not found"}
	}
	return &doc, nil
}

func (f *fakeDb) GetAllStakeRecords(context.Context) ([]model.StakeRecordDocument, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	docs := make([]model.StakeRecordDocument, 0, len(f.stakeRecords))
	for _, doc := range f.stakeRecords {
		docs = append(docs, doc)
	}
	return docs, nil
}

func (f *fakeDb) UpsertPoolState(_ context.Context, doc *model.PoolStateDocument) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failUpserts {
		return errors.New("injected upsert failure")
	}
	f.poolState = doc
	return nil
}

func (f *fakeDb) GetPoolState(context.Context) (*model.PoolStateDocument, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.poolState == nil {
		return nil, &db.NotFoundError{Key: model.PoolStateDocumentID, Message: "pool state not found"}
	}
	return f.poolState, nil
}

func (f *fakeDb) InsertTransitionEvents(_ context.Context, docs []model.TransitionEventDocument) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failInserts {
		return errors.New("injected insert failure")
	}
	f.events = append(f.events, docs...)
	return nil
}

func (f *fakeDb) GetTransitionEventsByAccount(_ context.Context, account string) ([]model.TransitionEventDocument, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var docs []model.TransitionEventDocument
	for _, doc := range f.events {
		if doc.Account == account {
			docs = append(docs, doc)
		}
	}
	return docs, nil
}

type fakePublisher struct {
	mu     sync.Mutex
	events []staking.Event
	fail   bool
}

func (f *fakePublisher) PublishTransitionEvent(_ context.Context, event staking.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errors.New("injected publish failure")
	}
	f.events = append(f.events, event)
	return nil
}

func (f *fakePublisher) Shutdown() {}

func (f *fakePublisher) published() []staking.Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]staking.Event(nil), f.events...)
}

func testConfig() *config.Config {
	return &config.Config{
		Staking: config.StakingConfig{
			Token:              testToken,
			RewardRate:         100,
			LockPeriod:         7 * 24 * time.Hour,
			MinStake:           1,
			PenaltyBeneficiary: testTreasury,
			Owner:              testOwner,
		},
		Poller: config.PollerConfig{
			SnapshotPollingInterval: time.Minute,
		},
	}
}

type testEnv struct {
	service   *Service
	pool      *staking.Pool
	bank      *tokenledger.InMemoryBank
	gate      *guard.StaticGate
	clk       *clock.Manual
	db        *fakeDb
	publisher *fakePublisher
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := testConfig()
	clk := clock.NewManual(1_000_000)
	bank := tokenledger.NewInMemoryBank()
	ledger := bank.Get(testToken)
	ledger.Mint(tokenledger.PoolAccount, sdkmath.NewInt(1_000_000_000_000))

	pool, err := staking.NewPool(cfg.Staking.PoolParams(), clk, ledger)
	require.NoError(t, err)

	gate := guard.NewStaticGate(cfg.Staking.Owner)
	database := newFakeDb()
	publisher := &fakePublisher{}

	return &testEnv{
		service:   NewService(cfg, pool, database, clk, bank, gate, publisher),
		pool:      pool,
		bank:      bank,
		gate:      gate,
		clk:       clk,
		db:        database,
		publisher: publisher,
	}
}

func (e *testEnv) fund(account string, amount int64) {
	e.bank.Get(testToken).Mint(account, sdkmath.NewInt(amount))
}
