//go:build integration

package db_test

import (
	"testing"

	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stakelabs-io/staking-ledger/internal/db"
	"github.com/stakelabs-io/staking-ledger/internal/db/model"
	"github.com/stakelabs-io/staking-ledger/internal/staking"
	"github.com/stakelabs-io/staking-ledger/internal/types"
	"github.com/stakelabs-io/staking-ledger/testutil"
)

func TestTransitionEventLog(t *testing.T) {
	ctx := t.Context()
	t.Cleanup(func() {
		resetDatabase(t)
	})

	account := testutil.RandomAccount()

	t.Run("empty insert is a no-op", func(t *testing.T) {
		err := testDB.InsertTransitionEvents(ctx, nil)
		require.NoError(t, err)
	})
	t.Run("insert and read back sorted by timestamp", func(t *testing.T) {
		docs := []model.TransitionEventDocument{
			*model.FromTransitionEvent(staking.Event{
				Type:      types.EventStaked,
				Account:   account,
				Amount:    sdkmath.NewInt(1_000),
				Timestamp: 1_000_000,
			}),
			*model.FromTransitionEvent(staking.Event{
				Type:      types.EventRewardClaimed,
				Account:   account,
				Amount:    sdkmath.NewInt(360_000),
				Timestamp: 1_003_600,
			}),
		}
		// insert out of order, the read side sorts
		err := testDB.InsertTransitionEvents(ctx, []model.TransitionEventDocument{docs[1], docs[0]})
		require.NoError(t, err)

		found, err := testDB.GetTransitionEventsByAccount(ctx, account)
		require.NoError(t, err)
		require.Len(t, found, 2)
		assert.Equal(t, types.EventStaked.String(), found[0].Type)
		assert.Equal(t, types.EventRewardClaimed.String(), found[1].Type)
	})
	t.Run("duplicate ids are rejected", func(t *testing.T) {
		doc := model.FromTransitionEvent(staking.Event{
			Type:      types.EventWithdrawn,
			Account:   account,
			Amount:    sdkmath.NewInt(500),
			Timestamp: 1_010_000,
		})
		err := testDB.InsertTransitionEvents(ctx, []model.TransitionEventDocument{*doc})
		require.NoError(t, err)

		err = testDB.InsertTransitionEvents(ctx, []model.TransitionEventDocument{*doc})
		require.Error(t, err)
		assert.True(t, db.IsDuplicateKeyError(err))
	})
	t.Run("unknown account yields nothing", func(t *testing.T) {
		found, err := testDB.GetTransitionEventsByAccount(ctx, "unknown-account")
		require.NoError(t, err)
		assert.Empty(t, found)
	})
}
