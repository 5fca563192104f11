package services

import (
	"context"
	"net/http"
	"time"

	sdkmath "cosmossdk.io/math"
	"github.com/avast/retry-go/v4"
	"github.com/rs/zerolog/log"

	"github.com/stakelabs-io/staking-ledger/internal/db/model"
	"github.com/stakelabs-io/staking-ledger/internal/observability/metrics"
	"github.com/stakelabs-io/staking-ledger/internal/staking"
	"github.com/stakelabs-io/staking-ledger/internal/types"
	"github.com/stakelabs-io/staking-ledger/pkg"
)

// Deposit stakes amount for account. Deposits are refused while the
// pool is paused; the other transitions stay available so stakers can
// always exit.
func (s *Service) Deposit(ctx context.Context, account string, amount sdkmath.Int) *types.Error {
	if err := validateAccount(account); err != nil {
		return err
	}
	if s.gate.IsPaused() {
		return types.NewErrorWithMsg(
			http.StatusForbidden, types.AuthorizationError, "deposits are paused",
		)
	}

	done := metrics.StartTransitionDurationTimer("deposit")

	events, err := s.pool.Deposit(ctx, account, amount)
	if err != nil {
		done(true)
		return coreError(err)
	}
	done(false)

	s.recordTransition(ctx, account, events)
	return nil
}

// Withdraw returns unlocked principal to account, paying out any
// settled reward alongside it.
func (s *Service) Withdraw(ctx context.Context, account string, amount sdkmath.Int) *types.Error {
	if err := validateAccount(account); err != nil {
		return err
	}

	done := metrics.StartTransitionDurationTimer("withdraw")

	events, err := s.pool.Withdraw(ctx, account, amount)
	if err != nil {
		done(true)
		return coreError(err)
	}
	done(false)

	s.recordTransition(ctx, account, events)
	return nil
}

// ClaimReward pays out the account's accrued reward without touching
// the principal.
func (s *Service) ClaimReward(ctx context.Context, account string) *types.Error {
	if err := validateAccount(account); err != nil {
		return err
	}

	done := metrics.StartTransitionDurationTimer("claim_reward")

	events, err := s.pool.ClaimReward(ctx, account)
	if err != nil {
		done(true)
		return coreError(err)
	}
	done(false)

	s.recordTransition(ctx, account, events)
	return nil
}

// EmergencyWithdraw exits the account's whole position before the lock
// expires, forfeiting rewards and a penalty share of the principal.
func (s *Service) EmergencyWithdraw(ctx context.Context, account string) *types.Error {
	if err := validateAccount(account); err != nil {
		return err
	}

	done := metrics.StartTransitionDurationTimer("emergency_withdraw")

	events, err := s.pool.EmergencyWithdraw(ctx, account)
	if err != nil {
		done(true)
		return coreError(err)
	}
	done(false)

	s.recordTransition(ctx, account, events)
	return nil
}

// recordTransition persists the account's post-transition record, the
// global state and the audit log entries, then publishes the events.
// The transition itself is already committed in the pool; failures here
// are retried and then logged, never surfaced to the caller.
func (s *Service) recordTransition(ctx context.Context, account string, events []staking.Event) {
	now := s.clock.Now()
	rec, _ := s.pool.Record(account)

	err := retry.Do(func() error {
		if err := s.db.UpsertStakeRecord(ctx, model.FromStakeRecord(account, rec, now)); err != nil {
			return err
		}
		return s.db.UpsertPoolState(ctx, model.FromPoolState(s.pool.State(), now))
	}, retryOptions(ctx)...)
	if err != nil {
		metrics.RecordSnapshotPersistError()
		log.Ctx(ctx).Error().Err(err).
			Str("account", account).
			Msg("failed to persist stake record after transition")
	}

	docs := make([]model.TransitionEventDocument, 0, len(events))
	for _, event := range events {
		docs = append(docs, *model.FromTransitionEvent(event))
	}
	err = retry.Do(func() error {
		return s.db.InsertTransitionEvents(ctx, docs)
	}, retryOptions(ctx)...)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).
			Str("account", account).
			Msg("failed to append transition events")
	}

	for _, event := range events {
		err := retry.Do(func() error {
			return s.publisher.PublishTransitionEvent(ctx, event)
		}, retryOptions(ctx)...)
		if err != nil {
			metrics.RecordQueueSendError()
			log.Ctx(ctx).Error().Err(err).
				Str("account", account).
				Stringer("type", event.Type).
				Msg("failed to publish transition event")
		}
	}
}

func retryOptions(ctx context.Context) []retry.Option {
	return []retry.Option{
		retry.Context(ctx),
		retry.Attempts(3),
		retry.Delay(200 * time.Millisecond),
		retry.LastErrorOnly(true),
	}
}

func validateAccount(account string) *types.Error {
	if err := pkg.ValidateAccount(account); err != nil {
		return types.NewError(http.StatusBadRequest, types.ValidationError, err)
	}
	return nil
}

// coreError maps the pool's typed errors onto transport errors.
func coreError(err error) *types.Error {
	switch {
	case staking.IsValidationError(err):
		return types.NewError(http.StatusBadRequest, types.ValidationError, err)
	case staking.IsStateError(err):
		return types.NewError(http.StatusConflict, types.StateError, err)
	case staking.IsAuthorizationError(err):
		return types.NewError(http.StatusForbidden, types.AuthorizationError, err)
	case staking.IsTransferError(err):
		return types.NewError(http.StatusBadGateway, types.TransferError, err)
	default:
		return types.NewInternalServiceError(err)
	}
}
