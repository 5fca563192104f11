package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/stakelabs-io/staking-ledger/internal/clients/tokenledger"
	"github.com/stakelabs-io/staking-ledger/internal/types"
)

// Pause stops new deposits. Withdrawals, claims and emergency exits
// remain available while paused.
func (s *Service) Pause(ctx context.Context, caller string) *types.Error {
	if err := s.requireOwner(caller); err != nil {
		return err
	}

	s.gate.Pause()
	log.Ctx(ctx).Info().Str("caller", caller).Msg("pool paused")
	return nil
}

func (s *Service) Unpause(ctx context.Context, caller string) *types.Error {
	if err := s.requireOwner(caller); err != nil {
		return err
	}

	s.gate.Unpause()
	log.Ctx(ctx).Info().Str("caller", caller).Msg("pool unpaused")
	return nil
}

// RecoverToken sweeps the pool's full balance of a foreign token to the
// owner. The staking token itself is never recoverable: its pool
// balance backs the staked principal.
func (s *Service) RecoverToken(ctx context.Context, caller, token string) *types.Error {
	if err := s.requireOwner(caller); err != nil {
		return err
	}
	if token == "" {
		return types.NewErrorWithMsg(
			http.StatusBadRequest, types.ValidationError, "token is required",
		)
	}
	if token == s.cfg.Staking.Token {
		return types.NewErrorWithMsg(
			http.StatusBadRequest, types.ValidationError,
			fmt.Sprintf("cannot recover the staking token %s", token),
		)
	}

	ledger, err := s.ledgers.LedgerFor(token)
	if err != nil {
		return types.NewError(
			http.StatusBadGateway, types.TransferError,
			fmt.Errorf("failed to resolve ledger for token %s: %w", token, err),
		)
	}

	balance, err := ledger.BalanceOf(ctx, tokenledger.PoolAccount)
	if err != nil {
		return types.NewError(
			http.StatusBadGateway, types.TransferError,
			fmt.Errorf("failed to read pool balance of token %s: %w", token, err),
		)
	}
	if !balance.IsPositive() {
		return types.NewErrorWithMsg(
			http.StatusConflict, types.StateError,
			fmt.Sprintf("nothing to recover for token %s", token),
		)
	}

	if err := ledger.Transfer(ctx, s.cfg.Staking.Owner, balance); err != nil {
		return types.NewError(
			http.StatusBadGateway, types.TransferError,
			fmt.Errorf("failed to sweep token %s: %w", token, err),
		)
	}

	log.Ctx(ctx).Info().
		Str("caller", caller).
		Str("token", token).
		Str("amount", balance.String()).
		Msg("recovered foreign token balance")
	return nil
}

func (s *Service) requireOwner(caller string) *types.Error {
	if !s.gate.IsOwner(caller) {
		return types.NewErrorWithMsg(
			http.StatusForbidden, types.AuthorizationError,
			"caller is not the pool owner",
		)
	}
	return nil
}
