package tokenledger

import (
	"context"

	sdkmath "cosmossdk.io/math"
)

// Ledger is the narrow view of the fungible-asset ledger the staking pool
// needs: pull from a payer into the pool, push from the pool to a payee,
// and read a balance. Every call can fail and a failure aborts the
// surrounding transition.
type Ledger interface {
	// TransferFrom moves amount from payer into the pool's account.
	TransferFrom(ctx context.Context, payer string, amount sdkmath.Int) error
	// Transfer moves amount from the pool's account to payee.
	Transfer(ctx context.Context, payee string, amount sdkmath.Int) error
	BalanceOf(ctx context.Context, account string) (sdkmath.Int, error)
}

// Provider resolves the ledger of an arbitrary token. Only the
// recover-token administrative operation needs it; everything else is
// bound to the staking token's ledger.
type Provider interface {
	LedgerFor(token string) (Ledger, error)
}
