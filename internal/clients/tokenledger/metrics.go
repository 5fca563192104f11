package tokenledger

import (
	"context"
	"time"

	sdkmath "cosmossdk.io/math"

	"github.com/stakelabs-io/staking-ledger/internal/observability/metrics"
)

type LedgerWithMetrics struct {
	ledger Ledger
}

func NewLedgerWithMetrics(ledger Ledger) *LedgerWithMetrics {
	return &LedgerWithMetrics{ledger: ledger}
}

func (l *LedgerWithMetrics) TransferFrom(ctx context.Context, payer string, amount sdkmath.Int) error {
	return l.run("TransferFrom", func() error {
		return l.ledger.TransferFrom(ctx, payer, amount)
	})
}

func (l *LedgerWithMetrics) Transfer(ctx context.Context, payee string, amount sdkmath.Int) error {
	return l.run("Transfer", func() error {
		return l.ledger.Transfer(ctx, payee, amount)
	})
}

func (l *LedgerWithMetrics) BalanceOf(ctx context.Context, account string) (result sdkmath.Int, err error) {
	//nolint:errcheck
	l.run("BalanceOf", func() error {
		result, err = l.ledger.BalanceOf(ctx, account)
		return err
	})

	return
}

func (l *LedgerWithMetrics) run(method string, f func() error) error {
	start := time.Now()
	err := f()
	metrics.RecordLedgerClientLatency(time.Since(start), method, err != nil)

	return err
}
