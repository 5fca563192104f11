package tokenledger

import (
	"context"
	"fmt"
	"sync"

	sdkmath "cosmossdk.io/math"
)

// PoolAccount is the reserved account holding the pool's own balance on
// every in-memory ledger.
const PoolAccount = "staking-pool"

// InMemoryLedger is a process-local fungible-asset ledger for one token.
// It backs the local deployment mode and the test suites.
type InMemoryLedger struct {
	mu       sync.Mutex
	token    string
	balances map[string]sdkmath.Int
}

func NewInMemoryLedger(token string) *InMemoryLedger {
	return &InMemoryLedger{
		token:    token,
		balances: make(map[string]sdkmath.Int),
	}
}

func (l *InMemoryLedger) Token() string {
	return l.token
}

// Mint credits amount to account out of thin air. Test and seed helper.
func (l *InMemoryLedger) Mint(account string, amount sdkmath.Int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.balances[account] = l.balanceLocked(account).Add(amount)
}

func (l *InMemoryLedger) TransferFrom(_ context.Context, payer string, amount sdkmath.Int) error {
	return l.move(payer, PoolAccount, amount)
}

func (l *InMemoryLedger) Transfer(_ context.Context, payee string, amount sdkmath.Int) error {
	return l.move(PoolAccount, payee, amount)
}

func (l *InMemoryLedger) BalanceOf(_ context.Context, account string) (sdkmath.Int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balanceLocked(account), nil
}

func (l *InMemoryLedger) move(from, to string, amount sdkmath.Int) error {
	if !amount.IsPositive() {
		return fmt.Errorf("transfer amount must be positive, got %s", amount)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	fromBalance := l.balanceLocked(from)
	if fromBalance.LT(amount) {
		return fmt.Errorf(
			"insufficient %s balance for %s: have %s, need %s",
			l.token, from, fromBalance, amount,
		)
	}

	l.balances[from] = fromBalance.Sub(amount)
	l.balances[to] = l.balanceLocked(to).Add(amount)
	return nil
}

func (l *InMemoryLedger) balanceLocked(account string) sdkmath.Int {
	if balance, ok := l.balances[account]; ok {
		return balance
	}
	return sdkmath.ZeroInt()
}

// InMemoryBank is a Provider over a set of in-memory ledgers, one per
// token, created on first access.
type InMemoryBank struct {
	mu      sync.Mutex
	ledgers map[string]*InMemoryLedger
}

func NewInMemoryBank() *InMemoryBank {
	return &InMemoryBank{ledgers: make(map[string]*InMemoryLedger)}
}

func (b *InMemoryBank) LedgerFor(token string) (Ledger, error) {
	return b.Get(token), nil
}

// Get returns the concrete ledger for token, creating it if absent.
func (b *InMemoryBank) Get(token string) *InMemoryLedger {
	b.mu.Lock()
	defer b.mu.Unlock()
	if l, ok := b.ledgers[token]; ok {
		return l
	}
	l := NewInMemoryLedger(token)
	b.ledgers[token] = l
	return l
}
