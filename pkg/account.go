package pkg

import (
	"fmt"
)

const maxAccountLength = 128

// ValidateAccount checks that an account identifier is non-empty, of
// bounded length and printable ASCII without whitespace. The staking
// ledger treats accounts as opaque strings otherwise.
func ValidateAccount(account string) error {
	if account == "" {
		return fmt.Errorf("account is required")
	}
	if len(account) > maxAccountLength {
		return fmt.Errorf("account exceeds %d characters", maxAccountLength)
	}
	for i := 0; i < len(account); i++ {
		c := account[i]
		if c <= ' ' || c > '~' {
			return fmt.Errorf("account contains invalid character at position %d", i)
		}
	}

	return nil
}
