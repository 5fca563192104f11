package testutil

import (
	"fmt"
	"strings"

	sdkmath "cosmossdk.io/math"
	"github.com/brianvoe/gofakeit/v7"
)

// RandomAccount generates a plausible account identifier.
func RandomAccount() string {
	return fmt.Sprintf("%s-%s", strings.ToLower(gofakeit.Username()), gofakeit.LetterN(8))
}

// RandomAmount generates a positive stake amount in [1, max].
func RandomAmount(max int) sdkmath.Int {
	return sdkmath.NewInt(int64(gofakeit.Number(1, max)))
}
