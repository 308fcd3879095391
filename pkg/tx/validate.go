package tx

import (
	"errors"
	"fmt"
	"math"

	"github.com/kmechain/kmego/pkg/khash"
)

// Structural validation errors. These check shape only; UTXO existence and
// signature verification require chain state and are checked separately by
// the caller (internal/chain.VerifyTransactions).
var (
	ErrDuplicateInput = errors.New("duplicate input")
	ErrOutputOverflow = errors.New("output values overflow")
)

// ValidateStructure checks for internal consistency that doesn't require
// chain state: unique inputs, and an output sum that doesn't overflow a
// uint64.
func (t Transaction) ValidateStructure() error {
	seen := make(map[khash.Hash]bool, len(t.Inputs))
	for i, in := range t.Inputs {
		if seen[in.PrevOutputHash] {
			return fmt.Errorf("input %d: %w", i, ErrDuplicateInput)
		}
		seen[in.PrevOutputHash] = true
	}

	var total uint64
	for i, out := range t.Outputs {
		if total > math.MaxUint64-out.Value {
			return fmt.Errorf("output %d: %w", i, ErrOutputOverflow)
		}
		total += out.Value
	}
	return nil
}
