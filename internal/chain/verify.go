package chain

import (
	"errors"
	"fmt"
	"math"

	"github.com/kmechain/kmego/internal/consensus"
	"github.com/kmechain/kmego/pkg/ecdsa"
	"github.com/kmechain/kmego/pkg/kerr"
	"github.com/kmechain/kmego/pkg/khash"
	"github.com/kmechain/kmego/pkg/tx"
)

var (
	ErrNoCoinbase          = errors.New("chain: block has no coinbase transaction")
	ErrUnexpectedCoinbase  = errors.New("chain: only the first transaction may be a coinbase")
	ErrMissingUTXO         = errors.New("chain: input references a missing utxo")
	ErrDoubleSpendInBlock  = errors.New("chain: output spent twice within the block")
	ErrSignatureVerify     = errors.New("chain: input signature does not verify")
	ErrInputsLessOutputs   = errors.New("chain: input sum is less than output sum")
	ErrCoinbaseValueWrong  = errors.New("chain: coinbase does not pay reward plus fees exactly")
)

// VerifyTransactions checks a block's transaction list: exactly
// one coinbase (transactions[0]), every non-coinbase input resolves to
// utxos and verifies its signature, no output-hash is spent twice within
// the block or against prior UTXOs, every non-coinbase transaction's input
// sum covers its output sum, and the coinbase pays exactly
// reward(height) + fees.
//
// height must be the candidate block's own height (len(blocks) before
// append), not the chain's current tip height — see
// internal/consensus.RewardAtHeight.
func VerifyTransactions(height uint64, utxos map[khash.Hash]UTXOEntry, txs []tx.Transaction) error {
	if len(txs) == 0 {
		return ErrNoCoinbase
	}
	if !txs[0].IsCoinbase() {
		return ErrNoCoinbase
	}
	for i := 1; i < len(txs); i++ {
		if txs[i].IsCoinbase() {
			return fmt.Errorf("transaction %d: %w", i, ErrUnexpectedCoinbase)
		}
	}

	spentThisBlock := make(map[khash.Hash]bool)
	var totalFees uint64

	for i := 1; i < len(txs); i++ {
		t := txs[i]

		var inputSum uint64
		for _, in := range t.Inputs {
			if spentThisBlock[in.PrevOutputHash] {
				return fmt.Errorf("transaction %d: %w", i, ErrDoubleSpendInBlock)
			}
			entry, ok := utxos[in.PrevOutputHash]
			if !ok {
				return fmt.Errorf("transaction %d: %w", i, ErrMissingUTXO)
			}
			if !ecdsa.Verify([32]byte(in.PrevOutputHash), in.Signature, entry.Output.PubKey) {
				return fmt.Errorf("transaction %d: %w: %w", i, kerr.ErrInvalidSignature, ErrSignatureVerify)
			}
			spentThisBlock[in.PrevOutputHash] = true

			if inputSum > math.MaxUint64-entry.Output.Value {
				return fmt.Errorf("transaction %d: %w", i, tx.ErrOutputOverflow)
			}
			inputSum += entry.Output.Value
		}

		outputSum, overflow := t.OutputSum()
		if overflow {
			return fmt.Errorf("transaction %d: %w", i, tx.ErrOutputOverflow)
		}
		if inputSum < outputSum {
			return fmt.Errorf("transaction %d: %w", i, ErrInputsLessOutputs)
		}

		fee := inputSum - outputSum
		if totalFees > math.MaxUint64-fee {
			return fmt.Errorf("transaction %d: %w", i, tx.ErrOutputOverflow)
		}
		totalFees += fee
	}

	coinbaseSum, overflow := txs[0].OutputSum()
	if overflow {
		return fmt.Errorf("coinbase: %w", tx.ErrOutputOverflow)
	}
	want := consensus.RewardAtHeight(height)
	if want > math.MaxUint64-totalFees {
		return fmt.Errorf("coinbase: %w", tx.ErrOutputOverflow)
	}
	want += totalFees
	if coinbaseSum != want {
		return fmt.Errorf("%w: got %d, want %d", ErrCoinbaseValueWrong, coinbaseSum, want)
	}
	return nil
}
