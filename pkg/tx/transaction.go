// Package tx defines the chain's transaction data model: outputs, inputs,
// and the transaction that groups them.
package tx

import (
	"github.com/google/uuid"
	"github.com/kmechain/kmego/pkg/ecdsa"
	"github.com/kmechain/kmego/pkg/khash"
)

// TransactionOutput is a spendable coin. unique_id exists solely to make
// otherwise-identical outputs (same value, same owner) hash-distinct; it
// carries no other meaning.
type TransactionOutput struct {
	Value    uint64          `cbor:"value"`
	UniqueID [16]byte        `cbor:"unique_id"`
	PubKey   ecdsa.PublicKey `cbor:"pubkey"`
}

// NewOutput builds an output with a fresh random unique_id.
func NewOutput(value uint64, pub ecdsa.PublicKey) TransactionOutput {
	var id [16]byte
	copy(id[:], uuid.New()[:])
	return TransactionOutput{Value: value, UniqueID: id, PubKey: pub}
}

// Hash is the handle later inputs use to reference this output. It is the
// canonical hash of the output structure itself, not of the owning
// transaction — distinct per output because of UniqueID.
func (o TransactionOutput) Hash() khash.Hash {
	return khash.Of(o)
}

// TransactionInput spends a prior output. The signature must verify
// PrevOutputHash under the public key of the output that hash identifies.
type TransactionInput struct {
	PrevOutputHash khash.Hash      `cbor:"prev_output_hash"`
	Signature      ecdsa.Signature `cbor:"signature"`
}

// Transaction groups an ordered set of inputs spending prior outputs into
// an ordered set of new outputs. A coinbase transaction has no inputs.
type Transaction struct {
	Inputs  []TransactionInput  `cbor:"inputs"`
	Outputs []TransactionOutput `cbor:"outputs"`
}

// Hash is the canonical hash of the whole transaction structure, including
// signatures.
func (t Transaction) Hash() khash.Hash {
	return khash.Of(t)
}

// IsCoinbase reports whether t has no inputs — the defining property of the
// first transaction in a block.
func (t Transaction) IsCoinbase() bool {
	return len(t.Inputs) == 0
}

// OutputSum sums the value of every output, reporting overflow rather than
// wrapping silently.
func (t Transaction) OutputSum() (sum uint64, overflow bool) {
	for _, o := range t.Outputs {
		next := sum + o.Value
		if next < sum {
			return 0, true
		}
		sum = next
	}
	return sum, false
}

// SignInput signs prevOutputHash with priv and stores the signature on
// input i of t. The caller must already know prevOutputHash ==
// t.Inputs[i].PrevOutputHash.
func (t *Transaction) SignInput(i int, priv *ecdsa.PrivateKey, prevOutputHash khash.Hash) error {
	sig, err := priv.Sign([32]byte(prevOutputHash))
	if err != nil {
		return err
	}
	t.Inputs[i].Signature = sig
	return nil
}
