// Package block defines the chain's block structure: a header plus an
// ordered list of transactions, the first of which is always the coinbase.
package block

import (
	"github.com/kmechain/kmego/pkg/khash"
	"github.com/kmechain/kmego/pkg/tx"
)

// Block is a header together with the transactions it commits to via
// MerkleRoot. Transactions[0] is always the coinbase.
type Block struct {
	Header       Header           `cbor:"header"`
	Transactions []tx.Transaction `cbor:"transactions"`
}

// Hash is the hash of the block's header.
func (b Block) Hash() khash.Hash {
	return b.Header.Hash()
}

// Coinbase returns the block's coinbase transaction (transactions[0]).
// Callers must only invoke this on a block known to have at least one
// transaction; a structurally valid block always does.
func (b Block) Coinbase() tx.Transaction {
	return b.Transactions[0]
}

// TransactionHashes returns the hash of every transaction in order, the
// input to MerkleRoot.
func (b Block) TransactionHashes() []khash.Hash {
	hashes := make([]khash.Hash, len(b.Transactions))
	for i, t := range b.Transactions {
		hashes[i] = t.Hash()
	}
	return hashes
}

// ComputeMerkleRoot recomputes the Merkle root over this block's
// transactions.
func (b Block) ComputeMerkleRoot() (khash.Hash, error) {
	return MerkleRoot(b.TransactionHashes())
}
