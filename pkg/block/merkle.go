package block

import (
	"errors"

	"github.com/kmechain/kmego/pkg/khash"
)

// ErrEmptyTransactionList is returned by MerkleRoot when given no
// transaction hashes. A block must always contain at least a coinbase, so
// this is a caller error, not a degenerate zero-hash result.
var ErrEmptyTransactionList = errors.New("block: merkle root of empty transaction list")

// MerkleRoot folds a layer of per-transaction hashes by repeatedly hashing
// consecutive pairs together, duplicating the last hash when a layer has an
// odd count, until one hash remains.
func MerkleRoot(txHashes []khash.Hash) (khash.Hash, error) {
	if len(txHashes) == 0 {
		return khash.Hash{}, ErrEmptyTransactionList
	}
	if len(txHashes) == 1 {
		return txHashes[0], nil
	}

	level := make([]khash.Hash, len(txHashes))
	copy(level, txHashes)

	for len(level) > 1 {
		if len(level)%2 != 0 {
			level = append(level, level[len(level)-1])
		}
		next := make([]khash.Hash, len(level)/2)
		for i := 0; i < len(level); i += 2 {
			next[i/2] = hashPair(level[i], level[i+1])
		}
		level = next
	}
	return level[0], nil
}

// hashPair implements Hash([left,right]): the pair is canonically encoded
// before hashing, same as every other committed value, so a node's hash
// never depends on anything but the canonical encoding of its two children.
func hashPair(left, right khash.Hash) khash.Hash {
	return khash.Of([]khash.Hash{left, right})
}
