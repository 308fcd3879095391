package block

import (
	"github.com/kmechain/kmego/pkg/khash"
	"github.com/kmechain/kmego/pkg/u256"
)

// Header is a block header. Timestamp and Nonce are the two fields that
// vary during mining: Nonce is the primary search dimension, Timestamp is
// bumped only once the nonce space is exhausted.
type Header struct {
	Timestamp     int64      `cbor:"timestamp"`
	Nonce         uint64     `cbor:"nonce"`
	PrevBlockHash khash.Hash `cbor:"prev_block_hash"`
	MerkleRoot    khash.Hash `cbor:"merkle_root"`
	Target        u256.U256  `cbor:"target"`
}

// Hash is the header's canonical double-SHA256 digest — also the block's
// hash, since a block is identified by its header.
func (h Header) Hash() khash.Hash {
	return khash.Of(h)
}

// MatchesTarget reports whether this header's hash satisfies its own
// declared target.
func (h Header) MatchesTarget() bool {
	return khash.MatchesTarget(h.Hash(), h.Target)
}
