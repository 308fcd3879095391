package chain

import (
	"fmt"

	"github.com/kmechain/kmego/pkg/block"
	"github.com/kmechain/kmego/pkg/kerr"
	"github.com/kmechain/kmego/pkg/khash"
)

// AddBlock validates and, on success, appends b to the chain. Validation
// runs in order:
//
//  1. prev_block_hash must be the zero hash for the first block, or the
//     hash of the tip's header otherwise.
//  2. hash(header) must satisfy header.target.
//  3. header.merkle_root must equal MerkleRoot(transactions).
//  4. header.timestamp must be strictly greater than the tip's timestamp.
//  5. VerifyTransactions must succeed.
//
// On success: append, remove every mempool transaction whose hash appears
// in the new block, then retarget.
//
// Step 1 is enforced strictly: a prev-hash mismatch is rejected with
// ErrInvalidBlock rather than merely logged.
func (c *Blockchain) AddBlock(b block.Block) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	height := uint64(len(c.blocks))

	// Step 1: prev-hash continuity.
	if height == 0 {
		if b.Header.PrevBlockHash != khash.Zero {
			return fmt.Errorf("%w: first block must have zero prev_block_hash", kerr.ErrInvalidBlock)
		}
	} else {
		tip := c.blocks[height-1]
		if b.Header.PrevBlockHash != tip.Hash() {
			return fmt.Errorf("%w: prev_block_hash does not match tip", kerr.ErrInvalidBlock)
		}
		// Step 4: strictly increasing timestamp.
		if b.Header.Timestamp <= tip.Header.Timestamp {
			return fmt.Errorf("%w: timestamp not strictly greater than tip", kerr.ErrInvalidBlock)
		}
	}

	// Step 2: proof of work.
	if !b.Header.MatchesTarget() {
		return fmt.Errorf("%w: header hash does not satisfy target", kerr.ErrInvalidBlock)
	}

	// header.target must not exceed (be easier than) the chain's current
	// target.
	if b.Header.Target.Cmp(c.target) > 0 {
		return fmt.Errorf("%w: header target is looser than chain target", kerr.ErrInvalidBlock)
	}

	// Step 3: Merkle commitment.
	wantRoot, err := b.ComputeMerkleRoot()
	if err != nil {
		return fmt.Errorf("%w: %v", kerr.ErrInvalidMerkleRoot, err)
	}
	if b.Header.MerkleRoot != wantRoot {
		return fmt.Errorf("%w: merkle root mismatch", kerr.ErrInvalidMerkleRoot)
	}

	// Step 4: strictly increasing timestamp.
	if height > 0 && b.Header.Timestamp <= tip.Header.Timestamp {
		return fmt.Errorf("%w: timestamp not strictly greater than tip", kerr.ErrInvalidBlock)
	}

	// Step 5: transaction and UTXO verification.
	if err := VerifyTransactions(height, c.utxos, b.Transactions); err != nil {
		return fmt.Errorf("%w: %w", kerr.ErrInvalidBlock, err)
	}

	// Apply: spend referenced outputs, create new ones.
	for _, t := range b.Transactions {
		for _, in := range t.Inputs {
			delete(c.utxos, in.PrevOutputHash)
		}
		for _, out := range t.Outputs {
			c.utxos[out.Hash()] = UTXOEntry{Output: out, Marked: false}
		}
	}

	c.blocks = append(c.blocks, b)

	// Evict mined transactions from the mempool, unmarking nothing further
	// since their UTXOs are now spent or created by the block itself.
	minedHashes := make(map[khash.Hash]bool, len(b.Transactions))
	for _, t := range b.Transactions {
		minedHashes[t.Hash()] = true
	}
	kept := c.mempool[:0]
	for _, entry := range c.mempool {
		if minedHashes[entry.Tx.Hash()] {
			continue
		}
		kept = append(kept, entry)
	}
	c.mempool = kept

	c.tryAdjustTarget()
	return nil
}
