package chain

import (
	"fmt"
	"time"

	"github.com/kmechain/kmego/internal/consensus"
	"github.com/kmechain/kmego/pkg/block"
	"github.com/kmechain/kmego/pkg/ecdsa"
	"github.com/kmechain/kmego/pkg/kerr"
	"github.com/kmechain/kmego/pkg/khash"
	"github.com/kmechain/kmego/pkg/tx"
)

// BuildTemplate composes a candidate block paying reward(height)+fees to
// pub: prev_block_hash is the current tip's hash (or the zero hash for the
// first block), target is the chain's current target, every pending
// mempool transaction is included in descending-fee order (the mempool
// itself is kept sorted ascending, so this reverses it), and nonce starts
// at zero for the caller to mine.
func (c *Blockchain) BuildTemplate(pub ecdsa.PublicKey, now time.Time) (block.Block, error) {
	c.mu.RLock()
	height := uint64(len(c.blocks))
	var prevHash khash.Hash
	if height > 0 {
		prevHash = c.blocks[height-1].Hash()
	}
	target := c.target
	pending := make([]tx.Transaction, len(c.mempool))
	for i, entry := range c.mempool {
		pending[len(c.mempool)-1-i] = entry.Tx
	}
	utxos := c.utxos
	c.mu.RUnlock()

	var totalFees uint64
	for _, t := range pending {
		var inputSum uint64
		for _, in := range t.Inputs {
			inputSum += utxos[in.PrevOutputHash].Output.Value
		}
		outputSum, _ := t.OutputSum()
		if inputSum >= outputSum {
			totalFees += inputSum - outputSum
		}
	}

	coinbase := tx.Transaction{
		Outputs: []tx.TransactionOutput{tx.NewOutput(consensus.RewardAtHeight(height)+totalFees, pub)},
	}

	txs := make([]tx.Transaction, 0, len(pending)+1)
	txs = append(txs, coinbase)
	txs = append(txs, pending...)

	b := block.Block{
		Header: block.Header{
			Timestamp:     now.Unix(),
			Nonce:         0,
			PrevBlockHash: prevHash,
			Target:        target,
		},
		Transactions: txs,
	}

	root, err := b.ComputeMerkleRoot()
	if err != nil {
		return block.Block{}, fmt.Errorf("%w: %v", kerr.ErrInvalidBlock, err)
	}
	b.Header.MerkleRoot = root
	return b, nil
}

// ValidateTemplate reports whether a mined template would be accepted by
// AddBlock against the chain's current state, without mutating it. Callers
// (an online miner checking a peer's SubmitTemplate response, or a node
// answering ValidateTemplate requests) use this to avoid wasted work.
func (c *Blockchain) ValidateTemplate(b block.Block) error {
	c.mu.RLock()
	height := uint64(len(c.blocks))
	var tipHash khash.Hash
	var tipTimestamp int64
	if height > 0 {
		tip := c.blocks[height-1]
		tipHash = tip.Hash()
		tipTimestamp = tip.Header.Timestamp
	}
	chainTarget := c.target
	utxos := c.utxos
	c.mu.RUnlock()

	if height == 0 {
		if b.Header.PrevBlockHash != khash.Zero {
			return fmt.Errorf("%w: first block must have zero prev_block_hash", kerr.ErrInvalidBlock)
		}
	} else {
		if b.Header.PrevBlockHash != tipHash {
			return fmt.Errorf("%w: prev_block_hash does not match tip", kerr.ErrInvalidBlock)
		}
		if b.Header.Timestamp <= tipTimestamp {
			return fmt.Errorf("%w: timestamp not strictly greater than tip", kerr.ErrInvalidBlock)
		}
	}
	if !b.Header.MatchesTarget() {
		return fmt.Errorf("%w: header hash does not satisfy target", kerr.ErrInvalidBlock)
	}
	if b.Header.Target.Cmp(chainTarget) > 0 {
		return fmt.Errorf("%w: header target is looser than chain target", kerr.ErrInvalidBlock)
	}
	wantRoot, err := b.ComputeMerkleRoot()
	if err != nil {
		return fmt.Errorf("%w: %v", kerr.ErrInvalidMerkleRoot, err)
	}
	if b.Header.MerkleRoot != wantRoot {
		return fmt.Errorf("%w: merkle root mismatch", kerr.ErrInvalidMerkleRoot)
	}
	return VerifyTransactions(height, utxos, b.Transactions)
}
