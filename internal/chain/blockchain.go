package chain

import (
	"sync"

	"github.com/kmechain/kmego/pkg/block"
	"github.com/kmechain/kmego/pkg/khash"
	"github.com/kmechain/kmego/pkg/u256"
)

// Blockchain is the chain engine's aggregate state: committed blocks, the
// unspent-output map, the current difficulty target, and the mempool.
// Single-writer: all mutation goes through a write lock; readers (UTXOs,
// Blocks, Target) take a read lock.
type Blockchain struct {
	mu sync.RWMutex

	blocks  []block.Block
	utxos   map[khash.Hash]UTXOEntry
	target  u256.U256
	mempool []MempoolEntry
}

// New creates an empty chain with the given starting target.
func New(startTarget u256.U256) *Blockchain {
	return &Blockchain{
		utxos:  make(map[khash.Hash]UTXOEntry),
		target: startTarget,
	}
}

// Height returns the number of committed blocks.
func (c *Blockchain) Height() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return uint64(len(c.blocks))
}

// Tip returns the most recently committed block and true, or the zero block
// and false if the chain is empty.
func (c *Blockchain) Tip() (block.Block, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if len(c.blocks) == 0 {
		return block.Block{}, false
	}
	return c.blocks[len(c.blocks)-1], true
}

// Blocks returns a copy of the committed block list.
func (c *Blockchain) Blocks() []block.Block {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]block.Block, len(c.blocks))
	copy(out, c.blocks)
	return out
}

// BlockAt returns the block at the given height.
func (c *Blockchain) BlockAt(height uint64) (block.Block, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if height >= uint64(len(c.blocks)) {
		return block.Block{}, false
	}
	return c.blocks[height], true
}

// Target returns the chain's current difficulty target.
func (c *Blockchain) Target() u256.U256 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.target
}

// UTXOs returns a snapshot copy of the unspent-output map.
func (c *Blockchain) UTXOs() map[khash.Hash]UTXOEntry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[khash.Hash]UTXOEntry, len(c.utxos))
	for k, v := range c.utxos {
		out[k] = v
	}
	return out
}

// Mempool returns a snapshot copy of the pending-transaction list, in its
// current ascending-by-fee order.
func (c *Blockchain) Mempool() []MempoolEntry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]MempoolEntry, len(c.mempool))
	copy(out, c.mempool)
	return out
}
