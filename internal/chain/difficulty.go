package chain

import "github.com/kmechain/kmego/internal/consensus"

// TryAdjustTarget retargets the chain's difficulty if the current height is
// a retarget boundary. AddBlock already calls this after every successful
// append; exported for callers (such as initial sync, after RebuildUTXOs)
// that want a single explicit pass.
func (c *Blockchain) TryAdjustTarget() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tryAdjustTarget()
}

// tryAdjustTarget retargets difficulty at retarget-interval boundaries.
// Caller must hold the write lock.
func (c *Blockchain) tryAdjustTarget() {
	height := uint64(len(c.blocks))
	if height == 0 || height%consensus.DifficultyUpdateInterval != 0 {
		return
	}

	tip := c.blocks[height-1]
	prior := c.blocks[height-consensus.DifficultyUpdateInterval]

	actual := uint64(tip.Header.Timestamp - prior.Header.Timestamp)
	ideal := uint64(consensus.IdealBlockTime.Seconds()) * consensus.DifficultyUpdateInterval

	c.target = consensus.Retarget(c.target, actual, ideal)
}
