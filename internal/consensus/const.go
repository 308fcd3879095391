// Package consensus implements the proof-of-work mining loop, difficulty
// retargeting, and the block reward schedule.
package consensus

import (
	"time"

	"github.com/kmechain/kmego/pkg/u256"
)

const (
	// InitialReward is the coinbase reward, in whole coins, before any
	// halving.
	InitialReward = 50
	// SatsPerCoin is the number of sats in one coin.
	SatsPerCoin = 100_000_000
	// HalvingInterval is the number of blocks between reward halvings.
	HalvingInterval = 210
	// IdealBlockTime is the target spacing between blocks.
	IdealBlockTime = 10 * time.Second
	// DifficultyUpdateInterval is the number of blocks between retargets.
	DifficultyUpdateInterval = 50
)

// MinTarget is the easiest (largest) permitted target: four 64-bit limbs,
// top limb 0x00000000_000000FF, remaining limbs all-ones.
var MinTarget = u256.FromLimbsLE(^uint64(0), ^uint64(0), ^uint64(0), 0x00000000_000000FF)
