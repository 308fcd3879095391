package consensus

import "github.com/kmechain/kmego/pkg/block"

// Mine attempts to solve h within a bounded slice of steps nonce increments,
// so the miner can be co-scheduled with network tasks on a cooperative
// runtime rather than blocking it indefinitely.
//
//  1. If h already matches its target, succeed immediately.
//  2. Otherwise try up to steps nonce increments (saturating), checking the
//     header hash after each.
//  3. If the nonce space saturates before a match, bump Timestamp to now,
//     reset Nonce to 0, and report failure — the caller re-enters with a
//     fresh slice.
func Mine(h *block.Header, steps uint64, now func() int64) bool {
	if h.MatchesTarget() {
		return true
	}
	for i := uint64(0); i < steps; i++ {
		if h.Nonce == ^uint64(0) {
			h.Timestamp = now()
			h.Nonce = 0
			return false
		}
		h.Nonce++
		if h.MatchesTarget() {
			return true
		}
	}
	return false
}
