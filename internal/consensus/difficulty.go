package consensus

import "github.com/kmechain/kmego/pkg/u256"

// Retarget computes the new target after DifficultyUpdateInterval blocks,
// given the current target and the observed/ideal elapsed seconds for that
// interval.
//
// new_target = current * actual / ideal, truncated toward zero, clamped
// into [current/4, current*4], then capped at MinTarget. Uses native U256
// arithmetic rather than a decimal-string round trip; truncation-toward-zero
// integer division gives the same result either way.
func Retarget(current u256.U256, actualSeconds, idealSeconds uint64) u256.U256 {
	scaled := current.MulSmall(actualSeconds).DivSmall(idealSeconds)

	floor := current.DivSmall(4)
	ceil := current.MulSmall(4)

	newTarget := scaled
	if newTarget.Cmp(floor) < 0 {
		newTarget = floor
	}
	if newTarget.Cmp(ceil) > 0 {
		newTarget = ceil
	}
	if newTarget.Cmp(MinTarget) > 0 {
		newTarget = MinTarget
	}
	return newTarget
}
