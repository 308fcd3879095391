package consensus

import "testing"

func TestRewardAtHeightZero(t *testing.T) {
	if got, want := RewardAtHeight(0), uint64(InitialReward)*SatsPerCoin; got != want {
		t.Fatalf("RewardAtHeight(0) = %d, want %d", got, want)
	}
}

func TestRewardAtHeightHalves(t *testing.T) {
	full := RewardAtHeight(0)
	if got := RewardAtHeight(HalvingInterval); got != full/2 {
		t.Fatalf("RewardAtHeight(%d) = %d, want %d", HalvingInterval, got, full/2)
	}
	if got := RewardAtHeight(2 * HalvingInterval); got != full/4 {
		t.Fatalf("RewardAtHeight(%d) = %d, want %d", 2*HalvingInterval, got, full/4)
	}
}

func TestRewardReachesZeroAfter63Halvings(t *testing.T) {
	if got := RewardAtHeight(63 * HalvingInterval); got != 0 {
		t.Fatalf("RewardAtHeight(63*interval) = %d, want 0", got)
	}
	if got := RewardAtHeight(1000 * HalvingInterval); got != 0 {
		t.Fatalf("RewardAtHeight(far future) = %d, want 0", got)
	}
}

func TestRewardSumBound(t *testing.T) {
	// Geometric bound: sum over all halvings of reward(h)*HalvingInterval
	// is strictly less than 2 * InitialReward * SatsPerCoin * HalvingInterval.
	var sum uint64
	for shift := uint64(0); shift < 64; shift++ {
		sum += RewardAtHeight(shift*HalvingInterval) * HalvingInterval
	}
	bound := uint64(2) * InitialReward * SatsPerCoin * HalvingInterval
	if sum >= bound {
		t.Fatalf("reward sum %d should be < bound %d", sum, bound)
	}
}
