package consensus

import (
	"testing"

	"github.com/kmechain/kmego/pkg/block"
	"github.com/kmechain/kmego/pkg/khash"
	"github.com/kmechain/kmego/pkg/u256"
)

func fixedNow() int64 { return 1_700_000_000 }

func TestMineSucceedsImmediatelyAtMaxTarget(t *testing.T) {
	h := &block.Header{Timestamp: fixedNow(), Target: u256.Max, PrevBlockHash: khash.Zero}
	if !Mine(h, 10, fixedNow) {
		t.Fatalf("mining against u256.Max should always succeed immediately")
	}
}

func TestMineFailsWithinBoundedStepsAgainstImpossibleTarget(t *testing.T) {
	h := &block.Header{Timestamp: fixedNow(), Target: u256.Zero, PrevBlockHash: khash.Zero}
	if Mine(h, 100, fixedNow) {
		t.Fatalf("mining against the zero target should never succeed")
	}
	if h.Nonce != 100 {
		t.Fatalf("expected 100 nonce increments consumed, got %d", h.Nonce)
	}
}

func TestMineResumesAcrossSlices(t *testing.T) {
	h := &block.Header{Timestamp: fixedNow(), Target: u256.Zero, PrevBlockHash: khash.Zero}
	Mine(h, 50, fixedNow)
	Mine(h, 50, fixedNow)
	if h.Nonce != 100 {
		t.Fatalf("nonce should accumulate across successive bounded slices, got %d", h.Nonce)
	}
}

func TestMineBumpsTimestampOnNonceSaturation(t *testing.T) {
	h := &block.Header{Timestamp: 1, Target: u256.Zero, Nonce: ^uint64(0) - 1, PrevBlockHash: khash.Zero}
	newTime := int64(9999)
	ok := Mine(h, 5, func() int64 { return newTime })
	if ok {
		t.Fatalf("mining against the zero target should not succeed")
	}
	if h.Nonce != 0 {
		t.Fatalf("nonce should reset to 0 after saturation, got %d", h.Nonce)
	}
	if h.Timestamp != newTime {
		t.Fatalf("timestamp should bump to now() after saturation, got %d want %d", h.Timestamp, newTime)
	}
}
