package khash

import (
	"testing"

	"github.com/kmechain/kmego/pkg/codec"
	"github.com/kmechain/kmego/pkg/u256"
)

type stub struct {
	A uint64
	B string
}

func TestOfIsDeterministic(t *testing.T) {
	x := stub{A: 1, B: "x"}
	if Of(x) != Of(x) {
		t.Fatalf("Of(x) not deterministic")
	}
}

func TestOfChangesWithInput(t *testing.T) {
	a := Of(stub{A: 1, B: "x"})
	b := Of(stub{A: 2, B: "x"})
	if a == b {
		t.Fatalf("different inputs hashed to the same digest")
	}
}

func TestMatchesTarget(t *testing.T) {
	h := Of(stub{A: 1})
	hi := u256.Max
	if !MatchesTarget(h, hi) {
		t.Fatalf("any hash should match the maximum target")
	}
	if MatchesTarget(h, u256.Zero) {
		t.Fatalf("no hash should match the zero target")
	}
}

func TestHashCBORRoundTrip(t *testing.T) {
	h := Of(stub{A: 99})
	b, err := codec.Encode(h)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	var out Hash
	if err := codec.Decode(b, &out); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if out != h {
		t.Fatalf("round trip mismatch")
	}
}

func TestZeroIsSentinel(t *testing.T) {
	if !Zero.IsZero() {
		t.Fatalf("Zero.IsZero() should be true")
	}
	if Of(stub{A: 1}).IsZero() {
		t.Fatalf("a real hash should not report IsZero")
	}
}
