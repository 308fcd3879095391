package block

import (
	"testing"

	"github.com/kmechain/kmego/pkg/codec"
	"github.com/kmechain/kmego/pkg/khash"
)

// independentHashPair recomputes Hash([left,right]) without calling
// hashPair, so tests comparing against it catch a regression to raw
// concatenation instead of masking it.
func independentHashPair(t *testing.T, left, right khash.Hash) khash.Hash {
	t.Helper()
	encoded, err := codec.Encode([]khash.Hash{left, right})
	if err != nil {
		t.Fatalf("codec.Encode: %v", err)
	}
	return khash.OfBytes(encoded)
}

func hashOf(s string) khash.Hash {
	return khash.OfBytes([]byte(s))
}

func TestMerkleRootEmptyIsError(t *testing.T) {
	if _, err := MerkleRoot(nil); err == nil {
		t.Fatalf("empty transaction list should fail, a block always has a coinbase")
	}
}

func TestMerkleRootSingleHash(t *testing.T) {
	h := hashOf("single tx")
	root, err := MerkleRoot([]khash.Hash{h})
	if err != nil {
		t.Fatalf("MerkleRoot: %v", err)
	}
	if root != h {
		t.Fatalf("single hash should return itself: got %s, want %s", root, h)
	}
}

func TestMerkleRootTwoHashes(t *testing.T) {
	h1, h2 := hashOf("tx1"), hashOf("tx2")
	root, err := MerkleRoot([]khash.Hash{h1, h2})
	if err != nil {
		t.Fatalf("MerkleRoot: %v", err)
	}
	want := independentHashPair(t, h1, h2)
	if root != want {
		t.Fatalf("two hashes: got %s, want %s", root, want)
	}
}

func TestMerkleRootThreeHashesDuplicatesLast(t *testing.T) {
	h1, h2, h3 := hashOf("tx1"), hashOf("tx2"), hashOf("tx3")
	root, err := MerkleRoot([]khash.Hash{h1, h2, h3})
	if err != nil {
		t.Fatalf("MerkleRoot: %v", err)
	}
	left := independentHashPair(t, h1, h2)
	right := independentHashPair(t, h3, h3)
	want := independentHashPair(t, left, right)
	if root != want {
		t.Fatalf("three hashes: got %s, want %s", root, want)
	}
}

func TestMerkleRootTwoHashes_DoesNotMatchRawConcatenation(t *testing.T) {
	h1, h2 := hashOf("tx1"), hashOf("tx2")
	root, err := MerkleRoot([]khash.Hash{h1, h2})
	if err != nil {
		t.Fatalf("MerkleRoot: %v", err)
	}
	raw := append(append([]byte{}, h1[:]...), h2[:]...)
	notWant := khash.OfBytes(raw)
	if root == notWant {
		t.Fatalf("merkle node hash must route the pair through the canonical codec, not raw concatenation")
	}
}

func TestMerkleRootChangesWhenAnyTransactionChanges(t *testing.T) {
	h1, h2, h3 := hashOf("tx1"), hashOf("tx2"), hashOf("tx3")
	root, _ := MerkleRoot([]khash.Hash{h1, h2, h3})

	perturbed, _ := MerkleRoot([]khash.Hash{h1, h2, hashOf("tx3-modified")})
	if root == perturbed {
		t.Fatalf("perturbing a transaction should change the merkle root")
	}
}
