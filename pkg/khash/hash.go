// Package khash provides the chain's 32-byte digest type and the
// double-SHA256 hash function used everywhere a committed value needs a
// stable, content-addressed handle.
package khash

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/kmechain/kmego/pkg/codec"
	"github.com/kmechain/kmego/pkg/u256"
)

// Size is the length of a Hash in bytes.
const Size = 32

// Hash is an opaque 32-byte digest.
type Hash [Size]byte

// Zero is the designated "no predecessor" sentinel.
var Zero = Hash{}

// IsZero reports whether h is the all-zero sentinel.
func (h Hash) IsZero() bool { return h == Zero }

// String renders the hash as lowercase hex.
func (h Hash) String() string { return hex.EncodeToString(h[:]) }

// Bytes returns a copy of the hash bytes.
func (h Hash) Bytes() []byte {
	b := make([]byte, Size)
	copy(b, h[:])
	return b
}

// U256 interprets the hash as a big-endian 256-bit integer, for target
// comparison.
func (h Hash) U256() u256.U256 {
	u, err := u256.FromBytes(h[:])
	if err != nil {
		// h is always exactly 32 bytes by construction.
		panic(err)
	}
	return u
}

// FromHex parses a 64-character hex string into a Hash.
func FromHex(s string) (Hash, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return Hash{}, fmt.Errorf("khash: invalid hex: %w", err)
	}
	if len(b) != Size {
		return Hash{}, fmt.Errorf("khash: hash must be %d bytes, got %d", Size, len(b))
	}
	var h Hash
	copy(h[:], b)
	return h, nil
}

// Of computes Hash(x) = SHA256(SHA256(codec.Encode(x))). x must be
// canonical-codec encodable; a failure to encode is a programming error,
// not bad input, since every hashed type is known at compile time.
func Of(x any) Hash {
	encoded := codec.MustEncode(x)
	first := sha256.Sum256(encoded)
	second := sha256.Sum256(first[:])
	return Hash(second)
}

// OfBytes hashes raw bytes directly (double-SHA256, no codec framing). Use
// Of for any value that participates in a canonical commitment; OfBytes is
// for callers that already have an opaque byte slice to digest.
func OfBytes(b []byte) Hash {
	first := sha256.Sum256(b)
	second := sha256.Sum256(first[:])
	return Hash(second)
}

// MatchesTarget reports whether h, interpreted as a big-endian U256, is at
// most t. Smaller targets are harder puzzles.
func MatchesTarget(h Hash, t u256.U256) bool {
	return h.U256().LessEq(t)
}

// MarshalCBOR renders the hash as a canonical byte string, independent of
// Go's [32]byte array representation.
func (h Hash) MarshalCBOR() ([]byte, error) {
	return codec.Encode(h[:])
}

// UnmarshalCBOR reverses MarshalCBOR.
func (h *Hash) UnmarshalCBOR(data []byte) error {
	var b []byte
	if err := codec.Decode(data, &b); err != nil {
		return err
	}
	if len(b) != Size {
		return fmt.Errorf("khash: decoded hash has %d bytes, want %d", len(b), Size)
	}
	copy(h[:], b)
	return nil
}
