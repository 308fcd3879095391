// Package u256 implements a fixed-width 256-bit unsigned integer.
//
// Limbs are stored little-endian in memory (limb 0 is the least significant
// 64 bits) but every external representation — wire bytes, decimal strings —
// is big-endian, matching how the rest of the chain engine compares hashes
// against targets.
package u256

import (
	"fmt"
	"math/big"

	"github.com/fxamacker/cbor/v2"
)

// U256 is an unsigned 256-bit integer.
type U256 struct {
	limbs [4]uint64 // limbs[0] is least significant
}

// Zero is the additive identity.
var Zero = U256{}

// Max is the largest representable value (2^256 - 1).
var Max = U256{limbs: [4]uint64{^uint64(0), ^uint64(0), ^uint64(0), ^uint64(0)}}

// FromUint64 builds a U256 from a native uint64.
func FromUint64(v uint64) U256 {
	return U256{limbs: [4]uint64{v, 0, 0, 0}}
}

// FromLimbsLE builds a U256 from four little-endian limbs (l0 least
// significant), for constants expressed limb-by-limb.
func FromLimbsLE(l0, l1, l2, l3 uint64) U256 {
	return U256{limbs: [4]uint64{l0, l1, l2, l3}}
}

// FromBytes reads a 32-byte big-endian encoding into a U256.
func FromBytes(b []byte) (U256, error) {
	if len(b) != 32 {
		return U256{}, fmt.Errorf("u256: expected 32 bytes, got %d", len(b))
	}
	var u U256
	for i := 0; i < 4; i++ {
		// limb i holds bytes [32-8*(i+1) : 32-8*i), big-endian within the limb.
		off := 32 - 8*(i+1)
		var v uint64
		for j := 0; j < 8; j++ {
			v = v<<8 | uint64(b[off+j])
		}
		u.limbs[i] = v
	}
	return u, nil
}

// Bytes renders the value as a 32-byte big-endian slice.
func (u U256) Bytes() []byte {
	out := make([]byte, 32)
	for i := 0; i < 4; i++ {
		off := 32 - 8*(i+1)
		v := u.limbs[i]
		for j := 7; j >= 0; j-- {
			out[off+j] = byte(v)
			v >>= 8
		}
	}
	return out
}

// big returns the value as a math/big.Int, used internally for
// multiplication/division that would otherwise need manual carry logic.
func (u U256) big() *big.Int {
	return new(big.Int).SetBytes(u.Bytes())
}

func fromBig(v *big.Int) U256 {
	b := v.Bytes()
	if len(b) > 32 {
		// Overflow: callers are expected to have already clamped; fall back
		// to saturating at Max rather than silently wrapping.
		return Max
	}
	padded := make([]byte, 32)
	copy(padded[32-len(b):], b)
	u, _ := FromBytes(padded)
	return u
}

// Cmp returns -1, 0, or 1 as u is less than, equal to, or greater than v.
func (u U256) Cmp(v U256) int {
	for i := 3; i >= 0; i-- {
		if u.limbs[i] != v.limbs[i] {
			if u.limbs[i] < v.limbs[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// LessEq reports whether u <= v.
func (u U256) LessEq(v U256) bool { return u.Cmp(v) <= 0 }

// IsZero reports whether the value is zero.
func (u U256) IsZero() bool { return u == Zero }

// MulSmall multiplies by a uint64, saturating at Max on overflow.
func (u U256) MulSmall(v uint64) U256 {
	return fromBig(new(big.Int).Mul(u.big(), new(big.Int).SetUint64(v)))
}

// DivSmall divides by a uint64. Panics on division by zero, matching the
// checked-arithmetic discipline the rest of the chain engine uses for sats.
func (u U256) DivSmall(v uint64) U256 {
	if v == 0 {
		panic("u256: division by zero")
	}
	return fromBig(new(big.Int).Div(u.big(), new(big.Int).SetUint64(v)))
}

// Rsh shifts right by n bits.
func (u U256) Rsh(n uint) U256 {
	return fromBig(new(big.Int).Rsh(u.big(), n))
}

// String renders the value in decimal.
func (u U256) String() string {
	return u.big().String()
}

// Parse reads a decimal string into a U256.
func Parse(s string) (U256, error) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return U256{}, fmt.Errorf("u256: invalid decimal string %q", s)
	}
	if v.Sign() < 0 || v.BitLen() > 256 {
		return U256{}, fmt.Errorf("u256: value %q out of range", s)
	}
	return fromBig(v), nil
}

// MarshalCBOR renders the value as its 32-byte big-endian byte string,
// keeping the canonical codec's encoding of a U256 independent of Go's
// in-memory limb layout.
func (u U256) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(u.Bytes())
}

// UnmarshalCBOR reverses MarshalCBOR.
func (u *U256) UnmarshalCBOR(data []byte) error {
	var b []byte
	if err := cbor.Unmarshal(data, &b); err != nil {
		return err
	}
	v, err := FromBytes(b)
	if err != nil {
		return err
	}
	*u = v
	return nil
}
