// Package codec implements the one deterministic binary encoding shared by
// hashing, wire transport, and on-disk persistence. Every type that
// participates in a hash or crosses the wire encodes through here so that a
// given value has exactly one byte representation.
//
// The underlying wire format is CBOR in its canonical (RFC 7049 §3.9)
// mode: map keys sorted, shortest-form integers, no indefinite-length
// items. That determinism is what makes Encode(x) safe to feed into a hash.
package codec

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	opts := cbor.CanonicalEncOptions()
	m, err := opts.EncMode()
	if err != nil {
		panic(fmt.Sprintf("codec: building canonical encode mode: %v", err))
	}
	encMode = m

	dopts := cbor.DecOptions{
		// Reject malformed/duplicate-key maps rather than silently picking one.
		DupMapKey: cbor.DupMapKeyEnforcedAPF,
	}
	dm, err := dopts.DecMode()
	if err != nil {
		panic(fmt.Sprintf("codec: building decode mode: %v", err))
	}
	decMode = dm
}

// Encode produces the canonical byte representation of x.
func Encode(x any) ([]byte, error) {
	b, err := encMode.Marshal(x)
	if err != nil {
		return nil, fmt.Errorf("codec: encode: %w", err)
	}
	return b, nil
}

// MustEncode is Encode but panics on failure. Used only where the input type
// is statically known to be encodable (e.g. inside Hash(x)); any failure
// there is a programming error, not bad input.
func MustEncode(x any) []byte {
	b, err := Encode(x)
	if err != nil {
		panic(err)
	}
	return b
}

// Decode reverses Encode into the value pointed to by out.
func Decode(data []byte, out any) error {
	if err := decMode.Unmarshal(data, out); err != nil {
		return fmt.Errorf("codec: decode: %w", err)
	}
	return nil
}
