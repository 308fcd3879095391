package ecdsa

import (
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/schnorr"
	"github.com/fxamacker/cbor/v2"
)

// Signature is a fixed-size opaque blob sufficient to verify a 32-byte
// message under a PublicKey.
type Signature [SignatureSize]byte

// SignatureFromBytes parses a serialized Schnorr signature.
func SignatureFromBytes(b []byte) (Signature, error) {
	if len(b) != SignatureSize {
		return Signature{}, fmt.Errorf("ecdsa: signature must be %d bytes, got %d", SignatureSize, len(b))
	}
	var sig Signature
	copy(sig[:], b)
	return sig, nil
}

// Bytes returns a copy of the serialized signature.
func (s Signature) Bytes() []byte {
	b := make([]byte, SignatureSize)
	copy(b, s[:])
	return b
}

// Verify checks that sig is a valid Schnorr signature over digest under pub.
// Returns false on any malformed input rather than an error, matching the
// teacher's VerifySignature contract.
func Verify(digest [32]byte, sig Signature, pub PublicKey) bool {
	pubKey, err := secp256k1.ParsePubKey(pub[:])
	if err != nil {
		return false
	}
	parsed, err := schnorr.ParseSignature(sig[:])
	if err != nil {
		return false
	}
	return parsed.Verify(digest[:], pubKey)
}

// MarshalCBOR renders the signature as a canonical byte string.
func (s Signature) MarshalCBOR() ([]byte, error) {
	return marshalFixed(s[:])
}

// UnmarshalCBOR reverses MarshalCBOR.
func (s *Signature) UnmarshalCBOR(data []byte) error {
	b, err := unmarshalFixed(data, SignatureSize)
	if err != nil {
		return err
	}
	copy(s[:], b)
	return nil
}

func marshalFixed(b []byte) ([]byte, error) {
	return cbor.Marshal(b)
}

func unmarshalFixed(data []byte, want int) ([]byte, error) {
	var b []byte
	if err := cbor.Unmarshal(data, &b); err != nil {
		return nil, err
	}
	if len(b) != want {
		return nil, fmt.Errorf("ecdsa: decoded value has %d bytes, want %d", len(b), want)
	}
	return b, nil
}
