// Package ecdsa provides the chain's asymmetric key pairs and Schnorr
// signatures over secp256k1, with stable canonical byte encodings usable
// both inside transaction outputs and on disk.
package ecdsa

import (
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/schnorr"
)

// PublicKeySize is the length of a compressed secp256k1 public key.
const PublicKeySize = 33

// PrivateKeySize is the length of a raw secp256k1 scalar.
const PrivateKeySize = 32

// SignatureSize is the length of a serialized Schnorr signature.
const SignatureSize = 64

// PublicKey is a compressed secp256k1 public key, used directly as a
// TransactionOutput's spend condition (outputs are spendable purely by a
// signature from this key — there are no script-based spend conditions).
type PublicKey [PublicKeySize]byte

// PrivateKey wraps a secp256k1 scalar for Schnorr signing.
type PrivateKey struct {
	key *secp256k1.PrivateKey
}

// GenerateKey creates a new random secp256k1 key pair.
func GenerateKey() (*PrivateKey, error) {
	key, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		return nil, fmt.Errorf("ecdsa: generate key: %w", err)
	}
	return &PrivateKey{key: key}, nil
}

// PrivateKeyFromBytes parses a 32-byte scalar into a PrivateKey.
func PrivateKeyFromBytes(b []byte) (*PrivateKey, error) {
	if len(b) != PrivateKeySize {
		return nil, fmt.Errorf("ecdsa: private key must be %d bytes, got %d", PrivateKeySize, len(b))
	}
	return &PrivateKey{key: secp256k1.PrivKeyFromBytes(b)}, nil
}

// Bytes returns the raw 32-byte scalar.
func (pk *PrivateKey) Bytes() []byte {
	return pk.key.Serialize()
}

// PublicKey derives the corresponding compressed public key.
func (pk *PrivateKey) PublicKey() PublicKey {
	var pub PublicKey
	copy(pub[:], pk.key.PubKey().SerializeCompressed())
	return pub
}

// Sign produces a Schnorr signature over a 32-byte digest.
func (pk *PrivateKey) Sign(digest [32]byte) (Signature, error) {
	sig, err := schnorr.Sign(pk.key, digest[:])
	if err != nil {
		return Signature{}, fmt.Errorf("ecdsa: schnorr sign: %w", err)
	}
	var out Signature
	copy(out[:], sig.Serialize())
	return out, nil
}

// Zero securely zeroes the private scalar.
func (pk *PrivateKey) Zero() {
	pk.key.Zero()
}

// PublicKeyFromBytes parses a compressed public key.
func PublicKeyFromBytes(b []byte) (PublicKey, error) {
	if len(b) != PublicKeySize {
		return PublicKey{}, fmt.Errorf("ecdsa: public key must be %d bytes, got %d", PublicKeySize, len(b))
	}
	if _, err := secp256k1.ParsePubKey(b); err != nil {
		return PublicKey{}, fmt.Errorf("ecdsa: invalid public key: %w", err)
	}
	var pub PublicKey
	copy(pub[:], b)
	return pub, nil
}

// Bytes returns a copy of the compressed public key.
func (p PublicKey) Bytes() []byte {
	b := make([]byte, PublicKeySize)
	copy(b, p[:])
	return b
}

// MarshalCBOR renders the public key as a canonical byte string.
func (p PublicKey) MarshalCBOR() ([]byte, error) {
	return marshalFixed(p[:])
}

// UnmarshalCBOR reverses MarshalCBOR.
func (p *PublicKey) UnmarshalCBOR(data []byte) error {
	b, err := unmarshalFixed(data, PublicKeySize)
	if err != nil {
		return err
	}
	copy(p[:], b)
	return nil
}

// MarshalCBOR renders the private key as its canonical 32-byte scalar, so a
// PrivateKey can be written to and read back from a key file through the
// same codec as every other data model type.
func (pk PrivateKey) MarshalCBOR() ([]byte, error) {
	return marshalFixed(pk.key.Serialize())
}

// UnmarshalCBOR reverses MarshalCBOR.
func (pk *PrivateKey) UnmarshalCBOR(data []byte) error {
	b, err := unmarshalFixed(data, PrivateKeySize)
	if err != nil {
		return err
	}
	pk.key = secp256k1.PrivKeyFromBytes(b)
	return nil
}
