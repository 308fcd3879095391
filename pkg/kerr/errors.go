// Package kerr defines the sentinel error kinds surfaced by the chain
// engine, wire protocol, and wallet. Callers wrap these with fmt.Errorf's
// %w so errors.Is still matches across the call chain.
package kerr

import "errors"

var (
	// ErrInvalidTransaction is returned on mempool admission rejection.
	ErrInvalidTransaction = errors.New("invalid transaction")
	// ErrInvalidBlock is returned when any block-acceptance rule fails
	// other than the Merkle root check.
	ErrInvalidBlock = errors.New("invalid block")
	// ErrInvalidMerkleRoot is returned when a block's declared root does
	// not match the recomputed root.
	ErrInvalidMerkleRoot = errors.New("invalid merkle root")
	// ErrInvalidSignature is returned when a transaction input's signature
	// fails to verify under the referenced output's public key.
	ErrInvalidSignature = errors.New("invalid signature")
	// ErrInsufficientFunds is returned by the wallet when no combination of
	// unmarked UTXOs covers the requested amount plus fee.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrIO is returned on stream or file I/O failure.
	ErrIO = errors.New("io error")
	// ErrCodec is returned on decode failure.
	ErrCodec = errors.New("codec error")
	// ErrProtocol is returned on an unexpected message for the request
	// issued, or a frame exceeding the size cap.
	ErrProtocol = errors.New("protocol error")
)
