// Package wire implements the node-to-node and wallet-to-node protocol: a
// tagged message envelope framed as { u64 big-endian length || canonical
// bytes } on a plain net.Conn stream.
package wire

import (
	"fmt"
	"io"

	"github.com/kmechain/kmego/pkg/codec"
	"github.com/kmechain/kmego/pkg/ecdsa"
)

// MessageType identifies the wire tag of a Message's payload.
type MessageType uint8

const (
	TypeFetchUTXOs MessageType = iota + 1
	TypeUTXOs
	TypeSubmitTransaction
	TypeNewTransaction
	TypeFetchTemplate
	TypeTemplate
	TypeValidateTemplate
	TypeTemplateValidity
	TypeSubmitTemplate
	TypeDiscoverNodes
	TypeNodeList
	TypeAskDifference
	TypeDifference
	TypeFetchBlock
	TypeNewBlock
)

func (t MessageType) String() string {
	switch t {
	case TypeFetchUTXOs:
		return "FetchUTXOs"
	case TypeUTXOs:
		return "UTXOs"
	case TypeSubmitTransaction:
		return "SubmitTransaction"
	case TypeNewTransaction:
		return "NewTransaction"
	case TypeFetchTemplate:
		return "FetchTemplate"
	case TypeTemplate:
		return "Template"
	case TypeValidateTemplate:
		return "ValidateTemplate"
	case TypeTemplateValidity:
		return "TemplateValidity"
	case TypeSubmitTemplate:
		return "SubmitTemplate"
	case TypeDiscoverNodes:
		return "DiscoverNodes"
	case TypeNodeList:
		return "NodeList"
	case TypeAskDifference:
		return "AskDifference"
	case TypeDifference:
		return "Difference"
	case TypeFetchBlock:
		return "FetchBlock"
	case TypeNewBlock:
		return "NewBlock"
	default:
		return fmt.Sprintf("MessageType(%d)", uint8(t))
	}
}

// Message is the envelope carried over every stream: a tag plus its
// canonically-encoded payload.
type Message struct {
	Type    MessageType `cbor:"type"`
	Payload []byte      `cbor:"payload"`
}

// Pack encodes payload and wraps it in a Message carrying msgType.
func Pack(msgType MessageType, payload any) (Message, error) {
	b, err := codec.Encode(payload)
	if err != nil {
		return Message{}, fmt.Errorf("wire: pack %s: %w", msgType, err)
	}
	return Message{Type: msgType, Payload: b}, nil
}

// Unpack decodes m's payload into out. Callers must know out's shape from
// m.Type.
func Unpack(m Message, out any) error {
	if err := codec.Decode(m.Payload, out); err != nil {
		return fmt.Errorf("wire: unpack %s: %w", m.Type, err)
	}
	return nil
}

// WriteMessage frames and writes m to w.
func WriteMessage(w io.Writer, m Message) error {
	return codec.EncodeFrame(w, m)
}

// ReadMessage reads one framed Message from r.
func ReadMessage(r io.Reader) (Message, error) {
	var m Message
	if err := codec.DecodeFrame(r, &m); err != nil {
		return Message{}, err
	}
	return m, nil
}

// FetchUTXOsPayload requests every known UTXO paying pub.
type FetchUTXOsPayload struct {
	PubKey ecdsa.PublicKey `cbor:"pubkey"`
}

// UTXOsPayload answers FetchUTXOs with every matching entry.
type UTXOsPayload struct {
	Entries []UTXOWire `cbor:"entries"`
}

// UTXOWire is the wire shape of a (TransactionOutput, marked) pair; the
// ledger's own UTXOEntry type lives in internal/chain and is not imported
// here to keep the wire envelope independent of chain internals.
type UTXOWire struct {
	Marked   bool            `cbor:"marked"`
	Value    uint64          `cbor:"value"`
	UniqueID [16]byte        `cbor:"unique_id"`
	PubKey   ecdsa.PublicKey `cbor:"pubkey"`
}

// NodeListPayload answers DiscoverNodes.
type NodeListPayload struct {
	Addresses []string `cbor:"addresses"`
}

// AskDifferencePayload requests the local height minus peerHeight.
type AskDifferencePayload struct {
	PeerHeight uint64 `cbor:"peer_height"`
}

// DifferencePayload answers AskDifference. A positive value means the
// responder's chain is ahead of the asker by that many blocks.
type DifferencePayload struct {
	Difference int64 `cbor:"difference"`
}

// FetchBlockPayload requests the block committed at the given height.
type FetchBlockPayload struct {
	Height uint64 `cbor:"height"`
}

// TemplateValidityPayload answers ValidateTemplate.
type TemplateValidityPayload struct {
	Valid bool `cbor:"valid"`
}
