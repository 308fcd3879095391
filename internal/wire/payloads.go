package wire

import (
	"github.com/kmechain/kmego/pkg/block"
	"github.com/kmechain/kmego/pkg/ecdsa"
	"github.com/kmechain/kmego/pkg/tx"
)

// SubmitTransactionPayload asks the node to admit Tx to its mempool and, on
// success, gossip it as NewTransaction.
type SubmitTransactionPayload struct {
	Tx tx.Transaction `cbor:"tx"`
}

// NewTransactionPayload is unsolicited peer gossip of an admitted
// transaction.
type NewTransactionPayload struct {
	Tx tx.Transaction `cbor:"tx"`
}

// FetchTemplatePayload requests a candidate block paying PubKey.
type FetchTemplatePayload struct {
	PubKey ecdsa.PublicKey `cbor:"pubkey"`
}

// TemplatePayload answers FetchTemplate with an unmined candidate block.
type TemplatePayload struct {
	Block block.Block `cbor:"block"`
}

// ValidateTemplatePayload asks whether Block would still be accepted.
type ValidateTemplatePayload struct {
	Block block.Block `cbor:"block"`
}

// SubmitTemplatePayload submits a mined block for full validation and
// append.
type SubmitTemplatePayload struct {
	Block block.Block `cbor:"block"`
}

// NewBlockPayload is unsolicited peer gossip of a newly appended block, or
// the response to FetchBlock.
type NewBlockPayload struct {
	Block block.Block `cbor:"block"`
}
