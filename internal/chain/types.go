package chain

import (
	"time"

	"github.com/kmechain/kmego/pkg/khash"
	"github.com/kmechain/kmego/pkg/tx"
)

// UTXOEntry is an unspent output together with whether some mempool entry
// has tentatively claimed it.
type UTXOEntry struct {
	Output tx.TransactionOutput `cbor:"output"`
	Marked bool                 `cbor:"marked"`
}

// MempoolEntry is a pending transaction together with its admission time,
// used for age-based eviction.
type MempoolEntry struct {
	Tx         tx.Transaction `cbor:"tx"`
	AdmittedAt time.Time      `cbor:"admitted_at"`
}

// Fee returns the entry's absolute fee (input sum minus output sum),
// assuming the entry was admitted (and therefore already validated to have
// input sum >= output sum).
func (e MempoolEntry) Fee(utxos map[khash.Hash]UTXOEntry) uint64 {
	var inputSum uint64
	for _, in := range e.Tx.Inputs {
		if entry, ok := utxos[in.PrevOutputHash]; ok {
			inputSum += entry.Output.Value
		}
	}
	outputSum, _ := e.Tx.OutputSum()
	if inputSum < outputSum {
		return 0
	}
	return inputSum - outputSum
}
