package chain

import (
	"fmt"
	"sort"
	"time"

	"github.com/kmechain/kmego/pkg/kerr"
	"github.com/kmechain/kmego/pkg/khash"
	"github.com/kmechain/kmego/pkg/tx"
)

// AddToMempool implements mempool admission:
//
//  1. Reject if any input's prev_output_hash is absent from utxos.
//  2. Reject if inputs are internally non-unique.
//  3. For each input whose UTXO is already marked, find the mempool entry
//     that spends it (by scanning mempool entries' inputs for a matching
//     hash); remove that entry and unmark every UTXO it had marked, or —
//     if no such entry exists (a stale mark) — unmark the UTXO directly.
//  4. Reject if the input sum is less than the output sum; the difference
//     becomes the fee.
//  5. Mark every referenced UTXO, append the entry, then re-sort the
//     mempool ascending by fee (ties broken by transaction hash) so the
//     tail holds the highest-fee entries.
func (c *Blockchain) AddToMempool(t tx.Transaction, now time.Time) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := t.ValidateStructure(); err != nil {
		return fmt.Errorf("%w: %v", kerr.ErrInvalidTransaction, err)
	}

	for _, in := range t.Inputs {
		if _, ok := c.utxos[in.PrevOutputHash]; !ok {
			return fmt.Errorf("%w: input references a missing utxo", kerr.ErrInvalidTransaction)
		}
	}

	for _, in := range t.Inputs {
		entry := c.utxos[in.PrevOutputHash]
		if !entry.Marked {
			continue
		}
		c.resolveMarkedConflict(in.PrevOutputHash)
	}

	var inputSum uint64
	for _, in := range t.Inputs {
		inputSum += c.utxos[in.PrevOutputHash].Output.Value
	}
	outputSum, overflow := t.OutputSum()
	if overflow {
		return fmt.Errorf("%w: %v", kerr.ErrInvalidTransaction, tx.ErrOutputOverflow)
	}
	if inputSum < outputSum {
		return fmt.Errorf("%w: input sum %d less than output sum %d", kerr.ErrInvalidTransaction, inputSum, outputSum)
	}

	for _, in := range t.Inputs {
		e := c.utxos[in.PrevOutputHash]
		e.Marked = true
		c.utxos[in.PrevOutputHash] = e
	}

	c.mempool = append(c.mempool, MempoolEntry{Tx: t, AdmittedAt: now})
	c.sortMempoolByFee()
	return nil
}

// resolveMarkedConflict handles an input whose referenced UTXO is already
// marked by some earlier mempool entry. Caller holds the write lock.
func (c *Blockchain) resolveMarkedConflict(prevOutputHash khash.Hash) {
	idx := -1
	for i, me := range c.mempool {
		for _, in := range me.Tx.Inputs {
			if in.PrevOutputHash == prevOutputHash {
				idx = i
				break
			}
		}
		if idx >= 0 {
			break
		}
	}

	if idx < 0 {
		// Stale mark: no mempool entry actually claims it anymore.
		e := c.utxos[prevOutputHash]
		e.Marked = false
		c.utxos[prevOutputHash] = e
		return
	}

	conflict := c.mempool[idx]
	c.mempool = append(c.mempool[:idx], c.mempool[idx+1:]...)
	for _, in := range conflict.Tx.Inputs {
		if e, ok := c.utxos[in.PrevOutputHash]; ok {
			e.Marked = false
			c.utxos[in.PrevOutputHash] = e
		}
	}
}

// sortMempoolByFee re-sorts the mempool ascending by absolute fee, so that
// composing a block picks from the tail for the highest fees; ties are
// broken deterministically by transaction hash.
func (c *Blockchain) sortMempoolByFee() {
	sort.SliceStable(c.mempool, func(i, j int) bool {
		fi, fj := c.mempool[i].Fee(c.utxos), c.mempool[j].Fee(c.utxos)
		if fi != fj {
			return fi < fj
		}
		hi, hj := c.mempool[i].Tx.Hash(), c.mempool[j].Tx.Hash()
		return hi.String() < hj.String()
	})
}

// CleanupMempool evicts every entry whose AdmittedAt is older than
// MaxMempoolTransactionAge relative to now, unmarking every UTXO it
// referenced.
func (c *Blockchain) CleanupMempool(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	kept := c.mempool[:0]
	for _, entry := range c.mempool {
		if now.Sub(entry.AdmittedAt) > MaxMempoolTransactionAge {
			for _, in := range entry.Tx.Inputs {
				if e, ok := c.utxos[in.PrevOutputHash]; ok {
					e.Marked = false
					c.utxos[in.PrevOutputHash] = e
				}
			}
			continue
		}
		kept = append(kept, entry)
	}
	c.mempool = kept
}
