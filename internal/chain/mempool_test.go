package chain

import (
	"testing"
	"time"

	"github.com/kmechain/kmego/pkg/ecdsa"
	"github.com/kmechain/kmego/pkg/khash"
	"github.com/kmechain/kmego/pkg/tx"
	"github.com/kmechain/kmego/pkg/u256"
)

// seedUTXO injects a spendable output directly into the chain's UTXO set,
// bypassing AddBlock, for mempool-focused tests that don't need a mined
// block history.
func seedUTXO(c *Blockchain, out tx.TransactionOutput) khash.Hash {
	c.mu.Lock()
	defer c.mu.Unlock()
	h := out.Hash()
	c.utxos[h] = UTXOEntry{Output: out}
	return h
}

func spendingTx(t *testing.T, priv *ecdsa.PrivateKey, prevHash khash.Hash, outputValue uint64, to ecdsa.PublicKey) tx.Transaction {
	t.Helper()
	txn := tx.Transaction{
		Inputs:  []tx.TransactionInput{{PrevOutputHash: prevHash}},
		Outputs: []tx.TransactionOutput{tx.NewOutput(outputValue, to)},
	}
	if err := txn.SignInput(0, priv, prevHash); err != nil {
		t.Fatalf("SignInput: %v", err)
	}
	return txn
}

// scenario 3: T1 spends U, then T2 also spends U; T1 is evicted and its
// UTXOs unmarked, T2 is admitted and marks U.
func TestAddToMempool_DoubleSpendResolution(t *testing.T) {
	priv := genKey(t)
	pub := priv.PublicKey()

	c := New(u256.Max)
	out := tx.NewOutput(1000, pub)
	prevHash := seedUTXO(c, out)

	t1 := spendingTx(t, priv, prevHash, 900, pub)
	if err := c.AddToMempool(t1, time.Unix(0, 0)); err != nil {
		t.Fatalf("AddToMempool(t1): %v", err)
	}

	t2 := spendingTx(t, priv, prevHash, 800, pub)
	if err := c.AddToMempool(t2, time.Unix(1, 0)); err != nil {
		t.Fatalf("AddToMempool(t2): %v", err)
	}

	mp := c.Mempool()
	if len(mp) != 1 {
		t.Fatalf("mempool has %d entries, want 1 (t1 evicted)", len(mp))
	}
	if mp[0].Tx.Hash() != t2.Hash() {
		t.Fatalf("surviving entry is not t2")
	}

	utxos := c.UTXOs()
	if !utxos[prevHash].Marked {
		t.Fatalf("U should be marked by the surviving t2")
	}
}

// scenario 4: admitting T_a (fee 1), T_b (fee 5), T_c (fee 3) leaves the
// mempool sorted ascending by fee, with T_b at the tail.
func TestAddToMempool_FeeSortOrder(t *testing.T) {
	priv := genKey(t)
	pub := priv.PublicKey()

	c := New(u256.Max)

	mk := func(value, fee uint64) tx.Transaction {
		out := tx.NewOutput(value, pub)
		prevHash := seedUTXO(c, out)
		return spendingTx(t, priv, prevHash, value-fee, pub)
	}

	ta := mk(100, 1)
	tb := mk(100, 5)
	tcTx := mk(100, 3)

	now := time.Unix(0, 0)
	if err := c.AddToMempool(ta, now); err != nil {
		t.Fatalf("AddToMempool(ta): %v", err)
	}
	if err := c.AddToMempool(tb, now); err != nil {
		t.Fatalf("AddToMempool(tb): %v", err)
	}
	if err := c.AddToMempool(tcTx, now); err != nil {
		t.Fatalf("AddToMempool(tc): %v", err)
	}

	mp := c.Mempool()
	if len(mp) != 3 {
		t.Fatalf("mempool has %d entries, want 3", len(mp))
	}
	if mp[len(mp)-1].Tx.Hash() != tb.Hash() {
		t.Fatalf("highest-fee transaction is not at the tail")
	}

	utxos := c.UTXOs()
	fees := make([]uint64, len(mp))
	for i, e := range mp {
		fees[i] = e.Fee(utxos)
	}
	for i := 1; i < len(fees); i++ {
		if fees[i-1] > fees[i] {
			t.Fatalf("mempool not ascending by fee: %v", fees)
		}
	}
}

func TestAddToMempool_RejectsMissingUTXO(t *testing.T) {
	priv := genKey(t)
	pub := priv.PublicKey()

	c := New(u256.Max)
	txn := spendingTx(t, priv, khash.Hash{0x01}, 10, pub)
	if err := c.AddToMempool(txn, time.Unix(0, 0)); err == nil {
		t.Fatalf("AddToMempool with no such utxo should fail")
	}
}

func TestAddToMempool_MarksReferencedUTXO(t *testing.T) {
	priv := genKey(t)
	pub := priv.PublicKey()

	c := New(u256.Max)
	out := tx.NewOutput(500, pub)
	prevHash := seedUTXO(c, out)
	txn := spendingTx(t, priv, prevHash, 400, pub)

	if err := c.AddToMempool(txn, time.Unix(0, 0)); err != nil {
		t.Fatalf("AddToMempool: %v", err)
	}
	if !c.UTXOs()[prevHash].Marked {
		t.Fatalf("referenced utxo should be marked after admission")
	}
}

func TestCleanupMempool_EvictsStaleEntriesAndUnmarks(t *testing.T) {
	priv := genKey(t)
	pub := priv.PublicKey()

	c := New(u256.Max)
	out := tx.NewOutput(500, pub)
	prevHash := seedUTXO(c, out)
	txn := spendingTx(t, priv, prevHash, 400, pub)

	admitted := time.Unix(0, 0)
	if err := c.AddToMempool(txn, admitted); err != nil {
		t.Fatalf("AddToMempool: %v", err)
	}

	c.CleanupMempool(admitted.Add(MaxMempoolTransactionAge + time.Second))

	if len(c.Mempool()) != 0 {
		t.Fatalf("stale entry should have been evicted")
	}
	if c.UTXOs()[prevHash].Marked {
		t.Fatalf("evicted entry's utxo should be unmarked")
	}
}
