package chain

import (
	"path/filepath"
	"testing"

	"github.com/kmechain/kmego/internal/consensus"
	"github.com/kmechain/kmego/pkg/block"
	"github.com/kmechain/kmego/pkg/khash"
	"github.com/kmechain/kmego/pkg/tx"
	"github.com/kmechain/kmego/pkg/u256"
)

func TestSaveLoad_RoundTripsBlocksAndRederivesUTXOs(t *testing.T) {
	priv := genKey(t)
	pub := priv.PublicKey()

	c := New(u256.Max)
	coinbase := tx.Transaction{Outputs: []tx.TransactionOutput{tx.NewOutput(consensus.RewardAtHeight(0), pub)}}
	hdr := block.Header{Timestamp: 1000, PrevBlockHash: khash.Zero, Target: u256.Max}
	b := block.Block{Header: hdr, Transactions: []tx.Transaction{coinbase}}
	root, _ := b.ComputeMerkleRoot()
	b.Header.MerkleRoot = root
	if err := c.AddBlock(b); err != nil {
		t.Fatalf("AddBlock: %v", err)
	}

	path := filepath.Join(t.TempDir(), "chain.cbor")
	if err := c.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if loaded.Height() != c.Height() {
		t.Fatalf("loaded height = %d, want %d", loaded.Height(), c.Height())
	}
	if loaded.Target().Cmp(c.Target()) != 0 {
		t.Fatalf("loaded target does not match saved target")
	}
	if len(loaded.Mempool()) != 0 {
		t.Fatalf("loaded chain should start with an empty mempool")
	}

	var balance uint64
	for _, entry := range loaded.UTXOs() {
		if entry.Output.PubKey == pub {
			balance += entry.Output.Value
		}
	}
	if balance != consensus.RewardAtHeight(0) {
		t.Fatalf("loaded balance = %d, want %d", balance, consensus.RewardAtHeight(0))
	}
}
