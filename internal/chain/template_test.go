package chain

import (
	"testing"
	"time"

	"github.com/kmechain/kmego/internal/consensus"
	"github.com/kmechain/kmego/pkg/tx"
	"github.com/kmechain/kmego/pkg/u256"
)

func TestBuildTemplate_EmptyChainEmptyMempool(t *testing.T) {
	priv := genKey(t)
	pub := priv.PublicKey()

	c := New(u256.Max)
	tmpl, err := c.BuildTemplate(pub, time.Unix(1000, 0))
	if err != nil {
		t.Fatalf("BuildTemplate: %v", err)
	}
	if len(tmpl.Transactions) != 1 {
		t.Fatalf("template has %d transactions, want 1 (coinbase only)", len(tmpl.Transactions))
	}
	if !tmpl.Transactions[0].IsCoinbase() {
		t.Fatalf("first transaction must be the coinbase")
	}
	sum, _ := tmpl.Transactions[0].OutputSum()
	if sum != consensus.RewardAtHeight(0) {
		t.Fatalf("coinbase pays %d, want reward only (no fees, empty mempool): %d", sum, consensus.RewardAtHeight(0))
	}
	if err := c.ValidateTemplate(tmpl); err != nil {
		t.Fatalf("ValidateTemplate(freshly-built template): %v", err)
	}
}

func TestBuildTemplate_IncludesMempoolAndFees(t *testing.T) {
	priv := genKey(t)
	pub := priv.PublicKey()

	c := New(u256.Max)
	out := tx.NewOutput(1000, pub)
	prevHash := seedUTXO(c, out)
	spend := spendingTx(t, priv, prevHash, 900, pub) // fee 100

	if err := c.AddToMempool(spend, time.Unix(0, 0)); err != nil {
		t.Fatalf("AddToMempool: %v", err)
	}

	tmpl, err := c.BuildTemplate(pub, time.Unix(1000, 0))
	if err != nil {
		t.Fatalf("BuildTemplate: %v", err)
	}
	if len(tmpl.Transactions) != 2 {
		t.Fatalf("template has %d transactions, want 2 (coinbase + pending spend)", len(tmpl.Transactions))
	}
	coinbaseSum, _ := tmpl.Transactions[0].OutputSum()
	want := consensus.RewardAtHeight(0) + 100
	if coinbaseSum != want {
		t.Fatalf("coinbase pays %d, want %d (reward + fee)", coinbaseSum, want)
	}
}

func TestBuildTemplate_OrdersPendingTransactionsByDescendingFee(t *testing.T) {
	priv := genKey(t)
	pub := priv.PublicKey()

	c := New(u256.Max)

	lowFeeOut := tx.NewOutput(1000, pub)
	lowFeePrev := seedUTXO(c, lowFeeOut)
	lowFeeTx := spendingTx(t, priv, lowFeePrev, 990, pub) // fee 10
	if err := c.AddToMempool(lowFeeTx, time.Unix(0, 0)); err != nil {
		t.Fatalf("AddToMempool(low fee): %v", err)
	}

	highFeeOut := tx.NewOutput(1000, pub)
	highFeePrev := seedUTXO(c, highFeeOut)
	highFeeTx := spendingTx(t, priv, highFeePrev, 500, pub) // fee 500
	if err := c.AddToMempool(highFeeTx, time.Unix(0, 0)); err != nil {
		t.Fatalf("AddToMempool(high fee): %v", err)
	}

	tmpl, err := c.BuildTemplate(pub, time.Unix(1000, 0))
	if err != nil {
		t.Fatalf("BuildTemplate: %v", err)
	}
	if len(tmpl.Transactions) != 3 {
		t.Fatalf("template has %d transactions, want 3 (coinbase + 2 pending)", len(tmpl.Transactions))
	}
	if tmpl.Transactions[1].Hash() != highFeeTx.Hash() {
		t.Fatalf("expected the higher-fee transaction first among pending entries")
	}
	if tmpl.Transactions[2].Hash() != lowFeeTx.Hash() {
		t.Fatalf("expected the lower-fee transaction last among pending entries")
	}
}

func TestValidateTemplate_RejectsWrongPrevHash(t *testing.T) {
	priv := genKey(t)
	pub := priv.PublicKey()

	c := New(u256.Max)
	tmpl, err := c.BuildTemplate(pub, time.Unix(1000, 0))
	if err != nil {
		t.Fatalf("BuildTemplate: %v", err)
	}
	tmpl.Header.PrevBlockHash[0] ^= 0xFF
	root, _ := tmpl.ComputeMerkleRoot()
	tmpl.Header.MerkleRoot = root

	if err := c.ValidateTemplate(tmpl); err == nil {
		t.Fatalf("ValidateTemplate should reject a corrupted prev_block_hash")
	}
}
