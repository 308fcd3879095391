package miner

import (
	"context"
	"testing"
	"time"

	"github.com/kmechain/kmego/internal/chain"
	"github.com/kmechain/kmego/internal/node"
	"github.com/kmechain/kmego/pkg/ecdsa"
	"github.com/kmechain/kmego/pkg/u256"
)

func TestMiner_MinesAndSubmitsOneBlock(t *testing.T) {
	c := chain.New(u256.Max)
	n := node.New(c, t.TempDir()+"/chain.cbor")
	if err := n.Start("127.0.0.1:0"); err != nil {
		t.Fatalf("Start: %v", err)
	}
	t.Cleanup(n.Stop)

	priv, err := ecdsa.GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}

	m := New(n.Addr(), priv.PublicKey())
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := m.mineOnce(ctx); err != nil {
		t.Fatalf("mineOnce: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if c.Height() == 1 {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("expected height 1 after one mined block, got %d", c.Height())
}
