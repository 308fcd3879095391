// Package miner implements the online mining loop: fetch a candidate block
// from a node, solve its proof of work in bounded slices, and submit it
// back.
package miner

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/kmechain/kmego/internal/consensus"
	"github.com/kmechain/kmego/internal/log"
	"github.com/kmechain/kmego/internal/wire"
	"github.com/kmechain/kmego/pkg/ecdsa"
)

// Steps is the number of nonce increments tried per Mine slice before the
// loop yields back to the caller, matching the chain engine's own
// step-bounded mining discipline.
const Steps = 200_000

// Miner repeatedly pulls a block template from a node, solves it, and
// submits the result, logging each attempt.
type Miner struct {
	NodeAddr string
	PubKey   ecdsa.PublicKey

	// Now, if set, replaces time.Now for tests; nil uses the wall clock.
	Now func() time.Time
}

// New creates a Miner that mines to reward, paying pub, against the node at
// addr.
func New(addr string, pub ecdsa.PublicKey) *Miner {
	return &Miner{NodeAddr: addr, PubKey: pub}
}

// Run mines blocks in a loop until ctx is cancelled or a fatal dial/network
// error occurs. Each iteration: fetch a template, mine it, submit it.
func (m *Miner) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := m.mineOnce(ctx); err != nil {
			return err
		}
	}
}

func (m *Miner) mineOnce(ctx context.Context) error {
	conn, err := net.Dial("tcp", m.NodeAddr)
	if err != nil {
		return fmt.Errorf("dial node: %w", err)
	}
	defer conn.Close()

	var tmpl wire.TemplatePayload
	if _, err := wire.RoundTrip(conn, wire.TypeFetchTemplate, wire.FetchTemplatePayload{PubKey: m.PubKey}, &tmpl); err != nil {
		return fmt.Errorf("fetch template: %w", err)
	}

	blk := tmpl.Block
	attempts := uint64(0)
	for !consensus.Mine(&blk.Header, Steps, m.now) {
		attempts += Steps
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
	}
	attempts += Steps

	log.Miner.Info().
		Uint64("attempts", attempts).
		Uint64("nonce", blk.Header.Nonce).
		Str("hash", blk.Header.Hash().String()).
		Msg("solved block")

	conn2, err := net.Dial("tcp", m.NodeAddr)
	if err != nil {
		return fmt.Errorf("dial node for submit: %w", err)
	}
	defer conn2.Close()

	msg, err := wire.Pack(wire.TypeSubmitTemplate, wire.SubmitTemplatePayload{Block: blk})
	if err != nil {
		return fmt.Errorf("pack submission: %w", err)
	}
	if err := wire.WriteMessage(conn2, msg); err != nil {
		return fmt.Errorf("submit block: %w", err)
	}
	return nil
}

func (m *Miner) now() int64 {
	if m.Now != nil {
		return m.Now().Unix()
	}
	return time.Now().Unix()
}
