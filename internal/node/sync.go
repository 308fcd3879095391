package node

import (
	"fmt"

	"github.com/kmechain/kmego/internal/log"
	"github.com/kmechain/kmego/internal/wire"
)

// InitialSync runs on startup when no local snapshot exists: it asks each
// candidate peer how far ahead it is, picks the one reporting the greatest
// positive difference, fetches every block it's missing in order with full
// validation, then rebuilds the UTXO set and retargets once.
func (n *Node) InitialSync(peerAddrs []string) error {
	if len(peerAddrs) == 0 {
		return nil
	}

	var best *Peer
	var bestDiff int64

	for _, addr := range peerAddrs {
		p, err := n.Dial(addr)
		if err != nil {
			log.Node.Warn().Str("addr", addr).Err(err).Msg("initial sync: dial failed")
			continue
		}

		var diffResp wire.DifferencePayload
		localHeight := n.Chain.Height()
		_, err = wire.RoundTrip(p.Conn, wire.TypeAskDifference, wire.AskDifferencePayload{PeerHeight: localHeight}, &diffResp)
		if err != nil {
			log.Node.Warn().Str("addr", addr).Err(err).Msg("initial sync: AskDifference failed")
			p.Conn.Close()
			n.removePeer(addr)
			continue
		}

		if diffResp.Difference > bestDiff {
			bestDiff = diffResp.Difference
			best = p
		}
	}

	if best == nil || bestDiff <= 0 {
		return nil
	}

	target := int64(n.Chain.Height()) + bestDiff
	for h := int64(n.Chain.Height()); h < target; h++ {
		var blockResp wire.NewBlockPayload
		_, err := wire.RoundTrip(best.Conn, wire.TypeFetchBlock, wire.FetchBlockPayload{Height: uint64(h)}, &blockResp)
		if err != nil {
			return fmt.Errorf("initial sync: fetch block %d: %w", h, err)
		}
		if err := n.Chain.AddBlock(blockResp.Block); err != nil {
			return fmt.Errorf("initial sync: add block %d: %w", h, err)
		}
	}

	n.Chain.RebuildUTXOs()
	n.Chain.TryAdjustTarget()
	return nil
}
