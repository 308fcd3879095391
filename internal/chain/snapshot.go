package chain

import (
	"fmt"
	"os"

	"github.com/kmechain/kmego/pkg/block"
	"github.com/kmechain/kmego/pkg/codec"
	"github.com/kmechain/kmego/pkg/kerr"
	"github.com/kmechain/kmego/pkg/u256"
)

// snapshotData is the on-disk representation of a Blockchain. The mempool
// and UTXO set are not persisted: UTXOs are rederived from blocks on Load
// via RebuildUTXOs, and the mempool is always empty on startup.
type snapshotData struct {
	Blocks []block.Block `cbor:"blocks"`
	Target u256.U256     `cbor:"target"`
}

// Save writes the chain's committed blocks and current target to path as a
// single canonical CBOR document.
func (c *Blockchain) Save(path string) error {
	c.mu.RLock()
	data := snapshotData{
		Blocks: append([]block.Block(nil), c.blocks...),
		Target: c.target,
	}
	c.mu.RUnlock()

	encoded, err := codec.Encode(data)
	if err != nil {
		return fmt.Errorf("%w: %v", kerr.ErrCodec, err)
	}
	if err := os.WriteFile(path, encoded, 0o644); err != nil {
		return fmt.Errorf("%w: %v", kerr.ErrIO, err)
	}
	return nil
}

// Load reads a chain snapshot from path and rebuilds its UTXO set from the
// recovered blocks. The mempool starts empty.
func Load(path string) (*Blockchain, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", kerr.ErrIO, err)
	}

	var data snapshotData
	if err := codec.Decode(raw, &data); err != nil {
		return nil, fmt.Errorf("%w: %v", kerr.ErrCodec, err)
	}

	c := New(data.Target)
	c.blocks = data.Blocks
	c.RebuildUTXOs()
	return c, nil
}
