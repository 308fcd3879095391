// offline_miner loads an encoded block from disk and mines it in
// steps-sized slices, printing a summary of the attempt.
package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/kmechain/kmego/internal/consensus"
	"github.com/kmechain/kmego/pkg/block"
	"github.com/kmechain/kmego/pkg/codec"
)

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintln(os.Stderr, "usage: offline_miner <block_file> <steps>")
		os.Exit(1)
	}

	steps, err := strconv.ParseUint(os.Args[2], 10, 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "offline_miner: invalid steps: %v\n", err)
		os.Exit(1)
	}

	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "offline_miner: read block file: %v\n", err)
		os.Exit(1)
	}

	var b block.Block
	if err := codec.Decode(data, &b); err != nil {
		fmt.Fprintf(os.Stderr, "offline_miner: decode block: %v\n", err)
		os.Exit(1)
	}

	preHash := b.Header.Hash()

	var attempts uint64
	for {
		solved := consensus.Mine(&b.Header, steps, func() int64 { return time.Now().Unix() })
		attempts += steps
		if solved {
			break
		}
	}

	postHash := b.Header.Hash()

	coinbase := b.Coinbase()
	var rewardSats uint64
	for _, out := range coinbase.Outputs {
		rewardSats += out.Value
	}
	rewardCoins := float64(rewardSats) / consensus.SatsPerCoin

	fmt.Printf("attempts: %d\n", attempts)
	fmt.Printf("nonce: %d\n", b.Header.Nonce)
	fmt.Printf("reward: %g\n", rewardCoins)
	fmt.Printf("pre-mining hash: %s\n", preHash)
	fmt.Printf("post-mining hash: %s\n", postHash)

	out, err := codec.Encode(b)
	if err != nil {
		fmt.Fprintf(os.Stderr, "offline_miner: encode solved block: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(os.Args[1], out, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "offline_miner: write solved block: %v\n", err)
		os.Exit(1)
	}
}
