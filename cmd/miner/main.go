// miner runs the online mining loop against a node, submitting solved
// blocks that pay a given public key.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/kmechain/kmego/internal/miner"
	"github.com/kmechain/kmego/pkg/codec"
	"github.com/kmechain/kmego/pkg/ecdsa"
)

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintln(os.Stderr, "usage: miner <node_addr> <pub_key_file>")
		os.Exit(1)
	}

	data, err := os.ReadFile(os.Args[2])
	if err != nil {
		fmt.Fprintf(os.Stderr, "miner: read public key file: %v\n", err)
		os.Exit(1)
	}
	var pub ecdsa.PublicKey
	if err := codec.Decode(data, &pub); err != nil {
		fmt.Fprintf(os.Stderr, "miner: decode public key: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	m := miner.New(os.Args[1], pub)
	if err := m.Run(ctx); err != nil && ctx.Err() == nil {
		fmt.Fprintf(os.Stderr, "miner: %v\n", err)
		os.Exit(1)
	}
}
