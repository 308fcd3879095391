// node starts a listener, loading an existing chain snapshot if present,
// otherwise optionally initial-syncing from a list of peer addresses.
package main

import (
	"fmt"
	"net"
	"os"
	"strconv"

	"github.com/kmechain/kmego/config"
	"github.com/kmechain/kmego/internal/chain"
	"github.com/kmechain/kmego/internal/consensus"
	"github.com/kmechain/kmego/internal/log"
	"github.com/kmechain/kmego/internal/node"
)

func main() {
	flags := config.ParseNodeFlags()

	var c *chain.Blockchain
	if _, err := os.Stat(flags.BlockchainFile); err == nil {
		c, err = chain.Load(flags.BlockchainFile)
		if err != nil {
			log.Node.Error().Err(err).Msg("failed to load chain snapshot")
			os.Exit(1)
		}
		log.Node.Info().Uint64("height", c.Height()).Msg("loaded chain snapshot")
	} else {
		c = chain.New(consensus.MinTarget)
	}

	n := node.New(c, flags.BlockchainFile)
	addr := net.JoinHostPort("0.0.0.0", strconv.Itoa(flags.Port))
	if err := n.Start(addr); err != nil {
		log.Node.Error().Err(err).Msg("failed to start listener")
		os.Exit(1)
	}

	if c.Height() == 0 && len(flags.PeerAddrs) > 0 {
		if err := n.InitialSync(flags.PeerAddrs); err != nil {
			log.Node.Warn().Err(err).Msg("initial sync failed")
		}
	}

	fmt.Printf("node listening on %s\n", addr)
	select {}
}
