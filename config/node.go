// Package config parses the node's command-line flags.
package config

import (
	"flag"
	"os"

	"github.com/kmechain/kmego/internal/node"
)

// NodeFlags holds the node binary's parsed command-line flags: a listen
// port, a snapshot file path, and trailing positional peer addresses to
// initial-sync from when the snapshot file doesn't yet exist.
type NodeFlags struct {
	Port           int
	BlockchainFile string
	PeerAddrs      []string
}

// ParseNodeFlags parses os.Args[1:] into NodeFlags.
func ParseNodeFlags() *NodeFlags {
	f := &NodeFlags{}
	fs := flag.NewFlagSet("node", flag.ExitOnError)
	fs.IntVar(&f.Port, "port", node.DefaultPort, "listen port")
	fs.StringVar(&f.BlockchainFile, "blockchain_file", node.DefaultBlockchainFile, "path to the chain snapshot file")
	_ = fs.Parse(os.Args[1:])
	f.PeerAddrs = fs.Args()
	return f
}
