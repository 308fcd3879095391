// Package node implements the peer-to-peer listener and protocol state
// machine: a receive-then-dispatch loop per connection, a peer pool keyed
// by address, and background cleanup and persistence tasks.
package node

import (
	"context"
	"net"
	"sync"
	"time"

	"github.com/kmechain/kmego/internal/chain"
	"github.com/kmechain/kmego/internal/log"
	"github.com/kmechain/kmego/internal/wire"
)

const (
	// DefaultPort is the node's default listen port.
	DefaultPort = 9000

	// DefaultBlockchainFile is the default snapshot path.
	DefaultBlockchainFile = "./blockchain.cbor"

	// CleanupInterval is how often the mempool/UTXO-mark cleanup task runs.
	CleanupInterval = 30 * time.Second

	// SnapshotInterval is how often the chain is persisted to disk.
	SnapshotInterval = 60 * time.Second

	// IdleTimeout closes a stream that sends nothing for this long.
	IdleTimeout = 30 * time.Second
)

// Peer is a single persistent connection to another node. Writes are
// serialized so a background broadcast and a request's response can't
// interleave their frames.
type Peer struct {
	Addr string
	Conn net.Conn

	writeMu sync.Mutex
}

// Send frames and writes m to the peer, safe for concurrent callers.
func (p *Peer) Send(m wire.Message) error {
	p.writeMu.Lock()
	defer p.writeMu.Unlock()
	return wire.WriteMessage(p.Conn, m)
}

// Node owns the chain engine, the peer pool, and the listener.
type Node struct {
	Chain          *chain.Blockchain
	BlockchainFile string

	mu       sync.Mutex
	peers    map[string]*Peer
	listener net.Listener
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

// New creates a node around an existing chain, ready to Start.
func New(c *chain.Blockchain, blockchainFile string) *Node {
	ctx, cancel := context.WithCancel(context.Background())
	return &Node{
		Chain:          c,
		BlockchainFile: blockchainFile,
		peers:          make(map[string]*Peer),
		ctx:            ctx,
		cancel:         cancel,
	}
}

// Start binds addr and begins the accept loop plus background tasks.
func (n *Node) Start(addr string) error {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	n.listener = l

	n.wg.Add(3)
	go n.acceptLoop()
	go n.cleanupLoop()
	go n.snapshotLoop()

	log.Node.Info().Str("addr", addr).Msg("node listening")
	return nil
}

// Stop closes the listener, every peer connection, and waits for
// background tasks to return.
func (n *Node) Stop() {
	n.cancel()
	if n.listener != nil {
		n.listener.Close()
	}
	n.mu.Lock()
	for addr, p := range n.peers {
		p.Conn.Close()
		delete(n.peers, addr)
	}
	n.mu.Unlock()
	n.wg.Wait()
}

func (n *Node) acceptLoop() {
	defer n.wg.Done()
	for {
		conn, err := n.listener.Accept()
		if err != nil {
			select {
			case <-n.ctx.Done():
				return
			default:
				log.Node.Warn().Err(err).Msg("accept failed")
				continue
			}
		}
		p := n.addPeer(conn.RemoteAddr().String(), conn)
		go n.handleConn(p)
	}
}

func (n *Node) addPeer(addr string, conn net.Conn) *Peer {
	n.mu.Lock()
	defer n.mu.Unlock()
	p := &Peer{Addr: addr, Conn: conn}
	n.peers[addr] = p
	return p
}

func (n *Node) removePeer(addr string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	delete(n.peers, addr)
}

// Addr returns the address the node is listening on.
func (n *Node) Addr() string {
	return n.listener.Addr().String()
}

// Peers returns the addresses of every currently tracked peer.
func (n *Node) Peers() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, 0, len(n.peers))
	for addr := range n.peers {
		out = append(out, addr)
	}
	return out
}

// Dial connects to a peer and registers it in the pool.
func (n *Node) Dial(addr string) (*Peer, error) {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, err
	}
	return n.addPeer(addr, conn), nil
}

// Broadcast sends m to every tracked peer, dropping any peer the write
// fails against — a peer task forgets a dead connection rather than
// retrying indefinitely.
func (n *Node) Broadcast(m wire.Message) {
	n.mu.Lock()
	peers := make([]*Peer, 0, len(n.peers))
	for _, p := range n.peers {
		peers = append(peers, p)
	}
	n.mu.Unlock()

	for _, p := range peers {
		if err := p.Send(m); err != nil {
			log.Node.Debug().Str("peer", p.Addr).Err(err).Msg("broadcast failed, dropping peer")
			p.Conn.Close()
			n.removePeer(p.Addr)
		}
	}
}

func (n *Node) handleConn(p *Peer) {
	defer func() {
		p.Conn.Close()
		n.removePeer(p.Addr)
	}()

	for {
		_ = p.Conn.SetReadDeadline(time.Now().Add(IdleTimeout))
		msg, err := wire.ReadMessage(p.Conn)
		if err != nil {
			log.Node.Debug().Str("peer", p.Addr).Err(err).Msg("peer stream closed")
			return
		}

		resp, err := n.dispatch(p, msg)
		if err != nil {
			log.Node.Debug().Str("peer", p.Addr).Str("type", msg.Type.String()).Err(err).Msg("dispatch failed")
			continue
		}
		if resp == nil {
			continue
		}
		if err := p.Send(*resp); err != nil {
			log.Node.Debug().Str("peer", p.Addr).Err(err).Msg("response write failed")
			return
		}
	}
}

func (n *Node) cleanupLoop() {
	defer n.wg.Done()
	ticker := time.NewTicker(CleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-n.ctx.Done():
			return
		case <-ticker.C:
			n.Chain.CleanupMempool(time.Now())
		}
	}
}

func (n *Node) snapshotLoop() {
	defer n.wg.Done()
	ticker := time.NewTicker(SnapshotInterval)
	defer ticker.Stop()
	for {
		select {
		case <-n.ctx.Done():
			return
		case <-ticker.C:
			if err := n.Chain.Save(n.BlockchainFile); err != nil {
				log.Node.Warn().Err(err).Msg("snapshot failed")
			}
		}
	}
}
