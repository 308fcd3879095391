// Package wallet implements the wallet engine: a set of owned key pairs,
// the per-key UTXO view fetched from a node, coin selection, fee
// calculation, and transaction submission.
package wallet

import (
	"fmt"
	"net"
	"sync"

	"github.com/kmechain/kmego/internal/wire"
	"github.com/kmechain/kmego/pkg/ecdsa"
	"github.com/kmechain/kmego/pkg/kerr"
	"github.com/kmechain/kmego/pkg/tx"
)

// ownedUTXO is one entry of a key's observed-unspent view.
type ownedUTXO struct {
	Output tx.TransactionOutput
	Marked bool
}

// Wallet tracks owned keys and their unspent outputs against a single node.
type Wallet struct {
	NodeAddr  string
	FeeConfig FeeConfig

	mu        sync.RWMutex
	keys      map[ecdsa.PublicKey]*ecdsa.PrivateKey
	keysOrder []ecdsa.PublicKey
	utxos     map[ecdsa.PublicKey][]ownedUTXO
	contacts  map[string]ecdsa.PublicKey
}

// New builds a wallet from a parsed Config.
func New(cfg *Config) (*Wallet, error) {
	w := &Wallet{
		NodeAddr:  cfg.DefaultNode,
		FeeConfig: cfg.FeeConfig,
		keys:      make(map[ecdsa.PublicKey]*ecdsa.PrivateKey),
		utxos:     make(map[ecdsa.PublicKey][]ownedUTXO),
		contacts:  make(map[string]ecdsa.PublicKey),
	}

	for _, k := range cfg.Keys {
		pub, err := decodePublicKey(k.Public)
		if err != nil {
			return nil, err
		}
		priv, err := decodePrivateKey(k.Private)
		if err != nil {
			return nil, err
		}
		if _, exists := w.keys[pub]; !exists {
			w.keysOrder = append(w.keysOrder, pub)
		}
		w.keys[pub] = priv
	}

	for _, c := range cfg.Contacts {
		pub, err := decodePublicKey(c.Key)
		if err != nil {
			return nil, fmt.Errorf("wallet: contact %q: %w", c.Name, err)
		}
		w.contacts[c.Name] = pub
	}

	return w, nil
}

// OwnedKeys returns the wallet's owned public keys.
func (w *Wallet) OwnedKeys() []ecdsa.PublicKey {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]ecdsa.PublicKey, len(w.keysOrder))
	copy(out, w.keysOrder)
	return out
}

// Resolve looks up a contact by name, returning its public key.
func (w *Wallet) Resolve(name string) (ecdsa.PublicKey, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	pub, ok := w.contacts[name]
	return pub, ok
}

// FetchUTXOs asks the node for each owned key's current unspent set and
// atomically replaces that key's slot.
func (w *Wallet) FetchUTXOs() error {
	for _, pub := range w.OwnedKeys() {
		conn, err := net.Dial("tcp", w.NodeAddr)
		if err != nil {
			return fmt.Errorf("%w: dial node: %v", kerr.ErrIO, err)
		}

		var resp wire.UTXOsPayload
		_, err = wire.RoundTrip(conn, wire.TypeFetchUTXOs, wire.FetchUTXOsPayload{PubKey: pub}, &resp)
		conn.Close()
		if err != nil {
			return fmt.Errorf("%w: fetch utxos: %v", kerr.ErrIO, err)
		}

		entries := make([]ownedUTXO, 0, len(resp.Entries))
		for _, e := range resp.Entries {
			entries = append(entries, ownedUTXO{
				Output: tx.TransactionOutput{Value: e.Value, UniqueID: e.UniqueID, PubKey: e.PubKey},
				Marked: e.Marked,
			})
		}

		w.mu.Lock()
		w.utxos[pub] = entries
		w.mu.Unlock()
	}
	return nil
}

// GetBalance sums every known unspent output value across all owned keys.
func (w *Wallet) GetBalance() uint64 {
	w.mu.RLock()
	defer w.mu.RUnlock()
	var total uint64
	for _, entries := range w.utxos {
		for _, e := range entries {
			total += e.Output.Value
		}
	}
	return total
}

// GetBalanceForKey sums unspent output values owned by a single key.
func (w *Wallet) GetBalanceForKey(pub ecdsa.PublicKey) uint64 {
	w.mu.RLock()
	defer w.mu.RUnlock()
	var total uint64
	for _, e := range w.utxos[pub] {
		total += e.Output.Value
	}
	return total
}

// SendTransaction frames and submits t to the node, with no response
// expected per protocol.
func (w *Wallet) SendTransaction(t tx.Transaction) error {
	conn, err := net.Dial("tcp", w.NodeAddr)
	if err != nil {
		return fmt.Errorf("%w: dial node: %v", kerr.ErrIO, err)
	}
	defer conn.Close()

	msg, err := wire.Pack(wire.TypeSubmitTransaction, wire.SubmitTransactionPayload{Tx: t})
	if err != nil {
		return err
	}
	if err := wire.WriteMessage(conn, msg); err != nil {
		return fmt.Errorf("%w: submit transaction: %v", kerr.ErrIO, err)
	}
	return nil
}
