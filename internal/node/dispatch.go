package node

import (
	"fmt"
	"time"

	"github.com/kmechain/kmego/internal/wire"
	"github.com/kmechain/kmego/pkg/kerr"
)

// dispatch handles one inbound message and returns the response to send
// back, or nil if the protocol defines no response for this message type.
func (n *Node) dispatch(from *Peer, msg wire.Message) (*wire.Message, error) {
	switch msg.Type {
	case wire.TypeFetchUTXOs:
		return n.handleFetchUTXOs(msg)
	case wire.TypeSubmitTransaction:
		return nil, n.handleSubmitTransaction(msg)
	case wire.TypeNewTransaction:
		return nil, n.handleNewTransaction(msg)
	case wire.TypeFetchTemplate:
		return n.handleFetchTemplate(msg)
	case wire.TypeValidateTemplate:
		return n.handleValidateTemplate(msg)
	case wire.TypeSubmitTemplate:
		return nil, n.handleSubmitTemplate(msg)
	case wire.TypeDiscoverNodes:
		return n.handleDiscoverNodes()
	case wire.TypeAskDifference:
		return n.handleAskDifference(msg)
	case wire.TypeFetchBlock:
		return n.handleFetchBlock(msg)
	case wire.TypeNewBlock:
		return nil, n.handleNewBlock(msg)
	default:
		return nil, fmt.Errorf("%w: unrecognized message type %s", kerr.ErrProtocol, msg.Type)
	}
}

func (n *Node) handleFetchUTXOs(msg wire.Message) (*wire.Message, error) {
	var req wire.FetchUTXOsPayload
	if err := wire.Unpack(msg, &req); err != nil {
		return nil, err
	}
	var entries []wire.UTXOWire
	for _, entry := range n.Chain.UTXOs() {
		if entry.Output.PubKey != req.PubKey {
			continue
		}
		entries = append(entries, wire.UTXOWire{
			Marked:   entry.Marked,
			Value:    entry.Output.Value,
			UniqueID: entry.Output.UniqueID,
			PubKey:   entry.Output.PubKey,
		})
	}
	resp, err := wire.Pack(wire.TypeUTXOs, wire.UTXOsPayload{Entries: entries})
	return &resp, err
}

func (n *Node) handleSubmitTransaction(msg wire.Message) error {
	var req wire.SubmitTransactionPayload
	if err := wire.Unpack(msg, &req); err != nil {
		return err
	}
	if err := n.Chain.AddToMempool(req.Tx, time.Now()); err != nil {
		return err
	}
	gossip, err := wire.Pack(wire.TypeNewTransaction, wire.NewTransactionPayload{Tx: req.Tx})
	if err != nil {
		return err
	}
	n.Broadcast(gossip)
	return nil
}

func (n *Node) handleNewTransaction(msg wire.Message) error {
	var req wire.NewTransactionPayload
	if err := wire.Unpack(msg, &req); err != nil {
		return err
	}
	return n.Chain.AddToMempool(req.Tx, time.Now())
}

func (n *Node) handleFetchTemplate(msg wire.Message) (*wire.Message, error) {
	var req wire.FetchTemplatePayload
	if err := wire.Unpack(msg, &req); err != nil {
		return nil, err
	}
	tmpl, err := n.Chain.BuildTemplate(req.PubKey, time.Now())
	if err != nil {
		return nil, err
	}
	resp, err := wire.Pack(wire.TypeTemplate, wire.TemplatePayload{Block: tmpl})
	return &resp, err
}

func (n *Node) handleValidateTemplate(msg wire.Message) (*wire.Message, error) {
	var req wire.ValidateTemplatePayload
	if err := wire.Unpack(msg, &req); err != nil {
		return nil, err
	}
	valid := n.Chain.ValidateTemplate(req.Block) == nil
	resp, err := wire.Pack(wire.TypeTemplateValidity, wire.TemplateValidityPayload{Valid: valid})
	return &resp, err
}

func (n *Node) handleSubmitTemplate(msg wire.Message) error {
	var req wire.SubmitTemplatePayload
	if err := wire.Unpack(msg, &req); err != nil {
		return err
	}
	if err := n.Chain.AddBlock(req.Block); err != nil {
		return err
	}
	gossip, err := wire.Pack(wire.TypeNewBlock, wire.NewBlockPayload{Block: req.Block})
	if err != nil {
		return err
	}
	n.Broadcast(gossip)
	return nil
}

func (n *Node) handleNewBlock(msg wire.Message) error {
	var req wire.NewBlockPayload
	if err := wire.Unpack(msg, &req); err != nil {
		return err
	}
	return n.Chain.AddBlock(req.Block)
}

func (n *Node) handleDiscoverNodes() (*wire.Message, error) {
	resp, err := wire.Pack(wire.TypeNodeList, wire.NodeListPayload{Addresses: n.Peers()})
	return &resp, err
}

func (n *Node) handleAskDifference(msg wire.Message) (*wire.Message, error) {
	var req wire.AskDifferencePayload
	if err := wire.Unpack(msg, &req); err != nil {
		return nil, err
	}
	diff := int64(n.Chain.Height()) - int64(req.PeerHeight)
	resp, err := wire.Pack(wire.TypeDifference, wire.DifferencePayload{Difference: diff})
	return &resp, err
}

func (n *Node) handleFetchBlock(msg wire.Message) (*wire.Message, error) {
	var req wire.FetchBlockPayload
	if err := wire.Unpack(msg, &req); err != nil {
		return nil, err
	}
	b, ok := n.Chain.BlockAt(req.Height)
	if !ok {
		return nil, fmt.Errorf("%w: no block at height %d", kerr.ErrProtocol, req.Height)
	}
	resp, err := wire.Pack(wire.TypeNewBlock, wire.NewBlockPayload{Block: b})
	return &resp, err
}
