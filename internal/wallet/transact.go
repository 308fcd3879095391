package wallet

import (
	"fmt"

	"github.com/kmechain/kmego/pkg/ecdsa"
	"github.com/kmechain/kmego/pkg/kerr"
	"github.com/kmechain/kmego/pkg/tx"
)

// CreateTransaction builds and signs a transaction paying amount to
// recipient, funded by walking unmarked UTXOs across every owned key (in
// config declaration order) until the accumulated input sum covers amount
// plus the configured fee. Any input sum beyond that returns to the first
// owned key as change.
func (w *Wallet) CreateTransaction(recipient ecdsa.PublicKey, amount uint64) (tx.Transaction, error) {
	fee := w.FeeConfig.calculate(amount)
	total := amount + fee

	w.mu.RLock()
	defer w.mu.RUnlock()

	if len(w.keysOrder) == 0 {
		return tx.Transaction{}, fmt.Errorf("%w: no owned keys for change", kerr.ErrInsufficientFunds)
	}
	firstOwned := w.keysOrder[0]

	var inputs []tx.TransactionInput
	var signers []*ecdsa.PrivateKey
	var inputSum uint64

outer:
	for _, pub := range w.keysOrder {
		priv := w.keys[pub]
		for _, e := range w.utxos[pub] {
			if e.Marked {
				continue
			}
			inputs = append(inputs, tx.TransactionInput{PrevOutputHash: e.Output.Hash()})
			signers = append(signers, priv)
			inputSum += e.Output.Value
			if inputSum >= total {
				break outer
			}
		}
	}

	if inputSum < total {
		return tx.Transaction{}, fmt.Errorf("%w: have %d, need %d", kerr.ErrInsufficientFunds, inputSum, total)
	}

	outputs := []tx.TransactionOutput{tx.NewOutput(amount, recipient)}
	if change := inputSum - total; change > 0 {
		outputs = append(outputs, tx.NewOutput(change, firstOwned))
	}

	t := tx.Transaction{Inputs: inputs, Outputs: outputs}
	for i, priv := range signers {
		if err := t.SignInput(i, priv, t.Inputs[i].PrevOutputHash); err != nil {
			return tx.Transaction{}, err
		}
	}
	return t, nil
}
