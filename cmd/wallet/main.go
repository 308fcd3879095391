// wallet is a TOML-config-driven CLI for fetching balances and sending
// transactions, either to a raw hex public key or to a named contact.
package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"strconv"

	"github.com/kmechain/kmego/internal/wallet"
	"github.com/kmechain/kmego/pkg/ecdsa"
)

func main() {
	if len(os.Args) < 3 {
		usage()
		os.Exit(1)
	}

	cfg, err := wallet.LoadConfig(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "wallet: %v\n", err)
		os.Exit(1)
	}
	w, err := wallet.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "wallet: %v\n", err)
		os.Exit(1)
	}

	switch os.Args[2] {
	case "balance":
		if err := w.FetchUTXOs(); err != nil {
			fmt.Fprintf(os.Stderr, "wallet: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(w.GetBalance())

	case "send":
		if len(os.Args) != 5 {
			usage()
			os.Exit(1)
		}
		amount, err := strconv.ParseUint(os.Args[4], 10, 64)
		if err != nil {
			fmt.Fprintf(os.Stderr, "wallet: invalid amount: %v\n", err)
			os.Exit(1)
		}

		recipient, ok := w.Resolve(os.Args[3])
		if !ok {
			recipient, err = decodeHexPubKey(os.Args[3])
			if err != nil {
				fmt.Fprintf(os.Stderr, "wallet: unknown contact and invalid key: %v\n", err)
				os.Exit(1)
			}
		}

		if err := w.FetchUTXOs(); err != nil {
			fmt.Fprintf(os.Stderr, "wallet: %v\n", err)
			os.Exit(1)
		}
		t, err := w.CreateTransaction(recipient, amount)
		if err != nil {
			fmt.Fprintf(os.Stderr, "wallet: %v\n", err)
			os.Exit(1)
		}
		if err := w.SendTransaction(t); err != nil {
			fmt.Fprintf(os.Stderr, "wallet: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("sent")

	default:
		usage()
		os.Exit(1)
	}
}

func decodeHexPubKey(s string) (ecdsa.PublicKey, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return ecdsa.PublicKey{}, err
	}
	return ecdsa.PublicKeyFromBytes(b)
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: wallet <config.toml> balance")
	fmt.Fprintln(os.Stderr, "       wallet <config.toml> send <contact_name|hex_pubkey> <amount>")
}
