// key_gen generates a fresh key pair and writes it to <name>_priv.cbor and
// <name>_pub.cbor.
package main

import (
	"fmt"
	"os"

	"github.com/kmechain/kmego/pkg/codec"
	"github.com/kmechain/kmego/pkg/ecdsa"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: key_gen <name>")
		os.Exit(1)
	}
	name := os.Args[1]

	priv, err := ecdsa.GenerateKey()
	if err != nil {
		fmt.Fprintf(os.Stderr, "key_gen: generate key: %v\n", err)
		os.Exit(1)
	}
	pub := priv.PublicKey()

	privBytes, err := codec.Encode(priv)
	if err != nil {
		fmt.Fprintf(os.Stderr, "key_gen: encode private key: %v\n", err)
		os.Exit(1)
	}
	pubBytes, err := codec.Encode(pub)
	if err != nil {
		fmt.Fprintf(os.Stderr, "key_gen: encode public key: %v\n", err)
		os.Exit(1)
	}

	if err := os.WriteFile(name+"_priv.cbor", privBytes, 0o600); err != nil {
		fmt.Fprintf(os.Stderr, "key_gen: write private key: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(name+"_pub.cbor", pubBytes, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "key_gen: write public key: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("wrote %s_priv.cbor and %s_pub.cbor\n", name, name)
}
