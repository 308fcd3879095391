package wallet

import (
	"encoding/hex"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/kmechain/kmego/pkg/ecdsa"
)

// FeeType selects how FeeConfig.calculate interprets FeeConfig.Value.
type FeeType string

const (
	FeeFixed   FeeType = "fixed"
	FeePercent FeeType = "percent"
)

// FeeConfig is the wallet's fee policy: Fixed(v) charges v sats flat,
// Percent(p) charges floor(amount * p / 100).
type FeeConfig struct {
	Type  FeeType `toml:"fee_type"`
	Value float64 `toml:"value"`
}

// calculate computes the fee owed on a transfer of amount sats.
func (f FeeConfig) calculate(amount uint64) uint64 {
	switch f.Type {
	case FeePercent:
		return uint64(float64(amount) * f.Value / 100)
	default:
		return uint64(f.Value)
	}
}

// KeyConfig is one entry of the config file's `keys` list: a hex-encoded
// compressed public key paired with its hex-encoded private scalar.
type KeyConfig struct {
	Public  string `toml:"public"`
	Private string `toml:"private"`
}

// ContactConfig is one entry of the `contacts` address book: a friendly name
// resolving to a hex-encoded public key, so send_transaction can target a
// recipient by name instead of a raw key.
type ContactConfig struct {
	Name string `toml:"name"`
	Key  string `toml:"key"`
}

// Config is the wallet's TOML configuration file.
type Config struct {
	Keys        []KeyConfig     `toml:"keys"`
	Contacts    []ContactConfig `toml:"contacts"`
	DefaultNode string          `toml:"default_node"`
	FeeConfig   FeeConfig       `toml:"fee_config"`
}

// LoadConfig parses a wallet TOML file at path.
func LoadConfig(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("wallet: load config: %w", err)
	}
	return &cfg, nil
}

func decodePublicKey(s string) (ecdsa.PublicKey, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return ecdsa.PublicKey{}, fmt.Errorf("wallet: decode public key: %w", err)
	}
	return ecdsa.PublicKeyFromBytes(b)
}

func decodePrivateKey(s string) (*ecdsa.PrivateKey, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("wallet: decode private key: %w", err)
	}
	return ecdsa.PrivateKeyFromBytes(b)
}
