// Package chain implements the UTXO ledger and mempool: the Blockchain
// aggregate type, block validation and append, mempool admission with its
// marking discipline, and UTXO-set rebuild.
package chain

import "time"

// MaxMempoolTransactionAge is the maximum time a mempool entry may sit
// before background cleanup evicts it.
const MaxMempoolTransactionAge = 600 * time.Second
