package types

import "math/big"

// Account is the ledger-visible state for a single address: a replay-protection
// nonce and its native balance. The bridge mints into and burns from Balance;
// it never reads or writes Nonce, which belongs to the transaction envelope
// layer.
type Account struct {
	Nonce   uint64   `json:"nonce"`
	Balance *big.Int `json:"balance"`
}
