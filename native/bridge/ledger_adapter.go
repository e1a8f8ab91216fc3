package bridge

import (
	"fmt"
	"math/big"

	"nhbridge/core/state"
)

// NativeSymbol is the single native asset the bridge mints and burns. A
// two-way peg bridge mirrors exactly one host-chain balance; multi-asset
// pegging is out of scope.
const NativeSymbol = "NHB"

// StateLedger adapts *state.Manager's generic account/issuance bookkeeping
// to the narrow Ledger interface the bridge consumes.
type StateLedger struct {
	manager *state.Manager
}

// NewStateLedger constructs a Ledger backed by manager.
func NewStateLedger(manager *state.Manager) *StateLedger {
	return &StateLedger{manager: manager}
}

// TotalBalance implements Ledger.
func (l *StateLedger) TotalBalance(a AccountID) (*big.Int, error) {
	account, err := l.manager.GetAccount(a[:])
	if err != nil {
		return nil, err
	}
	if account.Balance == nil {
		return big.NewInt(0), nil
	}
	return account.Balance, nil
}

// TotalIssuance implements Ledger.
func (l *StateLedger) TotalIssuance() (*big.Int, error) {
	return l.manager.TokenSupply(NativeSymbol)
}

// IncreaseFreeBalanceCreating implements Ledger.
func (l *StateLedger) IncreaseFreeBalanceCreating(a AccountID, quantity *big.Int) error {
	if quantity == nil || quantity.Sign() == 0 {
		return nil
	}
	if quantity.Sign() < 0 {
		return fmt.Errorf("bridge: negative mint quantity")
	}
	account, err := l.manager.GetAccount(a[:])
	if err != nil {
		return err
	}
	account.Balance = new(big.Int).Add(account.Balance, quantity)
	if err := l.manager.PutAccount(a[:], account); err != nil {
		return err
	}
	_, err = l.manager.AdjustTokenSupply(NativeSymbol, quantity)
	return err
}

// DecreaseFreeBalance implements Ledger.
func (l *StateLedger) DecreaseFreeBalance(a AccountID, quantity *big.Int) error {
	if quantity == nil || quantity.Sign() == 0 {
		return nil
	}
	if quantity.Sign() < 0 {
		return fmt.Errorf("bridge: negative burn quantity")
	}
	account, err := l.manager.GetAccount(a[:])
	if err != nil {
		return err
	}
	if account.Balance.Cmp(quantity) < 0 {
		return fmt.Errorf("bridge: insufficient balance for burn")
	}
	account.Balance = new(big.Int).Sub(account.Balance, quantity)
	if err := l.manager.PutAccount(a[:], account); err != nil {
		return err
	}
	_, err = l.manager.AdjustTokenSupply(NativeSymbol, new(big.Int).Neg(quantity))
	return err
}

var _ Ledger = (*StateLedger)(nil)
