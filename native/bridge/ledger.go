package bridge

import "math/big"

// Ledger is the balance component the bridge delegates all balance mutation
// to. It alone owns the authoritative free-balance and issuance state; the
// bridge only ever reads stake figures from it and asks it to mint or burn.
type Ledger interface {
	// TotalBalance returns the current free balance of a.
	TotalBalance(a AccountID) (*big.Int, error)
	// TotalIssuance returns the current total native issuance.
	TotalIssuance() (*big.Int, error)
	// IncreaseFreeBalanceCreating credits a with quantity, creating the
	// account if it does not yet exist.
	IncreaseFreeBalanceCreating(a AccountID, quantity *big.Int) error
	// DecreaseFreeBalance debits a by quantity. Implementations must return
	// a non-nil error when the account cannot support the debit; the bridge
	// then returns ErrLedgerBurnFailure in place of that error.
	DecreaseFreeBalance(a AccountID, quantity *big.Int) error
}

// stakeOfAccounts sums the current free balance of every signer. The bridge
// re-derives this total from live ledger state on each attestation rather
// than caching it, so a balance change between attestations is reflected
// immediately.
func stakeOfAccounts(ledger Ledger, signers []AccountID) (*big.Int, error) {
	sum := big.NewInt(0)
	for _, signer := range signers {
		bal, err := ledger.TotalBalance(signer)
		if err != nil {
			return nil, err
		}
		if bal != nil {
			sum.Add(sum, bal)
		}
	}
	return sum, nil
}

func stakeOfWithdrawSigners(ledger Ledger, signers []WithdrawSigner) (*big.Int, error) {
	sum := big.NewInt(0)
	for _, signer := range signers {
		bal, err := ledger.TotalBalance(signer.Signer)
		if err != nil {
			return nil, err
		}
		if bal != nil {
			sum.Add(sum, bal)
		}
	}
	return sum, nil
}
