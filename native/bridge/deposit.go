package bridge

import (
	"math/big"

	"nhbridge/core/events"
	"nhbridge/observability"
)

// Deposit implements the deposit(caller, target, tx_hash, quantity)
// entry point. Any observer may create a proposal; if the creator happens to
// be a current authority, their creation is pre-counted as the first
// attestation. Creation alone never evaluates approval: only an explicit
// sign_deposit call does, even when the creator's own stake would already
// clear the threshold.
func (m *Module) Deposit(caller, target AccountID, txHash Hash, quantity *big.Int) error {
	if _, ok, err := m.store.GetDeposit(txHash); err != nil {
		return err
	} else if ok {
		return ErrDepositAlreadyExists
	}

	isAuthority, err := m.authorities.IsAuthority(caller)
	if err != nil {
		return err
	}

	index, err := m.store.NextDepositIndex()
	if err != nil {
		return err
	}

	signers := []AccountID{}
	if isAuthority {
		signers = append(signers, caller)
	}

	rec := &DepositRecord{
		Index:     index,
		Target:    target,
		Quantity:  new(big.Int).Set(quantity),
		Signers:   signers,
		Completed: false,
	}
	if err := m.store.PutDeposit(txHash, rec); err != nil {
		return err
	}
	if err := m.store.AppendDepositKey(txHash); err != nil {
		return err
	}

	m.emitter.Emit(events.BridgeDeposit{Recipient: target, TxHash: txHash, Quantity: rec.Quantity})
	observability.BridgeModuleMetrics().RecordProposalCreated("deposit")
	return nil
}

// SignDeposit implements sign_deposit(caller, target, tx_hash, quantity): an
// authority attestation against an existing deposit proposal.
func (m *Module) SignDeposit(caller, target AccountID, txHash Hash, quantity *big.Int) error {
	rec, ok, err := m.store.GetDeposit(txHash)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidTxHash
	}
	if rec.Target != target {
		return ErrAccountMismatch
	}
	if rec.Quantity.Cmp(quantity) != 0 {
		return ErrQuantityMismatch
	}
	if rec.Completed {
		return ErrAlreadyCompleted
	}
	isAuthority, err := m.authorities.IsAuthority(caller)
	if err != nil {
		return err
	}
	if !isAuthority {
		return ErrNotAuthority
	}
	if hasSigner(rec.Signers, caller) {
		return ErrDuplicateAttestation
	}

	rec.Signers = append(rec.Signers, caller)
	observability.BridgeModuleMetrics().RecordAttestation("deposit")
	return m.evaluateDepositApproval(txHash, rec)
}

// evaluateDepositApproval recomputes the stake-weighted super-majority over
// rec's current signer set and, if it now passes, mints quantity to the
// target exactly once before persisting completed=true.
func (m *Module) evaluateDepositApproval(txHash Hash, rec *DepositRecord) error {
	approve, err := stakeOfAccounts(m.ledger, rec.Signers)
	if err != nil {
		return err
	}
	total, err := m.ledger.TotalIssuance()
	if err != nil {
		return err
	}
	if Approved(approve, total) {
		if err := m.ledger.IncreaseFreeBalanceCreating(rec.Target, rec.Quantity); err != nil {
			return err
		}
		rec.Completed = true
		observability.BridgeModuleMetrics().RecordApproval("deposit")
	}
	return m.store.PutDeposit(txHash, rec)
}
