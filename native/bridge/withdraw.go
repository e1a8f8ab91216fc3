package bridge

import (
	"math/big"

	"nhbridge/core/events"
	"nhbridge/observability"
)

// Withdraw implements withdraw(caller, quantity, signed_cross_chain_tx).
// The request originates on the host chain: the caller burns their own
// balance, so the key is derived internally from a per-sender nonce rather
// than supplied by the caller.
func (m *Module) Withdraw(caller AccountID, quantity *big.Int, signedCrossChainTx []byte) error {
	nonce, err := m.store.Nonce(caller)
	if err != nil {
		return err
	}
	recordHash := RecordHash(nonce, caller, quantity)

	if _, ok, err := m.store.GetWithdraw(recordHash); err != nil {
		return err
	} else if ok {
		return ErrWithdrawAlreadyExists
	}

	balance, err := m.ledger.TotalBalance(caller)
	if err != nil {
		return err
	}
	if balance.Cmp(quantity) < 0 {
		return ErrInsufficientBalance
	}

	isAuthority, err := m.authorities.IsAuthority(caller)
	if err != nil {
		return err
	}

	index, err := m.store.NextWithdrawIndex()
	if err != nil {
		return err
	}

	signers := []WithdrawSigner{}
	if isAuthority {
		signers = append(signers, WithdrawSigner{Signer: caller, Proof: append([]byte(nil), signedCrossChainTx...)})
	}

	rec := &WithdrawRecord{
		Index:     index,
		Target:    caller,
		Quantity:  new(big.Int).Set(quantity),
		Signers:   signers,
		Completed: false,
	}
	if err := m.store.PutWithdraw(recordHash, rec); err != nil {
		return err
	}
	if err := m.store.AppendWithdrawKey(recordHash); err != nil {
		return err
	}

	m.emitter.Emit(events.BridgeWithdraw{Sender: caller, RecordHash: recordHash, Quantity: rec.Quantity})
	observability.BridgeModuleMetrics().RecordProposalCreated("withdraw")

	if _, err := m.store.BumpNonce(caller); err != nil {
		return err
	}
	return nil
}

// SignWithdraw implements sign_withdraw(caller, target, record_hash,
// quantity, signed_cross_chain_tx): an authority attestation carrying the
// opaque cross-chain signature bundle the relayer will later consume.
func (m *Module) SignWithdraw(caller, target AccountID, recordHash Hash, quantity *big.Int, signedCrossChainTx []byte) error {
	rec, ok, err := m.store.GetWithdraw(recordHash)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidRecordHash
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
	for _, signer := range rec.Signers {
		if signer.Signer == caller {
			return ErrDuplicateAttestation
		}
	}

	newSigners := append(append([]WithdrawSigner{}, rec.Signers...), WithdrawSigner{
		Signer: caller,
		Proof:  append([]byte(nil), signedCrossChainTx...),
	})
	observability.BridgeModuleMetrics().RecordAttestation("withdraw")

	approve, err := stakeOfWithdrawSigners(m.ledger, newSigners)
	if err != nil {
		return err
	}
	total, err := m.ledger.TotalIssuance()
	if err != nil {
		return err
	}

	if Approved(approve, total) {
		// The burn is the moment of truth: if the ledger reports it cannot
		// support the debit, the call returns ErrLedgerBurnFailure before
		// anything is persisted, so the entire call is rolled back,
		// including this attestation, matching
		// the reference implementation's return-error convention.
		if err := m.ledger.DecreaseFreeBalance(rec.Target, rec.Quantity); err != nil {
			observability.BridgeModuleMetrics().RecordBurnFailure()
			return ErrLedgerBurnFailure
		}
		rec.Signers = newSigners
		rec.Completed = true
		observability.BridgeModuleMetrics().RecordApproval("withdraw")
		return m.store.PutWithdraw(recordHash, rec)
	}

	rec.Signers = newSigners
	return m.store.PutWithdraw(recordHash, rec)
}
