// Package bridge implements the on-chain half of a two-way peg bridge: a
// deterministic, replay-safe state machine that tracks a rotating authority
// set, accumulates authority attestations against deposit and withdrawal
// proposals, and mints or burns native balance once a stake-weighted
// super-majority of the current authorities has attested.
//
// The module deliberately knows nothing about how balances are actually
// stored, how the authority set is rotated, or how callers are
// authenticated: those are supplied as small interfaces (Ledger, Storage,
// events.Emitter), with authority rotation arriving through the
// OnSessionChange callback, so the state machine itself stays pure and
// host-agnostic.
package bridge

import (
	"errors"
	"math/big"
)

// AccountID is an opaque 20-byte ledger account identifier.
type AccountID [20]byte

// Hash is an opaque fixed-width digest: either an ExternalTxHash supplied by
// a caller or a RecordHash derived internally for a withdrawal.
type Hash [32]byte

// WithdrawSigner pairs an attesting authority with the opaque cross-chain
// signature bundle it produced for the relayer.
type WithdrawSigner struct {
	Signer AccountID
	Proof  []byte
}

// DepositRecord is keyed by ExternalTxHash.
type DepositRecord struct {
	Index     uint64
	Target    AccountID
	Quantity  *big.Int
	Signers   []AccountID
	Completed bool
}

// WithdrawRecord is keyed by RecordHash = H(nonce ‖ sender ‖ quantity).
type WithdrawRecord struct {
	Index     uint64
	Target    AccountID
	Quantity  *big.Int
	Signers   []WithdrawSigner
	Completed bool
}

// Error taxonomy. Discriminant strings are part of the contract tests match
// against and must not be altered.
var (
	ErrDepositAlreadyExists  = errors.New("DepositAlreadyExists")
	ErrInvalidTxHash         = errors.New("InvalidTxHash")
	ErrWithdrawAlreadyExists = errors.New("WithdrawAlreadyExists")
	ErrInvalidRecordHash     = errors.New("InvalidRecordHash")
	ErrAccountMismatch       = errors.New("AccountMismatch")
	ErrQuantityMismatch      = errors.New("QuantityMismatch")
	ErrAlreadyCompleted      = errors.New("AlreadyCompleted")
	ErrNotAuthority          = errors.New("NotAuthority")
	ErrDuplicateAttestation  = errors.New("DuplicateAttestation")
	ErrInsufficientBalance   = errors.New("InsufficientBalance")
	ErrLedgerBurnFailure     = errors.New("LedgerBurnFailure")
)

func hasSigner(signers []AccountID, candidate AccountID) bool {
	for _, s := range signers {
		if s == candidate {
			return true
		}
	}
	return false
}
