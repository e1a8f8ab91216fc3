package bridge

import "fmt"

// Storage abstracts the subset of state-manager functionality the proposal
// store needs. It is satisfied by *nhbridge/core/state.Manager in production
// and by a plain in-memory map in tests.
type Storage interface {
	KVGet(key []byte, out interface{}) (bool, error)
	KVPut(key []byte, value interface{}) error
	KVAppend(key []byte, value []byte) error
	KVGetList(key []byte, out interface{}) error
}

// ProposalStore is the typed key-value façade over deposit and withdrawal
// records, their insertion-ordered key sequences, per-account withdrawal
// nonces, and the two monotonic counters. It owns and exclusively writes its
// own four tables; it never touches ledger balances directly.
type ProposalStore struct {
	db Storage
}

// NewProposalStore constructs a store backed by db.
func NewProposalStore(db Storage) *ProposalStore {
	return &ProposalStore{db: db}
}

// GetDeposit returns the deposit record for txHash, if one exists.
func (s *ProposalStore) GetDeposit(txHash Hash) (*DepositRecord, bool, error) {
	var rec DepositRecord
	ok, err := s.db.KVGet(depositRecordKey(txHash), &rec)
	if err != nil || !ok {
		return nil, ok, err
	}
	return &rec, true, nil
}

// PutDeposit persists rec under txHash.
func (s *ProposalStore) PutDeposit(txHash Hash, rec *DepositRecord) error {
	if rec == nil {
		return fmt.Errorf("bridge: nil deposit record")
	}
	return s.db.KVPut(depositRecordKey(txHash), rec)
}

// AppendDepositKey appends txHash to the insertion-ordered deposit key
// sequence. Duplicate appends are no-ops (see Manager.KVAppend).
func (s *ProposalStore) AppendDepositKey(txHash Hash) error {
	return s.db.KVAppend(depositKeysKey, txHash[:])
}

// DepositKeys returns every known deposit key in insertion order.
func (s *ProposalStore) DepositKeys() ([]Hash, error) {
	var raw [][]byte
	if err := s.db.KVGetList(depositKeysKey, &raw); err != nil {
		return nil, err
	}
	return toHashes(raw), nil
}

// GetWithdraw returns the withdrawal record for recordHash, if one exists.
func (s *ProposalStore) GetWithdraw(recordHash Hash) (*WithdrawRecord, bool, error) {
	var rec WithdrawRecord
	ok, err := s.db.KVGet(withdrawRecordKey(recordHash), &rec)
	if err != nil || !ok {
		return nil, ok, err
	}
	return &rec, true, nil
}

// PutWithdraw persists rec under recordHash.
func (s *ProposalStore) PutWithdraw(recordHash Hash, rec *WithdrawRecord) error {
	if rec == nil {
		return fmt.Errorf("bridge: nil withdraw record")
	}
	return s.db.KVPut(withdrawRecordKey(recordHash), rec)
}

// AppendWithdrawKey appends recordHash to the insertion-ordered withdrawal
// key sequence.
func (s *ProposalStore) AppendWithdrawKey(recordHash Hash) error {
	return s.db.KVAppend(withdrawKeysKey, recordHash[:])
}

// WithdrawKeys returns every known withdrawal key in insertion order.
func (s *ProposalStore) WithdrawKeys() ([]Hash, error) {
	var raw [][]byte
	if err := s.db.KVGetList(withdrawKeysKey, &raw); err != nil {
		return nil, err
	}
	return toHashes(raw), nil
}

// Nonce returns the current withdrawal nonce for addr, defaulting to 0.
func (s *ProposalStore) Nonce(addr AccountID) (uint64, error) {
	var stored uint64
	ok, err := s.db.KVGet(withdrawNonceKey(addr), &stored)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, nil
	}
	return stored, nil
}

// BumpNonce increments the withdrawal nonce for addr and returns the
// pre-increment value (the nonce the caller's record_hash was derived from).
func (s *ProposalStore) BumpNonce(addr AccountID) (uint64, error) {
	current, err := s.Nonce(addr)
	if err != nil {
		return 0, err
	}
	if err := s.db.KVPut(withdrawNonceKey(addr), current+1); err != nil {
		return 0, err
	}
	return current, nil
}

// NextDepositIndex allocates and persists the next deposit index.
func (s *ProposalStore) NextDepositIndex() (uint64, error) {
	return s.bumpCounter(depositCountKey())
}

// NextWithdrawIndex allocates and persists the next withdraw index.
func (s *ProposalStore) NextWithdrawIndex() (uint64, error) {
	return s.bumpCounter(withdrawCountKey())
}

func (s *ProposalStore) bumpCounter(key []byte) (uint64, error) {
	var current uint64
	ok, err := s.db.KVGet(key, &current)
	if err != nil {
		return 0, err
	}
	if !ok {
		current = 0
	}
	next := current + 1
	if err := s.db.KVPut(key, next); err != nil {
		return 0, err
	}
	return current, nil
}

func toHashes(raw [][]byte) []Hash {
	out := make([]Hash, 0, len(raw))
	for _, entry := range raw {
		var h Hash
		copy(h[:], entry)
		out = append(out, h)
	}
	return out
}
