package bridge

import (
	"nhbridge/core/events"
)

// Module is the dependency record the host wires up at construction: the
// proposal store, the ledger handle, the authority source, and the event
// emitter. It exposes the four callable entry points a host transaction
// dispatcher routes to (directly or through Dispatch), plus genesis seeding,
// the session-change callback, the authority check, and read accessors for
// stored records.
type Module struct {
	store       *ProposalStore
	ledger      Ledger
	authorities *AuthorityRegistry
	emitter     events.Emitter
}

// New constructs a bridge module. emitter may be nil, in which case events
// are discarded.
func New(db Storage, ledger Ledger, emitter events.Emitter) *Module {
	if emitter == nil {
		emitter = events.NoopEmitter{}
	}
	return &Module{
		store:       NewProposalStore(db),
		ledger:      ledger,
		authorities: NewAuthorityRegistry(db, emitter),
		emitter:     emitter,
	}
}

// InitGenesis seeds the authority set from genesis configuration
// { authorities: seq<AccountId> }. It is idempotent: replaying genesis
// against an already-initialized store is a no-op.
func (m *Module) InitGenesis(authorities []AccountID) error {
	return m.authorities.Init(authorities)
}

// OnSessionChange is the callback the session rotator invokes at block
// boundaries with the new validator list.
func (m *Module) OnSessionChange(next []AccountID) error {
	return m.authorities.OnSessionChange(next)
}

// IsAuthority exposes is_authority(a) to peers.
func (m *Module) IsAuthority(a AccountID) (bool, error) {
	return m.authorities.IsAuthority(a)
}

// DepositRecordByHash returns the deposit record for txHash, primarily for
// read-side callers (RPC, indexers, tests) rather than the state transition
// itself.
func (m *Module) DepositRecordByHash(txHash Hash) (*DepositRecord, bool, error) {
	return m.store.GetDeposit(txHash)
}

// WithdrawRecordByHash returns the withdrawal record for recordHash.
func (m *Module) WithdrawRecordByHash(recordHash Hash) (*WithdrawRecord, bool, error) {
	return m.store.GetWithdraw(recordHash)
}
