package bridge

import (
	"nhbridge/core/events"
	"nhbridge/observability"
)

// AuthorityRegistry tracks the current bridge-authority set and rotates it
// wholesale whenever the session rotator reports a different validator list.
// Reads are synchronous and side-effect-free; the set is small (validator
// count), so linear scans are acceptable and keep iteration order
// deterministic across nodes.
type AuthorityRegistry struct {
	db      Storage
	emitter events.Emitter
	current []AccountID
	loaded  bool
}

// NewAuthorityRegistry constructs a registry backed by db, emitting rotation
// events through emitter. A nil emitter is replaced by events.NoopEmitter{},
// which discards events.
func NewAuthorityRegistry(db Storage, emitter events.Emitter) *AuthorityRegistry {
	if emitter == nil {
		emitter = events.NoopEmitter{}
	}
	return &AuthorityRegistry{db: db, emitter: emitter}
}

// Init seeds the authority set from genesis configuration. It is a no-op if
// a set has already been persisted.
func (r *AuthorityRegistry) Init(initial []AccountID) error {
	if err := r.ensureLoaded(); err != nil {
		return err
	}
	if len(r.current) > 0 {
		return nil
	}
	return r.replace(initial, false)
}

// IsAuthority reports whether a is a member of the current authority set.
func (r *AuthorityRegistry) IsAuthority(a AccountID) (bool, error) {
	if err := r.ensureLoaded(); err != nil {
		return false, err
	}
	for _, existing := range r.current {
		if existing == a {
			return true, nil
		}
	}
	return false, nil
}

// Current returns a defensive copy of the current authority set.
func (r *AuthorityRegistry) Current() ([]AccountID, error) {
	if err := r.ensureLoaded(); err != nil {
		return nil, err
	}
	out := make([]AccountID, len(r.current))
	copy(out, r.current)
	return out, nil
}

// OnSessionChange is the callback the session rotator invokes at block
// boundaries, before any transaction of the new block executes. If the
// proposed list differs from the stored one (elementwise, order-sensitive)
// it replaces the set atomically and emits NewAuthorities.
func (r *AuthorityRegistry) OnSessionChange(next []AccountID) error {
	if err := r.ensureLoaded(); err != nil {
		return err
	}
	if sameOrder(r.current, next) {
		return nil
	}
	return r.replace(next, true)
}

func (r *AuthorityRegistry) replace(next []AccountID, emit bool) error {
	stored := make([]AccountID, len(next))
	copy(stored, next)
	if err := r.db.KVPut(authoritiesKey(), stored); err != nil {
		return err
	}
	r.current = stored
	r.loaded = true
	if emit {
		r.emitter.Emit(events.BridgeNewAuthorities{Authorities: toByteArrays(stored)})
		observability.BridgeModuleMetrics().RecordAuthorityRotation()
	}
	return nil
}

func (r *AuthorityRegistry) ensureLoaded() error {
	if r.loaded {
		return nil
	}
	var stored []AccountID
	ok, err := r.db.KVGet(authoritiesKey(), &stored)
	if err != nil {
		return err
	}
	if ok {
		r.current = stored
	}
	r.loaded = true
	return nil
}

func sameOrder(a, b []AccountID) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func toByteArrays(ids []AccountID) [][20]byte {
	out := make([][20]byte, len(ids))
	for i, id := range ids {
		out[i] = [20]byte(id)
	}
	return out
}
