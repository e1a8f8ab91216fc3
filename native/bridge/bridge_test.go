package bridge

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"

	"nhbridge/core/events"
)

// mockStorage is a minimal in-memory stand-in for *state.Manager, grounded on
// the same KV/list contract the production manager exposes.
type mockStorage struct {
	kv    map[string][]byte
	lists map[string][][]byte
}

func newMockStorage() *mockStorage {
	return &mockStorage{kv: make(map[string][]byte), lists: make(map[string][][]byte)}
}

func (m *mockStorage) KVPut(key []byte, value interface{}) error {
	encoded, err := rlp.EncodeToBytes(value)
	if err != nil {
		return err
	}
	m.kv[string(key)] = encoded
	return nil
}

func (m *mockStorage) KVGet(key []byte, out interface{}) (bool, error) {
	encoded, ok := m.kv[string(key)]
	if !ok {
		return false, nil
	}
	if out == nil {
		return true, nil
	}
	if err := rlp.DecodeBytes(encoded, out); err != nil {
		return false, err
	}
	return true, nil
}

func (m *mockStorage) KVAppend(key []byte, value []byte) error {
	k := string(key)
	for _, existing := range m.lists[k] {
		if string(existing) == string(value) {
			return nil
		}
	}
	m.lists[k] = append(m.lists[k], append([]byte(nil), value...))
	return nil
}

func (m *mockStorage) KVGetList(key []byte, out interface{}) error {
	encoded, err := rlp.EncodeToBytes(m.lists[string(key)])
	if err != nil {
		return err
	}
	return rlp.DecodeBytes(encoded, out)
}

// mockLedger is a flat balance/issuance table satisfying Ledger.
type mockLedger struct {
	balances map[AccountID]*big.Int
	issuance *big.Int
}

func newMockLedger(balances map[AccountID]*big.Int) *mockLedger {
	issuance := big.NewInt(0)
	for _, bal := range balances {
		issuance.Add(issuance, bal)
	}
	return &mockLedger{balances: balances, issuance: issuance}
}

func (l *mockLedger) TotalBalance(a AccountID) (*big.Int, error) {
	bal, ok := l.balances[a]
	if !ok {
		return big.NewInt(0), nil
	}
	return new(big.Int).Set(bal), nil
}

func (l *mockLedger) TotalIssuance() (*big.Int, error) {
	return new(big.Int).Set(l.issuance), nil
}

func (l *mockLedger) IncreaseFreeBalanceCreating(a AccountID, quantity *big.Int) error {
	cur := l.balances[a]
	if cur == nil {
		cur = big.NewInt(0)
	}
	l.balances[a] = new(big.Int).Add(cur, quantity)
	l.issuance = new(big.Int).Add(l.issuance, quantity)
	return nil
}

func (l *mockLedger) DecreaseFreeBalance(a AccountID, quantity *big.Int) error {
	cur := l.balances[a]
	if cur == nil {
		cur = big.NewInt(0)
	}
	if cur.Cmp(quantity) < 0 {
		return fmt.Errorf("mock ledger: insufficient balance")
	}
	l.balances[a] = new(big.Int).Sub(cur, quantity)
	l.issuance = new(big.Int).Sub(l.issuance, quantity)
	return nil
}

var _ Ledger = (*mockLedger)(nil)

// mockEmitter records every emitted event for assertions.
type mockEmitter struct {
	events []events.Event
}

func (e *mockEmitter) Emit(ev events.Event) {
	e.events = append(e.events, ev)
}

func acct(n byte) AccountID {
	var a AccountID
	a[len(a)-1] = n
	return a
}

// newFixture builds a module over three authorities (stake 10000 each) and
// three non-authority accounts (stake 100 each), matching the worked
// approval examples: a lone authority's stake never clears the threshold,
// but any two do.
func newFixture() (*Module, *mockLedger, *mockEmitter) {
	balances := map[AccountID]*big.Int{
		acct(1): big.NewInt(10000),
		acct(2): big.NewInt(10000),
		acct(3): big.NewInt(10000),
		acct(4): big.NewInt(100),
		acct(5): big.NewInt(100),
		acct(6): big.NewInt(100),
	}
	ledger := newMockLedger(balances)
	emitter := &mockEmitter{}
	module := New(newMockStorage(), ledger, emitter)
	if err := module.InitGenesis([]AccountID{acct(1), acct(2), acct(3)}); err != nil {
		panic(err)
	}
	return module, ledger, emitter
}
