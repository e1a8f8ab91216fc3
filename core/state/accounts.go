package state

import (
	"errors"
	"fmt"
	"math/big"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"

	"nhbridge/core/types"
	"nhbridge/storage"
)

var accountStatePrefix = []byte("account/state/")

func accountStateKey(addr []byte) []byte {
	buf := make([]byte, len(accountStatePrefix)+len(addr))
	copy(buf, accountStatePrefix)
	copy(buf[len(accountStatePrefix):], addr)
	return ethcrypto.Keccak256(buf)
}

// GetAccount loads the ledger account for addr, returning a zero-value
// account (nonce 0, balance 0) when none has been written yet.
func (m *Manager) GetAccount(addr []byte) (*types.Account, error) {
	if len(addr) == 0 {
		return nil, fmt.Errorf("state: address required")
	}
	data, err := m.db.Get(accountStateKey(addr))
	if errors.Is(err, storage.ErrNotFound) {
		data, err = nil, nil
	}
	if err != nil {
		return nil, err
	}
	account := &types.Account{Balance: big.NewInt(0)}
	if len(data) == 0 {
		return account, nil
	}
	if err := rlp.DecodeBytes(data, account); err != nil {
		return nil, err
	}
	if account.Balance == nil {
		account.Balance = big.NewInt(0)
	}
	return account, nil
}

// PutAccount persists the ledger account for addr.
func (m *Manager) PutAccount(addr []byte, account *types.Account) error {
	if len(addr) == 0 {
		return fmt.Errorf("state: address required")
	}
	if account == nil {
		account = &types.Account{Balance: big.NewInt(0)}
	}
	if account.Balance == nil {
		account.Balance = big.NewInt(0)
	}
	encoded, err := rlp.EncodeToBytes(account)
	if err != nil {
		return err
	}
	return m.db.Put(accountStateKey(addr), encoded)
}
