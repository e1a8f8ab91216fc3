package bridge

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"

	"nhbridge/core/types"
)

// depositPayload and signDepositPayload are the RLP-encoded shapes carried in
// a Transaction's Data field for TxTypeBridgeDeposit and
// TxTypeBridgeSignDeposit respectively.
type depositPayload struct {
	Target   AccountID
	TxHash   Hash
	Quantity *big.Int
}

type signDepositPayload struct {
	Target   AccountID
	TxHash   Hash
	Quantity *big.Int
}

// withdrawPayload and signWithdrawPayload are the RLP-encoded shapes carried
// in a Transaction's Data field for TxTypeBridgeWithdraw and
// TxTypeBridgeSignWithdraw respectively.
type withdrawPayload struct {
	Quantity           *big.Int
	SignedCrossChainTx []byte
}

type signWithdrawPayload struct {
	Target             AccountID
	RecordHash         Hash
	Quantity           *big.Int
	SignedCrossChainTx []byte
}

// Dispatch routes a signed transaction to the bridge entry point named by its
// Type, recovering the caller identity from the transaction's signature and
// decoding the type-specific payload carried in Data. This is the boundary
// the host chain's transaction dispatcher calls into; everything upstream
// (consensus, mempool, signature verification itself) is the host's concern.
func (m *Module) Dispatch(tx *types.Transaction) error {
	if !types.IsValidChainID(tx.ChainID) {
		return fmt.Errorf("bridge: transaction targets chain id %v, not %v", tx.ChainID, types.NHBChainID())
	}
	if !types.RequiresSignature(tx.Type) {
		return fmt.Errorf("bridge: transaction type %d is not a recognized bridge entry point", tx.Type)
	}

	callerBytes, err := tx.From()
	if err != nil {
		return fmt.Errorf("bridge: recover caller: %w", err)
	}
	var caller AccountID
	copy(caller[:], callerBytes)

	switch tx.Type {
	case types.TxTypeBridgeDeposit:
		var p depositPayload
		if err := rlp.DecodeBytes(tx.Data, &p); err != nil {
			return fmt.Errorf("bridge: decode deposit payload: %w", err)
		}
		return m.Deposit(caller, p.Target, p.TxHash, p.Quantity)

	case types.TxTypeBridgeSignDeposit:
		var p signDepositPayload
		if err := rlp.DecodeBytes(tx.Data, &p); err != nil {
			return fmt.Errorf("bridge: decode sign_deposit payload: %w", err)
		}
		return m.SignDeposit(caller, p.Target, p.TxHash, p.Quantity)

	case types.TxTypeBridgeWithdraw:
		var p withdrawPayload
		if err := rlp.DecodeBytes(tx.Data, &p); err != nil {
			return fmt.Errorf("bridge: decode withdraw payload: %w", err)
		}
		return m.Withdraw(caller, p.Quantity, p.SignedCrossChainTx)

	case types.TxTypeBridgeSignWithdraw:
		var p signWithdrawPayload
		if err := rlp.DecodeBytes(tx.Data, &p); err != nil {
			return fmt.Errorf("bridge: decode sign_withdraw payload: %w", err)
		}
		return m.SignWithdraw(caller, p.Target, p.RecordHash, p.Quantity, p.SignedCrossChainTx)

	default:
		return fmt.Errorf("bridge: transaction type %d is not a bridge entry point", tx.Type)
	}
}
