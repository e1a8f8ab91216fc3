package events

import (
	"math/big"
	"strings"

	"nhbridge/core/types"
	"nhbridge/crypto"
)

const (
	// TypeBridgeDeposit is emitted when a deposit proposal is created, before
	// any attestation or mint.
	TypeBridgeDeposit = "bridge.deposit"
	// TypeBridgeWithdraw is emitted when a withdrawal proposal is created,
	// before any attestation or burn.
	TypeBridgeWithdraw = "bridge.withdraw"
	// TypeBridgeNewAuthorities is emitted whenever the authority set is
	// rotated in response to a session change.
	TypeBridgeNewAuthorities = "bridge.new_authorities"
)

// BridgeDeposit mirrors the pallet's Deposit(AccountId, Hash, Balance) event:
// recipient, external transaction hash, and proposed quantity.
type BridgeDeposit struct {
	Recipient [20]byte
	TxHash    [32]byte
	Quantity  *big.Int
}

func (BridgeDeposit) EventType() string { return TypeBridgeDeposit }

func (e BridgeDeposit) Event() *types.Event {
	if e.Quantity == nil {
		e.Quantity = big.NewInt(0)
	}
	return &types.Event{
		Type: TypeBridgeDeposit,
		Attributes: map[string]string{
			"recipient": crypto.MustNewAddress(crypto.NHBPrefix, e.Recipient[:]).String(),
			"txHash":    hashString(e.TxHash[:]),
			"quantity":  e.Quantity.String(),
		},
	}
}

// BridgeWithdraw mirrors the pallet's Withdraw(AccountId, Balance) event:
// sender, the derived record hash, and requested quantity.
type BridgeWithdraw struct {
	Sender     [20]byte
	RecordHash [32]byte
	Quantity   *big.Int
}

func (BridgeWithdraw) EventType() string { return TypeBridgeWithdraw }

func (e BridgeWithdraw) Event() *types.Event {
	if e.Quantity == nil {
		e.Quantity = big.NewInt(0)
	}
	return &types.Event{
		Type: TypeBridgeWithdraw,
		Attributes: map[string]string{
			"sender":     crypto.MustNewAddress(crypto.NHBPrefix, e.Sender[:]).String(),
			"recordHash": hashString(e.RecordHash[:]),
			"quantity":   e.Quantity.String(),
		},
	}
}

// BridgeNewAuthorities mirrors the pallet's NewAuthorities(Vec<AccountId>)
// event, fired every time the session rotator hands the bridge a fresh
// authority set.
type BridgeNewAuthorities struct {
	Authorities [][20]byte
}

func (BridgeNewAuthorities) EventType() string { return TypeBridgeNewAuthorities }

func (e BridgeNewAuthorities) Event() *types.Event {
	rendered := make([]string, 0, len(e.Authorities))
	for _, addr := range e.Authorities {
		rendered = append(rendered, crypto.MustNewAddress(crypto.NHBPrefix, addr[:]).String())
	}
	return &types.Event{
		Type: TypeBridgeNewAuthorities,
		Attributes: map[string]string{
			"authorities": strings.Join(rendered, ","),
			"count":       big.NewInt(int64(len(e.Authorities))).String(),
		},
	}
}

func hashString(h []byte) string {
	const hexDigits = "0123456789abcdef"
	out := make([]byte, 2+len(h)*2)
	out[0], out[1] = '0', 'x'
	for i, b := range h {
		out[2+i*2] = hexDigits[b>>4]
		out[2+i*2+1] = hexDigits[b&0x0f]
	}
	return string(out)
}
