package bridge

import (
	"math/big"
	"testing"
)

func TestAuthorityInitIsIdempotent(t *testing.T) {
	reg := NewAuthorityRegistry(newMockStorage(), nil)
	if err := reg.Init([]AccountID{acct(1), acct(2)}); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if err := reg.Init([]AccountID{acct(3)}); err != nil {
		t.Fatalf("Init (replay): %v", err)
	}
	current, err := reg.Current()
	if err != nil {
		t.Fatal(err)
	}
	if len(current) != 2 || current[0] != acct(1) || current[1] != acct(2) {
		t.Fatalf("replaying genesis against an initialized registry must be a no-op, got %v", current)
	}
}

func TestOnSessionChangeReplacesAndEmitsOnlyOnActualChange(t *testing.T) {
	emitter := &mockEmitter{}
	reg := NewAuthorityRegistry(newMockStorage(), emitter)
	if err := reg.Init([]AccountID{acct(1), acct(2), acct(3)}); err != nil {
		t.Fatalf("Init: %v", err)
	}

	// Re-announcing the same set in the same order must not emit.
	if err := reg.OnSessionChange([]AccountID{acct(1), acct(2), acct(3)}); err != nil {
		t.Fatalf("OnSessionChange (unchanged): %v", err)
	}
	if len(emitter.events) != 0 {
		t.Fatalf("expected no event for an unchanged authority set, got %v", emitter.events)
	}

	if err := reg.OnSessionChange([]AccountID{acct(2), acct(3), acct(4)}); err != nil {
		t.Fatalf("OnSessionChange (rotate): %v", err)
	}
	if len(emitter.events) != 1 || emitter.events[0].EventType() != "bridge.new_authorities" {
		t.Fatalf("expected exactly one bridge.new_authorities event, got %v", emitter.events)
	}

	current, err := reg.Current()
	if err != nil {
		t.Fatal(err)
	}
	if len(current) != 3 || current[0] != acct(2) || current[1] != acct(3) || current[2] != acct(4) {
		t.Fatalf("unexpected authority set after rotation: %v", current)
	}

	isAuthority, err := reg.IsAuthority(acct(1))
	if err != nil {
		t.Fatal(err)
	}
	if isAuthority {
		t.Fatal("acct(1) was rotated out and must no longer be an authority")
	}
}

// TestAuthorityRotationDoesNotInvalidatePriorAttestations verifies that
// replacing the authority set has no effect on a proposal's already-recorded
// signers, even though one of them is no longer an authority at all. The
// approval rule only re-derives stake from the ledger; it never re-checks
// membership for signers already recorded.
func TestAuthorityRotationDoesNotInvalidatePriorAttestations(t *testing.T) {
	module, _, _ := newFixture()
	txHash := Hash{0x10}
	quantity := big.NewInt(10)

	if err := module.Deposit(acct(4), acct(5), txHash, quantity); err != nil {
		t.Fatalf("Deposit: %v", err)
	}
	if err := module.SignDeposit(acct(1), acct(5), txHash, quantity); err != nil {
		t.Fatalf("SignDeposit(1): %v", err)
	}

	// Rotate acct(1) out of the authority set entirely.
	if err := module.OnSessionChange([]AccountID{acct(2), acct(3)}); err != nil {
		t.Fatalf("OnSessionChange: %v", err)
	}

	rec, ok, err := module.DepositRecordByHash(txHash)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("expected the deposit record to survive the rotation")
	}
	if len(rec.Signers) != 1 || rec.Signers[0] != acct(1) {
		t.Fatalf("rotation must not purge a previously recorded signer, got %v", rec.Signers)
	}

	// acct(1) can no longer attest; the rotated-in authorities can.
	if err := module.SignDeposit(acct(1), acct(5), txHash, quantity); err != ErrNotAuthority {
		t.Fatalf("expected ErrNotAuthority for a rotated-out signer, got %v", err)
	}
	if err := module.SignDeposit(acct(2), acct(5), txHash, quantity); err != nil {
		t.Fatalf("SignDeposit(2): %v", err)
	}

	rec, _, err = module.DepositRecordByHash(txHash)
	if err != nil {
		t.Fatal(err)
	}
	if !rec.Completed {
		t.Fatal("expected acct(1)'s stale stake plus acct(2)'s fresh attestation to clear the threshold")
	}
}
