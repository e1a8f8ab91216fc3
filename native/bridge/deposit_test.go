package bridge

import (
	"math/big"
	"testing"
)

func TestDepositHappyPath(t *testing.T) {
	module, _, emitter := newFixture()
	txHash := Hash{0x01}
	quantity := big.NewInt(10)

	if err := module.Deposit(acct(4), acct(5), txHash, quantity); err != nil {
		t.Fatalf("Deposit: %v", err)
	}

	rec, ok, err := module.DepositRecordByHash(txHash)
	if err != nil {
		t.Fatalf("DepositRecordByHash: %v", err)
	}
	if !ok {
		t.Fatal("expected deposit record to exist")
	}
	if rec.Completed {
		t.Fatal("a bare creation must never evaluate approval, even indirectly")
	}
	if len(rec.Signers) != 0 {
		t.Fatalf("creator acct(4) is not an authority and must not be pre-counted, got %v", rec.Signers)
	}
	if len(emitter.events) != 1 || emitter.events[0].EventType() != "bridge.deposit" {
		t.Fatalf("expected a single bridge.deposit event, got %+v", emitter.events)
	}
}

func TestDepositCreateByAuthorityDoesNotAutoApprove(t *testing.T) {
	module, ledger, _ := newFixture()
	txHash := Hash{0x02}
	quantity := big.NewInt(10)

	// acct(1) alone holds stake 10000 of 30300, well short of the
	// super-majority threshold, so even counting it as a pre-attestation the
	// record must stay pending after creation.
	if err := module.Deposit(acct(1), acct(5), txHash, quantity); err != nil {
		t.Fatalf("Deposit: %v", err)
	}
	rec, _, err := module.DepositRecordByHash(txHash)
	if err != nil {
		t.Fatal(err)
	}
	if rec.Completed {
		t.Fatal("creation must never evaluate approval")
	}
	if len(rec.Signers) != 1 || rec.Signers[0] != acct(1) {
		t.Fatalf("expected creator to be pre-counted as the sole signer, got %v", rec.Signers)
	}
	bal, err := ledger.TotalBalance(acct(5))
	if err != nil {
		t.Fatal(err)
	}
	if bal.Cmp(big.NewInt(100)) != 0 {
		t.Fatalf("balance must be untouched by creation, got %s", bal)
	}
}

func TestDepositDuplicateCreation(t *testing.T) {
	module, _, _ := newFixture()
	txHash := Hash{0x03}
	quantity := big.NewInt(10)

	if err := module.Deposit(acct(4), acct(5), txHash, quantity); err != nil {
		t.Fatalf("Deposit: %v", err)
	}
	if err := module.Deposit(acct(4), acct(5), txHash, quantity); err != ErrDepositAlreadyExists {
		t.Fatalf("expected ErrDepositAlreadyExists, got %v", err)
	}
}

func TestDepositReachesSuperMajority(t *testing.T) {
	module, ledger, emitter := newFixture()
	txHash := Hash{0x04}
	quantity := big.NewInt(10)

	if err := module.Deposit(acct(4), acct(5), txHash, quantity); err != nil {
		t.Fatalf("Deposit: %v", err)
	}

	// A lone authority's stake (10000 of 30300) never clears approve^2 >
	// 2*against^2, so the first attestation leaves the record pending.
	if err := module.SignDeposit(acct(1), acct(5), txHash, quantity); err != nil {
		t.Fatalf("SignDeposit(1): %v", err)
	}
	rec, _, err := module.DepositRecordByHash(txHash)
	if err != nil {
		t.Fatal(err)
	}
	if rec.Completed {
		t.Fatal("expected a single authority's attestation to fall short of super-majority")
	}
	bal, err := ledger.TotalBalance(acct(5))
	if err != nil {
		t.Fatal(err)
	}
	if bal.Cmp(big.NewInt(100)) != 0 {
		t.Fatalf("balance must be unchanged before approval, got %s", bal)
	}

	// Two authorities' combined stake (20000 of 30300) does clear it.
	if err := module.SignDeposit(acct(2), acct(5), txHash, quantity); err != nil {
		t.Fatalf("SignDeposit(2): %v", err)
	}
	rec, _, err = module.DepositRecordByHash(txHash)
	if err != nil {
		t.Fatal(err)
	}
	if !rec.Completed {
		t.Fatal("expected the deposit to be approved after two authorities attested")
	}
	bal, err = ledger.TotalBalance(acct(5))
	if err != nil {
		t.Fatal(err)
	}
	if bal.Cmp(big.NewInt(110)) != 0 {
		t.Fatalf("expected balance of acct(5) to become 110, got %s", bal)
	}

	foundApproval := false
	for _, ev := range emitter.events {
		if ev.EventType() == "bridge.deposit" {
			foundApproval = true
		}
	}
	if !foundApproval {
		t.Fatal("expected the original bridge.deposit event to have been emitted")
	}

	// A third attestation against an already-completed record is rejected.
	if err := module.SignDeposit(acct(3), acct(5), txHash, quantity); err != ErrAlreadyCompleted {
		t.Fatalf("expected ErrAlreadyCompleted, got %v", err)
	}
}

func TestSignDepositGuards(t *testing.T) {
	module, _, _ := newFixture()
	txHash := Hash{0x05}
	quantity := big.NewInt(10)
	if err := module.Deposit(acct(4), acct(5), txHash, quantity); err != nil {
		t.Fatalf("Deposit: %v", err)
	}

	t.Run("InvalidTxHash", func(t *testing.T) {
		unknown := Hash{0xff}
		if err := module.SignDeposit(acct(1), acct(5), unknown, quantity); err != ErrInvalidTxHash {
			t.Fatalf("expected ErrInvalidTxHash, got %v", err)
		}
	})

	t.Run("AccountMismatch", func(t *testing.T) {
		if err := module.SignDeposit(acct(1), acct(6), txHash, quantity); err != ErrAccountMismatch {
			t.Fatalf("expected ErrAccountMismatch, got %v", err)
		}
	})

	t.Run("QuantityMismatch", func(t *testing.T) {
		if err := module.SignDeposit(acct(1), acct(5), txHash, big.NewInt(11)); err != ErrQuantityMismatch {
			t.Fatalf("expected ErrQuantityMismatch, got %v", err)
		}
	})

	t.Run("NotAuthority", func(t *testing.T) {
		if err := module.SignDeposit(acct(6), acct(5), txHash, quantity); err != ErrNotAuthority {
			t.Fatalf("expected ErrNotAuthority, got %v", err)
		}
	})

	t.Run("DuplicateAttestation", func(t *testing.T) {
		if err := module.SignDeposit(acct(1), acct(5), txHash, quantity); err != nil {
			t.Fatalf("SignDeposit(1): %v", err)
		}
		if err := module.SignDeposit(acct(1), acct(5), txHash, quantity); err != ErrDuplicateAttestation {
			t.Fatalf("expected ErrDuplicateAttestation, got %v", err)
		}
	})
}
