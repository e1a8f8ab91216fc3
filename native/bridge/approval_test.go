package bridge

import (
	"math/big"
	"testing"
)

func TestApprovedThreshold(t *testing.T) {
	cases := []struct {
		name     string
		approve  int64
		total    int64
		expected bool
	}{
		{"zero approve never passes", 0, 30300, false},
		{"lone authority falls short", 10000, 30300, false},
		{"two authorities clear it", 20000, 30300, true},
		{"exact tie does not clear it", 15150, 30300, false},
		{"unanimous always clears it", 30300, 30300, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Approved(big.NewInt(tc.approve), big.NewInt(tc.total))
			if got != tc.expected {
				t.Fatalf("Approved(%d, %d) = %v, want %v", tc.approve, tc.total, got, tc.expected)
			}
		})
	}
}

func TestApprovedNilInputsTreatedAsZero(t *testing.T) {
	if Approved(nil, nil) {
		t.Fatal("Approved(nil, nil) must not pass")
	}
	if !Approved(big.NewInt(1), nil) {
		// total nil -> 0, against saturates to 0, approve^2 (1) > 2*0 (0).
		t.Fatal("a single affirmative vote against a nil total must clear the threshold")
	}
}

func TestApprovedSaturatesAgainstRatherThanGoingNegative(t *testing.T) {
	// approve exceeding total must never drive against negative; it
	// saturates at zero instead, which only makes approval easier.
	if !Approved(big.NewInt(100), big.NewInt(40)) {
		t.Fatal("expected approval when approve exceeds total and against saturates to zero")
	}
}
