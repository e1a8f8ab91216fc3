package bridge

import "math/big"

// Approved evaluates the stake-weighted super-majority-approve predicate.
//
// Given approve (the summed stake of attesters) and total (total issuance,
// which doubles as both electorate and voters in this single-chamber
// scheme), the 2/3 super-majority rule K = √2 reduces algebraically to the
// closed integer form approve² > 2·against², where against = total - approve
// (saturating at zero so a misbehaving caller can never drive it negative).
//
// The comparison is performed purely with big.Int arithmetic: both sides are
// squared instead of taking a square root, so the result is bit-for-bit
// reproducible on every validating node.
func Approved(approve, total *big.Int) bool {
	if approve == nil {
		approve = big.NewInt(0)
	}
	if total == nil {
		total = big.NewInt(0)
	}
	against := new(big.Int).Sub(total, approve)
	if against.Sign() < 0 {
		against = big.NewInt(0)
	}
	lhs := new(big.Int).Mul(approve, approve)
	rhs := new(big.Int).Mul(against, against)
	rhs.Mul(rhs, big.NewInt(2))
	return lhs.Cmp(rhs) > 0
}
