package bridge

import (
	"encoding/binary"
	"math/big"

	"golang.org/x/crypto/blake2b"
)

// RecordHash derives the internal withdrawal key RecordHash = H(nonce ‖
// sender ‖ quantity), with H = Blake2b-256. The encoding concatenates a
// big-endian nonce, the raw sender bytes, and a length-prefixed big-endian
// quantity so that no two distinct (nonce, sender, quantity) triples can
// collide on the preimage.
func RecordHash(nonce uint64, sender AccountID, quantity *big.Int) Hash {
	if quantity == nil {
		quantity = big.NewInt(0)
	}
	qBytes := quantity.Bytes()

	buf := make([]byte, 0, 8+len(sender)+8+len(qBytes))
	var nonceBuf [8]byte
	binary.BigEndian.PutUint64(nonceBuf[:], nonce)
	buf = append(buf, nonceBuf[:]...)
	buf = append(buf, sender[:]...)

	var lenBuf [8]byte
	binary.BigEndian.PutUint64(lenBuf[:], uint64(len(qBytes)))
	buf = append(buf, lenBuf[:]...)
	buf = append(buf, qBytes...)

	digest := blake2b.Sum256(buf)
	return Hash(digest)
}
