package bridge

var (
	depositRecordPrefix  = []byte("bridge/deposit/record/")
	depositKeysKey       = []byte("bridge/deposit/keys")
	depositCountKeyBytes = []byte("bridge/deposit/count")

	withdrawRecordPrefix  = []byte("bridge/withdraw/record/")
	withdrawKeysKey       = []byte("bridge/withdraw/keys")
	withdrawCountKeyBytes = []byte("bridge/withdraw/count")
	withdrawNoncePrefix   = []byte("bridge/withdraw/nonce/")

	authoritiesKeyBytes = []byte("bridge/authorities")

	// blockHeadersPrefix is reserved for a later version that will track
	// external-chain block headers (ChainId -> seq<Hash>) for SPV-style
	// proof verification. The storage layout reserves the field; nothing
	// populates it yet.
	blockHeadersPrefix = []byte("bridge/block-headers/")
)

func depositRecordKey(txHash Hash) []byte {
	buf := make([]byte, len(depositRecordPrefix)+len(txHash))
	copy(buf, depositRecordPrefix)
	copy(buf[len(depositRecordPrefix):], txHash[:])
	return buf
}

func withdrawRecordKey(recordHash Hash) []byte {
	buf := make([]byte, len(withdrawRecordPrefix)+len(recordHash))
	copy(buf, withdrawRecordPrefix)
	copy(buf[len(withdrawRecordPrefix):], recordHash[:])
	return buf
}

func withdrawNonceKey(addr AccountID) []byte {
	buf := make([]byte, len(withdrawNoncePrefix)+len(addr))
	copy(buf, withdrawNoncePrefix)
	copy(buf[len(withdrawNoncePrefix):], addr[:])
	return buf
}

func depositCountKey() []byte { return append([]byte(nil), depositCountKeyBytes...) }

func withdrawCountKey() []byte { return append([]byte(nil), withdrawCountKeyBytes...) }

func authoritiesKey() []byte { return append([]byte(nil), authoritiesKeyBytes...) }
