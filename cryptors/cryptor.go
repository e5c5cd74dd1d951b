// cryptor
package cryptors

const (
	BitsPerByte   = 8
	BytesPerWord  = 4
	WordsPerBlock = 4
	KeyWords      = 4
	BlockBytes    = WordsPerBlock * BytesPerWord
	BlockSize     = BlockBytes * BitsPerByte
	Rounds        = 6
)

// CypherBlock is the data processed by the crypters.  It consists of the
// length in bytes to process and the data to process.  A block with a length
// of zero (or less) shuts down the machine it is sent to.
type CypherBlock struct {
	Length      int8
	CypherBlock [BlockBytes]byte
}

type Crypter interface {
	Apply_F(*[BlockBytes]byte) *[BlockBytes]byte
	Apply_G(*[BlockBytes]byte) *[BlockBytes]byte
}

// Counter is a Crypter that leaves the block alone and counts it.  Chained
// into a machine it reports how many blocks have passed through.
type Counter struct {
	count uint64
}

func (cntr *Counter) Count() uint64 {
	return cntr.count
}

func (cntr *Counter) Apply_F(blk *[BlockBytes]byte) *[BlockBytes]byte {
	cntr.count++
	return blk
}

func (cntr *Counter) Apply_G(blk *[BlockBytes]byte) *[BlockBytes]byte {
	cntr.count++
	return blk
}

// zeroTail clears the bytes of a partial block past its length, so a short
// final block is processed as if it had been zero padded.
func zeroTail(inp *CypherBlock) {
	for i := int(inp.Length); i < BlockBytes; i++ {
		inp.CypherBlock[i] = 0
	}
}

func EncryptMachine(ecm Crypter, left chan CypherBlock) chan CypherBlock {
	right := make(chan CypherBlock)
	go func(ecm Crypter, left chan CypherBlock, right chan CypherBlock) {
		for {
			inp := <-left
			if inp.Length <= 0 {
				right <- inp
				break
			}

			zeroTail(&inp)
			ecm.Apply_F(&inp.CypherBlock)
			right <- inp
		}
	}(ecm, left, right)

	return right
}

func DecryptMachine(ecm Crypter, left chan CypherBlock) chan CypherBlock {
	right := make(chan CypherBlock)
	go func(ecm Crypter, left chan CypherBlock, right chan CypherBlock) {
		for {
			inp := <-left
			if inp.Length <= 0 {
				right <- inp
				break
			}

			// Ciphertext blocks are always whole; only the plaintext side pads.
			ecm.Apply_G(&inp.CypherBlock)
			right <- inp
		}
	}(ecm, left, right)

	return right
}

// CreateEncryptMachine chains the crypters from left to right.
func CreateEncryptMachine(ecms ...Crypter) (left chan CypherBlock, right chan CypherBlock) {
	if len(ecms) == 0 {
		panic("you must give at least one encryption device!")
	}

	left = make(chan CypherBlock)
	right = EncryptMachine(ecms[0], left)

	for idx := 1; idx < len(ecms); idx++ {
		right = EncryptMachine(ecms[idx], right)
	}

	return
}

// CreateDecryptMachine chains the crypters from right to left, undoing a
// machine built by CreateEncryptMachine with the same crypters.
func CreateDecryptMachine(ecms ...Crypter) (left chan CypherBlock, right chan CypherBlock) {
	if len(ecms) == 0 {
		panic("you must give at least one decryption device!")
	}

	idx := len(ecms) - 1
	left = make(chan CypherBlock)
	right = DecryptMachine(ecms[idx], left)

	for idx--; idx >= 0; idx-- {
		right = DecryptMachine(ecms[idx], right)
	}

	return
}
