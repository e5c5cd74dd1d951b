package cryptors

import "encoding/binary"

// BytesToWords packs b into little-endian words.  A trailing partial word is
// zero filled.
func BytesToWords(b []byte) []uint32 {
	words := make([]uint32, (len(b)+BytesPerWord-1)/BytesPerWord)
	full := len(b) / BytesPerWord

	for i := 0; i < full; i++ {
		words[i] = binary.LittleEndian.Uint32(b[i*BytesPerWord:])
	}

	if rest := b[full*BytesPerWord:]; len(rest) > 0 {
		var tail [BytesPerWord]byte
		copy(tail[:], rest)
		words[full] = binary.LittleEndian.Uint32(tail[:])
	}

	return words
}

// WordsToBytes unpacks words into little-endian bytes.
func WordsToBytes(words []uint32) []byte {
	b := make([]byte, len(words)*BytesPerWord)

	for i, w := range words {
		binary.LittleEndian.PutUint32(b[i*BytesPerWord:], w)
	}

	return b
}
