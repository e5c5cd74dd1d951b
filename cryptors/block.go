package cryptors

import "crypto/cipher"

// NewCipher returns a cipher.Block for a 16 byte key.
func NewCipher(key []byte) (cipher.Block, error) {
	if l := len(key); l != BlockBytes {
		return nil, KeySizeError(l)
	}

	k, err := KeyFromBytes(key)
	if err != nil {
		return nil, err
	}

	return New(k), nil
}
