package cryptors

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bgallie/gamma6/cryptors/round"
)

var (
	ErrKeySize          = errors.New("key must contain exactly 4 words")
	ErrKeyFormat        = errors.New("key must be 32 hexadecimal digits")
	ErrCiphertextLength = errors.New("ciphertext length is not a multiple of 4 words")
)

// KeySizeError is returned by NewCipher for keys that are not 16 bytes long.
type KeySizeError int

func (k KeySizeError) Error() string {
	return "gamma6: invalid key size " + strconv.Itoa(int(k))
}

func (k KeySizeError) Is(target error) bool {
	return target == ErrKeySize
}

// Key is the four word cipher key.  Round r XORs key[(k+r)%4] into word
// (k+r)%4 of the block for each subblock k.
type Key [KeyWords]uint32

func NewKey(words []uint32) (Key, error) {
	var key Key
	if len(words) != KeyWords {
		return key, fmt.Errorf("%w: got %d", ErrKeySize, len(words))
	}

	copy(key[:], words)
	return key, nil
}

// KeyFromBytes builds a key from the first 16 bytes of b, read as
// little-endian words.  Any bytes after the first 16 are ignored.
func KeyFromBytes(b []byte) (Key, error) {
	if len(b) < BlockBytes {
		return Key{}, fmt.Errorf("%w: got %d bytes", ErrKeySize, len(b))
	}

	return NewKey(BytesToWords(b[:BlockBytes]))
}

// ParseKey decodes a key written as 32 hexadecimal digits.
func ParseKey(s string) (Key, error) {
	b, err := hex.DecodeString(strings.TrimSpace(s))
	if err != nil || len(b) != BlockBytes {
		return Key{}, ErrKeyFormat
	}

	return KeyFromBytes(b)
}

func (key Key) String() string {
	return hex.EncodeToString(WordsToBytes(key[:]))
}

// Pad returns a copy of words extended with zero words to a multiple of 4.
func Pad(words []uint32) []uint32 {
	padded := make([]uint32, len(words)+(WordsPerBlock-len(words)%WordsPerBlock)%WordsPerBlock)
	copy(padded, words)
	return padded
}

func addSubkeys(s *round.State, key Key, r int) {
	for k := 0; k < WordsPerBlock; k++ {
		j := (k + r) % WordsPerBlock
		s[j] ^= key[j]
	}
}

// EncryptBlock runs the six rounds over one block: each round XORs in the
// subkeys and then applies the round transform.
func EncryptBlock(s *round.State, key Key) {
	for r := 0; r < Rounds; r++ {
		addSubkeys(s, key, r)
		round.Transform(s)
	}
}

// DecryptBlock undoes EncryptBlock.
func DecryptBlock(s *round.State, key Key) {
	for r := 0; r < Rounds; r++ {
		round.InverseTransform(s)
		addSubkeys(s, key, r)
	}
}

// Encrypt zero pads data to a multiple of 4 words and encrypts each block.
// data is not modified.
func Encrypt(data, key []uint32) ([]uint32, error) {
	k, err := NewKey(key)
	if err != nil {
		return nil, err
	}

	result := Pad(data)
	var s round.State
	for i := 0; i < len(result); i += WordsPerBlock {
		copy(s[:], result[i:i+WordsPerBlock])
		EncryptBlock(&s, k)
		copy(result[i:i+WordsPerBlock], s[:])
	}

	return result, nil
}

// Decrypt decrypts data produced by Encrypt.  The plaintext is returned with
// the zero padding Encrypt added.
func Decrypt(data, key []uint32) ([]uint32, error) {
	k, err := NewKey(key)
	if err != nil {
		return nil, err
	}

	if len(data)%WordsPerBlock != 0 {
		return nil, fmt.Errorf("%w: got %d words", ErrCiphertextLength, len(data))
	}

	result := Pad(data)
	var s round.State
	for i := 0; i < len(result); i += WordsPerBlock {
		copy(s[:], result[i:i+WordsPerBlock])
		DecryptBlock(&s, k)
		copy(result[i:i+WordsPerBlock], s[:])
	}

	return result, nil
}

// Cipher is a keyed gamma6 block cipher.  It is both a Crypter for the cipher
// machines and a crypto/cipher.Block.
type Cipher struct {
	key Key
}

func New(key Key) *Cipher {
	return &Cipher{key: key}
}

func (c *Cipher) BlockSize() int {
	return BlockBytes
}

func (c *Cipher) Encrypt(dst, src []byte) {
	if len(src) < BlockBytes {
		panic("gamma6: input not full block")
	}
	if len(dst) < BlockBytes {
		panic("gamma6: output not full block")
	}

	s := loadState(src)
	EncryptBlock(&s, c.key)
	storeState(dst, &s)
}

func (c *Cipher) Decrypt(dst, src []byte) {
	if len(src) < BlockBytes {
		panic("gamma6: input not full block")
	}
	if len(dst) < BlockBytes {
		panic("gamma6: output not full block")
	}

	s := loadState(src)
	DecryptBlock(&s, c.key)
	storeState(dst, &s)
}

func (c *Cipher) Apply_F(blk *[BlockBytes]byte) *[BlockBytes]byte {
	c.Encrypt(blk[:], blk[:])
	return blk
}

func (c *Cipher) Apply_G(blk *[BlockBytes]byte) *[BlockBytes]byte {
	c.Decrypt(blk[:], blk[:])
	return blk
}

func loadState(b []byte) round.State {
	var s round.State
	for i := range s {
		s[i] = binary.LittleEndian.Uint32(b[i*BytesPerWord:])
	}

	return s
}

func storeState(b []byte, s *round.State) {
	for i, w := range s {
		binary.LittleEndian.PutUint32(b[i*BytesPerWord:], w)
	}
}
