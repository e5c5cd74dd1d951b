// Package round implements the 128-bit round function of the gamma6 cipher
// and its exact inverse.
package round

import (
	"fmt"

	"github.com/bgallie/gamma6/cryptors/modring"
)

const (
	// BaseConstant is C0, the multiplier applied to the first word.
	BaseConstant uint32 = 0x025F1CDB
	// MixConstant is XORed into x0 or x3 by the conditional mixing stage.
	// It is even, so the low bit tested by the stage is never changed.
	MixConstant uint32 = 0x2AAAAAAA
)

// State is the four word block processed by a round.
type State [4]uint32

var (
	// constants holds C0..C3: C0, C0*2, C0*8 and C0*128 in the ring.
	constants = [4]uint32{
		BaseConstant,
		modring.GammaMul(BaseConstant, 2),
		modring.GammaMul(BaseConstant, 8),
		modring.GammaMul(BaseConstant, 128),
	}
	inverses [4]uint32
)

func init() {
	for i, c := range constants {
		if !modring.Coprime(c, modring.Modulus) {
			panic(fmt.Sprintf("round: constant C%d (%#08x) is not invertible modulo 2^32-1", i, c))
		}
		inverses[i] = modring.ModInverse(c, modring.Modulus)
	}
}

// Constants returns the round constants C0..C3.
func Constants() [4]uint32 {
	return constants
}

// Inverses returns the multiplicative inverses of C0..C3 modulo 2^32-1.
func Inverses() [4]uint32 {
	return inverses
}

// Transform applies the round function to s in place.
func Transform(s *State) {
	substitute(s)
	mix(s)
	diffuse(s)
}

// InverseTransform undoes Transform: the stages are applied in reverse order.
func InverseTransform(s *State) {
	diffuse(s)
	mix(s)
	unsubstitute(s)
}

// substitute multiplies each word by its round constant.
func substitute(s *State) {
	for i := range s {
		s[i] = modring.GammaMul(constants[i], s[i])
	}
}

func unsubstitute(s *State) {
	for i := range s {
		s[i] = modring.InverseGammaMulWith(inverses[i], s[i])
	}
}

// mix XORs MixConstant into x0 when x0 is odd, otherwise into x3 when x3 is
// even.  At most one word changes.  mix is its own inverse.
func mix(s *State) {
	if s[0]&1 != 0 {
		s[0] ^= MixConstant
	} else if s[3]&1 == 0 {
		s[3] ^= MixConstant
	}
}

// diffuse is the circulant XOR layer.  It is an involution.
func diffuse(s *State) {
	x0, x1, x2, x3 := s[0], s[1], s[2], s[3]
	s[0] = x3 ^ x0 ^ x1
	s[1] = x0 ^ x1 ^ x2
	s[2] = x1 ^ x2 ^ x3
	s[3] = x2 ^ x3 ^ x0
}
