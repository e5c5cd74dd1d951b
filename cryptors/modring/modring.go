// Package modring implements multiplication and multiplicative inversion in
// the ring of integers modulo 2^32-1.
//
// The all-ones word is kept out of the ring: it is a fixed point of every
// operation in this package, so that the mapping x -> gamma*x stays a
// permutation of the full 32-bit range.
package modring

import "math"

const (
	// Modulus of the ring.
	Modulus = math.MaxUint32
	// Sentinel is passed through unchanged by GammaMul and InverseGammaMul.
	Sentinel = math.MaxUint32
)

// GammaMul returns gamma*x mod 2^32-1, or Sentinel when x is Sentinel.
func GammaMul(gamma, x uint32) uint32 {
	if x == Sentinel {
		return Sentinel
	}

	return uint32((uint64(gamma) * uint64(x)) % Modulus)
}

// ModInverse returns the multiplicative inverse of a modulo b using the
// extended Euclidean algorithm.  a and b must be coprime; this is not checked.
func ModInverse(a, b uint32) uint32 {
	if b == 1 {
		return 1
	}

	m := int64(b)
	x, y := int64(a), int64(b)
	var x0, x1 int64 = 0, 1

	for x > 1 {
		if y == 0 {
			// gcd(a, b) != 1, there is no inverse.
			return 0
		}
		q := x / y
		x, y = y, x%y
		x0, x1 = x1-q*x0, x0
	}

	if x1 < 0 {
		x1 += m
	}

	return uint32(x1)
}

// InverseGammaMul undoes GammaMul: InverseGammaMul(gamma, GammaMul(gamma, x)) == x.
func InverseGammaMul(gamma, result uint32) uint32 {
	return InverseGammaMulWith(ModInverse(gamma, Modulus), result)
}

// InverseGammaMulWith is InverseGammaMul with a precomputed inverse of gamma.
func InverseGammaMulWith(inverse, result uint32) uint32 {
	if result == Sentinel {
		return Sentinel
	}

	return uint32((uint64(result) * uint64(inverse)) % Modulus)
}

// Coprime reports whether gcd(a, b) == 1.
func Coprime(a, b uint32) bool {
	for b != 0 {
		a, b = b, a%b
	}

	return a == 1
}
