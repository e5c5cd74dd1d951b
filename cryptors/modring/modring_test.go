package modring

import (
	mrand "math/rand"
	"testing"
	"time"
)

// gammas are all coprime to 2^32-1 = 3 * 5 * 17 * 257 * 65537.
var gammas = []uint32{1, 2, 7, 11, 0x025F1CDB, 0x04BE39B6, 0x12F8E6D8, 0x2F8E6D81, 0x80000000, Modulus - 1}

func TestGammaMulSentinel(t *testing.T) {
	for _, g := range gammas {
		if r := GammaMul(g, Sentinel); r != Sentinel {
			t.Fatalf("GammaMul(%#x, sentinel) = %#x", g, r)
		}
		if r := InverseGammaMul(g, Sentinel); r != Sentinel {
			t.Fatalf("InverseGammaMul(%#x, sentinel) = %#x", g, r)
		}
	}
}

func TestGammaMulKnown(t *testing.T) {
	cases := []struct {
		gamma, x, want uint32
	}{
		{0x025F1CDB, 2, 0x04BE39B6},
		{0x025F1CDB, 8, 0x12F8E6D8},
		{0x025F1CDB, 128, 0x2F8E6D81},
		{2, 0x80000000, 1},
		{1, Modulus - 1, Modulus - 1},
		{5, 0, 0},
	}
	for _, c := range cases {
		if r := GammaMul(c.gamma, c.x); r != c.want {
			t.Fatalf("GammaMul(%#x, %#x) = %#x, want %#x", c.gamma, c.x, r, c.want)
		}
	}
}

func TestModInverse(t *testing.T) {
	cases := []struct {
		a, b, want uint32
	}{
		{3, 7, 5},
		{10, 17, 12},
		{5, 1, 1},
		{2, Modulus, 0x80000000},
		{0x025F1CDB, Modulus, 0x0DAD4694},
		{0x04BE39B6, Modulus, 0x06D6A34A},
		{0x12F8E6D8, Modulus, 0x81B5A8D2},
		{0x2F8E6D81, Modulus, 0x281B5A8D},
	}
	for _, c := range cases {
		if r := ModInverse(c.a, c.b); r != c.want {
			t.Fatalf("ModInverse(%#x, %#x) = %#x, want %#x", c.a, c.b, r, c.want)
		}
	}
}

func TestModInverseProduct(t *testing.T) {
	for _, g := range gammas {
		inv := ModInverse(g, Modulus)
		if inv >= Modulus {
			t.Fatalf("inverse of %#x out of range: %#x", g, inv)
		}
		if p := (uint64(g) * uint64(inv)) % Modulus; p != 1 {
			t.Fatalf("%#x * %#x = %d mod 2^32-1", g, inv, p)
		}
	}
}

func TestInverseGammaMulRoundTrip(t *testing.T) {
	seed := time.Now().Unix()
	rnd := mrand.New(mrand.NewSource(seed))

	edges := []uint32{0, 1, 2, Modulus - 1, Sentinel}
	for _, g := range gammas {
		inv := ModInverse(g, Modulus)
		for _, x := range edges {
			if r := InverseGammaMul(g, GammaMul(g, x)); r != x {
				t.Fatalf("gamma %#x: round trip of %#x gave %#x", g, x, r)
			}
		}
		for i := 0; i < 4096; i++ {
			x := rnd.Uint32()
			y := GammaMul(g, x)
			if r := InverseGammaMul(g, y); r != x {
				t.Fatalf("gamma %#x: round trip of %#x gave %#x, round %d with seed %d", g, x, r, i, seed)
			}
			if r := InverseGammaMulWith(inv, y); r != x {
				t.Fatalf("gamma %#x: cached round trip of %#x gave %#x, round %d with seed %d", g, x, r, i, seed)
			}
		}
	}
}

func TestGammaMulStaysInRing(t *testing.T) {
	seed := time.Now().Unix()
	rnd := mrand.New(mrand.NewSource(seed))

	for i := 0; i < 4096; i++ {
		x := rnd.Uint32()
		if x == Sentinel {
			continue
		}
		if r := GammaMul(0x025F1CDB, x); r == Sentinel {
			t.Fatalf("GammaMul mapped %#x onto the sentinel, seed %d", x, seed)
		}
	}
}

func TestCoprime(t *testing.T) {
	for _, g := range gammas {
		if !Coprime(g, Modulus) {
			t.Fatalf("%#x reported as not coprime to the modulus", g)
		}
	}
	for _, f := range []uint32{3, 5, 17, 257, 65537, 255, 0} {
		if Coprime(f, Modulus) {
			t.Fatalf("%d reported as coprime to the modulus", f)
		}
	}
}
