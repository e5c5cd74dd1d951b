package cryptors

import (
	"bytes"
	"encoding/hex"
	mrand "math/rand"
	"testing"
	"time"
)

func TestBytesToWords(t *testing.T) {
	cases := []struct {
		in   []byte
		want []uint32
	}{
		{nil, []uint32{}},
		{[]byte{0x01}, []uint32{0x00000001}},
		{[]byte{0x01, 0x02, 0x03}, []uint32{0x00030201}},
		{[]byte{0x01, 0x02, 0x03, 0x04}, []uint32{0x04030201}},
		{[]byte{0x01, 0x02, 0x03, 0x04, 0xFF}, []uint32{0x04030201, 0x000000FF}},
	}
	for _, c := range cases {
		if w := BytesToWords(c.in); !equalWords(w, c.want) {
			t.Fatalf("BytesToWords(%x) = %#x, want %#x", c.in, w, c.want)
		}
	}

	if b := WordsToBytes([]uint32{0x04030201, 0xFF}); !bytes.Equal(b, []byte{1, 2, 3, 4, 0xFF, 0, 0, 0}) {
		t.Fatalf("WordsToBytes = %x", b)
	}
}

func TestWordsRoundTrip(t *testing.T) {
	seed := time.Now().Unix()
	rnd := mrand.New(mrand.NewSource(seed))

	for i := 0; i < 256; i++ {
		b := make([]byte, rnd.Intn(64))
		rnd.Read(b)
		back := WordsToBytes(BytesToWords(b))
		if len(back)%BytesPerWord != 0 || len(back)-len(b) >= BytesPerWord {
			t.Fatalf("%d bytes came back as %d, seed %d", len(b), len(back), seed)
		}
		if !bytes.Equal(back[:len(b)], b) {
			t.Fatalf("bytes changed in round trip, seed %d", seed)
		}
		for _, z := range back[len(b):] {
			if z != 0 {
				t.Fatalf("tail not zero filled, seed %d", seed)
			}
		}
	}
}

func runMachine(left, right chan CypherBlock, blocks []CypherBlock) []CypherBlock {
	out := make([]CypherBlock, 0, len(blocks))
	for _, blk := range blocks {
		left <- blk
		out = append(out, <-right)
	}
	var blk CypherBlock
	left <- blk
	<-right
	return out
}

func TestMachineRoundTrip(t *testing.T) {
	seed := time.Now().Unix()
	rnd := mrand.New(mrand.NewSource(seed))
	key := Key{rnd.Uint32(), rnd.Uint32(), rnd.Uint32(), rnd.Uint32()}

	blocks := make([]CypherBlock, 32)
	for i := range blocks {
		blocks[i].Length = BlockBytes
		rnd.Read(blocks[i].CypherBlock[:])
	}
	blocks[len(blocks)-1].Length = 5

	var encCount, decCount Counter
	left, right := CreateEncryptMachine(New(key), &encCount)
	encrypted := runMachine(left, right, blocks)
	if encCount.Count() != uint64(len(blocks)) {
		t.Fatalf("encrypt machine counted %d blocks", encCount.Count())
	}

	left, right = CreateDecryptMachine(New(key), &decCount)
	decrypted := runMachine(left, right, encrypted)
	if decCount.Count() != uint64(len(blocks)) {
		t.Fatalf("decrypt machine counted %d blocks", decCount.Count())
	}

	for i := range blocks {
		n := blocks[i].Length
		if !bytes.Equal(decrypted[i].CypherBlock[:n], blocks[i].CypherBlock[:n]) {
			t.Fatalf("block %d changed in round trip, seed %d", i, seed)
		}
	}
	for _, z := range decrypted[len(blocks)-1].CypherBlock[5:] {
		if z != 0 {
			t.Fatalf("partial block was not zero filled, seed %d", seed)
		}
	}
}

func TestMachinePartialBlockVector(t *testing.T) {
	key, _ := hex.DecodeString("00112233445566778899aabbccddeeff")
	k, err := KeyFromBytes(key)
	if err != nil {
		t.Fatalf("KeyFromBytes failed: %s", err)
	}

	var blk CypherBlock
	blk.Length = 3
	copy(blk.CypherBlock[:], "abcdefghijklmnop")
	left, right := CreateEncryptMachine(New(k))
	out := runMachine(left, right, []CypherBlock{blk})

	want, _ := hex.DecodeString("d438551f5ed9130455d266507304eb68")
	if !bytes.Equal(out[0].CypherBlock[:], want) {
		t.Fatalf("ciphertext %x, want %x", out[0].CypherBlock[:], want)
	}
	if out[0].Length != 3 {
		t.Fatalf("length %d", out[0].Length)
	}
}

func TestMachinePartialBlockRoundTrip(t *testing.T) {
	key := Key{1, 2, 3, 4}
	var blk CypherBlock
	blk.Length = 3
	copy(blk.CypherBlock[:], "abc")

	left, right := CreateEncryptMachine(New(key))
	encrypted := runMachine(left, right, []CypherBlock{blk})
	if encrypted[0].Length != 3 {
		t.Fatalf("encrypted length %d, want 3", encrypted[0].Length)
	}

	left, right = CreateDecryptMachine(New(key))
	decrypted := runMachine(left, right, encrypted)
	if got := string(decrypted[0].CypherBlock[:decrypted[0].Length]); got != "abc" {
		t.Fatalf("partial block round trip: got %q want %q", got, "abc")
	}
}

func TestCreateMachinePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("CreateEncryptMachine without crypters did not panic")
		}
	}()
	CreateEncryptMachine()
}
