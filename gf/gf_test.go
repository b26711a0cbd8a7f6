package gf

import (
	"bytes"
	"math/rand"
	"testing"
)

func TestMulDivInverse(t *testing.T) {
	for a := 0; a < 256; a++ {
		for b := 1; b < 256; b++ {
			got := DivByte(MulByte(byte(a), byte(b)), byte(b))
			if got != byte(a) {
				t.Fatalf("(%d * %d) / %d = %d, want %d", a, b, b, got, a)
			}
		}
	}
}

func TestMulIdentity(t *testing.T) {
	for a := 0; a < 256; a++ {
		if MulByte(byte(a), 1) != byte(a) {
			t.Fatalf("mul(%d, 1) != %d", a, a)
		}
		if MulByte(byte(a), 0) != 0 {
			t.Fatalf("mul(%d, 0) != 0", a)
		}
	}
}

func TestMulAddTailMatchesScalar(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for _, n := range []int{0, 1, 15, 16, 17, 63, 64, 65, 127, 128, 200, 10000} {
		for _, c := range []byte{0, 1, 2, 3, 255} {
			in := make([]byte, n)
			r.Read(in)

			out1 := make([]byte, n)
			r.Read(out1)
			out2 := append([]byte(nil), out1...)

			MulAdd(out1, in, c)
			scalarMulAdd(out2, in, c)

			if !bytes.Equal(out1, out2) {
				t.Fatalf("MulAdd mismatch at n=%d c=%d", n, c)
			}
		}
	}
}

// scalarMulAdd is the reference byte-at-a-time definition used to verify
// that the vectorized path (real or emulated) is byte-exact.
func scalarMulAdd(dst, src []byte, c byte) {
	for i, v := range src {
		dst[i] ^= mulTable[c][v]
	}
}

func TestAdd(t *testing.T) {
	a := []byte{1, 2, 3, 4}
	b := []byte{0xff, 0, 1, 1}
	Add(a, b)
	want := []byte{1 ^ 0xff, 2, 3 ^ 1, 4 ^ 1}
	if !bytes.Equal(a, want) {
		t.Fatalf("Add = %v, want %v", a, want)
	}
}

func TestExpLogRoundTrip(t *testing.T) {
	for a := 1; a < 256; a++ {
		if Exp(int(Log(byte(a)))) != byte(a) {
			t.Fatalf("exp(log(%d)) != %d", a, a)
		}
	}
}
