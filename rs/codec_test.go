package rs

import (
	"bytes"
	"math/rand"
	"testing"
)

// TestEncodeDecodeConcrete is the RS(4,2) 4-byte-shard scenario: data
// shards are the obvious byte runs, shards 0 and 2 are erased, and
// decode must restore them exactly.
func TestEncodeDecodeConcrete(t *testing.T) {
	c, err := New(4, 2)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	data := [][]byte{
		{0x00, 0x01, 0x02, 0x03},
		{0x04, 0x05, 0x06, 0x07},
		{0x08, 0x09, 0x0a, 0x0b},
		{0x0c, 0x0d, 0x0e, 0x0f},
	}
	parity := [][]byte{make([]byte, 4), make([]byte, 4)}
	if err := c.Encode(data, parity, 4); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	shards := make([][]byte, 6)
	copy(shards, data)
	shards[4], shards[5] = parity[0], parity[1]

	want0 := append([]byte(nil), shards[0]...)
	want2 := append([]byte(nil), shards[2]...)
	shards[0] = make([]byte, 4)
	shards[2] = make([]byte, 4)

	erasures := make([]bool, 6)
	erasures[0], erasures[2] = true, true

	if err := c.Decode(shards, erasures, 4); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !bytes.Equal(shards[0], want0) {
		t.Fatalf("shard 0 = %v, want %v", shards[0], want0)
	}
	if !bytes.Equal(shards[2], want2) {
		t.Fatalf("shard 2 = %v, want %v", shards[2], want2)
	}
}

// TestDecodeAllErasureCombinations is the RS(8,4) scenario: for every
// choice of 4 erased shards out of 12, decode must recover the exact
// original bytes (testable property #4).
func TestDecodeAllErasureCombinations(t *testing.T) {
	const k, m, shardSize = 8, 4, 256
	c, err := New(k, m)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	n := k + m

	r := rand.New(rand.NewSource(99))
	data := make([][]byte, k)
	for i := range data {
		data[i] = make([]byte, shardSize)
		r.Read(data[i])
	}
	parity := make([][]byte, m)
	for i := range parity {
		parity[i] = make([]byte, shardSize)
	}
	if err := c.Encode(data, parity, shardSize); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	original := make([][]byte, n)
	copy(original, data)
	copy(original[k:], parity)

	combos := combinations(n, m)
	for _, erased := range combos {
		shards := make([][]byte, n)
		for i := range shards {
			shards[i] = append([]byte(nil), original[i]...)
		}
		erasures := make([]bool, n)
		for _, idx := range erased {
			erasures[idx] = true
			shards[idx] = make([]byte, shardSize)
		}

		if err := c.Decode(shards, erasures, shardSize); err != nil {
			t.Fatalf("erased %v: Decode: %v", erased, err)
		}
		for i := 0; i < n; i++ {
			if !bytes.Equal(shards[i], original[i]) {
				t.Fatalf("erased %v: shard %d mismatch", erased, i)
			}
		}
	}
}

func TestDecodeNoErasuresIsNoOp(t *testing.T) {
	c, err := New(4, 2)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	shards := make([][]byte, 6)
	for i := range shards {
		shards[i] = []byte{byte(i), byte(i + 1)}
	}
	erasures := make([]bool, 6)
	if err := c.Decode(shards, erasures, 2); err != nil {
		t.Fatalf("Decode: %v", err)
	}
}

func TestDecodeInsufficientShards(t *testing.T) {
	c, err := New(4, 2)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	shards := make([][]byte, 6)
	for i := range shards {
		shards[i] = make([]byte, 4)
	}
	erasures := []bool{true, true, true, false, false, false}
	if err := c.Decode(shards, erasures, 4); err != ErrInsufficientShards {
		t.Fatalf("Decode: got %v, want ErrInsufficientShards", err)
	}
}

func TestNewInvalidShardCount(t *testing.T) {
	cases := [][2]int{{0, 1}, {1, 0}, {-1, 1}, {200, 100}}
	for _, tc := range cases {
		if _, err := New(tc[0], tc[1]); err != ErrInvalidShardCount {
			t.Fatalf("New(%d,%d): got %v, want ErrInvalidShardCount", tc[0], tc[1], err)
		}
	}
}

// TestCodeAnyToAny exercises the generic primitive directly: given k of
// the n shards as input, ask for an arbitrary other shard as output and
// check it matches what Encode/Decode would have produced.
func TestCodeAnyToAny(t *testing.T) {
	const k, m, shardSize = 4, 2, 16
	c, err := New(k, m)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	n := k + m

	r := rand.New(rand.NewSource(5))
	data := make([][]byte, k)
	for i := range data {
		data[i] = make([]byte, shardSize)
		r.Read(data[i])
	}
	parity := make([][]byte, m)
	for i := range parity {
		parity[i] = make([]byte, shardSize)
	}
	if err := c.Encode(data, parity, shardSize); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	all := make([][]byte, n)
	copy(all, data)
	copy(all[k:], parity)

	// Use shards 2..5 (4 of them, spanning data and parity) as input,
	// recompute shard 0 and shard 1, and check against the originals.
	inputIDs := []int{2, 3, 4, 5}
	outIDs := []int{0, 1}
	shardIDs := append(append([]int(nil), inputIDs...), outIDs...)

	shards := make([][]byte, len(shardIDs))
	for i, id := range inputIDs {
		shards[i] = all[id]
	}
	out0 := make([]byte, shardSize)
	out1 := make([]byte, shardSize)
	shards[len(inputIDs)] = out0
	shards[len(inputIDs)+1] = out1

	if err := c.Code(shardIDs, len(inputIDs), len(outIDs), shardSize, shards); err != nil {
		t.Fatalf("Code: %v", err)
	}
	if !bytes.Equal(out0, all[0]) {
		t.Fatalf("Code recovered shard 0 = %v, want %v", out0, all[0])
	}
	if !bytes.Equal(out1, all[1]) {
		t.Fatalf("Code recovered shard 1 = %v, want %v", out1, all[1])
	}
}

// combinations returns every m-element subset of {0,...,n-1}.
func combinations(n, m int) [][]int {
	var out [][]int
	idx := make([]int, m)
	for i := range idx {
		idx[i] = i
	}
	for {
		out = append(out, append([]int(nil), idx...))
		i := m - 1
		for i >= 0 && idx[i] == n-m+i {
			i--
		}
		if i < 0 {
			break
		}
		idx[i]++
		for j := i + 1; j < m; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
	return out
}
