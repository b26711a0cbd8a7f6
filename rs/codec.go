// Package rs implements the block storage core's Reed-Solomon(n,k) codec:
// systematic encode, erasure decode, and a fully general "any inputs to
// any outputs" coding primitive, all built on the gf and matrix packages.
//
// Grounded on the Encoder shape of kcptun's vendored
// github.com/klauspost/reedsolomon (construction via a Cauchy-derived
// generator matrix, per-row first-nonzero-coefficient init/accumulate
// discipline in the coding loop) but rebuilt around a fixed Cauchy-only
// construction and a general any-to-any Code entry point that shares its
// submatrix inversion and row-combination helpers with Decode.
package rs

import (
	"strconv"
	"strings"
	"sync"

	"github.com/kelpfs/benthic/gf"
	"github.com/kelpfs/benthic/matrix"
)

// Codec owns an n x k generator matrix for a fixed (k, m) shard layout.
// It is read-only after New returns and safe for concurrent use by
// Encode/Decode/Code over disjoint shard buffers.
type Codec struct {
	k, m, n int
	gen     *matrix.Matrix // n x k, top k x k block is the identity

	cacheMu sync.Mutex
	cache   map[string]*matrix.Matrix // erasure-pattern key -> inverted k x k submatrix
}

// New constructs a codec for k data shards and m parity shards.
func New(k, m int) (*Codec, error) {
	if k <= 0 || m <= 0 || k+m > 255 {
		return nil, ErrInvalidShardCount
	}
	n := k + m

	// Build an n x k Cauchy matrix, invert its top k x k block, and fold
	// that inverse in so the top block becomes the identity while every
	// k x k submatrix of the result stays invertible.
	c := matrix.Cauchy(n, k)
	top, err := c.SubMatrix(0, 0, k, k)
	if err != nil {
		return nil, err
	}
	topInv, err := top.Invert()
	if err != nil {
		// Cauchy matrices are invertible by construction; a failure here
		// is a programming error, not a reportable codec failure.
		panic("rs: cauchy top block not invertible: " + err.Error())
	}
	gen, err := c.Multiply(topInv)
	if err != nil {
		return nil, err
	}

	return &Codec{
		k: k, m: m, n: n,
		gen:   gen,
		cache: make(map[string]*matrix.Matrix),
	}, nil
}

func (c *Codec) DataShards() int   { return c.k }
func (c *Codec) ParityShards() int { return c.m }
func (c *Codec) TotalShards() int  { return c.n }

// codeShard computes one output shard as the GF(2^8) linear combination
// of present input shards given by coeffs, using the first-nonzero
// initialize-then-accumulate discipline: output buffers are never
// pre-zeroed, so the first non-zero coefficient must overwrite rather
// than XOR into whatever garbage the caller handed in.
func codeShard(coeffs []byte, inputs [][]byte, out []byte) {
	first := true
	for j, c := range coeffs {
		if c == 0 {
			continue
		}
		in := inputs[j]
		switch {
		case first && c == 1:
			copy(out, in)
		case first:
			gf.Mul(out, in, c)
		case c == 1:
			gf.Add(out, in)
		default:
			gf.MulAdd(out, in, c)
		}
		first = false
	}
	if first {
		// No input contributes (all-zero row): the output is defined to
		// be all zero, which does require a pass since we promised never
		// to assume the caller pre-zeroed it.
		for i := range out {
			out[i] = 0
		}
	}
}

// Encode computes the m parity shards from k data shards. data and
// parity must each have exactly shardSize bytes per shard, and
// len(data)==k, len(parity)==m.
func (c *Codec) Encode(data, parity [][]byte, shardSize int) error {
	if len(data) != c.k || len(parity) != c.m {
		return ErrShardSize
	}
	if err := checkSize(data, shardSize); err != nil {
		return err
	}
	for i := 0; i < c.m; i++ {
		row := c.gen.Row(c.k + i)
		codeShard(row, data, parity[i][:shardSize])
	}
	return nil
}

// Decode reconstructs shards marked erased in erasures (len n, 1=missing)
// from the surviving shards. shards[i] for present i is read-only input;
// for erased i it is writable output storage of length shardSize.
// Present shards are left byte-for-byte unchanged.
func (c *Codec) Decode(shards [][]byte, erasures []bool, shardSize int) error {
	if len(shards) != c.n || len(erasures) != c.n {
		return ErrShardSize
	}

	present := make([]int, 0, c.n)
	missing := make([]int, 0, c.m)
	for i := 0; i < c.n; i++ {
		if erasures[i] {
			missing = append(missing, i)
		} else {
			present = append(present, i)
		}
	}
	if len(present) < c.k {
		return ErrInsufficientShards
	}
	if len(missing) == 0 {
		return nil
	}
	if err := checkSize(selectShards(shards, present), shardSize); err != nil {
		return err
	}

	inputIDs := present[:c.k]
	inverse, err := c.invertedSubmatrix(inputIDs)
	if err != nil {
		return err
	}
	inputs := selectShards(shards, inputIDs)

	for _, i := range missing {
		coeffs := decodeRow(c.gen, inverse, i)
		if len(shards[i]) < shardSize {
			return ErrShardSize
		}
		codeShard(coeffs, inputs, shards[i][:shardSize])
	}
	return nil
}

// Code recovers the O outputs named by shardIDs[I:I+O] from the I inputs
// named by shardIDs[0:I] (with matching buffers in shards[0:I]), writing
// results into shards[I:I+O]. It requires I>=k and that the first k named
// inputs linearly span the requested outputs; Decode is exactly this
// operation with the erasure mask as the input/output split.
func (c *Codec) Code(shardIDs []int, i, o, shardSize int, shards [][]byte) error {
	if i < c.k {
		return ErrInsufficientShards
	}
	if len(shardIDs) != i+o || len(shards) != i+o {
		return ErrShardSize
	}
	if err := checkSize(shards[:i], shardSize); err != nil {
		return err
	}

	// Put the chosen inputs in ascending id order, the order Decode uses,
	// so the rows of an inverse cached under the sorted id set line up
	// with the input buffers.
	inputIDs := append([]int(nil), shardIDs[:c.k]...)
	inputs := append([][]byte(nil), shards[:c.k]...)
	for a := 1; a < len(inputIDs); a++ {
		for b := a; b > 0 && inputIDs[b-1] > inputIDs[b]; b-- {
			inputIDs[b-1], inputIDs[b] = inputIDs[b], inputIDs[b-1]
			inputs[b-1], inputs[b] = inputs[b], inputs[b-1]
		}
	}
	inverse, err := c.invertedSubmatrix(inputIDs)
	if err != nil {
		return err
	}

	for idx := 0; idx < o; idx++ {
		outID := shardIDs[i+idx]
		coeffs := decodeRow(c.gen, inverse, outID)
		dst := shards[i+idx]
		if len(dst) < shardSize {
			return ErrShardSize
		}
		codeShard(coeffs, inputs, dst[:shardSize])
	}
	return nil
}

// decodeRow computes, for an arbitrary target row (shard id) of the
// generator matrix, the coefficients over the chosen k input shards that
// reproduce it: G[target,:] * inverse, where inverse is already
// (submatrix of G over the input ids)^-1.
func decodeRow(gen, inverse *matrix.Matrix, target int) []byte {
	row := gen.Row(target)
	k := inverse.Rows()
	out := make([]byte, k)
	for col := 0; col < k; col++ {
		var acc byte
		for j := 0; j < k; j++ {
			acc ^= gf.MulByte(row[j], inverse.At(j, col))
		}
		out[col] = acc
	}
	return out
}

// invertedSubmatrix returns the inverse of the k x k submatrix of the
// generator built from the given shard ids' rows, memoized by the sorted
// id set. A flat map is used instead of a trie (as reedsolomon's
// inversionTree does) because n is capped at <=16 by the block format
// (k<=8 plus parity), so the key space is tiny and a trie buys nothing
// (see DESIGN.md).
func (c *Codec) invertedSubmatrix(ids []int) (*matrix.Matrix, error) {
	key := cacheKey(ids)

	c.cacheMu.Lock()
	if inv, ok := c.cache[key]; ok {
		c.cacheMu.Unlock()
		return inv, nil
	}
	c.cacheMu.Unlock()

	sub := matrix.New(len(ids), c.k)
	for row, id := range ids {
		copy(sub.Row(row), c.gen.Row(id))
	}
	inv, err := sub.Invert()
	if err != nil {
		return nil, ErrNotInvertible
	}

	c.cacheMu.Lock()
	c.cache[key] = inv
	c.cacheMu.Unlock()
	return inv, nil
}

func cacheKey(ids []int) string {
	sorted := append([]int(nil), ids...)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j-1] > sorted[j]; j-- {
			sorted[j-1], sorted[j] = sorted[j], sorted[j-1]
		}
	}
	var b strings.Builder
	for i, id := range sorted {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(id))
	}
	return b.String()
}

func selectShards(shards [][]byte, ids []int) [][]byte {
	out := make([][]byte, len(ids))
	for i, id := range ids {
		out[i] = shards[id]
	}
	return out
}

func checkSize(shards [][]byte, want int) error {
	for _, s := range shards {
		if len(s) < want {
			return ErrShardSize
		}
	}
	return nil
}
