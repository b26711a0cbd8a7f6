package block

// chunkSize is the round-robin interleave granularity. It matches a
// 128-bit SIMD load/store width so each shard buffer stays built out of
// whole cache-friendly chunks; grounded on the 16-byte lane width kcp-go's
// FEC layer assumes for its shard buffers (fec.go's shardSize rounding).
const chunkSize = 16

// Spread interleaves input round-robin into k shard buffers 16 bytes at a
// time: chunk r*k+s of input lands at offset 16*r in out[s]. len(input)
// must be a multiple of 16*k, and each out[s] must have room for
// len(input)/k bytes.
func Spread(input []byte, out [][]byte, k int) error {
	if k <= 0 || len(input)%(chunkSize*k) != 0 {
		return ErrSpreadLength
	}
	rounds := len(input) / (chunkSize * k)
	for r := 0; r < rounds; r++ {
		for s := 0; s < k; s++ {
			src := input[chunkSize*(r*k+s) : chunkSize*(r*k+s)+chunkSize]
			dst := out[s][chunkSize*r : chunkSize*r+chunkSize]
			copy(dst, src)
		}
	}
	return nil
}

// Unspread is the exact inverse of Spread: it reassembles output from k
// shard buffers. len(output) must be a multiple of 16*k and equal to
// k*len(in[0]).
func Unspread(in [][]byte, output []byte, k int) error {
	if k <= 0 || len(output)%(chunkSize*k) != 0 {
		return ErrSpreadLength
	}
	rounds := len(output) / (chunkSize * k)
	for r := 0; r < rounds; r++ {
		for s := 0; s < k; s++ {
			src := in[s][chunkSize*r : chunkSize*r+chunkSize]
			dst := output[chunkSize*(r*k+s) : chunkSize*(r*k+s)+chunkSize]
			copy(dst, src)
		}
	}
	return nil
}
