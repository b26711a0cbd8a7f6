package gf

import "github.com/templexxx/xorsimd"

// addSlice computes out[i] ^= in[i] using templexxx/xorsimd, the
// accelerated XOR package kcptun pulls in transitively (via kcp-go's FEC
// layer) for exactly this operation. It backs Add and the c==1 fast path
// of MulAdd, since "multiply by 1 and accumulate" degenerates to plain
// XOR. Mul's c==1 case is a plain copy and does not use it.
func addSlice(in, out []byte) {
	xorsimd.Encode(out, [][]byte{out, in})
}
