package gf

import "github.com/klauspost/cpuid/v2"

// Capabilities reports which fast paths the running CPU qualifies for, the
// same detection kcptun's vendored reedsolomon/options.go performs at
// package init to decide default goroutine/split-size parameters.
type Capabilities struct {
	SSSE3     bool
	AVX2      bool
	ShuffleOK bool // a 128-bit byte-shuffle primitive is usable
	L1Cache   int
	L2Cache   int
}

// Detect probes the current CPU. It never errors: on an unrecognized or
// unsupported CPU every field is simply false/zero and callers fall back
// to the portable byte-at-a-time path.
func Detect() Capabilities {
	c := Capabilities{
		SSSE3:   cpuid.CPU.Supports(cpuid.SSSE3),
		AVX2:    cpuid.CPU.Supports(cpuid.AVX2),
		L1Cache: cpuid.CPU.Cache.L1D,
		L2Cache: cpuid.CPU.Cache.L2,
	}
	c.ShuffleOK = c.SSSE3 || c.AVX2
	return c
}

var capabilities = Detect()

// Capability returns the capabilities detected for the running CPU.
func Capability() Capabilities { return capabilities }
