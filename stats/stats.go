// Package stats implements an atomic-counter metrics block for the block
// storage core, in the shape of kcp-go's DefaultSnmp: a flat struct of
// exported counters incremented with sync/atomic, exposed as CSV rows via
// Header/ToSlice. Grounded on the consumption pattern in xtaci-kcptun's
// std/snmp.go, which dumps kcp.DefaultSnmp to CSV on a timer.
package stats

import (
	"strconv"
	"sync/atomic"
)

// Stats holds the core's counters. All fields are accessed only through
// the Add* methods and Snapshot; reading the struct's fields directly
// from outside this package races.
type Stats struct {
	IOsSubmitted        uint64
	IOsCompleted        uint64
	BytesEncoded        uint64
	BytesDecoded        uint64
	ShardsReconstructed uint64
	ChecksumFailures    uint64
	HeaderFailures      uint64
}

func (s *Stats) AddIOsSubmitted(n uint64)        { atomic.AddUint64(&s.IOsSubmitted, n) }
func (s *Stats) AddIOsCompleted(n uint64)        { atomic.AddUint64(&s.IOsCompleted, n) }
func (s *Stats) AddBytesEncoded(n uint64)        { atomic.AddUint64(&s.BytesEncoded, n) }
func (s *Stats) AddBytesDecoded(n uint64)        { atomic.AddUint64(&s.BytesDecoded, n) }
func (s *Stats) AddShardsReconstructed(n uint64) { atomic.AddUint64(&s.ShardsReconstructed, n) }
func (s *Stats) AddChecksumFailures(n uint64)    { atomic.AddUint64(&s.ChecksumFailures, n) }
func (s *Stats) AddHeaderFailures(n uint64)      { atomic.AddUint64(&s.HeaderFailures, n) }

// Header returns the CSV column names, in the same order ToSlice emits
// values, for a fresh file's first row.
func (s *Stats) Header() []string {
	return []string{
		"IOsSubmitted",
		"IOsCompleted",
		"BytesEncoded",
		"BytesDecoded",
		"ShardsReconstructed",
		"ChecksumFailures",
		"HeaderFailures",
	}
}

// Snapshot atomically reads every counter into a plain value, safe to
// pass around or format without further synchronization.
func (s *Stats) Snapshot() Snapshot {
	return Snapshot{
		IOsSubmitted:        atomic.LoadUint64(&s.IOsSubmitted),
		IOsCompleted:        atomic.LoadUint64(&s.IOsCompleted),
		BytesEncoded:        atomic.LoadUint64(&s.BytesEncoded),
		BytesDecoded:        atomic.LoadUint64(&s.BytesDecoded),
		ShardsReconstructed: atomic.LoadUint64(&s.ShardsReconstructed),
		ChecksumFailures:    atomic.LoadUint64(&s.ChecksumFailures),
		HeaderFailures:      atomic.LoadUint64(&s.HeaderFailures),
	}
}

// Snapshot is a point-in-time copy of Stats' counters.
type Snapshot struct {
	IOsSubmitted        uint64
	IOsCompleted        uint64
	BytesEncoded        uint64
	BytesDecoded        uint64
	ShardsReconstructed uint64
	ChecksumFailures    uint64
	HeaderFailures      uint64
}

// ToSlice renders the snapshot as strings in Header's column order, for
// a CSV writer row.
func (s Snapshot) ToSlice() []string {
	return []string{
		strconv.FormatUint(s.IOsSubmitted, 10),
		strconv.FormatUint(s.IOsCompleted, 10),
		strconv.FormatUint(s.BytesEncoded, 10),
		strconv.FormatUint(s.BytesDecoded, 10),
		strconv.FormatUint(s.ShardsReconstructed, 10),
		strconv.FormatUint(s.ChecksumFailures, 10),
		strconv.FormatUint(s.HeaderFailures, 10),
	}
}
