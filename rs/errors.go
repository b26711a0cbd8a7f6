package rs

import "errors"

// Error kinds the codec distinguishes.
var (
	// ErrInvalidShardCount is returned by New when k<=0, m<=0, or k+m>255.
	ErrInvalidShardCount = errors.New("rs: invalid shard count")

	// ErrInsufficientShards is returned by Decode/Code when fewer than k
	// shards are present to reconstruct from.
	ErrInsufficientShards = errors.New("rs: insufficient shards to reconstruct")

	// ErrNotInvertible is returned when the submatrix selected by the
	// caller's erasure pattern or coding request is singular.
	ErrNotInvertible = errors.New("rs: coding submatrix is not invertible")

	// ErrShardSize is returned when Encode/Decode/Code are given the wrong
	// number of shard buffers or a buffer shorter than shardSize.
	ErrShardSize = errors.New("rs: shard size mismatch")
)
