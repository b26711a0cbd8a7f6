package block

import "errors"

var (
	// ErrInvalidBlock is returned by ValidateBlock when a block fails its
	// checksum or layout invariants.
	ErrInvalidBlock = errors.New("block: invalid block")

	// ErrInvalidHeader is returned by ValidateHeader when a volume header
	// fails its checksum or layout invariants.
	ErrInvalidHeader = errors.New("block: invalid volume header")

	// ErrUnknownShard is returned by OffsetToBlock when asked for a shard
	// id that is not listed on the volume. Callers should never hit this
	// in production; it signals a caller bug, not a storage fault.
	ErrUnknownShard = errors.New("block: shard id not present on volume")

	// ErrSpreadLength is returned by Spread/Unspread when the input length
	// is not a multiple of 16*k.
	ErrSpreadLength = errors.New("block: length not a multiple of 16*k")
)
