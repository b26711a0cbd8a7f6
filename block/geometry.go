package block

// KBlocksInStripe returns the effective shard count k_v of a volume:
// starting from 8, while the last two entries of shard_ids are equal,
// shrink by one. Trailing repetition is how a header with fewer than 8
// shards pads shard_ids out to a fixed 8-byte field.
func KBlocksInStripe(h VolumeHeader) int {
	ids := h.ShardIDs()
	n := shardCount
	for n > 1 && ids[n-1] == ids[n-2] {
		n--
	}
	return n
}

// positionOf returns the index of shardID within the first kv entries of
// shard_ids, or -1 if absent.
func positionOf(h VolumeHeader, kv int, shardID byte) int {
	ids := h.ShardIDs()
	for i := 0; i < kv; i++ {
		if ids[i] == shardID {
			return i
		}
	}
	return -1
}

// OffsetToBlock returns the byte offset within the volume file of the
// block for (stripeNo, shardID). The header occupies the first 4096
// bytes, so the returned offset already accounts for it: stripe 0's
// first listed shard sits at offset 4096, not 0.
func OffsetToBlock(h VolumeHeader, stripeNo uint64, shardID byte) (int64, error) {
	kv := KBlocksInStripe(h)
	pos := positionOf(h, kv, shardID)
	if pos < 0 {
		return 0, ErrUnknownShard
	}
	return Size * (1 + int64(kv)*int64(stripeNo) + int64(pos)), nil
}
