package block

// ValidateBlock reports whether a block's checksum matches its payload:
// block_checksum must equal crc32c(b[4:4096], 0). No partial acceptance;
// any mismatch is ErrInvalidBlock.
func ValidateBlock(b Block) error {
	if len(b) != Size {
		return ErrInvalidBlock
	}
	if b.Checksum() != CRC32C(b[4:Size], 0) {
		return ErrInvalidBlock
	}
	return nil
}

// ValidateHeader checks version, volume_prefix_id, shard_ids ordering and
// the header checksum. Any violation is ErrInvalidHeader with no partial
// acceptance.
func ValidateHeader(h VolumeHeader) error {
	if len(h) != Size {
		return ErrInvalidHeader
	}
	if h.Version() != 1 {
		return ErrInvalidHeader
	}
	if h.VolumePrefixID() < minVolumePrefix {
		return ErrInvalidHeader
	}
	ids := h.ShardIDs()
	for i := 1; i < len(ids); i++ {
		if ids[i] < ids[i-1] {
			return ErrInvalidHeader
		}
	}
	if h.CRC32C() != CRC32C(h[0:headerCRCOffset], 0) {
		return ErrInvalidHeader
	}
	return nil
}
