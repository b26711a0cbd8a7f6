// Package block implements the on-disk block and volume header formats:
// fixed 4 KiB packed little-endian layouts, CRC32C validation, stripe
// geometry, and the round-robin interleave (spread/unspread) that aligns
// caller payloads to per-shard buffers. Grounded on the accessor style of
// kcptun's vendored kcp-go fecPacket type (a []byte wrapper with
// encoding/binary-based field accessors) generalized from a 6-byte FEC
// header to the full block/header formats here.
package block

import "encoding/binary"

const (
	// Size is the fixed size in bytes of both a Block and a VolumeHeader.
	Size = 4096

	blockHeaderSize  = 16
	payloadSize      = Size - blockHeaderSize
	shardCount       = 8
	headerMagicSize  = 32
	headerCRCOffset  = Size - 4
	minVolumePrefix  = 1 << 24
)

// Block is a 4096-byte packed little-endian block:
//
//	offset 0  (4 bytes): block_checksum, CRC32C of bytes [4:4096)
//	offset 4  (4 bytes): block_sequence_number
//	offset 8  (8 bytes): stripe_number_and_shard (56-bit stripe, 8-bit shard id)
//	offset 16 (4080 bytes): payload
type Block []byte

// NewBlock allocates a zeroed block.
func NewBlock() Block { return make(Block, Size) }

func (b Block) Checksum() uint32 { return binary.LittleEndian.Uint32(b[0:4]) }
func (b Block) SetChecksum(v uint32) {
	binary.LittleEndian.PutUint32(b[0:4], v)
}

func (b Block) SequenceNumber() uint32 { return binary.LittleEndian.Uint32(b[4:8]) }
func (b Block) SetSequenceNumber(v uint32) {
	binary.LittleEndian.PutUint32(b[4:8], v)
}

// stripeAndShard packs a 56-bit stripe number into the high 7 bytes and
// the shard id into the low byte, matching the wire format's
// stripe_number_and_shard field.
func (b Block) stripeAndShard() uint64 { return binary.LittleEndian.Uint64(b[8:16]) }
func (b Block) setStripeAndShard(v uint64) {
	binary.LittleEndian.PutUint64(b[8:16], v)
}

func (b Block) StripeNumber() uint64 { return b.stripeAndShard() >> 8 }
func (b Block) ShardID() byte        { return byte(b.stripeAndShard()) }

func (b Block) SetStripeAndShard(stripe uint64, shard byte) {
	b.setStripeAndShard((stripe << 8) | uint64(shard))
}

// Payload returns the 4080-byte payload region.
func (b Block) Payload() []byte { return b[blockHeaderSize:Size] }

// Stamp fills checksum, sequence number and stripe/shard identity, then
// recomputes and writes the checksum. It is the only way a caller should
// finalize a block for write: blocks are never partially mutated.
func (b Block) Stamp(seq uint32, stripe uint64, shard byte) {
	b.SetSequenceNumber(seq)
	b.SetStripeAndShard(stripe, shard)
	b.SetChecksum(CRC32C(b[4:Size], 0))
}

// VolumeHeader is the fixed 4096-byte first block of every volume file:
//
//	offset 0  (32 bytes): magic
//	offset 32 (4 bytes):  version
//	offset 36 (4 bytes):  volume_prefix_id
//	offset 40 (8 bytes):  primary index offset
//	offset 48 (8 bytes):  secondary index offset
//	offset 56 (8 bytes):  tail offset
//	offset 64 (8 bytes):  shard_ids[0..7], one byte each, ascending
//	offset 72 (24 bytes): reserved / vendor-extended
//	offset end-4 (4 bytes): header_crc32c, over bytes [0:end-4)
type VolumeHeader []byte

// NewVolumeHeader allocates a zeroed header.
func NewVolumeHeader() VolumeHeader { return make(VolumeHeader, Size) }

func (h VolumeHeader) Magic() []byte { return h[0:headerMagicSize] }
func (h VolumeHeader) SetMagic(m []byte) {
	copy(h[0:headerMagicSize], m)
}

func (h VolumeHeader) Version() uint32 { return binary.LittleEndian.Uint32(h[32:36]) }
func (h VolumeHeader) SetVersion(v uint32) {
	binary.LittleEndian.PutUint32(h[32:36], v)
}

func (h VolumeHeader) VolumePrefixID() uint32 { return binary.LittleEndian.Uint32(h[36:40]) }
func (h VolumeHeader) SetVolumePrefixID(v uint32) {
	binary.LittleEndian.PutUint32(h[36:40], v)
}

func (h VolumeHeader) PrimaryIndexOffset() uint64 { return binary.LittleEndian.Uint64(h[40:48]) }
func (h VolumeHeader) SetPrimaryIndexOffset(v uint64) {
	binary.LittleEndian.PutUint64(h[40:48], v)
}

func (h VolumeHeader) SecondaryIndexOffset() uint64 { return binary.LittleEndian.Uint64(h[48:56]) }
func (h VolumeHeader) SetSecondaryIndexOffset(v uint64) {
	binary.LittleEndian.PutUint64(h[48:56], v)
}

func (h VolumeHeader) TailOffset() uint64 { return binary.LittleEndian.Uint64(h[56:64]) }
func (h VolumeHeader) SetTailOffset(v uint64) {
	binary.LittleEndian.PutUint64(h[56:64], v)
}

// ShardIDs returns the 8 shard-slot bytes in stripe-position order.
func (h VolumeHeader) ShardIDs() []byte { return h[64:72] }
func (h VolumeHeader) SetShardIDs(ids [shardCount]byte) {
	copy(h[64:72], ids[:])
}

func (h VolumeHeader) Reserved() []byte { return h[72:96] }

func (h VolumeHeader) CRC32C() uint32 { return binary.LittleEndian.Uint32(h[headerCRCOffset:Size]) }
func (h VolumeHeader) SetCRC32C(v uint32) {
	binary.LittleEndian.PutUint32(h[headerCRCOffset:Size], v)
}

// Finalize recomputes and writes header_crc32c over bytes [0:end-4).
func (h VolumeHeader) Finalize() {
	h.SetCRC32C(CRC32C(h[0:headerCRCOffset], 0))
}
