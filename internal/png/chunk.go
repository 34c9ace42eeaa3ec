package png

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"unicode/utf8"
)

// Chunk is one type-tagged, CRC-protected record in a PNG chunk stream.
// The payload is opaque to this package.
type Chunk struct {
	chunkType ChunkType
	data      []byte
}

// NewChunk builds a chunk from an already-validated type and a payload.
// The chunk takes ownership of data.
func NewChunk(chunkType ChunkType, data []byte) Chunk {
	return Chunk{chunkType: chunkType, data: data}
}

// ParseChunk parses one chunk record whose 4-byte length prefix has already
// been stripped by the container: b is type (4) + payload + stored CRC (4).
//
// The type is validated before the checksum, so a malformed tag is reported
// as ErrInvalidChunkType even if the stored CRC happens to match.
func ParseChunk(b []byte) (Chunk, error) {
	if len(b) < 8 {
		return Chunk{}, fmt.Errorf("%w: record is %d bytes, want at least 8", ErrTruncatedChunk, len(b))
	}

	chunkType, err := ChunkTypeFromBytes([4]byte(b[:4]))
	if err != nil {
		return Chunk{}, err
	}

	data := make([]byte, len(b)-8)
	copy(data, b[4:len(b)-4])

	chunk := NewChunk(chunkType, data)
	stored := binary.BigEndian.Uint32(b[len(b)-4:])
	if got := chunk.CRC(); got != stored {
		return Chunk{}, fmt.Errorf("%w: computed 0x%08X, stored 0x%08X", ErrChecksumMismatch, got, stored)
	}

	return chunk, nil
}

// Length returns the payload byte count.
func (c Chunk) Length() uint32 {
	return uint32(len(c.data))
}

// Type returns the chunk's type tag.
func (c Chunk) Type() ChunkType {
	return c.chunkType
}

// Data returns the raw payload.
func (c Chunk) Data() []byte {
	return c.data
}

// CRC computes the CRC-32/ISO-HDLC checksum over the type bytes followed by
// the payload. It is recomputed on every call rather than cached.
func (c Chunk) CRC() uint32 {
	h := crc32.NewIEEE()
	h.Write(c.chunkType[:])
	h.Write(c.data)
	return h.Sum32()
}

// DataAsString returns the payload as text.
func (c Chunk) DataAsString() (string, error) {
	if !utf8.Valid(c.data) {
		return "", fmt.Errorf("%w: chunk %s", ErrInvalidUTF8, c.chunkType)
	}
	return string(c.data), nil
}

// Bytes serializes the chunk to its on-disk record: big-endian length,
// type, payload, big-endian CRC.
func (c Chunk) Bytes() []byte {
	out := make([]byte, 0, len(c.data)+12)
	out = binary.BigEndian.AppendUint32(out, c.Length())
	out = append(out, c.chunkType[:]...)
	out = append(out, c.data...)
	out = binary.BigEndian.AppendUint32(out, c.CRC())
	return out
}

// String renders the chunk for diagnostics; the output is not parseable.
func (c Chunk) String() string {
	return fmt.Sprintf("[%s] %v", c.chunkType, c.data)
}
