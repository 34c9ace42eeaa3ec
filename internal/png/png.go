package png

import (
	"encoding/binary"
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"
)

// Signature is the fixed 8-byte magic every PNG file starts with.
var Signature = [8]byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

// Png is the in-memory representation of a whole PNG chunk stream: the
// signature followed by an ordered sequence of chunks. Sequence order is the
// on-disk chunk order.
type Png struct {
	chunks []Chunk
}

// FromChunks builds a container directly from a chunk sequence.
func FromChunks(chunks []Chunk) *Png {
	return &Png{chunks: chunks}
}

// Parse splits a complete file buffer into a chunk stream.
//
// After the signature, each record is a 4-byte big-endian payload length
// followed by type, payload, and CRC. The walk must land exactly on the end
// of the buffer; any leftover bytes that cannot form a full record fail with
// ErrTruncatedChunk. A buffer holding only the signature is accepted.
func Parse(b []byte) (*Png, error) {
	if len(b) < len(Signature) || !slices.Equal(b[:len(Signature)], Signature[:]) {
		return nil, fmt.Errorf("%w: first %d bytes are not the PNG magic", ErrBadSignature, len(Signature))
	}

	p := &Png{}
	for offset := len(Signature); offset < len(b); {
		rest := b[offset:]
		if len(rest) < 4 {
			return nil, fmt.Errorf("%w: %d trailing bytes at offset %d", ErrTruncatedChunk, len(rest), offset)
		}

		n := binary.BigEndian.Uint32(rest)
		recordLen := int(n) + 12
		if len(rest) < recordLen {
			return nil, fmt.Errorf("%w: record at offset %d declares %d payload bytes but only %d bytes remain",
				ErrTruncatedChunk, offset, n, len(rest))
		}

		chunk, err := ParseChunk(rest[4:recordLen])
		if err != nil {
			return nil, fmt.Errorf("chunk at offset %d: %w", offset, err)
		}

		p.chunks = append(p.chunks, chunk)
		offset += recordLen
	}

	return p, nil
}

// Chunks returns the chunk sequence in on-disk order.
func (p *Png) Chunks() []Chunk {
	return p.chunks
}

// AppendChunk pushes a chunk onto the end of the sequence. Duplicate types
// are allowed, matching the PNG spec's tolerance for repeated ancillary
// chunks.
func (p *Png) AppendChunk(chunk Chunk) {
	p.chunks = append(p.chunks, chunk)
}

// ChunkByType returns the first chunk whose tag renders to chunkType, or nil
// if there is none. The pointer aliases the container's sequence.
func (p *Png) ChunkByType(chunkType string) *Chunk {
	_, i, ok := lo.FindIndexOf(p.chunks, func(c Chunk) bool {
		return c.Type().String() == chunkType
	})
	if !ok {
		return nil
	}
	return &p.chunks[i]
}

// RemoveFirstChunk removes and returns the first chunk whose tag renders to
// chunkType, preserving the order of the remainder. If no chunk matches, the
// sequence is left untouched and ErrChunkNotFound is returned.
func (p *Png) RemoveFirstChunk(chunkType string) (Chunk, error) {
	chunk, i, ok := lo.FindIndexOf(p.chunks, func(c Chunk) bool {
		return c.Type().String() == chunkType
	})
	if !ok {
		return Chunk{}, fmt.Errorf("%w: no %q chunk in stream", ErrChunkNotFound, chunkType)
	}
	p.chunks = slices.Delete(p.chunks, i, i+1)
	return chunk, nil
}

// Bytes serializes the container back to a complete file buffer: the
// signature, then each chunk record in sequence order with no separators.
func (p *Png) Bytes() []byte {
	out := make([]byte, 0, p.size())
	out = append(out, Signature[:]...)
	for _, chunk := range p.chunks {
		out = append(out, chunk.Bytes()...)
	}
	return out
}

func (p *Png) size() int {
	n := len(Signature)
	for _, chunk := range p.chunks {
		n += int(chunk.Length()) + 12
	}
	return n
}

// String renders every chunk on its own line, for the print command.
func (p *Png) String() string {
	var sb strings.Builder
	for _, chunk := range p.chunks {
		sb.WriteString(chunk.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
