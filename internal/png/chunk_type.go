package png

import "fmt"

// ChunkType is the 4-byte ASCII tag classifying a PNG chunk.
//
// Each byte carries one property in its case bit (bit 5, value 32): an
// upper-case letter means the bit is clear, lower-case means set. Converting
// a [4]byte directly (ChunkType(b)) skips validation and is only for
// round-tripping bytes that were already checked; parsing goes through
// ChunkTypeFromBytes or ChunkTypeFromString.
type ChunkType [4]byte

const caseBit = 0x20

// ChunkTypeFromBytes validates b as a chunk type tag.
// All four bytes must be ASCII letters (A-Z, a-z).
func ChunkTypeFromBytes(b [4]byte) (ChunkType, error) {
	for i, c := range b {
		if !isAlpha(c) {
			return ChunkType{}, fmt.Errorf("%w: byte %d is 0x%02X, want ASCII letter", ErrInvalidChunkType, i, c)
		}
	}
	return ChunkType(b), nil
}

// ChunkTypeFromString validates s as a chunk type tag.
// s must be exactly 4 bytes long (byte length, not rune count).
func ChunkTypeFromString(s string) (ChunkType, error) {
	if len(s) != 4 {
		return ChunkType{}, fmt.Errorf("%w: %q is %d bytes, want 4", ErrInvalidLength, s, len(s))
	}
	return ChunkTypeFromBytes([4]byte([]byte(s)))
}

// Bytes returns the raw tag bytes.
func (t ChunkType) Bytes() [4]byte {
	return [4]byte(t)
}

// IsCritical reports whether the chunk is critical to displaying the image
// (upper-case first byte). Ancillary chunks have a lower-case first byte.
func (t ChunkType) IsCritical() bool {
	return isUpper(t[0])
}

// IsPublic reports whether the chunk type is defined by the PNG spec or a
// registered public extension (upper-case second byte).
func (t ChunkType) IsPublic() bool {
	return isUpper(t[1])
}

// IsReservedBitValid reports whether the reserved third byte is upper-case,
// as required of all chunk types by the current PNG spec.
func (t ChunkType) IsReservedBitValid() bool {
	return isUpper(t[2])
}

// IsSafeToCopy reports whether an editor that does not recognize the chunk
// may copy it to a modified file (lower-case fourth byte).
func (t ChunkType) IsSafeToCopy() bool {
	return !isUpper(t[3])
}

// IsValid reports whether the tag conforms to the current PNG spec. The
// alphabetic rule is already enforced at construction, so only the reserved
// bit remains to check.
func (t ChunkType) IsValid() bool {
	return t.IsReservedBitValid()
}

func (t ChunkType) String() string {
	return string(t[:])
}

func isUpper(c byte) bool {
	return c&caseBit == 0
}

func isAlpha(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}
