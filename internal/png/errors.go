package png

import "errors"

// Every failure in this package wraps one of these sentinels, so callers can
// classify errors with errors.Is regardless of the context added at the
// failure site.
var (
	// ErrBadSignature indicates the input does not start with the PNG magic bytes.
	ErrBadSignature = errors.New("bad PNG signature")

	// ErrTruncatedChunk indicates a declared chunk length exceeds the remaining
	// buffer, or trailing bytes do not form a complete record.
	ErrTruncatedChunk = errors.New("truncated chunk")

	// ErrInvalidChunkType indicates a 4-byte tag contains a non-alphabetic byte.
	ErrInvalidChunkType = errors.New("invalid chunk type")

	// ErrInvalidLength indicates a textual chunk type is not exactly 4 bytes.
	ErrInvalidLength = errors.New("invalid chunk type length")

	// ErrChecksumMismatch indicates the recomputed CRC-32 disagrees with the
	// CRC stored in the chunk record.
	ErrChecksumMismatch = errors.New("checksum mismatch")

	// ErrInvalidUTF8 indicates a chunk payload requested as text is not valid UTF-8.
	ErrInvalidUTF8 = errors.New("payload is not valid UTF-8")

	// ErrChunkNotFound indicates no chunk with the requested type exists.
	ErrChunkNotFound = errors.New("chunk not found")
)
