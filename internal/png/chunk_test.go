package png_test

import (
	"bytes"
	"encoding/binary"
	"errors"
	"hash/crc32"
	"testing"

	"github.com/ossyrian/pngme/internal/png"
)

const (
	testMessage    = "This is where your secret message will be!"
	testMessageCRC = 2882656334 // CRC-32/ISO-HDLC over "RuSt" + testMessage
)

// chunkRecord builds the slice ParseChunk consumes: type + data + stored CRC,
// with the length prefix already stripped by the container layer.
func chunkRecord(chunkType string, data []byte, crc uint32) []byte {
	buf := new(bytes.Buffer)
	buf.WriteString(chunkType)
	buf.Write(data)
	binary.Write(buf, binary.BigEndian, crc)
	return buf.Bytes()
}

func mustChunk(t *testing.T, chunkType string, data []byte) png.Chunk {
	t.Helper()

	ct, err := png.ChunkTypeFromString(chunkType)
	if err != nil {
		t.Fatalf("ChunkTypeFromString(%q) failed: %v", chunkType, err)
	}
	return png.NewChunk(ct, data)
}

func TestNewChunk(t *testing.T) {
	chunk := mustChunk(t, "RuSt", []byte(testMessage))

	if got := chunk.Length(); got != 42 {
		t.Errorf("Length() = %d, want 42", got)
	}
	if got := chunk.CRC(); got != testMessageCRC {
		t.Errorf("CRC() = %d, want %d", got, testMessageCRC)
	}
	if got := chunk.Type().String(); got != "RuSt" {
		t.Errorf("Type() = %q, want %q", got, "RuSt")
	}
}

func TestChunkCRCMatchesIndependentComputation(t *testing.T) {
	chunk := mustChunk(t, "teXt", []byte("hidden"))

	want := crc32.ChecksumIEEE(append([]byte("teXt"), []byte("hidden")...))
	if got := chunk.CRC(); got != want {
		t.Errorf("CRC() = %d, want %d", got, want)
	}
}

func TestParseChunk(t *testing.T) {
	tests := []struct {
		name    string
		input   []byte
		wantErr error
	}{
		{
			name:  "valid chunk",
			input: chunkRecord("RuSt", []byte(testMessage), testMessageCRC),
		},
		{
			name:  "empty payload",
			input: chunkRecord("ruSt", nil, crc32.ChecksumIEEE([]byte("ruSt"))),
		},
		{
			name:    "wrong stored CRC",
			input:   chunkRecord("RuSt", []byte(testMessage), testMessageCRC+1),
			wantErr: png.ErrChecksumMismatch,
		},
		{
			// the type check runs before the checksum check, so a bad tag
			// wins even with a matching CRC
			name:    "invalid type with matching CRC",
			input:   chunkRecord("Ru1t", []byte("abc"), crc32.ChecksumIEEE([]byte("Ru1tabc"))),
			wantErr: png.ErrInvalidChunkType,
		},
		{
			name:    "invalid type with garbage CRC",
			input:   chunkRecord("Ru1t", []byte("abc"), 0xDEADBEEF),
			wantErr: png.ErrInvalidChunkType,
		},
		{
			name:    "under 8 bytes",
			input:   []byte{'R', 'u', 'S', 't', 0x00},
			wantErr: png.ErrTruncatedChunk,
		},
		{
			name:    "empty input",
			input:   []byte{},
			wantErr: png.ErrTruncatedChunk,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := png.ParseChunk(tt.input)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ParseChunk() error = %v, want %v", err, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Fatalf("ParseChunk() failed: %v", err)
			}
			if want := tt.input[:4]; got.Type().String() != string(want) {
				t.Errorf("Type() = %q, want %q", got.Type(), want)
			}
			if want := tt.input[4 : len(tt.input)-4]; !bytes.Equal(got.Data(), want) {
				t.Errorf("Data() = %v, want %v", got.Data(), want)
			}
		})
	}
}

func TestChunkRoundTrip(t *testing.T) {
	chunk := mustChunk(t, "RuSt", []byte(testMessage))

	wire := chunk.Bytes()
	if want := int(chunk.Length()) + 12; len(wire) != want {
		t.Fatalf("Bytes() length = %d, want %d", len(wire), want)
	}
	if got := binary.BigEndian.Uint32(wire); got != chunk.Length() {
		t.Errorf("length prefix = %d, want %d", got, chunk.Length())
	}
	if got := binary.BigEndian.Uint32(wire[len(wire)-4:]); got != chunk.CRC() {
		t.Errorf("CRC suffix = %d, want %d", got, chunk.CRC())
	}

	// the container strips the length prefix before chunk parsing
	reparsed, err := png.ParseChunk(wire[4:])
	if err != nil {
		t.Fatalf("ParseChunk(Bytes()[4:]) failed: %v", err)
	}
	if reparsed.Type() != chunk.Type() || !bytes.Equal(reparsed.Data(), chunk.Data()) {
		t.Errorf("round trip = %v, want %v", reparsed, chunk)
	}
}

func TestParseChunkFlippedPayloadByte(t *testing.T) {
	chunk := mustChunk(t, "RuSt", []byte(testMessage))
	wire := chunk.Bytes()

	for i := 8; i < len(wire)-4; i++ {
		corrupted := bytes.Clone(wire)
		corrupted[i] ^= 0xFF

		_, err := png.ParseChunk(corrupted[4:])
		if !errors.Is(err, png.ErrChecksumMismatch) {
			t.Fatalf("flipping byte %d: error = %v, want %v", i, err, png.ErrChecksumMismatch)
		}
	}
}

func TestChunkDataAsString(t *testing.T) {
	chunk := mustChunk(t, "RuSt", []byte(testMessage))

	got, err := chunk.DataAsString()
	if err != nil {
		t.Fatalf("DataAsString() failed: %v", err)
	}
	if got != testMessage {
		t.Errorf("DataAsString() = %q, want %q", got, testMessage)
	}
}

func TestChunkDataAsStringInvalidUTF8(t *testing.T) {
	chunk := mustChunk(t, "RuSt", []byte{0xFF, 0xFE, 0xFD})

	if _, err := chunk.DataAsString(); !errors.Is(err, png.ErrInvalidUTF8) {
		t.Errorf("DataAsString() error = %v, want %v", err, png.ErrInvalidUTF8)
	}
}

func TestChunkString(t *testing.T) {
	chunk := mustChunk(t, "RuSt", []byte("hi"))

	if got, want := chunk.String(), "[RuSt] [104 105]"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
