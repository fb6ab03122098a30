package solido

import (
	"encoding/binary"
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// ByteReader decodes the fixed-width little-endian layout the Solido account
// is persisted in. Reads past the end of the buffer return the zero value
// rather than panicking; callers that need to detect truncation check
// Remaining() or Err() after a batch of reads.
type ByteReader struct {
	data   []byte
	offset int
	err    error
}

func NewByteReader(data []byte) *ByteReader {
	return &ByteReader{data: data}
}

// DumpBytes returns a hex dump of the next n bytes without advancing the offset.
func (br *ByteReader) DumpBytes(n int) string {
	if br.offset+n > len(br.data) {
		n = len(br.data) - br.offset
	}
	if n <= 0 {
		return "<no bytes>"
	}
	return fmt.Sprintf("offset=%d bytes=%x", br.offset, br.data[br.offset:br.offset+n])
}

func (br *ByteReader) GetOffset() int {
	return br.offset
}

func (br *ByteReader) Remaining() uint32 {
	if br.offset > len(br.data) {
		return 0
	}
	return uint32(len(br.data) - br.offset)
}

// Err returns the first short-read error encountered, if any.
func (br *ByteReader) Err() error {
	return br.err
}

func (br *ByteReader) short(n int) bool {
	if br.offset+n > len(br.data) {
		if br.err == nil {
			br.err = fmt.Errorf("short read: need %d bytes at offset %d, have %d", n, br.offset, len(br.data)-br.offset)
		}
		return true
	}
	return false
}

func (br *ByteReader) ReadU8() uint8 {
	if br.short(1) {
		return 0
	}
	val := br.data[br.offset]
	br.offset++
	return val
}

func (br *ByteReader) ReadBool() bool {
	return br.ReadU8() != 0
}

func (br *ByteReader) ReadU16() uint16 {
	if br.short(2) {
		return 0
	}
	val := binary.LittleEndian.Uint16(br.data[br.offset:])
	br.offset += 2
	return val
}

func (br *ByteReader) ReadU32() uint32 {
	if br.short(4) {
		return 0
	}
	val := binary.LittleEndian.Uint32(br.data[br.offset:])
	br.offset += 4
	return val
}

func (br *ByteReader) ReadU64() uint64 {
	if br.short(8) {
		return 0
	}
	val := binary.LittleEndian.Uint64(br.data[br.offset:])
	br.offset += 8
	return val
}

func (br *ByteReader) ReadPubkey() solana.PublicKey {
	if br.short(32) {
		return solana.PublicKey{}
	}
	var pk solana.PublicKey
	copy(pk[:], br.data[br.offset:br.offset+32])
	br.offset += 32
	return pk
}

// ReadBytes reads exactly n raw bytes.
func (br *ByteReader) ReadBytes(n int) []byte {
	if br.short(n) {
		return make([]byte, n)
	}
	val := make([]byte, n)
	copy(val, br.data[br.offset:br.offset+n])
	br.offset += n
	return val
}
