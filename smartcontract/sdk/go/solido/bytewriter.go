package solido

import (
	"encoding/binary"

	"github.com/gagliardetto/solana-go"
)

// ByteWriter is the symmetric counterpart of ByteReader: it produces the same
// fixed-width little-endian layout the runtime expects the Solido account to
// be persisted in, so Serialize-then-Deserialize round-trips exactly.
type ByteWriter struct {
	buf []byte
}

// NewByteWriter preallocates a buffer of size bytes; size is normally the
// exact required layout size so the writer never has to grow.
func NewByteWriter(size int) *ByteWriter {
	return &ByteWriter{buf: make([]byte, 0, size)}
}

func (bw *ByteWriter) Bytes() []byte {
	return bw.buf
}

func (bw *ByteWriter) WriteU8(v uint8) {
	bw.buf = append(bw.buf, v)
}

func (bw *ByteWriter) WriteBool(v bool) {
	if v {
		bw.WriteU8(1)
	} else {
		bw.WriteU8(0)
	}
}

func (bw *ByteWriter) WriteU16(v uint16) {
	var tmp [2]byte
	binary.LittleEndian.PutUint16(tmp[:], v)
	bw.buf = append(bw.buf, tmp[:]...)
}

func (bw *ByteWriter) WriteU32(v uint32) {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	bw.buf = append(bw.buf, tmp[:]...)
}

func (bw *ByteWriter) WriteU64(v uint64) {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], v)
	bw.buf = append(bw.buf, tmp[:]...)
}

func (bw *ByteWriter) WritePubkey(pk solana.PublicKey) {
	bw.buf = append(bw.buf, pk[:]...)
}

func (bw *ByteWriter) WriteBytes(b []byte) {
	bw.buf = append(bw.buf, b...)
}

// Pad appends n zero bytes, used to fill unoccupied AccountMap slots.
func (bw *ByteWriter) Pad(n int) {
	for i := 0; i < n; i++ {
		bw.buf = append(bw.buf, 0)
	}
}
