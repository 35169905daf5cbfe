package storage

import (
	"encoding/binary"
	"fmt"
)

// Header occupies the start of block 0, the rest of the block is unused
type Header struct {
	Magic       [8]byte
	RootID      uint64
	NextBlockID uint64
}

var sig = [8]byte{'B', 'T', 'I', 'n', 'd', 'e', 'x', '1'}

const (
	rootOffset int = 8
	nextOffset int = 16
	HeaderSize int = 24
	// Shortest prologue accepted on open
	MinHeaderSize int = 16
)

func NewHeader() *Header {
	return &Header{
		Magic:       sig,
		RootID:      InvalidBlock,
		NextBlockID: 1,
	}
}

func (h *Header) encode() []byte {
	buf := make([]byte, HeaderSize)
	copy(buf[0:rootOffset], h.Magic[:])
	binary.BigEndian.PutUint64(buf[rootOffset:], h.RootID)
	binary.BigEndian.PutUint64(buf[nextOffset:], h.NextBlockID)
	return buf
}

// decodeHeader accepts a prologue of at least MinHeaderSize bytes, missing
// trailing bytes read as zero
func decodeHeader(buf []byte) (*Header, error) {
	if len(buf) < MinHeaderSize {
		return nil, fmt.Errorf("decode header: %w (%d bytes)", ErrInvalidFormat, len(buf))
	}

	full := make([]byte, HeaderSize)
	copy(full, buf)

	h := &Header{
		RootID:      binary.BigEndian.Uint64(full[rootOffset:]),
		NextBlockID: binary.BigEndian.Uint64(full[nextOffset:]),
	}
	copy(h.Magic[:], full[0:rootOffset])
	return h, nil
}

func (h *Header) IsEmpty() bool {
	return h.RootID == InvalidBlock
}
