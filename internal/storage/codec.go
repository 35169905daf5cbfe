package storage

import (
	"encoding/binary"
	"fmt"
)

// Node block layout, all fields big-endian uint64:
//
// | id | parentId | pairs | pairs * (key, value) | MaxChild * child | zero padding |
// | 8B |    8B    |  8B   |      pairs * 16B     |      160B        |   to 512B    |
const (
	idOffset       int = 0
	parentOffset   int = 8
	pairsOffset    int = 16
	nodeHeaderSize int = 24
	pairSize       int = 16
	childSize      int = 8
)

// EncodeNode serialises n into exactly one block
func EncodeNode(n *Node) ([]byte, error) {
	if n.Pairs < 0 || n.Pairs > MaxKey {
		return nil, fmt.Errorf("encode node %d: %w (pairs=%d)", n.ID, ErrInvalidFormat, n.Pairs)
	}

	buf := make([]byte, BlockSize)

	binary.BigEndian.PutUint64(buf[idOffset:], n.ID)
	binary.BigEndian.PutUint64(buf[parentOffset:], n.ParentID)
	binary.BigEndian.PutUint64(buf[pairsOffset:], uint64(n.Pairs))

	off := nodeHeaderSize
	for i := 0; i < n.Pairs; i++ {
		binary.BigEndian.PutUint64(buf[off:], n.Keys[i])
		binary.BigEndian.PutUint64(buf[off+8:], n.Values[i])
		off += pairSize
	}

	for i := 0; i < MaxChild; i++ {
		binary.BigEndian.PutUint64(buf[off:], n.Children[i])
		off += childSize
	}

	return buf, nil
}

// DecodeNode reverses EncodeNode. Key/value slots past pairs are left zero.
func DecodeNode(buf []byte) (*Node, error) {
	if len(buf) < nodeHeaderSize {
		return nil, fmt.Errorf("decode node: %w (%d bytes)", ErrShortBlock, len(buf))
	}

	pairs := binary.BigEndian.Uint64(buf[pairsOffset:])
	if pairs > MaxKey {
		return nil, fmt.Errorf("decode node: %w (pairs=%d)", ErrInvalidFormat, pairs)
	}

	need := nodeHeaderSize + int(pairs)*pairSize + MaxChild*childSize
	if len(buf) < need {
		return nil, fmt.Errorf("decode node: %w (%d of %d bytes)", ErrShortBlock, len(buf), need)
	}

	n := &Node{
		ID:       binary.BigEndian.Uint64(buf[idOffset:]),
		ParentID: binary.BigEndian.Uint64(buf[parentOffset:]),
		Pairs:    int(pairs),
	}

	off := nodeHeaderSize
	for i := 0; i < n.Pairs; i++ {
		n.Keys[i] = binary.BigEndian.Uint64(buf[off:])
		n.Values[i] = binary.BigEndian.Uint64(buf[off+8:])
		off += pairSize
	}

	for i := 0; i < MaxChild; i++ {
		n.Children[i] = binary.BigEndian.Uint64(buf[off:])
		off += childSize
	}

	return n, nil
}
