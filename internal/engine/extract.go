package engine

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	"go.btindex/internal/storage"
	"golang.org/x/crypto/blake2b"
)

// Extract writes every pair as a "key,value" line in ascending key order
// and returns how many were written
func (idx *Index) Extract(w io.Writer) (int, error) {
	empty, err := idx.tree.IsEmpty()
	if err != nil {
		return 0, err
	}
	if empty {
		return 0, storage.ErrEmptyTree
	}

	bw := bufio.NewWriter(w)
	count := 0

	c := idx.Cursor()
	for c.Next() {
		if _, err := fmt.Fprintf(bw, "%d,%d\n", c.Key(), c.Value()); err != nil {
			return count, err
		}
		count++
	}

	if err := c.Err(); err != nil {
		return count, err
	}

	idx.log.Infof("extracted %d pairs from %s", count, idx.Path())
	return count, bw.Flush()
}

// Digest is a BLAKE2b-256 over the ordered pairs. It only depends on the
// contents, so indexes filled in a different order hash the same.
func (idx *Index) Digest() ([]byte, error) {
	h, err := blake2b.New256(nil)
	if err != nil {
		return nil, err
	}

	var buf [16]byte
	c := idx.Cursor()
	for c.Next() {
		binary.BigEndian.PutUint64(buf[0:8], c.Key())
		binary.BigEndian.PutUint64(buf[8:16], c.Value())
		h.Write(buf[:])
	}

	if err := c.Err(); err != nil {
		return nil, err
	}

	return h.Sum(nil), nil
}
