package storage

import (
	"errors"
	"fmt"
	"io"
	"os"

	"go.btindex/internal/logger"
)

// Pager gives random access to fixed size blocks of a single index file.
// Nothing is cached, every call is a fresh positioned read or write.
type Pager struct {
	file *os.File
	path string
	log  *logger.Logger
}

// Create writes a fresh header to path. An existing file is only replaced
// when overwrite is set, otherwise ErrFileExists is returned and the file
// is left alone.
func Create(path string, overwrite bool, log *logger.Logger) (*Pager, error) {
	if _, err := os.Stat(path); err == nil && !overwrite {
		return nil, fmt.Errorf("create %s: %w", path, ErrFileExists)
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o666)
	if err != nil {
		return nil, fmt.Errorf("Unable to create file %s: %w", path, err)
	}

	pager := &Pager{
		file: f,
		path: path,
		log:  log,
	}

	if err := pager.writeHeader(NewHeader()); err != nil {
		f.Close()
		return nil, fmt.Errorf("Failed to write header to index file %s: %w", path, err)
	}

	log.Infof("created index file %s", path)
	return pager, nil
}

// Open only checks that the file carries a prologue of MinHeaderSize bytes
func Open(path string, log *logger.Logger) (*Pager, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0o666)
	if err != nil {
		return nil, fmt.Errorf("Error opening index file: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("Error getting file stats: %w", err)
	}

	if info.Size() < int64(MinHeaderSize) {
		f.Close()
		return nil, fmt.Errorf("open %s: %w (%d bytes)", path, ErrInvalidFormat, info.Size())
	}

	log.Infof("opened index file %s (%d bytes)", path, info.Size())
	return &Pager{
		file: f,
		path: path,
		log:  log,
	}, nil
}

func (pager *Pager) Path() string {
	return pager.path
}

func (pager *Pager) ReadHeader() (*Header, error) {
	buf := make([]byte, HeaderSize)
	n, err := pager.file.ReadAt(buf, 0)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("Error reading header: %w", err)
	}
	return decodeHeader(buf[:n])
}

func (pager *Pager) writeHeader(h *Header) error {
	buf := h.encode()
	n, err := pager.file.WriteAt(buf, 0)
	if err != nil {
		pager.log.Errorf("writeHeader: %v", err)
		return err
	}
	if n != len(buf) {
		return fmt.Errorf("writeHeader: %w (%d of %d)", ErrWriteSizeMismatch, n, len(buf))
	}
	return nil
}

func (pager *Pager) Root() (uint64, error) {
	h, err := pager.ReadHeader()
	if err != nil {
		return InvalidBlock, err
	}
	return h.RootID, nil
}

func (pager *Pager) SetRoot(id uint64) error {
	h, err := pager.ReadHeader()
	if err != nil {
		return err
	}

	h.RootID = id
	pager.log.Debugf("root is now block %d", id)
	return pager.writeHeader(h)
}

// Allocate hands out the next unused block id and persists the bumped
// counter. Ids are never reused.
func (pager *Pager) Allocate() (uint64, error) {
	h, err := pager.ReadHeader()
	if err != nil {
		return InvalidBlock, err
	}

	// A 16 byte prologue has no counter, block 0 is never handed out
	if h.NextBlockID == InvalidBlock {
		h.NextBlockID = 1
	}

	id := h.NextBlockID
	h.NextBlockID++

	if err := pager.writeHeader(h); err != nil {
		return InvalidBlock, err
	}

	pager.log.Debugf("allocated block %d", id)
	return id, nil
}

func (pager *Pager) ReadNode(id uint64) (*Node, error) {
	if id == InvalidBlock {
		return nil, fmt.Errorf("read block %d: %w", id, ErrInvalidBlock)
	}

	buf := make([]byte, BlockSize)
	n, err := pager.file.ReadAt(buf, int64(id)*BlockSize)
	if n < BlockSize {
		if err == nil || errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("read block %d: %w (%d bytes)", id, ErrShortBlock, n)
		}
		return nil, fmt.Errorf("read block %d: %w", id, err)
	}

	node, err := DecodeNode(buf)
	if err != nil {
		return nil, fmt.Errorf("read block %d: %w", id, err)
	}

	if node.ID != id {
		return nil, fmt.Errorf("read block %d: %w (holds node %d)", id, ErrCorruptTree, node.ID)
	}

	return node, nil
}

func (pager *Pager) WriteNode(node *Node) error {
	if node.ID == InvalidBlock {
		return fmt.Errorf("write block %d: %w", node.ID, ErrInvalidBlock)
	}

	buf, err := EncodeNode(node)
	if err != nil {
		return err
	}

	n, err := pager.file.WriteAt(buf, int64(node.ID)*BlockSize)
	if err != nil {
		pager.log.Errorf("WriteNode %d: %v", node.ID, err)
		return fmt.Errorf("write block %d: %w", node.ID, err)
	}

	if n != BlockSize {
		return fmt.Errorf("write block %d: %w (%d bytes)", node.ID, ErrWriteSizeMismatch, n)
	}

	return nil
}

func (pager *Pager) Sync() error {
	return pager.file.Sync()
}

func (pager *Pager) Close() error {
	pager.log.Infof("closing index file %s", pager.path)
	return pager.file.Close()
}
