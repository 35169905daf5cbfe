package storage

import (
	"errors"
	"fmt"
)

var (
	// btree
	ErrCorruptTree     = errors.New("btree is corrupt")
	ErrEmptyTree       = errors.New("index is empty")
	ErrNotFound        = errors.New("key not found")
	ErrKeyExists       = errors.New("key already exists")
	ErrStructuralLimit = errors.New("split would cascade past the grandparent")
	// pager
	ErrFileExists        = errors.New("file already exists")
	ErrInvalidFormat     = errors.New("invalid file format")
	ErrShortBlock        = fmt.Errorf("%w: short block", ErrInvalidFormat)
	ErrInvalidBlock      = errors.New("invalid block id")
	ErrWriteSizeMismatch = errors.New("data written does not match block size")
)
