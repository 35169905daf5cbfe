package engine

import (
	"errors"

	"go.btindex/internal/logger"
	"go.btindex/internal/storage"
)

type Index struct {
	tree *storage.BTree
	log  *logger.Logger
	sync bool
}

func (idx *Index) Path() string {
	return idx.tree.Pager().Path()
}

// Insert returns storage.ErrKeyExists for a key already present, the index
// is left untouched in that case
func (idx *Index) Insert(key, val uint64) error {
	err := idx.tree.Insert(key, val)
	switch {
	case err == nil:
		idx.log.Debugf("inserted key=%d value=%d", key, val)
	case errors.Is(err, storage.ErrKeyExists):
		idx.log.Infof("rejected duplicate key %d", key)
	default:
		idx.log.Errorf("insert %d: %v", key, err)
	}
	return err
}

func (idx *Index) IsEmpty() (bool, error) {
	return idx.tree.IsEmpty()
}

// Search returns storage.ErrEmptyTree or storage.ErrNotFound when there is
// nothing to return
func (idx *Index) Search(key uint64) (uint64, error) {
	return idx.tree.Search(key)
}

// Cursor iterates the pairs in ascending key order. Each call starts a new
// pass over the index.
func (idx *Index) Cursor() *storage.Cursor {
	return idx.tree.Cursor()
}

func (idx *Index) Stats() (*storage.Stats, error) {
	return idx.tree.Stats()
}

func (idx *Index) Verify() error {
	return idx.tree.Verify()
}

func (idx *Index) Close() error {
	if idx.sync {
		if err := idx.tree.Pager().Sync(); err != nil {
			idx.log.Errorf("sync %s: %v", idx.Path(), err)
		}
	}
	return idx.tree.Close()
}
