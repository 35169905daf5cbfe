package engine

import (
	"go.btindex/internal/logger"
	"go.btindex/internal/storage"
)

type Options struct {
	Log *logger.Logger
	// Replace an existing file on Create instead of failing with ErrFileExists
	Overwrite   bool
	SyncOnClose bool
}

func (o Options) logger() *logger.Logger {
	if o.Log == nil {
		return logger.Discard()
	}
	return o.Log
}

// Create makes a new empty index at path
func Create(path string, opts Options) (*Index, error) {
	log := opts.logger()

	pager, err := storage.Create(path, opts.Overwrite, log)
	if err != nil {
		return nil, err
	}

	return newIndex(pager, opts, log), nil
}

// Open attaches to an existing index. A missing file is reported with an
// error wrapping os.ErrNotExist.
func Open(path string, opts Options) (*Index, error) {
	log := opts.logger()

	pager, err := storage.Open(path, log)
	if err != nil {
		return nil, err
	}

	return newIndex(pager, opts, log), nil
}

func newIndex(pager *storage.Pager, opts Options, log *logger.Logger) *Index {
	return &Index{
		tree: storage.NewBTree(pager, log),
		log:  log,
		sync: opts.SyncOnClose,
	}
}
