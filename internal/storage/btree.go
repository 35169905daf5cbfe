package storage

import (
	"fmt"

	"go.btindex/internal/logger"
)

// B-tree - each block after the header is a node. Keys and values live in
// every node, not only in the leaves.

// Deeper than this can only mean a cycle in the child pointers
const maxDepth = 64

type BTree struct {
	pager *Pager
	log   *logger.Logger
}

func NewBTree(pager *Pager, log *logger.Logger) *BTree {
	return &BTree{
		pager: pager,
		log:   log,
	}
}

func (bt *BTree) Pager() *Pager {
	return bt.pager
}

func (bt *BTree) IsEmpty() (bool, error) {
	root, err := bt.pager.Root()
	if err != nil {
		return false, err
	}
	return root == InvalidBlock, nil
}

// Search returns ErrEmptyTree before the first insert and ErrNotFound when
// the key is absent
func (bt *BTree) Search(key uint64) (uint64, error) {
	curr, err := bt.pager.Root()
	if err != nil {
		return 0, err
	}

	if curr == InvalidBlock {
		return 0, ErrEmptyTree
	}

	for depth := 0; depth < maxDepth; depth++ {
		node, err := bt.pager.ReadNode(curr)
		if err != nil {
			return 0, err
		}

		idx, found := node.FindIndex(key)
		if found {
			return node.Values[idx], nil
		}

		// Leaves have no children so this also covers the leaf case
		if node.Children[idx] == InvalidBlock {
			return 0, ErrNotFound
		}

		curr = node.Children[idx]
	}

	return 0, fmt.Errorf("search %d: %w (deeper than %d)", key, ErrCorruptTree, maxDepth)
}
