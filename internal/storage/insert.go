package storage

// Entry point into insertion logic
func (bt *BTree) Insert(key, val uint64) error {
	root, err := bt.pager.Root()
	if err != nil {
		return err
	}

	if root == InvalidBlock {
		return bt.plantRoot(key, val)
	}

	leaf, stack, err := bt.descend(root, key)
	if err != nil {
		return err
	}

	idx, _ := leaf.FindIndex(key)

	if !leaf.IsFull() {
		leaf.InsertPairAt(idx, key, val)
		return bt.pager.WriteNode(leaf)
	}

	// No room left in the leaf so it has to split
	return bt.splitLeaf(leaf, stack, idx, key, val)
}

// First key of an empty tree becomes a single leaf root
func (bt *BTree) plantRoot(key, val uint64) error {
	id, err := bt.pager.Allocate()
	if err != nil {
		return err
	}

	root := NewNode(id, InvalidBlock)
	root.InsertPairAt(0, key, val)

	if err := bt.pager.WriteNode(root); err != nil {
		return err
	}

	return bt.pager.SetRoot(id)
}
