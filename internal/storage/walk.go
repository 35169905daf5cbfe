package storage

import "fmt"

// Visitor receives an in-order walk of the tree. EnterNode is called
// before any pair of the node; slot is the node's child index in its
// parent, -1 for the root.
type Visitor interface {
	EnterNode(node *Node, depth, slot int) error
	Pair(key, value uint64, depth int) error
}

func (bt *BTree) Walk(v Visitor) error {
	root, err := bt.pager.Root()
	if err != nil {
		return err
	}

	if root == InvalidBlock {
		return ErrEmptyTree
	}

	return bt.walk(v, root, 0, -1)
}

func (bt *BTree) walk(v Visitor, id uint64, depth, slot int) error {
	if depth >= maxDepth {
		return fmt.Errorf("walk: %w (deeper than %d)", ErrCorruptTree, maxDepth)
	}

	node, err := bt.pager.ReadNode(id)
	if err != nil {
		return err
	}

	if err := v.EnterNode(node, depth, slot); err != nil {
		return err
	}

	for i := 0; i < node.Pairs; i++ {
		if node.Children[i] != InvalidBlock {
			if err := bt.walk(v, node.Children[i], depth+1, i); err != nil {
				return err
			}
		}

		if err := v.Pair(node.Keys[i], node.Values[i], depth); err != nil {
			return err
		}
	}

	if last := node.Children[node.Pairs]; last != InvalidBlock {
		return bt.walk(v, last, depth+1, node.Pairs)
	}
	return nil
}
