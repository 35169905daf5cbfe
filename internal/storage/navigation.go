package storage

import "fmt"

// A node we passed through on the way down, and which of its child slots we took
type Parent struct {
	blockID uint64
	index   int
}

// Stack to push parents as we descend allowing us to propagate splits up the tree
type ParentStack struct {
	items []Parent
}

func (s *ParentStack) IsEmpty() bool {
	return len(s.items) == 0
}

func (s *ParentStack) Push(p Parent) {
	s.items = append(s.items, p)
}

func (s *ParentStack) Pop() (Parent, bool) {
	if !s.IsEmpty() {
		parent := s.items[len(s.items)-1]
		s.items = s.items[:len(s.items)-1]
		return parent, true
	}
	return Parent{}, false
}

// descend walks from the root to the leaf where key belongs, recording the
// path. Meeting key on the way is ErrKeyExists.
func (bt *BTree) descend(root, key uint64) (*Node, *ParentStack, error) {
	curr := root
	stack := &ParentStack{}

	for depth := 0; depth < maxDepth; depth++ {
		node, err := bt.pager.ReadNode(curr)
		if err != nil {
			return nil, nil, err
		}

		idx, found := node.FindIndex(key)
		if found {
			return nil, nil, fmt.Errorf("insert %d: %w", key, ErrKeyExists)
		}

		if node.IsLeaf() {
			return node, stack, nil
		}

		if node.Children[idx] == InvalidBlock {
			return nil, nil, fmt.Errorf("node %d: %w (missing child %d)", node.ID, ErrCorruptTree, idx)
		}

		stack.Push(Parent{
			blockID: curr,
			index:   idx,
		})
		curr = node.Children[idx]
	}

	return nil, nil, fmt.Errorf("descend: %w (deeper than %d)", ErrCorruptTree, maxDepth)
}

// parentOf reads the node at the top of the stack and checks that it really
// is the parent of child
func (bt *BTree) parentOf(child *Node, stack *ParentStack) (*Node, int, bool, error) {
	p, ok := stack.Pop()
	if !ok {
		if !child.IsRoot() {
			return nil, 0, false, fmt.Errorf("node %d: %w (parent %d not on path)", child.ID, ErrCorruptTree, child.ParentID)
		}
		return nil, 0, false, nil
	}

	parent, err := bt.pager.ReadNode(p.blockID)
	if err != nil {
		return nil, 0, false, err
	}

	if child.ParentID != parent.ID || parent.Children[p.index] != child.ID {
		return nil, 0, false, fmt.Errorf("node %d: %w (parent %d does not link it)", child.ID, ErrCorruptTree, parent.ID)
	}

	return parent, p.index, true, nil
}
