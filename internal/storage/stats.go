package storage

import (
	"errors"
	"fmt"
)

type Stats struct {
	RootID      uint64
	NextBlockID uint64
	Height      int
	Nodes       int
	Leaves      int
	Pairs       int
}

type statsVisitor struct {
	stats *Stats
}

func (sv *statsVisitor) EnterNode(node *Node, depth, slot int) error {
	sv.stats.Nodes++
	if node.IsLeaf() {
		sv.stats.Leaves++
	}
	if depth+1 > sv.stats.Height {
		sv.stats.Height = depth + 1
	}
	return nil
}

func (sv *statsVisitor) Pair(key, value uint64, depth int) error {
	sv.stats.Pairs++
	return nil
}

// Stats of an empty tree only carry the header fields
func (bt *BTree) Stats() (*Stats, error) {
	h, err := bt.pager.ReadHeader()
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		RootID:      h.RootID,
		NextBlockID: h.NextBlockID,
	}

	if h.IsEmpty() {
		return stats, nil
	}

	if err := bt.Walk(&statsVisitor{stats: stats}); err != nil {
		return nil, err
	}
	return stats, nil
}

// verifyVisitor checks ordering, parent links and leaf depth as it walks
type verifyVisitor struct {
	path      []uint64
	last      uint64
	seen      bool
	leafDepth int
}

func (vv *verifyVisitor) EnterNode(node *Node, depth, slot int) error {
	vv.path = append(vv.path[:depth], node.ID)

	var want uint64 = InvalidBlock
	if depth > 0 {
		want = vv.path[depth-1]
	}

	if node.ParentID != want {
		return fmt.Errorf("node %d: %w (parent %d, linked from %d)", node.ID, ErrCorruptTree, node.ParentID, want)
	}

	if node.Pairs == 0 {
		return fmt.Errorf("node %d: %w (no pairs)", node.ID, ErrCorruptTree)
	}

	if !node.IsLeaf() {
		for i, child := range node.Children[:node.Pairs+1] {
			if child == InvalidBlock {
				return fmt.Errorf("node %d: %w (missing child %d)", node.ID, ErrCorruptTree, i)
			}
		}
		return nil
	}

	if vv.leafDepth == 0 {
		vv.leafDepth = depth + 1
	} else if vv.leafDepth != depth+1 {
		return fmt.Errorf("leaf %d: %w (depth %d, expected %d)", node.ID, ErrCorruptTree, depth+1, vv.leafDepth)
	}
	return nil
}

func (vv *verifyVisitor) Pair(key, value uint64, depth int) error {
	if vv.seen && key <= vv.last {
		return fmt.Errorf("key %d after %d: %w (out of order)", key, vv.last, ErrCorruptTree)
	}
	vv.last = key
	vv.seen = true
	return nil
}

// Verify walks the whole tree and reports the first broken invariant.
// An empty tree is valid.
func (bt *BTree) Verify() error {
	err := bt.Walk(&verifyVisitor{})
	if errors.Is(err, ErrEmptyTree) {
		return nil
	}
	return err
}
