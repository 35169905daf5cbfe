package storage

import (
	"fmt"
	"slices"
)

// overflow holds the contents of a full node plus the one entry that no
// longer fits, while it is being split in two
type overflow struct {
	n        int
	keys     [MaxKey + 1]uint64
	values   [MaxKey + 1]uint64
	children [MaxChild + 1]uint64
}

func overflowFrom(node *Node) *overflow {
	o := &overflow{n: node.Pairs}
	copy(o.keys[:], node.Keys[:node.Pairs])
	copy(o.values[:], node.Values[:node.Pairs])
	copy(o.children[:], node.Children[:])
	return o
}

func (o *overflow) insertPair(i int, key, val uint64) {
	if o.n >= len(o.keys) {
		panic(fmt.Sprintf("overflow.insertPair: already holds %d pairs", o.n))
	}

	if i < 0 || i > o.n {
		panic(fmt.Sprintf("overflow.insertPair: index %d out of range (%d)", i, o.n))
	}

	copy(o.keys[i+1:o.n+1], o.keys[i:o.n])
	copy(o.values[i+1:o.n+1], o.values[i:o.n])
	o.keys[i] = key
	o.values[i] = val
	o.n++
}

func (o *overflow) insertSeparator(i int, key, val, left, right uint64) {
	if o.n+2 > len(o.children) {
		panic("overflow.insertSeparator: max children exceeded")
	}

	copy(o.children[i+2:o.n+2], o.children[i+1:o.n+1])
	o.children[i] = left
	o.children[i+1] = right
	o.insertPair(i, key, val)
}

// halves splits around the median entry at n/2. The left node takes the
// entries before it, the right node the entries after it.
func (o *overflow) halves(leftID, rightID, parentID uint64) (*Node, *Node, uint64, uint64) {
	mid := o.n / 2

	left := NewNode(leftID, parentID)
	left.Pairs = copy(left.Keys[:], o.keys[:mid])
	copy(left.Values[:], o.values[:mid])
	copy(left.Children[:], o.children[:mid+1])

	right := NewNode(rightID, parentID)
	right.Pairs = copy(right.Keys[:], o.keys[mid+1:o.n])
	copy(right.Values[:], o.values[mid+1:o.n])
	copy(right.Children[:], o.children[mid+1:o.n+1])

	return left, right, o.keys[mid], o.values[mid]
}

// splitLeaf replaces a full leaf with two freshly allocated leaves and
// promotes the median. The old leaf block is left behind unreferenced.
func (bt *BTree) splitLeaf(leaf *Node, stack *ParentStack, idx int, key, val uint64) error {
	parent, pIdx, hasParent, err := bt.parentOf(leaf, stack)
	if err != nil {
		return err
	}

	// The split may climb two levels at most. Refuse before anything is
	// written when it would need a third.
	var grand *Node
	var gIdx int
	hasGrand := false

	if hasParent && parent.IsFull() {
		grand, gIdx, hasGrand, err = bt.parentOf(parent, stack)
		if err != nil {
			return err
		}

		if hasGrand && grand.IsFull() {
			bt.log.Warnf("insert %d: leaf %d, parent %d and grandparent %d are all full, key not inserted",
				key, leaf.ID, parent.ID, grand.ID)
			return fmt.Errorf("insert %d: %w", key, ErrStructuralLimit)
		}
	}

	ov := overflowFrom(leaf)
	ov.insertPair(idx, key, val)

	leftID, err := bt.pager.Allocate()
	if err != nil {
		return err
	}

	rightID, err := bt.pager.Allocate()
	if err != nil {
		return err
	}

	left, right, medKey, medVal := ov.halves(leftID, rightID, leaf.ParentID)
	bt.log.Debugf("split leaf %d into %d and %d around key %d", leaf.ID, leftID, rightID, medKey)

	// No parent means we need to create a new root node
	if !hasParent {
		return bt.growRoot(medKey, medVal, left, right)
	}

	if !parent.IsFull() {
		parent.InsertSeparatorAt(pIdx, medKey, medVal, left.ID, right.ID)
		return bt.writeNodes(left, right, parent)
	}

	return bt.splitParent(parent, pIdx, grand, gIdx, hasGrand, medKey, medVal, left, right)
}

// splitParent absorbs a promoted median into a full internal node by
// splitting it. The lower half keeps the node's block, the upper half gets a
// new one, and the next median goes to a new root or to the grandparent,
// which the caller has already checked has room.
func (bt *BTree) splitParent(
	parent *Node,
	pIdx int,
	grand *Node,
	gIdx int,
	hasGrand bool,
	medKey, medVal uint64,
	left, right *Node,
) error {
	ov := overflowFrom(parent)
	ov.insertSeparator(pIdx, medKey, medVal, left.ID, right.ID)

	siblingID, err := bt.pager.Allocate()
	if err != nil {
		return err
	}

	lower, upper, upKey, upVal := ov.halves(parent.ID, siblingID, parent.ParentID)
	bt.log.Debugf("split internal %d, new sibling %d, promoting key %d", parent.ID, siblingID, upKey)

	// The new leaves hang off whichever half now links them
	for _, child := range []*Node{left, right} {
		child.ParentID = lower.ID
		if slices.Contains(upper.ChildIDs(), child.ID) {
			child.ParentID = upper.ID
		}
	}

	if err := bt.writeNodes(left, right); err != nil {
		return err
	}

	if err := bt.rehome(upper, left.ID, right.ID); err != nil {
		return err
	}

	if !hasGrand {
		return bt.growRoot(upKey, upVal, lower, upper)
	}

	grand.InsertSeparatorAt(gIdx, upKey, upVal, lower.ID, upper.ID)
	return bt.writeNodes(lower, upper, grand)
}

// growRoot puts a single separator above left and right and makes it the root
func (bt *BTree) growRoot(key, val uint64, left, right *Node) error {
	id, err := bt.pager.Allocate()
	if err != nil {
		return err
	}

	root := NewNode(id, InvalidBlock)
	root.InsertSeparatorAt(0, key, val, left.ID, right.ID)

	left.ParentID = id
	right.ParentID = id

	if err := bt.writeNodes(left, right, root); err != nil {
		return err
	}

	bt.log.Debugf("grew new root %d over %d and %d", id, left.ID, right.ID)
	return bt.pager.SetRoot(id)
}

// rehome points the children of node back at it after they moved there in
// a split. Ids in skip were written with the right parent already.
func (bt *BTree) rehome(node *Node, skip ...uint64) error {
	for _, id := range node.ChildIDs() {
		if slices.Contains(skip, id) {
			continue
		}

		child, err := bt.pager.ReadNode(id)
		if err != nil {
			return err
		}

		if child.ParentID == node.ID {
			continue
		}

		child.ParentID = node.ID
		if err := bt.pager.WriteNode(child); err != nil {
			return err
		}
	}
	return nil
}
