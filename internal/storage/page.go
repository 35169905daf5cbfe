package storage

import "fmt"

const BlockSize = 512

const (
	MaxKey   = 19
	MaxChild = MaxKey + 1
)

// Block 0 holds the header, so its id doubles as "no parent" / "no child"
const InvalidBlock uint64 = 0

// Node is one B-tree vertex, stored in the block whose number equals ID.
// Only the first Pairs key/value slots are meaningful and they are kept
// sorted by key. A non-leaf node uses Children[0..Pairs].
type Node struct {
	ID       uint64
	ParentID uint64
	Pairs    int
	Keys     [MaxKey]uint64
	Values   [MaxKey]uint64
	Children [MaxChild]uint64
}

func NewNode(id, parentID uint64) *Node {
	return &Node{
		ID:       id,
		ParentID: parentID,
	}
}

func (n *Node) IsLeaf() bool {
	return n.Children[0] == InvalidBlock
}

func (n *Node) IsRoot() bool {
	return n.ParentID == InvalidBlock
}

func (n *Node) IsFull() bool {
	return n.Pairs >= MaxKey
}

// FindIndex scans the keys in ascending order and returns the first slot
// whose key is >= key, and whether that slot holds key exactly.
// Returns Pairs when key is larger than every stored key.
func (n *Node) FindIndex(key uint64) (int, bool) {
	for i := 0; i < n.Pairs; i++ {
		if key <= n.Keys[i] {
			return i, key == n.Keys[i]
		}
	}
	return n.Pairs, false
}

// InsertPairAt opens a gap at slot i and stores the pair there.
func (n *Node) InsertPairAt(i int, key, val uint64) {
	if n.Pairs >= MaxKey {
		panic(fmt.Sprintf("InsertPairAt: node %d already holds %d pairs", n.ID, n.Pairs))
	}

	if i < 0 || i > n.Pairs {
		panic(fmt.Sprintf("InsertPairAt: index %d out of range (%d)", i, n.Pairs))
	}

	copy(n.Keys[i+1:n.Pairs+1], n.Keys[i:n.Pairs])
	copy(n.Values[i+1:n.Pairs+1], n.Values[i:n.Pairs])

	n.Keys[i] = key
	n.Values[i] = val
	n.Pairs++
}

// InsertSeparatorAt stores a promoted pair at slot i with left as the child
// before it and right as the child after it. Children from i+1 onwards move
// one slot to the right; children[i] is overwritten by left.
func (n *Node) InsertSeparatorAt(i int, key, val, left, right uint64) {
	if n.Pairs+2 > MaxChild {
		panic(fmt.Sprintf("InsertSeparatorAt: max children exceeded on node %d", n.ID))
	}

	if i < 0 || i > n.Pairs {
		panic(fmt.Sprintf("InsertSeparatorAt: index %d out of range (%d)", i, n.Pairs))
	}

	copy(n.Children[i+2:n.Pairs+2], n.Children[i+1:n.Pairs+1])
	n.Children[i] = left
	n.Children[i+1] = right

	n.InsertPairAt(i, key, val)
}

// ChildIDs returns the populated child ids, or nil for a leaf
func (n *Node) ChildIDs() []uint64 {
	if n.IsLeaf() {
		return nil
	}
	return n.Children[:n.Pairs+1]
}
