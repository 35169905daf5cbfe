package storage

import "fmt"

type frame struct {
	node *Node
	next int
}

// Cursor walks the pairs of a tree in ascending key order, reading nodes
// only as it reaches them. The zero position is before the first pair; call
// Reset to start again.
//
//	c := tree.Cursor()
//	for c.Next() {
//		use(c.Key(), c.Value())
//	}
//	if err := c.Err(); err != nil { ... }
type Cursor struct {
	bt      *BTree
	stack   []frame
	started bool
	rec     Record
	err     error
}

func (bt *BTree) Cursor() *Cursor {
	return &Cursor{bt: bt}
}

func (c *Cursor) Reset() {
	c.stack = c.stack[:0]
	c.started = false
	c.rec = Record{}
	c.err = nil
}

// pushLeft stacks id and every first child below it
func (c *Cursor) pushLeft(id uint64) error {
	for id != InvalidBlock {
		if len(c.stack) >= maxDepth {
			return fmt.Errorf("cursor: %w (deeper than %d)", ErrCorruptTree, maxDepth)
		}

		node, err := c.bt.pager.ReadNode(id)
		if err != nil {
			return err
		}

		c.stack = append(c.stack, frame{node: node})
		id = node.Children[0]
	}
	return nil
}

func (c *Cursor) Next() bool {
	if c.err != nil {
		return false
	}

	if !c.started {
		c.started = true
		root, err := c.bt.pager.Root()
		if err != nil {
			c.err = err
			return false
		}

		if err := c.pushLeft(root); err != nil {
			c.err = err
			return false
		}
	}

	for len(c.stack) > 0 {
		top := &c.stack[len(c.stack)-1]
		if top.next >= top.node.Pairs {
			c.stack = c.stack[:len(c.stack)-1]
			continue
		}

		i := top.next
		top.next++
		c.rec = Record{Key: top.node.Keys[i], Value: top.node.Values[i]}

		// top may move once the stack grows
		if err := c.pushLeft(top.node.Children[i+1]); err != nil {
			c.err = err
			return false
		}
		return true
	}

	return false
}

func (c *Cursor) Key() uint64 {
	return c.rec.Key
}

func (c *Cursor) Value() uint64 {
	return c.rec.Value
}

func (c *Cursor) Record() Record {
	return c.rec
}

func (c *Cursor) Err() error {
	return c.err
}
