package storage

// Write the nodes in order, stopping at the first failure
func (bt *BTree) writeNodes(nodes ...*Node) error {
	// Closure here makes these calls a bit cleaner
	var err error
	writeNode := func(node *Node) {
		if err == nil {
			err = bt.pager.WriteNode(node)
			if err != nil {
				bt.log.Errorf("writeNodes: node %d: %v", node.ID, err)
			}
		}
	}

	for _, node := range nodes {
		writeNode(node)
	}
	return err
}

func (bt *BTree) Close() error {
	return bt.pager.Close()
}
