package engine

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"go.btindex/internal/storage"
)

type printer struct {
	w *bufio.Writer
}

func indent(depth int) string {
	return strings.Repeat("  ", depth)
}

func label(slot int) string {
	switch slot {
	case -1:
		return "root"
	case 0:
		return "left child"
	case 1:
		return "right child"
	default:
		return fmt.Sprintf("child %d", slot+1)
	}
}

func (p *printer) EnterNode(node *storage.Node, depth, slot int) error {
	_, err := fmt.Fprintf(p.w, "%s%s:\n", indent(depth), label(slot))
	return err
}

func (p *printer) Pair(key, value uint64, depth int) error {
	_, err := fmt.Fprintf(p.w, "%s%d: %d\n", indent(depth+1), key, value)
	return err
}

// Print writes the tree in key order, each node under a label showing where
// it hangs off its parent and indented by depth
func (idx *Index) Print(w io.Writer) error {
	p := &printer{w: bufio.NewWriter(w)}
	if err := idx.tree.Walk(p); err != nil {
		return err
	}
	return p.w.Flush()
}
