package storage_test

import (
	"slices"
	"testing"

	"go.btindex/internal/storage"
)

func TestFindIndex(t *testing.T) {
	n := storage.NewNode(1, 0)
	for i, k := range []uint64{10, 20, 30} {
		n.InsertPairAt(i, k, k)
	}

	cases := []struct {
		key   uint64
		idx   int
		found bool
	}{
		{5, 0, false},
		{10, 0, true},
		{15, 1, false},
		{30, 2, true},
		{31, 3, false},
	}

	for _, c := range cases {
		idx, found := n.FindIndex(c.key)
		if idx != c.idx || found != c.found {
			t.Fatalf("FindIndex(%d) = %d,%v want %d,%v", c.key, idx, found, c.idx, c.found)
		}
	}
}

func TestInsertPairAtShifts(t *testing.T) {
	n := storage.NewNode(1, 0)
	n.InsertPairAt(0, 30, 3)
	n.InsertPairAt(0, 10, 1)
	n.InsertPairAt(1, 20, 2)

	if !slices.Equal(n.Keys[:n.Pairs], []uint64{10, 20, 30}) {
		t.Fatalf("Unexpected keys %v", n.Keys[:n.Pairs])
	}
	if !slices.Equal(n.Values[:n.Pairs], []uint64{1, 2, 3}) {
		t.Fatalf("Unexpected values %v", n.Values[:n.Pairs])
	}
}

func TestInsertSeparatorAt(t *testing.T) {
	n := storage.NewNode(1, 0)
	n.InsertSeparatorAt(0, 50, 5, 2, 3)

	if n.IsLeaf() || !slices.Equal(n.ChildIDs(), []uint64{2, 3}) {
		t.Fatalf("Unexpected children %v", n.ChildIDs())
	}

	// Child 2 split into 4 and 5 around 20
	n.InsertSeparatorAt(0, 20, 2, 4, 5)
	if !slices.Equal(n.Keys[:n.Pairs], []uint64{20, 50}) {
		t.Fatalf("Unexpected keys %v", n.Keys[:n.Pairs])
	}
	if !slices.Equal(n.ChildIDs(), []uint64{4, 5, 3}) {
		t.Fatalf("Unexpected children %v", n.ChildIDs())
	}
}

func TestInsertPairAtPanicsWhenFull(t *testing.T) {
	n := storage.NewNode(1, 0)
	for i := 0; i < storage.MaxKey; i++ {
		n.InsertPairAt(i, uint64(i), 0)
	}

	defer func() {
		if recover() == nil {
			t.Fatalf("Expected a panic inserting into a full node")
		}
	}()
	n.InsertPairAt(0, 100, 0)
}
