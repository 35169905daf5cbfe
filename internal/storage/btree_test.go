package storage_test

import (
	"errors"
	"math/rand"
	"path/filepath"
	"slices"
	"testing"

	"go.btindex/internal/logger"
	"go.btindex/internal/storage"
)

func newTree(t *testing.T) (*storage.BTree, *storage.Pager) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.idx")
	pager, err := storage.Create(path, false, logger.Discard())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { pager.Close() })

	return storage.NewBTree(pager, logger.Discard()), pager
}

func collect(t *testing.T, bt *storage.BTree) []storage.Record {
	t.Helper()

	var recs []storage.Record
	c := bt.Cursor()
	for c.Next() {
		recs = append(recs, c.Record())
	}
	if err := c.Err(); err != nil {
		t.Fatalf("Cursor failed: %v", err)
	}
	return recs
}

func header(t *testing.T, pager *storage.Pager) *storage.Header {
	t.Helper()

	h, err := pager.ReadHeader()
	if err != nil {
		t.Fatal(err)
	}
	return h
}

func TestAscendingInsertAndGet(t *testing.T) {
	bt, _ := newTree(t)

	const N = 1000

	// Insert ascending
	for i := uint64(0); i < N; i++ {
		if err := bt.Insert(i, i*10); err != nil {
			t.Fatalf("Insert %d failed: %v", i, err)
		}
	}

	for i := uint64(0); i < N; i++ {
		v, err := bt.Search(i)
		if err != nil {
			t.Fatalf("Search %d failed: %v", i, err)
		}
		if v != i*10 {
			t.Fatalf("Search %d: expected %d, got %d", i, i*10, v)
		}
	}

	if err := bt.Verify(); err != nil {
		t.Fatal(err)
	}
}

func TestRandomInsertTraversesInOrder(t *testing.T) {
	bt, _ := newTree(t)
	r := rand.New(rand.NewSource(1))

	const N = 1000
	keys := make([]uint64, 0, N)
	for _, p := range r.Perm(N) {
		k := uint64(p)*7 + 3
		keys = append(keys, k)
		if err := bt.Insert(k, k+1); err != nil {
			t.Fatalf("Insert %d failed: %v", k, err)
		}
	}

	slices.Sort(keys)
	recs := collect(t, bt)

	if len(recs) != len(keys) {
		t.Fatalf("Expected %d pairs, got %d", len(keys), len(recs))
	}

	for i, rec := range recs {
		if rec.Key != keys[i] || rec.Value != keys[i]+1 {
			t.Fatalf("Pair %d: expected %d,%d got %d,%d", i, keys[i], keys[i]+1, rec.Key, rec.Value)
		}
	}

	if err := bt.Verify(); err != nil {
		t.Fatal(err)
	}
}

func TestDuplicateKeys(t *testing.T) {
	bt, pager := newTree(t)

	for k := uint64(1); k <= 50; k++ {
		if err := bt.Insert(k, k); err != nil {
			t.Fatalf("Insert %d failed: %v", k, err)
		}
	}

	before := header(t, pager)

	// Second insert should fail, whether the key sits in a leaf or higher up
	for _, k := range []uint64{1, 25, 50} {
		if err := bt.Insert(k, 999); !errors.Is(err, storage.ErrKeyExists) {
			t.Fatalf("Expected ErrKeyExists for %d, got %v", k, err)
		}
	}

	after := header(t, pager)
	if *before != *after {
		t.Fatalf("Header changed by rejected inserts: %+v -> %+v", before, after)
	}

	for k := uint64(1); k <= 50; k++ {
		v, err := bt.Search(k)
		if err != nil {
			t.Fatal(err)
		}
		if v != k {
			t.Fatalf("Expected %d to keep value %d, got %d", k, k, v)
		}
	}
}

func TestEmptyTreeAndNotFound(t *testing.T) {
	bt, pager := newTree(t)

	if _, err := bt.Search(42); !errors.Is(err, storage.ErrEmptyTree) {
		t.Fatalf("Expected ErrEmptyTree, got %v", err)
	}

	if err := bt.Insert(42, 4200); err != nil {
		t.Fatal(err)
	}

	if root := header(t, pager).RootID; root != 1 {
		t.Fatalf("Expected first node to be block 1, root is %d", root)
	}

	v, err := bt.Search(42)
	if err != nil {
		t.Fatal(err)
	}
	if v != 4200 {
		t.Fatalf("Expected 4200, got %d", v)
	}

	if _, err := bt.Search(7); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func TestLeafSplitPromotesMedian(t *testing.T) {
	bt, pager := newTree(t)

	for k := uint64(10); k <= 190; k += 10 {
		if err := bt.Insert(k, k*10); err != nil {
			t.Fatal(err)
		}
	}

	root, err := pager.ReadNode(1)
	if err != nil {
		t.Fatal(err)
	}
	if root.Pairs != storage.MaxKey || !root.IsLeaf() {
		t.Fatalf("Expected a full leaf root, got %d pairs", root.Pairs)
	}

	if err := bt.Insert(200, 2000); err != nil {
		t.Fatal(err)
	}

	// Leaf 1 is superseded by 2 and 3, the new root is 4
	h := header(t, pager)
	if h.RootID != 4 || h.NextBlockID != 5 {
		t.Fatalf("Unexpected header after split: %+v", h)
	}

	root, err = pager.ReadNode(4)
	if err != nil {
		t.Fatal(err)
	}

	if root.Pairs != 1 || root.Keys[0] != 110 || root.Values[0] != 1100 {
		t.Fatalf("Expected root to hold 110 only, got %v", root.Keys[:root.Pairs])
	}

	if root.Children[0] != 2 || root.Children[1] != 3 || !root.IsRoot() {
		t.Fatalf("Unexpected root children %v", root.Children[:2])
	}

	left, err := pager.ReadNode(2)
	if err != nil {
		t.Fatal(err)
	}
	right, err := pager.ReadNode(3)
	if err != nil {
		t.Fatal(err)
	}

	if left.Pairs != 10 || left.Keys[0] != 10 || left.Keys[9] != 100 {
		t.Fatalf("Unexpected left leaf %v", left.Keys[:left.Pairs])
	}

	if right.Pairs != 9 || right.Keys[0] != 120 || right.Keys[8] != 200 {
		t.Fatalf("Unexpected right leaf %v", right.Keys[:right.Pairs])
	}

	if left.ParentID != 4 || right.ParentID != 4 || !left.IsLeaf() || !right.IsLeaf() {
		t.Fatalf("Split leaves should be childless and hang off the root")
	}
}

func TestSplitKeepsEveryEntry(t *testing.T) {
	bt, pager := newTree(t)

	keys := []uint64{80, 10, 190, 50, 120, 30, 170, 60, 150, 20, 100, 40, 180, 70, 140, 90, 160, 110, 130}
	for _, k := range keys {
		if err := bt.Insert(k, k+1); err != nil {
			t.Fatal(err)
		}
	}

	// Lands in the middle of the full leaf
	if err := bt.Insert(95, 96); err != nil {
		t.Fatal(err)
	}

	root, err := pager.ReadNode(header(t, pager).RootID)
	if err != nil {
		t.Fatal(err)
	}

	var got []uint64
	for _, id := range root.ChildIDs() {
		child, err := pager.ReadNode(id)
		if err != nil {
			t.Fatal(err)
		}
		got = append(got, child.Keys[:child.Pairs]...)
	}
	got = append(got, root.Keys[:root.Pairs]...)
	slices.Sort(got)

	want := append(slices.Clone(keys), 95)
	slices.Sort(want)

	if !slices.Equal(got, want) {
		t.Fatalf("Split lost or duplicated entries:\n got %v\nwant %v", got, want)
	}
}

func TestCascadingSplit(t *testing.T) {
	bt, pager := newTree(t)

	var k uint64
	for k = 1; k < 1000; k++ {
		if err := bt.Insert(k, k); err != nil {
			t.Fatalf("Insert %d failed: %v", k, err)
		}

		stats, err := bt.Stats()
		if err != nil {
			t.Fatal(err)
		}
		if stats.Height == 3 {
			break
		}
	}

	if k == 1000 {
		t.Fatalf("Root never split")
	}

	root, err := pager.ReadNode(header(t, pager).RootID)
	if err != nil {
		t.Fatal(err)
	}
	if root.Pairs != 1 {
		t.Fatalf("Expected a fresh root with one key, got %d", root.Pairs)
	}

	if err := bt.Verify(); err != nil {
		t.Fatal(err)
	}

	for i := uint64(1); i <= k; i++ {
		if _, err := bt.Search(i); err != nil {
			t.Fatalf("Search %d after cascade: %v", i, err)
		}
	}
}

func TestStructuralLimit(t *testing.T) {
	bt, pager := newTree(t)

	inserted := 0
	var failed uint64
	for i := uint64(1); i <= 10000; i++ {
		k := i * 2
		err := bt.Insert(k, k)
		if errors.Is(err, storage.ErrStructuralLimit) {
			failed = k
			break
		}
		if err != nil {
			t.Fatalf("Insert %d failed: %v", k, err)
		}
		inserted++
	}

	if failed == 0 {
		t.Fatalf("Expected ascending inserts to hit the split limit")
	}

	// The refused insert must not have touched the file
	before := header(t, pager)
	if err := bt.Insert(failed, failed); !errors.Is(err, storage.ErrStructuralLimit) {
		t.Fatalf("Expected the limit again, got %v", err)
	}
	if after := header(t, pager); *after != *before {
		t.Fatalf("Header changed by refused insert: %+v -> %+v", before, after)
	}

	if _, err := bt.Search(failed); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected refused key to be absent, got %v", err)
	}

	if err := bt.Verify(); err != nil {
		t.Fatal(err)
	}

	if recs := collect(t, bt); len(recs) != inserted {
		t.Fatalf("Expected %d pairs, got %d", inserted, len(recs))
	}

	// Leaves with room still take keys
	if err := bt.Insert(1, 1); err != nil {
		t.Fatalf("Insert into leftmost leaf failed: %v", err)
	}
}

func TestReopenKeepsTree(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.idx")

	pager, err := storage.Create(path, false, logger.Discard())
	if err != nil {
		t.Fatal(err)
	}
	bt := storage.NewBTree(pager, logger.Discard())

	for k := uint64(0); k < 300; k++ {
		if err := bt.Insert(k, k*3); err != nil {
			t.Fatal(err)
		}
	}
	if err := bt.Close(); err != nil {
		t.Fatal(err)
	}

	pager, err = storage.Open(path, logger.Discard())
	if err != nil {
		t.Fatal(err)
	}
	bt = storage.NewBTree(pager, logger.Discard())
	defer bt.Close()

	for k := uint64(0); k < 300; k++ {
		v, err := bt.Search(k)
		if err != nil {
			t.Fatalf("Search %d after reopen: %v", k, err)
		}
		if v != k*3 {
			t.Fatalf("Search %d: expected %d, got %d", k, k*3, v)
		}
	}
}

func TestCursorRestarts(t *testing.T) {
	bt, _ := newTree(t)

	c := bt.Cursor()
	if c.Next() {
		t.Fatalf("Cursor over an empty tree should yield nothing")
	}
	if c.Err() != nil {
		t.Fatal(c.Err())
	}

	for _, k := range []uint64{5, 3, 7} {
		if err := bt.Insert(k, k*10); err != nil {
			t.Fatal(err)
		}
	}

	c.Reset()
	var first []uint64
	for c.Next() {
		first = append(first, c.Key())
	}

	c.Reset()
	var second []uint64
	for c.Next() {
		second = append(second, c.Key())
	}

	if !slices.Equal(first, []uint64{3, 5, 7}) || !slices.Equal(first, second) {
		t.Fatalf("Unexpected passes %v and %v", first, second)
	}
}
