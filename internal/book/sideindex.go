package book

import "github.com/tidwall/btree"

// levelTree is a price-sorted map of levels for one side, best price
// first under iteration. Bids compare descending (best = highest),
// asks compare ascending (best = lowest) — callers supply the right
// comparator via newSideIndex.
type levelTree = btree.BTreeG[*Level]

// SideIndex is the price-sorted level map for one side of the book.
type SideIndex struct {
	tree *levelTree
}

func newSideIndex(less func(a, b *Level) bool) *SideIndex {
	return &SideIndex{tree: btree.NewBTreeG(less)}
}

func newBidIndex() *SideIndex {
	return newSideIndex(func(a, b *Level) bool { return a.Price > b.Price })
}

func newAskIndex() *SideIndex {
	return newSideIndex(func(a, b *Level) bool { return a.Price < b.Price })
}

// Best returns the best (first-to-iterate) level, if any.
func (s *SideIndex) Best() (*Level, bool) {
	return s.tree.MinMut()
}

// GetOrCreate returns the level at price, creating an empty one if
// absent.
func (s *SideIndex) GetOrCreate(price int64) *Level {
	if lvl, ok := s.tree.GetMut(&Level{Price: price}); ok {
		return lvl
	}
	lvl := newLevel(price)
	s.tree.Set(lvl)
	return lvl
}

// Get returns the level at price without creating it.
func (s *SideIndex) Get(price int64) (*Level, bool) {
	return s.tree.GetMut(&Level{Price: price})
}

// Remove drops the (assumed empty) level at price from the index.
func (s *SideIndex) Remove(price int64) {
	s.tree.Delete(&Level{Price: price})
}

// Len reports the number of non-empty price levels on this side.
func (s *SideIndex) Len() int {
	return s.tree.Len()
}
