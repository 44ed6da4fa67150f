package book

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSideIndex_BidsBestIsHighestPrice(t *testing.T) {
	idx := newBidIndex()
	idx.GetOrCreate(99)
	idx.GetOrCreate(101)
	idx.GetOrCreate(100)

	best, ok := idx.Best()
	assert.True(t, ok)
	assert.Equal(t, int64(101), best.Price)
}

func TestSideIndex_AsksBestIsLowestPrice(t *testing.T) {
	idx := newAskIndex()
	idx.GetOrCreate(101)
	idx.GetOrCreate(99)
	idx.GetOrCreate(100)

	best, ok := idx.Best()
	assert.True(t, ok)
	assert.Equal(t, int64(99), best.Price)
}

func TestSideIndex_GetOrCreateReusesExistingLevel(t *testing.T) {
	idx := newBidIndex()
	a := idx.GetOrCreate(100)
	a.PushBack(&Order{ID: 1})

	b := idx.GetOrCreate(100)
	assert.Equal(t, 1, b.Len())
	assert.Same(t, a, b)
}

func TestSideIndex_RemoveDropsLevel(t *testing.T) {
	idx := newBidIndex()
	idx.GetOrCreate(100)
	idx.Remove(100)

	_, ok := idx.Get(100)
	assert.False(t, ok)
	assert.Equal(t, 0, idx.Len())
}
