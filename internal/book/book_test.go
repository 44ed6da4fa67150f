package book

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdd_NilOrderIsNoOp(t *testing.T) {
	b := New()
	trades, err := b.Add(nil)
	require.NoError(t, err)
	assert.Empty(t, trades)
}

func TestAdd_DuplicateIDIsSilentlyRejected(t *testing.T) {
	b := New()
	_, err := b.Add(&Order{ID: 1, Type: GTC, Side: Buy, Price: 100, Remainder: 5})
	require.NoError(t, err)

	trades, err := b.Add(&Order{ID: 1, Type: GTC, Side: Sell, Price: 100, Remainder: 5})
	require.NoError(t, err)
	assert.Empty(t, trades, "duplicate id must not mutate the book")

	entry, ok := b.dir.get(1)
	require.True(t, ok)
	assert.Equal(t, Buy, entry.order.Side, "original order must survive the duplicate add untouched")
}

func TestAdd_UnknownSideFailsWithoutMutatingBook(t *testing.T) {
	b := New()
	trades, err := b.Add(&Order{ID: 1, Type: GTC, Side: Unknown, Price: 100, Remainder: 5})
	assert.ErrorIs(t, err, ErrInvalidOrder)
	assert.Empty(t, trades)
	assert.Equal(t, 0, b.dir.len())
}

func TestAdd_MARWithEmptyOppositeSideIsDropped(t *testing.T) {
	b := New()
	trades, err := b.Add(&Order{ID: 1, Type: MAR, Side: Buy, Price: 0, Remainder: 5})
	require.NoError(t, err)
	assert.Empty(t, trades)
	assert.Equal(t, 0, b.dir.len())
}

func TestCancel_UnknownIDIsNoOp(t *testing.T) {
	b := New()
	assert.NotPanics(t, func() { b.Cancel(999) })
}

func TestCancel_RemovesOrderAndEmptiesLevel(t *testing.T) {
	b := New()
	_, err := b.Add(&Order{ID: 1, Type: GTC, Side: Buy, Price: 100, Remainder: 5})
	require.NoError(t, err)

	b.Cancel(1)

	assert.False(t, b.dir.has(1))
	_, ok := b.bids.Get(100)
	assert.False(t, ok)
}

func TestCancelMany_BulkUnderOneLock(t *testing.T) {
	b := New()
	for i := uint64(1); i <= 3; i++ {
		_, err := b.Add(&Order{ID: i, Type: GTC, Side: Buy, Price: int64(100 + i), Remainder: 5})
		require.NoError(t, err)
	}

	b.CancelMany([]uint64{1, 2, 404, 3})

	assert.Equal(t, 0, b.dir.len())
	assert.Equal(t, 0, b.bids.Len())
}

func TestModify_UnknownIDIsNoOp(t *testing.T) {
	b := New()
	trades, err := b.Modify(1, Change{Side: Buy, Price: 100, Remainder: 5})
	require.NoError(t, err)
	assert.Empty(t, trades)
}

func TestModify_UnknownSideValidatedBeforeCancel(t *testing.T) {
	b := New()
	_, err := b.Add(&Order{ID: 1, Type: GTC, Side: Buy, Price: 100, Remainder: 5})
	require.NoError(t, err)

	trades, err := b.Modify(1, Change{Side: Unknown, Price: 101, Remainder: 5})
	assert.ErrorIs(t, err, ErrInvalidOrder)
	assert.Empty(t, trades)

	// The original order must survive: modify validates Change before
	// the cancel step.
	entry, ok := b.dir.get(1)
	require.True(t, ok)
	assert.Equal(t, int64(100), entry.order.Price)
}

func TestModify_CanTriggerAMatch(t *testing.T) {
	b := New()
	_, err := b.Add(&Order{ID: 1, Type: GTC, Side: Buy, Price: 95, Remainder: 5})
	require.NoError(t, err)
	_, err = b.Add(&Order{ID: 2, Type: GTC, Side: Sell, Price: 100, Remainder: 5})
	require.NoError(t, err)

	trades, err := b.Modify(1, Change{Side: Buy, Price: 100, Remainder: 5})
	require.NoError(t, err)
	require.Len(t, trades, 1)
	assert.Equal(t, int64(5), trades[0].Bid.Quantity)
}

func TestAdd_FOKPreservesBookWhenDropped(t *testing.T) {
	b := New()
	_, err := b.Add(&Order{ID: 1, Type: GTC, Side: Sell, Price: 100, Remainder: 3})
	require.NoError(t, err)

	trades, err := b.Add(&Order{ID: 2, Type: FOK, Side: Buy, Price: 100, Remainder: 100})
	require.NoError(t, err)
	assert.Empty(t, trades)
	assert.False(t, b.dir.has(2))

	// The resting sell is untouched.
	lvl, ok := b.asks.Get(100)
	require.True(t, ok)
	assert.Equal(t, int64(3), orderAt(lvl.Front()).Remainder)
}

func TestWithPruneHour_OverridesDefault(t *testing.T) {
	b := New(WithPruneHour(3))
	assert.Equal(t, 3, b.pruneHour)
}
