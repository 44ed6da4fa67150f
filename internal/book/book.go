// Package book implements a price-time priority limit order book: order
// admission, matching, and resting-book maintenance for a single
// symbol. The book exposes a synchronous in-process API; callers
// serialize their own side effects (persistence, market data,
// transport) on the returned trade list.
package book

import "sync"

const defaultPruneHour = 16

// OrderBook is a single-symbol price-time priority limit order book.
// All public methods are safe for concurrent use; a single mutex
// serializes admission, cancellation, modification, and the background
// GFD pruner.
type OrderBook struct {
	mu sync.Mutex

	bids *SideIndex
	asks *SideIndex

	bidDepth *AggregatedDepth
	askDepth *AggregatedDepth

	dir *directory

	pruneHour int
}

// Option configures an OrderBook at construction time.
type Option func(*OrderBook)

// WithPruneHour overrides the local-time hour (0-23) at which GFD
// orders are pruned. Defaults to 16.
func WithPruneHour(hour int) Option {
	return func(b *OrderBook) { b.pruneHour = hour }
}

// New constructs an empty order book.
func New(opts ...Option) *OrderBook {
	b := &OrderBook{
		bids:      newBidIndex(),
		asks:      newAskIndex(),
		bidDepth:  newBidDepth(),
		askDepth:  newAskDepth(),
		dir:       newDirectory(),
		pruneHour: defaultPruneHour,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Add admits order onto the book, running the gating rules for its
// type and then the match loop. It returns the trades produced by this
// call only.
//
// Preconditions, checked in order: a nil order is a no-op; a duplicate
// id is a silent no-op (idempotent reject, for gateway retries); an
// Unknown side fails with ErrInvalidOrder; a MAR order is repriced to
// the opposite side's worst resting price (dropped if that side is
// empty); a FAK order that is not currently marketable is dropped
// without resting; a FOK order that cannot be fully filled right now is
// dropped without resting.
func (b *OrderBook) Add(order *Order) ([]Trade, error) {
	if order == nil {
		return nil, nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.addLocked(*order)
}

func (b *OrderBook) addLocked(order Order) ([]Trade, error) {
	if b.dir.has(order.ID) {
		return nil, nil
	}
	if order.Side == Unknown {
		return nil, ErrInvalidOrder
	}

	if order.Type == MAR {
		price, ok := b.worstOppositePrice(order.Side)
		if !ok {
			return nil, nil
		}
		order.Price = price
		order.Type = GTC
	}

	if order.Type == FAK && !b.marketable(order.Side, order.Price) {
		return nil, nil
	}

	if order.Type == FOK && !b.canFullyFill(order.Side, order.Price, order.Remainder) {
		return nil, nil
	}

	b.rest(&order)

	trades := b.match()
	b.sweepFAK()
	return trades, nil
}

// Cancel removes id from the book if present. Unknown ids are a silent
// no-op.
func (b *OrderBook) Cancel(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cancelLocked(id)
}

// CancelMany removes every id present in the book under a single lock
// acquisition. Unknown ids are silently skipped.
func (b *OrderBook) CancelMany(ids []uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, id := range ids {
		b.cancelLocked(id)
	}
}

func (b *OrderBook) cancelLocked(id uint64) {
	e, ok := b.dir.get(id)
	if !ok {
		return
	}
	b.removeResting(e)
}

// Modify is a cancel-then-add of a new order sharing id and the
// original order's type, taking on change's side/price/remainder.
// Priority is lost: the order re-enters at the tail of its (possibly
// new) level. An unknown id is a no-op. change.Side is validated before
// the cancel step, so an invalid modify never destroys the original
// order.
func (b *OrderBook) Modify(id uint64, change Change) ([]Trade, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	e, ok := b.dir.get(id)
	if !ok {
		return nil, nil
	}
	if change.Side == Unknown {
		return nil, ErrInvalidOrder
	}

	oldType := e.order.Type
	b.removeResting(e)

	newOrder := Order{
		ID:        id,
		Type:      oldType,
		Side:      change.Side,
		Price:     change.Price,
		Remainder: change.Remainder,
	}
	return b.addLocked(newOrder)
}

// rest inserts order at the tail of its price level and registers it
// in the directory and aggregated depth.
func (b *OrderBook) rest(order *Order) {
	index, depth := b.sideOf(order.Side)
	lvl := index.GetOrCreate(order.Price)
	handle := lvl.PushBack(order)
	b.dir.put(order, lvl, handle)
	depth.Add(order.Price, order.Remainder)
}

// removeResting detaches e's order from its level, the directory, and
// aggregated depth. It does not emit a trade.
func (b *OrderBook) removeResting(e *entry) {
	index, depth := b.sideOf(e.order.Side)
	e.level.Remove(e.handle)
	depth.Remove(e.order.Price, e.order.Remainder)
	if e.level.Len() == 0 {
		index.Remove(e.level.Price)
	}
	b.dir.delete(e.order.ID)
}

func (b *OrderBook) sideOf(s Side) (*SideIndex, *AggregatedDepth) {
	if s == Buy {
		return b.bids, b.bidDepth
	}
	return b.asks, b.askDepth
}

// match runs price-time priority matching while both sides are
// non-empty and cross, emitting one Trade per head-pair fill.
func (b *OrderBook) match() []Trade {
	var trades []Trade
	for {
		bidLvl, bidOk := b.bids.Best()
		askLvl, askOk := b.asks.Best()
		if !bidOk || !askOk || bidLvl.Price < askLvl.Price {
			break
		}

		for bidLvl.Len() > 0 && askLvl.Len() > 0 {
			bidHandle := bidLvl.Front()
			askHandle := askLvl.Front()
			bidOrder := orderAt(bidHandle)
			askOrder := orderAt(askHandle)

			fillQty := min64(bidOrder.Remainder, askOrder.Remainder)

			fill(bidOrder, fillQty)
			fill(askOrder, fillQty)

			trades = append(trades, Trade{
				Bid: TradeInfo{OrderID: bidOrder.ID, Price: bidOrder.Price, Quantity: fillQty},
				Ask: TradeInfo{OrderID: askOrder.ID, Price: askOrder.Price, Quantity: fillQty},
			})

			if bidOrder.Remainder == 0 {
				b.bidDepth.Remove(bidOrder.Price, fillQty)
				bidLvl.Remove(bidHandle)
				b.dir.delete(bidOrder.ID)
			} else {
				b.bidDepth.Match(bidOrder.Price, fillQty)
			}
			if askOrder.Remainder == 0 {
				b.askDepth.Remove(askOrder.Price, fillQty)
				askLvl.Remove(askHandle)
				b.dir.delete(askOrder.ID)
			} else {
				b.askDepth.Match(askOrder.Price, fillQty)
			}
		}

		if bidLvl.Len() == 0 {
			b.bids.Remove(bidLvl.Price)
		}
		if askLvl.Len() == 0 {
			b.asks.Remove(askLvl.Price)
		}
	}
	return trades
}

// sweepFAK cancels a resting FAK order left at the top of either side
// once matching has halted: a FAK cannot wait, it is cancel-on-uncross.
func (b *OrderBook) sweepFAK() {
	if lvl, ok := b.bids.Best(); ok {
		if h := lvl.Front(); h != nil {
			if o := orderAt(h); o.Type == FAK {
				b.cancelLocked(o.ID)
			}
		}
	}
	if lvl, ok := b.asks.Best(); ok {
		if h := lvl.Front(); h != nil {
			if o := orderAt(h); o.Type == FAK {
				b.cancelLocked(o.ID)
			}
		}
	}
}

// marketable reports whether a FAK order on side at price currently
// has any crossing liquidity on the opposite side.
func (b *OrderBook) marketable(side Side, price int64) bool {
	if side == Buy {
		lvl, ok := b.asks.Best()
		return ok && lvl.Price <= price
	}
	lvl, ok := b.bids.Best()
	return ok && lvl.Price >= price
}

// canFullyFill walks the opposite side's aggregated depth in best-first
// order and reports whether price/quantity is fully coverable right
// now, without touching level queues.
func (b *OrderBook) canFullyFill(side Side, price, qty int64) bool {
	if side == Buy {
		return b.askDepth.SumFillable(qty, func(p int64) bool { return p <= price })
	}
	return b.bidDepth.SumFillable(qty, func(p int64) bool { return p >= price })
}

// worstOppositePrice returns the worst resting price on the opposite
// side of side: the highest ask for a buy, the lowest bid for a sell.
func (b *OrderBook) worstOppositePrice(side Side) (int64, bool) {
	if side == Buy {
		return b.worstAsk()
	}
	return b.worstBid()
}

func (b *OrderBook) worstAsk() (int64, bool) {
	var worst int64
	found := false
	b.asks.tree.Scan(func(lvl *Level) bool {
		worst = lvl.Price
		found = true
		return true
	})
	return worst, found
}

func (b *OrderBook) worstBid() (int64, bool) {
	var worst int64
	found := false
	b.bids.tree.Scan(func(lvl *Level) bool {
		worst = lvl.Price
		found = true
		return true
	})
	return worst, found
}

// gfdOrderIDs returns a snapshot of ids currently resting with type
// GFD, for the background pruner to cancel.
func (b *OrderBook) gfdOrderIDs() []uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.dir.idsByType(GFD)
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
