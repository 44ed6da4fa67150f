package book

import "github.com/tidwall/btree"

// depthRow is one price's aggregate count/quantity.
type depthRow struct {
	Price    int64
	Count    int64
	Quantity int64
}

// AggregatedDepth tracks, per price on one side, the live order count
// and total remaining quantity, maintained incrementally alongside the
// side index. It answers FOK feasibility in O(levels touched) without
// walking level queues.
type AggregatedDepth struct {
	tree *btree.BTreeG[*depthRow]
}

func newDepth(less func(a, b *depthRow) bool) *AggregatedDepth {
	return &AggregatedDepth{tree: btree.NewBTreeG(less)}
}

func newBidDepth() *AggregatedDepth {
	return newDepth(func(a, b *depthRow) bool { return a.Price > b.Price })
}

func newAskDepth() *AggregatedDepth {
	return newDepth(func(a, b *depthRow) bool { return a.Price < b.Price })
}

// Add records a newly-admitted order of qty at price: count += 1,
// quantity += qty.
func (d *AggregatedDepth) Add(price, qty int64) {
	row, ok := d.tree.GetMut(&depthRow{Price: price})
	if !ok {
		d.tree.Set(&depthRow{Price: price, Count: 1, Quantity: qty})
		return
	}
	row.Count++
	row.Quantity += qty
}

// Remove records a fully-filled or cancelled order of qty at price:
// count -= 1, quantity -= qty. The row is dropped once count reaches 0.
func (d *AggregatedDepth) Remove(price, qty int64) {
	row, ok := d.tree.GetMut(&depthRow{Price: price})
	if !ok {
		return
	}
	row.Count--
	row.Quantity -= qty
	if row.Count <= 0 {
		d.tree.Delete(&depthRow{Price: price})
	}
}

// Match records a partial fill of qty at price: quantity -= qty, count
// is untouched since the order is still live.
func (d *AggregatedDepth) Match(price, qty int64) {
	row, ok := d.tree.GetMut(&depthRow{Price: price})
	if !ok {
		return
	}
	row.Quantity -= qty
}

// SumFillable walks rows in best-first order, summing quantity while
// admit(price) holds, and reports whether the running sum reaches need
// before the walk runs out of admissible rows. Since rows are stored in
// the side's natural best-first order and admit is monotone over that
// order (true for a leading run of rows, then false for every row
// after), the walk can stop at the first rejection.
func (d *AggregatedDepth) SumFillable(need int64, admit func(price int64) bool) bool {
	var sum int64
	covered := false
	d.tree.Scan(func(row *depthRow) bool {
		if !admit(row.Price) {
			return false
		}
		sum += row.Quantity
		if sum >= need {
			covered = true
			return false
		}
		return true
	})
	return covered
}
