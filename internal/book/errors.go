package book

import (
	"errors"
	"fmt"
)

// ErrInvalidOrder is returned synchronously from Add/Modify when an
// order (or a modify's Change) names Side = Unknown. The book is left
// unchanged.
var ErrInvalidOrder = errors.New("book: invalid order (unknown side)")

// fill decrements order's remainder by qty. Filling for more than the
// order has remaining is a programming-error invariant violation that
// cannot be recovered from without corrupting book state, so it panics
// (the spec's FillOverflow) rather than returning an error.
func fill(order *Order, qty int64) {
	if qty <= 0 || qty > order.Remainder {
		panic(fmt.Sprintf("book: fill overflow on order %d: remainder=%d fillQty=%d", order.ID, order.Remainder, qty))
	}
	order.Remainder -= qty
}
