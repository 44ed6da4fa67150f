package book

import "container/list"

// Level is the FIFO of resting orders at one price on one side.
// Insertion is at the tail; matches consume from the head. Each
// resting order's *list.Element is its stable handle: removing it is
// O(1) and does not invalidate any other element's handle.
type Level struct {
	Price int64
	q     *list.List
}

func newLevel(price int64) *Level {
	return &Level{Price: price, q: list.New()}
}

// PushBack admits order at the tail of the level, returning its handle.
func (l *Level) PushBack(o *Order) *list.Element {
	return l.q.PushBack(o)
}

// Remove detaches the order at handle e. O(1).
func (l *Level) Remove(e *list.Element) {
	l.q.Remove(e)
}

// Front returns the head handle, or nil if the level is empty.
func (l *Level) Front() *list.Element {
	return l.q.Front()
}

// Len returns the number of resting orders at this level.
func (l *Level) Len() int {
	return l.q.Len()
}

func orderAt(e *list.Element) *Order {
	return e.Value.(*Order)
}
