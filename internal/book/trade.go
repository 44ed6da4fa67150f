package book

// TradeInfo is one leg of a Trade: the resting order's id, its own
// resting price, and the quantity crossed.
type TradeInfo struct {
	OrderID  uint64
	Price    int64
	Quantity int64
}

// Trade is emitted once per head-pair fill during matching. Both legs
// are recorded independently, each with its own resting price, so the
// two prices differ whenever the bid level is above the ask level at
// the moment of the cross.
type Trade struct {
	Bid TradeInfo
	Ask TradeInfo
}
