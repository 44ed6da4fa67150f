// Package engine is a thin per-symbol registry around book.OrderBook.
// It adds no matching semantics of its own: each symbol owns an
// independent, singly-locked order book and GFD pruner, exactly as the
// spec's "one book = one symbol" Non-goal requires.
package engine

import (
	"github.com/rs/zerolog"

	"crossbook/internal/book"
)

// Symbol names one tradable instrument.
type Symbol string

type registration struct {
	book   *book.OrderBook
	pruner *book.Pruner
}

// Engine hosts one order book and GFD pruner per registered symbol.
type Engine struct {
	log     zerolog.Logger
	symbols map[Symbol]*registration
}

// New constructs an Engine with one book per symbol, every book's GFD
// pruner started immediately. opts apply to every book equally.
func New(log zerolog.Logger, symbols []Symbol, opts ...book.Option) *Engine {
	e := &Engine{
		log:     log,
		symbols: make(map[Symbol]*registration, len(symbols)),
	}
	for _, sym := range symbols {
		b := book.New(opts...)
		e.symbols[sym] = &registration{
			book:   b,
			pruner: book.StartPruner(b, log.With().Str("symbol", string(sym)).Logger()),
		}
	}
	return e
}

// Add dispatches to symbol's book. An unregistered symbol is a no-op,
// mirroring the per-book "unknown id" no-op philosophy: an unconfigured
// symbol is never admitted, not an error.
func (e *Engine) Add(sym Symbol, order *book.Order) ([]book.Trade, error) {
	reg, ok := e.symbols[sym]
	if !ok {
		return nil, nil
	}
	return reg.book.Add(order)
}

// Cancel dispatches to symbol's book.
func (e *Engine) Cancel(sym Symbol, id uint64) {
	if reg, ok := e.symbols[sym]; ok {
		reg.book.Cancel(id)
	}
}

// CancelMany dispatches to symbol's book.
func (e *Engine) CancelMany(sym Symbol, ids []uint64) {
	if reg, ok := e.symbols[sym]; ok {
		reg.book.CancelMany(ids)
	}
}

// Modify dispatches to symbol's book.
func (e *Engine) Modify(sym Symbol, id uint64, change book.Change) ([]book.Trade, error) {
	reg, ok := e.symbols[sym]
	if !ok {
		return nil, nil
	}
	return reg.book.Modify(id, change)
}

// Book exposes the underlying order book for a symbol, for callers that
// need read access beyond Add/Cancel/Modify (e.g. depth queries). The
// second return is false for an unregistered symbol.
func (e *Engine) Book(sym Symbol) (*book.OrderBook, bool) {
	reg, ok := e.symbols[sym]
	if !ok {
		return nil, false
	}
	return reg.book, true
}

// Shutdown stops every symbol's GFD pruner and waits for them to exit.
func (e *Engine) Shutdown() {
	for _, reg := range e.symbols {
		if err := reg.pruner.Stop(); err != nil {
			e.log.Error().Err(err).Msg("pruner shutdown error")
		}
	}
}
