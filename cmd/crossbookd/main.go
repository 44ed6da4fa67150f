// Command crossbookd is a small illustrative driver for the crossbook
// engine: it wires an Engine with a single symbol, submits a
// scripted sequence of orders, and logs admissions and trades until
// asked to shut down. It is not a gateway: no transport, persistence,
// or market-data publication lives here (see SPEC_FULL.md §1).
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"crossbook/internal/book"
	"crossbook/internal/engine"
)

func main() {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
	)
	defer stop()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger()

	eng := engine.New(log, []engine.Symbol{"AAPL"})
	defer eng.Shutdown()

	for _, order := range scriptedOrders() {
		correlationID := uuid.New()
		log.Info().
			Stringer("correlationID", correlationID).
			Uint64("orderID", order.ID).
			Stringer("type", order.Type).
			Stringer("side", order.Side).
			Int64("price", order.Price).
			Int64("qty", order.Remainder).
			Msg("submitting order")

		trades, err := eng.Add("AAPL", order)
		if err != nil {
			log.Error().Err(err).Uint64("orderID", order.ID).Msg("order rejected")
			continue
		}
		for _, t := range trades {
			log.Info().
				Uint64("bidID", t.Bid.OrderID).Int64("bidPx", t.Bid.Price).
				Uint64("askID", t.Ask.OrderID).Int64("askPx", t.Ask.Price).
				Int64("qty", t.Bid.Quantity).
				Msg("trade")
		}
	}

	log.Info().Msg("crossbookd running, waiting for shutdown signal")
	<-ctx.Done()
	log.Info().Msg("shutting down")
}

func scriptedOrders() []*book.Order {
	return []*book.Order{
		{ID: 1, Type: book.GTC, Side: book.Buy, Price: 100, Remainder: 10},
		{ID: 2, Type: book.GTC, Side: book.Buy, Price: 99, Remainder: 20},
		{ID: 3, Type: book.GFD, Side: book.Sell, Price: 102, Remainder: 15},
		{ID: 4, Type: book.GTC, Side: book.Sell, Price: 100, Remainder: 6},
		{ID: 5, Type: book.FAK, Side: book.Buy, Price: 99, Remainder: 50},
		{ID: 6, Type: book.MAR, Side: book.Buy, Price: 0, Remainder: 5},
	}
}
