package book

import (
	"time"

	"github.com/rs/zerolog"
	tomb "gopkg.in/tomb.v2"
)

// Pruner is the GFD daemon: it wakes at a configured local-time hour
// every day, collects every GFD order id under the book mutex, releases
// it, and re-acquires it to cancel them in bulk. It is started by
// StartPruner (New does not start one) and torn down by Stop, which
// must not run concurrently with other book operations.
type Pruner struct {
	book *OrderBook
	hour int
	log  zerolog.Logger
	t    tomb.Tomb
}

// StartPruner starts a GFD pruner for book, using book's configured
// prune hour. The daemon runs until Stop is called.
func StartPruner(b *OrderBook, log zerolog.Logger) *Pruner {
	p := &Pruner{book: b, hour: b.pruneHour, log: log}
	p.t.Go(p.run)
	return p
}

// Stop signals the pruner to shut down and blocks until it has.
func (p *Pruner) Stop() error {
	p.t.Kill(nil)
	return p.t.Wait()
}

func (p *Pruner) run() error {
	for {
		wait := p.untilNextPrune()
		p.log.Info().Dur("wait", wait).Msg("gfd pruner sleeping")

		timer := time.NewTimer(wait)
		select {
		case <-p.t.Dying():
			timer.Stop()
			return nil
		case <-timer.C:
			p.prune()
		}
	}
}

// prune collects GFD ids under the book mutex, releases it, then
// re-acquires it (via CancelMany) to cancel them in bulk.
func (p *Pruner) prune() {
	ids := p.book.gfdOrderIDs()
	if len(ids) == 0 {
		return
	}
	p.book.CancelMany(ids)
	p.log.Info().Int("pruned", len(ids)).Msg("gfd orders pruned")
}

// untilNextPrune returns the duration until the next occurrence of
// p.hour local time, today if it hasn't passed yet, tomorrow otherwise.
func (p *Pruner) untilNextPrune() time.Duration {
	now := time.Now()
	next := time.Date(now.Year(), now.Month(), now.Day(), p.hour, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next.Sub(now)
}
