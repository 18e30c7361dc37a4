package pattern

import (
	"context"
	"time"
)

// Pacer blocks between candle updates. Wait returns ctx.Err() once the
// context is done so a running pattern can always be stopped.
type Pacer interface {
	Wait(ctx context.Context) error
}

// TickerPacer releases one Wait per tick of a time.Ticker. Call Stop when
// the pattern is done.
type TickerPacer struct {
	t *time.Ticker
}

func NewTickerPacer(interval time.Duration) *TickerPacer {
	return &TickerPacer{t: time.NewTicker(interval)}
}

func (p *TickerPacer) Wait(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-p.t.C:
		return nil
	}
}

// Stop releases the ticker.
func (p *TickerPacer) Stop() {
	p.t.Stop()
}

// IntervalPacer waits a full interval from each call, however long the
// preceding write took.
type IntervalPacer struct {
	Interval time.Duration
}

func NewIntervalPacer(interval time.Duration) IntervalPacer {
	return IntervalPacer{Interval: interval}
}

func (p IntervalPacer) Wait(ctx context.Context) error {
	t := time.NewTimer(p.Interval)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
