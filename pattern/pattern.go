// Package pattern generates time sequences of candle values and pushes them
// to the controller one candle at a time.
package pattern

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"candle-remote/candle"
)

// DefaultInterval is the pause after each candle update
const DefaultInterval = time.Second

// Step applies the generator's next values to candles[i] and transmits them.
// It returns the command that was sent.
func Step(candles []*candle.Candle, i int, gen Generator, rng *rand.Rand) (string, error) {
	c := candles[i]
	s := gen.Next(rng)

	if err := c.SimpleSet(s.RMin, s.GMin, s.BMin, s.HMin); err != nil {
		return "", err
	}
	// With autoupdate the set above already transmitted.
	if !c.AutoUpdate() {
		if err := c.Update(); err != nil {
			return "", err
		}
	}
	return c.Command(), nil
}

// Scheduler runs a pattern over a list of candles in list order, waiting on
// the pacer after every candle.
type Scheduler struct {
	candles []*candle.Candle
	gen     Generator
	pacer   Pacer
	rng     *rand.Rand
	logger  zerolog.Logger
}

// NewScheduler creates a scheduler. A nil rng is seeded from the clock.
func NewScheduler(candles []*candle.Candle, gen Generator, pacer Pacer, rng *rand.Rand, logger zerolog.Logger) *Scheduler {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Scheduler{
		candles: candles,
		gen:     gen,
		pacer:   pacer,
		rng:     rng,
		logger:  logger,
	}
}

// Run loops until ctx is done or a transmission fails. It never returns nil:
// a stopped run reports ctx.Err().
func (s *Scheduler) Run(ctx context.Context) error {
	if len(s.candles) == 0 {
		return errors.New("no candles to drive")
	}

	log := s.logger.With().
		Str("run", ulid.Make().String()).
		Str("pattern", s.gen.Name()).
		Int("candles", len(s.candles)).
		Logger()
	log.Info().Msg("Pattern started")

	for loop := 0; ; loop++ {
		for i, c := range s.candles {
			if err := ctx.Err(); err != nil {
				log.Info().Int("loop", loop).Msg("Pattern stopped")
				return err
			}

			cmd, err := Step(s.candles, i, s.gen, s.rng)
			if err != nil {
				log.Error().Err(err).Int("candle", c.Number()).Msg("Transmission failed")
				return fmt.Errorf("candle %d: %w", c.Number(), err)
			}
			log.Debug().Str("command", cmd).Msg("Sent")

			if err := s.pacer.Wait(ctx); err != nil {
				log.Info().Int("loop", loop).Msg("Pattern stopped")
				return err
			}
		}
	}
}

// RunRandom drives the candles with uniformly random colors until ctx is done.
func RunRandom(ctx context.Context, candles []*candle.Candle, interval time.Duration, logger zerolog.Logger) error {
	pacer := NewTickerPacer(interval)
	defer pacer.Stop()
	return NewScheduler(candles, Random{}, pacer, nil, logger).Run(ctx)
}

// RunFire drives the candles with the flame palette until ctx is done.
func RunFire(ctx context.Context, candles []*candle.Candle, interval time.Duration, logger zerolog.Logger) error {
	pacer := NewTickerPacer(interval)
	defer pacer.Stop()
	return NewScheduler(candles, DefaultFire, pacer, nil, logger).Run(ctx)
}
