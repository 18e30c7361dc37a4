package cli

import (
	"errors"
	"math/rand"

	"github.com/spf13/cobra"

	"candle-remote/candle"
	"candle-remote/pattern"
)

func newPatternCmd(opts *rootOptions, name, short string) *cobra.Command {
	return &cobra.Command{
		Use:   name,
		Short: short,
		Long: short + `.

Candles are updated one after another in order, pausing --interval after
each, until the process is interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := opts.load(cmd)
			if err != nil {
				return err
			}
			gen, err := pattern.ByName(name)
			if err != nil {
				return err
			}

			link, candles, err := rt.open()
			if err != nil {
				return err
			}
			defer rt.close(link)

			var rng *rand.Rand
			if rt.cfg.Pattern.Seed != 0 {
				rng = rand.New(rand.NewSource(rt.cfg.Pattern.Seed))
			}

			pacer := pattern.NewTickerPacer(rt.interval)
			defer pacer.Stop()

			s := pattern.NewScheduler(candles, gen, pacer, rng, rt.logger)
			// An interrupted run is a normal stop; a write fault is not.
			ctx := cmd.Context()
			if err := s.Run(ctx); err != nil && !errors.Is(err, ctx.Err()) {
				return err
			}
			return nil
		},
	}
}

// newDemoCmd sends the controller's smoke test: candle 1 at defaults, then a
// fixed green-heavy color.
func newDemoCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Send a short test sequence to candle 1",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := opts.load(cmd)
			if err != nil {
				return err
			}
			link, err := openLink(rt.cfg.Serial.Port, rt.cfg.Serial.Baud)
			if err != nil {
				return err
			}
			defer rt.close(link)

			c := candle.New(link, 1, rt.cfg.Candles.AutoUpdate)
			if err := c.Update(); err != nil {
				return err
			}
			rt.logger.Debug().Str("command", c.Command()).Msg("Sent")

			if err := pattern.NewIntervalPacer(rt.interval).Wait(cmd.Context()); err != nil {
				return err
			}

			if err := c.SimpleSet(10, 50, 10, 90); err != nil {
				return err
			}
			if !c.AutoUpdate() {
				if err := c.Update(); err != nil {
					return err
				}
			}
			rt.logger.Debug().Str("command", c.Command()).Msg("Sent")
			return nil
		},
	}
}
