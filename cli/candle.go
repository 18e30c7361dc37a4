package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"candle-remote/candle"
	"candle-remote/lights"
)

// rangeFlags maps each range flag to its slot in candle.Fields.
var rangeFlags = []struct {
	name  string
	usage string
	field func(f *candle.Fields) **int
}{
	{"rmin", "minimum red", func(f *candle.Fields) **int { return &f.RMin }},
	{"rmax", "maximum red", func(f *candle.Fields) **int { return &f.RMax }},
	{"gmin", "minimum green", func(f *candle.Fields) **int { return &f.GMin }},
	{"gmax", "maximum green", func(f *candle.Fields) **int { return &f.GMax }},
	{"bmin", "minimum blue", func(f *candle.Fields) **int { return &f.BMin }},
	{"bmax", "maximum blue", func(f *candle.Fields) **int { return &f.BMax }},
	{"hmin", "minimum brightness", func(f *candle.Fields) **int { return &f.HMin }},
	{"hmax", "maximum brightness", func(f *candle.Fields) **int { return &f.HMax }},
}

func newSetCmd(opts *rootOptions) *cobra.Command {
	var id int
	values := make([]int, len(rangeFlags))

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Set color and brightness ranges of one candle",
		Long: `Set any subset of a candle's ranges and transmit it.

Only flags given on the command line are applied; an explicit 0 is a value.
Ranges not given go out as 0 since the controller state is not read back.

Example:
  candles set --id 1 --rmin 90 --rmax 90 --hmin 90 --hmax 100`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var fields candle.Fields
			for i, rf := range rangeFlags {
				if cmd.Flags().Changed(rf.name) {
					*rf.field(&fields) = candle.Int(values[i])
				}
			}
			return withCandle(cmd, opts, id, func(c *candle.Candle) error {
				return c.Set(fields)
			})
		},
	}

	cmd.Flags().IntVar(&id, "id", 0, "candle number")
	for i, rf := range rangeFlags {
		cmd.Flags().IntVar(&values[i], rf.name, 0, rf.usage)
	}
	return cmd
}

func newSimpleCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "simple ID RED GREEN BLUE BRIGHTNESS",
		Short: "Set one candle to a fixed color and brightness",
		Long: `Set min and max of every channel to the same value and transmit.

Example:
  candles simple 1 10 50 10 90`,
		Args: cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			nums := make([]int, len(args))
			for i, a := range args {
				n, err := strconv.Atoi(a)
				if err != nil {
					return fmt.Errorf("argument %d: %w", i+1, err)
				}
				nums[i] = n
			}
			return withCandle(cmd, opts, nums[0], func(c *candle.Candle) error {
				return c.SimpleSet(nums[1], nums[2], nums[3], nums[4])
			})
		},
	}
}

func newSendCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "send LINE",
		Short: "Validate and send a raw command line",
		Long: `Send a raw command line such as 1,90,90,30,30,10,10,90,100g.

The line is parsed first; malformed lines are rejected without touching the port.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, s, err := lights.DecodeCommand(args[0])
			if err != nil {
				return err
			}
			return withCandle(cmd, opts, id, func(c *candle.Candle) error {
				return c.Set(candle.Fields{
					RMin: candle.Int(s.RMin), RMax: candle.Int(s.RMax),
					GMin: candle.Int(s.GMin), GMax: candle.Int(s.GMax),
					BMin: candle.Int(s.BMin), BMax: candle.Int(s.BMax),
					HMin: candle.Int(s.HMin), HMax: candle.Int(s.HMax),
				})
			})
		},
	}
}

// withCandle opens the link, applies fn to candle id and transmits exactly once.
func withCandle(cmd *cobra.Command, opts *rootOptions, id int, fn func(c *candle.Candle) error) error {
	rt, err := opts.load(cmd)
	if err != nil {
		return err
	}
	link, err := openLink(rt.cfg.Serial.Port, rt.cfg.Serial.Baud)
	if err != nil {
		return err
	}
	defer rt.close(link)

	c := candle.New(link, id, rt.cfg.Candles.AutoUpdate)
	if err := fn(c); err != nil {
		return err
	}
	if !c.AutoUpdate() {
		if err := c.Update(); err != nil {
			return err
		}
	}
	rt.logger.Debug().Str("command", c.Command()).Msg("Sent")
	return nil
}
