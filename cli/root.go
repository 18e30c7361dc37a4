package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"candle-remote/candle"
	"candle-remote/config"
	"candle-remote/lights"
	"candle-remote/pattern"
	"candle-remote/types"
)

// openLink opens the shared output channel; tests replace it.
var openLink = func(port string, baud int) (io.WriteCloser, error) {
	link, err := lights.Open(port, baud)
	if err != nil {
		return nil, err
	}
	return link, nil
}

// rootOptions holds the persistent flags. Flags the user set override the
// config file.
type rootOptions struct {
	configPath string
	port       string
	baud       int
	count      int
	interval   time.Duration
	logLevel   string
	autoupdate bool
}

// runtime is everything a subcommand needs once flags and config are merged.
type runtime struct {
	cfg      *config.Config
	interval time.Duration
	logger   zerolog.Logger
}

func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "candles",
		Short: "Drive LED candles on an Arduino controller over serial",
		Long: `candles sends color and brightness ranges to an Arduino candle controller.

Every update is one line on the serial link:
  <id>,<rmin>,<rmax>,<gmin>,<gmax>,<bmin>,<bmax>,<hmin>,<hmax>g

Use --port - to print the commands instead of writing to a device.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "path to config file (YAML or JSON)")
	flags.StringVarP(&opts.port, "port", "p", lights.DefaultPort, "serial device, or - for stdout")
	flags.IntVarP(&opts.baud, "baud", "b", lights.DefaultBaudRate, "serial baud rate")
	flags.IntVarP(&opts.count, "count", "n", config.DefaultCandleCount, "number of candles")
	flags.DurationVarP(&opts.interval, "interval", "i", pattern.DefaultInterval, "pause after each candle update")
	flags.StringVar(&opts.logLevel, "log-level", types.LogInfo, "log level: debug|info|warn|error")
	flags.BoolVar(&opts.autoupdate, "autoupdate", false, "transmit on every set")

	cmd.AddCommand(
		newPatternCmd(opts, "random", "Flicker every candle through random colors"),
		newPatternCmd(opts, "fire", "Flicker every candle like a flame"),
		newDemoCmd(opts),
		newSetCmd(opts),
		newSimpleCmd(opts),
		newSendCmd(opts),
		newPortsCmd(),
		newConfigCmd(),
		newVersionCmd(),
	)

	return cmd
}

// load merges the config file with the flags the user actually set.
func (o *rootOptions) load(cmd *cobra.Command) (*runtime, error) {
	cfg := config.Default()
	if o.configPath != "" {
		loaded, err := config.LoadFromFile(o.configPath)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("port") {
		cfg.Serial.Port = o.port
	}
	if flags.Changed("baud") {
		cfg.Serial.Baud = o.baud
	}
	if flags.Changed("count") {
		cfg.Candles.Count = o.count
	}
	if flags.Changed("interval") {
		cfg.Pattern.Interval = o.interval.String()
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = o.logLevel
	}
	if flags.Changed("autoupdate") {
		cfg.Candles.AutoUpdate = o.autoupdate
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	interval, err := cfg.Pattern.ParseInterval()
	if err != nil {
		return nil, err
	}
	logger, err := types.NewLogger(cfg.Log.Level, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}

	return &runtime{cfg: cfg, interval: interval, logger: logger}, nil
}

// open connects to the controller and creates count candles numbered from 0.
func (r *runtime) open() (io.WriteCloser, []*candle.Candle, error) {
	link, err := openLink(r.cfg.Serial.Port, r.cfg.Serial.Baud)
	if err != nil {
		return nil, nil, err
	}
	ev := r.logger.Info()
	if s, ok := link.(fmt.Stringer); ok {
		ev = ev.Stringer("link", s)
	} else {
		ev = ev.Str("port", r.cfg.Serial.Port).Int("baud", r.cfg.Serial.Baud)
	}
	ev.Msg("Serial link open")

	candles := make([]*candle.Candle, r.cfg.Candles.Count)
	for i := range candles {
		candles[i] = candle.New(link, i, r.cfg.Candles.AutoUpdate)
	}
	return link, candles, nil
}

func (r *runtime) close(link io.Closer) {
	if err := link.Close(); err != nil {
		r.logger.Error().Err(err).Msg("Error closing serial port")
	}
}

// Execute runs the root command until it finishes or the process is signalled.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}
