package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"candle-remote/config"
	"candle-remote/lights"
)

type fakeLink struct {
	bytes.Buffer
	port   string
	baud   int
	closed bool
}

func (l *fakeLink) Close() error {
	l.closed = true
	return nil
}

// useFakeLink swaps the serial opener for an in-memory link.
func useFakeLink(t *testing.T) *fakeLink {
	t.Helper()
	link := &fakeLink{}
	prev := openLink
	openLink = func(port string, baud int) (io.WriteCloser, error) {
		link.port = port
		link.baud = baud
		return link, nil
	}
	t.Cleanup(func() { openLink = prev })
	return link
}

func run(t *testing.T, ctx context.Context, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	return out.String(), err
}

func TestSimpleCommand(t *testing.T) {
	link := useFakeLink(t)

	_, err := run(t, context.Background(), "simple", "1", "10", "50", "10", "90")
	require.NoError(t, err)
	assert.Equal(t, "1,10,10,50,50,10,10,90,90g", link.String())
	assert.Equal(t, lights.DefaultPort, link.port)
	assert.Equal(t, 9600, link.baud)
	assert.True(t, link.closed)
}

func TestSimpleCommandBadArgs(t *testing.T) {
	useFakeLink(t)

	_, err := run(t, context.Background(), "simple", "1", "red", "50", "10", "90")
	assert.Error(t, err)

	_, err = run(t, context.Background(), "simple", "1", "10")
	assert.Error(t, err)
}

func TestSetCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "no ranges",
			args: []string{"set", "--id", "2"},
			want: "2,0,0,0,0,0,0,0,0g",
		},
		{
			name: "red and brightness",
			args: []string{"set", "--id", "1", "--rmin", "90", "--rmax", "90", "--hmin", "90", "--hmax", "100"},
			want: "1,90,90,0,0,0,0,90,100g",
		},
		{
			name: "autoupdate sends once",
			args: []string{"set", "--autoupdate", "--id", "3", "--bmax", "7"},
			want: "3,0,0,0,0,0,7,0,0g",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			link := useFakeLink(t)
			_, err := run(t, context.Background(), tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, link.String())
		})
	}
}

func TestSendCommand(t *testing.T) {
	link := useFakeLink(t)

	_, err := run(t, context.Background(), "send", "1,90,90,30,30,10,10,90,100g")
	require.NoError(t, err)
	assert.Equal(t, "1,90,90,30,30,10,10,90,100g", link.String())

	link.Reset()
	_, err = run(t, context.Background(), "send", "1,90,90g")
	assert.Error(t, err)
	assert.Zero(t, link.Len())
}

func TestDemoCommand(t *testing.T) {
	link := useFakeLink(t)

	_, err := run(t, context.Background(), "demo", "--interval", "1ms")
	require.NoError(t, err)
	assert.Equal(t, "1,0,0,0,0,0,0,0,0g1,10,10,50,50,10,10,90,90g", link.String())
}

func TestPatternCommands(t *testing.T) {
	for _, name := range []string{"random", "fire"} {
		t.Run(name, func(t *testing.T) {
			link := useFakeLink(t)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
			defer cancel()

			_, err := run(t, ctx, name, "--count", "3", "--interval", "1ms", "--port", "/dev/ttyUSB3")
			require.NoError(t, err, "interrupt is a clean stop")
			assert.Equal(t, "/dev/ttyUSB3", link.port)
			assert.True(t, link.closed)

			cmds := strings.SplitAfter(link.String(), "g")
			require.Greater(t, len(cmds), 1)
			for i, c := range cmds[:len(cmds)-1] {
				id, _, err := lights.DecodeCommand(c)
				require.NoError(t, err)
				assert.Equal(t, i%3, id)
			}
		})
	}
}

func TestPatternCommandOpenError(t *testing.T) {
	prev := openLink
	openLink = func(port string, baud int) (io.WriteCloser, error) {
		return nil, errors.New("no such device")
	}
	t.Cleanup(func() { openLink = prev })

	_, err := run(t, context.Background(), "random")
	assert.ErrorContains(t, err, "no such device")
}

// brokenLink fails every write, like an unplugged controller.
type brokenLink struct {
	name string
}

func (l *brokenLink) Write(p []byte) (int, error) { return 0, errors.New("device unplugged") }
func (l *brokenLink) Close() error                { return nil }
func (l *brokenLink) String() string              { return l.name }

func TestPatternCommandWriteFault(t *testing.T) {
	prev := openLink
	openLink = func(port string, baud int) (io.WriteCloser, error) {
		return &brokenLink{name: "ttyFAKE@9600"}, nil
	}
	t.Cleanup(func() { openLink = prev })

	for _, name := range []string{"random", "fire"} {
		t.Run(name, func(t *testing.T) {
			cmd := NewRootCmd()
			var stderr bytes.Buffer
			cmd.SetOut(io.Discard)
			cmd.SetErr(&stderr)
			cmd.SetArgs([]string{name, "--interval", "1ms"})

			err := cmd.ExecuteContext(context.Background())
			assert.ErrorContains(t, err, "device unplugged", "a write fault is not a clean stop")
			assert.Contains(t, stderr.String(), "ttyFAKE@9600", "the open link is logged")
		})
	}
}

func TestConfigFileAndFlagOverride(t *testing.T) {
	link := useFakeLink(t)
	path := filepath.Join(t.TempDir(), "candles.yaml")
	require.NoError(t, os.WriteFile(path, []byte("serial:\n  port: /dev/ttyS9\n  baud: 19200\n"), 0644))

	_, err := run(t, context.Background(), "--config", path, "simple", "0", "1", "2", "3", "4")
	require.NoError(t, err)
	assert.Equal(t, "/dev/ttyS9", link.port)
	assert.Equal(t, 19200, link.baud)

	_, err = run(t, context.Background(), "--config", path, "--baud", "9600", "simple", "0", "1", "2", "3", "4")
	require.NoError(t, err)
	assert.Equal(t, 9600, link.baud)
}

func TestFlagDefaultsMatchConfigDefaults(t *testing.T) {
	cfg := config.Default()
	flags := NewRootCmd().PersistentFlags()

	assert.Equal(t, cfg.Pattern.Interval, flags.Lookup("interval").DefValue)
	assert.Equal(t, cfg.Log.Level, flags.Lookup("log-level").DefValue)
	assert.Equal(t, cfg.Serial.Port, flags.Lookup("port").DefValue)
	assert.Equal(t, strconv.Itoa(cfg.Serial.Baud), flags.Lookup("baud").DefValue)
	assert.Equal(t, strconv.Itoa(cfg.Candles.Count), flags.Lookup("count").DefValue)
}

func TestInvalidLogLevel(t *testing.T) {
	useFakeLink(t)
	_, err := run(t, context.Background(), "--log-level", "shouty", "simple", "0", "1", "2", "3", "4")
	assert.Error(t, err)
}

func TestConfigInitAndValidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "candles.yaml")

	out, err := run(t, context.Background(), "config", "init", "-o", path)
	require.NoError(t, err)
	assert.Contains(t, out, path)

	out, err = run(t, context.Background(), "config", "validate", "-f", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration valid")
	assert.Contains(t, out, "/dev/ttyACM0 @ 9600 baud")
}

func TestPortsCommand(t *testing.T) {
	prev := listPorts
	t.Cleanup(func() { listPorts = prev })

	listPorts = func() ([]string, error) { return []string{"/dev/ttyACM0", "/dev/ttyUSB0"}, nil }
	out, err := run(t, context.Background(), "ports")
	require.NoError(t, err)
	assert.Equal(t, "/dev/ttyACM0\n/dev/ttyUSB0\n", out)

	listPorts = func() ([]string, error) { return nil, nil }
	out, err = run(t, context.Background(), "ports")
	require.NoError(t, err)
	assert.Equal(t, "no serial ports found\n", out)
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, context.Background(), "version")
	require.NoError(t, err)
	assert.Equal(t, "candles version 1.0.0\n", out)
}
