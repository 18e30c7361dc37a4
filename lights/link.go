package lights

import (
	"fmt"
	"io"
	"os"
)

const (
	DefaultPort     = "/dev/ttyACM0"
	DefaultBaudRate = 9600

	// StdoutPort routes commands to standard output instead of a device.
	StdoutPort = "-"
)

// SerialLink is the shared output channel to the candle controller
type SerialLink struct {
	port     string
	baudRate int
	w        io.WriteCloser
}

// stdoutLink is the dry-run link; it is available in every build.
func stdoutLink(baudRate int) *SerialLink {
	return &SerialLink{port: StdoutPort, baudRate: baudRate, w: nopCloser{os.Stdout}}
}

func (l *SerialLink) Write(p []byte) (int, error) {
	return l.w.Write(p)
}

// Close releases the underlying port
func (l *SerialLink) Close() error {
	if err := l.w.Close(); err != nil {
		return fmt.Errorf("failed to close serial port %s: %w", l.port, err)
	}
	return nil
}

// String describes the link for log output
func (l *SerialLink) String() string {
	return fmt.Sprintf("%s@%d", l.port, l.baudRate)
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
