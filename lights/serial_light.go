//go:build !noserial

package lights

import (
	"fmt"

	"github.com/tarm/serial"
)

// Open opens the serial device once; every candle writes through the same link.
func Open(port string, baudRate int) (*SerialLink, error) {
	if port == StdoutPort {
		return stdoutLink(baudRate), nil
	}

	c := &serial.Config{
		Name: port,
		Baud: baudRate,
	}
	s, err := serial.OpenPort(c)
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port %s: %w", port, err)
	}

	return &SerialLink{
		port:     port,
		baudRate: baudRate,
		w:        s,
	}, nil
}
