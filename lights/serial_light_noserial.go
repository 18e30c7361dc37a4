//go:build noserial

package lights

import "fmt"

var errNoSerial = fmt.Errorf("serial port support not available in this build")

// Open only supports the stdout dry run in noserial builds
func Open(port string, baudRate int) (*SerialLink, error) {
	if port == StdoutPort {
		return stdoutLink(baudRate), nil
	}
	return nil, fmt.Errorf("failed to open serial port %s: %w", port, errNoSerial)
}

// ListPorts always fails in noserial builds
func ListPorts() ([]string, error) {
	return nil, errNoSerial
}
