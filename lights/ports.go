//go:build !noserial

package lights

import (
	"fmt"
	"sort"

	"go.bug.st/serial"
)

// ListPorts returns the serial devices the OS currently reports, sorted by name
func ListPorts() ([]string, error) {
	ports, err := serial.GetPortsList()
	if err != nil {
		return nil, fmt.Errorf("failed to list serial ports: %w", err)
	}
	sort.Strings(ports)
	return ports, nil
}
