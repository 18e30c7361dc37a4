package lights

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Terminator ends every command line sent to the candle controller.
// The controller firmware reads until it sees this byte; no newline follows.
const Terminator = 'g'

// fieldCount is the id plus the eight range values.
const fieldCount = 9

// Settings holds the eight range values of a single candle.
// The H fields are brightness ("Helligkeit"); B is already taken by blue.
type Settings struct {
	RMin int `json:"rmin" yaml:"rmin"`
	RMax int `json:"rmax" yaml:"rmax"`
	GMin int `json:"gmin" yaml:"gmin"`
	GMax int `json:"gmax" yaml:"gmax"`
	BMin int `json:"bmin" yaml:"bmin"`
	BMax int `json:"bmax" yaml:"bmax"`
	HMin int `json:"hmin" yaml:"hmin"`
	HMax int `json:"hmax" yaml:"hmax"`
}

// Fixed returns settings with min and max collapsed to the same value for
// every channel.
func Fixed(r, g, b, h int) Settings {
	return Settings{RMin: r, RMax: r, GMin: g, GMax: g, BMin: b, BMax: b, HMin: h, HMax: h}
}

func (s Settings) values() [8]int {
	return [8]int{s.RMin, s.RMax, s.GMin, s.GMax, s.BMin, s.BMax, s.HMin, s.HMax}
}

// EncodeCommand renders the wire line for candle id:
//
//	<id>,<rmin>,<rmax>,<gmin>,<gmax>,<bmin>,<bmax>,<hmin>,<hmax>g
func EncodeCommand(id int, s Settings) string {
	var sb strings.Builder
	sb.WriteString(strconv.Itoa(id))
	for _, v := range s.values() {
		sb.WriteByte(',')
		sb.WriteString(strconv.Itoa(v))
	}
	sb.WriteByte(Terminator)
	return sb.String()
}

// DecodeCommand parses a wire line produced by EncodeCommand.
func DecodeCommand(line string) (int, Settings, error) {
	if !strings.HasSuffix(line, string(Terminator)) {
		return 0, Settings{}, fmt.Errorf("command %q missing terminator %q", line, Terminator)
	}
	parts := strings.Split(strings.TrimSuffix(line, string(Terminator)), ",")
	if len(parts) != fieldCount {
		return 0, Settings{}, fmt.Errorf("command %q has %d fields, want %d", line, len(parts), fieldCount)
	}

	nums := make([]int, fieldCount)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return 0, Settings{}, fmt.Errorf("command %q field %d: %w", line, i, err)
		}
		nums[i] = n
	}

	return nums[0], Settings{
		RMin: nums[1], RMax: nums[2],
		GMin: nums[3], GMax: nums[4],
		BMin: nums[5], BMax: nums[6],
		HMin: nums[7], HMax: nums[8],
	}, nil
}

// SendCommand writes a command line to the output channel
func SendCommand(w io.Writer, cmd string) error {
	n, err := io.WriteString(w, cmd)
	if err != nil {
		return fmt.Errorf("failed to send command: %w", err)
	}
	if n != len(cmd) {
		return fmt.Errorf("failed to send command: %w", io.ErrShortWrite)
	}
	return nil
}
