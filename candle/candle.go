// Package candle holds the state of a single addressable LED candle and
// pushes it to the controller over a shared output channel.
package candle

import (
	"io"

	"candle-remote/lights"
)

// Fields is a partial update. A nil field is left unchanged; a non-nil field
// is applied even when it points at 0.
type Fields struct {
	RMin, RMax *int
	GMin, GMax *int
	BMin, BMax *int
	HMin, HMax *int
}

// Int returns a pointer to v for use in Fields.
func Int(v int) *int {
	return &v
}

// Candle is one physical candle on the controller.
type Candle struct {
	number     int
	autoupdate bool
	settings   lights.Settings
	w          io.Writer
}

// New creates a candle with every range at 0. w is shared by all candles on
// the same controller.
func New(w io.Writer, number int, autoupdate bool) *Candle {
	return &Candle{
		number:     number,
		autoupdate: autoupdate,
		w:          w,
	}
}

func (c *Candle) Number() int {
	return c.number
}

func (c *Candle) AutoUpdate() bool {
	return c.autoupdate
}

// Settings returns a copy of the current ranges.
func (c *Candle) Settings() lights.Settings {
	return c.settings
}

// Set applies the present fields and, with autoupdate on, transmits.
// No range checking is done; min may exceed max.
func (c *Candle) Set(f Fields) error {
	apply(&c.settings.RMin, f.RMin)
	apply(&c.settings.RMax, f.RMax)
	apply(&c.settings.GMin, f.GMin)
	apply(&c.settings.GMax, f.GMax)
	apply(&c.settings.BMin, f.BMin)
	apply(&c.settings.BMax, f.BMax)
	apply(&c.settings.HMin, f.HMin)
	apply(&c.settings.HMax, f.HMax)

	if c.autoupdate {
		return c.Update()
	}
	return nil
}

// SimpleSet fixes each channel to a single value (min == max).
func (c *Candle) SimpleSet(r, g, b, h int) error {
	return c.Set(Fields{
		RMin: Int(r), RMax: Int(r),
		GMin: Int(g), GMax: Int(g),
		BMin: Int(b), BMax: Int(b),
		HMin: Int(h), HMax: Int(h),
	})
}

// Command returns the wire line Update would send.
func (c *Candle) Command() string {
	return lights.EncodeCommand(c.number, c.settings)
}

// Update sends the current state in a single write. Nothing is retried.
func (c *Candle) Update() error {
	return lights.SendCommand(c.w, c.Command())
}

func apply(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}
