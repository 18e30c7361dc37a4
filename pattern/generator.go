package pattern

import (
	"fmt"
	"math/rand"

	"candle-remote/lights"
)

// MaxLevel is the top of every channel's range on the controller.
const MaxLevel = 100

// Generator produces the next set of values for one candle.
type Generator interface {
	Name() string
	Next(rng *rand.Rand) lights.Settings
}

// Random picks every channel uniformly from [0,MaxLevel].
type Random struct{}

func (Random) Name() string { return "random" }

func (Random) Next(rng *rand.Rand) lights.Settings {
	return lights.Fixed(
		between(rng, 0, MaxLevel),
		between(rng, 0, MaxLevel),
		between(rng, 0, MaxLevel),
		between(rng, 0, MaxLevel),
	)
}

// Window is an inclusive value range.
type Window struct {
	Lo, Hi int
}

// Fire keeps red and brightness high, green in the middle and blue near off,
// which reads as a flickering flame.
type Fire struct {
	Red, Green, Blue, Brightness Window
}

// DefaultFire is the flame palette used by the fire driver.
var DefaultFire = Fire{
	Red:        Window{Lo: 80, Hi: 100},
	Green:      Window{Lo: 20, Hi: 50},
	Blue:       Window{Lo: 0, Hi: 10},
	Brightness: Window{Lo: 60, Hi: 100},
}

func (Fire) Name() string { return "fire" }

func (f Fire) Next(rng *rand.Rand) lights.Settings {
	return lights.Fixed(
		between(rng, f.Red.Lo, f.Red.Hi),
		between(rng, f.Green.Lo, f.Green.Hi),
		between(rng, f.Blue.Lo, f.Blue.Hi),
		between(rng, f.Brightness.Lo, f.Brightness.Hi),
	)
}

// ByName returns the generator registered under name
func ByName(name string) (Generator, error) {
	switch name {
	case Random{}.Name():
		return Random{}, nil
	case DefaultFire.Name():
		return DefaultFire, nil
	default:
		return nil, fmt.Errorf("unsupported pattern: %s", name)
	}
}

// between returns a uniform integer in [lo,hi].
func between(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.Intn(hi-lo+1)
}
