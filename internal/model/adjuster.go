package model

// Adjustment limits and step sizes.
const (
	MinBrightness = -512
	MaxBrightness = 255
	MinContrast   = -100
	MaxContrast   = 700

	BrightnessStep = 1
	ContrastStep   = 4
)

// Adjustment is the brightness/contrast/invert triple of one channel.
type Adjustment struct {
	Brightness int
	Contrast   int
	Invert     bool
}

// Adjuster holds the adjustment of the displayed channel and remembers the
// last adjustment used on every other channel.
type Adjuster struct {
	Adjustment

	cache map[int]Adjustment
}

func NewAdjuster() *Adjuster {
	return &Adjuster{cache: make(map[int]Adjustment)}
}

// Switch saves the current values under the outgoing channel and loads the
// incoming channel's values. Channels never visited load neutral values.
func (a *Adjuster) Switch(from, to int) {
	if a.cache == nil {
		a.cache = make(map[int]Adjustment)
	}
	a.cache[from] = a.Adjustment
	a.Adjustment = a.cache[to]
}

// Cached returns the remembered adjustment for a channel.
func (a *Adjuster) Cached(channel int) (Adjustment, bool) {
	adj, ok := a.cache[channel]
	return adj, ok
}

// StepBrightness returns the brightness one step in the direction of change,
// clamped to the allowed range.
func (a *Adjuster) StepBrightness(change int) int {
	return clamp(a.Brightness+sign(change)*BrightnessStep, MinBrightness, MaxBrightness)
}

// StepContrast returns the contrast one step in the direction of change,
// clamped to the allowed range.
func (a *Adjuster) StepContrast(change int) int {
	return clamp(a.Contrast+sign(change)*ContrastStep, MinContrast, MaxContrast)
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	default:
		return 0
	}
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
