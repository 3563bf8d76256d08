package entity

// WindowGain is the gain multiplier realized by a strategy over one window.
type WindowGain struct {
	Window Interval
	Gain   float64
}

// GainDistribution is the chronological, window-indexed list of gains of one calculation.
type GainDistribution struct {
	Entries []WindowGain
}

// Len returns the number of windows.
func (d GainDistribution) Len() int { return len(d.Entries) }

// Gains returns the gain values in window order.
func (d GainDistribution) Gains() []float64 {
	out := make([]float64, len(d.Entries))
	for i, e := range d.Entries {
		out[i] = e.Gain
	}
	return out
}

// Map returns a new distribution with fn applied to every gain.
func (d GainDistribution) Map(fn func(float64) float64) GainDistribution {
	out := GainDistribution{Entries: make([]WindowGain, len(d.Entries))}
	for i, e := range d.Entries {
		out.Entries[i] = WindowGain{Window: e.Window, Gain: fn(e.Gain)}
	}
	return out
}

// Summary describes the shape of a distribution.
type Summary struct {
	Count           int
	Mean            float64
	StdDev          float64
	Min             float64
	Max             float64
	P5              float64
	P25             float64
	Median          float64
	P75             float64
	P95             float64
	LossProbability float64 // share of windows with gain below 1.0
}
