package emulsion

import(
	"math"
	"math/rand"

	"github.com/abworrall/filmsim/pkg/emath"
)

const(
	grainSensitivity  = 1.0 // per-layer sensitivity input, never varied
	minGrainVisibility = 0.05
	maxGrainVisibility = 0.9
)

// ISOFactor scales grain amplitude with film speed; ISO 200 is unity.
func ISOFactor(iso int) float64 {
	return math.Pow(float64(iso) / 200.0, 0.6)
}

// GrainVisibility peaks in the midtones, and never drops below a small floor.
func GrainVisibility(v float64) float64 {
	return emath.Clamp(2.0 * (0.5 - math.Abs(v - 0.5)), minGrainVisibility, maxGrainVisibility)
}

// Grain returns the grain field for one channel: standard normal noise from
// rng, weighted by the visibility of the channel's (pre-grain) value. It does
// not modify the channel. An ISO <= 0 yields zeros, and draws nothing from rng.
func Grain(channel *emath.FloatGrid, base float64, iso int, rng *rand.Rand) emath.FloatGrid {
	out := channel.NewFromThis()
	if iso <= 0 {
		return out
	}

	amplitude := base * ISOFactor(iso)
	sens := emath.Clamp(grainSensitivity, 0.4, 0.6)

	vals, cv := out.Values(), channel.Values()
	for i := range vals {
		noise := rng.NormFloat64()
		vals[i] = noise * GrainVisibility(cv[i]) * sens * amplitude
	}
	return out
}
