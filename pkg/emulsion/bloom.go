package emulsion

import(
	"math"

	"github.com/abworrall/filmsim/pkg/emath"
)

// Per-level bloom weights, finest level first. Levels beyond the table use 1.0.
var baseWeights = []float64{0.0, 0.1, 0.2, 0.4, 0.8, 1.0, 1.0}

func baseWeight(i int) float64 {
	if i < len(baseWeights) {
		return baseWeights[i]
	}
	return 1.0
}

// HalationStrength is the global bloom strength for a preset's sens_factor.
func HalationStrength(sensFactor, intensity float64) float64 {
	return sensFactor * 1.5 * intensity
}

// Bloom builds a pyramid of `levels` successively halved copies of the
// exposure field, and sums them back at full resolution, weighting each by
// baseWeight[i] * radiusMult^(i/2). Wide layers (radiusMult > 1) get more of
// the coarse levels. The sum is not normalized.
func Bloom(exposure *emath.FloatGrid, strength, radiusMult float64, levels int) emath.FloatGrid {
	acc := exposure.NewFromThis()
	if strength <= 0 || exposure.Empty() {
		return acc
	}

	w, h := exposure.Dx(), exposure.Dy()
	level := *exposure.Copy()

	for i:=1; i<=levels; i++ {
		level = level.PyrDown()
		weight := baseWeight(i) * math.Pow(radiusMult, float64(i) * 0.5)
		if weight == 0 {
			continue
		}
		up := level.ResizeBilinear(w, h)
		acc.AddScaled(&up, weight)
	}

	acc.Scale(strength * 0.1)
	return acc
}

// Composite mixes the direct and scattered light for one layer: exposure*direct + bloom*scatter
func Composite(exposure *emath.FloatGrid, bloom *emath.FloatGrid, direct, scatter float64) emath.FloatGrid {
	out := *exposure.Copy()
	out.Scale(direct)
	out.AddScaled(bloom, scatter)
	return out
}
