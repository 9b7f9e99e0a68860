package emulsion

import(
	"math"

	"github.com/abworrall/filmsim/pkg/emath"
)

// Transmittance below this is treated as this, so densities stay finite
const DensityEpsilon = 1e-6

func toDensity(t float64) float64 { return -math.Log10(math.Max(t, DensityEpsilon)) }
func fromDensity(d float64) float64 { return math.Pow(10, -d) }

// Crosstalk mixes the three layers in optical density space, through the
// 3x3 matrix `m` (rows are output channels). The inputs are left alone.
func Crosstalk(r, g, b *emath.FloatGrid, m emath.Mat3) (emath.FloatGrid, emath.FloatGrid, emath.FloatGrid) {
	outR, outG, outB := r.NewFromThis(), g.NewFromThis(), b.NewFromThis()
	rv, gv, bv := r.Values(), g.Values(), b.Values()
	orv, ogv, obv := outR.Values(), outG.Values(), outB.Values()

	for i := range rv {
		d := m.Apply(emath.Vec3{toDensity(rv[i]), toDensity(gv[i]), toDensity(bv[i])})
		orv[i], ogv[i], obv[i] = fromDensity(d[0]), fromDensity(d[1]), fromDensity(d[2])
	}

	return outR, outG, outB
}
