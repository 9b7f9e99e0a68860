package emulsion

import(
	"math"

	"github.com/abworrall/filmsim/pkg/ecolor"
	"github.com/abworrall/filmsim/pkg/emath"
)

// DecodeGamma approximates the inverse sRGB curve for 8-bit input
const DecodeGamma = 2.2

// Linearize turns code values into normalized linear light, and applies the
// exposure compensation. The result is always LinearFloat.
func Linearize(buf ecolor.Buffer, exposureEV float64) ecolor.Buffer {
	out := buf.Copy()
	out.Encoding = ecolor.LinearFloat

	gain := math.Pow(2, exposureEV)

	var decode func(float64) float64
	switch buf.Encoding {
	case ecolor.Gamma8:
		decode = func(v float64) float64 { return emath.GammaDecode(v / 255.0, DecodeGamma) * gain }
	case ecolor.Linear16:
		decode = func(v float64) float64 { return v / 65535.0 * gain }
	default:
		decode = func(v float64) float64 { return v * gain }
	}

	for _, c := range []ecolor.Channel{ecolor.R, ecolor.G, ecolor.B} {
		out.Plane(c).Map(decode)
	}

	return out
}
