package emulsion

import(
	"github.com/abworrall/filmsim/pkg/ecolor"
	"github.com/abworrall/filmsim/pkg/emath"
	"github.com/abworrall/filmsim/pkg/film"
)

// Exposure computes one layer's linear exposure field, the absorption-weighted
// sum of the input channels. lin should be LinearFloat.
func Exposure(lin ecolor.Buffer, l film.LayerConfig) emath.FloatGrid {
	r, g, b := lin.Plane(ecolor.R), lin.Plane(ecolor.G), lin.Plane(ecolor.B)

	out := r.NewFromThis()
	vals, rv, gv, bv := out.Values(), r.Values(), g.Values(), b.Values()
	for i := range vals {
		vals[i] = l.AbsorbR*rv[i] + l.AbsorbG*gv[i] + l.AbsorbB*bv[i]
	}
	return out
}

// Separate returns the exposure field of each rendering layer (in output
// channel order; see FilmPreset.Layers) plus the pan field.
func Separate(lin ecolor.Buffer, p film.FilmPreset) ([]emath.FloatGrid, emath.FloatGrid) {
	pan := Exposure(lin, p.Pan)
	if !p.IsColor() {
		return []emath.FloatGrid{pan}, pan
	}

	layers := []emath.FloatGrid{}
	for _, l := range p.Layers() {
		layers = append(layers, Exposure(lin, l))
	}
	return layers, pan
}
