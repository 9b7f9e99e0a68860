package emulsion

import(
	"image"
	"image/color"
	"math"

	"github.com/abworrall/filmsim/pkg/emath"
	"github.com/abworrall/filmsim/pkg/film"
)

// A ToneCurve maps a linear light value onto a gamma-encoded display value in [0,1].
type ToneCurve interface {
	Map(x float64) float64
}

// FilmicCurve is Krzysztof Narkowicz's fit of the ACES filmic curve,
// https://knarkowicz.wordpress.com/2016/01/06/aces-filmic-tone-mapping-curve/
type FilmicCurve struct{}

const(
	acesA = 2.51
	acesB = 0.03
	acesC = 2.43
	acesD = 0.59
	acesE = 0.14

	displayGamma = 2.2
)

func (FilmicCurve)Map(x float64) float64 {
	x = math.Max(x, 0)
	var y float64
	if x > 1 {
		// Same ratio with x^2 divided out, so huge values don't overflow to Inf/Inf
		y = (acesA + acesB/x) / (acesC + acesD/x + acesE/(x*x))
	} else {
		y = (x * (acesA*x + acesB)) / (x * (acesC*x + acesD) + acesE)
	}
	return emath.GammaEncode(emath.Clamp(y, 0, 1), displayGamma)
}

// ReinhardCurve is the simple x/(1+x) operator, encoded with the film's own gamma.
type ReinhardCurve struct {
	Gamma float64
}

func (rc ReinhardCurve)Map(x float64) float64 {
	x = math.Max(x, 0)
	y := x / (1.0 + x)
	if math.IsInf(x, 1) {
		y = 1.0
	}
	return emath.GammaEncode(y, rc.Gamma)
}

// Curve resolves a style to the tone curve for the given preset.
func (s ToneStyle)Curve(p film.FilmPreset) ToneCurve {
	switch s {
	case Reinhard:
		return ReinhardCurve{Gamma: p.Curve.Gamma}
	default:
		return FilmicCurve{}
	}
}

// quantize truncates a display value in [0,1] to 8 bits, as a float->uint8 cast would
func quantize(v float64) uint8 {
	if math.IsNaN(v) {
		return 0
	}
	return uint8(emath.Clamp(v * 255.0, 0, 255))
}

// PackRGB tonemaps three channels into an opaque 8-bit image.
func PackRGB(r, g, b *emath.FloatGrid, tc ToneCurve) *image.RGBA {
	w, h := r.Dx(), r.Dy()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y:=0; y<h; y++ {
		for x:=0; x<w; x++ {
			img.SetRGBA(x, y, color.RGBA{
				R: quantize(tc.Map(r.Get(x,y))),
				G: quantize(tc.Map(g.Get(x,y))),
				B: quantize(tc.Map(b.Get(x,y))),
				A: 0xFF,
			})
		}
	}
	return img
}

// PackGray tonemaps a single channel into an 8-bit grayscale image.
func PackGray(ch *emath.FloatGrid, tc ToneCurve) *image.Gray {
	w, h := ch.Dx(), ch.Dy()
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y:=0; y<h; y++ {
		for x:=0; x<w; x++ {
			img.SetGray(x, y, color.Gray{Y: quantize(tc.Map(ch.Get(x,y)))})
		}
	}
	return img
}
