package emulsion

import(
	"github.com/abworrall/filmsim/pkg/ecolor"
	"github.com/abworrall/filmsim/pkg/emath"
)

// StandardSize returns the working dimensions for an input of w x h: the
// shorter edge becomes target, the longer edge keeps the aspect ratio
// (truncated), and both are bumped up to the next even number. It also
// returns the scale factor.
func StandardSize(w, h, target int) (int, int, float64) {
	var scale float64
	var nw, nh int

	if h < w {
		scale = float64(target) / float64(h)
		nw, nh = int(float64(w) * scale), target
	} else {
		scale = float64(target) / float64(w)
		nw, nh = target, int(float64(h) * scale)
	}

	if nw%2 != 0 { nw++ }
	if nh%2 != 0 { nh++ }

	return nw, nh, scale
}

// Standardize resizes the code values in buf to the working resolution. The
// encoding and channel order tags are carried over unchanged; a negative
// target returns a copy at the original size. Catmull-Rom overshoots at hard
// edges, so the result is saturated to the encoding's code range.
func Standardize(buf ecolor.Buffer, target int) ecolor.Buffer {
	if target < 0 || buf.Empty() {
		return buf.Copy()
	}

	w, h, scale := StandardSize(buf.Dx(), buf.Dy(), target)

	kernel := emath.CatmullRomKernel
	if scale < 1 {
		kernel = emath.AreaKernel
	}

	planes := [3]emath.FloatGrid{}
	for _, c := range []ecolor.Channel{ecolor.R, ecolor.G, ecolor.B} {
		planes[c] = buf.Plane(c).Resample(w, h, kernel)
	}

	out, _ := ecolor.NewBufferFromPlanes(planes[ecolor.R], planes[ecolor.G], planes[ecolor.B], buf.Order, buf.Encoding)
	out.Saturate()
	return out
}
