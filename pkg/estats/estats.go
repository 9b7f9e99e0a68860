package estats

// Diagnostics about rendered frames, for the verbose logs and for comparing
// a render against a reference.

import(
	"fmt"
	"image"
	"image/color"

	"github.com/codahale/hdrhistogram"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/skypies/util/histogram"
	"gonum.org/v1/gonum/stat"

	"github.com/abworrall/filmsim/pkg/emath"
)

type Summary struct {
	Bounds      image.Rectangle

	Mean        [3]float64        // per channel (R,G,B), in 8-bit units
	StdDev      [3]float64
	MeanL       float64           // CIE L*, [0,100]

	P01, P50, P99 int64           // luma percentiles, 8-bit units
	Clipped     float64           // fraction of pixels with a channel at 0 or 255

	Levels      histogram.Histogram // luma, one bucket per 8-bit level
}

func (s Summary)String() string {
	return fmt.Sprintf("%dx%d mean=[%.1f, %.1f, %.1f] sd=[%.1f, %.1f, %.1f] L*=%.1f luma[1%%,50%%,99%%]=[%d, %d, %d] clipped=%.2f%%",
		s.Bounds.Dx(), s.Bounds.Dy(), s.Mean[0], s.Mean[1], s.Mean[2], s.StdDev[0], s.StdDev[1], s.StdDev[2],
		s.MeanL, s.P01, s.P50, s.P99, 100.0 * s.Clipped)
}

// Luma is Rec.709 luma, from 8-bit channel values.
func Luma(r, g, b float64) float64 {
	return 0.2126*r + 0.7152*g + 0.0722*b
}

func rgb8(c color.Color) (float64, float64, float64) {
	r, g, b, _ := c.RGBA()
	return float64(r>>8), float64(g>>8), float64(b>>8)
}

// Summarize gathers statistics over every pixel of an 8-bit image.
func Summarize(img image.Image) Summary {
	b := img.Bounds()
	s := Summary{
		Bounds: b,
		Levels: histogram.Histogram{NumBuckets:256, ValMin:0, ValMax:256},
	}
	if b.Empty() {
		return s
	}

	chans := [3][]float64{}
	lumas := hdrhistogram.New(1, 255, 3) // lowest discernible value; zeros still record
	totL, nClipped := 0.0, 0

	for y:=b.Min.Y; y<b.Max.Y; y++ {
		for x:=b.Min.X; x<b.Max.X; x++ {
			c := img.At(x, y)
			r, g, bl := rgb8(c)
			chans[0] = append(chans[0], r)
			chans[1] = append(chans[1], g)
			chans[2] = append(chans[2], bl)

			luma := int(Luma(r, g, bl))
			lumas.RecordValue(int64(luma))
			s.Levels.Add(histogram.ScalarVal(luma))

			if cf, ok := colorful.MakeColor(c); ok {
				l, _, _ := cf.Lab()
				totL += l
			}

			for _, v := range []float64{r, g, bl} {
				if v == 0 || v == 255 {
					nClipped++
					break
				}
			}
		}
	}

	for i := range chans {
		s.Mean[i], s.StdDev[i] = stat.MeanStdDev(chans[i], nil)
	}

	n := float64(b.Dx() * b.Dy())
	s.MeanL   = 100.0 * totL / n
	s.Clipped = float64(nClipped) / n
	s.P01     = valueAtQuantile(lumas, 1)
	s.P50     = valueAtQuantile(lumas, 50)
	s.P99     = valueAtQuantile(lumas, 99)

	return s
}

// valueAtQuantile is h.ValueAtQuantile, except that a target count that rounds
// down to zero (q% of a small image) means the smallest value rather than the
// first bucket.
func valueAtQuantile(h *hdrhistogram.Histogram, q float64) int64 {
	if int64(q / 100.0 * float64(h.TotalCount()) + 0.5) < 1 {
		return h.Min()
	}
	return h.ValueAtQuantile(q)
}

// GridStats returns the mean and standard deviation of a grid's values.
func GridStats(g *emath.FloatGrid) (float64, float64) {
	if g.Empty() {
		return 0, 0
	}
	return stat.MeanStdDev(g.Values(), nil)
}
