package estats

import(
	"fmt"
	"image"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/abworrall/filmsim/pkg/emath"
)

// ImgDiff compares two images of the same size, and returns an error metric;
// the less similar, the higher the value. It is the mean CIE76 color
// difference (Delta E, where ~2.3 is a just noticeable difference) over all
// pixels. It also returns the per-pixel differences, for dumping with ToImg.
func ImgDiff(a, b image.Image) (float64, emath.FloatGrid, error) {
	ba, bb := a.Bounds(), b.Bounds()
	if ba.Dx() != bb.Dx() || ba.Dy() != bb.Dy() {
		return 0, emath.FloatGrid{}, fmt.Errorf("ImgDiff: size mismatch %dx%d vs %dx%d", ba.Dx(), ba.Dy(), bb.Dx(), bb.Dy())
	}
	if ba.Empty() {
		return 0, emath.FloatGrid{}, fmt.Errorf("ImgDiff: empty images")
	}

	diff := emath.NewFloatGrid(ba.Dx(), ba.Dy())
	totErr := 0.0

	for y:=0; y<ba.Dy(); y++ {
		for x:=0; x<ba.Dx(); x++ {
			c1, _ := colorful.MakeColor(a.At(ba.Min.X+x, ba.Min.Y+y))
			c2, _ := colorful.MakeColor(b.At(bb.Min.X+x, bb.Min.Y+y))

			// DistanceLab works on L* in [0,1]; scale to the usual [0,100] units
			pixErr := 100.0 * c1.DistanceLab(c2)

			diff.Set(x, y, pixErr)
			totErr += pixErr
		}
	}

	return totErr / float64(diff.Len()), diff, nil
}
