package emath

import(
	"math"

	"golang.org/x/image/draw"
)

var(
	// AreaKernel is a box filter. When shrinking, its support widens with the
	// scale factor, so each output value is the average of the input values
	// it covers.
	AreaKernel = &draw.Kernel{Support: 0.5, At: func(t float64) float64 { return 1 }}

	// CatmullRomKernel is the high quality kernel we use for enlarging.
	CatmullRomKernel = draw.CatmullRom
)

// Resample returns a new grid of the given size, computed with a separable
// convolution against `k`. When shrinking, the kernel is stretched by the
// scale factor so every input sample contributes. Weights are normalized per
// output sample, and reads past the edge clamp.
func (g1 *FloatGrid)Resample(width, height int, k *draw.Kernel) FloatGrid {
	if width == g1.Dx() && height == g1.Dy() {
		return *g1.Copy()
	}

	xTaps := resampleTaps(g1.Dx(), width, k)
	yTaps := resampleTaps(g1.Dy(), height, k)

	//--- X pass, build up in T
	T := NewFloatGrid(width, g1.Dy())
	for y:=0; y<g1.Dy(); y++ {
		for x:=0; x<width; x++ {
			t := 0.0
			for _, tap := range xTaps[x] {
				t += tap.w * g1.Get(tap.i, y)
			}
			T.Set(x, y, t)
		}
	}

	//--- Y pass, read from T and generate output
	g2 := NewFloatGrid(width, height)
	for x:=0; x<width; x++ {
		for y:=0; y<height; y++ {
			t := 0.0
			for _, tap := range yTaps[y] {
				t += tap.w * T.Get(x, tap.i)
			}
			g2.Set(x, y, t)
		}
	}

	return g2
}

type tap struct {
	i int
	w float64
}

func resampleTaps(src, dst int, k *draw.Kernel) [][]tap {
	taps  := make([][]tap, dst)
	scale := float64(src) / float64(dst)
	filterScale := 1.0
	if scale > 1.0 {
		filterScale = scale
	}
	support := k.Support * filterScale

	for i:=0; i<dst; i++ {
		center := (float64(i)+0.5)*scale - 0.5
		lo := int(math.Ceil(center - support))
		hi := int(math.Floor(center + support))

		sum := 0.0
		for j:=lo; j<=hi; j++ {
			// draw.Kernel.At expects a non-negative distance, inside the support
			t := math.Abs(float64(j) - center) / filterScale
			if t > k.Support {
				continue
			}
			w := k.At(t)
			if w == 0 {
				continue
			}
			taps[i] = append(taps[i], tap{clampIndex(j, src), w})
			sum += w
		}

		if sum == 0 {
			// Nothing in range; fall back to nearest neighbour
			taps[i] = []tap{{clampIndex(int(math.Round(center)), src), 1}}
			continue
		}
		for n := range taps[i] {
			taps[i][n].w /= sum
		}
	}

	return taps
}
