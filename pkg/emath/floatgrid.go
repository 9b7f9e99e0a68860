package emath

import(
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg" // Move to https://pkg.go.dev/golang.org/x/image/font#Drawer sometime
)

// A FloatGrid is a grid of floats, with some operations. It holds a single
// channel of an image: an exposure field, a bloom accumulator, etc.
type FloatGrid struct {
	stride int
	values []float64
}

func NewFloatGrid(w, h int) FloatGrid {
	return FloatGrid{
		stride: w,
		values: make([]float64, w*h),
	}
}

func (g1 *FloatGrid)NewFromThis() FloatGrid  { return NewFloatGrid(g1.Dx(), g1.Dy()) }
func (fg *FloatGrid)Set(x, y int, v float64) { fg.values[fg.stride*y + x] = v }
func (fg *FloatGrid)Get(x, y int) float64    { return fg.values[fg.stride*y + x] }
func (fg *FloatGrid)Dx() int                 { return fg.stride }
func (fg *FloatGrid)Dy() int {
	if fg.stride == 0 {
		return 0
	}
	return len(fg.values) / fg.stride
}
func (fg *FloatGrid)Len() int                { return len(fg.values) }
func (fg *FloatGrid)Empty() bool             { return len(fg.values) == 0 }

// Values exposes the backing slice (row-major). Callers that write to it mutate the grid.
func (fg *FloatGrid)Values() []float64       { return fg.values }

func (g1 *FloatGrid)Copy() *FloatGrid {
	g2 := FloatGrid{stride: g1.stride, values:make([]float64, len(g1.values))}
	copy(g2.values, g1.values)
	return &g2
}

func (g1 *FloatGrid)SameSize(g2 *FloatGrid) bool {
	return g1.Dx() == g2.Dx() && g1.Dy() == g2.Dy()
}

// Map applies `f` to every value, in place.
func (fg *FloatGrid)Map(f func(float64) float64) {
	for i:=0; i<len(fg.values); i++ {
		fg.values[i] = f(fg.values[i])
	}
}

func (fg *FloatGrid)Fill(v float64) {
	for i:=0; i<len(fg.values); i++ {
		fg.values[i] = v
	}
}

func (fg *FloatGrid)Scale(f float64) {
	for i:=0; i<len(fg.values); i++ {
		fg.values[i] *= f
	}
}

// AddScaled does fg += g2 * f. The grids must be the same size.
func (fg *FloatGrid)AddScaled(g2 *FloatGrid, f float64) {
	if !fg.SameSize(g2) {
		panic(fmt.Sprintf("FloatGrid.AddScaled: size mismatch %dx%d vs %dx%d", fg.Dx(), fg.Dy(), g2.Dx(), g2.Dy()))
	}
	for i:=0; i<len(fg.values); i++ {
		fg.values[i] += g2.values[i] * f
	}
}

func (fg *FloatGrid)Mean() float64 {
	if len(fg.values) == 0 {
		return 0.0
	}
	tot := 0.0
	for i:=0; i<len(fg.values); i++ {
		tot += fg.values[i]
	}
	return tot / float64(len(fg.values))
}

func (fg *FloatGrid)Sum() float64 {
	tot := 0.0
	for i:=0; i<len(fg.values); i++ {
		tot += fg.values[i]
	}
	return tot
}

func (fg *FloatGrid)MinMax() (float64, float64) {
	min := math.MaxFloat64
	max := -1.0 * min
	for i:=0 ; i<len(fg.values) ; i++ {
		if fg.values[i] > max { max = fg.values[i] }
		if fg.values[i] < min { min = fg.values[i] }
	}
	return min, max
}

// PyrDown blurs with the 5-tap [1 4 6 4 1]/16 binomial kernel in each
// direction, then drops every other row and column. The result is
// ceil(w/2) x ceil(h/2); borders mirror without repeating the edge pixel.
// This is one step of a Gaussian pyramid.
func (g1 *FloatGrid)PyrDown() FloatGrid {
	width   := g1.Dx()
	height  := g1.Dy()
	dwidth  := (width+1) / 2
	dheight := (height+1) / 2
	k := [5]float64{1, 4, 6, 4, 1}

	//--- X blur + decimate, build up in T
	T := NewFloatGrid(dwidth, height)
	for y:=0; y<height; y++ {
		for x:=0; x<dwidth; x++ {
			t := 0.0
			for i:=0; i<5; i++ {
				t += k[i] * g1.Get(reflect101(2*x+i-2, width), y)
			}
			T.Set(x, y, t/16.0)
		}
	}

	//--- Y blur + decimate, read from T and generate output
	g2 := NewFloatGrid(dwidth, dheight)
	for x:=0; x<dwidth; x++ {
		for y:=0; y<dheight; y++ {
			t := 0.0
			for i:=0; i<5; i++ {
				t += k[i] * T.Get(x, reflect101(2*y+i-2, height))
			}
			g2.Set(x, y, t/16.0)
		}
	}

	return g2
}

// ResizeBilinear returns a new grid of the given size. Sample positions use
// pixel centers (x+0.5 maps to x'+0.5), and reads past the edge clamp.
func (g1 *FloatGrid)ResizeBilinear(width, height int) FloatGrid {
	g2 := NewFloatGrid(width, height)
	swidth  := g1.Dx()
	sheight := g1.Dy()

	xs, xf := bilinearTaps(swidth, width)
	ys, yf := bilinearTaps(sheight, height)

	for y:=0; y<height; y++ {
		y0 := ys[y]
		y1 := clampIndex(y0+1, sheight)
		fy := yf[y]
		for x:=0; x<width; x++ {
			x0 := xs[x]
			x1 := clampIndex(x0+1, swidth)
			fx := xf[x]

			top := g1.Get(x0,y0)*(1-fx) + g1.Get(x1,y0)*fx
			bot := g1.Get(x0,y1)*(1-fx) + g1.Get(x1,y1)*fx
			g2.Set(x, y, top*(1-fy) + bot*fy)
		}
	}

	return g2
}

// bilinearTaps precomputes, for each destination index, the left source
// index and the fractional weight of its right neighbour.
func bilinearTaps(src, dst int) ([]int, []float64) {
	idx  := make([]int, dst)
	frac := make([]float64, dst)
	scale := float64(src) / float64(dst)

	for i:=0; i<dst; i++ {
		s := (float64(i)+0.5)*scale - 0.5
		if s < 0 {
			s = 0
		}
		i0 := int(math.Floor(s))
		f  := s - float64(i0)
		if i0 >= src-1 {
			i0 = src-1
			f = 0
		}
		idx[i] = i0
		frac[i] = f
	}

	return idx, frac
}

func (fg *FloatGrid)Stats() string {
	min, max := fg.MinMax()
	return fmt.Sprintf("fg[%dx%d, vals{%f,%f}, mean %f]", fg.Dx(), fg.Dy(), min, max, fg.Mean())
}

// ToImg saves a simple grayscale, based on the range of values in the grid, and gamma scaling the
// gray to look normal for human vision
func (fg *FloatGrid)ToImg(title, filename string) error {
	min, max := fg.MinMax()
	rng := max - min
	if rng <= 0 {
		rng = 1.0
	}

	img := image.NewRGBA64(image.Rectangle{Max:image.Point{fg.Dx(), fg.Dy()}})
	for x:=0; x<fg.Dx(); x++ {
		for y:=0; y<fg.Dy(); y++ {
			lum := fg.Get(x,y)
			gray := GammaEncode((lum - min) / rng, 2.2)
			col := color.RGBA64{uint16(gray * 65535.0), uint16(gray * 65535.0), uint16(gray * 65535.0), 0xFFFF}
			img.Set(x, y, col)
		}
	}

	dc := gg.NewContextForImage(img)
	dc.SetRGB(1,1,1)
	dc.DrawString(title, 50, 50)
	return dc.SavePNG(filename)
}
