package estats

import(
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abworrall/filmsim/pkg/emath"
)

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y:=0; y<h; y++ {
		for x:=0; x<w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestSummarizeSolid(t *testing.T) {
	s := Summarize(solid(4, 3, color.RGBA{200, 100, 50, 255}))

	assert.Equal(t, [3]float64{200, 100, 50}, s.Mean)
	assert.Equal(t, [3]float64{0, 0, 0}, s.StdDev)
	assert.Equal(t, 0.0, s.Clipped)

	luma := int64(Luma(200, 100, 50))
	assert.Equal(t, luma, s.P01)
	assert.Equal(t, luma, s.P50)
	assert.Equal(t, luma, s.P99)
	assert.True(t, s.MeanL > 0 && s.MeanL < 100)
	assert.Contains(t, s.String(), "4x3")
}

func TestSmallImagePercentiles(t *testing.T) {
	s := Summarize(solid(1, 1, color.RGBA{250, 250, 250, 255}))
	assert.Equal(t, int64(250), s.P01)
	assert.Equal(t, int64(250), s.P99)

	// 10 pixels: 1% of them is less than one pixel
	img := solid(10, 1, color.RGBA{40, 40, 40, 255})
	img.SetRGBA(9, 0, color.RGBA{200, 200, 200, 255})
	s = Summarize(img)
	dark := int64(Luma(40, 40, 40))
	assert.Equal(t, dark, s.P01)
	assert.Equal(t, dark, s.P50)
	assert.Equal(t, int64(Luma(200, 200, 200)), s.P99)
}

func TestSummarizeRamp(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 256, 1))
	for x:=0; x<256; x++ {
		img.SetGray(x, 0, color.Gray{uint8(x)})
	}

	s := Summarize(img)
	assert.InDelta(t, 127.5, s.Mean[0], 1e-9)
	assert.Equal(t, s.Mean[0], s.Mean[2])
	assert.InDelta(t, 2.0/256.0, s.Clipped, 1e-12, "just the 0 and 255 pixels")
	assert.InDelta(t, 127, s.P50, 2)
	assert.True(t, s.P01 < s.P50 && s.P50 < s.P99)

	// Black is L* 0, white is L* 100; the ramp is in between
	assert.InDelta(t, 0.0, Summarize(solid(2, 2, color.RGBA{0, 0, 0, 255})).MeanL, 1e-9)
	assert.InDelta(t, 100.0, Summarize(solid(2, 2, color.RGBA{255, 255, 255, 255})).MeanL, 0.01)
	assert.InDelta(t, 50.0, s.MeanL, 15.0)
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(image.NewRGBA(image.Rectangle{}))
	assert.Equal(t, [3]float64{}, s.Mean)
}

func TestGridStats(t *testing.T) {
	g := emath.NewFloatGrid(2, 2)
	copy(g.Values(), []float64{1, 2, 3, 4})
	mean, sd := GridStats(&g)
	assert.Equal(t, 2.5, mean)
	assert.InDelta(t, 1.2909944, sd, 1e-6) // sample std dev

	empty := emath.FloatGrid{}
	mean, sd = GridStats(&empty)
	assert.Equal(t, 0.0, mean)
	assert.Equal(t, 0.0, sd)
}

func TestImgDiff(t *testing.T) {
	a := solid(3, 3, color.RGBA{120, 130, 140, 255})

	d, grid, err := ImgDiff(a, a)
	require.NoError(t, err)
	assert.Equal(t, 0.0, d)
	assert.Equal(t, 9, grid.Len())

	b := solid(3, 3, color.RGBA{120, 130, 140, 255})
	b.SetRGBA(1, 1, color.RGBA{255, 255, 255, 255})
	d, grid, err = ImgDiff(a, b)
	require.NoError(t, err)
	assert.True(t, d > 0)
	assert.Equal(t, 0.0, grid.Get(0, 0))
	assert.InDelta(t, d * 9, grid.Get(1, 1), 1e-9, "all the error is in one pixel")

	// Offset bounds are fine, as long as the sizes match
	c := image.NewRGBA(image.Rect(5, 5, 8, 8))
	for y:=5; y<8; y++ {
		for x:=5; x<8; x++ {
			c.SetRGBA(x, y, color.RGBA{120, 130, 140, 255})
		}
	}
	d, _, err = ImgDiff(a, c)
	require.NoError(t, err)
	assert.Equal(t, 0.0, d)

	_, _, err = ImgDiff(a, solid(2, 3, color.RGBA{}))
	assert.Error(t, err)
}
