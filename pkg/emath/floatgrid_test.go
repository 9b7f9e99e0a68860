package emath

import(
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func constGrid(w, h int, v float64) FloatGrid {
	g := NewFloatGrid(w, h)
	g.Fill(v)
	return g
}

func TestPyrDownSizes(t *testing.T) {
	tests := []struct {
		w, h       int
		wantW, wantH int
	}{
		{8, 8, 4, 4},
		{7, 5, 4, 3},
		{1, 1, 1, 1},
		{2, 1, 1, 1},
		{3000, 4500, 1500, 2250},
	}

	for _, tc := range tests {
		g := constGrid(tc.w, tc.h, 1.0)
		d := g.PyrDown()
		assert.Equal(t, tc.wantW, d.Dx(), "%dx%d", tc.w, tc.h)
		assert.Equal(t, tc.wantH, d.Dy(), "%dx%d", tc.w, tc.h)
	}
}

func TestPyrDownPreservesConstant(t *testing.T) {
	g := constGrid(9, 6, 0.37)
	d := g.PyrDown()
	for _, v := range d.Values() {
		assert.InDelta(t, 0.37, v, 1e-12)
	}
}

func TestPyrDownSpreadsImpulse(t *testing.T) {
	g := NewFloatGrid(9, 9)
	g.Set(4, 4, 256.0)
	d := g.PyrDown()

	// Centre of the 5x5 binomial kernel is 36/256
	assert.InDelta(t, 36.0, d.Get(2, 2), 1e-9)
	assert.InDelta(t, 6.0, d.Get(1, 2), 1e-9)
	assert.Equal(t, 0.0, d.Get(0, 0))
}

func TestResizeBilinear(t *testing.T) {
	g := NewFloatGrid(2, 1)
	g.Set(0, 0, 0.0)
	g.Set(1, 0, 1.0)

	u := g.ResizeBilinear(4, 2)
	require.Equal(t, 4, u.Dx())
	require.Equal(t, 2, u.Dy())

	// Half-pixel centres: dst x=0 maps to src -0.25 (clamped), x=1 to 0.25, x=2 to 0.75, x=3 to 1.25 (clamped)
	assert.InDelta(t, 0.0, u.Get(0, 0), 1e-12)
	assert.InDelta(t, 0.25, u.Get(1, 0), 1e-12)
	assert.InDelta(t, 0.75, u.Get(2, 1), 1e-12)
	assert.InDelta(t, 1.0, u.Get(3, 1), 1e-12)
}

func TestResampleAreaAverages(t *testing.T) {
	g := NewFloatGrid(4, 2)
	for x:=0; x<4; x++ {
		g.Set(x, 0, float64(x))
		g.Set(x, 1, float64(x))
	}

	d := g.Resample(2, 1, AreaKernel)
	assert.InDelta(t, 0.5, d.Get(0, 0), 1e-12)
	assert.InDelta(t, 2.5, d.Get(1, 0), 1e-12)
}

func TestResampleCatmullRomKeepsConstant(t *testing.T) {
	g := constGrid(3, 5, 0.8)
	u := g.Resample(7, 11, CatmullRomKernel)
	assert.Equal(t, 7, u.Dx())
	assert.Equal(t, 11, u.Dy())
	for _, v := range u.Values() {
		assert.InDelta(t, 0.8, v, 1e-9)
	}
}

func TestResampleSameSizeCopies(t *testing.T) {
	g := constGrid(3, 3, 1.0)
	u := g.Resample(3, 3, CatmullRomKernel)
	u.Set(0, 0, 5.0)
	assert.Equal(t, 1.0, g.Get(0, 0))
}

func TestArithmetic(t *testing.T) {
	a := constGrid(2, 2, 1.0)
	b := constGrid(2, 2, 2.0)

	a.AddScaled(&b, 0.5)
	assert.InDelta(t, 2.0, a.Mean(), 1e-12)

	a.Scale(3.0)
	assert.InDelta(t, 24.0, a.Sum(), 1e-12)

	min, max := a.MinMax()
	assert.Equal(t, 6.0, min)
	assert.Equal(t, 6.0, max)

	c := constGrid(3, 2, 0)
	assert.Panics(t, func() { a.AddScaled(&c, 1) })
}

func TestMat3(t *testing.T) {
	m, ok := Mat3FromSlice([]float64{1,2,3, 4,5,6, 7,8,9})
	require.True(t, ok)

	v := m.Apply(Vec3{1, 0, -1})
	assert.Equal(t, Vec3{-2, -2, -2}, v)

	assert.Equal(t, Vec3{1, 2, 3}, Identity3().Apply(Vec3{1, 2, 3}))
	assert.Equal(t, Vec3{6, 15, 24}, m.RowSums())

	_, ok = Mat3FromSlice([]float64{1, 2})
	assert.False(t, ok)
}

func TestVec3Clamps(t *testing.T) {
	v := Vec3{-3, 0.5, 300}
	v.FloorAt(0)
	v.CeilingAt(255)
	assert.Equal(t, Vec3{0, 0.5, 255}, v)
}

func TestStats(t *testing.T) {
	g := constGrid(3, 2, 6)
	assert.Equal(t, "fg[3x2, vals{6.000000,6.000000}, mean 6.000000]", g.Stats())
}
