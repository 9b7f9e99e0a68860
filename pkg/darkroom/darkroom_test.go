package darkroom

import(
	"errors"
	"image"
	"image/color"
	"io/ioutil"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/mdouchement/hdr/codec/rgbe"
	"github.com/mdouchement/hdr/hdrcolor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/tiff"

	"github.com/abworrall/filmsim/pkg/ecolor"
	"github.com/abworrall/filmsim/pkg/emulsion"
	"github.com/abworrall/filmsim/pkg/film"
)

// constHDR is a minimal hdr.Image
type constHDR struct {
	w, h int
	c    hdrcolor.RGB
}

func (ci constHDR)ColorModel() color.Model       { return hdrcolor.RGBModel }
func (ci constHDR)Bounds() image.Rectangle       { return image.Rect(0, 0, ci.w, ci.h) }
func (ci constHDR)At(x, y int) color.Color       { return ci.c }
func (ci constHDR)HDRAt(x, y int) hdrcolor.Color { return ci.c }
func (ci constHDR)Size() int                     { return ci.w * ci.h }

func gradient(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y:=0; y<h; y++ {
		for x:=0; x<w; x++ {
			img.SetRGBA(x, y, color.RGBA{uint8(x * 255 / w), uint8(y * 255 / h), 128, 255})
		}
	}
	return img
}

func writeTIFF16(t *testing.T, filename string, w, h int, v uint16) {
	img := image.NewRGBA64(image.Rect(0, 0, w, h))
	for y:=0; y<h; y++ {
		for x:=0; x<w; x++ {
			img.SetRGBA64(x, y, color.RGBA64{v, v, v, 0xFFFF})
		}
	}
	writer, err := os.Create(filename)
	require.NoError(t, err)
	defer writer.Close()
	require.NoError(t, tiff.Encode(writer, img, nil))
}

func writeHDR(t *testing.T, filename string, img constHDR) {
	writer, err := os.Create(filename)
	require.NoError(t, err)
	defer writer.Close()
	require.NoError(t, rgbe.Encode(writer, img))
}

func TestSnapISO(t *testing.T) {
	tests := []struct{ in, out int }{
		{1, 50}, {50, 50}, {64, 50}, {100, 100}, {160, 100}, {400, 400},
		{640, 400}, {800, 800}, {3200, 3200}, {12800, 3200},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.out, SnapISO(tc.in), "ISO %d", tc.in)
	}
}

func TestEffectiveISO(t *testing.T) {
	c := NewConfig()
	assert.Equal(t, 400, c.EffectiveISO(0))
	assert.Equal(t, 800, c.EffectiveISO(1000))

	c.ISO = 200
	assert.Equal(t, 200, c.EffectiveISO(0))
	assert.Equal(t, 800, c.EffectiveISO(1000), "exif wins unless the speed is fixed")

	c.SetISO(200)
	assert.Equal(t, 200, c.EffectiveISO(1000))

	c.SetISO(0)
	p := c.Params(1000, 3)
	assert.Equal(t, 0, p.ISO, "zero ISO turns grain off, exif or not")
	assert.Equal(t, int64(3), p.Seed)

	c.SetISO(-1)
	assert.Equal(t, -1, c.EffectiveISO(0))
}

func TestConfigYaml(t *testing.T) {
	doc := `
preset: Kodak Tri-X 400
tonestyle: reinhard
exposureev: -0.5
outputformat: png
debugpixels:
  - {x: 10, y: 20}
presets:
  - name: Homebrew 50
    sens_factor: 0.2
`
	c, err := newConfigFromYaml([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, "Kodak Tri-X 400", c.Preset)
	assert.Equal(t, emulsion.Reinhard, c.ToneStyle)
	assert.Equal(t, -0.5, c.ExposureEV)
	assert.Equal(t, 1.0, c.HalationIntensity, "defaults survive")
	assert.Equal(t, 95, c.JPEGQuality)
	assert.Equal(t, []image.Point{{10, 20}}, c.DebugPixels)
	require.Len(t, c.Presets, 1)
	assert.Equal(t, 1.0, c.Presets[0].Red.Direct)
	require.NoError(t, c.Validate())

	reg, err := c.Registry()
	require.NoError(t, err)
	assert.Equal(t, 9, reg.Len())

	c.ReferenceTonemappers = []string{"durand"}
	c2, err := newConfigFromYaml([]byte(c.AsYaml()))
	require.NoError(t, err)
	assert.Equal(t, c, c2)

	_, err = newConfigFromYaml([]byte("wibble: 1\n"))
	assert.Error(t, err)
	_, err = newConfigFromYaml([]byte("tonestyle: hable\n"))
	assert.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"format",    func(c *Config) { c.OutputFormat = "gif" }},
		{"quality",   func(c *Config) { c.JPEGQuality = 0 }},
		{"tmo",       func(c *Config) { c.ReferenceTonemappers = []string{"fattal02"} }},
		{"dup preset", func(c *Config) { c.Presets = append(c.Presets, film.DefaultRegistry().Get("NC200")) }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := NewConfig()
			tc.mutate(&c)
			assert.Error(t, c.Validate())
		})
	}
	assert.NoError(t, NewConfig().Validate())
}

func TestFilmPresetFallsBack(t *testing.T) {
	c := NewConfig()
	c.Preset = "Agfa Nothing 25"
	p, err := c.FilmPreset()
	require.NoError(t, err)
	assert.Equal(t, "NC200", p.Name)
}

func TestFrameLoadFormats(t *testing.T) {
	dir := t.TempDir()

	pngFile := filepath.Join(dir, "a.png")
	require.NoError(t, WritePNG(gradient(6, 4), pngFile))
	f := Frame{Filename: pngFile}
	buf, err := f.Load()
	require.NoError(t, err)
	assert.Equal(t, ecolor.Gamma8, buf.Encoding)
	assert.Equal(t, 6, buf.Dx())
	assert.Equal(t, 0, f.ISO, "no exif")
	assert.Equal(t, "a", f.Base())

	tifFile := filepath.Join(dir, "b.tif")
	writeTIFF16(t, tifFile, 3, 5, 0x8000)
	buf, err = DecodeImage(tifFile)
	require.NoError(t, err)
	assert.Equal(t, ecolor.Linear16, buf.Encoding)
	r, g, b := buf.At(2, 4)
	assert.Equal(t, []float64{32768, 32768, 32768}, []float64{r, g, b})

	hdrFile := filepath.Join(dir, "c.hdr")
	writeHDR(t, hdrFile, constHDR{4, 2, hdrcolor.RGB{R: 2.0, G: 0.5, B: 0.25}})
	buf, err = DecodeImage(hdrFile)
	require.NoError(t, err)
	assert.Equal(t, ecolor.LinearFloat, buf.Encoding)
	r, g, b = buf.At(3, 1)
	assert.InDelta(t, 2.0, r, 0.02) // RGBE has an 8-bit mantissa
	assert.InDelta(t, 0.5, g, 0.02)
	assert.InDelta(t, 0.25, b, 0.02)
}

func TestDecodeErrors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.jpg")
	require.NoError(t, ioutil.WriteFile(bad, []byte("not a jpeg"), 0644))

	var de *DecodeError
	_, err := DecodeImage(bad)
	require.True(t, errors.As(err, &de))
	assert.Equal(t, bad, de.Filename)

	_, err = DecodeImage(filepath.Join(dir, "missing.png"))
	require.True(t, errors.As(err, &de))
	assert.True(t, errors.Is(err, os.ErrNotExist))

	// Loading a roll doesn't decode anything; the bad frame fails when developed
	require.NoError(t, WritePNG(gradient(4, 4), filepath.Join(dir, "good.png")))
	r := NewRoll()
	require.NoError(t, r.LoadFilesAndDirs(dir))
	require.Len(t, r.Frames, 2)
	r.Config.TargetSize = 4

	prints, err := r.Develop()
	require.NoError(t, err)
	for _, p := range prints {
		if p.Frame.Base() == "bad" {
			assert.True(t, errors.As(p.Err, &de))
			assert.Nil(t, p.Image)
		} else {
			assert.NoError(t, p.Err)
		}
	}
}

func TestLoadFilesAndDirs(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.Mkdir(sub, 0755))

	require.NoError(t, WritePNG(gradient(4, 4), filepath.Join(dir, "one.png")))
	require.NoError(t, WritePNG(gradient(4, 6), filepath.Join(sub, "two.PNG")))
	require.NoError(t, ioutil.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hi"), 0644))
	require.NoError(t, ioutil.WriteFile(filepath.Join(sub, "roll.yaml"), []byte("preset: AS100\nworkers: 2\n"), 0644))

	r := NewRoll()
	require.NoError(t, r.LoadFilesAndDirs(dir))
	assert.Len(t, r.Frames, 2)
	assert.Equal(t, "AS100", r.Config.Preset)
	assert.Equal(t, 2, r.Config.Workers)

	assert.Error(t, r.LoadFilesAndDirs(filepath.Join(dir, "nope")))
}

func TestRollDevelopWriteCompare(t *testing.T) {
	in, out := t.TempDir(), t.TempDir()
	for i, name := range []string{"f1.png", "f2.png", "f3.png"} {
		require.NoError(t, WritePNG(gradient(10 + 2*i, 8), filepath.Join(in, name)))
	}

	r := NewRoll()
	require.NoError(t, r.LoadFilesAndDirs(in))
	require.Len(t, r.Frames, 3)

	r.Config.Preset = "Kodak Portra 400"
	r.Config.TargetSize = 8
	r.Config.Workers = 2
	r.Config.OutputDir = out
	r.Config.OutputFormat = "png"
	r.Config.DumpHDR = true
	r.Config.ReferenceTonemappers = []string{"linear"}

	prints, err := r.Develop()
	require.NoError(t, err)
	require.Len(t, prints, 3)

	for i, p := range prints {
		require.NoError(t, p.Err)
		assert.Equal(t, &r.Frames[i], p.Frame, "prints come back in frame order")
		assert.Equal(t, int64(i), p.Params.Seed)
		assert.Equal(t, 8, p.Image.Bounds().Dy())
		assert.IsType(t, &image.RGBA{}, p.Image)
	}

	written, err := r.Write(prints[0])
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(out, "f1-kodak-portra-400.png"),
		filepath.Join(out, "f1-kodak-portra-400.hdr"),
		filepath.Join(out, "f1-kodak-portra-400-tmo-linear.png"),
	}, written)
	for _, filename := range written {
		_, err := os.Stat(filename)
		assert.NoError(t, err)
	}

	// A lossless print compared against itself
	d, err := r.Compare(prints[0], written[0])
	require.NoError(t, err)
	assert.Equal(t, 0.0, d)

	_, err = r.Compare(prints[1], written[0])
	assert.Error(t, err, "sizes differ")
}

func TestRollEachDecodesLazily(t *testing.T) {
	in, out := t.TempDir(), t.TempDir()
	names := []string{"a.png", "b.png", "c.png", "d.png"}
	for _, name := range names {
		require.NoError(t, WritePNG(gradient(6, 6), filepath.Join(in, name)))
	}

	r := NewRoll()
	require.NoError(t, r.LoadFilesAndDirs(in))
	require.Len(t, r.Frames, 4)
	r.Config.TargetSize = 6
	r.Config.Workers = 2
	r.Config.OutputDir = out
	r.Config.OutputFormat = "png"

	// Files are only read once a worker picks the frame up
	require.NoError(t, WritePNG(gradient(12, 6), filepath.Join(in, "d.png")))

	var mu sync.Mutex
	widths := map[int]int{}
	err := r.Each(func(p Print) {
		if !assert.NoError(t, p.Err) {
			return
		}
		_, err := r.Write(p)
		assert.NoError(t, err)

		mu.Lock()
		defer mu.Unlock()
		assert.NotContains(t, widths, p.Index)
		widths[p.Index] = p.Image.Bounds().Dx()
		assert.Equal(t, &r.Frames[p.Index], p.Frame)
	})
	require.NoError(t, err)
	assert.Equal(t, map[int]int{0: 6, 1: 6, 2: 6, 3: 12}, widths)

	for _, f := range r.Frames {
		_, err := os.Stat(filepath.Join(out, f.Base() + "-nc200.png"))
		assert.NoError(t, err)
	}
}

func TestRollDevelopBadConfig(t *testing.T) {
	r := NewRoll()
	r.Config.OutputFormat = "bmp"
	_, err := r.Develop()
	assert.Error(t, err)
}
