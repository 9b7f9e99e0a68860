package emulsion

import(
	"fmt"
	"image"
	"image/color"
	"log"
	"math"
	"os"

	"github.com/mdouchement/hdr/codec/rgbe"
	"github.com/mdouchement/hdr/hdrcolor"

	"github.com/abworrall/filmsim/pkg/emath"
	"github.com/abworrall/filmsim/pkg/film"
)

// A Negative is a developed frame before printing: the composited linear
// light, after crosstalk and grain, of each rendering layer. Color films have
// three channels (R, G, B); single films have one.
type Negative struct {
	Preset       string
	Type         film.FilmType
	Params       Params

	Channels   []emath.FloatGrid
	MeanExposure float64   // mean of the pan exposure field, before bloom
	Traces     []Trace     // one per requested debug pixel
}

func (n Negative)Dx() int       { return n.Channels[0].Dx() }
func (n Negative)Dy() int       { return n.Channels[0].Dy() }
func (n Negative)IsColor() bool { return len(n.Channels) == 3 }

// SuggestedEV is the exposure compensation that would bring the mean pan
// exposure to 18% grey. It is advisory; nothing in the pipeline applies it.
func (n *Negative)SuggestedEV() float64 {
	return math.Log2(0.18 / (n.MeanExposure + 1e-4))
}

func (n Negative)String() string {
	return fmt.Sprintf("Negative[%dx%d %s (%s), %s, mean exposure %.4f]",
		n.Dx(), n.Dy(), n.Preset, n.Type, n.Params, n.MeanExposure)
}

// Implement image.Image
func (n Negative)ColorModel() color.Model       { return hdrcolor.RGBModel }
func (n Negative)Bounds() image.Rectangle       { return image.Rect(0, 0, n.Dx(), n.Dy()) }
func (n Negative)At(x, y int) color.Color       { return n.HDRAt(x,y) }

// Implement hdr.Image. Grain can push values below zero, HDR consumers don't want that.
func (n Negative)HDRAt(x, y int) hdrcolor.Color {
	if !n.IsColor() {
		v := math.Max(n.Channels[0].Get(x,y), 0)
		return hdrcolor.RGB{R:v, G:v, B:v}
	}
	return hdrcolor.RGB{
		R: math.Max(n.Channels[0].Get(x,y), 0),
		G: math.Max(n.Channels[1].Get(x,y), 0),
		B: math.Max(n.Channels[2].Get(x,y), 0),
	}
}
func (n Negative)Size() int                     { return n.Dx() * n.Dy() }

// WriteToHDR outputs the negative as a Radiance RGBE file, for HDR tools.
func (n *Negative)WriteToHDR(filename string) error {
	if writer, err := os.Create(filename); err != nil {
		return fmt.Errorf("Negative.WriteToHDR, open+w '%s': %v", filename, err)
	} else {
		defer writer.Close()
		err := rgbe.Encode(writer, n)
		if err != nil {
			log.Printf("Negative.WriteToHDR, encoding RGBE file: %v\n", err)
		}
		return err
	}
}
