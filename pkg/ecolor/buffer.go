package ecolor

import(
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/mdouchement/hdr"

	"github.com/abworrall/filmsim/pkg/emath"
)

// A Channel names a color plane. Planes are always addressed by name; the
// position of a channel only means something in interleaved data, and
// ChannelOrder says what it is.
type Channel int

const(
	R Channel = iota
	G
	B
)

var channelNames = [3]string{"R", "G", "B"}

func (c Channel)String() string { return channelNames[c] }

// ChannelOrder is the layout of interleaved pixel data.
type ChannelOrder int

const(
	RGB ChannelOrder = iota
	BGR
)

func (o ChannelOrder)String() string {
	if o == BGR {
		return "BGR"
	}
	return "RGB"
}

// Channels lists the channels in the order they appear in interleaved data.
func (o ChannelOrder)Channels() [3]Channel {
	if o == BGR {
		return [3]Channel{B, G, R}
	}
	return [3]Channel{R, G, B}
}

// Encoding says what the numbers in a Buffer mean.
type Encoding int

const(
	Gamma8      Encoding = iota // [0,255] code values, display gamma encoded (JPEG, PNG)
	Linear16                    // [0,65535] code values, linear light (developed RAW)
	LinearFloat                 // linear light floats, 1.0 is nominal white, may exceed it
)

var encodingNames = map[Encoding]string{Gamma8: "gamma8", Linear16: "linear16", LinearFloat: "linearfloat"}

func (e Encoding)String() string { return encodingNames[e] }

// MaxCode is the largest value the encoding can hold; LinearFloat has no ceiling.
func (e Encoding)MaxCode() float64 {
	switch e {
	case Gamma8:   return 255
	case Linear16: return 65535
	}
	return math.Inf(1)
}

// A Buffer is a three channel image held as float planes, with its
// interleaving order and encoding carried along explicitly.
type Buffer struct {
	Order    ChannelOrder
	Encoding Encoding
	planes   [3]emath.FloatGrid // indexed by Channel
}

func NewBuffer(w, h int, order ChannelOrder, enc Encoding) Buffer {
	return Buffer{
		Order:    order,
		Encoding: enc,
		planes:   [3]emath.FloatGrid{emath.NewFloatGrid(w, h), emath.NewFloatGrid(w, h), emath.NewFloatGrid(w, h)},
	}
}

// NewBufferFromPlanes wraps three same-sized planes; it does not copy them.
func NewBufferFromPlanes(r, g, b emath.FloatGrid, order ChannelOrder, enc Encoding) (Buffer, error) {
	if !r.SameSize(&g) || !r.SameSize(&b) {
		return Buffer{}, fmt.Errorf("plane sizes differ: %dx%d, %dx%d, %dx%d", r.Dx(), r.Dy(), g.Dx(), g.Dy(), b.Dx(), b.Dy())
	}
	return Buffer{Order: order, Encoding: enc, planes: [3]emath.FloatGrid{r, g, b}}, nil
}

func (b *Buffer)Dx() int                          { return b.planes[R].Dx() }
func (b *Buffer)Dy() int                          { return b.planes[R].Dy() }
func (b *Buffer)Bounds() image.Rectangle          { return image.Rect(0, 0, b.Dx(), b.Dy()) }
func (b *Buffer)Empty() bool                      { return b.Dx() == 0 || b.Dy() == 0 }
func (b *Buffer)Plane(c Channel) *emath.FloatGrid { return &b.planes[c] }

func (b *Buffer)At(x, y int) (float64, float64, float64) {
	return b.planes[R].Get(x, y), b.planes[G].Get(x, y), b.planes[B].Get(x, y)
}

func (b *Buffer)SetRGB(x, y int, r, g, bl float64) {
	b.planes[R].Set(x, y, r)
	b.planes[G].Set(x, y, g)
	b.planes[B].Set(x, y, bl)
}

// Saturate clamps every sample into [0, MaxCode], as storing it back into an
// 8 or 16 bit image would.
func (b *Buffer)Saturate() {
	max := b.Encoding.MaxCode()
	for y:=0; y<b.Dy(); y++ {
		for x:=0; x<b.Dx(); x++ {
			v := emath.Vec3{}
			v[0], v[1], v[2] = b.At(x, y)
			v.FloorAt(0)
			v.CeilingAt(max)
			b.SetRGB(x, y, v[0], v[1], v[2])
		}
	}
}

func (b Buffer)Copy() Buffer {
	b2 := Buffer{Order: b.Order, Encoding: b.Encoding}
	for c := range b.planes {
		b2.planes[c] = *b.planes[c].Copy()
	}
	return b2
}

func (b Buffer)String() string {
	return fmt.Sprintf("Buffer[%dx%d %s %s]", b.Dx(), b.Dy(), b.Order, b.Encoding)
}

// FromInterleaved reads packed pixel data, three values per pixel in `order`.
func FromInterleaved(pix []float64, w, h int, order ChannelOrder, enc Encoding) (Buffer, error) {
	if w <= 0 || h <= 0 || len(pix) != w*h*3 {
		return Buffer{}, fmt.Errorf("interleaved %dx%d needs %d values, got %d", w, h, w*h*3, len(pix))
	}

	b := NewBuffer(w, h, order, enc)
	chans := order.Channels()
	for y:=0; y<h; y++ {
		for x:=0; x<w; x++ {
			i := (y*w + x) * 3
			for n, c := range chans {
				b.planes[c].Set(x, y, pix[i+n])
			}
		}
	}
	return b, nil
}

// Interleaved packs the planes, three values per pixel in the buffer's order.
func (b *Buffer)Interleaved() []float64 {
	w, h := b.Dx(), b.Dy()
	pix := make([]float64, w*h*3)
	chans := b.Order.Channels()
	for y:=0; y<h; y++ {
		for x:=0; x<w; x++ {
			i := (y*w + x) * 3
			for n, c := range chans {
				pix[i+n] = b.planes[c].Get(x, y)
			}
		}
	}
	return pix
}

// FromImage picks the encoding from the image type: HDR images are linear
// floats, 16 bit images are linear (as a RAW developer writes them), and
// everything else is 8 bit gamma encoded.
func FromImage(img image.Image) Buffer {
	switch img.(type) {
	case hdr.Image:
		return FromImageAs(img, LinearFloat)
	case *image.RGBA64, *image.NRGBA64, *image.Gray16:
		return FromImageAs(img, Linear16)
	default:
		return FromImageAs(img, Gamma8)
	}
}

// FromImageAs reads an image into a buffer with the given encoding,
// reducing or widening the code values as needed.
func FromImageAs(img image.Image, enc Encoding) Buffer {
	bounds := img.Bounds()
	b := NewBuffer(bounds.Dx(), bounds.Dy(), RGB, enc)
	hdrImg, isHDR := img.(hdr.Image)

	for y:=0; y<bounds.Dy(); y++ {
		for x:=0; x<bounds.Dx(); x++ {
			sx, sy := x + bounds.Min.X, y + bounds.Min.Y

			if isHDR {
				r, g, bl, _ := hdrImg.HDRAt(sx, sy).HDRRGBA()
				if enc != LinearFloat {
					r, g, bl = scaleFromUnit(r, enc), scaleFromUnit(g, enc), scaleFromUnit(bl, enc)
				}
				b.SetRGB(x, y, r, g, bl)
				continue
			}

			r, g, bl := nonPremultiplied(img.At(sx, sy))
			switch enc {
			case Gamma8:
				b.SetRGB(x, y, float64(r>>8), float64(g>>8), float64(bl>>8))
			case Linear16:
				b.SetRGB(x, y, float64(r), float64(g), float64(bl))
			case LinearFloat:
				b.SetRGB(x, y, float64(r)/0xFFFF, float64(g)/0xFFFF, float64(bl)/0xFFFF)
			}
		}
	}

	return b
}

func scaleFromUnit(f float64, enc Encoding) float64 {
	f = emath.Clamp(f, 0, 1)
	if enc == Gamma8 {
		return float64(uint8(f * 255))
	}
	return float64(uint16(f * 0xFFFF))
}

// nonPremultiplied returns 16 bit channel values, undoing alpha premultiplication.
func nonPremultiplied(c color.Color) (uint32, uint32, uint32) {
	nc := color.NRGBA64Model.Convert(c).(color.NRGBA64)
	return uint32(nc.R), uint32(nc.G), uint32(nc.B)
}
