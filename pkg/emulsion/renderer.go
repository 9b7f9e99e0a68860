package emulsion

import(
	"fmt"
	"image"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/abworrall/filmsim/pkg/ecolor"
	"github.com/abworrall/filmsim/pkg/emath"
	"github.com/abworrall/filmsim/pkg/film"
)

// A Renderer is bound to one preset for its lifetime. It holds no other
// state, so one Renderer may be shared by many goroutines.
type Renderer struct {
	preset film.FilmPreset
	opts   Options
}

type Option func(*Options)

func WithTargetSize(n int) Option            { return func(o *Options) { o.TargetSize = n } }
func WithLevels(n int) Option                { return func(o *Options) { o.Levels = n } }
func WithVerbosity(v int) Option             { return func(o *Options) { o.Verbosity = v } }
func WithDebugPixels(pts ...image.Point) Option {
	return func(o *Options) { o.DebugPixels = append(o.DebugPixels, pts...) }
}
func WithDumpGrids(prefix string) Option {
	return func(o *Options) { o.DumpGrids, o.DumpPrefix = true, prefix }
}

func NewRenderer(p film.FilmPreset, opts ...Option) (*Renderer, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	r := Renderer{preset: p.Clone()}
	for _, opt := range opts {
		opt(&r.opts)
	}
	return &r, nil
}

func (r *Renderer)Preset() film.FilmPreset { return r.preset.Clone() }
func (r *Renderer)Options() Options        { return r.opts }

// Process renders the buffer as a print: an opaque *image.RGBA for color
// films, or an *image.Gray for single films, at the standardized size.
func (r *Renderer)Process(buf ecolor.Buffer, params Params) (image.Image, error) {
	neg, err := r.Develop(buf, params)
	if err != nil {
		return nil, err
	}
	return r.Print(neg, params.ToneStyle), nil
}

// Develop runs every stage up to and including grain, and returns the linear
// result.
func (r *Renderer)Develop(buf ecolor.Buffer, params Params) (*Negative, error) {
	if buf.Empty() {
		return nil, fmt.Errorf("Renderer.Develop: empty input buffer")
	}
	tStart := time.Now()
	p := r.preset

	std := Standardize(buf, r.opts.targetSize())
	traces := newTraces(r.opts.DebugPixels, std)

	lin := Linearize(std, params.ExposureEV)
	recordStage(traces, "Linear", lin.Plane(ecolor.R), lin.Plane(ecolor.G), lin.Plane(ecolor.B))

	exposures, pan := Separate(lin, p)
	meanExposure := pan.Mean()
	recordStage(traces, "Exposure", gridPtrs(exposures)...)

	if r.opts.Verbosity > 0 {
		log.Printf("[%s] %s -> %dx%d, mean pan exposure %.4f", p.Name, buf, std.Dx(), std.Dy(), meanExposure)
		if r.opts.Verbosity > 1 {
			log.Printf("[%s] pan %s", p.Name, pan.Stats())
		}
	}

	blooms := r.bloomLayers(exposures, HalationStrength(p.SensFactor, params.HalationIntensity))
	recordStage(traces, "Bloom", gridPtrs(blooms)...)

	layers := p.Layers()
	channels := make([]emath.FloatGrid, len(layers))
	for i, l := range layers {
		channels[i] = Composite(&exposures[i], &blooms[i], l.Direct, l.Scatter)
	}
	recordStage(traces, "Composite", gridPtrs(channels)...)

	if p.IsColor() {
		channels[0], channels[1], channels[2] = Crosstalk(&channels[0], &channels[1], &channels[2], p.CrosstalkMatrix())
		recordStage(traces, "Crosstalk", gridPtrs(channels)...)
	}

	rng := rand.New(rand.NewSource(params.Seed))
	for i, l := range layers {
		grain := Grain(&channels[i], l.Grain, params.ISO, rng)
		channels[i].AddScaled(&grain, 1.0)
	}
	recordStage(traces, "Grain", gridPtrs(channels)...)

	if r.opts.DumpGrids {
		r.dumpGrids(exposures, blooms)
	}

	neg := Negative{
		Preset:       p.Name,
		Type:         p.Type,
		Params:       params,
		Channels:     channels,
		MeanExposure: meanExposure,
		Traces:       traces,
	}

	if r.opts.Verbosity > 0 {
		log.Printf("[%s] developed %s in %s (suggested %+.2f EV)", p.Name, params, time.Since(tStart), neg.SuggestedEV())
	}

	return &neg, nil
}

// Print tonemaps a negative into an 8-bit image, with this renderer's preset.
// It only reads the negative.
func (r *Renderer)Print(neg *Negative, style ToneStyle) image.Image {
	tc := style.Curve(r.preset)

	var img image.Image
	if neg.IsColor() {
		img = PackRGB(&neg.Channels[0], &neg.Channels[1], &neg.Channels[2], tc)
	} else {
		img = PackGray(&neg.Channels[0], tc)
	}

	if r.opts.Verbosity > 0 {
		for _, t := range PrintedTraces(neg, img) {
			log.Printf("%s", t)
		}
	}

	return img
}

// PrintedTraces copies the negative's traces, with Output filled in from a
// print of it. The negative is left alone, so it can be printed concurrently.
func PrintedTraces(neg *Negative, img image.Image) []Trace {
	traces := make([]Trace, len(neg.Traces))
	copy(traces, neg.Traces)
	for i := range traces {
		traces[i].Output = img.At(traces[i].Pos.X, traces[i].Pos.Y)
	}
	return traces
}

// bloomLayers runs the bloom for each layer on its own goroutine; they share nothing.
func (r *Renderer)bloomLayers(exposures []emath.FloatGrid, strength float64) []emath.FloatGrid {
	layers := r.preset.Layers()
	blooms := make([]emath.FloatGrid, len(exposures))

	var wg sync.WaitGroup
	for i := range exposures {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			blooms[i] = Bloom(&exposures[i], strength, layers[i].RadiusMult, r.opts.levels())
		}(i)
	}
	wg.Wait()

	return blooms
}

func (r *Renderer)dumpGrids(exposures, blooms []emath.FloatGrid) {
	names := []string{"red", "green", "blue"}
	if !r.preset.IsColor() {
		names = []string{"pan"}
	}

	for i, name := range names {
		for kind, g := range map[string]*emath.FloatGrid{"exposure": &exposures[i], "bloom": &blooms[i]} {
			filename := fmt.Sprintf("%s%s-%s.png", r.opts.DumpPrefix, kind, name)
			title := fmt.Sprintf("%s %s %s", r.preset.Name, name, kind)
			if err := g.ToImg(title, filename); err != nil {
				log.Printf("dump %s: %v", filename, err)
			}
		}
	}
}

func gridPtrs(grids []emath.FloatGrid) []*emath.FloatGrid {
	ptrs := []*emath.FloatGrid{}
	for i := range grids {
		ptrs = append(ptrs, &grids[i])
	}
	return ptrs
}
