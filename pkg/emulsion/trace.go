package emulsion

import(
	"fmt"
	"image"
	"image/color"

	"github.com/abworrall/filmsim/pkg/ecolor"
	"github.com/abworrall/filmsim/pkg/emath"
)

// A Trace follows one pixel through the pipeline, for debugging presets.
type Trace struct {
	Pos          image.Point  // In standardized coords
	Input        [3]float64   // Code values (R,G,B) after standardizing
	Stages     []TraceStage
	Output       color.Color  // The printed pixel; see PrintedTraces
}

type TraceStage struct {
	Name     string
	Values []float64          // one per channel
}

func newTraces(pts []image.Point, std ecolor.Buffer) []Trace {
	traces := []Trace{}
	for _, pt := range pts {
		if !pt.In(std.Bounds()) {
			continue
		}
		r, g, b := std.At(pt.X, pt.Y)
		traces = append(traces, Trace{Pos: pt, Input: [3]float64{r, g, b}})
	}
	return traces
}

func recordStage(traces []Trace, name string, grids ...*emath.FloatGrid) {
	for i := range traces {
		vals := []float64{}
		for _, g := range grids {
			vals = append(vals, g.Get(traces[i].Pos.X, traces[i].Pos.Y))
		}
		traces[i].Stages = append(traces[i].Stages, TraceStage{name, vals})
	}
}

func (t Trace)String() string {
	str := fmt.Sprintf("----- Pixel @(%d,%d)-----\n", t.Pos.X, t.Pos.Y)
	str += fmt.Sprintf("Input              : [%12.4f, %12.4f, %12.4f]\n", t.Input[0], t.Input[1], t.Input[2])

	for _, s := range t.Stages {
		str += fmt.Sprintf("%-19s:", s.Name)
		for i, v := range s.Values {
			if i > 0 { str += "," }
			str += fmt.Sprintf(" %12.10f", v)
		}
		str += "\n"
	}

	if t.Output != nil {
		r, g, b, _ := t.Output.RGBA()
		str += fmt.Sprintf("Output(RGB32)      : [%12d, %12d, %12d]\n", r>>8, g>>8, b>>8)
	}
	str += fmt.Sprintf("\n")

	return str
}
