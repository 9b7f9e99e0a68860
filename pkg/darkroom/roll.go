package darkroom

import(
	"fmt"
	"image"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/abworrall/filmsim/pkg/emulsion"
	"github.com/abworrall/filmsim/pkg/film"
)

// A Roll is a set of frames, all developed with the same config & film.
type Roll struct {
	Config Config
	Frames []Frame
}

func NewRoll() *Roll {
	return &Roll{Config: NewConfig()}
}

// A Print is the outcome of developing one frame.
type Print struct {
	Index        int        // of the frame in the roll
	Frame      *Frame
	Preset       string
	Params       emulsion.Params
	Image        image.Image
	Negative    *emulsion.Negative
	Elapsed      time.Duration
	Err          error
}

func (p Print)String() string {
	if p.Err != nil {
		return fmt.Sprintf("%s: failed: %v", p.Frame.Filename, p.Err)
	}
	return fmt.Sprintf("%s: %s, %s, %dx%d in %s", p.Frame.Filename, p.Preset, p.Params,
		p.Image.Bounds().Dx(), p.Image.Bounds().Dy(), p.Elapsed)
}

type developJob struct {
	Index   int
	Frame  *Frame
}

// Each develops every frame, using a pool of goroutines; each frame is
// independent. Frames are decoded by the worker that develops them, and fn is
// called on that worker as soon as the print is ready, in no particular
// order. Once fn returns the worker drops the frame's pixels and negative, so
// at most Config.Workers frames are held in memory. fn must be safe to call
// concurrently.
//
// The error is only for problems that would affect every frame (e.g. a bad
// preset); a frame that fails has Print.Err set.
func (r *Roll)Each(fn func(p Print)) error {
	if err := r.Config.Validate(); err != nil {
		return err
	}
	preset, err := r.Config.FilmPreset()
	if err != nil {
		return err
	}

	var wg sync.WaitGroup
	jobsChan := make(chan developJob, len(r.Frames))

	// Kick off worker pool
	nWorkers := r.Config.Workers
	if nWorkers < 1 {
		nWorkers = 1
	}
	for i:=0; i<nWorkers; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()
			for job := range jobsChan {
				fn(r.developFrame(preset, job.Index, job.Frame))
			}
		}()
	}

	// Feed in jobs
	for i := range r.Frames {
		jobsChan<- developJob{Index: i, Frame: &r.Frames[i]}
	}

	close(jobsChan)
	wg.Wait()

	return nil
}

// Develop is Each, collecting the prints in frame order. Every negative stays
// in memory, so for big rolls prefer Each.
func (r *Roll)Develop() ([]Print, error) {
	prints := make([]Print, len(r.Frames))
	err := r.Each(func(p Print) {
		prints[p.Index] = p
	})
	if err != nil {
		return nil, err
	}
	return prints, nil
}

func (r *Roll)developFrame(preset film.FilmPreset, i int, f *Frame) Print {
	tStart := time.Now()
	p := Print{
		Index:  i,
		Frame:  f,
		Preset: preset.Name,
	}

	buf, err := f.Load()
	if err != nil {
		p.Err = err
		return p
	}
	p.Params = r.Config.Params(f.ISO, i)

	rend, err := emulsion.NewRenderer(preset, r.rendererOptions(f)...)
	if err != nil {
		p.Err = err
		return p
	}

	if p.Negative, err = rend.Develop(buf, p.Params); err != nil {
		p.Err = fmt.Errorf("develop '%s': %v", f.Filename, err)
		return p
	}
	p.Image = rend.Print(p.Negative, p.Params.ToneStyle)
	p.Elapsed = time.Since(tStart)

	if r.Config.Verbosity > 0 {
		log.Printf("%s\n", p)
	}

	return p
}

func (r *Roll)rendererOptions(f *Frame) []emulsion.Option {
	opts := []emulsion.Option{
		emulsion.WithTargetSize(r.Config.TargetSize),
		emulsion.WithVerbosity(r.Config.Verbosity),
		emulsion.WithDebugPixels(r.Config.DebugPixels...),
	}
	if r.Config.DumpGrids {
		opts = append(opts, emulsion.WithDumpGrids(filepath.Join(r.Config.OutputDir, f.Base() + "-")))
	}
	return opts
}
