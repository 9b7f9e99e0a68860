package main

import(
	"flag"
	"fmt"
	"io/ioutil"
	"log"
	"path/filepath"
	"strings"
	"sync"

	"github.com/abworrall/filmsim/pkg/darkroom"
	"github.com/abworrall/filmsim/pkg/emulsion"
	"github.com/abworrall/filmsim/pkg/film"
)

var(
	fVerbosity int
	fPreset string
	fISO int
	fExifISO bool
	fToneStyle string
	fExposureEV float64
	fHalation float64
	fTargetSize int
	fSeed int64
	fWorkers int
	fOutputDir string
	fOutputFormat string
	fJPEGQuality int
	fPresetsFile string
	fList bool
	fDumpHDR bool
	fReference string
	fCompareWith string
)

func init() {
	flag.IntVar(&fVerbosity, "v", 0, "how verbose to get")
	flag.StringVar(&fPreset, "preset", film.DefaultPresetName, "which film stock to simulate (see -list)")
	flag.IntVar(&fISO, "iso", darkroom.DefaultISO, "film speed, used for every frame; <=0 disables grain")
	flag.BoolVar(&fExifISO, "exif", true, "take the film speed from each frame's EXIF when it has one (ignored if -iso is given)")
	flag.StringVar(&fToneStyle, "tone", "filmic", "tone curve: "+strings.Join(emulsion.ToneStyles(), ", "))
	flag.Float64Var(&fExposureEV, "ev", 0.0, "exposure compensation, in stops [-3,3]")
	flag.Float64Var(&fHalation, "halation", 1.0, "halation intensity [0,2]")
	flag.IntVar(&fTargetSize, "size", emulsion.DefaultTargetSize, "shorter edge of the output, in pixels; -1 keeps the input size")
	flag.Int64Var(&fSeed, "seed", 0, "grain seed")
	flag.IntVar(&fWorkers, "workers", 4, "how many frames to develop at once")
	flag.StringVar(&fOutputDir, "o", ".", "output directory")
	flag.StringVar(&fOutputFormat, "format", "jpg", "output format: jpg, png")
	flag.IntVar(&fJPEGQuality, "quality", 95, "jpeg quality")
	flag.StringVar(&fPresetsFile, "presets", "", "YAML file of extra film presets")
	flag.BoolVar(&fList, "list", false, "list the film presets, and exit")
	flag.BoolVar(&fDumpHDR, "dumphdr", false, "also write the developed negative as a Radiance .hdr")
	flag.StringVar(&fReference, "reference", "", "also print with these HDR tonemappers (comma separated, or 'all'): "+strings.Join(darkroom.ReferenceTonemappers, ", "))
	flag.StringVar(&fCompareWith, "compare", "", "dir of reference renders to compare the outputs against")
	flag.Parse()

	log.Printf("filmsim starting\n")
}

// applyFlags copies the flags that were set on the command line over the
// config, so they override a .yaml config.
func applyFlags(cfg *darkroom.Config) error {
	var err error
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "v":        cfg.Verbosity = fVerbosity
		case "preset":   cfg.Preset = fPreset
		case "iso":      cfg.SetISO(fISO)
		case "exif":     if !isSet("iso") { cfg.ExifISO = fExifISO }
		case "ev":       cfg.ExposureEV = fExposureEV
		case "halation": cfg.HalationIntensity = fHalation
		case "size":     cfg.TargetSize = fTargetSize
		case "seed":     cfg.Seed = fSeed
		case "workers":  cfg.Workers = fWorkers
		case "o":        cfg.OutputDir = fOutputDir
		case "format":   cfg.OutputFormat = fOutputFormat
		case "quality":  cfg.JPEGQuality = fJPEGQuality
		case "dumphdr":  cfg.DumpHDR = fDumpHDR
		case "compare":  cfg.CompareWith = fCompareWith
		case "tone":
			if style, e := emulsion.ParseToneStyle(fToneStyle); e != nil {
				err = e
			} else {
				cfg.ToneStyle = style
			}
		case "reference":
			if fReference == "all" {
				cfg.ReferenceTonemappers = darkroom.ReferenceTonemappers
			} else {
				cfg.ReferenceTonemappers = strings.Split(fReference, ",")
			}
		}
	})

	if fPresetsFile != "" {
		b, e := ioutil.ReadFile(fPresetsFile)
		if e != nil {
			return fmt.Errorf("presets read %s: %v", fPresetsFile, e)
		}
		presets, e := film.LoadPresetsYaml(b)
		if e != nil {
			return fmt.Errorf("presets file '%s': %v", fPresetsFile, e)
		}
		cfg.Presets = append(cfg.Presets, presets...)
	}

	return err
}

func isSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name { set = true }
	})
	return set
}

func listPresets(cfg darkroom.Config) {
	reg, err := cfg.Registry()
	if err != nil {
		log.Fatal(err)
	}
	if cfg.Verbosity > 0 {
		fmt.Printf("%s", reg.AsYaml())
		return
	}
	for _, name := range reg.Names() {
		p := reg.Get(name)
		def := " "
		if name == reg.DefaultName() {
			def = "*"
		}
		fmt.Printf("%s %-20s %-6s %s\n", def, name, p.Type, p.Description)
	}
}

func main() {
	roll := darkroom.NewRoll()
	if err := roll.LoadFilesAndDirs(flag.Args()...); err != nil {
		log.Fatal(err)
	}

	if err := applyFlags(&roll.Config); err != nil {
		log.Fatal(err)
	}

	if fList {
		listPresets(roll.Config)
		return
	}

	if roll.Config.Verbosity > 0 {
		log.Printf("Final configuration:-\n\n%s\n", roll.Config.AsYaml())
	}

	if len(roll.Frames) == 0 {
		log.Fatalf("no images found in %v (want %v)", flag.Args(), darkroom.ImageExtensions())
	}

	var mu sync.Mutex
	nFailed := 0
	err := roll.Each(func(p darkroom.Print) {
		if err := finish(roll, p); err != nil {
			log.Printf("%s: %v\n", p.Frame.Filename, err)
			mu.Lock()
			nFailed++
			mu.Unlock()
		}
	})
	if err != nil {
		log.Fatal(err)
	}

	if nFailed > 0 {
		log.Fatalf("%d of %d frames failed", nFailed, len(roll.Frames))
	}
}

// finish writes out a developed frame, and compares it against its reference
// render if there is one. It runs on the roll's worker goroutines.
func finish(roll *darkroom.Roll, p darkroom.Print) error {
	if p.Err != nil {
		return p.Err
	}

	written, err := roll.Write(p)
	if err != nil {
		return fmt.Errorf("write: %v", err)
	}
	log.Printf("%s -> %s (%s)\n", p.Frame.Filename, written[0], p.Elapsed)

	if roll.Config.CompareWith != "" {
		ref := filepath.Join(roll.Config.CompareWith, filepath.Base(written[0]))
		if metric, err := roll.Compare(p, ref); err != nil {
			log.Printf("compare %s: %v\n", ref, err)
		} else {
			log.Printf("%s vs %s: mean dE %.3f\n", written[0], ref, metric)
		}
	}

	return nil
}
