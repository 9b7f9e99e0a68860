package darkroom

import(
	"fmt"
	"image"
	"io/ioutil"
	"log"

	"gopkg.in/yaml.v2"

	"github.com/abworrall/filmsim/pkg/emulsion"
	"github.com/abworrall/filmsim/pkg/film"
)

type Config struct {
	Verbosity            int

	Preset               string
	ISO                  int       // film speed; <= 0 disables grain, as in emulsion.Params
	ExifISO              bool      // prefer the frame's own EXIF ISO, when it has one
	ToneStyle            emulsion.ToneStyle
	ExposureEV           float64
	HalationIntensity    float64
	TargetSize           int       // shorter edge of the output; emulsion.KeepSize to leave alone
	Seed                 int64     // grain seed for the first frame; later frames count up from it

	Workers              int       // how many frames to develop at once
	OutputDir            string
	OutputFormat         string    // jpg or png
	JPEGQuality          int

	DumpHDR              bool      // also write the developed negative as a Radiance .hdr
	DumpGrids            bool      // write PNGs of the exposure & bloom fields
	ReferenceTonemappers []string  // also print the negative with these HDR operators, for comparison
	CompareWith          string    // a dir of reference renders, with the same filenames as our outputs
	DebugPixels          []image.Point

	Presets              []film.FilmPreset // added to the built-in catalog
}

func NewConfig() Config {
	return Config{
		Preset:            film.DefaultPresetName,
		ISO:               DefaultISO,
		ExifISO:           true,
		ToneStyle:         emulsion.Filmic,
		HalationIntensity: 1.0,
		TargetSize:        emulsion.DefaultTargetSize,
		Workers:           4,
		OutputDir:         ".",
		OutputFormat:      "jpg",
		JPEGQuality:       95,
	}
}

func newConfigFromYaml(b []byte) (Config, error) {
	c := NewConfig()
	err := yaml.UnmarshalStrict(b, &c)
	return c, err
}

func loadConfig(filename string) (Config, error) {
	contents, err := ioutil.ReadFile(filename)
	if err != nil {
		return Config{}, fmt.Errorf("config read %s: %v", filename, err)
	}

	return newConfigFromYaml(contents)
}

func (c Config)AsYaml() string {
	b, err := yaml.Marshal(c)
	if err != nil {
		log.Fatalf("Can't marshal config yaml: %v\n", err)
	}
	return string(b)
}

func (c Config)Validate() error {
	switch c.OutputFormat {
	case "jpg", "png":
	default:
		return fmt.Errorf("output format '%s' not one of [jpg png]", c.OutputFormat)
	}
	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		return fmt.Errorf("jpeg quality %d outside [1,100]", c.JPEGQuality)
	}
	for _, name := range c.ReferenceTonemappers {
		if !IsReferenceTonemapper(name) {
			return fmt.Errorf("no reference tonemapper '%s', want one of %v", name, ReferenceTonemappers)
		}
	}
	_, err := c.Registry()
	return err
}

// Registry is the built-in catalog plus any presets from the config.
func (c Config)Registry() (film.Registry, error) {
	return film.DefaultRegistry().With(c.Presets...)
}

// FilmPreset looks up the configured preset. Unknown names fall back to the
// catalog default, as the registry does, but we say so.
func (c Config)FilmPreset() (film.FilmPreset, error) {
	reg, err := c.Registry()
	if err != nil {
		return film.FilmPreset{}, err
	}
	p, ok := reg.Lookup(c.Preset)
	if !ok {
		log.Printf("no preset named '%s', using '%s'\n", c.Preset, reg.DefaultName())
		p = reg.Default()
	}
	return p, nil
}

// SetISO fixes the film speed for every frame, ignoring EXIF. A speed <= 0
// turns grain off.
func (c *Config)SetISO(iso int) {
	c.ISO = iso
	c.ExifISO = false
}

// EffectiveISO decides the film speed for a frame whose EXIF said exifISO (0
// if unknown): the EXIF speed snapped to a film stop if ExifISO is set and
// there is one, else the configured ISO.
func (c Config)EffectiveISO(exifISO int) int {
	if c.ExifISO && exifISO > 0 {
		return SnapISO(exifISO)
	}
	return c.ISO
}

func (c Config)Params(exifISO int, frameNum int) emulsion.Params {
	return emulsion.Params{
		ISO:               c.EffectiveISO(exifISO),
		ToneStyle:         c.ToneStyle,
		ExposureEV:        c.ExposureEV,
		HalationIntensity: c.HalationIntensity,
		Seed:              c.Seed + int64(frameNum),
	}
}
