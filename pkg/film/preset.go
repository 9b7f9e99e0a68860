package film

import(
	"fmt"
	"strings"

	"github.com/abworrall/filmsim/pkg/emath"
)

// FilmType says which emulsion layers a preset reads.
type FilmType string

const(
	Color  FilmType = "color"   // red, green & blue layers; pan is only used for the luminance estimate
	Single FilmType = "single"  // black & white; only the pan layer
)

// A LayerConfig describes one photosensitive layer of the emulsion.
type LayerConfig struct {
	AbsorbR    float64 `yaml:"absorb_r"`  // How strongly this layer responds to each input channel
	AbsorbG    float64 `yaml:"absorb_g"`
	AbsorbB    float64 `yaml:"absorb_b"`
	Scatter    float64 `yaml:"scatter"`   // Fraction of the exposure routed through the bloom path
	Direct     float64 `yaml:"direct"`    // Fraction routed unscattered
	Response   float64 `yaml:"response"`  // Carried along for the presets' sake; nothing reads it
	Grain      float64 `yaml:"grain"`     // Base grain amplitude
	RadiusMult float64 `yaml:"radius_mult"` // >1 spreads the bloom wider (red), <1 narrower (blue)
}

// A CurveConfig holds the characteristic curve parameters. Only Gamma is
// consumed (by the Reinhard tone curve); A..F describe a shoulder/linear/toe
// curve family that no tone curve reads yet.
type CurveConfig struct {
	Gamma float64 `yaml:"gamma"`
	A     float64 `yaml:"a"`  // shoulder strength
	B     float64 `yaml:"b"`  // linear strength
	C     float64 `yaml:"c"`  // linear angle
	D     float64 `yaml:"d"`  // toe strength
	E     float64 `yaml:"e"`  // toe numerator
	F     float64 `yaml:"f"`  // toe denominator
}

// A FilmPreset is the complete parameter set for one film stock.
type FilmPreset struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description"`
	Type        FilmType    `yaml:"type"`

	Red         LayerConfig `yaml:"red"`
	Green       LayerConfig `yaml:"green"`
	Blue        LayerConfig `yaml:"blue"`
	Pan         LayerConfig `yaml:"pan"`   // B&W stocks, or the total-luminance estimate for color

	SensFactor  float64     `yaml:"sens_factor"` // Global halation strength
	Curve       CurveConfig `yaml:"curve"`

	// Dye coupling, as a row-major 3x3 matrix over densities: rows are the
	// output channel, columns the input channel. Identity means no coupling.
	Crosstalk   []float64   `yaml:"crosstalk"`
}

func NewLayerConfig() LayerConfig {
	return LayerConfig{Direct: 1.0, Response: 1.0, RadiusMult: 1.0}
}

// layer is shorthand for the catalog: absorption weights plus the defaults.
func layer(r, g, b float64) LayerConfig {
	l := NewLayerConfig()
	l.AbsorbR, l.AbsorbG, l.AbsorbB = r, g, b
	return l
}

func NewCurveConfig() CurveConfig {
	return CurveConfig{Gamma: 2.0, A: 0.15, B: 0.50, C: 0.10, D: 0.20, E: 0.02, F: 0.30}
}

func IdentityCrosstalk() []float64 {
	return []float64{
		1.0, 0.0, 0.0,
		0.0, 1.0, 0.0,
		0.0, 0.0, 1.0,
	}
}

// NewFilmPreset returns a preset with every field at its default, so that
// presets read from YAML can leave things out.
func NewFilmPreset() FilmPreset {
	return FilmPreset{
		Type:       Color,
		Red:        NewLayerConfig(),
		Green:      NewLayerConfig(),
		Blue:       NewLayerConfig(),
		Pan:        NewLayerConfig(),
		SensFactor: 1.0,
		Curve:      NewCurveConfig(),
		Crosstalk:  IdentityCrosstalk(),
	}
}

func (p FilmPreset)IsColor() bool { return p.Type == Color }

// CrosstalkMatrix returns the dye coupling matrix. Validate guarantees it has nine entries.
func (p FilmPreset)CrosstalkMatrix() emath.Mat3 {
	m, ok := emath.Mat3FromSlice(p.Crosstalk)
	if !ok {
		return emath.Identity3()
	}
	return m
}

// Layers returns the layers that take part in rendering, in output channel order.
func (p FilmPreset)Layers() []LayerConfig {
	if p.Type == Single {
		return []LayerConfig{p.Pan}
	}
	return []LayerConfig{p.Red, p.Green, p.Blue}
}

func (p FilmPreset)String() string {
	return fmt.Sprintf("%s (%s, sens %.2f, gamma %.2f)", p.Name, p.Type, p.SensFactor, p.Curve.Gamma)
}

// Clone returns a deep copy, so nobody can reach into a registered preset's crosstalk slice.
func (p FilmPreset)Clone() FilmPreset {
	c := p
	c.Crosstalk = append([]float64(nil), p.Crosstalk...)
	return c
}

func (l LayerConfig)Validate() error {
	for _, v := range []float64{l.AbsorbR, l.AbsorbG, l.AbsorbB, l.Scatter, l.Direct, l.Response, l.Grain, l.RadiusMult} {
		if !emath.IsFinite(v) {
			return fmt.Errorf("non-finite value")
		}
	}

	switch {
	case l.AbsorbR < 0 || l.AbsorbG < 0 || l.AbsorbB < 0:
		return fmt.Errorf("negative absorption (%.2f,%.2f,%.2f)", l.AbsorbR, l.AbsorbG, l.AbsorbB)
	case l.Scatter < 0 || l.Scatter > 1:
		return fmt.Errorf("scatter %.2f outside [0,1]", l.Scatter)
	case l.Direct < 0:
		return fmt.Errorf("negative direct %.2f", l.Direct)
	case l.Grain < 0:
		return fmt.Errorf("negative grain %.2f", l.Grain)
	case l.RadiusMult <= 0:
		return fmt.Errorf("radius_mult %.2f must be positive", l.RadiusMult)
	}

	return nil
}

// Validate checks a preset for values that would render silently
// degenerate images (NaNs, negative grain, etc.)
func (p FilmPreset)Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("preset has no name")
	}

	layers := map[string]LayerConfig{"pan": p.Pan}
	switch p.Type {
	case Color:
		layers["red"], layers["green"], layers["blue"] = p.Red, p.Green, p.Blue
	case Single:
	default:
		return fmt.Errorf("preset '%s': type '%s' not one of [%s %s]", p.Name, p.Type, Color, Single)
	}

	for _, name := range []string{"red", "green", "blue", "pan"} {
		if l, exists := layers[name]; exists {
			if err := l.Validate(); err != nil {
				return fmt.Errorf("preset '%s': %s layer: %v", p.Name, name, err)
			}
		}
	}

	if !emath.IsFinite(p.SensFactor) || p.SensFactor < 0 {
		return fmt.Errorf("preset '%s': sens_factor %v must be >= 0", p.Name, p.SensFactor)
	}
	if !emath.IsFinite(p.Curve.Gamma) || p.Curve.Gamma <= 0 {
		return fmt.Errorf("preset '%s': curve gamma %v must be > 0", p.Name, p.Curve.Gamma)
	}
	if len(p.Crosstalk) != 9 {
		return fmt.Errorf("preset '%s': crosstalk needs 9 values, has %d", p.Name, len(p.Crosstalk))
	}
	for _, v := range p.Crosstalk {
		if !emath.IsFinite(v) {
			return fmt.Errorf("preset '%s': crosstalk has a non-finite value", p.Name)
		}
	}

	return nil
}
