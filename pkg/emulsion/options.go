package emulsion

import(
	"fmt"
	"image"
	"strings"
)

const(
	DefaultTargetSize = 3000 // shorter edge after standardizing
	KeepSize          = -1   // TargetSize that skips standardizing altogether
	DefaultLevels     = 6    // bloom pyramid depth
)

// Options are fixed for the lifetime of a Renderer.
type Options struct {
	TargetSize  int           // 0 means DefaultTargetSize; KeepSize leaves the input dimensions alone
	Levels      int           // 0 means DefaultLevels
	Verbosity   int

	DebugPixels []image.Point // (in standardized coords) log these pixels' values at each stage
	DumpGrids   bool          // write greyscale PNGs of the exposure & bloom fields
	DumpPrefix  string        // filename prefix for DumpGrids
}

func (o Options)targetSize() int {
	if o.TargetSize == 0 {
		return DefaultTargetSize
	}
	return o.TargetSize
}

func (o Options)levels() int {
	if o.Levels <= 0 {
		return DefaultLevels
	}
	return o.Levels
}

// Params vary per call to Process.
type Params struct {
	ISO               int       // nominal 50-3200; <= 0 disables grain
	ToneStyle         ToneStyle
	ExposureEV        float64   // recommended [-3, 3]
	HalationIntensity float64   // recommended [0, 2]
	Seed              int64     // seeds the grain noise
}

func DefaultParams() Params {
	return Params{
		ISO:               400,
		ToneStyle:         Filmic,
		ExposureEV:        0.0,
		HalationIntensity: 1.0,
	}
}

func (p Params)String() string {
	return fmt.Sprintf("ISO%d, %s, %+.1fEV, halation %.1f, seed %d", p.ISO, p.ToneStyle, p.ExposureEV, p.HalationIntensity, p.Seed)
}

// ToneStyle selects the tone curve. It is a closed set.
type ToneStyle int

const(
	Filmic   ToneStyle = iota // Narkowicz's ACES fit
	Reinhard                  // x/(1+x), with the preset's gamma
)

var toneStyleNames = []string{"filmic", "reinhard"}

func ToneStyles() []string { return append([]string(nil), toneStyleNames...) }

func (s ToneStyle)String() string {
	if s < 0 || int(s) >= len(toneStyleNames) {
		return fmt.Sprintf("ToneStyle(%d)", int(s))
	}
	return toneStyleNames[s]
}

func ParseToneStyle(str string) (ToneStyle, error) {
	for i, name := range toneStyleNames {
		if strings.EqualFold(strings.TrimSpace(str), name) {
			return ToneStyle(i), nil
		}
	}
	return Filmic, fmt.Errorf("tone style '%s' not one of %v", str, toneStyleNames)
}

// Implement yaml.v2's Marshaler & Unmarshaler, so configs can say `tonestyle: reinhard`
func (s ToneStyle)MarshalYAML() (interface{}, error) { return s.String(), nil }

func (s *ToneStyle)UnmarshalYAML(unmarshal func(interface{}) error) error {
	str := ""
	if err := unmarshal(&str); err != nil {
		return err
	}
	parsed, err := ParseToneStyle(str)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
