package darkroom

import(
	"fmt"
	"image"

	"github.com/mdouchement/hdr"
	"github.com/mdouchement/hdr/tmo"
)

// The HDR tone mapping operators we can print a negative with, to compare
// against the film's own tone curve.
var(
	ReferenceTonemappers = []string{"drago03", "durand", "icam06", "linear", "reinhard05"}
)

func IsReferenceTonemapper(name string) bool {
	for _, n := range ReferenceTonemappers {
		if n == name {
			return true
		}
	}
	return false
}

// SetupTonemapper tweaks the tmo parameters to suit developed negatives,
// which are mostly midtones with the odd bright halo.
func SetupTonemapper(name string, img hdr.Image) (tmo.ToneMappingOperator, error) {
	switch name {
	case "drago03":
		op := tmo.NewDefaultDrago03(img)
		op.Bias = 0.9            // A little flatter than the default, so halation glows don't blow out
		return op, nil

	case "durand":
		return tmo.NewDefaultDurand(img), nil

	case "icam06":
		op := tmo.NewDefaultICam06(img)
		op.Contrast    = 0.7
		op.MaxClipping = 0.999
		return op, nil

	case "linear":
		return tmo.NewLinear(img), nil

	case "reinhard05":
		op := tmo.NewDefaultReinhard05(img)
		op.Chromatic = 0.0       // Keep the film's own color cast
		op.Light     = 1.0
		return op, nil
	}

	return nil, fmt.Errorf("no reference tonemapper named '%s'", name)
}

func ReferenceTonemap(name string, img hdr.Image) (image.Image, error) {
	op, err := SetupTonemapper(name, img)
	if err != nil {
		return nil, err
	}
	return op.Perform(), nil
}
