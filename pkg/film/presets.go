package film

// The built-in catalog. Names are the registry keys.

const DefaultPresetName = "NC200"

func nc200() FilmPreset {
	p := NewFilmPreset()
	p.Name        = "NC200"
	p.Description = "Inspired by Fujifilm C200 & SP3000 scanner. Natural, soft, elegant."
	p.SensFactor  = 0.5

	// Red scatters most, blue least
	p.Red   = LayerConfig{0.77, 0.12, 0.18, 0.20, 0.95, 1.18, 0.18, 1.5}
	p.Green = LayerConfig{0.08, 0.85, 0.23, 0.15, 0.80, 1.02, 0.18, 1.0}
	p.Blue  = LayerConfig{0.08, 0.09, 0.92, 0.15, 0.88, 0.78, 0.18, 0.7}
	p.Pan   = layer(0.25, 0.35, 0.35)
	p.Pan.Grain = 0.08

	p.Curve = CurveConfig{Gamma: 2.05, A: 0.15, B: 0.50, C: 0.10, D: 0.20, E: 0.02, F: 0.30}

	// Slightly impure dyes
	p.Crosstalk = []float64{
		0.95, 0.05, 0.0,
		0.02, 0.96, 0.02,
		0.0,  0.05, 0.95,
	}
	return p
}

func fs200() FilmPreset {
	p := NewFilmPreset()
	p.Name        = "FS200"
	p.Description = "High contrast B&W positive 'Light'. Blue sensitive."
	p.Type        = Single
	p.SensFactor  = 0.6

	// For B&W the absorption weights are the spectral sensitivity
	p.Pan   = LayerConfig{0.15, 0.35, 0.45, 0.3, 0.85, 1.15, 0.20, 1.0}
	p.Curve = CurveConfig{Gamma: 2.2, A: 0.15, B: 0.50, C: 0.10, D: 0.20, E: 0.02, F: 0.30}
	return p
}

func as100() FilmPreset {
	p := NewFilmPreset()
	p.Name        = "AS100"
	p.Description = "Inspired by Fujifilm ACROS 100. High sharpness, rich tonal gradation."
	p.Type        = Single
	p.SensFactor  = 1.0

	// Orthopanchromatic, less red sensitivity
	p.Pan = layer(0.28, 0.40, 0.32)
	p.Pan.Direct, p.Pan.Scatter, p.Pan.Grain = 0.7, 0.2, 0.10

	p.Curve = CurveConfig{Gamma: 2.2, A: 0.25, B: 0.40, C: 0.15, D: 0.25, E: 0.01, F: 0.30}
	return p
}

func portra400() FilmPreset {
	p := NewFilmPreset()
	p.Name        = "Kodak Portra 400"
	p.Description = "Professional Color Negative. Exceptional skin tones, fine grain, high latitude."
	p.SensFactor  = 0.6

	p.Red   = layer(0.75, 0.15, 0.10)
	p.Green = layer(0.10, 0.80, 0.10)
	p.Blue  = layer(0.05, 0.10, 0.85)
	p.Red.Scatter,   p.Red.RadiusMult   = 0.22, 1.6
	p.Green.Scatter, p.Green.RadiusMult = 0.18, 1.1
	p.Blue.Scatter,  p.Blue.RadiusMult  = 0.18, 0.8

	// Very gentle curve (high latitude)
	p.Curve = CurveConfig{Gamma: 1.8, A: 0.10, B: 0.60, C: 0.08, D: 0.30, E: 0.05, F: 0.40}

	// Cyan dye absorbs some green & blue, magenta some blue; the strong
	// bottom row gives the yellowish Kodak warmth.
	p.Crosstalk = []float64{
		0.96, 0.02, 0.0,
		0.04, 0.94, 0.02,
		0.08, 0.08, 0.90,
	}
	return p
}

func pro400h() FilmPreset {
	p := NewFilmPreset()
	p.Name        = "Fuji Pro 400H"
	p.Description = "Professional Color Negative. '4th Color Layer' technology. Cool shadows, faithful colors."
	p.SensFactor  = 0.6

	// The 4th layer is approximated by a broader cyan sensitivity
	p.Red   = layer(0.70, 0.20, 0.10)
	p.Green = layer(0.05, 0.85, 0.10)
	p.Blue  = layer(0.10, 0.10, 0.80)
	p.Red.Scatter,   p.Red.RadiusMult   = 0.20, 1.5
	p.Green.Scatter, p.Green.RadiusMult = 0.15, 1.0
	p.Blue.Scatter,  p.Blue.RadiusMult  = 0.25, 0.9

	p.Curve = CurveConfig{Gamma: 1.9, A: 0.18, B: 0.55, C: 0.12, D: 0.25, E: 0.01, F: 0.35}

	p.Crosstalk = []float64{
		0.94, 0.06, 0.0,
		0.00, 0.98, 0.02,
		0.02, 0.05, 0.93,
	}
	return p
}

func triX400() FilmPreset {
	p := NewFilmPreset()
	p.Name        = "Kodak Tri-X 400"
	p.Description = "The Photojournalism Standard (1954). High contrast, gritty grain, dramatic."
	p.Type        = Single
	p.SensFactor  = 1.0

	// Blue sensitive classic emulsion, so reds come out darker
	p.Pan = layer(0.25, 0.35, 0.40)
	p.Pan.Direct, p.Pan.Scatter, p.Pan.Grain = 0.6, 0.25, 0.15

	p.Curve = CurveConfig{Gamma: 2.4, A: 0.30, B: 0.35, C: 0.20, D: 0.20, E: 0.01, F: 0.25}
	return p
}

func kodachrome64() FilmPreset {
	p := NewFilmPreset()
	p.Name        = "Kodachrome 64"
	p.Description = "The Legend (1974). Color Reversal Film. Deep blacks, vivid reds, sharp."
	p.SensFactor  = 0.3

	// Reversal film: dense, dominant red
	p.Red   = layer(0.85, 0.05, 0.05)
	p.Green = layer(0.05, 0.85, 0.10)
	p.Blue  = layer(0.05, 0.10, 0.85)
	p.Red.Scatter,   p.Red.Direct,   p.Red.RadiusMult   = 0.15, 1.2, 1.1
	p.Green.Scatter, p.Green.Direct, p.Green.RadiusMult = 0.10, 1.1, 1.0
	p.Blue.Scatter,  p.Blue.Direct,  p.Blue.RadiusMult  = 0.10, 1.1, 0.9

	p.Curve = CurveConfig{Gamma: 2.4, A: 0.35, B: 0.20, C: 0.20, D: 0.15, E: 0.00, F: 0.20}
	p.Crosstalk = IdentityCrosstalk()
	return p
}

func vision3_250D() FilmPreset {
	p := NewFilmPreset()
	p.Name        = "Kodak Vision3 250D"
	p.Description = "Modern Hollywood Standard (5207). Neutral, extreme latitude, red halation."
	p.SensFactor  = 0.7

	// Strong red halation, as if the remjet were gone
	p.Red   = layer(0.70, 0.20, 0.10)
	p.Green = layer(0.10, 0.80, 0.10)
	p.Blue  = layer(0.10, 0.10, 0.80)
	p.Red.Scatter,   p.Red.RadiusMult   = 0.30, 1.8
	p.Green.Scatter, p.Green.RadiusMult = 0.20, 1.2
	p.Blue.Scatter,  p.Blue.RadiusMult  = 0.20, 0.8

	p.Curve = CurveConfig{Gamma: 1.7, A: 0.10, B: 0.70, C: 0.05, D: 0.40, E: 0.06, F: 0.50}

	p.Crosstalk = []float64{
		0.95, 0.05, 0.0,
		0.05, 0.90, 0.05,
		0.0,  0.05, 0.95,
	}
	return p
}

// builtinPresets lists the catalog in display order
func builtinPresets() []FilmPreset {
	return []FilmPreset{
		portra400(),
		pro400h(),
		triX400(),
		kodachrome64(),
		vision3_250D(),
		nc200(),
		fs200(),
		as100(),
	}
}
