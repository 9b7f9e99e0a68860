package film

import(
	"fmt"
	"log"

	"gopkg.in/yaml.v2"
)

// A Registry is an immutable catalog of presets, looked up by name. The zero
// value is empty; use DefaultRegistry or NewRegistry.
type Registry struct {
	names       []string              // catalog order
	presets     map[string]FilmPreset
	defaultName string
}

// builtin is populated once, and never mutated afterwards.
var builtin = mustRegistry(builtinPresets()...)

func mustRegistry(presets ...FilmPreset) Registry {
	r, err := NewRegistry(presets...)
	if err != nil {
		log.Fatalf("built-in film presets: %v", err)
	}
	return r
}

// DefaultRegistry returns the built-in catalog. Unknown names fall back to NC200.
func DefaultRegistry() Registry { return builtin }

// NewRegistry validates the presets and builds a catalog from them. The first
// preset is the default, unless the catalog contains NC200.
func NewRegistry(presets ...FilmPreset) (Registry, error) {
	r := Registry{presets: map[string]FilmPreset{}}
	return r.with(presets)
}

// With returns a new Registry holding the receiver's presets plus the new
// ones; the receiver is left as it was. Names must not collide.
func (r Registry)With(presets ...FilmPreset) (Registry, error) {
	return r.with(presets)
}

func (r Registry)with(presets []FilmPreset) (Registry, error) {
	r2 := Registry{
		names:       append([]string(nil), r.names...),
		presets:     make(map[string]FilmPreset, len(r.presets) + len(presets)),
		defaultName: r.defaultName,
	}
	for k, v := range r.presets {
		r2.presets[k] = v
	}

	for _, p := range presets {
		if err := p.Validate(); err != nil {
			return r, err
		}
		if _, exists := r2.presets[p.Name]; exists {
			return r, fmt.Errorf("preset '%s' is already registered", p.Name)
		}
		r2.presets[p.Name] = p.Clone()
		r2.names = append(r2.names, p.Name)
	}

	if _, exists := r2.presets[DefaultPresetName]; exists {
		r2.defaultName = DefaultPresetName
	} else if r2.defaultName == "" && len(r2.names) > 0 {
		r2.defaultName = r2.names[0]
	}

	return r2, nil
}

// Lookup returns the named preset, and false if there isn't one.
func (r Registry)Lookup(name string) (FilmPreset, bool) {
	p, exists := r.presets[name]
	if !exists {
		return FilmPreset{}, false
	}
	return p.Clone(), true
}

// Get returns the named preset, or the default preset if the name is unknown.
func (r Registry)Get(name string) FilmPreset {
	if p, ok := r.Lookup(name); ok {
		return p
	}
	return r.Default()
}

func (r Registry)Default() FilmPreset {
	return r.presets[r.defaultName].Clone()
}

func (r Registry)DefaultName() string { return r.defaultName }

func (r Registry)Names() []string {
	return append([]string(nil), r.names...)
}

func (r Registry)Len() int { return len(r.names) }

// AsYaml dumps the catalog in the same format LoadPresetsYaml reads.
func (r Registry)AsYaml() string {
	doc := presetsDoc{}
	for _, name := range r.names {
		doc.Presets = append(doc.Presets, r.presets[name])
	}
	b, err := yaml.Marshal(doc)
	if err != nil {
		log.Fatalf("Can't marshal presets yaml: %v\n", err)
	}
	return string(b)
}

/* Example presets file ...

presets:
  - name: My Stock 100
    description: Slow, clean, cool
    type: color
    sens_factor: 0.4
    red:   {absorb_r: 0.80, absorb_g: 0.10, absorb_b: 0.10, scatter: 0.2, radius_mult: 1.4}
    green: {absorb_r: 0.10, absorb_g: 0.80, absorb_b: 0.10, scatter: 0.1}
    blue:  {absorb_r: 0.10, absorb_g: 0.10, absorb_b: 0.80, scatter: 0.1, radius_mult: 0.8}
    curve: {gamma: 2.0}

*/

type presetsDoc struct {
	Presets []FilmPreset `yaml:"presets"`
}

// UnmarshalYAML starts from NewFilmPreset, so fields missing from the YAML keep their defaults.
func (p *FilmPreset)UnmarshalYAML(unmarshal func(interface{}) error) error {
	type plain FilmPreset
	raw := plain(NewFilmPreset())
	if err := unmarshal(&raw); err != nil {
		return err
	}
	*p = FilmPreset(raw)
	return nil
}

// LoadPresetsYaml parses a presets document. The presets are validated, but
// not registered; see Registry.With.
func LoadPresetsYaml(b []byte) ([]FilmPreset, error) {
	doc := presetsDoc{}
	if err := yaml.UnmarshalStrict(b, &doc); err != nil {
		return nil, fmt.Errorf("parse presets: %v", err)
	}
	for _, p := range doc.Presets {
		if err := p.Validate(); err != nil {
			return nil, err
		}
	}
	return doc.Presets, nil
}
