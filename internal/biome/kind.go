package biome

import (
	"errors"
	"fmt"
	"image/color"
	"strings"
)

// Kind tags a surface material.
type Kind string

const (
	Stone     Kind = "stone"
	Grassland Kind = "grassland"
	Desert    Kind = "desert"
	Snow      Kind = "snow"
	Ocean     Kind = "ocean"
	Swamp     Kind = "swamp"
	Lava      Kind = "lava"
	Wood      Kind = "wood"
	Tile      Kind = "tile"
	Road      Kind = "road"
	Carpet    Kind = "carpet"
	Metal     Kind = "metal"
)

// MinSize is the smallest tile edge the synthesizers accept.
const MinSize = 8

var (
	ErrUnknownKind = errors.New("unknown biome kind")
	ErrInvalidSize = errors.New("tile size below minimum")
)

// Tags are gameplay metadata exported with the atlas. The engine never
// reads them.
type Tags struct {
	WalkCost  float64 `json:"walk_cost"`
	Friction  float64 `json:"friction"`
	Flammable float64 `json:"flammable"`
	Fluid     float64 `json:"fluid"`
	Hazard    bool    `json:"hazard,omitempty"`
}

// Definition binds a kind to its synthesizer, color ramp and tags.
type Definition struct {
	Kind    Kind
	Ramp    Ramp
	Accents map[string]color.RGBA
	Tags    Tags

	synth synthFunc
}

func (d *Definition) accent(name string) color.RGBA {
	c, ok := d.Accents[name]
	if !ok {
		// definitions are static; a missing accent is a programming error
		panic(fmt.Sprintf("biome %s: no accent %q", d.Kind, name))
	}
	return c
}

var (
	definitions []*Definition
	byKind      = make(map[Kind]*Definition)
)

func register(def *Definition) {
	if _, dup := byKind[def.Kind]; dup {
		panic("biome: duplicate kind " + string(def.Kind))
	}
	definitions = append(definitions, def)
	byKind[def.Kind] = def
}

// Lookup returns the definition for k.
func Lookup(k Kind) (*Definition, error) {
	def, ok := byKind[k]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, string(k))
	}
	return def, nil
}

// ParseKind normalizes a user-supplied name and checks it is registered.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if _, err := Lookup(k); err != nil {
		return "", err
	}
	return k, nil
}

// ParseKinds splits a comma separated list. Empty entries are skipped.
func ParseKinds(list string) ([]Kind, error) {
	var out []Kind
	for _, part := range strings.Split(list, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		k, err := ParseKind(part)
		if err != nil {
			return nil, err
		}
		out = append(out, k)
	}
	return out, nil
}

// Kinds lists every registered kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, len(definitions))
	for i, d := range definitions {
		out[i] = d.Kind
	}
	return out
}

// TagTable returns the gameplay tags of every kind.
func TagTable() map[Kind]Tags {
	out := make(map[Kind]Tags, len(definitions))
	for _, d := range definitions {
		out[d.Kind] = d.Tags
	}
	return out
}
