package biome

import (
	"image/color"

	"github.com/stevenvo780/duo-eterno/internal/palette"
)

func accents(pairs ...string) map[string]color.RGBA {
	m := make(map[string]color.RGBA, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		m[pairs[i]] = palette.MustHex(pairs[i+1])
	}
	return m
}

func init() {
	register(&Definition{
		Kind:    Stone,
		Ramp:    ramp(Linear, "stone_dark", "#4a4a4a", "stone_light", "#6a6a6a", "stone_accent", "#8a8a8a"),
		Accents: accents("mortar", "#3a3a3a"),
		Tags:    Tags{WalkCost: 1, Friction: 0.8},
		synth:   synthStone,
	})
	register(&Definition{
		Kind:    Grassland,
		Ramp:    ramp(EaseOut, "grass_dark", "#006400", "grass_base", "#228b22", "grass_light", "#32cd32"),
		Accents: accents("blade", "#2e8b57", "blade_tip", "#7cfc00"),
		Tags:    Tags{WalkCost: 1, Friction: 0.7, Flammable: 0.4},
		synth:   synthGrassland,
	})
	register(&Definition{
		Kind:  Desert,
		Ramp:  ramp(Sine, "sand_shadow", "#b8925a", "sand_base", "#d9b77a", "sand_light", "#eed9a4"),
		Tags:  Tags{WalkCost: 1.5, Friction: 0.5},
		synth: synthDesert,
	})
	register(&Definition{
		Kind:    Snow,
		Ramp:    ramp(EaseIn, "snow_shadow", "#b7c6d9", "snow_base", "#dfe8f2", "snow_light", "#f7fbff"),
		Accents: accents("sparkle", "#ffffff"),
		Tags:    Tags{WalkCost: 1.8, Friction: 0.3},
		synth:   synthSnow,
	})
	register(&Definition{
		Kind:    Ocean,
		Ramp:    ramp(EaseInOut, "ocean_deep", "#1b3f73", "ocean_base", "#2f6fae", "ocean_light", "#5fa8d8"),
		Accents: accents("foam", "#e8f4ff"),
		Tags:    Tags{WalkCost: 5, Friction: 0.1, Fluid: 1},
		synth:   synthOcean,
	})
	register(&Definition{
		Kind:    Swamp,
		Ramp:    ramp(Linear, "swamp_mud", "#3b3a24", "swamp_moss", "#4f5a2a", "swamp_algae", "#6b7a35"),
		Accents: accents("puddle", "#2e3b2f"),
		Tags:    Tags{WalkCost: 2.5, Friction: 0.4, Flammable: 0.1, Fluid: 0.5},
		synth:   synthSwamp,
	})
	register(&Definition{
		Kind:    Lava,
		Ramp:    ramp(EaseIn, "lava_crust", "#2a1a14", "lava_rock", "#5a2a1a"),
		Accents: accents("glow", "#e0561b", "hot", "#ffd23f"),
		Tags:    Tags{WalkCost: 10, Friction: 0.6, Fluid: 0.8, Hazard: true},
		synth:   synthLava,
	})
	register(&Definition{
		Kind:    Wood,
		Ramp:    ramp(Linear, "wood_dark", "#654321", "wood_base", "#8b4513", "wood_grain", "#a0522d", "wood_light", "#cd853f"),
		Accents: accents("seam", "#3d2614"),
		Tags:    Tags{WalkCost: 1, Friction: 0.6, Flammable: 0.9},
		synth:   synthWood,
	})
	register(&Definition{
		Kind:    Tile,
		Ramp:    ramp(Linear, "tile_shadow", "#3a3a4a", "tile_base", "#5a5a6a", "tile_highlight", "#7a7a8a"),
		Accents: accents("grout", "#2a2a2a"),
		Tags:    Tags{WalkCost: 1, Friction: 0.5},
		synth:   synthTile,
	})
	register(&Definition{
		Kind:    Road,
		Ramp:    ramp(Linear, "road_dark", "#3c3c3c", "road_base", "#555555", "road_light", "#6e6e6e"),
		Accents: accents("lane", "#e8d24a"),
		Tags:    Tags{WalkCost: 0.8, Friction: 0.9},
		synth:   synthRoad,
	})
	register(&Definition{
		Kind:    Carpet,
		Ramp:    ramp(Linear, "carpet_dark", "#5a1f2b", "carpet_base", "#8a2c3d", "carpet_light", "#b04a5a"),
		Accents: accents("border", "#d9a066"),
		Tags:    Tags{WalkCost: 1, Friction: 0.8, Flammable: 0.7},
		synth:   synthCarpet,
	})
	register(&Definition{
		Kind:  Metal,
		Ramp:  ramp(EaseInOut, "metal_dark", "#5f6670", "metal_base", "#8a929c", "metal_light", "#c3cad3"),
		Tags:  Tags{WalkCost: 1, Friction: 0.4},
		synth: synthMetal,
	})
}
