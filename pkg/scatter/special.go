package scatter

import (
	"fmt"
	"sort"

	"github.com/quiethollow/mapforge/pkg/geo"
	"github.com/quiethollow/mapforge/pkg/rng"
	"github.com/quiethollow/mapforge/pkg/spatial"
	"github.com/quiethollow/mapforge/pkg/terrain"
	"github.com/quiethollow/mapforge/pkg/theme"
	"github.com/quiethollow/mapforge/pkg/validation"
	"github.com/quiethollow/mapforge/pkg/world"
)

// crossThemeChance is how often a special feature is drawn from a different
// zone's table instead of the theme's own, for visual variety.
const crossThemeChance = 0.2

// specialTables maps a theme's primary zone to its weighted special-feature
// table. Glowing marks features that emit light in the renderer.
var specialTables = map[string][]weighted{
	"forest": {
		{"ancient_tree", 3},
		{"mushroom_ring", 2},
		{"fairy_circle", 1},
		{"moss_stone", 2},
	},
	"volcanic": {
		{"lava_vent", 3},
		{"obsidian_spire", 2},
		{"ash_dune", 2},
		{"ember_geyser", 1},
	},
	"tundra": {
		{"ice_spire", 3},
		{"frozen_pond", 2},
		{"snow_drift", 2},
		{"aurora_stone", 1},
	},
	"meadow": {
		{"wildflower_field", 3},
		{"orchard_tree", 2},
		{"beehive", 1},
		{"hay_bale", 2},
	},
	"swamp": {
		{"dead_tree", 3},
		{"bog_pit", 2},
		{"totem", 1},
		{"reed_cluster", 2},
	},
	"steppe": {
		{"lone_acacia", 3},
		{"termite_mound", 2},
		{"salt_flat", 2},
		{"nomad_cairn", 1},
	},
}

// glowingSpecials light up at night.
var glowingSpecials = map[string]bool{
	"lava_vent":     true,
	"ember_geyser":  true,
	"fairy_circle":  true,
	"aurora_stone":  true,
	"mushroom_ring": true,
}

// SpecialFeatures places the theme's special decoration set. Most features
// come from the table keyed by the theme's primary zone; a fraction is drawn
// from a different zone's table.
func SpecialFeatures(doc *world.Document, th *theme.Theme, checker *spatial.Checker, stream *rng.Stream, field *terrain.HeightField) *validation.Report {
	report := validation.NewReport()
	half := doc.Metadata.Size / 2
	own := specialTables[th.PrimaryZone]
	if own == nil {
		own = specialTables["meadow"]
	}

	placed := 0
	for i := 0; i < th.Features.SpecialFeatureCount; i++ {
		table := own
		if stream.Chance(crossThemeChance) {
			table = specialTables[otherZone(th.PrimaryZone, stream)]
		}
		envType := pickWeighted(table, stream)
		pos := geo.Pt(stream.Range(-half*0.85, half*0.85), stream.Range(-half*0.85, half*0.85))
		size := stream.Range(1.5, 4.0)

		minStruct, minPath := spatial.Clearance(envType)
		if !checker.IsValid(pos, minStruct, minPath, false) {
			continue
		}
		doc.AddEnv(world.EnvObject{
			Type:     envType,
			Position: pos.WithY(field.At(pos.X, pos.Z)),
			Size:     size,
			Variant:  "special",
			Rotation: stream.Angle(),
			Glowing:  glowingSpecials[envType],
		})
		placed++
	}

	report.AddInfo(validation.Result{
		Level:   validation.LevelSpatial,
		Message: fmt.Sprintf("placed %d special features for zone %q", placed, th.PrimaryZone),
	})
	return report
}

// otherZone picks a zone key different from the given one. Keys are sorted so
// the draw maps to the same zone for the same stream state on every run.
func otherZone(own string, stream *rng.Stream) string {
	keys := make([]string, 0, len(specialTables))
	for k := range specialTables {
		if k != own {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys[stream.IntN(len(keys))]
}
