// Package scatter fills the world with environment decoration: background
// coverage, path-adjacent tree lines, natural feature clusters, themed
// special features and a final gap-filling pass. Every placement candidate is
// gated by the spatial validity check; failures are skipped, never retried.
package scatter

import (
	"fmt"

	"github.com/quiethollow/mapforge/pkg/geo"
	"github.com/quiethollow/mapforge/pkg/rng"
	"github.com/quiethollow/mapforge/pkg/spatial"
	"github.com/quiethollow/mapforge/pkg/terrain"
	"github.com/quiethollow/mapforge/pkg/theme"
	"github.com/quiethollow/mapforge/pkg/validation"
	"github.com/quiethollow/mapforge/pkg/world"
)

const backgroundGridDivisions = 40

// weighted is one entry of a weighted type table.
type weighted struct {
	envType string
	weight  float64
}

// pickWeighted selects a type from the table, consuming one draw. An empty or
// zero-weight table returns "".
func pickWeighted(table []weighted, stream *rng.Stream) string {
	total := 0.0
	for _, w := range table {
		total += w.weight
	}
	roll := stream.Float() * total
	for _, w := range table {
		roll -= w.weight
		if roll < 0 {
			return w.envType
		}
	}
	return ""
}

// Background covers the whole map with a uniform grid; each cell rolls an
// object type from theme- and distance-weighted probabilities and is skipped
// when too close to paths or structures. Background objects use inflated
// clearance thresholds so filler never crowds foreground decoration.
func Background(doc *world.Document, th *theme.Theme, checker *spatial.Checker, stream *rng.Stream, field *terrain.HeightField) *validation.Report {
	report := validation.NewReport()
	half := doc.Metadata.Size / 2
	step := doc.Metadata.Size / backgroundGridDivisions
	b := half * 0.95
	f := th.Features

	placed := 0
	for x := -b; x < b; x += step {
		for z := -b; z < b; z += step {
			pos := geo.Pt(
				x+step/2+stream.Range(-step*0.3, step*0.3),
				z+step/2+stream.Range(-step*0.3, step*0.3),
			)
			distFrac := pos.Length2D() / half

			table := []weighted{
				{"tree", f.TreeDensity * (0.6 + 0.8*distFrac)},
				{"rock", f.RockDensity * 0.5},
				{"bush", f.BushDensity * 0.4},
				{"flower", f.FlowerDensity * 0.3 * (1 - distFrac*0.5)},
				{"tall_grass", 0.4},
				{"", 2.5}, // empty cell
			}
			envType := pickWeighted(table, stream)
			size := stream.Range(0.6, 2.0)
			if envType == "" {
				continue
			}

			minStruct, minPath := spatial.Clearance(envType)
			if !checker.IsValid(pos, minStruct, minPath, true) {
				continue
			}
			doc.AddEnv(world.EnvObject{
				Type:       envType,
				Position:   pos.WithY(field.At(pos.X, pos.Z)),
				Size:       size,
				Background: true,
			})
			placed++
		}
	}

	report.AddInfo(validation.Result{
		Level:   validation.LevelSpatial,
		Message: fmt.Sprintf("background coverage placed %d objects", placed),
	})
	return report
}
