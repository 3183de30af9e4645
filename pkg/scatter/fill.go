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

const (
	fillAttempts      = 120
	fillClusterChance = 0.25
)

// Fill is the last scatter pass: uniform attempts across the map close
// visible gaps left by earlier stages. A quarter of accepted placements grow
// a small cluster of one to three extra copies nearby.
func Fill(doc *world.Document, th *theme.Theme, checker *spatial.Checker, stream *rng.Stream, field *terrain.HeightField) *validation.Report {
	report := validation.NewReport()
	half := doc.Metadata.Size / 2
	f := th.Features

	table := []weighted{
		{"tree", f.TreeDensity},
		{"rock", f.RockDensity * 0.7},
		{"bush", f.BushDensity * 0.8},
		{"flower", f.FlowerDensity * 0.6},
		{"tall_grass", 0.5},
	}

	placed := 0
	for i := 0; i < fillAttempts; i++ {
		envType := pickWeighted(table, stream)
		pos := geo.Pt(stream.Range(-half*0.9, half*0.9), stream.Range(-half*0.9, half*0.9))
		size := stream.Range(0.5, 1.8)

		minStruct, minPath := spatial.Clearance(envType)
		if !checker.IsValid(pos, minStruct, minPath, false) {
			continue
		}
		doc.AddEnv(world.EnvObject{
			Type:      envType,
			Position:  pos.WithY(field.At(pos.X, pos.Z)),
			Size:      size,
			Scattered: true,
		})
		placed++

		if stream.Chance(fillClusterChance) {
			extras := stream.IntRange(1, 3)
			for e := 0; e < extras; e++ {
				ePos := pos.PolarOffset(stream.Angle(), stream.Range(1.5, 4))
				if !checker.IsValid(ePos, minStruct, minPath, false) {
					continue
				}
				doc.AddEnv(world.EnvObject{
					Type:      envType,
					Position:  ePos.WithY(field.At(ePos.X, ePos.Z)),
					Size:      size * stream.Range(0.7, 1.1),
					Scattered: true,
				})
				placed++
			}
		}
	}

	report.AddInfo(validation.Result{
		Level:   validation.LevelSpatial,
		Message: fmt.Sprintf("gap fill placed %d objects", placed),
	})
	return report
}
