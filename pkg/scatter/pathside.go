package scatter

import (
	"fmt"

	"github.com/quiethollow/mapforge/pkg/rng"
	"github.com/quiethollow/mapforge/pkg/spatial"
	"github.com/quiethollow/mapforge/pkg/terrain"
	"github.com/quiethollow/mapforge/pkg/theme"
	"github.com/quiethollow/mapforge/pkg/validation"
	"github.com/quiethollow/mapforge/pkg/world"
)

const (
	pathTreeInterval = 8.0 // nominal distance between roadside trees
	// Trees sit just outside the path's clearance band; the validity check
	// still rejects any that drift toward another road.
	pathTreeMargin = 2.2
)

// PathsideTrees lays tree lines on both sides of every path segment, with
// density proportional to segment length and the theme's tree density.
// Secondary rows and incidental bushes and rocks appear with low probability.
func PathsideTrees(doc *world.Document, th *theme.Theme, checker *spatial.Checker, stream *rng.Stream, field *terrain.HeightField) *validation.Report {
	report := validation.NewReport()
	placed := 0

	paths := doc.Paths // snapshot; this pass only appends environment objects
	for _, p := range paths {
		for s := 1; s < len(p.Points); s++ {
			a, b := p.Points[s-1], p.Points[s]
			length := a.Dist2D(b)
			if length < 1e-6 {
				continue // degenerate segment, skip defensively
			}
			count := int(length / pathTreeInterval * th.Features.TreeDensity)
			if count == 0 {
				continue
			}
			dir := b.Sub(a).Normalize2D()
			perp := dir.Perp2D()

			for k := 0; k < count; k++ {
				t := (float64(k) + 0.5) / float64(count)
				along := a.Lerp(b, t)

				for _, side := range []float64{1, -1} {
					offset := p.Width + pathTreeMargin + stream.Range(0, 2)
					pos := along.Add(perp.Scale(side * offset))
					size := stream.Range(0.9, 2.0)

					minStruct, minPath := spatial.Clearance("tree")
					if !checker.IsValid(pos, minStruct, minPath, false) {
						continue
					}
					doc.AddEnv(world.EnvObject{
						Type:     "tree",
						Position: pos.WithY(field.At(pos.X, pos.Z)),
						Size:     size,
						Variant:  "roadside",
					})
					placed++

					// Secondary row behind the first.
					if stream.Chance(0.3) {
						pos2 := along.Add(perp.Scale(side * (offset + 3)))
						if checker.IsValid(pos2, minStruct, minPath, false) {
							doc.AddEnv(world.EnvObject{
								Type:     "tree",
								Position: pos2.WithY(field.At(pos2.X, pos2.Z)),
								Size:     stream.Range(0.8, 1.8),
								Variant:  "roadside",
							})
							placed++
						}
					}

					// Incidental undergrowth between trees.
					if stream.Chance(0.15) {
						uType := "bush"
						if stream.Chance(0.4) {
							uType = "rock"
						}
						uPos := along.Add(perp.Scale(side * (offset + stream.Range(1, 3))))
						uStruct, uPath := spatial.Clearance(uType)
						if checker.IsValid(uPos, uStruct, uPath, false) {
							doc.AddEnv(world.EnvObject{
								Type:     uType,
								Position: uPos.WithY(field.At(uPos.X, uPos.Z)),
								Size:     stream.Range(0.4, 1.0),
							})
							placed++
						}
					}
				}
			}
		}
	}

	report.AddInfo(validation.Result{
		Level:   validation.LevelSpatial,
		Message: fmt.Sprintf("placed %d path-adjacent objects", placed),
	})
	return report
}
