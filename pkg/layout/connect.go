package layout

import (
	"fmt"

	"github.com/quiethollow/mapforge/pkg/geo"
	"github.com/quiethollow/mapforge/pkg/rng"
	"github.com/quiethollow/mapforge/pkg/spatial"
	"github.com/quiethollow/mapforge/pkg/terrain"
	"github.com/quiethollow/mapforge/pkg/validation"
	"github.com/quiethollow/mapforge/pkg/world"
)

const (
	connectorWidth    = 1.8
	maxLinksPerStruct = 2
	connectChance     = 0.5
)

// ConnectStructures retroactively links nearby structure pairs with curved
// connector paths. Each new path records the structure index pair it joins,
// and the corridor it cuts is cleared of environment objects that would
// otherwise violate their clearance to the new road.
func ConnectStructures(doc *world.Document, stream *rng.Stream, field *terrain.HeightField) *validation.Report {
	report := validation.NewReport()
	maxDist := doc.Metadata.Size * 0.25
	minDist := 10.0

	links := make([]int, len(doc.Structures))
	var added []world.Path

	for i := 0; i < len(doc.Structures); i++ {
		for j := i + 1; j < len(doc.Structures); j++ {
			if links[i] >= maxLinksPerStruct || links[j] >= maxLinksPerStruct {
				continue
			}
			a, b := doc.Structures[i], doc.Structures[j]
			// Bridges span paths already; they are not link endpoints.
			if a.Type == world.StructureBridge || b.Type == world.StructureBridge {
				continue
			}
			d := a.Position.Dist2D(b.Position)
			if d < minDist || d > maxDist {
				continue
			}
			if !stream.Chance(connectChance) {
				continue
			}

			mid := a.Position.Lerp(b.Position, 0.5)
			perp := b.Position.Sub(a.Position).Normalize2D().Perp2D()
			control := mid.Add(perp.Scale(stream.Range(-d*0.2, d*0.2)))
			pts := geo.QuadraticBezier(a.Position, control, b.Position, 10)
			for k := range pts {
				pts[k].Y = field.At(pts[k].X, pts[k].Z)
			}

			pair := [2]int{i, j}
			p := world.Path{
				ID:       fmt.Sprintf("path_connector_%d_%d", i, j),
				Points:   pts,
				Width:    connectorWidth,
				Pattern:  world.PatternCurved,
				Type:     "connector",
				Connects: &pair,
			}
			doc.AddPath(p)
			added = append(added, p)
			links[i]++
			links[j]++
		}
	}

	cleared := clearCorridors(doc, added)

	report.AddInfo(validation.Result{
		Level:   validation.LevelSpatial,
		Message: fmt.Sprintf("linked structures with %d connector paths, cleared %d obstructions", len(added), cleared),
	})
	return report
}

// clearCorridors removes environment objects left standing inside the
// clearance band of freshly added connector paths. Without this, objects
// placed before the connectivity pass could end up inside a road.
func clearCorridors(doc *world.Document, added []world.Path) int {
	if len(added) == 0 {
		return 0
	}
	kept := doc.Environment[:0]
	removed := 0
	for _, o := range doc.Environment {
		_, minPath := spatial.Clearance(o.Type)
		blocked := false
		for _, p := range added {
			for s := 1; s < len(p.Points); s++ {
				if geo.SegmentDistance2D(o.Position, p.Points[s-1], p.Points[s]) < minPath+p.Width {
					blocked = true
					break
				}
			}
			if blocked {
				break
			}
		}
		if blocked {
			removed++
			continue
		}
		kept = append(kept, o)
	}
	doc.Environment = kept
	return removed
}
