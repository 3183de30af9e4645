package validation

import (
	"fmt"
	"math"

	"github.com/quiethollow/mapforge/pkg/geo"
	"github.com/quiethollow/mapforge/pkg/spatial"
	"github.com/quiethollow/mapforge/pkg/world"
)

const (
	// circleTolerance bounds how far a circular path point may sit from the
	// loop's mean radius before the loop is flagged.
	circleTolerance = 0.5
	// clearanceEpsilon absorbs floating-point noise when re-checking
	// placement distances on a finished document.
	clearanceEpsilon = 1e-6
)

// ValidateDocument re-checks a finished document: schema completeness, path
// well-formedness and the spatial clearance contract for foreground
// environment objects.
func ValidateDocument(doc *world.Document) *Report {
	report := NewReport()
	validateSchema(doc, report)
	validatePaths(doc, report)
	validateClearance(doc, report)
	validateCompaction(doc, report)
	return report
}

func validateSchema(doc *world.Document, report *Report) {
	if doc.Theme == nil {
		report.AddError(Result{
			Level:   LevelConfig,
			Message: "document has no theme",
		})
		return
	}
	if len(doc.Zones) == 0 {
		report.AddError(Result{Level: LevelOutput, Message: "document has no zones"})
	}
	if len(doc.Paths) == 0 {
		report.AddError(Result{Level: LevelOutput, Message: "document has no paths"})
	}
	if len(doc.Environment) == 0 {
		report.AddError(Result{Level: LevelOutput, Message: "document has no environment objects"})
	}

	f := doc.Theme.Features
	if f.VillageCount > 0 && f.TowerCount > 0 && f.RuinsCount > 0 && len(doc.Structures) == 0 {
		report.AddError(Result{
			Level:    LevelOutput,
			Message:  "theme requests structures but none were placed",
			Expected: fmt.Sprintf("at least %d structures", f.VillageCount+f.TowerCount+f.RuinsCount),
		})
	}
}

func validatePaths(doc *world.Document, report *Report) {
	for _, p := range doc.Paths {
		if len(p.Points) < 2 {
			report.AddError(Result{
				Level:       LevelOutput,
				Message:     "path has fewer than two points",
				Subject:     p.ID,
				ActualValue: len(p.Points),
				Expected:    ">= 2 points",
			})
			continue
		}
		if p.Width <= 0 {
			report.AddError(Result{
				Level:       LevelOutput,
				Message:     "path has non-positive width",
				Subject:     p.ID,
				ActualValue: p.Width,
				Expected:    "width > 0",
			})
		}
		if p.Pattern != world.PatternCircular {
			continue
		}
		center, radius := loopStats(p.Points)
		for _, pt := range p.Points {
			if dev := math.Abs(pt.Dist2D(center) - radius); dev > circleTolerance {
				report.AddError(Result{
					Level:       LevelOutput,
					Message:     "circular path point off its declared radius",
					Subject:     p.ID,
					ActualValue: dev,
					Expected:    fmt.Sprintf("deviation <= %g", circleTolerance),
				})
				break
			}
		}
	}
}

// validateClearance recomputes the placement predicate over the final
// document. Background and scattered filler is exempt; aggregates produced by
// compaction are derived records, not placements.
func validateClearance(doc *world.Document, report *Report) {
	checker := spatial.NewChecker(doc)
	violations := 0
	for _, o := range doc.Environment {
		if o.Background || o.Scattered || o.Type == world.EnvTreeCluster {
			continue
		}
		minStruct, minPath := spatial.Clearance(o.Type)
		if !checker.IsValid(o.Position, minStruct-clearanceEpsilon, minPath-clearanceEpsilon, false) {
			violations++
		}
	}
	if violations > 0 {
		report.AddError(Result{
			Level:       LevelSpatial,
			Message:     "environment objects violate their clearance contract",
			ActualValue: violations,
			Expected:    "0 violations",
		})
	}
}

func validateCompaction(doc *world.Document, report *Report) {
	stats := doc.Metadata.Compaction
	if stats == nil {
		return
	}
	clustered := 0
	clusters := 0
	singles := 0
	for _, o := range doc.Environment {
		switch o.Type {
		case world.EnvTreeCluster:
			clusters++
			clustered += o.TreeCount
		case "tree":
			singles++
		}
	}
	if clustered+singles != stats.InputTrees {
		report.AddError(Result{
			Level:       LevelOutput,
			Message:     "compaction tree counts do not add up",
			ActualValue: clustered + singles,
			Expected:    fmt.Sprintf("%d input trees", stats.InputTrees),
		})
	}
	if clusters+singles != stats.OutputRecords {
		report.AddError(Result{
			Level:       LevelOutput,
			Message:     "compaction record count mismatch",
			ActualValue: clusters + singles,
			Expected:    fmt.Sprintf("%d output records", stats.OutputRecords),
		})
	}
}

// loopStats mirrors the spatial index's loop centroid computation.
func loopStats(pts []geo.Point3) (geo.Point3, float64) {
	n := len(pts)
	if n > 1 && pts[0].Dist2D(pts[n-1]) < 1e-9 {
		n--
	}
	var cx, cz float64
	for i := 0; i < n; i++ {
		cx += pts[i].X
		cz += pts[i].Z
	}
	center := geo.Pt(cx/float64(n), cz/float64(n))
	var radius float64
	for i := 0; i < n; i++ {
		radius += center.Dist2D(pts[i])
	}
	return center, radius / float64(n)
}
