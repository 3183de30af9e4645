package layout

import (
	"fmt"
	"math"

	"github.com/quiethollow/mapforge/pkg/geo"
	"github.com/quiethollow/mapforge/pkg/rng"
	"github.com/quiethollow/mapforge/pkg/terrain"
	"github.com/quiethollow/mapforge/pkg/validation"
	"github.com/quiethollow/mapforge/pkg/world"
)

const (
	gridLineCount   = 5 // per axis, centered on the origin
	circleSegments  = 16
	curveSteps      = 12
	cornerLegSteps  = 4
	gridPathWidth   = 3.0
	diagonalWidth   = 3.5
	ringWidth       = 2.5
	loopWidth       = 2.0
	curveWidth      = 2.0
	cornerPathWidth = 2.5
)

// BuildPaths generates the road graph: perturbed grid lines, two diagonals,
// concentric ring loops, random loops, random Bezier curves, and a natural
// path from the center to each corner. Curved and natural paths receive
// independent per-point jitter rather than a smooth spline; the stochastic
// texture is part of the seed contract.
func BuildPaths(doc *world.Document, stream *rng.Stream, field *terrain.HeightField) *validation.Report {
	report := validation.NewReport()
	half := doc.Metadata.Size / 2
	usable := half * 0.9
	spacing := doc.Metadata.Size / 6

	// 1. Grid lines with bounded lateral noise per interior point.
	for i := 0; i < gridLineCount; i++ {
		k := float64(i - gridLineCount/2)
		fixed := k * spacing

		doc.AddPath(world.Path{
			ID:      fmt.Sprintf("path_grid_h_%d", i),
			Points:  elevate(field, gridLine(stream, fixed, usable, spacing, true)),
			Width:   gridPathWidth,
			Pattern: world.PatternStraight,
			Type:    "grid",
		})
		doc.AddPath(world.Path{
			ID:      fmt.Sprintf("path_grid_v_%d", i),
			Points:  elevate(field, gridLine(stream, fixed, usable, spacing, false)),
			Width:   gridPathWidth,
			Pattern: world.PatternStraight,
			Type:    "grid",
		})
	}

	// 2. Corner-to-corner diagonals.
	diagonals := [][2]geo.Point3{
		{geo.Pt(-usable, -usable), geo.Pt(usable, usable)},
		{geo.Pt(-usable, usable), geo.Pt(usable, -usable)},
	}
	for i, d := range diagonals {
		pts := make([]geo.Point3, 0, 9)
		for s := 0; s <= 8; s++ {
			pts = append(pts, d[0].Lerp(d[1], float64(s)/8))
		}
		doc.AddPath(world.Path{
			ID:      fmt.Sprintf("path_diagonal_%d", i),
			Points:  elevate(field, pts),
			Width:   diagonalWidth,
			Pattern: world.PatternStraight,
			Type:    "diagonal",
		})
	}

	// 3. Concentric circular loops around the origin.
	for i, frac := range []float64{0.25, 0.5, 0.75} {
		doc.AddPath(world.Path{
			ID:      fmt.Sprintf("path_ring_%d", i),
			Points:  elevate(field, geo.Circle(geo.Origin, usable*frac, circleSegments)),
			Width:   ringWidth,
			Pattern: world.PatternCircular,
			Type:    "ring",
		})
	}

	// 4. Random circular loops.
	loops := stream.IntRange(2, 4)
	for i := 0; i < loops; i++ {
		center := geo.Pt(stream.Range(-usable*0.5, usable*0.5), stream.Range(-usable*0.5, usable*0.5))
		radius := stream.Range(usable*0.08, usable*0.2)
		doc.AddPath(world.Path{
			ID:      fmt.Sprintf("path_loop_%d", i),
			Points:  elevate(field, geo.Circle(center, radius, circleSegments)),
			Width:   loopWidth,
			Pattern: world.PatternCircular,
			Type:    "loop",
		})
	}

	// 5. Random quadratic Bezier curves with per-point jitter.
	curves := stream.IntRange(3, 5)
	for i := 0; i < curves; i++ {
		start := geo.Pt(stream.Range(-usable, usable), stream.Range(-usable, usable))
		control := geo.Pt(stream.Range(-usable, usable), stream.Range(-usable, usable))
		end := geo.Pt(stream.Range(-usable, usable), stream.Range(-usable, usable))
		pts := geo.QuadraticBezier(start, control, end, curveSteps)
		for j := 1; j < len(pts)-1; j++ {
			pts[j].X += stream.Range(-1.5, 1.5)
			pts[j].Z += stream.Range(-1.5, 1.5)
		}
		doc.AddPath(world.Path{
			ID:      fmt.Sprintf("path_curve_%d", i),
			Points:  elevate(field, pts),
			Width:   curveWidth,
			Pattern: world.PatternCurved,
			Type:    "curve",
		})
	}

	// 6. One natural path from the center to each corner, built from three
	// random control points with piecewise-linear interpolation.
	corners := []geo.Point3{
		geo.Pt(usable, usable), geo.Pt(-usable, usable),
		geo.Pt(-usable, -usable), geo.Pt(usable, -usable),
	}
	for i, corner := range corners {
		waypoints := []geo.Point3{geo.Origin}
		for c := 1; c <= 3; c++ {
			wp := geo.Origin.Lerp(corner, float64(c)/4)
			wp.X += stream.Range(-doc.Metadata.Size*0.06, doc.Metadata.Size*0.06)
			wp.Z += stream.Range(-doc.Metadata.Size*0.06, doc.Metadata.Size*0.06)
			waypoints = append(waypoints, wp)
		}
		waypoints = append(waypoints, corner)

		var pts []geo.Point3
		for w := 1; w < len(waypoints); w++ {
			for s := 0; s < cornerLegSteps; s++ {
				p := waypoints[w-1].Lerp(waypoints[w], float64(s)/float64(cornerLegSteps))
				if s > 0 || w > 1 {
					p.X += stream.Range(-2, 2)
					p.Z += stream.Range(-2, 2)
				}
				pts = append(pts, p)
			}
		}
		pts = append(pts, corner)

		doc.AddPath(world.Path{
			ID:      fmt.Sprintf("path_corner_%d", i),
			Points:  elevate(field, pts),
			Width:   cornerPathWidth,
			Pattern: world.PatternNatural,
			Type:    "corner",
		})
	}

	report.AddInfo(validation.Result{
		Level:   validation.LevelSpatial,
		Message: fmt.Sprintf("built %d paths (%d loops, %d curves)", len(doc.Paths), loops, curves),
	})
	return report
}

// gridLine builds one grid line with per-point lateral noise on the free axis.
// Endpoints stay on the nominal line; interior points wander.
func gridLine(stream *rng.Stream, fixed, usable, spacing float64, horizontal bool) []geo.Point3 {
	steps := int(math.Round(2 * usable / spacing))
	if steps < 2 {
		steps = 2
	}
	pts := make([]geo.Point3, 0, steps+1)
	for i := 0; i <= steps; i++ {
		v := -usable + 2*usable*float64(i)/float64(steps)
		lateral := fixed
		if i > 0 && i < steps {
			lateral += stream.Range(-spacing*0.08, spacing*0.08)
		}
		if horizontal {
			pts = append(pts, geo.Pt(v, lateral))
		} else {
			pts = append(pts, geo.Pt(lateral, v))
		}
	}
	return pts
}

// elevate stamps terrain elevation onto every point.
func elevate(field *terrain.HeightField, pts []geo.Point3) []geo.Point3 {
	for i := range pts {
		pts[i].Y = field.At(pts[i].X, pts[i].Z)
	}
	return pts
}
