// Package layout generates the macro structure of a world: zones, the road
// network, placed structures (including village composites) and the late
// connectivity pass. Every function draws from the run's single rng.Stream in
// a fixed order, which is what makes a seed reproducible.
package layout

import (
	"fmt"

	"github.com/quiethollow/mapforge/pkg/geo"
	"github.com/quiethollow/mapforge/pkg/rng"
	"github.com/quiethollow/mapforge/pkg/theme"
	"github.com/quiethollow/mapforge/pkg/validation"
	"github.com/quiethollow/mapforge/pkg/world"
)

const (
	boundaryInsetFrac  = 0.05
	primaryRadiusFrac  = 0.35 // of the boundary half-size
	secondaryGridFrac  = 0.55
	secondaryRadusFrac = 0.18
	subZoneMin         = 5
	subZoneMax         = 15
)

// BuildZones appends the zone list: one boundary square, one primary circle
// at the origin, a fixed ring of eight secondary zones on a coarse grid with
// per-zone size jitter, and a random number of smaller sub-zones. Zones may
// overlap freely.
func BuildZones(doc *world.Document, th *theme.Theme, stream *rng.Stream) *validation.Report {
	report := validation.NewReport()
	half := doc.Metadata.Size / 2
	inset := doc.Metadata.Size * boundaryInsetFrac
	b := half - inset

	doc.AddZone(world.Zone{
		ID:   "zone_boundary",
		Name: "Boundary",
		Type: world.ZoneBoundary,
		Points: []geo.Point3{
			geo.Pt(-b, -b), geo.Pt(b, -b), geo.Pt(b, b), geo.Pt(-b, b),
		},
		Color: th.Color(theme.RoleBoundary),
	})

	doc.AddZone(world.Zone{
		ID:     "zone_primary",
		Name:   th.PrimaryZone,
		Type:   world.ZonePrimary,
		Center: geo.Origin,
		Radius: b * primaryRadiusFrac,
		Color:  th.Color(theme.RolePrimary),
	})

	// Eight secondary zones on a coarse grid around the primary zone.
	g := half * secondaryGridFrac
	nominal := half * secondaryRadusFrac
	offsets := [][2]float64{
		{g, 0}, {-g, 0}, {0, g}, {0, -g},
		{g, g}, {g, -g}, {-g, g}, {-g, -g},
	}
	for i, off := range offsets {
		jitter := stream.Range(0.7, 1.3)
		doc.AddZone(world.Zone{
			ID:     fmt.Sprintf("zone_secondary_%d", i),
			Name:   fmt.Sprintf("%s_outskirts_%d", th.PrimaryZone, i),
			Type:   world.ZoneSecondary,
			Center: geo.Pt(off[0], off[1]),
			Radius: nominal * jitter,
			Color:  th.Color(theme.RoleSecondary),
		})
	}

	// Random sub-zones scattered within the boundary.
	n := stream.IntRange(subZoneMin, subZoneMax)
	for i := 0; i < n; i++ {
		center := geo.Pt(
			stream.Range(-b*0.85, b*0.85),
			stream.Range(-b*0.85, b*0.85),
		)
		doc.AddZone(world.Zone{
			ID:     fmt.Sprintf("zone_sub_%d", i),
			Name:   fmt.Sprintf("sub_%d", i),
			Type:   world.ZoneSubZone,
			Center: center,
			Radius: stream.Range(half*0.04, half*0.1),
			Color:  th.Color(theme.RoleSubZone),
		})
	}

	report.AddInfo(validation.Result{
		Level:   validation.LevelSpatial,
		Message: fmt.Sprintf("laid out %d zones (1 boundary, 1 primary, 8 secondary, %d sub)", len(doc.Zones), n),
	})
	return report
}
