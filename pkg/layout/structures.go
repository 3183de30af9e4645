package layout

import (
	"fmt"

	"github.com/quiethollow/mapforge/pkg/geo"
	"github.com/quiethollow/mapforge/pkg/rng"
	"github.com/quiethollow/mapforge/pkg/terrain"
	"github.com/quiethollow/mapforge/pkg/theme"
	"github.com/quiethollow/mapforge/pkg/validation"
	"github.com/quiethollow/mapforge/pkg/world"
)

const structureClusterCount = 3

// placementPolicy is rolled per structure: colocated with a cluster center,
// loosely near one, or uniformly random within an annulus. The roll
// probabilities are theme-tunable.
type placementWeights struct {
	atCluster   float64
	nearCluster float64
}

// policyWeights tunes clustering by the theme's primary zone. Settled biomes
// cluster harder; wastelands spread out.
func policyWeights(th *theme.Theme) placementWeights {
	switch th.PrimaryZone {
	case "meadow", "steppe":
		return placementWeights{atCluster: 0.45, nearCluster: 0.35}
	case "volcanic", "tundra":
		return placementWeights{atCluster: 0.25, nearCluster: 0.3}
	default:
		return placementWeights{atCluster: 0.35, nearCluster: 0.35}
	}
}

// PlaceStructures materializes villages, towers, ruins, dark sanctums,
// bridges, watchtowers and shrines. Placement never fails: out-of-range or
// overlapping positions are accepted without retry, a known aesthetic
// limitation.
func PlaceStructures(doc *world.Document, th *theme.Theme, stream *rng.Stream, field *terrain.HeightField) *validation.Report {
	report := validation.NewReport()
	half := doc.Metadata.Size / 2
	f := th.Features
	weights := policyWeights(th)

	// Cluster anchors shared by all structure categories.
	clusters := make([]geo.Point3, structureClusterCount)
	for i := range clusters {
		angle := stream.Angle()
		radius := stream.Range(half*0.2, half*0.7)
		clusters[i] = geo.Origin.PolarOffset(angle, radius)
	}

	place := func() geo.Point3 {
		roll := stream.Float()
		anchor := clusters[stream.IntN(len(clusters))]
		switch {
		case roll < weights.atCluster:
			return anchor.PolarOffset(stream.Angle(), stream.Range(0, 8))
		case roll < weights.atCluster+weights.nearCluster:
			return anchor.PolarOffset(stream.Angle(), stream.Range(15, 40))
		default:
			return geo.Origin.PolarOffset(stream.Angle(), stream.Range(half*0.15, half*0.85))
		}
	}

	ground := func(p geo.Point3) geo.Point3 {
		return p.WithY(field.At(p.X, p.Z))
	}

	for i := 0; i < f.VillageCount; i++ {
		s, env := BuildVillage(fmt.Sprintf("village_%d", i), ground(place()), th, stream, field)
		doc.AddStructure(s)
		for _, o := range env {
			doc.AddEnv(o)
		}
	}

	for i := 0; i < f.TowerCount; i++ {
		doc.AddStructure(world.Structure{
			ID:       fmt.Sprintf("tower_%d", i),
			Type:     world.StructureTower,
			Position: ground(place()),
			Rotation: stream.Angle(),
			Size:     6,
			Height:   stream.Range(12, 20),
			Theme:    th.Name,
		})
	}

	for i := 0; i < f.RuinsCount; i++ {
		doc.AddStructure(world.Structure{
			ID:       fmt.Sprintf("ruins_%d", i),
			Type:     world.StructureRuins,
			Position: ground(place()),
			Rotation: stream.Angle(),
			Size:     stream.Range(8, 14),
			Theme:    th.Name,
		})
	}

	for i := 0; i < f.DarkSanctumCount; i++ {
		doc.AddStructure(world.Structure{
			ID:       fmt.Sprintf("dark_sanctum_%d", i),
			Type:     world.StructureDarkSanctum,
			Position: ground(place()),
			Rotation: stream.Angle(),
			Size:     12,
			Height:   stream.Range(10, 16),
			Theme:    th.Name,
		})
	}

	// Watchtowers prefer high ground: sample a handful of candidates and
	// keep the one with the greatest relief.
	for i := 0; i < f.WatchtowerCount; i++ {
		best := place()
		bestRelief := field.Relief(best.X, best.Z)
		for c := 1; c < 5; c++ {
			cand := place()
			if r := field.Relief(cand.X, cand.Z); r > bestRelief {
				best, bestRelief = cand, r
			}
		}
		doc.AddStructure(world.Structure{
			ID:       fmt.Sprintf("watchtower_%d", i),
			Type:     world.StructureWatchtower,
			Position: ground(best),
			Rotation: stream.Angle(),
			Size:     4,
			Height:   10,
			Theme:    th.Name,
		})
	}

	// Shrines sit near the primary zone edge.
	primaryR := half * 0.9 * primaryRadiusFrac
	for i := 0; i < f.ShrineCount; i++ {
		pos := geo.Origin.PolarOffset(stream.Angle(), primaryR*stream.Range(0.9, 1.1))
		doc.AddStructure(world.Structure{
			ID:       fmt.Sprintf("shrine_%d", i),
			Type:     world.StructureShrine,
			Position: ground(pos),
			Rotation: stream.Angle(),
			Size:     3,
			Theme:    th.Name,
		})
	}

	placeBridges(doc, th, stream, field)

	report.AddInfo(validation.Result{
		Level: validation.LevelSpatial,
		Message: fmt.Sprintf("placed %d structures (%d villages, %d towers, %d ruins)",
			len(doc.Structures), f.VillageCount, f.TowerCount, f.RuinsCount),
	})
	return report
}

// placeBridges drops bridges across existing path segments, aligned
// perpendicular to the crossing.
func placeBridges(doc *world.Document, th *theme.Theme, stream *rng.Stream, field *terrain.HeightField) {
	if len(doc.Paths) == 0 {
		return
	}
	for i := 0; i < th.Features.BridgeCount; i++ {
		p := doc.Paths[stream.IntN(len(doc.Paths))]
		if len(p.Points) < 2 {
			continue
		}
		seg := stream.IntN(len(p.Points) - 1)
		a, b := p.Points[seg], p.Points[seg+1]
		mid := a.Lerp(b, stream.Range(0.3, 0.7))
		angle := b.Sub(a).Angle2D()
		doc.AddStructure(world.Structure{
			ID:       fmt.Sprintf("bridge_%d", i),
			Type:     world.StructureBridge,
			Position: mid.WithY(field.At(mid.X, mid.Z)),
			Rotation: angle,
			Size:     p.Width + 4,
			Theme:    th.Name,
		})
	}
}
