package scatter

import (
	"fmt"
	"math"

	"github.com/quiethollow/mapforge/pkg/geo"
	"github.com/quiethollow/mapforge/pkg/rng"
	"github.com/quiethollow/mapforge/pkg/spatial"
	"github.com/quiethollow/mapforge/pkg/terrain"
	"github.com/quiethollow/mapforge/pkg/theme"
	"github.com/quiethollow/mapforge/pkg/validation"
	"github.com/quiethollow/mapforge/pkg/world"
)

// clusterSpec parameterizes one cluster generator family.
type clusterSpec struct {
	envType   string
	tag       string
	radiusMin float64
	radiusMax float64
	itemsMin  int
	itemsMax  int
	sizeMin   float64
	sizeMax   float64
	// extraType appears with low probability alongside cluster members
	// (undergrowth, moss and the like). Empty disables extras.
	extraType   string
	extraChance float64
}

// deps bundles the shared stage inputs to keep signatures short.
type deps struct {
	doc     *world.Document
	checker *spatial.Checker
	stream  *rng.Stream
	field   *terrain.HeightField
}

// Clusters runs the natural-feature cluster generators: forests, rock fields,
// bush patches, flower patches, mountain ranges, water features and lava
// features, each scaled by the theme's densities and counts.
func Clusters(doc *world.Document, th *theme.Theme, checker *spatial.Checker, stream *rng.Stream, field *terrain.HeightField) *validation.Report {
	report := validation.NewReport()
	d := &deps{doc: doc, checker: checker, stream: stream, field: field}
	f := th.Features
	before := len(doc.Environment)

	runClusters(d, clusterSpec{
		envType: "tree", tag: "forest",
		radiusMin: 14, radiusMax: 28, itemsMin: 10, itemsMax: 20,
		sizeMin: 1.0, sizeMax: 2.6,
		extraType: "undergrowth", extraChance: 0.12,
	}, int(math.Round(3*f.TreeDensity))+2)

	runClusters(d, clusterSpec{
		envType: "rock", tag: "rocks",
		radiusMin: 8, radiusMax: 16, itemsMin: 4, itemsMax: 8,
		sizeMin: 0.8, sizeMax: 2.4,
		extraType: "moss_patch", extraChance: 0.15,
	}, int(math.Round(2*f.RockDensity))+1)

	runClusters(d, clusterSpec{
		envType: "bush", tag: "bushes",
		radiusMin: 6, radiusMax: 12, itemsMin: 5, itemsMax: 9,
		sizeMin: 0.5, sizeMax: 1.4,
	}, int(math.Round(2*f.BushDensity))+1)

	runClusters(d, clusterSpec{
		envType: "flower", tag: "flowers",
		radiusMin: 5, radiusMax: 10, itemsMin: 6, itemsMax: 12,
		sizeMin: 0.3, sizeMax: 0.8,
	}, int(math.Round(2*f.FlowerDensity))+1)

	GenerateMountainRangesByCount(d.doc, d.checker, d.stream, d.field, f.MountainRangeCount)
	GenerateMountainRangesForBoundary(d.doc, d.checker, d.stream, d.field)
	waterFeatures(d, f.WaterFeatureCount)
	lavaFeatures(d, f.LavaFeatureCount)

	report.AddInfo(validation.Result{
		Level:   validation.LevelSpatial,
		Message: fmt.Sprintf("cluster generators placed %d objects", len(doc.Environment)-before),
	})
	return report
}

// runClusters places count clusters of the given family. Cluster centers are
// validity-checked with a wide margin; rejected centers are skipped outright.
// Members use a center-biased radial distribution: a squared uniform draw
// concentrates density toward the cluster center.
func runClusters(d *deps, spec clusterSpec, count int) {
	half := d.doc.Metadata.Size / 2
	for c := 0; c < count; c++ {
		center := geo.Pt(
			d.stream.Range(-half*0.85, half*0.85),
			d.stream.Range(-half*0.85, half*0.85),
		)
		radius := d.stream.Range(spec.radiusMin, spec.radiusMax)
		if !d.checker.IsValid(center, 6, 4, false) {
			continue
		}
		tag := fmt.Sprintf("%s_%d", spec.tag, c)

		items := d.stream.IntRange(spec.itemsMin, spec.itemsMax)
		for i := 0; i < items; i++ {
			u := d.stream.Float()
			r := radius * u * u
			pos := center.PolarOffset(d.stream.Angle(), r)
			size := d.stream.Range(spec.sizeMin, spec.sizeMax)

			minStruct, minPath := spatial.Clearance(spec.envType)
			if !d.checker.IsValid(pos, minStruct, minPath, false) {
				continue
			}
			d.doc.AddEnv(world.EnvObject{
				Type:     spec.envType,
				Position: pos.WithY(d.field.At(pos.X, pos.Z)),
				Size:     size,
				Cluster:  tag,
			})

			if spec.extraType != "" && d.stream.Chance(spec.extraChance) {
				ePos := pos.PolarOffset(d.stream.Angle(), d.stream.Range(0.5, 2))
				eStruct, ePath := spatial.Clearance(spec.extraType)
				if d.checker.IsValid(ePos, eStruct, ePath, false) {
					d.doc.AddEnv(world.EnvObject{
						Type:     spec.extraType,
						Position: ePos.WithY(d.field.At(ePos.X, ePos.Z)),
						Size:     d.stream.Range(0.3, 0.9),
						Cluster:  tag,
					})
				}
			}
		}

		// Occasional clearing with a special centerpiece.
		if d.stream.Chance(0.1) {
			minStruct, minPath := spatial.Clearance("clearing_stone")
			if d.checker.IsValid(center, minStruct, minPath, false) {
				d.doc.AddEnv(world.EnvObject{
					Type:     "clearing_stone",
					Position: center.WithY(d.field.At(center.X, center.Z)),
					Size:     d.stream.Range(1.5, 3),
					Cluster:  tag,
				})
			}
		}
	}
}

// GenerateMountainRangesByCount places the requested number of mountain
// ranges anywhere on the map: a line of peaks with jitter, largest in the
// middle, tapering toward the ends.
func GenerateMountainRangesByCount(doc *world.Document, checker *spatial.Checker, stream *rng.Stream, field *terrain.HeightField, count int) int {
	half := doc.Metadata.Size / 2
	placed := 0
	for c := 0; c < count; c++ {
		base := geo.Pt(stream.Range(-half*0.8, half*0.8), stream.Range(-half*0.8, half*0.8))
		placed += mountainRange(doc, checker, stream, field, base, fmt.Sprintf("range_%d", c))
	}
	return placed
}

// GenerateMountainRangesForBoundary places one mountain range near the
// midpoint of each map edge, framing the playable area. Both this and the
// count-based variant run in a full generation pass.
func GenerateMountainRangesForBoundary(doc *world.Document, checker *spatial.Checker, stream *rng.Stream, field *terrain.HeightField) int {
	b := doc.Metadata.Size / 2 * 0.85
	edges := []geo.Point3{
		geo.Pt(0, -b), geo.Pt(b, 0), geo.Pt(0, b), geo.Pt(-b, 0),
	}
	placed := 0
	for i, base := range edges {
		jittered := base.Add(geo.Pt(stream.Range(-b*0.2, b*0.2), stream.Range(-b*0.2, b*0.2)))
		placed += mountainRange(doc, checker, stream, field, jittered, fmt.Sprintf("boundary_range_%d", i))
	}
	return placed
}

func mountainRange(doc *world.Document, checker *spatial.Checker, stream *rng.Stream, field *terrain.HeightField, base geo.Point3, tag string) int {
	dir := stream.Angle()
	axis := geo.Point3{X: math.Cos(dir), Z: math.Sin(dir)}
	peaks := stream.IntRange(4, 7)
	placed := 0

	for i := 0; i < peaks; i++ {
		t := float64(i) - float64(peaks-1)/2
		pos := base.Add(axis.Scale(t * 12))
		pos.X += stream.Range(-4, 4)
		pos.Z += stream.Range(-4, 4)
		// Peaks taper toward the range ends.
		taper := 1 - math.Abs(t)/(float64(peaks-1)/2+0.5)*0.5
		size := stream.Range(15, 30) * taper

		minStruct, minPath := spatial.Clearance("mountain")
		if !checker.IsValid(pos, minStruct, minPath, false) {
			continue
		}
		doc.AddEnv(world.EnvObject{
			Type:     "mountain",
			Position: pos.WithY(field.At(pos.X, pos.Z)),
			Size:     size,
			Cluster:  tag,
		})
		placed++
	}
	return placed
}

// waterFeatures places ponds ringed with reeds.
func waterFeatures(d *deps, count int) {
	half := d.doc.Metadata.Size / 2
	for c := 0; c < count; c++ {
		center := geo.Pt(d.stream.Range(-half*0.8, half*0.8), d.stream.Range(-half*0.8, half*0.8))
		size := d.stream.Range(8, 18)

		minStruct, minPath := spatial.Clearance("water")
		if !d.checker.IsValid(center, minStruct, minPath, false) {
			continue
		}
		tag := fmt.Sprintf("water_%d", c)
		d.doc.AddEnv(world.EnvObject{
			Type:     "water",
			Position: center.WithY(d.field.At(center.X, center.Z)),
			Size:     size,
			Cluster:  tag,
		})

		reeds := d.stream.IntRange(3, 6)
		for i := 0; i < reeds; i++ {
			pos := center.PolarOffset(d.stream.Angle(), size*d.stream.Range(0.9, 1.2))
			bStruct, bPath := spatial.Clearance("bush")
			if !d.checker.IsValid(pos, bStruct, bPath, false) {
				continue
			}
			d.doc.AddEnv(world.EnvObject{
				Type:     "bush",
				Position: pos.WithY(d.field.At(pos.X, pos.Z)),
				Size:     d.stream.Range(0.5, 1.2),
				Variant:  "reeds",
				Cluster:  tag,
			})
		}
	}
}

// lavaFeatures places glowing lava pools with scorched rock around them.
func lavaFeatures(d *deps, count int) {
	half := d.doc.Metadata.Size / 2
	for c := 0; c < count; c++ {
		center := geo.Pt(d.stream.Range(-half*0.8, half*0.8), d.stream.Range(-half*0.8, half*0.8))
		size := d.stream.Range(6, 14)

		minStruct, minPath := spatial.Clearance("lava")
		if !d.checker.IsValid(center, minStruct, minPath, false) {
			continue
		}
		tag := fmt.Sprintf("lava_%d", c)
		d.doc.AddEnv(world.EnvObject{
			Type:     "lava",
			Position: center.WithY(d.field.At(center.X, center.Z)),
			Size:     size,
			Glowing:  true,
			Cluster:  tag,
		})

		rocks := d.stream.IntRange(2, 5)
		for i := 0; i < rocks; i++ {
			pos := center.PolarOffset(d.stream.Angle(), size*d.stream.Range(0.9, 1.3))
			rStruct, rPath := spatial.Clearance("rock")
			if !d.checker.IsValid(pos, rStruct, rPath, false) {
				continue
			}
			d.doc.AddEnv(world.EnvObject{
				Type:     "rock",
				Position: pos.WithY(d.field.At(pos.X, pos.Z)),
				Size:     d.stream.Range(0.8, 2),
				Variant:  "scorched",
				Cluster:  tag,
			})
		}
	}
}
