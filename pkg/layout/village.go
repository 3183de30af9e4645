package layout

import (
	"fmt"
	"math"

	"github.com/quiethollow/mapforge/pkg/geo"
	"github.com/quiethollow/mapforge/pkg/rng"
	"github.com/quiethollow/mapforge/pkg/terrain"
	"github.com/quiethollow/mapforge/pkg/theme"
	"github.com/quiethollow/mapforge/pkg/world"
)

// villageStyles is the pool a new village draws from, uniformly.
var villageStyles = []world.VillageStyle{
	world.StyleCircular,
	world.StyleGrid,
	world.StyleRiverside,
	world.StyleTerraced,
}

// importantTypes are the buildings that anchor a village.
var importantTypes = []string{"temple", "shop", "tavern"}

const (
	neighborConnectRange = 20.0
	terraceStep          = 3.0
)

// BuildVillage creates a village structure in one of four mutually exclusive
// layout styles, chosen once and stored. It also returns loose environment
// decorations scattered in an annulus around the footprint; those carry the
// scattered flag since they deliberately sit inside the village's clearance
// band.
func BuildVillage(id string, center geo.Point3, th *theme.Theme, stream *rng.Stream, field *terrain.HeightField) (world.Structure, []world.EnvObject) {
	style := villageStyles[stream.IntN(len(villageStyles))]
	radius := stream.Range(25, 40)

	v := &world.Village{
		Style:  style,
		Radius: radius,
	}

	switch style {
	case world.StyleCircular:
		buildCircular(v, id, center, stream)
	case world.StyleGrid:
		buildGrid(v, id, center, stream)
	case world.StyleRiverside:
		buildRiverside(v, id, center, stream)
	case world.StyleTerraced:
		buildTerraced(v, id, center, stream)
	}

	env := villageOutskirts(id, center, radius, stream, field)

	return world.Structure{
		ID:       id,
		Type:     world.StructureVillage,
		Position: center,
		Radius:   radius,
		Theme:    th.Name,
		Village:  v,
	}, env
}

// buildCircular lays out a plaza, an inner ring of important buildings, an
// outer ring of houses, plaza decorations, and curved secondary paths from
// buildings to the plaza and between nearby pairs.
func buildCircular(v *world.Village, id string, center geo.Point3, stream *rng.Stream) {
	v.Decorations = append(v.Decorations, world.Decoration{
		Type:     "plaza",
		Position: center,
		Size:     8,
	})

	inner := stream.IntRange(3, 5)
	r1 := v.Radius * 0.35
	for i := 0; i < inner; i++ {
		angle := 2*math.Pi*float64(i)/float64(inner) + stream.Range(-0.15, 0.15)
		pos := center.PolarOffset(angle, r1)
		v.Buildings = append(v.Buildings, newBuilding(
			fmt.Sprintf("%s_b%d", id, len(v.Buildings)),
			importantTypes[i%len(importantTypes)],
			pos, angle+math.Pi, 0, stream,
		))
	}

	outer := stream.IntRange(6, 10)
	r2 := v.Radius * 0.75
	for i := 0; i < outer; i++ {
		angle := 2*math.Pi*float64(i)/float64(outer) + stream.Range(-0.2, 0.2)
		pos := center.PolarOffset(angle, r2*stream.Range(0.9, 1.1))
		v.Buildings = append(v.Buildings, newBuilding(
			fmt.Sprintf("%s_b%d", id, len(v.Buildings)),
			"house", pos, angle+math.Pi, 1, stream,
		))
	}

	// Plaza decorations.
	decoTypes := []string{"fountain", "statue", "market_stall", "bench"}
	for i, n := 0, stream.IntRange(2, 4); i < n; i++ {
		v.Decorations = append(v.Decorations, world.Decoration{
			Type:     decoTypes[stream.IntN(len(decoTypes))],
			Position: center.PolarOffset(stream.Angle(), stream.Range(2, 6)),
			Size:     stream.Range(0.8, 1.6),
		})
	}

	// Curved paths: most buildings connect to the plaza.
	for i, b := range v.Buildings {
		if !stream.Chance(0.8) {
			continue
		}
		v.Paths = append(v.Paths, curvedStreet(
			fmt.Sprintf("%s_street_%d", id, i), b.Position, center, stream, 1.2))
	}

	// Nearest-neighbor connections, bounded to the connect range.
	for i := range v.Buildings {
		nearest, dist := -1, neighborConnectRange
		for j := i + 1; j < len(v.Buildings); j++ {
			if d := v.Buildings[i].Position.Dist2D(v.Buildings[j].Position); d < dist {
				nearest, dist = j, d
			}
		}
		if nearest < 0 || !stream.Chance(0.5) {
			continue
		}
		v.Connections = append(v.Connections, [2]int{i, nearest})
		v.Paths = append(v.Paths, curvedStreet(
			fmt.Sprintf("%s_link_%d_%d", id, i, nearest),
			v.Buildings[i].Position, v.Buildings[nearest].Position, stream, 1.0))
	}
}

// buildGrid lays buildings on a square lattice with the center cell reserved
// for a plaza, buildings oriented toward their nearest street, and one street
// per grid line (center lines wider).
func buildGrid(v *world.Village, id string, center geo.Point3, stream *rng.Stream) {
	count := stream.IntRange(8, 12)
	side := int(math.Ceil(math.Sqrt(float64(count + 1))))
	cell := 12.0
	extent := cell * float64(side) / 2

	v.Decorations = append(v.Decorations, world.Decoration{
		Type:     "plaza",
		Position: center,
		Size:     cell * 0.8,
	})

	centerIdx := side / 2
	placed := 0
	for gx := 0; gx < side && placed < count; gx++ {
		for gz := 0; gz < side && placed < count; gz++ {
			if gx == centerIdx && gz == centerIdx {
				continue // plaza cell
			}
			pos := geo.Point3{
				X: center.X + (float64(gx)+0.5)*cell - extent + stream.Range(-1.5, 1.5),
				Y: center.Y,
				Z: center.Z + (float64(gz)+0.5)*cell - extent + stream.Range(-1.5, 1.5),
			}
			// Face the nearest street line: whichever lattice axis the
			// building sits closer to.
			dx := math.Abs(pos.X - center.X)
			dz := math.Abs(pos.Z - center.Z)
			rotation := 0.0
			if dx > dz {
				rotation = math.Pi / 2
				if pos.X > center.X {
					rotation = -math.Pi / 2
				}
			} else if pos.Z > center.Z {
				rotation = math.Pi
			}
			bType := "house"
			if placed < len(importantTypes) {
				bType = importantTypes[placed]
			}
			v.Buildings = append(v.Buildings, newBuilding(
				fmt.Sprintf("%s_b%d", id, placed), bType, pos, rotation, gx*side+gz, stream))
			placed++
		}
	}

	// One street per grid line; center lines are wider.
	for i := 0; i <= side; i++ {
		offset := float64(i)*cell - extent
		width := 2.0
		if i == centerIdx {
			width = 3.0
		}
		v.Paths = append(v.Paths, world.Path{
			ID: fmt.Sprintf("%s_street_h_%d", id, i),
			Points: []geo.Point3{
				{X: center.X - extent, Y: center.Y, Z: center.Z + offset},
				{X: center.X + extent, Y: center.Y, Z: center.Z + offset},
			},
			Width:   width,
			Pattern: world.PatternStraight,
			Type:    "village_street",
		})
		v.Paths = append(v.Paths, world.Path{
			ID: fmt.Sprintf("%s_street_v_%d", id, i),
			Points: []geo.Point3{
				{X: center.X + offset, Y: center.Y, Z: center.Z - extent},
				{X: center.X + offset, Y: center.Y, Z: center.Z + extent},
			},
			Width:   width,
			Pattern: world.PatternStraight,
			Type:    "village_street",
		})
	}
}

// buildRiverside generates a sinuous spine path and flanks it with buildings
// alternating left and right, all facing the spine, plus a market near the
// midpoint.
func buildRiverside(v *world.Village, id string, center geo.Point3, stream *rng.Stream) {
	dir := stream.Angle()
	axis := geo.Point3{X: math.Cos(dir), Z: math.Sin(dir)}
	perp := axis.Perp2D()

	control := make([]geo.Point3, 5)
	for i := range control {
		t := (float64(i)/4)*2 - 1 // -1 .. 1
		wobble := stream.Range(-v.Radius*0.25, v.Radius*0.25)
		control[i] = center.Add(axis.Scale(t * v.Radius)).Add(perp.Scale(wobble))
	}
	spine := geo.CatmullRomSpline(control, 6, 0.5)

	v.Paths = append(v.Paths, world.Path{
		ID:      fmt.Sprintf("%s_spine", id),
		Points:  spine,
		Width:   2.5,
		Pattern: world.PatternCurved,
		Type:    "village_spine",
	})

	count := stream.IntRange(8, 12)
	for i := 0; i < count; i++ {
		idx := i * (len(spine) - 1) / (count - 1)
		at := spine[idx]
		// Local spine direction for the perpendicular offset.
		next := spine[minInt(idx+1, len(spine)-1)]
		prev := spine[maxInt(idx-1, 0)]
		local := next.Sub(prev).Normalize2D().Perp2D()

		side := 1.0
		if i%2 == 1 {
			side = -1
		}
		pos := at.Add(local.Scale(side * stream.Range(6, 10))).WithY(center.Y)
		rotation := local.Scale(-side).Angle2D()
		v.Buildings = append(v.Buildings, newBuilding(
			fmt.Sprintf("%s_b%d", id, i), "house", pos, rotation, 0, stream))
	}

	// Market feature near the spine midpoint.
	mid := spine[len(spine)/2]
	marketPos := mid.Add(perp.Scale(stream.Range(4, 7))).WithY(center.Y)
	v.Buildings = append(v.Buildings, newBuilding(
		fmt.Sprintf("%s_market", id), "market", marketPos, dir+math.Pi/2, 0, stream))
}

// buildTerraced stacks concentric rings at increasing elevation with a
// central temple at the highest terrace and stair decorations bridging
// levels.
func buildTerraced(v *world.Village, id string, center geo.Point3, stream *rng.Stream) {
	fractions := []float64{0.85, 0.6, 0.35} // outer (lowest) to inner (highest)
	for terrace, frac := range fractions {
		elev := center.Y + float64(terrace)*terraceStep
		r := v.Radius * frac
		count := stream.IntRange(4, 6) - terrace
		if count < 3 {
			count = 3
		}
		for i := 0; i < count; i++ {
			angle := 2*math.Pi*float64(i)/float64(count) + stream.Range(-0.15, 0.15)
			pos := center.PolarOffset(angle, r).WithY(elev)
			bType := "house"
			if terrace > 0 && i == 0 {
				bType = importantTypes[terrace%len(importantTypes)]
			}
			b := newBuilding(fmt.Sprintf("%s_b%d", id, len(v.Buildings)), bType, pos, angle+math.Pi, terrace, stream)
			// Important buildings grow with the terrace they stand on.
			if bType != "house" {
				b.Height += float64(terrace) * 1.5
			}
			v.Buildings = append(v.Buildings, b)
		}

		// Stairs bridging this terrace to the next one in.
		if terrace < len(fractions)-1 {
			nextR := v.Radius * fractions[terrace+1]
			for s := 0; s < 2; s++ {
				angle := stream.Angle()
				v.Decorations = append(v.Decorations, world.Decoration{
					Type:     "stairs",
					Position: center.PolarOffset(angle, (r+nextR)/2).WithY(elev + terraceStep/2),
					Size:     2.5,
					Rotation: angle,
				})
			}
		}
	}

	temple := newBuilding(fmt.Sprintf("%s_temple", id), "temple",
		center.WithY(center.Y+float64(len(fractions))*terraceStep), stream.Angle(), len(fractions), stream)
	temple.Height += 4
	v.Buildings = append(v.Buildings, temple)
}

// villageOutskirts scatters loose trees, bushes and rocks in an annulus
// around the village footprint.
func villageOutskirts(id string, center geo.Point3, radius float64, stream *rng.Stream, field *terrain.HeightField) []world.EnvObject {
	types := []string{"tree", "bush", "rock"}
	n := stream.IntRange(4, 8)
	env := make([]world.EnvObject, 0, n)
	for i := 0; i < n; i++ {
		pos := center.PolarOffset(stream.Angle(), stream.Range(radius*1.3, radius*1.8))
		env = append(env, world.EnvObject{
			Type:      types[stream.IntN(len(types))],
			Position:  pos.WithY(field.At(pos.X, pos.Z)),
			Size:      stream.Range(0.8, 2.2),
			Cluster:   id,
			Scattered: true,
		})
	}
	return env
}

// newBuilding creates a building with jittered footprint dimensions.
func newBuilding(id, bType string, pos geo.Point3, rotation float64, ring int, stream *rng.Stream) world.Building {
	w := stream.Range(4, 7)
	d := stream.Range(4, 7)
	h := stream.Range(3.5, 6)
	if bType != "house" {
		w += 2
		d += 2
		h += 2
	}
	return world.Building{
		ID:       id,
		Type:     bType,
		Position: pos,
		Rotation: rotation,
		Width:    w,
		Depth:    d,
		Height:   h,
		StyleIdx: stream.IntN(4),
		Ring:     ring,
	}
}

// curvedStreet builds a short curved secondary path between two points.
func curvedStreet(id string, a, b geo.Point3, stream *rng.Stream, width float64) world.Path {
	mid := a.Lerp(b, 0.5)
	perp := b.Sub(a).Normalize2D().Perp2D()
	control := mid.Add(perp.Scale(stream.Range(-4, 4)))
	return world.Path{
		ID:      id,
		Points:  geo.QuadraticBezier(a, control, b, 8),
		Width:   width,
		Pattern: world.PatternCurved,
		Type:    "village_street",
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
