// Package spatial implements the validity predicate gating environment
// placement: a candidate position must keep clearance from every structure
// footprint and every path segment. A uniform grid index prunes candidates;
// the exact distance tests decide, so accept/reject decisions are identical
// to a linear scan.
package spatial

import (
	"math"

	"github.com/quiethollow/mapforge/pkg/geo"
	"github.com/quiethollow/mapforge/pkg/world"
)

const (
	cellSize = 32.0
	// maxQueryRadius bounds the clearance any caller may ask for. Entries
	// are registered into every cell within this margin of their footprint,
	// so a single-cell lookup sees all candidates within range.
	maxQueryRadius = 24.0

	// Background objects keep extra distance from foreground features.
	backgroundStructFactor = 1.5
	backgroundPathFactor   = 1.2

	// Village footprints are inflated so filler cannot crowd the outskirts.
	villageRadiusFactor = 1.25
)

type structEntry struct {
	pos       geo.Point3
	footprint float64
}

type segEntry struct {
	a, b  geo.Point3
	width float64
}

type circleEntry struct {
	center geo.Point3
	radius float64
	width  float64
}

// Checker answers validity queries against a fixed set of structures and
// paths. Build it once after structure placement; it does not observe later
// additions.
type Checker struct {
	structs map[[2]int][]structEntry
	segs    map[[2]int][]segEntry
	circles []circleEntry
}

// NewChecker indexes the document's structures and paths.
func NewChecker(doc *world.Document) *Checker {
	c := &Checker{
		structs: make(map[[2]int][]structEntry),
		segs:    make(map[[2]int][]segEntry),
	}
	for _, s := range doc.Structures {
		c.addStructure(s)
	}
	for _, p := range doc.Paths {
		c.AddPath(p)
	}
	return c
}

func (c *Checker) addStructure(s world.Structure) {
	footprint := s.Size
	if s.Type == world.StructureVillage {
		footprint = s.Radius * villageRadiusFactor
	} else if s.Radius > footprint {
		footprint = s.Radius
	}
	e := structEntry{pos: s.Position, footprint: footprint}
	r := footprint + maxQueryRadius
	c.eachCell(s.Position.X-r, s.Position.Z-r, s.Position.X+r, s.Position.Z+r, func(key [2]int) {
		c.structs[key] = append(c.structs[key], e)
	})
}

// AddPath indexes an additional path. Circular paths use a radial band test
// around the loop centroid; all others use per-segment distance.
func (c *Checker) AddPath(p world.Path) {
	if len(p.Points) < 2 {
		return
	}
	if p.Pattern == world.PatternCircular {
		center, radius := loopCenter(p.Points)
		c.circles = append(c.circles, circleEntry{center: center, radius: radius, width: p.Width})
		return
	}
	for i := 1; i < len(p.Points); i++ {
		a, b := p.Points[i-1], p.Points[i]
		if a.Dist2D(b) < 1e-9 {
			continue // zero-length segment, skip defensively
		}
		e := segEntry{a: a, b: b, width: p.Width}
		r := p.Width + maxQueryRadius
		minX := math.Min(a.X, b.X) - r
		maxX := math.Max(a.X, b.X) + r
		minZ := math.Min(a.Z, b.Z) - r
		maxZ := math.Max(a.Z, b.Z) + r
		c.eachCell(minX, minZ, maxX, maxZ, func(key [2]int) {
			c.segs[key] = append(c.segs[key], e)
		})
	}
}

// IsValid reports whether pos keeps the requested clearance from all indexed
// structures and paths. background inflates the structure threshold by 1.5
// and the path threshold by 1.2.
func (c *Checker) IsValid(pos geo.Point3, minDistToStructures, minDistToPaths float64, background bool) bool {
	if background {
		minDistToStructures *= backgroundStructFactor
		minDistToPaths *= backgroundPathFactor
	}
	key := c.cellKey(pos.X, pos.Z)

	for _, e := range c.structs[key] {
		if pos.Dist2D(e.pos) < minDistToStructures+e.footprint {
			return false
		}
	}
	for _, e := range c.segs[key] {
		if geo.SegmentDistance2D(pos, e.a, e.b) < minDistToPaths+e.width {
			return false
		}
	}
	for _, e := range c.circles {
		band := math.Abs(pos.Dist2D(e.center) - e.radius)
		if band < minDistToPaths+e.width {
			return false
		}
	}
	return true
}

// DistanceToStructures returns the smallest footprint-adjusted distance from
// pos to any indexed structure, scanning linearly. Used by the document
// re-validator, where exactness matters more than speed.
func (c *Checker) DistanceToStructures(pos geo.Point3) float64 {
	best := math.MaxFloat64
	seen := map[structEntry]bool{}
	for _, bucket := range c.structs {
		for _, e := range bucket {
			if seen[e] {
				continue
			}
			seen[e] = true
			if d := pos.Dist2D(e.pos) - e.footprint; d < best {
				best = d
			}
		}
	}
	return best
}

func (c *Checker) cellKey(x, z float64) [2]int {
	return [2]int{int(math.Floor(x / cellSize)), int(math.Floor(z / cellSize))}
}

func (c *Checker) eachCell(minX, minZ, maxX, maxZ float64, fn func(key [2]int)) {
	x0 := int(math.Floor(minX / cellSize))
	x1 := int(math.Floor(maxX / cellSize))
	z0 := int(math.Floor(minZ / cellSize))
	z1 := int(math.Floor(maxZ / cellSize))
	for cx := x0; cx <= x1; cx++ {
		for cz := z0; cz <= z1; cz++ {
			fn([2]int{cx, cz})
		}
	}
}

// loopCenter returns the centroid and mean radius of a closed loop.
func loopCenter(pts []geo.Point3) (geo.Point3, float64) {
	// Skip the repeated closing point when averaging.
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
