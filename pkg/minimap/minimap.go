// Package minimap renders a downsampled raster view of a world document. The
// output is a coarse cell grid plus a PNG image: zone colors shaded by
// terrain relief, with paths, structures and notable environment features
// stamped on top.
package minimap

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"

	"github.com/quiethollow/mapforge/pkg/geo"
	"github.com/quiethollow/mapforge/pkg/terrain"
	"github.com/quiethollow/mapforge/pkg/theme"
	"github.com/quiethollow/mapforge/pkg/world"
)

// CellKind classifies one minimap cell, later kinds painting over earlier.
type CellKind uint8

const (
	CellGround CellKind = iota
	CellZone
	CellWater
	CellPath
	CellEnv
	CellStructure
)

// Grid is the downsampled view: Cells[z][x], row-major from the map's
// negative corner.
type Grid struct {
	Resolution int
	CellSize   float64
	Cells      [][]CellKind
}

// Build downsamples the document into a resolution x resolution grid.
func Build(doc *world.Document, resolution int) *Grid {
	if resolution <= 0 {
		resolution = 128
	}
	g := &Grid{
		Resolution: resolution,
		CellSize:   doc.Metadata.Size / float64(resolution),
		Cells:      make([][]CellKind, resolution),
	}
	for z := range g.Cells {
		g.Cells[z] = make([]CellKind, resolution)
	}
	half := doc.Metadata.Size / 2

	stamp := func(pos geo.Point3, radius float64, kind CellKind) {
		r := int(math.Ceil(radius / g.CellSize))
		cx := int((pos.X + half) / g.CellSize)
		cz := int((pos.Z + half) / g.CellSize)
		for dz := -r; dz <= r; dz++ {
			for dx := -r; dx <= r; dx++ {
				x, z := cx+dx, cz+dz
				if x < 0 || x >= resolution || z < 0 || z >= resolution {
					continue
				}
				if float64(dx*dx+dz*dz) > float64(r*r) {
					continue
				}
				if kind > g.Cells[z][x] {
					g.Cells[z][x] = kind
				}
			}
		}
	}

	for _, zone := range doc.Zones {
		if zone.Radius > 0 {
			stamp(zone.Center, zone.Radius, CellZone)
		}
	}
	for _, o := range doc.Environment {
		switch o.Type {
		case "water", "frozen_pond":
			stamp(o.Position, o.Size, CellWater)
		case "mountain", "lava":
			stamp(o.Position, o.Size*0.5, CellEnv)
		}
	}
	for _, p := range doc.Paths {
		for i := 1; i < len(p.Points); i++ {
			a, b := p.Points[i-1], p.Points[i]
			steps := int(a.Dist2D(b)/g.CellSize) + 1
			for s := 0; s <= steps; s++ {
				stamp(a.Lerp(b, float64(s)/float64(steps)), p.Width/2, CellPath)
			}
		}
	}
	for _, st := range doc.Structures {
		r := st.Size
		if st.Radius > r {
			r = st.Radius
		}
		if r < 2 {
			r = 2
		}
		stamp(st.Position, r, CellStructure)
	}
	return g
}

// RenderPNG writes the grid as a PNG, one pixel per cell, using the theme
// palette with relief shading on ground and zone cells.
func RenderPNG(doc *world.Document, g *Grid, path string) error {
	field := terrain.New(doc.Metadata.Seed)
	half := doc.Metadata.Size / 2

	ground := parseHex(doc.Theme.Color(theme.RoleBoundary))
	zone := parseHex(doc.Theme.Color(theme.RolePrimary))
	water := parseHex(doc.Theme.Color(theme.RoleWater))
	road := parseHex(doc.Theme.Color(theme.RolePath))
	env := parseHex(doc.Theme.Color(theme.RoleSecondary))
	structure := parseHex(doc.Theme.Color(theme.RoleAccent))

	img := image.NewRGBA(image.Rect(0, 0, g.Resolution, g.Resolution))
	for z := 0; z < g.Resolution; z++ {
		for x := 0; x < g.Resolution; x++ {
			var c color.RGBA
			switch g.Cells[z][x] {
			case CellWater:
				c = water
			case CellPath:
				c = road
			case CellEnv:
				c = env
			case CellStructure:
				c = structure
			case CellZone:
				c = shade(zone, relief(field, g, half, x, z))
			default:
				c = shade(ground, relief(field, g, half, x, z))
			}
			img.SetRGBA(x, z, c)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating minimap file: %w", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encoding minimap: %w", err)
	}
	return nil
}

func relief(field *terrain.HeightField, g *Grid, half float64, x, z int) float64 {
	wx := float64(x)*g.CellSize - half + g.CellSize/2
	wz := float64(z)*g.CellSize - half + g.CellSize/2
	return field.Relief(wx, wz)
}

// shade scales a color between 70% and 110% brightness by relief.
func shade(c color.RGBA, relief float64) color.RGBA {
	f := 0.7 + 0.4*relief
	return color.RGBA{
		R: clamp8(float64(c.R) * f),
		G: clamp8(float64(c.G) * f),
		B: clamp8(float64(c.B) * f),
		A: 255,
	}
}

func clamp8(v float64) uint8 {
	if v > 255 {
		return 255
	}
	if v < 0 {
		return 0
	}
	return uint8(v)
}

// parseHex reads a #rrggbb color, falling back to mid-gray on malformed input.
func parseHex(s string) color.RGBA {
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return color.RGBA{R: 128, G: 128, B: 128, A: 255}
	}
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
