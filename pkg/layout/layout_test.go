package layout

import (
	"math"
	"testing"

	"github.com/quiethollow/mapforge/pkg/geo"
	"github.com/quiethollow/mapforge/pkg/rng"
	"github.com/quiethollow/mapforge/pkg/terrain"
	"github.com/quiethollow/mapforge/pkg/theme"
	"github.com/quiethollow/mapforge/pkg/world"
)

func setup(t *testing.T, themeName string, seed int64) (*world.Document, *theme.Theme, *rng.Stream, *terrain.HeightField) {
	t.Helper()
	th, err := theme.Get(themeName)
	if err != nil {
		t.Fatal(err)
	}
	return world.New(th, seed, 400), th, rng.New(seed), terrain.New(seed)
}

func TestBuildZonesComposition(t *testing.T) {
	doc, th, stream, _ := setup(t, "DARK_FOREST", 12345)
	report := BuildZones(doc, th, stream)
	if !report.Valid {
		t.Fatalf("zone report invalid: %v", report.Errors)
	}

	counts := map[world.ZoneType]int{}
	for _, z := range doc.Zones {
		counts[z.Type]++
	}
	if counts[world.ZoneBoundary] != 1 {
		t.Errorf("expected 1 boundary zone, got %d", counts[world.ZoneBoundary])
	}
	if counts[world.ZonePrimary] != 1 {
		t.Errorf("expected 1 primary zone, got %d", counts[world.ZonePrimary])
	}
	if counts[world.ZoneSecondary] != 8 {
		t.Errorf("expected 8 secondary zones, got %d", counts[world.ZoneSecondary])
	}
	if counts[world.ZoneSubZone] < subZoneMin || counts[world.ZoneSubZone] > subZoneMax {
		t.Errorf("sub-zone count %d outside [%d, %d]", counts[world.ZoneSubZone], subZoneMin, subZoneMax)
	}
}

func TestBuildZonesBoundaryAndPrimaryGeometry(t *testing.T) {
	doc, th, stream, _ := setup(t, "VERDANT_VALE", 7)
	BuildZones(doc, th, stream)

	boundary := doc.Zones[0]
	if len(boundary.Points) != 4 {
		t.Fatalf("boundary should be a square polygon, got %d points", len(boundary.Points))
	}
	b := 200.0 - 400*boundaryInsetFrac
	for _, p := range boundary.Points {
		if math.Abs(p.X) != b || math.Abs(p.Z) != b {
			t.Errorf("boundary corner off the inset square: (%v, %v)", p.X, p.Z)
		}
	}

	primary := doc.Zones[1]
	if primary.Center != geo.Origin {
		t.Error("primary zone must sit at the origin")
	}
	if want := b * primaryRadiusFrac; math.Abs(primary.Radius-want) > 1e-9 {
		t.Errorf("primary radius %v, want %v", primary.Radius, want)
	}
}

func TestBuildZonesColorsFromTheme(t *testing.T) {
	doc, th, stream, _ := setup(t, "EMBER_WASTES", 3)
	BuildZones(doc, th, stream)
	if doc.Zones[1].Color != th.Color(theme.RolePrimary) {
		t.Errorf("primary zone color %q, want %q", doc.Zones[1].Color, th.Color(theme.RolePrimary))
	}
}

func TestBuildZonesSecondaryJitterBounds(t *testing.T) {
	doc, th, stream, _ := setup(t, "DARK_FOREST", 55)
	BuildZones(doc, th, stream)
	nominal := 200.0 * secondaryRadusFrac
	for _, z := range doc.Zones {
		if z.Type != world.ZoneSecondary {
			continue
		}
		if z.Radius < nominal*0.7 || z.Radius > nominal*1.3 {
			t.Errorf("secondary zone %s radius %v outside 70-130%% of %v", z.ID, z.Radius, nominal)
		}
	}
}

func TestBuildPathsCategories(t *testing.T) {
	doc, _, stream, field := setup(t, "DARK_FOREST", 12345)
	report := BuildPaths(doc, stream, field)
	if !report.Valid {
		t.Fatalf("path report invalid: %v", report.Errors)
	}

	byType := map[string]int{}
	for _, p := range doc.Paths {
		byType[p.Type]++
	}
	if byType["grid"] != 2*gridLineCount {
		t.Errorf("expected %d grid lines, got %d", 2*gridLineCount, byType["grid"])
	}
	if byType["diagonal"] != 2 {
		t.Errorf("expected 2 diagonals, got %d", byType["diagonal"])
	}
	if byType["ring"] != 3 {
		t.Errorf("expected 3 concentric rings, got %d", byType["ring"])
	}
	if byType["loop"] < 2 || byType["loop"] > 4 {
		t.Errorf("loop count %d outside [2, 4]", byType["loop"])
	}
	if byType["curve"] < 3 || byType["curve"] > 5 {
		t.Errorf("curve count %d outside [3, 5]", byType["curve"])
	}
	if byType["corner"] != 4 {
		t.Errorf("expected 4 corner paths, got %d", byType["corner"])
	}
}

func TestBuildPathsWellFormed(t *testing.T) {
	doc, _, stream, field := setup(t, "GOLDEN_STEPPE", 9)
	BuildPaths(doc, stream, field)
	for _, p := range doc.Paths {
		if len(p.Points) < 2 {
			t.Errorf("path %s has %d points", p.ID, len(p.Points))
		}
		if p.Width <= 0 {
			t.Errorf("path %s has width %v", p.ID, p.Width)
		}
	}
}

func TestBuildPathsRingsOnRadius(t *testing.T) {
	doc, _, stream, field := setup(t, "DARK_FOREST", 21)
	BuildPaths(doc, stream, field)
	usable := 180.0
	fracs := []float64{0.25, 0.5, 0.75}
	ring := 0
	for _, p := range doc.Paths {
		if p.Type != "ring" {
			continue
		}
		want := usable * fracs[ring]
		for _, pt := range p.Points {
			if math.Abs(pt.Dist2D(geo.Origin)-want) > 1e-6 {
				t.Errorf("ring %d point off radius %v: %v", ring, want, pt.Dist2D(geo.Origin))
				break
			}
		}
		if pt0, ptN := p.Points[0], p.Points[len(p.Points)-1]; pt0.Dist2D(ptN) > 1e-9 {
			t.Errorf("ring %d is not closed", ring)
		}
		ring++
	}
	if ring != 3 {
		t.Fatalf("found %d rings, want 3", ring)
	}
}

func TestBuildPathsGridEndpointsOnNominalLine(t *testing.T) {
	doc, _, stream, field := setup(t, "DARK_FOREST", 33)
	BuildPaths(doc, stream, field)
	spacing := 400.0 / 6
	for _, p := range doc.Paths {
		if p.Type != "grid" {
			continue
		}
		first, last := p.Points[0], p.Points[len(p.Points)-1]
		// One axis is the nominal multiple of spacing on both endpoints.
		onLineZ := math.Abs(first.Z-last.Z) < 1e-9 && nearMultiple(first.Z, spacing)
		onLineX := math.Abs(first.X-last.X) < 1e-9 && nearMultiple(first.X, spacing)
		if !onLineZ && !onLineX {
			t.Errorf("path %s endpoints off the nominal grid line: %v %v", p.ID, first, last)
		}
	}
}

func nearMultiple(v, spacing float64) bool {
	k := math.Round(v / spacing)
	return math.Abs(v-k*spacing) < 1e-9
}

func TestBuildVillageStylesReachable(t *testing.T) {
	_, th, _, field := setup(t, "DARK_FOREST", 1)
	seen := map[world.VillageStyle]bool{}
	// Spread seeds widely; adjacent seeds give adjacent first draws.
	for k := int64(0); k < 60; k++ {
		s, _ := BuildVillage("v", geo.Origin, th, rng.New(k*7919), field)
		seen[s.Village.Style] = true
	}
	for _, style := range villageStyles {
		if !seen[style] {
			t.Errorf("style %s never selected across the seed sweep", style)
		}
	}
}

func TestBuildVillageCommonShape(t *testing.T) {
	_, th, _, field := setup(t, "DARK_FOREST", 1)
	for seed := int64(0); seed < 12; seed++ {
		s, env := BuildVillage("village_0", geo.Pt(50, -30), th, rng.New(seed), field)
		v := s.Village
		if s.Type != world.StructureVillage || v == nil {
			t.Fatal("expected a village structure with a composite payload")
		}
		if s.Radius < 25 || s.Radius >= 40 {
			t.Errorf("seed %d: radius %v outside [25, 40)", seed, s.Radius)
		}
		if len(v.Buildings) == 0 {
			t.Errorf("seed %d: village has no buildings", seed)
		}
		if len(env) < 4 || len(env) > 8 {
			t.Errorf("seed %d: outskirts count %d outside [4, 8]", seed, len(env))
		}
		for _, o := range env {
			if !o.Scattered {
				t.Errorf("seed %d: outskirt object missing scattered flag", seed)
			}
			if o.Cluster != "village_0" {
				t.Errorf("seed %d: outskirt cluster %q", seed, o.Cluster)
			}
		}
		for _, c := range v.Connections {
			if c[0] < 0 || c[0] >= len(v.Buildings) || c[1] < 0 || c[1] >= len(v.Buildings) {
				t.Errorf("seed %d: connection %v out of building range", seed, c)
			}
		}
		for _, p := range v.Paths {
			if len(p.Points) < 2 || p.Width <= 0 {
				t.Errorf("seed %d: malformed village path %s", seed, p.ID)
			}
		}
	}
}

func TestBuildVillageTerracedElevation(t *testing.T) {
	_, th, _, field := setup(t, "DARK_FOREST", 1)
	var v *world.Village
	for k := int64(0); k < 60; k++ {
		s, _ := BuildVillage("v", geo.Origin, th, rng.New(k*7919), field)
		if s.Village.Style == world.StyleTerraced {
			v = s.Village
			break
		}
	}
	if v == nil {
		t.Fatal("no terraced village in 60 seeds")
	}

	// Buildings on higher terraces sit at higher elevation.
	maxRing := 0
	for _, b := range v.Buildings {
		if b.Ring > maxRing {
			maxRing = b.Ring
		}
		if want := float64(b.Ring) * terraceStep; b.Ring < 3 && math.Abs(b.Position.Y-want) > 1e-9 {
			t.Errorf("building %s on terrace %d at elevation %v, want %v", b.ID, b.Ring, b.Position.Y, want)
		}
	}
	if maxRing != 3 {
		t.Errorf("terraced village should crown with a ring-3 temple, max ring %d", maxRing)
	}

	temple := v.Buildings[len(v.Buildings)-1]
	if temple.Type != "temple" {
		t.Errorf("last building should be the central temple, got %q", temple.Type)
	}

	stairs := 0
	for _, d := range v.Decorations {
		if d.Type == "stairs" {
			stairs++
		}
	}
	if stairs != 4 {
		t.Errorf("expected 4 stair decorations (2 per terrace gap), got %d", stairs)
	}
}

func TestBuildVillageRiversideAlternatesSides(t *testing.T) {
	_, th, _, field := setup(t, "DARK_FOREST", 1)
	var v *world.Village
	for k := int64(0); k < 60; k++ {
		s, _ := BuildVillage("v", geo.Origin, th, rng.New(k*7919), field)
		if s.Village.Style == world.StyleRiverside {
			v = s.Village
			break
		}
	}
	if v == nil {
		t.Fatal("no riverside village in 60 seeds")
	}
	if len(v.Paths) == 0 || v.Paths[0].Type != "village_spine" {
		t.Fatal("riverside village must carry its spine path first")
	}
	hasMarket := false
	for _, b := range v.Buildings {
		if b.Type == "market" {
			hasMarket = true
		}
	}
	if !hasMarket {
		t.Error("riverside village should include a market")
	}
}

func TestBuildVillageGridStreets(t *testing.T) {
	_, th, _, field := setup(t, "DARK_FOREST", 1)
	var v *world.Village
	for k := int64(0); k < 60; k++ {
		s, _ := BuildVillage("v", geo.Origin, th, rng.New(k*7919), field)
		if s.Village.Style == world.StyleGrid {
			v = s.Village
			break
		}
	}
	if v == nil {
		t.Fatal("no grid village in 60 seeds")
	}
	wide := 0
	for _, p := range v.Paths {
		if p.Width == 3.0 {
			wide++
		}
	}
	if wide != 2 {
		t.Errorf("grid village should have exactly 2 wider center streets, got %d", wide)
	}
	if len(v.Decorations) == 0 || v.Decorations[0].Type != "plaza" {
		t.Error("grid village should reserve the center cell for a plaza")
	}
}

func TestPlaceStructuresCounts(t *testing.T) {
	doc, th, stream, field := setup(t, "DARK_FOREST", 12345)
	BuildPaths(doc, stream, field)
	report := PlaceStructures(doc, th, stream, field)
	if !report.Valid {
		t.Fatalf("structure report invalid: %v", report.Errors)
	}

	counts := map[world.StructureType]int{}
	for _, s := range doc.Structures {
		counts[s.Type]++
		if s.Theme != th.Name {
			t.Errorf("structure %s tagged with theme %q", s.ID, s.Theme)
		}
	}
	f := th.Features
	if counts[world.StructureVillage] != f.VillageCount {
		t.Errorf("villages: got %d, want %d", counts[world.StructureVillage], f.VillageCount)
	}
	if counts[world.StructureTower] != f.TowerCount {
		t.Errorf("towers: got %d, want %d", counts[world.StructureTower], f.TowerCount)
	}
	if counts[world.StructureRuins] != f.RuinsCount {
		t.Errorf("ruins: got %d, want %d", counts[world.StructureRuins], f.RuinsCount)
	}
	if counts[world.StructureDarkSanctum] != f.DarkSanctumCount {
		t.Errorf("sanctums: got %d, want %d", counts[world.StructureDarkSanctum], f.DarkSanctumCount)
	}
	if counts[world.StructureWatchtower] != f.WatchtowerCount {
		t.Errorf("watchtowers: got %d, want %d", counts[world.StructureWatchtower], f.WatchtowerCount)
	}
	if counts[world.StructureShrine] != f.ShrineCount {
		t.Errorf("shrines: got %d, want %d", counts[world.StructureShrine], f.ShrineCount)
	}
	// Bridges need path segments to cross; paths exist, so all should place.
	if counts[world.StructureBridge] != f.BridgeCount {
		t.Errorf("bridges: got %d, want %d", counts[world.StructureBridge], f.BridgeCount)
	}
}

func TestPlaceStructuresBridgesNeedPaths(t *testing.T) {
	doc, th, stream, field := setup(t, "DARK_FOREST", 5)
	// No paths built: bridges have nothing to cross.
	PlaceStructures(doc, th, stream, field)
	for _, s := range doc.Structures {
		if s.Type == world.StructureBridge {
			t.Fatal("bridge placed with no paths in the document")
		}
	}
}

func TestConnectStructuresLinks(t *testing.T) {
	doc, th, stream, field := setup(t, "DARK_FOREST", 12345)
	BuildPaths(doc, stream, field)
	PlaceStructures(doc, th, stream, field)

	before := len(doc.Paths)
	report := ConnectStructures(doc, stream, field)
	if !report.Valid {
		t.Fatalf("connect report invalid: %v", report.Errors)
	}

	links := make([]int, len(doc.Structures))
	for _, p := range doc.Paths[before:] {
		if p.Type != "connector" {
			t.Errorf("late path %s is not a connector", p.ID)
			continue
		}
		if p.Connects == nil {
			t.Errorf("connector %s missing its structure pair", p.ID)
			continue
		}
		i, j := p.Connects[0], p.Connects[1]
		if i < 0 || i >= len(doc.Structures) || j < 0 || j >= len(doc.Structures) {
			t.Errorf("connector %s pair out of range: %v", p.ID, *p.Connects)
			continue
		}
		if doc.Structures[i].Type == world.StructureBridge || doc.Structures[j].Type == world.StructureBridge {
			t.Errorf("connector %s uses a bridge as endpoint", p.ID)
		}
		d := doc.Structures[i].Position.Dist2D(doc.Structures[j].Position)
		if d < 10 || d > doc.Metadata.Size*0.25 {
			t.Errorf("connector %s spans %v, outside the link distance band", p.ID, d)
		}
		links[i]++
		links[j]++
	}
	for i, n := range links {
		if n > maxLinksPerStruct {
			t.Errorf("structure %d has %d links, cap is %d", i, n, maxLinksPerStruct)
		}
	}
}

func TestConnectStructuresClearsCorridors(t *testing.T) {
	doc, th, stream, field := setup(t, "DARK_FOREST", 12345)
	BuildPaths(doc, stream, field)
	PlaceStructures(doc, th, stream, field)

	// Flood the map with trees so every connector corridor is occupied.
	for x := -180.0; x <= 180; x += 6 {
		for z := -180.0; z <= 180; z += 6 {
			doc.AddEnv(world.EnvObject{Type: "tree", Position: geo.Pt(x, z), Size: 1})
		}
	}
	before := len(doc.Paths)
	ConnectStructures(doc, stream, field)
	added := doc.Paths[before:]
	if len(added) == 0 {
		t.Skip("no connectors created for this seed")
	}

	for _, o := range doc.Environment {
		for _, p := range added {
			for s := 1; s < len(p.Points); s++ {
				if geo.SegmentDistance2D(o.Position, p.Points[s-1], p.Points[s]) < 2.0+p.Width {
					t.Fatalf("object at (%v, %v) left inside connector corridor",
						o.Position.X, o.Position.Z)
				}
			}
		}
	}
}

func TestLayoutDeterminism(t *testing.T) {
	build := func() *world.Document {
		doc, th, stream, field := setup(t, "FROZEN_REACH", 777)
		BuildZones(doc, th, stream)
		BuildPaths(doc, stream, field)
		PlaceStructures(doc, th, stream, field)
		ConnectStructures(doc, stream, field)
		return doc
	}
	a, b := build(), build()
	if len(a.Zones) != len(b.Zones) || len(a.Paths) != len(b.Paths) || len(a.Structures) != len(b.Structures) {
		t.Fatal("same seed produced different layout counts")
	}
	for i := range a.Structures {
		if a.Structures[i].Position != b.Structures[i].Position {
			t.Fatalf("structure %d position diverged", i)
		}
	}
	for i := range a.Paths {
		if len(a.Paths[i].Points) != len(b.Paths[i].Points) {
			t.Fatalf("path %d point count diverged", i)
		}
	}
}
