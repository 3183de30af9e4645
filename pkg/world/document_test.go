package world

import (
	"path/filepath"
	"testing"

	"github.com/quiethollow/mapforge/pkg/geo"
	"github.com/quiethollow/mapforge/pkg/theme"
)

func testTheme(t *testing.T) *theme.Theme {
	t.Helper()
	th, err := theme.Get("DARK_FOREST")
	if err != nil {
		t.Fatal(err)
	}
	return th
}

func TestNewDocumentID(t *testing.T) {
	th := testTheme(t)
	a := New(th, 42, 400)
	b := New(th, 42, 400)
	if a.Metadata.ID != b.Metadata.ID {
		t.Error("same theme, seed and size must share an id")
	}
	if c := New(th, 43, 400); c.Metadata.ID == a.Metadata.ID {
		t.Error("seed change must change the id")
	}
	if d := New(th, 42, 800); d.Metadata.ID == a.Metadata.ID {
		t.Error("size change must change the id")
	}
	if a.Metadata.Seed != 42 || a.Metadata.Size != 400 {
		t.Error("seed and size not recorded in metadata")
	}
	if a.Metadata.GeneratedAt == "" {
		t.Error("generation timestamp missing")
	}
}

func TestAddPathDropsDegenerates(t *testing.T) {
	doc := New(testTheme(t), 1, 400)
	doc.AddPath(Path{ID: "short", Points: []geo.Point3{geo.Pt(0, 0)}, Width: 2})
	doc.AddPath(Path{ID: "flat", Points: []geo.Point3{geo.Pt(0, 0), geo.Pt(1, 0)}, Width: 0})
	doc.AddPath(Path{ID: "ok", Points: []geo.Point3{geo.Pt(0, 0), geo.Pt(1, 0)}, Width: 2})

	if len(doc.Paths) != 1 || doc.Paths[0].ID != "ok" {
		t.Fatalf("degenerate paths not dropped: %d paths kept", len(doc.Paths))
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	doc := New(testTheme(t), 7, 400)
	doc.AddZone(Zone{ID: "z1", Type: ZonePrimary, Radius: 50, Color: "#112233"})
	idx := doc.AddStructure(Structure{ID: "s1", Type: StructureTower, Position: geo.Pt(10, 20), Size: 6})
	doc.AddStructure(Structure{ID: "s2", Type: StructureRuins, Position: geo.Pt(-30, 5), Size: 8})
	doc.AddPath(Path{
		ID: "p1", Points: []geo.Point3{geo.Pt(10, 20), geo.Pt(-30, 5)}, Width: 2,
		Pattern: PatternCurved, Type: "connector", Connects: &[2]int{idx, 1},
	})
	doc.AddEnv(EnvObject{Type: "tree", Position: geo.Pt(3, 4), Size: 1.5, Glowing: true})
	doc.Metadata.Compaction = &CompactionStats{InputTrees: 1, OutputRecords: 1, Ratio: 1}

	path := filepath.Join(t.TempDir(), "map.json")
	if err := doc.Save(path); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if loaded.Metadata.ID != doc.Metadata.ID {
		t.Error("id changed across round trip")
	}
	if len(loaded.Zones) != 1 || len(loaded.Structures) != 2 || len(loaded.Paths) != 1 || len(loaded.Environment) != 1 {
		t.Fatalf("section counts changed: %d/%d/%d/%d",
			len(loaded.Zones), len(loaded.Structures), len(loaded.Paths), len(loaded.Environment))
	}
	if loaded.Paths[0].Connects == nil || loaded.Paths[0].Connects[1] != 1 {
		t.Error("in-range connects pair must survive the round trip")
	}
	if !loaded.Environment[0].Glowing {
		t.Error("glowing flag lost")
	}
	if loaded.Theme == nil || loaded.Theme.Name != "DARK_FOREST" {
		t.Error("theme payload lost")
	}
	if loaded.Metadata.Compaction == nil || loaded.Metadata.Compaction.InputTrees != 1 {
		t.Error("compaction stats lost")
	}
}

func TestLoadClearsOutOfRangeConnects(t *testing.T) {
	doc := New(testTheme(t), 8, 400)
	doc.AddStructure(Structure{ID: "s1", Type: StructureTower, Position: geo.Pt(0, 0), Size: 6})
	doc.AddPath(Path{
		ID: "p1", Points: []geo.Point3{geo.Pt(0, 0), geo.Pt(5, 5)}, Width: 2,
		Pattern: PatternCurved, Connects: &[2]int{0, 9},
	})

	path := filepath.Join(t.TempDir(), "map.json")
	if err := doc.Save(path); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Paths[0].Connects != nil {
		t.Error("out-of-range connects pair must be cleared on load")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
