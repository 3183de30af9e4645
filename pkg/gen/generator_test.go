package gen

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/quiethollow/mapforge/pkg/theme"
	"github.com/quiethollow/mapforge/pkg/validation"
	"github.com/quiethollow/mapforge/pkg/world"
)

func generate(t *testing.T, themeName string, opts Options) (*world.Document, *validation.Report) {
	t.Helper()
	doc, report, err := Generate(themeName, opts)
	if err != nil {
		t.Fatalf("Generate(%s): %v", themeName, err)
	}
	return doc, report
}

// canonical strips the wall-clock timestamp and serializes the document for
// structural comparison.
func canonical(t *testing.T, doc *world.Document) string {
	t.Helper()
	doc.Metadata.GeneratedAt = ""
	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestGenerateDeterministic(t *testing.T) {
	a, _ := generate(t, "DARK_FOREST", Options{Seed: 12345})
	b, _ := generate(t, "DARK_FOREST", Options{Seed: 12345})
	if canonical(t, a) != canonical(t, b) {
		t.Fatal("same theme and seed produced structurally different documents")
	}
}

func TestGenerateSeedsDiffer(t *testing.T) {
	a, _ := generate(t, "DARK_FOREST", Options{Seed: 1})
	b, _ := generate(t, "DARK_FOREST", Options{Seed: 2})
	if canonical(t, a) == canonical(t, b) {
		t.Fatal("different seeds produced identical documents")
	}
}

func TestGenerateDarkForestScenario(t *testing.T) {
	doc, report := generate(t, "DARK_FOREST", Options{Seed: 12345})
	if !report.Valid {
		t.Fatalf("generation report invalid: %v", report.Errors)
	}

	primary, boundary, secondaryAndSub := 0, 0, 0
	for _, z := range doc.Zones {
		switch z.Type {
		case world.ZonePrimary:
			primary++
		case world.ZoneBoundary:
			boundary++
		case world.ZoneSecondary, world.ZoneSubZone:
			secondaryAndSub++
		}
	}
	if primary != 1 {
		t.Errorf("primary zones: %d, want exactly 1", primary)
	}
	if boundary != 1 {
		t.Errorf("boundary zones: %d, want exactly 1", boundary)
	}
	if secondaryAndSub < 8 {
		t.Errorf("secondary and sub-zones: %d, want at least 8", secondaryAndSub)
	}

	th, _ := theme.Get("DARK_FOREST")
	villages := 0
	for _, s := range doc.Structures {
		if s.Type == world.StructureVillage {
			villages++
		}
	}
	if villages != th.Features.VillageCount {
		t.Errorf("villages: %d, want %d", villages, th.Features.VillageCount)
	}
}

func TestGenerateSchemaCompleteness(t *testing.T) {
	for _, name := range theme.Names() {
		doc, _ := generate(t, name, Options{Seed: 7})
		if len(doc.Zones) == 0 || len(doc.Paths) == 0 || len(doc.Environment) == 0 {
			t.Errorf("%s: zones=%d paths=%d environment=%d, all must be non-empty",
				name, len(doc.Zones), len(doc.Paths), len(doc.Environment))
		}
		if len(doc.Structures) == 0 {
			t.Errorf("%s: no structures placed", name)
		}
	}
}

func TestGenerateUnknownTheme(t *testing.T) {
	doc, report, err := Generate("NOT_A_THEME", Options{Seed: 1})
	if err == nil {
		t.Fatal("expected configuration error")
	}
	if !errors.Is(err, theme.ErrUnknownTheme) {
		t.Errorf("error should wrap ErrUnknownTheme, got %v", err)
	}
	if doc != nil || report != nil {
		t.Error("no partial document may be produced for an unknown theme")
	}
}

func TestGenerateSizeScalesTopology(t *testing.T) {
	small, _ := generate(t, "VERDANT_VALE", Options{Seed: 11, MapSize: 200})
	large, _ := generate(t, "VERDANT_VALE", Options{Seed: 11, MapSize: 800})

	if len(small.Zones) != len(large.Zones) {
		t.Errorf("zone counts differ across sizes: %d vs %d", len(small.Zones), len(large.Zones))
	}
	pathTypes := func(doc *world.Document) map[string]int {
		m := map[string]int{}
		for _, p := range doc.Paths {
			m[p.Type]++
		}
		return m
	}
	st, lt := pathTypes(small), pathTypes(large)
	for k, v := range st {
		if k == "connector" {
			continue // connectivity depends on absolute structure distances
		}
		if lt[k] != v {
			t.Errorf("path category %q count differs across sizes: %d vs %d", k, v, lt[k])
		}
	}
	if small.Metadata.Size != 200 || large.Metadata.Size != 800 {
		t.Error("map size not recorded in metadata")
	}
}

func TestGenerateFeatureOverrides(t *testing.T) {
	villages := 1
	doc, _ := generate(t, "DARK_FOREST", Options{
		Seed:     3,
		Features: &theme.FeatureOverrides{VillageCount: &villages},
	})
	got := 0
	for _, s := range doc.Structures {
		if s.Type == world.StructureVillage {
			got++
		}
	}
	if got != 1 {
		t.Errorf("override should limit villages to 1, got %d", got)
	}

	// The catalog theme must not be patched in place.
	base, _ := theme.Get("DARK_FOREST")
	if base.Features.VillageCount == 1 {
		t.Error("catalog theme mutated by per-run override")
	}
}

func TestGenerateDefaultSize(t *testing.T) {
	doc, _ := generate(t, "GOLDEN_STEPPE", Options{Seed: 4})
	if doc.Metadata.Size != DefaultMapSize {
		t.Errorf("metadata size %v, want default %v", doc.Metadata.Size, DefaultMapSize)
	}
}

func TestGenerateValidatesCleanly(t *testing.T) {
	doc, _ := generate(t, "DARK_FOREST", Options{Seed: 12345})
	report := validation.ValidateDocument(doc)
	if !report.Valid {
		t.Fatalf("fresh document failed re-validation: %v", report.Errors)
	}
}

func TestGenerateCompactionApplied(t *testing.T) {
	doc, _ := generate(t, "DARK_FOREST", Options{Seed: 12345})
	stats := doc.Metadata.Compaction
	if stats == nil {
		t.Fatal("dense forest run should record compaction stats")
	}
	if stats.InputTrees == 0 {
		t.Fatal("forest theme generated no trees")
	}
	if stats.Ratio < 1 {
		t.Errorf("compression ratio %v below 1", stats.Ratio)
	}
	clusters := 0
	for _, o := range doc.Environment {
		if o.Type == world.EnvTreeCluster {
			clusters++
			if o.TreeCount < 2 {
				t.Errorf("cluster with %d members should have stayed a raw tree", o.TreeCount)
			}
		}
	}
	if clusters == 0 {
		t.Error("no tree clusters in a high tree-density document")
	}
}

func TestGenerateDocumentIDStable(t *testing.T) {
	a, _ := generate(t, "FROZEN_REACH", Options{Seed: 5})
	b, _ := generate(t, "FROZEN_REACH", Options{Seed: 5})
	if a.Metadata.ID != b.Metadata.ID {
		t.Error("document id must be a pure function of theme, seed and size")
	}
	c, _ := generate(t, "FROZEN_REACH", Options{Seed: 6})
	if a.Metadata.ID == c.Metadata.ID {
		t.Error("different seeds must get different document ids")
	}
}
