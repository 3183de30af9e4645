package main

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/quiethollow/mapforge/pkg/stats"
	"github.com/quiethollow/mapforge/pkg/theme"
	"github.com/quiethollow/mapforge/pkg/validation"
	"github.com/quiethollow/mapforge/pkg/world"
)

func printValidationReport(r *validation.Report) {
	if len(r.Errors) > 0 {
		fmt.Printf("ERRORS (%d):\n", len(r.Errors))
		for _, e := range r.Errors {
			fmt.Printf("  [%s] %s\n", e.Level, e.Message)
			if e.Subject != "" {
				fmt.Printf("    -> %s = %v\n", e.Subject, e.ActualValue)
			}
			if e.Expected != "" {
				fmt.Printf("    expected: %s\n", e.Expected)
			}
		}
		fmt.Println()
	}

	if len(r.Warnings) > 0 {
		fmt.Printf("WARNINGS (%d):\n", len(r.Warnings))
		for _, w := range r.Warnings {
			fmt.Printf("  [%s] %s\n", w.Level, w.Message)
			if w.Expected != "" {
				fmt.Printf("    expected: %s\n", w.Expected)
			}
		}
		fmt.Println()
	}

	if len(r.Info) > 0 {
		fmt.Printf("INFO (%d):\n", len(r.Info))
		for _, i := range r.Info {
			fmt.Printf("  [%s] %s\n", i.Level, i.Message)
		}
		fmt.Println()
	}

	if r.Valid {
		fmt.Printf("Result: VALID (%s)\n", r.Summary)
	} else {
		fmt.Printf("Result: INVALID (%s)\n", r.Summary)
	}
}

func printGenerated(doc *world.Document, s *stats.Summary, report *validation.Report) {
	fmt.Printf("%s (seed %d, size %g)\n", doc.Theme.Name, doc.Metadata.Seed, doc.Metadata.Size)
	fmt.Printf("  zones: %s  paths: %s  structures: %s  environment: %s\n",
		humanize.Comma(int64(s.Zones)),
		humanize.Comma(int64(s.Paths)),
		humanize.Comma(int64(s.Structures)),
		humanize.Comma(int64(s.Environment)))
	fmt.Printf("  path length: %s units  buildings: %s\n",
		humanize.CommafWithDigits(s.TotalPathLength, 0),
		humanize.Comma(int64(s.TotalBuildings)))
	if top := s.TopEnvironmentTypes(3); len(top) > 0 {
		fmt.Printf("  common environment:")
		for _, typ := range top {
			fmt.Printf(" %s (%s)", typ, humanize.Comma(int64(s.EnvironmentByType[typ])))
		}
		fmt.Println()
	}
	if c := doc.Metadata.Compaction; c != nil {
		fmt.Printf("  compaction: %s trees -> %s records (%.2fx)\n",
			humanize.Comma(int64(c.InputTrees)),
			humanize.Comma(int64(c.OutputRecords)),
			c.Ratio)
	}
	if !report.Valid {
		fmt.Printf("  WARNING: generation report invalid (%s)\n", report.Summary)
	}
}

func printThemes() {
	fmt.Printf("%-15s %-9s %-8s %-6s %-7s %s\n",
		"Theme", "Villages", "Towers", "Ruins", "Special", "Description")
	for _, name := range theme.Names() {
		t, err := theme.Get(name)
		if err != nil {
			continue
		}
		f := t.Features
		fmt.Printf("%-15s %-9d %-8d %-6d %-7d %s\n",
			t.Name, f.VillageCount, f.TowerCount, f.RuinsCount, f.SpecialFeatureCount, t.Description)
	}
}
