package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/quiethollow/mapforge/pkg/gen"
	"github.com/quiethollow/mapforge/pkg/minimap"
	"github.com/quiethollow/mapforge/pkg/stats"
	"github.com/quiethollow/mapforge/pkg/theme"
	"github.com/quiethollow/mapforge/pkg/validation"
	"github.com/quiethollow/mapforge/pkg/world"
)

type runOptions struct {
	seed          int64
	size          float64
	outDir        string
	filename      string
	overridesFile string
	minimap       bool
}

// manifestEntry is one map's record in the index.json manifest.
type manifestEntry struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Filename    string         `json:"filename"`
	Minimap     string         `json:"minimap,omitempty"`
	Stats       *stats.Summary `json:"stats"`
}

func runGenerate(themeName string, opts runOptions) error {
	entry, err := generateOne(themeName, opts)
	if err != nil {
		return err
	}
	return updateManifest(opts.outDir, []manifestEntry{*entry}, false)
}

func runGenerateAll(opts runOptions) error {
	var entries []manifestEntry
	for _, name := range theme.Names() {
		entry, err := generateOne(name, opts)
		if err != nil {
			return err
		}
		entries = append(entries, *entry)
	}
	return updateManifest(opts.outDir, entries, true)
}

// generateOne runs the pipeline for one theme and writes the document.
// Unknown themes fail before anything touches the filesystem.
func generateOne(themeName string, opts runOptions) (*manifestEntry, error) {
	genOpts := gen.Options{Seed: opts.seed, MapSize: opts.size}

	if opts.overridesFile != "" {
		ov, err := theme.LoadOverrides(opts.overridesFile)
		if err != nil {
			return nil, err
		}
		if ov.Seed != nil {
			genOpts.Seed = *ov.Seed
		}
		if ov.MapSize != nil {
			genOpts.MapSize = *ov.MapSize
		}
		if ov.Filename != "" && opts.filename == "" {
			opts.filename = ov.Filename
		}
		genOpts.Features = ov.Features
	}

	doc, report, err := gen.Generate(themeName, genOpts)
	if err != nil {
		if errors.Is(err, theme.ErrUnknownTheme) {
			fmt.Fprintf(os.Stderr, "unknown theme %q; valid themes: %s\n",
				themeName, strings.Join(theme.Names(), ", "))
		}
		return nil, err
	}

	if err := os.MkdirAll(opts.outDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	filename := opts.filename
	if filename == "" {
		filename = fmt.Sprintf("%s_%d.json", strings.ToLower(doc.Theme.Name), doc.Metadata.Seed)
	}
	if err := doc.Save(filepath.Join(opts.outDir, filename)); err != nil {
		return nil, err
	}

	entry := &manifestEntry{
		ID:          doc.Metadata.ID,
		Name:        doc.Theme.Name,
		Description: doc.Theme.Description,
		Filename:    filename,
		Stats:       stats.Collect(doc),
	}

	if opts.minimap {
		pngName := strings.TrimSuffix(filename, ".json") + ".png"
		g := minimap.Build(doc, 128)
		if err := minimap.RenderPNG(doc, g, filepath.Join(opts.outDir, pngName)); err != nil {
			return nil, err
		}
		entry.Minimap = pngName
	}

	printGenerated(doc, entry.Stats, report)
	return entry, nil
}

// updateManifest writes index.json. With replace set, the manifest is
// rewritten wholesale; otherwise new entries are merged over any existing
// ones with the same filename.
func updateManifest(outDir string, entries []manifestEntry, replace bool) error {
	path := filepath.Join(outDir, "index.json")

	if !replace {
		if data, err := os.ReadFile(path); err == nil {
			var existing []manifestEntry
			if err := json.Unmarshal(data, &existing); err == nil {
				byFile := make(map[string]bool, len(entries))
				for _, e := range entries {
					byFile[e.Filename] = true
				}
				for _, e := range existing {
					if !byFile[e.Filename] {
						entries = append(entries, e)
					}
				}
			}
		}
	}
	sort.Slice(entries, func(a, b int) bool { return entries[a].Filename < entries[b].Filename })

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}
	return nil
}

func runThemes() error {
	printThemes()
	return nil
}

func runValidate(mapFile string) error {
	doc, err := world.Load(mapFile)
	if err != nil {
		return err
	}
	report := validation.ValidateDocument(doc)
	printValidationReport(report)
	if !report.Valid {
		os.Exit(1)
	}
	return nil
}

func runMinimap(mapFile string, resolution int, out string) error {
	doc, err := world.Load(mapFile)
	if err != nil {
		return err
	}
	if out == "" {
		out = strings.TrimSuffix(mapFile, ".json") + ".png"
	}
	g := minimap.Build(doc, resolution)
	if err := minimap.RenderPNG(doc, g, out); err != nil {
		return err
	}
	fmt.Printf("Minimap written to %s (%dx%d)\n", out, g.Resolution, g.Resolution)
	return nil
}
