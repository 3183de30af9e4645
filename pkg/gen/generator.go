// Package gen orchestrates a full world generation run: seeded RNG, theme
// lookup, zone layout, path network, structure placement, environment scatter,
// the connectivity pass and final tree compaction, strictly in that order.
// Every stage draws from the single random stream, so a seed fixes the whole
// document.
package gen

import (
	"fmt"

	"github.com/quiethollow/mapforge/pkg/compact"
	"github.com/quiethollow/mapforge/pkg/layout"
	"github.com/quiethollow/mapforge/pkg/rng"
	"github.com/quiethollow/mapforge/pkg/scatter"
	"github.com/quiethollow/mapforge/pkg/spatial"
	"github.com/quiethollow/mapforge/pkg/terrain"
	"github.com/quiethollow/mapforge/pkg/theme"
	"github.com/quiethollow/mapforge/pkg/validation"
	"github.com/quiethollow/mapforge/pkg/world"
)

// DefaultMapSize is the side length of a generated map when no override is
// given. Feature counts are calibrated against this size.
const DefaultMapSize = 400.0

// Options configures one generation run. Zero values select defaults; a zero
// seed is a valid seed, not a request for randomness.
type Options struct {
	Seed     int64
	MapSize  float64
	Features *theme.FeatureOverrides
}

// Generate runs the full pipeline for the named theme and returns the
// finished document together with the merged stage report. An unknown theme
// name fails before any stage runs; no partial document is produced.
func Generate(themeName string, opts Options) (*world.Document, *validation.Report, error) {
	base, err := theme.Get(themeName)
	if err != nil {
		return nil, nil, err
	}
	// Overrides produce a derived theme value; the catalog entry is never
	// patched in place.
	th := *base
	th.Features = opts.Features.Apply(base.Features)

	size := opts.MapSize
	if size <= 0 {
		size = DefaultMapSize
	}

	stream := rng.New(opts.Seed)
	field := terrain.New(opts.Seed)
	doc := world.New(&th, opts.Seed, size)

	report := validation.NewReport()
	report.AddInfo(validation.Result{
		Level:   validation.LevelConfig,
		Message: fmt.Sprintf("generating %s world, seed %d, size %g", th.Name, opts.Seed, size),
	})

	report.Merge(layout.BuildZones(doc, &th, stream))
	report.Merge(layout.BuildPaths(doc, stream, field))
	report.Merge(layout.PlaceStructures(doc, &th, stream, field))

	// The checker indexes the layout as it stands here. Connector paths
	// added by the connectivity pass clear their own corridors instead.
	checker := spatial.NewChecker(doc)
	report.Merge(scatter.Background(doc, &th, checker, stream, field))
	report.Merge(scatter.PathsideTrees(doc, &th, checker, stream, field))
	report.Merge(scatter.Clusters(doc, &th, checker, stream, field))
	report.Merge(scatter.SpecialFeatures(doc, &th, checker, stream, field))
	report.Merge(scatter.Fill(doc, &th, checker, stream, field))

	report.Merge(layout.ConnectStructures(doc, stream, field))
	report.Merge(compact.BatchTrees(doc))

	return doc, report, nil
}
