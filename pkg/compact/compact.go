// Package compact implements the tree batching pass that runs immediately
// before serialization. Dense tree point clouds are re-grouped into spatial
// batch records to bound output size.
package compact

import (
	"fmt"
	"math"
	"sort"

	"github.com/quiethollow/mapforge/pkg/geo"
	"github.com/quiethollow/mapforge/pkg/validation"
	"github.com/quiethollow/mapforge/pkg/world"
)

const (
	cellSize = 12.0
	// Cells with up to this many trees keep explicit member positions;
	// larger cells carry summary statistics only.
	maxExplicitMembers = 8
)

// BatchTrees partitions tree objects into a uniform grid and replaces every
// cell holding more than one tree with a single tree_cluster record. Singleton
// cells and non-tree objects pass through untouched. The pass runs once per
// document: a document already carrying compaction stats is returned
// unchanged, so re-running is a no-op.
func BatchTrees(doc *world.Document) *validation.Report {
	report := validation.NewReport()

	if doc.Metadata.Compaction != nil {
		report.AddInfo(validation.Result{
			Level:   validation.LevelOutput,
			Message: "document already compacted",
		})
		return report
	}

	cells := map[[2]int][]int{}
	inputTrees := 0
	for i, o := range doc.Environment {
		if o.Type != "tree" {
			continue
		}
		inputTrees++
		key := [2]int{
			int(math.Floor(o.Position.X / cellSize)),
			int(math.Floor(o.Position.Z / cellSize)),
		}
		cells[key] = append(cells[key], i)
	}

	if inputTrees == 0 {
		report.AddInfo(validation.Result{
			Level:   validation.LevelOutput,
			Message: "no trees to compact",
		})
		return report
	}

	// Deterministic cluster order regardless of map iteration.
	keys := make([][2]int, 0, len(cells))
	for k := range cells {
		if len(cells[k]) > 1 {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(a, b int) bool {
		if keys[a][0] != keys[b][0] {
			return keys[a][0] < keys[b][0]
		}
		return keys[a][1] < keys[b][1]
	})

	batched := make(map[int]bool)
	var clusters []world.EnvObject
	for _, k := range keys {
		idx := cells[k]
		clusters = append(clusters, buildCluster(doc, idx))
		for _, i := range idx {
			batched[i] = true
		}
	}

	kept := doc.Environment[:0]
	for i, o := range doc.Environment {
		if batched[i] {
			continue
		}
		kept = append(kept, o)
	}
	doc.Environment = append(kept, clusters...)

	singles := inputTrees
	for _, k := range keys {
		singles -= len(cells[k])
	}
	outputRecords := len(clusters) + singles
	doc.Metadata.Compaction = &world.CompactionStats{
		InputTrees:    inputTrees,
		OutputRecords: outputRecords,
		Ratio:         float64(inputTrees) / float64(outputRecords),
	}

	report.AddInfo(validation.Result{
		Level: validation.LevelOutput,
		Message: fmt.Sprintf("batched %d trees into %d clusters (%d singles kept, ratio %.2f)",
			inputTrees-singles, len(clusters), singles, doc.Metadata.Compaction.Ratio),
	})
	return report
}

// buildCluster aggregates the indexed trees into one tree_cluster record:
// centroid position, average size and bounding radius, with explicit member
// positions for small cells and summary stats only for large ones.
func buildCluster(doc *world.Document, idx []int) world.EnvObject {
	var centroid geo.Point3
	avgSize := 0.0
	for _, i := range idx {
		o := doc.Environment[i]
		centroid = centroid.Add(o.Position)
		avgSize += o.Size
	}
	n := float64(len(idx))
	centroid = centroid.Scale(1 / n)
	avgSize /= n

	radius := 0.0
	for _, i := range idx {
		if d := centroid.Dist2D(doc.Environment[i].Position); d > radius {
			radius = d
		}
	}

	c := world.EnvObject{
		Type:      world.EnvTreeCluster,
		Position:  centroid,
		Size:      avgSize,
		TreeCount: len(idx),
		AvgSize:   avgSize,
		Radius:    radius,
	}
	if len(idx) <= maxExplicitMembers {
		c.Members = make([]geo.Point3, 0, len(idx))
		for _, i := range idx {
			c.Members = append(c.Members, doc.Environment[i].Position)
		}
	}
	return c
}
