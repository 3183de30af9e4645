// Package stats summarizes a generated world document into the count and
// density figures published in the map manifest and the CLI output.
package stats

import (
	"sort"

	"github.com/quiethollow/mapforge/pkg/geo"
	"github.com/quiethollow/mapforge/pkg/world"
)

// Summary is the per-map stats block written into the manifest.
type Summary struct {
	Zones       int `json:"zones"`
	Paths       int `json:"paths"`
	Structures  int `json:"structures"`
	Environment int `json:"environment"`

	StructuresByType  map[string]int `json:"structuresByType"`
	EnvironmentByType map[string]int `json:"environmentByType"`

	TotalPathLength float64 `json:"totalPathLength"`
	TotalBuildings  int     `json:"totalBuildings"`

	// ObjectDensity is environment objects per 1000 square units.
	ObjectDensity   float64 `json:"objectDensity"`
	CompactionRatio float64 `json:"compactionRatio,omitempty"`
}

// Collect computes the summary for a document.
func Collect(doc *world.Document) *Summary {
	s := &Summary{
		Zones:             len(doc.Zones),
		Paths:             len(doc.Paths),
		Structures:        len(doc.Structures),
		Environment:       len(doc.Environment),
		StructuresByType:  map[string]int{},
		EnvironmentByType: map[string]int{},
	}

	for _, st := range doc.Structures {
		s.StructuresByType[string(st.Type)]++
		if st.Village != nil {
			s.TotalBuildings += len(st.Village.Buildings)
		}
	}
	for _, o := range doc.Environment {
		s.EnvironmentByType[o.Type]++
	}
	for _, p := range doc.Paths {
		s.TotalPathLength += geo.PolylineLength2D(p.Points)
	}

	area := doc.Metadata.Size * doc.Metadata.Size
	if area > 0 {
		s.ObjectDensity = float64(s.Environment) / area * 1000
	}
	if c := doc.Metadata.Compaction; c != nil {
		s.CompactionRatio = c.Ratio
	}
	return s
}

// TopEnvironmentTypes returns the n most common environment types, most
// frequent first, ties broken by name.
func (s *Summary) TopEnvironmentTypes(n int) []string {
	types := make([]string, 0, len(s.EnvironmentByType))
	for t := range s.EnvironmentByType {
		types = append(types, t)
	}
	sort.Slice(types, func(a, b int) bool {
		ca, cb := s.EnvironmentByType[types[a]], s.EnvironmentByType[types[b]]
		if ca != cb {
			return ca > cb
		}
		return types[a] < types[b]
	})
	if n > len(types) {
		n = len(types)
	}
	return types[:n]
}
