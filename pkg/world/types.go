// Package world defines the generated world document: the single JSON
// artifact consumed by the rendering and game layers. Field names and nesting
// are a compatibility contract and must stay stable.
package world

import (
	"github.com/quiethollow/mapforge/pkg/geo"
	"github.com/quiethollow/mapforge/pkg/theme"
)

// ZoneType identifies the kind of zone.
type ZoneType string

const (
	ZoneBoundary  ZoneType = "boundary"
	ZonePrimary   ZoneType = "primary"
	ZoneSecondary ZoneType = "secondary"
	ZoneSubZone   ZoneType = "subzone"
)

// Zone is an advisory region used for coloring and biome lookup. Zones may
// overlap; there is no exclusivity invariant.
type Zone struct {
	ID     string       `json:"id"`
	Name   string       `json:"name"`
	Type   ZoneType     `json:"type"`
	Center geo.Point3   `json:"center"`
	Radius float64      `json:"radius,omitempty"`
	Points []geo.Point3 `json:"points,omitempty"` // ordered boundary for polygonal zones
	Color  string       `json:"color"`
}

// PathPattern tags how a path was generated.
type PathPattern string

const (
	PatternStraight PathPattern = "straight"
	PatternCurved   PathPattern = "curved"
	PatternCircular PathPattern = "circular"
	PatternNatural  PathPattern = "natural"
)

// Path is a width-bearing polyline. Circular paths are closed (the first
// point repeats at the end); all others are open. Every path has at least two
// points and positive width.
type Path struct {
	ID      string       `json:"id"`
	Points  []geo.Point3 `json:"points"`
	Width   float64      `json:"width"`
	Pattern PathPattern  `json:"pattern"`
	Type    string       `json:"type"`
	// Connects records the structure indices this path links, if any. The
	// pair is positional, not a pointer; it is bounds-checked on load.
	Connects *[2]int `json:"connects,omitempty"`
}

// StructureType identifies a structure variant.
type StructureType string

const (
	StructureVillage     StructureType = "village"
	StructureTower       StructureType = "tower"
	StructureRuins       StructureType = "ruins"
	StructureBridge      StructureType = "bridge"
	StructureDarkSanctum StructureType = "dark_sanctum"
	StructureWatchtower  StructureType = "watchtower"
	StructureShrine      StructureType = "shrine"
)

// Structure is a placed world feature. Villages carry a nested composite.
type Structure struct {
	ID       string        `json:"id"`
	Type     StructureType `json:"type"`
	Position geo.Point3    `json:"position"`
	Rotation float64       `json:"rotation,omitempty"`
	Size     float64       `json:"size,omitempty"`
	Height   float64       `json:"height,omitempty"`
	Radius   float64       `json:"radius,omitempty"`
	Theme    string        `json:"theme"`
	Village  *Village      `json:"village,omitempty"`
}

// VillageStyle identifies the layout topology, chosen once at creation.
type VillageStyle string

const (
	StyleCircular  VillageStyle = "circular"
	StyleGrid      VillageStyle = "grid"
	StyleRiverside VillageStyle = "riverside"
	StyleTerraced  VillageStyle = "terraced"
)

// Village is the composite payload of a village structure.
type Village struct {
	Style       VillageStyle `json:"style"`
	Radius      float64      `json:"radius"`
	Buildings   []Building   `json:"buildings"`
	Decorations []Decoration `json:"decorations,omitempty"`
	Paths       []Path       `json:"paths,omitempty"`
	// Connections are building index pairs linked by secondary paths.
	Connections [][2]int `json:"connections,omitempty"`
}

// Building is a single village building.
type Building struct {
	ID       string     `json:"id"`
	Type     string     `json:"type"`
	Position geo.Point3 `json:"position"`
	Rotation float64    `json:"rotation"`
	Width    float64    `json:"width"`
	Depth    float64    `json:"depth"`
	Height   float64    `json:"height"`
	StyleIdx int        `json:"styleIndex"`
	Ring     int        `json:"ringIndex"`
}

// Decoration is a small placed prop inside a village.
type Decoration struct {
	Type     string     `json:"type"`
	Position geo.Point3 `json:"position"`
	Size     float64    `json:"size"`
	Rotation float64    `json:"rotation,omitempty"`
}

// EnvObject is a scattered environment object. The tree_cluster type is a
// derived aggregate produced only by the compaction pass.
type EnvObject struct {
	Type       string     `json:"type"`
	Position   geo.Point3 `json:"position"`
	Size       float64    `json:"size"`
	Variant    string     `json:"variant,omitempty"`
	Cluster    string     `json:"cluster,omitempty"`
	Rotation   float64    `json:"rotation,omitempty"`
	Glowing    bool       `json:"glowing,omitempty"`
	Background bool       `json:"background,omitempty"`
	Scattered  bool       `json:"scattered,omitempty"`

	// Aggregate fields, set only on tree_cluster records.
	TreeCount int          `json:"treeCount,omitempty"`
	AvgSize   float64      `json:"avgSize,omitempty"`
	Radius    float64      `json:"radius,omitempty"`
	Members   []geo.Point3 `json:"members,omitempty"`
}

// EnvTreeCluster is the type tag of compacted tree batches.
const EnvTreeCluster = "tree_cluster"

// CompactionStats records the outcome of the tree batching pass.
type CompactionStats struct {
	InputTrees    int     `json:"inputTrees"`
	OutputRecords int     `json:"outputRecords"`
	Ratio         float64 `json:"ratio"`
}

// Metadata holds document-level information.
type Metadata struct {
	ID          string           `json:"id"`
	Seed        int64            `json:"seed"`
	Size        float64          `json:"size"`
	GeneratedAt string           `json:"generatedAt"`
	Compaction  *CompactionStats `json:"compaction,omitempty"`
}

// Document is the root output of a generation run. It is owned exclusively by
// one run and never mutated after export except by the compaction pass.
type Document struct {
	Theme       *theme.Theme `json:"theme"`
	Zones       []Zone       `json:"zones"`
	Structures  []Structure  `json:"structures"`
	Paths       []Path       `json:"paths"`
	Environment []EnvObject  `json:"environment"`
	Metadata    Metadata     `json:"metadata"`
}
