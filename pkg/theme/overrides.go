package theme

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FeatureOverrides is a partial override of a theme's Features. Nil fields
// keep the catalog value. Field names mirror Features so a YAML overrides
// file reads the same as the catalog data.
type FeatureOverrides struct {
	VillageCount        *int     `yaml:"village_count"`
	TowerCount          *int     `yaml:"tower_count"`
	RuinsCount          *int     `yaml:"ruins_count"`
	DarkSanctumCount    *int     `yaml:"dark_sanctum_count"`
	BridgeCount         *int     `yaml:"bridge_count"`
	WatchtowerCount     *int     `yaml:"watchtower_count"`
	ShrineCount         *int     `yaml:"shrine_count"`
	MountainRangeCount  *int     `yaml:"mountain_range_count"`
	WaterFeatureCount   *int     `yaml:"water_feature_count"`
	LavaFeatureCount    *int     `yaml:"lava_feature_count"`
	SpecialFeatureCount *int     `yaml:"special_feature_count"`
	TreeDensity         *float64 `yaml:"tree_density"`
	RockDensity         *float64 `yaml:"rock_density"`
	BushDensity         *float64 `yaml:"bush_density"`
	FlowerDensity       *float64 `yaml:"flower_density"`
}

// RunOverrides is the optional per-run YAML config consumed by the CLI.
type RunOverrides struct {
	Seed     *int64            `yaml:"seed"`
	MapSize  *float64          `yaml:"map_size"`
	Filename string            `yaml:"filename"`
	Features *FeatureOverrides `yaml:"features"`
}

// LoadOverrides reads a run overrides file.
func LoadOverrides(path string) (*RunOverrides, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading overrides file: %w", err)
	}
	var o RunOverrides
	if err := yaml.Unmarshal(data, &o); err != nil {
		return nil, fmt.Errorf("parsing overrides YAML: %w", err)
	}
	return &o, nil
}

// Apply returns a copy of f with the non-nil overrides applied.
func (o *FeatureOverrides) Apply(f Features) Features {
	if o == nil {
		return f
	}
	if o.VillageCount != nil {
		f.VillageCount = *o.VillageCount
	}
	if o.TowerCount != nil {
		f.TowerCount = *o.TowerCount
	}
	if o.RuinsCount != nil {
		f.RuinsCount = *o.RuinsCount
	}
	if o.DarkSanctumCount != nil {
		f.DarkSanctumCount = *o.DarkSanctumCount
	}
	if o.BridgeCount != nil {
		f.BridgeCount = *o.BridgeCount
	}
	if o.WatchtowerCount != nil {
		f.WatchtowerCount = *o.WatchtowerCount
	}
	if o.ShrineCount != nil {
		f.ShrineCount = *o.ShrineCount
	}
	if o.MountainRangeCount != nil {
		f.MountainRangeCount = *o.MountainRangeCount
	}
	if o.WaterFeatureCount != nil {
		f.WaterFeatureCount = *o.WaterFeatureCount
	}
	if o.LavaFeatureCount != nil {
		f.LavaFeatureCount = *o.LavaFeatureCount
	}
	if o.SpecialFeatureCount != nil {
		f.SpecialFeatureCount = *o.SpecialFeatureCount
	}
	if o.TreeDensity != nil {
		f.TreeDensity = *o.TreeDensity
	}
	if o.RockDensity != nil {
		f.RockDensity = *o.RockDensity
	}
	if o.BushDensity != nil {
		f.BushDensity = *o.BushDensity
	}
	if o.FlowerDensity != nil {
		f.FlowerDensity = *o.FlowerDensity
	}
	return f
}
