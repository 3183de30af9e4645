// Package theme holds the static catalog of world themes. Themes are pure
// data: a color palette plus feature counts and densities that parameterize
// every generation stage. The catalog is loaded once at init and never
// mutated; derived themes are constructed as new independent values.
package theme

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownTheme is returned when a requested theme name is not in the catalog.
var ErrUnknownTheme = errors.New("unknown theme")

// Features parameterizes structure counts and scatter densities for a theme.
// Counts are absolute per run at the reference map size; densities are
// dimensionless multipliers around 1.0.
type Features struct {
	VillageCount        int     `yaml:"village_count" json:"villageCount"`
	TowerCount          int     `yaml:"tower_count" json:"towerCount"`
	RuinsCount          int     `yaml:"ruins_count" json:"ruinsCount"`
	DarkSanctumCount    int     `yaml:"dark_sanctum_count" json:"darkSanctumCount"`
	BridgeCount         int     `yaml:"bridge_count" json:"bridgeCount"`
	WatchtowerCount     int     `yaml:"watchtower_count" json:"watchtowerCount"`
	ShrineCount         int     `yaml:"shrine_count" json:"shrineCount"`
	MountainRangeCount  int     `yaml:"mountain_range_count" json:"mountainRangeCount"`
	WaterFeatureCount   int     `yaml:"water_feature_count" json:"waterFeatureCount"`
	LavaFeatureCount    int     `yaml:"lava_feature_count" json:"lavaFeatureCount"`
	SpecialFeatureCount int     `yaml:"special_feature_count" json:"specialFeatureCount"`
	TreeDensity         float64 `yaml:"tree_density" json:"treeDensity"`
	RockDensity         float64 `yaml:"rock_density" json:"rockDensity"`
	BushDensity         float64 `yaml:"bush_density" json:"bushDensity"`
	FlowerDensity       float64 `yaml:"flower_density" json:"flowerDensity"`
}

// Theme is an immutable catalog entry.
type Theme struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	PrimaryZone string            `json:"primaryZone"`
	Palette     map[string]string `json:"colorPalette"`
	Features    Features          `json:"features"`
}

// Palette roles used by the generator. A theme palette may define any subset;
// resolution falls back through genericColors and then defaultColor.
const (
	RolePrimary   = "primary"
	RoleBoundary  = "boundary"
	RoleSecondary = "secondary"
	RoleSubZone   = "subzone"
	RolePath      = "path"
	RoleWater     = "water"
	RoleAccent    = "accent"
)

// genericColors is the fallback table shared by all themes.
var genericColors = map[string]string{
	RolePrimary:   "#4a7a3a",
	RoleBoundary:  "#3a3a3a",
	RoleSecondary: "#5d8a4a",
	RoleSubZone:   "#6b9a58",
	RolePath:      "#8a7a5a",
	RoleWater:     "#3a6a9a",
	RoleAccent:    "#c9a227",
}

const defaultColor = "#808080"

// Color resolves a palette role for the theme: theme palette entry, then the
// generic table, then a default gray. The chain order is part of the visual
// identity contract and must not change.
func (t *Theme) Color(role string) string {
	if c, ok := t.Palette[role]; ok {
		return c
	}
	if c, ok := genericColors[role]; ok {
		return c
	}
	return defaultColor
}

// catalog maps normalized theme names to their definitions.
var catalog = map[string]*Theme{}

func register(t *Theme) {
	catalog[normalize(t.Name)] = t
}

func normalize(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

// Get returns the theme for the given name (case-insensitive).
func Get(name string) (*Theme, error) {
	t, ok := catalog[normalize(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTheme, name)
	}
	return t, nil
}

// Names returns all registered theme names in sorted order.
func Names() []string {
	names := make([]string, 0, len(catalog))
	for _, t := range catalog {
		names = append(names, t.Name)
	}
	sort.Strings(names)
	return names
}

func init() {
	register(&Theme{
		Name:        "DARK_FOREST",
		Description: "Dense ancient woodland broken by overgrown ruins and hidden sanctums",
		PrimaryZone: "forest",
		Palette: map[string]string{
			RolePrimary:   "#1e3a1e",
			RoleBoundary:  "#14281a",
			RoleSecondary: "#2d4a2d",
			RoleSubZone:   "#3a5a33",
			RolePath:      "#5a4a3a",
			RoleWater:     "#1f3f52",
			RoleAccent:    "#7a9a4a",
		},
		Features: Features{
			VillageCount:        3,
			TowerCount:          4,
			RuinsCount:          5,
			DarkSanctumCount:    2,
			BridgeCount:         3,
			WatchtowerCount:     3,
			ShrineCount:         2,
			MountainRangeCount:  2,
			WaterFeatureCount:   3,
			LavaFeatureCount:    0,
			SpecialFeatureCount: 8,
			TreeDensity:         1.6,
			RockDensity:         0.8,
			BushDensity:         1.2,
			FlowerDensity:       0.5,
		},
	})

	register(&Theme{
		Name:        "EMBER_WASTES",
		Description: "Scorched badlands veined with lava flows and blackened watchtowers",
		PrimaryZone: "volcanic",
		Palette: map[string]string{
			RolePrimary:   "#4a2a1a",
			RoleBoundary:  "#2a1410",
			RoleSecondary: "#5d3322",
			RoleSubZone:   "#6e3d24",
			RolePath:      "#4a4038",
			RoleWater:     "#7a3010",
			RoleAccent:    "#e06020",
		},
		Features: Features{
			VillageCount:        2,
			TowerCount:          5,
			RuinsCount:          6,
			DarkSanctumCount:    3,
			BridgeCount:         2,
			WatchtowerCount:     4,
			ShrineCount:         1,
			MountainRangeCount:  3,
			WaterFeatureCount:   0,
			LavaFeatureCount:    4,
			SpecialFeatureCount: 7,
			TreeDensity:         0.3,
			RockDensity:         1.8,
			BushDensity:         0.4,
			FlowerDensity:       0.1,
		},
	})

	register(&Theme{
		Name:        "FROZEN_REACH",
		Description: "Windswept tundra of ice sheets, frozen lakes and lonely shrines",
		PrimaryZone: "tundra",
		Palette: map[string]string{
			RolePrimary:   "#c8d8e8",
			RoleBoundary:  "#8fa8c0",
			RoleSecondary: "#b0c4d8",
			RoleSubZone:   "#d8e4ee",
			RolePath:      "#9aa8b8",
			RoleWater:     "#5a8ab0",
			RoleAccent:    "#70d0e0",
		},
		Features: Features{
			VillageCount:        2,
			TowerCount:          3,
			RuinsCount:          4,
			DarkSanctumCount:    1,
			BridgeCount:         4,
			WatchtowerCount:     2,
			ShrineCount:         3,
			MountainRangeCount:  4,
			WaterFeatureCount:   5,
			LavaFeatureCount:    0,
			SpecialFeatureCount: 6,
			TreeDensity:         0.6,
			RockDensity:         1.4,
			BushDensity:         0.3,
			FlowerDensity:       0.2,
		},
	})

	register(&Theme{
		Name:        "VERDANT_VALE",
		Description: "Rolling green valley of busy villages, orchards and river crossings",
		PrimaryZone: "meadow",
		Palette: map[string]string{
			RolePrimary:   "#5a9a3a",
			RoleBoundary:  "#3d6e2a",
			RoleSecondary: "#6eaa4a",
			RoleSubZone:   "#84ba5a",
			RolePath:      "#a89868",
			RoleWater:     "#4a8ac0",
			RoleAccent:    "#e8d060",
		},
		Features: Features{
			VillageCount:        4,
			TowerCount:          2,
			RuinsCount:          2,
			DarkSanctumCount:    0,
			BridgeCount:         4,
			WatchtowerCount:     2,
			ShrineCount:         3,
			MountainRangeCount:  1,
			WaterFeatureCount:   4,
			LavaFeatureCount:    0,
			SpecialFeatureCount: 6,
			TreeDensity:         1.0,
			RockDensity:         0.5,
			BushDensity:         1.0,
			FlowerDensity:       1.8,
		},
	})

	register(&Theme{
		Name:        "SUNKEN_MARSH",
		Description: "Drowned lowland of stilt villages, reed beds and half-swallowed ruins",
		PrimaryZone: "swamp",
		Palette: map[string]string{
			RolePrimary:   "#3a4a2a",
			RoleBoundary:  "#2a3420",
			RoleSecondary: "#4a5a33",
			RoleSubZone:   "#55663a",
			RolePath:      "#6a5f48",
			RoleWater:     "#3a5a4a",
			RoleAccent:    "#8ab060",
		},
		Features: Features{
			VillageCount:        3,
			TowerCount:          2,
			RuinsCount:          5,
			DarkSanctumCount:    2,
			BridgeCount:         6,
			WatchtowerCount:     1,
			ShrineCount:         2,
			MountainRangeCount:  0,
			WaterFeatureCount:   6,
			LavaFeatureCount:    0,
			SpecialFeatureCount: 7,
			TreeDensity:         1.1,
			RockDensity:         0.4,
			BushDensity:         1.6,
			FlowerDensity:       0.7,
		},
	})

	register(&Theme{
		Name:        "GOLDEN_STEPPE",
		Description: "Endless dry grassland dotted with caravan villages and watchtowers",
		PrimaryZone: "steppe",
		Palette: map[string]string{
			RolePrimary:   "#c0a860",
			RoleBoundary:  "#8a7a44",
			RoleSecondary: "#d0b870",
			RoleSubZone:   "#dcc884",
			RolePath:      "#b09a6a",
			RoleWater:     "#5a9ab0",
			RoleAccent:    "#e8c030",
		},
		Features: Features{
			VillageCount:        4,
			TowerCount:          3,
			RuinsCount:          3,
			DarkSanctumCount:    1,
			BridgeCount:         2,
			WatchtowerCount:     5,
			ShrineCount:         2,
			MountainRangeCount:  2,
			WaterFeatureCount:   2,
			LavaFeatureCount:    0,
			SpecialFeatureCount: 5,
			TreeDensity:         0.4,
			RockDensity:         0.9,
			BushDensity:         0.8,
			FlowerDensity:       1.0,
		},
	})
}
