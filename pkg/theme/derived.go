package theme

import (
	"fmt"
	"math"
	"strconv"

	"github.com/quiethollow/mapforge/pkg/rng"
)

// Randomized builds a derived theme from base with a palette re-keyed off a
// random base hue. The result has the same field shape as a catalog theme so
// downstream stages need no special-casing. Draws from the stream, so the
// derived palette is reproducible per seed.
func Randomized(base *Theme, stream *rng.Stream) *Theme {
	hue := stream.Float() * 360

	derived := &Theme{
		Name:        base.Name + "_VARIANT",
		Description: base.Description,
		PrimaryZone: base.PrimaryZone,
		Palette:     make(map[string]string, len(base.Palette)),
		Features:    base.Features,
	}

	// Spread the palette roles around the base hue so related roles stay
	// visually coherent.
	offsets := map[string]float64{
		RolePrimary:   0,
		RoleBoundary:  -20,
		RoleSecondary: 15,
		RoleSubZone:   30,
		RolePath:      60,
		RoleWater:     180,
		RoleAccent:    120,
	}
	for role := range base.Palette {
		offset := offsets[role]
		sat := 0.35 + stream.Float()*0.3
		light := 0.3 + stream.Float()*0.3
		derived.Palette[role] = hslToHex(math.Mod(hue+offset+360, 360), sat, light)
	}
	return derived
}

// Mix blends two themes by ratio (0 = all a, 1 = all b). Palettes are blended
// channel-wise; features are linearly interpolated with counts rounded.
func Mix(a, b *Theme, ratio float64) *Theme {
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}

	mixed := &Theme{
		Name:        fmt.Sprintf("%s_X_%s", a.Name, b.Name),
		Description: fmt.Sprintf("Blend of %s and %s", a.Name, b.Name),
		PrimaryZone: a.PrimaryZone,
		Palette:     make(map[string]string),
	}
	if ratio > 0.5 {
		mixed.PrimaryZone = b.PrimaryZone
	}

	for role := range a.Palette {
		ca := a.Color(role)
		cb := b.Color(role)
		mixed.Palette[role] = blendHex(ca, cb, ratio)
	}
	for role := range b.Palette {
		if _, ok := mixed.Palette[role]; !ok {
			mixed.Palette[role] = blendHex(a.Color(role), b.Color(role), ratio)
		}
	}

	fa, fb := a.Features, b.Features
	mixed.Features = Features{
		VillageCount:        mixInt(fa.VillageCount, fb.VillageCount, ratio),
		TowerCount:          mixInt(fa.TowerCount, fb.TowerCount, ratio),
		RuinsCount:          mixInt(fa.RuinsCount, fb.RuinsCount, ratio),
		DarkSanctumCount:    mixInt(fa.DarkSanctumCount, fb.DarkSanctumCount, ratio),
		BridgeCount:         mixInt(fa.BridgeCount, fb.BridgeCount, ratio),
		WatchtowerCount:     mixInt(fa.WatchtowerCount, fb.WatchtowerCount, ratio),
		ShrineCount:         mixInt(fa.ShrineCount, fb.ShrineCount, ratio),
		MountainRangeCount:  mixInt(fa.MountainRangeCount, fb.MountainRangeCount, ratio),
		WaterFeatureCount:   mixInt(fa.WaterFeatureCount, fb.WaterFeatureCount, ratio),
		LavaFeatureCount:    mixInt(fa.LavaFeatureCount, fb.LavaFeatureCount, ratio),
		SpecialFeatureCount: mixInt(fa.SpecialFeatureCount, fb.SpecialFeatureCount, ratio),
		TreeDensity:         mixFloat(fa.TreeDensity, fb.TreeDensity, ratio),
		RockDensity:         mixFloat(fa.RockDensity, fb.RockDensity, ratio),
		BushDensity:         mixFloat(fa.BushDensity, fb.BushDensity, ratio),
		FlowerDensity:       mixFloat(fa.FlowerDensity, fb.FlowerDensity, ratio),
	}
	return mixed
}

func mixInt(a, b int, ratio float64) int {
	return int(math.Round(float64(a) + (float64(b)-float64(a))*ratio))
}

// mixFloat interpolates with exact endpoints: the lerp form accumulates
// rounding error at ratio 1 (1.6 + (0.6-1.6) != 0.6), and the endpoints are
// part of the Mix contract.
func mixFloat(a, b, ratio float64) float64 {
	switch {
	case ratio <= 0:
		return a
	case ratio >= 1:
		return b
	}
	return a + (b-a)*ratio
}

func blendHex(a, b string, ratio float64) string {
	ar, ag, ab := parseHex(a)
	br, bg, bb := parseHex(b)
	r := int(math.Round(float64(ar) + (float64(br)-float64(ar))*ratio))
	g := int(math.Round(float64(ag) + (float64(bg)-float64(ag))*ratio))
	bl := int(math.Round(float64(ab) + (float64(bb)-float64(ab))*ratio))
	return fmt.Sprintf("#%02x%02x%02x", r, g, bl)
}

func parseHex(c string) (r, g, b int) {
	if len(c) != 7 || c[0] != '#' {
		return 128, 128, 128
	}
	rv, err1 := strconv.ParseInt(c[1:3], 16, 0)
	gv, err2 := strconv.ParseInt(c[3:5], 16, 0)
	bv, err3 := strconv.ParseInt(c[5:7], 16, 0)
	if err1 != nil || err2 != nil || err3 != nil {
		return 128, 128, 128
	}
	return int(rv), int(gv), int(bv)
}

// hslToHex converts HSL (h in degrees, s and l in [0,1]) to a hex color.
func hslToHex(h, s, l float64) string {
	c := (1 - math.Abs(2*l-1)) * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := l - c/2

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	return fmt.Sprintf("#%02x%02x%02x",
		int(math.Round((r+m)*255)),
		int(math.Round((g+m)*255)),
		int(math.Round((b+m)*255)))
}
