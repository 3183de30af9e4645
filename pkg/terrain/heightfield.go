// Package terrain provides the deterministic elevation field placed objects
// sit on. Elevation is cosmetic: it never affects planar placement decisions,
// only the Y coordinate of emitted entities, so the same seed produces the
// same world with or without it being rendered.
package terrain

import (
	opensimplex "github.com/ojrac/opensimplex-go"
)

// HeightField samples layered simplex noise seeded from the run seed.
type HeightField struct {
	base   opensimplex.Noise
	detail opensimplex.Noise
}

const (
	baseFrequency   = 0.004
	detailFrequency = 0.02
	baseAmplitude   = 9.0
	detailAmplitude = 2.0
)

// New creates a heightfield for the given seed.
func New(seed int64) *HeightField {
	return &HeightField{
		base:   opensimplex.NewNormalized(seed),
		detail: opensimplex.NewNormalized(seed + 1),
	}
}

// At returns the ground elevation at (x, z).
func (h *HeightField) At(x, z float64) float64 {
	e := h.base.Eval2(x*baseFrequency, z*baseFrequency) * baseAmplitude
	e += h.detail.Eval2(x*detailFrequency, z*detailFrequency) * detailAmplitude
	return e
}

// Relief returns the base-layer elevation normalized to [0, 1], used for
// high-ground placement bias and minimap shading.
func (h *HeightField) Relief(x, z float64) float64 {
	return h.base.Eval2(x*baseFrequency, z*baseFrequency)
}
