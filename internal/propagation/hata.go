// Package propagation estimates the path loss between the tower and a device.
package propagation

import (
	"math"

	"github.com/UnknownOlympus/cellsim/internal/models"
)

// MinDistanceKm is the distance path loss is clamped to, keeping log10 finite.
const MinDistanceKm = 0.001

// Model is the Okumura-Hata urban model with the large-city mobile antenna
// correction. Small and medium city variants are not supported.
type Model struct {
	env models.Environment
}

// NewModel returns a Model bound to the frequency and antenna heights of env.
func NewModel(env models.Environment) *Model {
	return &Model{env: env}
}

// PathLossDb returns the signal attenuation in dB over distanceKm.
func (m *Model) PathLossDb(distanceKm float64) float64 {
	if distanceKm < MinDistanceKm || math.IsNaN(distanceKm) {
		distanceKm = MinDistanceKm
	}

	logF := math.Log10(m.env.FrequencyMHz)
	logHb := math.Log10(m.env.TowerHeightM)

	return 69.55 + 26.16*logF - 13.82*logHb - m.MobileCorrectionDb() + m.SlopeDbPerDecade()*math.Log10(distanceKm)
}

// MobileCorrectionDb is the large-city correction a(h_m) for the device antenna height.
func (m *Model) MobileCorrectionDb() float64 {
	logF := math.Log10(m.env.FrequencyMHz)
	return (1.1*logF-0.7)*m.env.UserHeightM - (1.56*logF - 0.8)
}

// SlopeDbPerDecade is the loss added each time the distance grows tenfold.
func (m *Model) SlopeDbPerDecade() float64 {
	return 44.9 - 6.55*math.Log10(m.env.TowerHeightM)
}
