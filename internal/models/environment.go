package models

import (
	"errors"
	"fmt"
)

// Environment validation errors.
var (
	ErrNonPositiveRadio   = errors.New("radio frequency and bandwidth must be positive")
	ErrNonPositiveHeight  = errors.New("antenna heights must be positive")
	ErrNonPositiveDevices = errors.New("device count must be positive")
	ErrInvalidRing        = errors.New("device ring radii must satisfy 0 <= min <= max")
)

// Environment groups the radio and deployment parameters shared by the
// propagation model, the QoS evaluator and the device generator.
// It is built once at start-up and never mutated.
type Environment struct {
	FrequencyMHz      float64 // Carrier frequency.
	TowerHeightM      float64 // Base station antenna height.
	UserHeightM       float64 // Device antenna height.
	BandwidthHz       float64 // Channel bandwidth.
	NoiseDensityDbmHz float64 // Thermal noise power spectral density.
	DeviceCount       int     // Devices generated per run.
	RadiusMinM        float64 // Inner radius of the device ring.
	RadiusMaxM        float64 // Outer radius of the device ring.
	ClassDistribution Distribution
}

// DefaultEnvironment returns the reference 5G C-band urban deployment.
func DefaultEnvironment() Environment {
	const (
		frequencyMHz = 3500.0
		towerHeightM = 20.0
		userHeightM  = 1.5
		bandwidthHz  = 20e6
		noiseDensity = -174.0
		deviceCount  = 500
		radiusMinM   = 50.0
		radiusMaxM   = 1000.0
	)

	return Environment{
		FrequencyMHz:      frequencyMHz,
		TowerHeightM:      towerHeightM,
		UserHeightM:       userHeightM,
		BandwidthHz:       bandwidthHz,
		NoiseDensityDbmHz: noiseDensity,
		DeviceCount:       deviceCount,
		RadiusMinM:        radiusMinM,
		RadiusMaxM:        radiusMaxM,
		ClassDistribution: DefaultDistribution(),
	}
}

// Validate reports the first parameter the propagation model, the evaluator or
// the generator cannot work with.
func (e Environment) Validate() error {
	switch {
	case e.FrequencyMHz <= 0 || e.BandwidthHz <= 0:
		return ErrNonPositiveRadio
	case e.TowerHeightM <= 0 || e.UserHeightM <= 0:
		return ErrNonPositiveHeight
	case e.DeviceCount <= 0:
		return ErrNonPositiveDevices
	case e.RadiusMinM < 0 || e.RadiusMinM > e.RadiusMaxM:
		return ErrInvalidRing
	}

	if err := e.ClassDistribution.Validate(); err != nil {
		return fmt.Errorf("invalid class distribution: %w", err)
	}

	return nil
}
