// Package population synthesizes the client devices scattered around a tower.
package population

import (
	"math"
	"math/rand/v2"

	"github.com/UnknownOlympus/cellsim/internal/geo"
	"github.com/UnknownOlympus/cellsim/internal/models"
)

// Generator places a fixed number of devices in an annulus around a center point.
type Generator struct {
	Count        int                 // Count is the exact number of devices produced per call.
	RadiusMinM   float64             // RadiusMinM is the inner radius of the ring.
	RadiusMaxM   float64             // RadiusMaxM is the outer radius of the ring.
	Distribution models.Distribution // Distribution decides class shares and grouping order.
}

// NewGenerator builds a Generator from the deployment parameters of env.
// env must pass Environment.Validate, otherwise the class quotas cannot add
// up to the device count.
func NewGenerator(env models.Environment) *Generator {
	return &Generator{
		Count:        env.DeviceCount,
		RadiusMinM:   env.RadiusMinM,
		RadiusMaxM:   env.RadiusMaxM,
		Distribution: env.ClassDistribution,
	}
}

// Quotas returns the number of devices per class, in distribution order.
// Each class starts at floor(Count*share); while the total falls short of Count
// a class chosen uniformly at random receives one more device.
func (g *Generator) Quotas(rng *rand.Rand) []int {
	quotas := make([]int, len(g.Distribution))
	if len(quotas) == 0 {
		return quotas
	}

	total := 0
	for i, share := range g.Distribution {
		quotas[i] = int(math.Floor(float64(g.Count) * share.Fraction))
		total += quotas[i]
	}
	for total < g.Count {
		quotas[rng.IntN(len(quotas))]++
		total++
	}

	return quotas
}

// Generate returns exactly Count devices around center, grouped by class in
// distribution order. Distances are uniform in [RadiusMinM, RadiusMaxM] and
// bearings uniform in [0, 360).
func (g *Generator) Generate(center models.Coordinates, rng *rand.Rand) []models.Device {
	quotas := g.Quotas(rng)
	devices := make([]models.Device, 0, g.Count)

	for i, share := range g.Distribution {
		for range quotas[i] {
			distance := g.RadiusMinM + (g.RadiusMaxM-g.RadiusMinM)*rng.Float64()
			bearing := 360 * rng.Float64()
			devices = append(devices, models.Device{
				Position: geo.DestinationPoint(center, distance, bearing),
				Class:    share.Class,
			})
		}
	}

	return devices
}
