// Package qos turns a received signal level into throughput and a satisfaction
// score, applying a distinct policy for each service class.
package qos

import (
	"math"

	"github.com/UnknownOlympus/cellsim/internal/models"
)

// Link describes the radio conditions a policy is evaluated against.
type Link struct {
	RSSIDbm      float64
	SNRDb        float64
	CapacityMbps float64
}

// Metrics is the outcome of evaluating a device link.
type Metrics struct {
	SNRDb        float64
	DownlinkMbps float64
	UplinkMbps   float64
	Satisfaction float64
}

// Policy maps link conditions to downlink throughput and satisfaction for one class.
type Policy interface {
	Downlink(link Link) float64
	Satisfaction(link Link, downlinkMbps float64) float64
}

// uplinkRatio is downlink/uplink for every class.
const uplinkRatio = 4

// Evaluator computes per-device QoS for a fixed channel.
type Evaluator struct {
	env      models.Environment
	noiseDbm float64
	policies map[models.ServiceClass]Policy
}

// NewEvaluator returns an Evaluator for the bandwidth and noise density of env.
func NewEvaluator(env models.Environment) *Evaluator {
	return &Evaluator{
		env:      env,
		noiseDbm: env.NoiseDensityDbmHz + 10*math.Log10(env.BandwidthHz),
		policies: map[models.ServiceClass]Policy{
			models.EnhancedBroadband:       broadbandPolicy{},
			models.MassiveIoT:              massiveIoTPolicy{},
			models.UltraReliableLowLatency: lowLatencyPolicy{},
		},
	}
}

// NoiseDbm returns the total thermal noise power across the channel.
func (e *Evaluator) NoiseDbm() float64 {
	return e.noiseDbm
}

// CapacityMbps returns the Shannon-Hartley capacity of the channel at snrDb.
func (e *Evaluator) CapacityMbps(snrDb float64) float64 {
	return e.env.BandwidthHz * math.Log2(1+math.Pow(10, snrDb/10)) / 1e6
}

// Evaluate computes throughput and satisfaction for a device of the given class
// receiving rssiDbm. A negative SNR means no usable link and yields zero metrics
// for every class.
func (e *Evaluator) Evaluate(rssiDbm float64, class models.ServiceClass) Metrics {
	snr := rssiDbm - e.noiseDbm
	if snr < 0 {
		return Metrics{SNRDb: snr}
	}

	policy, ok := e.policies[class]
	if !ok {
		return Metrics{SNRDb: snr}
	}

	link := Link{RSSIDbm: rssiDbm, SNRDb: snr, CapacityMbps: e.CapacityMbps(snr)}
	downlink := policy.Downlink(link)

	return Metrics{
		SNRDb:        snr,
		DownlinkMbps: downlink,
		UplinkMbps:   downlink / uplinkRatio,
		Satisfaction: policy.Satisfaction(link, downlink),
	}
}
