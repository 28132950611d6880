package qos

import "math"

// broadbandPolicy rewards raw throughput, saturating at 100 Mbps.
type broadbandPolicy struct{}

const (
	broadbandEfficiency = 0.7
	broadbandTargetMbps = 100.0
)

func (broadbandPolicy) Downlink(link Link) float64 {
	return broadbandEfficiency * link.CapacityMbps
}

func (broadbandPolicy) Satisfaction(_ Link, downlinkMbps float64) float64 {
	return math.Min(downlinkMbps/broadbandTargetMbps, 1.0)
}

// massiveIoTPolicy only needs a trickle of data but cares about coverage.
type massiveIoTPolicy struct{}

const massiveIoTCapMbps = 0.1

func (massiveIoTPolicy) Downlink(link Link) float64 {
	return math.Min(link.CapacityMbps, massiveIoTCapMbps)
}

func (massiveIoTPolicy) Satisfaction(link Link, _ float64) float64 {
	switch {
	case link.RSSIDbm > -120:
		return 1.0
	case link.RSSIDbm > -130:
		return 0.5
	default:
		return 0.0
	}
}

// lowLatencyPolicy trades throughput for reliability, graded on SNR.
type lowLatencyPolicy struct{}

const (
	lowLatencyShare   = 0.5
	lowLatencyCapMbps = 50.0
)

func (lowLatencyPolicy) Downlink(link Link) float64 {
	return math.Min(lowLatencyShare*link.CapacityMbps, lowLatencyCapMbps)
}

func (lowLatencyPolicy) Satisfaction(link Link, _ float64) float64 {
	switch {
	case link.SNRDb > 20:
		return 1.0
	case link.SNRDb > 10:
		return 0.7
	case link.SNRDb > 5:
		return 0.3
	default:
		return 0.0
	}
}
