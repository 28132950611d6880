package models

// Device is a synthetic client placed around the tower for one simulation run.
type Device struct {
	Position Coordinates
	Class    ServiceClass
}

// DeviceResult holds the link metrics computed for a single device.
type DeviceResult struct {
	Position       Coordinates
	Class          ServiceClass
	RSSIDbm        float64 // Received signal strength.
	SNRDb          float64 // Signal-to-noise ratio the metrics were derived from.
	DownlinkMbps   float64
	UplinkMbps     float64
	Satisfaction   float64 // Always within [0, 1].
	DistanceMeters float64 // Great-circle distance to the tower.
}

// Connected reports whether the device had a usable link (non-negative SNR).
func (r DeviceResult) Connected() bool {
	return r.SNRDb >= 0
}
