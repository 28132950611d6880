package models

import "github.com/google/uuid"

// SimulationRequest describes one simulation run.
type SimulationRequest struct {
	Tower            Coordinates
	TransmitPowerDbm float64
	Seed             *uint64 // Seed makes the run reproducible when set.
}

// ClassSummary aggregates the results of one service class.
type ClassSummary struct {
	Class            ServiceClass
	Devices          int
	Connected        int
	MeanDownlinkMbps float64
	MeanUplinkMbps   float64
	MeanSatisfaction float64
}

// SimulationReport is the outcome of a simulation run.
type SimulationReport struct {
	RunID            uuid.UUID
	Tower            Coordinates
	TransmitPowerDbm float64
	Seed             uint64
	Devices          []DeviceResult
	Summary          []ClassSummary
}
