package api

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/UnknownOlympus/cellsim/internal/models"
)

// Accepted transmit power range in dBm.
const (
	MinTransmitPowerDbm = -50.0
	MaxTransmitPowerDbm = 100.0
)

var errValidation = errors.New("invalid request")

type simulateRequest struct {
	Lat         *float64 `json:"lat"`
	Lon         *float64 `json:"lon"`
	PotenciaDbm *float64 `json:"potencia_dbm"`
	Seed        *uint64  `json:"seed,omitempty"`
}

func (r simulateRequest) toModel() (models.SimulationRequest, error) {
	switch {
	case r.Lat == nil:
		return models.SimulationRequest{}, fmt.Errorf("%w: lat is required", errValidation)
	case r.Lon == nil:
		return models.SimulationRequest{}, fmt.Errorf("%w: lon is required", errValidation)
	case r.PotenciaDbm == nil:
		return models.SimulationRequest{}, fmt.Errorf("%w: potencia_dbm is required", errValidation)
	}

	tower, err := validateCoordinates(*r.Lat, *r.Lon)
	if err != nil {
		return models.SimulationRequest{}, err
	}
	if err = validatePower(*r.PotenciaDbm); err != nil {
		return models.SimulationRequest{}, err
	}

	return models.SimulationRequest{
		Tower:            tower,
		TransmitPowerDbm: *r.PotenciaDbm,
		Seed:             r.Seed,
	}, nil
}

type addressRequest struct {
	Address     string   `json:"address"`
	PotenciaDbm *float64 `json:"potencia_dbm"`
	Seed        *uint64  `json:"seed,omitempty"`
}

func (r addressRequest) validate() error {
	if strings.TrimSpace(r.Address) == "" {
		return fmt.Errorf("%w: address is required", errValidation)
	}
	if r.PotenciaDbm == nil {
		return fmt.Errorf("%w: potencia_dbm is required", errValidation)
	}
	return validatePower(*r.PotenciaDbm)
}

type siteSimulateRequest struct {
	PotenciaDbm *float64 `json:"potencia_dbm,omitempty"`
	Seed        *uint64  `json:"seed,omitempty"`
}

func (r siteSimulateRequest) validate() error {
	if r.PotenciaDbm == nil {
		return nil
	}
	return validatePower(*r.PotenciaDbm)
}

type siteRequest struct {
	Name        string   `json:"name"`
	Address     string   `json:"address,omitempty"`
	Lat         *float64 `json:"lat"`
	Lon         *float64 `json:"lon"`
	PotenciaDbm *float64 `json:"potencia_dbm"`
}

func (r siteRequest) toModel(siteID int) (models.Site, error) {
	switch {
	case strings.TrimSpace(r.Name) == "":
		return models.Site{}, fmt.Errorf("%w: name is required", errValidation)
	case r.Lat == nil:
		return models.Site{}, fmt.Errorf("%w: lat is required", errValidation)
	case r.Lon == nil:
		return models.Site{}, fmt.Errorf("%w: lon is required", errValidation)
	case r.PotenciaDbm == nil:
		return models.Site{}, fmt.Errorf("%w: potencia_dbm is required", errValidation)
	}

	location, err := validateCoordinates(*r.Lat, *r.Lon)
	if err != nil {
		return models.Site{}, err
	}
	if err = validatePower(*r.PotenciaDbm); err != nil {
		return models.Site{}, err
	}

	return models.Site{
		ID:               siteID,
		Name:             strings.TrimSpace(r.Name),
		Address:          strings.TrimSpace(r.Address),
		Location:         location,
		TransmitPowerDbm: *r.PotenciaDbm,
	}, nil
}

func validateCoordinates(lat, lon float64) (models.Coordinates, error) {
	if math.IsNaN(lat) || lat < -90 || lat > 90 {
		return models.Coordinates{}, fmt.Errorf("%w: lat must be within [-90, 90]", errValidation)
	}
	if math.IsNaN(lon) || lon < -180 || lon > 180 {
		return models.Coordinates{}, fmt.Errorf("%w: lon must be within [-180, 180]", errValidation)
	}
	return models.Coordinates{Latitude: lat, Longitude: lon}, nil
}

func validatePower(power float64) error {
	if math.IsNaN(power) || math.IsInf(power, 0) {
		return fmt.Errorf("%w: potencia_dbm must be a finite number", errValidation)
	}
	if power < MinTransmitPowerDbm || power > MaxTransmitPowerDbm {
		return fmt.Errorf("%w: potencia_dbm must be within [%g, %g]",
			errValidation, MinTransmitPowerDbm, MaxTransmitPowerDbm)
	}
	return nil
}

type deviceResponse struct {
	Pos        [2]float64 `json:"pos"`
	Type       string     `json:"type"`
	RSSI       float64    `json:"rssi"`
	Downlink   float64    `json:"downlink"`
	Uplink     float64    `json:"uplink"`
	Satisfacao float64    `json:"satisfacao"`
	Distancia  float64    `json:"distancia"`
}

type summaryResponse struct {
	Type             string  `json:"type"`
	Devices          int     `json:"devices"`
	Connected        int     `json:"connected"`
	MeanDownlink     float64 `json:"mean_downlink"`
	MeanUplink       float64 `json:"mean_uplink"`
	MeanSatisfaction float64 `json:"mean_satisfaction"`
}

type simulationResponse struct {
	RunID       string            `json:"run_id"`
	Seed        uint64            `json:"seed"`
	Tower       [2]float64        `json:"tower"`
	PotenciaDbm float64           `json:"potencia_dbm"`
	Devices     []deviceResponse  `json:"devices"`
	Summary     []summaryResponse `json:"summary"`
}

func newSimulationResponse(report *models.SimulationReport) simulationResponse {
	resp := simulationResponse{
		RunID:       report.RunID.String(),
		Seed:        report.Seed,
		Tower:       report.Tower.Pair(),
		PotenciaDbm: report.TransmitPowerDbm,
		Devices:     make([]deviceResponse, 0, len(report.Devices)),
		Summary:     make([]summaryResponse, 0, len(report.Summary)),
	}

	for _, d := range report.Devices {
		resp.Devices = append(resp.Devices, deviceResponse{
			Pos:        d.Position.Pair(),
			Type:       string(d.Class),
			RSSI:       d.RSSIDbm,
			Downlink:   d.DownlinkMbps,
			Uplink:     d.UplinkMbps,
			Satisfacao: d.Satisfaction,
			Distancia:  d.DistanceMeters,
		})
	}

	for _, s := range report.Summary {
		resp.Summary = append(resp.Summary, summaryResponse{
			Type:             string(s.Class),
			Devices:          s.Devices,
			Connected:        s.Connected,
			MeanDownlink:     s.MeanDownlinkMbps,
			MeanUplink:       s.MeanUplinkMbps,
			MeanSatisfaction: s.MeanSatisfaction,
		})
	}

	return resp
}

type siteResponse struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Address     string  `json:"address,omitempty"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	PotenciaDbm float64 `json:"potencia_dbm"`
}

func newSiteResponse(site models.Site) siteResponse {
	return siteResponse{
		ID:          site.ID,
		Name:        site.Name,
		Address:     site.Address,
		Lat:         site.Location.Latitude,
		Lon:         site.Location.Longitude,
		PotenciaDbm: site.TransmitPowerDbm,
	}
}
