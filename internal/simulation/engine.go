// Package simulation runs a single-cell coverage simulation: it places devices
// around the tower and evaluates the radio link of each one.
package simulation

import (
	"context"
	"math/rand/v2"
	"runtime"
	"sync"

	"github.com/UnknownOlympus/cellsim/internal/geo"
	"github.com/UnknownOlympus/cellsim/internal/models"
	"github.com/UnknownOlympus/cellsim/internal/population"
	"github.com/UnknownOlympus/cellsim/internal/propagation"
	"github.com/UnknownOlympus/cellsim/internal/qos"
)

// Engine wires the generator, the propagation model and the QoS evaluator
// around one immutable Environment.
type Engine struct {
	env        models.Environment
	generator  *population.Generator
	pathLoss   *propagation.Model
	evaluator  *qos.Evaluator
	numWorkers int
}

// NewEngine creates an Engine for env that evaluates devices on numWorkers
// goroutines. A non-positive numWorkers uses one worker per CPU.
func NewEngine(env models.Environment, numWorkers int) *Engine {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	return &Engine{
		env:        env,
		generator:  population.NewGenerator(env),
		pathLoss:   propagation.NewModel(env),
		evaluator:  qos.NewEvaluator(env),
		numWorkers: numWorkers,
	}
}

// Environment returns the parameters the engine was built with.
func (e *Engine) Environment() models.Environment {
	return e.env
}

// Run generates the device population around req.Tower using rng and returns one
// result per device, in generation order. rng is only read before evaluation
// starts, so results for a given seed do not depend on the worker count.
// The only error is the context's, when it is cancelled mid-run.
func (e *Engine) Run(ctx context.Context, req models.SimulationRequest, rng *rand.Rand) ([]models.DeviceResult, error) {
	devices := e.generator.Generate(req.Tower, rng)
	results := make([]models.DeviceResult, len(devices))

	jobs := make(chan int, len(devices))
	var wgr sync.WaitGroup

	workers := min(e.numWorkers, len(devices))
	for range workers {
		wgr.Add(1)
		go e.worker(ctx, &wgr, jobs, req, devices, results)
	}

	for idx := range devices {
		jobs <- idx
	}
	close(jobs)

	wgr.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return results, nil
}

// worker evaluates the devices whose indexes arrive on jobs. Each index is
// written by exactly one worker.
func (e *Engine) worker(
	ctx context.Context,
	wg *sync.WaitGroup,
	jobs <-chan int,
	req models.SimulationRequest,
	devices []models.Device,
	results []models.DeviceResult,
) {
	defer wg.Done()
	for idx := range jobs {
		if ctx.Err() != nil {
			continue
		}
		results[idx] = e.Evaluate(req, devices[idx])
	}
}

// Evaluate computes the link metrics of a single device for req.
func (e *Engine) Evaluate(req models.SimulationRequest, device models.Device) models.DeviceResult {
	distance := geo.DistanceMeters(req.Tower, device.Position)
	loss := e.pathLoss.PathLossDb(distance / 1000)
	rssi := req.TransmitPowerDbm - loss
	metrics := e.evaluator.Evaluate(rssi, device.Class)

	return models.DeviceResult{
		Position:       device.Position,
		Class:          device.Class,
		RSSIDbm:        rssi,
		SNRDb:          metrics.SNRDb,
		DownlinkMbps:   metrics.DownlinkMbps,
		UplinkMbps:     metrics.UplinkMbps,
		Satisfaction:   metrics.Satisfaction,
		DistanceMeters: distance,
	}
}
