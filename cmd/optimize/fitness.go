package main

import (
	"fmt"
	"math"
	"sync"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/drape/cloth"
	"github.com/pthm-cable/drape/collider"
	"github.com/pthm-cable/drape/config"
	"github.com/pthm-cable/drape/systems"
	"github.com/pthm-cable/drape/telemetry"
)

// Fitness term weights. Settle time is normalized by the run length and
// sag by the cloth height, so all terms are roughly in [0, 1].
const (
	weightSettle = 1.0
	weightSag    = 2.0
	weightTear   = 10.0

	unsettledPenalty = 1.0 // added when the cloth never settles
	statsWindowSec   = 0.5
)

// FitnessEvaluator runs headless simulations and computes fitness.
type FitnessEvaluator struct {
	params     *ParamVector
	maxTicks   int32
	seeds      []int64
	baseConfig *config.Config

	mu          sync.Mutex
	lastSummary runResult // averaged over seeds of the most recent Evaluate
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int32, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:     params,
		maxTicks:   maxTicks,
		seeds:      seeds,
		baseConfig: baseCfg,
	}
}

// LastSummary returns the seed-averaged result of the most recent evaluation.
func (fe *FitnessEvaluator) LastSummary() runResult {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastSummary
}

// runResult holds the results from a single simulation run.
type runResult struct {
	settleSec    float64 // sim seconds until the settled bookmark, or the run length
	settled      bool
	sag          float64 // mean drop below the rest pose as a fraction of cloth height
	tornFraction float64 // particles removed / total
	runSec       float64
}

// Evaluate computes fitness for a parameter vector (lower = better).
// Each seed drives the wind noise of one independent grid; grids are
// stepped in parallel.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)

	results := make([]runResult, len(fe.seeds))
	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			r, err := runScenario(cfg, s, fe.maxTicks)
			if err != nil {
				// Invalid params are bounded away by Clamp; treat as worst case
				r = runResult{settleSec: 1, sag: 1, tornFraction: 1, runSec: 1}
			}
			results[idx] = r
		}(i, seed)
	}
	wg.Wait()

	var total float64
	var avg runResult
	for _, r := range results {
		total += computeFitness(r)
		avg.settleSec += r.settleSec
		avg.sag += r.sag
		avg.tornFraction += r.tornFraction
		avg.runSec = r.runSec
		avg.settled = avg.settled || r.settled
	}
	n := float64(len(results))
	avg.settleSec /= n
	avg.sag /= n
	avg.tornFraction /= n

	fe.mu.Lock()
	fe.lastSummary = avg
	fe.mu.Unlock()

	return total / n
}

// runScenario steps one headless cloth with the scene and wind from cfg
// until it settles or maxTicks pass. cfg is read only, so concurrent runs
// may share it.
func runScenario(cfg *config.Config, seed int64, maxTicks int32) (runResult, error) {
	params := cfg.ClothParams()
	grid, err := cloth.New(params)
	if err != nil {
		return runResult{}, fmt.Errorf("creating cloth: %w", err)
	}

	dt := cfg.Physics.DT
	world := ecs.NewWorld()
	colliders := systems.NewColliderSystem(world, cfg.Scene)
	wind := systems.NewWindSystem(cfg.Wind, seed)
	collector := telemetry.NewCollector(statsWindowSec, dt)
	detector := telemetry.NewBookmarkDetector(cfg.Telemetry.BookmarkHistorySize, cfg.Bookmarks)

	rest := telemetry.SampleGrid(grid, dt).MeanHeight
	height := float64(params.Height) * params.CellY

	result := runResult{runSec: float64(maxTicks) * dt}
	var shapes []collider.Shape
	var last telemetry.Sample

	for tick := int32(1); tick <= maxTicks; tick++ {
		wind.Update(dt, grid)
		colliders.Update(dt)
		shapes = colliders.Gather(shapes[:0])
		collector.RecordStep(grid.FixedStep(dt, shapes))
		grid.SpreadFire(dt)

		if !collector.ShouldFlush(tick) {
			continue
		}
		last = telemetry.SampleGrid(grid, dt)
		stats := collector.Flush(tick, last)
		if settledAt(detector.Check(stats)) {
			result.settled = true
			result.settleSec = float64(tick) * dt
			break
		}
		if stats.Live == 0 {
			break
		}
	}
	if !result.settled {
		result.settleSec = result.runSec
		last = telemetry.SampleGrid(grid, dt)
	}

	if height > 0 {
		result.sag = math.Max(0, rest-last.MeanHeight) / height
	}
	if total := grid.Len(); total > 0 {
		result.tornFraction = float64(grid.Counters().Destroyed) / float64(total)
	}
	return result, nil
}

func settledAt(bookmarks []telemetry.Bookmark) bool {
	for _, bm := range bookmarks {
		if bm.Type == telemetry.BookmarkSettled {
			return true
		}
	}
	return false
}

// copyConfig creates a deep copy of the base config.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	cfg.Scene.Colliders = append([]config.ColliderConfig(nil), fe.baseConfig.Scene.Colliders...)
	return &cfg
}

// computeFitness calculates the scalar fitness (lower = better):
// normalized settle time plus weighted sag and torn fraction.
func computeFitness(r runResult) float64 {
	settle := 0.0
	if r.runSec > 0 {
		settle = r.settleSec / r.runSec
	}
	if !r.settled {
		settle += unsettledPenalty
	}
	return weightSettle*settle + weightSag*r.sag + weightTear*r.tornFraction
}
