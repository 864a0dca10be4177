package placement

import (
	"math"
	"math/rand"

	"go.uber.org/zap"

	"github.com/OpenTraceLab/OpenTraceLayout/pkg/geometry"
	"github.com/OpenTraceLab/OpenTraceLayout/pkg/pcb"
)

// OptimizerConfig tunes the simulated-annealing loop. Iteration count is
// the only termination mechanism; there is no wall-clock timeout.
type OptimizerConfig struct {
	Iterations         int     `yaml:"iterations"`
	InitialTemperature float64 `yaml:"initialTemperature"`
	CoolingRate        float64 `yaml:"coolingRate"`
	MaxStep            float64 `yaml:"maxStep"` // per-axis translation bound, mm
}

// DefaultOptimizerConfig returns the standard annealing schedule.
func DefaultOptimizerConfig() OptimizerConfig {
	return OptimizerConfig{
		Iterations:         500,
		InitialTemperature: 100,
		CoolingRate:        0.95,
		MaxStep:            10,
	}
}

// Validate clamps nonsensical settings to usable values.
func (c *OptimizerConfig) Validate() {
	if c.Iterations <= 0 {
		c.Iterations = 500
	}
	if c.InitialTemperature <= 0 {
		c.InitialTemperature = 100
	}
	if c.CoolingRate <= 0 || c.CoolingRate >= 1 {
		c.CoolingRate = 0.95
	}
	if c.MaxStep <= 0 {
		c.MaxStep = 10
	}
}

// Optimizer refines a placement by simulated annealing. The random source
// is injected so runs are reproducible; results for the same seed, input,
// and config are identical.
type Optimizer struct {
	cfg OptimizerConfig
	rng *rand.Rand
	log *zap.Logger
}

// NewOptimizer creates an optimizer. A nil logger disables logging.
func NewOptimizer(cfg OptimizerConfig, rng *rand.Rand, log *zap.Logger) *Optimizer {
	cfg.Validate()
	if log == nil {
		log = zap.NewNop()
	}
	return &Optimizer{cfg: cfg, rng: rng, log: log}
}

// Optimize perturbs the initial placement and returns the best-scoring
// valid state seen across all iterations, which may be the unmodified
// input when no improving move is ever accepted. Each iteration moves one
// component by a bounded random translation, clamps it inside the board
// margin, and rejects the move outright if it creates any pairwise
// overlap. Worsening moves are accepted with probability
// exp(delta/temperature).
func (o *Optimizer) Optimize(initial []pcb.Component, connections []pcb.Connection, board *pcb.Board) ([]pcb.Component, float64) {
	if len(initial) == 0 {
		return pcb.CloneComponents(initial), Score(EstimateMetrics(nil, connections, board), len(connections), board)
	}

	area := board.UsableArea(BoardMargin)

	current := pcb.CloneComponents(initial)
	currentScore := o.score(current, connections, board)

	best := pcb.CloneComponents(current)
	bestScore := currentScore

	temperature := o.cfg.InitialTemperature
	accepted := 0

	for iter := 0; iter < o.cfg.Iterations; iter++ {
		candidate := pcb.CloneComponents(current)
		idx := o.rng.Intn(len(candidate))

		candidate[idx].Position = geometry.Point{
			X: candidate[idx].Position.X + (o.rng.Float64()*2-1)*o.cfg.MaxStep,
			Y: candidate[idx].Position.Y + (o.rng.Float64()*2-1)*o.cfg.MaxStep,
		}
		clampInto(&candidate[idx], area)

		if overlapsAny(candidate, idx) {
			temperature *= o.cfg.CoolingRate
			continue
		}

		candidateScore := o.score(candidate, connections, board)
		delta := candidateScore - currentScore

		if delta > 0 || o.rng.Float64() < math.Exp(delta/temperature) {
			current = candidate
			currentScore = candidateScore
			accepted++

			if currentScore > bestScore {
				best = pcb.CloneComponents(current)
				bestScore = currentScore
			}
		}

		temperature *= o.cfg.CoolingRate
	}

	o.log.Debug("annealing finished",
		zap.Int("iterations", o.cfg.Iterations),
		zap.Int("accepted", accepted),
		zap.Float64("bestScore", bestScore))

	return best, bestScore
}

func (o *Optimizer) score(components []pcb.Component, connections []pcb.Connection, board *pcb.Board) float64 {
	return Score(EstimateMetrics(components, connections, board), len(connections), board)
}
