package placement

import (
	"math/rand"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/OpenTraceLab/OpenTraceLayout/pkg/pcb"
)

// Generator runs every layout strategy, refines each candidate with the
// annealing optimizer, and returns the candidates ranked by score.
type Generator struct {
	cfg OptimizerConfig
	rng *rand.Rand
	log *zap.Logger
}

// NewGenerator creates a generator with an injected random source.
func NewGenerator(cfg OptimizerConfig, rng *rand.Rand, log *zap.Logger) *Generator {
	if log == nil {
		log = zap.NewNop()
	}
	cfg.Validate()
	return &Generator{cfg: cfg, rng: rng, log: log}
}

// Generate produces one optimized arrangement per strategy, best first.
// Component identifiers are preserved across all candidates, so a
// connection list computed once stays valid against every arrangement.
func (g *Generator) Generate(components []pcb.Component, connections []pcb.Connection, board *pcb.Board) []*pcb.Arrangement {
	optimizer := NewOptimizer(g.cfg, g.rng, g.log)

	arrangements := make([]*pcb.Arrangement, 0, len(Strategies()))
	for _, strategy := range Strategies() {
		initial := strategy.Place(components, board)
		refined, score := optimizer.Optimize(initial, connections, board)

		arrangements = append(arrangements, &pcb.Arrangement{
			ID:          uuid.NewString(),
			Name:        strategy.Name,
			Description: strategy.Description,
			Components:  refined,
			Score:       score,
			Metrics:     EstimateMetrics(refined, connections, board),
		})

		g.log.Debug("strategy candidate ready",
			zap.String("strategy", strategy.Name),
			zap.Float64("score", score))
	}

	sort.SliceStable(arrangements, func(i, j int) bool {
		return arrangements[i].Score > arrangements[j].Score
	})

	return arrangements
}
