// Package recommend derives free-text observations from groupby aggregates
// of the filtered sales data.
package recommend

import (
	"log/slog"

	"github.com/salescope/salescope/internal/analysis"
	"github.com/salescope/salescope/internal/model"
)

// A check inspects the session and either produces one observation or
// reports that it has nothing to say. Checks are independent and
// best-effort: a failing check is skipped, never aborting the rest.
type check func(session *analysis.Session) (*model.Recommendation, error)

// Engine runs the heuristic checks in a fixed order.
type Engine struct {
	checks []check
}

// NewEngine creates an engine with the standard check sequence.
func NewEngine() *Engine {
	return &Engine{
		checks: []check{
			seasonalityCheck,
			topProductsCheck,
			customerSegmentCheck,
			locationCheck,
			trendCheck,
			priceElasticityCheck,
		},
	}
}

// Generate runs every check against the session. Output order is check
// order, not importance. When no check produces anything, a single
// insufficient-data observation is returned; Generate never fails.
func (e *Engine) Generate(session *analysis.Session) []model.Recommendation {
	recommendations := make([]model.Recommendation, 0, len(e.checks))

	// A single row cannot support any of the aggregates below
	if len(session.Sales()) < 2 {
		return append(recommendations, insufficientData())
	}

	for _, c := range e.checks {
		rec, err := c(session)
		if err != nil {
			slog.Debug("recommendation check skipped", "error", err)
			continue
		}
		if rec != nil {
			recommendations = append(recommendations, *rec)
		}
	}

	if len(recommendations) == 0 {
		recommendations = append(recommendations, insufficientData())
	}

	return recommendations
}

func insufficientData() model.Recommendation {
	return model.Recommendation{
		Kind: model.RecInsufficientData,
		Text: "Not enough data to generate recommendations. Import more sales history or relax the active filters.",
	}
}
