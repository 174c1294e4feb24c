package extract

import (
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/Gizmito78/todobiwenger/internal/browser"
	"github.com/Gizmito78/todobiwenger/internal/model"
)

// Cascade tries strategies in priority order, returning the first
// non-empty filtered result. The order encodes a reliability prior: the
// structured table is the most trustworthy, embedded data the last resort.
type Cascade struct {
	strategies []Strategy
}

// NewCascade creates a Cascade with the default strategy order:
// structured table, heuristic text, embedded data.
func NewCascade() *Cascade {
	return &Cascade{
		strategies: []Strategy{
			&TableStrategy{},
			&TextStrategy{},
			&EmbeddedStrategy{},
		},
	}
}

// NewCascadeWith creates a Cascade over the given strategies in order.
func NewCascadeWith(strategies ...Strategy) *Cascade {
	return &Cascade{strategies: strategies}
}

// Run executes the cascade against a rendered page. Strategy failures are
// absorbed at the strategy boundary and treated as empty results. When all
// strategies come up empty the returned slice holds exactly the sentinel
// record. The outcomes describe every invocation made.
func (c *Cascade) Run(page *browser.Page) ([]model.Transfer, []Outcome) {
	var outcomes []Outcome
	for _, s := range c.strategies {
		raws, err := runStrategy(s, page)
		if err != nil {
			zap.L().Debug("extract: strategy failed, trying next",
				zap.String("strategy", s.Name()),
				zap.String("url", page.URL),
				zap.Error(err),
			)
			outcomes = append(outcomes, Outcome{Strategy: s.Name(), Status: StatusFailed, Err: err})
			continue
		}

		records := make([]model.Transfer, 0, len(raws))
		for _, raw := range raws {
			t := model.Normalize(raw)
			if t.Usable() {
				records = append(records, t)
			}
		}

		if len(records) == 0 {
			outcomes = append(outcomes, Outcome{Strategy: s.Name(), Status: StatusEmpty})
			continue
		}

		zap.L().Debug("extract: strategy succeeded",
			zap.String("strategy", s.Name()),
			zap.Int("records", len(records)),
		)
		outcomes = append(outcomes, Outcome{Strategy: s.Name(), Status: StatusOK, Records: len(records)})
		return records, outcomes
	}

	return []model.Transfer{model.Sentinel()}, outcomes
}

// runStrategy invokes a strategy, converting panics into errors so nothing
// escapes the cascade.
func runStrategy(s Strategy, page *browser.Page) (raws []model.RawTransfer, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = eris.Errorf("extract: strategy %s panicked: %v", s.Name(), r)
		}
	}()
	return s.Extract(page)
}
