// Package extract implements the ordered extraction cascade that pulls
// transfer listings out of the rendered page, whatever shape its markup
// takes.
package extract

import (
	"github.com/Gizmito78/todobiwenger/internal/browser"
	"github.com/Gizmito78/todobiwenger/internal/model"
)

// Strategy reads candidate records from rendered page content. Finding
// nothing is not an error; a strategy returns an empty slice when the
// representation it understands is absent.
type Strategy interface {
	Extract(page *browser.Page) ([]model.RawTransfer, error)
	Name() string
}

// Status classifies the result of one strategy invocation.
type Status int

const (
	// StatusOK means the strategy produced at least one usable record.
	StatusOK Status = iota
	// StatusEmpty means the strategy ran but found nothing usable.
	StatusEmpty
	// StatusFailed means the strategy errored or panicked internally.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusEmpty:
		return "empty"
	case StatusFailed:
		return "failed"
	}
	return "unknown"
}

// Outcome records what one strategy invocation produced, so cascade
// decisions stay observable instead of hiding behind swallowed errors.
type Outcome struct {
	Strategy string
	Status   Status
	Records  int
	Err      error
}
