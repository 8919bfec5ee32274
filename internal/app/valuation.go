package app

import (
	"github.com/alexanderramin/horizon/internal/domain"
	"github.com/alexanderramin/horizon/internal/grouping"
	"github.com/alexanderramin/horizon/internal/layout"
	"github.com/alexanderramin/horizon/internal/timing"
	"github.com/alexanderramin/horizon/internal/valuation"
)

// ValuationRequest tunes one evaluation. Zero fields take the configured
// defaults.
type ValuationRequest struct {
	Perpetuity valuation.PerpetuityPolicy
	MaxAge     float64
	Width      float64
}

// ValuationResponse is the full output of one pass over the milestone list.
type ValuationResponse struct {
	CurrentAge    int
	InflationRate float64

	Resolutions []timing.Resolution
	Report      valuation.Report

	// Parents carry bounds refreshed from their children's resolved ages.
	Parents    []*domain.ParentMilestone
	Forest     []grouping.Node
	Scale      layout.Scale
	Placements []layout.Placement

	Issues    []timing.Issue
	Cycles    [][]string
	Scenarios map[string][]float64
}

// CycleCount returns the number of distinct reference cycles.
func (r *ValuationResponse) CycleCount() int {
	return len(r.Cycles)
}

// Resolution returns the resolved timing of a milestone.
func (r *ValuationResponse) Resolution(id string) (timing.Resolution, bool) {
	for _, res := range r.Resolutions {
		if res.MilestoneID == id {
			return res, true
		}
	}
	return timing.Resolution{}, false
}
