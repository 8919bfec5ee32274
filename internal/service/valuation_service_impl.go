package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/alexanderramin/horizon/internal/app"
	"github.com/alexanderramin/horizon/internal/domain"
	"github.com/alexanderramin/horizon/internal/grouping"
	"github.com/alexanderramin/horizon/internal/layout"
	"github.com/alexanderramin/horizon/internal/store"
	"github.com/alexanderramin/horizon/internal/timing"
	"github.com/alexanderramin/horizon/internal/valuation"
)

// ValuationSettings are the defaults for fields a request leaves zero.
type ValuationSettings struct {
	Perpetuity  valuation.PerpetuityPolicy
	MaxAge      float64
	Width       float64
	SlotSpacing float64
	// LoadTimeout bounds each store load. Zero means no bound beyond ctx.
	LoadTimeout time.Duration
	// InflationRate, when non-nil, is used instead of the profile's rate.
	InflationRate *float64
}

type valuationService struct {
	store    *store.Store
	source   store.Source
	settings ValuationSettings
	logger   *slog.Logger
	observer UseCaseObserver

	// mu guards layout; its slot allocator persists across evaluations so
	// rows stay stable.
	mu     sync.Mutex
	layout *layout.Engine
}

func NewValuationService(
	st *store.Store,
	source store.Source,
	settings ValuationSettings,
	logger *slog.Logger,
	observers ...UseCaseObserver,
) ValuationService {
	if logger == nil {
		logger = discardLogger()
	}
	if settings.MaxAge <= 0 {
		settings.MaxAge = layout.DefaultMaxAge
	}
	if settings.SlotSpacing <= 0 {
		settings.SlotSpacing = 1
	}
	return &valuationService{
		store:    st,
		source:   source,
		settings: settings,
		logger:   logger,
		observer: useCaseObserverOrNoop(observers),
		layout:   layout.NewEngine(layout.Scale{}, settings.SlotSpacing),
	}
}

// Evaluate reloads the store from its source, then resolves timing, values
// every milestone, refreshes parent bounds, builds the display forest and
// lays it out.
func (s *valuationService) Evaluate(ctx context.Context, req app.ValuationRequest) (resp *app.ValuationResponse, err error) {
	startedAt := time.Now().UTC()
	event := UseCaseEvent{Name: opEvaluate}
	defer func() {
		observe(ctx, s.observer, &event, startedAt, err)
	}()

	loadCtx := ctx
	if s.settings.LoadTimeout > 0 {
		var cancel context.CancelFunc
		loadCtx, cancel = context.WithTimeout(ctx, s.settings.LoadTimeout)
		defer cancel()
	}
	if _, err = s.store.Load(loadCtx, s.source); err != nil {
		return nil, fmt.Errorf("loading milestones: %w", err)
	}

	resp = s.evaluate(ctx, s.store.Snapshot(), req)
	event.Milestones = len(resp.Report.Items)
	event.TotalNPV = resp.Report.TotalNPV
	event.Cycles = len(resp.Cycles)
	event.IssueKinds = countIssueKinds(resp.Issues)
	return resp, nil
}

func (s *valuationService) evaluate(ctx context.Context, snap store.Snapshot, req app.ValuationRequest) *app.ValuationResponse {
	resolver := timing.NewResolver(snap.Milestones)
	resolutions := resolver.ResolveAll()
	ages := make(map[string]float64, len(resolutions))
	for _, r := range resolutions {
		ages[r.MilestoneID] = r.Age
	}

	policy := req.Perpetuity
	if policy == "" {
		policy = s.settings.Perpetuity
	}
	inflation := snap.InflationRate
	if s.settings.InflationRate != nil {
		inflation = *s.settings.InflationRate
	}
	engine := valuation.Engine{
		CurrentAge:    float64(snap.CurrentAge),
		InflationRate: inflation,
		Perpetuity:    policy,
	}
	report := engine.Evaluate(snap.Milestones, resolutions)

	parents := grouping.RefreshBounds(snap.Parents, snap.Milestones, ages)
	forest := grouping.Build(snap.Milestones, parents)

	scale := layout.Scale{
		CurrentAge: float64(snap.CurrentAge),
		MaxAge:     firstPositive(req.MaxAge, s.settings.MaxAge),
		Width:      firstPositive(req.Width, s.settings.Width),
	}
	placements := s.place(scale, forest, ages)

	issues := resolver.Issues()
	s.logIssues(ctx, issues)

	return &app.ValuationResponse{
		CurrentAge:    snap.CurrentAge,
		InflationRate: inflation,
		Resolutions:   resolutions,
		Report:        report,
		Parents:       parents,
		Forest:        forest,
		Scale:         scale,
		Placements:    placements,
		Issues:        issues,
		Cycles:        resolver.Graph().Cycles(),
		Scenarios:     domain.ScenarioCatalogue(snap.Milestones),
	}
}

func (s *valuationService) place(scale layout.Scale, forest []grouping.Node, ages map[string]float64) []layout.Placement {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.layout.Scale = scale
	return s.layout.Place(forest, ages)
}

func (s *valuationService) logIssues(ctx context.Context, issues []timing.Issue) {
	for _, is := range issues {
		attrs := []any{"milestone", is.MilestoneName, "kind", string(is.Kind)}
		if is.Link != "" {
			attrs = append(attrs, "link", string(is.Link), "ref", is.Ref)
		}
		if is.Kind == timing.IssueCycle || is.Kind == timing.IssueSelfReference {
			s.logger.WarnContext(ctx, "milestone reference fell back to literal value", attrs...)
			continue
		}
		s.logger.DebugContext(ctx, "milestone data issue", attrs...)
	}
}

func firstPositive(vals ...float64) float64 {
	for _, v := range vals {
		if v > 0 {
			return v
		}
	}
	return 0
}
