package timing

import (
	"sort"

	"github.com/alexanderramin/horizon/internal/domain"
)

type quantity int

const (
	quantityAge quantity = iota
	quantityDuration
)

type visitKey struct {
	id string
	q  quantity
}

// outcome is a resolved value; ok is false when the chain behind it was
// aborted by a cycle or a self link, in which case value is the literal
// fallback.
type outcome struct {
	value float64
	ok    bool
}

// Resolution is the effective timing of one milestone.
type Resolution struct {
	MilestoneID string
	// Age is in years.
	Age float64
	// Duration is in the milestone's own period unit (months or years).
	Duration float64
	// AgeFallback and DurationFallback are set when a cycle or a self link
	// forced the literal value.
	AgeFallback      bool
	DurationFallback bool
}

// Resolver computes resolved ages and durations over a link graph. Results are
// memoised, so a Resolver must be rebuilt when the milestone list changes.
type Resolver struct {
	graph  *Graph
	memo   map[visitKey]outcome
	cycles map[visitKey]Issue
}

// NewResolver builds the link graph for milestones and returns a resolver over it.
func NewResolver(milestones []*domain.Milestone) *Resolver {
	return NewResolverForGraph(BuildGraph(milestones))
}

// NewResolverForGraph returns a resolver over an existing graph.
func NewResolverForGraph(g *Graph) *Resolver {
	return &Resolver{
		graph:  g,
		memo:   make(map[visitKey]outcome),
		cycles: make(map[visitKey]Issue),
	}
}

// Graph returns the link graph the resolver walks.
func (r *Resolver) Graph() *Graph {
	return r.graph
}

// Age returns the resolved occurrence age of m in years.
func (r *Resolver) Age(m *domain.Milestone) float64 {
	return r.age(m, make(map[visitKey]bool)).value
}

// Duration returns the resolved duration of m in its own period unit. The
// value is not clamped and may be zero or negative for a misconfigured chain.
func (r *Resolver) Duration(m *domain.Milestone) float64 {
	return r.duration(m, make(map[visitKey]bool)).value
}

// ResolveAll resolves every milestone in the graph, in list order.
func (r *Resolver) ResolveAll() []Resolution {
	milestones := r.graph.Milestones()
	out := make([]Resolution, 0, len(milestones))
	for _, m := range milestones {
		age := r.age(m, make(map[visitKey]bool))
		dur := r.duration(m, make(map[visitKey]bool))
		out = append(out, Resolution{
			MilestoneID:      m.ID,
			Age:              age.value,
			Duration:         dur.value,
			AgeFallback:      !age.ok,
			DurationFallback: !dur.ok,
		})
	}
	return out
}

// Ages returns resolved ages keyed by milestone id.
func (r *Resolver) Ages() map[string]float64 {
	ages := make(map[string]float64, len(r.graph.order))
	for _, m := range r.graph.Milestones() {
		ages[m.ID] = r.Age(m)
	}
	return ages
}

// Issues returns structural issues plus every cycle met so far, sorted by
// milestone name then kind.
func (r *Resolver) Issues() []Issue {
	issues := r.graph.Issues()
	for _, is := range r.cycles {
		issues = append(issues, is)
	}
	sort.SliceStable(issues, func(i, j int) bool {
		if issues[i].MilestoneName != issues[j].MilestoneName {
			return issues[i].MilestoneName < issues[j].MilestoneName
		}
		if issues[i].Kind != issues[j].Kind {
			return issues[i].Kind < issues[j].Kind
		}
		return issues[i].Link < issues[j].Link
	})
	return issues
}

// age resolves M's occurrence age: the literal when unlinked or dangling,
// otherwise the end of the referenced milestone (its age plus its duration).
func (r *Resolver) age(m *domain.Milestone, path map[visitKey]bool) outcome {
	literal := float64(m.AgeAtOccurrence)
	if !m.HasStartLink() {
		return outcome{value: literal, ok: true}
	}

	k := visitKey{id: m.ID, q: quantityAge}
	if out, ok := r.memo[k]; ok {
		return out
	}
	if path[k] {
		r.recordCycle(m, k, LinkStartAfter, *m.StartAfterMilestone)
		return outcome{value: literal}
	}

	ref, ok := r.graph.Target(m.ID, LinkStartAfter)
	if !ok {
		return outcome{value: literal, ok: true}
	}
	if ref.ID == m.ID {
		return outcome{value: literal}
	}

	path[k] = true
	refAge := r.age(ref, path)
	refDur := r.duration(ref, path)
	delete(path, k)

	out := outcome{value: literal}
	if refAge.ok && refDur.ok {
		out = outcome{value: refAge.value + refDur.value/ref.Occurrence.PeriodsPerYear(), ok: true}
	}
	r.memo[k] = out
	return out
}

// duration resolves M's duration: the stored value when unlinked or dangling,
// otherwise the gap from M's age to the referenced milestone's age.
func (r *Resolver) duration(m *domain.Milestone, path map[visitKey]bool) outcome {
	literal := m.LiteralDuration()
	if !m.HasDurationLink() {
		return outcome{value: literal, ok: true}
	}

	k := visitKey{id: m.ID, q: quantityDuration}
	if out, ok := r.memo[k]; ok {
		return out
	}
	if path[k] {
		r.recordCycle(m, k, LinkDurationEnd, *m.DurationEndAtMilestone)
		return outcome{value: literal}
	}

	ref, ok := r.graph.Target(m.ID, LinkDurationEnd)
	if !ok {
		return outcome{value: literal, ok: true}
	}
	if ref.ID == m.ID {
		return outcome{value: literal}
	}

	path[k] = true
	endAge := r.age(ref, path)
	startAge := r.age(m, path)
	delete(path, k)

	out := outcome{value: literal}
	if endAge.ok && startAge.ok {
		out = outcome{value: (endAge.value - startAge.value) * m.Occurrence.PeriodsPerYear(), ok: true}
	}
	r.memo[k] = out
	return out
}

func (r *Resolver) recordCycle(m *domain.Milestone, k visitKey, link LinkKind, ref string) {
	if _, ok := r.cycles[k]; ok {
		return
	}
	r.cycles[k] = Issue{MilestoneID: m.ID, MilestoneName: m.Name, Kind: IssueCycle, Link: link, Ref: ref}
}
