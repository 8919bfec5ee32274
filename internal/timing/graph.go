package timing

import (
	"fmt"
	"sort"

	"github.com/alexanderramin/horizon/internal/domain"
)

// LinkKind names one of the two dynamic link fields of a milestone.
type LinkKind string

const (
	LinkStartAfter  LinkKind = "start_after_milestone"
	LinkDurationEnd LinkKind = "duration_end_at_milestone"
)

type IssueKind string

const (
	IssueDangling      IssueKind = "DANGLING_REFERENCE"
	IssueSelfReference IssueKind = "SELF_REFERENCE"
	IssueDuplicateName IssueKind = "DUPLICATE_NAME"
	IssueCycle         IssueKind = "CYCLIC_REFERENCE"
)

// Issue is a data-quality finding. Issues never stop resolution; the
// affected value falls back to the literal stored on the milestone.
type Issue struct {
	MilestoneID   string
	MilestoneName string
	Kind          IssueKind
	Link          LinkKind
	Ref           string
}

func (i Issue) String() string {
	switch i.Kind {
	case IssueDangling:
		return fmt.Sprintf("%s: %s references unknown milestone %q", i.MilestoneName, i.Link, i.Ref)
	case IssueSelfReference:
		return fmt.Sprintf("%s: %s references itself", i.MilestoneName, i.Link)
	case IssueDuplicateName:
		return fmt.Sprintf("%s: name is shared by several milestones; links resolve to the first", i.MilestoneName)
	case IssueCycle:
		return fmt.Sprintf("%s: %s closes a reference cycle; literal value used", i.MilestoneName, i.Link)
	default:
		return fmt.Sprintf("%s: %s", i.MilestoneName, i.Kind)
	}
}

// Edge is a directed link from one milestone to the milestone it names.
// To is empty when the name does not resolve.
type Edge struct {
	From string
	To   string
	Kind LinkKind
	Ref  string
}

// Graph is the directed link graph over milestones, keyed by milestone id.
// Links are declared by name; the graph resolves them once at build time.
type Graph struct {
	order  []string
	nodes  map[string]*domain.Milestone
	byName map[string]string
	edges  map[string][]Edge
	issues []Issue
}

// BuildGraph indexes milestones and resolves every link by name. When several
// milestones share a name, links resolve to the first one in list order.
func BuildGraph(milestones []*domain.Milestone) *Graph {
	g := &Graph{
		order:  make([]string, 0, len(milestones)),
		nodes:  make(map[string]*domain.Milestone, len(milestones)),
		byName: make(map[string]string, len(milestones)),
		edges:  make(map[string][]Edge, len(milestones)),
	}

	for _, m := range milestones {
		if m == nil {
			continue
		}
		if _, dup := g.nodes[m.ID]; dup {
			continue
		}
		g.order = append(g.order, m.ID)
		g.nodes[m.ID] = m
		if _, taken := g.byName[m.Name]; taken {
			g.issues = append(g.issues, Issue{MilestoneID: m.ID, MilestoneName: m.Name, Kind: IssueDuplicateName})
			continue
		}
		g.byName[m.Name] = m.ID
	}

	for _, id := range g.order {
		m := g.nodes[id]
		if m.HasStartLink() {
			g.addEdge(m, LinkStartAfter, *m.StartAfterMilestone)
		}
		if m.HasDurationLink() {
			g.addEdge(m, LinkDurationEnd, *m.DurationEndAtMilestone)
		}
	}

	return g
}

func (g *Graph) addEdge(m *domain.Milestone, kind LinkKind, ref string) {
	to, ok := g.byName[ref]
	if !ok {
		g.issues = append(g.issues, Issue{MilestoneID: m.ID, MilestoneName: m.Name, Kind: IssueDangling, Link: kind, Ref: ref})
	} else if to == m.ID {
		g.issues = append(g.issues, Issue{MilestoneID: m.ID, MilestoneName: m.Name, Kind: IssueSelfReference, Link: kind, Ref: ref})
	}
	g.edges[m.ID] = append(g.edges[m.ID], Edge{From: m.ID, To: to, Kind: kind, Ref: ref})
}

// Milestones returns the indexed milestones in their original order.
func (g *Graph) Milestones() []*domain.Milestone {
	out := make([]*domain.Milestone, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.nodes[id])
	}
	return out
}

// Milestone returns the milestone with the given id, or nil.
func (g *Graph) Milestone(id string) *domain.Milestone {
	return g.nodes[id]
}

// Edges returns the outgoing links of a milestone.
func (g *Graph) Edges(id string) []Edge {
	return g.edges[id]
}

// Target returns the milestone a link points at. ok is false when the link is
// unset or its name does not resolve.
func (g *Graph) Target(id string, kind LinkKind) (*domain.Milestone, bool) {
	for _, e := range g.edges[id] {
		if e.Kind != kind {
			continue
		}
		if e.To == "" {
			return nil, false
		}
		return g.nodes[e.To], true
	}
	return nil, false
}

// Issues returns the structural findings made while building the graph.
func (g *Graph) Issues() []Issue {
	out := make([]Issue, len(g.issues))
	copy(out, g.issues)
	return out
}

// Cycles returns every cycle closed by a DFS back edge, as milestone ids in
// link order starting from the smallest id. Each cycle is reported once.
func (g *Graph) Cycles() [][]string {
	const (
		white = iota
		grey
		black
	)
	color := make(map[string]int, len(g.order))
	var stack []string
	seen := make(map[string]bool)
	var cycles [][]string

	var visit func(id string)
	visit = func(id string) {
		color[id] = grey
		stack = append(stack, id)
		for _, e := range g.edges[id] {
			if e.To == "" {
				continue
			}
			switch color[e.To] {
			case white:
				visit(e.To)
			case grey:
				start := len(stack) - 1
				for stack[start] != e.To {
					start--
				}
				cycle := normalizeCycle(stack[start:])
				sig := fmt.Sprint(cycle)
				if !seen[sig] {
					seen[sig] = true
					cycles = append(cycles, cycle)
				}
			}
		}
		stack = stack[:len(stack)-1]
		color[id] = black
	}

	for _, id := range g.order {
		if color[id] == white {
			visit(id)
		}
	}

	sort.SliceStable(cycles, func(i, j int) bool { return cycles[i][0] < cycles[j][0] })
	return cycles
}

// normalizeCycle rotates a cycle so it starts at its smallest id.
func normalizeCycle(path []string) []string {
	minIdx := 0
	for i, id := range path {
		if id < path[minIdx] {
			minIdx = i
		}
	}
	out := make([]string, 0, len(path))
	out = append(out, path[minIdx:]...)
	out = append(out, path[:minIdx]...)
	return out
}
