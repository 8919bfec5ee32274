// Package grouping turns the flat milestone list into the display forest.
package grouping

import (
	"math"
	"sort"

	"github.com/alexanderramin/horizon/internal/domain"
)

// Node is one entry of the display forest. Group headers carry the parent's
// bounds and no milestone; leaves carry their milestone.
type Node struct {
	// Key is stable across passes: the parent id for a group header, the
	// milestone id for a leaf.
	Key       string
	Type      domain.MilestoneType
	Name      string
	MinAge    int
	MaxAge    int
	Milestone *domain.Milestone
	// ParentID is set on the children that follow a group header.
	ParentID string
	Depth    int
}

// IsGroup reports whether n is a synthetic group header.
func (n Node) IsGroup() bool {
	return n.Type == domain.MilestoneGroup
}

type entry struct {
	parentID string
	leaf     *domain.Milestone
}

// Build partitions milestones by parent. A parent with one child is elided and
// the child is emitted as a top-level leaf. Larger groups emit a header
// followed by their children ordered by Order, then name. Milestones with no
// parent, or with a parent id not in parents, are top-level leaves. Top-level
// entries keep the order in which they first appear in milestones.
func Build(milestones []*domain.Milestone, parents []*domain.ParentMilestone) []Node {
	byID := dedupeParents(parents)

	var entries []entry
	buckets := make(map[string][]*domain.Milestone)
	for _, m := range milestones {
		if m == nil {
			continue
		}
		pid := m.ParentID()
		if _, ok := byID[pid]; !ok {
			entries = append(entries, entry{leaf: m})
			continue
		}
		if _, seen := buckets[pid]; !seen {
			entries = append(entries, entry{parentID: pid})
		}
		buckets[pid] = append(buckets[pid], m)
	}

	nodes := make([]Node, 0, len(milestones)+len(buckets))
	for _, e := range entries {
		if e.leaf != nil {
			nodes = append(nodes, leafNode(e.leaf, "", 0))
			continue
		}
		children := buckets[e.parentID]
		if len(children) == 1 {
			nodes = append(nodes, leafNode(children[0], "", 0))
			continue
		}

		p := byID[e.parentID]
		nodes = append(nodes, Node{
			Key:    p.ID,
			Type:   domain.MilestoneGroup,
			Name:   p.Name,
			MinAge: p.MinAge,
			MaxAge: p.MaxAge,
		})
		sorted := append([]*domain.Milestone(nil), children...)
		sort.SliceStable(sorted, func(i, j int) bool {
			if sorted[i].Order != sorted[j].Order {
				return sorted[i].Order < sorted[j].Order
			}
			return sorted[i].Name < sorted[j].Name
		})
		for _, c := range sorted {
			nodes = append(nodes, leafNode(c, p.ID, 1))
		}
	}
	return nodes
}

// TopLevel returns the nodes at depth 0: group headers and ungrouped leaves.
func TopLevel(nodes []Node) []Node {
	var out []Node
	for _, n := range nodes {
		if n.Depth == 0 {
			out = append(out, n)
		}
	}
	return out
}

// RefreshBounds returns copies of parents whose bounds span their children's
// resolved ages, rounded outward to whole years. Parents without resolved
// children keep their stored bounds.
func RefreshBounds(parents []*domain.ParentMilestone, milestones []*domain.Milestone, ages map[string]float64) []*domain.ParentMilestone {
	lo := make(map[string]float64)
	hi := make(map[string]float64)
	for _, m := range milestones {
		if m == nil || m.ParentID() == "" {
			continue
		}
		age, ok := ages[m.ID]
		if !ok || math.IsNaN(age) || math.IsInf(age, 0) {
			continue
		}
		pid := m.ParentID()
		if cur, ok := lo[pid]; !ok || age < cur {
			lo[pid] = age
		}
		if cur, ok := hi[pid]; !ok || age > cur {
			hi[pid] = age
		}
	}

	out := make([]*domain.ParentMilestone, 0, len(parents))
	for _, p := range parents {
		if p == nil {
			continue
		}
		cp := *p
		if low, ok := lo[p.ID]; ok {
			cp.MinAge = int(math.Floor(low))
			cp.MaxAge = int(math.Ceil(hi[p.ID]))
		}
		out = append(out, &cp)
	}
	return out
}

func dedupeParents(parents []*domain.ParentMilestone) map[string]*domain.ParentMilestone {
	byID := make(map[string]*domain.ParentMilestone, len(parents))
	for _, p := range parents {
		if p == nil || p.ID == "" {
			continue
		}
		if _, dup := byID[p.ID]; dup {
			continue
		}
		byID[p.ID] = p
	}
	return byID
}

func leafNode(m *domain.Milestone, parentID string, depth int) Node {
	return Node{
		Key:       m.ID,
		Type:      m.Type,
		Name:      m.Name,
		Milestone: m,
		ParentID:  parentID,
		Depth:     depth,
	}
}
