package layout

import (
	"github.com/alexanderramin/horizon/internal/domain"
	"github.com/alexanderramin/horizon/internal/grouping"
)

type PrimitiveKind string

const (
	PrimitivePoint PrimitiveKind = "point"
	PrimitiveStart PrimitiveKind = "start"
	PrimitiveEnd   PrimitiveKind = "end"
	PrimitiveLine  PrimitiveKind = "line"
	PrimitiveLabel PrimitiveKind = "label"
)

// Primitive is one drawable element. X2 is only set for lines.
type Primitive struct {
	Kind PrimitiveKind
	X    float64
	X2   float64
	Y    float64
	Text string
}

// Placement is the layout of one top-level entry.
type Placement struct {
	Key        string
	Name       string
	Type       domain.MilestoneType
	Slot       int
	Y          float64
	StartAge   float64
	EndAge     float64
	Primitives []Primitive
}

// IsSpan reports whether the placement covers an age range.
func (p Placement) IsSpan() bool {
	return p.StartAge != p.EndAge
}

// Engine places display forests on the timeline. Slots persist across calls
// for keys that stay live.
type Engine struct {
	Scale   Scale
	Spacing float64
	slots   *SlotAllocator
}

func NewEngine(scale Scale, spacing float64) *Engine {
	return &Engine{Scale: scale, Spacing: spacing, slots: NewSlotAllocator()}
}

// Slots exposes the row allocator.
func (e *Engine) Slots() *SlotAllocator {
	return e.slots
}

// Place lays out one row per top-level node. Leaves sit at their resolved age
// (ages, falling back to the literal). A group is a point when its bounds
// match, otherwise a start marker, end marker, a connecting line and a label
// at the start. Rows of entries no longer present are freed first.
func (e *Engine) Place(nodes []grouping.Node, ages map[string]float64) []Placement {
	top := grouping.TopLevel(nodes)
	live := make([]string, 0, len(top))
	for _, n := range top {
		live = append(live, n.Key)
	}
	e.slots.Retain(live)

	out := make([]Placement, 0, len(top))
	for _, n := range top {
		slot := e.slots.Assign(n.Key)
		p := Placement{
			Key:  n.Key,
			Name: n.Name,
			Type: n.Type,
			Slot: slot,
			Y:    float64(slot) * e.Spacing,
		}
		if n.IsGroup() {
			p.StartAge, p.EndAge = float64(n.MinAge), float64(n.MaxAge)
		} else {
			p.StartAge = leafAge(n, ages)
			p.EndAge = p.StartAge
		}
		p.Primitives = e.primitives(p)
		out = append(out, p)
	}
	return out
}

func (e *Engine) primitives(p Placement) []Primitive {
	x := e.Scale.X(p.StartAge)
	if !p.IsSpan() {
		return []Primitive{
			{Kind: PrimitivePoint, X: x, Y: p.Y},
			{Kind: PrimitiveLabel, X: x, Y: p.Y, Text: p.Name},
		}
	}
	x2 := e.Scale.X(p.EndAge)
	return []Primitive{
		{Kind: PrimitiveStart, X: x, Y: p.Y},
		{Kind: PrimitiveEnd, X: x2, Y: p.Y},
		{Kind: PrimitiveLine, X: x, X2: x2, Y: p.Y},
		{Kind: PrimitiveLabel, X: x, Y: p.Y, Text: p.Name},
	}
}

func leafAge(n grouping.Node, ages map[string]float64) float64 {
	if age, ok := ages[n.Key]; ok {
		return age
	}
	if n.Milestone != nil {
		return float64(n.Milestone.AgeAtOccurrence)
	}
	return 0
}
