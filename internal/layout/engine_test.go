package layout

import (
	"testing"

	"github.com/alexanderramin/horizon/internal/domain"
	"github.com/alexanderramin/horizon/internal/grouping"
	"github.com/alexanderramin/horizon/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine() *Engine {
	return NewEngine(Scale{CurrentAge: 30, MaxAge: 100, Width: 700}, 20)
}

func TestEngine_PlaceLeafAndSpan(t *testing.T) {
	p := testutil.NewTestParent("Kids", 32, 40)
	a := testutil.NewTestMilestone("Retire", testutil.WithID("r"), testutil.WithAge(65))
	c1 := testutil.NewTestMilestone("First", testutil.WithParent(p.ID))
	c2 := testutil.NewTestMilestone("Second", testutil.WithParent(p.ID))
	nodes := grouping.Build([]*domain.Milestone{a, c1, c2}, []*domain.ParentMilestone{p})

	placements := newTestEngine().Place(nodes, map[string]float64{"r": 60})

	require.Len(t, placements, 2)

	leaf := placements[0]
	assert.Equal(t, "r", leaf.Key)
	assert.Equal(t, 0, leaf.Slot)
	assert.Equal(t, 0.0, leaf.Y)
	assert.False(t, leaf.IsSpan())
	require.Len(t, leaf.Primitives, 2)
	assert.Equal(t, PrimitivePoint, leaf.Primitives[0].Kind)
	assert.Equal(t, 300.0, leaf.Primitives[0].X, "resolved age wins over the literal")

	group := placements[1]
	assert.Equal(t, p.ID, group.Key)
	assert.Equal(t, 20.0, group.Y)
	assert.True(t, group.IsSpan())
	require.Len(t, group.Primitives, 4)
	assert.Equal(t, PrimitiveStart, group.Primitives[0].Kind)
	assert.Equal(t, 20.0, group.Primitives[0].X)
	assert.Equal(t, PrimitiveEnd, group.Primitives[1].Kind)
	assert.Equal(t, 100.0, group.Primitives[1].X)
	assert.Equal(t, Primitive{Kind: PrimitiveLine, X: 20, X2: 100, Y: 20}, group.Primitives[2])
	assert.Equal(t, Primitive{Kind: PrimitiveLabel, X: 20, Y: 20, Text: "Kids"}, group.Primitives[3])
}

func TestEngine_PointGroup(t *testing.T) {
	p := testutil.NewTestParent("Wedding", 35, 35)
	c1 := testutil.NewTestMilestone("Venue", testutil.WithParent(p.ID))
	c2 := testutil.NewTestMilestone("Rings", testutil.WithParent(p.ID))
	nodes := grouping.Build([]*domain.Milestone{c1, c2}, []*domain.ParentMilestone{p})

	placements := newTestEngine().Place(nodes, nil)

	require.Len(t, placements, 1)
	assert.False(t, placements[0].IsSpan())
	assert.Equal(t, PrimitivePoint, placements[0].Primitives[0].Kind)
	assert.Equal(t, 50.0, placements[0].Primitives[0].X)
}

func TestEngine_LeafFallsBackToLiteralAge(t *testing.T) {
	m := testutil.NewTestMilestone("Trip", testutil.WithAge(44))
	placements := newTestEngine().Place(grouping.Build([]*domain.Milestone{m}, nil), nil)

	require.Len(t, placements, 1)
	assert.Equal(t, 44.0, placements[0].StartAge)
}

func TestEngine_SlotsStableAcrossPasses(t *testing.T) {
	e := newTestEngine()
	a := testutil.NewTestMilestone("A", testutil.WithID("a"))
	b := testutil.NewTestMilestone("B", testutil.WithID("b"))
	c := testutil.NewTestMilestone("C", testutil.WithID("c"))

	first := e.Place(grouping.Build([]*domain.Milestone{a, b, c}, nil), nil)
	require.Len(t, first, 3)
	assert.Equal(t, 2, first[2].Slot)

	// b removed: c keeps its row and the freed row is reused by d.
	d := testutil.NewTestMilestone("D", testutil.WithID("d"))
	second := e.Place(grouping.Build([]*domain.Milestone{a, c, d}, nil), nil)
	require.Len(t, second, 3)
	assert.Equal(t, 0, second[0].Slot)
	assert.Equal(t, 2, second[1].Slot)
	assert.Equal(t, 1, second[2].Slot)
	assert.Equal(t, 3, e.Slots().Capacity())
}
