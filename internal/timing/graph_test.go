package timing

import (
	"testing"

	"github.com/alexanderramin/horizon/internal/domain"
	"github.com/alexanderramin/horizon/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildGraph_ResolvesLinksByName(t *testing.T) {
	house := testutil.NewTestMilestone("House", testutil.WithID("h"))
	mortgage := testutil.NewTestMilestone("Mortgage", testutil.WithID("m"),
		testutil.WithStartAfter("House"), testutil.WithDurationEndAt("Retire"))
	retire := testutil.NewTestMilestone("Retire", testutil.WithID("r"))
	g := BuildGraph([]*domain.Milestone{house, mortgage, retire})

	target, ok := g.Target("m", LinkStartAfter)
	require.True(t, ok)
	assert.Equal(t, "h", target.ID)

	target, ok = g.Target("m", LinkDurationEnd)
	require.True(t, ok)
	assert.Equal(t, "r", target.ID)

	_, ok = g.Target("h", LinkStartAfter)
	assert.False(t, ok, "unlinked milestone has no target")
	assert.Len(t, g.Edges("m"), 2)
	assert.Empty(t, g.Issues())
}

func TestBuildGraph_DanglingEdgeHasNoTarget(t *testing.T) {
	m := testutil.NewTestMilestone("Trip", testutil.WithID("t"), testutil.WithStartAfter("Nowhere"))
	g := BuildGraph([]*domain.Milestone{m})

	_, ok := g.Target("t", LinkStartAfter)
	assert.False(t, ok)
	require.Len(t, g.Issues(), 1)
	assert.Equal(t, IssueDangling, g.Issues()[0].Kind)
	assert.Equal(t, "Nowhere", g.Issues()[0].Ref)
	assert.Contains(t, g.Issues()[0].String(), "unknown milestone")
}

func TestBuildGraph_SkipsNilAndDuplicateIDs(t *testing.T) {
	a := testutil.NewTestMilestone("A", testutil.WithID("x"))
	b := testutil.NewTestMilestone("B", testutil.WithID("x"))
	g := BuildGraph([]*domain.Milestone{a, nil, b})

	require.Len(t, g.Milestones(), 1)
	assert.Equal(t, "A", g.Milestone("x").Name)
}

func TestGraph_Cycles(t *testing.T) {
	a := testutil.NewTestMilestone("A", testutil.WithID("a"), testutil.WithStartAfter("B"))
	b := testutil.NewTestMilestone("B", testutil.WithID("b"), testutil.WithStartAfter("C"))
	c := testutil.NewTestMilestone("C", testutil.WithID("c"), testutil.WithStartAfter("A"))
	d := testutil.NewTestMilestone("D", testutil.WithID("d"), testutil.WithStartAfter("A"))
	self := testutil.NewTestMilestone("S", testutil.WithID("s"), testutil.WithDurationEndAt("S"))
	g := BuildGraph([]*domain.Milestone{d, b, c, a, self})

	cycles := g.Cycles()
	require.Len(t, cycles, 2)
	assert.Equal(t, []string{"a", "b", "c"}, cycles[0])
	assert.Equal(t, []string{"s"}, cycles[1])
}

func TestGraph_AcyclicHasNoCycles(t *testing.T) {
	a := testutil.NewTestMilestone("A")
	b := testutil.NewTestMilestone("B", testutil.WithStartAfter("A"), testutil.WithDurationEndAt("A"))
	g := BuildGraph([]*domain.Milestone{a, b})
	assert.Empty(t, g.Cycles())
}

func TestIssue_String(t *testing.T) {
	is := Issue{MilestoneName: "A", Kind: IssueCycle, Link: LinkStartAfter}
	assert.Contains(t, is.String(), "closes a reference cycle")
	is = Issue{MilestoneName: "A", Kind: IssueSelfReference, Link: LinkDurationEnd}
	assert.Contains(t, is.String(), "references itself")
}
