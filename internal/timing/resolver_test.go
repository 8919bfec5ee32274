package timing

import (
	"fmt"
	"testing"

	"github.com/alexanderramin/horizon/internal/domain"
	"github.com/alexanderramin/horizon/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolver_UnlinkedUsesLiterals(t *testing.T) {
	m := testutil.NewTestMilestone("Car", testutil.WithAge(42), testutil.WithDuration(6))
	r := NewResolver([]*domain.Milestone{m})

	assert.Equal(t, 42.0, r.Age(m))
	assert.Equal(t, 6.0, r.Duration(m))
	assert.Empty(t, r.Issues())
}

func TestResolver_ChainResolution(t *testing.T) {
	a := testutil.NewTestMilestone("A", testutil.WithAge(30))
	b := testutil.NewTestMilestone("B", testutil.WithAge(0), testutil.WithStartAfter("A"), testutil.WithDuration(5))
	c := testutil.NewTestMilestone("C", testutil.WithAge(0), testutil.WithStartAfter("B"))
	r := NewResolver([]*domain.Milestone{c, b, a})

	assert.Equal(t, 30.0, r.Age(b), "B starts when A ends (A has no duration)")
	assert.Equal(t, 35.0, r.Age(c))
	assert.Empty(t, r.Issues())
}

func TestResolver_MonthlyDurationConvertedToYears(t *testing.T) {
	loan := testutil.NewTestMilestone("Loan", testutil.WithAge(30),
		testutil.WithOccurrence(domain.OccurrenceMonthly), testutil.WithDuration(18))
	next := testutil.NewTestMilestone("Next", testutil.WithStartAfter("Loan"))
	r := NewResolver([]*domain.Milestone{loan, next})

	assert.InDelta(t, 31.5, r.Age(next), 1e-12)
}

func TestResolver_DanglingReferenceFallsBack(t *testing.T) {
	m := testutil.NewTestMilestone("Trip", testutil.WithAge(50), testutil.WithDuration(2),
		testutil.WithStartAfter("Gone"), testutil.WithDurationEndAt("AlsoGone"))
	r := NewResolver([]*domain.Milestone{m})

	assert.Equal(t, 50.0, r.Age(m))
	assert.Equal(t, 2.0, r.Duration(m))

	issues := r.Issues()
	require.Len(t, issues, 2)
	for _, is := range issues {
		assert.Equal(t, IssueDangling, is.Kind)
	}
}

func TestResolver_TwoNodeCycleTerminatesWithLiterals(t *testing.T) {
	a := testutil.NewTestMilestone("A", testutil.WithAge(30), testutil.WithStartAfter("B"), testutil.WithDuration(3))
	b := testutil.NewTestMilestone("B", testutil.WithAge(40), testutil.WithStartAfter("A"), testutil.WithDuration(4))
	r := NewResolver([]*domain.Milestone{a, b})

	assert.Equal(t, 30.0, r.Age(a))
	assert.Equal(t, 40.0, r.Age(b))

	var cycles int
	for _, is := range r.Issues() {
		if is.Kind == IssueCycle {
			cycles++
		}
	}
	assert.GreaterOrEqual(t, cycles, 1)
}

func TestResolver_CycleIsIndependentOfEntryPoint(t *testing.T) {
	a := testutil.NewTestMilestone("A", testutil.WithAge(30), testutil.WithStartAfter("B"))
	b := testutil.NewTestMilestone("B", testutil.WithAge(40), testutil.WithStartAfter("A"))

	r := NewResolver([]*domain.Milestone{a, b})
	assert.Equal(t, 40.0, r.Age(b), "resolving B first")
	assert.Equal(t, 30.0, r.Age(a))
}

func TestResolver_NodeFeedingIntoCycleFallsBack(t *testing.T) {
	a := testutil.NewTestMilestone("A", testutil.WithAge(30), testutil.WithStartAfter("B"))
	b := testutil.NewTestMilestone("B", testutil.WithAge(40), testutil.WithStartAfter("A"))
	x := testutil.NewTestMilestone("X", testutil.WithAge(55), testutil.WithStartAfter("A"))
	r := NewResolver([]*domain.Milestone{x, a, b})

	res := r.ResolveAll()
	require.Len(t, res, 3)
	assert.Equal(t, 55.0, res[0].Age)
	assert.True(t, res[0].AgeFallback)
}

func TestResolver_SelfReferenceTerminates(t *testing.T) {
	m := testutil.NewTestMilestone("Loop", testutil.WithAge(33), testutil.WithDuration(7),
		testutil.WithStartAfter("Loop"), testutil.WithDurationEndAt("Loop"))
	r := NewResolver([]*domain.Milestone{m})

	assert.Equal(t, 33.0, r.Age(m))
	assert.Equal(t, 7.0, r.Duration(m))

	issues := r.Issues()
	require.Len(t, issues, 2)
	for _, is := range issues {
		assert.Equal(t, IssueSelfReference, is.Kind)
	}
}

func TestResolver_SelfDurationLinkKeepsStoredDuration(t *testing.T) {
	loan := testutil.NewTestMilestone("Loan", testutil.WithAge(40), testutil.WithDuration(10),
		testutil.WithDurationEndAt("Loan"))
	after := testutil.NewTestMilestone("Payoff", testutil.WithAge(70), testutil.WithStartAfter("Loan"))
	r := NewResolver([]*domain.Milestone{loan, after})

	res := r.ResolveAll()
	require.Len(t, res, 2)
	assert.Equal(t, 40.0, res[0].Age)
	assert.False(t, res[0].AgeFallback)
	assert.Equal(t, 10.0, res[0].Duration)
	assert.True(t, res[0].DurationFallback)
	assert.Equal(t, 70.0, res[1].Age, "a chain through a self link falls back too")
	assert.True(t, res[1].AgeFallback)

	issues := r.Issues()
	require.Len(t, issues, 1)
	assert.Equal(t, IssueSelfReference, issues[0].Kind)
	assert.Equal(t, LinkDurationEnd, issues[0].Link)
}

func TestResolver_SelfStartLinkKeepsLiteralAge(t *testing.T) {
	m := testutil.NewTestMilestone("Gap", testutil.WithAge(50), testutil.WithDuration(3),
		testutil.WithStartAfter("Gap"))
	r := NewResolver([]*domain.Milestone{m})

	res := r.ResolveAll()
	require.Len(t, res, 1)
	assert.Equal(t, 50.0, res[0].Age)
	assert.True(t, res[0].AgeFallback)
	assert.Equal(t, 3.0, res[0].Duration)
	assert.False(t, res[0].DurationFallback)
}

func TestResolver_DurationEndAtMilestone(t *testing.T) {
	retire := testutil.NewTestMilestone("Retire", testutil.WithAge(65))
	salary := testutil.NewTestMilestone("Salary", testutil.WithType(domain.MilestoneIncome),
		testutil.WithAge(25), testutil.WithDuration(10), testutil.WithDurationEndAt("Retire"))
	monthly := testutil.NewTestMilestone("Rent", testutil.WithAge(60),
		testutil.WithOccurrence(domain.OccurrenceMonthly), testutil.WithDurationEndAt("Retire"))
	r := NewResolver([]*domain.Milestone{retire, salary, monthly})

	assert.Equal(t, 40.0, r.Duration(salary))
	assert.Equal(t, 60.0, r.Duration(monthly), "five years in months")
}

func TestResolver_NegativeDurationNotClamped(t *testing.T) {
	early := testutil.NewTestMilestone("Early", testutil.WithAge(40))
	late := testutil.NewTestMilestone("Late", testutil.WithAge(50), testutil.WithDurationEndAt("Early"))
	r := NewResolver([]*domain.Milestone{early, late})

	assert.Equal(t, -10.0, r.Duration(late))
}

func TestResolver_MutualStartAndDurationLinks(t *testing.T) {
	// A starts after B ends, and B's duration ends at A's start: a genuine cycle.
	a := testutil.NewTestMilestone("A", testutil.WithAge(30), testutil.WithStartAfter("B"))
	b := testutil.NewTestMilestone("B", testutil.WithAge(20), testutil.WithDuration(4), testutil.WithDurationEndAt("A"))
	r := NewResolver([]*domain.Milestone{a, b})

	assert.Equal(t, 30.0, r.Age(a))
	assert.Equal(t, 4.0, r.Duration(b))
}

func TestResolver_StartAndDurationChain(t *testing.T) {
	// Duration of B is resolved through B's own linked start without being
	// mistaken for a cycle.
	a := testutil.NewTestMilestone("A", testutil.WithAge(30), testutil.WithDuration(2))
	b := testutil.NewTestMilestone("B", testutil.WithStartAfter("A"), testutil.WithDurationEndAt("C"))
	c := testutil.NewTestMilestone("C", testutil.WithAge(50))
	r := NewResolver([]*domain.Milestone{a, b, c})

	assert.Equal(t, 32.0, r.Age(b))
	assert.Equal(t, 18.0, r.Duration(b))
	assert.Empty(t, r.Issues())
}

func TestResolver_DuplicateNameResolvesToFirst(t *testing.T) {
	first := testutil.NewTestMilestone("Job", testutil.WithAge(22), testutil.WithDuration(3))
	second := testutil.NewTestMilestone("Job", testutil.WithAge(40), testutil.WithDuration(9))
	next := testutil.NewTestMilestone("Next", testutil.WithStartAfter("Job"))
	r := NewResolver([]*domain.Milestone{first, second, next})

	assert.Equal(t, 25.0, r.Age(next))
	require.Len(t, r.Issues(), 1)
	assert.Equal(t, IssueDuplicateName, r.Issues()[0].Kind)
}

func TestResolver_LongChainStaysLinear(t *testing.T) {
	const n = 200
	milestones := make([]*domain.Milestone, 0, n)
	milestones = append(milestones, testutil.NewTestMilestone("m0", testutil.WithAge(20), testutil.WithDuration(1)))
	for i := 1; i < n; i++ {
		milestones = append(milestones, testutil.NewTestMilestone(
			nameOf(i),
			testutil.WithStartAfter(nameOf(i-1)),
			testutil.WithDuration(1),
			testutil.WithDurationEndAt(nameOf(0)),
		))
	}
	r := NewResolver(milestones)

	// Every link is resolvable; the resolver must finish without blowing up.
	res := r.ResolveAll()
	require.Len(t, res, n)
}

func nameOf(i int) string {
	return fmt.Sprintf("m%d", i)
}
