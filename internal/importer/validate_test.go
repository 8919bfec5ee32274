package importer

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptrStr(s string) *string { return &s }
func ptrInt(i int) *int       { return &i }

func validMinimalDocument() *Document {
	return &Document{
		Milestones: []MilestoneRecord{
			{ID: "m1", Name: "Rent", MilestoneType: "Expense", Amount: decimal.NewFromInt(1200)},
		},
	}
}

func errorText(errs []error) string {
	var b strings.Builder
	for _, e := range errs {
		b.WriteString(e.Error())
		b.WriteString("\n")
	}
	return b.String()
}

func TestValidateDocument_ValidMinimal(t *testing.T) {
	assert.Empty(t, ValidateDocument(validMinimalDocument()))
}

func TestValidateDocument_ValidFile(t *testing.T) {
	doc, err := LoadDocument("testdata/plan.json")
	require.NoError(t, err)
	assert.Empty(t, ValidateDocument(doc))
}

func TestValidateDocument_FieldErrors(t *testing.T) {
	doc := &Document{
		CurrentAge: ptrInt(-1),
		Milestones: []MilestoneRecord{
			{ID: "m1", MilestoneType: "Group"},
			{ID: "m2", Name: "Loan", MilestoneType: "Liability", Occurrence: "Weekly", Duration: ptrInt(-2)},
			{ID: "m3", Name: "Trip", MilestoneType: "Expense", DisbursementType: "Fixed Duration", AmountValueType: "NPV"},
		},
		ParentMilestones: []ParentRecord{{ID: "p1", Name: "Kids", MinAge: 40, MaxAge: 30}},
	}

	errs := ValidateDocument(doc)
	text := errorText(errs)

	assert.Contains(t, text, "current_age: must be >= 0")
	assert.Contains(t, text, "milestones[0].name: is required")
	assert.Contains(t, text, `milestones[0].milestone_type: invalid value "Group"`)
	assert.Contains(t, text, `milestones[1].occurrence: invalid value "Weekly"`)
	assert.Contains(t, text, "milestones[1].duration: must be >= 0")
	assert.Contains(t, text, `milestones[2].amount_value_type: invalid value "NPV"`)
	assert.NotContains(t, text, "milestones[2].disbursement_type", "quoted oneof values accept spaces")
	assert.Contains(t, text, "parent_milestones[0].max_age: must be >= min_age")
}

func TestValidateDocument_CrossRecordErrors(t *testing.T) {
	doc := &Document{
		ParentMilestones: []ParentRecord{
			{ID: "p1", Name: "A"},
			{ID: "p1", Name: "B"},
		},
		Milestones: []MilestoneRecord{
			{ID: "m1", Name: "Loop", MilestoneType: "Expense", StartAfterMilestone: ptrStr("Loop")},
			{ID: "m1", Name: "Dup", MilestoneType: "Expense"},
			{ID: "m3", Name: "Orphan", MilestoneType: "Expense", ParentMilestoneID: ptrStr("gone")},
			{ID: "m4", Name: "Tail", MilestoneType: "Expense", DurationEndAtMilestone: ptrStr("Tail")},
		},
	}

	text := errorText(ValidateDocument(doc))

	assert.Contains(t, text, `parent_milestones[1].id: duplicate id "p1"`)
	assert.Contains(t, text, "milestones[0]: milestone \"Loop\" cannot start after itself")
	assert.Contains(t, text, `milestones[1].id: duplicate id "m1"`)
	assert.Contains(t, text, `milestones[2].parent_milestone_id: "gone" not found`)
	assert.Contains(t, text, "cannot end its duration at itself")
}

func TestValidateDocument_DanglingLinkIsAllowed(t *testing.T) {
	doc := validMinimalDocument()
	doc.Milestones[0].StartAfterMilestone = ptrStr("Nowhere")
	assert.Empty(t, ValidateDocument(doc))
}

func TestJoinErrors(t *testing.T) {
	assert.NoError(t, JoinErrors(nil))

	err := JoinErrors(ValidateDocument(&Document{Milestones: []MilestoneRecord{{}}}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed:")
	assert.Contains(t, err.Error(), "  - milestones[0].name: is required")
}
