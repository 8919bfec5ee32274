package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type Milestone struct {
	ID              string
	Name            string
	AgeAtOccurrence int
	Type            MilestoneType
	Disbursement    DisbursementType

	// Amount and payment each declare which representation is stored.
	Amount           decimal.Decimal
	AmountValueType  ValueType
	Payment          *decimal.Decimal
	PaymentValueType ValueType

	Occurrence   Occurrence
	Duration     *int
	RateOfReturn float64
	Order        int

	ParentMilestoneID *string

	// Dynamic links, by milestone name. When set they replace the literal
	// age/duration; the literals are kept only as fallbacks.
	StartAfterMilestone    *string
	DurationEndAtMilestone *string

	GoalParameters          []string
	ScenarioParameterValues map[string][]float64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasStartLink reports whether the occurrence age is declared relative to another milestone.
func (m *Milestone) HasStartLink() bool {
	return m.StartAfterMilestone != nil && *m.StartAfterMilestone != ""
}

// HasDurationLink reports whether the duration ends at another milestone.
func (m *Milestone) HasDurationLink() bool {
	return m.DurationEndAtMilestone != nil && *m.DurationEndAtMilestone != ""
}

// LiteralDuration returns the stored duration, or 0 when unset.
func (m *Milestone) LiteralDuration() float64 {
	if m.Duration == nil {
		return 0
	}
	return float64(*m.Duration)
}

// ValidateLinks rejects dynamic links that name the milestone itself.
func (m *Milestone) ValidateLinks() error {
	if m.HasStartLink() && *m.StartAfterMilestone == m.Name {
		return fmt.Errorf("milestone %q cannot start after itself", m.Name)
	}
	if m.HasDurationLink() && *m.DurationEndAtMilestone == m.Name {
		return fmt.Errorf("milestone %q cannot end its duration at itself", m.Name)
	}
	return nil
}

// ParentID returns the parent id or "" when the milestone is ungrouped.
func (m *Milestone) ParentID() string {
	if m.ParentMilestoneID == nil {
		return ""
	}
	return *m.ParentMilestoneID
}

// Clone returns a deep copy of m.
func (m *Milestone) Clone() *Milestone {
	if m == nil {
		return nil
	}
	c := *m
	if m.Payment != nil {
		p := *m.Payment
		c.Payment = &p
	}
	c.Duration = cloneInt(m.Duration)
	c.ParentMilestoneID = cloneStr(m.ParentMilestoneID)
	c.StartAfterMilestone = cloneStr(m.StartAfterMilestone)
	c.DurationEndAtMilestone = cloneStr(m.DurationEndAtMilestone)
	if m.GoalParameters != nil {
		c.GoalParameters = append([]string(nil), m.GoalParameters...)
	}
	if m.ScenarioParameterValues != nil {
		c.ScenarioParameterValues = make(map[string][]float64, len(m.ScenarioParameterValues))
		for k, v := range m.ScenarioParameterValues {
			c.ScenarioParameterValues[k] = append([]float64(nil), v...)
		}
	}
	return &c
}

func cloneInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneStr(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
