package testutil

import (
	"time"

	"github.com/alexanderramin/horizon/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Milestone options
type MilestoneOption func(*domain.Milestone)

func WithID(id string) MilestoneOption {
	return func(m *domain.Milestone) {
		m.ID = id
	}
}

func WithAge(age int) MilestoneOption {
	return func(m *domain.Milestone) {
		m.AgeAtOccurrence = age
	}
}

func WithType(t domain.MilestoneType) MilestoneOption {
	return func(m *domain.Milestone) {
		m.Type = t
	}
}

func WithDisbursement(d domain.DisbursementType) MilestoneOption {
	return func(m *domain.Milestone) {
		m.Disbursement = d
	}
}

func WithAmount(amount float64, vt domain.ValueType) MilestoneOption {
	return func(m *domain.Milestone) {
		m.Amount = decimal.NewFromFloat(amount)
		m.AmountValueType = vt
	}
}

func WithPayment(payment float64, vt domain.ValueType) MilestoneOption {
	return func(m *domain.Milestone) {
		p := decimal.NewFromFloat(payment)
		m.Payment = &p
		m.PaymentValueType = vt
	}
}

func WithOccurrence(o domain.Occurrence) MilestoneOption {
	return func(m *domain.Milestone) {
		m.Occurrence = o
	}
}

func WithDuration(n int) MilestoneOption {
	return func(m *domain.Milestone) {
		m.Duration = &n
	}
}

func WithRate(rate float64) MilestoneOption {
	return func(m *domain.Milestone) {
		m.RateOfReturn = rate
	}
}

func WithOrder(order int) MilestoneOption {
	return func(m *domain.Milestone) {
		m.Order = order
	}
}

func WithParent(parentID string) MilestoneOption {
	return func(m *domain.Milestone) {
		m.ParentMilestoneID = &parentID
	}
}

func WithStartAfter(name string) MilestoneOption {
	return func(m *domain.Milestone) {
		m.StartAfterMilestone = &name
	}
}

func WithDurationEndAt(name string) MilestoneOption {
	return func(m *domain.Milestone) {
		m.DurationEndAtMilestone = &name
	}
}

func WithGoalParameters(fields ...string) MilestoneOption {
	return func(m *domain.Milestone) {
		m.GoalParameters = fields
	}
}

func WithScenarioValues(field string, values ...float64) MilestoneOption {
	return func(m *domain.Milestone) {
		if m.ScenarioParameterValues == nil {
			m.ScenarioParameterValues = make(map[string][]float64)
		}
		m.ScenarioParameterValues[field] = values
	}
}

// NewTestMilestone returns a yearly, fixed-duration PV expense of 1000 at age
// 30 with a zero rate, adjusted by opts.
func NewTestMilestone(name string, opts ...MilestoneOption) *domain.Milestone {
	now := time.Now().UTC().Truncate(time.Second)
	m := &domain.Milestone{
		ID:               uuid.New().String(),
		Name:             name,
		AgeAtOccurrence:  30,
		Type:             domain.MilestoneExpense,
		Disbursement:     domain.DisbursementFixedDuration,
		Amount:           decimal.NewFromInt(1000),
		AmountValueType:  domain.ValuePV,
		PaymentValueType: domain.ValuePV,
		Occurrence:       domain.OccurrenceYearly,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// NewTestParent returns a parent milestone spanning minAge..maxAge.
func NewTestParent(name string, minAge, maxAge int) *domain.ParentMilestone {
	return &domain.ParentMilestone{
		ID:     uuid.New().String(),
		Name:   name,
		MinAge: minAge,
		MaxAge: maxAge,
	}
}
