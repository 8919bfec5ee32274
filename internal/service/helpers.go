package service

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/horizon/internal/domain"
)

// applyMilestoneDefaults fills enum fields left empty by the caller.
func applyMilestoneDefaults(m *domain.Milestone) {
	if m.Disbursement == "" {
		m.Disbursement = domain.DisbursementFixedDuration
	}
	if m.AmountValueType == "" {
		m.AmountValueType = domain.ValuePV
	}
	if m.PaymentValueType == "" {
		m.PaymentValueType = domain.ValuePV
	}
	if m.Occurrence == "" {
		m.Occurrence = domain.OccurrenceYearly
	}
	m.ParentMilestoneID = domain.NonEmptyPtr(m.ParentMilestoneID)
	m.StartAfterMilestone = domain.NonEmptyPtr(m.StartAfterMilestone)
	m.DurationEndAtMilestone = domain.NonEmptyPtr(m.DurationEndAtMilestone)
}

func validateMilestone(m *domain.Milestone) error {
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("milestone name is required")
	}
	if !domain.ValidMilestoneTypes[string(m.Type)] {
		return fmt.Errorf("invalid milestone type %q", m.Type)
	}
	if !domain.ValidDisbursementTypes[string(m.Disbursement)] {
		return fmt.Errorf("invalid disbursement type %q", m.Disbursement)
	}
	if !domain.ValidValueTypes[string(m.AmountValueType)] {
		return fmt.Errorf("invalid amount value type %q", m.AmountValueType)
	}
	if !domain.ValidValueTypes[string(m.PaymentValueType)] {
		return fmt.Errorf("invalid payment value type %q", m.PaymentValueType)
	}
	if !domain.ValidOccurrences[string(m.Occurrence)] {
		return fmt.Errorf("invalid occurrence %q", m.Occurrence)
	}
	if m.AgeAtOccurrence < 0 {
		return fmt.Errorf("age must be >= 0, got %d", m.AgeAtOccurrence)
	}
	if m.Duration != nil && *m.Duration < 0 {
		return fmt.Errorf("duration must be >= 0, got %d", *m.Duration)
	}
	if m.RateOfReturn <= -1 {
		return fmt.Errorf("rate of return must be > -1, got %g", m.RateOfReturn)
	}
	return m.ValidateLinks()
}

func validateParent(p *domain.ParentMilestone) error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("parent milestone name is required")
	}
	if p.MinAge < 0 {
		return fmt.Errorf("min age must be >= 0, got %d", p.MinAge)
	}
	if p.MaxAge < p.MinAge {
		return fmt.Errorf("max age %d is before min age %d", p.MaxAge, p.MinAge)
	}
	return nil
}

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("import validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%s", msg)
}
