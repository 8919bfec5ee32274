package importer

import (
	"errors"
	"strings"
	"time"

	"github.com/alexanderramin/horizon/internal/domain"
	"github.com/alexanderramin/horizon/internal/store"
	"github.com/google/uuid"
)

// Convert transforms a validated Document into a store snapshot. Unset enum
// fields take their defaults and milestones without an id get a new one.
// Call ValidateDocument first; Convert assumes the document is valid.
func Convert(doc *Document) *store.Snapshot {
	now := time.Now().UTC().Truncate(time.Second)
	profile := domain.DefaultProfile()
	if doc.CurrentAge != nil {
		profile.CurrentAge = *doc.CurrentAge
	}
	if doc.InflationRate != nil {
		profile.InflationRate = *doc.InflationRate
	}

	snap := &store.Snapshot{
		CurrentAge:    profile.CurrentAge,
		InflationRate: profile.InflationRate,
		Milestones:    make([]*domain.Milestone, 0, len(doc.Milestones)),
		Parents:       make([]*domain.ParentMilestone, 0, len(doc.ParentMilestones)),
	}

	for _, p := range doc.ParentMilestones {
		snap.Parents = append(snap.Parents, &domain.ParentMilestone{
			ID:     p.ID,
			Name:   p.Name,
			MinAge: p.MinAge,
			MaxAge: p.MaxAge,
		})
	}

	for _, r := range doc.Milestones {
		m := &domain.Milestone{
			ID:                      domain.CoalesceStr(r.ID, uuid.New().String()),
			Name:                    r.Name,
			Type:                    domain.MilestoneType(r.MilestoneType),
			Disbursement:            domain.DisbursementType(domain.CoalesceStr(r.DisbursementType, string(domain.DisbursementFixedDuration))),
			Amount:                  r.Amount,
			AmountValueType:         domain.ValueType(domain.CoalesceStr(r.AmountValueType, string(domain.ValuePV))),
			Payment:                 r.Payment,
			PaymentValueType:        domain.ValueType(domain.CoalesceStr(r.PaymentValueType, string(domain.ValuePV))),
			Occurrence:              domain.Occurrence(domain.CoalesceStr(r.Occurrence, string(domain.OccurrenceYearly))),
			Duration:                r.Duration,
			RateOfReturn:            r.RateOfReturn,
			Order:                   r.Order,
			ParentMilestoneID:       domain.NonEmptyPtr(r.ParentMilestoneID),
			StartAfterMilestone:     domain.NonEmptyPtr(r.StartAfterMilestone),
			DurationEndAtMilestone:  domain.NonEmptyPtr(r.DurationEndAtMilestone),
			GoalParameters:          r.GoalParameters,
			ScenarioParameterValues: r.ScenarioParameterValues,
			CreatedAt:               now,
			UpdatedAt:               now,
		}
		if r.AgeAtOccurrence != nil {
			m.AgeAtOccurrence = *r.AgeAtOccurrence
		}
		snap.Milestones = append(snap.Milestones, m)
	}

	return snap
}

// Export builds a Document from a snapshot.
func Export(snap store.Snapshot) *Document {
	age := snap.CurrentAge
	rate := snap.InflationRate
	doc := &Document{
		CurrentAge:       &age,
		InflationRate:    &rate,
		Milestones:       make([]MilestoneRecord, 0, len(snap.Milestones)),
		ParentMilestones: make([]ParentRecord, 0, len(snap.Parents)),
	}
	for _, p := range snap.Parents {
		doc.ParentMilestones = append(doc.ParentMilestones, ParentRecord{
			ID: p.ID, Name: p.Name, MinAge: p.MinAge, MaxAge: p.MaxAge,
		})
	}
	for _, m := range snap.Milestones {
		age := m.AgeAtOccurrence
		doc.Milestones = append(doc.Milestones, MilestoneRecord{
			ID:                      m.ID,
			Name:                    m.Name,
			AgeAtOccurrence:         &age,
			MilestoneType:           string(m.Type),
			DisbursementType:        string(m.Disbursement),
			Amount:                  m.Amount,
			AmountValueType:         string(m.AmountValueType),
			Payment:                 m.Payment,
			PaymentValueType:        string(m.PaymentValueType),
			Occurrence:              string(m.Occurrence),
			Duration:                m.Duration,
			RateOfReturn:            m.RateOfReturn,
			Order:                   m.Order,
			ParentMilestoneID:       m.ParentMilestoneID,
			StartAfterMilestone:     m.StartAfterMilestone,
			DurationEndAtMilestone:  m.DurationEndAtMilestone,
			GoalParameters:          m.GoalParameters,
			ScenarioParameterValues: m.ScenarioParameterValues,
		})
	}
	return doc
}

// JoinErrors folds validation errors into one error, or nil.
func JoinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, "  - "+e.Error())
	}
	return errors.New("validation failed:\n" + strings.Join(msgs, "\n"))
}
