package importer

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/shopspring/decimal"
)

// Document is the JSON exchange format for a whole milestone state.
type Document struct {
	CurrentAge       *int              `json:"current_age,omitempty" validate:"omitempty,gte=0,lte=150"`
	InflationRate    *float64          `json:"inflation_rate,omitempty" validate:"omitempty,gt=-1"`
	Milestones       []MilestoneRecord `json:"milestones" validate:"dive"`
	ParentMilestones []ParentRecord    `json:"parent_milestones" validate:"dive"`
}

// MilestoneRecord is one milestone on the wire. Amounts accept a JSON number
// or a decimal string.
type MilestoneRecord struct {
	ID                      string               `json:"id"`
	Name                    string               `json:"name" validate:"required"`
	AgeAtOccurrence         *int                 `json:"age_at_occurrence" validate:"omitempty,gte=0"`
	MilestoneType           string               `json:"milestone_type" validate:"required,oneof=Expense Income Asset Liability"`
	DisbursementType        string               `json:"disbursement_type" validate:"omitempty,oneof=None 'Fixed Duration' Perpetuity"`
	Amount                  decimal.Decimal      `json:"amount"`
	AmountValueType         string               `json:"amount_value_type" validate:"omitempty,oneof=FV PV"`
	Payment                 *decimal.Decimal     `json:"payment"`
	PaymentValueType        string               `json:"payment_value_type" validate:"omitempty,oneof=FV PV"`
	Occurrence              string               `json:"occurrence" validate:"omitempty,oneof=Monthly Yearly"`
	Duration                *int                 `json:"duration" validate:"omitempty,gte=0"`
	RateOfReturn            float64              `json:"rate_of_return" validate:"gt=-1"`
	Order                   int                  `json:"order"`
	ParentMilestoneID       *string              `json:"parent_milestone_id"`
	StartAfterMilestone     *string              `json:"start_after_milestone"`
	DurationEndAtMilestone  *string              `json:"duration_end_at_milestone"`
	GoalParameters          []string             `json:"goal_parameters" validate:"dive,required"`
	ScenarioParameterValues map[string][]float64 `json:"scenario_parameter_values"`
}

// ParentRecord is one parent milestone on the wire.
type ParentRecord struct {
	ID     string `json:"id" validate:"required"`
	Name   string `json:"name" validate:"required"`
	MinAge int    `json:"min_age" validate:"gte=0"`
	MaxAge int    `json:"max_age" validate:"gtefield=MinAge"`
}

// LoadDocument reads and parses a JSON document file.
func LoadDocument(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseDocument(f)
}

// ParseDocument decodes a JSON document.
func ParseDocument(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}
	return &doc, nil
}

// WriteDocument encodes doc as indented JSON.
func WriteDocument(w io.Writer, doc *Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding document: %w", err)
	}
	return nil
}
