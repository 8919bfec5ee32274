package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/horizon/internal/db"
	"github.com/alexanderramin/horizon/internal/domain"
	"github.com/shopspring/decimal"
)

// SQLiteMilestoneRepo implements MilestoneRepo using a SQLite database.
type SQLiteMilestoneRepo struct {
	db db.DBTX
}

// NewSQLiteMilestoneRepo creates a new SQLiteMilestoneRepo.
func NewSQLiteMilestoneRepo(conn db.DBTX) *SQLiteMilestoneRepo {
	return &SQLiteMilestoneRepo{db: conn}
}

const milestoneColumns = `id, name, age_at_occurrence, milestone_type, disbursement_type,
	amount, amount_value_type, payment, payment_value_type, occurrence, duration,
	rate_of_return, order_index, parent_milestone_id, start_after_milestone,
	duration_end_at_milestone, goal_parameters, scenario_parameter_values,
	created_at, updated_at`

func (r *SQLiteMilestoneRepo) Create(ctx context.Context, m *domain.Milestone) error {
	goals, scenarios, err := encodeMilestoneJSON(m)
	if err != nil {
		return err
	}
	query := `INSERT INTO milestones (` + milestoneColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		m.ID,
		m.Name,
		m.AgeAtOccurrence,
		string(m.Type),
		string(m.Disbursement),
		m.Amount,
		string(m.AmountValueType),
		nullableDecimal(m.Payment),
		string(m.PaymentValueType),
		string(m.Occurrence),
		nullableIntToValue(m.Duration),
		m.RateOfReturn,
		m.Order,
		nullableStrToValue(m.ParentMilestoneID),
		nullableStrToValue(m.StartAfterMilestone),
		nullableStrToValue(m.DurationEndAtMilestone),
		goals,
		scenarios,
		m.CreatedAt.UTC().Format(time.RFC3339),
		m.UpdatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting milestone: %w", err)
	}
	return nil
}

func (r *SQLiteMilestoneRepo) GetByID(ctx context.Context, id string) (*domain.Milestone, error) {
	query := `SELECT ` + milestoneColumns + ` FROM milestones WHERE id = ?`
	return r.scanMilestone(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteMilestoneRepo) GetByName(ctx context.Context, name string) (*domain.Milestone, error) {
	query := `SELECT ` + milestoneColumns + ` FROM milestones WHERE name = ? ORDER BY rowid LIMIT 1`
	return r.scanMilestone(r.db.QueryRowContext(ctx, query, name))
}

func (r *SQLiteMilestoneRepo) List(ctx context.Context) ([]*domain.Milestone, error) {
	query := `SELECT ` + milestoneColumns + ` FROM milestones ORDER BY rowid`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing milestones: %w", err)
	}
	defer rows.Close()
	return r.scanMilestones(rows)
}

func (r *SQLiteMilestoneRepo) ListByParent(ctx context.Context, parentID string) ([]*domain.Milestone, error) {
	query := `SELECT ` + milestoneColumns + ` FROM milestones
		WHERE parent_milestone_id = ? ORDER BY order_index, name`
	rows, err := r.db.QueryContext(ctx, query, parentID)
	if err != nil {
		return nil, fmt.Errorf("listing milestones by parent: %w", err)
	}
	defer rows.Close()
	return r.scanMilestones(rows)
}

func (r *SQLiteMilestoneRepo) Update(ctx context.Context, m *domain.Milestone) error {
	goals, scenarios, err := encodeMilestoneJSON(m)
	if err != nil {
		return err
	}
	query := `UPDATE milestones SET name = ?, age_at_occurrence = ?, milestone_type = ?,
		disbursement_type = ?, amount = ?, amount_value_type = ?, payment = ?,
		payment_value_type = ?, occurrence = ?, duration = ?, rate_of_return = ?,
		order_index = ?, parent_milestone_id = ?, start_after_milestone = ?,
		duration_end_at_milestone = ?, goal_parameters = ?, scenario_parameter_values = ?,
		updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		m.Name,
		m.AgeAtOccurrence,
		string(m.Type),
		string(m.Disbursement),
		m.Amount,
		string(m.AmountValueType),
		nullableDecimal(m.Payment),
		string(m.PaymentValueType),
		string(m.Occurrence),
		nullableIntToValue(m.Duration),
		m.RateOfReturn,
		m.Order,
		nullableStrToValue(m.ParentMilestoneID),
		nullableStrToValue(m.StartAfterMilestone),
		nullableStrToValue(m.DurationEndAtMilestone),
		goals,
		scenarios,
		m.UpdatedAt.UTC().Format(time.RFC3339),
		m.ID,
	)
	if err != nil {
		return fmt.Errorf("updating milestone: %w", err)
	}
	return requireAffected(res, "milestone")
}

func (r *SQLiteMilestoneRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM milestones WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting milestone: %w", err)
	}
	return requireAffected(res, "milestone")
}

func (r *SQLiteMilestoneRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM milestones`); err != nil {
		return fmt.Errorf("clearing milestones: %w", err)
	}
	return nil
}

// scanMilestone scans a single milestone row from a *sql.Row.
func (r *SQLiteMilestoneRepo) scanMilestone(row *sql.Row) (*domain.Milestone, error) {
	var raw milestoneRow
	if err := row.Scan(raw.dest()...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("milestone: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning milestone: %w", err)
	}
	return raw.populate()
}

func (r *SQLiteMilestoneRepo) scanMilestones(rows *sql.Rows) ([]*domain.Milestone, error) {
	var out []*domain.Milestone
	for rows.Next() {
		var raw milestoneRow
		if err := rows.Scan(raw.dest()...); err != nil {
			return nil, fmt.Errorf("scanning milestone row: %w", err)
		}
		m, err := raw.populate()
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating milestones: %w", err)
	}
	return out, nil
}

// milestoneRow holds the raw column values of one milestones row.
type milestoneRow struct {
	m                           domain.Milestone
	typ, disbursement, occ      string
	amountVT, paymentVT         string
	payment                     decimal.NullDecimal
	duration                    sql.NullInt64
	parentID, startAfter, endAt sql.NullString
	goals, scenarios            string
	createdAtStr, updatedAtStr  string
}

func (raw *milestoneRow) dest() []any {
	return []any{
		&raw.m.ID, &raw.m.Name, &raw.m.AgeAtOccurrence, &raw.typ, &raw.disbursement,
		&raw.m.Amount, &raw.amountVT, &raw.payment, &raw.paymentVT, &raw.occ, &raw.duration,
		&raw.m.RateOfReturn, &raw.m.Order, &raw.parentID, &raw.startAfter,
		&raw.endAt, &raw.goals, &raw.scenarios,
		&raw.createdAtStr, &raw.updatedAtStr,
	}
}

// populate fills in parsed fields after scanning raw strings.
func (raw *milestoneRow) populate() (*domain.Milestone, error) {
	m := raw.m
	m.Type = domain.MilestoneType(raw.typ)
	m.Disbursement = domain.DisbursementType(raw.disbursement)
	m.AmountValueType = domain.ValueType(raw.amountVT)
	m.PaymentValueType = domain.ValueType(raw.paymentVT)
	m.Occurrence = domain.Occurrence(raw.occ)
	if raw.payment.Valid {
		p := raw.payment.Decimal
		m.Payment = &p
	}
	m.Duration = nullIntPtr(raw.duration)
	m.ParentMilestoneID = nullStringPtr(raw.parentID)
	m.StartAfterMilestone = nullStringPtr(raw.startAfter)
	m.DurationEndAtMilestone = nullStringPtr(raw.endAt)

	if err := json.Unmarshal([]byte(raw.goals), &m.GoalParameters); err != nil {
		return nil, fmt.Errorf("parsing goal_parameters: %w", err)
	}
	if err := json.Unmarshal([]byte(raw.scenarios), &m.ScenarioParameterValues); err != nil {
		return nil, fmt.Errorf("parsing scenario_parameter_values: %w", err)
	}
	if len(m.GoalParameters) == 0 {
		m.GoalParameters = nil
	}
	if len(m.ScenarioParameterValues) == 0 {
		m.ScenarioParameterValues = nil
	}

	var err error
	m.CreatedAt, m.UpdatedAt, err = parseTimestamps(raw.createdAtStr, raw.updatedAtStr)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func encodeMilestoneJSON(m *domain.Milestone) (goals, scenarios string, err error) {
	goals, err = encodeJSON(m.GoalParameters, "[]")
	if err != nil {
		return "", "", fmt.Errorf("encoding goal_parameters: %w", err)
	}
	scenarios, err = encodeJSON(m.ScenarioParameterValues, "{}")
	if err != nil {
		return "", "", fmt.Errorf("encoding scenario_parameter_values: %w", err)
	}
	return goals, scenarios, nil
}

func nullableDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}

func requireAffected(res sql.Result, entity string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking %s rows affected: %w", entity, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", entity, ErrNotFound)
	}
	return nil
}
