package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/horizon/internal/db"
	"github.com/alexanderramin/horizon/internal/domain"
)

// SQLiteParentMilestoneRepo implements ParentMilestoneRepo using a SQLite database.
type SQLiteParentMilestoneRepo struct {
	db db.DBTX
}

func NewSQLiteParentMilestoneRepo(conn db.DBTX) *SQLiteParentMilestoneRepo {
	return &SQLiteParentMilestoneRepo{db: conn}
}

func (r *SQLiteParentMilestoneRepo) Create(ctx context.Context, p *domain.ParentMilestone) error {
	now := nowUTC()
	query := `INSERT INTO parent_milestones (id, name, min_age, max_age, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query, p.ID, p.Name, p.MinAge, p.MaxAge, now, now); err != nil {
		return fmt.Errorf("inserting parent milestone: %w", err)
	}
	return nil
}

func (r *SQLiteParentMilestoneRepo) GetByID(ctx context.Context, id string) (*domain.ParentMilestone, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name, min_age, max_age FROM parent_milestones WHERE id = ?`, id)

	var p domain.ParentMilestone
	if err := row.Scan(&p.ID, &p.Name, &p.MinAge, &p.MaxAge); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("parent milestone: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning parent milestone: %w", err)
	}
	return &p, nil
}

func (r *SQLiteParentMilestoneRepo) List(ctx context.Context) ([]*domain.ParentMilestone, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, min_age, max_age FROM parent_milestones ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("listing parent milestones: %w", err)
	}
	defer rows.Close()

	var parents []*domain.ParentMilestone
	for rows.Next() {
		var p domain.ParentMilestone
		if err := rows.Scan(&p.ID, &p.Name, &p.MinAge, &p.MaxAge); err != nil {
			return nil, fmt.Errorf("scanning parent milestone row: %w", err)
		}
		parents = append(parents, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating parent milestones: %w", err)
	}
	return parents, nil
}

func (r *SQLiteParentMilestoneRepo) Update(ctx context.Context, p *domain.ParentMilestone) error {
	query := `UPDATE parent_milestones SET name = ?, min_age = ?, max_age = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, p.Name, p.MinAge, p.MaxAge, nowUTC(), p.ID)
	if err != nil {
		return fmt.Errorf("updating parent milestone: %w", err)
	}
	return requireAffected(res, "parent milestone")
}

// Delete removes the parent. Its children become ungrouped.
func (r *SQLiteParentMilestoneRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM parent_milestones WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting parent milestone: %w", err)
	}
	return requireAffected(res, "parent milestone")
}

func (r *SQLiteParentMilestoneRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM parent_milestones`); err != nil {
		return fmt.Errorf("clearing parent milestones: %w", err)
	}
	return nil
}
