package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/horizon/internal/db"
	"github.com/alexanderramin/horizon/internal/domain"
)

// SQLiteProfileRepo implements ProfileRepo using a SQLite database.
type SQLiteProfileRepo struct {
	db db.DBTX
}

// NewSQLiteProfileRepo creates a new SQLiteProfileRepo.
func NewSQLiteProfileRepo(conn db.DBTX) *SQLiteProfileRepo {
	return &SQLiteProfileRepo{db: conn}
}

func (r *SQLiteProfileRepo) Get(ctx context.Context) (*domain.Profile, error) {
	query := `SELECT id, current_age, inflation_rate FROM profile WHERE id = 'default'`
	row := r.db.QueryRowContext(ctx, query)

	var p domain.Profile
	if err := row.Scan(&p.ID, &p.CurrentAge, &p.InflationRate); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("profile: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning profile: %w", err)
	}
	return &p, nil
}

func (r *SQLiteProfileRepo) Upsert(ctx context.Context, p *domain.Profile) error {
	id := domain.CoalesceStr(p.ID, "default")
	query := `INSERT OR REPLACE INTO profile (id, current_age, inflation_rate, updated_at)
		VALUES (?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query, id, p.CurrentAge, p.InflationRate, nowUTC()); err != nil {
		return fmt.Errorf("upserting profile: %w", err)
	}
	return nil
}
