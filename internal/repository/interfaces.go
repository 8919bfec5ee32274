package repository

import (
	"context"
	"errors"

	"github.com/alexanderramin/horizon/internal/domain"
)

// ErrNotFound is wrapped by every lookup that matches no row.
var ErrNotFound = errors.New("not found")

type MilestoneRepo interface {
	Create(ctx context.Context, m *domain.Milestone) error
	GetByID(ctx context.Context, id string) (*domain.Milestone, error)
	// GetByName returns the first milestone with the given name in list order.
	GetByName(ctx context.Context, name string) (*domain.Milestone, error)
	// List returns milestones in insertion order.
	List(ctx context.Context) ([]*domain.Milestone, error)
	ListByParent(ctx context.Context, parentID string) ([]*domain.Milestone, error)
	Update(ctx context.Context, m *domain.Milestone) error
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) error
}

type ParentMilestoneRepo interface {
	Create(ctx context.Context, p *domain.ParentMilestone) error
	GetByID(ctx context.Context, id string) (*domain.ParentMilestone, error)
	List(ctx context.Context) ([]*domain.ParentMilestone, error)
	Update(ctx context.Context, p *domain.ParentMilestone) error
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) error
}

type ProfileRepo interface {
	Get(ctx context.Context) (*domain.Profile, error)
	Upsert(ctx context.Context, p *domain.Profile) error
}
