package service

import (
	"context"

	"github.com/alexanderramin/horizon/internal/domain"
	"github.com/alexanderramin/horizon/internal/repository"
	"github.com/google/uuid"
)

type parentService struct {
	parents repository.ParentMilestoneRepo
}

func NewParentService(parents repository.ParentMilestoneRepo) ParentService {
	return &parentService{parents: parents}
}

func (s *parentService) Create(ctx context.Context, p *domain.ParentMilestone) error {
	if err := validateParent(p); err != nil {
		return err
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return s.parents.Create(ctx, p)
}

func (s *parentService) GetByID(ctx context.Context, id string) (*domain.ParentMilestone, error) {
	return s.parents.GetByID(ctx, id)
}

func (s *parentService) List(ctx context.Context) ([]*domain.ParentMilestone, error) {
	return s.parents.List(ctx)
}

func (s *parentService) Update(ctx context.Context, p *domain.ParentMilestone) error {
	if err := validateParent(p); err != nil {
		return err
	}
	return s.parents.Update(ctx, p)
}

// Delete removes the parent. Its children become top-level milestones.
func (s *parentService) Delete(ctx context.Context, id string) error {
	return s.parents.Delete(ctx, id)
}
