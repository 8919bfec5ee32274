package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/horizon/internal/domain"
	"github.com/alexanderramin/horizon/internal/repository"
	"github.com/google/uuid"
)

type milestoneService struct {
	milestones repository.MilestoneRepo
	parents    repository.ParentMilestoneRepo
}

func NewMilestoneService(milestones repository.MilestoneRepo, parents repository.ParentMilestoneRepo) MilestoneService {
	return &milestoneService{milestones: milestones, parents: parents}
}

func (s *milestoneService) Create(ctx context.Context, m *domain.Milestone) error {
	applyMilestoneDefaults(m)
	if err := validateMilestone(m); err != nil {
		return err
	}
	if err := s.checkParent(ctx, m); err != nil {
		return err
	}
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	m.CreatedAt = now
	m.UpdatedAt = now
	return s.milestones.Create(ctx, m)
}

func (s *milestoneService) GetByID(ctx context.Context, id string) (*domain.Milestone, error) {
	return s.milestones.GetByID(ctx, id)
}

func (s *milestoneService) Find(ctx context.Context, ref string) (*domain.Milestone, error) {
	m, err := s.milestones.GetByID(ctx, ref)
	if err == nil {
		return m, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	return s.milestones.GetByName(ctx, ref)
}

func (s *milestoneService) List(ctx context.Context) ([]*domain.Milestone, error) {
	return s.milestones.List(ctx)
}

func (s *milestoneService) ListByParent(ctx context.Context, parentID string) ([]*domain.Milestone, error) {
	return s.milestones.ListByParent(ctx, parentID)
}

func (s *milestoneService) Update(ctx context.Context, m *domain.Milestone) error {
	applyMilestoneDefaults(m)
	if err := validateMilestone(m); err != nil {
		return err
	}
	if err := s.checkParent(ctx, m); err != nil {
		return err
	}
	m.UpdatedAt = time.Now().UTC()
	return s.milestones.Update(ctx, m)
}

func (s *milestoneService) Delete(ctx context.Context, id string) error {
	return s.milestones.Delete(ctx, id)
}

func (s *milestoneService) checkParent(ctx context.Context, m *domain.Milestone) error {
	pid := m.ParentID()
	if pid == "" {
		return nil
	}
	if _, err := s.parents.GetByID(ctx, pid); err != nil {
		return fmt.Errorf("parent milestone %s: %w", pid, err)
	}
	return nil
}
