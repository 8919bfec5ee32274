package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/horizon/internal/domain"
	"github.com/alexanderramin/horizon/internal/repository"
)

type profileService struct {
	profiles repository.ProfileRepo
}

func NewProfileService(profiles repository.ProfileRepo) ProfileService {
	return &profileService{profiles: profiles}
}

// Get returns the stored profile, or the default one when none is stored.
func (s *profileService) Get(ctx context.Context) (*domain.Profile, error) {
	p, err := s.profiles.Get(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		return domain.DefaultProfile(), nil
	}
	return p, err
}

func (s *profileService) Update(ctx context.Context, p *domain.Profile) error {
	if p.CurrentAge < 0 {
		return fmt.Errorf("current age must be >= 0, got %d", p.CurrentAge)
	}
	if p.InflationRate <= -1 {
		return fmt.Errorf("inflation rate must be > -1, got %g", p.InflationRate)
	}
	if p.ID == "" {
		p.ID = domain.DefaultProfile().ID
	}
	return s.profiles.Upsert(ctx, p)
}
