package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/horizon/internal/domain"
	"github.com/alexanderramin/horizon/internal/store"
)

// SnapshotSource loads the whole milestone state from the repositories so a
// store.Store can be filled from the local database.
type SnapshotSource struct {
	Milestones MilestoneRepo
	Parents    ParentMilestoneRepo
	Profile    ProfileRepo
}

var _ store.Source = (*SnapshotSource)(nil)

// Fetch reads profile, parents and milestones. A missing profile row falls
// back to the default profile.
func (s *SnapshotSource) Fetch(ctx context.Context) (*store.Snapshot, error) {
	profile, err := s.Profile.Get(ctx)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("loading profile: %w", err)
		}
		profile = domain.DefaultProfile()
	}
	parents, err := s.Parents.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading parent milestones: %w", err)
	}
	milestones, err := s.Milestones.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading milestones: %w", err)
	}
	return &store.Snapshot{
		CurrentAge:    profile.CurrentAge,
		InflationRate: profile.InflationRate,
		Milestones:    milestones,
		Parents:       parents,
	}, nil
}
