package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/horizon/internal/domain"
	"github.com/alexanderramin/horizon/internal/repository"
	"github.com/alexanderramin/horizon/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMilestoneService(t *testing.T) (MilestoneService, repository.MilestoneRepo, repository.ParentMilestoneRepo) {
	t.Helper()
	db := testutil.NewTestDB(t)
	mRepo := repository.NewSQLiteMilestoneRepo(db)
	pRepo := repository.NewSQLiteParentMilestoneRepo(db)
	return NewMilestoneService(mRepo, pRepo), mRepo, pRepo
}

func TestMilestoneService_Create_AssignsIDAndDefaults(t *testing.T) {
	svc, _, _ := setupMilestoneService(t)
	ctx := context.Background()

	m := &domain.Milestone{Name: "Rent", Type: domain.MilestoneExpense, AgeAtOccurrence: 30}
	require.NoError(t, svc.Create(ctx, m))

	assert.NotEmpty(t, m.ID, "service should assign UUID")
	assert.False(t, m.CreatedAt.IsZero())
	assert.Equal(t, domain.DisbursementFixedDuration, m.Disbursement)
	assert.Equal(t, domain.ValuePV, m.AmountValueType)
	assert.Equal(t, domain.OccurrenceYearly, m.Occurrence)

	fetched, err := svc.GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "Rent", fetched.Name)
}

func TestMilestoneService_Create_Rejects(t *testing.T) {
	svc, mRepo, _ := setupMilestoneService(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		opts    []testutil.MilestoneOption
		wantErr string
	}{
		{"group type", []testutil.MilestoneOption{testutil.WithType(domain.MilestoneGroup)}, "invalid milestone type"},
		{"bad occurrence", []testutil.MilestoneOption{testutil.WithOccurrence("Weekly")}, "invalid occurrence"},
		{"negative duration", []testutil.MilestoneOption{testutil.WithDuration(-1)}, "duration must be >= 0"},
		{"negative age", []testutil.MilestoneOption{testutil.WithAge(-5)}, "age must be >= 0"},
		{"self start link", []testutil.MilestoneOption{testutil.WithStartAfter("Loop")}, "cannot start after itself"},
		{"self duration link", []testutil.MilestoneOption{testutil.WithDurationEndAt("Loop")}, "cannot end its duration at itself"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := testutil.NewTestMilestone("Loop", tt.opts...)
			err := svc.Create(ctx, m)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	all, err := mRepo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestMilestoneService_Create_UnknownParent(t *testing.T) {
	svc, _, _ := setupMilestoneService(t)

	m := testutil.NewTestMilestone("Orphan", testutil.WithParent("missing"))
	err := svc.Create(context.Background(), m)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestMilestoneService_Create_DanglingLinkAllowed(t *testing.T) {
	svc, _, _ := setupMilestoneService(t)

	m := testutil.NewTestMilestone("Later", testutil.WithStartAfter("Not yet created"))
	assert.NoError(t, svc.Create(context.Background(), m))
}

func TestMilestoneService_Find(t *testing.T) {
	svc, _, _ := setupMilestoneService(t)
	ctx := context.Background()

	m := testutil.NewTestMilestone("Retire", testutil.WithAge(65))
	require.NoError(t, svc.Create(ctx, m))

	byID, err := svc.Find(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, m.ID, byID.ID)

	byName, err := svc.Find(ctx, "Retire")
	require.NoError(t, err)
	assert.Equal(t, m.ID, byName.ID)

	_, err = svc.Find(ctx, "nothing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestMilestoneService_UpdateAndDelete(t *testing.T) {
	svc, _, pRepo := setupMilestoneService(t)
	ctx := context.Background()

	parent := testutil.NewTestParent("Kids", 32, 35)
	require.NoError(t, pRepo.Create(ctx, parent))

	m := testutil.NewTestMilestone("First child", testutil.WithAge(32))
	require.NoError(t, svc.Create(ctx, m))
	created := m.UpdatedAt

	m.ParentMilestoneID = &parent.ID
	m.Order = 1
	require.NoError(t, svc.Update(ctx, m))
	assert.False(t, m.UpdatedAt.Before(created))

	children, err := svc.ListByParent(ctx, parent.ID)
	require.NoError(t, err)
	require.Len(t, children, 1)
	assert.Equal(t, 1, children[0].Order)

	m.Name = ""
	assert.Error(t, svc.Update(ctx, m), "name is required on update too")

	require.NoError(t, svc.Delete(ctx, m.ID))
	_, err = svc.GetByID(ctx, m.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, m.ID), repository.ErrNotFound)
}
