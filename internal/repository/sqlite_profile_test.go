package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/horizon/internal/domain"
	"github.com/alexanderramin/horizon/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileRepo_Get_DefaultSeededProfile(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProfileRepo(db)

	profile, err := repo.Get(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "default", profile.ID)
	assert.Equal(t, 30, profile.CurrentAge)
	assert.Equal(t, 0.02, profile.InflationRate)
}

func TestProfileRepo_Upsert_UpdatesProfile(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProfileRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, &domain.Profile{CurrentAge: 42, InflationRate: 0.025}))

	got, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "default", got.ID)
	assert.Equal(t, 42, got.CurrentAge)
	assert.Equal(t, 0.025, got.InflationRate)
}

func TestProfileRepo_Get_NotFoundWhenDefaultDeleted(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProfileRepo(db)
	ctx := context.Background()

	_, err := db.ExecContext(ctx, `DELETE FROM profile WHERE id = 'default'`)
	require.NoError(t, err)

	_, err = repo.Get(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}
