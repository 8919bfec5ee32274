package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMigrate_UpgradePath_LegacyProfile opens a database whose profile table
// predates the updated_at column and checks that stored values survive.
func TestMigrate_UpgradePath_LegacyProfile(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`CREATE TABLE profile (
		id             TEXT PRIMARY KEY DEFAULT 'default',
		current_age    INTEGER NOT NULL DEFAULT 30,
		inflation_rate REAL NOT NULL DEFAULT 0.02
	)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO profile (id, current_age, inflation_rate) VALUES ('default', 41, 0.03)`)
	require.NoError(t, err)

	require.NoError(t, Migrate(db))

	var age int
	var rate float64
	var updated sql.NullString
	err = db.QueryRow(`SELECT current_age, inflation_rate, updated_at FROM profile WHERE id = 'default'`).
		Scan(&age, &rate, &updated)
	require.NoError(t, err)
	assert.Equal(t, 41, age)
	assert.Equal(t, 0.03, rate)
	assert.False(t, updated.Valid)

	require.NoError(t, Migrate(db), "re-running after upgrade is a no-op")
}
