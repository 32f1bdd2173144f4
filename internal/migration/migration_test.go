package migration

import (
	"io/fs"
	"testing"

	"github.com/smallbiznis/hoteldesk/pkg/db/dbtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrationsArePaired(t *testing.T) {
	up, err := fs.Glob(embeddedMigrations, "migrations/*.up.sql")
	require.NoError(t, err)
	down, err := fs.Glob(embeddedMigrations, "migrations/*.down.sql")
	require.NoError(t, err)

	assert.NotEmpty(t, up)
	assert.Len(t, down, len(up))
}

func TestMigrateAutoMigratesOnSQLite(t *testing.T) {
	conn := dbtest.Open(t)

	require.NoError(t, Migrate(conn))
	for _, table := range []string{"users", "services", "bookings", "audit_records", "payments", "payment_logs", "booking_payments", "stocks", "providers", "employees", "company_profiles"} {
		assert.True(t, conn.Migrator().HasTable(table), table)
	}

	require.NoError(t, Migrate(conn))
}
