package database_test

import (
	"testing"

	"go-hrm/internal/database"
	"go-hrm/internal/rbac"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestMigrate_CreatesTablesAndSeedsOnce(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, database.Migrate(db, zap.NewNop()))
	require.NoError(t, database.Migrate(db, zap.NewNop()))

	for _, table := range []string{"employees", "attendance_records", "payroll_runs", "payroll_entries", "payslips", "outbox_events", "company_counters"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}

	var count int64
	require.NoError(t, db.Model(&rbac.Permission{}).Count(&count).Error)
	assert.Equal(t, int64(len(rbac.DefaultPermissions)), count)
}
