package persistence

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ruralsoc/backend/internal/infrastructure/persistence/models"
)

// newTestDB opens a fresh in-memory database with the full schema.
// Quota admission is not exercised here: it relies on row locking,
// which this engine does not support, and is covered at the service
// level instead.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.ChapterModel{},
		&models.ProfileModel{},
		&models.ShopModel{},
		&models.DuesRecordModel{},
		&models.AuditLogModel{},
		&models.PromotionModel{},
		&models.EventModel{},
	))

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})
	return db
}
