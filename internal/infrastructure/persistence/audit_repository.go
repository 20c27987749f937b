package persistence

import (
	"context"

	"github.com/ruralsoc/backend/internal/domain/commerce"
	"github.com/ruralsoc/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormAuditLogRepository implements AuditLogRepository using GORM
type GormAuditLogRepository struct {
	db *gorm.DB
}

// NewGormAuditLogRepository creates a new GormAuditLogRepository
func NewGormAuditLogRepository(db *gorm.DB) *GormAuditLogRepository {
	return &GormAuditLogRepository{db: db}
}

// Append writes an audit entry
func (r *GormAuditLogRepository) Append(ctx context.Context, entry *commerce.AuditEntry) error {
	var model models.AuditLogModel
	model.FromDomain(entry)
	return r.db.WithContext(ctx).Create(&model).Error
}

// Ensure GormAuditLogRepository implements AuditLogRepository
var _ commerce.AuditLogRepository = (*GormAuditLogRepository)(nil)
