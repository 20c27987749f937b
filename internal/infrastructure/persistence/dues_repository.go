package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/ruralsoc/backend/internal/domain/billing"
	"github.com/ruralsoc/backend/internal/domain/shared"
	"github.com/ruralsoc/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormDuesRepository implements DuesRepository using GORM
type GormDuesRepository struct {
	db *gorm.DB
}

// NewGormDuesRepository creates a new GormDuesRepository
func NewGormDuesRepository(db *gorm.DB) *GormDuesRepository {
	return &GormDuesRepository{db: db}
}

// Save persists a new dues record
func (r *GormDuesRepository) Save(ctx context.Context, record *billing.DuesRecord) error {
	var model models.DuesRecordModel
	model.FromDomain(record)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Update persists changes to an existing dues record
func (r *GormDuesRepository) Update(ctx context.Context, record *billing.DuesRecord) error {
	var model models.DuesRecordModel
	model.FromDomain(record)
	result := r.db.WithContext(ctx).Model(&model).Where("id = ?", record.ID).Select("*").Updates(&model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a dues record by its ID
func (r *GormDuesRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.DuesRecord, error) {
	var model models.DuesRecordModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByProfile finds dues records for a member, newest period first
func (r *GormDuesRepository) FindByProfile(ctx context.Context, profileID uuid.UUID, filter shared.Filter) ([]billing.DuesRecord, error) {
	var recordModels []models.DuesRecordModel
	query := applyFilter(
		r.db.WithContext(ctx).Model(&models.DuesRecordModel{}).Where("profile_id = ?", profileID),
		filter, "year DESC, month DESC",
	)

	if err := query.Find(&recordModels).Error; err != nil {
		return nil, err
	}

	records := make([]billing.DuesRecord, len(recordModels))
	for i, model := range recordModels {
		records[i] = *model.ToDomain()
	}
	return records, nil
}

// FindByProfileAndPeriod finds the dues record for a member's billing period
func (r *GormDuesRepository) FindByProfileAndPeriod(ctx context.Context, profileID uuid.UUID, month, year int) (*billing.DuesRecord, error) {
	var model models.DuesRecordModel
	if err := r.db.WithContext(ctx).
		Where("profile_id = ? AND month = ? AND year = ?", profileID, month, year).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindUnpaidOverdue finds unpaid records whose due date has passed
func (r *GormDuesRepository) FindUnpaidOverdue(ctx context.Context, asOf time.Time, filter shared.Filter) ([]billing.DuesRecord, error) {
	var recordModels []models.DuesRecordModel
	query := applyFilter(
		r.db.WithContext(ctx).Model(&models.DuesRecordModel{}).
			Where("paid = false AND due_date < ?", asOf),
		filter, "due_date ASC",
	)

	if err := query.Find(&recordModels).Error; err != nil {
		return nil, err
	}

	records := make([]billing.DuesRecord, len(recordModels))
	for i, model := range recordModels {
		records[i] = *model.ToDomain()
	}
	return records, nil
}

// MarkPaid applies the pending→paid transition as a single conditional
// UPDATE. Returns (true, nil) when this call performed the transition,
// (false, nil) when the record was already paid, and ErrNotFound when
// no record exists. Replayed notifications land on the already-paid
// branch and change nothing.
func (r *GormDuesRepository) MarkPaid(ctx context.Context, id uuid.UUID, paymentID string, paidAt time.Time) (bool, error) {
	result := r.db.WithContext(ctx).Model(&models.DuesRecordModel{}).
		Where("id = ? AND paid = false", id).
		Updates(map[string]any{
			"paid":       true,
			"paid_at":    paidAt,
			"payment_id": paymentID,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected > 0 {
		return true, nil
	}

	// Nothing updated: distinguish already-paid from missing
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.DuesRecordModel{}).
		Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	if count == 0 {
		return false, shared.ErrNotFound
	}
	return false, nil
}

// Ensure GormDuesRepository implements DuesRepository
var _ billing.DuesRepository = (*GormDuesRepository)(nil)
