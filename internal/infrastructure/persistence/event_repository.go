package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/ruralsoc/backend/internal/domain/engagement"
	"github.com/ruralsoc/backend/internal/domain/shared"
	"github.com/ruralsoc/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormEventRepository implements EventRepository using GORM
type GormEventRepository struct {
	db *gorm.DB
}

// NewGormEventRepository creates a new GormEventRepository
func NewGormEventRepository(db *gorm.DB) *GormEventRepository {
	return &GormEventRepository{db: db}
}

// Save persists a new event
func (r *GormEventRepository) Save(ctx context.Context, event *engagement.Event) error {
	var model models.EventModel
	model.FromDomain(event)
	return r.db.WithContext(ctx).Create(&model).Error
}

// Update persists changes to an existing event
func (r *GormEventRepository) Update(ctx context.Context, event *engagement.Event) error {
	var model models.EventModel
	model.FromDomain(event)
	result := r.db.WithContext(ctx).Model(&model).Where("id = ?", event.ID).Select("*").Updates(&model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes an event
func (r *GormEventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.EventModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds an event by its ID
func (r *GormEventRepository) FindByID(ctx context.Context, id uuid.UUID) (*engagement.Event, error) {
	var model models.EventModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindActive finds active events, soonest first
func (r *GormEventRepository) FindActive(ctx context.Context, filter shared.Filter) ([]engagement.Event, error) {
	var eventModels []models.EventModel
	query := applyFilter(
		r.db.WithContext(ctx).Model(&models.EventModel{}).
			Where("status = ?", engagement.ContentStatusActive),
		filter, "date ASC",
	)

	if err := query.Find(&eventModels).Error; err != nil {
		return nil, err
	}

	events := make([]engagement.Event, len(eventModels))
	for i, model := range eventModels {
		events[i] = *model.ToDomain()
	}
	return events, nil
}

// Ensure GormEventRepository implements EventRepository
var _ engagement.EventRepository = (*GormEventRepository)(nil)
