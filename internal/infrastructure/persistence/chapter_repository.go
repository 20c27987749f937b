package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/ruralsoc/backend/internal/domain/membership"
	"github.com/ruralsoc/backend/internal/domain/shared"
	"github.com/ruralsoc/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormChapterRepository implements ChapterRepository using GORM
type GormChapterRepository struct {
	db *gorm.DB
}

// NewGormChapterRepository creates a new GormChapterRepository
func NewGormChapterRepository(db *gorm.DB) *GormChapterRepository {
	return &GormChapterRepository{db: db}
}

// Save persists a chapter
func (r *GormChapterRepository) Save(ctx context.Context, chapter *membership.Chapter) error {
	var model models.ChapterModel
	model.FromDomain(chapter)
	return r.db.WithContext(ctx).Save(&model).Error
}

// FindByID finds a chapter by its ID
func (r *GormChapterRepository) FindByID(ctx context.Context, id uuid.UUID) (*membership.Chapter, error) {
	var model models.ChapterModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all chapters matching the filter
func (r *GormChapterRepository) FindAll(ctx context.Context, filter shared.Filter) ([]membership.Chapter, error) {
	var chapterModels []models.ChapterModel
	query := applyFilter(r.db.WithContext(ctx).Model(&models.ChapterModel{}), filter, "name ASC")

	if err := query.Find(&chapterModels).Error; err != nil {
		return nil, err
	}

	chapters := make([]membership.Chapter, len(chapterModels))
	for i, model := range chapterModels {
		chapters[i] = *model.ToDomain()
	}
	return chapters, nil
}

// FindFirst returns the oldest chapter, used as a last-resort default
// when a request carries no chapter and none is configured
func (r *GormChapterRepository) FindFirst(ctx context.Context) (*membership.Chapter, error) {
	var model models.ChapterModel
	if err := r.db.WithContext(ctx).Order("created_at ASC").First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Ensure GormChapterRepository implements ChapterRepository
var _ membership.ChapterRepository = (*GormChapterRepository)(nil)
