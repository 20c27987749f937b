package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/ruralsoc/backend/internal/domain/membership"
	"github.com/ruralsoc/backend/internal/domain/shared"
	"github.com/ruralsoc/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormProfileRepository implements ProfileRepository using GORM
type GormProfileRepository struct {
	db *gorm.DB
}

// NewGormProfileRepository creates a new GormProfileRepository
func NewGormProfileRepository(db *gorm.DB) *GormProfileRepository {
	return &GormProfileRepository{db: db}
}

// Save persists a new profile
func (r *GormProfileRepository) Save(ctx context.Context, profile *membership.MemberProfile) error {
	var model models.ProfileModel
	model.FromDomain(profile)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Update persists changes to an existing profile
func (r *GormProfileRepository) Update(ctx context.Context, profile *membership.MemberProfile) error {
	var model models.ProfileModel
	model.FromDomain(profile)
	// Select("*") so cleared flags like delinquent=false are written too
	result := r.db.WithContext(ctx).Model(&model).Where("id = ?", profile.ID).Select("*").Updates(&model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a profile by its ID
func (r *GormProfileRepository) FindByID(ctx context.Context, id uuid.UUID) (*membership.MemberProfile, error) {
	var model models.ProfileModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByEmail finds a profile by email
func (r *GormProfileRepository) FindByEmail(ctx context.Context, email string) (*membership.MemberProfile, error) {
	if email == "" {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	var model models.ProfileModel
	if err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(email)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByDocumentID finds a profile by national document number
func (r *GormProfileRepository) FindByDocumentID(ctx context.Context, documentID string) (*membership.MemberProfile, error) {
	if documentID == "" {
		return nil, shared.NewDomainError("INVALID_DOCUMENT", "Document ID cannot be empty")
	}
	var model models.ProfileModel
	if err := r.db.WithContext(ctx).
		Where("document_id = ?", documentID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByChapter finds profiles belonging to a chapter
func (r *GormProfileRepository) FindByChapter(ctx context.Context, chapterID uuid.UUID, filter shared.Filter) ([]membership.MemberProfile, error) {
	var profileModels []models.ProfileModel
	query := applyFilter(
		r.db.WithContext(ctx).Model(&models.ProfileModel{}).Where("chapter_id = ?", chapterID),
		filter, "last_name ASC, first_name ASC",
	)

	if err := query.Find(&profileModels).Error; err != nil {
		return nil, err
	}

	profiles := make([]membership.MemberProfile, len(profileModels))
	for i, model := range profileModels {
		profiles[i] = *model.ToDomain()
	}
	return profiles, nil
}

// FindAll finds all profiles matching the filter
func (r *GormProfileRepository) FindAll(ctx context.Context, filter shared.Filter) ([]membership.MemberProfile, error) {
	var profileModels []models.ProfileModel
	query := applyFilter(r.db.WithContext(ctx).Model(&models.ProfileModel{}), filter, "created_at DESC")

	if err := query.Find(&profileModels).Error; err != nil {
		return nil, err
	}

	profiles := make([]membership.MemberProfile, len(profileModels))
	for i, model := range profileModels {
		profiles[i] = *model.ToDomain()
	}
	return profiles, nil
}

// Ensure GormProfileRepository implements ProfileRepository
var _ membership.ProfileRepository = (*GormProfileRepository)(nil)
