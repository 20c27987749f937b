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

// GormPromotionRepository implements PromotionRepository using GORM
type GormPromotionRepository struct {
	db *gorm.DB
}

// NewGormPromotionRepository creates a new GormPromotionRepository
func NewGormPromotionRepository(db *gorm.DB) *GormPromotionRepository {
	return &GormPromotionRepository{db: db}
}

// Save persists a new promotion
func (r *GormPromotionRepository) Save(ctx context.Context, promotion *engagement.Promotion) error {
	var model models.PromotionModel
	model.FromDomain(promotion)
	return r.db.WithContext(ctx).Create(&model).Error
}

// Update persists changes to an existing promotion
func (r *GormPromotionRepository) Update(ctx context.Context, promotion *engagement.Promotion) error {
	var model models.PromotionModel
	model.FromDomain(promotion)
	// Select("*") so deactivation (active=false) is written too
	result := r.db.WithContext(ctx).Model(&model).Where("id = ?", promotion.ID).Select("*").Updates(&model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes a promotion
func (r *GormPromotionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.PromotionModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a promotion by its ID
func (r *GormPromotionRepository) FindByID(ctx context.Context, id uuid.UUID) (*engagement.Promotion, error) {
	var model models.PromotionModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// promotionListingRow carries a promotion joined with its shop name
type promotionListingRow struct {
	models.PromotionModel
	ShopName string
}

// FindActive finds active promotions joined with their shop's name
func (r *GormPromotionRepository) FindActive(ctx context.Context, filter shared.Filter) ([]engagement.PromotionListing, error) {
	var rows []promotionListingRow
	query := applyFilter(
		r.db.WithContext(ctx).Model(&models.PromotionModel{}).
			Select("promotions.*, shops.name AS shop_name").
			Joins("JOIN shops ON shops.id = promotions.shop_id").
			Where("promotions.status = ? AND shops.status = ?",
				engagement.ContentStatusActive, "active"),
		filter, "promotions.created_at DESC",
	)

	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	listings := make([]engagement.PromotionListing, len(rows))
	for i, row := range rows {
		listings[i] = engagement.PromotionListing{
			Promotion: *row.PromotionModel.ToDomain(),
			ShopName:  row.ShopName,
		}
	}
	return listings, nil
}

// FindByShop finds promotions belonging to a shop
func (r *GormPromotionRepository) FindByShop(ctx context.Context, shopID uuid.UUID, filter shared.Filter) ([]engagement.Promotion, error) {
	var promotionModels []models.PromotionModel
	query := applyFilter(
		r.db.WithContext(ctx).Model(&models.PromotionModel{}).Where("shop_id = ?", shopID),
		filter, "created_at DESC",
	)

	if err := query.Find(&promotionModels).Error; err != nil {
		return nil, err
	}

	promotions := make([]engagement.Promotion, len(promotionModels))
	for i, model := range promotionModels {
		promotions[i] = *model.ToDomain()
	}
	return promotions, nil
}

// Ensure GormPromotionRepository implements PromotionRepository
var _ engagement.PromotionRepository = (*GormPromotionRepository)(nil)
