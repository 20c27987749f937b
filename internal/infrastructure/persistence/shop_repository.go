package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/ruralsoc/backend/internal/domain/commerce"
	"github.com/ruralsoc/backend/internal/domain/shared"
	"github.com/ruralsoc/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormShopRepository implements ShopRepository using GORM
type GormShopRepository struct {
	db *gorm.DB
}

// NewGormShopRepository creates a new GormShopRepository
func NewGormShopRepository(db *gorm.DB) *GormShopRepository {
	return &GormShopRepository{db: db}
}

// Save persists a shop without quota checks. Used for premium shops and
// administrative restores; free-tier creation goes through CreateWithinQuota.
func (r *GormShopRepository) Save(ctx context.Context, shop *commerce.Shop) error {
	var model models.ShopModel
	model.FromDomain(shop)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Update persists changes to an existing shop
func (r *GormShopRepository) Update(ctx context.Context, shop *commerce.Shop) error {
	var model models.ShopModel
	model.FromDomain(shop)
	result := r.db.WithContext(ctx).Model(&model).Where("id = ?", shop.ID).Select("*").Updates(&model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes a shop
func (r *GormShopRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ShopModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a shop by its ID
func (r *GormShopRepository) FindByID(ctx context.Context, id uuid.UUID) (*commerce.Shop, error) {
	var model models.ShopModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByChapter finds shops belonging to a chapter
func (r *GormShopRepository) FindByChapter(ctx context.Context, chapterID uuid.UUID, filter shared.Filter) ([]commerce.Shop, error) {
	var shopModels []models.ShopModel
	query := applyFilter(
		r.db.WithContext(ctx).Model(&models.ShopModel{}).Where("chapter_id = ?", chapterID),
		filter, "name ASC",
	)

	if err := query.Find(&shopModels).Error; err != nil {
		return nil, err
	}

	shops := make([]commerce.Shop, len(shopModels))
	for i, model := range shopModels {
		shops[i] = *model.ToDomain()
	}
	return shops, nil
}

// FindAll finds all shops matching the filter
func (r *GormShopRepository) FindAll(ctx context.Context, filter shared.Filter) ([]commerce.Shop, error) {
	var shopModels []models.ShopModel
	query := applyFilter(r.db.WithContext(ctx).Model(&models.ShopModel{}), filter, "name ASC")

	if err := query.Find(&shopModels).Error; err != nil {
		return nil, err
	}

	shops := make([]commerce.Shop, len(shopModels))
	for i, model := range shopModels {
		shops[i] = *model.ToDomain()
	}
	return shops, nil
}

// CountActiveFree counts active free-tier shops in a chapter
func (r *GormShopRepository) CountActiveFree(ctx context.Context, chapterID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.ShopModel{}).
		Where("chapter_id = ? AND plan_tier = ? AND status = ?",
			chapterID, commerce.PlanTierFree, commerce.ShopStatusActive).
		Count(&count).Error
	return count, err
}

// CreateWithinQuota inserts a free-tier shop only if the chapter's quota
// has room. The chapter row is locked FOR UPDATE for the duration of the
// transaction, serializing concurrent creations in the same chapter so
// the count-then-insert pair is atomic. Premium shops bypass the count
// but still validate the chapter exists.
func (r *GormShopRepository) CreateWithinQuota(ctx context.Context, shop *commerce.Shop) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var chapter models.ChapterModel
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&chapter, "id = ?", shop.ChapterID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return shared.ErrNotFound
			}
			return err
		}

		if shop.IsQuotaCounted() {
			var used int64
			if err := tx.Model(&models.ShopModel{}).
				Where("chapter_id = ? AND plan_tier = ? AND status = ?",
					shop.ChapterID, commerce.PlanTierFree, commerce.ShopStatusActive).
				Count(&used).Error; err != nil {
				return err
			}

			if used >= int64(chapter.FreeTierLimit) {
				return &commerce.QuotaExceededError{
					ChapterID: shop.ChapterID,
					Used:      used,
					Limit:     int64(chapter.FreeTierLimit),
				}
			}
		}

		var model models.ShopModel
		model.FromDomain(shop)
		return tx.Create(&model).Error
	})
}

// Ensure GormShopRepository implements ShopRepository
var _ commerce.ShopRepository = (*GormShopRepository)(nil)
