package commerce

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/ruralsoc/backend/internal/domain/commerce"
	"github.com/ruralsoc/backend/internal/domain/membership"
	"github.com/ruralsoc/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ShopService handles shop registration and quota enforcement
type ShopService struct {
	shopRepo    commerce.ShopRepository
	chapterRepo membership.ChapterRepository
	auditRepo   commerce.AuditLogRepository
	logger      *zap.Logger

	// defaultChapterID is the fallback chapter for requests that carry
	// none; uuid.Nil means unset
	defaultChapterID uuid.UUID

	// chapterLocks serializes creations per chapter within this
	// instance, cutting down on row-lock contention in the database.
	// The database lock in CreateWithinQuota remains the source of
	// truth across instances.
	chapterLocks sync.Map // uuid.UUID -> *sync.Mutex
}

// NewShopService creates a new ShopService
func NewShopService(
	shopRepo commerce.ShopRepository,
	chapterRepo membership.ChapterRepository,
	auditRepo commerce.AuditLogRepository,
	defaultChapterID uuid.UUID,
	logger *zap.Logger,
) *ShopService {
	return &ShopService{
		shopRepo:         shopRepo,
		chapterRepo:      chapterRepo,
		auditRepo:        auditRepo,
		defaultChapterID: defaultChapterID,
		logger:           logger,
	}
}

// CreateShopInput contains input for creating a shop
type CreateShopInput struct {
	ChapterID    uuid.UUID // optional; resolved when Nil
	Name         string
	Sector       string
	Address      string
	Phone        string
	Email        string
	BaseDiscount int
	PlanTier     commerce.PlanTier
	ActorID      uuid.UUID
	ActorChapter uuid.UUID // chapter of the caller, used as fallback
}

// QuotaStats reports a chapter's free-tier occupancy
type QuotaStats struct {
	ChapterID uuid.UUID `json:"chapter_id"`
	Used      int64     `json:"used"`
	Limit     int64     `json:"limit"`
}

// CreateShop registers a shop, enforcing the chapter's free-tier quota.
// Free-tier shops pass through an atomic count-and-insert; premium
// shops bypass the count. Returns *commerce.QuotaExceededError when
// the chapter is full.
func (s *ShopService) CreateShop(ctx context.Context, input CreateShopInput) (*commerce.Shop, error) {
	chapterID, err := s.resolveChapter(ctx, input)
	if err != nil {
		return nil, err
	}

	shop, err := commerce.NewShop(chapterID, input.Name, input.Sector, input.PlanTier)
	if err != nil {
		return nil, err
	}
	shop.Address = input.Address
	shop.Phone = input.Phone
	shop.Email = input.Email
	shop.BaseDiscount = input.BaseDiscount

	// Serialize same-chapter creations locally before taking the row lock
	lock := s.lockFor(chapterID)
	lock.Lock()
	defer lock.Unlock()

	if err := s.shopRepo.CreateWithinQuota(ctx, shop); err != nil {
		var qErr *commerce.QuotaExceededError
		if errors.As(err, &qErr) {
			s.logger.Info("Shop creation rejected, quota full",
				zap.String("chapter_id", chapterID.String()),
				zap.Int64("used", qErr.Used),
				zap.Int64("limit", qErr.Limit))
		}
		return nil, err
	}

	s.audit(ctx, input.ActorID, chapterID, "shop.create",
		fmt.Sprintf("shop %s (%s, %s)", shop.ID, shop.Name, shop.PlanTier))

	s.logger.Info("Shop created",
		zap.String("shop_id", shop.ID.String()),
		zap.String("chapter_id", chapterID.String()),
		zap.String("plan_tier", string(shop.PlanTier)))

	return shop, nil
}

// GetShop fetches a shop by id
func (s *ShopService) GetShop(ctx context.Context, id uuid.UUID) (*commerce.Shop, error) {
	return s.shopRepo.FindByID(ctx, id)
}

// ListShops lists shops, optionally restricted to a chapter
func (s *ShopService) ListShops(ctx context.Context, chapterID uuid.UUID, filter shared.Filter) ([]commerce.Shop, error) {
	filter = filter.Normalize(200)
	if chapterID != uuid.Nil {
		return s.shopRepo.FindByChapter(ctx, chapterID, filter)
	}
	return s.shopRepo.FindAll(ctx, filter)
}

// UpdateShopInput contains updatable shop fields
type UpdateShopInput struct {
	Name         *string
	Sector       *string
	Address      *string
	Phone        *string
	Email        *string
	BaseDiscount *int
	ActorID      uuid.UUID
}

// UpdateShop applies partial updates to a shop
func (s *ShopService) UpdateShop(ctx context.Context, id uuid.UUID, input UpdateShopInput) (*commerce.Shop, error) {
	shop, err := s.shopRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		shop.Name = *input.Name
	}
	if input.Sector != nil {
		shop.Sector = *input.Sector
	}
	if input.Address != nil {
		shop.Address = *input.Address
	}
	if input.Phone != nil {
		shop.Phone = *input.Phone
	}
	if input.Email != nil {
		shop.Email = *input.Email
	}
	if input.BaseDiscount != nil {
		shop.BaseDiscount = *input.BaseDiscount
	}
	shop.Touch()

	if err := s.shopRepo.Update(ctx, shop); err != nil {
		return nil, err
	}

	s.audit(ctx, input.ActorID, shop.ChapterID, "shop.update", "shop "+shop.ID.String())
	return shop, nil
}

// DisableShop disables a shop, releasing its quota slot
func (s *ShopService) DisableShop(ctx context.Context, id, actorID uuid.UUID) (*commerce.Shop, error) {
	shop, err := s.shopRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := shop.Disable(); err != nil {
		return nil, err
	}
	if err := s.shopRepo.Update(ctx, shop); err != nil {
		return nil, err
	}

	s.audit(ctx, actorID, shop.ChapterID, "shop.disable", "shop "+shop.ID.String())
	return shop, nil
}

// UpgradeShop moves a shop to the premium tier, releasing its quota slot
func (s *ShopService) UpgradeShop(ctx context.Context, id, actorID uuid.UUID) (*commerce.Shop, error) {
	shop, err := s.shopRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := shop.Upgrade(); err != nil {
		return nil, err
	}
	if err := s.shopRepo.Update(ctx, shop); err != nil {
		return nil, err
	}

	s.audit(ctx, actorID, shop.ChapterID, "shop.upgrade", "shop "+shop.ID.String())
	return shop, nil
}

// DeleteShop removes a shop outright. Disabling is the normal path;
// deletion is the administrative override for shops that should never
// have existed.
func (s *ShopService) DeleteShop(ctx context.Context, id, actorID uuid.UUID) error {
	shop, err := s.shopRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.shopRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.audit(ctx, actorID, shop.ChapterID, "shop.delete", "shop "+shop.ID.String())
	s.logger.Info("Shop deleted",
		zap.String("shop_id", shop.ID.String()),
		zap.String("chapter_id", shop.ChapterID.String()))
	return nil
}

// GetQuotaStats reports a chapter's free-tier occupancy
func (s *ShopService) GetQuotaStats(ctx context.Context, chapterID uuid.UUID) (*QuotaStats, error) {
	chapter, err := s.chapterRepo.FindByID(ctx, chapterID)
	if err != nil {
		return nil, err
	}
	used, err := s.shopRepo.CountActiveFree(ctx, chapterID)
	if err != nil {
		return nil, err
	}
	return &QuotaStats{
		ChapterID: chapterID,
		Used:      used,
		Limit:     int64(chapter.FreeTierLimit),
	}, nil
}

// resolveChapter picks the chapter a new shop belongs to: the explicit
// one from the request, else the caller's chapter, else the configured
// default. An unresolvable chapter is an input error, never a silent
// fallback to an arbitrary row.
func (s *ShopService) resolveChapter(ctx context.Context, input CreateShopInput) (uuid.UUID, error) {
	switch {
	case input.ChapterID != uuid.Nil:
		return input.ChapterID, nil
	case input.ActorChapter != uuid.Nil:
		return input.ActorChapter, nil
	case s.defaultChapterID != uuid.Nil:
		return s.defaultChapterID, nil
	default:
		return uuid.Nil, shared.NewDomainError("CHAPTER_REQUIRED", "No chapter specified and no default configured")
	}
}

// lockFor returns the per-chapter creation mutex
func (s *ShopService) lockFor(chapterID uuid.UUID) *sync.Mutex {
	actual, _ := s.chapterLocks.LoadOrStore(chapterID, &sync.Mutex{})
	return actual.(*sync.Mutex)
}

// audit records an administrative action; failures are logged, never
// propagated
func (s *ShopService) audit(ctx context.Context, actorID, chapterID uuid.UUID, action, detail string) {
	entry := &commerce.AuditEntry{
		BaseEntity: shared.NewBaseEntity(),
		ActorID:    actorID,
		ChapterID:  chapterID,
		Action:     action,
		Detail:     detail,
	}
	if err := s.auditRepo.Append(ctx, entry); err != nil {
		s.logger.Warn("Audit write failed",
			zap.String("action", action),
			zap.Error(err))
	}
}
