package engagement

import (
	"context"

	"github.com/google/uuid"
	"github.com/ruralsoc/backend/internal/domain/shared"
)

// PromotionListing is a promotion joined with its shop's display name
type PromotionListing struct {
	Promotion
	ShopName string
}

// PromotionRepository provides access to promotion state
type PromotionRepository interface {
	Save(ctx context.Context, promotion *Promotion) error
	Update(ctx context.Context, promotion *Promotion) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Promotion, error)
	FindActive(ctx context.Context, filter shared.Filter) ([]PromotionListing, error)
	FindByShop(ctx context.Context, shopID uuid.UUID, filter shared.Filter) ([]Promotion, error)
}

// EventRepository provides access to event state
type EventRepository interface {
	Save(ctx context.Context, event *Event) error
	Update(ctx context.Context, event *Event) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Event, error)
	FindActive(ctx context.Context, filter shared.Filter) ([]Event, error)
}
