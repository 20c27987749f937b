package engagement

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ruralsoc/backend/internal/domain/engagement"
	"github.com/ruralsoc/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// EngagementService handles promotions and events offered to members
type EngagementService struct {
	promotionRepo engagement.PromotionRepository
	eventRepo     engagement.EventRepository
	logger        *zap.Logger
}

// NewEngagementService creates a new EngagementService
func NewEngagementService(
	promotionRepo engagement.PromotionRepository,
	eventRepo engagement.EventRepository,
	logger *zap.Logger,
) *EngagementService {
	return &EngagementService{
		promotionRepo: promotionRepo,
		eventRepo:     eventRepo,
		logger:        logger,
	}
}

// CreatePromotionInput contains input for creating a promotion
type CreatePromotionInput struct {
	ShopID      uuid.UUID
	Title       string
	Description string
	ImageURL    string
	ValidFrom   *time.Time
	ValidUntil  *time.Time
}

// CreatePromotion publishes a promotion for a shop
func (s *EngagementService) CreatePromotion(ctx context.Context, input CreatePromotionInput) (*engagement.Promotion, error) {
	promotion, err := engagement.NewPromotion(input.ShopID, input.Title, input.Description)
	if err != nil {
		return nil, err
	}
	promotion.ImageURL = input.ImageURL
	promotion.ValidFrom = input.ValidFrom
	promotion.ValidUntil = input.ValidUntil

	if err := s.promotionRepo.Save(ctx, promotion); err != nil {
		return nil, err
	}

	s.logger.Info("Promotion created",
		zap.String("promotion_id", promotion.ID.String()),
		zap.String("shop_id", input.ShopID.String()))
	return promotion, nil
}

// ListActivePromotions lists active promotions with their shop names
func (s *EngagementService) ListActivePromotions(ctx context.Context, filter shared.Filter) ([]engagement.PromotionListing, error) {
	return s.promotionRepo.FindActive(ctx, filter.Normalize(100))
}

// ListShopPromotions lists all of a shop's promotions
func (s *EngagementService) ListShopPromotions(ctx context.Context, shopID uuid.UUID, filter shared.Filter) ([]engagement.Promotion, error) {
	return s.promotionRepo.FindByShop(ctx, shopID, filter.Normalize(100))
}

// UpdatePromotionInput contains updatable promotion fields
type UpdatePromotionInput struct {
	Title       *string
	Description *string
	ImageURL    *string
	ValidFrom   *time.Time
	ValidUntil  *time.Time
}

// UpdatePromotion applies partial updates to a promotion
func (s *EngagementService) UpdatePromotion(ctx context.Context, id uuid.UUID, input UpdatePromotionInput) (*engagement.Promotion, error) {
	promotion, err := s.promotionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, shared.NewDomainError("INVALID_TITLE", "Promotion title cannot be empty")
		}
		promotion.Title = title
	}
	if input.Description != nil {
		promotion.Description = strings.TrimSpace(*input.Description)
	}
	if input.ImageURL != nil {
		promotion.ImageURL = *input.ImageURL
	}
	if input.ValidFrom != nil {
		promotion.ValidFrom = input.ValidFrom
	}
	if input.ValidUntil != nil {
		promotion.ValidUntil = input.ValidUntil
	}
	promotion.Touch()

	if err := s.promotionRepo.Update(ctx, promotion); err != nil {
		return nil, err
	}
	return promotion, nil
}

// DeactivatePromotion hides a promotion from member listings
func (s *EngagementService) DeactivatePromotion(ctx context.Context, id uuid.UUID) (*engagement.Promotion, error) {
	promotion, err := s.promotionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	promotion.Deactivate()
	if err := s.promotionRepo.Update(ctx, promotion); err != nil {
		return nil, err
	}
	return promotion, nil
}

// DeletePromotion removes a promotion
func (s *EngagementService) DeletePromotion(ctx context.Context, id uuid.UUID) error {
	return s.promotionRepo.Delete(ctx, id)
}

// CreateEventInput contains input for creating an event
type CreateEventInput struct {
	Title       string
	Description string
	ImageURL    string
	Date        time.Time
	Venue       string
}

// CreateEvent publishes an association event
func (s *EngagementService) CreateEvent(ctx context.Context, input CreateEventInput) (*engagement.Event, error) {
	event, err := engagement.NewEvent(input.Title, input.Description, input.Date, input.Venue)
	if err != nil {
		return nil, err
	}
	event.ImageURL = input.ImageURL

	if err := s.eventRepo.Save(ctx, event); err != nil {
		return nil, err
	}

	s.logger.Info("Event created",
		zap.String("event_id", event.ID.String()),
		zap.String("title", event.Title))
	return event, nil
}

// UpdateEventInput contains updatable event fields
type UpdateEventInput struct {
	Title       *string
	Description *string
	ImageURL    *string
	Date        *time.Time
	Venue       *string
}

// UpdateEvent applies partial updates to an event
func (s *EngagementService) UpdateEvent(ctx context.Context, id uuid.UUID, input UpdateEventInput) (*engagement.Event, error) {
	event, err := s.eventRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, shared.NewDomainError("INVALID_TITLE", "Event title cannot be empty")
		}
		event.Title = title
	}
	if input.Description != nil {
		event.Description = strings.TrimSpace(*input.Description)
	}
	if input.ImageURL != nil {
		event.ImageURL = *input.ImageURL
	}
	if input.Date != nil && !input.Date.IsZero() {
		event.Date = *input.Date
	}
	if input.Venue != nil {
		event.Venue = strings.TrimSpace(*input.Venue)
	}
	event.Touch()

	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// ListActiveEvents lists active events, soonest first
func (s *EngagementService) ListActiveEvents(ctx context.Context, filter shared.Filter) ([]engagement.Event, error) {
	return s.eventRepo.FindActive(ctx, filter.Normalize(100))
}

// DeleteEvent removes an event
func (s *EngagementService) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	return s.eventRepo.Delete(ctx, id)
}
