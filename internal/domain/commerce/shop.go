package commerce

import (
	"strings"

	"github.com/google/uuid"
	"github.com/ruralsoc/backend/internal/domain/shared"
)

// PlanTier represents a shop's subscription class.
// Only free-tier shops count against the chapter quota.
type PlanTier string

const (
	PlanTierFree    PlanTier = "free"
	PlanTierPremium PlanTier = "premium"
)

// IsValid reports whether the tier is a known value
func (t PlanTier) IsValid() bool {
	return t == PlanTierFree || t == PlanTierPremium
}

// ShopStatus represents the lifecycle status of a shop
type ShopStatus string

const (
	ShopStatusPending  ShopStatus = "pending"
	ShopStatusActive   ShopStatus = "active"
	ShopStatusDisabled ShopStatus = "disabled"
)

// Shop represents a business affiliated with a chapter
type Shop struct {
	shared.BaseEntity
	ChapterID    uuid.UUID
	Name         string
	Sector       string
	Address      string
	Phone        string
	Email        string
	BaseDiscount int // percentage offered to members
	PlanTier     PlanTier
	Status       ShopStatus
}

// NewShop creates a shop. Shops created by an admin start active; the
// quota decision happens at persistence time, not here.
func NewShop(chapterID uuid.UUID, name, sector string, tier PlanTier) (*Shop, error) {
	if chapterID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CHAPTER", "Chapter ID cannot be empty")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_SHOP_NAME", "Shop name cannot be empty")
	}
	if tier == "" {
		tier = PlanTierFree
	}
	if !tier.IsValid() {
		return nil, shared.NewDomainError("INVALID_PLAN_TIER", "Plan tier must be free or premium")
	}
	return &Shop{
		BaseEntity: shared.NewBaseEntity(),
		ChapterID:  chapterID,
		Name:       name,
		Sector:     strings.TrimSpace(sector),
		PlanTier:   tier,
		Status:     ShopStatusActive,
	}, nil
}

// IsQuotaCounted reports whether the shop occupies a free-tier slot
func (s *Shop) IsQuotaCounted() bool {
	return s.PlanTier == PlanTierFree && s.Status == ShopStatusActive
}

// Disable transitions the shop to disabled, releasing its quota slot
func (s *Shop) Disable() error {
	if s.Status == ShopStatusDisabled {
		return shared.ErrInvalidState
	}
	s.Status = ShopStatusDisabled
	s.Touch()
	return nil
}

// Upgrade moves the shop to the premium tier, releasing its quota slot
func (s *Shop) Upgrade() error {
	if s.PlanTier == PlanTierPremium {
		return shared.NewDomainError("INVALID_STATE", "Shop is already premium")
	}
	s.PlanTier = PlanTierPremium
	s.Touch()
	return nil
}
