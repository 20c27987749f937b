package engagement

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ruralsoc/backend/internal/domain/shared"
)

// ContentStatus represents publication status for promotions and events
type ContentStatus string

const (
	ContentStatusActive   ContentStatus = "active"
	ContentStatusInactive ContentStatus = "inactive"
)

// Promotion represents a member benefit offered by an affiliated shop
type Promotion struct {
	shared.BaseEntity
	ShopID      uuid.UUID
	Title       string
	Description string
	ImageURL    string
	ValidFrom   *time.Time
	ValidUntil  *time.Time
	Status      ContentStatus
}

// NewPromotion creates an active promotion for a shop
func NewPromotion(shopID uuid.UUID, title, description string) (*Promotion, error) {
	if shopID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SHOP", "Shop ID cannot be empty")
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Promotion title cannot be empty")
	}
	return &Promotion{
		BaseEntity:  shared.NewBaseEntity(),
		ShopID:      shopID,
		Title:       title,
		Description: strings.TrimSpace(description),
		Status:      ContentStatusActive,
	}, nil
}

// Deactivate hides the promotion from member listings
func (p *Promotion) Deactivate() {
	p.Status = ContentStatusInactive
	p.Touch()
}
