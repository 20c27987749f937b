package dto

import (
	"time"

	"github.com/ruralsoc/backend/internal/domain/commerce"
)

// CreateShopRequest represents a shop registration request
type CreateShopRequest struct {
	ChapterID    string `json:"chapter_id" binding:"omitempty,uuid"`
	Name         string `json:"name" binding:"required,max=150"`
	Sector       string `json:"sector" binding:"omitempty,max=100"`
	Address      string `json:"address" binding:"omitempty,max=250"`
	Phone        string `json:"phone" binding:"omitempty,max=30"`
	Email        string `json:"email" binding:"omitempty,email"`
	BaseDiscount int    `json:"base_discount" binding:"omitempty,min=0,max=100"`
	PlanTier     string `json:"plan_tier" binding:"omitempty,oneof=free premium"`
}

// UpdateShopRequest represents a partial shop update
type UpdateShopRequest struct {
	Name         *string `json:"name" binding:"omitempty,max=150"`
	Sector       *string `json:"sector" binding:"omitempty,max=100"`
	Address      *string `json:"address" binding:"omitempty,max=250"`
	Phone        *string `json:"phone" binding:"omitempty,max=30"`
	Email        *string `json:"email" binding:"omitempty,email"`
	BaseDiscount *int    `json:"base_discount" binding:"omitempty,min=0,max=100"`
}

// ShopListRequest represents shop listing parameters
type ShopListRequest struct {
	ListRequest
	ChapterID string `form:"chapter_id" binding:"omitempty,uuid"`
}

// ShopResponse represents a shop in API responses
type ShopResponse struct {
	ID           string    `json:"id"`
	ChapterID    string    `json:"chapter_id"`
	Name         string    `json:"name"`
	Sector       string    `json:"sector,omitempty"`
	Address      string    `json:"address,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	Email        string    `json:"email,omitempty"`
	BaseDiscount int       `json:"base_discount"`
	PlanTier     string    `json:"plan_tier"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewShopResponse converts a domain shop to its API representation
func NewShopResponse(s *commerce.Shop) ShopResponse {
	return ShopResponse{
		ID:           s.ID.String(),
		ChapterID:    s.ChapterID.String(),
		Name:         s.Name,
		Sector:       s.Sector,
		Address:      s.Address,
		Phone:        s.Phone,
		Email:        s.Email,
		BaseDiscount: s.BaseDiscount,
		PlanTier:     string(s.PlanTier),
		Status:       string(s.Status),
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

// NewShopListResponse converts a slice of domain shops
func NewShopListResponse(shops []commerce.Shop) []ShopResponse {
	out := make([]ShopResponse, len(shops))
	for i := range shops {
		out[i] = NewShopResponse(&shops[i])
	}
	return out
}

// QuotaExceededDetail carries the live occupancy counts returned with a
// quota conflict
type QuotaExceededDetail struct {
	ChapterID string `json:"chapter_id"`
	Used      int64  `json:"used"`
	Limit     int64  `json:"limit"`
}

// NewQuotaExceededDetail converts a quota error to its API payload
func NewQuotaExceededDetail(e *commerce.QuotaExceededError) QuotaExceededDetail {
	return QuotaExceededDetail{
		ChapterID: e.ChapterID.String(),
		Used:      e.Used,
		Limit:     e.Limit,
	}
}
