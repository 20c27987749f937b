package dto

import (
	"time"

	"github.com/ruralsoc/backend/internal/domain/engagement"
)

// CreatePromotionRequest represents a promotion creation request
type CreatePromotionRequest struct {
	ShopID      string     `json:"shop_id" binding:"required,uuid"`
	Title       string     `json:"title" binding:"required,max=200"`
	Description string     `json:"description" binding:"omitempty,max=2000"`
	ImageURL    string     `json:"image_url" binding:"omitempty,url,max=500"`
	ValidFrom   *time.Time `json:"valid_from"`
	ValidUntil  *time.Time `json:"valid_until"`
}

// UpdatePromotionRequest represents a partial promotion update
type UpdatePromotionRequest struct {
	Title       *string    `json:"title" binding:"omitempty,max=200"`
	Description *string    `json:"description" binding:"omitempty,max=2000"`
	ImageURL    *string    `json:"image_url" binding:"omitempty,url,max=500"`
	ValidFrom   *time.Time `json:"valid_from"`
	ValidUntil  *time.Time `json:"valid_until"`
}

// PromotionResponse represents a promotion in API responses
type PromotionResponse struct {
	ID          string     `json:"id"`
	ShopID      string     `json:"shop_id"`
	ShopName    string     `json:"shop_name,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	ImageURL    string     `json:"image_url,omitempty"`
	ValidFrom   *time.Time `json:"valid_from,omitempty"`
	ValidUntil  *time.Time `json:"valid_until,omitempty"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
}

// NewPromotionResponse converts a domain promotion
func NewPromotionResponse(p *engagement.Promotion) PromotionResponse {
	return PromotionResponse{
		ID:          p.ID.String(),
		ShopID:      p.ShopID.String(),
		Title:       p.Title,
		Description: p.Description,
		ImageURL:    p.ImageURL,
		ValidFrom:   p.ValidFrom,
		ValidUntil:  p.ValidUntil,
		Status:      string(p.Status),
		CreatedAt:   p.CreatedAt,
	}
}

// NewPromotionListResponse converts a slice of domain promotions
func NewPromotionListResponse(promotions []engagement.Promotion) []PromotionResponse {
	out := make([]PromotionResponse, len(promotions))
	for i := range promotions {
		out[i] = NewPromotionResponse(&promotions[i])
	}
	return out
}

// NewPromotionListingResponse converts promotion listings, which carry
// the shop name alongside each promotion
func NewPromotionListingResponse(listings []engagement.PromotionListing) []PromotionResponse {
	out := make([]PromotionResponse, len(listings))
	for i := range listings {
		out[i] = NewPromotionResponse(&listings[i].Promotion)
		out[i].ShopName = listings[i].ShopName
	}
	return out
}

// CreateEventRequest represents an event creation request
type CreateEventRequest struct {
	Title       string    `json:"title" binding:"required,max=200"`
	Description string    `json:"description" binding:"omitempty,max=2000"`
	ImageURL    string    `json:"image_url" binding:"omitempty,url,max=500"`
	Date        time.Time `json:"date" binding:"required"`
	Venue       string    `json:"venue" binding:"omitempty,max=250"`
}

// UpdateEventRequest represents a partial event update
type UpdateEventRequest struct {
	Title       *string    `json:"title" binding:"omitempty,max=200"`
	Description *string    `json:"description" binding:"omitempty,max=2000"`
	ImageURL    *string    `json:"image_url" binding:"omitempty,url,max=500"`
	Date        *time.Time `json:"date"`
	Venue       *string    `json:"venue" binding:"omitempty,max=250"`
}

// EventResponse represents an event in API responses
type EventResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	Date        time.Time `json:"date"`
	Venue       string    `json:"venue,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewEventResponse converts a domain event
func NewEventResponse(e *engagement.Event) EventResponse {
	return EventResponse{
		ID:          e.ID.String(),
		Title:       e.Title,
		Description: e.Description,
		ImageURL:    e.ImageURL,
		Date:        e.Date,
		Venue:       e.Venue,
		Status:      string(e.Status),
		CreatedAt:   e.CreatedAt,
	}
}

// NewEventListResponse converts a slice of domain events
func NewEventListResponse(events []engagement.Event) []EventResponse {
	out := make([]EventResponse, len(events))
	for i := range events {
		out[i] = NewEventResponse(&events[i])
	}
	return out
}
