package dto

import (
	"time"

	"github.com/ruralsoc/backend/internal/domain/membership"
	"github.com/ruralsoc/backend/internal/infrastructure/auth"
)

// RegisterRequest represents a member registration request
type RegisterRequest struct {
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=8,max=72"`
	DocumentID string `json:"document_id" binding:"required,min=6,max=20"`
	FirstName  string `json:"first_name" binding:"required,max=100"`
	LastName   string `json:"last_name" binding:"required,max=100"`
	Phone      string `json:"phone" binding:"omitempty,max=30"`
	City       string `json:"city" binding:"omitempty,max=100"`
	Province   string `json:"province" binding:"omitempty,max=100"`
	ChapterID  string `json:"chapter_id" binding:"omitempty,uuid"`
}

// CreateMemberRequest represents an administrative member creation.
// Same shape as registration; the resulting profile is active.
type CreateMemberRequest struct {
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=8,max=72"`
	DocumentID string `json:"document_id" binding:"required,min=6,max=20"`
	FirstName  string `json:"first_name" binding:"required,max=100"`
	LastName   string `json:"last_name" binding:"required,max=100"`
	Phone      string `json:"phone" binding:"omitempty,max=30"`
	City       string `json:"city" binding:"omitempty,max=100"`
	Province   string `json:"province" binding:"omitempty,max=100"`
	ChapterID  string `json:"chapter_id" binding:"omitempty,uuid"`
}

// LoginRequest represents a login request. Identifier is an email
// address or a document number.
type LoginRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

// TokenResponse represents an issued access token
type TokenResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// ProfileResponse represents a member profile in API responses
type ProfileResponse struct {
	ID         string    `json:"id"`
	ChapterID  string    `json:"chapter_id"`
	Email      string    `json:"email"`
	DocumentID string    `json:"document_id"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Phone      string    `json:"phone,omitempty"`
	City       string    `json:"city,omitempty"`
	Province   string    `json:"province,omitempty"`
	Role       string    `json:"role"`
	Status     string    `json:"status"`
	Delinquent bool      `json:"delinquent"`
	ShopID     *string   `json:"shop_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewProfileResponse converts a domain profile to its API representation
func NewProfileResponse(p *membership.MemberProfile) ProfileResponse {
	resp := ProfileResponse{
		ID:         p.ID.String(),
		ChapterID:  p.ChapterID.String(),
		Email:      p.Email,
		DocumentID: p.DocumentID,
		FirstName:  p.FirstName,
		LastName:   p.LastName,
		Phone:      p.Phone,
		City:       p.City,
		Province:   p.Province,
		Role:       string(p.Role),
		Status:     string(p.Status),
		Delinquent: p.Delinquent,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
	if p.ShopID != nil {
		shopID := p.ShopID.String()
		resp.ShopID = &shopID
	}
	return resp
}

// NewProfileListResponse converts a slice of domain profiles
func NewProfileListResponse(profiles []membership.MemberProfile) []ProfileResponse {
	out := make([]ProfileResponse, len(profiles))
	for i := range profiles {
		out[i] = NewProfileResponse(&profiles[i])
	}
	return out
}

// AuthResponse bundles the token with the authenticated profile
type AuthResponse struct {
	Token   TokenResponse   `json:"token"`
	Profile ProfileResponse `json:"profile"`
}

// NewAuthResponse converts an issued token and profile
func NewAuthResponse(token *auth.Token, profile *membership.MemberProfile) AuthResponse {
	return AuthResponse{
		Token: TokenResponse{
			AccessToken: token.AccessToken,
			TokenType:   token.TokenType,
			ExpiresAt:   token.ExpiresAt,
		},
		Profile: NewProfileResponse(profile),
	}
}

// UpdateProfileRequest represents a partial profile update
type UpdateProfileRequest struct {
	FirstName *string `json:"first_name" binding:"omitempty,max=100"`
	LastName  *string `json:"last_name" binding:"omitempty,max=100"`
	Phone     *string `json:"phone" binding:"omitempty,max=30"`
	City      *string `json:"city" binding:"omitempty,max=100"`
	Province  *string `json:"province" binding:"omitempty,max=100"`
}

// MemberListRequest represents member listing parameters
type MemberListRequest struct {
	ListRequest
	ChapterID string `form:"chapter_id" binding:"omitempty,uuid"`
}

// CreateChapterRequest represents a chapter creation request
type CreateChapterRequest struct {
	Name          string `json:"name" binding:"required,max=150"`
	Province      string `json:"province" binding:"omitempty,max=100"`
	FreeTierLimit *int   `json:"free_tier_limit" binding:"omitempty,min=0"`
}

// SetQuotaRequest represents a chapter quota change
type SetQuotaRequest struct {
	FreeTierLimit int `json:"free_tier_limit" binding:"min=0"`
}

// ChapterResponse represents a chapter in API responses
type ChapterResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Province      string    `json:"province,omitempty"`
	FreeTierLimit int       `json:"free_tier_limit"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// NewChapterResponse converts a domain chapter to its API representation
func NewChapterResponse(c *membership.Chapter) ChapterResponse {
	return ChapterResponse{
		ID:            c.ID.String(),
		Name:          c.Name,
		Province:      c.Province,
		FreeTierLimit: c.FreeTierLimit,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

// NewChapterListResponse converts a slice of domain chapters
func NewChapterListResponse(chapters []membership.Chapter) []ChapterResponse {
	out := make([]ChapterResponse, len(chapters))
	for i := range chapters {
		out[i] = NewChapterResponse(&chapters[i])
	}
	return out
}
