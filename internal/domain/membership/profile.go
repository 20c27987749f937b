package membership

import (
	"strings"

	"github.com/google/uuid"
	"github.com/ruralsoc/backend/internal/domain/shared"
)

// ProfileStatus represents the lifecycle status of a member profile
type ProfileStatus string

const (
	ProfileStatusPending  ProfileStatus = "pending"
	ProfileStatusActive   ProfileStatus = "active"
	ProfileStatusDisabled ProfileStatus = "disabled"
)

// Role represents a member's role within the association
type Role string

const (
	RoleMember       Role = "member"
	RoleShopOwner    Role = "shop_owner"
	RoleChapterAdmin Role = "chapter_admin"
	RoleSuperAdmin   Role = "superadmin"
)

// IsAdmin reports whether the role grants administrative access
func (r Role) IsAdmin() bool {
	return r == RoleChapterAdmin || r == RoleSuperAdmin
}

// MemberProfile represents a member of the association.
// The profile ID matches the user ID assigned by the external identity
// service, so lookups from token claims are primary-key hits.
type MemberProfile struct {
	shared.BaseEntity
	ChapterID  uuid.UUID
	Email      string
	DocumentID string // national identity document number
	FirstName  string
	LastName   string
	Phone      string
	City       string
	Province   string
	Role       Role
	Status     ProfileStatus
	Delinquent bool       // behind on dues; does not gate QR access
	ShopID     *uuid.UUID // set for shop owners
}

// NewMemberProfile creates a member profile in pending state.
// The id comes from the identity service, not generated locally.
func NewMemberProfile(id, chapterID uuid.UUID, email, documentID, firstName, lastName string) (*MemberProfile, error) {
	if id == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PROFILE_ID", "Profile ID cannot be empty")
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	documentID = strings.TrimSpace(documentID)
	if documentID == "" {
		return nil, shared.NewDomainError("INVALID_DOCUMENT", "Document number cannot be empty")
	}
	base := shared.NewBaseEntity()
	base.ID = id
	return &MemberProfile{
		BaseEntity: base,
		ChapterID:  chapterID,
		Email:      email,
		DocumentID: documentID,
		FirstName:  strings.TrimSpace(firstName),
		LastName:   strings.TrimSpace(lastName),
		Role:       RoleMember,
		Status:     ProfileStatusPending,
	}, nil
}

// IsActive reports whether the member currently has active status
func (p *MemberProfile) IsActive() bool {
	return p.Status == ProfileStatusActive
}

// Approve transitions a pending profile to active
func (p *MemberProfile) Approve() error {
	if p.Status == ProfileStatusDisabled {
		return shared.NewDomainError("INVALID_STATE", "Cannot approve a disabled member")
	}
	p.Status = ProfileStatusActive
	p.Touch()
	return nil
}

// Disable transitions a profile to disabled
func (p *MemberProfile) Disable() error {
	if p.Status == ProfileStatusDisabled {
		return shared.ErrInvalidState
	}
	p.Status = ProfileStatusDisabled
	p.Touch()
	return nil
}

// SetDelinquent flags or clears the member's dues delinquency
func (p *MemberProfile) SetDelinquent(delinquent bool) {
	p.Delinquent = delinquent
	p.Touch()
}

// FullName returns the member's display name
func (p *MemberProfile) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}
