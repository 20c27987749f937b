package membership

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/ruralsoc/backend/internal/domain/membership"
	"github.com/ruralsoc/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// MemberService handles profile administration
type MemberService struct {
	identity    membership.IdentityProvider
	profileRepo membership.ProfileRepository
	chapterRepo membership.ChapterRepository
	logger      *zap.Logger
}

// NewMemberService creates a new MemberService
func NewMemberService(
	identity membership.IdentityProvider,
	profileRepo membership.ProfileRepository,
	chapterRepo membership.ChapterRepository,
	logger *zap.Logger,
) *MemberService {
	return &MemberService{
		identity:    identity,
		profileRepo: profileRepo,
		chapterRepo: chapterRepo,
		logger:      logger,
	}
}

// CreateMemberInput contains input for an administrative member creation
type CreateMemberInput struct {
	Email        string
	Password     string
	DocumentID   string
	FirstName    string
	LastName     string
	Phone        string
	City         string
	Province     string
	ChapterID    uuid.UUID // optional, falls back to the actor's chapter
	ActorChapter uuid.UUID
}

// CreateMember registers a member on behalf of an administrator. Unlike
// self-registration the profile comes out active, no approval step.
// The identity user is rolled back if the profile write fails.
func (s *MemberService) CreateMember(ctx context.Context, input CreateMemberInput) (*membership.MemberProfile, error) {
	if _, err := s.profileRepo.FindByDocumentID(ctx, strings.TrimSpace(input.DocumentID)); err == nil {
		return nil, shared.NewDomainError("DOCUMENT_TAKEN", "A member with this document number already exists")
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	chapterID := input.ChapterID
	if chapterID == uuid.Nil {
		chapterID = input.ActorChapter
	}
	if chapterID == uuid.Nil {
		return nil, shared.NewDomainError("CHAPTER_REQUIRED", "No chapter specified")
	}
	if _, err := s.chapterRepo.FindByID(ctx, chapterID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_CHAPTER", "Unknown chapter")
		}
		return nil, err
	}

	userID, err := s.identity.SignUp(ctx, input.Email, input.Password)
	if err != nil {
		return nil, err
	}

	profile, err := membership.NewMemberProfile(userID, chapterID,
		input.Email, input.DocumentID, input.FirstName, input.LastName)
	if err != nil {
		s.rollbackIdentity(ctx, userID)
		return nil, err
	}
	profile.Phone = strings.TrimSpace(input.Phone)
	profile.City = strings.TrimSpace(input.City)
	profile.Province = strings.TrimSpace(input.Province)
	if err := profile.Approve(); err != nil {
		s.rollbackIdentity(ctx, userID)
		return nil, err
	}

	if err := s.profileRepo.Save(ctx, profile); err != nil {
		s.rollbackIdentity(ctx, userID)
		if errors.Is(err, shared.ErrAlreadyExists) {
			return nil, shared.NewDomainError("DOCUMENT_TAKEN", "A member with this document number already exists")
		}
		return nil, err
	}

	s.logger.Info("Member created by administrator",
		zap.String("profile_id", profile.ID.String()),
		zap.String("chapter_id", chapterID.String()))

	return profile, nil
}

// GetProfile fetches a member profile by id
func (s *MemberService) GetProfile(ctx context.Context, id uuid.UUID) (*membership.MemberProfile, error) {
	return s.profileRepo.FindByID(ctx, id)
}

// ListMembers lists profiles, optionally restricted to a chapter
func (s *MemberService) ListMembers(ctx context.Context, chapterID uuid.UUID, filter shared.Filter) ([]membership.MemberProfile, error) {
	filter = filter.Normalize(200)
	if chapterID != uuid.Nil {
		return s.profileRepo.FindByChapter(ctx, chapterID, filter)
	}
	return s.profileRepo.FindAll(ctx, filter)
}

// ApproveMember transitions a pending member to active
func (s *MemberService) ApproveMember(ctx context.Context, id uuid.UUID) (*membership.MemberProfile, error) {
	profile, err := s.profileRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := profile.Approve(); err != nil {
		return nil, err
	}
	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, err
	}

	s.logger.Info("Member approved", zap.String("profile_id", id.String()))
	return profile, nil
}

// DisableMember disables a member; their QR validations fail from the
// next scan on
func (s *MemberService) DisableMember(ctx context.Context, id uuid.UUID) (*membership.MemberProfile, error) {
	profile, err := s.profileRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := profile.Disable(); err != nil {
		return nil, err
	}
	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, err
	}

	s.logger.Info("Member disabled", zap.String("profile_id", id.String()))
	return profile, nil
}

// UpdateProfileInput contains member-editable profile fields
type UpdateProfileInput struct {
	FirstName *string
	LastName  *string
	Phone     *string
	City      *string
	Province  *string
}

// UpdateProfile applies partial updates to a member's own profile
func (s *MemberService) UpdateProfile(ctx context.Context, id uuid.UUID, input UpdateProfileInput) (*membership.MemberProfile, error) {
	return s.applyProfileUpdate(ctx, id, uuid.Nil, input)
}

// UpdateMember applies partial updates on behalf of an administrator.
// A non-nil scopeChapter restricts the update to members of that
// chapter; superadmins pass uuid.Nil.
func (s *MemberService) UpdateMember(ctx context.Context, id, scopeChapter uuid.UUID, input UpdateProfileInput) (*membership.MemberProfile, error) {
	return s.applyProfileUpdate(ctx, id, scopeChapter, input)
}

func (s *MemberService) applyProfileUpdate(ctx context.Context, id, scopeChapter uuid.UUID, input UpdateProfileInput) (*membership.MemberProfile, error) {
	profile, err := s.profileRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if scopeChapter != uuid.Nil && profile.ChapterID != scopeChapter {
		return nil, shared.ErrForbidden
	}

	if input.FirstName != nil {
		profile.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		profile.LastName = *input.LastName
	}
	if input.Phone != nil {
		profile.Phone = *input.Phone
	}
	if input.City != nil {
		profile.City = *input.City
	}
	if input.Province != nil {
		profile.Province = *input.Province
	}
	profile.Touch()

	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// rollbackIdentity deletes a half-created identity user
func (s *MemberService) rollbackIdentity(ctx context.Context, userID uuid.UUID) {
	if err := s.identity.DeleteUser(ctx, userID); err != nil {
		s.logger.Error("Failed to roll back identity user",
			zap.String("user_id", userID.String()),
			zap.Error(err))
	}
}
