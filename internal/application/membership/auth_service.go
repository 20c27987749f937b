package membership

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/ruralsoc/backend/internal/domain/membership"
	"github.com/ruralsoc/backend/internal/domain/shared"
	"github.com/ruralsoc/backend/internal/infrastructure/auth"
	"go.uber.org/zap"
)

var digitsOnly = regexp.MustCompile(`^[0-9]+$`)

// AuthService handles registration and login. Credentials live in the
// external identity service; this service owns the profile and the
// application token.
type AuthService struct {
	identity    membership.IdentityProvider
	profileRepo membership.ProfileRepository
	chapterRepo membership.ChapterRepository
	jwtService  *auth.JWTService
	logger      *zap.Logger

	defaultChapterID uuid.UUID
}

// NewAuthService creates a new AuthService
func NewAuthService(
	identity membership.IdentityProvider,
	profileRepo membership.ProfileRepository,
	chapterRepo membership.ChapterRepository,
	jwtService *auth.JWTService,
	defaultChapterID uuid.UUID,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		identity:         identity,
		profileRepo:      profileRepo,
		chapterRepo:      chapterRepo,
		jwtService:       jwtService,
		defaultChapterID: defaultChapterID,
		logger:           logger,
	}
}

// RegisterInput contains input for member registration
type RegisterInput struct {
	Email      string
	Password   string
	DocumentID string
	FirstName  string
	LastName   string
	Phone      string
	City       string
	Province   string
	ChapterID  uuid.UUID // optional
}

// AuthResult bundles the issued token with the member's profile
type AuthResult struct {
	Token   *auth.Token
	Profile *membership.MemberProfile
}

// Register creates a credentialed user at the identity service and a
// pending profile locally. A duplicate document number is rejected
// before touching the identity service; if the profile write fails
// afterwards, the identity user is rolled back.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*membership.MemberProfile, error) {
	if _, err := s.profileRepo.FindByDocumentID(ctx, strings.TrimSpace(input.DocumentID)); err == nil {
		return nil, shared.NewDomainError("DOCUMENT_TAKEN", "A member with this document number already exists")
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	chapterID, err := s.resolveChapter(ctx, input.ChapterID)
	if err != nil {
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

	if err := s.profileRepo.Save(ctx, profile); err != nil {
		s.rollbackIdentity(ctx, userID)
		if errors.Is(err, shared.ErrAlreadyExists) {
			return nil, shared.NewDomainError("DOCUMENT_TAKEN", "A member with this document number already exists")
		}
		return nil, err
	}

	s.logger.Info("Member registered",
		zap.String("profile_id", profile.ID.String()),
		zap.String("chapter_id", chapterID.String()))

	return profile, nil
}

// Login authenticates a member by email, or by document number when
// the identifier is all digits, and issues an application token
func (s *AuthService) Login(ctx context.Context, identifier, password string) (*AuthResult, error) {
	identifier = strings.TrimSpace(identifier)

	email := identifier
	if digitsOnly.MatchString(identifier) {
		profile, err := s.profileRepo.FindByDocumentID(ctx, identifier)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, membership.ErrInvalidCredentials
			}
			return nil, err
		}
		email = profile.Email
	}

	userID, err := s.identity.VerifyPassword(ctx, email, password)
	if err != nil {
		return nil, err
	}

	profile, err := s.profileRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, membership.ErrInvalidCredentials
		}
		return nil, err
	}

	token, err := s.jwtService.GenerateToken(profile)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Member logged in", zap.String("profile_id", profile.ID.String()))

	return &AuthResult{Token: token, Profile: profile}, nil
}

// resolveChapter picks the chapter for a new registration
func (s *AuthService) resolveChapter(ctx context.Context, explicit uuid.UUID) (uuid.UUID, error) {
	if explicit != uuid.Nil {
		if _, err := s.chapterRepo.FindByID(ctx, explicit); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return uuid.Nil, shared.NewDomainError("INVALID_CHAPTER", "Unknown chapter")
			}
			return uuid.Nil, err
		}
		return explicit, nil
	}
	if s.defaultChapterID != uuid.Nil {
		return s.defaultChapterID, nil
	}
	chapter, err := s.chapterRepo.FindFirst(ctx)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return uuid.Nil, shared.NewDomainError("CHAPTER_REQUIRED", "No chapter specified and none configured")
		}
		return uuid.Nil, err
	}
	return chapter.ID, nil
}

// rollbackIdentity deletes a half-registered identity user
func (s *AuthService) rollbackIdentity(ctx context.Context, userID uuid.UUID) {
	if err := s.identity.DeleteUser(ctx, userID); err != nil {
		s.logger.Error("Failed to roll back identity user",
			zap.String("user_id", userID.String()),
			zap.Error(err))
	}
}
