package membership

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/ruralsoc/backend/internal/domain/membership"
	"go.uber.org/zap"
)

// AccessService answers QR validation scans at shop counters
type AccessService struct {
	profileRepo membership.ProfileRepository
	logger      *zap.Logger
}

// NewAccessService creates a new AccessService
func NewAccessService(profileRepo membership.ProfileRepository, logger *zap.Logger) *AccessService {
	return &AccessService{
		profileRepo: profileRepo,
		logger:      logger,
	}
}

// AccessDecision is the verdict shown to the person scanning.
// Delinquency is surfaced for the shop's information but does not flip
// the verdict; only the profile status does.
type AccessDecision struct {
	Granted    bool      `json:"granted"`
	MemberID   uuid.UUID `json:"member_id"`
	FullName   string    `json:"full_name"`
	Status     string    `json:"status"`
	Delinquent bool      `json:"delinquent"`
	CheckedAt  time.Time `json:"checked_at"`
}

// Validate checks a scanned member id. Access is granted iff the
// profile status is active. Unknown ids surface as ErrNotFound so the
// transport can answer 404 rather than a denied verdict.
func (s *AccessService) Validate(ctx context.Context, memberID uuid.UUID) (*AccessDecision, error) {
	profile, err := s.profileRepo.FindByID(ctx, memberID)
	if err != nil {
		return nil, err
	}

	decision := &AccessDecision{
		Granted:    profile.IsActive(),
		MemberID:   profile.ID,
		FullName:   profile.FullName(),
		Status:     string(profile.Status),
		Delinquent: profile.Delinquent,
		CheckedAt:  time.Now(),
	}

	s.logger.Info("Access validation",
		zap.String("member_id", memberID.String()),
		zap.Bool("granted", decision.Granted),
		zap.String("status", decision.Status))

	return decision, nil
}
