package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ruralsoc/backend/internal/domain/billing"
	"github.com/ruralsoc/backend/internal/domain/membership"
	"github.com/ruralsoc/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// DuesConfig holds membership dues parameters
type DuesConfig struct {
	Amount          decimal.Decimal
	Currency        string
	DueDay          int // day of month the period's dues fall due
	NotificationURL string
	SuccessURL      string
	FailureURL      string
	PendingURL      string
	Sandbox         bool
}

// DuesService creates dues records and checkout intents
type DuesService struct {
	duesRepo    billing.DuesRepository
	profileRepo membership.ProfileRepository
	gateway     billing.PaymentGateway
	config      DuesConfig
	logger      *zap.Logger
}

// NewDuesService creates a new DuesService
func NewDuesService(
	duesRepo billing.DuesRepository,
	profileRepo membership.ProfileRepository,
	gateway billing.PaymentGateway,
	config DuesConfig,
	logger *zap.Logger,
) *DuesService {
	return &DuesService{
		duesRepo:    duesRepo,
		profileRepo: profileRepo,
		gateway:     gateway,
		config:      config,
		logger:      logger,
	}
}

// PaymentIntent is the checkout handle returned to the member
type PaymentIntent struct {
	RecordID     uuid.UUID `json:"record_id"`
	PreferenceID string    `json:"preference_id"`
	CheckoutURL  string    `json:"checkout_url"`
	Amount       string    `json:"amount"`
	Currency     string    `json:"currency"`
	Month        int       `json:"month"`
	Year         int       `json:"year"`
	DueDate      time.Time `json:"due_date"`
}

// CreateIntent creates (or reuses) the current period's dues record for
// a member and registers a checkout preference for it. The record's own
// id travels to the processor as external reference, which is how the
// webhook later finds its way back.
func (s *DuesService) CreateIntent(ctx context.Context, profileID uuid.UUID) (*PaymentIntent, error) {
	profile, err := s.profileRepo.FindByID(ctx, profileID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	month, year := int(now.Month()), now.Year()

	record, err := s.duesRepo.FindByProfileAndPeriod(ctx, profileID, month, year)
	switch {
	case err == nil:
		if record.Paid {
			return nil, shared.NewDomainError("ALREADY_PAID", "Dues for the current period are already paid")
		}
	case errors.Is(err, shared.ErrNotFound):
		dueDate := time.Date(year, now.Month(), s.config.DueDay, 0, 0, 0, 0, now.Location())
		record, err = billing.NewDuesRecord(profileID, s.config.Amount, month, year, dueDate)
		if err != nil {
			return nil, err
		}
		if err := s.duesRepo.Save(ctx, record); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	amount, _ := s.config.Amount.Float64()
	preference, err := s.gateway.CreatePreference(ctx, billing.PreferenceRequest{
		Items: []billing.PreferenceItem{{
			Title:     fmt.Sprintf("Cuota social %02d/%d", month, year),
			Quantity:  1,
			UnitPrice: amount,
			Currency:  s.config.Currency,
		}},
		PayerEmail:        profile.Email,
		ExternalReference: record.ExternalReference(),
		NotificationURL:   s.config.NotificationURL,
		SuccessURL:        s.config.SuccessURL,
		FailureURL:        s.config.FailureURL,
		PendingURL:        s.config.PendingURL,
	})
	if err != nil {
		return nil, err
	}

	record.PreferenceID = preference.ID
	record.Touch()
	if err := s.duesRepo.Update(ctx, record); err != nil {
		s.logger.Warn("Failed to store preference id on dues record",
			zap.String("record_id", record.ID.String()),
			zap.Error(err))
	}

	checkoutURL := preference.InitPoint
	if s.config.Sandbox && preference.SandboxInitPoint != "" {
		checkoutURL = preference.SandboxInitPoint
	}

	s.logger.Info("Payment intent created",
		zap.String("record_id", record.ID.String()),
		zap.String("preference_id", preference.ID),
		zap.Int("month", month),
		zap.Int("year", year))

	return &PaymentIntent{
		RecordID:     record.ID,
		PreferenceID: preference.ID,
		CheckoutURL:  checkoutURL,
		Amount:       s.config.Amount.StringFixed(2),
		Currency:     s.config.Currency,
		Month:        month,
		Year:         year,
		DueDate:      record.DueDate,
	}, nil
}

// ListDues returns a member's dues history, newest period first
func (s *DuesService) ListDues(ctx context.Context, profileID uuid.UUID, filter shared.Filter) ([]billing.DuesRecord, error) {
	return s.duesRepo.FindByProfile(ctx, profileID, filter.Normalize(100))
}

// MarkDelinquents flags members whose dues are overdue as of now.
// Intended to run periodically; returns the number of members flagged.
func (s *DuesService) MarkDelinquents(ctx context.Context) (int, error) {
	overdue, err := s.duesRepo.FindUnpaidOverdue(ctx, time.Now(), shared.Filter{Limit: 1000})
	if err != nil {
		return 0, err
	}

	flagged := 0
	seen := make(map[uuid.UUID]bool)
	for _, record := range overdue {
		if seen[record.ProfileID] {
			continue
		}
		seen[record.ProfileID] = true

		profile, err := s.profileRepo.FindByID(ctx, record.ProfileID)
		if err != nil {
			s.logger.Warn("Delinquency sweep: profile lookup failed",
				zap.String("profile_id", record.ProfileID.String()),
				zap.Error(err))
			continue
		}
		if profile.Delinquent {
			continue
		}

		profile.SetDelinquent(true)
		if err := s.profileRepo.Update(ctx, profile); err != nil {
			s.logger.Warn("Delinquency sweep: profile update failed",
				zap.String("profile_id", profile.ID.String()),
				zap.Error(err))
			continue
		}
		flagged++
	}

	if flagged > 0 {
		s.logger.Info("Delinquency sweep completed", zap.Int("flagged", flagged))
	}
	return flagged, nil
}
