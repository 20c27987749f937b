package billing

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/ruralsoc/backend/internal/domain/billing"
	"github.com/ruralsoc/backend/internal/domain/membership"
	"github.com/ruralsoc/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Notification is the payment processor's webhook payload, already
// normalized from either query parameters or a JSON body
type Notification struct {
	Type string // "payment" is the only type acted on
	ID   string // processor payment id
}

// ReconcileResult describes what a notification did
type ReconcileResult struct {
	NotificationID string `json:"notification_id"`
	Applied        bool   `json:"applied"`
	Reason         string `json:"reason,omitempty"`
}

// ReconcilerService settles dues records from payment notifications.
//
// The processor retries notifications aggressively and may deliver the
// same one many times. Correctness comes from the conditional
// pending→paid UPDATE; the idempotency store only short-circuits
// repeats cheaply.
type ReconcilerService struct {
	duesRepo    billing.DuesRepository
	profileRepo membership.ProfileRepository
	gateway     billing.PaymentGateway
	dedup       shared.IdempotencyStore // optional, may be nil
	dedupTTL    time.Duration
	logger      *zap.Logger
}

// NewReconcilerService creates a new ReconcilerService. dedup may be
// nil, in which case every notification is fully processed.
func NewReconcilerService(
	duesRepo billing.DuesRepository,
	profileRepo membership.ProfileRepository,
	gateway billing.PaymentGateway,
	dedup shared.IdempotencyStore,
	dedupTTL time.Duration,
	logger *zap.Logger,
) *ReconcilerService {
	if dedupTTL == 0 {
		dedupTTL = 24 * time.Hour
	}
	return &ReconcilerService{
		duesRepo:    duesRepo,
		profileRepo: profileRepo,
		gateway:     gateway,
		dedup:       dedup,
		dedupTTL:    dedupTTL,
		logger:      logger,
	}
}

// HandleNotification processes one webhook delivery. It never trusts
// the notification body for payment status: the processor is queried
// for the authoritative state before any write. All outcomes other
// than infrastructure failure return a nil error so the HTTP layer
// can acknowledge the delivery.
func (s *ReconcilerService) HandleNotification(ctx context.Context, n Notification) (*ReconcileResult, error) {
	result := &ReconcileResult{NotificationID: n.ID}

	if n.Type != "payment" || n.ID == "" {
		result.Reason = "ignored: not a payment notification"
		return result, nil
	}

	if s.dedup != nil {
		seen, err := s.dedup.IsProcessed(ctx, n.ID)
		if err != nil {
			// Dedup is an optimization; fall through and let the
			// conditional update decide
			s.logger.Warn("Idempotency store unavailable",
				zap.String("notification_id", n.ID),
				zap.Error(err))
		} else if seen {
			result.Reason = "duplicate delivery"
			return result, nil
		}
	}

	payment, err := s.gateway.GetPayment(ctx, n.ID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			result.Reason = "payment not found at processor"
			return result, nil
		}
		return result, err
	}

	if payment.Status != billing.PaymentStatusApproved {
		result.Reason = "payment not approved: " + payment.Status
		s.logger.Info("Notification for non-approved payment",
			zap.String("payment_id", payment.ID),
			zap.String("status", payment.Status))
		return result, nil
	}

	recordID, err := uuid.Parse(payment.ExternalReference)
	if err != nil {
		result.Reason = "malformed external reference"
		s.logger.Warn("Payment carries malformed external reference",
			zap.String("payment_id", payment.ID),
			zap.String("external_reference", payment.ExternalReference))
		return result, nil
	}

	applied, err := s.duesRepo.MarkPaid(ctx, recordID, payment.ID, time.Now())
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			result.Reason = "no dues record for reference"
			s.logger.Warn("Payment references unknown dues record",
				zap.String("payment_id", payment.ID),
				zap.String("record_id", recordID.String()))
			return result, nil
		}
		return result, err
	}

	if !applied {
		result.Reason = "already paid"
		s.markSettled(ctx, n.ID)
		return result, nil
	}

	result.Applied = true
	s.logger.Info("Dues record settled",
		zap.String("record_id", recordID.String()),
		zap.String("payment_id", payment.ID))

	s.markSettled(ctx, n.ID)
	s.clearDelinquency(ctx, recordID)

	return result, nil
}

// markSettled records the notification id in the dedup store once the
// settlement outcome is final. Marking any earlier would burn the id on
// a transient failure and silence the processor's retry for the whole
// TTL while the record stays unpaid. Non-final outcomes (pending
// status, payment not yet queryable, infrastructure errors) are never
// marked so the retry gets a full pass.
func (s *ReconcilerService) markSettled(ctx context.Context, notificationID string) {
	if s.dedup == nil {
		return
	}
	if _, err := s.dedup.MarkProcessed(ctx, notificationID, s.dedupTTL); err != nil {
		s.logger.Warn("Idempotency store unavailable",
			zap.String("notification_id", notificationID),
			zap.Error(err))
	}
}

// clearDelinquency lifts the member's delinquency flag when no overdue
// records remain. Best-effort: settlement already happened.
func (s *ReconcilerService) clearDelinquency(ctx context.Context, recordID uuid.UUID) {
	record, err := s.duesRepo.FindByID(ctx, recordID)
	if err != nil {
		return
	}
	profile, err := s.profileRepo.FindByID(ctx, record.ProfileID)
	if err != nil || !profile.Delinquent {
		return
	}

	remaining, err := s.duesRepo.FindByProfile(ctx, record.ProfileID, shared.Filter{Limit: 100})
	if err != nil {
		return
	}
	now := time.Now()
	for _, r := range remaining {
		if !r.Paid && r.DueDate.Before(now) {
			return
		}
	}

	profile.SetDelinquent(false)
	if err := s.profileRepo.Update(ctx, profile); err != nil {
		s.logger.Warn("Failed to clear delinquency flag",
			zap.String("profile_id", profile.ID.String()),
			zap.Error(err))
	}
}
