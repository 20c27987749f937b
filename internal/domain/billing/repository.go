package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/ruralsoc/backend/internal/domain/shared"
)

// DuesRepository provides access to dues records.
//
// MarkPaid must be conditional on the record still being unpaid so that
// duplicate webhook deliveries collapse to a single transition. It
// returns (false, nil) when the record was already paid, and
// shared.ErrNotFound when no record matches the id.
type DuesRepository interface {
	Save(ctx context.Context, record *DuesRecord) error
	Update(ctx context.Context, record *DuesRecord) error
	FindByID(ctx context.Context, id uuid.UUID) (*DuesRecord, error)
	FindByProfile(ctx context.Context, profileID uuid.UUID, filter shared.Filter) ([]DuesRecord, error)
	FindByProfileAndPeriod(ctx context.Context, profileID uuid.UUID, month, year int) (*DuesRecord, error)
	FindUnpaidOverdue(ctx context.Context, asOf time.Time, filter shared.Filter) ([]DuesRecord, error)
	MarkPaid(ctx context.Context, id uuid.UUID, paymentID string, paidAt time.Time) (bool, error)
}
