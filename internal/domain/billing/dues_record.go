package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/ruralsoc/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// DuesRecord represents one billing period's membership dues for a member.
// The record's own ID is the external reference handed to the payment
// processor, making the record the single source of truth for what a
// payment corresponds to.
type DuesRecord struct {
	shared.BaseEntity
	ProfileID    uuid.UUID
	Amount       decimal.Decimal
	Month        int
	Year         int
	Paid         bool
	DueDate      time.Time
	PaidAt       *time.Time
	PreferenceID string // processor-assigned checkout preference id
	PaymentID    string // processor-assigned payment id, set on settlement
}

// NewDuesRecord creates an unpaid dues record for the given billing period
func NewDuesRecord(profileID uuid.UUID, amount decimal.Decimal, month, year int, dueDate time.Time) (*DuesRecord, error) {
	if profileID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PROFILE", "Profile ID cannot be empty")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Dues amount must be positive")
	}
	if month < 1 || month > 12 {
		return nil, shared.NewDomainError("INVALID_PERIOD", "Billing month must be between 1 and 12")
	}
	return &DuesRecord{
		BaseEntity: shared.NewBaseEntity(),
		ProfileID:  profileID,
		Amount:     amount,
		Month:      month,
		Year:       year,
		Paid:       false,
		DueDate:    dueDate,
	}, nil
}

// ExternalReference returns the identifier handed to the payment processor
func (d *DuesRecord) ExternalReference() string {
	return d.ID.String()
}

// MarkPaid applies the pending→paid transition. Repeating the transition
// is a no-op: the first settlement wins and PaidAt never moves.
func (d *DuesRecord) MarkPaid(paymentID string, at time.Time) bool {
	if d.Paid {
		return false
	}
	d.Paid = true
	d.PaidAt = &at
	d.PaymentID = paymentID
	d.Touch()
	return true
}
