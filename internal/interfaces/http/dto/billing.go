package dto

import (
	"time"

	"github.com/ruralsoc/backend/internal/domain/billing"
)

// DuesRecordResponse represents a dues record in API responses
type DuesRecordResponse struct {
	ID           string     `json:"id"`
	ProfileID    string     `json:"profile_id"`
	Amount       string     `json:"amount"`
	Month        int        `json:"month"`
	Year         int        `json:"year"`
	Paid         bool       `json:"paid"`
	DueDate      time.Time  `json:"due_date"`
	PaidAt       *time.Time `json:"paid_at,omitempty"`
	PreferenceID string     `json:"preference_id,omitempty"`
	PaymentID    string     `json:"payment_id,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// NewDuesRecordResponse converts a domain dues record
func NewDuesRecordResponse(r *billing.DuesRecord) DuesRecordResponse {
	return DuesRecordResponse{
		ID:           r.ID.String(),
		ProfileID:    r.ProfileID.String(),
		Amount:       r.Amount.StringFixed(2),
		Month:        r.Month,
		Year:         r.Year,
		Paid:         r.Paid,
		DueDate:      r.DueDate,
		PaidAt:       r.PaidAt,
		PreferenceID: r.PreferenceID,
		PaymentID:    r.PaymentID,
		CreatedAt:    r.CreatedAt,
	}
}

// NewDuesRecordListResponse converts a slice of domain dues records
func NewDuesRecordListResponse(records []billing.DuesRecord) []DuesRecordResponse {
	out := make([]DuesRecordResponse, len(records))
	for i := range records {
		out[i] = NewDuesRecordResponse(&records[i])
	}
	return out
}

// WebhookBody is the JSON body of a payment processor notification.
// The processor also sends the same fields as query parameters on some
// delivery modes; the handler merges both.
type WebhookBody struct {
	Type   string `json:"type"`
	Topic  string `json:"topic"`
	Action string `json:"action"`
	ID     string `json:"id"`
	Data   struct {
		ID string `json:"id"`
	} `json:"data"`
}
