package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/ruralsoc/backend/internal/domain/billing"
	"github.com/shopspring/decimal"
)

// DuesRecordModel is the persistence model for the DuesRecord domain entity.
type DuesRecordModel struct {
	BaseModel
	ProfileID    uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_dues_profile_period,priority:1"`
	Amount       decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Month        int             `gorm:"not null;uniqueIndex:idx_dues_profile_period,priority:2"`
	Year         int             `gorm:"not null;uniqueIndex:idx_dues_profile_period,priority:3"`
	Paid         bool            `gorm:"not null;default:false;index"`
	DueDate      time.Time       `gorm:"not null"`
	PaidAt       *time.Time
	PreferenceID string `gorm:"type:varchar(100)"`
	PaymentID    string `gorm:"type:varchar(100)"`
}

// TableName returns the table name for GORM
func (DuesRecordModel) TableName() string {
	return "dues_records"
}

// ToDomain converts the persistence model to a domain DuesRecord entity.
func (m *DuesRecordModel) ToDomain() *billing.DuesRecord {
	return &billing.DuesRecord{
		BaseEntity:   m.BaseModel.ToDomain(),
		ProfileID:    m.ProfileID,
		Amount:       m.Amount,
		Month:        m.Month,
		Year:         m.Year,
		Paid:         m.Paid,
		DueDate:      m.DueDate,
		PaidAt:       m.PaidAt,
		PreferenceID: m.PreferenceID,
		PaymentID:    m.PaymentID,
	}
}

// FromDomain populates the persistence model from a domain DuesRecord entity.
func (m *DuesRecordModel) FromDomain(d *billing.DuesRecord) {
	m.FromDomainBaseEntity(d.BaseEntity)
	m.ProfileID = d.ProfileID
	m.Amount = d.Amount
	m.Month = d.Month
	m.Year = d.Year
	m.Paid = d.Paid
	m.DueDate = d.DueDate
	m.PaidAt = d.PaidAt
	m.PreferenceID = d.PreferenceID
	m.PaymentID = d.PaymentID
}
