package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/ruralsoc/backend/internal/domain/engagement"
)

// PromotionModel is the persistence model for the Promotion domain entity.
type PromotionModel struct {
	BaseModel
	ShopID      uuid.UUID                `gorm:"type:uuid;not null;index"`
	Title       string                   `gorm:"type:varchar(200);not null"`
	Description string                   `gorm:"type:text"`
	ImageURL    string                   `gorm:"type:text"`
	ValidFrom   *time.Time
	ValidUntil  *time.Time
	Status      engagement.ContentStatus `gorm:"type:varchar(20);not null;default:'active';index"`
}

// TableName returns the table name for GORM
func (PromotionModel) TableName() string {
	return "promotions"
}

// ToDomain converts the persistence model to a domain Promotion entity.
func (m *PromotionModel) ToDomain() *engagement.Promotion {
	return &engagement.Promotion{
		BaseEntity:  m.BaseModel.ToDomain(),
		ShopID:      m.ShopID,
		Title:       m.Title,
		Description: m.Description,
		ImageURL:    m.ImageURL,
		ValidFrom:   m.ValidFrom,
		ValidUntil:  m.ValidUntil,
		Status:      m.Status,
	}
}

// FromDomain populates the persistence model from a domain Promotion entity.
func (m *PromotionModel) FromDomain(p *engagement.Promotion) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.ShopID = p.ShopID
	m.Title = p.Title
	m.Description = p.Description
	m.ImageURL = p.ImageURL
	m.ValidFrom = p.ValidFrom
	m.ValidUntil = p.ValidUntil
	m.Status = p.Status
}

// EventModel is the persistence model for the Event domain entity.
type EventModel struct {
	BaseModel
	Title       string                   `gorm:"type:varchar(200);not null"`
	Description string                   `gorm:"type:text"`
	ImageURL    string                   `gorm:"type:text"`
	Date        time.Time                `gorm:"not null;index"`
	Venue       string                   `gorm:"type:varchar(200)"`
	Status      engagement.ContentStatus `gorm:"type:varchar(20);not null;default:'active';index"`
}

// TableName returns the table name for GORM
func (EventModel) TableName() string {
	return "events"
}

// ToDomain converts the persistence model to a domain Event entity.
func (m *EventModel) ToDomain() *engagement.Event {
	return &engagement.Event{
		BaseEntity:  m.BaseModel.ToDomain(),
		Title:       m.Title,
		Description: m.Description,
		ImageURL:    m.ImageURL,
		Date:        m.Date,
		Venue:       m.Venue,
		Status:      m.Status,
	}
}

// FromDomain populates the persistence model from a domain Event entity.
func (m *EventModel) FromDomain(e *engagement.Event) {
	m.FromDomainBaseEntity(e.BaseEntity)
	m.Title = e.Title
	m.Description = e.Description
	m.ImageURL = e.ImageURL
	m.Date = e.Date
	m.Venue = e.Venue
	m.Status = e.Status
}
