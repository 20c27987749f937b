package models

import (
	"github.com/google/uuid"
	"github.com/ruralsoc/backend/internal/domain/commerce"
)

// ShopModel is the persistence model for the Shop domain entity.
type ShopModel struct {
	BaseModel
	ChapterID    uuid.UUID           `gorm:"type:uuid;not null;index:idx_shops_chapter_plan_status,priority:1"`
	Name         string              `gorm:"type:varchar(200);not null"`
	Sector       string              `gorm:"type:varchar(100)"`
	Address      string              `gorm:"type:text"`
	Phone        string              `gorm:"type:varchar(50)"`
	Email        string              `gorm:"type:varchar(200)"`
	BaseDiscount int                 `gorm:"not null;default:0"`
	PlanTier     commerce.PlanTier   `gorm:"type:varchar(20);not null;default:'free';index:idx_shops_chapter_plan_status,priority:2"`
	Status       commerce.ShopStatus `gorm:"type:varchar(20);not null;default:'active';index:idx_shops_chapter_plan_status,priority:3"`
}

// TableName returns the table name for GORM
func (ShopModel) TableName() string {
	return "shops"
}

// ToDomain converts the persistence model to a domain Shop entity.
func (m *ShopModel) ToDomain() *commerce.Shop {
	return &commerce.Shop{
		BaseEntity:   m.BaseModel.ToDomain(),
		ChapterID:    m.ChapterID,
		Name:         m.Name,
		Sector:       m.Sector,
		Address:      m.Address,
		Phone:        m.Phone,
		Email:        m.Email,
		BaseDiscount: m.BaseDiscount,
		PlanTier:     m.PlanTier,
		Status:       m.Status,
	}
}

// FromDomain populates the persistence model from a domain Shop entity.
func (m *ShopModel) FromDomain(s *commerce.Shop) {
	m.FromDomainBaseEntity(s.BaseEntity)
	m.ChapterID = s.ChapterID
	m.Name = s.Name
	m.Sector = s.Sector
	m.Address = s.Address
	m.Phone = s.Phone
	m.Email = s.Email
	m.BaseDiscount = s.BaseDiscount
	m.PlanTier = s.PlanTier
	m.Status = s.Status
}

// AuditLogModel is the persistence model for audit log entries.
// Entries are append-only and never updated.
type AuditLogModel struct {
	BaseModel
	ActorID   uuid.UUID `gorm:"type:uuid;index"`
	ChapterID uuid.UUID `gorm:"type:uuid;index"`
	Action    string    `gorm:"type:varchar(100);not null;index"`
	Detail    string    `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (AuditLogModel) TableName() string {
	return "audit_log"
}

// ToDomain converts the persistence model to a domain AuditEntry.
func (m *AuditLogModel) ToDomain() *commerce.AuditEntry {
	return &commerce.AuditEntry{
		BaseEntity: m.BaseModel.ToDomain(),
		ActorID:    m.ActorID,
		ChapterID:  m.ChapterID,
		Action:     m.Action,
		Detail:     m.Detail,
	}
}

// FromDomain populates the persistence model from a domain AuditEntry.
func (m *AuditLogModel) FromDomain(e *commerce.AuditEntry) {
	m.FromDomainBaseEntity(e.BaseEntity)
	m.ActorID = e.ActorID
	m.ChapterID = e.ChapterID
	m.Action = e.Action
	m.Detail = e.Detail
}
