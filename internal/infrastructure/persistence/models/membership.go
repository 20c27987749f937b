package models

import (
	"github.com/google/uuid"
	"github.com/ruralsoc/backend/internal/domain/membership"
)

// ChapterModel is the persistence model for the Chapter domain entity.
type ChapterModel struct {
	BaseModel
	Name          string `gorm:"type:varchar(200);not null;uniqueIndex"`
	Province      string `gorm:"type:varchar(100)"`
	FreeTierLimit int    `gorm:"not null;default:10"`
}

// TableName returns the table name for GORM
func (ChapterModel) TableName() string {
	return "chapters"
}

// ToDomain converts the persistence model to a domain Chapter entity.
func (m *ChapterModel) ToDomain() *membership.Chapter {
	return &membership.Chapter{
		BaseEntity:    m.BaseModel.ToDomain(),
		Name:          m.Name,
		Province:      m.Province,
		FreeTierLimit: m.FreeTierLimit,
	}
}

// FromDomain populates the persistence model from a domain Chapter entity.
func (m *ChapterModel) FromDomain(c *membership.Chapter) {
	m.FromDomainBaseEntity(c.BaseEntity)
	m.Name = c.Name
	m.Province = c.Province
	m.FreeTierLimit = c.FreeTierLimit
}

// ProfileModel is the persistence model for the MemberProfile domain entity.
type ProfileModel struct {
	BaseModel
	ChapterID  uuid.UUID                `gorm:"type:uuid;not null;index"`
	Email      string                   `gorm:"type:varchar(200);not null;uniqueIndex"`
	DocumentID string                   `gorm:"type:varchar(50);not null;uniqueIndex"`
	FirstName  string                   `gorm:"type:varchar(100);not null"`
	LastName   string                   `gorm:"type:varchar(100);not null"`
	Phone      string                   `gorm:"type:varchar(50)"`
	City       string                   `gorm:"type:varchar(100)"`
	Province   string                   `gorm:"type:varchar(100)"`
	Role       membership.Role          `gorm:"type:varchar(20);not null;default:'member'"`
	Status     membership.ProfileStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	Delinquent bool                     `gorm:"not null;default:false"`
	ShopID     *uuid.UUID               `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (ProfileModel) TableName() string {
	return "profiles"
}

// ToDomain converts the persistence model to a domain MemberProfile entity.
func (m *ProfileModel) ToDomain() *membership.MemberProfile {
	return &membership.MemberProfile{
		BaseEntity: m.BaseModel.ToDomain(),
		ChapterID:  m.ChapterID,
		Email:      m.Email,
		DocumentID: m.DocumentID,
		FirstName:  m.FirstName,
		LastName:   m.LastName,
		Phone:      m.Phone,
		City:       m.City,
		Province:   m.Province,
		Role:       m.Role,
		Status:     m.Status,
		Delinquent: m.Delinquent,
		ShopID:     m.ShopID,
	}
}

// FromDomain populates the persistence model from a domain MemberProfile entity.
func (m *ProfileModel) FromDomain(p *membership.MemberProfile) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.ChapterID = p.ChapterID
	m.Email = p.Email
	m.DocumentID = p.DocumentID
	m.FirstName = p.FirstName
	m.LastName = p.LastName
	m.Phone = p.Phone
	m.City = p.City
	m.Province = p.Province
	m.Role = p.Role
	m.Status = p.Status
	m.Delinquent = p.Delinquent
	m.ShopID = p.ShopID
}
