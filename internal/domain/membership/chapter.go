package membership

import (
	"strings"

	"github.com/ruralsoc/backend/internal/domain/shared"
)

// Chapter represents a regional sub-organization of the association.
// Each chapter carries its own quota of free-tier shop registrations,
// a business policy set by operators and treated as read-mostly.
type Chapter struct {
	shared.BaseEntity
	Name          string
	Province      string
	FreeTierLimit int
}

// NewChapter creates a new chapter with the given free-tier shop limit
func NewChapter(name, province string, freeTierLimit int) (*Chapter, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_CHAPTER_NAME", "Chapter name cannot be empty")
	}
	if freeTierLimit < 0 {
		return nil, shared.NewDomainError("INVALID_QUOTA_LIMIT", "Free-tier limit cannot be negative")
	}
	return &Chapter{
		BaseEntity:    shared.NewBaseEntity(),
		Name:          name,
		Province:      strings.TrimSpace(province),
		FreeTierLimit: freeTierLimit,
	}, nil
}

// SetFreeTierLimit updates the chapter's free-tier shop quota
func (c *Chapter) SetFreeTierLimit(limit int) error {
	if limit < 0 {
		return shared.NewDomainError("INVALID_QUOTA_LIMIT", "Free-tier limit cannot be negative")
	}
	c.FreeTierLimit = limit
	c.Touch()
	return nil
}
