package engagement

import (
	"strings"
	"time"

	"github.com/ruralsoc/backend/internal/domain/shared"
)

// Event represents an association event announced to members
type Event struct {
	shared.BaseEntity
	Title       string
	Description string
	ImageURL    string
	Date        time.Time
	Venue       string
	Status      ContentStatus
}

// NewEvent creates an active event
func NewEvent(title, description string, date time.Time, venue string) (*Event, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Event title cannot be empty")
	}
	if date.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Event date is required")
	}
	return &Event{
		BaseEntity:  shared.NewBaseEntity(),
		Title:       title,
		Description: strings.TrimSpace(description),
		Date:        date,
		Venue:       strings.TrimSpace(venue),
		Status:      ContentStatusActive,
	}, nil
}
