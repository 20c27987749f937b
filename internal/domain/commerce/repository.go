package commerce

import (
	"context"

	"github.com/google/uuid"
	"github.com/ruralsoc/backend/internal/domain/shared"
)

// QuotaExceededError is returned when a chapter's free-tier shop quota
// is full at the instant of the attempted insert. It carries the live
// used/limit counts observed inside the critical section.
type QuotaExceededError struct {
	ChapterID uuid.UUID
	Used      int64
	Limit     int64
}

// Error implements the error interface
func (e *QuotaExceededError) Error() string {
	return "free-tier shop quota exceeded for chapter"
}

// ShopRepository provides access to shop state.
//
// CreateWithinQuota is the quota guard's storage primitive: it must count
// active free-tier shops and insert the new shop atomically with respect
// to other callers of the same chapter, so that the count can never pass
// the limit even under concurrent creation. Implementations return
// *QuotaExceededError when the slot is taken.
type ShopRepository interface {
	Save(ctx context.Context, shop *Shop) error
	Update(ctx context.Context, shop *Shop) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Shop, error)
	FindByChapter(ctx context.Context, chapterID uuid.UUID, filter shared.Filter) ([]Shop, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Shop, error)
	CountActiveFree(ctx context.Context, chapterID uuid.UUID) (int64, error)
	CreateWithinQuota(ctx context.Context, shop *Shop) error
}

// AuditEntry records an administrative action. Writes are best-effort;
// a failed audit write never rolls back the primary operation.
type AuditEntry struct {
	shared.BaseEntity
	ActorID   uuid.UUID
	ChapterID uuid.UUID
	Action    string
	Detail    string
}

// AuditLogRepository persists audit entries
type AuditLogRepository interface {
	Append(ctx context.Context, entry *AuditEntry) error
}
