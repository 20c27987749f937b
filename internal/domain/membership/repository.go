package membership

import (
	"context"

	"github.com/google/uuid"
	"github.com/ruralsoc/backend/internal/domain/shared"
)

// ChapterRepository provides access to chapter state
type ChapterRepository interface {
	Save(ctx context.Context, chapter *Chapter) error
	FindByID(ctx context.Context, id uuid.UUID) (*Chapter, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Chapter, error)
	// FindFirst returns any chapter, used as the configured-default fallback
	// when the deployment has a single chapter.
	FindFirst(ctx context.Context) (*Chapter, error)
}

// ProfileRepository provides access to member profile state
type ProfileRepository interface {
	Save(ctx context.Context, profile *MemberProfile) error
	Update(ctx context.Context, profile *MemberProfile) error
	FindByID(ctx context.Context, id uuid.UUID) (*MemberProfile, error)
	FindByEmail(ctx context.Context, email string) (*MemberProfile, error)
	FindByDocumentID(ctx context.Context, documentID string) (*MemberProfile, error)
	FindByChapter(ctx context.Context, chapterID uuid.UUID, filter shared.Filter) ([]MemberProfile, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]MemberProfile, error)
}
