package membership

import (
	"context"

	"github.com/google/uuid"
	"github.com/ruralsoc/backend/internal/domain/membership"
	"github.com/ruralsoc/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ChapterService handles chapter administration
type ChapterService struct {
	chapterRepo membership.ChapterRepository
	logger      *zap.Logger
}

// NewChapterService creates a new ChapterService
func NewChapterService(chapterRepo membership.ChapterRepository, logger *zap.Logger) *ChapterService {
	return &ChapterService{
		chapterRepo: chapterRepo,
		logger:      logger,
	}
}

// CreateChapter creates a chapter with the given free-tier limit
func (s *ChapterService) CreateChapter(ctx context.Context, name, province string, freeTierLimit int) (*membership.Chapter, error) {
	chapter, err := membership.NewChapter(name, province, freeTierLimit)
	if err != nil {
		return nil, err
	}
	if err := s.chapterRepo.Save(ctx, chapter); err != nil {
		return nil, err
	}

	s.logger.Info("Chapter created",
		zap.String("chapter_id", chapter.ID.String()),
		zap.String("name", chapter.Name))
	return chapter, nil
}

// GetChapter fetches a chapter by id
func (s *ChapterService) GetChapter(ctx context.Context, id uuid.UUID) (*membership.Chapter, error) {
	return s.chapterRepo.FindByID(ctx, id)
}

// ListChapters lists all chapters
func (s *ChapterService) ListChapters(ctx context.Context, filter shared.Filter) ([]membership.Chapter, error) {
	return s.chapterRepo.FindAll(ctx, filter.Normalize(200))
}

// SetFreeTierLimit changes a chapter's free-tier shop quota. Lowering
// the limit below current occupancy is allowed; existing shops stay,
// new free-tier creations are rejected until occupancy drops.
func (s *ChapterService) SetFreeTierLimit(ctx context.Context, id uuid.UUID, limit int) (*membership.Chapter, error) {
	chapter, err := s.chapterRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := chapter.SetFreeTierLimit(limit); err != nil {
		return nil, err
	}
	if err := s.chapterRepo.Save(ctx, chapter); err != nil {
		return nil, err
	}

	s.logger.Info("Chapter quota updated",
		zap.String("chapter_id", id.String()),
		zap.Int("free_tier_limit", limit))
	return chapter, nil
}
