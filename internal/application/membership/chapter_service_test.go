package membership

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCreateChapter(t *testing.T) {
	repo := &fakeChapterRepo{}
	svc := NewChapterService(repo, zap.NewNop())
	ctx := context.Background()

	chapter, err := svc.CreateChapter(ctx, "Valle de Lerma", "Salta", 10)
	require.NoError(t, err)
	assert.Equal(t, 10, chapter.FreeTierLimit)

	stored, err := repo.FindByID(ctx, chapter.ID)
	require.NoError(t, err)
	assert.Equal(t, "Valle de Lerma", stored.Name)

	_, err = svc.CreateChapter(ctx, "", "Salta", 10)
	assert.Error(t, err, "a chapter needs a name")
}

func TestSetFreeTierLimit(t *testing.T) {
	repo := &fakeChapterRepo{}
	svc := NewChapterService(repo, zap.NewNop())
	ctx := context.Background()

	chapter, err := svc.CreateChapter(ctx, "Norte", "Jujuy", 10)
	require.NoError(t, err)

	// Lowering below occupancy is allowed; existing shops are untouched
	// and only new free-tier creations get rejected.
	updated, err := svc.SetFreeTierLimit(ctx, chapter.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, updated.FreeTierLimit)

	_, err = svc.SetFreeTierLimit(ctx, chapter.ID, -1)
	assert.Error(t, err)
}
