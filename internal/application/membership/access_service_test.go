package membership

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/ruralsoc/backend/internal/domain/membership"
	"github.com/ruralsoc/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func storedProfile(t *testing.T, repo *fakeProfileRepo, mutate func(*membership.MemberProfile)) *membership.MemberProfile {
	t.Helper()
	profile, err := membership.NewMemberProfile(uuid.New(), uuid.New(),
		"ana@example.com", "30111222", "Ana", "Pérez")
	require.NoError(t, err)
	if mutate != nil {
		mutate(profile)
	}
	repo.put(profile)
	return profile
}

func TestAccessValidate(t *testing.T) {
	ctx := context.Background()

	t.Run("active member is granted", func(t *testing.T) {
		repo := newFakeProfileRepo()
		profile := storedProfile(t, repo, func(p *membership.MemberProfile) {
			require.NoError(t, p.Approve())
		})

		decision, err := NewAccessService(repo, zap.NewNop()).Validate(ctx, profile.ID)
		require.NoError(t, err)
		assert.True(t, decision.Granted)
		assert.Equal(t, "Ana Pérez", decision.FullName)
		assert.Equal(t, "active", decision.Status)
	})

	t.Run("pending member is denied", func(t *testing.T) {
		repo := newFakeProfileRepo()
		profile := storedProfile(t, repo, nil)

		decision, err := NewAccessService(repo, zap.NewNop()).Validate(ctx, profile.ID)
		require.NoError(t, err)
		assert.False(t, decision.Granted)
	})

	t.Run("disabled member is denied", func(t *testing.T) {
		repo := newFakeProfileRepo()
		profile := storedProfile(t, repo, func(p *membership.MemberProfile) {
			require.NoError(t, p.Approve())
			require.NoError(t, p.Disable())
		})

		decision, err := NewAccessService(repo, zap.NewNop()).Validate(ctx, profile.ID)
		require.NoError(t, err)
		assert.False(t, decision.Granted)
	})

	t.Run("delinquent active member is still granted", func(t *testing.T) {
		repo := newFakeProfileRepo()
		profile := storedProfile(t, repo, func(p *membership.MemberProfile) {
			require.NoError(t, p.Approve())
			p.SetDelinquent(true)
		})

		decision, err := NewAccessService(repo, zap.NewNop()).Validate(ctx, profile.ID)
		require.NoError(t, err)
		assert.True(t, decision.Granted, "delinquency informs, it does not gate")
		assert.True(t, decision.Delinquent)
	})

	t.Run("unknown member surfaces not found", func(t *testing.T) {
		repo := newFakeProfileRepo()
		_, err := NewAccessService(repo, zap.NewNop()).Validate(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
