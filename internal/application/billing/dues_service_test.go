package billing

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/ruralsoc/backend/internal/domain/billing"
	"github.com/ruralsoc/backend/internal/domain/membership"
	"github.com/ruralsoc/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newDuesService(duesRepo *fakeDuesRepo, profileRepo *fakeProfileRepo, gateway *fakeGateway) *DuesService {
	return NewDuesService(duesRepo, profileRepo, gateway, DuesConfig{
		Amount:   decimal.NewFromInt(1000),
		Currency: "ARS",
		DueDay:   10,
		Sandbox:  true,
	}, zap.NewNop())
}

func newActiveProfile(t *testing.T, repo *fakeProfileRepo) *membership.MemberProfile {
	t.Helper()
	profile, err := membership.NewMemberProfile(uuid.New(), uuid.New(),
		"ana@example.com", "30111222", "Ana", "Pérez")
	require.NoError(t, err)
	require.NoError(t, profile.Approve())
	repo.put(profile)
	return profile
}

func TestCreateIntent(t *testing.T) {
	duesRepo := newFakeDuesRepo()
	profileRepo := newFakeProfileRepo()
	gateway := newFakeGateway()
	profile := newActiveProfile(t, profileRepo)

	svc := newDuesService(duesRepo, profileRepo, gateway)
	intent, err := svc.CreateIntent(context.Background(), profile.ID)
	require.NoError(t, err)

	now := time.Now()
	assert.Equal(t, int(now.Month()), intent.Month)
	assert.Equal(t, now.Year(), intent.Year)
	assert.Equal(t, "1000.00", intent.Amount)
	assert.Equal(t, "pref-1", intent.PreferenceID)
	assert.Equal(t, gateway.preference.SandboxInitPoint, intent.CheckoutURL,
		"sandbox mode returns the sandbox checkout URL")

	// The record's own id travels as external reference
	assert.Equal(t, intent.RecordID.String(), gateway.lastRequest.ExternalReference)
	assert.Equal(t, profile.Email, gateway.lastRequest.PayerEmail)

	record := mustFind(t, duesRepo, intent.RecordID)
	assert.False(t, record.Paid)
	assert.Equal(t, "pref-1", record.PreferenceID)
}

func TestCreateIntentReusesUnpaidRecord(t *testing.T) {
	duesRepo := newFakeDuesRepo()
	profileRepo := newFakeProfileRepo()
	gateway := newFakeGateway()
	profile := newActiveProfile(t, profileRepo)

	svc := newDuesService(duesRepo, profileRepo, gateway)
	ctx := context.Background()

	first, err := svc.CreateIntent(ctx, profile.ID)
	require.NoError(t, err)
	second, err := svc.CreateIntent(ctx, profile.ID)
	require.NoError(t, err)

	assert.Equal(t, first.RecordID, second.RecordID, "same period reuses the record")
	assert.Equal(t, 2, gateway.createCalls)
}

func TestCreateIntentRejectsPaidPeriod(t *testing.T) {
	duesRepo := newFakeDuesRepo()
	profileRepo := newFakeProfileRepo()
	gateway := newFakeGateway()
	profile := newActiveProfile(t, profileRepo)

	svc := newDuesService(duesRepo, profileRepo, gateway)
	ctx := context.Background()

	intent, err := svc.CreateIntent(ctx, profile.ID)
	require.NoError(t, err)
	applied, err := duesRepo.MarkPaid(ctx, intent.RecordID, "pay-1", time.Now())
	require.NoError(t, err)
	require.True(t, applied)

	_, err = svc.CreateIntent(ctx, profile.ID)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ALREADY_PAID", domainErr.Code)
}

func TestCreateIntentUnknownProfile(t *testing.T) {
	svc := newDuesService(newFakeDuesRepo(), newFakeProfileRepo(), newFakeGateway())
	_, err := svc.CreateIntent(context.Background(), uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestMarkDelinquents(t *testing.T) {
	duesRepo := newFakeDuesRepo()
	profileRepo := newFakeProfileRepo()
	profile := newActiveProfile(t, profileRepo)

	overdue, err := billing.NewDuesRecord(profile.ID, decimal.NewFromInt(1000), 1, 2026,
		time.Now().Add(-30*24*time.Hour))
	require.NoError(t, err)
	require.NoError(t, duesRepo.Save(context.Background(), overdue))

	svc := newDuesService(duesRepo, profileRepo, newFakeGateway())
	flagged, err := svc.MarkDelinquents(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, flagged)

	updated, err := profileRepo.FindByID(context.Background(), profile.ID)
	require.NoError(t, err)
	assert.True(t, updated.Delinquent)

	// Running the sweep again flags nobody new
	flagged, err = svc.MarkDelinquents(context.Background())
	require.NoError(t, err)
	assert.Zero(t, flagged)
}
