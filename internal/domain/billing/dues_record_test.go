package billing

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDuesRecord(t *testing.T) {
	profileID := uuid.New()
	amount := decimal.NewFromInt(1000)
	dueDate := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	t.Run("creates unpaid record", func(t *testing.T) {
		record, err := NewDuesRecord(profileID, amount, 3, 2026, dueDate)
		require.NoError(t, err)
		assert.False(t, record.Paid)
		assert.Nil(t, record.PaidAt)
		assert.Equal(t, record.ID.String(), record.ExternalReference())
	})

	t.Run("rejects nil profile", func(t *testing.T) {
		_, err := NewDuesRecord(uuid.Nil, amount, 3, 2026, dueDate)
		require.Error(t, err)
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		_, err := NewDuesRecord(profileID, decimal.Zero, 3, 2026, dueDate)
		require.Error(t, err)
	})

	t.Run("rejects out-of-range month", func(t *testing.T) {
		_, err := NewDuesRecord(profileID, amount, 13, 2026, dueDate)
		require.Error(t, err)
	})
}

func TestDuesRecordMarkPaid(t *testing.T) {
	record, err := NewDuesRecord(uuid.New(), decimal.NewFromInt(1000), 3, 2026, time.Now())
	require.NoError(t, err)

	first := time.Date(2026, 3, 5, 12, 0, 0, 0, time.UTC)
	assert.True(t, record.MarkPaid("pay-1", first))
	assert.True(t, record.Paid)
	require.NotNil(t, record.PaidAt)
	assert.Equal(t, first, *record.PaidAt)
	assert.Equal(t, "pay-1", record.PaymentID)

	// Second settlement attempt must not move PaidAt or PaymentID
	assert.False(t, record.MarkPaid("pay-2", first.Add(time.Hour)))
	assert.Equal(t, first, *record.PaidAt)
	assert.Equal(t, "pay-1", record.PaymentID)
}
