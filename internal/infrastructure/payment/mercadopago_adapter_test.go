package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruralsoc/backend/internal/domain/billing"
	"github.com/ruralsoc/backend/internal/domain/shared"
)

func newAdapter(t *testing.T, handler http.HandlerFunc) *MercadoPagoAdapter {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	adapter, err := NewMercadoPagoAdapter(&MercadoPagoConfig{
		BaseURL:     server.URL,
		AccessToken: "TEST-token",
	})
	require.NoError(t, err)
	return adapter
}

func TestNewMercadoPagoAdapterValidation(t *testing.T) {
	_, err := NewMercadoPagoAdapter(&MercadoPagoConfig{AccessToken: "x"})
	assert.Error(t, err, "base URL is required")

	_, err = NewMercadoPagoAdapter(&MercadoPagoConfig{BaseURL: "https://api.example"})
	assert.Error(t, err, "access token is required")
}

func TestCreatePreference(t *testing.T) {
	var got map[string]any
	adapter := newAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/checkout/preferences", r.URL.Path)
		assert.Equal(t, "Bearer TEST-token", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		json.NewEncoder(w).Encode(map[string]any{
			"id":                 "pref-123",
			"init_point":         "https://mp.example/checkout",
			"sandbox_init_point": "https://sandbox.mp.example/checkout",
		})
	})

	pref, err := adapter.CreatePreference(context.Background(), billing.PreferenceRequest{
		Items: []billing.PreferenceItem{{
			Title: "Cuota societaria 3/2026", Quantity: 1, UnitPrice: 1000, Currency: "ARS",
		}},
		PayerEmail:        "ana@example.com",
		ExternalReference: "rec-42",
		SuccessURL:        "https://app.example/dues/ok",
	})
	require.NoError(t, err)

	assert.Equal(t, "pref-123", pref.ID)
	assert.Equal(t, "https://mp.example/checkout", pref.InitPoint)
	assert.Equal(t, "https://sandbox.mp.example/checkout", pref.SandboxInitPoint)

	assert.Equal(t, "rec-42", got["external_reference"])
	assert.Equal(t, "approved", got["auto_return"])
}

func TestGetPayment(t *testing.T) {
	adapter := newAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/payments/456", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"id":                 456,
			"status":             "approved",
			"external_reference": "rec-42",
		})
	})

	payment, err := adapter.GetPayment(context.Background(), "456")
	require.NoError(t, err)
	assert.Equal(t, "456", payment.ID)
	assert.Equal(t, "approved", payment.Status)
	assert.Equal(t, "rec-42", payment.ExternalReference)
}

func TestGetPaymentNotFound(t *testing.T) {
	adapter := newAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := adapter.GetPayment(context.Background(), "999")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGetPaymentServerError(t *testing.T) {
	adapter := newAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]any{"message": "internal error"})
	})

	_, err := adapter.GetPayment(context.Background(), "456")
	assert.ErrorIs(t, err, shared.ErrUpstreamUnavailable)
}
