package identity

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruralsoc/backend/internal/domain/membership"
	"github.com/ruralsoc/backend/internal/infrastructure/config"
)

func newClient(t *testing.T, handler http.HandlerFunc) *GoTrueClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewGoTrueClient(config.IdentityConfig{
		BaseURL:    server.URL,
		ServiceKey: "service-key",
		AnonKey:    "anon-key",
	})
}

func TestSignUp(t *testing.T) {
	userID := uuid.New()
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/admin/users", r.URL.Path)
		assert.Equal(t, "service-key", r.Header.Get("apikey"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "ana@example.com", body["email"])
		assert.Equal(t, true, body["email_confirm"])

		json.NewEncoder(w).Encode(map[string]string{"id": userID.String()})
	})

	id, err := client.SignUp(context.Background(), "ana@example.com", "secret1234")
	require.NoError(t, err)
	assert.Equal(t, userID, id)
}

func TestSignUpAlreadyRegistered(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]string{"msg": "A user with this email address has already been registered"})
	})

	_, err := client.SignUp(context.Background(), "ana@example.com", "secret1234")
	assert.ErrorIs(t, err, membership.ErrAlreadyRegistered)
}

func TestVerifyPassword(t *testing.T) {
	userID := uuid.New()
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/token", r.URL.Path)
		assert.Equal(t, "password", r.URL.Query().Get("grant_type"))
		assert.Equal(t, "anon-key", r.Header.Get("apikey"))

		json.NewEncoder(w).Encode(map[string]any{
			"user": map[string]string{"id": userID.String()},
		})
	})

	id, err := client.VerifyPassword(context.Background(), "ana@example.com", "secret1234")
	require.NoError(t, err)
	assert.Equal(t, userID, id)
}

func TestVerifyPasswordRejected(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error_description": "Invalid login credentials"})
	})

	_, err := client.VerifyPassword(context.Background(), "ana@example.com", "wrong")
	assert.ErrorIs(t, err, membership.ErrInvalidCredentials)
}

func TestVerifyPasswordEmailNotConfirmed(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"msg": "Email not confirmed"})
	})

	_, err := client.VerifyPassword(context.Background(), "ana@example.com", "secret1234")
	assert.ErrorIs(t, err, membership.ErrEmailNotConfirmed)
}

func TestDeleteUser(t *testing.T) {
	userID := uuid.New()
	var called bool
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/admin/users/"+userID.String(), r.URL.Path)
		w.WriteHeader(http.StatusOK)
	})

	require.NoError(t, client.DeleteUser(context.Background(), userID))
	assert.True(t, called)
}
