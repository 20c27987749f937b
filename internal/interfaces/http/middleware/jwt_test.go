package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruralsoc/backend/internal/domain/membership"
	"github.com/ruralsoc/backend/internal/domain/shared"
	"github.com/ruralsoc/backend/internal/infrastructure/auth"
	"github.com/ruralsoc/backend/internal/infrastructure/config"
)

func newJWTService(expiration time.Duration) *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                "test-secret-test-secret-test-secret",
		AccessTokenExpiration: expiration,
		Issuer:                "test",
	})
}

func newAuthedRouter(svc *auth.JWTService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(JWTAuth(JWTMiddlewareConfig{
		JWTService: svc,
		SkipPaths:  []string{"/public"},
	}))
	r.GET("/public", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/private", func(c *gin.Context) {
		id, _ := GetJWTUserID(c)
		c.JSON(http.StatusOK, gin.H{"user_id": id.String()})
	})
	return r
}

func get(router *gin.Engine, path, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func testProfile(t *testing.T) *membership.MemberProfile {
	t.Helper()
	profile, err := membership.NewMemberProfile(uuid.New(), uuid.New(),
		"ana@example.com", "30111222", "Ana", "Pérez")
	require.NoError(t, err)
	return profile
}

func TestJWTAuth(t *testing.T) {
	svc := newJWTService(time.Hour)
	router := newAuthedRouter(svc)

	t.Run("skip path passes without token", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, get(router, "/public", "").Code)
	})

	t.Run("missing header", func(t *testing.T) {
		w := get(router, "/private", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_UNAUTHORIZED")
	})

	t.Run("malformed header", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, get(router, "/private", "Basic abc").Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		w := get(router, "/private", "Bearer not-a-token")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_TOKEN_INVALID")
	})

	t.Run("valid token reaches the handler with claims", func(t *testing.T) {
		profile := testProfile(t)
		token, err := svc.GenerateToken(profile)
		require.NoError(t, err)

		w := get(router, "/private", "Bearer "+token.AccessToken)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), profile.ID.String())
	})

	t.Run("expired token", func(t *testing.T) {
		expired := newJWTService(-time.Minute)
		token, err := expired.GenerateToken(testProfile(t))
		require.NoError(t, err)

		w := get(router, "/private", "Bearer "+token.AccessToken)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_TOKEN_EXPIRED")
	})
}

func TestRequireAdmin(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(role string) *gin.Engine {
		r := gin.New()
		r.Use(func(c *gin.Context) { c.Set(ContextKeyRole, role) })
		r.Use(RequireAdmin())
		r.GET("/admin", func(c *gin.Context) { c.Status(http.StatusOK) })
		return r
	}

	assert.Equal(t, http.StatusForbidden, get(newRouter("member"), "/admin", "").Code)
	assert.Equal(t, http.StatusOK, get(newRouter("chapter_admin"), "/admin", "").Code)
	assert.Equal(t, http.StatusOK, get(newRouter("superadmin"), "/admin", "").Code)
}

type profileLoaderFunc func(ctx context.Context, id uuid.UUID) (*membership.MemberProfile, error)

func (f profileLoaderFunc) FindByID(ctx context.Context, id uuid.UUID) (*membership.MemberProfile, error) {
	return f(ctx, id)
}

func TestRequireActiveMember(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(profile *membership.MemberProfile) *gin.Engine {
		loader := profileLoaderFunc(func(_ context.Context, id uuid.UUID) (*membership.MemberProfile, error) {
			if profile != nil && profile.ID == id {
				return profile, nil
			}
			return nil, shared.ErrNotFound
		})
		r := gin.New()
		r.Use(func(c *gin.Context) {
			if profile != nil {
				c.Set(ContextKeyUserID, profile.ID.String())
			}
		})
		r.Use(RequireActiveMember(loader))
		r.GET("/benefits", func(c *gin.Context) { c.Status(http.StatusOK) })
		return r
	}

	t.Run("active member passes", func(t *testing.T) {
		profile := testProfile(t)
		require.NoError(t, profile.Approve())
		assert.Equal(t, http.StatusOK, get(newRouter(profile), "/benefits", "").Code)
	})

	t.Run("pending member rejected", func(t *testing.T) {
		assert.Equal(t, http.StatusForbidden, get(newRouter(testProfile(t)), "/benefits", "").Code)
	})

	t.Run("delinquent member rejected from benefits", func(t *testing.T) {
		profile := testProfile(t)
		require.NoError(t, profile.Approve())
		profile.SetDelinquent(true)

		w := get(newRouter(profile), "/benefits", "")
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "overdue")
	})

	t.Run("no identity rejected", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, get(newRouter(nil), "/benefits", "").Code)
	})
}
