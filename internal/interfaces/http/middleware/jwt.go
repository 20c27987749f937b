package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ruralsoc/backend/internal/domain/membership"
	"github.com/ruralsoc/backend/internal/domain/shared"
	"github.com/ruralsoc/backend/internal/infrastructure/auth"
	"github.com/ruralsoc/backend/internal/interfaces/http/dto"
)

// Context keys for authenticated request data
const (
	ContextKeyClaims    = "jwt_claims"
	ContextKeyUserID    = "jwt_user_id"
	ContextKeyRole      = "jwt_role"
	ContextKeyChapterID = "jwt_chapter_id"
)

// JWTMiddlewareConfig holds configuration for the JWT middleware
type JWTMiddlewareConfig struct {
	JWTService       *auth.JWTService
	SkipPaths        []string
	SkipPathPrefixes []string
}

// JWTAuth returns a middleware that validates bearer tokens and stores
// the claims in the request context
func JWTAuth(cfg JWTMiddlewareConfig) gin.HandlerFunc {
	skip := make(map[string]struct{}, len(cfg.SkipPaths))
	for _, p := range cfg.SkipPaths {
		skip[p] = struct{}{}
	}

	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if _, ok := skip[path]; ok {
			c.Next()
			return
		}
		for _, prefix := range cfg.SkipPathPrefixes {
			if strings.HasPrefix(path, prefix) {
				c.Next()
				return
			}
		}

		token, err := extractBearerToken(c)
		if err != nil {
			abortUnauthorized(c, dto.ErrCodeUnauthorized, err.Error())
			return
		}

		claims, err := cfg.JWTService.ValidateToken(token)
		if err != nil {
			code := dto.ErrCodeTokenInvalid
			if errors.Is(err, auth.ErrExpiredToken) {
				code = dto.ErrCodeTokenExpired
			}
			abortUnauthorized(c, code, err.Error())
			return
		}

		c.Set(ContextKeyClaims, claims)
		c.Set(ContextKeyUserID, claims.UserID)
		c.Set(ContextKeyRole, claims.Role)
		c.Set(ContextKeyChapterID, claims.ChapterID)
		c.Next()
	}
}

func extractBearerToken(c *gin.Context) (string, error) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", errors.New("missing authorization header")
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errors.New("invalid authorization header format")
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", errors.New("empty bearer token")
	}
	return token, nil
}

func abortUnauthorized(c *gin.Context, code, message string) {
	requestID := c.GetString("request_id")
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		dto.NewErrorResponseWithRequestID(code, message, requestID))
}

// GetJWTClaims retrieves the validated claims from the context
func GetJWTClaims(c *gin.Context) (*auth.Claims, bool) {
	v, ok := c.Get(ContextKeyClaims)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*auth.Claims)
	return claims, ok
}

// GetJWTUserID retrieves the authenticated user's ID from the context
func GetJWTUserID(c *gin.Context) (uuid.UUID, bool) {
	raw := c.GetString(ContextKeyUserID)
	if raw == "" {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// GetJWTRole retrieves the authenticated user's role from the context
func GetJWTRole(c *gin.Context) membership.Role {
	return membership.Role(c.GetString(ContextKeyRole))
}

// GetJWTChapterID retrieves the authenticated user's chapter from the
// context. Returns uuid.Nil when absent.
func GetJWTChapterID(c *gin.Context) uuid.UUID {
	raw := c.GetString(ContextKeyChapterID)
	if raw == "" {
		return uuid.Nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil
	}
	return id
}

// RequireAdmin returns a middleware that only lets admin roles through
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !GetJWTRole(c).IsAdmin() {
			requestID := c.GetString("request_id")
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponseWithRequestID(dto.ErrCodeForbidden,
					"Administrator access required", requestID))
			return
		}
		c.Next()
	}
}

// ProfileLoader loads a member profile by id
type ProfileLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*membership.MemberProfile, error)
}

// RequireActiveMember returns a middleware that loads the caller's
// profile and rejects members that are not active or are behind on
// dues. Used for benefit surfaces (promotions, events); dues payment
// routes stay open so delinquent members can settle up.
func RequireActiveMember(profiles ProfileLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetString("request_id")

		userID, ok := GetJWTUserID(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponseWithRequestID(dto.ErrCodeUnauthorized,
					"Authentication required", requestID))
			return
		}

		profile, err := profiles.FindByID(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized,
					dto.NewErrorResponseWithRequestID(dto.ErrCodeUnauthorized,
						"Member profile not found", requestID))
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError,
				dto.NewErrorResponseWithRequestID(dto.ErrCodeInternal,
					"Failed to load member profile", requestID))
			return
		}

		if !profile.IsActive() {
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponseWithRequestID(dto.ErrCodeForbidden,
					"Membership is not active", requestID))
			return
		}
		if profile.Delinquent {
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponseWithRequestID(dto.ErrCodeForbidden,
					"Membership dues are overdue", requestID))
			return
		}

		c.Set("member_profile", profile)
		c.Next()
	}
}
