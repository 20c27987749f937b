package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appmembership "github.com/ruralsoc/backend/internal/application/membership"
	"github.com/ruralsoc/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// AuthHandler handles registration and login endpoints
type AuthHandler struct {
	BaseHandler
	authService *appmembership.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *appmembership.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: NewBaseHandler(logger),
		authService: authService,
	}
}

// Register handles POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	chapterID := uuid.Nil
	if req.ChapterID != "" {
		chapterID, _ = uuid.Parse(req.ChapterID)
	}

	profile, err := h.authService.Register(c.Request.Context(), appmembership.RegisterInput{
		Email:      req.Email,
		Password:   req.Password,
		DocumentID: req.DocumentID,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Phone:      req.Phone,
		City:       req.City,
		Province:   req.Province,
		ChapterID:  chapterID,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, dto.NewProfileResponse(profile))
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req.Identifier, req.Password)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dto.NewAuthResponse(result.Token, result.Profile))
}
