package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ruralsoc/backend/internal/domain/commerce"
	"github.com/ruralsoc/backend/internal/domain/membership"
	"github.com/ruralsoc/backend/internal/domain/shared"
	"github.com/ruralsoc/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// BaseHandler provides common response helpers for all handlers
type BaseHandler struct {
	logger *zap.Logger
}

// NewBaseHandler creates a new base handler
func NewBaseHandler(logger *zap.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

// Success sends a 200 response with data
func (h *BaseHandler) Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessWithMeta sends a 200 response with data and listing metadata
func (h *BaseHandler) SuccessWithMeta(c *gin.Context, data interface{}, limit, offset, count int) {
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(data, limit, offset, count))
}

// Created sends a 201 response with data
func (h *BaseHandler) Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent sends a 204 response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error sends an error response with the given code and message
func (h *BaseHandler) Error(c *gin.Context, code, message string) {
	requestID := c.GetString("request_id")
	status := dto.GetHTTPStatus(code)
	c.JSON(status, dto.NewErrorResponseWithRequestID(code, message, requestID))
}

// BindError sends a 400 response for a request binding failure
func (h *BaseHandler) BindError(c *gin.Context, err error) {
	h.Error(c, dto.ErrCodeValidation, dto.FormatValidationError(err))
}

// HandleError maps a service error to an HTTP response
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	requestID := c.GetString("request_id")

	var quotaErr *commerce.QuotaExceededError
	if errors.As(err, &quotaErr) {
		resp := dto.NewErrorResponseWithRequestID(dto.ErrCodeQuotaExceeded,
			"Free-tier shop quota exceeded for chapter", requestID)
		resp.Data = dto.NewQuotaExceededDetail(quotaErr)
		c.JSON(http.StatusConflict, resp)
		return
	}

	switch {
	case errors.Is(err, membership.ErrInvalidCredentials):
		h.Error(c, dto.ErrCodeUnauthorized, "Invalid credentials")
		return
	case errors.Is(err, membership.ErrEmailNotConfirmed):
		h.Error(c, dto.ErrCodeForbidden, "Email address has not been confirmed")
		return
	case errors.Is(err, membership.ErrSignupsDisabled):
		h.Error(c, dto.ErrCodeForbidden, "Registrations are currently disabled")
		return
	case errors.Is(err, membership.ErrAlreadyRegistered):
		h.Error(c, dto.ErrCodeAlreadyExists, "Email address is already registered")
		return
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		code := dto.NormalizeErrorCode(domainErr.Code)
		status := dto.GetHTTPStatus(code)
		c.JSON(status, dto.NewErrorResponseWithRequestID(code, domainErr.Message, requestID))
		return
	}

	h.logger.Error("Unhandled error",
		zap.String("request_id", requestID),
		zap.String("path", c.Request.URL.Path),
		zap.Error(err))
	c.JSON(http.StatusInternalServerError,
		dto.NewErrorResponseWithRequestID(dto.ErrCodeInternal, "An internal error occurred", requestID))
}

// filterFromRequest converts listing query parameters to a shared filter
func filterFromRequest(req dto.ListRequest) shared.Filter {
	return shared.Filter{
		Limit:    req.Limit,
		Offset:   req.Offset,
		OrderBy:  req.OrderBy,
		OrderDir: req.OrderDir,
	}
}
