package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appmembership "github.com/ruralsoc/backend/internal/application/membership"
	"github.com/ruralsoc/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// AccessHandler answers QR validation scans at shop counters
type AccessHandler struct {
	BaseHandler
	accessService *appmembership.AccessService
}

// NewAccessHandler creates a new access handler
func NewAccessHandler(accessService *appmembership.AccessService, logger *zap.Logger) *AccessHandler {
	return &AccessHandler{
		BaseHandler:   NewBaseHandler(logger),
		accessService: accessService,
	}
}

// Validate handles GET /api/v1/access/validate/:id. Unknown member ids
// answer 404; a known member always gets a verdict, granted or not.
func (h *AccessHandler) Validate(c *gin.Context) {
	var idReq dto.IDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		h.BindError(c, err)
		return
	}

	decision, err := h.accessService.Validate(c.Request.Context(), uuid.MustParse(idReq.ID))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, decision)
}
