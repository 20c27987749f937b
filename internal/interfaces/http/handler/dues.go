package handler

import (
	"github.com/gin-gonic/gin"
	appbilling "github.com/ruralsoc/backend/internal/application/billing"
	"github.com/ruralsoc/backend/internal/interfaces/http/dto"
	"github.com/ruralsoc/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// DuesHandler handles membership dues endpoints
type DuesHandler struct {
	BaseHandler
	duesService *appbilling.DuesService
}

// NewDuesHandler creates a new dues handler
func NewDuesHandler(duesService *appbilling.DuesService, logger *zap.Logger) *DuesHandler {
	return &DuesHandler{
		BaseHandler: NewBaseHandler(logger),
		duesService: duesService,
	}
}

// CreateIntent handles POST /api/v1/dues/intent. It creates or reuses
// the current period's dues record and returns the checkout handle.
func (h *DuesHandler) CreateIntent(c *gin.Context) {
	userID, ok := middleware.GetJWTUserID(c)
	if !ok {
		h.Error(c, dto.ErrCodeUnauthorized, "Authentication required")
		return
	}

	intent, err := h.duesService.CreateIntent(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, intent)
}

// ListMine handles GET /api/v1/dues
func (h *DuesHandler) ListMine(c *gin.Context) {
	userID, ok := middleware.GetJWTUserID(c)
	if !ok {
		h.Error(c, dto.ErrCodeUnauthorized, "Authentication required")
		return
	}

	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}

	filter := filterFromRequest(req).Normalize(100)
	records, err := h.duesService.ListDues(c.Request.Context(), userID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, dto.NewDuesRecordListResponse(records),
		filter.Limit, filter.Offset, len(records))
}

// RunDelinquencySweep handles POST /api/v1/dues/delinquency-sweep.
// Admin-only; flags members whose dues are overdue.
func (h *DuesHandler) RunDelinquencySweep(c *gin.Context) {
	flagged, err := h.duesService.MarkDelinquents(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"flagged": flagged})
}
