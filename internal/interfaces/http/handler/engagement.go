package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appengagement "github.com/ruralsoc/backend/internal/application/engagement"
	"github.com/ruralsoc/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// EngagementHandler handles promotion and event endpoints
type EngagementHandler struct {
	BaseHandler
	engagementService *appengagement.EngagementService
}

// NewEngagementHandler creates a new engagement handler
func NewEngagementHandler(engagementService *appengagement.EngagementService, logger *zap.Logger) *EngagementHandler {
	return &EngagementHandler{
		BaseHandler:       NewBaseHandler(logger),
		engagementService: engagementService,
	}
}

// CreatePromotion handles POST /api/v1/promotions
func (h *EngagementHandler) CreatePromotion(c *gin.Context) {
	var req dto.CreatePromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	promotion, err := h.engagementService.CreatePromotion(c.Request.Context(), appengagement.CreatePromotionInput{
		ShopID:      uuid.MustParse(req.ShopID),
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		ValidFrom:   req.ValidFrom,
		ValidUntil:  req.ValidUntil,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, dto.NewPromotionResponse(promotion))
}

// ListPromotions handles GET /api/v1/promotions
func (h *EngagementHandler) ListPromotions(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}

	filter := filterFromRequest(req).Normalize(100)
	listings, err := h.engagementService.ListActivePromotions(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, dto.NewPromotionListingResponse(listings),
		filter.Limit, filter.Offset, len(listings))
}

// ListShopPromotions handles GET /api/v1/shops/:id/promotions
func (h *EngagementHandler) ListShopPromotions(c *gin.Context) {
	var idReq dto.IDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		h.BindError(c, err)
		return
	}
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}

	filter := filterFromRequest(req).Normalize(100)
	promotions, err := h.engagementService.ListShopPromotions(c.Request.Context(),
		uuid.MustParse(idReq.ID), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, dto.NewPromotionListResponse(promotions),
		filter.Limit, filter.Offset, len(promotions))
}

// UpdatePromotion handles PUT /api/v1/promotions/:id
func (h *EngagementHandler) UpdatePromotion(c *gin.Context) {
	var idReq dto.IDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		h.BindError(c, err)
		return
	}
	var req dto.UpdatePromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	promotion, err := h.engagementService.UpdatePromotion(c.Request.Context(),
		uuid.MustParse(idReq.ID), appengagement.UpdatePromotionInput{
			Title:       req.Title,
			Description: req.Description,
			ImageURL:    req.ImageURL,
			ValidFrom:   req.ValidFrom,
			ValidUntil:  req.ValidUntil,
		})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.NewPromotionResponse(promotion))
}

// DeactivatePromotion handles POST /api/v1/promotions/:id/deactivate
func (h *EngagementHandler) DeactivatePromotion(c *gin.Context) {
	var idReq dto.IDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		h.BindError(c, err)
		return
	}

	promotion, err := h.engagementService.DeactivatePromotion(c.Request.Context(), uuid.MustParse(idReq.ID))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.NewPromotionResponse(promotion))
}

// DeletePromotion handles DELETE /api/v1/promotions/:id
func (h *EngagementHandler) DeletePromotion(c *gin.Context) {
	var idReq dto.IDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		h.BindError(c, err)
		return
	}

	if err := h.engagementService.DeletePromotion(c.Request.Context(), uuid.MustParse(idReq.ID)); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// CreateEvent handles POST /api/v1/events
func (h *EngagementHandler) CreateEvent(c *gin.Context) {
	var req dto.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	event, err := h.engagementService.CreateEvent(c.Request.Context(), appengagement.CreateEventInput{
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Date:        req.Date,
		Venue:       req.Venue,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, dto.NewEventResponse(event))
}

// UpdateEvent handles PUT /api/v1/events/:id
func (h *EngagementHandler) UpdateEvent(c *gin.Context) {
	var idReq dto.IDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		h.BindError(c, err)
		return
	}
	var req dto.UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	event, err := h.engagementService.UpdateEvent(c.Request.Context(),
		uuid.MustParse(idReq.ID), appengagement.UpdateEventInput{
			Title:       req.Title,
			Description: req.Description,
			ImageURL:    req.ImageURL,
			Date:        req.Date,
			Venue:       req.Venue,
		})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.NewEventResponse(event))
}

// ListEvents handles GET /api/v1/events
func (h *EngagementHandler) ListEvents(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}

	filter := filterFromRequest(req).Normalize(100)
	events, err := h.engagementService.ListActiveEvents(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, dto.NewEventListResponse(events),
		filter.Limit, filter.Offset, len(events))
}

// DeleteEvent handles DELETE /api/v1/events/:id
func (h *EngagementHandler) DeleteEvent(c *gin.Context) {
	var idReq dto.IDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		h.BindError(c, err)
		return
	}

	if err := h.engagementService.DeleteEvent(c.Request.Context(), uuid.MustParse(idReq.ID)); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
