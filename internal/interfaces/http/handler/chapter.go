package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appcommerce "github.com/ruralsoc/backend/internal/application/commerce"
	appmembership "github.com/ruralsoc/backend/internal/application/membership"
	"github.com/ruralsoc/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

const defaultFreeTierLimit = 10

// ChapterHandler handles chapter administration endpoints
type ChapterHandler struct {
	BaseHandler
	chapterService *appmembership.ChapterService
	shopService    *appcommerce.ShopService
}

// NewChapterHandler creates a new chapter handler
func NewChapterHandler(
	chapterService *appmembership.ChapterService,
	shopService *appcommerce.ShopService,
	logger *zap.Logger,
) *ChapterHandler {
	return &ChapterHandler{
		BaseHandler:    NewBaseHandler(logger),
		chapterService: chapterService,
		shopService:    shopService,
	}
}

// Create handles POST /api/v1/chapters
func (h *ChapterHandler) Create(c *gin.Context) {
	var req dto.CreateChapterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	limit := defaultFreeTierLimit
	if req.FreeTierLimit != nil {
		limit = *req.FreeTierLimit
	}

	chapter, err := h.chapterService.CreateChapter(c.Request.Context(), req.Name, req.Province, limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, dto.NewChapterResponse(chapter))
}

// Get handles GET /api/v1/chapters/:id
func (h *ChapterHandler) Get(c *gin.Context) {
	var idReq dto.IDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		h.BindError(c, err)
		return
	}

	chapter, err := h.chapterService.GetChapter(c.Request.Context(), uuid.MustParse(idReq.ID))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.NewChapterResponse(chapter))
}

// List handles GET /api/v1/chapters
func (h *ChapterHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}

	filter := filterFromRequest(req).Normalize(200)
	chapters, err := h.chapterService.ListChapters(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, dto.NewChapterListResponse(chapters),
		filter.Limit, filter.Offset, len(chapters))
}

// SetQuota handles PUT /api/v1/chapters/:id/quota
func (h *ChapterHandler) SetQuota(c *gin.Context) {
	var idReq dto.IDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		h.BindError(c, err)
		return
	}
	var req dto.SetQuotaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	chapter, err := h.chapterService.SetFreeTierLimit(c.Request.Context(),
		uuid.MustParse(idReq.ID), req.FreeTierLimit)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.NewChapterResponse(chapter))
}

// GetQuota handles GET /api/v1/chapters/:id/quota
func (h *ChapterHandler) GetQuota(c *gin.Context) {
	var idReq dto.IDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		h.BindError(c, err)
		return
	}

	stats, err := h.shopService.GetQuotaStats(c.Request.Context(), uuid.MustParse(idReq.ID))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stats)
}
