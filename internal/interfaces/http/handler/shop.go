package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appcommerce "github.com/ruralsoc/backend/internal/application/commerce"
	"github.com/ruralsoc/backend/internal/domain/commerce"
	"github.com/ruralsoc/backend/internal/interfaces/http/dto"
	"github.com/ruralsoc/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// ShopHandler handles shop registration and administration endpoints
type ShopHandler struct {
	BaseHandler
	shopService *appcommerce.ShopService
}

// NewShopHandler creates a new shop handler
func NewShopHandler(shopService *appcommerce.ShopService, logger *zap.Logger) *ShopHandler {
	return &ShopHandler{
		BaseHandler: NewBaseHandler(logger),
		shopService: shopService,
	}
}

// Create handles POST /api/v1/shops. A full free-tier quota surfaces as
// a 409 carrying the chapter's live occupancy counts.
func (h *ShopHandler) Create(c *gin.Context) {
	var req dto.CreateShopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	chapterID := uuid.Nil
	if req.ChapterID != "" {
		chapterID, _ = uuid.Parse(req.ChapterID)
	}
	actorID, _ := middleware.GetJWTUserID(c)

	shop, err := h.shopService.CreateShop(c.Request.Context(), appcommerce.CreateShopInput{
		ChapterID:    chapterID,
		Name:         req.Name,
		Sector:       req.Sector,
		Address:      req.Address,
		Phone:        req.Phone,
		Email:        req.Email,
		BaseDiscount: req.BaseDiscount,
		PlanTier:     commerce.PlanTier(req.PlanTier),
		ActorID:      actorID,
		ActorChapter: middleware.GetJWTChapterID(c),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, dto.NewShopResponse(shop))
}

// Get handles GET /api/v1/shops/:id
func (h *ShopHandler) Get(c *gin.Context) {
	var idReq dto.IDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		h.BindError(c, err)
		return
	}

	shop, err := h.shopService.GetShop(c.Request.Context(), uuid.MustParse(idReq.ID))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.NewShopResponse(shop))
}

// List handles GET /api/v1/shops
func (h *ShopHandler) List(c *gin.Context) {
	var req dto.ShopListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}

	chapterID := uuid.Nil
	if req.ChapterID != "" {
		chapterID, _ = uuid.Parse(req.ChapterID)
	}

	filter := filterFromRequest(req.ListRequest).Normalize(200)
	shops, err := h.shopService.ListShops(c.Request.Context(), chapterID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, dto.NewShopListResponse(shops),
		filter.Limit, filter.Offset, len(shops))
}

// Update handles PATCH /api/v1/shops/:id
func (h *ShopHandler) Update(c *gin.Context) {
	var idReq dto.IDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		h.BindError(c, err)
		return
	}
	var req dto.UpdateShopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	actorID, _ := middleware.GetJWTUserID(c)
	shop, err := h.shopService.UpdateShop(c.Request.Context(), uuid.MustParse(idReq.ID), appcommerce.UpdateShopInput{
		Name:         req.Name,
		Sector:       req.Sector,
		Address:      req.Address,
		Phone:        req.Phone,
		Email:        req.Email,
		BaseDiscount: req.BaseDiscount,
		ActorID:      actorID,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.NewShopResponse(shop))
}

// Disable handles POST /api/v1/shops/:id/disable
func (h *ShopHandler) Disable(c *gin.Context) {
	var idReq dto.IDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		h.BindError(c, err)
		return
	}

	actorID, _ := middleware.GetJWTUserID(c)
	shop, err := h.shopService.DisableShop(c.Request.Context(), uuid.MustParse(idReq.ID), actorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.NewShopResponse(shop))
}

// Delete handles DELETE /api/v1/shops/:id
func (h *ShopHandler) Delete(c *gin.Context) {
	var idReq dto.IDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		h.BindError(c, err)
		return
	}

	actorID, _ := middleware.GetJWTUserID(c)
	if err := h.shopService.DeleteShop(c.Request.Context(), uuid.MustParse(idReq.ID), actorID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Upgrade handles POST /api/v1/shops/:id/upgrade
func (h *ShopHandler) Upgrade(c *gin.Context) {
	var idReq dto.IDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		h.BindError(c, err)
		return
	}

	actorID, _ := middleware.GetJWTUserID(c)
	shop, err := h.shopService.UpgradeShop(c.Request.Context(), uuid.MustParse(idReq.ID), actorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.NewShopResponse(shop))
}
