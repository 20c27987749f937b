package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appmembership "github.com/ruralsoc/backend/internal/application/membership"
	"github.com/ruralsoc/backend/internal/domain/membership"
	"github.com/ruralsoc/backend/internal/interfaces/http/dto"
	"github.com/ruralsoc/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// MemberHandler handles member profile endpoints
type MemberHandler struct {
	BaseHandler
	memberService *appmembership.MemberService
}

// NewMemberHandler creates a new member handler
func NewMemberHandler(memberService *appmembership.MemberService, logger *zap.Logger) *MemberHandler {
	return &MemberHandler{
		BaseHandler:   NewBaseHandler(logger),
		memberService: memberService,
	}
}

// GetMe handles GET /api/v1/members/me
func (h *MemberHandler) GetMe(c *gin.Context) {
	userID, ok := middleware.GetJWTUserID(c)
	if !ok {
		h.Error(c, dto.ErrCodeUnauthorized, "Authentication required")
		return
	}

	profile, err := h.memberService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.NewProfileResponse(profile))
}

// UpdateMe handles PATCH /api/v1/members/me
func (h *MemberHandler) UpdateMe(c *gin.Context) {
	userID, ok := middleware.GetJWTUserID(c)
	if !ok {
		h.Error(c, dto.ErrCodeUnauthorized, "Authentication required")
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	profile, err := h.memberService.UpdateProfile(c.Request.Context(), userID, appmembership.UpdateProfileInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		City:      req.City,
		Province:  req.Province,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.NewProfileResponse(profile))
}

// Create handles POST /api/v1/members. The profile comes out active,
// the member can log in and scan right away.
func (h *MemberHandler) Create(c *gin.Context) {
	var req dto.CreateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	chapterID := uuid.Nil
	if req.ChapterID != "" {
		chapterID, _ = uuid.Parse(req.ChapterID)
	}

	profile, err := h.memberService.CreateMember(c.Request.Context(), appmembership.CreateMemberInput{
		Email:        req.Email,
		Password:     req.Password,
		DocumentID:   req.DocumentID,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
		City:         req.City,
		Province:     req.Province,
		ChapterID:    chapterID,
		ActorChapter: middleware.GetJWTChapterID(c),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, dto.NewProfileResponse(profile))
}

// Update handles PUT /api/v1/members/:id. Chapter admins can only
// update members of their own chapter.
func (h *MemberHandler) Update(c *gin.Context) {
	var idReq dto.IDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		h.BindError(c, err)
		return
	}
	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	scopeChapter := uuid.Nil
	if middleware.GetJWTRole(c) == membership.RoleChapterAdmin {
		scopeChapter = middleware.GetJWTChapterID(c)
	}

	profile, err := h.memberService.UpdateMember(c.Request.Context(),
		uuid.MustParse(idReq.ID), scopeChapter, appmembership.UpdateProfileInput{
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Phone:     req.Phone,
			City:      req.City,
			Province:  req.Province,
		})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.NewProfileResponse(profile))
}

// Get handles GET /api/v1/members/:id
func (h *MemberHandler) Get(c *gin.Context) {
	var idReq dto.IDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		h.BindError(c, err)
		return
	}
	id := uuid.MustParse(idReq.ID)

	profile, err := h.memberService.GetProfile(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.NewProfileResponse(profile))
}

// List handles GET /api/v1/members
func (h *MemberHandler) List(c *gin.Context) {
	var req dto.MemberListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}

	chapterID := uuid.Nil
	if req.ChapterID != "" {
		chapterID, _ = uuid.Parse(req.ChapterID)
	}
	// Chapter admins only ever see their own chapter, whatever the
	// query string says
	if middleware.GetJWTRole(c) == membership.RoleChapterAdmin {
		chapterID = middleware.GetJWTChapterID(c)
	}

	filter := filterFromRequest(req.ListRequest).Normalize(200)
	profiles, err := h.memberService.ListMembers(c.Request.Context(), chapterID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, dto.NewProfileListResponse(profiles),
		filter.Limit, filter.Offset, len(profiles))
}

// Approve handles POST /api/v1/members/:id/approve
func (h *MemberHandler) Approve(c *gin.Context) {
	var idReq dto.IDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		h.BindError(c, err)
		return
	}

	profile, err := h.memberService.ApproveMember(c.Request.Context(), uuid.MustParse(idReq.ID))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.NewProfileResponse(profile))
}

// Disable handles POST /api/v1/members/:id/disable
func (h *MemberHandler) Disable(c *gin.Context) {
	var idReq dto.IDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		h.BindError(c, err)
		return
	}

	profile, err := h.memberService.DisableMember(c.Request.Context(), uuid.MustParse(idReq.ID))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.NewProfileResponse(profile))
}
