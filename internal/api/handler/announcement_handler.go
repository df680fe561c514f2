package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"classtime/backend/internal/dto"
	"classtime/backend/internal/service"
	"classtime/backend/pkg/response"
)

// AnnouncementHandler 公告模块 HTTP 处理器
type AnnouncementHandler struct {
	annSvc service.AnnouncementService
}

// NewAnnouncementHandler 创建 AnnouncementHandler
func NewAnnouncementHandler(annSvc service.AnnouncementService) *AnnouncementHandler {
	return &AnnouncementHandler{annSvc: annSvc}
}

// ListAnnouncements 获取公告列表
// GET /api/v1/announcements
func (h *AnnouncementHandler) ListAnnouncements(c *gin.Context) {
	anns, err := h.annSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, gin.H{"list": anns})
}

// GetAnnouncement 获取公告详情
// GET /api/v1/announcements/:id
func (h *AnnouncementHandler) GetAnnouncement(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "公告ID不能为空")
		return
	}

	ann, err := h.annSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleAnnouncementError(c, err)
		return
	}
	response.OK(c, ann)
}

// CreateAnnouncement 创建公告
// POST /api/v1/announcements
func (h *AnnouncementHandler) CreateAnnouncement(c *gin.Context) {
	var req dto.CreateAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	authorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	ann, err := h.annSvc.Create(c.Request.Context(), &req, authorID)
	if err != nil {
		h.handleAnnouncementError(c, err)
		return
	}
	response.Created(c, ann)
}

// UpdateAnnouncement 更新公告
// PUT /api/v1/announcements/:id
func (h *AnnouncementHandler) UpdateAnnouncement(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "公告ID不能为空")
		return
	}

	var req dto.UpdateAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	callerRole, ok := MustGetRole(c)
	if !ok {
		return
	}

	ann, err := h.annSvc.Update(c.Request.Context(), id, &req, callerID, callerRole)
	if err != nil {
		h.handleAnnouncementError(c, err)
		return
	}
	response.OK(c, ann)
}

// DeleteAnnouncement 删除公告
// DELETE /api/v1/announcements/:id
func (h *AnnouncementHandler) DeleteAnnouncement(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "公告ID不能为空")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	callerRole, ok := MustGetRole(c)
	if !ok {
		return
	}

	if err := h.annSvc.Delete(c.Request.Context(), id, callerID, callerRole); err != nil {
		h.handleAnnouncementError(c, err)
		return
	}
	response.OK(c, nil)
}

// handleAnnouncementError 统一处理公告模块业务错误
func (h *AnnouncementHandler) handleAnnouncementError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAnnouncementNotFound):
		response.NotFound(c, 14001, "公告不存在")
	case errors.Is(err, service.ErrNotAuthor):
		response.Forbidden(c, 14002, "仅作者或管理员可操作此公告")
	default:
		response.InternalError(c)
	}
}
