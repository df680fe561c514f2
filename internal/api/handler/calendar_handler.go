package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"classtime/backend/internal/dto"
	"classtime/backend/internal/service"
	"classtime/backend/pkg/response"
)

// CalendarHandler 外部日历同步 HTTP 处理器
type CalendarHandler struct {
	calendarSvc service.CalendarService
}

// NewCalendarHandler 创建 CalendarHandler
func NewCalendarHandler(calendarSvc service.CalendarService) *CalendarHandler {
	return &CalendarHandler{calendarSvc: calendarSvc}
}

// Sync 将课程节次同步到外部日历
// POST /api/v1/calendar/sync
func (h *CalendarHandler) Sync(c *gin.Context) {
	var req dto.CalendarSyncRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	event, err := h.calendarSvc.Sync(c.Request.Context(), &req, userID)
	if err != nil {
		h.handleCalendarError(c, err)
		return
	}
	response.OK(c, event)
}

// Remove 从外部日历移除课程节次
// DELETE /api/v1/calendar/slots/:id
func (h *CalendarHandler) Remove(c *gin.Context) {
	slotID := c.Param("id")
	if slotID == "" {
		response.BadRequest(c, 10001, "节次ID不能为空")
		return
	}

	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.calendarSvc.Remove(c.Request.Context(), slotID, userID); err != nil {
		h.handleCalendarError(c, err)
		return
	}
	response.OK(c, gin.H{"message": "已移除"})
}

// AuthStatus 查询日历授权状态
// GET /api/v1/calendar/auth
func (h *CalendarHandler) AuthStatus(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	status, err := h.calendarSvc.AuthStatus(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, status)
}

func (h *CalendarHandler) handleCalendarError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSlotNotFound):
		response.NotFound(c, 13001, "课程节次不存在")
	default:
		response.InternalError(c)
	}
}
