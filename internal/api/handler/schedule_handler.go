package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"classtime/backend/internal/dto"
	"classtime/backend/internal/service"
	"classtime/backend/internal/timegrid"
	"classtime/backend/pkg/response"
)

// ScheduleHandler 课表模块 HTTP 处理器
type ScheduleHandler struct {
	scheduleSvc service.ScheduleService
}

// NewScheduleHandler 创建 ScheduleHandler
func NewScheduleHandler(scheduleSvc service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleSvc: scheduleSvc}
}

// ListSlots 获取节次列表
// GET /api/v1/schedule/slots
func (h *ScheduleHandler) ListSlots(c *gin.Context) {
	var req dto.SlotListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	slots, err := h.scheduleSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": slots})
}

// GetSlot 获取节次详情
// GET /api/v1/schedule/slots/:id
func (h *ScheduleHandler) GetSlot(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "节次ID不能为空")
		return
	}

	slot, err := h.scheduleSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, slot)
}

// CreateSlot 创建节次
// POST /api/v1/schedule/slots
func (h *ScheduleHandler) CreateSlot(c *gin.Context) {
	var req dto.CreateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	slot, err := h.scheduleSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.Created(c, slot)
}

// UpdateSlot 更新节次
// PUT /api/v1/schedule/slots/:id
func (h *ScheduleHandler) UpdateSlot(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "节次ID不能为空")
		return
	}

	var req dto.UpdateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	slot, err := h.scheduleSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, slot)
}

// DeleteSlot 删除节次
// DELETE /api/v1/schedule/slots/:id
func (h *ScheduleHandler) DeleteSlot(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "节次ID不能为空")
		return
	}

	if err := h.scheduleSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, nil)
}

// WeekGrid 周视图
// GET /api/v1/schedule/week
func (h *ScheduleHandler) WeekGrid(c *gin.Context) {
	var req dto.WeekGridRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	grid, err := h.scheduleSvc.WeekGrid(c.Request.Context(), &req)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, grid)
}

// EndTimeOptions 结束时间候选
// GET /api/v1/schedule/end-time-options
func (h *ScheduleHandler) EndTimeOptions(c *gin.Context) {
	var req dto.EndTimeOptionsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	options, err := h.scheduleSvc.EndTimeOptions(c.Request.Context(), &req)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, options)
}

// handleScheduleError 统一处理课表模块业务错误。
// 双重占用冲突返回 409，details 携带冲突节次供前端展示与跳转。
func (h *ScheduleHandler) handleScheduleError(c *gin.Context, err error) {
	var conflict *service.ConflictError
	switch {
	case errors.As(err, &conflict):
		response.Conflict(c, 13003, conflict.Error(), conflict.Detail())
	case errors.Is(err, service.ErrSlotNotFound):
		response.NotFound(c, 13001, "课程节次不存在")
	case errors.Is(err, timegrid.ErrInvalidTimeFormat),
		errors.Is(err, timegrid.ErrInvalidTimeRange):
		response.BadRequest(c, 13002, "时间格式或区间不合法")
	case errors.Is(err, service.ErrTeacherNotFound),
		errors.Is(err, service.ErrSubjectNotFound),
		errors.Is(err, service.ErrClassNotFound),
		errors.Is(err, service.ErrRoomNotFound):
		handleMasterDataError(c, err)
	default:
		response.InternalError(c)
	}
}
