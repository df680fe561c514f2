package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"classtime/backend/internal/dto"
	"classtime/backend/internal/service"
	"classtime/backend/pkg/response"
)

// SwapHandler 调课模块 HTTP 处理器
type SwapHandler struct {
	swapSvc service.SwapService
}

// NewSwapHandler 创建 SwapHandler
func NewSwapHandler(swapSvc service.SwapService) *SwapHandler {
	return &SwapHandler{swapSvc: swapSvc}
}

// CreateSwap 发起调课申请
// POST /api/v1/swaps
func (h *SwapHandler) CreateSwap(c *gin.Context) {
	var req dto.CreateSwapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	requesterID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	swap, err := h.swapSvc.Create(c.Request.Context(), &req, requesterID)
	if err != nil {
		h.handleSwapError(c, err)
		return
	}
	response.Created(c, swap)
}

// GetSwap 获取调课申请详情
// GET /api/v1/swaps/:id
func (h *SwapHandler) GetSwap(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "申请ID不能为空")
		return
	}

	swap, err := h.swapSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleSwapError(c, err)
		return
	}
	response.OK(c, swap)
}

// ListSwaps 获取全部调课申请（管理员）
// GET /api/v1/swaps
func (h *SwapHandler) ListSwaps(c *gin.Context) {
	swaps, err := h.swapSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, gin.H{"list": swaps})
}

// ListIncomingSwaps 获取发给当前用户的待处理申请
// GET /api/v1/swaps/incoming
func (h *SwapHandler) ListIncomingSwaps(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	swaps, err := h.swapSvc.ListIncoming(c.Request.Context(), callerID)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, gin.H{"list": swaps})
}

// ResolveSwap 批准或拒绝调课申请
// POST /api/v1/swaps/:id/resolve
func (h *SwapHandler) ResolveSwap(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "申请ID不能为空")
		return
	}

	var req dto.ResolveSwapRequest
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

	swap, err := h.swapSvc.Resolve(c.Request.Context(), id, &req, callerID, callerRole)
	if err != nil {
		h.handleSwapError(c, err)
		return
	}
	response.OK(c, swap)
}

// handleSwapError 统一处理调课模块业务错误。
// 批准时的冲突复查失败同样返回 409，申请保持待处理。
func (h *SwapHandler) handleSwapError(c *gin.Context, err error) {
	var conflict *service.ConflictError
	switch {
	case errors.As(err, &conflict):
		response.Conflict(c, 13003, conflict.Error(), conflict.Detail())
	case errors.Is(err, service.ErrSwapNotFound):
		response.NotFound(c, 15001, "调课申请不存在")
	case errors.Is(err, service.ErrSwapAlreadyResolved):
		response.BadRequest(c, 15002, "调课申请已处理")
	case errors.Is(err, service.ErrSwapNotAllowed):
		response.Forbidden(c, 15003, "仅被请求教师或管理员可处理此申请")
	case errors.Is(err, service.ErrSwapSelf):
		response.BadRequest(c, 15004, "不能向自己发起调课申请")
	case errors.Is(err, service.ErrSlotNotOwned):
		response.BadRequest(c, 15005, "该节次不属于被请求的教师")
	case errors.Is(err, service.ErrNoTeacherProfile):
		response.BadRequest(c, 15006, "账号未关联教师档案")
	case errors.Is(err, service.ErrSlotNotFound):
		response.NotFound(c, 13001, "课程节次不存在")
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, 11004, "用户不存在")
	default:
		response.InternalError(c)
	}
}
