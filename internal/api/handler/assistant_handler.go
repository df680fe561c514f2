package handler

import (
	"github.com/gin-gonic/gin"

	"classtime/backend/internal/dto"
	"classtime/backend/internal/service"
	"classtime/backend/pkg/response"
)

// AssistantHandler 排课助手 HTTP 处理器
type AssistantHandler struct {
	assistantSvc service.AssistantService
}

// NewAssistantHandler 创建 AssistantHandler
func NewAssistantHandler(assistantSvc service.AssistantService) *AssistantHandler {
	return &AssistantHandler{assistantSvc: assistantSvc}
}

// Chat 助手对话
// POST /api/v1/assistant/chat
func (h *AssistantHandler) Chat(c *gin.Context) {
	var req dto.AssistantChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	reply, err := h.assistantSvc.Chat(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, reply)
}
