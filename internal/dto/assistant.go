package dto

// ── 智能助手模块 DTO ──

// AssistantChatRequest 助手对话请求
type AssistantChatRequest struct {
	Message string `json:"message" binding:"required,min=1,max=2000"`
	Context string `json:"context" binding:"omitempty,oneof=general schedule_query announcement_draft schedule_validation swap_suggestion"`
}

// AssistantChatResponse 助手对话响应
type AssistantChatResponse struct {
	Reply    string           `json:"reply"`
	Findings []ConflictDetail `json:"findings,omitempty"` // schedule_validation 上下文返回检出的冲突
}
