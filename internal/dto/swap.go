package dto

// ── 调课模块 DTO ──

// CreateSwapRequest 发起调课申请请求
type CreateSwapRequest struct {
	OriginalSlotID string `json:"original_slot_id" binding:"required,uuid"`
	RequestedID    string `json:"requested_id"     binding:"required,uuid"` // 被请求让出节次的教师账号
	Message        string `json:"message"          binding:"omitempty,max=500"`
}

// ResolveSwapRequest 处理调课申请请求
type ResolveSwapRequest struct {
	Action string `json:"action" binding:"required,oneof=approve reject"`
}

// SwapRequestResponse 调课申请响应
type SwapRequestResponse struct {
	ID              string           `json:"id"`
	OriginalSlot    *SlotResponse    `json:"original_slot,omitempty"`
	Requester       *ProfileResponse `json:"requester,omitempty"`
	Requested       *ProfileResponse `json:"requested,omitempty"`
	Status          string           `json:"status"`
	Message         string           `json:"message,omitempty"`
	AdminApprovalID *string          `json:"admin_approval_id,omitempty"`
	CreatedAt       string           `json:"created_at"`
	UpdatedAt       string           `json:"updated_at"`
}
