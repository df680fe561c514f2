package dto

// ── 日历同步模块 DTO ──

// CalendarSyncRequest 同步节次到外部日历请求
type CalendarSyncRequest struct {
	SlotID string `json:"slot_id" binding:"required,uuid"`
}

// CalendarEventResponse 外部日历事件响应
type CalendarEventResponse struct {
	EventID   string `json:"event_id"`
	SlotID    string `json:"slot_id"`
	Status    string `json:"status"`
	SyncedAt  string `json:"synced_at"`
	EventLink string `json:"event_link,omitempty"`
}

// CalendarAuthResponse 日历授权响应
type CalendarAuthResponse struct {
	AuthURL   string `json:"auth_url"`
	Connected bool   `json:"connected"`
}
