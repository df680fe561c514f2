package model

// 换课申请状态
const (
	SwapStatusPending  = "pending"
	SwapStatusApproved = "approved"
	SwapStatusRejected = "rejected"
)

// SwapRequest 换课申请 — 对应 swap_requests
//
// 申请人请求把某节次换给目标教师；批准后节次的 teacher_id
// 改为申请人（接手方），批准前须重跑冲突检测。
type SwapRequest struct {
	ID              string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	OriginalSlotID  string  `gorm:"type:uuid;not null"                             json:"original_slot_id"`
	RequesterID     string  `gorm:"type:uuid;not null"                             json:"requester_id"` // 发起申请的教师
	RequestedID     string  `gorm:"type:uuid;not null;index"                       json:"requested_id"` // 被请求的教师
	Status          string  `gorm:"type:varchar(20);not null;default:'pending'"    json:"status"`       // pending | approved | rejected
	AdminApprovalID *string `gorm:"type:uuid"                                      json:"admin_approval_id,omitempty"`
	Message         string  `gorm:"type:text"                                      json:"message,omitempty"`
	BaseModel

	// 关联
	OriginalSlot *ScheduleSlot `gorm:"foreignKey:OriginalSlotID" json:"original_slot,omitempty"`
	Requester    *Profile      `gorm:"foreignKey:RequesterID"    json:"requester,omitempty"`
	Requested    *Profile      `gorm:"foreignKey:RequestedID"    json:"requested,omitempty"`
}

// TableName 指定表名
func (SwapRequest) TableName() string { return "swap_requests" }
