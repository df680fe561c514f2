package dto

// ── 课表模块 DTO ──

// CreateSlotRequest 创建节次请求
type CreateSlotRequest struct {
	DayOfWeek int    `json:"day_of_week" binding:"required,min=1,max=7"`
	StartTime string `json:"start_time"  binding:"required,hhmm"`
	EndTime   string `json:"end_time"    binding:"required,hhmm"`
	TeacherID string `json:"teacher_id"  binding:"required,uuid"`
	SubjectID string `json:"subject_id"  binding:"required,uuid"`
	ClassID   string `json:"class_id"    binding:"required,uuid"`
	RoomID    string `json:"room_id"     binding:"required,uuid"`
}

// UpdateSlotRequest 更新节次请求
type UpdateSlotRequest struct {
	DayOfWeek *int    `json:"day_of_week" binding:"omitempty,min=1,max=7"`
	StartTime *string `json:"start_time"  binding:"omitempty,hhmm"`
	EndTime   *string `json:"end_time"    binding:"omitempty,hhmm"`
	TeacherID *string `json:"teacher_id"  binding:"omitempty,uuid"`
	SubjectID *string `json:"subject_id"  binding:"omitempty,uuid"`
	ClassID   *string `json:"class_id"    binding:"omitempty,uuid"`
	RoomID    *string `json:"room_id"     binding:"omitempty,uuid"`
}

// SlotListRequest 节次列表查询参数
type SlotListRequest struct {
	ClassID   string `form:"class_id"   binding:"omitempty,uuid"`
	TeacherID string `form:"teacher_id" binding:"omitempty,uuid"`
}

// WeekGridRequest 周视图查询参数
type WeekGridRequest struct {
	Date      string `form:"date"       binding:"omitempty,datetime=2006-01-02"` // 锚定日期，默认今天
	ClassID   string `form:"class_id"   binding:"omitempty,uuid"`
	TeacherID string `form:"teacher_id" binding:"omitempty,uuid"`
}

// EndTimeOptionsRequest 结束时间候选查询参数
type EndTimeOptionsRequest struct {
	StartTime string `form:"start_time" binding:"required,hhmm"`
}

// ── 响应 ──

// SlotResponse 节次响应
type SlotResponse struct {
	ID        string        `json:"id"`
	DayOfWeek int           `json:"day_of_week"`
	StartTime string        `json:"start_time"`
	EndTime   string        `json:"end_time"`
	Teacher   *TeacherBrief `json:"teacher,omitempty"`
	Subject   *SubjectBrief `json:"subject,omitempty"`
	Class     *ClassBrief   `json:"class,omitempty"`
	Room      *RoomBrief    `json:"room,omitempty"`
	CreatedAt string        `json:"created_at"`
	UpdatedAt string        `json:"updated_at"`
}

// TeacherBrief 教师简要信息
type TeacherBrief struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SubjectBrief 科目简要信息
type SubjectBrief struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Code *string `json:"code,omitempty"`
}

// ClassBrief 班级简要信息
type ClassBrief struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// RoomBrief 教室简要信息
type RoomBrief struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// PlacedSlotResponse 已布局节次响应，带像素高度与堆叠位置
type PlacedSlotResponse struct {
	Slot     SlotResponse `json:"slot"`
	HeightPx int          `json:"height_px"`
	OffsetPx int          `json:"offset_px"`
	ZIndex   int          `json:"z_index"`
}

// GridCellResponse 周视图单元格响应
type GridCellResponse struct {
	DayOfWeek     int                  `json:"day_of_week"`
	Time          string               `json:"time"`
	Slots         []PlacedSlotResponse `json:"slots"`
	OverflowCount int                  `json:"overflow_count"`
	Total         int                  `json:"total"`
}

// GridRowResponse 周视图时间行响应
type GridRowResponse struct {
	Time  string             `json:"time"`
	Cells []GridCellResponse `json:"cells"` // 固定 7 个，周一到周日
}

// WeekGridResponse 周视图响应
type WeekGridResponse struct {
	WeekStart string            `json:"week_start"`
	Days      []string          `json:"days"`  // 7 个日期，YYYY-MM-DD
	Times     []string          `json:"times"` // 时间轴刻度，HH:MM
	Rows      []GridRowResponse `json:"rows"`
}

// EndTimeOptionsResponse 结束时间候选响应
type EndTimeOptionsResponse struct {
	Options   []string `json:"options"`
	Suggested string   `json:"suggested,omitempty"` // 默认时长推算的结束时间
}

// ConflictDetail 409 冲突详情
type ConflictDetail struct {
	Reason      string        `json:"reason"` // teacher 或 room
	Conflicting *SlotResponse `json:"conflicting_slot"`
}
