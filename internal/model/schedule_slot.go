package model

import "classtime/backend/internal/timegrid"

// ScheduleSlot 课程节次 — 对应 schedule_slots
//
// 一个节次是"某教师在某教室给某班级上某科目"的每周固定重复安排，
// 由星期几 + 当日时间段定位。时间以 "HH:MM" 文本持久化，
// 进入核心计算前转换为 timegrid.Slot。
type ScheduleSlot struct {
	ID        string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	DayOfWeek int    `gorm:"type:smallint;not null"                         json:"day_of_week"` // 1=周一 … 7=周日
	StartTime string `gorm:"type:varchar(5);not null"                       json:"start_time"`  // HH:MM
	EndTime   string `gorm:"type:varchar(5);not null"                       json:"end_time"`    // HH:MM
	TeacherID string `gorm:"type:uuid;not null;index:idx_slots_teacher_day" json:"teacher_id"`
	SubjectID string `gorm:"type:uuid;not null"                             json:"subject_id"`
	ClassID   string `gorm:"type:uuid;not null;index"                       json:"class_id"`
	RoomID    string `gorm:"type:uuid;not null;index:idx_slots_room_day"    json:"room_id"`
	BaseModel

	// 关联
	Teacher *Teacher `gorm:"foreignKey:TeacherID" json:"teacher,omitempty"`
	Subject *Subject `gorm:"foreignKey:SubjectID" json:"subject,omitempty"`
	Class   *Class   `gorm:"foreignKey:ClassID"   json:"class,omitempty"`
	Room    *Room    `gorm:"foreignKey:RoomID"    json:"room,omitempty"`
}

// TableName 指定表名
func (ScheduleSlot) TableName() string { return "schedule_slots" }

// ToTimegridSlot 转换为核心计算层的节次快照。
// 存量数据由创建路径保证格式合法，解析失败返回 error 以防脏数据静默通过。
func (s *ScheduleSlot) ToTimegridSlot() (timegrid.Slot, error) {
	r, err := timegrid.ParseTimeRange(s.StartTime, s.EndTime)
	if err != nil {
		return timegrid.Slot{}, err
	}
	return timegrid.Slot{
		ID:        s.ID,
		DayOfWeek: s.DayOfWeek,
		Range:     r,
		TeacherID: s.TeacherID,
		SubjectID: s.SubjectID,
		ClassID:   s.ClassID,
		RoomID:    s.RoomID,
	}, nil
}
