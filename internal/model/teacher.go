package model

// Teacher 教师主数据 — 对应 teachers
type Teacher struct {
	ID         string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ProfileID  *string `gorm:"type:uuid;uniqueIndex"                          json:"profile_id,omitempty"` // 关联登录账号，可为空
	Name       string  `gorm:"type:varchar(256);not null"                     json:"name"`
	EmployeeID *string `gorm:"type:varchar(50);uniqueIndex"                   json:"employee_id,omitempty"`
	BaseModel
}

// TableName 指定表名
func (Teacher) TableName() string { return "teachers" }
