package model

// Class 班级主数据 — 对应 classes
type Class struct {
	ID           string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name         string `gorm:"type:varchar(256);not null"                     json:"name"`
	Grade        *int   `gorm:"type:smallint"                                  json:"grade,omitempty"`
	AcademicYear string `gorm:"type:varchar(9)"                                json:"academic_year,omitempty"` // 如 "2025/2026"
	BaseModel
}

// TableName 指定表名
func (Class) TableName() string { return "classes" }
