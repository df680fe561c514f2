package model

// Subject 科目主数据 — 对应 subjects
type Subject struct {
	ID          string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name        string  `gorm:"type:varchar(256);not null"                     json:"name"`
	Code        *string `gorm:"type:varchar(50);uniqueIndex"                   json:"code,omitempty"`
	Description string  `gorm:"type:text"                                      json:"description,omitempty"`
	BaseModel
}

// TableName 指定表名
func (Subject) TableName() string { return "subjects" }
