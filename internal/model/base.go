package model

import "time"

// BaseModel 通用审计字段（所有业务模型嵌入）
type BaseModel struct {
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// MasterEntity 主数据实体约束：教师、科目、班级、教室。
// 泛型仓储与泛型服务以此为类型参数上界，实体类型在编译期封闭，
// 不做运行时字符串分发。
type MasterEntity interface {
	Teacher | Subject | Class | Room
}

// EntityType 主数据集合标识，用作缓存键
const (
	EntityTeachers = "teachers"
	EntitySubjects = "subjects"
	EntityClasses  = "classes"
	EntityRooms    = "rooms"
)
