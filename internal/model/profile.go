package model

// 用户角色
const (
	RoleAdmin   = "admin"
	RoleTeacher = "teacher"
)

// Profile 登录账号 — 对应 profiles
type Profile struct {
	ID           string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Email        string `gorm:"type:varchar(256);not null;uniqueIndex"         json:"email"`
	PasswordHash string `gorm:"type:varchar(100);not null"                     json:"-"`
	FullName     string `gorm:"type:varchar(256)"                              json:"full_name,omitempty"`
	Role         string `gorm:"type:varchar(20);not null;default:'teacher'"    json:"role"` // admin | teacher
	BaseModel
}

// TableName 指定表名
func (Profile) TableName() string { return "profiles" }
