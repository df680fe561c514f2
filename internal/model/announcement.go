package model

// Announcement 公告 — 对应 announcements
type Announcement struct {
	ID       string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Title    string `gorm:"type:varchar(256);not null"                     json:"title"`
	Content  string `gorm:"type:text;not null"                             json:"content"`
	AuthorID string `gorm:"type:uuid;not null"                             json:"author_id"`
	BaseModel

	// 关联
	Author *Profile `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}

// TableName 指定表名
func (Announcement) TableName() string { return "announcements" }
