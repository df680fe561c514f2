package model

// Room 教室主数据 — 对应 rooms
type Room struct {
	ID       string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name     string `gorm:"type:varchar(256);not null"                     json:"name"`
	Capacity *int   `gorm:"type:int"                                       json:"capacity,omitempty"`
	Location string `gorm:"type:text"                                      json:"location,omitempty"`
	BaseModel
}

// TableName 指定表名
func (Room) TableName() string { return "rooms" }
