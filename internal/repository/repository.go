package repository

import (
	"gorm.io/gorm"

	"classtime/backend/internal/model"
)

// Repository 所有 Repository 的聚合入口
//
// 主数据四类实体共用泛型仓储，实体类型在编译期确定。
type Repository struct {
	Profile      ProfileRepository
	Teacher      EntityRepository[model.Teacher]
	Subject      EntityRepository[model.Subject]
	Class        EntityRepository[model.Class]
	Room         EntityRepository[model.Room]
	ScheduleSlot ScheduleSlotRepository
	Announcement AnnouncementRepository
	SwapRequest  SwapRequestRepository

	TeacherLookup TeacherLookup
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Profile:      NewProfileRepo(db),
		Teacher:      NewEntityRepo[model.Teacher](db),
		Subject:      NewEntityRepo[model.Subject](db),
		Class:        NewEntityRepo[model.Class](db),
		Room:         NewEntityRepo[model.Room](db),
		ScheduleSlot: NewScheduleSlotRepo(db),
		Announcement: NewAnnouncementRepo(db),
		SwapRequest:  NewSwapRequestRepo(db),

		TeacherLookup: NewTeacherLookup(db),
	}
}
