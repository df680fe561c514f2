package repository

import (
	"context"

	"gorm.io/gorm"

	"classtime/backend/internal/model"
)

// TeacherLookup 教师档案的反向查询。
// 换课审批要把登录账号映射回教师主数据行，通用实体仓储按 id 查找，
// 这里补充按 profile_id 的查找。
type TeacherLookup interface {
	GetByProfileID(ctx context.Context, profileID string) (*model.Teacher, error)
}

type teacherLookup struct {
	db *gorm.DB
}

// NewTeacherLookup 创建 TeacherLookup 实例
func NewTeacherLookup(db *gorm.DB) TeacherLookup {
	return &teacherLookup{db: db}
}

func (r *teacherLookup) GetByProfileID(ctx context.Context, profileID string) (*model.Teacher, error) {
	var teacher model.Teacher
	err := r.db.WithContext(ctx).Where("profile_id = ?", profileID).First(&teacher).Error
	if err != nil {
		return nil, err
	}
	return &teacher, nil
}
