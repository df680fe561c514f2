package repository

import (
	"context"

	"gorm.io/gorm"

	"classtime/backend/internal/model"
)

// AnnouncementRepository 公告数据访问接口
type AnnouncementRepository interface {
	Create(ctx context.Context, ann *model.Announcement) error
	GetByID(ctx context.Context, id string) (*model.Announcement, error)
	List(ctx context.Context) ([]model.Announcement, error)
	Update(ctx context.Context, ann *model.Announcement) error
	Delete(ctx context.Context, id string) error
}

type announcementRepo struct {
	db *gorm.DB
}

// NewAnnouncementRepo 创建 AnnouncementRepository 实例
func NewAnnouncementRepo(db *gorm.DB) AnnouncementRepository {
	return &announcementRepo{db: db}
}

func (r *announcementRepo) Create(ctx context.Context, ann *model.Announcement) error {
	return r.db.WithContext(ctx).Create(ann).Error
}

func (r *announcementRepo) GetByID(ctx context.Context, id string) (*model.Announcement, error) {
	var ann model.Announcement
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("id = ?", id).
		First(&ann).Error
	if err != nil {
		return nil, err
	}
	return &ann, nil
}

func (r *announcementRepo) List(ctx context.Context) ([]model.Announcement, error) {
	var anns []model.Announcement
	err := r.db.WithContext(ctx).
		Preload("Author").
		Order("created_at DESC").
		Find(&anns).Error
	return anns, err
}

func (r *announcementRepo) Update(ctx context.Context, ann *model.Announcement) error {
	return r.db.WithContext(ctx).Save(ann).Error
}

func (r *announcementRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Announcement{}).Error
}
