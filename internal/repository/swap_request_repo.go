package repository

import (
	"context"

	"gorm.io/gorm"

	"classtime/backend/internal/model"
)

// SwapRequestRepository 调课申请数据访问接口
type SwapRequestRepository interface {
	Create(ctx context.Context, req *model.SwapRequest) error
	GetByID(ctx context.Context, id string) (*model.SwapRequest, error)
	List(ctx context.Context) ([]model.SwapRequest, error)
	ListPendingForTeacher(ctx context.Context, teacherID string) ([]model.SwapRequest, error)
	Update(ctx context.Context, req *model.SwapRequest) error
}

type swapRequestRepo struct {
	db *gorm.DB
}

// NewSwapRequestRepo 创建 SwapRequestRepository 实例
func NewSwapRequestRepo(db *gorm.DB) SwapRequestRepository {
	return &swapRequestRepo{db: db}
}

func (r *swapRequestRepo) Create(ctx context.Context, req *model.SwapRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *swapRequestRepo) GetByID(ctx context.Context, id string) (*model.SwapRequest, error) {
	var req model.SwapRequest
	err := r.db.WithContext(ctx).
		Preload("OriginalSlot").
		Preload("OriginalSlot.Teacher").
		Preload("OriginalSlot.Subject").
		Preload("OriginalSlot.Class").
		Preload("OriginalSlot.Room").
		Preload("Requester").
		Preload("Requested").
		Where("id = ?", id).
		First(&req).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *swapRequestRepo) List(ctx context.Context) ([]model.SwapRequest, error) {
	var reqs []model.SwapRequest
	err := r.db.WithContext(ctx).
		Preload("OriginalSlot").
		Preload("Requester").
		Preload("Requested").
		Order("created_at DESC").
		Find(&reqs).Error
	return reqs, err
}

func (r *swapRequestRepo) ListPendingForTeacher(ctx context.Context, teacherID string) ([]model.SwapRequest, error) {
	var reqs []model.SwapRequest
	err := r.db.WithContext(ctx).
		Preload("OriginalSlot").
		Preload("Requester").
		Preload("Requested").
		Where("requested_id = ? AND status = ?", teacherID, model.SwapStatusPending).
		Order("created_at DESC").
		Find(&reqs).Error
	return reqs, err
}

func (r *swapRequestRepo) Update(ctx context.Context, req *model.SwapRequest) error {
	return r.db.WithContext(ctx).Save(req).Error
}
