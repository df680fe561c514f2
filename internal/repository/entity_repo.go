package repository

import (
	"context"

	"gorm.io/gorm"

	"classtime/backend/internal/model"
)

// EntityRepository 主数据实体的通用数据访问接口。
// 类型参数限定为封闭的主数据实体集合（教师/科目/班级/教室），
// 替代按实体类型字符串做运行时分发。
type EntityRepository[T model.MasterEntity] interface {
	Create(ctx context.Context, entity *T) error
	GetByID(ctx context.Context, id string) (*T, error)
	List(ctx context.Context) ([]T, error)
	Update(ctx context.Context, entity *T) error
	Delete(ctx context.Context, id string) error
}

type entityRepo[T model.MasterEntity] struct {
	db *gorm.DB
}

// NewEntityRepo 创建某一主数据实体的仓储实例
func NewEntityRepo[T model.MasterEntity](db *gorm.DB) EntityRepository[T] {
	return &entityRepo[T]{db: db}
}

func (r *entityRepo[T]) Create(ctx context.Context, entity *T) error {
	return r.db.WithContext(ctx).Create(entity).Error
}

func (r *entityRepo[T]) GetByID(ctx context.Context, id string) (*T, error) {
	var entity T
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&entity).Error
	if err != nil {
		return nil, err
	}
	return &entity, nil
}

func (r *entityRepo[T]) List(ctx context.Context) ([]T, error) {
	var entities []T
	err := r.db.WithContext(ctx).Order("name ASC").Find(&entities).Error
	return entities, err
}

func (r *entityRepo[T]) Update(ctx context.Context, entity *T) error {
	return r.db.WithContext(ctx).Save(entity).Error
}

func (r *entityRepo[T]) Delete(ctx context.Context, id string) error {
	var entity T
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity).Error
}
