package repository

import (
	"context"
	"fmt"
	"sort"

	"gorm.io/gorm"

	"classtime/backend/internal/model"
)

// SlotFilters 节次列表过滤条件
type SlotFilters struct {
	ClassID   string
	TeacherID string
}

// ConflictCheck 写入前的冲突校验回调。
// 入参是事务内读到的同日节次快照；返回非 nil 错误时写入回滚。
type ConflictCheck func(existing []model.ScheduleSlot) error

// ScheduleSlotRepository 课程节次数据访问接口
//
// CreateChecked / UpdateChecked 把"检查 + 写入"封装为单个事务：
// 事务内先对 (教师, 星期几) 与 (教室, 星期几) 取 advisory 锁，
// 再读同日节次并执行校验回调，最后写入。两个并发写同一教师或
// 教室同日节次的请求会在锁上串行化，杜绝基于过期快照双双通过
// 检查的竞态窗口。
type ScheduleSlotRepository interface {
	GetByID(ctx context.Context, id string) (*model.ScheduleSlot, error)
	List(ctx context.Context, filters SlotFilters) ([]model.ScheduleSlot, error)
	ListByDay(ctx context.Context, dayOfWeek int) ([]model.ScheduleSlot, error)
	CreateChecked(ctx context.Context, slot *model.ScheduleSlot, check ConflictCheck) error
	UpdateChecked(ctx context.Context, slot *model.ScheduleSlot, check ConflictCheck) error
	Delete(ctx context.Context, id string) error
}

type scheduleSlotRepo struct {
	db *gorm.DB
}

// NewScheduleSlotRepo 创建 ScheduleSlotRepository 实例
func NewScheduleSlotRepo(db *gorm.DB) ScheduleSlotRepository {
	return &scheduleSlotRepo{db: db}
}

func (r *scheduleSlotRepo) GetByID(ctx context.Context, id string) (*model.ScheduleSlot, error) {
	var slot model.ScheduleSlot
	err := r.db.WithContext(ctx).
		Preload("Teacher").
		Preload("Subject").
		Preload("Class").
		Preload("Room").
		Where("id = ?", id).
		First(&slot).Error
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

func (r *scheduleSlotRepo) List(ctx context.Context, filters SlotFilters) ([]model.ScheduleSlot, error) {
	var slots []model.ScheduleSlot
	db := r.db.WithContext(ctx).
		Preload("Teacher").
		Preload("Subject").
		Preload("Class").
		Preload("Room")

	if filters.ClassID != "" {
		db = db.Where("class_id = ?", filters.ClassID)
	}
	if filters.TeacherID != "" {
		db = db.Where("teacher_id = ?", filters.TeacherID)
	}

	err := db.Order("day_of_week ASC, start_time ASC, id ASC").Find(&slots).Error
	return slots, err
}

func (r *scheduleSlotRepo) ListByDay(ctx context.Context, dayOfWeek int) ([]model.ScheduleSlot, error) {
	var slots []model.ScheduleSlot
	err := r.db.WithContext(ctx).
		Where("day_of_week = ?", dayOfWeek).
		Order("start_time ASC, id ASC").
		Find(&slots).Error
	return slots, err
}

func (r *scheduleSlotRepo) CreateChecked(ctx context.Context, slot *model.ScheduleSlot, check ConflictCheck) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.lockAndCheck(tx, slot, check); err != nil {
			return err
		}
		return tx.Create(slot).Error
	})
}

func (r *scheduleSlotRepo) UpdateChecked(ctx context.Context, slot *model.ScheduleSlot, check ConflictCheck) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.lockAndCheck(tx, slot, check); err != nil {
			return err
		}
		return tx.Save(slot).Error
	})
}

func (r *scheduleSlotRepo) Delete(ctx context.Context, id string) error {
	// 删除无条件：释放资源不会制造双重占用，无需冲突复查
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.ScheduleSlot{}).Error
}

// lockAndCheck 事务内取 advisory 锁、读同日节次、执行冲突校验。
// 锁键按字典序获取，避免两个写交叉持锁死锁。
func (r *scheduleSlotRepo) lockAndCheck(tx *gorm.DB, slot *model.ScheduleSlot, check ConflictCheck) error {
	keys := []string{
		fmt.Sprintf("slot:teacher:%s:day:%d", slot.TeacherID, slot.DayOfWeek),
		fmt.Sprintf("slot:room:%s:day:%d", slot.RoomID, slot.DayOfWeek),
	}
	sort.Strings(keys)
	for _, key := range keys {
		if err := tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", key).Error; err != nil {
			return err
		}
	}

	var existing []model.ScheduleSlot
	if err := tx.Where("day_of_week = ?", slot.DayOfWeek).Find(&existing).Error; err != nil {
		return err
	}

	return check(existing)
}
