package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"classtime/backend/internal/dto"
	"classtime/backend/internal/model"
	"classtime/backend/internal/repository"
	"classtime/backend/pkg/cache"
)

// ── 基础数据模块业务错误 ──

var (
	ErrTeacherNotFound = errors.New("教师不存在")
	ErrSubjectNotFound = errors.New("科目不存在")
	ErrClassNotFound   = errors.New("班级不存在")
	ErrRoomNotFound    = errors.New("教室不存在")
)

// ── 泛型核心 ──

// entityCore 主数据实体的共用业务核心：列表走集合缓存，
// 取一次直到变更；任何写操作提交后立刻使所属集合失效。
// 失效由变更方驱动，不依赖 TTL 兜底。
type entityCore[T model.MasterEntity] struct {
	repo       repository.EntityRepository[T]
	cache      *cache.EntityCache
	entityType string
	notFound   error
	logger     *zap.Logger
}

func (c *entityCore[T]) list(ctx context.Context) ([]T, error) {
	if cached, ok := c.cache.Get(c.entityType); ok {
		if items, ok := cached.([]T); ok {
			return items, nil
		}
	}

	items, err := c.repo.List(ctx)
	if err != nil {
		c.logger.Error("列出主数据失败", zap.String("entity", c.entityType), zap.Error(err))
		return nil, err
	}

	c.cache.Set(c.entityType, items)
	return items, nil
}

func (c *entityCore[T]) getByID(ctx context.Context, id string) (*T, error) {
	entity, err := c.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, c.notFound
		}
		c.logger.Error("查询主数据失败", zap.String("entity", c.entityType), zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return entity, nil
}

func (c *entityCore[T]) create(ctx context.Context, entity *T) error {
	if err := c.repo.Create(ctx, entity); err != nil {
		c.logger.Error("创建主数据失败", zap.String("entity", c.entityType), zap.Error(err))
		return err
	}
	c.cache.Invalidate(c.entityType)
	return nil
}

func (c *entityCore[T]) update(ctx context.Context, entity *T) error {
	if err := c.repo.Update(ctx, entity); err != nil {
		c.logger.Error("更新主数据失败", zap.String("entity", c.entityType), zap.Error(err))
		return err
	}
	c.cache.Invalidate(c.entityType)
	return nil
}

func (c *entityCore[T]) delete(ctx context.Context, id string) error {
	if _, err := c.getByID(ctx, id); err != nil {
		return err
	}
	if err := c.repo.Delete(ctx, id); err != nil {
		c.logger.Error("删除主数据失败", zap.String("entity", c.entityType), zap.String("id", id), zap.Error(err))
		return err
	}
	c.cache.Invalidate(c.entityType)
	return nil
}

// ════════════════════════ Teacher ════════════════════════

// TeacherService 教师主数据业务接口
type TeacherService interface {
	Create(ctx context.Context, req *dto.CreateTeacherRequest) (*dto.TeacherResponse, error)
	GetByID(ctx context.Context, id string) (*dto.TeacherResponse, error)
	List(ctx context.Context) ([]dto.TeacherResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateTeacherRequest) (*dto.TeacherResponse, error)
	Delete(ctx context.Context, id string) error
}

type teacherService struct {
	core entityCore[model.Teacher]
}

// NewTeacherService 创建 TeacherService 实例
func NewTeacherService(repo *repository.Repository, entityCache *cache.EntityCache, logger *zap.Logger) TeacherService {
	return &teacherService{core: entityCore[model.Teacher]{
		repo:       repo.Teacher,
		cache:      entityCache,
		entityType: model.EntityTeachers,
		notFound:   ErrTeacherNotFound,
		logger:     logger,
	}}
}

func (s *teacherService) Create(ctx context.Context, req *dto.CreateTeacherRequest) (*dto.TeacherResponse, error) {
	teacher := &model.Teacher{
		Name:       req.Name,
		EmployeeID: req.EmployeeID,
		ProfileID:  req.ProfileID,
	}
	if err := s.core.create(ctx, teacher); err != nil {
		return nil, err
	}
	return toTeacherResponse(teacher), nil
}

func (s *teacherService) GetByID(ctx context.Context, id string) (*dto.TeacherResponse, error) {
	teacher, err := s.core.getByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toTeacherResponse(teacher), nil
}

func (s *teacherService) List(ctx context.Context) ([]dto.TeacherResponse, error) {
	teachers, err := s.core.list(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]dto.TeacherResponse, 0, len(teachers))
	for i := range teachers {
		result = append(result, *toTeacherResponse(&teachers[i]))
	}
	return result, nil
}

func (s *teacherService) Update(ctx context.Context, id string, req *dto.UpdateTeacherRequest) (*dto.TeacherResponse, error) {
	teacher, err := s.core.getByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		teacher.Name = *req.Name
	}
	if req.EmployeeID != nil {
		teacher.EmployeeID = req.EmployeeID
	}
	if req.ProfileID != nil {
		teacher.ProfileID = req.ProfileID
	}

	if err := s.core.update(ctx, teacher); err != nil {
		return nil, err
	}
	return toTeacherResponse(teacher), nil
}

func (s *teacherService) Delete(ctx context.Context, id string) error {
	return s.core.delete(ctx, id)
}

// ════════════════════════ Subject ════════════════════════

// SubjectService 科目主数据业务接口
type SubjectService interface {
	Create(ctx context.Context, req *dto.CreateSubjectRequest) (*dto.SubjectResponse, error)
	GetByID(ctx context.Context, id string) (*dto.SubjectResponse, error)
	List(ctx context.Context) ([]dto.SubjectResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateSubjectRequest) (*dto.SubjectResponse, error)
	Delete(ctx context.Context, id string) error
}

type subjectService struct {
	core entityCore[model.Subject]
}

// NewSubjectService 创建 SubjectService 实例
func NewSubjectService(repo *repository.Repository, entityCache *cache.EntityCache, logger *zap.Logger) SubjectService {
	return &subjectService{core: entityCore[model.Subject]{
		repo:       repo.Subject,
		cache:      entityCache,
		entityType: model.EntitySubjects,
		notFound:   ErrSubjectNotFound,
		logger:     logger,
	}}
}

func (s *subjectService) Create(ctx context.Context, req *dto.CreateSubjectRequest) (*dto.SubjectResponse, error) {
	subject := &model.Subject{
		Name:        req.Name,
		Code:        req.Code,
		Description: req.Description,
	}
	if err := s.core.create(ctx, subject); err != nil {
		return nil, err
	}
	return toSubjectResponse(subject), nil
}

func (s *subjectService) GetByID(ctx context.Context, id string) (*dto.SubjectResponse, error) {
	subject, err := s.core.getByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toSubjectResponse(subject), nil
}

func (s *subjectService) List(ctx context.Context) ([]dto.SubjectResponse, error) {
	subjects, err := s.core.list(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]dto.SubjectResponse, 0, len(subjects))
	for i := range subjects {
		result = append(result, *toSubjectResponse(&subjects[i]))
	}
	return result, nil
}

func (s *subjectService) Update(ctx context.Context, id string, req *dto.UpdateSubjectRequest) (*dto.SubjectResponse, error) {
	subject, err := s.core.getByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		subject.Name = *req.Name
	}
	if req.Code != nil {
		subject.Code = req.Code
	}
	if req.Description != nil {
		subject.Description = *req.Description
	}

	if err := s.core.update(ctx, subject); err != nil {
		return nil, err
	}
	return toSubjectResponse(subject), nil
}

func (s *subjectService) Delete(ctx context.Context, id string) error {
	return s.core.delete(ctx, id)
}

// ════════════════════════ Class ════════════════════════

// ClassService 班级主数据业务接口
type ClassService interface {
	Create(ctx context.Context, req *dto.CreateClassRequest) (*dto.ClassResponse, error)
	GetByID(ctx context.Context, id string) (*dto.ClassResponse, error)
	List(ctx context.Context) ([]dto.ClassResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateClassRequest) (*dto.ClassResponse, error)
	Delete(ctx context.Context, id string) error
}

type classService struct {
	core entityCore[model.Class]
}

// NewClassService 创建 ClassService 实例
func NewClassService(repo *repository.Repository, entityCache *cache.EntityCache, logger *zap.Logger) ClassService {
	return &classService{core: entityCore[model.Class]{
		repo:       repo.Class,
		cache:      entityCache,
		entityType: model.EntityClasses,
		notFound:   ErrClassNotFound,
		logger:     logger,
	}}
}

func (s *classService) Create(ctx context.Context, req *dto.CreateClassRequest) (*dto.ClassResponse, error) {
	class := &model.Class{
		Name:         req.Name,
		Grade:        req.Grade,
		AcademicYear: req.AcademicYear,
	}
	if err := s.core.create(ctx, class); err != nil {
		return nil, err
	}
	return toClassResponse(class), nil
}

func (s *classService) GetByID(ctx context.Context, id string) (*dto.ClassResponse, error) {
	class, err := s.core.getByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toClassResponse(class), nil
}

func (s *classService) List(ctx context.Context) ([]dto.ClassResponse, error) {
	classes, err := s.core.list(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]dto.ClassResponse, 0, len(classes))
	for i := range classes {
		result = append(result, *toClassResponse(&classes[i]))
	}
	return result, nil
}

func (s *classService) Update(ctx context.Context, id string, req *dto.UpdateClassRequest) (*dto.ClassResponse, error) {
	class, err := s.core.getByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		class.Name = *req.Name
	}
	if req.Grade != nil {
		class.Grade = req.Grade
	}
	if req.AcademicYear != nil {
		class.AcademicYear = *req.AcademicYear
	}

	if err := s.core.update(ctx, class); err != nil {
		return nil, err
	}
	return toClassResponse(class), nil
}

func (s *classService) Delete(ctx context.Context, id string) error {
	return s.core.delete(ctx, id)
}

// ════════════════════════ Room ════════════════════════

// RoomService 教室主数据业务接口
type RoomService interface {
	Create(ctx context.Context, req *dto.CreateRoomRequest) (*dto.RoomResponse, error)
	GetByID(ctx context.Context, id string) (*dto.RoomResponse, error)
	List(ctx context.Context) ([]dto.RoomResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateRoomRequest) (*dto.RoomResponse, error)
	Delete(ctx context.Context, id string) error
}

type roomService struct {
	core entityCore[model.Room]
}

// NewRoomService 创建 RoomService 实例
func NewRoomService(repo *repository.Repository, entityCache *cache.EntityCache, logger *zap.Logger) RoomService {
	return &roomService{core: entityCore[model.Room]{
		repo:       repo.Room,
		cache:      entityCache,
		entityType: model.EntityRooms,
		notFound:   ErrRoomNotFound,
		logger:     logger,
	}}
}

func (s *roomService) Create(ctx context.Context, req *dto.CreateRoomRequest) (*dto.RoomResponse, error) {
	room := &model.Room{
		Name:     req.Name,
		Capacity: req.Capacity,
		Location: req.Location,
	}
	if err := s.core.create(ctx, room); err != nil {
		return nil, err
	}
	return toRoomResponse(room), nil
}

func (s *roomService) GetByID(ctx context.Context, id string) (*dto.RoomResponse, error) {
	room, err := s.core.getByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toRoomResponse(room), nil
}

func (s *roomService) List(ctx context.Context) ([]dto.RoomResponse, error) {
	rooms, err := s.core.list(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]dto.RoomResponse, 0, len(rooms))
	for i := range rooms {
		result = append(result, *toRoomResponse(&rooms[i]))
	}
	return result, nil
}

func (s *roomService) Update(ctx context.Context, id string, req *dto.UpdateRoomRequest) (*dto.RoomResponse, error) {
	room, err := s.core.getByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		room.Name = *req.Name
	}
	if req.Capacity != nil {
		room.Capacity = req.Capacity
	}
	if req.Location != nil {
		room.Location = *req.Location
	}

	if err := s.core.update(ctx, room); err != nil {
		return nil, err
	}
	return toRoomResponse(room), nil
}

func (s *roomService) Delete(ctx context.Context, id string) error {
	return s.core.delete(ctx, id)
}

// ── 内部辅助方法 ──

func toTeacherResponse(t *model.Teacher) *dto.TeacherResponse {
	return &dto.TeacherResponse{
		ID:         t.ID,
		Name:       t.Name,
		EmployeeID: t.EmployeeID,
		ProfileID:  t.ProfileID,
		CreatedAt:  t.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt:  t.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

func toSubjectResponse(sub *model.Subject) *dto.SubjectResponse {
	return &dto.SubjectResponse{
		ID:          sub.ID,
		Name:        sub.Name,
		Code:        sub.Code,
		Description: sub.Description,
		CreatedAt:   sub.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt:   sub.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

func toClassResponse(c *model.Class) *dto.ClassResponse {
	return &dto.ClassResponse{
		ID:           c.ID,
		Name:         c.Name,
		Grade:        c.Grade,
		AcademicYear: c.AcademicYear,
		CreatedAt:    c.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt:    c.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

func toRoomResponse(r *model.Room) *dto.RoomResponse {
	return &dto.RoomResponse{
		ID:        r.ID,
		Name:      r.Name,
		Capacity:  r.Capacity,
		Location:  r.Location,
		CreatedAt: r.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt: r.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
