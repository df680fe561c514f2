package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"classtime/backend/internal/model"
	"classtime/backend/internal/repository"
)

// ── Mock ProfileRepository ──

type mockProfileRepo struct {
	profiles map[string]*model.Profile
	seq      int
}

func newMockProfileRepo() *mockProfileRepo {
	return &mockProfileRepo{profiles: make(map[string]*model.Profile)}
}

func (m *mockProfileRepo) Create(_ context.Context, profile *model.Profile) error {
	if profile.ID == "" {
		m.seq++
		profile.ID = fmt.Sprintf("profile-%d", m.seq)
	}
	m.profiles[profile.ID] = profile
	return nil
}

func (m *mockProfileRepo) GetByID(_ context.Context, id string) (*model.Profile, error) {
	if p, ok := m.profiles[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockProfileRepo) GetByEmail(_ context.Context, email string) (*model.Profile, error) {
	for _, p := range m.profiles {
		if p.Email == email {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockProfileRepo) Update(_ context.Context, profile *model.Profile) error {
	m.profiles[profile.ID] = profile
	return nil
}

// ── Mock EntityRepository ──

// mockEntityRepo 主数据泛型仓储的内存实现。
// 泛型无法直接取结构体字段，ID 读写通过注入的函数完成。
type mockEntityRepo[T model.MasterEntity] struct {
	items  map[string]*T
	getID  func(*T) string
	setID  func(*T, string)
	prefix string
	seq    int
}

func newMockEntityRepo[T model.MasterEntity](prefix string, getID func(*T) string, setID func(*T, string)) *mockEntityRepo[T] {
	return &mockEntityRepo[T]{
		items:  make(map[string]*T),
		getID:  getID,
		setID:  setID,
		prefix: prefix,
	}
}

func (m *mockEntityRepo[T]) Create(_ context.Context, entity *T) error {
	if m.getID(entity) == "" {
		m.seq++
		m.setID(entity, fmt.Sprintf("%s-%d", m.prefix, m.seq))
	}
	m.items[m.getID(entity)] = entity
	return nil
}

func (m *mockEntityRepo[T]) GetByID(_ context.Context, id string) (*T, error) {
	if e, ok := m.items[id]; ok {
		return e, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEntityRepo[T]) List(_ context.Context) ([]T, error) {
	var result []T
	for _, e := range m.items {
		result = append(result, *e)
	}
	return result, nil
}

func (m *mockEntityRepo[T]) Update(_ context.Context, entity *T) error {
	m.items[m.getID(entity)] = entity
	return nil
}

func (m *mockEntityRepo[T]) Delete(_ context.Context, id string) error {
	delete(m.items, id)
	return nil
}

func newMockTeacherRepo() *mockEntityRepo[model.Teacher] {
	return newMockEntityRepo("teacher",
		func(t *model.Teacher) string { return t.ID },
		func(t *model.Teacher, id string) { t.ID = id })
}

func newMockSubjectRepo() *mockEntityRepo[model.Subject] {
	return newMockEntityRepo("subject",
		func(s *model.Subject) string { return s.ID },
		func(s *model.Subject, id string) { s.ID = id })
}

func newMockClassRepo() *mockEntityRepo[model.Class] {
	return newMockEntityRepo("class",
		func(c *model.Class) string { return c.ID },
		func(c *model.Class, id string) { c.ID = id })
}

func newMockRoomRepo() *mockEntityRepo[model.Room] {
	return newMockEntityRepo("room",
		func(r *model.Room) string { return r.ID },
		func(r *model.Room, id string) { r.ID = id })
}

// ── Mock ScheduleSlotRepository ──

// mockScheduleSlotRepo 内存节次仓储。
// CreateChecked/UpdateChecked 与真实实现一样先查同日节次、
// 执行校验回调，回调失败则不落盘。
type mockScheduleSlotRepo struct {
	slots map[string]*model.ScheduleSlot
	seq   int
}

func newMockScheduleSlotRepo() *mockScheduleSlotRepo {
	return &mockScheduleSlotRepo{slots: make(map[string]*model.ScheduleSlot)}
}

func (m *mockScheduleSlotRepo) GetByID(_ context.Context, id string) (*model.ScheduleSlot, error) {
	// 返回副本，与真实仓储一致：调用方的修改在落盘前不影响存量
	if s, ok := m.slots[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockScheduleSlotRepo) List(_ context.Context, filters repository.SlotFilters) ([]model.ScheduleSlot, error) {
	var result []model.ScheduleSlot
	for _, s := range m.slots {
		if filters.ClassID != "" && s.ClassID != filters.ClassID {
			continue
		}
		if filters.TeacherID != "" && s.TeacherID != filters.TeacherID {
			continue
		}
		result = append(result, *s)
	}
	return result, nil
}

func (m *mockScheduleSlotRepo) ListByDay(_ context.Context, dayOfWeek int) ([]model.ScheduleSlot, error) {
	var result []model.ScheduleSlot
	for _, s := range m.slots {
		if s.DayOfWeek == dayOfWeek {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (m *mockScheduleSlotRepo) CreateChecked(ctx context.Context, slot *model.ScheduleSlot, check repository.ConflictCheck) error {
	existing, _ := m.ListByDay(ctx, slot.DayOfWeek)
	if err := check(existing); err != nil {
		return err
	}
	if slot.ID == "" {
		m.seq++
		slot.ID = fmt.Sprintf("slot-%d", m.seq)
	}
	slot.CreatedAt = time.Now()
	slot.UpdatedAt = time.Now()
	m.slots[slot.ID] = slot
	return nil
}

func (m *mockScheduleSlotRepo) UpdateChecked(ctx context.Context, slot *model.ScheduleSlot, check repository.ConflictCheck) error {
	existing, _ := m.ListByDay(ctx, slot.DayOfWeek)
	if err := check(existing); err != nil {
		return err
	}
	slot.UpdatedAt = time.Now()
	m.slots[slot.ID] = slot
	return nil
}

func (m *mockScheduleSlotRepo) Delete(_ context.Context, id string) error {
	delete(m.slots, id)
	return nil
}

// ── Mock AnnouncementRepository ──

type mockAnnouncementRepo struct {
	announcements map[string]*model.Announcement
	seq           int
}

func newMockAnnouncementRepo() *mockAnnouncementRepo {
	return &mockAnnouncementRepo{announcements: make(map[string]*model.Announcement)}
}

func (m *mockAnnouncementRepo) Create(_ context.Context, ann *model.Announcement) error {
	if ann.ID == "" {
		m.seq++
		ann.ID = fmt.Sprintf("ann-%d", m.seq)
	}
	ann.CreatedAt = time.Now()
	ann.UpdatedAt = time.Now()
	m.announcements[ann.ID] = ann
	return nil
}

func (m *mockAnnouncementRepo) GetByID(_ context.Context, id string) (*model.Announcement, error) {
	if a, ok := m.announcements[id]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAnnouncementRepo) List(_ context.Context) ([]model.Announcement, error) {
	var result []model.Announcement
	for _, a := range m.announcements {
		result = append(result, *a)
	}
	return result, nil
}

func (m *mockAnnouncementRepo) Update(_ context.Context, ann *model.Announcement) error {
	m.announcements[ann.ID] = ann
	return nil
}

func (m *mockAnnouncementRepo) Delete(_ context.Context, id string) error {
	delete(m.announcements, id)
	return nil
}

// ── Mock SwapRequestRepository ──

type mockSwapRequestRepo struct {
	requests map[string]*model.SwapRequest
	seq      int
}

func newMockSwapRequestRepo() *mockSwapRequestRepo {
	return &mockSwapRequestRepo{requests: make(map[string]*model.SwapRequest)}
}

func (m *mockSwapRequestRepo) Create(_ context.Context, req *model.SwapRequest) error {
	if req.ID == "" {
		m.seq++
		req.ID = fmt.Sprintf("swap-%d", m.seq)
	}
	req.CreatedAt = time.Now()
	req.UpdatedAt = time.Now()
	m.requests[req.ID] = req
	return nil
}

func (m *mockSwapRequestRepo) GetByID(_ context.Context, id string) (*model.SwapRequest, error) {
	if r, ok := m.requests[id]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSwapRequestRepo) List(_ context.Context) ([]model.SwapRequest, error) {
	var result []model.SwapRequest
	for _, r := range m.requests {
		result = append(result, *r)
	}
	return result, nil
}

func (m *mockSwapRequestRepo) ListPendingForTeacher(_ context.Context, teacherID string) ([]model.SwapRequest, error) {
	var result []model.SwapRequest
	for _, r := range m.requests {
		if r.RequestedID == teacherID && r.Status == model.SwapStatusPending {
			result = append(result, *r)
		}
	}
	return result, nil
}

func (m *mockSwapRequestRepo) Update(_ context.Context, req *model.SwapRequest) error {
	m.requests[req.ID] = req
	return nil
}

// ── Mock TeacherLookup ──

type mockTeacherLookup struct {
	teachers *mockEntityRepo[model.Teacher]
}

func (m *mockTeacherLookup) GetByProfileID(_ context.Context, profileID string) (*model.Teacher, error) {
	for _, t := range m.teachers.items {
		if t.ProfileID != nil && *t.ProfileID == profileID {
			return t, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}
