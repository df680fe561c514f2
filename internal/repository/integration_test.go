//go:build integration

package repository_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"classtime/backend/internal/model"
	"classtime/backend/internal/repository"
	"classtime/backend/internal/timegrid"
)

// ═══════════════════════════════════════════════════════════
// Test Setup
// ═══════════════════════════════════════════════════════════

var testDB *gorm.DB

func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		dsn = "host=localhost port=5433 user=classtime password=classtime_password dbname=classtime_test sslmode=disable TimeZone=UTC"
	}

	var err error
	testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "无法连接测试数据库: %v\n", err)
		os.Exit(1)
	}

	err = testDB.AutoMigrate(
		&model.Profile{},
		&model.Teacher{},
		&model.Subject{},
		&model.Class{},
		&model.Room{},
		&model.ScheduleSlot{},
		&model.Announcement{},
		&model.SwapRequest{},
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "AutoMigrate 失败: %v\n", err)
		os.Exit(1)
	}

	os.Exit(m.Run())
}

// setupTestData 创建基础主数据并返回清理函数
func setupTestData(t *testing.T) (teacher *model.Teacher, subject *model.Subject, class *model.Class, room *model.Room, cleanup func()) {
	t.Helper()
	ctx := context.Background()

	teacher = &model.Teacher{Name: "测试教师"}
	subject = &model.Subject{Name: "测试科目"}
	class = &model.Class{Name: "测试班级"}
	room = &model.Room{Name: "测试教室"}

	for _, rec := range []interface{}{teacher, subject, class, room} {
		if err := testDB.WithContext(ctx).Create(rec).Error; err != nil {
			t.Fatalf("创建主数据失败: %v", err)
		}
	}

	cleanup = func() {
		testDB.Exec("DELETE FROM schedule_slots WHERE teacher_id = ?", teacher.ID)
		testDB.Delete(teacher)
		testDB.Delete(subject)
		testDB.Delete(class)
		testDB.Delete(room)
	}
	return teacher, subject, class, room, cleanup
}

// overlapCheck 与服务层同构的冲突回调：教师或教室同日时间重叠即拒绝
func overlapCheck(candidate *model.ScheduleSlot) repository.ConflictCheck {
	return func(existing []model.ScheduleSlot) error {
		cr, err := timegrid.ParseTimeRange(candidate.StartTime, candidate.EndTime)
		if err != nil {
			return err
		}
		for i := range existing {
			if existing[i].ID == candidate.ID {
				continue
			}
			if existing[i].TeacherID != candidate.TeacherID && existing[i].RoomID != candidate.RoomID {
				continue
			}
			er, err := timegrid.ParseTimeRange(existing[i].StartTime, existing[i].EndTime)
			if err != nil {
				continue
			}
			if timegrid.Overlaps(cr, er) {
				return errors.New("双重占用")
			}
		}
		return nil
	}
}

// ═══════════════════════════════════════════════════════════
// ScheduleSlotRepository
// ═══════════════════════════════════════════════════════════

func TestScheduleSlotRepo_CreateChecked_SerializesConcurrentWriters(t *testing.T) {
	teacher, subject, class, room, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewScheduleSlotRepo(testDB)
	ctx := context.Background()

	// 两个并发请求写同一教师同日重叠节次，advisory 锁应使其串行化，
	// 后到者在事务内读到先到者的写入并被回调拒绝。
	newSlot := func() *model.ScheduleSlot {
		return &model.ScheduleSlot{
			DayOfWeek: 1,
			StartTime: "08:00",
			EndTime:   "09:00",
			TeacherID: teacher.ID,
			SubjectID: subject.ID,
			ClassID:   class.ID,
			RoomID:    room.ID,
		}
	}

	var wg sync.WaitGroup
	results := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			slot := newSlot()
			results[i] = repo.CreateChecked(ctx, slot, overlapCheck(slot))
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range results {
		if err == nil {
			succeeded++
		}
	}
	if succeeded != 1 {
		t.Fatalf("期望恰好1个写入成功，实际=%d (errors=%v)", succeeded, results)
	}

	slots, err := repo.ListByDay(ctx, 1)
	if err != nil {
		t.Fatalf("ListByDay 失败: %v", err)
	}
	count := 0
	for i := range slots {
		if slots[i].TeacherID == teacher.ID {
			count++
		}
	}
	if count != 1 {
		t.Errorf("期望落库1条，实际=%d", count)
	}
}

func TestScheduleSlotRepo_UpdateChecked_ExcludesSelf(t *testing.T) {
	teacher, subject, class, room, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewScheduleSlotRepo(testDB)
	ctx := context.Background()

	slot := &model.ScheduleSlot{
		DayOfWeek: 2,
		StartTime: "10:00",
		EndTime:   "11:00",
		TeacherID: teacher.ID,
		SubjectID: subject.ID,
		ClassID:   class.ID,
		RoomID:    room.ID,
	}
	if err := repo.CreateChecked(ctx, slot, overlapCheck(slot)); err != nil {
		t.Fatalf("创建节次失败: %v", err)
	}

	// 原地平移：与自身重叠不应视为冲突
	slot.StartTime = "10:30"
	slot.EndTime = "11:30"
	if err := repo.UpdateChecked(ctx, slot, overlapCheck(slot)); err != nil {
		t.Fatalf("原地平移应成功: %v", err)
	}

	got, err := repo.GetByID(ctx, slot.ID)
	if err != nil {
		t.Fatalf("GetByID 失败: %v", err)
	}
	if got.StartTime != "10:30" {
		t.Errorf("期望开始时间10:30，实际=%s", got.StartTime)
	}
	if got.Teacher == nil || got.Teacher.ID != teacher.ID {
		t.Error("期望预加载教师关联")
	}
}

func TestScheduleSlotRepo_List_OrderedAndFiltered(t *testing.T) {
	teacher, subject, class, room, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewScheduleSlotRepo(testDB)
	ctx := context.Background()

	times := [][2]string{{"14:00", "15:00"}, {"08:00", "09:00"}, {"10:00", "11:00"}}
	for i, tr := range times {
		slot := &model.ScheduleSlot{
			DayOfWeek: 3 + i%2,
			StartTime: tr[0],
			EndTime:   tr[1],
			TeacherID: teacher.ID,
			SubjectID: subject.ID,
			ClassID:   class.ID,
			RoomID:    room.ID,
		}
		if err := repo.CreateChecked(ctx, slot, overlapCheck(slot)); err != nil {
			t.Fatalf("创建节次失败: %v", err)
		}
	}

	slots, err := repo.List(ctx, repository.SlotFilters{TeacherID: teacher.ID})
	if err != nil {
		t.Fatalf("List 失败: %v", err)
	}
	if len(slots) != 3 {
		t.Fatalf("期望3条，实际=%d", len(slots))
	}
	for i := 1; i < len(slots); i++ {
		prev, cur := slots[i-1], slots[i]
		if prev.DayOfWeek > cur.DayOfWeek ||
			(prev.DayOfWeek == cur.DayOfWeek && prev.StartTime > cur.StartTime) {
			t.Errorf("排序不正确: [%d]=(%d %s) 在 [%d]=(%d %s) 之前",
				i-1, prev.DayOfWeek, prev.StartTime, i, cur.DayOfWeek, cur.StartTime)
		}
	}
}
