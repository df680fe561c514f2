package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"classtime/backend/config"
	"classtime/backend/internal/dto"
	"classtime/backend/internal/model"
	"classtime/backend/internal/repository"
	"classtime/backend/internal/timegrid"
)

// ── 测试辅助 ──

func testScheduleConfig() *config.Config {
	return &config.Config{
		Schedule: config.ScheduleConfig{
			StartHour:     7,
			EndHour:       18,
			StepMinutes:   30,
			CellHeightPx:  64,
			CellGapPx:     4,
			MaxVisible:    3,
			OffsetStepPx:  8,
			PickerMinutes: 15,
		},
	}
}

func setupTestScheduleService() (ScheduleService, *mockScheduleSlotRepo, *repository.Repository) {
	teacherRepo := newMockTeacherRepo()
	slotRepo := newMockScheduleSlotRepo()
	repo := &repository.Repository{
		Profile:       newMockProfileRepo(),
		Teacher:       teacherRepo,
		Subject:       newMockSubjectRepo(),
		Class:         newMockClassRepo(),
		Room:          newMockRoomRepo(),
		ScheduleSlot:  slotRepo,
		Announcement:  newMockAnnouncementRepo(),
		SwapRequest:   newMockSwapRequestRepo(),
		TeacherLookup: &mockTeacherLookup{teachers: teacherRepo},
	}

	// 基础数据
	ctx := context.Background()
	repo.Teacher.Create(ctx, &model.Teacher{ID: "teacher-1", Name: "张老师"})
	repo.Teacher.Create(ctx, &model.Teacher{ID: "teacher-2", Name: "李老师"})
	repo.Subject.Create(ctx, &model.Subject{ID: "subject-1", Name: "数学"})
	repo.Class.Create(ctx, &model.Class{ID: "class-1", Name: "三年一班"})
	repo.Room.Create(ctx, &model.Room{ID: "room-1", Name: "101教室"})
	repo.Room.Create(ctx, &model.Room{ID: "room-2", Name: "102教室"})

	svc := NewScheduleService(testScheduleConfig(), repo, zap.NewNop())
	return svc, slotRepo, repo
}

func createSlotReq(day int, start, end, teacherID, roomID string) *dto.CreateSlotRequest {
	return &dto.CreateSlotRequest{
		DayOfWeek: day,
		StartTime: start,
		EndTime:   end,
		TeacherID: teacherID,
		SubjectID: "subject-1",
		ClassID:   "class-1",
		RoomID:    roomID,
	}
}

// ── Create 测试 ──

func TestScheduleService_Create_Success(t *testing.T) {
	svc, _, _ := setupTestScheduleService()

	result, err := svc.Create(context.Background(), createSlotReq(1, "08:00", "09:30", "teacher-1", "room-1"))
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if result.DayOfWeek != 1 {
		t.Errorf("期望DayOfWeek=1，实际=%d", result.DayOfWeek)
	}
	if result.StartTime != "08:00" || result.EndTime != "09:30" {
		t.Errorf("期望时间段08:00-09:30，实际=%s-%s", result.StartTime, result.EndTime)
	}
}

func TestScheduleService_Create_TeacherConflict(t *testing.T) {
	svc, _, _ := setupTestScheduleService()
	ctx := context.Background()

	if _, err := svc.Create(ctx, createSlotReq(1, "08:00", "09:30", "teacher-1", "room-1")); err != nil {
		t.Fatalf("首次创建应成功: %v", err)
	}

	// 同教师换教室仍冲突
	_, err := svc.Create(ctx, createSlotReq(1, "09:00", "10:00", "teacher-1", "room-2"))
	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("期望 ConflictError，实际: %v", err)
	}
	if conflict.Reason != "teacher" {
		t.Errorf("期望冲突原因teacher，实际=%s", conflict.Reason)
	}
}

func TestScheduleService_Create_RoomConflict(t *testing.T) {
	svc, _, _ := setupTestScheduleService()
	ctx := context.Background()

	if _, err := svc.Create(ctx, createSlotReq(1, "08:00", "09:30", "teacher-1", "room-1")); err != nil {
		t.Fatalf("首次创建应成功: %v", err)
	}

	// 同教室换教师仍冲突
	_, err := svc.Create(ctx, createSlotReq(1, "09:00", "10:00", "teacher-2", "room-1"))
	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("期望 ConflictError，实际: %v", err)
	}
	if conflict.Reason != "room" {
		t.Errorf("期望冲突原因room，实际=%s", conflict.Reason)
	}
}

func TestScheduleService_Create_NoConflictDifferentResources(t *testing.T) {
	svc, _, _ := setupTestScheduleService()
	ctx := context.Background()

	if _, err := svc.Create(ctx, createSlotReq(1, "08:00", "09:30", "teacher-1", "room-1")); err != nil {
		t.Fatalf("首次创建应成功: %v", err)
	}

	// 同班级同时段但教师与教室都不同：允许（分组教学）
	if _, err := svc.Create(ctx, createSlotReq(1, "09:00", "10:00", "teacher-2", "room-2")); err != nil {
		t.Errorf("不同教师不同教室应不冲突: %v", err)
	}
}

func TestScheduleService_Create_TouchingBoundariesAllowed(t *testing.T) {
	svc, _, _ := setupTestScheduleService()
	ctx := context.Background()

	if _, err := svc.Create(ctx, createSlotReq(1, "08:00", "09:00", "teacher-1", "room-1")); err != nil {
		t.Fatalf("首次创建应成功: %v", err)
	}

	// 首尾相接不算重叠
	if _, err := svc.Create(ctx, createSlotReq(1, "09:00", "10:00", "teacher-1", "room-1")); err != nil {
		t.Errorf("首尾相接应不冲突: %v", err)
	}
}

func TestScheduleService_Create_DifferentDayNoConflict(t *testing.T) {
	svc, _, _ := setupTestScheduleService()
	ctx := context.Background()

	if _, err := svc.Create(ctx, createSlotReq(1, "08:00", "09:30", "teacher-1", "room-1")); err != nil {
		t.Fatalf("首次创建应成功: %v", err)
	}

	if _, err := svc.Create(ctx, createSlotReq(2, "08:00", "09:30", "teacher-1", "room-1")); err != nil {
		t.Errorf("不同星期几应不冲突: %v", err)
	}
}

func TestScheduleService_Create_InvalidTimeRange(t *testing.T) {
	svc, _, _ := setupTestScheduleService()

	_, err := svc.Create(context.Background(), createSlotReq(1, "10:00", "09:00", "teacher-1", "room-1"))
	if !errors.Is(err, timegrid.ErrInvalidTimeRange) {
		t.Errorf("期望 ErrInvalidTimeRange，实际: %v", err)
	}

	_, err = svc.Create(context.Background(), createSlotReq(1, "8:00", "09:00", "teacher-1", "room-1"))
	if !errors.Is(err, timegrid.ErrInvalidTimeFormat) {
		t.Errorf("期望 ErrInvalidTimeFormat，实际: %v", err)
	}
}

func TestScheduleService_Create_TeacherNotFound(t *testing.T) {
	svc, _, _ := setupTestScheduleService()

	_, err := svc.Create(context.Background(), createSlotReq(1, "08:00", "09:00", "ghost", "room-1"))
	if !errors.Is(err, ErrTeacherNotFound) {
		t.Errorf("期望 ErrTeacherNotFound，实际: %v", err)
	}
}

// ── Update 测试 ──

func TestScheduleService_Update_MoveOverlapsSelf(t *testing.T) {
	svc, _, _ := setupTestScheduleService()
	ctx := context.Background()

	created, err := svc.Create(ctx, createSlotReq(1, "08:00", "09:30", "teacher-1", "room-1"))
	if err != nil {
		t.Fatalf("创建应成功: %v", err)
	}

	// 移动到与旧位置重叠的新位置：排除自身，不得误报
	newStart, newEnd := "08:30", "10:00"
	result, err := svc.Update(ctx, created.ID, &dto.UpdateSlotRequest{
		StartTime: &newStart,
		EndTime:   &newEnd,
	})
	if err != nil {
		t.Fatalf("与自身重叠的移动应成功: %v", err)
	}
	if result.StartTime != "08:30" || result.EndTime != "10:00" {
		t.Errorf("期望时间段08:30-10:00，实际=%s-%s", result.StartTime, result.EndTime)
	}
}

func TestScheduleService_Update_Conflict(t *testing.T) {
	svc, _, _ := setupTestScheduleService()
	ctx := context.Background()

	if _, err := svc.Create(ctx, createSlotReq(1, "08:00", "09:00", "teacher-1", "room-1")); err != nil {
		t.Fatalf("创建应成功: %v", err)
	}
	second, err := svc.Create(ctx, createSlotReq(1, "10:00", "11:00", "teacher-1", "room-1"))
	if err != nil {
		t.Fatalf("创建应成功: %v", err)
	}

	// 移动到与第一节重叠的位置
	newStart, newEnd := "08:30", "09:30"
	_, err = svc.Update(ctx, second.ID, &dto.UpdateSlotRequest{
		StartTime: &newStart,
		EndTime:   &newEnd,
	})
	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Errorf("期望 ConflictError，实际: %v", err)
	}
}

func TestScheduleService_Update_NotFound(t *testing.T) {
	svc, _, _ := setupTestScheduleService()

	day := 2
	_, err := svc.Update(context.Background(), "ghost", &dto.UpdateSlotRequest{DayOfWeek: &day})
	if !errors.Is(err, ErrSlotNotFound) {
		t.Errorf("期望 ErrSlotNotFound，实际: %v", err)
	}
}

// ── Delete 测试 ──

func TestScheduleService_Delete_Success(t *testing.T) {
	svc, slotRepo, _ := setupTestScheduleService()
	ctx := context.Background()

	created, err := svc.Create(ctx, createSlotReq(1, "08:00", "09:00", "teacher-1", "room-1"))
	if err != nil {
		t.Fatalf("创建应成功: %v", err)
	}

	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete 应成功: %v", err)
	}
	if _, ok := slotRepo.slots[created.ID]; ok {
		t.Error("期望节次已删除")
	}
}

func TestScheduleService_Delete_NotFound(t *testing.T) {
	svc, _, _ := setupTestScheduleService()

	if err := svc.Delete(context.Background(), "ghost"); !errors.Is(err, ErrSlotNotFound) {
		t.Errorf("期望 ErrSlotNotFound，实际: %v", err)
	}
}

// ── WeekGrid 测试 ──

func TestScheduleService_WeekGrid_Basic(t *testing.T) {
	svc, _, _ := setupTestScheduleService()
	ctx := context.Background()

	created, err := svc.Create(ctx, createSlotReq(1, "08:00", "09:30", "teacher-1", "room-1"))
	if err != nil {
		t.Fatalf("创建应成功: %v", err)
	}

	grid, err := svc.WeekGrid(ctx, &dto.WeekGridRequest{Date: "2026-09-03"})
	if err != nil {
		t.Fatalf("WeekGrid 应成功: %v", err)
	}

	// 2026-09-03 是周四，所在周的周一为 2026-08-31
	if grid.WeekStart != "2026-08-31" {
		t.Errorf("期望WeekStart=2026-08-31，实际=%s", grid.WeekStart)
	}
	if len(grid.Days) != 7 {
		t.Fatalf("期望7天表头，实际=%d", len(grid.Days))
	}
	if grid.Days[6] != "2026-09-06" {
		t.Errorf("期望周日=2026-09-06，实际=%s", grid.Days[6])
	}

	// 找到 08:00 行，节次应落在周一列
	var found bool
	for _, row := range grid.Rows {
		if row.Time != "08:00" {
			continue
		}
		cell := row.Cells[0]
		if len(cell.Slots) != 1 {
			t.Fatalf("期望周一08:00有1个节次，实际=%d", len(cell.Slots))
		}
		placed := cell.Slots[0]
		if placed.Slot.ID != created.ID {
			t.Errorf("期望节次%s，实际=%s", created.ID, placed.Slot.ID)
		}
		// 90分钟 / 30分钟步长 = 3格: 3*(64+4)-4 = 200
		if placed.HeightPx != 200 {
			t.Errorf("期望高度200px，实际=%d", placed.HeightPx)
		}
		found = true
	}
	if !found {
		t.Error("未找到08:00行")
	}

	// 08:30 行不应重复出现该节次（精确匹配开始时刻）
	for _, row := range grid.Rows {
		if row.Time == "08:30" && len(row.Cells[0].Slots) != 0 {
			t.Error("跨格节次不应出现在中途行")
		}
	}
}

func TestScheduleService_WeekGrid_Overflow(t *testing.T) {
	svc, slotRepo, _ := setupTestScheduleService()
	ctx := context.Background()

	// 直接塞入 5 个同格节次（不同教师教室，绕过冲突）
	for i := 0; i < 5; i++ {
		slot := &model.ScheduleSlot{
			ID:        string(rune('a'+i)) + "-slot",
			DayOfWeek: 3,
			StartTime: "10:00",
			EndTime:   "11:00",
			TeacherID: "t-" + string(rune('a'+i)),
			SubjectID: "subject-1",
			ClassID:   "class-1",
			RoomID:    "r-" + string(rune('a'+i)),
		}
		slotRepo.slots[slot.ID] = slot
	}

	grid, err := svc.WeekGrid(ctx, &dto.WeekGridRequest{Date: "2026-09-03"})
	if err != nil {
		t.Fatalf("WeekGrid 应成功: %v", err)
	}

	for _, row := range grid.Rows {
		if row.Time != "10:00" {
			continue
		}
		cell := row.Cells[2] // 周三
		if len(cell.Slots) != 3 {
			t.Errorf("期望可见3个，实际=%d", len(cell.Slots))
		}
		if cell.OverflowCount != 2 {
			t.Errorf("期望溢出2个，实际=%d", cell.OverflowCount)
		}
		if cell.Total != 5 {
			t.Errorf("期望总数5，实际=%d", cell.Total)
		}
		// 堆叠定位：第 i 个可见节次偏移 i*8px，z-index 10+i
		for i, p := range cell.Slots {
			if p.OffsetPx != i*8 {
				t.Errorf("第%d个期望偏移%dpx，实际=%d", i, i*8, p.OffsetPx)
			}
			if p.ZIndex != 10+i {
				t.Errorf("第%d个期望z-index=%d，实际=%d", i, 10+i, p.ZIndex)
			}
		}
	}
}

// ── EndTimeOptions 测试 ──

func TestScheduleService_EndTimeOptions(t *testing.T) {
	svc, _, _ := setupTestScheduleService()

	resp, err := svc.EndTimeOptions(context.Background(), &dto.EndTimeOptionsRequest{StartTime: "08:00"})
	if err != nil {
		t.Fatalf("EndTimeOptions 应成功: %v", err)
	}
	if len(resp.Options) == 0 {
		t.Fatal("期望非空选项列表")
	}
	// 所有选项严格晚于开始时间
	for _, opt := range resp.Options {
		if opt <= "08:00" {
			t.Errorf("选项%s应晚于08:00", opt)
		}
	}
	if resp.Options[0] != "08:15" {
		t.Errorf("期望首个选项08:15，实际=%s", resp.Options[0])
	}
	if resp.Suggested != "09:00" {
		t.Errorf("期望默认结束时间09:00，实际=%s", resp.Suggested)
	}
}

func TestScheduleService_EndTimeOptions_InvalidStart(t *testing.T) {
	svc, _, _ := setupTestScheduleService()

	_, err := svc.EndTimeOptions(context.Background(), &dto.EndTimeOptionsRequest{StartTime: "25:00"})
	if !errors.Is(err, timegrid.ErrInvalidTimeFormat) {
		t.Errorf("期望 ErrInvalidTimeFormat，实际: %v", err)
	}
}
