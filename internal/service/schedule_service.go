package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"classtime/backend/config"
	"classtime/backend/internal/dto"
	"classtime/backend/internal/model"
	"classtime/backend/internal/repository"
	"classtime/backend/internal/timegrid"
)

// ── 课表模块业务错误 ──

var (
	ErrSlotNotFound = errors.New("课程节次不存在")
)

// 新建节次开始时间变更时的默认联动时长
const defaultSlotMinutes = 60

// ConflictError 双重占用冲突。
// Reason 为 "teacher" 或 "room"，Conflicting 是首个命中的存量节次。
type ConflictError struct {
	Reason      string
	Conflicting model.ScheduleSlot
}

func (e *ConflictError) Error() string {
	if e.Reason == "teacher" {
		return fmt.Sprintf("教师在该时间段已有课程（%s %s-%s）",
			weekdayLabel(e.Conflicting.DayOfWeek), e.Conflicting.StartTime, e.Conflicting.EndTime)
	}
	return fmt.Sprintf("教室在该时间段已被占用（%s %s-%s）",
		weekdayLabel(e.Conflicting.DayOfWeek), e.Conflicting.StartTime, e.Conflicting.EndTime)
}

// Detail 转换为 409 响应的冲突详情
func (e *ConflictError) Detail() *dto.ConflictDetail {
	slot := e.Conflicting
	return &dto.ConflictDetail{
		Reason:      e.Reason,
		Conflicting: toSlotResponse(&slot),
	}
}

// ScheduleService 课表业务接口
type ScheduleService interface {
	Create(ctx context.Context, req *dto.CreateSlotRequest) (*dto.SlotResponse, error)
	GetByID(ctx context.Context, id string) (*dto.SlotResponse, error)
	List(ctx context.Context, req *dto.SlotListRequest) ([]dto.SlotResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateSlotRequest) (*dto.SlotResponse, error)
	Delete(ctx context.Context, id string) error
	WeekGrid(ctx context.Context, req *dto.WeekGridRequest) (*dto.WeekGridResponse, error)
	EndTimeOptions(ctx context.Context, req *dto.EndTimeOptionsRequest) (*dto.EndTimeOptionsResponse, error)
}

type scheduleService struct {
	cfg    *config.Config
	repo   *repository.Repository
	logger *zap.Logger
}

// NewScheduleService 创建 ScheduleService 实例
func NewScheduleService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) ScheduleService {
	return &scheduleService{cfg: cfg, repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *scheduleService) Create(ctx context.Context, req *dto.CreateSlotRequest) (*dto.SlotResponse, error) {
	r, err := timegrid.ParseTimeRange(req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	if err := s.verifyReferences(ctx, req.TeacherID, req.SubjectID, req.ClassID, req.RoomID); err != nil {
		return nil, err
	}

	slot := &model.ScheduleSlot{
		DayOfWeek: req.DayOfWeek,
		StartTime: r.Start.String(),
		EndTime:   r.End.String(),
		TeacherID: req.TeacherID,
		SubjectID: req.SubjectID,
		ClassID:   req.ClassID,
		RoomID:    req.RoomID,
	}

	// 冲突检测与写入在同一事务内执行，并发写同教师/教室同日
	// 节次的请求被 advisory 锁串行化
	err = s.repo.ScheduleSlot.CreateChecked(ctx, slot, s.conflictCheck(slot, ""))
	if err != nil {
		var conflict *ConflictError
		if errors.As(err, &conflict) {
			return nil, err
		}
		s.logger.Error("创建课程节次失败", zap.Error(err))
		return nil, err
	}

	created, err := s.repo.ScheduleSlot.GetByID(ctx, slot.ID)
	if err != nil {
		return nil, err
	}
	return toSlotResponse(created), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *scheduleService) GetByID(ctx context.Context, id string) (*dto.SlotResponse, error) {
	slot, err := s.repo.ScheduleSlot.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSlotNotFound
		}
		s.logger.Error("查询课程节次失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toSlotResponse(slot), nil
}

// ────────────────────── List ──────────────────────

func (s *scheduleService) List(ctx context.Context, req *dto.SlotListRequest) ([]dto.SlotResponse, error) {
	slots, err := s.repo.ScheduleSlot.List(ctx, repository.SlotFilters{
		ClassID:   req.ClassID,
		TeacherID: req.TeacherID,
	})
	if err != nil {
		s.logger.Error("列出课程节次失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.SlotResponse, 0, len(slots))
	for i := range slots {
		result = append(result, *toSlotResponse(&slots[i]))
	}
	return result, nil
}

// ────────────────────── Update ──────────────────────

func (s *scheduleService) Update(ctx context.Context, id string, req *dto.UpdateSlotRequest) (*dto.SlotResponse, error) {
	slot, err := s.repo.ScheduleSlot.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSlotNotFound
		}
		s.logger.Error("查询课程节次失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if req.DayOfWeek != nil {
		slot.DayOfWeek = *req.DayOfWeek
	}
	if req.StartTime != nil {
		slot.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		slot.EndTime = *req.EndTime
	}
	if req.TeacherID != nil {
		slot.TeacherID = *req.TeacherID
	}
	if req.SubjectID != nil {
		slot.SubjectID = *req.SubjectID
	}
	if req.ClassID != nil {
		slot.ClassID = *req.ClassID
	}
	if req.RoomID != nil {
		slot.RoomID = *req.RoomID
	}

	// 合并后的时间段重新整体校验
	if _, err := timegrid.ParseTimeRange(slot.StartTime, slot.EndTime); err != nil {
		return nil, err
	}
	if err := s.verifyReferences(ctx, slot.TeacherID, slot.SubjectID, slot.ClassID, slot.RoomID); err != nil {
		return nil, err
	}

	// 预加载的关联此处不参与保存
	slot.Teacher, slot.Subject, slot.Class, slot.Room = nil, nil, nil, nil

	// 更新流程排除自身存量记录，节次移动到与旧位置重叠的新位置不误报
	err = s.repo.ScheduleSlot.UpdateChecked(ctx, slot, s.conflictCheck(slot, slot.ID))
	if err != nil {
		var conflict *ConflictError
		if errors.As(err, &conflict) {
			return nil, err
		}
		s.logger.Error("更新课程节次失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	updated, err := s.repo.ScheduleSlot.GetByID(ctx, slot.ID)
	if err != nil {
		return nil, err
	}
	return toSlotResponse(updated), nil
}

// ────────────────────── Delete ──────────────────────

func (s *scheduleService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.ScheduleSlot.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSlotNotFound
		}
		s.logger.Error("查询课程节次失败", zap.String("id", id), zap.Error(err))
		return err
	}

	// 删除是释放资源，不做冲突检测
	if err := s.repo.ScheduleSlot.Delete(ctx, id); err != nil {
		s.logger.Error("删除课程节次失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── WeekGrid ──────────────────────

func (s *scheduleService) WeekGrid(ctx context.Context, req *dto.WeekGridRequest) (*dto.WeekGridResponse, error) {
	anchor := time.Now()
	if req.Date != "" {
		parsed, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			return nil, err
		}
		anchor = parsed
	}
	week := timegrid.WeekWindowOf(anchor)

	slots, err := s.repo.ScheduleSlot.List(ctx, repository.SlotFilters{
		ClassID:   req.ClassID,
		TeacherID: req.TeacherID,
	})
	if err != nil {
		s.logger.Error("列出课程节次失败", zap.Error(err))
		return nil, err
	}

	byID := make(map[string]*model.ScheduleSlot, len(slots))
	gridSlots := make([]timegrid.Slot, 0, len(slots))
	for i := range slots {
		gs, err := slots[i].ToTimegridSlot()
		if err != nil {
			// 脏数据跳过并告警，不让单条坏记录拖垮整个周视图
			s.logger.Warn("节次时间格式异常，跳过",
				zap.String("id", slots[i].ID), zap.Error(err))
			continue
		}
		byID[slots[i].ID] = &slots[i]
		gridSlots = append(gridSlots, gs)
	}

	axis := timegrid.TimeAxis{
		StartHour:   s.cfg.Schedule.StartHour,
		EndHour:     s.cfg.Schedule.EndHour,
		StepMinutes: s.cfg.Schedule.StepMinutes,
	}
	gridCfg := timegrid.GridConfig{
		CellHeightPx: s.cfg.Schedule.CellHeightPx,
		CellGapPx:    s.cfg.Schedule.CellGapPx,
		MaxVisible:   s.cfg.Schedule.MaxVisible,
		OffsetStepPx: s.cfg.Schedule.OffsetStepPx,
	}

	grid := timegrid.BuildWeekGrid(gridSlots, axis, gridCfg, week)
	return s.toWeekGridResponse(grid, axis, byID), nil
}

// ────────────────────── EndTimeOptions ──────────────────────

func (s *scheduleService) EndTimeOptions(ctx context.Context, req *dto.EndTimeOptionsRequest) (*dto.EndTimeOptionsResponse, error) {
	start, err := timegrid.ParseTimeOfDay(req.StartTime)
	if err != nil {
		return nil, err
	}

	// 下拉选项比网格刻度更细
	picker := timegrid.TimeAxis{
		StartHour:   s.cfg.Schedule.StartHour,
		EndHour:     s.cfg.Schedule.EndHour,
		StepMinutes: s.cfg.Schedule.PickerMinutes,
	}
	options := timegrid.EndTimeOptions(start, picker.Times())

	result := make([]string, 0, len(options))
	for _, t := range options {
		result = append(result, t.String())
	}

	resp := &dto.EndTimeOptionsResponse{Options: result}
	if suggested, ok := timegrid.SuggestEndTime(start, defaultSlotMinutes); ok {
		resp.Suggested = suggested.String()
	}
	return resp, nil
}

// ── 内部辅助方法 ──

// conflictCheck 生成仓储事务内执行的冲突校验闭包。
// 快照在持锁后的事务内读取，excludeID 用于更新流程排除自身。
func (s *scheduleService) conflictCheck(slot *model.ScheduleSlot, excludeID string) repository.ConflictCheck {
	return func(existing []model.ScheduleSlot) error {
		candidate, err := slot.ToTimegridSlot()
		if err != nil {
			return err
		}

		snapshot := make([]timegrid.Slot, 0, len(existing))
		byID := make(map[string]*model.ScheduleSlot, len(existing))
		for i := range existing {
			gs, err := existing[i].ToTimegridSlot()
			if err != nil {
				s.logger.Warn("存量节次时间格式异常，跳过冲突比对",
					zap.String("id", existing[i].ID), zap.Error(err))
				continue
			}
			snapshot = append(snapshot, gs)
			byID[existing[i].ID] = &existing[i]
		}

		result := timegrid.CheckConflict(candidate, snapshot, excludeID)
		if !result.Conflict {
			return nil
		}

		reason := "room"
		if result.Conflicting.TeacherID == candidate.TeacherID {
			reason = "teacher"
		}
		return &ConflictError{Reason: reason, Conflicting: *byID[result.Conflicting.ID]}
	}
}

func (s *scheduleService) verifyReferences(ctx context.Context, teacherID, subjectID, classID, roomID string) error {
	if _, err := s.repo.Teacher.GetByID(ctx, teacherID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTeacherNotFound
		}
		return err
	}
	if _, err := s.repo.Subject.GetByID(ctx, subjectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSubjectNotFound
		}
		return err
	}
	if _, err := s.repo.Class.GetByID(ctx, classID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrClassNotFound
		}
		return err
	}
	if _, err := s.repo.Room.GetByID(ctx, roomID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRoomNotFound
		}
		return err
	}
	return nil
}

func (s *scheduleService) toWeekGridResponse(grid timegrid.WeekGrid, axis timegrid.TimeAxis, byID map[string]*model.ScheduleSlot) *dto.WeekGridResponse {
	days := make([]string, 0, len(grid.Days))
	for _, d := range grid.Days {
		days = append(days, d.Format("2006-01-02"))
	}

	times := make([]string, 0, len(grid.Rows))
	rows := make([]dto.GridRowResponse, 0, len(grid.Rows))
	for _, row := range grid.Rows {
		times = append(times, row.Time.String())

		cells := make([]dto.GridCellResponse, 0, len(row.Cells))
		for _, cell := range row.Cells {
			placed := make([]dto.PlacedSlotResponse, 0, len(cell.Visible))
			for _, p := range cell.Visible {
				slotResp := dto.SlotResponse{
					ID:        p.Slot.ID,
					DayOfWeek: p.Slot.DayOfWeek,
					StartTime: p.Slot.Range.Start.String(),
					EndTime:   p.Slot.Range.End.String(),
				}
				if m, ok := byID[p.Slot.ID]; ok {
					slotResp = *toSlotResponse(m)
				}
				placed = append(placed, dto.PlacedSlotResponse{
					Slot:     slotResp,
					HeightPx: p.HeightPx,
					OffsetPx: p.Position.OffsetPx,
					ZIndex:   p.Position.ZIndex,
				})
			}

			cells = append(cells, dto.GridCellResponse{
				DayOfWeek:     cell.DayOfWeek,
				Time:          cell.Time.String(),
				Slots:         placed,
				OverflowCount: cell.OverflowCount,
				Total:         len(cell.All),
			})
		}

		rows = append(rows, dto.GridRowResponse{Time: row.Time.String(), Cells: cells})
	}

	return &dto.WeekGridResponse{
		WeekStart: grid.Days[0].Format("2006-01-02"),
		Days:      days,
		Times:     times,
		Rows:      rows,
	}
}

func toSlotResponse(slot *model.ScheduleSlot) *dto.SlotResponse {
	resp := &dto.SlotResponse{
		ID:        slot.ID,
		DayOfWeek: slot.DayOfWeek,
		StartTime: slot.StartTime,
		EndTime:   slot.EndTime,
		CreatedAt: slot.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt: slot.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}

	if slot.Teacher != nil {
		resp.Teacher = &dto.TeacherBrief{ID: slot.Teacher.ID, Name: slot.Teacher.Name}
	}
	if slot.Subject != nil {
		resp.Subject = &dto.SubjectBrief{ID: slot.Subject.ID, Name: slot.Subject.Name, Code: slot.Subject.Code}
	}
	if slot.Class != nil {
		resp.Class = &dto.ClassBrief{ID: slot.Class.ID, Name: slot.Class.Name}
	}
	if slot.Room != nil {
		resp.Room = &dto.RoomBrief{ID: slot.Room.ID, Name: slot.Room.Name}
	}
	return resp
}

var weekdayLabels = [...]string{"", "周一", "周二", "周三", "周四", "周五", "周六", "周日"}

func weekdayLabel(dayOfWeek int) string {
	if dayOfWeek < 1 || dayOfWeek > 7 {
		return ""
	}
	return weekdayLabels[dayOfWeek]
}
