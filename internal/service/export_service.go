package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"classtime/backend/config"
	"classtime/backend/internal/dto"
	"classtime/backend/internal/model"
	"classtime/backend/internal/repository"
	"classtime/backend/internal/timegrid"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoSlots      = errors.New("当前筛选条件下无课程节次")
	ErrExportGenerateFail = errors.New("生成导出文件失败")
)

// ExportService 导出业务接口
//
// 课表可导出为两种格式：
//   - Excel (.xlsx)：按周视图布局，行为时间轴刻度、列为周一至周日
//   - iCalendar (.ics)：每个节次一个每周重复的 VEVENT，锚定到当前周
//
// 导出以 bytes.Buffer 返回，由 Handler 层设置响应头后写入 Response。
type ExportService interface {
	ExportXLSX(ctx context.Context, req *dto.SlotListRequest) (*bytes.Buffer, string, error)
	ExportICS(ctx context.Context, req *dto.SlotListRequest) (*bytes.Buffer, string, error)
}

type exportService struct {
	cfg    *config.Config
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{cfg: cfg, repo: repo, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// ExportXLSX — 课表导出为 Excel 周视图
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - 行头：时间轴刻度（HH:MM）
//   - 列头：周一 ~ 周日
//   - 单元格：科目（教师 / 教室），同格多节次换行堆叠

func (s *exportService) ExportXLSX(ctx context.Context, req *dto.SlotListRequest) (*bytes.Buffer, string, error) {
	slots, err := s.loadSlots(ctx, req)
	if err != nil {
		return nil, "", err
	}

	// 索引: "dayOfWeek:HH:MM" → 单元格文本
	cellIndex := make(map[string]string)
	for i := range slots {
		slot := &slots[i]
		key := fmt.Sprintf("%d:%s", slot.DayOfWeek, slot.StartTime)
		text := slotCellText(slot)
		if prev, ok := cellIndex[key]; ok {
			text = prev + "\n" + text
		}
		cellIndex[key] = text
	}

	axis := timegrid.TimeAxis{
		StartHour:   s.cfg.Schedule.StartHour,
		EndHour:     s.cfg.Schedule.EndHour,
		StepMinutes: s.cfg.Schedule.StepMinutes,
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "课程表"
	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, "", ErrExportGenerateFail
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "A", 8)
	f.SetColWidth(sheetName, "B", "H", 24)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 表头
	f.SetCellValue(sheetName, "A1", "时间")
	for day := 1; day <= 7; day++ {
		col, _ := excelize.ColumnNumberToName(day + 1)
		f.SetCellValue(sheetName, col+"1", weekdayLabel(day))
	}
	f.SetCellStyle(sheetName, "A1", "H1", headerStyle)

	// 数据行
	row := 2
	for _, t := range axis.Times() {
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), t.String())
		for day := 1; day <= 7; day++ {
			key := fmt.Sprintf("%d:%s", day, t.String())
			if text, ok := cellIndex[key]; ok {
				col, _ := excelize.ColumnNumberToName(day + 1)
				f.SetCellValue(sheetName, fmt.Sprintf("%s%d", col, row), text)
			}
		}
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("课程表_%s.xlsx", time.Now().Format("20060102"))
	return buf, filename, nil
}

// ═══════════════════════════════════════════════════════════
// ExportICS — 课表导出为 iCalendar
// ═══════════════════════════════════════════════════════════
//
// 每个节次生成一个 VEVENT，DTSTART/DTEND 落在当前周的对应日，
// RRULE=FREQ=WEEKLY 表达每周重复，与"课表每周无限重复"的模型一致。

func (s *exportService) ExportICS(ctx context.Context, req *dto.SlotListRequest) (*bytes.Buffer, string, error) {
	slots, err := s.loadSlots(ctx, req)
	if err != nil {
		return nil, "", err
	}

	week := timegrid.WeekWindowOf(time.Now())

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//classtime//schedule//CN")

	for i := range slots {
		slot := &slots[i]
		gs, err := slot.ToTimegridSlot()
		if err != nil {
			s.logger.Warn("节次时间格式异常，跳过导出",
				zap.String("id", slot.ID), zap.Error(err))
			continue
		}

		day := week.DayDate(slot.DayOfWeek - 1)
		start := day.Add(time.Duration(gs.Range.Start.Minutes()) * time.Minute)
		end := day.Add(time.Duration(gs.Range.End.Minutes()) * time.Minute)

		event := cal.AddEvent(fmt.Sprintf("slot-%s@classtime", slot.ID))
		event.SetCreatedTime(time.Now())
		event.SetDtStampTime(time.Now())
		event.SetStartAt(start)
		event.SetEndAt(end)
		event.SetSummary(slotSummary(slot))
		if slot.Room != nil {
			event.SetLocation(slot.Room.Name)
		}
		if slot.Class != nil {
			event.SetDescription(fmt.Sprintf("班级: %s", slot.Class.Name))
		}
		event.AddRrule("FREQ=WEEKLY")
	}

	buf := bytes.NewBufferString(cal.Serialize())
	filename := fmt.Sprintf("课程表_%s.ics", time.Now().Format("20060102"))
	return buf, filename, nil
}

// ── 内部辅助方法 ──

func (s *exportService) loadSlots(ctx context.Context, req *dto.SlotListRequest) ([]model.ScheduleSlot, error) {
	slots, err := s.repo.ScheduleSlot.List(ctx, repository.SlotFilters{
		ClassID:   req.ClassID,
		TeacherID: req.TeacherID,
	})
	if err != nil {
		s.logger.Error("列出课程节次失败", zap.Error(err))
		return nil, err
	}
	if len(slots) == 0 {
		return nil, ErrExportNoSlots
	}
	return slots, nil
}

func slotSummary(slot *model.ScheduleSlot) string {
	if slot.Subject != nil {
		if slot.Teacher != nil {
			return fmt.Sprintf("%s（%s）", slot.Subject.Name, slot.Teacher.Name)
		}
		return slot.Subject.Name
	}
	return "课程"
}

func slotCellText(slot *model.ScheduleSlot) string {
	text := slotSummary(slot)
	if slot.Room != nil {
		text += " @" + slot.Room.Name
	}
	text += fmt.Sprintf(" %s-%s", slot.StartTime, slot.EndTime)
	return text
}
