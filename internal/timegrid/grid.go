package timegrid

import (
	"sort"
	"time"
)

// ── 时间轴 ──

// TimeAxis 周视图纵轴：从 StartHour 到 EndHour（含）按 StepMinutes 步进
// 的有序时刻序列。
type TimeAxis struct {
	StartHour   int
	EndHour     int
	StepMinutes int
}

// Times 生成时间轴上的全部时刻标签。
// 与下拉选项一致：终止小时整点之后的步进时刻也包含在内
// （如 18:00、18:30），但不会越过当天。
func (a TimeAxis) Times() []TimeOfDay {
	var times []TimeOfDay
	for hour := a.StartHour; hour <= a.EndHour; hour++ {
		for minute := 0; minute < 60; minute += a.StepMinutes {
			t := TimeOfDay(hour*60 + minute)
			if !t.Valid() {
				return times
			}
			times = append(times, t)
		}
	}
	return times
}

// ── 布局参数 ──

// GridConfig 网格渲染的像素与堆叠参数
type GridConfig struct {
	CellHeightPx int // 单步时长对应的单元格高度
	CellGapPx    int // 相邻行间隙
	MaxVisible   int // 同一单元格最多同时展示的重叠节次数
	OffsetStepPx int // 堆叠节次的对角偏移步长
}

// StackPosition 堆叠定位：第 index 个可见节次的像素偏移与 z-index。
// 偏移向右下递增，z-index 递增使后者覆盖前者。
type StackPosition struct {
	OffsetPx int
	ZIndex   int
}

// ── 布局输出 ──

// PlacedSlot 一个已定位的节次：高度按时长折算，附带堆叠定位。
type PlacedSlot struct {
	Slot     Slot
	HeightPx int
	Position StackPosition
}

// GridCell 一个 (星期几 × 时刻) 网格单元。
// Visible 为按堆叠顺序排好的可见节次（≤ MaxVisible）；
// 超出部分计入 OverflowCount，完整列表保留在 All 中供
// "查看此格全部"视图使用，不丢数据。
// 空单元格是常态，渲染为"在此新建"的占位，不是错误。
type GridCell struct {
	DayOfWeek     int
	Time          TimeOfDay
	Visible       []PlacedSlot
	OverflowCount int
	All           []Slot
}

// GridRow 一行（一个时刻标签对应的 7 天单元格）
type GridRow struct {
	Time  TimeOfDay
	Cells [7]GridCell
}

// WeekGrid 周视图布局结果：7 天表头日期 + 按时间轴排列的行。
// 纯数据结构，由展示层自行渲染。
type WeekGrid struct {
	Days [7]time.Time
	Rows []GridRow
}

// ── 布局算法 ──

// SlotHeightPx 按时长折算节次的像素高度。
// 跨 N 个步进格的节次恰好覆盖 N 个连续单元格再减去末尾间隙：
// cells*(cellHeight+gap) - gap。
func SlotHeightPx(r TimeRange, stepMinutes int, cfg GridConfig) int {
	cells := float64(r.DurationMinutes()) / float64(stepMinutes)
	return int(cells*float64(cfg.CellHeightPx+cfg.CellGapPx)) - cfg.CellGapPx
}

// StackPositionAt 第 index 个可见节次的堆叠定位
func StackPositionAt(index int, cfg GridConfig) StackPosition {
	return StackPosition{
		OffsetPx: index * cfg.OffsetStepPx,
		ZIndex:   10 + index,
	}
}

// SlotsStartingAt 返回恰好在 (dayOfWeek, t) 单元格起始的节次。
// 精确匹配开始时刻：起始于格中途的节次不会出现在更早的格里。
func SlotsStartingAt(slots []Slot, dayOfWeek int, t TimeOfDay) []Slot {
	var result []Slot
	for _, s := range slots {
		if s.DayOfWeek == dayOfWeek && s.Range.Start == t {
			result = append(result, s)
		}
	}
	return result
}

// VisibleSlots 将同格节次截断到 maxVisible，返回可见部分与溢出数。
func VisibleSlots(slots []Slot, maxVisible int) (shown []Slot, overflowCount int) {
	if len(slots) <= maxVisible {
		return slots, 0
	}
	return slots[:maxVisible], len(slots) - maxVisible
}

// BuildWeekGrid 将一周的节次集合变换为可渲染的 (天 × 时刻) 矩阵。
//
// 无状态纯变换：每次数据变化整体重算，不做增量维护。
// 同格节次按 ID 稳定排序，保证重复渲染不抖动。
func BuildWeekGrid(slots []Slot, axis TimeAxis, cfg GridConfig, week WeekWindow) WeekGrid {
	// 排序副本，避免修改调用方切片
	sorted := make([]Slot, len(slots))
	copy(sorted, slots)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].DayOfWeek != sorted[j].DayOfWeek {
			return sorted[i].DayOfWeek < sorted[j].DayOfWeek
		}
		if sorted[i].Range.Start != sorted[j].Range.Start {
			return sorted[i].Range.Start < sorted[j].Range.Start
		}
		return sorted[i].ID < sorted[j].ID
	})

	times := axis.Times()
	grid := WeekGrid{
		Days: week.Days(),
		Rows: make([]GridRow, 0, len(times)),
	}

	for _, t := range times {
		row := GridRow{Time: t}
		for dayIndex := 0; dayIndex < 7; dayIndex++ {
			dayOfWeek := dayIndex + 1
			all := SlotsStartingAt(sorted, dayOfWeek, t)
			shown, overflow := VisibleSlots(all, cfg.MaxVisible)

			visible := make([]PlacedSlot, 0, len(shown))
			for i, s := range shown {
				visible = append(visible, PlacedSlot{
					Slot:     s,
					HeightPx: SlotHeightPx(s.Range, axis.StepMinutes, cfg),
					Position: StackPositionAt(i, cfg),
				})
			}

			row.Cells[dayIndex] = GridCell{
				DayOfWeek:     dayOfWeek,
				Time:          t,
				Visible:       visible,
				OverflowCount: overflow,
				All:           all,
			}
		}
		grid.Rows = append(grid.Rows, row)
	}

	return grid
}
