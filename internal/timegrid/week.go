package timegrid

import "time"

// WeekWindow 包含任一日期的周一至周日 7 天窗口（周界固定为周一）。
// 仅用于周视图渲染；冲突检测按星期几而非日历日期判定，
// 与"课表每周无限重复"的模型一致。
type WeekWindow struct {
	start time.Time // 周一 00:00
}

// WeekWindowOf 返回包含 date 的周窗口。
func WeekWindowOf(date time.Time) WeekWindow {
	d := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	// time.Weekday 的周日为 0，换算为周一为 0 的偏移
	offset := (int(d.Weekday()) + 6) % 7
	return WeekWindow{start: d.AddDate(0, 0, -offset)}
}

// Start 周一 00:00
func (w WeekWindow) Start() time.Time { return w.start }

// DayDate 第 dayIndex 天（0=周一 … 6=周日）的日历日期。
func (w WeekWindow) DayDate(dayIndex int) time.Time {
	return w.start.AddDate(0, 0, dayIndex)
}

// Days 本周 7 天的日历日期
func (w WeekWindow) Days() [7]time.Time {
	var days [7]time.Time
	for i := range days {
		days[i] = w.DayDate(i)
	}
	return days
}
