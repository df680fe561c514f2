package timegrid

// TimeRange 一段同日内的左闭右开时间区间。
// 不变式：End > Start（由 NewTimeRange 保证）。
type TimeRange struct {
	Start TimeOfDay
	End   TimeOfDay
}

// NewTimeRange 构造时间段，零时长或负时长返回 ErrInvalidTimeRange。
func NewTimeRange(start, end TimeOfDay) (TimeRange, error) {
	if end <= start {
		return TimeRange{}, ErrInvalidTimeRange
	}
	if !start.Valid() || !end.Valid() {
		return TimeRange{}, ErrInvalidTimeRange
	}
	return TimeRange{Start: start, End: end}, nil
}

// ParseTimeRange 从一对 "HH:MM" 字符串构造时间段。
func ParseTimeRange(startStr, endStr string) (TimeRange, error) {
	start, err := ParseTimeOfDay(startStr)
	if err != nil {
		return TimeRange{}, err
	}
	end, err := ParseTimeOfDay(endStr)
	if err != nil {
		return TimeRange{}, err
	}
	return NewTimeRange(start, end)
}

// Overlaps 判断同日两个时间段是否重叠（半开区间语义）：
// a 恰好在 b 开始时结束不算重叠。
func Overlaps(a, b TimeRange) bool {
	return a.Start < b.End && b.Start < a.End
}

// DurationMinutes 时长（分钟），由不变式保证恒为正。
func (r TimeRange) DurationMinutes() int {
	return int(r.End - r.Start)
}
