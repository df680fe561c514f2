package timegrid

// 时间下拉选项辅助：表单层用固定选项列表选择开始/结束时刻。

// EndTimeOptions 返回严格晚于 start 的选项，供结束时间下拉使用。
func EndTimeOptions(start TimeOfDay, options []TimeOfDay) []TimeOfDay {
	var result []TimeOfDay
	for _, t := range options {
		if t > start {
			result = append(result, t)
		}
	}
	return result
}

// SuggestEndTime 开始时间变更时保持原时长联动结束时间。
// 平移越过 23:59 的结果落在选项窗口之外，返回 ok=false 由调用方丢弃，
// 不绕回次日。
func SuggestEndTime(newStart TimeOfDay, durationMinutes int) (TimeOfDay, bool) {
	end := newStart.AddMinutes(durationMinutes)
	if !end.Valid() {
		return 0, false
	}
	return end, true
}
