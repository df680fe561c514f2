// Package timegrid 实现周课表的核心时间模型：
// 分钟精度的时刻与时间段、冲突检测、以及周视图网格布局计算。
// 本包为纯计算层，不依赖存储与 HTTP。
package timegrid

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTimeFormat 时刻字符串不是严格的 "HH:MM" 格式
	ErrInvalidTimeFormat = errors.New("时间格式无效，应为 HH:MM")
	// ErrInvalidTimeRange 时间段结束不晚于开始
	ErrInvalidTimeRange = errors.New("时间段无效，结束时间必须晚于开始时间")
)

// minutesPerDay 一天的总分钟数
const minutesPerDay = 24 * 60

// TimeOfDay 自午夜起的分钟数，合法范围 [0, 1440)。
type TimeOfDay int

// ParseTimeOfDay 解析严格的 "HH:MM" 字符串。
// 两个字段都必须是两位补零数字，且数值落在 00:00–23:59 之间。
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, ErrInvalidTimeFormat
	}
	h, ok := atoi2(s[0], s[1])
	if !ok {
		return 0, ErrInvalidTimeFormat
	}
	m, ok := atoi2(s[3], s[4])
	if !ok {
		return 0, ErrInvalidTimeFormat
	}
	if h > 23 || m > 59 {
		return 0, ErrInvalidTimeFormat
	}
	return TimeOfDay(h*60 + m), nil
}

// atoi2 解析两位十进制数字
func atoi2(a, b byte) (int, bool) {
	if a < '0' || a > '9' || b < '0' || b > '9' {
		return 0, false
	}
	return int(a-'0')*10 + int(b-'0'), true
}

// String 格式化为补零的 "HH:MM"，与 ParseTimeOfDay 互逆。
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// Minutes 返回自午夜起的分钟数
func (t TimeOfDay) Minutes() int { return int(t) }

// Valid 是否落在当天展示窗口内
func (t TimeOfDay) Valid() bool { return t >= 0 && t < minutesPerDay }

// AddMinutes 平移 delta 分钟。不做跨午夜取模：
// 越过 23:59 的结果是窗口外的非法时刻（Valid 为 false），
// 由调用方（如保持时长的结束时间联动）检测并丢弃，而非静默绕到次日。
func (t TimeOfDay) AddMinutes(delta int) TimeOfDay {
	return t + TimeOfDay(delta)
}
