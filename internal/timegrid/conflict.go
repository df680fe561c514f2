package timegrid

// Slot 冲突检测与网格布局共用的课程节次快照。
// 存储层模型在进入本包前先转换为 Slot，本包不持有持久状态。
type Slot struct {
	ID        string
	DayOfWeek int // 1=周一 … 7=周日
	Range     TimeRange
	TeacherID string
	SubjectID string
	ClassID   string
	RoomID    string
}

// ConflictResult 冲突检测结果
type ConflictResult struct {
	Conflict    bool
	Conflicting *Slot // 首个命中的冲突节次，无冲突时为 nil
}

// CheckConflict 判断候选节次是否与现有节次集合双重占用。
//
// 规则："同一教师或同一教室在同一星期几的重叠时间段内不得被排两次"。
// 同一班级允许并行节次（分组教学场景），因此班级不参与冲突判定。
// excludeID 用于更新流程：排除候选自身的存量记录。
func CheckConflict(candidate Slot, existing []Slot, excludeID string) ConflictResult {
	for i := range existing {
		s := &existing[i]
		if excludeID != "" && s.ID == excludeID {
			continue
		}
		if s.DayOfWeek != candidate.DayOfWeek {
			continue
		}
		if !Overlaps(candidate.Range, s.Range) {
			continue
		}
		if s.TeacherID == candidate.TeacherID || s.RoomID == candidate.RoomID {
			return ConflictResult{Conflict: true, Conflicting: s}
		}
	}
	return ConflictResult{}
}
