package handler

import "classtime/backend/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth         *AuthHandler
	Teacher      *TeacherHandler
	Subject      *SubjectHandler
	Class        *ClassHandler
	Room         *RoomHandler
	Schedule     *ScheduleHandler
	Announcement *AnnouncementHandler
	Swap         *SwapHandler
	Export       *ExportHandler
	Assistant    *AssistantHandler
	Calendar     *CalendarHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:         NewAuthHandler(svc.Auth),
		Teacher:      NewTeacherHandler(svc.Teacher),
		Subject:      NewSubjectHandler(svc.Subject),
		Class:        NewClassHandler(svc.Class),
		Room:         NewRoomHandler(svc.Room),
		Schedule:     NewScheduleHandler(svc.Schedule),
		Announcement: NewAnnouncementHandler(svc.Announcement),
		Swap:         NewSwapHandler(svc.Swap),
		Export:       NewExportHandler(svc.Export),
		Assistant:    NewAssistantHandler(svc.Assistant),
		Calendar:     NewCalendarHandler(svc.Calendar),
	}
}
