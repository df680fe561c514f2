package service

import (
	"go.uber.org/zap"

	"classtime/backend/config"
	"classtime/backend/internal/repository"
	"classtime/backend/pkg/cache"
	"classtime/backend/pkg/jwt"
	"classtime/backend/pkg/redis"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth         AuthService
	Teacher      TeacherService
	Subject      SubjectService
	Class        ClassService
	Room         RoomService
	Schedule     ScheduleService
	Announcement AnnouncementService
	Swap         SwapService
	Export       ExportService
	Assistant    AssistantService
	Calendar     CalendarService
}

// NewService 创建 Service 聚合
// rdb 可为 nil：Redis 不可用时认证降级运行（无黑名单）
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	entityCache *cache.EntityCache,
	logger *zap.Logger,
) *Service {
	schedule := NewScheduleService(cfg, repo, logger)

	return &Service{
		Auth:         NewAuthService(cfg, repo, jwtMgr, rdb, logger),
		Teacher:      NewTeacherService(repo, entityCache, logger),
		Subject:      NewSubjectService(repo, entityCache, logger),
		Class:        NewClassService(repo, entityCache, logger),
		Room:         NewRoomService(repo, entityCache, logger),
		Schedule:     schedule,
		Announcement: NewAnnouncementService(repo, logger),
		Swap:         NewSwapService(repo, schedule, logger),
		Export:       NewExportService(cfg, repo, logger),
		Assistant:    NewAssistantService(repo, logger),
		Calendar:     NewCalendarService(cfg, repo, logger),
	}
}
