package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"classtime/backend/config"
	"classtime/backend/internal/dto"
	"classtime/backend/internal/repository"
)

// CalendarService 外部日历同步业务接口
//
// 占位实现：未接真实 Google Calendar API，事件 ID 本地生成，
// 授权链接指向本服务的回调地址。接口形状与数据流已定型，
// 接入真实 OAuth 时仅替换本文件的实现。
type CalendarService interface {
	Sync(ctx context.Context, req *dto.CalendarSyncRequest, userID string) (*dto.CalendarEventResponse, error)
	Remove(ctx context.Context, slotID string, userID string) error
	AuthStatus(ctx context.Context, userID string) (*dto.CalendarAuthResponse, error)
}

type calendarService struct {
	cfg    *config.Config
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCalendarService 创建 CalendarService 实例
func NewCalendarService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) CalendarService {
	return &calendarService{cfg: cfg, repo: repo, logger: logger}
}

func (s *calendarService) Sync(ctx context.Context, req *dto.CalendarSyncRequest, userID string) (*dto.CalendarEventResponse, error) {
	slot, err := s.repo.ScheduleSlot.GetByID(ctx, req.SlotID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSlotNotFound
		}
		s.logger.Error("查询课程节次失败", zap.String("id", req.SlotID), zap.Error(err))
		return nil, err
	}

	eventID := uuid.New().String()
	s.logger.Info("日历事件已同步（占位）",
		zap.String("user_id", userID),
		zap.String("slot_id", slot.ID),
		zap.String("event_id", eventID))

	return &dto.CalendarEventResponse{
		EventID:  eventID,
		SlotID:   slot.ID,
		Status:   "confirmed",
		SyncedAt: time.Now().Format("2006-01-02T15:04:05Z"),
	}, nil
}

func (s *calendarService) Remove(ctx context.Context, slotID string, userID string) error {
	if _, err := s.repo.ScheduleSlot.GetByID(ctx, slotID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSlotNotFound
		}
		return err
	}

	s.logger.Info("日历事件已移除（占位）",
		zap.String("user_id", userID),
		zap.String("slot_id", slotID))
	return nil
}

func (s *calendarService) AuthStatus(ctx context.Context, userID string) (*dto.CalendarAuthResponse, error) {
	return &dto.CalendarAuthResponse{
		AuthURL:   fmt.Sprintf("%s/api/v1/calendar/oauth/callback?state=%s", s.cfg.Server.BaseURL, userID),
		Connected: false,
	}, nil
}
