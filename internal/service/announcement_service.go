package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"classtime/backend/internal/dto"
	"classtime/backend/internal/model"
	"classtime/backend/internal/repository"
)

// ── 公告模块业务错误 ──

var (
	ErrAnnouncementNotFound = errors.New("公告不存在")
	ErrNotAuthor            = errors.New("仅作者或管理员可操作此公告")
)

// AnnouncementService 公告业务接口
type AnnouncementService interface {
	Create(ctx context.Context, req *dto.CreateAnnouncementRequest, authorID string) (*dto.AnnouncementResponse, error)
	GetByID(ctx context.Context, id string) (*dto.AnnouncementResponse, error)
	List(ctx context.Context) ([]dto.AnnouncementResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateAnnouncementRequest, callerID, callerRole string) (*dto.AnnouncementResponse, error)
	Delete(ctx context.Context, id string, callerID, callerRole string) error
}

type announcementService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAnnouncementService 创建 AnnouncementService 实例
func NewAnnouncementService(repo *repository.Repository, logger *zap.Logger) AnnouncementService {
	return &announcementService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *announcementService) Create(ctx context.Context, req *dto.CreateAnnouncementRequest, authorID string) (*dto.AnnouncementResponse, error) {
	ann := &model.Announcement{
		Title:    req.Title,
		Content:  req.Content,
		AuthorID: authorID,
	}

	if err := s.repo.Announcement.Create(ctx, ann); err != nil {
		s.logger.Error("创建公告失败", zap.Error(err))
		return nil, err
	}

	created, err := s.repo.Announcement.GetByID(ctx, ann.ID)
	if err != nil {
		return nil, err
	}
	return toAnnouncementResponse(created), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *announcementService) GetByID(ctx context.Context, id string) (*dto.AnnouncementResponse, error) {
	ann, err := s.repo.Announcement.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAnnouncementNotFound
		}
		s.logger.Error("查询公告失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toAnnouncementResponse(ann), nil
}

// ────────────────────── List ──────────────────────

func (s *announcementService) List(ctx context.Context) ([]dto.AnnouncementResponse, error) {
	anns, err := s.repo.Announcement.List(ctx)
	if err != nil {
		s.logger.Error("列出公告失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.AnnouncementResponse, 0, len(anns))
	for i := range anns {
		result = append(result, *toAnnouncementResponse(&anns[i]))
	}
	return result, nil
}

// ────────────────────── Update ──────────────────────

func (s *announcementService) Update(ctx context.Context, id string, req *dto.UpdateAnnouncementRequest, callerID, callerRole string) (*dto.AnnouncementResponse, error) {
	ann, err := s.repo.Announcement.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAnnouncementNotFound
		}
		s.logger.Error("查询公告失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if ann.AuthorID != callerID && callerRole != model.RoleAdmin {
		return nil, ErrNotAuthor
	}

	if req.Title != nil {
		ann.Title = *req.Title
	}
	if req.Content != nil {
		ann.Content = *req.Content
	}

	if err := s.repo.Announcement.Update(ctx, ann); err != nil {
		s.logger.Error("更新公告失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toAnnouncementResponse(ann), nil
}

// ────────────────────── Delete ──────────────────────

func (s *announcementService) Delete(ctx context.Context, id string, callerID, callerRole string) error {
	ann, err := s.repo.Announcement.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAnnouncementNotFound
		}
		s.logger.Error("查询公告失败", zap.String("id", id), zap.Error(err))
		return err
	}

	if ann.AuthorID != callerID && callerRole != model.RoleAdmin {
		return ErrNotAuthor
	}

	if err := s.repo.Announcement.Delete(ctx, id); err != nil {
		s.logger.Error("删除公告失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ── 内部辅助方法 ──

func toAnnouncementResponse(ann *model.Announcement) *dto.AnnouncementResponse {
	resp := &dto.AnnouncementResponse{
		ID:        ann.ID,
		Title:     ann.Title,
		Content:   ann.Content,
		AuthorID:  ann.AuthorID,
		CreatedAt: ann.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt: ann.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
	if ann.Author != nil {
		resp.AuthorName = ann.Author.FullName
	}
	return resp
}
