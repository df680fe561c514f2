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

// ── 调课模块业务错误 ──

var (
	ErrSwapNotFound        = errors.New("调课申请不存在")
	ErrSwapAlreadyResolved = errors.New("调课申请已处理")
	ErrSwapNotAllowed      = errors.New("仅被请求教师或管理员可处理此申请")
	ErrSwapSelf            = errors.New("不能向自己发起调课申请")
	ErrSlotNotOwned        = errors.New("该节次不属于被请求的教师")
	ErrNoTeacherProfile    = errors.New("当前账号未关联教师档案")
)

// SwapService 调课业务接口
//
// 申请人请求接手被请求教师的某个节次；被请求教师（或管理员）
// 批准后节次的授课教师改为申请人。批准前在同一写事务里重跑
// 冲突检测，申请挂起期间课表的任何变化都会被这次复查捕获。
type SwapService interface {
	Create(ctx context.Context, req *dto.CreateSwapRequest, requesterID string) (*dto.SwapRequestResponse, error)
	GetByID(ctx context.Context, id string) (*dto.SwapRequestResponse, error)
	List(ctx context.Context) ([]dto.SwapRequestResponse, error)
	ListIncoming(ctx context.Context, callerID string) ([]dto.SwapRequestResponse, error)
	Resolve(ctx context.Context, id string, req *dto.ResolveSwapRequest, callerID, callerRole string) (*dto.SwapRequestResponse, error)
}

type swapService struct {
	repo     *repository.Repository
	schedule ScheduleService
	logger   *zap.Logger
}

// NewSwapService 创建 SwapService 实例
func NewSwapService(repo *repository.Repository, schedule ScheduleService, logger *zap.Logger) SwapService {
	return &swapService{repo: repo, schedule: schedule, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *swapService) Create(ctx context.Context, req *dto.CreateSwapRequest, requesterID string) (*dto.SwapRequestResponse, error) {
	if req.RequestedID == requesterID {
		return nil, ErrSwapSelf
	}

	slot, err := s.repo.ScheduleSlot.GetByID(ctx, req.OriginalSlotID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSlotNotFound
		}
		s.logger.Error("查询课程节次失败", zap.String("id", req.OriginalSlotID), zap.Error(err))
		return nil, err
	}

	if _, err := s.repo.Profile.GetByID(ctx, req.RequestedID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	// 被请求教师必须是该节次的现任授课教师
	requestedTeacher, err := s.repo.TeacherLookup.GetByProfileID(ctx, req.RequestedID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoTeacherProfile
		}
		return nil, err
	}
	if requestedTeacher.ID != slot.TeacherID {
		return nil, ErrSlotNotOwned
	}

	swap := &model.SwapRequest{
		OriginalSlotID: req.OriginalSlotID,
		RequesterID:    requesterID,
		RequestedID:    req.RequestedID,
		Status:         model.SwapStatusPending,
		Message:        req.Message,
	}

	if err := s.repo.SwapRequest.Create(ctx, swap); err != nil {
		s.logger.Error("创建调课申请失败", zap.Error(err))
		return nil, err
	}

	created, err := s.repo.SwapRequest.GetByID(ctx, swap.ID)
	if err != nil {
		return nil, err
	}
	return toSwapResponse(created), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *swapService) GetByID(ctx context.Context, id string) (*dto.SwapRequestResponse, error) {
	swap, err := s.repo.SwapRequest.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSwapNotFound
		}
		s.logger.Error("查询调课申请失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toSwapResponse(swap), nil
}

// ────────────────────── List ──────────────────────

func (s *swapService) List(ctx context.Context) ([]dto.SwapRequestResponse, error) {
	swaps, err := s.repo.SwapRequest.List(ctx)
	if err != nil {
		s.logger.Error("列出调课申请失败", zap.Error(err))
		return nil, err
	}
	return toSwapResponses(swaps), nil
}

// ────────────────────── ListIncoming ──────────────────────

func (s *swapService) ListIncoming(ctx context.Context, callerID string) ([]dto.SwapRequestResponse, error) {
	swaps, err := s.repo.SwapRequest.ListPendingForTeacher(ctx, callerID)
	if err != nil {
		s.logger.Error("列出待处理调课申请失败", zap.Error(err))
		return nil, err
	}
	return toSwapResponses(swaps), nil
}

// ────────────────────── Resolve ──────────────────────

func (s *swapService) Resolve(ctx context.Context, id string, req *dto.ResolveSwapRequest, callerID, callerRole string) (*dto.SwapRequestResponse, error) {
	swap, err := s.repo.SwapRequest.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSwapNotFound
		}
		s.logger.Error("查询调课申请失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if swap.Status != model.SwapStatusPending {
		return nil, ErrSwapAlreadyResolved
	}

	isAdmin := callerRole == model.RoleAdmin
	if swap.RequestedID != callerID && !isAdmin {
		return nil, ErrSwapNotAllowed
	}

	if req.Action == "approve" {
		if err := s.approve(ctx, swap); err != nil {
			return nil, err
		}
		swap.Status = model.SwapStatusApproved
	} else {
		swap.Status = model.SwapStatusRejected
	}

	if isAdmin {
		swap.AdminApprovalID = &callerID
	}

	// 预加载的关联此处不参与保存
	swap.OriginalSlot, swap.Requester, swap.Requested = nil, nil, nil

	if err := s.repo.SwapRequest.Update(ctx, swap); err != nil {
		s.logger.Error("更新调课申请失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	updated, err := s.repo.SwapRequest.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toSwapResponse(updated), nil
}

// ── 内部辅助方法 ──

// approve 把节次转给申请人，经由课表服务的常规更新流程，
// 复用其事务内冲突复查。申请人接手后与自己其它课程撞期时
// 返回 ConflictError，申请保持 pending。
func (s *swapService) approve(ctx context.Context, swap *model.SwapRequest) error {
	newTeacher, err := s.repo.TeacherLookup.GetByProfileID(ctx, swap.RequesterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoTeacherProfile
		}
		return err
	}

	_, err = s.schedule.Update(ctx, swap.OriginalSlotID, &dto.UpdateSlotRequest{
		TeacherID: &newTeacher.ID,
	})
	return err
}

func toSwapResponse(swap *model.SwapRequest) *dto.SwapRequestResponse {
	resp := &dto.SwapRequestResponse{
		ID:              swap.ID,
		Status:          swap.Status,
		Message:         swap.Message,
		AdminApprovalID: swap.AdminApprovalID,
		CreatedAt:       swap.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt:       swap.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}

	if swap.OriginalSlot != nil {
		resp.OriginalSlot = toSlotResponse(swap.OriginalSlot)
	}
	if swap.Requester != nil {
		resp.Requester = toProfileResponse(swap.Requester)
	}
	if swap.Requested != nil {
		resp.Requested = toProfileResponse(swap.Requested)
	}
	return resp
}

func toSwapResponses(swaps []model.SwapRequest) []dto.SwapRequestResponse {
	result := make([]dto.SwapRequestResponse, 0, len(swaps))
	for i := range swaps {
		result = append(result, *toSwapResponse(&swaps[i]))
	}
	return result
}
