package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"classtime/backend/internal/dto"
	"classtime/backend/internal/model"
	"classtime/backend/internal/repository"
	"classtime/backend/internal/timegrid"
)

// AssistantService 智能助手业务接口
//
// 回复由本地规则生成，不接外部模型。schedule_validation 上下文
// 对全量课表跑逐对冲突检测并汇报结果，与创建/更新路径使用
// 同一套冲突规则；其余上下文为模板回复。
type AssistantService interface {
	Chat(ctx context.Context, req *dto.AssistantChatRequest) (*dto.AssistantChatResponse, error)
}

type assistantService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAssistantService 创建 AssistantService 实例
func NewAssistantService(repo *repository.Repository, logger *zap.Logger) AssistantService {
	return &assistantService{repo: repo, logger: logger}
}

func (s *assistantService) Chat(ctx context.Context, req *dto.AssistantChatRequest) (*dto.AssistantChatResponse, error) {
	switch req.Context {
	case "schedule_validation":
		return s.validateSchedule(ctx)
	case "schedule_query":
		return s.scheduleQueryReply(ctx)
	case "announcement_draft":
		return s.announcementDraft(req.Message), nil
	case "swap_suggestion":
		return &dto.AssistantChatResponse{
			Reply: "调课建议：在调课页面选择节次并指定接手教师，被请求教师批准后系统会自动复查冲突。",
		}, nil
	default:
		return s.generalReply(req.Message), nil
	}
}

// ── 内部辅助方法 ──

// validateSchedule 对全量课表做逐对冲突扫描。
// 每个节次作为候选与其后的节次比对一次，避免 (A,B)/(B,A) 重复上报。
func (s *assistantService) validateSchedule(ctx context.Context) (*dto.AssistantChatResponse, error) {
	slots, err := s.repo.ScheduleSlot.List(ctx, repository.SlotFilters{})
	if err != nil {
		s.logger.Error("列出课程节次失败", zap.Error(err))
		return nil, err
	}

	byID := make(map[string]*model.ScheduleSlot, len(slots))
	gridSlots := make([]timegrid.Slot, 0, len(slots))
	for i := range slots {
		gs, err := slots[i].ToTimegridSlot()
		if err != nil {
			s.logger.Warn("节次时间格式异常，跳过校验",
				zap.String("id", slots[i].ID), zap.Error(err))
			continue
		}
		byID[slots[i].ID] = &slots[i]
		gridSlots = append(gridSlots, gs)
	}

	var findings []dto.ConflictDetail
	for i := range gridSlots {
		result := timegrid.CheckConflict(gridSlots[i], gridSlots[i+1:], "")
		if !result.Conflict {
			continue
		}
		reason := "room"
		if result.Conflicting.TeacherID == gridSlots[i].TeacherID {
			reason = "teacher"
		}
		findings = append(findings, dto.ConflictDetail{
			Reason:      reason,
			Conflicting: toSlotResponse(byID[result.Conflicting.ID]),
		})
	}

	reply := fmt.Sprintf("已扫描 %d 个课程节次，未发现冲突。", len(gridSlots))
	if len(findings) > 0 {
		reply = fmt.Sprintf("已扫描 %d 个课程节次，发现 %d 处双重占用，请在课表中调整。",
			len(gridSlots), len(findings))
	}

	return &dto.AssistantChatResponse{Reply: reply, Findings: findings}, nil
}

// scheduleQueryReply 概览当前课表规模，详情走课表接口。
func (s *assistantService) scheduleQueryReply(ctx context.Context) (*dto.AssistantChatResponse, error) {
	slots, err := s.repo.ScheduleSlot.List(ctx, repository.SlotFilters{})
	if err != nil {
		s.logger.Error("列出课程节次失败", zap.Error(err))
		return nil, err
	}
	return &dto.AssistantChatResponse{
		Reply: fmt.Sprintf("当前课表共有 %d 个课程节次。周视图可按班级或教师筛选，详见课表页面。", len(slots)),
	}, nil
}

// announcementDraft 按固定模板生成公告草稿。
func (s *assistantService) announcementDraft(message string) *dto.AssistantChatResponse {
	topic := strings.TrimSpace(message)
	if topic == "" {
		topic = "课表调整"
	}
	return &dto.AssistantChatResponse{
		Reply: fmt.Sprintf("公告草稿：\n标题：关于%s的通知\n正文：各位老师、同学：现就%s事项通知如下，请相关人员知悉并相互转告。具体安排以课表页面为准。", topic, topic),
	}
}

func (s *assistantService) generalReply(message string) *dto.AssistantChatResponse {
	msg := strings.ToLower(message)
	switch {
	case strings.Contains(msg, "冲突") || strings.Contains(msg, "conflict"):
		return &dto.AssistantChatResponse{
			Reply: "同一教师或同一教室在同一时间段只能安排一节课。发送 context=schedule_validation 可对全量课表做冲突扫描。",
		}
	case strings.Contains(msg, "调课") || strings.Contains(msg, "swap"):
		return &dto.AssistantChatResponse{
			Reply: "调课流程：发起申请 → 被请求教师或管理员批准 → 系统复查冲突后生效。",
		}
	case strings.Contains(msg, "导出") || strings.Contains(msg, "export"):
		return &dto.AssistantChatResponse{
			Reply: "课表支持导出为 Excel 周视图与 iCalendar 订阅文件，见导出页面。",
		}
	default:
		return &dto.AssistantChatResponse{
			Reply: "我可以解答关于课表冲突、调课流程与导出的问题，也可以对课表做冲突扫描（context=schedule_validation）。",
		}
	}
}
