package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/Dydymerho/SMD-Project-sub002/internal/draft"
	"github.com/Dydymerho/SMD-Project-sub002/internal/dto"
	"github.com/Dydymerho/SMD-Project-sub002/pkg/redis"
)

// ── 草稿模块业务错误 ──

var (
	ErrDraftNotFound    = errors.New("草稿不存在或已过期")
	ErrDraftUnavailable = errors.New("草稿服务暂不可用")
	ErrDraftOpInvalid   = errors.New("无效的草稿操作")
)

// 草稿保留 7 天，到期自动清理
const draftTTL = 7 * 24 * time.Hour

// DraftService 创建大纲向导的草稿暂存业务接口
//
// 草稿按 (用户, draft_id) 隔离，整体以 JSON 存于 Redis；
// Patch 对单个列表执行一次 add / remove / update 操作后整体回写。
type DraftService interface {
	Save(ctx context.Context, callerID, draftID string, req *dto.SaveDraftRequest) (*dto.DraftResponse, error)
	Get(ctx context.Context, callerID, draftID string) (*dto.DraftResponse, error)
	Patch(ctx context.Context, callerID, draftID string, req *dto.PatchDraftRequest) (*dto.DraftResponse, error)
	Discard(ctx context.Context, callerID, draftID string) error
}

type draftService struct {
	rdb    *redis.Client
	logger *zap.Logger
}

// NewDraftService 创建 DraftService 实例
func NewDraftService(rdb *redis.Client, logger *zap.Logger) DraftService {
	return &draftService{rdb: rdb, logger: logger}
}

// ────────────────────── Save ──────────────────────

func (s *draftService) Save(ctx context.Context, callerID, draftID string, req *dto.SaveDraftRequest) (*dto.DraftResponse, error) {
	if s.rdb == nil {
		return nil, ErrDraftUnavailable
	}

	d := draft.New(draftID)
	d.CourseID = req.CourseID
	d.AcademicYear = req.AcademicYear
	d.Semester = req.Semester
	if req.CLOs != nil {
		d.CLOs = req.CLOs
	}
	if req.Assessments != nil {
		d.Assessments = req.Assessments
	}
	if req.SessionPlans != nil {
		d.SessionPlans = req.SessionPlans
	}
	if req.Materials != nil {
		d.Materials = req.Materials
	}

	if err := s.persist(ctx, callerID, d); err != nil {
		return nil, err
	}
	return s.toDraftResponse(d), nil
}

// ────────────────────── Get ──────────────────────

func (s *draftService) Get(ctx context.Context, callerID, draftID string) (*dto.DraftResponse, error) {
	d, err := s.load(ctx, callerID, draftID)
	if err != nil {
		return nil, err
	}
	return s.toDraftResponse(d), nil
}

// ────────────────────── Patch ──────────────────────

func (s *draftService) Patch(ctx context.Context, callerID, draftID string, req *dto.PatchDraftRequest) (*dto.DraftResponse, error) {
	d, err := s.load(ctx, callerID, draftID)
	if err != nil {
		return nil, err
	}

	switch req.Op {
	case "add":
		_, err = d.AddItem(req.List, req.Item)
	case "remove":
		err = d.RemoveItem(req.List, req.Index)
	case "update":
		err = d.UpdateItem(req.List, req.Index, req.Field, req.Value)
	default:
		return nil, ErrDraftOpInvalid
	}
	if err != nil {
		if errors.Is(err, draft.ErrUnknownList) || errors.Is(err, draft.ErrIndexOutOfRange) {
			return nil, ErrDraftOpInvalid
		}
		return nil, err
	}

	if err := s.persist(ctx, callerID, d); err != nil {
		return nil, err
	}
	return s.toDraftResponse(d), nil
}

// ────────────────────── Discard ──────────────────────

func (s *draftService) Discard(ctx context.Context, callerID, draftID string) error {
	if s.rdb == nil {
		return ErrDraftUnavailable
	}
	if err := s.rdb.DeleteDraft(ctx, callerID, draftID); err != nil {
		s.logger.Error("删除草稿失败", zap.String("draft_id", draftID), zap.Error(err))
		return err
	}
	return nil
}

// ── 内部辅助方法 ──

func (s *draftService) load(ctx context.Context, callerID, draftID string) (*draft.Draft, error) {
	if s.rdb == nil {
		return nil, ErrDraftUnavailable
	}

	data, err := s.rdb.GetDraft(ctx, callerID, draftID)
	if err != nil {
		if redis.IsNil(err) {
			return nil, ErrDraftNotFound
		}
		s.logger.Error("读取草稿失败", zap.String("draft_id", draftID), zap.Error(err))
		return nil, err
	}

	var d draft.Draft
	if err := json.Unmarshal(data, &d); err != nil {
		s.logger.Error("解析草稿失败", zap.String("draft_id", draftID), zap.Error(err))
		return nil, ErrDraftNotFound
	}
	return &d, nil
}

func (s *draftService) persist(ctx context.Context, callerID string, d *draft.Draft) error {
	data, err := json.Marshal(d)
	if err != nil {
		s.logger.Error("序列化草稿失败", zap.String("draft_id", d.DraftID), zap.Error(err))
		return err
	}
	if err := s.rdb.SaveDraft(ctx, callerID, d.DraftID, data, draftTTL); err != nil {
		s.logger.Error("保存草稿失败", zap.String("draft_id", d.DraftID), zap.Error(err))
		return err
	}
	return nil
}

func (s *draftService) toDraftResponse(d *draft.Draft) *dto.DraftResponse {
	return &dto.DraftResponse{
		DraftID:      d.DraftID,
		CourseID:     d.CourseID,
		AcademicYear: d.AcademicYear,
		Semester:     d.Semester,
		CLOs:         d.CLOs,
		Assessments:  d.Assessments,
		SessionPlans: d.SessionPlans,
		Materials:    d.Materials,
		UpdatedAt:    d.UpdatedAt.Format(time.RFC3339),
	}
}
