package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Dydymerho/SMD-Project-sub002/config"
	"github.com/Dydymerho/SMD-Project-sub002/internal/dto"
	"github.com/Dydymerho/SMD-Project-sub002/internal/model"
	"github.com/Dydymerho/SMD-Project-sub002/internal/repository"
)

// ── AI 抽取模块业务错误 ──

var (
	ErrTaskNotFound = errors.New("抽取任务不存在")
	ErrTaskTerminal = errors.New("任务已进入终态，无法取消")
	ErrEmptyPayload = errors.New("文档内容不能为空")
)

// ExtractionService AI 文档抽取业务接口
//
// Submit 受理文档后立即返回本地 task_id，轮询在后台 goroutine 中进行；
// 客户端通过 GetStatus 观察进度与终态。各任务相互独立，可并发提交。
type ExtractionService interface {
	Submit(ctx context.Context, filename string, payload []byte, callerID string) (*dto.SubmitExtractionResponse, error)
	GetStatus(ctx context.Context, taskID string) (*dto.ExtractionStatusResponse, error)
	Cancel(ctx context.Context, taskID string) error
}

type extractionService struct {
	poller *Poller
	repo   *repository.Repository
	logger *zap.Logger

	cancels sync.Map // taskID → context.CancelFunc
}

// NewExtractionService 创建 ExtractionService 实例
func NewExtractionService(cfg *config.AIConfig, repo *repository.Repository, logger *zap.Logger) ExtractionService {
	return &extractionService{
		poller: NewPoller(cfg, logger),
		repo:   repo,
		logger: logger,
	}
}

// ────────────────────── Submit ──────────────────────

func (s *extractionService) Submit(ctx context.Context, filename string, payload []byte, callerID string) (*dto.SubmitExtractionResponse, error) {
	if len(payload) == 0 {
		return nil, ErrEmptyPayload
	}

	task := &model.AITask{
		Filename: filename,
		Status:   model.AITaskPending,
	}
	if callerID != "" {
		task.CreatedBy = &callerID
	}
	if err := s.repo.AITask.Create(ctx, task); err != nil {
		s.logger.Error("创建抽取任务失败", zap.Error(err))
		return nil, err
	}

	// 轮询挂在独立的后台上下文上，不随 HTTP 请求结束而中断；
	// cancel 句柄登记后由 Cancel 操作触发
	runCtx, cancel := context.WithCancel(context.Background())
	s.cancels.Store(task.TaskID, cancel)

	go s.run(runCtx, task.TaskID, filename, payload)

	return &dto.SubmitExtractionResponse{TaskID: task.TaskID}, nil
}

// run 后台执行提交-轮询并持久化终态
func (s *extractionService) run(ctx context.Context, taskID, filename string, payload []byte) {
	defer s.cancels.Delete(taskID)

	progress := func(attempt int) {
		// 进度仅供展示，写入失败不影响轮询
		if err := s.repo.AITask.UpdateProgress(context.Background(), taskID, model.AITaskProcessing, attempt); err != nil {
			s.logger.Warn("更新任务进度失败", zap.String("task_id", taskID), zap.Error(err))
		}
	}

	outcome := s.poller.Run(ctx, filename, payload, progress)

	err := s.repo.AITask.MarkTerminal(
		context.Background(),
		taskID,
		outcome.Status,
		model.JSONB(outcome.Result),
		outcome.Error,
		outcome.Attempts,
	)
	if err != nil {
		s.logger.Error("写入任务终态失败", zap.String("task_id", taskID), zap.Error(err))
		return
	}

	s.logger.Info("抽取任务结束",
		zap.String("task_id", taskID),
		zap.String("status", outcome.Status),
		zap.Int("attempts", outcome.Attempts),
	)
}

// ────────────────────── GetStatus ──────────────────────

func (s *extractionService) GetStatus(ctx context.Context, taskID string) (*dto.ExtractionStatusResponse, error) {
	task, err := s.repo.AITask.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		s.logger.Error("查询抽取任务失败", zap.String("task_id", taskID), zap.Error(err))
		return nil, err
	}

	resp := &dto.ExtractionStatusResponse{
		TaskID:   task.TaskID,
		Status:   task.Status,
		Attempts: task.Attempts,
	}
	switch task.Status {
	case model.AITaskCompleted:
		resp.Result = json.RawMessage(task.Result)
	case model.AITaskFailed, model.AITaskTimedOut, model.AITaskCanceled:
		resp.Error = task.ErrorMessage
	}
	return resp, nil
}

// ────────────────────── Cancel ──────────────────────

// Cancel 取消仍在轮询中的任务；终态任务不可取消
func (s *extractionService) Cancel(ctx context.Context, taskID string) error {
	if v, ok := s.cancels.Load(taskID); ok {
		v.(context.CancelFunc)()
		return nil
	}

	task, err := s.repo.AITask.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		s.logger.Error("查询抽取任务失败", zap.String("task_id", taskID), zap.Error(err))
		return err
	}
	if task.Terminal() {
		return ErrTaskTerminal
	}
	// 本实例未持有 cancel 句柄（如进程重启后遗留的任务行）
	return ErrTaskNotFound
}
