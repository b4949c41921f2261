package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Dydymerho/SMD-Project-sub002/internal/model"
)

// AITaskRepository AI 抽取任务数据访问接口
type AITaskRepository interface {
	Create(ctx context.Context, task *model.AITask) error
	GetByID(ctx context.Context, id string) (*model.AITask, error)
	UpdateProgress(ctx context.Context, id string, status string, attempts int) error
	MarkTerminal(ctx context.Context, id string, status string, result model.JSONB, errMsg string, attempts int) error
}

type aiTaskRepo struct {
	db *gorm.DB
}

// NewAITaskRepo 创建 AITaskRepository 实例
func NewAITaskRepo(db *gorm.DB) AITaskRepository {
	return &aiTaskRepo{db: db}
}

func (r *aiTaskRepo) Create(ctx context.Context, task *model.AITask) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *aiTaskRepo) GetByID(ctx context.Context, id string) (*model.AITask, error) {
	var task model.AITask
	err := r.db.WithContext(ctx).
		Where("task_id = ?", id).
		First(&task).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// UpdateProgress 更新非终态进度（状态 + 已轮询次数）
func (r *aiTaskRepo) UpdateProgress(ctx context.Context, id string, status string, attempts int) error {
	return r.db.WithContext(ctx).
		Model(&model.AITask{}).
		Where("task_id = ?", id).
		Updates(map[string]interface{}{
			"status":   status,
			"attempts": attempts,
		}).Error
}

// MarkTerminal 写入终态（completed / failed / timed_out / canceled）
func (r *aiTaskRepo) MarkTerminal(ctx context.Context, id string, status string, result model.JSONB, errMsg string, attempts int) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&model.AITask{}).
		Where("task_id = ?", id).
		Updates(map[string]interface{}{
			"status":        status,
			"result":        result,
			"error_message": errMsg,
			"attempts":      attempts,
			"completed_at":  &now,
		}).Error
}
