package model

import "time"

// AI 抽取任务状态
const (
	AITaskPending    = "pending"
	AITaskProcessing = "processing"
	AITaskCompleted  = "completed"
	AITaskFailed     = "failed"
	AITaskTimedOut   = "timed_out"
	AITaskCanceled   = "canceled"
)

// AITask AI 抽取任务表 — 对应 ai_tasks
// 记录一次"提交文档 → 轮询外部 AI 服务"的完整生命周期
type AITask struct {
	TaskID       string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"task_id"`
	RemoteID     string     `gorm:"type:varchar(64);not null;default:''"           json:"remote_id"` // 外部服务分配的 task_id
	Filename     string     `gorm:"type:varchar(300);not null;default:''"          json:"filename"`
	Status       string     `gorm:"type:varchar(20);not null;default:'pending'"    json:"status"`
	Result       JSONB      `gorm:"type:jsonb"                                     json:"result,omitempty"`
	ErrorMessage string     `gorm:"type:varchar(1024);not null;default:''"         json:"error_message,omitempty"`
	Attempts     int        `gorm:"type:smallint;not null;default:0"               json:"attempts"`
	CreatedBy    *string    `gorm:"type:uuid"                                      json:"created_by,omitempty"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
	BaseModel
}

// TableName 指定表名
func (AITask) TableName() string { return "ai_tasks" }

// Terminal 判断任务是否已进入终态
func (t *AITask) Terminal() bool {
	switch t.Status {
	case AITaskCompleted, AITaskFailed, AITaskTimedOut, AITaskCanceled:
		return true
	}
	return false
}
