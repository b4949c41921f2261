package dto

import "encoding/json"

// ── AI 抽取模块 DTO ──

// SubmitExtractionResponse 提交抽取任务响应
type SubmitExtractionResponse struct {
	TaskID string `json:"task_id"`
}

// ExtractionStatusResponse 抽取任务状态响应
// result 仅在 completed 时返回；error 仅在失败类终态时返回
type ExtractionStatusResponse struct {
	TaskID   string          `json:"task_id"`
	Status   string          `json:"status"`
	Attempts int             `json:"attempts"` // 已轮询次数（进度提示，仅供参考）
	Result   json.RawMessage `json:"result,omitempty"`
	Error    string          `json:"error,omitempty"`
}
