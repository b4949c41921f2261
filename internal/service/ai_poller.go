package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/Dydymerho/SMD-Project-sub002/config"
	"github.com/Dydymerho/SMD-Project-sub002/internal/model"
)

// ── AI 提交-轮询客户端 ──────────────────────────────────────
//
// 职责：驱动"上传文档 → 轮询任务状态"协议，向调用方交付唯一终态。
//
// 协议约定：
//   - POST {upload_url}：multipart 上传文档，返回 {"task_id": "..."}
//   - GET  {status_url}/{task_id}：返回 {"status": "...", "result"?: ..., "error"?: "..."}
//   - status 为 completed / failed 时进入终态；其他值继续轮询
//   - 轮询达到次数上限仍无终态 → 本地放弃（timed_out），不通知外部服务取消
//   - ctx 取消在每次延时前检查，终态为 canceled，与超时区分
// ─────────────────────────────────────────────────────────────

const pollRequestTimeout = 30 * time.Second

// PollOutcome 一次提交-轮询运行的终态
type PollOutcome struct {
	Status   string          // completed | failed | timed_out | canceled
	Result   json.RawMessage // 仅 completed 时有值
	Error    string          // 失败类终态的人类可读消息
	RemoteID string          // 外部服务分配的 task_id（提交成功后有值）
	Attempts int             // 实际发出的状态查询次数
}

// Poller 外部 AI 抽取服务客户端
type Poller struct {
	uploadURL   string
	statusURL   string
	apiKey      string
	interval    time.Duration
	maxAttempts int
	httpClient  *http.Client
	logger      *zap.Logger
}

// NewPoller 创建 Poller 实例
func NewPoller(cfg *config.AIConfig, logger *zap.Logger) *Poller {
	return &Poller{
		uploadURL:   cfg.UploadURL,
		statusURL:   cfg.StatusURL,
		apiKey:      cfg.APIKey,
		interval:    cfg.PollInterval,
		maxAttempts: cfg.MaxAttempts,
		httpClient:  &http.Client{Timeout: pollRequestTimeout},
		logger:      logger,
	}
}

// Run 执行一次完整的提交-轮询流程，阻塞直到终态
//
// progress 为可选的进度回调（已查询次数，仅供展示）；
// 并发运行多个 Run 互不共享状态。
func (p *Poller) Run(ctx context.Context, filename string, payload []byte, progress func(attempt int)) PollOutcome {
	remoteID, err := p.submit(ctx, filename, payload)
	if err != nil {
		p.logger.Warn("提交抽取任务失败", zap.String("filename", filename), zap.Error(err))
		return PollOutcome{Status: model.AITaskFailed, Error: "提交文档失败：" + err.Error()}
	}

	for attempt := 1; attempt <= p.maxAttempts; attempt++ {
		status, err := p.queryStatus(ctx, remoteID)
		if progress != nil {
			progress(attempt)
		}
		if err != nil {
			// 单次查询失败不终止轮询，计入尝试次数
			p.logger.Warn("查询任务状态失败",
				zap.String("remote_id", remoteID),
				zap.Int("attempt", attempt),
				zap.Error(err),
			)
		} else {
			switch status.Status {
			case "completed":
				return PollOutcome{
					Status:   model.AITaskCompleted,
					Result:   status.Result,
					RemoteID: remoteID,
					Attempts: attempt,
				}
			case "failed":
				msg := status.Error
				if msg == "" {
					msg = "文档抽取失败"
				}
				return PollOutcome{
					Status:   model.AITaskFailed,
					Error:    msg,
					RemoteID: remoteID,
					Attempts: attempt,
				}
			}
			// pending / processing / 未知状态：继续轮询
		}

		// 次数上限用尽后不再延时，直接判超时
		if attempt == p.maxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return PollOutcome{
				Status:   model.AITaskCanceled,
				Error:    "任务已取消",
				RemoteID: remoteID,
				Attempts: attempt,
			}
		case <-time.After(p.interval):
		}
	}

	return PollOutcome{
		Status:   model.AITaskTimedOut,
		Error:    "文档处理耗时过长，请稍后重试或手动录入",
		RemoteID: remoteID,
		Attempts: p.maxAttempts,
	}
}

// remoteStatus 状态查询响应体
type remoteStatus struct {
	Status string          `json:"status"`
	Result json.RawMessage `json:"result,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// submit 上传文档并返回外部 task_id
func (p *Poller) submit(ctx context.Context, filename string, payload []byte) (string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("构造 multipart 失败: %w", err)
	}
	if _, err := part.Write(payload); err != nil {
		return "", fmt.Errorf("写入文档内容失败: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("关闭 multipart 失败: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.uploadURL, body)
	if err != nil {
		return "", fmt.Errorf("构造上传请求失败: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	p.setAuth(req)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("上传请求失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return "", p.decodeAPIError(resp)
	}

	var result struct {
		TaskID string `json:"task_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("解析上传响应失败: %w", err)
	}
	if result.TaskID == "" {
		return "", fmt.Errorf("上传响应缺少 task_id")
	}
	return result.TaskID, nil
}

// queryStatus 查询一次任务状态
func (p *Poller) queryStatus(ctx context.Context, remoteID string) (*remoteStatus, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.statusURL+"/"+remoteID, nil)
	if err != nil {
		return nil, fmt.Errorf("构造状态请求失败: %w", err)
	}
	p.setAuth(req)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("状态请求失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, p.decodeAPIError(resp)
	}

	var status remoteStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return nil, fmt.Errorf("解析状态响应失败: %w", err)
	}
	return &status, nil
}

func (p *Poller) setAuth(req *http.Request) {
	if p.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.apiKey)
	}
}

// decodeAPIError 从错误响应体中提取消息，无结构化消息时回退为状态码
func (p *Poller) decodeAPIError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var apiErr struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &apiErr); err == nil {
		if apiErr.Error != "" {
			return fmt.Errorf("AI 服务错误: %s", apiErr.Error)
		}
		if apiErr.Message != "" {
			return fmt.Errorf("AI 服务错误: %s", apiErr.Message)
		}
	}
	return fmt.Errorf("AI 服务错误: HTTP %d", resp.StatusCode)
}
