package handler

import (
	"errors"
	"io"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Dydymerho/SMD-Project-sub002/internal/service"
	"github.com/Dydymerho/SMD-Project-sub002/pkg/response"
)

// 上传文档大小上限与允许的扩展名
const maxUploadBytes = 10 << 20 // 10MB

var allowedUploadExts = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
}

// ExtractionHandler AI 文档抽取模块 HTTP 处理器
type ExtractionHandler struct {
	extractionSvc service.ExtractionService
}

// NewExtractionHandler 创建 ExtractionHandler
func NewExtractionHandler(extractionSvc service.ExtractionService) *ExtractionHandler {
	return &ExtractionHandler{extractionSvc: extractionSvc}
}

// Submit 上传大纲文档，受理后台抽取
// POST /api/v1/extractions  (multipart, 字段名 file)
func (h *ExtractionHandler) Submit(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, 10001, "缺少文档文件")
		return
	}
	if fileHeader.Size > maxUploadBytes {
		response.BadRequest(c, 15001, "文档大小不能超过 10MB")
		return
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedUploadExts[ext] {
		response.BadRequest(c, 15002, "仅支持 PDF / Word 文档")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		response.InternalError(c)
		return
	}
	defer f.Close()

	payload, err := io.ReadAll(f)
	if err != nil {
		response.InternalError(c)
		return
	}

	result, err := h.extractionSvc.Submit(c.Request.Context(), fileHeader.Filename, payload, userID)
	if err != nil {
		if errors.Is(err, service.ErrEmptyPayload) {
			response.BadRequest(c, 15003, "文档内容不能为空")
			return
		}
		response.InternalError(c)
		return
	}

	// 202：任务已受理，结果通过状态接口获取
	response.Accepted(c, result)
}

// GetStatus 查询抽取任务状态
// GET /api/v1/extractions/:id
func (h *ExtractionHandler) GetStatus(c *gin.Context) {
	result, err := h.extractionSvc.GetStatus(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrTaskNotFound) {
			response.NotFound(c, 15004, "抽取任务不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// Cancel 取消仍在轮询中的抽取任务
// DELETE /api/v1/extractions/:id
func (h *ExtractionHandler) Cancel(c *gin.Context) {
	err := h.extractionSvc.Cancel(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTaskNotFound):
			response.NotFound(c, 15004, "抽取任务不存在")
		case errors.Is(err, service.ErrTaskTerminal):
			response.BadRequest(c, 15005, "任务已进入终态，无法取消")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, nil)
}
