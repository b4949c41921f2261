package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Dydymerho/SMD-Project-sub002/internal/dto"
	"github.com/Dydymerho/SMD-Project-sub002/internal/service"
	"github.com/Dydymerho/SMD-Project-sub002/pkg/response"
)

// DraftHandler 创建大纲向导的草稿模块 HTTP 处理器
type DraftHandler struct {
	draftSvc service.DraftService
}

// NewDraftHandler 创建 DraftHandler
func NewDraftHandler(draftSvc service.DraftService) *DraftHandler {
	return &DraftHandler{draftSvc: draftSvc}
}

// Save 整体保存草稿
// PUT /api/v1/drafts/:id
func (h *DraftHandler) Save(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.SaveDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.draftSvc.Save(c.Request.Context(), userID, c.Param("id"), &req)
	if err != nil {
		h.handleDraftError(c, err)
		return
	}

	response.OK(c, result)
}

// Get 读取草稿
// GET /api/v1/drafts/:id
func (h *DraftHandler) Get(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.draftSvc.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		h.handleDraftError(c, err)
		return
	}

	response.OK(c, result)
}

// Patch 对单个列表执行一次 add / remove / update 操作
// PATCH /api/v1/drafts/:id
func (h *DraftHandler) Patch(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.PatchDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.draftSvc.Patch(c.Request.Context(), userID, c.Param("id"), &req)
	if err != nil {
		h.handleDraftError(c, err)
		return
	}

	response.OK(c, result)
}

// Discard 丢弃草稿
// DELETE /api/v1/drafts/:id
func (h *DraftHandler) Discard(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.draftSvc.Discard(c.Request.Context(), userID, c.Param("id")); err != nil {
		h.handleDraftError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleDraftError 统一映射草稿模块业务错误
func (h *DraftHandler) handleDraftError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrDraftNotFound):
		response.NotFound(c, 16001, "草稿不存在或已过期")
	case errors.Is(err, service.ErrDraftOpInvalid):
		response.BadRequest(c, 16002, "无效的草稿操作")
	case errors.Is(err, service.ErrDraftUnavailable):
		response.Error(c, http.StatusServiceUnavailable, 16003, "草稿服务暂不可用")
	default:
		response.InternalError(c)
	}
}
