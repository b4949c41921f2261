package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/Dydymerho/SMD-Project-sub002/internal/service"
	"github.com/Dydymerho/SMD-Project-sub002/pkg/response"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	icsContentType  = "text/calendar; charset=utf-8"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportExcel 导出教学大纲为 Excel
// GET /api/v1/syllabi/:id/export/excel
func (h *ExportHandler) ExportExcel(c *gin.Context) {
	buf, filename, err := h.exportSvc.ExportSyllabusExcel(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	h.writeDownload(c, xlsxContentType, filename, buf.Bytes())
}

// ExportICS 导出教学周计划为 iCalendar
// GET /api/v1/syllabi/:id/export/ics?semester_start=2026-03-02
func (h *ExportHandler) ExportICS(c *gin.Context) {
	semesterStart := c.Query("semester_start")
	if semesterStart == "" {
		response.BadRequest(c, 10001, "semester_start 不能为空")
		return
	}

	buf, filename, err := h.exportSvc.ExportSessionPlanICS(c.Request.Context(), c.Param("id"), semesterStart)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	h.writeDownload(c, icsContentType, filename, buf.Bytes())
}

// writeDownload 设置下载响应头并写入文件内容
func (h *ExportHandler) writeDownload(c *gin.Context, contentType, filename string, data []byte) {
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, contentType, data)
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSyllabusNotFound):
		response.NotFound(c, 14005, "教学大纲不存在")
	case errors.Is(err, service.ErrExportDateInvalid):
		response.BadRequest(c, 17001, "semester_start 格式应为 YYYY-MM-DD")
	case errors.Is(err, service.ErrExportNoSessions):
		response.BadRequest(c, 17002, "该大纲暂无教学周计划")
	default:
		response.InternalError(c)
	}
}
