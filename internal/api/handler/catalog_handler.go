package handler

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Dydymerho/SMD-Project-sub002/internal/service"
	"github.com/Dydymerho/SMD-Project-sub002/pkg/response"
)

// CatalogHandler 目录查询模块 HTTP 处理器
// 所有查询走内存快照，不触发数据库
type CatalogHandler struct {
	catalogSvc service.CatalogService
}

// NewCatalogHandler 创建 CatalogHandler
func NewCatalogHandler(catalogSvc service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogSvc: catalogSvc}
}

// ListSubjects 目录全量列表
// GET /api/v1/catalog/subjects?department=xxx
func (h *CatalogHandler) ListSubjects(c *gin.Context) {
	if dept := c.Query("department"); dept != "" {
		result, err := h.catalogSvc.FilterByDepartment(c.Request.Context(), dept)
		if err != nil {
			response.InternalError(c)
			return
		}
		response.OK(c, result)
		return
	}

	result, err := h.catalogSvc.ListSubjects(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// GetSubject 按课程代码查询目录条目
// GET /api/v1/catalog/subjects/:code
func (h *CatalogHandler) GetSubject(c *gin.Context) {
	result, err := h.catalogSvc.GetSubject(c.Request.Context(), c.Param("code"))
	if err != nil {
		if errors.Is(err, service.ErrSubjectNotFound) {
			response.NotFound(c, 13001, "目录中无此课程")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// PrerequisiteChain 完整先修链（传递闭包，深度优先序）
// GET /api/v1/catalog/subjects/:code/prerequisite-chain
func (h *CatalogHandler) PrerequisiteChain(c *gin.Context) {
	result, err := h.catalogSvc.PrerequisiteChain(c.Request.Context(), c.Param("code"))
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// RelatedSubjects 结构化关联课程代码
// GET /api/v1/catalog/subjects/:code/related
func (h *CatalogHandler) RelatedSubjects(c *gin.Context) {
	result, err := h.catalogSvc.RelatedSubjects(c.Request.Context(), c.Param("code"))
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// CheckOrdering 校验先修课学期均早于本课
// GET /api/v1/catalog/subjects/:code/ordering-check
func (h *CatalogHandler) CheckOrdering(c *gin.Context) {
	result, err := h.catalogSvc.CheckOrdering(c.Request.Context(), c.Param("code"))
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// TotalCredits 按代码列表求学分之和
// GET /api/v1/catalog/credits?codes=SE101,IT203
func (h *CatalogHandler) TotalCredits(c *gin.Context) {
	raw := c.Query("codes")

	var codes []string
	if raw != "" {
		for _, code := range strings.Split(raw, ",") {
			if code = strings.TrimSpace(code); code != "" {
				codes = append(codes, code)
			}
		}
	}

	result, err := h.catalogSvc.TotalCredits(c.Request.Context(), codes)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// SemestersPresent 目录中出现过的学期（升序去重）
// GET /api/v1/catalog/semesters
func (h *CatalogHandler) SemestersPresent(c *gin.Context) {
	result, err := h.catalogSvc.SemestersPresent(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// Rebuild 手动重建目录快照（管理员）
// POST /api/v1/catalog/rebuild
func (h *CatalogHandler) Rebuild(c *gin.Context) {
	if err := h.catalogSvc.Rebuild(c.Request.Context()); err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}
