package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Dydymerho/SMD-Project-sub002/internal/dto"
	"github.com/Dydymerho/SMD-Project-sub002/internal/service"
	"github.com/Dydymerho/SMD-Project-sub002/pkg/response"
)

// SyllabusHandler 教学大纲模块 HTTP 处理器
//
// 写操作成功后触发目录快照重建，保证目录查询看到最新大纲
type SyllabusHandler struct {
	syllabusSvc service.SyllabusService
	catalogSvc  service.CatalogService
}

// NewSyllabusHandler 创建 SyllabusHandler
func NewSyllabusHandler(syllabusSvc service.SyllabusService, catalogSvc service.CatalogService) *SyllabusHandler {
	return &SyllabusHandler{syllabusSvc: syllabusSvc, catalogSvc: catalogSvc}
}

// Create 创建教学大纲（支持嵌套子列表的原子创建）
// POST /api/v1/syllabi
func (h *SyllabusHandler) Create(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateSyllabusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.syllabusSvc.Create(c.Request.Context(), &req, userID)
	if err != nil {
		h.handleSyllabusError(c, err)
		return
	}

	_ = h.catalogSvc.Rebuild(c.Request.Context())

	response.Created(c, result)
}

// Get 教学大纲详情（含全部子列表）
// GET /api/v1/syllabi/:id
func (h *SyllabusHandler) Get(c *gin.Context) {
	result, err := h.syllabusSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleSyllabusError(c, err)
		return
	}

	response.OK(c, result)
}

// AddCLOs 批量追加 CLO
// POST /api/v1/syllabi/:id/clos
func (h *SyllabusHandler) AddCLOs(c *gin.Context) {
	var req dto.BatchCLORequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.syllabusSvc.AddCLOs(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleSyllabusError(c, err)
		return
	}

	response.Created(c, result)
}

// AddAssessments 批量追加考核项（整批权重之和必须为 100）
// POST /api/v1/syllabi/:id/assessments
func (h *SyllabusHandler) AddAssessments(c *gin.Context) {
	var req dto.BatchAssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.syllabusSvc.AddAssessments(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleSyllabusError(c, err)
		return
	}

	response.Created(c, result)
}

// AddSessionPlans 批量追加教学周计划
// POST /api/v1/syllabi/:id/session-plans
func (h *SyllabusHandler) AddSessionPlans(c *gin.Context) {
	var req dto.BatchSessionPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.syllabusSvc.AddSessionPlans(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleSyllabusError(c, err)
		return
	}

	response.Created(c, result)
}

// AddMaterials 批量追加教材资料
// POST /api/v1/syllabi/:id/materials
func (h *SyllabusHandler) AddMaterials(c *gin.Context) {
	var req dto.BatchMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.syllabusSvc.AddMaterials(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleSyllabusError(c, err)
		return
	}

	response.Created(c, result)
}

// handleSyllabusError 统一映射教学大纲模块业务错误
func (h *SyllabusHandler) handleSyllabusError(c *gin.Context, err error) {
	var dup *service.DuplicateSyllabusError
	var ws *service.WeightSumError

	switch {
	case errors.As(err, &dup):
		// 409 携带已有大纲 ID，客户端可提供"跳转编辑"选项
		response.Conflict(c, 14001, dup.Error(), dto.SyllabusConflictData{
			ExistingSyllabusID: dup.ExistingSyllabusID,
		})
	case errors.As(err, &ws):
		response.BadRequest(c, 14002, ws.Error())
	case errors.Is(err, service.ErrCourseNotChosen):
		response.BadRequest(c, 14003, "必须选择课程与学年")
	case errors.Is(err, service.ErrRelationInvalid):
		response.BadRequest(c, 14004, "tree 类型的课程关系必须提供关联课程代码")
	case errors.Is(err, service.ErrCourseNotFound):
		response.NotFound(c, 12001, "课程不存在")
	case errors.Is(err, service.ErrSyllabusNotFound):
		response.NotFound(c, 14005, "教学大纲不存在")
	default:
		response.InternalError(c)
	}
}
