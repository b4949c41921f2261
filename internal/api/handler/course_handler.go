package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Dydymerho/SMD-Project-sub002/internal/service"
	"github.com/Dydymerho/SMD-Project-sub002/pkg/response"
)

// CourseHandler 课程参考数据模块 HTTP 处理器
type CourseHandler struct {
	courseSvc service.CourseService
}

// NewCourseHandler 创建 CourseHandler
func NewCourseHandler(courseSvc service.CourseService) *CourseHandler {
	return &CourseHandler{courseSvc: courseSvc}
}

// ListCourses 课程列表（附当前用户关注标记）
// GET /api/v1/courses
func (h *CourseHandler) ListCourses(c *gin.Context) {
	// 未认证访问也允许浏览，只是没有关注标记
	callerID := c.GetString("user_id")

	result, err := h.courseSvc.ListCourses(c.Request.Context(), callerID)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// ListPrograms 培养方案列表（含 PLO 定义）
// GET /api/v1/programs
func (h *CourseHandler) ListPrograms(c *gin.Context) {
	result, err := h.courseSvc.ListPrograms(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// Follow 关注课程（幂等）
// POST /api/v1/courses/:id/follow
func (h *CourseHandler) Follow(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.courseSvc.Follow(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrCourseNotFound) {
			response.NotFound(c, 12001, "课程不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// Unfollow 取消关注课程（幂等）
// DELETE /api/v1/courses/:id/follow
func (h *CourseHandler) Unfollow(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.courseSvc.Unfollow(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrCourseNotFound) {
			response.NotFound(c, 12001, "课程不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}
