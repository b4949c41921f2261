package dto

import "github.com/Dydymerho/SMD-Project-sub002/internal/draft"

// ── 草稿模块 DTO ──

// SaveDraftRequest 整体保存草稿
type SaveDraftRequest struct {
	CourseID     string       `json:"course_id"`
	AcademicYear string       `json:"academic_year"`
	Semester     int          `json:"semester"      binding:"omitempty,min=1"`
	CLOs         []draft.Item `json:"clos"`
	Assessments  []draft.Item `json:"assessments"`
	SessionPlans []draft.Item `json:"session_plans"`
	Materials    []draft.Item `json:"materials"`
}

// PatchDraftRequest 对草稿单个列表的一次 reducer 操作
type PatchDraftRequest struct {
	Op    string      `json:"op"    binding:"required,oneof=add remove update"`
	List  string      `json:"list"  binding:"required"`
	Index int         `json:"index"` // remove / update 使用
	Field string      `json:"field"` // update 使用
	Value interface{} `json:"value"` // update 使用
	Item  draft.Item  `json:"item"`  // add 使用
}

// DraftResponse 草稿响应
type DraftResponse struct {
	DraftID      string       `json:"draft_id"`
	CourseID     string       `json:"course_id"`
	AcademicYear string       `json:"academic_year"`
	Semester     int          `json:"semester"`
	CLOs         []draft.Item `json:"clos"`
	Assessments  []draft.Item `json:"assessments"`
	SessionPlans []draft.Item `json:"session_plans"`
	Materials    []draft.Item `json:"materials"`
	UpdatedAt    string       `json:"updated_at"`
}
